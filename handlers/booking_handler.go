package handlers

import (
	"log"

	"github.com/emrekoc/pilates_studio/database"
	"github.com/emrekoc/pilates_studio/models"
	"github.com/emrekoc/pilates_studio/notifications"
	"github.com/emrekoc/pilates_studio/scheduling"
	"github.com/emrekoc/pilates_studio/websocket"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BookingHandler serves booking creation, transitions and views. Booking a
// member into a class goes through the desk so the capacity decision and
// the class booking count stay consistent.
type BookingHandler struct {
	Desk    *scheduling.BookingDesk
	Ledger  *scheduling.BookingLedger
	Catalog *scheduling.ClassCatalog
}

func NewBookingHandler(desk *scheduling.BookingDesk, ledger *scheduling.BookingLedger, catalog *scheduling.ClassCatalog) *BookingHandler {
	if desk == nil || ledger == nil || catalog == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Desk: desk, Ledger: ledger, Catalog: catalog}
}

type CreateBookingRequest struct {
	ClassID  string `json:"class_id" validate:"required"`
	MemberID string `json:"member_id" validate:"required,uuid"`
	Notes    string `json:"notes,omitempty"`
}

func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	rec, err := h.Desk.BookClass(req.ClassID, req.MemberID, req.Notes)
	if err != nil {
		return schedulingError(c, err)
	}

	if rec.Status == scheduling.BookingConfirmed {
		h.deductCredit(req.MemberID)
	}

	websocket.Publish(websocket.ScheduleEvent{
		Type:      websocket.EventBookingCreated,
		ClassID:   rec.ClassID,
		BookingID: rec.ID,
		MemberID:  rec.MemberID,
	})

	message := "Booking confirmed"
	if rec.Status == scheduling.BookingWaitlisted {
		message = "Class is full, member added to the waitlist"
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": message, "booking": rec})
}

// deductCredit burns one session credit when a booking is confirmed. A
// member without credits still books; the front desk settles it manually.
func (h *BookingHandler) deductCredit(memberID string) {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var member models.Member
		if err := tx.First(&member, "id = ?", memberID).Error; err != nil {
			return err
		}
		if member.RemainingCredits <= 0 {
			log.Printf("⚠️ Member %s booked with no remaining credits", memberID)
			return nil
		}
		member.RemainingCredits--
		return tx.Save(&member).Error
	})
	if err != nil {
		log.Printf("🔥 Failed to deduct credit for member %s: %v", memberID, err)
	}
}

type CancelBookingRequest struct {
	Reason string `json:"reason,omitempty"`
}

// CancelBooking cancels a booking and reports the next waitlisted booking
// for the class, if any, so staff can promote it.
func (h *BookingHandler) CancelBooking(c *fiber.Ctx) error {
	var req CancelBookingRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	cancelled, next, err := h.Desk.CancelBooking(c.Params("bookingId"), req.Reason)
	if err != nil {
		return schedulingError(c, err)
	}

	websocket.Publish(websocket.ScheduleEvent{
		Type:      websocket.EventBookingCancelled,
		ClassID:   cancelled.ClassID,
		BookingID: cancelled.ID,
		MemberID:  cancelled.MemberID,
	})

	resp := fiber.Map{"message": "Booking cancelled successfully", "booking": cancelled}
	if next != nil {
		resp["next_waitlisted"] = next
	}
	return c.JSON(resp)
}

// PromoteBooking confirms a waitlisted booking into freed capacity.
func (h *BookingHandler) PromoteBooking(c *fiber.Ctx) error {
	rec, err := h.Desk.PromoteBooking(c.Params("bookingId"))
	if err != nil {
		return schedulingError(c, err)
	}

	h.deductCredit(rec.MemberID)
	websocket.Publish(websocket.ScheduleEvent{
		Type:      websocket.EventBookingPromoted,
		ClassID:   rec.ClassID,
		BookingID: rec.ID,
		MemberID:  rec.MemberID,
	})
	go h.notifyPromotion(rec)

	return c.JSON(fiber.Map{"message": "Booking confirmed from waitlist", "booking": rec})
}

func (h *BookingHandler) notifyPromotion(rec scheduling.BookingRecord) {
	var member models.Member
	if err := database.DB.First(&member, "id = ?", rec.MemberID).Error; err != nil {
		return
	}
	cls, err := h.Catalog.GetByID(rec.ClassID)
	if err != nil {
		return
	}
	notifications.SendEmail(
		member.FirstName+" "+member.LastName,
		member.Email,
		"A Spot Opened Up!",
		"<h1>You're In</h1><p>A spot opened up in <b>"+cls.Title+"</b> and your waitlisted booking is now confirmed.</p>",
	)
}

func (h *BookingHandler) CheckIn(c *fiber.Ctx) error {
	rec, err := h.Desk.CheckIn(c.Params("bookingId"))
	if err != nil {
		return schedulingError(c, err)
	}

	websocket.Publish(websocket.ScheduleEvent{
		Type:      websocket.EventCheckIn,
		ClassID:   rec.ClassID,
		BookingID: rec.ID,
		MemberID:  rec.MemberID,
	})
	return c.JSON(fiber.Map{"message": "Member checked in", "booking": rec})
}

func (h *BookingHandler) MarkNoShow(c *fiber.Ctx) error {
	rec, err := h.Desk.MarkNoShow(c.Params("bookingId"))
	if err != nil {
		return schedulingError(c, err)
	}

	websocket.Publish(websocket.ScheduleEvent{
		Type:      websocket.EventNoShow,
		ClassID:   rec.ClassID,
		BookingID: rec.ID,
		MemberID:  rec.MemberID,
	})
	return c.JSON(fiber.Map{"message": "Booking marked as no-show", "booking": rec})
}

func (h *BookingHandler) GetBooking(c *fiber.Ctx) error {
	rec, err := h.Ledger.GetByID(c.Params("bookingId"))
	if err != nil {
		return schedulingError(c, err)
	}
	return c.JSON(rec)
}

func (h *BookingHandler) GetBookingsByClass(c *fiber.Ctx) error {
	bookings := h.Ledger.GetBookingsByClass(c.Params("classId"))
	return c.JSON(fiber.Map{"bookings": bookings, "total": len(bookings)})
}

func (h *BookingHandler) GetWaitlist(c *fiber.Ctx) error {
	waitlist := h.Ledger.GetWaitlistedBookings(c.Params("classId"))
	return c.JSON(fiber.Map{"waitlist": waitlist, "total": len(waitlist)})
}

// GetBookingsByMember returns a member's bookings; ?view=upcoming or
// ?view=past narrows the result to the corresponding derived view.
func (h *BookingHandler) GetBookingsByMember(c *fiber.Ctx) error {
	memberID := c.Params("memberId")

	var bookings []scheduling.BookingRecord
	switch c.Query("view") {
	case "upcoming":
		bookings = h.Ledger.GetUpcomingBookings(memberID)
	case "past":
		bookings = h.Ledger.GetPastBookings(memberID)
	case "":
		bookings = h.Ledger.GetBookingsByMember(memberID)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "view must be 'upcoming' or 'past'"})
	}
	return c.JSON(fiber.Map{"bookings": bookings, "total": len(bookings)})
}
