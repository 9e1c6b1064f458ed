package handlers

import (
	"time"

	"github.com/emrekoc/pilates_studio/scheduling"
	"github.com/emrekoc/pilates_studio/websocket"
	"github.com/gofiber/fiber/v2"
)

// ClassHandler serves the class catalog. The catalog and desk handles are
// injected at startup; handlers never reach for process-wide state.
type ClassHandler struct {
	Catalog *scheduling.ClassCatalog
	Desk    *scheduling.BookingDesk
}

func NewClassHandler(catalog *scheduling.ClassCatalog, desk *scheduling.BookingDesk) *ClassHandler {
	if catalog == nil || desk == nil {
		panic("nil dependency passed to NewClassHandler")
	}
	return &ClassHandler{Catalog: catalog, Desk: desk}
}

type CreateClassRequest struct {
	Title       string    `json:"title" validate:"required,min=2"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required"`
	TrainerID   string    `json:"trainer_id" validate:"required,uuid"`
	Capacity    int       `json:"capacity" validate:"required,min=1"`
	Level       string    `json:"level,omitempty" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED ALL_LEVELS"`
	Type        string    `json:"type" validate:"required,oneof=GRUP ÖZEL REFORMER"`
}

func (h *ClassHandler) CreateClass(c *fiber.Ctx) error {
	var req CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	cls, err := h.Desk.OpenClass(scheduling.ClassData{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		TrainerID:   req.TrainerID,
		Capacity:    req.Capacity,
		Level:       req.Level,
		Type:        req.Type,
	})
	if err != nil {
		return schedulingError(c, err)
	}

	websocket.Publish(websocket.ScheduleEvent{Type: websocket.EventClassCreated, ClassID: cls.ID})
	return c.Status(fiber.StatusCreated).JSON(cls)
}

func (h *ClassHandler) ListClasses(c *fiber.Ctx) error {
	filters := scheduling.ClassFilters{
		TrainerID: c.Query("trainerId"),
		Type:      c.Query("type"),
		Status:    scheduling.ClassStatus(c.Query("status")),
		Level:     c.Query("level"),
	}
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
		}
		filters.Date = &date
	}

	classes := h.Catalog.Query(filters)
	return c.JSON(fiber.Map{"classes": classes, "total": len(classes)})
}

func (h *ClassHandler) GetClass(c *fiber.Ctx) error {
	cls, err := h.Catalog.GetByID(c.Params("classId"))
	if err != nil {
		return schedulingError(c, err)
	}
	return c.JSON(cls)
}

func (h *ClassHandler) TodayClasses(c *fiber.Ctx) error {
	classes := h.Catalog.TodayClasses()
	return c.JSON(fiber.Map{"classes": classes, "total": len(classes)})
}

func (h *ClassHandler) UpcomingClasses(c *fiber.Ctx) error {
	classes := h.Catalog.UpcomingClasses()
	return c.JSON(fiber.Map{"classes": classes, "total": len(classes)})
}

type UpdateClassRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=2"`
	Description *string    `json:"description,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	TrainerID   *string    `json:"trainer_id,omitempty" validate:"omitempty,uuid"`
	Capacity    *int       `json:"capacity,omitempty" validate:"omitempty,min=1"`
}

func (h *ClassHandler) UpdateClass(c *fiber.Ctx) error {
	var req UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	classID := c.Params("classId")
	err := h.Catalog.Update(classID, scheduling.ClassPatch{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		TrainerID:   req.TrainerID,
		Capacity:    req.Capacity,
	})
	if err != nil {
		return schedulingError(c, err)
	}

	cls, err := h.Catalog.GetByID(classID)
	if err != nil {
		return schedulingError(c, err)
	}
	websocket.Publish(websocket.ScheduleEvent{Type: websocket.EventClassUpdated, ClassID: classID})
	return c.JSON(cls)
}

type CancelClassRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

// CancelClass cancels the class and every active booking on it.
func (h *ClassHandler) CancelClass(c *fiber.Ctx) error {
	var req CancelClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	classID := c.Params("classId")
	cancelledBookings, err := h.Desk.CancelClass(classID, req.Reason)
	if err != nil {
		return schedulingError(c, err)
	}

	websocket.Publish(websocket.ScheduleEvent{Type: websocket.EventClassCancelled, ClassID: classID})
	return c.JSON(fiber.Map{
		"message":            "Class cancelled successfully",
		"cancelled_bookings": cancelledBookings,
	})
}
