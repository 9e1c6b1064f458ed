package handlers

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/emrekoc/pilates_studio/database"
	"github.com/emrekoc/pilates_studio/models"
	"github.com/emrekoc/pilates_studio/scheduling"
	"github.com/gofiber/fiber/v2"
)

// ReportHandler produces the dashboard numbers and CSV exports the studio
// front office works from.
type ReportHandler struct {
	Catalog *scheduling.ClassCatalog
	Ledger  *scheduling.BookingLedger
}

func NewReportHandler(catalog *scheduling.ClassCatalog, ledger *scheduling.BookingLedger) *ReportHandler {
	if catalog == nil || ledger == nil {
		panic("nil dependency passed to NewReportHandler")
	}
	return &ReportHandler{Catalog: catalog, Ledger: ledger}
}

type DashboardAnalyticsResponse struct {
	ActiveMembers    int64   `json:"active_members"`
	NewMembersMonth  int64   `json:"new_members_this_month"`
	TodayClasses     int     `json:"today_classes"`
	UpcomingClasses  int     `json:"upcoming_classes"`
	RevenueThisMonth float64 `json:"revenue_this_month"`
	AttendanceRate   float64 `json:"attendance_rate"`
}

func (h *ReportHandler) GetDashboardAnalytics(c *fiber.Ctx) error {
	var response DashboardAnalyticsResponse

	if err := database.DB.Model(&models.Member{}).Where("status = ?", "active").Count(&response.ActiveMembers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	monthStart := time.Now().AddDate(0, -1, 0)
	if err := database.DB.Model(&models.Member{}).Where("created_at > ?", monthStart).Count(&response.NewMembersMonth).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	err := database.DB.Model(&models.Payment{}).
		Where("status = ? AND created_at > ?", "SUCCEEDED", monthStart).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&response.RevenueThisMonth)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	response.TodayClasses = len(h.Catalog.TodayClasses())
	response.UpcomingClasses = len(h.Catalog.UpcomingClasses())
	response.AttendanceRate = h.attendanceRate()

	return c.JSON(response)
}

// attendanceRate is the share of closed-out bookings that were attended.
// Bookings still pending or confirmed do not count either way.
func (h *ReportHandler) attendanceRate() float64 {
	var attended, noShow int
	for _, cls := range h.Catalog.Query(scheduling.ClassFilters{}) {
		for _, b := range h.Ledger.GetBookingsByClass(cls.ID) {
			switch b.Status {
			case scheduling.BookingAttended:
				attended++
			case scheduling.BookingNoShow:
				noShow++
			}
		}
	}
	if attended+noShow == 0 {
		return 0
	}
	return float64(attended) / float64(attended+noShow)
}

// GenerateTransactionReport streams a CSV of payments in the requested date
// range, defaulting to the last month.
func (h *ReportHandler) GenerateTransactionReport(c *fiber.Ctx) error {
	endDate := time.Now()
	startDate := endDate.AddDate(0, -1, 0)

	if s := c.Query("startDate"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid startDate, expected YYYY-MM-DD"})
		}
		startDate = parsed
	}
	if e := c.Query("endDate"); e != "" {
		parsed, err := time.Parse("2006-01-02", e)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid endDate, expected YYYY-MM-DD"})
		}
		endDate = parsed.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	}

	var payments []models.Payment
	err := database.DB.Preload("Member").
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Order("created_at ASC").
		Find(&payments).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	var b bytes.Buffer
	w := csv.NewWriter(&b)
	w.Write([]string{"Payment ID", "Date", "Member", "Member Number", "Amount", "Currency", "Method", "Status"})
	for _, p := range payments {
		w.Write([]string{
			p.ID.String(),
			p.CreatedAt.Format("2006-01-02 15:04:05"),
			p.Member.FirstName + " " + p.Member.LastName,
			p.Member.MemberNumber,
			strconv.FormatFloat(p.Amount, 'f', 2, 64),
			p.Currency,
			p.Method,
			p.Status,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate report"})
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", "attachment; filename=transactions_"+startDate.Format("2006-01-02")+"_"+endDate.Format("2006-01-02")+".csv")
	return c.Send(b.Bytes())
}

// GenerateClassReport exports the day's class roster with booking counts.
func (h *ReportHandler) GenerateClassReport(c *fiber.Ctx) error {
	filters := scheduling.ClassFilters{}
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
		}
		filters.Date = &date
	}

	var b bytes.Buffer
	w := csv.NewWriter(&b)
	w.Write([]string{"Class ID", "Title", "Type", "Start", "End", "Status", "Capacity", "Confirmed", "Waitlisted"})
	for _, cls := range h.Catalog.Query(filters) {
		w.Write([]string{
			cls.ID,
			cls.Title,
			cls.Type,
			cls.StartTime.Format(time.RFC3339),
			cls.EndTime.Format(time.RFC3339),
			string(cls.Status),
			strconv.Itoa(cls.Capacity),
			strconv.Itoa(h.Ledger.CountByClass(cls.ID, scheduling.BookingConfirmed)),
			strconv.Itoa(h.Ledger.CountByClass(cls.ID, scheduling.BookingWaitlisted)),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate report"})
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", "attachment; filename=classes.csv")
	return c.Send(b.Bytes())
}
