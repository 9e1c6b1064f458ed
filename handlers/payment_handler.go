package handlers

import (
	"time"

	"github.com/emrekoc/pilates_studio/database"
	"github.com/emrekoc/pilates_studio/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreatePaymentRequest struct {
	MemberID    string  `json:"member_id" validate:"required,uuid"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Method      string  `json:"method" validate:"required,oneof=CASH CARD BANK_TRANSFER"`
	Status      string  `json:"status,omitempty" validate:"omitempty,oneof=PENDING SUCCEEDED FAILED"`
	Description *string `json:"description,omitempty"`
}

// CreatePayment records a manual payment taken at the front desk.
func CreatePayment(c *fiber.Ctx) error {
	var req CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	memberID, _ := uuid.Parse(req.MemberID)
	status := req.Status
	if status == "" {
		status = "SUCCEEDED"
	}

	var payment models.Payment
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var member models.Member
		if err := tx.First(&member, "id = ?", memberID).Error; err != nil {
			return err
		}

		payment = models.Payment{
			MemberID:    memberID,
			Amount:      req.Amount,
			Currency:    "TRY",
			Method:      req.Method,
			Status:      status,
			Description: req.Description,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		if status == "SUCCEEDED" {
			member.TotalSpent += req.Amount
			return tx.Save(&member).Error
		}
		return nil
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Member not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record payment"})
	}

	return c.Status(fiber.StatusCreated).JSON(payment)
}

func ListPayments(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Payment{}).Preload("Member")

	if memberID := c.Query("memberId"); memberID != "" {
		query = query.Where("member_id = ?", memberID)
	}
	if startDate := c.Query("startDate"); startDate != "" {
		parsed, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid startDate, expected YYYY-MM-DD"})
		}
		query = query.Where("created_at >= ?", parsed)
	}
	if endDate := c.Query("endDate"); endDate != "" {
		parsed, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid endDate, expected YYYY-MM-DD"})
		}
		query = query.Where("created_at <= ?", parsed.Add(23*time.Hour+59*time.Minute+59*time.Second))
	}

	var payments []models.Payment
	if err := query.Order("created_at DESC").Find(&payments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	var total float64
	for _, p := range payments {
		if p.Status == "SUCCEEDED" {
			total += p.Amount
		}
	}

	return c.JSON(fiber.Map{"payments": payments, "total": total})
}

type PaymentSummaryResponse struct {
	Period         string           `json:"period"`
	TotalRevenue   float64          `json:"total_revenue"`
	TotalPayments  int64            `json:"total_payments"`
	AveragePayment float64          `json:"average_payment"`
	PaymentMethods map[string]int64 `json:"payment_methods"`
}

// GetPaymentSummary aggregates succeeded payments over a daily, weekly or
// monthly window ending now.
func GetPaymentSummary(c *fiber.Ctx) error {
	period := c.Query("period", "monthly")

	var since time.Time
	now := time.Now()
	switch period {
	case "daily":
		since = now.AddDate(0, 0, -1)
	case "weekly":
		since = now.AddDate(0, 0, -7)
	case "monthly":
		since = now.AddDate(0, -1, 0)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "period must be daily, weekly or monthly"})
	}

	base := database.DB.Model(&models.Payment{}).
		Where("status = ? AND created_at > ?", "SUCCEEDED", since)

	response := PaymentSummaryResponse{
		Period:         period,
		PaymentMethods: map[string]int64{},
	}

	if err := base.Session(&gorm.Session{}).Count(&response.TotalPayments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if err := base.Session(&gorm.Session{}).Select("COALESCE(SUM(amount), 0)").Row().Scan(&response.TotalRevenue); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if response.TotalPayments > 0 {
		response.AveragePayment = response.TotalRevenue / float64(response.TotalPayments)
	}

	rows, err := base.Session(&gorm.Session{}).
		Select("method, COUNT(*)").
		Group("method").
		Rows()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	defer rows.Close()
	for rows.Next() {
		var method string
		var count int64
		if err := rows.Scan(&method, &count); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
		}
		response.PaymentMethods[method] = count
	}

	return c.JSON(response)
}
