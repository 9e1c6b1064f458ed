package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/emrekoc/pilates_studio/database"
	"github.com/emrekoc/pilates_studio/models"
	"github.com/emrekoc/pilates_studio/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateMemberRequest struct {
	FirstName      string  `json:"first_name" validate:"required,min=2"`
	LastName       string  `json:"last_name" validate:"required,min=2"`
	Email          string  `json:"email" validate:"required,email"`
	Phone          string  `json:"phone" validate:"required,e164"`
	MembershipType string  `json:"membership_type" validate:"required,oneof=GRUP ÖZEL REFORMER"`
	PackageName    string  `json:"package_name,omitempty"`
	PhotoURL       *string `json:"photo_url,omitempty"`
}

func CreateMember(c *fiber.Ctx) error {
	var req CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var member models.Member
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		memberNumber, err := utils.GenerateUniqueMemberNumber(tx)
		if err != nil {
			return err
		}

		now := time.Now()
		member = models.Member{
			MemberNumber:   memberNumber,
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			Email:          req.Email,
			Phone:          req.Phone,
			PhotoURL:       req.PhotoURL,
			MembershipType: req.MembershipType,
			PackageName:    req.PackageName,
			StartDate:      &now,
			Status:         "active",
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A member with this email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create member"})
	}

	return c.Status(fiber.StatusCreated).JSON(member)
}

func ListMembers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := database.DB.Model(&models.Member{})
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR member_number ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if membershipType := c.Query("membershipType"); membershipType != "" {
		query = query.Where("membership_type = ?", membershipType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	var members []models.Member
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&members).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(fiber.Map{
		"members": members,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

func GetMember(c *fiber.Ctx) error {
	var member models.Member
	if err := database.DB.First(&member, "id = ?", c.Params("memberId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Member not found"})
	}

	var subscriptions []models.Subscription
	database.DB.Where("member_id = ?", member.ID).Order("created_at DESC").Find(&subscriptions)

	var payments []models.Payment
	database.DB.Where("member_id = ?", member.ID).Order("created_at DESC").Limit(10).Find(&payments)

	return c.JSON(fiber.Map{
		"member":        member,
		"subscriptions": subscriptions,
		"payments":      payments,
	})
}

type UpdateMemberRequest struct {
	FirstName      *string `json:"first_name,omitempty" validate:"omitempty,min=2"`
	LastName       *string `json:"last_name,omitempty" validate:"omitempty,min=2"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string `json:"phone,omitempty" validate:"omitempty,e164"`
	MembershipType *string `json:"membership_type,omitempty" validate:"omitempty,oneof=GRUP ÖZEL REFORMER"`
	PackageName    *string `json:"package_name,omitempty"`
	PhotoURL       *string `json:"photo_url,omitempty"`
}

func UpdateMember(c *fiber.Ctx) error {
	var req UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var member models.Member
	if err := database.DB.First(&member, "id = ?", c.Params("memberId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Member not found"})
	}

	if req.FirstName != nil {
		member.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		member.LastName = *req.LastName
	}
	if req.Email != nil {
		member.Email = *req.Email
	}
	if req.Phone != nil {
		member.Phone = *req.Phone
	}
	if req.MembershipType != nil {
		member.MembershipType = *req.MembershipType
	}
	if req.PackageName != nil {
		member.PackageName = *req.PackageName
	}
	if req.PhotoURL != nil {
		member.PhotoURL = req.PhotoURL
	}

	if err := database.DB.Save(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A member with this email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update member"})
	}

	return c.JSON(member)
}

type MemberStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active expired frozen"`
}

func SetMemberStatus(c *fiber.Ctx) error {
	var req MemberStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var member models.Member
	if err := database.DB.First(&member, "id = ?", c.Params("memberId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Member not found"})
	}

	member.Status = req.Status
	if err := database.DB.Save(&member).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update member status"})
	}

	return c.JSON(fiber.Map{"message": "Member status updated successfully", "member": member})
}

type CreateSubscriptionRequest struct {
	PackageName   string  `json:"package_name" validate:"required"`
	Credits       int     `json:"credits" validate:"required,min=1"`
	DurationDays  int     `json:"duration_days" validate:"required,min=1"`
	PurchasePrice float64 `json:"purchase_price" validate:"required,gt=0"`
	Method        string  `json:"method" validate:"required,oneof=CASH CARD BANK_TRANSFER"`
	AutoRenew     bool    `json:"auto_renew"`
}

// CreateSubscription sells a session package: the subscription, its payment
// and the member's credit balance are written in one transaction.
func CreateSubscription(c *fiber.Ctx) error {
	var req CreateSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var member models.Member
	if err := database.DB.First(&member, "id = ?", c.Params("memberId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Member not found"})
	}

	var subscription models.Subscription
	var payment models.Payment
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		endDate := now.AddDate(0, 0, req.DurationDays)
		subscription = models.Subscription{
			MemberID:         member.ID,
			PackageName:      req.PackageName,
			Status:           "ACTIVE",
			StartDate:        now,
			EndDate:          &endDate,
			CreditsTotal:     req.Credits,
			CreditsRemaining: req.Credits,
			AutoRenew:        req.AutoRenew,
			PurchasePrice:    req.PurchasePrice,
			Currency:         "TRY",
		}
		if err := tx.Create(&subscription).Error; err != nil {
			return err
		}

		payment = models.Payment{
			MemberID:       member.ID,
			SubscriptionID: &subscription.ID,
			Amount:         req.PurchasePrice,
			Currency:       "TRY",
			Method:         req.Method,
			Status:         "SUCCEEDED",
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		member.PackageName = req.PackageName
		member.RemainingCredits += req.Credits
		member.TotalCredits += req.Credits
		member.TotalSpent += req.PurchasePrice
		member.EndDate = &endDate
		return tx.Save(&member).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create subscription"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"subscription": subscription,
		"payment":      payment,
	})
}

func ListSubscriptions(c *fiber.Ctx) error {
	var subscriptions []models.Subscription
	err := database.DB.
		Where("member_id = ?", c.Params("memberId")).
		Order("created_at DESC").
		Find(&subscriptions).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"subscriptions": subscriptions})
}
