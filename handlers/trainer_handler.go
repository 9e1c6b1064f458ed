package handlers

import (
	"errors"

	"github.com/emrekoc/pilates_studio/database"
	"github.com/emrekoc/pilates_studio/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TrainerRequest struct {
	FirstName   string  `json:"first_name" validate:"required,min=2"`
	LastName    string  `json:"last_name" validate:"required,min=2"`
	Email       string  `json:"email" validate:"required,email"`
	Phone       string  `json:"phone,omitempty"`
	Specialties string  `json:"specialties,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	HourlyRate  float64 `json:"hourly_rate" validate:"gte=0"`
}

func CreateTrainer(c *fiber.Ctx) error {
	var req TrainerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	trainer := models.Trainer{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Specialties: req.Specialties,
		Bio:         req.Bio,
		HourlyRate:  req.HourlyRate,
		IsActive:    true,
	}
	if err := database.DB.Create(&trainer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A trainer with this email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create trainer"})
	}

	return c.Status(fiber.StatusCreated).JSON(trainer)
}

func ListTrainers(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Trainer{})
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var trainers []models.Trainer
	if err := query.Order("first_name ASC").Find(&trainers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"trainers": trainers})
}

func GetTrainer(c *fiber.Ctx) error {
	var trainer models.Trainer
	if err := database.DB.First(&trainer, "id = ?", c.Params("trainerId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Trainer not found"})
	}
	return c.JSON(trainer)
}

type UpdateTrainerRequest struct {
	FirstName   *string  `json:"first_name,omitempty" validate:"omitempty,min=2"`
	LastName    *string  `json:"last_name,omitempty" validate:"omitempty,min=2"`
	Phone       *string  `json:"phone,omitempty"`
	Specialties *string  `json:"specialties,omitempty"`
	Bio         *string  `json:"bio,omitempty"`
	HourlyRate  *float64 `json:"hourly_rate,omitempty" validate:"omitempty,gte=0"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

func UpdateTrainer(c *fiber.Ctx) error {
	var req UpdateTrainerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var trainer models.Trainer
	if err := database.DB.First(&trainer, "id = ?", c.Params("trainerId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Trainer not found"})
	}

	if req.FirstName != nil {
		trainer.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		trainer.LastName = *req.LastName
	}
	if req.Phone != nil {
		trainer.Phone = *req.Phone
	}
	if req.Specialties != nil {
		trainer.Specialties = *req.Specialties
	}
	if req.Bio != nil {
		trainer.Bio = req.Bio
	}
	if req.HourlyRate != nil {
		trainer.HourlyRate = *req.HourlyRate
	}
	if req.IsActive != nil {
		trainer.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&trainer).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update trainer"})
	}

	return c.JSON(trainer)
}
