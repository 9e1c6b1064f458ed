package models

import (
	"time"

	"github.com/google/uuid"
)

type Trainer struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FirstName   string    `gorm:"size:100;not null" json:"first_name"`
	LastName    string    `gorm:"size:100;not null" json:"last_name"`
	Email       string    `gorm:"size:255;not null;unique" json:"email"`
	Phone       string    `gorm:"size:20" json:"phone"`
	PhotoURL    *string   `gorm:"size:255" json:"photo_url,omitempty"`
	Specialties string    `gorm:"size:255" json:"specialties"`
	Bio         *string   `gorm:"type:text" json:"bio,omitempty"`
	HourlyRate  float64   `gorm:"type:numeric(10,2);default:0.00" json:"hourly_rate"`
	Rating      float32   `gorm:"default:0" json:"rating"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
