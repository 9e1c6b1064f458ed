package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a studio staff account. Members are tracked separately; only
// staff authenticate against the API.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName   string    `gorm:"size:255;not null" json:"full_name"`
	Email      string    `gorm:"size:255;not null;unique" json:"email"`
	Phone      *string   `gorm:"size:20" json:"phone,omitempty"`
	Password   string    `gorm:"not null" json:"-"`
	Role       string    `gorm:"size:20;not null;default:'staff'" json:"role"`
	StudioName *string   `gorm:"size:255" json:"studio_name,omitempty"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
