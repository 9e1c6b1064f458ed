package models

import (
	"time"

	"github.com/google/uuid"
)

type Member struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MemberNumber string    `gorm:"size:10;unique;not null" json:"member_number"`
	FirstName    string    `gorm:"size:100;not null" json:"first_name"`
	LastName     string    `gorm:"size:100;not null" json:"last_name"`
	Email        string    `gorm:"size:255;not null;unique" json:"email"`
	Phone        string    `gorm:"size:20;not null" json:"phone"`
	PhotoURL     *string   `gorm:"size:255" json:"photo_url,omitempty"`

	MembershipType   string     `gorm:"size:20;not null" json:"membership_type"`
	PackageName      string     `gorm:"size:100" json:"package_name"`
	RemainingCredits int        `gorm:"not null;default:0" json:"remaining_credits"`
	TotalCredits     int        `gorm:"not null;default:0" json:"total_credits"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	Status           string     `gorm:"size:20;not null;default:'active'" json:"status"`

	TotalSpent float64 `gorm:"type:numeric(10,2);default:0.00" json:"total_spent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
