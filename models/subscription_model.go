package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription is a purchased session package granting a member a number of
// class credits within a date window.
type Subscription struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MemberID         uuid.UUID  `gorm:"not null" json:"member_id"`
	PackageName      string     `gorm:"size:100;not null" json:"package_name"`
	Status           string     `gorm:"size:20;not null;default:'ACTIVE'" json:"status"`
	StartDate        time.Time  `gorm:"not null" json:"start_date"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	CreditsTotal     int        `gorm:"not null" json:"credits_total"`
	CreditsRemaining int        `gorm:"not null" json:"credits_remaining"`
	AutoRenew        bool       `gorm:"default:false" json:"auto_renew"`
	PurchasePrice    float64    `gorm:"type:numeric(10,2);not null" json:"purchase_price"`
	Currency         string     `gorm:"size:3;not null;default:'TRY'" json:"currency"`

	Member Member `gorm:"foreignkey:MemberID" json:"member,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
