package models

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MemberID       uuid.UUID  `gorm:"not null" json:"member_id"`
	SubscriptionID *uuid.UUID `gorm:"unique" json:"subscription_id,omitempty"`
	Amount         float64    `gorm:"type:numeric(10,2);not null" json:"amount"`
	Currency       string     `gorm:"size:3;not null;default:'TRY'" json:"currency"`
	Method         string     `gorm:"size:20;not null" json:"method"`
	Status         string     `gorm:"size:20;not null;default:'SUCCEEDED'" json:"status"`
	Description    *string    `gorm:"type:text" json:"description,omitempty"`

	Member Member `gorm:"foreignkey:MemberID" json:"member,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
