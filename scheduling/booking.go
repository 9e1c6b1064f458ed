package scheduling

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "PENDING"
	BookingConfirmed  BookingStatus = "CONFIRMED"
	BookingWaitlisted BookingStatus = "WAITLISTED"
	BookingCancelled  BookingStatus = "CANCELLED"
	BookingNoShow     BookingStatus = "NO_SHOW"
	BookingAttended   BookingStatus = "ATTENDED"
)

// Active reports whether the status is non-terminal. At most one active
// booking may exist per (member, class) pair.
func (s BookingStatus) Active() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingWaitlisted:
		return true
	}
	return false
}

// Terminal reports whether the status permits no further transitions.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingCancelled, BookingNoShow, BookingAttended:
		return true
	}
	return false
}

// BookingRecord ties a member to a class instance. WaitlistPosition is set
// only while the record is WAITLISTED and defines FIFO promotion order.
type BookingRecord struct {
	ID               string        `json:"id"`
	ClassID          string        `json:"class_id"`
	MemberID         string        `json:"member_id"`
	Status           BookingStatus `json:"status"`
	BookedAt         time.Time     `json:"booked_at"`
	WaitlistPosition int           `json:"waitlist_position,omitempty"`
	CancelledAt      *time.Time    `json:"cancelled_at,omitempty"`
	CancelReason     *string       `json:"cancel_reason,omitempty"`
	Notes            string        `json:"notes,omitempty"`
	UpdatedAt        time.Time     `json:"updated_at"`

	seq uint64 // insertion order, tie-break for equal BookedAt
}

// BookingData carries the caller-supplied fields for CreateBooking. Status
// must be one of the active statuses; the capacity decision between
// CONFIRMED and WAITLISTED belongs to the BookingDesk, not the ledger.
type BookingData struct {
	ClassID  string
	MemberID string
	Status   BookingStatus
	Notes    string
}
