package scheduling

import "time"

type ClassStatus string

const (
	ClassScheduled ClassStatus = "SCHEDULED"
	ClassCancelled ClassStatus = "CANCELLED"
	ClassCompleted ClassStatus = "COMPLETED"
)

const (
	LevelBeginner     = "BEGINNER"
	LevelIntermediate = "INTERMEDIATE"
	LevelAdvanced     = "ADVANCED"
	LevelAll          = "ALL_LEVELS"
)

const (
	ClassTypeGroup    = "GRUP"
	ClassTypePrivate  = "ÖZEL"
	ClassTypeReformer = "REFORMER"
)

// ClassInstance is one scheduled occurrence of a class. BookingCount is a
// denormalized count of CONFIRMED and ATTENDED bookings, maintained by the
// BookingDesk; the catalog itself only guarantees it starts at zero.
type ClassInstance struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description,omitempty"`
	StartTime    time.Time   `json:"start_time"`
	EndTime      time.Time   `json:"end_time"`
	TrainerID    string      `json:"trainer_id"`
	Capacity     int         `json:"capacity"`
	BookingCount int         `json:"booking_count"`
	Status       ClassStatus `json:"status"`
	Level        string      `json:"level,omitempty"`
	Type         string      `json:"type"`
	CancelReason *string     `json:"cancel_reason,omitempty"`
	CancelledAt  *time.Time  `json:"cancelled_at,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// ClassData carries the caller-supplied fields for Create.
type ClassData struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	TrainerID   string
	Capacity    int
	Level       string
	Type        string
}

// ClassPatch is a partial update. Nil fields are left untouched. Level and
// type are fixed at creation and deliberately absent here.
type ClassPatch struct {
	Title       *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	TrainerID   *string
	Capacity    *int
}

// ClassFilters compose conjunctively; zero values mean "no filter".
// Date matches the calendar day of StartTime in the date's location.
type ClassFilters struct {
	Date      *time.Time
	TrainerID string
	Type      string
	Status    ClassStatus
	Level     string
}
