package scheduling

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// BookingLedger owns all booking records and enforces the per-record state
// machine. It never consults class capacity; choosing between CONFIRMED and
// WAITLISTED at creation time is the BookingDesk's job.
type BookingLedger struct {
	mu       sync.RWMutex
	bookings map[string]*BookingRecord
	order    []string
	nextSeq  uint64

	now func() time.Time
}

func NewBookingLedger() *BookingLedger {
	return &BookingLedger{
		bookings: make(map[string]*BookingRecord),
		now:      time.Now,
	}
}

// CreateBooking registers a booking with a caller-supplied initial status.
// A member may hold at most one active booking per class; violating that
// fails with a conflict and leaves the ledger unchanged.
func (l *BookingLedger) CreateBooking(data BookingData) (BookingRecord, error) {
	if !data.Status.Active() {
		return BookingRecord{}, fmt.Errorf("%w: initial booking status must be PENDING, CONFIRMED or WAITLISTED", ErrValidation)
	}
	if data.ClassID == "" || data.MemberID == "" {
		return BookingRecord{}, fmt.Errorf("%w: class id and member id are required", ErrValidation)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, id := range l.order {
		b := l.bookings[id]
		if b.ClassID == data.ClassID && b.MemberID == data.MemberID && b.Status.Active() {
			return BookingRecord{}, fmt.Errorf("%w: member %s already has an active booking for class %s", ErrConflict, data.MemberID, data.ClassID)
		}
	}

	now := l.now()
	l.nextSeq++
	rec := &BookingRecord{
		ID:        uuid.New().String(),
		ClassID:   data.ClassID,
		MemberID:  data.MemberID,
		Status:    data.Status,
		BookedAt:  now,
		Notes:     data.Notes,
		UpdatedAt: now,
		seq:       l.nextSeq,
	}
	if data.Status == BookingWaitlisted {
		rec.WaitlistPosition = l.maxWaitlistPositionLocked(data.ClassID) + 1
	}
	l.bookings[rec.ID] = rec
	l.order = append(l.order, rec.ID)
	return *rec, nil
}

func (l *BookingLedger) maxWaitlistPositionLocked(classID string) int {
	max := 0
	for _, id := range l.order {
		b := l.bookings[id]
		if b.ClassID == classID && b.Status == BookingWaitlisted && b.WaitlistPosition > max {
			max = b.WaitlistPosition
		}
	}
	return max
}

func (l *BookingLedger) GetByID(id string) (BookingRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	b, ok := l.bookings[id]
	if !ok {
		return BookingRecord{}, fmt.Errorf("%w: booking %s", ErrNotFound, id)
	}
	return *b, nil
}

// ConfirmBooking moves a PENDING or WAITLISTED record to CONFIRMED.
func (l *BookingLedger) ConfirmBooking(id string) (BookingRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.bookings[id]
	if !ok {
		return BookingRecord{}, fmt.Errorf("%w: booking %s", ErrNotFound, id)
	}
	if b.Status != BookingPending && b.Status != BookingWaitlisted {
		return BookingRecord{}, fmt.Errorf("%w: cannot confirm a %s booking", ErrInvalidState, b.Status)
	}
	b.Status = BookingConfirmed
	b.WaitlistPosition = 0
	b.UpdatedAt = l.now()
	return *b, nil
}

// CancelBooking moves any active record to CANCELLED. Cancelling an already
// cancelled booking is a no-op that preserves the original timestamps.
func (l *BookingLedger) CancelBooking(id, reason string) (BookingRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.bookings[id]
	if !ok {
		return BookingRecord{}, fmt.Errorf("%w: booking %s", ErrNotFound, id)
	}
	if b.Status == BookingCancelled {
		return *b, nil
	}
	if b.Status.Terminal() {
		return BookingRecord{}, fmt.Errorf("%w: cannot cancel a %s booking", ErrInvalidState, b.Status)
	}

	now := l.now()
	b.Status = BookingCancelled
	b.WaitlistPosition = 0
	b.CancelledAt = &now
	if reason != "" {
		b.CancelReason = &reason
	}
	b.UpdatedAt = now
	return *b, nil
}

// MarkAttended records a check-in: CONFIRMED → ATTENDED.
func (l *BookingLedger) MarkAttended(id string) (BookingRecord, error) {
	return l.closeOut(id, BookingAttended)
}

// MarkNoShow records a missed class: CONFIRMED → NO_SHOW.
func (l *BookingLedger) MarkNoShow(id string) (BookingRecord, error) {
	return l.closeOut(id, BookingNoShow)
}

func (l *BookingLedger) closeOut(id string, to BookingStatus) (BookingRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.bookings[id]
	if !ok {
		return BookingRecord{}, fmt.Errorf("%w: booking %s", ErrNotFound, id)
	}
	if b.Status != BookingConfirmed {
		return BookingRecord{}, fmt.Errorf("%w: cannot mark a %s booking as %s", ErrInvalidState, b.Status, to)
	}
	b.Status = to
	b.UpdatedAt = l.now()
	return *b, nil
}

func (l *BookingLedger) collect(keep func(*BookingRecord) bool) []BookingRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]BookingRecord, 0)
	for _, id := range l.order {
		b := l.bookings[id]
		if keep(b) {
			out = append(out, *b)
		}
	}
	return out
}

func (l *BookingLedger) GetBookingsByClass(classID string) []BookingRecord {
	return l.collect(func(b *BookingRecord) bool { return b.ClassID == classID })
}

func (l *BookingLedger) GetBookingsByMember(memberID string) []BookingRecord {
	return l.collect(func(b *BookingRecord) bool { return b.MemberID == memberID })
}

// GetUpcomingBookings returns the member's PENDING and CONFIRMED records,
// ascending by booking time.
func (l *BookingLedger) GetUpcomingBookings(memberID string) []BookingRecord {
	out := l.collect(func(b *BookingRecord) bool {
		return b.MemberID == memberID && (b.Status == BookingPending || b.Status == BookingConfirmed)
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].BookedAt.Equal(out[j].BookedAt) {
			return out[i].seq < out[j].seq
		}
		return out[i].BookedAt.Before(out[j].BookedAt)
	})
	return out
}

// GetPastBookings returns the member's ATTENDED, NO_SHOW and CANCELLED
// records, descending by booking time.
func (l *BookingLedger) GetPastBookings(memberID string) []BookingRecord {
	out := l.collect(func(b *BookingRecord) bool {
		return b.MemberID == memberID && b.Status.Terminal()
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].BookedAt.Equal(out[j].BookedAt) {
			return out[i].seq > out[j].seq
		}
		return out[i].BookedAt.After(out[j].BookedAt)
	})
	return out
}

// GetWaitlistedBookings returns the class's waitlist in promotion order,
// ascending by position.
func (l *BookingLedger) GetWaitlistedBookings(classID string) []BookingRecord {
	out := l.collect(func(b *BookingRecord) bool {
		return b.ClassID == classID && b.Status == BookingWaitlisted
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WaitlistPosition < out[j].WaitlistPosition
	})
	return out
}

// CountByClass returns the number of bookings for a class in the given
// statuses. The desk uses it to reconcile the catalog's booking count.
func (l *BookingLedger) CountByClass(classID string, statuses ...BookingStatus) int {
	n := 0
	for _, b := range l.GetBookingsByClass(classID) {
		for _, s := range statuses {
			if b.Status == s {
				n++
				break
			}
		}
	}
	return n
}

// StaleConfirmed returns CONFIRMED bookings for the given class ids. The
// attendance job uses it to sweep records whose class already ended.
func (l *BookingLedger) StaleConfirmed(classIDs []string) []BookingRecord {
	wanted := make(map[string]struct{}, len(classIDs))
	for _, id := range classIDs {
		wanted[id] = struct{}{}
	}
	return l.collect(func(b *BookingRecord) bool {
		_, ok := wanted[b.ClassID]
		return ok && b.Status == BookingConfirmed
	})
}
