package scheduling

import (
	"fmt"
	"sync"
)

// MemberDirectory resolves member ids against the studio's member roster.
type MemberDirectory interface {
	MemberExists(id string) (bool, error)
}

// TrainerDirectory resolves trainer ids.
type TrainerDirectory interface {
	TrainerExists(id string) (bool, error)
}

// BookingDesk coordinates the catalog and the ledger: it performs the
// capacity check that decides between CONFIRMED and WAITLISTED, keeps the
// class booking count in step with the ledger, and cascades class
// cancellations. Its mutex serializes multi-container operations so the
// count can never drift from the ledger between steps.
type BookingDesk struct {
	mu       sync.Mutex
	catalog  *ClassCatalog
	ledger   *BookingLedger
	members  MemberDirectory
	trainers TrainerDirectory
}

func NewBookingDesk(catalog *ClassCatalog, ledger *BookingLedger, members MemberDirectory, trainers TrainerDirectory) *BookingDesk {
	if catalog == nil || ledger == nil {
		panic("nil container passed to NewBookingDesk")
	}
	return &BookingDesk{catalog: catalog, ledger: ledger, members: members, trainers: trainers}
}

// OpenClass validates the trainer reference and creates the class.
func (d *BookingDesk) OpenClass(data ClassData) (ClassInstance, error) {
	if d.trainers != nil && data.TrainerID != "" {
		ok, err := d.trainers.TrainerExists(data.TrainerID)
		if err != nil {
			return ClassInstance{}, fmt.Errorf("trainer lookup: %w", err)
		}
		if !ok {
			return ClassInstance{}, fmt.Errorf("%w: unknown trainer %s", ErrValidation, data.TrainerID)
		}
	}
	return d.catalog.Create(data)
}

// BookClass books a member into a class. The booking is CONFIRMED while
// capacity remains and WAITLISTED afterwards.
func (d *BookingDesk) BookClass(classID, memberID, notes string) (BookingRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cls, err := d.catalog.GetByID(classID)
	if err != nil {
		return BookingRecord{}, err
	}
	if cls.Status != ClassScheduled {
		return BookingRecord{}, fmt.Errorf("%w: class %s is not open for booking", ErrInvalidState, classID)
	}
	if d.members != nil {
		ok, err := d.members.MemberExists(memberID)
		if err != nil {
			return BookingRecord{}, fmt.Errorf("member lookup: %w", err)
		}
		if !ok {
			return BookingRecord{}, fmt.Errorf("%w: unknown member %s", ErrValidation, memberID)
		}
	}

	status := BookingConfirmed
	if cls.BookingCount >= cls.Capacity {
		status = BookingWaitlisted
	}

	rec, err := d.ledger.CreateBooking(BookingData{
		ClassID:  classID,
		MemberID: memberID,
		Status:   status,
		Notes:    notes,
	})
	if err != nil {
		return BookingRecord{}, err
	}
	if status == BookingConfirmed {
		if err := d.catalog.AdjustBookingCount(classID, 1); err != nil {
			return BookingRecord{}, err
		}
	}
	return rec, nil
}

// CancelBooking cancels a booking and returns the head of the class
// waitlist, if any, so staff can decide whether to promote it.
func (d *BookingDesk) CancelBooking(id, reason string) (BookingRecord, *BookingRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	before, err := d.ledger.GetByID(id)
	if err != nil {
		return BookingRecord{}, nil, err
	}
	cancelled, err := d.ledger.CancelBooking(id, reason)
	if err != nil {
		return BookingRecord{}, nil, err
	}
	if before.Status != BookingConfirmed {
		return cancelled, nil, nil
	}

	if err := d.catalog.AdjustBookingCount(before.ClassID, -1); err != nil {
		return BookingRecord{}, nil, err
	}
	waitlist := d.ledger.GetWaitlistedBookings(before.ClassID)
	if len(waitlist) == 0 {
		return cancelled, nil, nil
	}
	next := waitlist[0]
	return cancelled, &next, nil
}

// PromoteBooking confirms a waitlisted or pending booking after re-checking
// capacity.
func (d *BookingDesk) PromoteBooking(id string) (BookingRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	rec, err := d.ledger.GetByID(id)
	if err != nil {
		return BookingRecord{}, err
	}
	cls, err := d.catalog.GetByID(rec.ClassID)
	if err != nil {
		return BookingRecord{}, err
	}
	if cls.Status != ClassScheduled {
		return BookingRecord{}, fmt.Errorf("%w: class %s is not open for booking", ErrInvalidState, rec.ClassID)
	}
	if cls.BookingCount >= cls.Capacity {
		return BookingRecord{}, fmt.Errorf("%w: class %s is full", ErrConflict, rec.ClassID)
	}

	confirmed, err := d.ledger.ConfirmBooking(id)
	if err != nil {
		return BookingRecord{}, err
	}
	if err := d.catalog.AdjustBookingCount(rec.ClassID, 1); err != nil {
		return BookingRecord{}, err
	}
	return confirmed, nil
}

// CheckIn marks a confirmed booking as attended. The record stays in the
// counted population, so the booking count is untouched.
func (d *BookingDesk) CheckIn(id string) (BookingRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ledger.MarkAttended(id)
}

// MarkNoShow marks a confirmed booking as missed and releases its spot.
func (d *BookingDesk) MarkNoShow(id string) (BookingRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	rec, err := d.ledger.MarkNoShow(id)
	if err != nil {
		return BookingRecord{}, err
	}
	if err := d.catalog.AdjustBookingCount(rec.ClassID, -1); err != nil {
		return BookingRecord{}, err
	}
	return rec, nil
}

// CancelClass cancels the class and every non-terminal booking on it,
// returning how many bookings were cancelled.
func (d *BookingDesk) CancelClass(classID, reason string) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.catalog.Cancel(classID, reason); err != nil {
		return 0, err
	}

	cancelled := 0
	for _, b := range d.ledger.GetBookingsByClass(classID) {
		if !b.Status.Active() {
			continue
		}
		wasConfirmed := b.Status == BookingConfirmed
		if _, err := d.ledger.CancelBooking(b.ID, reason); err != nil {
			return cancelled, err
		}
		if wasConfirmed {
			if err := d.catalog.AdjustBookingCount(classID, -1); err != nil {
				return cancelled, err
			}
		}
		cancelled++
	}
	return cancelled, nil
}
