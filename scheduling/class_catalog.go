package scheduling

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ClassCatalog owns the authoritative set of class instances. The mutex
// keeps mutations single writer under concurrent HTTP handlers. All
// accessors return copies so callers can never alias owned state.
type ClassCatalog struct {
	mu      sync.RWMutex
	classes map[string]*ClassInstance
	order   []string

	now func() time.Time
}

func NewClassCatalog() *ClassCatalog {
	return &ClassCatalog{
		classes: make(map[string]*ClassInstance),
		now:     time.Now,
	}
}

func validateClassTimes(start, end time.Time) error {
	if !start.Before(end) {
		return fmt.Errorf("%w: start time must be before end time", ErrValidation)
	}
	return nil
}

// Create registers a new class instance. Status is forced to SCHEDULED and
// the booking count to zero regardless of input.
func (c *ClassCatalog) Create(data ClassData) (ClassInstance, error) {
	if data.Capacity < 1 {
		return ClassInstance{}, fmt.Errorf("%w: capacity must be at least 1", ErrValidation)
	}
	if err := validateClassTimes(data.StartTime, data.EndTime); err != nil {
		return ClassInstance{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	cls := &ClassInstance{
		ID:           uuid.New().String(),
		Title:        data.Title,
		Description:  data.Description,
		StartTime:    data.StartTime,
		EndTime:      data.EndTime,
		TrainerID:    data.TrainerID,
		Capacity:     data.Capacity,
		BookingCount: 0,
		Status:       ClassScheduled,
		Level:        data.Level,
		Type:         data.Type,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	c.classes[cls.ID] = cls
	c.order = append(c.order, cls.ID)
	return *cls, nil
}

func (c *ClassCatalog) GetByID(id string) (ClassInstance, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cls, ok := c.classes[id]
	if !ok {
		return ClassInstance{}, fmt.Errorf("%w: class %s", ErrNotFound, id)
	}
	return *cls, nil
}

// Update merges non-nil patch fields into the class. Validation runs against
// the merged record before anything is applied, so a failed update leaves
// the class unchanged.
func (c *ClassCatalog) Update(id string, patch ClassPatch) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cls, ok := c.classes[id]
	if !ok {
		return fmt.Errorf("%w: class %s", ErrNotFound, id)
	}

	start, end := cls.StartTime, cls.EndTime
	if patch.StartTime != nil {
		start = *patch.StartTime
	}
	if patch.EndTime != nil {
		end = *patch.EndTime
	}
	if patch.StartTime != nil || patch.EndTime != nil {
		if err := validateClassTimes(start, end); err != nil {
			return err
		}
	}
	if patch.Capacity != nil && *patch.Capacity < 1 {
		return fmt.Errorf("%w: capacity must be at least 1", ErrValidation)
	}

	if patch.Title != nil {
		cls.Title = *patch.Title
	}
	if patch.Description != nil {
		cls.Description = *patch.Description
	}
	if patch.TrainerID != nil {
		cls.TrainerID = *patch.TrainerID
	}
	if patch.Capacity != nil {
		cls.Capacity = *patch.Capacity
	}
	cls.StartTime = start
	cls.EndTime = end
	cls.UpdatedAt = c.now()
	return nil
}

// Cancel transitions the class to CANCELLED. Cancelling an already cancelled
// class is a no-op; a completed class cannot be cancelled.
func (c *ClassCatalog) Cancel(id, reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cls, ok := c.classes[id]
	if !ok {
		return fmt.Errorf("%w: class %s", ErrNotFound, id)
	}
	switch cls.Status {
	case ClassCancelled:
		return nil
	case ClassCompleted:
		return fmt.Errorf("%w: completed class cannot be cancelled", ErrInvalidState)
	}

	now := c.now()
	cls.Status = ClassCancelled
	cls.CancelReason = &reason
	cls.CancelledAt = &now
	cls.UpdatedAt = now
	return nil
}

// Complete transitions a SCHEDULED class to COMPLETED.
func (c *ClassCatalog) Complete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cls, ok := c.classes[id]
	if !ok {
		return fmt.Errorf("%w: class %s", ErrNotFound, id)
	}
	if cls.Status != ClassScheduled {
		return fmt.Errorf("%w: only scheduled classes can be completed", ErrInvalidState)
	}
	cls.Status = ClassCompleted
	cls.UpdatedAt = c.now()
	return nil
}

// AdjustBookingCount maintains the denormalized confirmed/attended count.
// The BookingDesk is the only caller.
func (c *ClassCatalog) AdjustBookingCount(id string, delta int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cls, ok := c.classes[id]
	if !ok {
		return fmt.Errorf("%w: class %s", ErrNotFound, id)
	}
	next := cls.BookingCount + delta
	if next < 0 {
		return fmt.Errorf("%w: booking count for class %s would become negative", ErrInvalidState, id)
	}
	cls.BookingCount = next
	cls.UpdatedAt = c.now()
	return nil
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.In(a.Location()).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Query returns all classes matching the filters in insertion order, which
// is stable across repeated calls against unchanged state.
func (c *ClassCatalog) Query(f ClassFilters) []ClassInstance {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]ClassInstance, 0, len(c.order))
	for _, id := range c.order {
		cls := c.classes[id]
		if f.Date != nil && !sameDay(*f.Date, cls.StartTime) {
			continue
		}
		if f.TrainerID != "" && cls.TrainerID != f.TrainerID {
			continue
		}
		if f.Type != "" && cls.Type != f.Type {
			continue
		}
		if f.Status != "" && cls.Status != f.Status {
			continue
		}
		if f.Level != "" && cls.Level != f.Level {
			continue
		}
		out = append(out, *cls)
	}
	return out
}

// TodayClasses returns classes whose start time falls on the current
// calendar day, in insertion order.
func (c *ClassCatalog) TodayClasses() []ClassInstance {
	today := c.now()
	return c.Query(ClassFilters{Date: &today})
}

// UpcomingClasses returns SCHEDULED classes starting after now, ascending
// by start time.
func (c *ClassCatalog) UpcomingClasses() []ClassInstance {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	out := make([]ClassInstance, 0)
	for _, id := range c.order {
		cls := c.classes[id]
		if cls.Status == ClassScheduled && cls.StartTime.After(now) {
			out = append(out, *cls)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

// EndedClasses returns SCHEDULED classes whose end time passed more than
// grace ago. The attendance job uses it to close out the day.
func (c *ClassCatalog) EndedClasses(grace time.Duration) []ClassInstance {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cutoff := c.now().Add(-grace)
	out := make([]ClassInstance, 0)
	for _, id := range c.order {
		cls := c.classes[id]
		if cls.Status == ClassScheduled && cls.EndTime.Before(cutoff) {
			out = append(out, *cls)
		}
	}
	return out
}
