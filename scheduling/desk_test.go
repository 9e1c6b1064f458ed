package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory map[string]bool

func (d fakeDirectory) MemberExists(id string) (bool, error)  { return d[id], nil }
func (d fakeDirectory) TrainerExists(id string) (bool, error) { return d[id], nil }

func newTestDesk(t *testing.T) (*BookingDesk, *ClassCatalog, *BookingLedger) {
	t.Helper()
	catalog := NewClassCatalog()
	ledger := NewBookingLedger()
	dir := fakeDirectory{"m1": true, "m2": true, "m3": true, "trainer-1": true}
	return NewBookingDesk(catalog, ledger, dir, dir), catalog, ledger
}

func openTestClass(t *testing.T, desk *BookingDesk, capacity int) ClassInstance {
	t.Helper()
	start := time.Now().Add(24 * time.Hour)
	cls, err := desk.OpenClass(ClassData{
		Title:     "Reformer Basics",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		TrainerID: "trainer-1",
		Capacity:  capacity,
		Type:      ClassTypeReformer,
	})
	require.NoError(t, err)
	return cls
}

func TestBookingDesk_OpenClass_UnknownTrainer(t *testing.T) {
	desk, _, _ := newTestDesk(t)
	start := time.Now().Add(time.Hour)

	_, err := desk.OpenClass(ClassData{
		Title:     "x",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		TrainerID: "trainer-99",
		Capacity:  5,
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestBookingDesk_BookClass_CapacityDecidesStatus(t *testing.T) {
	desk, catalog, _ := newTestDesk(t)
	cls := openTestClass(t, desk, 1)

	a, err := desk.BookClass(cls.ID, "m1", "")
	require.NoError(t, err)
	assert.Equal(t, BookingConfirmed, a.Status)

	b, err := desk.BookClass(cls.ID, "m2", "")
	require.NoError(t, err)
	assert.Equal(t, BookingWaitlisted, b.Status)
	assert.Equal(t, 1, b.WaitlistPosition)

	got, err := catalog.GetByID(cls.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.BookingCount, "waitlisted bookings are not counted")
}

func TestBookingDesk_BookClass_UnknownMember(t *testing.T) {
	desk, _, _ := newTestDesk(t)
	cls := openTestClass(t, desk, 5)

	_, err := desk.BookClass(cls.ID, "m99", "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestBookingDesk_BookClass_ClassNotOpen(t *testing.T) {
	desk, _, _ := newTestDesk(t)
	cls := openTestClass(t, desk, 5)

	_, err := desk.CancelClass(cls.ID, "trainer sick")
	require.NoError(t, err)

	_, err = desk.BookClass(cls.ID, "m1", "")
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestBookingDesk_CancelAndPromote(t *testing.T) {
	desk, catalog, ledger := newTestDesk(t)
	cls := openTestClass(t, desk, 1)

	a, err := desk.BookClass(cls.ID, "m1", "")
	require.NoError(t, err)
	b, err := desk.BookClass(cls.ID, "m2", "")
	require.NoError(t, err)

	cancelled, next, err := desk.CancelBooking(a.ID, "schedule clash")
	require.NoError(t, err)
	assert.Equal(t, BookingCancelled, cancelled.Status)
	require.NotNil(t, next, "cancelling a confirmed booking surfaces the waitlist head")
	assert.Equal(t, b.ID, next.ID)

	got, err := catalog.GetByID(cls.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.BookingCount)

	promoted, err := desk.PromoteBooking(b.ID)
	require.NoError(t, err)
	assert.Equal(t, BookingConfirmed, promoted.Status)

	got, err = catalog.GetByID(cls.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.BookingCount)

	byClass := ledger.GetBookingsByClass(cls.ID)
	require.Len(t, byClass, 2)
	statuses := map[string]BookingStatus{}
	for _, rec := range byClass {
		statuses[rec.ID] = rec.Status
	}
	assert.Equal(t, BookingCancelled, statuses[a.ID])
	assert.Equal(t, BookingConfirmed, statuses[b.ID])
}

func TestBookingDesk_PromoteIntoFullClass(t *testing.T) {
	desk, _, _ := newTestDesk(t)
	cls := openTestClass(t, desk, 1)

	_, err := desk.BookClass(cls.ID, "m1", "")
	require.NoError(t, err)
	b, err := desk.BookClass(cls.ID, "m2", "")
	require.NoError(t, err)

	_, err = desk.PromoteBooking(b.ID)
	require.ErrorIs(t, err, ErrConflict)
}

func TestBookingDesk_CheckInAndNoShow(t *testing.T) {
	desk, catalog, ledger := newTestDesk(t)
	cls := openTestClass(t, desk, 3)

	a, err := desk.BookClass(cls.ID, "m1", "")
	require.NoError(t, err)
	b, err := desk.BookClass(cls.ID, "m2", "")
	require.NoError(t, err)

	attended, err := desk.CheckIn(a.ID)
	require.NoError(t, err)
	assert.Equal(t, BookingAttended, attended.Status)

	missed, err := desk.MarkNoShow(b.ID)
	require.NoError(t, err)
	assert.Equal(t, BookingNoShow, missed.Status)

	got, err := catalog.GetByID(cls.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.BookingCount, "attended stays counted, no-show is released")
	assert.Equal(t, ledger.CountByClass(cls.ID, BookingConfirmed, BookingAttended), got.BookingCount,
		"booking count must match the ledger")
}

func TestBookingDesk_CancelClass_Cascades(t *testing.T) {
	desk, catalog, ledger := newTestDesk(t)
	cls := openTestClass(t, desk, 2)

	a, err := desk.BookClass(cls.ID, "m1", "")
	require.NoError(t, err)
	_, err = desk.CheckIn(a.ID)
	require.NoError(t, err)

	_, err = desk.BookClass(cls.ID, "m2", "")
	require.NoError(t, err)
	_, err = desk.BookClass(cls.ID, "m3", "")
	require.NoError(t, err)

	cancelled, err := desk.CancelClass(cls.ID, "studio closed")
	require.NoError(t, err)
	assert.Equal(t, 2, cancelled, "only the active bookings are cancelled")

	got, err := catalog.GetByID(cls.ID)
	require.NoError(t, err)
	assert.Equal(t, ClassCancelled, got.Status)
	assert.Equal(t, 1, got.BookingCount, "the attended record keeps its spot")

	for _, rec := range ledger.GetBookingsByClass(cls.ID) {
		if rec.ID == a.ID {
			assert.Equal(t, BookingAttended, rec.Status)
		} else {
			assert.Equal(t, BookingCancelled, rec.Status)
		}
	}
}
