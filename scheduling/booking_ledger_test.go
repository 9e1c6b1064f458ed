package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingLedger_CreateBooking(t *testing.T) {
	ledger := NewBookingLedger()

	rec, err := ledger.CreateBooking(BookingData{ClassID: "c1", MemberID: "m1", Status: BookingConfirmed})
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, BookingConfirmed, rec.Status)
	assert.False(t, rec.BookedAt.IsZero())
	assert.Zero(t, rec.WaitlistPosition)
}

func TestBookingLedger_CreateBooking_BadStatus(t *testing.T) {
	ledger := NewBookingLedger()

	for _, status := range []BookingStatus{BookingCancelled, BookingAttended, BookingNoShow, ""} {
		_, err := ledger.CreateBooking(BookingData{ClassID: "c1", MemberID: "m1", Status: status})
		require.ErrorIs(t, err, ErrValidation, "status %q must be rejected", status)
	}
	assert.Empty(t, ledger.GetBookingsByClass("c1"))
}

func TestBookingLedger_DuplicateActiveBooking(t *testing.T) {
	ledger := NewBookingLedger()

	first, err := ledger.CreateBooking(BookingData{ClassID: "c1", MemberID: "m1", Status: BookingConfirmed})
	require.NoError(t, err)

	_, err = ledger.CreateBooking(BookingData{ClassID: "c1", MemberID: "m1", Status: BookingWaitlisted})
	require.ErrorIs(t, err, ErrConflict)

	// Same member, different class is fine.
	_, err = ledger.CreateBooking(BookingData{ClassID: "c2", MemberID: "m1", Status: BookingConfirmed})
	require.NoError(t, err)

	// Once the first booking is cancelled a new one may be created.
	_, err = ledger.CancelBooking(first.ID, "plans changed")
	require.NoError(t, err)
	_, err = ledger.CreateBooking(BookingData{ClassID: "c1", MemberID: "m1", Status: BookingConfirmed})
	require.NoError(t, err)
}

func TestBookingLedger_Transitions(t *testing.T) {
	ledger := NewBookingLedger()

	pending, err := ledger.CreateBooking(BookingData{ClassID: "c1", MemberID: "m1", Status: BookingPending})
	require.NoError(t, err)

	// PENDING cannot be checked in or marked no-show.
	_, err = ledger.MarkAttended(pending.ID)
	require.ErrorIs(t, err, ErrInvalidState)
	_, err = ledger.MarkNoShow(pending.ID)
	require.ErrorIs(t, err, ErrInvalidState)

	confirmed, err := ledger.ConfirmBooking(pending.ID)
	require.NoError(t, err)
	assert.Equal(t, BookingConfirmed, confirmed.Status)

	attended, err := ledger.MarkAttended(pending.ID)
	require.NoError(t, err)
	assert.Equal(t, BookingAttended, attended.Status)

	// ATTENDED is terminal.
	_, err = ledger.ConfirmBooking(pending.ID)
	require.ErrorIs(t, err, ErrInvalidState)
	_, err = ledger.CancelBooking(pending.ID, "late")
	require.ErrorIs(t, err, ErrInvalidState)
	_, err = ledger.MarkNoShow(pending.ID)
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestBookingLedger_ConfirmFromWaitlist(t *testing.T) {
	ledger := NewBookingLedger()

	wl, err := ledger.CreateBooking(BookingData{ClassID: "c1", MemberID: "m1", Status: BookingWaitlisted})
	require.NoError(t, err)
	require.Equal(t, 1, wl.WaitlistPosition)

	confirmed, err := ledger.ConfirmBooking(wl.ID)
	require.NoError(t, err)
	assert.Equal(t, BookingConfirmed, confirmed.Status)
	assert.Zero(t, confirmed.WaitlistPosition, "promotion clears the waitlist position")
}

func TestBookingLedger_Cancel_Idempotent(t *testing.T) {
	ledger := NewBookingLedger()
	firstNow := time.Date(2024, 11, 5, 9, 0, 0, 0, time.UTC)
	ledger.now = func() time.Time { return firstNow }

	rec, err := ledger.CreateBooking(BookingData{ClassID: "c1", MemberID: "m1", Status: BookingConfirmed})
	require.NoError(t, err)

	first, err := ledger.CancelBooking(rec.ID, "sick")
	require.NoError(t, err)
	require.NotNil(t, first.CancelledAt)

	ledger.now = func() time.Time { return firstNow.Add(time.Hour) }
	second, err := ledger.CancelBooking(rec.ID, "other reason")
	require.NoError(t, err)

	assert.Equal(t, first.CancelledAt, second.CancelledAt, "repeat cancel keeps the original timestamp")
	assert.Equal(t, first.CancelReason, second.CancelReason)
}

func TestBookingLedger_UnknownID(t *testing.T) {
	ledger := NewBookingLedger()

	_, err := ledger.GetByID("missing")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = ledger.ConfirmBooking("missing")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = ledger.CancelBooking("missing", "")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = ledger.MarkAttended("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBookingLedger_WaitlistOrdering(t *testing.T) {
	ledger := NewBookingLedger()

	for i, member := range []string{"m1", "m2", "m3"} {
		rec, err := ledger.CreateBooking(BookingData{ClassID: "c1", MemberID: member, Status: BookingWaitlisted})
		require.NoError(t, err)
		assert.Equal(t, i+1, rec.WaitlistPosition)
	}

	// A waitlisted booking on another class does not share the sequence.
	other, err := ledger.CreateBooking(BookingData{ClassID: "c2", MemberID: "m1", Status: BookingWaitlisted})
	require.NoError(t, err)
	assert.Equal(t, 1, other.WaitlistPosition)

	// Cancelling the head does not renumber; the next joiner still gets a
	// strictly greater position.
	head := ledger.GetWaitlistedBookings("c1")[0]
	_, err = ledger.CancelBooking(head.ID, "")
	require.NoError(t, err)

	rec, err := ledger.CreateBooking(BookingData{ClassID: "c1", MemberID: "m4", Status: BookingWaitlisted})
	require.NoError(t, err)
	assert.Equal(t, 4, rec.WaitlistPosition)

	waitlist := ledger.GetWaitlistedBookings("c1")
	require.Len(t, waitlist, 3)
	for i := 1; i < len(waitlist); i++ {
		assert.Greater(t, waitlist[i].WaitlistPosition, waitlist[i-1].WaitlistPosition)
	}
}

func TestBookingLedger_MemberViews(t *testing.T) {
	ledger := NewBookingLedger()
	base := time.Date(2024, 11, 5, 9, 0, 0, 0, time.UTC)
	current := base
	ledger.now = func() time.Time { return current }

	attended, err := ledger.CreateBooking(BookingData{ClassID: "past", MemberID: "m1", Status: BookingConfirmed})
	require.NoError(t, err)
	_, err = ledger.MarkAttended(attended.ID)
	require.NoError(t, err)

	current = base.Add(time.Hour)
	upcoming, err := ledger.CreateBooking(BookingData{ClassID: "future", MemberID: "m1", Status: BookingConfirmed})
	require.NoError(t, err)

	// Another member's bookings must not leak into the views.
	_, err = ledger.CreateBooking(BookingData{ClassID: "future", MemberID: "m2", Status: BookingConfirmed})
	require.NoError(t, err)

	up := ledger.GetUpcomingBookings("m1")
	require.Len(t, up, 1)
	assert.Equal(t, upcoming.ID, up[0].ID)

	past := ledger.GetPastBookings("m1")
	require.Len(t, past, 1)
	assert.Equal(t, attended.ID, past[0].ID)
}

func TestBookingLedger_ViewOrdering(t *testing.T) {
	ledger := NewBookingLedger()
	base := time.Date(2024, 11, 5, 9, 0, 0, 0, time.UTC)
	current := base
	ledger.now = func() time.Time { return current }

	var ids []string
	for _, class := range []string{"c1", "c2", "c3"} {
		rec, err := ledger.CreateBooking(BookingData{ClassID: class, MemberID: "m1", Status: BookingConfirmed})
		require.NoError(t, err)
		ids = append(ids, rec.ID)
		current = current.Add(time.Hour)
	}

	up := ledger.GetUpcomingBookings("m1")
	require.Len(t, up, 3)
	for i := range ids {
		assert.Equal(t, ids[i], up[i].ID, "upcoming is ascending by booked-at")
	}

	for _, id := range ids {
		_, err := ledger.CancelBooking(id, "")
		require.NoError(t, err)
	}
	past := ledger.GetPastBookings("m1")
	require.Len(t, past, 3)
	for i := range ids {
		assert.Equal(t, ids[len(ids)-1-i], past[i].ID, "past is descending by booked-at")
	}
}

func TestBookingLedger_CountByClass(t *testing.T) {
	ledger := NewBookingLedger()

	a, err := ledger.CreateBooking(BookingData{ClassID: "c1", MemberID: "m1", Status: BookingConfirmed})
	require.NoError(t, err)
	_, err = ledger.CreateBooking(BookingData{ClassID: "c1", MemberID: "m2", Status: BookingConfirmed})
	require.NoError(t, err)
	_, err = ledger.CreateBooking(BookingData{ClassID: "c1", MemberID: "m3", Status: BookingWaitlisted})
	require.NoError(t, err)

	_, err = ledger.MarkAttended(a.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, ledger.CountByClass("c1", BookingConfirmed, BookingAttended))
	assert.Equal(t, 1, ledger.CountByClass("c1", BookingWaitlisted))
}
