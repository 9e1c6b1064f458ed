package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClassData(start time.Time) ClassData {
	return ClassData{
		Title:     "Morning Pilates",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		TrainerID: "trainer-1",
		Capacity:  10,
		Level:     LevelBeginner,
		Type:      ClassTypeGroup,
	}
}

func TestClassCatalog_Create(t *testing.T) {
	catalog := NewClassCatalog()
	start := time.Date(2024, 11, 5, 9, 0, 0, 0, time.UTC)

	cls, err := catalog.Create(testClassData(start))
	require.NoError(t, err)

	assert.NotEmpty(t, cls.ID)
	assert.Equal(t, ClassScheduled, cls.Status)
	assert.Equal(t, 0, cls.BookingCount)
	assert.Equal(t, start, cls.StartTime)

	got, err := catalog.GetByID(cls.ID)
	require.NoError(t, err)
	assert.Equal(t, cls.ID, got.ID)
}

func TestClassCatalog_Create_InvertedTimes(t *testing.T) {
	catalog := NewClassCatalog()
	start := time.Date(2024, 11, 5, 9, 0, 0, 0, time.UTC)

	data := testClassData(start)
	data.EndTime = start.Add(-time.Hour)

	_, err := catalog.Create(data)
	require.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, catalog.Query(ClassFilters{}), "failed create must leave the catalog unchanged")
}

func TestClassCatalog_Create_BadCapacity(t *testing.T) {
	catalog := NewClassCatalog()
	data := testClassData(time.Date(2024, 11, 5, 9, 0, 0, 0, time.UTC))
	data.Capacity = 0

	_, err := catalog.Create(data)
	require.ErrorIs(t, err, ErrValidation)
}

func TestClassCatalog_GetByID_Unknown(t *testing.T) {
	catalog := NewClassCatalog()
	_, err := catalog.GetByID("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestClassCatalog_Update(t *testing.T) {
	catalog := NewClassCatalog()
	start := time.Date(2024, 11, 5, 9, 0, 0, 0, time.UTC)
	cls, err := catalog.Create(testClassData(start))
	require.NoError(t, err)

	title := "Reformer Flow"
	capacity := 6
	require.NoError(t, catalog.Update(cls.ID, ClassPatch{Title: &title, Capacity: &capacity}))

	got, err := catalog.GetByID(cls.ID)
	require.NoError(t, err)
	assert.Equal(t, "Reformer Flow", got.Title)
	assert.Equal(t, 6, got.Capacity)
	assert.Equal(t, start, got.StartTime, "untouched fields keep their values")
}

func TestClassCatalog_Update_Unknown(t *testing.T) {
	catalog := NewClassCatalog()
	title := "x"
	err := catalog.Update("missing", ClassPatch{Title: &title})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestClassCatalog_Update_RevalidatesTimes(t *testing.T) {
	catalog := NewClassCatalog()
	start := time.Date(2024, 11, 5, 9, 0, 0, 0, time.UTC)
	cls, err := catalog.Create(testClassData(start))
	require.NoError(t, err)

	badEnd := start.Add(-time.Minute)
	badCapacity := 0
	title := "should not apply"

	err = catalog.Update(cls.ID, ClassPatch{Title: &title, EndTime: &badEnd})
	require.ErrorIs(t, err, ErrValidation)

	err = catalog.Update(cls.ID, ClassPatch{Capacity: &badCapacity})
	require.ErrorIs(t, err, ErrValidation)

	got, err := catalog.GetByID(cls.ID)
	require.NoError(t, err)
	assert.Equal(t, "Morning Pilates", got.Title, "failed update must not apply any field")
	assert.Equal(t, start.Add(time.Hour), got.EndTime)
}

func TestClassCatalog_Cancel_Idempotent(t *testing.T) {
	catalog := NewClassCatalog()
	firstNow := time.Date(2024, 11, 5, 8, 0, 0, 0, time.UTC)
	catalog.now = func() time.Time { return firstNow }

	cls, err := catalog.Create(testClassData(firstNow.Add(time.Hour)))
	require.NoError(t, err)

	require.NoError(t, catalog.Cancel(cls.ID, "trainer unavailable"))
	got, err := catalog.GetByID(cls.ID)
	require.NoError(t, err)
	require.Equal(t, ClassCancelled, got.Status)
	require.NotNil(t, got.CancelledAt)

	catalog.now = func() time.Time { return firstNow.Add(time.Hour) }
	require.NoError(t, catalog.Cancel(cls.ID, "second reason"))

	again, err := catalog.GetByID(cls.ID)
	require.NoError(t, err)
	assert.Equal(t, got.CancelledAt, again.CancelledAt, "second cancel must not move timestamps")
	assert.Equal(t, got.CancelReason, again.CancelReason)
}

func TestClassCatalog_Cancel_Completed(t *testing.T) {
	catalog := NewClassCatalog()
	cls, err := catalog.Create(testClassData(time.Date(2024, 11, 5, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	require.NoError(t, catalog.Complete(cls.ID))
	err = catalog.Cancel(cls.ID, "too late")
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestClassCatalog_Complete_OnlyFromScheduled(t *testing.T) {
	catalog := NewClassCatalog()
	cls, err := catalog.Create(testClassData(time.Date(2024, 11, 5, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	require.NoError(t, catalog.Cancel(cls.ID, "rain"))
	err = catalog.Complete(cls.ID)
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestClassCatalog_Query_Filters(t *testing.T) {
	catalog := NewClassCatalog()
	day := time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC)

	makeClass := func(hour int, classType string) ClassInstance {
		data := testClassData(day.Add(time.Duration(hour) * time.Hour))
		data.Type = classType
		cls, err := catalog.Create(data)
		require.NoError(t, err)
		return cls
	}

	makeClass(9, ClassTypeGroup)
	makeClass(10, ClassTypeGroup)
	makeClass(11, ClassTypeGroup)
	cancelled := makeClass(12, ClassTypeGroup)
	makeClass(13, ClassTypePrivate)
	require.NoError(t, catalog.Cancel(cancelled.ID, "low attendance"))

	got := catalog.Query(ClassFilters{Type: ClassTypeGroup, Status: ClassScheduled})
	require.Len(t, got, 3)
	for _, cls := range got {
		assert.Equal(t, ClassTypeGroup, cls.Type)
		assert.Equal(t, ClassScheduled, cls.Status)
	}
}

func TestClassCatalog_Query_ByDayAndTrainer(t *testing.T) {
	catalog := NewClassCatalog()
	day := time.Date(2024, 11, 5, 9, 0, 0, 0, time.UTC)

	data := testClassData(day)
	_, err := catalog.Create(data)
	require.NoError(t, err)

	other := testClassData(day.AddDate(0, 0, 1))
	other.TrainerID = "trainer-2"
	_, err = catalog.Create(other)
	require.NoError(t, err)

	sameDay := catalog.Query(ClassFilters{Date: &day})
	require.Len(t, sameDay, 1)
	assert.Equal(t, "trainer-1", sameDay[0].TrainerID)

	byTrainer := catalog.Query(ClassFilters{TrainerID: "trainer-2"})
	require.Len(t, byTrainer, 1)
}

func TestClassCatalog_Query_StableOrder(t *testing.T) {
	catalog := NewClassCatalog()
	day := time.Date(2024, 11, 5, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := catalog.Create(testClassData(day.Add(time.Duration(i) * time.Hour)))
		require.NoError(t, err)
	}

	first := catalog.Query(ClassFilters{})
	second := catalog.Query(ClassFilters{})
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestClassCatalog_UpcomingClasses(t *testing.T) {
	catalog := NewClassCatalog()
	now := time.Date(2024, 11, 5, 8, 0, 0, 0, time.UTC)
	catalog.now = func() time.Time { return now }

	later, err := catalog.Create(testClassData(now.Add(3 * time.Hour)))
	require.NoError(t, err)
	soon, err := catalog.Create(testClassData(now.Add(time.Hour)))
	require.NoError(t, err)
	past, err := catalog.Create(testClassData(now.Add(-2 * time.Hour)))
	require.NoError(t, err)
	_ = past

	cancelled, err := catalog.Create(testClassData(now.Add(2 * time.Hour)))
	require.NoError(t, err)
	require.NoError(t, catalog.Cancel(cancelled.ID, "x"))

	got := catalog.UpcomingClasses()
	require.Len(t, got, 2)
	assert.Equal(t, soon.ID, got[0].ID, "upcoming classes are ascending by start time")
	assert.Equal(t, later.ID, got[1].ID)
}

func TestClassCatalog_AdjustBookingCount(t *testing.T) {
	catalog := NewClassCatalog()
	cls, err := catalog.Create(testClassData(time.Date(2024, 11, 5, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	require.NoError(t, catalog.AdjustBookingCount(cls.ID, 1))
	err = catalog.AdjustBookingCount(cls.ID, -2)
	require.ErrorIs(t, err, ErrInvalidState)

	got, err := catalog.GetByID(cls.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.BookingCount)
}
