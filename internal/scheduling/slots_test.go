package scheduling

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yazan-alawneh999/salona-main-sub001/internal/model"
)

var day = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

func hours(openMinutes, closeMinutes int) *model.WorkingHours {
	return &model.WorkingHours{
		ID:           uuid.New(),
		SalonID:      uuid.New(),
		Weekday:      day.Weekday(),
		OpenMinutes:  openMinutes,
		CloseMinutes: closeMinutes,
	}
}

func booked(startMinutes, durationMinutes int) *model.Appointment {
	return &model.Appointment{
		Base:            model.Base{ID: uuid.New()},
		Day:             day,
		StartTime:       day.Add(time.Duration(startMinutes) * time.Minute),
		DurationMinutes: durationMinutes,
		Status:          model.AppointmentStatusBooked,
	}
}

func at(minutes int) time.Time {
	return day.Add(time.Duration(minutes) * time.Minute)
}

func TestComputeSlots_EmptyDay(t *testing.T) {
	slots := ComputeSlots(hours(9*60, 13*60), day, nil, 30*time.Minute, 0)

	require.Len(t, slots, 8)
	assert.True(t, slots[0].Start.Equal(at(9*60)))
	assert.True(t, slots[7].Start.Equal(at(12*60+30)))
	for _, s := range slots {
		assert.True(t, s.Available)
		assert.False(t, s.IsBooked)
	}
}

func TestComputeSlots_ClosedDay(t *testing.T) {
	assert.Nil(t, ComputeSlots(nil, day, nil, 30*time.Minute, 0))
}

func TestComputeSlots_LastSlotEndsAtClose(t *testing.T) {
	// 09:00-10:15 with a 30 minute grid: a slot starting at 10:00 would
	// run past closing, so the grid stops at 09:30.
	slots := ComputeSlots(hours(9*60, 10*60+15), day, nil, 30*time.Minute, 0)

	require.Len(t, slots, 2)
	assert.True(t, slots[1].Start.Equal(at(9*60+30)))
}

func TestComputeSlots_BookedStartMarksSlot(t *testing.T) {
	existing := []*model.Appointment{booked(10*60, 30)}
	slots := ComputeSlots(hours(9*60, 13*60), day, existing, 30*time.Minute, 0)

	slot := FindSlot(slots, at(10*60))
	require.NotNil(t, slot)
	assert.True(t, slot.IsBooked)
	assert.False(t, slot.Available)

	// Duration-agnostic: only the exact start collision is taken.
	next := FindSlot(slots, at(10*60+30))
	require.NotNil(t, next)
	assert.True(t, next.Available)
}

func TestComputeSlots_DurationBlocksOverlappingSlots(t *testing.T) {
	// 60 minute request against a 10:00-10:30 appointment. The 09:30 slot
	// would run into it, and 10:00 starts on it.
	existing := []*model.Appointment{booked(10*60, 30)}
	slots := ComputeSlots(hours(9*60, 13*60), day, existing, 30*time.Minute, 60*time.Minute)

	for _, tc := range []struct {
		startMinutes int
		available    bool
	}{
		{9 * 60, true},
		{9*60 + 30, false},
		{10 * 60, false},
		{10*60 + 30, true},
	} {
		slot := FindSlot(slots, at(tc.startMinutes))
		require.NotNil(t, slot, "slot at %d", tc.startMinutes)
		assert.Equal(t, tc.available, slot.Available, "slot at %d", tc.startMinutes)
	}
}

func TestComputeSlots_DurationOverflowsClose(t *testing.T) {
	// A 60 minute request cannot start on the last 30 minute slot.
	slots := ComputeSlots(hours(9*60, 13*60), day, nil, 30*time.Minute, 60*time.Minute)

	last := FindSlot(slots, at(12*60+30))
	require.NotNil(t, last)
	assert.False(t, last.Available)
	assert.False(t, last.IsBooked)

	prev := FindSlot(slots, at(12*60))
	require.NotNil(t, prev)
	assert.True(t, prev.Available)
}

func TestComputeSlots_BackToBackTouchingIsFree(t *testing.T) {
	// [10:00, 10:30) and a 30 minute request at 09:30 share only the
	// boundary instant, which is no overlap.
	existing := []*model.Appointment{booked(10*60, 30)}
	slots := ComputeSlots(hours(9*60, 13*60), day, existing, 30*time.Minute, 30*time.Minute)

	slot := FindSlot(slots, at(9*60+30))
	require.NotNil(t, slot)
	assert.True(t, slot.Available)
}

func TestComputeSlots_CancelledAppointmentsIgnored(t *testing.T) {
	cancelled := booked(10*60, 30)
	cancelled.Status = model.AppointmentStatusCancelled
	slots := ComputeSlots(hours(9*60, 13*60), day, []*model.Appointment{cancelled}, 30*time.Minute, 30*time.Minute)

	slot := FindSlot(slots, at(10*60))
	require.NotNil(t, slot)
	assert.False(t, slot.IsBooked)
	assert.True(t, slot.Available)
}

func TestComputeSlots_LongAppointmentShadowsGrid(t *testing.T) {
	// A 90 minute appointment at 10:00 leaves 10:30 and 11:00 unmarked on
	// the grid but unavailable for any positive duration.
	existing := []*model.Appointment{booked(10*60, 90)}
	slots := ComputeSlots(hours(9*60, 13*60), day, existing, 30*time.Minute, 30*time.Minute)

	for _, startMinutes := range []int{10*60 + 30, 11 * 60} {
		slot := FindSlot(slots, at(startMinutes))
		require.NotNil(t, slot)
		assert.False(t, slot.IsBooked, "slot at %d", startMinutes)
		assert.False(t, slot.Available, "slot at %d", startMinutes)
	}

	slot := FindSlot(slots, at(11*60+30))
	require.NotNil(t, slot)
	assert.True(t, slot.Available)
}

func TestComputeSlots_Ascending(t *testing.T) {
	slots := ComputeSlots(hours(8*60, 20*60), day, nil, 15*time.Minute, 0)
	require.NotEmpty(t, slots)
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Start.Before(slots[i].Start))
	}
}
