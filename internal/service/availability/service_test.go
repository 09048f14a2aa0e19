package availability

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yazan-alawneh999/salona-main-sub001/internal/model"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/repository/memory"
)

func setup(t *testing.T, timezone string) (*Service, *memory.AppointmentRepository, uuid.UUID) {
	t.Helper()

	salon := &model.Salon{
		Base:     model.Base{ID: uuid.New()},
		Name:     "Bella Vista",
		Timezone: timezone,
		Status:   "active",
	}
	hours := []*model.WorkingHours{
		{ID: uuid.New(), SalonID: salon.ID, Weekday: time.Monday, OpenMinutes: 9 * 60, CloseMinutes: 13 * 60},
	}
	salons := memory.NewSalonRepository()
	salons.Put(salon, hours, nil)

	appointments := memory.NewAppointmentRepository(memory.NewOutboxRepository())
	svc := NewService(salons, appointments, 30*time.Minute, time.Minute, nil)
	return svc, appointments, salon.ID
}

func TestGetSlots_OpenDay(t *testing.T) {
	svc, _, salonID := setup(t, "UTC")
	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC) // a Monday

	slots, err := svc.GetSlots(context.Background(), salonID, day, 0)
	require.NoError(t, err)
	require.Len(t, slots, 8)
	assert.True(t, slots[0].Start.Equal(day.Add(9*time.Hour)))
}

func TestGetSlots_ClosedWeekday(t *testing.T) {
	svc, _, salonID := setup(t, "UTC")
	sunday := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)

	slots, err := svc.GetSlots(context.Background(), salonID, sunday, 0)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetSlots_CacheInvalidation(t *testing.T) {
	svc, appointments, salonID := setup(t, "UTC")
	ctx := context.Background()
	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	slots, err := svc.GetSlots(ctx, salonID, day, 0)
	require.NoError(t, err)
	require.True(t, slots[2].Available)

	apt := &model.Appointment{
		Base:            model.Base{ID: uuid.New()},
		SalonID:         salonID,
		CustomerID:      uuid.New(),
		Day:             day,
		StartTime:       day.Add(10 * time.Hour),
		DurationMinutes: 30,
		Status:          model.AppointmentStatusBooked,
	}
	require.NoError(t, appointments.CreateIfFree(ctx, apt, nil))

	// Still the cached grid.
	slots, err = svc.GetSlots(ctx, salonID, day, 0)
	require.NoError(t, err)
	assert.True(t, slots[2].Available)

	svc.Invalidate(salonID, day)

	slots, err = svc.GetSlots(ctx, salonID, day, 0)
	require.NoError(t, err)
	assert.False(t, slots[2].Available)
	assert.True(t, slots[2].IsBooked)
}

func TestComputeFresh_BypassesCache(t *testing.T) {
	svc, appointments, salonID := setup(t, "UTC")
	ctx := context.Background()
	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	_, err := svc.GetSlots(ctx, salonID, day, 0)
	require.NoError(t, err)

	apt := &model.Appointment{
		Base:            model.Base{ID: uuid.New()},
		SalonID:         salonID,
		CustomerID:      uuid.New(),
		Day:             day,
		StartTime:       day.Add(10 * time.Hour),
		DurationMinutes: 30,
		Status:          model.AppointmentStatusBooked,
	}
	require.NoError(t, appointments.CreateIfFree(ctx, apt, nil))

	slots, err := svc.ComputeFresh(ctx, salonID, day, 0)
	require.NoError(t, err)
	assert.True(t, slots[2].IsBooked)
}

func TestDay_SalonLocalMidnight(t *testing.T) {
	svc, _, salonID := setup(t, "Europe/Amsterdam")

	day, err := svc.Day(context.Background(), salonID, 2026, time.September, 14)
	require.NoError(t, err)

	loc, err := time.LoadLocation("Europe/Amsterdam")
	require.NoError(t, err)
	assert.True(t, day.Equal(time.Date(2026, 9, 14, 0, 0, 0, 0, loc)))
	assert.Equal(t, 0, day.Hour())
}

func TestDay_UnknownSalon(t *testing.T) {
	svc, _, _ := setup(t, "UTC")

	_, err := svc.Day(context.Background(), uuid.New(), 2026, time.September, 14)
	assert.ErrorIs(t, err, ErrSalonNotFound)
}
