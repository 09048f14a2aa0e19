package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yazan-alawneh999/salona-main-sub001/internal/lock"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/model"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/repository/memory"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/service/availability"
	"github.com/yazan-alawneh999/salona-main-sub001/pkg/clock"
)

type fixture struct {
	svc     *Service
	salonID uuid.UUID
	day     time.Time
	outbox  *memory.OutboxRepository
}

// newFixture wires the booking service against in-memory stores. The salon
// is open 09:00-13:00 on the test day and "now" is pinned to 08:00.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	salon := &model.Salon{
		Base:     model.Base{ID: uuid.New()},
		Name:     "Bella Vista",
		Timezone: "UTC",
		Status:   "active",
	}
	hours := []*model.WorkingHours{{
		ID:           uuid.New(),
		SalonID:      salon.ID,
		Weekday:      day.Weekday(),
		OpenMinutes:  9 * 60,
		CloseMinutes: 13 * 60,
	}}

	salons := memory.NewSalonRepository()
	salons.Put(salon, hours, nil)

	outbox := memory.NewOutboxRepository()
	appointments := memory.NewAppointmentRepository(outbox)

	availabilitySvc := availability.NewService(salons, appointments, 30*time.Minute, time.Minute, nil)
	svc := NewService(salons, appointments, availabilitySvc, lock.NewLocalLocker(), clock.Fixed(day.Add(8*time.Hour)), nil)

	return &fixture{
		svc:     svc,
		salonID: salon.ID,
		day:     day,
		outbox:  outbox,
	}
}

func (f *fixture) request(startMinutes int, duration time.Duration) *Request {
	return &Request{
		SalonID:    f.salonID,
		CustomerID: uuid.New(),
		Day:        f.day,
		Start:      f.day.Add(time.Duration(startMinutes) * time.Minute),
		Duration:   duration,
	}
}

func TestBook_Accepts(t *testing.T) {
	f := newFixture(t)

	apt, err := f.svc.Book(context.Background(), f.request(10*60, 30*time.Minute))
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusBooked, apt.Status)
	assert.Equal(t, 30, apt.DurationMinutes)
	assert.True(t, apt.StartTime.Equal(f.day.Add(10*time.Hour)))

	events := f.outbox.Events()
	require.Len(t, events, 1)
	assert.Equal(t, model.EventAppointmentBooked, events[0].EventType)
}

func TestBook_SameSlotTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Book(ctx, f.request(10*60, 30*time.Minute))
	require.NoError(t, err)

	_, err = f.svc.Book(ctx, f.request(10*60, 30*time.Minute))
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestBook_OverlappingDuration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Book(ctx, f.request(10*60, 60*time.Minute))
	require.NoError(t, err)

	// 10:30 starts inside the existing 10:00-11:00 appointment.
	_, err = f.svc.Book(ctx, f.request(10*60+30, 30*time.Minute))
	assert.ErrorIs(t, err, ErrSlotTaken)

	// 11:00 only touches its end and is fine.
	_, err = f.svc.Book(ctx, f.request(11*60, 30*time.Minute))
	assert.NoError(t, err)
}

func TestBook_InvalidDuration(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Book(context.Background(), f.request(10*60, 0))
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestBook_InThePast(t *testing.T) {
	f := newFixture(t)

	// "now" is 08:00; the calculator would happily offer 07:00 grids on
	// another day, but booking policy rejects anything behind the clock.
	req := f.request(7*60, 30*time.Minute)
	_, err := f.svc.Book(context.Background(), req)
	assert.ErrorIs(t, err, ErrInThePast)
}

func TestBook_OutsideWorkingHours(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Before opening.
	_, err := f.svc.Book(ctx, f.request(8*60+30, 30*time.Minute))
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	// Off the grid.
	_, err = f.svc.Book(ctx, f.request(10*60+15, 30*time.Minute))
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestBook_DurationPastClose(t *testing.T) {
	f := newFixture(t)

	// 12:30 is the last offered start; a 60 minute appointment would run
	// past 13:00.
	_, err := f.svc.Book(context.Background(), f.request(12*60+30, 60*time.Minute))
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestBook_UnknownSalon(t *testing.T) {
	f := newFixture(t)

	req := f.request(10*60, 30*time.Minute)
	req.SalonID = uuid.New()
	_, err := f.svc.Book(context.Background(), req)
	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestBook_ConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const contenders = 16
	var wg sync.WaitGroup
	errs := make([]error, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Book(ctx, f.request(11*60, 30*time.Minute))
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrSlotTaken):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, contenders-1, conflicts)

	events := f.outbox.Events()
	assert.Len(t, events, 1)
}
