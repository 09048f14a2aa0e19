package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yazan-alawneh999/salona-main-sub001/internal/model"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/repository/memory"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/service/availability"
)

type fixture struct {
	svc      *Service
	outbox   *memory.OutboxRepository
	apts     *memory.AppointmentRepository
	customer model.Actor
	provider model.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	salon := &model.Salon{
		Base:     model.Base{ID: uuid.New()},
		Name:     "Bella Vista",
		Timezone: "UTC",
		Status:   "active",
	}
	salons := memory.NewSalonRepository()
	salons.Put(salon, nil, nil)

	outbox := memory.NewOutboxRepository()
	apts := memory.NewAppointmentRepository(outbox)
	availabilitySvc := availability.NewService(salons, apts, 30*time.Minute, time.Minute, nil)

	return &fixture{
		svc:      NewService(apts, salons, availabilitySvc),
		outbox:   outbox,
		apts:     apts,
		customer: model.Actor{ID: uuid.New(), Role: model.RoleCustomer},
		provider: model.Actor{ID: uuid.New(), Role: model.RoleProvider},
	}
}

func (f *fixture) booked(t *testing.T) *model.Appointment {
	t.Helper()

	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	apt := &model.Appointment{
		Base:            model.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		SalonID:         uuid.New(),
		CustomerID:      f.customer.ID,
		Day:             day,
		StartTime:       day.Add(10 * time.Hour),
		DurationMinutes: 30,
		Status:          model.AppointmentStatusBooked,
	}
	require.NoError(t, f.apts.CreateIfFree(context.Background(), apt, nil))
	return apt
}

func TestComplete(t *testing.T) {
	f := newFixture(t)
	apt := f.booked(t)

	updated, err := f.svc.Complete(context.Background(), apt.ID, f.provider)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, updated.Status)

	stored, err := f.svc.Get(context.Background(), apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, stored.Status)

	events := f.outbox.Events()
	require.Len(t, events, 1)
	assert.Equal(t, model.EventAppointmentCompleted, events[0].EventType)
}

func TestComplete_CustomerForbidden(t *testing.T) {
	f := newFixture(t)
	apt := f.booked(t)

	_, err := f.svc.Complete(context.Background(), apt.ID, f.customer)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCancel_ByOwner(t *testing.T) {
	f := newFixture(t)
	apt := f.booked(t)

	updated, err := f.svc.Cancel(context.Background(), apt.ID, f.customer, "running late")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, updated.Status)
	require.NotNil(t, updated.CancelReason)
	assert.Equal(t, "running late", *updated.CancelReason)

	events := f.outbox.Events()
	require.Len(t, events, 1)
	assert.Equal(t, model.EventAppointmentCancelled, events[0].EventType)
}

func TestCancel_ByProvider(t *testing.T) {
	f := newFixture(t)
	apt := f.booked(t)

	_, err := f.svc.Cancel(context.Background(), apt.ID, f.provider, "stylist unavailable")
	assert.NoError(t, err)
}

func TestCancel_OtherCustomerForbidden(t *testing.T) {
	f := newFixture(t)
	apt := f.booked(t)

	stranger := model.Actor{ID: uuid.New(), Role: model.RoleCustomer}
	_, err := f.svc.Cancel(context.Background(), apt.ID, stranger, "not mine")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCancel_EmptyReason(t *testing.T) {
	f := newFixture(t)
	apt := f.booked(t)

	_, err := f.svc.Cancel(context.Background(), apt.ID, f.customer, "   ")
	assert.ErrorIs(t, err, ErrEmptyCancelReason)
}

func TestTerminalStatesAreFinal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	completed := f.booked(t)
	_, err := f.svc.Complete(ctx, completed.ID, f.provider)
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, completed.ID, f.provider, "too late")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = f.svc.Complete(ctx, completed.ID, f.provider)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	cancelled := f.booked(t)
	_, err = f.svc.Cancel(ctx, cancelled.ID, f.customer, "changed plans")
	require.NoError(t, err)

	_, err = f.svc.Complete(ctx, cancelled.ID, f.provider)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = f.svc.Cancel(ctx, cancelled.ID, f.customer, "again")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransition_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Complete(context.Background(), uuid.New(), f.provider)
	assert.ErrorIs(t, err, ErrNotFound)
}
