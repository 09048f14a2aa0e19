// Package booking owns the accept-or-reject decision for booking requests.
// At most one booking per (salon, day, start) is ever accepted: requests are
// serialized per salon-day and the store's predicate insert is the final
// arbiter.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yazan-alawneh999/salona-main-sub001/internal/lock"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/model"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/repository"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/service/availability"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/service/event"
	"github.com/yazan-alawneh999/salona-main-sub001/pkg/clock"
	"github.com/yazan-alawneh999/salona-main-sub001/pkg/metrics"
)

type Service struct {
	salons       repository.SalonRepository
	appointments repository.AppointmentRepository
	availability *availability.Service
	locker       lock.Locker
	clock        clock.Clock
	metrics      *metrics.Metrics
}

func NewService(
	salons repository.SalonRepository,
	appointments repository.AppointmentRepository,
	availabilitySvc *availability.Service,
	locker lock.Locker,
	clk clock.Clock,
	m *metrics.Metrics,
) *Service {
	if clk == nil {
		clk = clock.System()
	}
	return &Service{
		salons:       salons,
		appointments: appointments,
		availability: availabilitySvc,
		locker:       locker,
		clock:        clk,
		metrics:      m,
	}
}

// Request is a fully resolved booking request: day is midnight salon-local,
// start is the absolute slot start.
type Request struct {
	SalonID    uuid.UUID
	CustomerID uuid.UUID
	Day        time.Time
	Start      time.Time
	Duration   time.Duration
	Services   []string
	Notes      string
}

// Book validates the request, serializes per salon-day, and claims the slot.
// The first request to claim a slot wins; later ones get ErrSlotTaken. No
// retry happens here: the caller re-queries availability and shows the
// customer a fresh grid.
func (s *Service) Book(ctx context.Context, req *Request) (*model.Appointment, error) {
	apt, err := s.book(ctx, req)
	if err != nil {
		if s.metrics != nil {
			s.metrics.BookingsRejected.WithLabelValues(reason(err)).Inc()
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingsAccepted.Inc()
	}
	s.availability.Invalidate(req.SalonID, req.Day)
	return apt, nil
}

func (s *Service) book(ctx context.Context, req *Request) (*model.Appointment, error) {
	if req.Duration <= 0 {
		return nil, ErrInvalidDuration
	}
	if req.Start.Before(s.clock.Now()) {
		return nil, ErrInThePast
	}

	salon, err := s.salons.Get(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSalonNotFound
		}
		return nil, storeErr(err)
	}

	// Cheap pre-check outside the lock; the authoritative one runs inside.
	if err := s.checkSlot(ctx, req); err != nil {
		return nil, err
	}

	var apt *model.Appointment
	lockKey := fmt.Sprintf("booking:%s:%s", req.SalonID, req.Day.Format("2006-01-02"))
	err = s.locker.WithLock(ctx, lockKey, func(ctx context.Context) error {
		if err := s.checkSlot(ctx, req); err != nil {
			return err
		}

		now := s.clock.Now()
		apt = &model.Appointment{
			Base: model.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			SalonID:         req.SalonID,
			CustomerID:      req.CustomerID,
			Day:             req.Day,
			StartTime:       req.Start,
			DurationMinutes: int(req.Duration.Minutes()),
			Status:          model.AppointmentStatusBooked,
			Notes:           req.Notes,
		}

		evt, err := event.NewAppointmentEvent(model.EventAppointmentBooked, apt, salon.Name, req.Services)
		if err != nil {
			return err
		}

		if err := s.appointments.CreateIfFree(ctx, apt, evt); err != nil {
			if errors.Is(err, repository.ErrSlotConflict) {
				return ErrSlotTaken
			}
			return storeErr(err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			// Someone else is deciding this salon-day right now. From the
			// caller's point of view the slot is contested; re-query.
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	return apt, nil
}

// checkSlot recomputes the live grid and verifies the requested start is an
// offerable, available candidate for the requested duration.
func (s *Service) checkSlot(ctx context.Context, req *Request) error {
	slots, err := s.availability.ComputeFresh(ctx, req.SalonID, req.Day, req.Duration)
	if err != nil {
		return storeErr(err)
	}

	for _, slot := range slots {
		if slot.Start.Equal(req.Start) {
			if !slot.Available {
				return ErrSlotTaken
			}
			return nil
		}
	}
	return ErrOutsideWorkingHours
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

func reason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidDuration):
		return "invalid_duration"
	case errors.Is(err, ErrOutsideWorkingHours):
		return "outside_working_hours"
	case errors.Is(err, ErrInThePast):
		return "in_the_past"
	case errors.Is(err, ErrSlotTaken):
		return "slot_taken"
	case errors.Is(err, ErrSalonNotFound):
		return "salon_not_found"
	case errors.Is(err, ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return "internal"
	}
}
