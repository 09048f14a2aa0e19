// Package appointment drives an appointment through its lifecycle:
// booked -> completed or booked -> cancelled, both terminal.
package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yazan-alawneh999/salona-main-sub001/internal/model"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/repository"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/service/availability"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/service/event"
)

var (
	ErrNotFound          = errors.New("appointment: not found")
	ErrInvalidTransition = errors.New("appointment: invalid transition")
	ErrEmptyCancelReason = errors.New("appointment: cancellation requires a reason")
	ErrUnauthorized      = errors.New("appointment: actor not allowed to perform this transition")
	ErrStoreUnavailable  = errors.New("appointment: store unavailable")
)

type Service struct {
	appointments repository.AppointmentRepository
	salons       repository.SalonRepository
	availability *availability.Service
}

func NewService(appointments repository.AppointmentRepository, salons repository.SalonRepository, availabilitySvc *availability.Service) *Service {
	return &Service{
		appointments: appointments,
		salons:       salons,
		availability: availabilitySvc,
	}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.appointments.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return apt, nil
}

func (s *Service) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.appointments.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return appointments, nil
}

// Complete moves a booked appointment to completed. Only the salon provider
// may complete.
func (s *Service) Complete(ctx context.Context, id uuid.UUID, actor model.Actor) (*model.Appointment, error) {
	if !actor.IsProvider() {
		return nil, ErrUnauthorized
	}
	return s.transition(ctx, id, actor, model.AppointmentStatusCompleted, nil)
}

// Cancel moves a booked appointment to cancelled. The customer may cancel
// their own appointment; the provider may cancel any. A non-empty reason is
// required.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, actor model.Actor, reason string) (*model.Appointment, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrEmptyCancelReason
	}
	return s.transition(ctx, id, actor, model.AppointmentStatusCancelled, &reason)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, actor model.Actor, to model.AppointmentStatus, cancelReason *string) (*model.Appointment, error) {
	apt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if to == model.AppointmentStatusCancelled && !actor.IsProvider() && apt.CustomerID != actor.ID {
		return nil, ErrUnauthorized
	}

	// The read above is advisory only. The conditional update re-checks the
	// live status, so a concurrent transition can never overwrite a terminal
	// state with another.
	if apt.Status.Terminal() {
		return nil, ErrInvalidTransition
	}

	evt, err := s.transitionEvent(ctx, apt, to, cancelReason)
	if err != nil {
		return nil, err
	}

	err = s.appointments.UpdateStatusIf(ctx, id, model.AppointmentStatusBooked, to, cancelReason, evt)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrStatusConflict):
			return nil, ErrInvalidTransition
		default:
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	apt.Status = to
	apt.CancelReason = cancelReason
	apt.UpdatedAt = time.Now()

	if to == model.AppointmentStatusCancelled {
		// The freed interval shows up on the next grid read.
		s.availability.Invalidate(apt.SalonID, apt.Day)
	}
	return apt, nil
}

func (s *Service) transitionEvent(ctx context.Context, apt *model.Appointment, to model.AppointmentStatus, cancelReason *string) (*model.OutboxEvent, error) {
	eventType := model.EventAppointmentCompleted
	if to == model.AppointmentStatusCancelled {
		eventType = model.EventAppointmentCancelled
	}

	after := *apt
	after.Status = to
	after.CancelReason = cancelReason

	salonName := ""
	if salon, err := s.salons.Get(ctx, apt.SalonID); err == nil {
		salonName = salon.Name
	}
	return event.NewAppointmentEvent(eventType, &after, salonName, nil)
}
