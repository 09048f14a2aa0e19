// Package memory holds in-memory repository implementations. They back the
// service and handler tests and small single-node deployments; the conflict
// semantics match the postgres implementations.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yazan-alawneh999/salona-main-sub001/internal/model"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/repository"
)

type SalonRepository struct {
	mu       sync.RWMutex
	salons   map[uuid.UUID]*model.Salon
	hours    map[uuid.UUID][]*model.WorkingHours
	services map[uuid.UUID][]*model.SalonService
}

func NewSalonRepository() *SalonRepository {
	return &SalonRepository{
		salons:   make(map[uuid.UUID]*model.Salon),
		hours:    make(map[uuid.UUID][]*model.WorkingHours),
		services: make(map[uuid.UUID][]*model.SalonService),
	}
}

func (r *SalonRepository) Put(salon *model.Salon, hours []*model.WorkingHours, services []*model.SalonService) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.salons[salon.ID] = salon
	r.hours[salon.ID] = hours
	r.services[salon.ID] = services
}

func (r *SalonRepository) Get(_ context.Context, id uuid.UUID) (*model.Salon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	salon, ok := r.salons[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return salon, nil
}

func (r *SalonRepository) GetWorkingHours(_ context.Context, salonID uuid.UUID, weekday time.Weekday) (*model.WorkingHours, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, h := range r.hours[salonID] {
		if h.Weekday == weekday {
			return h, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *SalonRepository) ListWorkingHours(_ context.Context, salonID uuid.UUID) ([]*model.WorkingHours, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*model.WorkingHours(nil), r.hours[salonID]...), nil
}

func (r *SalonRepository) ListServices(_ context.Context, salonID uuid.UUID) ([]*model.SalonService, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*model.SalonService(nil), r.services[salonID]...), nil
}

type AppointmentRepository struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]*model.Appointment
	outbox       *OutboxRepository
}

func NewAppointmentRepository(outbox *OutboxRepository) *AppointmentRepository {
	return &AppointmentRepository{
		appointments: make(map[uuid.UUID]*model.Appointment),
		outbox:       outbox,
	}
}

func (r *AppointmentRepository) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	apt, ok := r.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *apt
	return &cp, nil
}

func (r *AppointmentRepository) List(_ context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Appointment
	for _, apt := range r.appointments {
		if filters.SalonID != uuid.Nil && apt.SalonID != filters.SalonID {
			continue
		}
		if filters.CustomerID != uuid.Nil && apt.CustomerID != filters.CustomerID {
			continue
		}
		if !filters.Day.IsZero() && !apt.Day.Equal(filters.Day) {
			continue
		}
		if filters.Status != "" && apt.Status != filters.Status {
			continue
		}
		cp := *apt
		out = append(out, &cp)
	}
	sortByStart(out)
	return out, nil
}

func (r *AppointmentRepository) ListBookedForDay(_ context.Context, salonID uuid.UUID, day time.Time) ([]*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bookedForDayLocked(salonID, day), nil
}

func (r *AppointmentRepository) bookedForDayLocked(salonID uuid.UUID, day time.Time) []*model.Appointment {
	var out []*model.Appointment
	for _, apt := range r.appointments {
		if apt.SalonID == salonID && apt.Day.Equal(day) && apt.Status == model.AppointmentStatusBooked {
			cp := *apt
			out = append(out, &cp)
		}
	}
	sortByStart(out)
	return out
}

func (r *AppointmentRepository) CreateIfFree(ctx context.Context, apt *model.Appointment, event *model.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.bookedForDayLocked(apt.SalonID, apt.Day) {
		if existing.Overlaps(apt.StartTime, apt.EndTime()) {
			return repository.ErrSlotConflict
		}
	}
	cp := *apt
	r.appointments[apt.ID] = &cp
	if event != nil && r.outbox != nil {
		return r.outbox.Create(ctx, event)
	}
	return nil
}

func (r *AppointmentRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to model.AppointmentStatus, cancelReason *string, event *model.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	apt, ok := r.appointments[id]
	if !ok {
		return repository.ErrNotFound
	}
	if apt.Status != from {
		return repository.ErrStatusConflict
	}
	apt.Status = to
	apt.CancelReason = cancelReason
	apt.UpdatedAt = time.Now()
	if event != nil && r.outbox != nil {
		return r.outbox.Create(ctx, event)
	}
	return nil
}

type OutboxRepository struct {
	mu     sync.Mutex
	events []*model.OutboxEvent
}

func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{}
}

func (r *OutboxRepository) Create(_ context.Context, event *model.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *event
	r.events = append(r.events, &cp)
	return nil
}

func (r *OutboxRepository) GetPendingEvents(_ context.Context, limit int) ([]*model.OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.OutboxEvent
	for _, e := range r.events {
		if e.Status == string(model.OutboxStatusPending) {
			out = append(out, e)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *OutboxRepository) UpdateStatus(_ context.Context, id uuid.UUID, status string, errMsg *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.ID == id {
			e.Status = status
			e.ErrorMessage = errMsg
			now := time.Now()
			e.ProcessedAt = &now
			e.UpdatedAt = now
			return nil
		}
	}
	return repository.ErrNotFound
}

// Events returns a snapshot of everything written so far.
func (r *OutboxRepository) Events() []*model.OutboxEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*model.OutboxEvent(nil), r.events...)
}

func sortByStart(apts []*model.Appointment) {
	sort.Slice(apts, func(i, j int) bool {
		return apts[i].StartTime.Before(apts[j].StartTime)
	})
}

var (
	_ repository.SalonRepository       = (*SalonRepository)(nil)
	_ repository.AppointmentRepository = (*AppointmentRepository)(nil)
	_ repository.OutboxRepository      = (*OutboxRepository)(nil)
)
