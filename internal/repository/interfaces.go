package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yazan-alawneh999/salona-main-sub001/internal/model"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrSlotConflict is returned by CreateIfFree when an overlapping booked
	// appointment already holds the interval.
	ErrSlotConflict = errors.New("conflicting booked appointment exists")
	// ErrStatusConflict is returned by UpdateStatusIf when the row's current
	// status no longer matches the expected one.
	ErrStatusConflict = errors.New("appointment status changed concurrently")
)

type SalonRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Salon, error)
	GetWorkingHours(ctx context.Context, salonID uuid.UUID, weekday time.Weekday) (*model.WorkingHours, error)
	ListWorkingHours(ctx context.Context, salonID uuid.UUID) ([]*model.WorkingHours, error)
	ListServices(ctx context.Context, salonID uuid.UUID) ([]*model.SalonService, error)
}

type AppointmentRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	// ListBookedForDay returns the salon's appointments with status booked on
	// the given day, ordered by start time.
	ListBookedForDay(ctx context.Context, salonID uuid.UUID, day time.Time) ([]*model.Appointment, error)
	// CreateIfFree atomically inserts the appointment unless a booked row for
	// the same salon and day overlaps its interval, and writes the outbox
	// event in the same transaction. Returns ErrSlotConflict on overlap.
	CreateIfFree(ctx context.Context, apt *model.Appointment, event *model.OutboxEvent) error
	// UpdateStatusIf atomically moves the appointment from one status to
	// another, writing the outbox event in the same transaction. Returns
	// ErrStatusConflict if the current status is not `from`.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to model.AppointmentStatus, cancelReason *string, event *model.OutboxEvent) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *model.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, errMsg *string) error
}
