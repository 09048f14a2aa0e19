package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusBooked    AppointmentStatus = "booked"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed out of s.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// Appointment is the durable booking record. Salon, day, start and duration
// never change after creation; cancellation and completion touch only the
// status (and cancel reason).
type Appointment struct {
	Base
	SalonID         uuid.UUID         `db:"salon_id" json:"salon_id"`
	CustomerID      uuid.UUID         `db:"customer_id" json:"customer_id"`
	Day             time.Time         `db:"day" json:"day"`
	StartTime       time.Time         `db:"start_time" json:"start_time"`
	DurationMinutes int               `db:"duration_minutes" json:"duration_minutes"`
	Status          AppointmentStatus `db:"status" json:"status"`
	CancelReason    *string           `db:"cancel_reason" json:"cancel_reason,omitempty"`
	Notes           string            `db:"notes" json:"notes,omitempty"`
}

func (a *Appointment) Duration() time.Duration {
	return time.Duration(a.DurationMinutes) * time.Minute
}

func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(a.Duration())
}

// Overlaps reports whether the half-open interval [start, end) intersects
// this appointment's interval.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return start.Before(a.EndTime()) && a.StartTime.Before(end)
}

// SlotCandidate is a derived start-time offered to the customer. It is never
// persisted; the grid is recomputed from the live appointment set.
type SlotCandidate struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
	IsBooked  bool      `json:"is_booked"`
}

type BookAppointmentRequest struct {
	Date            string   `json:"date" binding:"required,bookingdate"`
	Start           string   `json:"start" binding:"required,bookingtime"`
	DurationMinutes int      `json:"duration_minutes" binding:"required,gt=0"`
	Services        []string `json:"services" binding:"max=20"`
	Notes           string   `json:"notes" binding:"max=1000"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type AppointmentFilters struct {
	SalonID    uuid.UUID
	CustomerID uuid.UUID
	Day        time.Time
	Status     AppointmentStatus
}
