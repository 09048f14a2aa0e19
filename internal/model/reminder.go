package model

import (
	"time"

	"github.com/google/uuid"
)

// ReminderTask is the ephemeral payload handed to the reminder scheduler.
// One task per appointment; created on booking, dropped on cancellation,
// spent after firing.
type ReminderTask struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	CustomerID    uuid.UUID `json:"customer_id"`
	SalonName     string    `json:"salon_name"`
	StartTime     time.Time `json:"start_time"`
	Services      []string  `json:"services,omitempty"`
	Recipient     string    `json:"recipient,omitempty"`
}
