// Package event builds the outbox events emitted on appointment lifecycle
// transitions. The rows are written in the same transaction as the
// appointment mutation, so consumers only ever observe committed state.
package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yazan-alawneh999/salona-main-sub001/internal/model"
)

// NewAppointmentEvent wraps an appointment into a pending outbox row.
func NewAppointmentEvent(eventType string, apt *model.Appointment, salonName string, services []string) (*model.OutboxEvent, error) {
	payload, err := json.Marshal(&model.AppointmentEvent{
		Type:        eventType,
		Appointment: apt,
		SalonName:   salonName,
		Services:    services,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	now := time.Now()
	return &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Payload:   payload,
		Status:    string(model.OutboxStatusPending),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
