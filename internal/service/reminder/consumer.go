package reminder

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yazan-alawneh999/salona-main-sub001/internal/model"
	"github.com/yazan-alawneh999/salona-main-sub001/pkg/logger"
	"github.com/yazan-alawneh999/salona-main-sub001/pkg/messaging"
)

// Consumer subscribes to appointment lifecycle events and translates them
// into scheduler calls: booked schedules, cancelled cancels, completed is
// ignored.
type Consumer struct {
	broker    messaging.Broker
	scheduler *Scheduler
	logger    *logger.Logger
}

func NewConsumer(broker messaging.Broker, scheduler *Scheduler, log *logger.Logger) *Consumer {
	return &Consumer{
		broker:    broker,
		scheduler: scheduler,
		logger:    log,
	}
}

// Run blocks until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.broker.Subscribe(ctx, messaging.ChannelAppointments)
	if err != nil {
		return fmt.Errorf("failed to subscribe to appointment events: %w", err)
	}

	c.logger.Info("reminder consumer started")
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("reminder consumer shutting down")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := c.handle(msg); err != nil {
				c.logger.Error(err, "failed to handle appointment event")
			}
		}
	}
}

func (c *Consumer) handle(payload []byte) error {
	var evt model.AppointmentEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return fmt.Errorf("failed to decode appointment event: %w", err)
	}
	if evt.Appointment == nil {
		return fmt.Errorf("appointment event %q missing appointment", evt.Type)
	}

	switch evt.Type {
	case model.EventAppointmentBooked:
		c.scheduler.Schedule(&model.ReminderTask{
			AppointmentID: evt.Appointment.ID,
			CustomerID:    evt.Appointment.CustomerID,
			SalonName:     evt.SalonName,
			StartTime:     evt.Appointment.StartTime,
			Services:      evt.Services,
		})
	case model.EventAppointmentCancelled:
		c.scheduler.Cancel(evt.Appointment.ID)
	case model.EventAppointmentCompleted:
		// No reminder action; the appointment already happened.
	default:
		c.logger.Warn("unknown appointment event type", "type", evt.Type)
	}
	return nil
}
