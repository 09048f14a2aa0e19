// Package reminder schedules a notification a fixed offset before each
// booked appointment's start, and drops it again on cancellation. Everything
// here is best-effort: failures are logged and never surface into the
// booking or cancellation result.
package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yazan-alawneh999/salona-main-sub001/internal/model"
	"github.com/yazan-alawneh999/salona-main-sub001/pkg/clock"
	"github.com/yazan-alawneh999/salona-main-sub001/pkg/logger"
	"github.com/yazan-alawneh999/salona-main-sub001/pkg/metrics"
)

// DefaultOffset is how long before the appointment start the reminder fires.
const DefaultOffset = 60 * time.Minute

// Notifier delivers a due reminder. Delivery transport is external; the
// scheduler only decides what and when.
type Notifier interface {
	Notify(ctx context.Context, task *model.ReminderTask) error
}

type Scheduler struct {
	mu       sync.Mutex
	timers   map[uuid.UUID]*time.Timer
	offset   time.Duration
	notifier Notifier
	clock    clock.Clock
	logger   *logger.Logger
	metrics  *metrics.Metrics
	stopped  bool
}

func NewScheduler(notifier Notifier, offset time.Duration, clk clock.Clock, log *logger.Logger, m *metrics.Metrics) *Scheduler {
	if offset <= 0 {
		offset = DefaultOffset
	}
	if clk == nil {
		clk = clock.System()
	}
	return &Scheduler{
		timers:   make(map[uuid.UUID]*time.Timer),
		offset:   offset,
		notifier: notifier,
		clock:    clk,
		logger:   log,
		metrics:  m,
	}
}

// Schedule queues a reminder at task.StartTime - offset. A fire time already
// in the past is skipped outright: no backfill, no immediate fire.
// Re-scheduling an appointment id replaces its pending timer.
func (s *Scheduler) Schedule(task *model.ReminderTask) {
	fireAt := task.StartTime.Add(-s.offset)
	delay := fireAt.Sub(s.clock.Now())
	if delay <= 0 {
		if s.metrics != nil {
			s.metrics.RemindersSkipped.Inc()
		}
		s.logger.Info("reminder fire time already passed, skipping",
			"appointment_id", task.AppointmentID.String())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if existing, ok := s.timers[task.AppointmentID]; ok {
		existing.Stop()
	}

	id := task.AppointmentID
	s.timers[id] = time.AfterFunc(delay, func() {
		s.fire(id, task)
	})

	if s.metrics != nil {
		s.metrics.RemindersScheduled.Inc()
	}
	s.logger.Debug("reminder scheduled",
		"appointment_id", id.String(),
		"fire_at", fireAt.Format(time.RFC3339))
}

// Cancel drops the pending reminder for the appointment, if any. Cancelling
// an unknown or already-fired reminder is a no-op.
func (s *Scheduler) Cancel(appointmentID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	timer, ok := s.timers[appointmentID]
	if !ok {
		return
	}
	timer.Stop()
	delete(s.timers, appointmentID)

	if s.metrics != nil {
		s.metrics.RemindersCancelled.Inc()
	}
	s.logger.Debug("reminder cancelled", "appointment_id", appointmentID.String())
}

// Pending reports whether a reminder is still queued for the appointment.
func (s *Scheduler) Pending(appointmentID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[appointmentID]
	return ok
}

// Stop cancels every pending timer. Used on shutdown.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}

func (s *Scheduler) fire(id uuid.UUID, task *model.ReminderTask) {
	s.mu.Lock()
	delete(s.timers, id)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.notifier.Notify(ctx, task); err != nil {
		if s.metrics != nil {
			s.metrics.ReminderSendFailed.Inc()
		}
		s.logger.Error(err, "failed to send reminder", "appointment_id", id.String())
		return
	}

	if s.metrics != nil {
		s.metrics.RemindersFired.Inc()
	}
	s.logger.Info("reminder sent", "appointment_id", id.String())
}
