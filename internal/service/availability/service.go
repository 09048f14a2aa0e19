package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yazan-alawneh999/salona-main-sub001/internal/model"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/repository"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/scheduling"
	"github.com/yazan-alawneh999/salona-main-sub001/pkg/metrics"
)

// ErrSalonNotFound is returned for an unknown salon id.
var ErrSalonNotFound = errors.New("availability: salon not found")

// Service computes slot grids for salon days. Grids are cached briefly and
// invalidated on every accepted booking or cancellation; the cache only
// shaves repeated grid reads while a customer browses, correctness always
// comes from the booking service's serialized re-check.
type Service struct {
	salons       repository.SalonRepository
	appointments repository.AppointmentRepository
	cache        *gocache.Cache
	granularity  time.Duration
	metrics      *metrics.Metrics
}

func NewService(salons repository.SalonRepository, appointments repository.AppointmentRepository, granularity, cacheTTL time.Duration, m *metrics.Metrics) *Service {
	if granularity <= 0 {
		granularity = scheduling.DefaultGranularity
	}
	return &Service{
		salons:       salons,
		appointments: appointments,
		cache:        gocache.New(cacheTTL, 2*cacheTTL),
		granularity:  granularity,
		metrics:      m,
	}
}

func (s *Service) Granularity() time.Duration {
	return s.granularity
}

// GetSlots returns the ordered slot grid for a salon day. requestedDuration
// is the sum of the customer's selected services; zero means
// duration-agnostic.
func (s *Service) GetSlots(ctx context.Context, salonID uuid.UUID, day time.Time, requestedDuration time.Duration) ([]model.SlotCandidate, error) {
	key := cacheKey(salonID, day, requestedDuration)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]model.SlotCandidate), nil
	}

	slots, err := s.ComputeFresh(ctx, salonID, day, requestedDuration)
	if err != nil {
		return nil, err
	}

	s.cache.SetDefault(key, slots)
	return slots, nil
}

// ComputeFresh bypasses the cache. The booking service uses it inside its
// critical section where a stale grid would defeat the conflict check.
func (s *Service) ComputeFresh(ctx context.Context, salonID uuid.UUID, day time.Time, requestedDuration time.Duration) ([]model.SlotCandidate, error) {
	hours, booked, err := s.load(ctx, salonID, day)
	if err != nil {
		return nil, err
	}

	var timer *prometheus.Timer
	if s.metrics != nil {
		timer = prometheus.NewTimer(s.metrics.SlotComputeLatency)
	}
	slots := scheduling.ComputeSlots(hours, day, booked, s.granularity, requestedDuration)
	if timer != nil {
		timer.ObserveDuration()
	}
	return slots, nil
}

// Invalidate drops every cached grid for the salon day. Called after any
// accepted booking or cancellation.
func (s *Service) Invalidate(salonID uuid.UUID, day time.Time) {
	prefix := fmt.Sprintf("%s|%s|", salonID, day.Format("2006-01-02"))
	for key := range s.cache.Items() {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			s.cache.Delete(key)
		}
	}
}

// Day anchors a date at midnight in the salon's location.
func (s *Service) Day(ctx context.Context, salonID uuid.UUID, year int, month time.Month, dayOfMonth int) (time.Time, error) {
	salon, err := s.salons.Get(ctx, salonID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return time.Time{}, ErrSalonNotFound
		}
		return time.Time{}, err
	}
	loc, err := salon.Location()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, loc), nil
}

func (s *Service) load(ctx context.Context, salonID uuid.UUID, day time.Time) (*model.WorkingHours, []*model.Appointment, error) {
	hours, err := s.salons.GetWorkingHours(ctx, salonID, day.Weekday())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Closed that weekday: an empty grid, not an error.
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to get working hours: %w", err)
	}

	booked, err := s.appointments.ListBookedForDay(ctx, salonID, day)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list booked appointments: %w", err)
	}
	return hours, booked, nil
}

func cacheKey(salonID uuid.UUID, day time.Time, requestedDuration time.Duration) string {
	return fmt.Sprintf("%s|%s|%d", salonID, day.Format("2006-01-02"), int(requestedDuration.Minutes()))
}
