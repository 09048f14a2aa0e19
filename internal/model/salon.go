package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Salon struct {
	Base
	Name     string `db:"name" json:"name"`
	Address  string `db:"address" json:"address"`
	Phone    string `db:"phone" json:"phone"`
	Timezone string `db:"timezone" json:"timezone"`
	Status   string `db:"status" json:"status"`
}

// Location resolves the salon's IANA timezone. Working hours are wall-clock
// in this location.
func (s *Salon) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load salon timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// WorkingHours is one weekday's open window for a salon. Open and Close are
// minutes from midnight, salon-local. A weekday without a row means closed.
type WorkingHours struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	SalonID      uuid.UUID    `db:"salon_id" json:"salon_id"`
	Weekday      time.Weekday `db:"weekday" json:"weekday"`
	OpenMinutes  int          `db:"open_minutes" json:"open_minutes"`
	CloseMinutes int          `db:"close_minutes" json:"close_minutes"`
}

func (w *WorkingHours) Validate() error {
	if w.OpenMinutes < 0 || w.CloseMinutes > 24*60 {
		return fmt.Errorf("working hours out of range: %d-%d", w.OpenMinutes, w.CloseMinutes)
	}
	if w.OpenMinutes >= w.CloseMinutes {
		return fmt.Errorf("opening time must be before closing time: %d >= %d", w.OpenMinutes, w.CloseMinutes)
	}
	return nil
}

// OpenAt and CloseAt anchor the wall-clock window on a concrete date.
// day must be midnight in the salon's location.
func (w *WorkingHours) OpenAt(day time.Time) time.Time {
	return day.Add(time.Duration(w.OpenMinutes) * time.Minute)
}

func (w *WorkingHours) CloseAt(day time.Time) time.Time {
	return day.Add(time.Duration(w.CloseMinutes) * time.Minute)
}

// SalonService is a bookable service offered by a salon. The customer's
// selected services sum into an appointment's total duration.
type SalonService struct {
	Base
	SalonID         uuid.UUID `db:"salon_id" json:"salon_id"`
	Name            string    `db:"name" json:"name"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Price           float64   `db:"price" json:"price"`
	Status          string    `db:"status" json:"status"`
}
