// Package scheduling computes the offerable slot grid for a salon day.
// It is pure: callers fetch working hours and the day's booked appointments,
// this package only derives the view. Staleness is acceptable here; the
// booking service re-checks under its lock and the store enforces the final
// no-overlap invariant.
package scheduling

import (
	"time"

	"github.com/yazan-alawneh999/salona-main-sub001/internal/model"
)

// DefaultGranularity is the step between offered start times.
const DefaultGranularity = 30 * time.Minute

// ComputeSlots enumerates slot candidates for one salon day, ascending by
// start time.
//
// hours is the salon's window for the weekday; nil means closed and yields
// no slots. day must be midnight in the salon's location. booked is the
// day's appointment set; only rows with status booked count. requestedDuration
// is the total duration of the customer's selected services; zero means
// duration-agnostic, so only an exact start collision marks a slot
// unavailable.
//
// The calculator is date-agnostic: a date in the past produces a normally
// computed grid. Rejecting past bookings is the booking service's policy.
func ComputeSlots(hours *model.WorkingHours, day time.Time, booked []*model.Appointment, granularity, requestedDuration time.Duration) []model.SlotCandidate {
	if hours == nil || granularity <= 0 {
		return nil
	}

	open := hours.OpenAt(day)
	closing := hours.CloseAt(day)

	active := booked[:0:0]
	for _, apt := range booked {
		if apt.Status == model.AppointmentStatusBooked {
			active = append(active, apt)
		}
	}

	var slots []model.SlotCandidate
	for start := open; !start.Add(granularity).After(closing); start = start.Add(granularity) {
		slot := model.SlotCandidate{
			Start:    start,
			End:      start.Add(granularity),
			IsBooked: startsBooked(start, active),
		}
		slot.Available = !slot.IsBooked && fits(start, requestedDuration, closing, active)
		slots = append(slots, slot)
	}
	return slots
}

// startsBooked reports whether an existing booked appointment starts exactly
// at start. This drives the grid's "taken" marker on the client.
func startsBooked(start time.Time, booked []*model.Appointment) bool {
	for _, apt := range booked {
		if apt.StartTime.Equal(start) {
			return true
		}
	}
	return false
}

// fits reports whether [start, start+duration) stays inside working hours
// and intersects no booked appointment. Zero duration is duration-agnostic
// and always fits.
func fits(start time.Time, duration time.Duration, closing time.Time, booked []*model.Appointment) bool {
	if duration <= 0 {
		return true
	}
	end := start.Add(duration)
	if end.After(closing) {
		return false
	}
	for _, apt := range booked {
		if apt.Overlaps(start, end) {
			return false
		}
	}
	return true
}

// FindSlot returns the candidate starting exactly at start, or nil.
func FindSlot(slots []model.SlotCandidate, start time.Time) *model.SlotCandidate {
	for i := range slots {
		if slots[i].Start.Equal(start) {
			return &slots[i]
		}
	}
	return nil
}
