package booking

import "errors"

// Rejection reasons surfaced to the API layer. Validation and policy
// failures are detected before any mutation; ErrSlotTaken can also come out
// of the serialized critical section when the slot was claimed first.
var (
	ErrInvalidDuration     = errors.New("booking: duration must be positive")
	ErrOutsideWorkingHours = errors.New("booking: start time is outside working hours")
	ErrInThePast           = errors.New("booking: start time is in the past")
	ErrSlotTaken           = errors.New("booking: slot is no longer available")
	ErrSalonNotFound       = errors.New("booking: salon not found")
	ErrStoreUnavailable    = errors.New("booking: appointment store unavailable")
)
