package domain

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrVehicleNotFound   = errors.New("vehicle not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)

// IsNotFound reports whether err is any of the entity-absent errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProfileNotFound) ||
		errors.Is(err, ErrVehicleNotFound) ||
		errors.Is(err, ErrBookingNotFound)
}
