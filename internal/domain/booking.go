package domain

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentState string

const (
	PaymentStatePending PaymentState = "pending"
	PaymentStatePaid    PaymentState = "paid"
	PaymentStateFailed  PaymentState = "failed"
)

type Booking struct {
	ID            int64
	CustomerID    string
	VehicleID     int64
	StartDate     time.Time
	EndDate       time.Time
	TotalCents    int64
	Status        BookingStatus
	PaymentStatus PaymentState
	Vehicle       *Vehicle
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// allowedTransitions is the booking status graph. completed and cancelled
// are terminal.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusApproved, BookingStatusActive, BookingStatusCancelled},
	BookingStatusApproved:  {BookingStatusActive, BookingStatusCancelled},
	BookingStatusActive:    {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCompleted: {},
	BookingStatusCancelled: {},
}

// ValidBookingStatus reports whether s is one of the declared statuses.
func ValidBookingStatus(s BookingStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether from -> to is an allowed status change.
// A self-transition is a no-op and always allowed.
func CanTransition(from, to BookingStatus) bool {
	if from == to {
		return true
	}
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition applies a status change to the booking, rejecting anything
// outside the allowed graph.
func (b *Booking) Transition(to BookingStatus) error {
	if !CanTransition(b.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, to)
	}
	b.Status = to
	return nil
}

// RentalDays returns the billed day count for a date range. Both boundaries
// are inclusive calendar days: Jan 1 to Jan 3 is three days, and a same-day
// rental bills one day. Partial trailing days count in full. An end before
// the start is invalid.
func RentalDays(start, end time.Time) (int64, error) {
	if end.Before(start) {
		return 0, fmt.Errorf("%w: end date before start date", ErrValidation)
	}
	return int64(end.Sub(start)/(24*time.Hour)) + 1, nil
}

// TotalPriceCents computes the booking charge from the vehicle's per-day
// price at booking time. Callers persist the result; it is never re-derived.
func TotalPriceCents(pricePerDayCents int64, start, end time.Time) (int64, error) {
	days, err := RentalDays(start, end)
	if err != nil {
		return 0, err
	}
	return pricePerDayCents * days, nil
}
