package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRentalDays(t *testing.T) {
	testCases := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int64
	}{
		{
			name:     "Inclusive range",
			start:    date(2024, time.January, 1),
			end:      date(2024, time.January, 3),
			expected: 3,
		},
		{
			name:     "Same day charges one day",
			start:    date(2024, time.January, 1),
			end:      date(2024, time.January, 1),
			expected: 1,
		},
		{
			name:     "Partial trailing day counts in full",
			start:    time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC),
			end:      time.Date(2024, time.January, 3, 20, 0, 0, 0, time.UTC),
			expected: 3,
		},
		{
			name:     "Week",
			start:    date(2024, time.March, 10),
			end:      date(2024, time.March, 16),
			expected: 7,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			days, err := RentalDays(tc.start, tc.end)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, days)
		})
	}
}

func TestRentalDays_EndBeforeStart(t *testing.T) {
	_, err := RentalDays(date(2024, time.January, 3), date(2024, time.January, 1))
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTotalPriceCents(t *testing.T) {
	// p=5000.00/day, 2024-01-01..2024-01-03 inclusive -> 3 days -> 15000.00
	total, err := TotalPriceCents(500000, date(2024, time.January, 1), date(2024, time.January, 3))
	assert.NoError(t, err)
	assert.Equal(t, int64(1500000), total)
}

func TestCanTransition(t *testing.T) {
	testCases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{BookingStatusPending, BookingStatusActive, true},
		{BookingStatusPending, BookingStatusApproved, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusPending, BookingStatusCompleted, false},
		{BookingStatusApproved, BookingStatusActive, true},
		{BookingStatusActive, BookingStatusCompleted, true},
		{BookingStatusActive, BookingStatusApproved, false},
		{BookingStatusCompleted, BookingStatusActive, false},
		{BookingStatusCancelled, BookingStatusActive, false},
		{BookingStatusActive, BookingStatusActive, true},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestBooking_Transition(t *testing.T) {
	b := &Booking{Status: BookingStatusPending}

	assert.NoError(t, b.Transition(BookingStatusActive))
	assert.Equal(t, BookingStatusActive, b.Status)

	err := b.Transition(BookingStatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, BookingStatusActive, b.Status)
}

func TestValidBookingStatus(t *testing.T) {
	assert.True(t, ValidBookingStatus(BookingStatusApproved))
	assert.False(t, ValidBookingStatus(BookingStatus("returned")))
}
