package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// PaymentMethodMpesa is the only supported method; the confirmation is
// simulated, no STK push leaves the process.
const PaymentMethodMpesa = "mpesa"

type Payment struct {
	ID            int64
	BookingID     int64
	AmountCents   int64
	Method        string
	TransactionID string
	Status        PaymentStatus
	Timestamp     time.Time
}
