package notify

import (
	"context"
	"fmt"

	"github.com/Njoroge1994/garihire/internal/kafka"
)

// SMSSender simulates the M-Pesa confirmation SMS. Nothing leaves the
// process; the message is printed to stdout.
type SMSSender struct{}

func NewSMSSender() *SMSSender {
	return &SMSSender{}
}

func (s *SMSSender) Send(ctx context.Context, event kafka.BookingEvent) error {
	switch event.Type {
	case "payment_completed":
		fmt.Printf("send sms to %s: payment %s of KES %d.%02d received, booking %d is now %s\n",
			event.PhoneNumber, event.TransactionID, event.TotalCents/100, event.TotalCents%100, event.BookingID, event.Status)
	default:
		fmt.Printf("send sms to customer %s: booking %d is now %s\n", event.CustomerID, event.BookingID, event.Status)
	}
	return nil
}
