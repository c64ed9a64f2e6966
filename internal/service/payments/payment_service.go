package payments

import (
	"context"
	"fmt"
	"strings"

	"github.com/Njoroge1994/garihire/internal/domain"
	"github.com/Njoroge1994/garihire/internal/kafka"
	"github.com/Njoroge1994/garihire/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentUseCase interface {
	// SimulatePayment records a completed M-Pesa payment for the booking and
	// activates it. No gateway is contacted; the confirmation is immediate.
	SimulatePayment(ctx context.Context, input SimulatePaymentInput) (*domain.Payment, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type SimulatePaymentInput struct {
	BookingID   int64
	PhoneNumber string
}

type PaymentService struct {
	payments           repository.PaymentRepository
	bookings           repository.BookingRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	logger             *zap.Logger
}

type PaymentServiceOption func(*PaymentService)

func WithNotificationsTopic(topic string) PaymentServiceOption {
	return func(s *PaymentService) {
		s.notificationsTopic = topic
	}
}

func NewPaymentService(
	payments repository.PaymentRepository,
	bookings repository.BookingRepository,
	producer Producer,
	bookingTopic string,
	logger *zap.Logger,
	opts ...PaymentServiceOption,
) *PaymentService {
	service := &PaymentService{
		payments:     payments,
		bookings:     bookings,
		producer:     producer,
		bookingTopic: bookingTopic,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *PaymentService) SimulatePayment(ctx context.Context, input SimulatePaymentInput) (*domain.Payment, error) {
	if input.PhoneNumber == "" {
		return nil, fmt.Errorf("%w: phone number is required", domain.ErrValidation)
	}

	booking, err := s.bookings.GetByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	// An already-active booking must not be paid twice; the self-transition
	// the status graph tolerates elsewhere is rejected here.
	if booking.Status == domain.BookingStatusActive || !domain.CanTransition(booking.Status, domain.BookingStatusActive) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, booking.Status, domain.BookingStatusActive)
	}

	payment := &domain.Payment{
		BookingID:     booking.ID,
		AmountCents:   booking.TotalCents,
		Method:        domain.PaymentMethodMpesa,
		TransactionID: newTransactionID(),
		Status:        domain.PaymentStatusCompleted,
	}
	if err := s.payments.CreateCompletedAndActivateBooking(ctx, payment); err != nil {
		return nil, err
	}

	s.publish(ctx, booking, payment, input.PhoneNumber)
	s.logger.Info("payment simulated",
		zap.Int64("booking_id", booking.ID),
		zap.String("transaction_id", payment.TransactionID),
		zap.Int64("amount_cents", payment.AmountCents))
	return payment, nil
}

// newTransactionID builds a synthetic M-Pesa receipt reference. Simulation
// only, so a uuid fragment is plenty.
func newTransactionID() string {
	return "MPS" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

func (s *PaymentService) publish(ctx context.Context, booking *domain.Booking, payment *domain.Payment, phone string) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:          "payment_completed",
		BookingID:     booking.ID,
		VehicleID:     booking.VehicleID,
		CustomerID:    booking.CustomerID,
		Status:        string(domain.BookingStatusActive),
		TotalCents:    payment.AmountCents,
		TransactionID: payment.TransactionID,
		PhoneNumber:   phone,
		StartDate:     booking.StartDate,
		EndDate:       booking.EndDate,
	}
	key := fmt.Sprint(booking.ID)
	if err := s.producer.Publish(ctx, s.bookingTopic, key, event); err != nil {
		s.logger.Warn("failed to publish payment event", zap.Int64("booking_id", booking.ID), zap.Error(err))
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			s.logger.Warn("failed to publish payment notification", zap.Int64("booking_id", booking.ID), zap.Error(err))
		}
	}
}

var _ PaymentUseCase = (*PaymentService)(nil)
