package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/Njoroge1994/garihire/internal/domain"
	"github.com/Njoroge1994/garihire/internal/kafka"
	"github.com/Njoroge1994/garihire/internal/repository"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, customerID string, input CreateBookingInput) (*domain.Booking, error)
	ListBookings(ctx context.Context, userID string) ([]domain.Booking, error)
	GetBooking(ctx context.Context, actorID string, id int64) (*domain.Booking, error)
	SetStatus(ctx context.Context, actorID string, id int64, status domain.BookingStatus) (*domain.Booking, error)
	CompleteFinishedBookings(ctx context.Context) ([]domain.Booking, error)
}

// RoleReader resolves the caller's role for booking list scoping.
type RoleReader interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateBookingInput struct {
	VehicleID int64
	StartDate time.Time
	EndDate   time.Time
}

type BookingService struct {
	bookings     repository.BookingRepository
	vehicles     repository.VehicleRepository
	profiles     RoleReader
	producer     Producer
	bookingTopic string
	logger       *zap.Logger
}

func NewBookingService(
	bookings repository.BookingRepository,
	vehicles repository.VehicleRepository,
	profiles RoleReader,
	producer Producer,
	bookingTopic string,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:     bookings,
		vehicles:     vehicles,
		profiles:     profiles,
		producer:     producer,
		bookingTopic: bookingTopic,
		logger:       logger,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, customerID string, input CreateBookingInput) (*domain.Booking, error) {
	if input.VehicleID <= 0 {
		return nil, fmt.Errorf("%w: vehicle id is required", domain.ErrValidation)
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: start and end dates are required", domain.ErrValidation)
	}

	vehicle, err := s.vehicles.GetByID(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}

	// Price is fixed at creation from the vehicle's current rate and never
	// re-derived. Overlapping bookings for the same vehicle are accepted;
	// the availability flag is not consulted or changed.
	total, err := domain.TotalPriceCents(vehicle.PriceCents, input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		CustomerID:    customerID,
		VehicleID:     vehicle.ID,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		TotalCents:    total,
		Status:        domain.BookingStatusPending,
		PaymentStatus: domain.PaymentStatePending,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_created", booking)
	s.logger.Info("booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("vehicle_id", vehicle.ID),
		zap.Int64("total_cents", total))
	return booking, nil
}

func (s *BookingService) ListBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch profile.Role {
	case domain.RoleCustomer:
		return s.bookings.ListForCustomer(ctx, userID)
	case domain.RoleOwner:
		return s.bookings.ListForOwner(ctx, userID)
	default:
		return nil, nil
	}
}

func (s *BookingService) GetBooking(ctx context.Context, actorID string, id int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actorID, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) SetStatus(ctx context.Context, actorID string, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	if !domain.ValidBookingStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actorID, booking); err != nil {
		return nil, err
	}
	if err := booking.Transition(status); err != nil {
		return nil, err
	}

	updated, err := s.bookings.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "booking_"+string(status), updated)
	return updated, nil
}

func (s *BookingService) CompleteFinishedBookings(ctx context.Context) ([]domain.Booking, error) {
	// end_date is an inclusive billed day: a booking ending Jan 3 holds the
	// car through all of Jan 3 and completes only once that day has elapsed.
	cutoff := time.Now().Add(-24 * time.Hour)
	completed, err := s.bookings.CompleteFinishedBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	for i := range completed {
		s.publish(ctx, "booking_completed", &completed[i])
	}
	return completed, nil
}

// authorize permits the booking's customer and the vehicle's owner.
func (s *BookingService) authorize(actorID string, booking *domain.Booking) error {
	if booking.CustomerID == actorID {
		return nil
	}
	if booking.Vehicle != nil && booking.Vehicle.OwnerID == actorID {
		return nil
	}
	return domain.ErrForbidden
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		VehicleID:  booking.VehicleID,
		CustomerID: booking.CustomerID,
		Status:     string(booking.Status),
		TotalCents: booking.TotalCents,
		StartDate:  booking.StartDate,
		EndDate:    booking.EndDate,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, fmt.Sprint(booking.ID), event); err != nil {
		s.logger.Warn("failed to publish booking event",
			zap.String("type", eventType),
			zap.Int64("booking_id", booking.ID),
			zap.Error(err))
	}
}

var _ BookingUseCase = (*BookingService)(nil)
