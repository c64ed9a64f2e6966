package payments

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Njoroge1994/garihire/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) CreateCompletedAndActivateBooking(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListForCustomer(ctx context.Context, customerID string) ([]domain.Booking, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListForOwner(ctx context.Context, ownerID string) ([]domain.Booking, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) CompleteFinishedBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, deadline)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func TestPaymentService_SimulatePayment_Success(t *testing.T) {
	mockPayments := &MockPaymentRepository{}
	mockBookings := &MockBookingRepository{}
	mockProducer := &MockProducer{}
	service := NewPaymentService(mockPayments, mockBookings, mockProducer, "booking_events", zap.NewNop(),
		WithNotificationsTopic("notifications"))

	ctx := context.Background()
	booking := &domain.Booking{
		ID:         5,
		CustomerID: "customer-1",
		VehicleID:  7,
		TotalCents: 1500000,
		Status:     domain.BookingStatusPending,
	}
	mockBookings.On("GetByID", ctx, int64(5)).Return(booking, nil).Once()
	mockPayments.On("CreateCompletedAndActivateBooking", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil).Once()
	mockProducer.On("Publish", ctx, "booking_events", "5", mock.Anything).Return(nil).Once()
	mockProducer.On("Publish", ctx, "notifications", "5", mock.Anything).Return(nil).Once()

	payment, err := service.SimulatePayment(ctx, SimulatePaymentInput{BookingID: 5, PhoneNumber: "+254700000001"})

	assert.NoError(t, err)
	assert.NotNil(t, payment)
	assert.Equal(t, int64(1500000), payment.AmountCents)
	assert.Equal(t, domain.PaymentMethodMpesa, payment.Method)
	assert.Equal(t, domain.PaymentStatusCompleted, payment.Status)
	assert.True(t, strings.HasPrefix(payment.TransactionID, "MPS"))

	mockBookings.AssertExpectations(t)
	mockPayments.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestPaymentService_SimulatePayment_BookingNotFound(t *testing.T) {
	mockPayments := &MockPaymentRepository{}
	mockBookings := &MockBookingRepository{}
	service := NewPaymentService(mockPayments, mockBookings, &MockProducer{}, "booking_events", zap.NewNop())

	ctx := context.Background()
	mockBookings.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrBookingNotFound).Once()

	payment, err := service.SimulatePayment(ctx, SimulatePaymentInput{BookingID: 99, PhoneNumber: "+254700000001"})

	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	assert.Nil(t, payment)
	mockPayments.AssertNotCalled(t, "CreateCompletedAndActivateBooking")
}

func TestPaymentService_SimulatePayment_NotActivatable(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.BookingStatusActive,
		domain.BookingStatusCompleted,
		domain.BookingStatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			mockPayments := &MockPaymentRepository{}
			mockBookings := &MockBookingRepository{}
			service := NewPaymentService(mockPayments, mockBookings, &MockProducer{}, "booking_events", zap.NewNop())

			ctx := context.Background()
			booking := &domain.Booking{ID: 5, Status: status}
			mockBookings.On("GetByID", ctx, int64(5)).Return(booking, nil).Once()

			payment, err := service.SimulatePayment(ctx, SimulatePaymentInput{BookingID: 5, PhoneNumber: "+254700000001"})

			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			assert.Nil(t, payment)
			mockPayments.AssertNotCalled(t, "CreateCompletedAndActivateBooking")
		})
	}
}

func TestPaymentService_SimulatePayment_MissingPhone(t *testing.T) {
	service := NewPaymentService(&MockPaymentRepository{}, &MockBookingRepository{}, &MockProducer{}, "booking_events", zap.NewNop())

	_, err := service.SimulatePayment(context.Background(), SimulatePaymentInput{BookingID: 5})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPaymentService_SimulatePayment_RepositoryError(t *testing.T) {
	mockPayments := &MockPaymentRepository{}
	mockBookings := &MockBookingRepository{}
	service := NewPaymentService(mockPayments, mockBookings, &MockProducer{}, "booking_events", zap.NewNop())

	ctx := context.Background()
	booking := &domain.Booking{ID: 5, TotalCents: 1000, Status: domain.BookingStatusPending}
	mockBookings.On("GetByID", ctx, int64(5)).Return(booking, nil).Once()

	expectedErr := errors.New("database error")
	mockPayments.On("CreateCompletedAndActivateBooking", ctx, mock.Anything).Return(expectedErr).Once()

	payment, err := service.SimulatePayment(ctx, SimulatePaymentInput{BookingID: 5, PhoneNumber: "+254700000001"})
	assert.Equal(t, expectedErr, err)
	assert.Nil(t, payment)
}

func TestNewTransactionID_Format(t *testing.T) {
	id := newTransactionID()
	assert.True(t, strings.HasPrefix(id, "MPS"))
	assert.Len(t, id, 13)
	assert.NotEqual(t, id, newTransactionID())
}
