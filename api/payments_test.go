package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Njoroge1994/garihire/internal/domain"
	"github.com/Njoroge1994/garihire/internal/service/payments"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPaymentUseCase is a mock implementation of payments.PaymentUseCase
type MockPaymentUseCase struct {
	mock.Mock
}

func (m *MockPaymentUseCase) SimulatePayment(ctx context.Context, input payments.SimulatePaymentInput) (*domain.Payment, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func TestPaymentHandler_create(t *testing.T) {
	mockService := &MockPaymentUseCase{}
	handler := NewPaymentHandler(mockService)

	c, w := authedTestContext(t, "customer-1")
	body, _ := json.Marshal(simulatePaymentRequest{BookingID: 5, PhoneNumber: "+254712345678"})
	c.Request = httptest.NewRequest("POST", "/api/payments", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	completed := &domain.Payment{
		ID:            1,
		BookingID:     5,
		AmountCents:   1500000,
		Method:        domain.PaymentMethodMpesa,
		TransactionID: "MPS1A2B3C4D5E",
		Status:        domain.PaymentStatusCompleted,
		Timestamp:     time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC),
	}
	mockService.On("SimulatePayment", c.Request.Context(), payments.SimulatePaymentInput{
		BookingID:   5,
		PhoneNumber: "+254712345678",
	}).Return(completed, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response paymentResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, int64(1500000), response.AmountCents)
	assert.Equal(t, "MPS1A2B3C4D5E", response.TransactionID)
	assert.Equal(t, string(domain.PaymentStatusCompleted), response.Status)

	mockService.AssertExpectations(t)
}

func TestPaymentHandler_create_BookingNotFound(t *testing.T) {
	mockService := &MockPaymentUseCase{}
	handler := NewPaymentHandler(mockService)

	c, w := authedTestContext(t, "customer-1")
	body, _ := json.Marshal(simulatePaymentRequest{BookingID: 99, PhoneNumber: "+254712345678"})
	c.Request = httptest.NewRequest("POST", "/api/payments", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("SimulatePayment", c.Request.Context(), mock.Anything).
		Return(nil, domain.ErrBookingNotFound)

	handler.create(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaymentHandler_create_AlreadyPaid(t *testing.T) {
	mockService := &MockPaymentUseCase{}
	handler := NewPaymentHandler(mockService)

	c, w := authedTestContext(t, "customer-1")
	body, _ := json.Marshal(simulatePaymentRequest{BookingID: 5, PhoneNumber: "+254712345678"})
	c.Request = httptest.NewRequest("POST", "/api/payments", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("SimulatePayment", c.Request.Context(), mock.Anything).
		Return(nil, domain.ErrInvalidTransition)

	handler.create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPaymentHandler_create_MissingPhone(t *testing.T) {
	mockService := &MockPaymentUseCase{}
	handler := NewPaymentHandler(mockService)

	c, w := authedTestContext(t, "customer-1")
	body, _ := json.Marshal(simulatePaymentRequest{BookingID: 5})
	c.Request = httptest.NewRequest("POST", "/api/payments", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("SimulatePayment", c.Request.Context(), mock.Anything).
		Return(nil, domain.ErrValidation)

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentHandler_create_Unauthenticated(t *testing.T) {
	handler := NewPaymentHandler(&MockPaymentUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/payments", bytes.NewReader([]byte("{}")))

	handler.create(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
