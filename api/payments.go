package api

import (
	"net/http"
	"time"

	"github.com/Njoroge1994/garihire/internal/auth"
	"github.com/Njoroge1994/garihire/internal/domain"
	"github.com/Njoroge1994/garihire/internal/service/payments"
	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	service payments.PaymentUseCase
}

type simulatePaymentRequest struct {
	BookingID   int64  `json:"booking_id"`
	PhoneNumber string `json:"phone_number"`
}

type paymentResponse struct {
	ID            int64  `json:"id"`
	BookingID     int64  `json:"booking_id"`
	AmountCents   int64  `json:"amount_cents"`
	Method        string `json:"method"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
}

func NewPaymentHandler(service payments.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) Register(router *gin.RouterGroup) {
	router.POST("/payments", h.create)
}

func (h *PaymentHandler) create(c *gin.Context) {
	if _, err := auth.FromContext(c); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	var req simulatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	payment, err := h.service.SimulatePayment(c.Request.Context(), payments.SimulatePaymentInput{
		BookingID:   req.BookingID,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPaymentResponse(payment))
}

func toPaymentResponse(p *domain.Payment) paymentResponse {
	return paymentResponse{
		ID:            p.ID,
		BookingID:     p.BookingID,
		AmountCents:   p.AmountCents,
		Method:        p.Method,
		TransactionID: p.TransactionID,
		Status:        string(p.Status),
		Timestamp:     p.Timestamp.Format(time.RFC3339),
	}
}
