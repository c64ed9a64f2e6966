package api

import (
	"net/http"
	"time"

	"github.com/Njoroge1994/garihire/internal/auth"
	"github.com/Njoroge1994/garihire/internal/domain"
	"github.com/Njoroge1994/garihire/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	VehicleID int64     `json:"vehicle_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

type bookingResponse struct {
	ID            int64            `json:"id"`
	CustomerID    string           `json:"customer_id"`
	VehicleID     int64            `json:"vehicle_id"`
	StartDate     string           `json:"start_date"`
	EndDate       string           `json:"end_date"`
	TotalCents    int64            `json:"total_cents"`
	Status        string           `json:"status"`
	PaymentStatus string           `json:"payment_status"`
	Vehicle       *vehicleResponse `json:"vehicle,omitempty"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/bookings", h.list)
	router.GET("/bookings/:id", h.get)
	router.POST("/bookings", h.create)
	router.PATCH("/bookings/:id/status", h.setStatus)
}

func (h *BookingHandler) create(c *gin.Context) {
	ident, err := auth.FromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), ident.UserID, booking.CreateBookingInput{
		VehicleID: req.VehicleID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) list(c *gin.Context) {
	ident, err := auth.FromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), ident.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		resp = append(resp, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) get(c *gin.Context) {
	ident, err := auth.FromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	found, err := h.service.GetBooking(c.Request.Context(), ident.UserID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(found))
}

func (h *BookingHandler) setStatus(c *gin.Context) {
	ident, err := auth.FromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	updated, err := h.service.SetStatus(c.Request.Context(), ident.UserID, id, domain.BookingStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(updated))
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	resp := bookingResponse{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		VehicleID:     b.VehicleID,
		StartDate:     b.StartDate.Format(time.RFC3339),
		EndDate:       b.EndDate.Format(time.RFC3339),
		TotalCents:    b.TotalCents,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
	}
	if b.Vehicle != nil {
		v := toVehicleResponse(b.Vehicle)
		resp.Vehicle = &v
	}
	return resp
}
