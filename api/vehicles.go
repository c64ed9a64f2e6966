package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Njoroge1994/garihire/internal/auth"
	"github.com/Njoroge1994/garihire/internal/domain"
	"github.com/Njoroge1994/garihire/internal/service/vehicles"
	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	service vehicles.VehicleUseCase
}

type createVehicleRequest struct {
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	LicensePlate string   `json:"license_plate"`
	PriceCents   int64    `json:"price_cents"`
	Location     string   `json:"location"`
	ImageURL     string   `json:"image_url"`
	Available    *bool    `json:"available"`
	Features     []string `json:"features"`
	GPSEnabled   bool     `json:"gps_enabled"`
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
}

type updateVehicleRequest struct {
	Make         *string   `json:"make"`
	Model        *string   `json:"model"`
	Year         *int      `json:"year"`
	LicensePlate *string   `json:"license_plate"`
	PriceCents   *int64    `json:"price_cents"`
	Location     *string   `json:"location"`
	ImageURL     *string   `json:"image_url"`
	Available    *bool     `json:"available"`
	Features     *[]string `json:"features"`
	GPSEnabled   *bool     `json:"gps_enabled"`
	Lat          *float64  `json:"lat"`
	Lng          *float64  `json:"lng"`
}

type ownerResponse struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type vehicleResponse struct {
	ID           int64          `json:"id"`
	OwnerID      string         `json:"owner_id"`
	Make         string         `json:"make"`
	Model        string         `json:"model"`
	Year         int            `json:"year"`
	LicensePlate string         `json:"license_plate"`
	PriceCents   int64          `json:"price_cents"`
	Location     string         `json:"location"`
	ImageURL     string         `json:"image_url"`
	Available    bool           `json:"available"`
	Features     []string       `json:"features"`
	GPSEnabled   bool           `json:"gps_enabled"`
	Lat          *float64       `json:"lat,omitempty"`
	Lng          *float64       `json:"lng,omitempty"`
	Owner        *ownerResponse `json:"owner,omitempty"`
	CreatedAt    string         `json:"created_at"`
	UpdatedAt    string         `json:"updated_at"`
}

func NewVehicleHandler(service vehicles.VehicleUseCase) *VehicleHandler {
	return &VehicleHandler{service: service}
}

// Register mounts the public read routes; RegisterProtected the
// authenticated mutations.
func (h *VehicleHandler) Register(router *gin.RouterGroup) {
	router.GET("/vehicles", h.list)
	router.GET("/vehicles/:id", h.get)
}

func (h *VehicleHandler) RegisterProtected(router *gin.RouterGroup) {
	router.GET("/my-vehicles", h.listMine)
	router.POST("/vehicles", h.create)
	router.PUT("/vehicles/:id", h.update)
	router.DELETE("/vehicles/:id", h.delete)
}

func (h *VehicleHandler) list(c *gin.Context) {
	filter := domain.VehicleFilter{
		Search:   c.Query("search"),
		Location: c.Query("location"),
	}
	if raw := c.Query("minPrice"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "minPrice must be an integer"})
			return
		}
		filter.MinPriceCents = v
	}
	if raw := c.Query("maxPrice"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "maxPrice must be an integer"})
			return
		}
		filter.MaxPriceCents = v
	}

	list, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]vehicleResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toVehicleResponse(&list[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VehicleHandler) listMine(c *gin.Context) {
	ident, err := auth.FromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	list, err := h.service.ListMine(c.Request.Context(), ident.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]vehicleResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toVehicleResponse(&list[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VehicleHandler) get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	vehicle, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toVehicleResponse(vehicle))
}

func (h *VehicleHandler) create(c *gin.Context) {
	ident, err := auth.FromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	var req createVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	vehicle, err := h.service.Create(c.Request.Context(), ident.UserID, vehicles.CreateVehicleInput{
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		LicensePlate: req.LicensePlate,
		PriceCents:   req.PriceCents,
		Location:     req.Location,
		ImageURL:     req.ImageURL,
		Available:    req.Available,
		Features:     req.Features,
		GPSEnabled:   req.GPSEnabled,
		Lat:          req.Lat,
		Lng:          req.Lng,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toVehicleResponse(vehicle))
}

func (h *VehicleHandler) update(c *gin.Context) {
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

	var req updateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	vehicle, err := h.service.Update(c.Request.Context(), ident.UserID, id, domain.VehicleUpdate{
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		LicensePlate: req.LicensePlate,
		PriceCents:   req.PriceCents,
		Location:     req.Location,
		ImageURL:     req.ImageURL,
		Available:    req.Available,
		Features:     req.Features,
		GPSEnabled:   req.GPSEnabled,
		Lat:          req.Lat,
		Lng:          req.Lng,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toVehicleResponse(vehicle))
}

func (h *VehicleHandler) delete(c *gin.Context) {
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

	if err := h.service.Delete(c.Request.Context(), ident.UserID, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func toVehicleResponse(v *domain.Vehicle) vehicleResponse {
	resp := vehicleResponse{
		ID:           v.ID,
		OwnerID:      v.OwnerID,
		Make:         v.Make,
		Model:        v.Model,
		Year:         v.Year,
		LicensePlate: v.LicensePlate,
		PriceCents:   v.PriceCents,
		Location:     v.Location,
		ImageURL:     v.ImageURL,
		Available:    v.Available,
		Features:     v.Features,
		GPSEnabled:   v.GPSEnabled,
		Lat:          v.Lat,
		Lng:          v.Lng,
		CreatedAt:    v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    v.UpdatedAt.Format(time.RFC3339),
	}
	if v.Owner != nil {
		resp.Owner = &ownerResponse{FirstName: v.Owner.FirstName, LastName: v.Owner.LastName}
	}
	return resp
}
