package api

import (
	"net/http"

	"github.com/Njoroge1994/garihire/internal/auth"
	"github.com/Njoroge1994/garihire/internal/domain"
	"github.com/Njoroge1994/garihire/internal/service/profiles"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	service profiles.ProfileUseCase
}

type updateProfileRequest struct {
	Role          *string `json:"role"`
	PhoneNumber   *string `json:"phone_number"`
	LicenseNumber *string `json:"license_number"`
	Bio           *string `json:"bio"`
}

type profileResponse struct {
	ID            int64  `json:"id"`
	UserID        string `json:"user_id"`
	Role          string `json:"role"`
	PhoneNumber   string `json:"phone_number"`
	LicenseNumber string `json:"license_number"`
	Bio           string `json:"bio"`
}

func NewProfileHandler(service profiles.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) Register(router *gin.RouterGroup) {
	router.GET("/profile", h.get)
	router.PUT("/profile", h.update)
}

func (h *ProfileHandler) get(c *gin.Context) {
	ident, err := auth.FromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	profile, err := h.service.Get(c.Request.Context(), ident.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(profile))
}

func (h *ProfileHandler) update(c *gin.Context) {
	ident, err := auth.FromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	upd := domain.ProfileUpdate{
		PhoneNumber:   req.PhoneNumber,
		LicenseNumber: req.LicenseNumber,
		Bio:           req.Bio,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		upd.Role = &role
	}

	profile, err := h.service.Update(c.Request.Context(), ident.UserID, upd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(profile))
}

func toProfileResponse(p *domain.Profile) profileResponse {
	return profileResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		Role:          string(p.Role),
		PhoneNumber:   p.PhoneNumber,
		LicenseNumber: p.LicenseNumber,
		Bio:           p.Bio,
	}
}
