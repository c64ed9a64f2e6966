package vehicles

import (
	"context"
	"fmt"
	"time"

	"github.com/Njoroge1994/garihire/internal/domain"
	"github.com/Njoroge1994/garihire/internal/repository"
	"go.uber.org/zap"
)

type VehicleUseCase interface {
	List(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error)
	ListMine(ctx context.Context, ownerID string) ([]domain.Vehicle, error)
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	Create(ctx context.Context, ownerID string, input CreateVehicleInput) (*domain.Vehicle, error)
	Update(ctx context.Context, actorID string, id int64, upd domain.VehicleUpdate) (*domain.Vehicle, error)
	Delete(ctx context.Context, actorID string, id int64) error
}

// Cache holds the unfiltered vehicle listing.
type Cache interface {
	GetVehicles(ctx context.Context) ([]domain.Vehicle, error)
	SetVehicles(ctx context.Context, vehicles []domain.Vehicle) error
	InvalidateVehicles(ctx context.Context) error
}

// ProfilePromoter makes the caller an owner when they list their first
// vehicle.
type ProfilePromoter interface {
	EnsureOwner(ctx context.Context, userID string) (*domain.Profile, error)
}

type CreateVehicleInput struct {
	Make         string
	Model        string
	Year         int
	LicensePlate string
	PriceCents   int64
	Location     string
	ImageURL     string
	Available    *bool
	Features     []string
	GPSEnabled   bool
	Lat          *float64
	Lng          *float64
}

type VehicleService struct {
	vehicles repository.VehicleRepository
	profiles ProfilePromoter
	cache    Cache
	logger   *zap.Logger
}

func NewVehicleService(vehicles repository.VehicleRepository, profiles ProfilePromoter, cache Cache, logger *zap.Logger) *VehicleService {
	return &VehicleService{vehicles: vehicles, profiles: profiles, cache: cache, logger: logger}
}

func (s *VehicleService) List(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error) {
	unfiltered := filter == (domain.VehicleFilter{})
	if unfiltered && s.cache != nil {
		if cached, err := s.cache.GetVehicles(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	vehicles, err := s.vehicles.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if unfiltered && s.cache != nil {
		_ = s.cache.SetVehicles(ctx, vehicles)
	}
	return vehicles, nil
}

// ListMine returns the caller's own listings, including unavailable ones.
func (s *VehicleService) ListMine(ctx context.Context, ownerID string) ([]domain.Vehicle, error) {
	return s.vehicles.ListByOwner(ctx, ownerID)
}

func (s *VehicleService) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.vehicles.GetByID(ctx, id)
}

func (s *VehicleService) Create(ctx context.Context, ownerID string, input CreateVehicleInput) (*domain.Vehicle, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	if _, err := s.profiles.EnsureOwner(ctx, ownerID); err != nil {
		return nil, err
	}

	available := true
	if input.Available != nil {
		available = *input.Available
	}
	vehicle := &domain.Vehicle{
		OwnerID:      ownerID,
		Make:         input.Make,
		Model:        input.Model,
		Year:         input.Year,
		LicensePlate: input.LicensePlate,
		PriceCents:   input.PriceCents,
		Location:     input.Location,
		ImageURL:     input.ImageURL,
		Available:    available,
		Features:     input.Features,
		GPSEnabled:   input.GPSEnabled,
		Lat:          input.Lat,
		Lng:          input.Lng,
	}
	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.logger.Info("vehicle listed", zap.Int64("vehicle_id", vehicle.ID), zap.String("owner_id", ownerID))
	return vehicle, nil
}

func (s *VehicleService) Update(ctx context.Context, actorID string, id int64, upd domain.VehicleUpdate) (*domain.Vehicle, error) {
	if upd.PriceCents != nil && *upd.PriceCents <= 0 {
		return nil, fmt.Errorf("%w: price per day must be positive", domain.ErrValidation)
	}
	if err := s.authorizeOwner(ctx, actorID, id); err != nil {
		return nil, err
	}
	updated, err := s.vehicles.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *VehicleService) Delete(ctx context.Context, actorID string, id int64) error {
	if err := s.authorizeOwner(ctx, actorID, id); err != nil {
		return err
	}
	if err := s.vehicles.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *VehicleService) authorizeOwner(ctx context.Context, actorID string, id int64) error {
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if vehicle.OwnerID != actorID {
		return domain.ErrForbidden
	}
	return nil
}

func (s *VehicleService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateVehicles(ctx); err != nil {
		s.logger.Warn("failed to invalidate vehicle cache", zap.Error(err))
	}
}

func validateCreate(input CreateVehicleInput) error {
	switch {
	case input.Make == "":
		return fmt.Errorf("%w: make is required", domain.ErrValidation)
	case input.Model == "":
		return fmt.Errorf("%w: model is required", domain.ErrValidation)
	case input.Year < 1900 || input.Year > time.Now().Year()+1:
		return fmt.Errorf("%w: year is out of range", domain.ErrValidation)
	case input.LicensePlate == "":
		return fmt.Errorf("%w: license plate is required", domain.ErrValidation)
	case input.PriceCents <= 0:
		return fmt.Errorf("%w: price per day must be positive", domain.ErrValidation)
	case input.Location == "":
		return fmt.Errorf("%w: location is required", domain.ErrValidation)
	case input.ImageURL == "":
		return fmt.Errorf("%w: image url is required", domain.ErrValidation)
	}
	return nil
}

var _ VehicleUseCase = (*VehicleService)(nil)
