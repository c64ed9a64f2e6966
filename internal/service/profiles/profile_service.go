package profiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/Njoroge1994/garihire/internal/domain"
	"github.com/Njoroge1994/garihire/internal/repository"
	"go.uber.org/zap"
)

type ProfileUseCase interface {
	// Get returns the caller's profile, creating a default customer profile
	// on first access.
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	Update(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.Profile, error)
	// EnsureOwner makes sure the user can list vehicles: a missing profile is
	// created with the owner role, a customer profile is promoted. Admins
	// keep their role.
	EnsureOwner(ctx context.Context, userID string) (*domain.Profile, error)
}

type ProfileService struct {
	profiles repository.ProfileRepository
	logger   *zap.Logger
}

func NewProfileService(profiles repository.ProfileRepository, logger *zap.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, logger: logger}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}

	created := &domain.Profile{UserID: userID, Role: domain.RoleCustomer}
	if err := s.profiles.Create(ctx, created); err != nil {
		return nil, err
	}
	s.logger.Info("created default profile", zap.String("user_id", userID))
	return created, nil
}

func (s *ProfileService) Update(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.Profile, error) {
	if upd.Role != nil {
		switch *upd.Role {
		case domain.RoleCustomer, domain.RoleOwner, domain.RoleAdmin:
		default:
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, *upd.Role)
		}
	}
	return s.profiles.Update(ctx, userID, upd)
}

func (s *ProfileService) EnsureOwner(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		created := &domain.Profile{UserID: userID, Role: domain.RoleOwner}
		if err := s.profiles.Create(ctx, created); err != nil {
			return nil, err
		}
		return created, nil
	}
	if err != nil {
		return nil, err
	}

	if profile.Role == domain.RoleOwner || profile.Role == domain.RoleAdmin {
		return profile, nil
	}
	role := domain.RoleOwner
	return s.profiles.Update(ctx, userID, domain.ProfileUpdate{Role: &role})
}

var _ ProfileUseCase = (*ProfileService)(nil)
