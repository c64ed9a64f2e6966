package repository

import (
	"context"
	"errors"

	"github.com/Njoroge1994/garihire/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	Create(ctx context.Context, profile *domain.Profile) error
	Update(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.Profile, error)
}

type PGProfileRepository struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) ProfileRepository {
	return &PGProfileRepository{db: db}
}

func (r *PGProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT id, user_id, role, phone_number, license_number, bio FROM profiles WHERE user_id=$1`, userID)
	var p domain.Profile
	if err := row.Scan(&p.ID, &p.UserID, &p.Role, &p.PhoneNumber, &p.LicenseNumber, &p.Bio); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	return r.db.QueryRow(ctx, `INSERT INTO profiles (user_id, role, phone_number, license_number, bio)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`, profile.UserID, profile.Role, profile.PhoneNumber, profile.LicenseNumber, profile.Bio).
		Scan(&profile.ID)
}

func (r *PGProfileRepository) Update(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.Profile, error) {
	row := r.db.QueryRow(ctx, `UPDATE profiles SET
			role = COALESCE($1, role),
			phone_number = COALESCE($2, phone_number),
			license_number = COALESCE($3, license_number),
			bio = COALESCE($4, bio)
		WHERE user_id=$5
		RETURNING id, user_id, role, phone_number, license_number, bio`,
		upd.Role, upd.PhoneNumber, upd.LicenseNumber, upd.Bio, userID)
	var p domain.Profile
	if err := row.Scan(&p.ID, &p.UserID, &p.Role, &p.PhoneNumber, &p.LicenseNumber, &p.Bio); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

var _ ProfileRepository = (*PGProfileRepository)(nil)
