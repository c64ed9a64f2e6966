package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Njoroge1994/garihire/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VehicleRepository interface {
	List(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error)
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Vehicle, error)
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	Update(ctx context.Context, id int64, upd domain.VehicleUpdate) (*domain.Vehicle, error)
	Delete(ctx context.Context, id int64) error
}

type PGVehicleRepository struct {
	db *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) VehicleRepository {
	return &PGVehicleRepository{db: db}
}

// vehicleColumns joins the identity provider's users table for the owner
// display name. Users are written only by the auth collaborator.
const vehicleColumns = `v.id, v.owner_id, v.make, v.model, v.year, v.license_plate, v.price_cents,
	v.location, v.image_url, v.available, v.features, v.gps_enabled, v.lat, v.lng,
	v.created_at, v.updated_at, u.first_name, u.last_name`

func scanVehicle(row pgx.Row) (*domain.Vehicle, error) {
	var v domain.Vehicle
	var firstName, lastName *string
	if err := row.Scan(&v.ID, &v.OwnerID, &v.Make, &v.Model, &v.Year, &v.LicensePlate, &v.PriceCents,
		&v.Location, &v.ImageURL, &v.Available, &v.Features, &v.GPSEnabled, &v.Lat, &v.Lng,
		&v.CreatedAt, &v.UpdatedAt, &firstName, &lastName); err != nil {
		return nil, err
	}
	if firstName != nil || lastName != nil {
		owner := domain.OwnerName{}
		if firstName != nil {
			owner.FirstName = *firstName
		}
		if lastName != nil {
			owner.LastName = *lastName
		}
		v.Owner = &owner
	}
	return &v, nil
}

func (r *PGVehicleRepository) List(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles v LEFT JOIN users u ON v.owner_id = u.id`

	var conditions []string
	var args []interface{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(v.make ILIKE $%d OR v.model ILIKE $%d)", len(args), len(args)))
	}
	if filter.Location != "" {
		args = append(args, "%"+filter.Location+"%")
		conditions = append(conditions, fmt.Sprintf("v.location ILIKE $%d", len(args)))
	}
	if filter.MinPriceCents > 0 {
		args = append(args, filter.MinPriceCents)
		conditions = append(conditions, fmt.Sprintf("v.price_cents >= $%d", len(args)))
	}
	if filter.MaxPriceCents > 0 {
		args = append(args, filter.MaxPriceCents)
		conditions = append(conditions, fmt.Sprintf("v.price_cents <= $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY v.id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}

func (r *PGVehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	row := r.db.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles v LEFT JOIN users u ON v.owner_id = u.id WHERE v.id=$1`, id)
	v, err := scanVehicle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *PGVehicleRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Vehicle, error) {
	rows, err := r.db.Query(ctx, `SELECT `+vehicleColumns+` FROM vehicles v LEFT JOIN users u ON v.owner_id = u.id WHERE v.owner_id=$1 ORDER BY v.id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}

func (r *PGVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	return r.db.QueryRow(ctx, `INSERT INTO vehicles (owner_id, make, model, year, license_plate, price_cents, location, image_url, available, features, gps_enabled, lat, lng)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`,
		vehicle.OwnerID, vehicle.Make, vehicle.Model, vehicle.Year, vehicle.LicensePlate, vehicle.PriceCents,
		vehicle.Location, vehicle.ImageURL, vehicle.Available, vehicle.Features, vehicle.GPSEnabled, vehicle.Lat, vehicle.Lng).
		Scan(&vehicle.ID, &vehicle.CreatedAt, &vehicle.UpdatedAt)
}

func (r *PGVehicleRepository) Update(ctx context.Context, id int64, upd domain.VehicleUpdate) (*domain.Vehicle, error) {
	set := []string{"updated_at = now()"}
	var args []interface{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.Make != nil {
		add("make", *upd.Make)
	}
	if upd.Model != nil {
		add("model", *upd.Model)
	}
	if upd.Year != nil {
		add("year", *upd.Year)
	}
	if upd.LicensePlate != nil {
		add("license_plate", *upd.LicensePlate)
	}
	if upd.PriceCents != nil {
		add("price_cents", *upd.PriceCents)
	}
	if upd.Location != nil {
		add("location", *upd.Location)
	}
	if upd.ImageURL != nil {
		add("image_url", *upd.ImageURL)
	}
	if upd.Available != nil {
		add("available", *upd.Available)
	}
	if upd.Features != nil {
		add("features", *upd.Features)
	}
	if upd.GPSEnabled != nil {
		add("gps_enabled", *upd.GPSEnabled)
	}
	if upd.Lat != nil {
		add("lat", *upd.Lat)
	}
	if upd.Lng != nil {
		add("lng", *upd.Lng)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE vehicles v SET %s WHERE v.id = $%d`, strings.Join(set, ", "), len(args))
	cmd, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrVehicleNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PGVehicleRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrVehicleNotFound
	}
	return nil
}

var _ VehicleRepository = (*PGVehicleRepository)(nil)
