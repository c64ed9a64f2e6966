package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Njoroge1994/garihire/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListForCustomer(ctx context.Context, customerID string) ([]domain.Booking, error)
	ListForOwner(ctx context.Context, ownerID string) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
	CompleteFinishedBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `b.id, b.customer_id, b.vehicle_id, b.start_date, b.end_date, b.total_cents, b.status, b.payment_status, b.created_at, b.updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.CustomerID, &b.VehicleID, &b.StartDate, &b.EndDate, &b.TotalCents, &b.Status, &b.PaymentStatus, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func scanBookingWithVehicle(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	var v domain.Vehicle
	var vehicleID *int64
	if err := row.Scan(&b.ID, &b.CustomerID, &b.VehicleID, &b.StartDate, &b.EndDate, &b.TotalCents, &b.Status, &b.PaymentStatus, &b.CreatedAt, &b.UpdatedAt,
		&vehicleID, &v.OwnerID, &v.Make, &v.Model, &v.Year, &v.LicensePlate, &v.PriceCents, &v.Location, &v.ImageURL, &v.Available); err != nil {
		return nil, err
	}
	if vehicleID != nil {
		v.ID = *vehicleID
		b.Vehicle = &v
	}
	return &b, nil
}

const bookingWithVehicleQuery = `SELECT ` + bookingColumns + `,
	v.id, v.owner_id, v.make, v.model, v.year, v.license_plate, v.price_cents, v.location, v.image_url, v.available
	FROM bookings b LEFT JOIN vehicles v ON b.vehicle_id = v.id`

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return r.db.QueryRow(ctx, `INSERT INTO bookings (customer_id, vehicle_id, start_date, end_date, total_cents, status, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		booking.CustomerID, booking.VehicleID, booking.StartDate, booking.EndDate, booking.TotalCents, booking.Status, booking.PaymentStatus).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, bookingWithVehicleQuery+` WHERE b.id=$1`, id)
	b, err := scanBookingWithVehicle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *PGBookingRepository) ListForCustomer(ctx context.Context, customerID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, bookingWithVehicleQuery+` WHERE b.customer_id=$1 ORDER BY b.start_date DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// ListForOwner returns bookings placed against any vehicle the owner lists.
func (r *PGBookingRepository) ListForOwner(ctx context.Context, ownerID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+`,
		v.id, v.owner_id, v.make, v.model, v.year, v.license_plate, v.price_cents, v.location, v.image_url, v.available
		FROM bookings b INNER JOIN vehicles v ON b.vehicle_id = v.id
		WHERE v.owner_id=$1 ORDER BY b.start_date DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBookingWithVehicle(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE id=$2 RETURNING `+bookingColumnsBare, status, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

const bookingColumnsBare = `id, customer_id, vehicle_id, start_date, end_date, total_cents, status, payment_status, created_at, updated_at`

// CompleteFinishedBefore flips active bookings with end_date at or before
// the deadline to completed. End dates are inclusive rental days, so callers
// pass the start of the last fully elapsed day, not the current time.
func (r *PGBookingRepository) CompleteFinishedBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `UPDATE bookings SET status=$1, updated_at=now()
		WHERE status=$2 AND end_date <= $3
		RETURNING `+bookingColumnsBare, domain.BookingStatusCompleted, domain.BookingStatusActive, deadline)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completed []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		completed = append(completed, *b)
	}
	return completed, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
