package repository

import (
	"context"

	"github.com/Njoroge1994/garihire/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository interface {
	// CreateCompletedAndActivateBooking inserts the payment row and flips the
	// booking to active/paid in one transaction, so a completed payment can
	// never be left attached to a pending booking.
	CreateCompletedAndActivateBooking(ctx context.Context, payment *domain.Payment) error
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error)
}

type PGPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) PaymentRepository {
	return &PGPaymentRepository{db: db}
}

func (r *PGPaymentRepository) CreateCompletedAndActivateBooking(ctx context.Context, payment *domain.Payment) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO payments (booking_id, amount_cents, method, transaction_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		payment.BookingID, payment.AmountCents, payment.Method, payment.TransactionID, payment.Status).
		Scan(&payment.ID, &payment.Timestamp); err != nil {
		return err
	}

	cmd, err := tx.Exec(ctx, `UPDATE bookings SET status=$1, payment_status=$2, updated_at=now() WHERE id=$3`,
		domain.BookingStatusActive, domain.PaymentStatePaid, payment.BookingID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}

	return tx.Commit(ctx)
}

func (r *PGPaymentRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	rows, err := r.db.Query(ctx, `SELECT id, booking_id, amount_cents, method, transaction_id, status, created_at FROM payments WHERE booking_id=$1 ORDER BY id`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.BookingID, &p.AmountCents, &p.Method, &p.TransactionID, &p.Status, &p.Timestamp); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

var _ PaymentRepository = (*PGPaymentRepository)(nil)
