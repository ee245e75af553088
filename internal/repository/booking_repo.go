package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"courtside/internal/db"
	apperrors "courtside/internal/errors"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

const bookingColumns = `id, code, court_id, date, start_time::text, end_time::text,
	player_name, player_email, player_phone, payment_method, total_price_cents,
	status, payment_status, COALESCE(stripe_session_id, ''), created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }, b *db.Booking) error {
	return row.Scan(
		&b.ID, &b.Code, &b.CourtID, &b.Date, &b.StartTime, &b.EndTime,
		&b.PlayerName, &b.PlayerEmail, &b.PlayerPhone, &b.PaymentMethod, &b.TotalPriceCents,
		&b.Status, &b.PaymentStatus, &b.StripeSessionID, &b.CreatedAt, &b.UpdatedAt,
	)
}

// ListForCourtAndDate returns the court's bookings for one calendar day,
// excluding cancelled rows. This is the resolver's input set.
func (r *BookingRepository) ListForCourtAndDate(courtID int, date time.Time) ([]db.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE court_id = $1 AND date = $2 AND status <> 'cancelled'
		ORDER BY start_time`

	rows, err := r.DB.Query(query, courtID, date)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings for court %d: %w", courtID, err)
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		var b db.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking rows: %w", err)
	}
	return bookings, nil
}

// Create inserts a booking. A unique violation on the slot index means another
// booking won the same (court, date, start) and surfaces as ErrSlotTaken.
func (r *BookingRepository) Create(b *db.Booking) error {
	query := `
		INSERT INTO bookings
		(code, court_id, date, start_time, end_time, player_name, player_email, player_phone,
		 payment_method, total_price_cents, status, payment_status, stripe_session_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NULLIF($13, ''), $14, $15)
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRow(query,
		b.Code,
		b.CourtID,
		b.Date,
		b.StartTime,
		b.EndTime,
		b.PlayerName,
		b.PlayerEmail,
		b.PlayerPhone,
		b.PaymentMethod,
		b.TotalPriceCents,
		b.Status,
		b.PaymentStatus,
		b.StripeSessionID,
		b.CreatedAt,
		b.UpdatedAt,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("court %d on %s at %s: %w", b.CourtID, b.Date.Format("2006-01-02"), b.StartTime, apperrors.ErrSlotTaken)
		}
		return fmt.Errorf("error inserting booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByCode(code, email string) (*db.Booking, error) {
	var b db.Booking
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE code = $1 AND player_email = $2`
	err := scanBooking(r.DB.QueryRow(query, code, email), &b)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking with code '%s' and email '%s': %w", code, email, apperrors.ErrBookingNotFound)
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return &b, nil
}

func (r *BookingRepository) GetByCodeOnly(code string) (*db.Booking, error) {
	var b db.Booking
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE code = $1`
	err := scanBooking(r.DB.QueryRow(query, code), &b)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking with code '%s': %w", code, apperrors.ErrBookingNotFound)
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return &b, nil
}

func (r *BookingRepository) GetByStripeSessionID(sessionID string) (*db.Booking, error) {
	var b db.Booking
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE stripe_session_id = $1`
	err := scanBooking(r.DB.QueryRow(query, sessionID), &b)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking for session '%s': %w", sessionID, apperrors.ErrBookingNotFound)
		}
		return nil, fmt.Errorf("error querying booking by session: %w", err)
	}
	return &b, nil
}

func (r *BookingRepository) Cancel(code string) (string, error) {
	query := `UPDATE bookings SET status = 'cancelled', updated_at = NOW() WHERE code = $1 RETURNING status`
	var status string
	if err := r.DB.QueryRow(query, code).Scan(&status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("booking with code '%s': %w", code, apperrors.ErrBookingNotFound)
		}
		return "", fmt.Errorf("error cancelling booking: %w", err)
	}
	return status, nil
}

func (r *BookingRepository) UpdateStatusAndPaymentBySessionID(sessionID, status, paymentStatus string) error {
	query := `UPDATE bookings SET status = $2, payment_status = $3, updated_at = NOW() WHERE stripe_session_id = $1`
	result, err := r.DB.Exec(query, sessionID, status, paymentStatus)
	if err != nil {
		return fmt.Errorf("error updating booking for session %s: %w", sessionID, err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("booking for session '%s': %w", sessionID, apperrors.ErrBookingNotFound)
	}
	return nil
}

// List is the admin view: optional date, court and status filters.
func (r *BookingRepository) List(date, courtID, status string) ([]db.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if date != "" {
		query += " AND date = $" + strconv.Itoa(idx)
		args = append(args, date)
		idx++
	}
	if courtID != "" {
		query += " AND court_id = $" + strconv.Itoa(idx)
		args = append(args, courtID)
		idx++
	}
	if status != "" {
		query += " AND status = $" + strconv.Itoa(idx)
		args = append(args, status)
		idx++
	}
	query += " ORDER BY date DESC, start_time"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		var b db.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *BookingRepository) DeleteByID(id int) error {
	result, err := r.DB.Exec(`DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting booking %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("booking %d: %w", id, apperrors.ErrBookingNotFound)
	}
	return nil
}
