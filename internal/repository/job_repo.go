package repository

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// GetBookingIDsPastEndTime returns pending/confirmed bookings whose slot has
// already ended, evaluated in each court's own timezone.
func (r *JobRepository) GetBookingIDsPastEndTime() ([]int, error) {
	query := `
		SELECT b.id
		FROM bookings b
		JOIN courts c ON c.id = b.court_id
		WHERE b.status IN ('pending', 'confirmed')
		  AND ((b.date + b.end_time) AT TIME ZONE c.timezone) < NOW()`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings past end time: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning booking ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

func (r *JobRepository) UpdateBookingStatuses(ids []int, newStatus string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = ANY($2)`
	result, err := r.DB.Exec(query, newStatus, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error updating booking statuses: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Updated status for %d bookings to '%s'", rowsAffected, newStatus)
	}
	return nil
}

// DeleteUnpaidPendingOlderThan removes pending, never-paid bookings created
// before the given time. Frees slots abandoned mid-checkout.
func (r *JobRepository) DeleteUnpaidPendingOlderThan(before time.Time) (int64, error) {
	result, err := r.DB.Exec(`
		DELETE FROM bookings
		WHERE status = 'pending' AND payment_status = 'unpaid'
		  AND payment_method = 'online' AND created_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("error deleting stale pending bookings: %w", err)
	}
	return result.RowsAffected()
}
