package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"courtside/internal/db"
	apperrors "courtside/internal/errors"
)

type CourtRepository struct {
	DB *sql.DB
}

func NewCourtRepository(database *sql.DB) *CourtRepository {
	return &CourtRepository{DB: database}
}

func (r *CourtRepository) GetByID(id int) (*db.Court, error) {
	var c db.Court
	query := `
		SELECT id, name, surface, hourly_rate_cents, cleaning_buffer_minutes, timezone, active, created_at
		FROM courts WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&c.ID, &c.Name, &c.Surface, &c.HourlyRateCents, &c.CleaningBufferMinutes, &c.Timezone, &c.Active, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("court %d: %w", id, apperrors.ErrCourtNotFound)
		}
		return nil, fmt.Errorf("error querying court %d: %w", id, err)
	}
	return &c, nil
}

func (r *CourtRepository) List() ([]db.Court, error) {
	query := `
		SELECT id, name, surface, hourly_rate_cents, cleaning_buffer_minutes, timezone, active, created_at
		FROM courts WHERE active ORDER BY name`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error listing courts: %w", err)
	}
	defer rows.Close()

	var courts []db.Court
	for rows.Next() {
		var c db.Court
		if err := rows.Scan(&c.ID, &c.Name, &c.Surface, &c.HourlyRateCents, &c.CleaningBufferMinutes, &c.Timezone, &c.Active, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning court: %w", err)
		}
		courts = append(courts, c)
	}
	return courts, rows.Err()
}

func (r *CourtRepository) Update(id, hourlyRateCents, cleaningBufferMinutes int, active bool) error {
	result, err := r.DB.Exec(`
		UPDATE courts
		SET hourly_rate_cents = $2, cleaning_buffer_minutes = $3, active = $4
		WHERE id = $1`,
		id, hourlyRateCents, cleaningBufferMinutes, active)
	if err != nil {
		return fmt.Errorf("error updating court %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("court %d: %w", id, apperrors.ErrCourtNotFound)
	}
	return nil
}
