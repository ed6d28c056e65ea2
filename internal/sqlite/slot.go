package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/brookfield/admissions/internal/domain/slot"
	"github.com/brookfield/admissions/internal/repository"
)

// SlotRepository implements slot.Repository and the booking claim
// primitives for SQLite
type SlotRepository struct {
	db *DB
}

// NewSlotRepository creates a new SlotRepository
func NewSlotRepository(db *DB) *SlotRepository {
	return &SlotRepository{db: db}
}

// Create inserts a new unbooked slot
func (r *SlotRepository) Create(ctx context.Context, s *slot.Slot) error {
	query := `
		INSERT INTO slots (id, date, start_time, end_time, is_booked, application_id, created_at)
		VALUES (?, ?, ?, ?, 0, NULL, ?)
	`

	if _, err := r.db.ExecContext(ctx, query, s.ID, s.Date, s.StartTime, s.EndTime, s.CreatedAt); err != nil {
		return fmt.Errorf("failed to create slot: %w", err)
	}
	return nil
}

// Get retrieves a slot by ID
func (r *SlotRepository) Get(ctx context.Context, id string) (*slot.Slot, error) {
	query := `
		SELECT id, date, start_time, end_time, is_booked, application_id, created_at
		FROM slots
		WHERE id = ?
	`

	var s slot.Slot
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.IsBooked,
		&s.ApplicationID,
		&s.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}

	return &s, nil
}

// List returns slots ordered by date and start time, optionally bounded to a
// date range
func (r *SlotRepository) List(ctx context.Context, opts slot.ListOptions) ([]slot.Slot, error) {
	query := `
		SELECT id, date, start_time, end_time, is_booked, application_id, created_at
		FROM slots
	`
	var args []any
	switch {
	case opts.From != "" && opts.To != "":
		query += ` WHERE date >= ? AND date <= ?`
		args = append(args, opts.From, opts.To)
	case opts.From != "":
		query += ` WHERE date >= ?`
		args = append(args, opts.From)
	case opts.To != "":
		query += ` WHERE date <= ?`
		args = append(args, opts.To)
	}
	query += ` ORDER BY date, start_time`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	defer rows.Close()

	var slots []slot.Slot
	for rows.Next() {
		var s slot.Slot
		if err := rows.Scan(
			&s.ID,
			&s.Date,
			&s.StartTime,
			&s.EndTime,
			&s.IsBooked,
			&s.ApplicationID,
			&s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate slots: %w", err)
	}

	return slots, nil
}

// Delete removes a slot, guarded so a booked slot is never deleted
func (r *SlotRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM slots WHERE id = ? AND is_booked = 0`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}

	return r.resolveGuard(ctx, result, id)
}

// Claim books the slot for an application as a single conditional update.
// Exactly one concurrent caller observes a row change; the rest get
// ErrConflict.
func (r *SlotRepository) Claim(ctx context.Context, slotID, applicationID string) error {
	query := `
		UPDATE slots
		SET is_booked = 1, application_id = ?
		WHERE id = ? AND is_booked = 0
	`

	// A foreign key failure here means the application is missing, not the
	// slot; it surfaces as a plain error rather than a mislabeled NotFound.
	result, err := r.db.ExecContext(ctx, query, applicationID, slotID)
	if err != nil {
		return fmt.Errorf("failed to claim slot: %w", err)
	}

	return r.resolveGuard(ctx, result, slotID)
}

// Release returns a booked slot to the open pool
func (r *SlotRepository) Release(ctx context.Context, id string) error {
	query := `
		UPDATE slots
		SET is_booked = 0, application_id = NULL
		WHERE id = ? AND is_booked = 1
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to release slot: %w", err)
	}

	return r.resolveGuard(ctx, result, id)
}

// resolveGuard disambiguates a zero-row conditional write: missing slot
// versus guard failure.
func (r *SlotRepository) resolveGuard(ctx context.Context, result sql.Result, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	var exists bool
	checkQuery := `SELECT EXISTS(SELECT 1 FROM slots WHERE id = ?)`
	if err := r.db.QueryRowContext(ctx, checkQuery, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check slot existence: %w", err)
	}
	if !exists {
		return repository.ErrNotFound
	}

	return repository.ErrConflict
}
