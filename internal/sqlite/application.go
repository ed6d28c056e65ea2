package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/brookfield/admissions/internal/domain/application"
	"github.com/brookfield/admissions/internal/repository"
)

// ApplicationRepository implements application.Repository for SQLite
type ApplicationRepository struct {
	db *DB
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `
	id, family_id, child_name, date_of_birth, status,
	interview_date, interview_notes, admin_notes, submitted_at, updated_at
`

// Create inserts a new application
func (r *ApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	query := `
		INSERT INTO applications (
			id, family_id, child_name, date_of_birth, status,
			interview_date, interview_notes, admin_notes, submitted_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		app.ID,
		app.FamilyID,
		app.ChildName,
		app.DateOfBirth,
		app.Status,
		app.InterviewDate,
		app.InterviewNotes,
		app.AdminNotes,
		app.SubmittedAt,
		app.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

// Get retrieves an application by ID
func (r *ApplicationRepository) Get(ctx context.Context, id string) (*application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = ?`

	app, err := scanApplication(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return app, nil
}

// List returns every application, newest first
func (r *ApplicationRepository) List(ctx context.Context) ([]application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications ORDER BY submitted_at DESC`
	return r.queryApplications(ctx, query)
}

// ListByFamily returns one family's applications, newest first
func (r *ApplicationRepository) ListByFamily(ctx context.Context, familyID string) ([]application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE family_id = ? ORDER BY submitted_at DESC`
	return r.queryApplications(ctx, query, familyID)
}

// Update persists the application's mutable fields
func (r *ApplicationRepository) Update(ctx context.Context, app *application.Application) error {
	query := `
		UPDATE applications
		SET status = ?, interview_date = ?, interview_notes = ?, admin_notes = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		app.Status,
		app.InterviewDate,
		app.InterviewNotes,
		app.AdminNotes,
		app.UpdatedAt,
		app.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// ScheduleInterview commits an interview as a single conditional update,
// guarded on no interview being set yet. Zero rows affected is disambiguated
// the same way as the slot claim: missing application versus lost race.
func (r *ApplicationRepository) ScheduleInterview(ctx context.Context, id string, interviewDate time.Time) error {
	query := `
		UPDATE applications
		SET status = ?, interview_date = ?, updated_at = ?
		WHERE id = ? AND interview_date IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		application.StatusInterviewScheduled,
		interviewDate,
		time.Now(),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to schedule interview: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	var exists bool
	checkQuery := `SELECT EXISTS(SELECT 1 FROM applications WHERE id = ?)`
	if err := r.db.QueryRowContext(ctx, checkQuery, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check application existence: %w", err)
	}
	if !exists {
		return repository.ErrNotFound
	}

	return repository.ErrConflict
}

// ExistsFor reports whether the family already submitted for this child.
// Child names compare case-insensitively.
func (r *ApplicationRepository) ExistsFor(ctx context.Context, familyID, childName, dateOfBirth string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM applications
			WHERE family_id = ? AND lower(child_name) = lower(?) AND date_of_birth = ?
		)
	`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, familyID, childName, dateOfBirth).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check for existing application: %w", err)
	}
	return exists, nil
}

func (r *ApplicationRepository) queryApplications(ctx context.Context, query string, args ...any) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []application.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applications: %w", err)
	}

	return apps, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*application.Application, error) {
	var app application.Application
	err := row.Scan(
		&app.ID,
		&app.FamilyID,
		&app.ChildName,
		&app.DateOfBirth,
		&app.Status,
		&app.InterviewDate,
		&app.InterviewNotes,
		&app.AdminNotes,
		&app.SubmittedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}
