package sqlite

import (
	"context"
	"fmt"

	"github.com/brookfield/admissions/internal/domain/audit"
)

// AuditRepository implements audit.Repository for SQLite
type AuditRepository struct {
	db *DB
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db *DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Log appends an audit entry
func (r *AuditRepository) Log(ctx context.Context, entry *audit.Entry) error {
	query := `
		INSERT INTO audit_log (event_type, application_id, slot_id, actor, summary, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.EventType,
		entry.ApplicationID,
		entry.SlotID,
		entry.Actor,
		entry.Summary,
		entry.Details,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to log audit entry: %w", err)
	}
	return nil
}

// List returns audit entries, newest first, with optional filtering
func (r *AuditRepository) List(ctx context.Context, opts audit.ListOptions) ([]audit.Entry, error) {
	query := `
		SELECT id, event_type, application_id, slot_id, actor, summary, details, created_at
		FROM audit_log
		WHERE 1=1
	`
	var args []any

	if opts.ApplicationID != nil {
		query += ` AND application_id = ?`
		args = append(args, *opts.ApplicationID)
	}
	if opts.SlotID != nil {
		query += ` AND slot_id = ?`
		args = append(args, *opts.SlotID)
	}
	if opts.EventType != nil {
		query += ` AND event_type = ?`
		args = append(args, *opts.EventType)
	}

	query += ` ORDER BY id DESC`

	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ? OFFSET ?`
	args = append(args, limit, opts.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var entry audit.Entry
		if err := rows.Scan(
			&entry.ID,
			&entry.EventType,
			&entry.ApplicationID,
			&entry.SlotID,
			&entry.Actor,
			&entry.Summary,
			&entry.Details,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit entries: %w", err)
	}

	return entries, nil
}
