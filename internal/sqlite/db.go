package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection. The pragmas ride on the DSN
// so that every connection in the pool gets them, not just the one a plain
// Exec would run on: foreign keys enforced everywhere, and competing writers
// wait instead of failing with SQLITE_BUSY.
func New(dataSourceName string) (*DB, error) {
	sep := "?"
	if strings.Contains(dataSourceName, "?") {
		sep = "&"
	}
	dsn := dataSourceName + sep +
		"_pragma=busy_timeout(5000)" +
		"&_pragma=foreign_keys(1)" +
		"&_pragma=journal_mode(WAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the admissions schema.
func (db *DB) RunMigrations() error {
	migration := `
-- Portal accounts. Family accounts own applications; is_admin marks staff.
CREATE TABLE IF NOT EXISTS accounts (
    id TEXT PRIMARY KEY,
    token_hash TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL,
    name TEXT NOT NULL DEFAULT '',
    is_admin INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    last_used TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_account_token ON accounts(token_hash);

-- Admissions applications
CREATE TABLE IF NOT EXISTS applications (
    id TEXT PRIMARY KEY,
    family_id TEXT NOT NULL,
    child_name TEXT NOT NULL,
    date_of_birth TEXT NOT NULL,
    status TEXT NOT NULL CHECK(status IN (
        'submitted', 'under_review', 'interview_pending', 'interview_scheduled',
        'admitted', 'waitlist', 'rejected', 'declined', 'withdrawn'
    )),
    interview_date TIMESTAMP,
    interview_notes TEXT NOT NULL DEFAULT '',
    admin_notes TEXT NOT NULL DEFAULT '',
    submitted_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (family_id) REFERENCES accounts(id)
);
CREATE INDEX IF NOT EXISTS idx_family_applications ON applications(family_id);
CREATE INDEX IF NOT EXISTS idx_application_status ON applications(status);
CREATE UNIQUE INDEX IF NOT EXISTS idx_unique_child
    ON applications(family_id, lower(child_name), date_of_birth);

-- Interview slots. A booked slot always carries its application id.
CREATE TABLE IF NOT EXISTS slots (
    id TEXT PRIMARY KEY,
    date TEXT NOT NULL,
    start_time TEXT NOT NULL,
    end_time TEXT NOT NULL,
    is_booked INTEGER NOT NULL DEFAULT 0,
    application_id TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (application_id) REFERENCES applications(id),
    CHECK ((is_booked = 0 AND application_id IS NULL) OR (is_booked = 1 AND application_id IS NOT NULL))
);
CREATE INDEX IF NOT EXISTS idx_slot_date ON slots(date);
CREATE INDEX IF NOT EXISTS idx_slot_application ON slots(application_id);

-- Audit trail
CREATE TABLE IF NOT EXISTS audit_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    event_type TEXT NOT NULL,
    application_id TEXT,
    slot_id TEXT,
    actor TEXT NOT NULL DEFAULT '',
    summary TEXT NOT NULL,
    details TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_audit_application ON audit_log(application_id);
CREATE INDEX IF NOT EXISTS idx_audit_created_at ON audit_log(created_at);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
