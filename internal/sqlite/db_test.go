package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a file-backed SQLite database in a temp dir so that
// concurrent connections observe the same state.
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func insertAccount(t *testing.T, db *DB, id string, admin bool) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO accounts (id, token_hash, email, is_admin) VALUES (?, ?, ?, ?)`,
		id, "hash-"+id, id+"@example.com", admin)
	require.NoError(t, err)
}

func insertApplication(t *testing.T, db *DB, id, familyID, childName string) {
	t.Helper()
	now := time.Now()
	_, err := db.Exec(
		`INSERT INTO applications (id, family_id, child_name, date_of_birth, status, submitted_at, updated_at)
		 VALUES (?, ?, ?, ?, 'submitted', ?, ?)`,
		id, familyID, childName, "2019-03-14", now, now)
	require.NoError(t, err)
}

func insertSlot(t *testing.T, db *DB, id, date, start, end string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO slots (id, date, start_time, end_time, is_booked, created_at) VALUES (?, ?, ?, ?, 0, ?)`,
		id, date, start, end, time.Now())
	require.NoError(t, err)
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{
		"accounts",
		"applications",
		"slots",
		"audit_log",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

// TestMigrationsIdempotent verifies a second run is harmless
func TestMigrationsIdempotent(t *testing.T) {
	db := NewTestDB(t)
	require.NoError(t, db.RunMigrations())
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

// TestPragmasApplyToEveryConnection holds several pool connections open at
// once and checks each one: the pragmas must hold pool-wide, or a second
// connection would run with foreign keys off and no busy timeout.
func TestPragmasApplyToEveryConnection(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	conns := make([]*sql.Conn, 0, 3)
	for i := 0; i < 3; i++ {
		conn, err := db.Conn(ctx)
		require.NoError(t, err)
		conns = append(conns, conn)
	}

	for _, conn := range conns {
		var fk, timeout int
		require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk))
		require.Equal(t, 1, fk, "foreign keys off on a pooled connection")
		require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&timeout))
		require.Equal(t, 5000, timeout, "busy timeout unset on a pooled connection")
	}

	for _, conn := range conns {
		require.NoError(t, conn.Close())
	}
}

// TestSlotBookingConsistencyCheck verifies the slots table rejects a booked
// row without a back-reference
func TestSlotBookingConsistencyCheck(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO slots (id, date, start_time, end_time, is_booked, application_id)
		 VALUES ('s1', '2026-02-10', '09:00', '09:30', 1, NULL)`)
	require.Error(t, err, "booked slot without application_id must be rejected")
}
