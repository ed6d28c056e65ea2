package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/brookfield/admissions/internal/auth"
	"github.com/brookfield/admissions/internal/repository"
)

// AccountRepository implements repository.AccountRepository for SQLite
type AccountRepository struct {
	db *DB
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create provisions an account keyed by its token hash
func (r *AccountRepository) Create(ctx context.Context, tokenHash string, account *auth.Account) error {
	query := `
		INSERT INTO accounts (id, token_hash, email, name, is_admin, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	createdAt := account.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		tokenHash,
		account.Email,
		account.Name,
		account.Admin,
		createdAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetByID retrieves an account by its ID
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*auth.Account, error) {
	query := `
		SELECT id, email, name, is_admin, created_at, last_used
		FROM accounts
		WHERE id = ?
	`
	return r.scanAccount(r.db.QueryRowContext(ctx, query, id))
}

// GetByTokenHash resolves an account from a hashed bearer token
func (r *AccountRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*auth.Account, error) {
	query := `
		SELECT id, email, name, is_admin, created_at, last_used
		FROM accounts
		WHERE token_hash = ?
	`
	return r.scanAccount(r.db.QueryRowContext(ctx, query, tokenHash))
}

// TouchLastUsed records token usage
func (r *AccountRepository) TouchLastUsed(ctx context.Context, tokenHash string) error {
	query := `UPDATE accounts SET last_used = ? WHERE token_hash = ?`
	if _, err := r.db.ExecContext(ctx, query, time.Now(), tokenHash); err != nil {
		return fmt.Errorf("failed to touch account: %w", err)
	}
	return nil
}

func (r *AccountRepository) scanAccount(row *sql.Row) (*auth.Account, error) {
	var acct auth.Account
	err := row.Scan(
		&acct.ID,
		&acct.Email,
		&acct.Name,
		&acct.Admin,
		&acct.CreatedAt,
		&acct.LastUsed,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &acct, nil
}
