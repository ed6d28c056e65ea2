package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brookfield/admissions/internal/auth"
)

// Service handles audit trail operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new audit service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Log records an audit entry, filling the timestamp if missing.
func (s *Service) Log(ctx context.Context, entry *Entry) error {
	if entry == nil {
		return ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := s.repo.Log(ctx, entry); err != nil {
		return fmt.Errorf("logging audit entry: %w", err)
	}
	return nil
}

// Recent lists audit entries with filtering. Staff only.
func (s *Service) Recent(ctx context.Context, principal auth.Principal, opts ListOptions) ([]Entry, error) {
	if !principal.CanManage() {
		return nil, auth.ErrForbidden
	}
	return s.repo.List(ctx, opts)
}
