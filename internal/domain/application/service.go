package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/brookfield/admissions/internal/auth"
	"github.com/brookfield/admissions/internal/domain/audit"
	"github.com/brookfield/admissions/internal/repository"
	"github.com/google/uuid"
)

// Service handles application submission and lifecycle transitions.
type Service struct {
	apps     Repository
	notifier Notifier
	audits   AuditLog
	logger   *slog.Logger
}

// NewService creates a new application service.
func NewService(apps Repository, notifier Notifier, audits AuditLog, logger *slog.Logger) *Service {
	return &Service{
		apps:     apps,
		notifier: notifier,
		audits:   audits,
		logger:   logger,
	}
}

// SubmitRequest describes a family's application submission.
type SubmitRequest struct {
	ChildName   string
	DateOfBirth string
}

// StatusUpdate describes a staff change to an application. All fields are
// optional; a request with no status is a notes-only save and dispatches no
// notification.
type StatusUpdate struct {
	Status         *Status
	InterviewDate  *time.Time
	ClearInterview bool
	InterviewNotes *string
	AdminNotes     *string
}

// Submit creates an application for the principal's family. A second
// submission for the same child is rejected.
func (s *Service) Submit(ctx context.Context, principal auth.Principal, req SubmitRequest) (*Application, error) {
	if principal.AccountID == "" {
		return nil, auth.ErrUnauthorized
	}
	if err := ValidateSubmission(req); err != nil {
		return nil, err
	}

	childName := NormalizeChildName(req.ChildName)
	exists, err := s.apps.ExistsFor(ctx, principal.AccountID, childName, req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("checking for existing application: %w", err)
	}
	if exists {
		return nil, ErrDuplicateChild
	}

	now := time.Now()
	app := &Application{
		ID:          uuid.NewString(),
		FamilyID:    principal.AccountID,
		ChildName:   childName,
		DateOfBirth: req.DateOfBirth,
		Status:      StatusSubmitted,
		SubmittedAt: now,
		UpdatedAt:   now,
	}

	if err := s.apps.Create(ctx, app); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateChild
		}
		return nil, fmt.Errorf("creating application: %w", err)
	}

	if s.audits != nil {
		_ = s.audits.Log(ctx, &audit.Entry{
			EventType:     audit.TypeApplicationSubmitted,
			ApplicationID: &app.ID,
			Actor:         principal.Email,
			Summary:       fmt.Sprintf("application submitted for %s", app.ChildName),
		})
	}

	s.dispatch(ctx, app, StatusSubmitted)

	return app, nil
}

// Get returns an application visible to the principal.
func (s *Service) Get(ctx context.Context, principal auth.Principal, id string) (*Application, error) {
	app, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !principal.CanActFor(app.FamilyID) {
		return nil, auth.ErrForbidden
	}
	return app, nil
}

// ListAll returns every application. Staff only.
func (s *Service) ListAll(ctx context.Context, principal auth.Principal) ([]Application, error) {
	if !principal.CanManage() {
		return nil, auth.ErrForbidden
	}
	return s.apps.List(ctx)
}

// ListMine returns the principal's family applications.
func (s *Service) ListMine(ctx context.Context, principal auth.Principal) ([]Application, error) {
	if principal.AccountID == "" {
		return nil, auth.ErrUnauthorized
	}
	return s.apps.ListByFamily(ctx, principal.AccountID)
}

// SetStatus applies field updates and an optional status transition. The
// notification fires exactly once per genuine status change; re-setting the
// current status is a dispatch no-op, and dispatcher failures never revert
// the persisted transition.
func (s *Service) SetStatus(ctx context.Context, principal auth.Principal, id string, upd StatusUpdate) (*Application, error) {
	if !principal.CanManage() {
		return nil, auth.ErrForbidden
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Status != nil && !upd.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	updated := *current
	changed := false
	if upd.Status != nil && *upd.Status != current.Status {
		updated.Status = *upd.Status
		changed = true
	}
	if upd.ClearInterview {
		updated.InterviewDate = nil
	} else if upd.InterviewDate != nil {
		updated.InterviewDate = upd.InterviewDate
	}
	if upd.InterviewNotes != nil {
		updated.InterviewNotes = *upd.InterviewNotes
	}
	if upd.AdminNotes != nil {
		updated.AdminNotes = *upd.AdminNotes
	}
	updated.UpdatedAt = time.Now()

	if err := s.apps.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("updating application: %w", err)
	}

	if changed {
		if s.audits != nil {
			_ = s.audits.Log(ctx, &audit.Entry{
				EventType:     audit.TypeStatusChanged,
				ApplicationID: &updated.ID,
				Actor:         actorLabel(principal),
				Summary:       fmt.Sprintf("status changed from %s to %s", current.Status, updated.Status),
			})
		}
		s.dispatch(ctx, &updated, updated.Status)
	}

	return &updated, nil
}

// Schedule moves the application to interview_scheduled with the given
// interview date. The underlying write is guarded on no interview being set,
// so of two racing bookings for the same application exactly one commits;
// the loser gets ErrAlreadyScheduled without touching the row.
func (s *Service) Schedule(ctx context.Context, principal auth.Principal, id string, interviewDate time.Time) (*Application, error) {
	if !principal.CanManage() {
		return nil, auth.ErrForbidden
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.apps.ScheduleInterview(ctx, id, interviewDate); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrApplicationNotFound
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrAlreadyScheduled
		}
		return nil, fmt.Errorf("scheduling interview: %w", err)
	}

	updated := *current
	updated.Status = StatusInterviewScheduled
	updated.InterviewDate = &interviewDate
	updated.UpdatedAt = time.Now()

	if s.audits != nil {
		_ = s.audits.Log(ctx, &audit.Entry{
			EventType:     audit.TypeStatusChanged,
			ApplicationID: &updated.ID,
			Actor:         actorLabel(principal),
			Summary:       fmt.Sprintf("status changed from %s to %s", current.Status, StatusInterviewScheduled),
		})
	}
	s.dispatch(ctx, &updated, StatusInterviewScheduled)

	return &updated, nil
}

func (s *Service) load(ctx context.Context, id string) (*Application, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	app, err := s.apps.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("loading application: %w", err)
	}
	return app, nil
}

func (s *Service) dispatch(ctx context.Context, app *Application, status Status) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Send(ctx, app, status); err != nil && s.logger != nil {
		s.logger.Warn("notification dispatch failed",
			"application_id", app.ID,
			"status", status,
			"error", err,
		)
	}
}

func actorLabel(principal auth.Principal) string {
	if principal.IsSystem() {
		return "system"
	}
	return principal.Email
}
