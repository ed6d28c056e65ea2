package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/brookfield/admissions/internal/auth"
	"github.com/brookfield/admissions/internal/domain/application"
	"github.com/brookfield/admissions/internal/domain/audit"
	"github.com/brookfield/admissions/internal/repository"
)

// Service performs the atomic claim of a slot for one application.
type Service struct {
	slots     SlotRepository
	apps      ApplicationReader
	scheduler Scheduler
	audits    AuditLog
	logger    *slog.Logger
}

// NewService creates a new booking service.
func NewService(
	slots SlotRepository,
	apps ApplicationReader,
	scheduler Scheduler,
	audits AuditLog,
	logger *slog.Logger,
) *Service {
	return &Service{
		slots:     slots,
		apps:      apps,
		scheduler: scheduler,
		audits:    audits,
		logger:    logger,
	}
}

// Result holds the committed interview time.
type Result struct {
	InterviewDate time.Time `json:"interview_date"`
}

// Book claims a slot for an application. The claim is a single conditional
// update against the store; exactly one of any number of concurrent callers
// wins, and the rest receive ErrSlotTaken. The booking only commits once the
// application row carries the interview date; any failure between the claim
// and that write releases the slot again.
func (s *Service) Book(ctx context.Context, principal auth.Principal, applicationID, slotID string) (*Result, error) {
	if applicationID == "" || slotID == "" {
		return nil, ErrInvalidInput
	}

	app, err := s.apps.Get(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("loading application: %w", err)
	}
	if !principal.CanActFor(app.FamilyID) {
		return nil, auth.ErrForbidden
	}
	if app.InterviewDate != nil {
		return nil, ErrAlreadyScheduled
	}

	if err := s.slots.Claim(ctx, slotID, applicationID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrSlotNotFound
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("claiming slot: %w", err)
	}

	result, err := s.commit(ctx, applicationID, slotID)
	if err != nil {
		s.release(ctx, slotID, applicationID)
		return nil, err
	}

	if s.audits != nil {
		_ = s.audits.Log(ctx, &audit.Entry{
			EventType:     audit.TypeSlotBooked,
			SlotID:        &slotID,
			ApplicationID: &applicationID,
			Actor:         actorLabel(principal),
			Summary:       fmt.Sprintf("interview booked for %s", result.InterviewDate.Format(time.RFC3339)),
		})
	}

	return result, nil
}

// commit runs the post-claim half of the booking: the guarded application
// write that catches a double submit. Callers release the claim on any error.
func (s *Service) commit(ctx context.Context, applicationID, slotID string) (*Result, error) {
	sl, err := s.slots.Get(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("loading claimed slot: %w", err)
	}
	start, err := sl.StartInstant()
	if err != nil {
		return nil, fmt.Errorf("resolving slot time: %w", err)
	}

	if _, err := s.scheduler.Schedule(ctx, auth.System(), applicationID, start); err != nil {
		if errors.Is(err, application.ErrAlreadyScheduled) {
			return nil, ErrAlreadyScheduled
		}
		return nil, fmt.Errorf("scheduling application: %w", err)
	}

	return &Result{InterviewDate: start}, nil
}

func (s *Service) release(ctx context.Context, slotID, applicationID string) {
	if err := s.slots.Release(ctx, slotID); err != nil && s.logger != nil {
		s.logger.Error("failed to release slot after booking failure",
			"slot_id", slotID,
			"application_id", applicationID,
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
