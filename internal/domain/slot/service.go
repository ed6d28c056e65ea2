package slot

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
	"github.com/google/uuid"
)

// Service handles the staff-maintained interview slot calendar.
type Service struct {
	slots       Repository
	apps        ApplicationReader
	transitions Transitioner
	audits      AuditLog
	logger      *slog.Logger
}

// NewService creates a new slot service.
func NewService(
	slots Repository,
	apps ApplicationReader,
	transitions Transitioner,
	audits AuditLog,
	logger *slog.Logger,
) *Service {
	return &Service{
		slots:       slots,
		apps:        apps,
		transitions: transitions,
		audits:      audits,
		logger:      logger,
	}
}

// CreateRequest describes a new slot. Overlap with existing slots is allowed;
// the calendar is the staff's responsibility.
type CreateRequest struct {
	Date      string
	StartTime string
	EndTime   string
}

// Create publishes a new unbooked slot. Staff only.
func (s *Service) Create(ctx context.Context, principal auth.Principal, req CreateRequest) (*Slot, error) {
	if !principal.CanManage() {
		return nil, auth.ErrForbidden
	}

	date, start, end, err := validateWindow(req)
	if err != nil {
		return nil, err
	}

	sl := &Slot{
		ID:        uuid.NewString(),
		Date:      date,
		StartTime: start,
		EndTime:   end,
		CreatedAt: time.Now(),
	}
	if err := s.slots.Create(ctx, sl); err != nil {
		return nil, fmt.Errorf("creating slot: %w", err)
	}

	if s.audits != nil {
		_ = s.audits.Log(ctx, &audit.Entry{
			EventType: audit.TypeSlotCreated,
			SlotID:    &sl.ID,
			Actor:     principal.Email,
			Summary:   fmt.Sprintf("slot created for %s %s-%s", sl.Date, sl.StartTime, sl.EndTime),
		})
	}

	return sl, nil
}

// ListForStaff returns slots with their booking resolved to the child's name.
func (s *Service) ListForStaff(ctx context.Context, principal auth.Principal, opts ListOptions) ([]AdminView, error) {
	if !principal.CanManage() {
		return nil, auth.ErrForbidden
	}

	slots, err := s.slots.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing slots: %w", err)
	}

	views := make([]AdminView, 0, len(slots))
	for _, sl := range slots {
		view := AdminView{Slot: sl}
		if sl.ApplicationID != nil {
			app, err := s.apps.Get(ctx, *sl.ApplicationID)
			switch {
			case err == nil:
				name := app.ChildName
				view.ChildName = &name
			case errors.Is(err, repository.ErrNotFound):
				// Stale back-reference; surface the slot without a name.
			default:
				return nil, fmt.Errorf("resolving booked application: %w", err)
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// ListAvailability returns the family read shape: availability only.
func (s *Service) ListAvailability(ctx context.Context, opts ListOptions) ([]AvailabilityView, error) {
	slots, err := s.slots.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing slots: %w", err)
	}

	views := make([]AvailabilityView, 0, len(slots))
	for _, sl := range slots {
		views = append(views, AvailabilityView{
			ID:        sl.ID,
			Date:      sl.Date,
			StartTime: sl.StartTime,
			EndTime:   sl.EndTime,
			IsBooked:  sl.IsBooked,
		})
	}
	return views, nil
}

// Delete removes an unbooked slot. Deleting a booked slot always fails.
func (s *Service) Delete(ctx context.Context, principal auth.Principal, id string) error {
	if !principal.CanManage() {
		return auth.ErrForbidden
	}
	if id == "" {
		return ErrInvalidInput
	}

	if err := s.slots.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrSlotNotFound
		case errors.Is(err, repository.ErrConflict):
			return ErrSlotBooked
		}
		return fmt.Errorf("deleting slot: %w", err)
	}

	if s.audits != nil {
		_ = s.audits.Log(ctx, &audit.Entry{
			EventType: audit.TypeSlotDeleted,
			SlotID:    &id,
			Actor:     principal.Email,
			Summary:   "slot deleted",
		})
	}
	return nil
}

// Release unbooks a slot and returns the application to interview_pending
// with its interview date cleared. This is the explicit staff path for
// rescheduling; a release that cannot restore the application re-claims the
// slot so the two records never disagree.
func (s *Service) Release(ctx context.Context, principal auth.Principal, id string) error {
	if !principal.CanManage() {
		return auth.ErrForbidden
	}
	if id == "" {
		return ErrInvalidInput
	}

	sl, err := s.slots.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSlotNotFound
		}
		return fmt.Errorf("loading slot: %w", err)
	}
	if !sl.IsBooked || sl.ApplicationID == nil {
		return ErrSlotNotBooked
	}
	appID := *sl.ApplicationID

	if err := s.slots.Release(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrSlotNotFound
		case errors.Is(err, repository.ErrConflict):
			return ErrSlotNotBooked
		}
		return fmt.Errorf("releasing slot: %w", err)
	}

	pending := application.StatusInterviewPending
	_, err = s.transitions.SetStatus(ctx, auth.System(), appID, application.StatusUpdate{
		Status:         &pending,
		ClearInterview: true,
	})
	if err != nil {
		if claimErr := s.slots.Claim(ctx, id, appID); claimErr != nil && s.logger != nil {
			s.logger.Error("failed to re-claim slot after release rollback",
				"slot_id", id,
				"application_id", appID,
				"error", claimErr,
			)
		}
		return fmt.Errorf("restoring application after release: %w", err)
	}

	if s.audits != nil {
		_ = s.audits.Log(ctx, &audit.Entry{
			EventType:     audit.TypeSlotReleased,
			SlotID:        &id,
			ApplicationID: &appID,
			Actor:         principal.Email,
			Summary:       "slot released",
		})
	}
	return nil
}

func validateWindow(req CreateRequest) (date, start, end string, err error) {
	d, err := time.Parse(DateLayout, req.Date)
	if err != nil {
		return "", "", "", ErrInvalidInput
	}
	st, err := time.Parse(ClockLayout, req.StartTime)
	if err != nil {
		return "", "", "", ErrInvalidInput
	}
	et, err := time.Parse(ClockLayout, req.EndTime)
	if err != nil {
		return "", "", "", ErrInvalidInput
	}
	if !st.Before(et) {
		return "", "", "", ErrInvalidInput
	}
	return d.Format(DateLayout), st.Format(ClockLayout), et.Format(ClockLayout), nil
}
