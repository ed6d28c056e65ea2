package application

import (
	"context"
	"time"

	"github.com/brookfield/admissions/internal/domain/audit"
)

// Repository provides persistence for applications. ScheduleInterview is a
// conditional write guarded on no interview being set; it reports ErrConflict
// when the guard fails and ErrNotFound when the application is missing.
type Repository interface {
	Create(ctx context.Context, app *Application) error
	Get(ctx context.Context, id string) (*Application, error)
	List(ctx context.Context) ([]Application, error)
	ListByFamily(ctx context.Context, familyID string) ([]Application, error)
	Update(ctx context.Context, app *Application) error
	ScheduleInterview(ctx context.Context, id string, interviewDate time.Time) error
	ExistsFor(ctx context.Context, familyID, childName, dateOfBirth string) (bool, error)
}

// Notifier delivers a status message to the owning family. Delivery is
// best-effort; callers never fail an operation on a Notifier error.
type Notifier interface {
	Send(ctx context.Context, app *Application, newStatus Status) error
}

// AuditLog records admissions events.
type AuditLog interface {
	Log(ctx context.Context, entry *audit.Entry) error
}
