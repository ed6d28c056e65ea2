package booking

import (
	"context"
	"time"

	"github.com/brookfield/admissions/internal/auth"
	"github.com/brookfield/admissions/internal/domain/application"
	"github.com/brookfield/admissions/internal/domain/audit"
	"github.com/brookfield/admissions/internal/domain/slot"
)

// SlotRepository provides the claim primitives for booking.
type SlotRepository interface {
	Get(ctx context.Context, id string) (*slot.Slot, error)
	Claim(ctx context.Context, slotID, applicationID string) error
	Release(ctx context.Context, id string) error
}

// ApplicationReader provides application lookup for precondition checks.
type ApplicationReader interface {
	Get(ctx context.Context, id string) (*application.Application, error)
}

// Scheduler commits the claimed slot's start time onto the application once
// a claim lands. The write is guarded; a concurrent booking for the same
// application loses with application.ErrAlreadyScheduled.
type Scheduler interface {
	Schedule(ctx context.Context, principal auth.Principal, id string, interviewDate time.Time) (*application.Application, error)
}

// AuditLog records admissions events.
type AuditLog interface {
	Log(ctx context.Context, entry *audit.Entry) error
}
