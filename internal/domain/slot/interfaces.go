package slot

import (
	"context"

	"github.com/brookfield/admissions/internal/auth"
	"github.com/brookfield/admissions/internal/domain/application"
	"github.com/brookfield/admissions/internal/domain/audit"
)

// Repository provides persistence for slots.
type Repository interface {
	Create(ctx context.Context, s *Slot) error
	Get(ctx context.Context, id string) (*Slot, error)
	List(ctx context.Context, opts ListOptions) ([]Slot, error)
	Delete(ctx context.Context, id string) error
	Claim(ctx context.Context, slotID, applicationID string) error
	Release(ctx context.Context, id string) error
}

// ListOptions provides date-range filtering for listing slots
type ListOptions struct {
	From string
	To   string
}

// ApplicationReader resolves booked applications for the staff read shape.
type ApplicationReader interface {
	Get(ctx context.Context, id string) (*application.Application, error)
}

// Transitioner applies application status changes when a slot is released.
type Transitioner interface {
	SetStatus(ctx context.Context, principal auth.Principal, id string, upd application.StatusUpdate) (*application.Application, error)
}

// AuditLog records admissions events.
type AuditLog interface {
	Log(ctx context.Context, entry *audit.Entry) error
}
