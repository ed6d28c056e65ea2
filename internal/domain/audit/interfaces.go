package audit

import "context"

// Repository provides persistence for audit entries.
type Repository interface {
	Log(ctx context.Context, entry *Entry) error
	List(ctx context.Context, opts ListOptions) ([]Entry, error)
}

// ListOptions provides filtering options for listing audit entries
type ListOptions struct {
	ApplicationID *string
	SlotID        *string
	EventType     *EventType
	Limit         int
	Offset        int
}
