package audit

import "time"

// EventType represents the type of admissions event
type EventType string

const (
	TypeApplicationSubmitted EventType = "application_submitted"
	TypeStatusChanged        EventType = "status_changed"
	TypeSlotCreated          EventType = "slot_created"
	TypeSlotDeleted          EventType = "slot_deleted"
	TypeSlotBooked           EventType = "slot_booked"
	TypeSlotReleased         EventType = "slot_released"
)

// Entry represents an event in the admissions audit trail
type Entry struct {
	ID            int64     `json:"id"`
	EventType     EventType `json:"type"`
	ApplicationID *string   `json:"application_id,omitempty"`
	SlotID        *string   `json:"slot_id,omitempty"`
	Actor         string    `json:"actor"`
	Summary       string    `json:"summary"`
	Details       string    `json:"details,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
