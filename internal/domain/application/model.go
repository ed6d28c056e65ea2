package application

import "time"

// Status represents the lifecycle state of an admissions application
type Status string

const (
	StatusSubmitted          Status = "submitted"
	StatusUnderReview        Status = "under_review"
	StatusInterviewPending   Status = "interview_pending"
	StatusInterviewScheduled Status = "interview_scheduled"
	StatusAdmitted           Status = "admitted"
	StatusWaitlist           Status = "waitlist"
	StatusRejected           Status = "rejected"
	StatusDeclined           Status = "declined"
	StatusWithdrawn          Status = "withdrawn"
)

// Statuses lists every recognized status value.
var Statuses = []Status{
	StatusSubmitted,
	StatusUnderReview,
	StatusInterviewPending,
	StatusInterviewScheduled,
	StatusAdmitted,
	StatusWaitlist,
	StatusRejected,
	StatusDeclined,
	StatusWithdrawn,
}

// Valid reports whether the status is one of the recognized values.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseStatus converts a raw string into a recognized status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Application represents one child's admissions application
type Application struct {
	ID             string     `json:"id"`
	FamilyID       string     `json:"family_id"`
	ChildName      string     `json:"child_name"`
	DateOfBirth    string     `json:"date_of_birth"`
	Status         Status     `json:"status"`
	InterviewDate  *time.Time `json:"interview_date,omitempty"`
	InterviewNotes string     `json:"interview_notes,omitempty"`
	AdminNotes     string     `json:"admin_notes,omitempty"`
	SubmittedAt    time.Time  `json:"submitted_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
