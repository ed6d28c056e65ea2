package application

import (
	"strings"
	"time"
)

// DateLayout is the civil-date layout used for dates of birth and slot dates.
const DateLayout = "2006-01-02"

// NormalizeChildName collapses runs of whitespace in a child's name so
// duplicate detection is not fooled by spacing. Case folding happens in the
// store's comparison and its unique index.
func NormalizeChildName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// ValidateSubmission validates fields required to submit an application.
func ValidateSubmission(req SubmitRequest) error {
	if strings.TrimSpace(req.ChildName) == "" {
		return ErrInvalidInput
	}
	if _, err := time.Parse(DateLayout, req.DateOfBirth); err != nil {
		return ErrInvalidInput
	}
	return nil
}
