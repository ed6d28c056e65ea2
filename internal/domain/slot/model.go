package slot

import "time"

// ClockLayout is the wall-clock layout for slot start and end times.
const ClockLayout = "15:04"

// DateLayout is the civil-date layout for slot dates.
const DateLayout = "2006-01-02"

// Slot represents one bookable interview time window
type Slot struct {
	ID            string    `json:"id"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	IsBooked      bool      `json:"is_booked"`
	ApplicationID *string   `json:"application_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// StartInstant combines the slot's date and start time into a single UTC
// timestamp, the value stored on the application as its interview date.
func (s *Slot) StartInstant() (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+ClockLayout, s.Date+" "+s.StartTime, time.UTC)
}

// AdminView is the staff read shape: the full slot plus the booked child's
// name when a booking exists.
type AdminView struct {
	Slot
	ChildName *string `json:"child_name,omitempty"`
}

// AvailabilityView is the family read shape: times and availability only,
// with no booking back-reference.
type AvailabilityView struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsBooked  bool   `json:"is_booked"`
}
