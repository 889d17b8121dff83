package panel

import "time"

// Session status values.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Session captures one panel run. The ID doubles as the output directory
// suffix, so it stays filesystem-safe.
type Session struct {
	ID               string    `json:"id"`
	Topic            string    `json:"topic"`
	Domain           string    `json:"domain,omitempty"`
	Status           string    `json:"status"`
	ExpertNames      []string  `json:"expertNames"`
	DocumentProvided bool      `json:"documentProvided"`
	CreatedAt        time.Time `json:"createdAt"`
	Error            string    `json:"error,omitempty"`
}

// SessionIDFormat is the timestamp layout used for session identifiers.
const SessionIDFormat = "20060102_150405"

// NewSessionID derives a session identifier from the start time.
func NewSessionID(t time.Time) string {
	return t.Format(SessionIDFormat)
}
