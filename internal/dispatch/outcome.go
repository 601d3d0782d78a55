package dispatch

import "time"

// Status classifies the terminal result of one send attempt.
type Status string

const (
	StatusSent          Status = "sent"
	StatusNotFound      Status = "not_found"
	StatusInvalidHandle Status = "invalid_handle"
	StatusNotUser       Status = "not_a_user"
	StatusRateLimited   Status = "rate_limited"
	StatusBlocked       Status = "blocked"
	StatusFailed        Status = "failed"
)

// Outcome is the terminal result of one dispatch attempt. Exactly one Status
// applies. Wait is set only for StatusRateLimited; Err carries the cause for
// everything but StatusSent.
type Outcome struct {
	Handle string
	Status Status
	Wait   time.Duration
	Err    error
}

// OK reports whether the message was delivered.
func (o Outcome) OK() bool { return o.Status == StatusSent }
