package transport

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors returned by Client implementations. Check with errors.Is.
var (
	// ErrNotFound is returned when no account owns the requested username.
	ErrNotFound = errors.New("transport: username not found")

	// ErrInvalidHandle is returned when the username is empty or not a
	// syntactically valid handle.
	ErrInvalidHandle = errors.New("transport: invalid handle")

	// ErrNotUser is returned when the username resolves to a channel, group
	// or other non-user peer.
	ErrNotUser = errors.New("transport: not a user")

	// ErrPeerBlocked is returned when the platform refuses delivery to the
	// peer (blocked, or the account is restricted from messaging it).
	ErrPeerBlocked = errors.New("transport: peer blocked")
)

// FloodWaitError reports a platform-mandated pause before the next request.
type FloodWaitError struct {
	Wait time.Duration
}

func (e *FloodWaitError) Error() string {
	return fmt.Sprintf("transport: flood wait %s", e.Wait)
}

// AsFloodWait extracts the mandated wait from err, if it carries one.
func AsFloodWait(err error) (time.Duration, bool) {
	var fw *FloodWaitError
	if errors.As(err, &fw) {
		return fw.Wait, true
	}
	return 0, false
}
