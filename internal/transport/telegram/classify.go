package telegram

import (
	"fmt"

	"github.com/gotd/td/tgerr"

	"tgsend/internal/transport"
)

// RPC error types that map onto the transport taxonomy.
const (
	errUsernameNotOccupied = "USERNAME_NOT_OCCUPIED"
	errUsernameInvalid     = "USERNAME_INVALID"
	errPeerFlood           = "PEER_FLOOD"
	errUserIsBlocked       = "USER_IS_BLOCKED"
	errYouBlockedUser      = "YOU_BLOCKED_USER"
)

// classifyResolveErr folds directory errors into the transport sentinels.
// Unrecognized errors pass through untouched.
func classifyResolveErr(err error) error {
	switch {
	case tgerr.Is(err, errUsernameNotOccupied):
		return fmt.Errorf("%w: %v", transport.ErrNotFound, err)
	case tgerr.Is(err, errUsernameInvalid):
		return fmt.Errorf("%w: %v", transport.ErrInvalidHandle, err)
	default:
		return err
	}
}

// classifySendErr folds delivery errors into the transport taxonomy.
// FLOOD_WAIT carries the platform-mandated pause; PEER_FLOOD does not and
// means the account is restricted from messaging the peer, so it lands with
// the blocked family.
func classifySendErr(err error) error {
	if wait, ok := tgerr.AsFloodWait(err); ok {
		return &transport.FloodWaitError{Wait: wait}
	}
	if tgerr.Is(err, errPeerFlood, errUserIsBlocked, errYouBlockedUser) {
		return fmt.Errorf("%w: %v", transport.ErrPeerBlocked, err)
	}
	return err
}
