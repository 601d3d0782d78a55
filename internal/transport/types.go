package transport

import "context"

// User is a resolved, individually addressable account. AccessHash is only
// meaningful to the session that resolved it and must not be persisted.
type User struct {
	ID         int64
	AccessHash int64
	Username   string
	FirstName  string
	LastName   string
	Bot        bool
}

// Identity describes the account the client is signed in as.
type Identity struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

type Client interface {
	// ResolveUser maps a username (no leading @) to a sendable User.
	// Returns ErrNotFound, ErrInvalidHandle or ErrNotUser on the
	// corresponding directory outcomes.
	ResolveUser(ctx context.Context, username string) (User, error)

	// SendText delivers a plain-text message to a previously resolved user.
	SendText(ctx context.Context, to User, text string) error
}
