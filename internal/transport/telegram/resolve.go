package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/gotd/td/telegram/peers"

	"tgsend/internal/transport"
)

// ResolveUser maps a username to a sendable user via the account directory.
// The empty username is rejected locally; everything else is answered by the
// platform and folded into the transport sentinels.
func (c *Client) ResolveUser(ctx context.Context, username string) (transport.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return transport.User{}, transport.ErrInvalidHandle
	}

	p, err := c.peers.ResolveDomain(ctx, username)
	if err != nil {
		return transport.User{}, classifyResolveErr(err)
	}

	u, ok := p.(peers.User)
	if !ok {
		return transport.User{}, fmt.Errorf("%q is a %s: %w", username, peerKind(p), transport.ErrNotUser)
	}

	raw := u.Raw()
	return transport.User{
		ID:         raw.ID,
		AccessHash: raw.AccessHash,
		Username:   raw.Username,
		FirstName:  raw.FirstName,
		LastName:   raw.LastName,
		Bot:        raw.Bot,
	}, nil
}

func peerKind(p peers.Peer) string {
	switch p.(type) {
	case peers.Chat:
		return "group"
	case peers.Channel:
		return "channel"
	default:
		return "peer"
	}
}
