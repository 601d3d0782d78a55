package telegram

import (
	"context"

	"github.com/gotd/td/tg"

	"tgsend/internal/transport"
)

// SendText delivers a plain-text message to a previously resolved user.
// The access hash in to must come from this session.
func (c *Client) SendText(ctx context.Context, to transport.User, text string) error {
	peer := &tg.InputPeerUser{UserID: to.ID, AccessHash: to.AccessHash}
	if _, err := c.sender.To(peer).Text(ctx, text); err != nil {
		return classifySendErr(err)
	}
	return nil
}
