package telegram

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/telegram/message"
	"github.com/gotd/td/telegram/peers"
	"github.com/gotd/td/tg"
	"go.uber.org/zap"

	"tgsend/internal/transport"
	"tgsend/pkg/logx"
)

const appVersion = "0.1.0"

type Config struct {
	APIID   int
	APIHash string
	Phone   string

	// Password is the two-step verification password. When empty the user
	// is prompted if the account requires one.
	Password string

	// Debug enables the client library's own logging (zap, development
	// encoding) on top of ours.
	Debug bool
}

// Client speaks MTProto through gotd and exposes the narrow resolve/send
// surface the dispatcher needs. Sessions persist through store, so the login
// code is only needed on the first run.
type Client struct {
	cfg Config
	log logx.Logger

	tc     *telegram.Client
	api    *tg.Client
	sender *message.Sender
	peers  *peers.Manager

	self transport.Identity
}

func New(cfg Config, store session.Storage, log logx.Logger) (*Client, error) {
	if cfg.APIID == 0 || strings.TrimSpace(cfg.APIHash) == "" {
		return nil, errors.New("api credentials are required")
	}
	if strings.TrimSpace(cfg.Phone) == "" {
		return nil, errors.New("phone number is required")
	}
	if log.IsZero() {
		log = logx.Nop()
	}

	var zlog *zap.Logger
	if cfg.Debug {
		zl, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("debug logger: %w", err)
		}
		zlog = zl
	}

	tc := telegram.NewClient(cfg.APIID, cfg.APIHash, telegram.Options{
		SessionStorage: store,
		Logger:         zlog,
		// Pure sender: we never consume the update stream.
		NoUpdates: true,
		Device: telegram.DeviceConfig{
			DeviceModel:    "tgsend",
			SystemVersion:  runtime.GOOS,
			AppVersion:     appVersion,
			SystemLangCode: "en",
			LangCode:       "en",
		},
	})

	c := &Client{cfg: cfg, log: log, tc: tc}
	c.api = tc.API()
	c.sender = message.NewSender(c.api)
	c.peers = peers.Options{Logger: zlog}.Build(c.api)
	return c, nil
}

// Run connects, signs in when the stored session is absent or expired, and
// executes fn inside the connected scope. The connection is torn down when
// fn returns, on every path out.
func (c *Client) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	return c.tc.Run(ctx, func(ctx context.Context) error {
		flow := auth.NewFlow(termAuth{phone: c.cfg.Phone, password: c.cfg.Password}, auth.SendCodeOptions{})
		if err := c.tc.Auth().IfNecessary(ctx, flow); err != nil {
			return fmt.Errorf("sign in: %w", err)
		}

		me, err := c.tc.Self(ctx)
		if err != nil {
			return fmt.Errorf("load self: %w", err)
		}
		c.self = transport.Identity{
			ID:        me.ID,
			Username:  me.Username,
			FirstName: me.FirstName,
			LastName:  me.LastName,
		}
		c.log.Info("signed in",
			logx.Int64("user_id", c.self.ID),
			logx.String("username", c.self.Username),
			logx.String("first_name", c.self.FirstName))

		return fn(ctx)
	})
}

// Self describes the signed-in account. Valid only inside Run.
func (c *Client) Self() transport.Identity { return c.self }
