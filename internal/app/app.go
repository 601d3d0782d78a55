package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tgsend/internal/config"
	"tgsend/internal/dispatch"
	"tgsend/internal/storage"
	"tgsend/internal/transport"
	"tgsend/internal/transport/telegram"
	"tgsend/pkg/logx"
)

// Options selects the run mode. Interactive wins over BulkFile; with
// neither set, Handle and Message drive a single send.
type Options struct {
	Handle      string
	Message     string
	Interactive bool
	BulkFile    string
}

// App wires config, logging, the session store and the client together for
// one invocation.
type App struct {
	cfg  config.Config
	logs *logx.Service
	log  logx.Logger

	store  *storage.Store
	client *telegram.Client
}

func New(cfg config.Config) (*App, error) {
	logSvc, log := logx.New(logx.Config{
		Level:   cfg.LogLevel,
		Console: cfg.LogConsole,
		File:    logx.FileConfig{Enabled: strings.TrimSpace(cfg.LogFile) != "", Path: cfg.LogFile},
	})

	store, err := storage.Open(storage.Config{
		Path:        storage.SessionPath(cfg.SessionDir, cfg.SessionName),
		BusyTimeout: 5 * time.Second,
	}, log.With(logx.String("comp", "session")))
	if err != nil {
		_ = logSvc.Close()
		return nil, fmt.Errorf("open session store: %w", err)
	}

	client, err := telegram.New(telegram.Config{
		APIID:    cfg.APIID,
		APIHash:  cfg.APIHash,
		Phone:    cfg.Phone,
		Password: cfg.Password,
		Debug:    cfg.Debug,
	}, store, log.With(logx.String("comp", "telegram")))
	if err != nil {
		_ = store.Close()
		_ = logSvc.Close()
		return nil, err
	}

	return &App{
		cfg:    cfg,
		logs:   logSvc,
		log:    log.With(logx.String("comp", "app")),
		store:  store,
		client: client,
	}, nil
}

// Close releases the session store and the log sinks.
func (a *App) Close() {
	if a.store != nil {
		_ = a.store.Close()
	}
	if a.logs != nil {
		_ = a.logs.Close()
	}
}

// Run connects the client and executes the selected mode inside the
// connection scope. It returns nil only when every requested send was
// delivered.
func (a *App) Run(ctx context.Context, opts Options) error {
	return a.client.Run(ctx, func(ctx context.Context) error {
		fmt.Printf("✅ Connected as %s\n", identityLabel(a.client.Self()))

		d := dispatch.New(a.client, dispatch.Config{
			Delay:        a.cfg.Delay,
			FloodRetries: a.cfg.FloodRetries,
			MaxFloodWait: a.cfg.MaxFloodWait,
			OnOutcome:    printOutcome,
		}, a.logs.Logger().With(logx.String("comp", "dispatch")))

		switch {
		case opts.Interactive:
			return a.runInteractive(ctx, d)
		case opts.BulkFile != "":
			return a.runBulk(ctx, d, opts.BulkFile, opts.Message)
		default:
			return a.runSingle(ctx, d, opts.Handle, opts.Message)
		}
	})
}

func (a *App) runSingle(ctx context.Context, d *dispatch.Dispatcher, handle, text string) error {
	fmt.Printf("Sending message to @%s...\n", dispatch.NormalizeHandle(handle))

	out := d.SendWithRetry(ctx, handle, text)
	printOutcome(out)
	if !out.OK() {
		return fmt.Errorf("message to %s was not delivered: %s", handle, outcomeReason(out))
	}
	return nil
}

func printOutcome(o dispatch.Outcome) {
	handle := dispatch.NormalizeHandle(o.Handle)
	if o.OK() {
		fmt.Printf("✅ Message sent to @%s\n", handle)
		return
	}
	fmt.Printf("❌ @%s: %s\n", handle, outcomeReason(o))
}

func outcomeReason(o dispatch.Outcome) string {
	switch o.Status {
	case dispatch.StatusNotFound:
		return "user not found"
	case dispatch.StatusInvalidHandle:
		return "invalid username"
	case dispatch.StatusNotUser:
		return "not a user account"
	case dispatch.StatusRateLimited:
		return fmt.Sprintf("rate limited, platform asks to wait %s", o.Wait)
	case dispatch.StatusBlocked:
		return "delivery refused (blocked or restricted)"
	default:
		if o.Err != nil {
			return o.Err.Error()
		}
		return "send failed"
	}
}

func identityLabel(me transport.Identity) string {
	name := strings.TrimSpace(strings.TrimSpace(me.FirstName) + " " + strings.TrimSpace(me.LastName))
	switch {
	case name != "" && me.Username != "":
		return fmt.Sprintf("%s (@%s)", name, me.Username)
	case name != "":
		return name
	case me.Username != "":
		return "@" + me.Username
	default:
		return fmt.Sprintf("id:%d", me.ID)
	}
}
