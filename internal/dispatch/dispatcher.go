package dispatch

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"

	"tgsend/internal/transport"
	"tgsend/pkg/logx"
)

// Config tunes batch pacing and the flood-wait retry policy.
type Config struct {
	// Delay is the minimum gap between consecutive sends in a batch.
	// Zero disables pacing.
	Delay time.Duration

	// FloodRetries caps re-attempts after a platform-mandated wait.
	// Zero makes a flood wait terminal.
	FloodRetries int

	// MaxFloodWait bounds the mandated wait the retry policy is willing to
	// sleep out. Longer waits fail the attempt instead. Zero means no bound.
	MaxFloodWait time.Duration

	// OnOutcome, when set, is invoked synchronously for every outcome a
	// batch records. Useful for progress reporting.
	OnOutcome func(Outcome)
}

// Dispatcher resolves username handles and delivers text messages through a
// transport.Client. It owns the client for its lifetime but not the client's
// connection; callers decide the session scope.
type Dispatcher struct {
	client  transport.Client
	cfg     Config
	log     logx.Logger
	limiter *rate.Limiter
}

func New(client transport.Client, cfg Config, log logx.Logger) *Dispatcher {
	if cfg.FloodRetries < 0 {
		cfg.FloodRetries = 0
	}
	return &Dispatcher{
		client: client,
		cfg:    cfg,
		log:    log,
		// rate.Every(0) is Inf, so a zero delay never blocks. Burst 1 keeps
		// the first send immediate and spaces the rest by Delay.
		limiter: rate.NewLimiter(rate.Every(cfg.Delay), 1),
	}
}

// Send resolves handle and delivers text in a single attempt. Every code
// path folds into the returned Outcome; resolution failures short-circuit
// without a send, and nothing is ever re-attempted here.
func (d *Dispatcher) Send(ctx context.Context, handle, text string) Outcome {
	username := NormalizeHandle(handle)

	user, err := d.client.ResolveUser(ctx, username)
	if err != nil {
		return d.classifyResolve(handle, username, err)
	}
	d.log.Info("recipient resolved", logx.String("handle", username), logx.Int64("user_id", user.ID))

	if err := d.client.SendText(ctx, user, text); err != nil {
		return d.classifySend(handle, username, err)
	}
	d.log.Info("message sent", logx.String("handle", username), logx.Int64("user_id", user.ID))
	return Outcome{Handle: handle, Status: StatusSent}
}

// SendWithRetry behaves like Send but sleeps out up to FloodRetries
// platform-mandated waits before re-attempting. A cancelled context ends the
// sleep early and the rate-limited outcome stands.
func (d *Dispatcher) SendWithRetry(ctx context.Context, handle, text string) Outcome {
	out := d.Send(ctx, handle, text)
	for attempt := 1; attempt <= d.cfg.FloodRetries && out.Status == StatusRateLimited; attempt++ {
		if d.cfg.MaxFloodWait > 0 && out.Wait > d.cfg.MaxFloodWait {
			d.log.Warn("mandated wait exceeds limit, giving up",
				logx.String("handle", out.Handle), logx.Duration("wait", out.Wait), logx.Duration("max", d.cfg.MaxFloodWait))
			return out
		}
		d.log.Info("waiting out flood limit",
			logx.String("handle", out.Handle), logx.Duration("wait", out.Wait), logx.Int("attempt", attempt))
		if err := sleepCtx(ctx, out.Wait); err != nil {
			return out
		}
		out = d.Send(ctx, handle, text)
	}
	return out
}

// SendBatch sends text to every handle in input order. Consecutive sends are
// paced by Delay; the first is immediate and no delay trails the last. When
// ctx is cancelled the loop stops between sends and the partial result is
// returned along with the context error; unprocessed handles appear in
// neither list. A completed batch returns a nil error even when individual
// sends failed.
func (d *Dispatcher) SendBatch(ctx context.Context, handles []string, text string) (BatchResult, error) {
	res := BatchResult{Total: len(handles)}
	if res.Total == 0 {
		return res, nil
	}
	start := time.Now()
	d.log.Info("batch started", logx.Int("total", res.Total), logx.Duration("delay", d.cfg.Delay))

	for _, h := range handles {
		if err := d.limiter.Wait(ctx); err != nil {
			if cerr := ctx.Err(); cerr != nil {
				err = cerr
			}
			d.log.Warn("batch interrupted",
				logx.Int("processed", len(res.Outcomes)), logx.Int("total", res.Total), logx.Err(err))
			return res, err
		}
		out := d.SendWithRetry(ctx, h, text)
		res.record(out)
		if d.cfg.OnOutcome != nil {
			d.cfg.OnOutcome(out)
		}
	}

	fields := []logx.Field{
		logx.Int("total", res.Total),
		logx.Int("sent", res.SuccessCount()),
		logx.Int("failed", res.FailureCount()),
		logx.Duration("dur", time.Since(start)),
	}
	if res.HasFailures() {
		d.log.Warn("batch finished with failures", fields...)
	} else {
		d.log.Info("batch finished", fields...)
	}
	return res, nil
}

func (d *Dispatcher) classifyResolve(handle, username string, err error) Outcome {
	out := Outcome{Handle: handle, Err: err}
	switch {
	case errors.Is(err, transport.ErrNotFound):
		out.Status = StatusNotFound
		d.log.Warn("recipient not found", logx.String("handle", username))
	case errors.Is(err, transport.ErrInvalidHandle):
		out.Status = StatusInvalidHandle
		d.log.Warn("invalid handle", logx.String("handle", username))
	case errors.Is(err, transport.ErrNotUser):
		out.Status = StatusNotUser
		d.log.Warn("handle is not a user account", logx.String("handle", username))
	default:
		out.Status = StatusFailed
		d.log.Error("resolve failed", logx.String("handle", username), logx.Err(err))
	}
	return out
}

func (d *Dispatcher) classifySend(handle, username string, err error) Outcome {
	out := Outcome{Handle: handle, Err: err}
	if wait, ok := transport.AsFloodWait(err); ok {
		out.Status = StatusRateLimited
		out.Wait = wait
		d.log.Warn("rate limited", logx.String("handle", username), logx.Duration("wait", wait))
		return out
	}
	if errors.Is(err, transport.ErrPeerBlocked) {
		out.Status = StatusBlocked
		d.log.Warn("peer refused delivery", logx.String("handle", username))
		return out
	}
	out.Status = StatusFailed
	d.log.Error("send failed", logx.String("handle", username), logx.Err(err))
	return out
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	tmr := time.NewTimer(d)
	select {
	case <-ctx.Done():
		if !tmr.Stop() {
			<-tmr.C
		}
		return ctx.Err()
	case <-tmr.C:
		return nil
	}
}
