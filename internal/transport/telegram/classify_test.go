package telegram

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gotd/td/tgerr"

	"tgsend/internal/transport"
)

func TestClassifyResolveErr(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "unoccupied username", err: tgerr.New(400, "USERNAME_NOT_OCCUPIED"), want: transport.ErrNotFound},
		{name: "invalid username", err: tgerr.New(400, "USERNAME_INVALID"), want: transport.ErrInvalidHandle},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := classifyResolveErr(tt.err)
			if !errors.Is(got, tt.want) {
				t.Fatalf("classifyResolveErr(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassifyResolveErrPassthrough(t *testing.T) {
	t.Parallel()
	err := tgerr.New(500, "INTERNAL")
	got := classifyResolveErr(err)
	if !errors.Is(got, err) {
		t.Fatalf("classifyResolveErr changed unrecognized error: %v", got)
	}
	for _, sentinel := range []error{transport.ErrNotFound, transport.ErrInvalidHandle, transport.ErrNotUser} {
		if errors.Is(got, sentinel) {
			t.Fatalf("unrecognized error classified as %v", sentinel)
		}
	}
}

func TestClassifySendErrFloodWait(t *testing.T) {
	t.Parallel()
	got := classifySendErr(tgerr.New(420, "FLOOD_WAIT_13"))

	wait, ok := transport.AsFloodWait(got)
	if !ok {
		t.Fatalf("classifySendErr(FLOOD_WAIT_13) = %v, want FloodWaitError", got)
	}
	if wait != 13*time.Second {
		t.Fatalf("wait = %v, want 13s", wait)
	}
}

func TestClassifySendErrWrappedFloodWait(t *testing.T) {
	t.Parallel()
	wrapped := fmt.Errorf("send: %w", tgerr.New(420, "FLOOD_WAIT_7"))
	got := classifySendErr(wrapped)

	wait, ok := transport.AsFloodWait(got)
	if !ok {
		t.Fatalf("wrapped flood wait not recognized: %v", got)
	}
	if wait != 7*time.Second {
		t.Fatalf("wait = %v, want 7s", wait)
	}
}

func TestClassifySendErrBlockedFamily(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
	}{
		{name: "peer flood", err: tgerr.New(400, "PEER_FLOOD")},
		{name: "user blocked us", err: tgerr.New(400, "USER_IS_BLOCKED")},
		{name: "we blocked user", err: tgerr.New(400, "YOU_BLOCKED_USER")},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := classifySendErr(tt.err)
			if !errors.Is(got, transport.ErrPeerBlocked) {
				t.Fatalf("classifySendErr(%v) = %v, want ErrPeerBlocked", tt.err, got)
			}
		})
	}
}

func TestClassifySendErrPassthrough(t *testing.T) {
	t.Parallel()
	err := errors.New("connection reset")
	if got := classifySendErr(err); !errors.Is(got, err) {
		t.Fatalf("classifySendErr changed unrecognized error: %v", got)
	}
}
