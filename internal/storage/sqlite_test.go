package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	tdsession "github.com/gotd/td/session"

	"tgsend/pkg/logx"
)

func TestSessionPath(t *testing.T) {
	t.Parallel()
	got := SessionPath("/tmp/x", "telegram_session")
	want := filepath.Join("/tmp/x", "telegram_session.session")
	if got != want {
		t.Fatalf("SessionPath = %q, want %q", got, want)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := SessionPath(dir, "test")

	st, err := Open(Config{Path: path, BusyTimeout: time.Second}, logx.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	ctx := context.Background()

	if _, err := st.LoadSession(ctx); !errors.Is(err, tdsession.ErrNotFound) {
		t.Fatalf("LoadSession on empty store = %v, want ErrNotFound", err)
	}

	blob := []byte(`{"dc":2,"auth_key":"abc"}`)
	if err := st.StoreSession(ctx, blob); err != nil {
		t.Fatalf("StoreSession: %v", err)
	}

	got, err := st.LoadSession(ctx)
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if string(got) != string(blob) {
		t.Fatalf("LoadSession = %q, want %q", got, blob)
	}

	// Overwrite keeps a single row.
	blob2 := []byte(`{"dc":4,"auth_key":"def"}`)
	if err := st.StoreSession(ctx, blob2); err != nil {
		t.Fatalf("StoreSession overwrite: %v", err)
	}
	got, err = st.LoadSession(ctx)
	if err != nil {
		t.Fatalf("LoadSession after overwrite: %v", err)
	}
	if string(got) != string(blob2) {
		t.Fatalf("LoadSession = %q, want %q", got, blob2)
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := SessionPath(dir, "test")
	ctx := context.Background()

	st, err := Open(Config{Path: path}, logx.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	blob := []byte("opaque-session-bytes")
	if err := st.StoreSession(ctx, blob); err != nil {
		t.Fatalf("StoreSession: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	st2, err := Open(Config{Path: path}, logx.Nop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st2.Close()

	got, err := st2.LoadSession(ctx)
	if err != nil {
		t.Fatalf("LoadSession after reopen: %v", err)
	}
	if string(got) != string(blob) {
		t.Fatalf("LoadSession = %q, want %q", got, blob)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()
	if _, err := Open(Config{}, logx.Nop()); err == nil {
		t.Fatal("expected error for empty path")
	}
}
