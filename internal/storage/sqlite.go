package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tdsession "github.com/gotd/td/session"
	_ "modernc.org/sqlite"

	"tgsend/pkg/logx"
)

// Config configures the session store.
type Config struct {
	Path        string
	BusyTimeout time.Duration // 0 means default
}

// SessionPath composes the on-disk location for a named session:
// <dir>/<name>.session.
func SessionPath(dir, name string) string {
	return filepath.Join(dir, name+".session")
}

// Store persists the MTProto session blob in a single-row SQLite database
// and implements the client library's session.Storage.
type Store struct {
	db  *sql.DB
	log logx.Logger
}

func Open(cfg Config, log logx.Logger) (*Store, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, errors.New("session path is required")
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a small number of concurrent writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	st := &Store{db: db, log: log}

	// Basic pragmas.
	if cfg.BusyTimeout > 0 {
		ms := cfg.BusyTimeout.Milliseconds()
		_, _ = db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", ms))
	}
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	if err := st.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS session (
    id         INTEGER PRIMARY KEY CHECK (id = 1),
    data       BLOB NOT NULL,
    updated_at TEXT NOT NULL
)`)
	return err
}

// LoadSession returns the stored session blob, or the library's ErrNotFound
// when the store is empty (first run, before sign-in).
func (s *Store) LoadSession(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM session WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, tdsession.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, tdsession.ErrNotFound
	}
	return data, nil
}

// StoreSession replaces the stored blob. The client calls this on every
// session change (auth keys, DC migration), so it must stay cheap.
func (s *Store) StoreSession(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session(id, data, updated_at) VALUES(1,?,?)
		 ON CONFLICT(id) DO UPDATE SET data=excluded.data, updated_at=excluded.updated_at`,
		data, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err == nil {
		s.log.Debug("session persisted", logx.Int("bytes", len(data)))
	}
	return err
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
