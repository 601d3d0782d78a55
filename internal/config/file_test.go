package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFileYAML(t *testing.T) {
	t.Parallel()
	path := writeTempConfig(t, "tgsend.yaml", `
session:
  name: work_account
  dir: /var/lib/tgsend
send:
  delay: 2s
  flood_retries: 0
  max_flood_wait: 30m
logging:
  level: DEBUG
  console: false
  file: /var/log/tgsend.log
`)

	fc, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	cfg := Default()
	if err := ApplyFile(&cfg, fc, nil); err != nil {
		t.Fatalf("ApplyFile: %v", err)
	}

	if cfg.SessionName != "work_account" {
		t.Fatalf("SessionName = %q, want work_account", cfg.SessionName)
	}
	if cfg.SessionDir != "/var/lib/tgsend" {
		t.Fatalf("SessionDir = %q, want /var/lib/tgsend", cfg.SessionDir)
	}
	if cfg.Delay != 2*time.Second {
		t.Fatalf("Delay = %v, want 2s", cfg.Delay)
	}
	if cfg.FloodRetries != 0 {
		t.Fatalf("FloodRetries = %d, want explicit 0", cfg.FloodRetries)
	}
	if cfg.MaxFloodWait != 30*time.Minute {
		t.Fatalf("MaxFloodWait = %v, want 30m", cfg.MaxFloodWait)
	}
	if cfg.LogLevel != "DEBUG" {
		t.Fatalf("LogLevel = %q, want DEBUG", cfg.LogLevel)
	}
	if cfg.LogConsole {
		t.Fatal("LogConsole = true, want false from file")
	}
	if cfg.LogFile != "/var/log/tgsend.log" {
		t.Fatalf("LogFile = %q", cfg.LogFile)
	}
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	t.Parallel()
	path := writeTempConfig(t, "tgsend.yaml", `
send:
  dealy: 2s
`)

	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadFileRejectsTrailingData(t *testing.T) {
	t.Parallel()
	path := writeTempConfig(t, "tgsend.json", `{"send":{"delay":"1s"}}{"extra":true}`)

	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("expected error for trailing data")
	}
	if !strings.Contains(err.Error(), "trailing") && !strings.Contains(err.Error(), "invalid") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadFileRejectsBadDuration(t *testing.T) {
	t.Parallel()
	path := writeTempConfig(t, "tgsend.yaml", `
send:
  delay: fast
`)

	fc, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	cfg := Default()
	if err := ApplyFile(&cfg, fc, nil); err == nil {
		t.Fatal("expected error for unparseable duration")
	}
}

func TestApplyFileRespectsExplicitFlags(t *testing.T) {
	t.Parallel()
	path := writeTempConfig(t, "tgsend.yaml", `
send:
  delay: 10s
`)

	fc, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	cfg := Default()
	cfg.Delay = 2 * time.Second // bound via flag
	changed := map[string]bool{"delay": true}
	if err := ApplyFile(&cfg, fc, changed); err != nil {
		t.Fatalf("ApplyFile: %v", err)
	}
	if cfg.Delay != 2*time.Second {
		t.Fatalf("Delay = %v, want flag value 2s", cfg.Delay)
	}
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
