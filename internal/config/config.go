package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables. Credentials use the bare names most Telegram
// tooling agrees on; tool settings are namespaced.
const (
	EnvAPIID       = "API_ID"
	EnvAPIHash     = "API_HASH"
	EnvPhone       = "PHONE_NUMBER"
	EnvSessionName = "SESSION_NAME"

	EnvSessionDir   = "TGSEND_SESSION_DIR"
	EnvDelay        = "TGSEND_DELAY"
	EnvFloodRetries = "TGSEND_FLOOD_RETRIES"
	EnvLogLevel     = "TGSEND_LOG_LEVEL"
	EnvLogFile      = "TGSEND_LOG_FILE"
	EnvPassword     = "TGSEND_PASSWORD"
)

// DefaultSessionName matches the long-standing on-disk session naming, so
// an existing <name>.session file keeps working.
const DefaultSessionName = "telegram_session"

// Config is the full runtime configuration.
type Config struct {
	// Credentials. Required; never logged.
	APIID   int
	APIHash string
	Phone   string

	// Password is the optional two-step verification password. When empty
	// the sign-in flow prompts for it.
	Password string

	// Session naming.
	SessionName string
	SessionDir  string

	// Sending.
	Delay        time.Duration
	FloodRetries int
	MaxFloodWait time.Duration

	// Logging.
	LogLevel   string
	LogFile    string
	LogConsole bool
	Debug      bool
}

func Default() Config {
	return Config{
		SessionName:  DefaultSessionName,
		SessionDir:   ".",
		Delay:        time.Second,
		FloodRetries: 1,
		MaxFloodWait: time.Hour,
		LogLevel:     "INFO",
		LogFile:      "tgsend.log",
		LogConsole:   true,
	}
}

// ApplyEnv overlays environment values onto cfg. A .env file in the working
// directory is honored first; variables already present in the process
// environment win over the file, and flags set explicitly on the command
// line (the changed map) win over both.
func ApplyEnv(cfg *Config, changed map[string]bool) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	if raw := strings.TrimSpace(os.Getenv(EnvAPIID)); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", EnvAPIID, raw)
		}
		cfg.APIID = id
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIHash)); v != "" {
		cfg.APIHash = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPhone)); v != "" {
		cfg.Phone = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		cfg.Password = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSessionName)); v != "" {
		cfg.SessionName = v
	}

	s := newSetter(changed)
	s.setString("session-dir", os.Getenv(EnvSessionDir), &cfg.SessionDir)
	if err := s.setDuration("delay", os.Getenv(EnvDelay), &cfg.Delay); err != nil {
		return err
	}
	if err := s.setIntFromString("flood-retries", os.Getenv(EnvFloodRetries), &cfg.FloodRetries); err != nil {
		return err
	}
	s.setString("log-level", os.Getenv(EnvLogLevel), &cfg.LogLevel)
	s.setString("log-file", os.Getenv(EnvLogFile), &cfg.LogFile)
	return nil
}

// Validate checks the configuration and reports every missing required
// credential in a single error, so the environment can be fixed in one pass.
func (c *Config) Validate() error {
	var missing []string
	if c.APIID == 0 {
		missing = append(missing, EnvAPIID)
	}
	if strings.TrimSpace(c.APIHash) == "" {
		missing = append(missing, EnvAPIHash)
	}
	if strings.TrimSpace(c.Phone) == "" {
		missing = append(missing, EnvPhone)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required credentials: %s", strings.Join(missing, ", "))
	}

	if c.Delay < 0 {
		return fmt.Errorf("delay must be >= 0")
	}
	if c.FloodRetries < 0 {
		return fmt.Errorf("flood-retries must be >= 0")
	}
	if c.MaxFloodWait < 0 {
		return fmt.Errorf("max flood wait must be >= 0")
	}

	if strings.TrimSpace(c.SessionName) == "" {
		c.SessionName = DefaultSessionName
	}
	if strings.TrimSpace(c.SessionDir) == "" {
		c.SessionDir = "."
	}
	return nil
}

// setter applies values while respecting flag precedence: a value is only
// applied when the corresponding flag was not set explicitly.
type setter struct {
	changed map[string]bool
}

func newSetter(changed map[string]bool) *setter {
	return &setter{changed: changed}
}

func (s *setter) setString(flag, value string, dst *string) {
	value = strings.TrimSpace(value)
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *setter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

func (s *setter) setInt(flag string, value *int, dst *int) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

func (s *setter) setDuration(flag, value string, dst *time.Duration) error {
	value = strings.TrimSpace(value)
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := parseDurationField(flag, value)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

func (s *setter) setIntFromString(flag, value string, dst *int) error {
	value = strings.TrimSpace(value)
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}

func parseDurationField(path, raw string) (time.Duration, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", path, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: duration must be >= 0", path)
	}
	return d, nil
}
