package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	yaml "go.yaml.in/yaml/v3"
)

// FileConfig is the on-disk settings schema (YAML or JSON). Durations are Go
// duration strings ("500ms", "2s", "1m"). Credentials stay out of it; they
// come from the environment.
type FileConfig struct {
	Session *FileSession `json:"session,omitempty"`
	Send    *FileSend    `json:"send,omitempty"`
	Logging *FileLogging `json:"logging,omitempty"`
}

type FileSession struct {
	Name string `json:"name,omitempty"`
	Dir  string `json:"dir,omitempty"`
}

type FileSend struct {
	Delay string `json:"delay,omitempty"`

	// FloodRetries is a pointer so an explicit 0 (never retry) can be told
	// apart from an omitted field.
	FloodRetries *int   `json:"flood_retries,omitempty"`
	MaxFloodWait string `json:"max_flood_wait,omitempty"`
}

type FileLogging struct {
	Level   string `json:"level,omitempty"`
	Console *bool  `json:"console,omitempty"`
	File    string `json:"file,omitempty"`
}

// LoadFile reads and strictly parses the settings file at path. Unknown
// keys and trailing data are rejected so typos fail loudly.
func LoadFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	jb, _, err := coerceToJSONBytes(path, b)
	if err != nil {
		return fc, err
	}

	dec := json.NewDecoder(bytes.NewReader(jb))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return fc, err
	}
	// reject trailing tokens (e.g. concatenated JSON)
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return fc, fmt.Errorf("invalid config: trailing data")
		}
		return fc, err
	}
	return fc, nil
}

// ApplyFile merges file settings into cfg, skipping fields whose flags were
// set explicitly on the command line.
func ApplyFile(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newSetter(changed)

	if fc.Session != nil {
		s.setString("session", fc.Session.Name, &cfg.SessionName)
		s.setString("session-dir", fc.Session.Dir, &cfg.SessionDir)
	}
	if fc.Send != nil {
		if err := s.setDuration("delay", fc.Send.Delay, &cfg.Delay); err != nil {
			return err
		}
		s.setInt("flood-retries", fc.Send.FloodRetries, &cfg.FloodRetries)
		if err := s.setDuration("max-flood-wait", fc.Send.MaxFloodWait, &cfg.MaxFloodWait); err != nil {
			return err
		}
	}
	if fc.Logging != nil {
		s.setString("log-level", fc.Logging.Level, &cfg.LogLevel)
		s.setBool("log-console", fc.Logging.Console, &cfg.LogConsole)
		s.setString("log-file", fc.Logging.File, &cfg.LogFile)
	}
	return nil
}

// coerceToJSONBytes converts YAML config to JSON bytes so we can re-use the
// strict JSON decoder (DisallowUnknownFields) for both formats.
//
// Returns (jsonBytes, format, err) where format is "json" or "yaml".
func coerceToJSONBytes(path string, data []byte) ([]byte, string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return data, "json", nil
	}

	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, "yaml", fmt.Errorf("yaml unmarshal: %w", err)
	}

	v = normalizeYAML(v)

	j, err := json.Marshal(v)
	if err != nil {
		return nil, "yaml", fmt.Errorf("yaml->json marshal: %w", err)
	}
	return j, "yaml", nil
}

// normalizeYAML ensures all map keys are strings so the result can be JSON-marshaled.
func normalizeYAML(in any) any {
	switch x := in.(type) {
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[fmt.Sprint(k)] = normalizeYAML(v)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[k] = normalizeYAML(v)
		}
		return m
	case []any:
		for i := range x {
			x[i] = normalizeYAML(x[i])
		}
		return x
	default:
		return in
	}
}
