package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"

	"github.com/Tiliavir/babylog/internal/eventlog"
	"github.com/Tiliavir/babylog/internal/storage"
)

// Config is the root configuration for babylog, stored in ~/.babylog/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	// DataDir holds log.jsonl, deleted.jsonl, state.json and debug.log. Empty = ~/.babylog.
	DataDir string `json:"data_dir"`
	// Capacity is the number of events shown by "recent" and searched by "undo".
	Capacity int `json:"capacity"`
	// WindowBytes is how much of the end of the event log is read to build the recent view.
	WindowBytes int `json:"window_bytes"`
	// TombstoneBytes is how much of the deleted-id store is read back. The log
	// raises it to cover every record within WindowBytes.
	TombstoneBytes int `json:"tombstone_bytes"`
	// LogLevel is the minimum level written to debug.log: debug, info, warn or error.
	LogLevel string `json:"log_level"`
}

const (
	DefaultCapacity = eventlog.MaxEntries
	DefaultLogLevel = "info"
)

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		Capacity:       DefaultCapacity,
		WindowBytes:    eventlog.DefaultWindowBytes,
		TombstoneBytes: eventlog.DefaultTombstoneBytes,
		LogLevel:       DefaultLogLevel,
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// babylog configuration – ~/.babylog/config.json
//
// All settings are optional; the built-in defaults shown below are fine for
// everyday use.
{
  // Directory for the event log, the undo list, activity state and debug.log.
  // Leave empty to use ~/.babylog. A leading ~ is expanded.
  "data_dir": "",

  // Number of events shown by "babylog recent" (1-10).
  "capacity": 10,

  // Bytes read from the end of log.jsonl to rebuild the recent view.
  // Roughly 100 bytes per event; keep it well above capacity * 100.
  "window_bytes": 2048,

  // Bytes read from the end of deleted.jsonl. Older undos beyond this are
  // forgotten. Raised automatically so undos within window_bytes always apply.
  "tombstone_bytes": 4096,

  // Minimum level written to debug.log: "debug", "info", "warn" or "error".
  "log_level": "info"
}
`

// FilePath returns the path to ~/.babylog/config.json.
func FilePath() (string, error) {
	base, err := storage.BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads the config at path (default ~/.babylog/config.json), creating it
// with annotated defaults on first run. The returned Config always has
// DataDir resolved to an absolute path.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := FilePath()
		if err != nil {
			return defaultConfig(), err
		}
		path = p
	}

	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
	case err != nil:
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		if err := sonic.Unmarshal(stripLineComments(data), &cfg); err != nil {
			return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
		}
	}

	// Fill zero-value fields with built-in defaults so callers always get
	// a usable Config even if the user only partially fills in the file.
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.WindowBytes <= 0 {
		cfg.WindowBytes = eventlog.DefaultWindowBytes
	}
	if cfg.TombstoneBytes <= 0 {
		cfg.TombstoneBytes = eventlog.DefaultTombstoneBytes
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if err := cfg.resolveDataDir(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) resolveDataDir() error {
	if c.DataDir == "" {
		base, err := storage.BaseDir()
		if err != nil {
			return err
		}
		c.DataDir = base
		return nil
	}
	dir, err := storage.ExpandPath(c.DataDir)
	if err != nil {
		return fmt.Errorf("resolving data_dir: %w", err)
	}
	c.DataDir = dir
	return nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
