package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/vidyasagar/devnews/internal/logging"
)

const appName = "devnews"

// Backend names accepted by Config.Storage.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
	BackendMemory = "memory"
)

// Config holds devnews user configuration.
type Config struct {
	Theme                string  `json:"theme"`
	DefaultFeed          string  `json:"default_feed"`
	PageSize             int     `json:"page_size"`
	HistoryViewLimit     int     `json:"history_view_limit"`
	Storage              string  `json:"storage"`
	APIBase              string  `json:"api_base"`
	DiscussionBase       string  `json:"discussion_base"`
	RequestTimeout       int     `json:"request_timeout"` // seconds
	MaxConcurrentFetches int     `json:"max_concurrent_fetches"`
	RequestsPerSecond    float64 `json:"requests_per_second"`
	path                 string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Theme:                "default",
		DefaultFeed:          "top",
		PageSize:             20,
		HistoryViewLimit:     50,
		Storage:              BackendSQLite,
		APIBase:              "https://hacker-news.firebaseio.com/v0",
		DiscussionBase:       "https://news.ycombinator.com/item?id=",
		RequestTimeout:       10,
		MaxConcurrentFetches: 20,
	}
}

// Timeout returns RequestTimeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// LoadConfig loads configuration from the standard config directory,
// writing the defaults there on first run.
func LoadConfig() (*Config, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(filepath.Join(dir, "config.json"))
}

// LoadConfigFile loads configuration from path. A file that does not parse
// is reported in the log and replaced by defaults in memory.
func LoadConfigFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := cfg.Save(); err != nil {
				logging.Warn("could not write default config", "path", path, "err", err)
			}
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		logging.Warn("config does not parse, using defaults", "path", path, "err", err)
		cfg = DefaultConfig()
		cfg.path = path
		return &cfg, nil
	}

	cfg.path = path
	cfg.normalize()
	return &cfg, nil
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.PageSize <= 0 {
		c.PageSize = def.PageSize
	}
	if c.HistoryViewLimit <= 0 {
		c.HistoryViewLimit = def.HistoryViewLimit
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = def.RequestTimeout
	}
	if c.MaxConcurrentFetches <= 0 {
		c.MaxConcurrentFetches = def.MaxConcurrentFetches
	}
	if c.RequestsPerSecond < 0 {
		c.RequestsPerSecond = 0
	}
	switch c.Storage {
	case BackendSQLite, BackendJSON, BackendMemory:
	default:
		c.Storage = def.Storage
	}
	if c.DefaultFeed == "" {
		c.DefaultFeed = def.DefaultFeed
	}
	if c.APIBase == "" {
		c.APIBase = def.APIBase
	}
	if c.DiscussionBase == "" {
		c.DiscussionBase = def.DiscussionBase
	}
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	if c.path == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		c.path = filepath.Join(dir, "config.json")
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(c.path, data, 0o644)
}

// Open returns the KV selected by backend, rooted at dataDir. The closer
// releases the backend and is never nil.
func Open(backend, dataDir string) (KV, io.Closer, error) {
	switch backend {
	case BackendMemory:
		return NewMemory(), nopCloser{}, nil
	case BackendJSON:
		fs, err := NewFileStore(dataDir)
		if err != nil {
			return nil, nil, err
		}
		return fs, nopCloser{}, nil
	case BackendSQLite, "":
		db, err := OpenDB(dataDir)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// DataDir returns the data directory for persistent storage.
func DataDir() (string, error) {
	return platformDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func configDir() (string, error) {
	return platformDir("XDG_CONFIG_HOME", ".config")
}

// platformDir resolves the per-OS application directory. On Linux and the
// BSDs xdgVar wins, falling back to ~/<fallback>/devnews.
func platformDir(xdgVar, fallback string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appName), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName), nil
		}
		return filepath.Join(home, "."+appName), nil
	default:
		if xdg := os.Getenv(xdgVar); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		return filepath.Join(home, fallback, appName), nil
	}
}
