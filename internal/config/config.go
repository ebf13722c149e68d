package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/sqmw/repofolio/internal/debounce"
	"github.com/sqmw/repofolio/internal/github"
	"github.com/sqmw/repofolio/internal/repocache"
	"github.com/sqmw/repofolio/internal/storage"
)

// Config is the resolved repofolio configuration.
type Config struct {
	User            string
	APIBase         string
	Exclude         []string
	PerPage         int
	CacheTTL        time.Duration
	TopLimit        int
	LanguageLimit   int
	SearchDebounce  time.Duration
	Storage         string
	DataDir         string
	LogFile         string
	LogLevel        string
	RefreshInterval time.Duration
}

const (
	defaultConfigPath    = "~/.config/repofolio/config.toml"
	defaultDataDir       = "~/.local/share/repofolio"
	defaultLogFile       = "~/.local/state/repofolio/repofolio.log"
	defaultUser          = "sqmw"
	defaultPerPage       = 100
	maxPerPage           = 100
	defaultTopLimit      = 5
	defaultLanguageLimit = 8
	defaultLogLevel      = "info"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		User:           defaultUser,
		APIBase:        github.DefaultBaseURL,
		PerPage:        defaultPerPage,
		CacheTTL:       repocache.DefaultTTL,
		TopLimit:       defaultTopLimit,
		LanguageLimit:  defaultLanguageLimit,
		SearchDebounce: debounce.DefaultWindow,
		Storage:        storage.BackendFile,
		DataDir:        mustExpand(defaultDataDir),
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
	}
}

// fileConfig mirrors the TOML layout. Durations are strings such as "1h".
type fileConfig struct {
	User            string   `toml:"user"`
	APIBase         string   `toml:"api_base"`
	Exclude         []string `toml:"exclude"`
	PerPage         int      `toml:"per_page"`
	CacheTTL        string   `toml:"cache_ttl"`
	TopLimit        int      `toml:"top_limit"`
	LanguageLimit   int      `toml:"language_limit"`
	SearchDebounce  string   `toml:"search_debounce"`
	Storage         string   `toml:"storage"`
	DataDir         string   `toml:"data_dir"`
	LogFile         string   `toml:"log_file"`
	LogLevel        string   `toml:"log_level"`
	RefreshInterval string   `toml:"refresh_interval"`
}

// Load reads the config at path (or the default location), falling back to
// defaults when the file is missing and for every empty field.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.apply(raw); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) apply(raw fileConfig) error {
	if v := strings.TrimSpace(raw.User); v != "" {
		c.User = v
	}
	if v := strings.TrimSpace(raw.APIBase); v != "" {
		c.APIBase = v
	}
	for _, name := range raw.Exclude {
		if name = strings.TrimSpace(name); name != "" {
			c.Exclude = append(c.Exclude, name)
		}
	}
	if raw.PerPage > 0 {
		c.PerPage = raw.PerPage
	}
	if raw.TopLimit > 0 {
		c.TopLimit = raw.TopLimit
	}
	if raw.LanguageLimit > 0 {
		c.LanguageLimit = raw.LanguageLimit
	}
	if v := strings.TrimSpace(raw.Storage); v != "" {
		c.Storage = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.DataDir); v != "" {
		c.DataDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		c.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}

	var err error
	if c.CacheTTL, err = parseDuration("cache_ttl", raw.CacheTTL, c.CacheTTL); err != nil {
		return err
	}
	if c.SearchDebounce, err = parseDuration("search_debounce", raw.SearchDebounce, c.SearchDebounce); err != nil {
		return err
	}
	if c.RefreshInterval, err = parseDuration("refresh_interval", raw.RefreshInterval, c.RefreshInterval); err != nil {
		return err
	}
	return nil
}

// Validate rejects values no component can honour.
func (c Config) Validate() error {
	if strings.TrimSpace(c.User) == "" {
		return errors.New("config: user is required")
	}
	if c.PerPage < 1 || c.PerPage > maxPerPage {
		return fmt.Errorf("config: per_page %d out of range 1..%d", c.PerPage, maxPerPage)
	}
	switch c.Storage {
	case storage.BackendFile, storage.BackendSQLite, storage.BackendMemory:
	default:
		return fmt.Errorf("config: unknown storage backend %q", c.Storage)
	}
	if c.CacheTTL <= 0 {
		return errors.New("config: cache_ttl must be positive")
	}
	if c.RefreshInterval < 0 {
		return errors.New("config: refresh_interval must not be negative")
	}
	return nil
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", field, err)
	}
	return d, nil
}

// DefaultPath returns the expanded default config location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath trims path, expands a leading ~ to the home directory and makes
// it absolute. Every component that accepts a user path goes through it.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
