package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"arknotes/internal/domain"
)

const (
	DefaultHome         = "~/.local/share/arknotes"
	DefaultRemote       = "https://loginapinote.arc360hub.com"
	DefaultSyncInterval = 30 * time.Second
	DefaultLogLevel     = zerolog.InfoLevel
)

// DefaultCell is the screen pixel size of one terminal cell
var DefaultCell = domain.Size{Width: 10, Height: 20}

// Config holds the settings read from the environment
type Config struct {
	Home         string
	Remote       string
	SyncInterval time.Duration
	LogLevel     zerolog.Level
	Cell         domain.Size
}

// Load reads ARKNOTES_* variables, falling back to the defaults.
// Malformed values are reported rather than silently ignored.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Home:         DefaultHome,
		Remote:       DefaultRemote,
		SyncInterval: DefaultSyncInterval,
		LogLevel:     DefaultLogLevel,
		Cell:         DefaultCell,
	}

	if v := getenv("ARKNOTES_HOME"); v != "" {
		cfg.Home = v
	}
	cfg.Home = ExpandHome(cfg.Home)

	if v := getenv("ARKNOTES_REMOTE"); v != "" {
		cfg.Remote = strings.TrimRight(v, "/")
	}

	if v := getenv("ARKNOTES_SYNC_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid ARKNOTES_SYNC_INTERVAL %q: expected a duration such as 30s", v)
		}
		cfg.SyncInterval = d
	}

	if v := getenv("ARKNOTES_LOG_LEVEL"); v != "" {
		lvl, err := zerolog.ParseLevel(strings.ToLower(v))
		if err != nil {
			return nil, fmt.Errorf("invalid ARKNOTES_LOG_LEVEL %q: %w", v, err)
		}
		cfg.LogLevel = lvl
	}

	if v := getenv("ARKNOTES_CELL"); v != "" {
		cell, err := ParseCell(v)
		if err != nil {
			return nil, err
		}
		cfg.Cell = cell
	}

	return cfg, nil
}

// ParseCell parses a "WIDTHxHEIGHT" cell size in screen pixels
func ParseCell(s string) (domain.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return domain.Size{}, fmt.Errorf("invalid cell size %q: expected WIDTHxHEIGHT", s)
	}
	width, errW := strconv.ParseFloat(w, 64)
	height, errH := strconv.ParseFloat(h, 64)
	if errW != nil || errH != nil || width <= 0 || height <= 0 {
		return domain.Size{}, fmt.Errorf("invalid cell size %q: expected positive numbers", s)
	}
	return domain.Size{Width: width, Height: height}, nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// SyncEnabled reports whether periodic background sync should run
func (c *Config) SyncEnabled() bool {
	return c.SyncInterval > 0
}
