package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything the booking client needs to reach the hosted
// backend plus the business-hours window for the booking form.
type Config struct {
	BackendURL  string
	BackendKey  string
	OpenHour    int
	CloseHour   int
	SlotMinutes int
}

const (
	defaultConfigPath  = "~/.config/roombook/config.toml"
	defaultOpenHour    = 8
	defaultCloseHour   = 18
	defaultSlotMinutes = 30
)

// Load locates and parses the roombook config, falling back to defaults when
// missing. SUPABASE_URL and SUPABASE_SERVICE_KEY environment variables
// override the file values.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		OpenHour:    defaultOpenHour,
		CloseHour:   defaultCloseHour,
		SlotMinutes: defaultSlotMinutes,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BackendURL  string `toml:"backend_url"`
		BackendKey  string `toml:"backend_key"`
		OpenHour    int    `toml:"open_hour"`
		CloseHour   int    `toml:"close_hour"`
		SlotMinutes int    `toml:"slot_minutes"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.BackendURL = strings.TrimSpace(raw.BackendURL)
	cfg.BackendKey = strings.TrimSpace(raw.BackendKey)
	if raw.OpenHour > 0 {
		cfg.OpenHour = raw.OpenHour
	}
	if raw.CloseHour > 0 {
		cfg.CloseHour = raw.CloseHour
	}
	if raw.SlotMinutes > 0 {
		cfg.SlotMinutes = raw.SlotMinutes
	}

	applyEnv(&cfg)

	if cfg.CloseHour <= cfg.OpenHour {
		return Config{}, fmt.Errorf("close_hour %d must be after open_hour %d", cfg.CloseHour, cfg.OpenHour)
	}

	return cfg, nil
}

// Validate reports whether the backend connection settings are usable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BackendURL) == "" {
		return fmt.Errorf("backend_url is required (config file or SUPABASE_URL)")
	}
	if strings.TrimSpace(c.BackendKey) == "" {
		return fmt.Errorf("backend_key is required (config file or SUPABASE_SERVICE_KEY)")
	}
	return nil
}

// applyEnv lets environment variables win over file values. Values are
// trimmed because env sources tend to carry stray whitespace.
func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("SUPABASE_URL")); v != "" {
		cfg.BackendURL = v
	}
	if v := strings.TrimSpace(os.Getenv("SUPABASE_SERVICE_KEY")); v != "" {
		cfg.BackendKey = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
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
