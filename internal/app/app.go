// Package app wires configuration, the backend client, and the UI together.
package app

import (
	"context"
	"fmt"

	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/backend"
	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/config"
	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/prefs"
	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/state"
	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/ui"
)

// Options configure the roombook application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/roombook/prefs.toml
}

// Run boots the roombook TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := backend.NewClient(cfg.BackendURL, cfg.BackendKey)
	if err != nil {
		return fmt.Errorf("init backend client: %w", err)
	}

	store := &state.Store{}

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Store:     store,
		Config:    cfg,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
