// Command roombook-seed populates the backend with the demo roster and
// uploads avatar images to storage. Safe to run repeatedly.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/backend"
	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/config"
	"github.com/IFATEYTAN/meeting-room-app-corrected/internal/seed"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	avatarsPath := flag.String("avatars", "", "TOML file mapping user emails to local image paths (optional)")
	flag.Parse()

	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := runSeed(ctx, *configPath, *avatarsPath); err != nil {
		fmt.Fprintf(os.Stderr, "roombook-seed: %v\n", err)
		return 1
	}
	return 0
}

func runSeed(ctx context.Context, configPath, avatarsPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	client, err := backend.NewClient(cfg.BackendURL, cfg.BackendKey)
	if err != nil {
		return fmt.Errorf("init backend client: %w", err)
	}

	if _, err := seed.UpsertUsers(ctx, client, seed.Roster()); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	avatars, err := seed.LoadAvatarMap(avatarsPath)
	if err != nil {
		return fmt.Errorf("load avatar map: %w", err)
	}
	if err := seed.UploadAvatars(ctx, client, avatars); err != nil {
		return fmt.Errorf("upload avatars: %w", err)
	}

	return nil
}
