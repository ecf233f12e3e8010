package cli

import (
	"context"
	"log"
	"os"

	"github.com/elijahcutler/helix/internal/config"
	"github.com/elijahcutler/helix/internal/discord"
	"github.com/elijahcutler/helix/internal/dispatch"
)

// RunBot checks the token, loads config and serves Discord commands until
// the process receives SIGINT or SIGTERM. A missing token fails before the
// config file is read and before any connection or command registration.
func (a *App) RunBot(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if os.Getenv(config.TokenEnvVar) == "" {
		return config.ErrMissingToken
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireToken(); err != nil {
		return err
	}

	d, release, err := a.wireDispatcher(cfg)
	if err != nil {
		return err
	}
	defer release()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	handler := NewSignalHandler(cancel)
	handler.OnShutdown(func() {
		log.Printf("Shutting down")
	})
	handler.Start()
	defer handler.Stop()

	return a.runBot(ctx, cfg, d)
}

// runDiscordBot is the production BotRunner.
func runDiscordBot(ctx context.Context, cfg *config.Config, d *dispatch.Dispatcher) error {
	bot, err := discord.New(cfg.Token, d, cfg.Discord)
	if err != nil {
		return err
	}
	return bot.Run(ctx)
}
