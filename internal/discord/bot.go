package discord

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/elijahcutler/helix/internal/config"
	"github.com/elijahcutler/helix/internal/dispatch"
)

// Bot owns the Discord session and feeds interactions to the router.
type Bot struct {
	session *discordgo.Session
	router  *Router
	cfg     config.DiscordConfig
}

// New creates a Bot. No connection is made until Run.
func New(token string, d *dispatch.Dispatcher, cfg config.DiscordConfig) (*Bot, error) {
	if token == "" {
		return nil, config.ErrMissingToken
	}

	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds

	return &Bot{
		session: s,
		router:  NewRouter(d, cfg),
		cfg:     cfg,
	}, nil
}

// Run connects, registers commands once ready, and serves interactions until
// ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.register(s, r.User.ID)
	})
	b.session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		b.handle(ctx, s, i)
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	log.Printf("Connected to Discord")

	<-ctx.Done()

	log.Printf("Closing Discord session")
	if err := b.session.Close(); err != nil {
		return fmt.Errorf("close discord session: %w", err)
	}
	return nil
}

// register overwrites the application's commands with ours. Ready fires on
// every fresh connection; the overwrite is idempotent.
func (b *Bot) register(s *discordgo.Session, appID string) {
	cmds, err := s.ApplicationCommandBulkOverwrite(appID, b.cfg.GuildID, Commands(b.cfg))
	if err != nil {
		log.Printf("Failed to register commands: %v", err)
		return
	}
	scope := "globally"
	if b.cfg.GuildID != "" {
		scope = "in guild " + b.cfg.GuildID
	}
	log.Printf("Registered %d commands %s", len(cmds), scope)
}

// handle runs on its own goroutine per interaction.
func (b *Bot) handle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	if err := b.router.Route(ctx, data, newInteractionReplier(s, i.Interaction)); err != nil {
		log.Printf("Command %s failed: %v", data.Name, err)
	}
}
