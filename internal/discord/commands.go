package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/elijahcutler/helix/internal/config"
	"github.com/elijahcutler/helix/internal/dispatch"
)

// ContainerOption is the string option every container subcommand takes.
const ContainerOption = "container_name"

// ErrUnknownCommand is returned for interactions this bot did not register.
var ErrUnknownCommand = errors.New("unknown command")

// subcommands lists the container subcommands in registration order.
var subcommands = []struct {
	name        string
	description string
}{
	{"start", "Start a container"},
	{"restart", "Restart a container"},
	{"stop", "Stop a container"},
	{"status", "Check whether a container is running"},
	{"logs", "Show a container's recent logs"},
}

// Commands returns the slash command definitions to register.
func Commands(cfg config.DiscordConfig) []*discordgo.ApplicationCommand {
	options := make([]*discordgo.ApplicationCommandOption, 0, len(subcommands))
	for _, sub := range subcommands {
		options = append(options, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        sub.name,
			Description: sub.description,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        ContainerOption,
					Description: "Container name or ID",
					Required:    true,
				},
			},
		})
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        cfg.CommandGroup,
			Description: "Manage application state",
			Options:     options,
		},
		{
			Name:        cfg.ListCommand,
			Description: "Gets a current list of all available apps.",
		},
	}
}

// Router maps slash command invocations onto the dispatcher.
type Router struct {
	dispatcher *dispatch.Dispatcher
	cfg        config.DiscordConfig
}

// NewRouter creates a Router for the commands built by Commands(cfg).
func NewRouter(d *dispatch.Dispatcher, cfg config.DiscordConfig) *Router {
	return &Router{dispatcher: d, cfg: cfg}
}

// Route runs the command described by data, replying through r.
func (rt *Router) Route(ctx context.Context, data discordgo.ApplicationCommandInteractionData, r dispatch.Replier) error {
	switch data.Name {
	case rt.cfg.ListCommand:
		return rt.dispatcher.List(ctx, r)
	case rt.cfg.CommandGroup:
		return rt.routeSubcommand(ctx, data.Options, r)
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, data.Name)
}

func (rt *Router) routeSubcommand(ctx context.Context, options []*discordgo.ApplicationCommandInteractionDataOption, r dispatch.Replier) error {
	if len(options) == 0 || options[0].Type != discordgo.ApplicationCommandOptionSubCommand {
		return fmt.Errorf("%w: %s without subcommand", ErrUnknownCommand, rt.cfg.CommandGroup)
	}

	sub := options[0]
	name, ok := stringOption(sub.Options, ContainerOption)
	if !ok {
		return fmt.Errorf("%s %s: missing %s option", rt.cfg.CommandGroup, sub.Name, ContainerOption)
	}

	switch sub.Name {
	case "start":
		return rt.dispatcher.Start(ctx, r, name)
	case "restart":
		return rt.dispatcher.Restart(ctx, r, name)
	case "stop":
		return rt.dispatcher.Stop(ctx, r, name)
	case "status":
		return rt.dispatcher.Status(ctx, r, name)
	case "logs":
		return rt.dispatcher.Logs(ctx, r, name)
	}
	return fmt.Errorf("%w: %s %s", ErrUnknownCommand, rt.cfg.CommandGroup, sub.Name)
}

// stringOption finds a string-typed option by name.
func stringOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) (string, bool) {
	for _, opt := range options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue(), true
		}
	}
	return "", false
}
