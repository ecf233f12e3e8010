package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TokenEnvVar holds the Discord bot token. The token is never read from
// the config file.
const TokenEnvVar = "DISCORD_BOT_TOKEN"

// ErrMissingToken is returned when the bot token environment variable is
// unset or empty.
var ErrMissingToken = errors.New(TokenEnvVar + " environment variable not set.")

// BackendType selects how the bot talks to the container runtime.
type BackendType string

const (
	// BackendCLI shells out to the runtime binary.
	BackendCLI BackendType = "cli"

	// BackendEngine talks to the Docker Engine API directly.
	BackendEngine BackendType = "engine"
)

// Config holds all configuration for the bot.
// It is immutable after creation via LoadConfig().
type Config struct {
	// Token authenticates the bot with Discord (from DISCORD_BOT_TOKEN)
	Token string `yaml:"-"`

	// Runtime contains container runtime settings
	Runtime RuntimeConfig `yaml:"runtime"`

	// Discord contains slash command registration settings
	Discord DiscordConfig `yaml:"discord"`

	// Logs controls the logs command
	Logs LogsConfig `yaml:"logs"`

	// LogLevel controls log verbosity (debug, info)
	LogLevel string `yaml:"log_level"`
}

// RuntimeConfig controls container runtime invocation.
type RuntimeConfig struct {
	// Backend is "cli" (default) or "engine"
	Backend BackendType `yaml:"backend"`

	// Command is the runtime binary for the cli backend.
	// "auto" probes for docker, then podman.
	Command string `yaml:"command"`

	// TrimRunningOutput strips whitespace and quotes from inspect output
	// before checking it. Off by default: the raw output must be "true".
	TrimRunningOutput bool `yaml:"trim_running_output"`
}

// DiscordConfig controls how commands are registered.
type DiscordConfig struct {
	// GuildID registers commands to one guild instead of globally
	GuildID string `yaml:"guild_id,omitempty"`

	// CommandGroup is the slash command holding the container subcommands
	CommandGroup string `yaml:"command_group"`

	// ListCommand is the top-level slash command that lists containers
	ListCommand string `yaml:"list_command"`
}

// LogsConfig controls the logs command.
type LogsConfig struct {
	// Tail is how many lines to fetch
	Tail int `yaml:"tail"`
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

// RequireToken returns ErrMissingToken when no bot token is configured.
func (c *Config) RequireToken() error {
	if c.Token == "" {
		return ErrMissingToken
	}
	return nil
}

// LoadConfig loads configuration from path.
// It applies defaults, then file values, then environment overrides,
// then validates.
//
// A missing file is not an error; defaults are used.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultConfigFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// use defaults
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}
