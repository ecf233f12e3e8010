package config

import (
	"errors"
	"fmt"
	"regexp"
)

// commandNamePattern is Discord's rule for slash command names.
var commandNamePattern = regexp.MustCompile(`^[-_\p{Ll}\p{N}]{1,32}$`)

// ValidationError contains details about what failed validation.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config.%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// validateConfig checks all config values for validity.
// Returns nil if valid, or joined errors for all validation failures.
func validateConfig(cfg *Config) error {
	var errs []error

	// Runtime.Backend must be cli or engine
	switch cfg.Runtime.Backend {
	case BackendCLI, BackendEngine:
	default:
		errs = append(errs, &ValidationError{
			Field:   "runtime.backend",
			Value:   cfg.Runtime.Backend,
			Message: "must be 'cli' or 'engine'",
		})
	}

	// Runtime.Command must not be empty for the cli backend
	if cfg.Runtime.Backend == BackendCLI && cfg.Runtime.Command == "" {
		errs = append(errs, &ValidationError{
			Field:   "runtime.command",
			Value:   cfg.Runtime.Command,
			Message: "must not be empty",
		})
	}

	// Discord command names must be valid slash command names
	for field, name := range map[string]string{
		"discord.command_group": cfg.Discord.CommandGroup,
		"discord.list_command":  cfg.Discord.ListCommand,
	} {
		if !commandNamePattern.MatchString(name) {
			errs = append(errs, &ValidationError{
				Field:   field,
				Value:   name,
				Message: "must be 1-32 lowercase letters, digits, '-' or '_'",
			})
		}
	}

	if cfg.Discord.CommandGroup == cfg.Discord.ListCommand {
		errs = append(errs, &ValidationError{
			Field:   "discord.list_command",
			Value:   cfg.Discord.ListCommand,
			Message: "must differ from discord.command_group",
		})
	}

	// Logs.Tail must be >= 1
	if cfg.Logs.Tail < 1 {
		errs = append(errs, &ValidationError{
			Field:   "logs.tail",
			Value:   cfg.Logs.Tail,
			Message: "must be at least 1",
		})
	}

	// LogLevel must be one of: debug, info (case-sensitive)
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
	}
	if !validLogLevels[cfg.LogLevel] {
		errs = append(errs, &ValidationError{
			Field:   "log_level",
			Value:   cfg.LogLevel,
			Message: "must be one of: debug, info",
		})
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
