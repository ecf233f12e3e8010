package config

const (
	DefaultConfigFile     = ".helix.yaml"
	DefaultRuntimeCommand = "docker"
	DefaultCommandGroup   = "container_controls"
	DefaultListCommand    = "list_apps"
	DefaultLogsTail       = 100
	DefaultLogLevel       = "info"
)

// DefaultBackend is the runtime backend when none is specified
var DefaultBackend BackendType = BackendCLI

// DefaultConfig returns a Config with all default values applied.
func DefaultConfig() *Config {
	return &Config{
		Runtime: RuntimeConfig{
			Backend: DefaultBackend,
			Command: DefaultRuntimeCommand,
		},
		Discord: DiscordConfig{
			CommandGroup: DefaultCommandGroup,
			ListCommand:  DefaultListCommand,
		},
		Logs: LogsConfig{
			Tail: DefaultLogsTail,
		},
		LogLevel: DefaultLogLevel,
	}
}
