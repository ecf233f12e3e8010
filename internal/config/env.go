package config

import "os"

// envOverrides maps environment variables to config field setters.
var envOverrides = []struct {
	envVar string
	apply  func(*Config, string)
}{
	{
		envVar: TokenEnvVar,
		apply: func(c *Config, v string) {
			c.Token = v
		},
	},
	{
		envVar: "HELIX_RUNTIME_CMD",
		apply: func(c *Config, v string) {
			c.Runtime.Command = v
		},
	},
	{
		envVar: "HELIX_RUNTIME_BACKEND",
		apply: func(c *Config, v string) {
			c.Runtime.Backend = BackendType(v)
		},
	},
	{
		envVar: "HELIX_GUILD_ID",
		apply: func(c *Config, v string) {
			c.Discord.GuildID = v
		},
	},
	{
		envVar: "HELIX_LOG_LEVEL",
		apply: func(c *Config, v string) {
			c.LogLevel = v
		},
	},
}

// applyEnvOverrides modifies config in place with environment variable values.
func applyEnvOverrides(cfg *Config) {
	for _, override := range envOverrides {
		if val := os.Getenv(override.envVar); val != "" {
			override.apply(cfg, val)
		}
	}
}
