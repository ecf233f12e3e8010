package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/elijahcutler/helix/internal/config"
	"github.com/elijahcutler/helix/internal/dispatch"
)

// VersionInfo holds build-time version details
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// BotRunner connects to the chat platform and serves commands until ctx ends.
type BotRunner func(ctx context.Context, cfg *config.Config, d *dispatch.Dispatcher) error

// App represents the CLI application with all wired dependencies
type App struct {
	// Root command
	rootCmd *cobra.Command

	// Flags
	configPath string
	verbose    bool

	// Version information
	versionInfo VersionInfo

	// runBot is replaced in tests so no network connection is made
	runBot BotRunner

	// runtime overrides the container runtime built from config (tests)
	runtime RuntimeFactory
}

// New creates a new CLI application
func New() *App {
	app := &App{
		runBot:  runDiscordBot,
		runtime: NewRuntime,
	}
	app.setupRootCmd()
	return app
}

// Execute runs the CLI application
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

// SetVersion sets the version string for the version command
func (a *App) SetVersion(version, commit, date string) {
	a.versionInfo = VersionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// setupRootCmd configures the root Cobra command
func (a *App) setupRootCmd() {
	a.rootCmd = &cobra.Command{
		Use:   "helix",
		Short: "Discord bot for managing docker containers",
		Long: `helix connects to Discord and exposes slash commands that start,
stop, restart, inspect and list containers on this host.

The bot token is read from the DISCORD_BOT_TOKEN environment variable.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.RunBot(cmd.Context())
		},
	}

	// Add persistent flags
	a.rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "",
		"Config file (default "+config.DefaultConfigFile+")")
	a.rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false,
		"Verbose output")

	a.rootCmd.AddCommand(NewVersionCmd(a))
	a.rootCmd.AddCommand(NewCtlCmd(a))
}

// loadConfig reads configuration honoring --config and --verbose.
func (a *App) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return nil, err
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}
