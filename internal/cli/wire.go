package cli

import (
	"fmt"
	"io"
	"log"

	"github.com/elijahcutler/helix/internal/config"
	"github.com/elijahcutler/helix/internal/container"
	"github.com/elijahcutler/helix/internal/dispatch"
)

// autoRuntime asks DetectRuntime to pick the binary.
const autoRuntime = "auto"

// RuntimeFactory builds the container runtime described by cfg.
type RuntimeFactory func(cfg *config.Config) (container.Runtime, error)

// NewRuntime builds the runtime for cfg.Runtime.Backend.
func NewRuntime(cfg *config.Config) (container.Runtime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	switch cfg.Runtime.Backend {
	case config.BackendEngine:
		rt, err := container.NewEngineRuntime()
		if err != nil {
			return nil, fmt.Errorf("failed to create engine runtime: %w", err)
		}
		return rt, nil
	case config.BackendCLI:
		bin := cfg.Runtime.Command
		if bin == autoRuntime {
			detected, err := container.DetectRuntime()
			if err != nil {
				return nil, err
			}
			bin = detected
		}
		return container.NewCLIRuntime(bin,
			container.WithTrimmedRunningCheck(cfg.Runtime.TrimRunningOutput),
			container.WithDebug(cfg.Debug()),
		), nil
	}
	return nil, fmt.Errorf("unknown runtime backend: %s", cfg.Runtime.Backend)
}

// wireDispatcher assembles the dispatcher and its runtime from cfg. The
// returned release func closes the runtime if it holds resources and must be
// called once the dispatcher is no longer used.
func (a *App) wireDispatcher(cfg *config.Config) (*dispatch.Dispatcher, func(), error) {
	rt, err := a.runtime(cfg)
	if err != nil {
		return nil, nil, err
	}
	release := func() {
		if c, ok := rt.(io.Closer); ok {
			if err := c.Close(); err != nil {
				log.Printf("close runtime: %v", err)
			}
		}
	}
	return dispatch.New(rt, dispatch.WithLogTail(cfg.Logs.Tail)), release, nil
}
