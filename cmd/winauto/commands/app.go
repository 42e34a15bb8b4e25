// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/FATESAIKOU/learn-windows-automation/cmd/winauto/internal/clierr"
	"github.com/FATESAIKOU/learn-windows-automation/internal/capability/selector"
	"github.com/FATESAIKOU/learn-windows-automation/internal/config"
	"github.com/FATESAIKOU/learn-windows-automation/internal/engine"
	"github.com/FATESAIKOU/learn-windows-automation/internal/history"
	"github.com/FATESAIKOU/learn-windows-automation/internal/registry"
	"github.com/FATESAIKOU/learn-windows-automation/internal/scripts"
)

// exitConfig is the exit code for configuration and scan failures. The
// engine's own codes (2-5) cover the per-request failure kinds.
const exitConfig = 6

// app bundles everything a command needs: settings, logger, the scanned
// registry, the backend selector, and the engine. Built fresh per command
// invocation; nothing is process-global.
type app struct {
	settings config.Settings
	logger   *log.Logger
	selector *selector.Selector
	registry *registry.Registry
	engine   *engine.Engine
	history  *history.Store
}

// newApp assembles the application from the command's flags. Flag values win
// over settings-file values.
func newApp(cmd *cobra.Command) (*app, error) {
	configPath, _ := cmd.Flags().GetString("config")
	scriptsRoot, _ := cmd.Flags().GetString("scripts-root")
	backend, _ := cmd.Flags().GetString("backend")
	verbose, _ := cmd.Flags().GetBool("verbose")

	settings, err := config.Load(config.ResolvePath(configPath))
	if err != nil {
		return nil, clierr.Wrap(exitConfig, err)
	}
	if scriptsRoot != "" {
		settings.ScriptsRoot = scriptsRoot
	}
	if backend != "" {
		settings.Backend = backend
	}

	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "winauto"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else if lvl, err := log.ParseLevel(settings.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	sel := selector.New()
	if settings.Backend != "" {
		if err := sel.OverrideByName(settings.Backend); err != nil {
			return nil, clierr.Wrap(exitConfig, err)
		}
	}

	regCfg, err := registry.LoadConfig(settings.RegistryConfig)
	if err != nil {
		return nil, clierr.Wrap(exitConfig, err)
	}
	reg, err := registry.Scan(settings.ScriptsRoot, regCfg, logger)
	if err != nil {
		return nil, clierr.Wrap(exitConfig, fmt.Errorf("scanning %s: %w", settings.ScriptsRoot, err))
	}

	return &app{
		settings: settings,
		logger:   logger,
		selector: sel,
		registry: reg,
		engine:   engine.New(reg, sel, scripts.Handlers(), logger),
		history:  history.NewStore(settings.HistoryDir),
	}, nil
}
