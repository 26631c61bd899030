package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/unitlens/internal/config"
	"github.com/dshills/unitlens/internal/conversion"
	"github.com/dshills/unitlens/internal/logging"
	"github.com/dshills/unitlens/internal/units"
	"github.com/dshills/unitlens/internal/units/luaunits"
)

// env is the state shared by every subcommand of one invocation.
type env struct {
	// Global flags
	configPath  string
	logLevel    string
	unitsScript string

	logger    *zap.Logger
	store     *config.Store
	table     *units.Table
	engine    *conversion.Engine
	formatter *conversion.Formatter
}

// defaultConfigPath returns the settings file under the user config dir,
// or "" when there is none.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "unitlens", "data.json")
}

func newRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:   "unitlens",
		Short: "Inline unit conversions for plain text",
		Long: `unitlens converts inline requests of the form [<value><from>|<to>].

Examples of requests:
  [2ft|in]       24.00 in
  [1-1/2in|mm]   38.10 mm
  [30in|ftf]     2 6 ft-in

Requests that cannot be converted are left as they are.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if e.logger != nil {
				_ = e.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&e.configPath, "config", defaultConfigPath(), "settings file (.json, .toml, .yaml)")
	flags.StringVar(&e.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.StringVar(&e.unitsScript, "units-script", "", "Lua script defining extra units")

	root.AddCommand(
		newRenderCmd(e),
		newConvertCmd(e),
		newUnitsCmd(e),
		newInsertCmd(e),
		newPreviewCmd(e),
		newSettingsCmd(e),
	)
	return root
}

// setup builds the logger, loads settings and prepares the unit table.
func (e *env) setup(cmd *cobra.Command) error {
	logger, err := logging.New(e.logLevel)
	if err != nil {
		return err
	}
	e.logger = logger

	store, err := config.NewStore(e.configPath,
		config.WithLogger(logger),
		config.WithEnv(config.NewEnvLoader(config.DefaultEnvPrefix)),
	)
	if err != nil {
		return err
	}
	if err := store.Load(); err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	e.store = store

	e.engine, e.table = conversion.NewDefaultEngine()
	e.formatter = conversion.NewFormatter(e.engine, conversion.WithLogger(logger))

	script := e.unitsScript
	if script == "" {
		script = store.Settings().UnitsScript
	}
	if script != "" {
		ids, err := luaunits.NewLoader(e.table, luaunits.WithLogger(logger)).LoadFile(cmd.Context(), script)
		if err != nil {
			return err
		}
		logger.Debug("loaded custom units", zap.String("script", script), zap.Strings("units", ids))
	}
	return nil
}

// display returns the formatter options from the current settings.
func (e *env) display() conversion.DisplayOptions {
	return e.store.Settings().DisplayOptions()
}
