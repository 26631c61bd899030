package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dshills/unitlens/internal/config"
)

func newSettingsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
		Long: `Settings are read from the file given by --config, then overridden by
UNITLENS_* environment variables (for example UNITLENS_PRECISION=3).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSettingsShow(cmd, e)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSettingsShow(cmd, e)
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting and save it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsSet(cmd, e, args[0], args[1])
		},
	}

	cmd.AddCommand(showCmd, setCmd)
	return cmd
}

func runSettingsShow(cmd *cobra.Command, e *env) error {
	path := e.store.Path()
	if path == "" {
		path = "(none)"
	}
	cmd.Printf("File: %s\n\n", path)

	s := e.store.Settings()
	for _, key := range config.Keys() {
		v, err := s.Get(key)
		if err != nil {
			return err
		}
		cmd.Printf("  %-22s %s\n", key, v)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, e *env, key, value string) error {
	if err := e.store.Update(key, value); err != nil {
		return err
	}
	if e.store.Path() == "" {
		return config.ErrNoPath
	}
	if err := os.MkdirAll(filepath.Dir(e.store.Path()), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	if err := e.store.Save(); err != nil {
		return err
	}

	v, _ := e.store.Settings().Get(key)
	cmd.Printf("%s = %s\n", key, v)
	return nil
}
