package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/dshills/unitlens/internal/config"
	"github.com/dshills/unitlens/internal/document"
	"github.com/dshills/unitlens/internal/overlay"
	"github.com/dshills/unitlens/internal/preview"
	"github.com/dshills/unitlens/internal/suggest"
)

// errNotTerminal is returned when preview runs without a terminal.
var errNotTerminal = errors.New("preview needs an interactive terminal")

// isTerminal reports whether stdin and stdout are terminals.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func newPreviewCmd(e *env) *cobra.Command {
	var (
		write bool
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Edit a file with live conversion preview",
		Long: `Opens the file in a terminal editor. Requests off the caret line are shown
converted; the caret line always shows the raw text. Typing an open request
such as [2ft| pops up the units it converts to.

Keys:
  Tab         toggle source / live preview (or accept a suggestion)
  Up/Down     move, or choose a suggestion
  Enter       new line, or accept a suggestion
  Esc         close suggestions
  Ctrl-S      save settings
  Ctrl-Q      quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal() {
				return errNotTerminal
			}
			path := args[0]

			data, err := os.ReadFile(path)
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("failed to create terminal: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if watch && e.store.Path() != "" {
				if err := startWatcher(ctx, e); err != nil {
					return err
				}
			}

			settings := e.store.Settings()
			ed := document.NewEditor(string(data))
			ov := overlay.NewEngine(e.formatter,
				overlay.WithLogger(e.logger),
				overlay.WithSettings(settings.OverlaySettings()),
			)
			sc := suggest.NewController(e.engine,
				suggest.WithLogger(e.logger),
				suggest.WithEnabled(settings.IsAutosuggestEnabled),
			)

			app := preview.New(screen, ed, ov, sc, preview.WithLogger(e.logger), preview.WithStore(e.store))
			if err := app.Run(ctx); err != nil {
				return err
			}

			if write && ed.Text() != string(data) {
				if err := os.WriteFile(path, []byte(ed.Text()), 0o644); err != nil {
					return err
				}
				e.logger.Info("document written", zap.String("path", path))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the edited text back on exit")
	cmd.Flags().BoolVar(&watch, "watch", true, "reload settings when the settings file changes")
	return cmd
}

// startWatcher reloads settings in the background until ctx is done.
func startWatcher(ctx context.Context, e *env) error {
	w, err := config.NewWatcher(e.store, config.WithWatcherLogger(e.logger))
	if err != nil {
		return err
	}
	go func() {
		if err := w.Run(ctx); err != nil {
			e.logger.Warn("settings watcher stopped", zap.Error(err))
		}
	}()
	return nil
}
