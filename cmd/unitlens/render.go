package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/unitlens/internal/rewrite"
)

func newRenderCmd(e *env) *cobra.Command {
	var (
		htmlMode bool
		document bool
		skip     []string
		stats    bool
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Replace every conversion request with its result",
		Long: `Reads text from a file, or stdin when no file is given, and writes it with
every conversion request replaced by its result.

With --html the input is an HTML fragment (or a whole document with
--document); only text nodes are rewritten and code, pre, script and style
elements are left alone.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			rw := rewrite.New(e.formatter, rewrite.WithLogger(e.logger), rewrite.WithSkipElements(skip...))
			out := cmd.OutOrStdout()
			opts := e.display()

			var st rewrite.Stats
			switch {
			case htmlMode && document:
				var err error
				if st, err = rw.RewriteHTMLDocument(in, out, opts); err != nil {
					return err
				}
			case htmlMode:
				var err error
				if st, err = rw.RewriteHTML(in, out, opts); err != nil {
					return err
				}
			default:
				data, err := io.ReadAll(in)
				if err != nil {
					return fmt.Errorf("reading input: %w", err)
				}
				var text string
				text, st = rw.RewriteWithStats(string(data), opts)
				if _, err := io.WriteString(out, text); err != nil {
					return err
				}
			}

			e.logger.Debug("render complete", zap.Int("converted", st.Converted), zap.Int("failed", st.Failed))
			if stats {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d converted, %d left unchanged\n", st.Converted, st.Failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&htmlMode, "html", false, "treat input as HTML")
	cmd.Flags().BoolVar(&document, "document", false, "with --html, parse a whole document instead of a fragment")
	cmd.Flags().StringSliceVar(&skip, "skip", nil, "additional HTML elements to leave untouched")
	cmd.Flags().BoolVar(&stats, "stats", false, "print conversion counts to stderr")
	return cmd
}
