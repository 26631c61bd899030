package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/unitlens/internal/conversion"
	"github.com/dshills/unitlens/internal/notation"
	"github.com/dshills/unitlens/internal/units"
)

func newConvertCmd(e *env) *cobra.Command {
	var (
		original bool
		names    bool
		prec     int
	)

	cmd := &cobra.Command{
		Use:   "convert <value> <from> <to>",
		Short: "Convert a single value",
		Long: `Converts a value the way a request [<value><from>|<to>] would be rendered.
Values may use whole-fraction notation for feet and inches, e.g. 1-1/2 in
or 7-0-1/2 ft. The to unit may be inf (fractional inches) or ftf (feet and
inches).`,
		Example: `  unitlens convert 2 ft in
  unitlens convert 1-1/2 in mm
  unitlens convert 30 in ftf`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := "[" + args[0] + args[1] + "|" + args[2] + "]"
			toks := notation.Default.All(req)
			if len(toks) != 1 || toks[0].Len() != len(req) {
				return fmt.Errorf("%q is not a valid conversion request", req)
			}

			opts := e.display()
			if cmd.Flags().Changed("original") {
				opts.ShowOriginalUnits = original
			}
			if cmd.Flags().Changed("names") {
				opts.UseDescriptiveNames = names
			}
			if cmd.Flags().Changed("precision") {
				opts.Precision = prec
			}

			out, err := e.formatter.TryFormatToken(toks[0], opts)
			if err != nil {
				return err
			}
			cmd.Println(out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&original, "original", false, "include the original value")
	cmd.Flags().BoolVar(&names, "names", false, "use descriptive unit names")
	cmd.Flags().IntVar(&prec, "precision", conversion.DefaultPrecision, "decimal places")
	return cmd
}

func newInsertCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "insert <value> <from> <to>",
		Short: "Print the request syntax for a conversion",
		Long: `Prints the conversion request for value, from and to, ready to paste into
a document. The to unit must be reachable from the from unit.`,
		Example: `  unitlens insert 2 ft in      # [2ft|in]`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to := args[1], args[2]
			if !e.engine.Resolves(from) {
				return &units.UnsupportedUnitError{Unit: from, Reason: "unknown unit"}
			}
			value, err := notation.ParseValue(args[0], from)
			if err != nil {
				return err
			}
			ids, err := e.engine.Possibilities(from)
			if err != nil {
				return err
			}
			if !slices.Contains(ids, to) {
				return fmt.Errorf("%s does not convert to %s (possible: %s)", from, to, strings.Join(ids, ", "))
			}
			cmd.Println(conversion.Compose(value, from, to))
			return nil
		},
	}
}
