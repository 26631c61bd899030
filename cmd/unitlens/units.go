package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/unitlens/internal/units"
)

func newUnitsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "units [from]",
		Short: "List units",
		Long: `Without arguments, lists every known unit grouped by measure. With a unit,
lists the units it converts to, as offered when inserting a conversion.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listVocabulary(cmd, e)
			}
			ids, err := e.engine.Possibilities(args[0])
			if err != nil {
				return err
			}
			for _, id := range ids {
				d, err := e.engine.Describe(id)
				if err != nil {
					return err
				}
				printUnit(cmd, d)
			}
			return nil
		},
	}
}

func listVocabulary(cmd *cobra.Command, e *env) error {
	byMeasure := make(map[units.Measure][]units.Description)
	for _, id := range e.table.Vocabulary() {
		d, err := e.table.Describe(id)
		if err != nil {
			return err
		}
		byMeasure[d.Measure] = append(byMeasure[d.Measure], d)
	}

	for i, m := range e.table.Measures() {
		if i > 0 {
			cmd.Println()
		}
		cmd.Printf("[%s]\n", m)
		for _, d := range byMeasure[m] {
			printUnit(cmd, d)
		}
	}
	return nil
}

func printUnit(cmd *cobra.Command, d units.Description) {
	cmd.Printf("  %-10s %s\n", d.ID, d.Plural)
}
