package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the period options for a reference date",
	Long: `List the period picker options, with the year each option selects
by default.

Examples:
  periodctl options --date 2025-01-01
  periodctl options --lang ar -o json`,
	Args: cobra.NoArgs,
	RunE: runOptions,
}

func init() {
	rootCmd.AddCommand(optionsCmd)
}

func runOptions(cmd *cobra.Command, args []string) error {
	engine, err := loadEngine(cmd)
	if err != nil {
		return err
	}
	ref, err := reference()
	if err != nil {
		return err
	}

	opts, err := engine.PeriodOptions(ref)
	if err != nil {
		return err
	}

	if GetOutput() == "json" {
		return printJSON(cmd.OutOrStdout(), opts)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGROUP\tDESCRIPTION\tDEFAULT YEAR")
	for _, o := range opts {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", o.ID, o.GroupNumber, o.Description, o.DefaultYearID)
	}
	return w.Flush()
}
