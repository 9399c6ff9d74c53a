package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	compareSelect     []string
	compareComparison string
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Show the comparison offset of a selection",
	Long: `Show how far back a comparison moves the selected periods.

Examples:
  periodctl compare --select this_year,third_quarter,fourth_quarter
  periodctl compare --select this_year,this_month --compare previous_year -o json`,
	Args: cobra.NoArgs,
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringSliceVarP(&compareSelect, "select", "s", nil, "selected option ids")
	compareCmd.Flags().StringVar(&compareComparison, "compare", "previous_period", "comparison id")
}

func runCompare(cmd *cobra.Command, args []string) error {
	engine, err := loadEngine(cmd)
	if err != nil {
		return err
	}
	ref, err := reference()
	if err != nil {
		return err
	}

	offset, _, err := engine.ComparisonParams(ref, compareSelect, compareComparison)
	if err != nil {
		return err
	}

	if GetOutput() == "json" {
		return printJSON(cmd.OutOrStdout(), offset)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), offset)
	return err
}
