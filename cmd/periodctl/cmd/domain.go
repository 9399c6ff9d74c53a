package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/warp/period-engine/periods"
)

var (
	domainField      string
	domainFieldType  string
	domainSelect     []string
	domainComparison string
)

var domainCmd = &cobra.Command{
	Use:   "domain",
	Short: "Build the filter domain for selected options",
	Long: `Build the filter domain for a set of selected option ids.

Examples:
  # December 2024 and November 2024 on the "date" field
  periodctl domain --date 2024-12-02 --select this_year,this_month,last_month

  # Datetime bounds in UTC
  periodctl domain --field created_at --type datetime --select this_year

  # The previous period of the selection
  periodctl domain --select this_year,this_month --compare previous_period`,
	Args: cobra.NoArgs,
	RunE: runDomain,
}

func init() {
	rootCmd.AddCommand(domainCmd)

	domainCmd.Flags().StringVarP(&domainField, "field", "f", "date", "field to filter on")
	domainCmd.Flags().StringVarP(&domainFieldType, "type", "t", "date", "field type (date, datetime)")
	domainCmd.Flags().StringSliceVarP(&domainSelect, "select", "s", nil, "selected option ids")
	domainCmd.Flags().StringVar(&domainComparison, "compare", "", "comparison id (previous_period, previous_year)")
}

func runDomain(cmd *cobra.Command, args []string) error {
	engine, err := loadEngine(cmd)
	if err != nil {
		return err
	}
	ref, err := reference()
	if err != nil {
		return err
	}
	ft, err := periods.ParseFieldType(domainFieldType)
	if err != nil {
		return err
	}

	res, err := engine.ConstructDomain(ref, domainField, ft, domainSelect, domainComparison)
	if err != nil {
		return err
	}
	PrintVerbose(cmd, "%d ranges from %s", len(res.Ranges), ref)

	if GetOutput() == "json" {
		return printJSON(cmd.OutOrStdout(), res)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PERIOD\tDOMAIN")
	for _, r := range res.Ranges {
		fmt.Fprintf(w, "%s\t%s\n", r.Description, r.Domain)
	}
	fmt.Fprintf(w, "\t\n%s\t%s\n", res.Description, res.Domain)
	return w.Flush()
}
