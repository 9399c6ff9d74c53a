// Package cmd contains the CLI commands for periodctl.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/warp/period-engine/calendar"
	"github.com/warp/period-engine/config"
	"github.com/warp/period-engine/i18n"
	"github.com/warp/period-engine/periods"
)

var (
	// Used for flags
	verbose    bool
	output     string
	date       string
	lang       string
	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "periodctl",
	Short: "periodctl - relative period filters from the command line",
	Long: `periodctl renders the period picker and turns selected options into
filter domains, the same way the period engine server does.

Examples:
  # List the options for today in French
  periodctl options --lang fr

  # Build the filter for December 2024 on the "date" field
  periodctl domain --date 2024-12-02 --select this_year,this_month

  # Compare with the previous period
  periodctl domain --select this_year,this_month --compare previous_period

  # Show the comparison offset only
  periodctl compare --select this_year,third_quarter,fourth_quarter`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "output format (table, json)")
	rootCmd.PersistentFlags().StringVarP(&date, "date", "d", "", "reference date YYYY-MM-DD (default: today)")
	rootCmd.PersistentFlags().StringVarP(&lang, "lang", "l", "en", "label language")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "server YAML config with extra options")
}

// IsVerbose returns whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose
}

// GetOutput returns the output format.
func GetOutput() string {
	return output
}

// PrintVerbose prints a message to stderr only if verbose mode is enabled.
func PrintVerbose(cmd *cobra.Command, format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
	}
}

// loadEngine builds the engine from the config file, or the default
// catalogue, bound to the --lang locale.
func loadEngine(cmd *cobra.Command) (*periods.Engine, error) {
	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	catalogue, err := cfg.Catalogue()
	if err != nil {
		return nil, err
	}

	locales := i18n.NewCatalog()
	tag := locales.Match(lang)
	PrintVerbose(cmd, "catalogue: %d options, locale: %s", len(catalogue.Options()), tag)
	return periods.NewEngine(catalogue, locales.Localizer(tag)), nil
}

func reference() (calendar.Instant, error) {
	if date == "" {
		return calendar.Now(), nil
	}
	return calendar.ParseDate(date)
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
