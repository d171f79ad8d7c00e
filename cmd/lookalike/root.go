// Command lookalike finds duplicate customer records from the terminal,
// either against the configured database or an exported records file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lookalike/internal/core/version"
)

var rootFlags struct {
	format string
	input  string
}

var rootCmd = &cobra.Command{
	Use:   "lookalike",
	Short: "Duplicate customer detection",
	Long: `lookalike scores customer records for likely duplicates.

With --input it works on a JSON or YAML records file and never touches a
database. Without it, it reads SERVICE_PGSQL_* and DEDUPE_* from the
environment like the API does.`,
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		switch rootFlags.format {
		case "text", "json", "yaml":
			return nil
		}
		return fmt.Errorf("unknown --format %q (text, json, yaml)", rootFlags.format)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&rootFlags.format, "format", "f", "text", "Output format: text, json or yaml")
	pf.StringVarP(&rootFlags.input, "input", "i", "", "Records file (JSON or YAML list) instead of the database")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.Version = version.Info().Version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
