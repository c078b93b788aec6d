// Command idiomset merges idiom datasets from several sources, collapses
// traditional and simplified spellings of the same key, removes duplicates by
// source priority and writes one cleaned CSV file plus a console report.
//
// Flags:
//
//	--config         path to YAML config file (default: CONFIG_PATH or ./config.yaml)
//	--env            path to a .env file loaded before the config (default: ./.env if present)
//	--output         output CSV path, overrides output.path
//	--report-format  text or yaml, overrides output.report_format
//	--dry-run        run everything except writing the output file (--dry-run=false overrides the config)
//	--timeout        run-wide timeout
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/idiomset/internal/app"
)

var (
	configPath   string
	envFile      string
	outputPath   string
	reportFormat string
	dryRun       bool
	timeout      time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "idiomset",
	Short: "Merge and deduplicate idiom datasets",
	Long: `Load every configured source in priority order, normalize keys to simplified
script, keep one record per key from the highest-priority source and write the
cleaned dataset as CSV. Duplicates are listed in the report before removal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		// Only an explicit --dry-run or --dry-run=false overrides the config.
		var dry *bool
		if cmd.Flags().Changed("dry-run") {
			dry = &dryRun
		}

		_, err := app.Run(ctx, app.RunOptions{
			ConfigPath:   configPath,
			EnvFile:      envFile,
			OutputPath:   outputPath,
			ReportFormat: reportFormat,
			DryRun:       dry,
			Color:        !color.NoColor,
			ReportOut:    cmd.OutOrStdout(),
		})
		return err
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&configPath, "config", "", "path to YAML config file")
	flags.StringVar(&envFile, "env", "", "path to .env file loaded before the config")
	flags.StringVar(&outputPath, "output", "", "output CSV path")
	flags.StringVar(&reportFormat, "report-format", "", "report format: text or yaml")
	flags.BoolVar(&dryRun, "dry-run", false, "do not write the output file")
	flags.DurationVar(&timeout, "timeout", 30*time.Minute, "run-wide timeout")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Fprintf(os.Stderr, "%s %v\n", red("Error:"), err)
		os.Exit(1)
	}
}
