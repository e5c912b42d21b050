package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/colorswap"
)

// errCheckFailed makes the process exit with status 1 once the report is out
var errCheckFailed = errors.New("check failed")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report the color tokens a build would replace",
	Long: `Run the replacement without writing anything and report every token
occurrence as an issue, golangci-lint style.

Replaced tokens are informational. theme.palette access (the value loses its
'#'), stylesheets that could not be parsed, timeouts and invalid palette
colors are warnings. Unreadable files are errors.

Exit status is 1 when errors are found, or warnings with --strict.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.Bool("strict", false, "Exit 1 on warnings too (CI mode)")
	f.String("output-format", "", "Output format: issues|summary|full|json|markdown")
	f.Int("max-issues-per-linter", 0, "Max issues to show (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (colorswap) suffix on issues")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	config := buildCheckConfig(logger)

	result, err := colorswap.Check(cmd.Context(), config)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	outputFormat := getStringWithFallback("output-format", "check.output-format", "")
	format := colorswap.DetermineOutputFormat(outputFormat, quiet)

	if !quiet {
		if err := colorswap.WriteOutput(cmd.OutOrStdout(), result, format, config); err != nil {
			return err
		}
	}

	if result.Failed(config.Strict) {
		return errCheckFailed
	}
	return nil
}
