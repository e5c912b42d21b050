package colorswap

import (
	"fmt"
	"io"
	"os"
)

// DetermineOutputFormat selects the output format from flags. An unknown
// format falls back to issues.
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	// quiet prints nothing, the caller only uses the exit code
	if quiet {
		return OutputIssues
	}

	switch formatFlag {
	case "issues":
		return OutputIssues
	case "summary":
		return OutputSummary
	case "full":
		return OutputFull
	case "json":
		return OutputJSON
	case "markdown", "md":
		return OutputMarkdown
	}

	return DetermineDefaultOutputFormat()
}

// DetermineDefaultOutputFormat returns the default output format
func DetermineDefaultOutputFormat() OutputFormat {
	return OutputIssues
}

// WriteOutput writes the check result in the specified format
func WriteOutput(w io.Writer, result *CheckResult, format OutputFormat, config CheckConfig) error {
	switch format {
	case OutputSummary:
		verbose := NewVerboseReporter(w, shouldUseColors(config))
		verbose.PrintStatistics(*result)
		verbose.PrintCoverage(*result)
		verbose.PrintTopTokens(*result)
		verbose.PrintUnused(*result)
		verbose.PrintWarnings(*result)

	case OutputFull:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)

		verbose := NewVerboseReporter(w, reporter.UseColors())
		verbose.PrintStatistics(*result)
		verbose.PrintCoverage(*result)
		verbose.PrintTopTokens(*result)
		verbose.PrintUnused(*result)
		verbose.PrintWarnings(*result)

	case OutputJSON:
		if err := WriteJSON(w, result); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}

	case OutputMarkdown:
		if err := WriteMarkdown(w, result); err != nil {
			return fmt.Errorf("write markdown: %w", err)
		}

	default:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)
	}

	return nil
}

// WriteBuildSummary prints a short build report to w
func WriteBuildSummary(w io.Writer, result *BuildResult, useColors bool) {
	for _, file := range result.Files {
		if file.Diff != "" {
			fmt.Fprint(w, file.Diff)
		}
	}

	status := fmt.Sprintf("✓ %s replaced in %s (%d scanned, %d skipped)",
		pluralizeCount(result.Replacements, "color token", "color tokens"),
		pluralizeCount(result.FilesChanged, "file", "files"),
		result.FilesScanned, result.FilesSkipped)
	fmt.Fprintln(w, RenderStyle(StyleGreen, status, useColors))

	for _, warning := range result.Warnings {
		fmt.Fprintln(w, RenderStyle(StyleYellow, "⚠ "+warning, useColors))
	}
}

// stdoutIsTerminal reports whether stdout is a character device
func stdoutIsTerminal() bool {
	info, err := os.Stdout.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
