package colorswap

import (
	"fmt"
	"io"
	"strings"
)

// maxTopTokens bounds the usage table in text output
const maxTopTokens = 10

// VerboseReporter prints statistics and token usage
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintStatistics outputs replacement statistics
func (r *VerboseReporter) PrintStatistics(result CheckResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Color Token Statistics", r.useColors))
	fmt.Fprintln(r.w, "----------------------")

	fmt.Fprintf(r.w, "Tokens Defined:   %d\n", result.TokensDefined)
	fmt.Fprintf(r.w, "Tokens Used:      %d (%.1f%%)\n", result.TokensUsed, result.CoveragePercentage())
	fmt.Fprintf(r.w, "Files Scanned:    %d\n", result.FilesScanned)
	fmt.Fprintf(r.w, "Files Affected:   %d\n", result.FilesAffected)
	fmt.Fprintf(r.w, "Replacements:     %d\n", result.Replacements)
	fmt.Fprintf(r.w, "Parser Fallbacks: %d\n", result.Fallbacks)
}

// PrintCoverage shows how much of the palette the sources use
func (r *VerboseReporter) PrintCoverage(result CheckResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Palette Coverage", r.useColors))
	fmt.Fprintln(r.w, "----------------")
	printProgressBar(r.w, result.CoveragePercentage())
}

// PrintTopTokens lists the most used tokens
func (r *VerboseReporter) PrintTopTokens(result CheckResult) {
	if len(result.Usage) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleGreen, "Most Used Tokens", r.useColors))
	fmt.Fprintln(r.w, "----------------")

	for i, u := range result.Usage {
		if i >= maxTopTokens {
			fmt.Fprintf(r.w, "... and %d more\n", len(result.Usage)-maxTopTokens)
			break
		}
		fmt.Fprintf(r.w, "%d. %s%q → %s - %s in %s\n",
			i+1, swatch(u.Value, r.useColors), u.Token, u.Value,
			pluralizeCount(u.Occurrences, "occurrence", "occurrences"),
			pluralizeCount(u.Files, "file", "files"))
	}
}

// PrintUnused lists palette tokens no source file references
func (r *VerboseReporter) PrintUnused(result CheckResult) {
	if len(result.UnusedTokens) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Unused Tokens", r.useColors))
	fmt.Fprintln(r.w, "-------------")
	fmt.Fprintln(r.w, strings.Join(result.UnusedTokens, ", "))
}

// PrintWarnings shows check warnings
func (r *VerboseReporter) PrintWarnings(result CheckResult) {
	if len(result.Warnings) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Warnings", r.useColors))
	fmt.Fprintln(r.w, "--------")

	for _, warning := range result.Warnings {
		fmt.Fprintf(r.w, "• %s\n", warning)
	}
}

func printProgressBar(w io.Writer, percentage float64) {
	barWidth := 20
	filled := int(percentage / 100 * float64(barWidth))

	fmt.Fprint(w, "[")
	for i := 0; i < barWidth; i++ {
		if i < filled {
			fmt.Fprint(w, "█")
		} else {
			fmt.Fprint(w, "░")
		}
	}
	fmt.Fprintf(w, "] %.1f%%\n", percentage)
}
