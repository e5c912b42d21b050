package colorswap

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteMarkdown writes the check result as a Markdown report, suitable for
// a pull request comment
func WriteMarkdown(w io.Writer, result *CheckResult) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# Color Token Report")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "## Summary")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "| Metric | Value |")
	fmt.Fprintln(bw, "|--------|-------|")
	fmt.Fprintf(bw, "| **Status** | %s |\n", markdownStatus(result))
	fmt.Fprintf(bw, "| **Total Issues** | %d (%d errors, %d warnings) |\n",
		len(result.Issues), result.ErrorCount, result.WarningCount)
	fmt.Fprintf(bw, "| **Files Scanned** | %d |\n", result.FilesScanned)
	fmt.Fprintf(bw, "| **Files Affected** | %d |\n", result.FilesAffected)
	fmt.Fprintf(bw, "| **Replacements** | %d |\n", result.Replacements)
	fmt.Fprintf(bw, "| **Tokens Used** | %d / %d |\n", result.TokensUsed, result.TokensDefined)
	fmt.Fprintf(bw, "| **Palette Coverage** | %.1f%% |\n", result.CoveragePercentage())

	if len(result.Usage) > 0 {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "## Token Usage")
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "| Token | Value | Occurrences | Files |")
		fmt.Fprintln(bw, "|-------|-------|-------------|-------|")
		for _, u := range result.Usage {
			fmt.Fprintf(bw, "| `%s` | `%s` | %d | %d |\n", u.Token, u.Value, u.Occurrences, u.Files)
		}
	}

	if problems := markdownProblems(result.Issues); len(problems) > 0 {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "## Problems")
		fmt.Fprintln(bw)
		for _, issue := range problems {
			fmt.Fprintf(bw, "- **%s** `%s`: %s\n", issue.Severity, markdownLocation(issue.Pos), issue.Text)
		}
	}

	if len(result.UnusedTokens) > 0 {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "## Unused Tokens")
		fmt.Fprintln(bw)
		for _, token := range result.UnusedTokens {
			fmt.Fprintf(bw, "- `%s`\n", token)
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "## Warnings")
		fmt.Fprintln(bw)
		for _, warning := range result.Warnings {
			fmt.Fprintf(bw, "- %s\n", warning)
		}
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "---")
	fmt.Fprintln(bw, "*Generated by colorswap*")

	return bw.Flush()
}

func markdownStatus(result *CheckResult) string {
	switch {
	case result.ErrorCount > 0:
		return "🔴 Errors"
	case result.WarningCount > 0:
		return "🟡 Warnings"
	default:
		return "🟢 Clean"
	}
}

// markdownProblems keeps warnings and errors; replaced tokens are listed in
// the usage table instead
func markdownProblems(issues []Issue) []Issue {
	var problems []Issue
	for _, issue := range issues {
		if issue.Severity != SeverityInfo {
			problems = append(problems, issue)
		}
	}
	return problems
}

func markdownLocation(pos IssuePos) string {
	if pos.Line == 0 {
		return pos.Filename
	}
	return strings.Join([]string{pos.Filename, fmt.Sprint(pos.Line), fmt.Sprint(pos.Column)}, ":")
}
