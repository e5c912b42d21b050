package colorswap

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCaretIndicator(t *testing.T) {
	reporter := &Reporter{}

	tests := []struct {
		name       string
		sourceLine string
		column     int
		want       string
	}{
		{
			name:       "spaces only",
			sourceLine: "  color: primary;",
			column:     10,
			want:       "         ^",
		},
		{
			name:       "tabs and spaces",
			sourceLine: "\t\tcolor: primary;",
			column:     10,
			want:       "\t\t       ^",
		},
		{
			name:       "start of line",
			sourceLine: "primary",
			column:     1,
			want:       "^",
		},
		{
			name:       "column 0 fallback",
			sourceLine: "some line",
			column:     0,
			want:       "^",
		},
		{
			name:       "column beyond line length",
			sourceLine: "short",
			column:     100,
			want:       "     ^",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reporter.buildCaretIndicator(tt.sourceLine, tt.column)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestPrintIssues(t *testing.T) {
	var buf bytes.Buffer
	reporter := &Reporter{w: &buf, printLines: true, printLinterName: true}

	reporter.PrintIssues([]Issue{
		{FromLinter: LinterName, Text: "second", Pos: IssuePos{Filename: "b.css", Line: 1, Column: 1}, SourceLines: []string{"x"}},
		{FromLinter: LinterName, Text: "first", Pos: IssuePos{Filename: "a.css", Line: 3, Column: 3}, SourceLines: []string{"  primary"}},
		{FromLinter: LinterName, Text: "palette", Severity: SeverityWarning, Pos: IssuePos{Filename: "colors.yaml"}},
	})

	assert.Equal(t,
		"a.css:3:3: first (colorswap)\n\t  primary\n\t  ^\n"+
			"b.css:1:1: second (colorswap)\n\tx\n\t^\n"+
			"colors.yaml: palette (colorswap)\n",
		buf.String())
}

func TestPrintSummary(t *testing.T) {
	tests := []struct {
		name   string
		result CheckResult
		want   string
	}{
		{
			name:   "no issues",
			result: CheckResult{},
			want:   "\n0 issues:\n",
		},
		{
			name: "errors and warnings",
			result: CheckResult{
				Issues:       []Issue{{FromLinter: LinterName}, {FromLinter: LinterName}, {FromLinter: LinterName}},
				ErrorCount:   1,
				WarningCount: 2,
			},
			want: "\n3 issues (1 error, 2 warnings):\n* colorswap: 3\n\nHint: Run with --output-format full to see token usage\n",
		},
		{
			name: "truncated",
			result: CheckResult{
				Issues:         []Issue{{FromLinter: LinterName}},
				TruncatedCount: 4,
			},
			want: "\n1 issue (4 issues truncated):\n* colorswap: 1\n\nHint: Run with --output-format full to see token usage\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			reporter := &Reporter{w: &buf}
			reporter.PrintSummary(tt.result)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrintTopTokens(t *testing.T) {
	var usage []TokenUsage
	for i := 0; i < maxTopTokens+2; i++ {
		usage = append(usage, TokenUsage{Token: "t", Value: "#000", Occurrences: 1, Files: 1})
	}

	var buf bytes.Buffer
	NewVerboseReporter(&buf, false).PrintTopTokens(CheckResult{Usage: usage})

	assert.Contains(t, buf.String(), `1. "t" → #000 - 1 occurrence in 1 file`)
	assert.Contains(t, buf.String(), "... and 2 more")
}

func TestPrintProgressBar(t *testing.T) {
	var buf bytes.Buffer
	printProgressBar(&buf, 50)
	assert.Equal(t, "[██████████░░░░░░░░░░] 50.0%\n", buf.String())
}
