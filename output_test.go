package colorswap

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *CheckResult {
	return &CheckResult{
		FilesScanned:  4,
		FilesAffected: 2,
		TokensDefined: 4,
		TokensUsed:    2,
		Replacements:  3,
		WarningCount:  1,
		Issues: []Issue{
			{
				FromLinter:  LinterName,
				Text:        `color token "primary" is replaced with #3B82F6`,
				Severity:    SeverityInfo,
				SourceLines: []string{"  color: primary;"},
				Pos:         IssuePos{Filename: "app.css", Line: 2, Column: 10},
				Replacement: &Replacement{NewText: "#3B82F6", InlineLength: 7},
			},
			{
				FromLinter: LinterName,
				Text:       "theme.palette.primary becomes theme.palette.3B82F6, the '#' is dropped",
				Severity:   SeverityWarning,
				Pos:        IssuePos{Filename: "theme.ts", Line: 1, Column: 25},
			},
		},
		Usage: []TokenUsage{
			{Token: "primary", Value: "#3B82F6", Occurrences: 2, Files: 2},
			{Token: "Gray/800", Value: "#1F2937", Occurrences: 1, Files: 1},
		},
		UnusedTokens: []string{"accent", "muted"},
		Warnings:     []string{"2 palette tokens never used"},
	}
}

func TestDetermineOutputFormat(t *testing.T) {
	tests := []struct {
		name   string
		format string
		quiet  bool
		want   OutputFormat
	}{
		{"default", "", false, OutputIssues},
		{"quiet wins", "json", true, OutputIssues},
		{"summary", "summary", false, OutputSummary},
		{"full", "full", false, OutputFull},
		{"json", "json", false, OutputJSON},
		{"markdown", "markdown", false, OutputMarkdown},
		{"md alias", "md", false, OutputMarkdown},
		{"unknown", "xml", false, OutputIssues},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineOutputFormat(tt.format, tt.quiet))
		})
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult()))

	var output JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1.0", output.Version)
	assert.NotEmpty(t, output.Timestamp)
	assert.Equal(t, JSONSummary{TotalIssues: 2, Warnings: 1, FilesScanned: 4}, output.Summary)
	assert.Equal(t, 4, output.Stats.TokensDefined)
	assert.InDelta(t, 50.0, output.Stats.CoveragePercentage, 0.001)

	require.Len(t, output.Issues, 2)
	assert.Equal(t, JSONIssue{
		File:        "app.css",
		Line:        2,
		Column:      10,
		Severity:    "info",
		Message:     `color token "primary" is replaced with #3B82F6`,
		Linter:      "colorswap",
		Source:      "  color: primary;",
		Replacement: "#3B82F6",
	}, output.Issues[0])
	assert.Equal(t, "warning", output.Issues[1].Severity)

	require.Len(t, output.Usage, 2)
	assert.Equal(t, "primary", output.Usage[0].Token)
	assert.Equal(t, []string{"accent", "muted"}, output.Unused)
}

func TestWriteJSONEmptyListsAreArrays(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, &CheckResult{}))

	assert.Contains(t, buf.String(), `"issues": []`)
	assert.Contains(t, buf.String(), `"unused": []`)
	assert.Contains(t, buf.String(), `"warnings": []`)
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, sampleResult()))

	markdown := buf.String()
	assert.Contains(t, markdown, "# Color Token Report")
	assert.Contains(t, markdown, "| **Status** | 🟡 Warnings |")
	assert.Contains(t, markdown, "| **Total Issues** | 2 (0 errors, 1 warnings) |")
	assert.Contains(t, markdown, "| **Tokens Used** | 2 / 4 |")
	assert.Contains(t, markdown, "| **Palette Coverage** | 50.0% |")
	assert.Contains(t, markdown, "| `primary` | `#3B82F6` | 2 | 2 |")
	assert.Contains(t, markdown, "- **warning** `theme.ts:1:25`: theme.palette.primary")
	assert.Contains(t, markdown, "- `accent`")
	assert.Contains(t, markdown, "*Generated by colorswap*")

	// replaced tokens are summarized in the usage table, not listed
	assert.NotContains(t, markdown, "app.css:2:10")
}

func TestMarkdownStatus(t *testing.T) {
	tests := []struct {
		name   string
		result CheckResult
		want   string
	}{
		{"clean", CheckResult{}, "🟢 Clean"},
		{"warnings", CheckResult{WarningCount: 3}, "🟡 Warnings"},
		{"errors", CheckResult{ErrorCount: 1, WarningCount: 3}, "🔴 Errors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, markdownStatus(&tt.result))
		})
	}
}

func TestWriteOutputAllFormats(t *testing.T) {
	config := CheckConfig{PrintIssuedLines: true, PrintLinterName: true}

	tests := []struct {
		format OutputFormat
		want   []string
	}{
		{OutputIssues, []string{"app.css:2:10: color token", "(colorswap)", "2 issues (1 warning):"}},
		{OutputSummary, []string{"Color Token Statistics", "Palette Coverage", "Most Used Tokens", "Unused Tokens", "accent, muted"}},
		{OutputFull, []string{"app.css:2:10:", "Color Token Statistics", "Warnings"}},
		{OutputJSON, []string{`"total_issues": 2`}},
		{OutputMarkdown, []string{"## Token Usage"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			var buf bytes.Buffer
			require.NoError(t, WriteOutput(&buf, sampleResult(), tt.format, config))
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestWriteBuildSummary(t *testing.T) {
	result := &BuildResult{
		FilesScanned: 5,
		FilesSkipped: 1,
		FilesChanged: 2,
		Replacements: 3,
		Files:        []FileResult{{Path: "a.css", Diff: "--- a.css\n+++ a.css\n-x\n+y\n"}},
		Warnings:     []string{"Timed out rewriting big.js after 10s"},
	}

	var buf bytes.Buffer
	WriteBuildSummary(&buf, result, false)

	assert.Equal(t, "--- a.css\n+++ a.css\n-x\n+y\n"+
		"✓ 3 color tokens replaced in 2 files (5 scanned, 1 skipped)\n"+
		"⚠ Timed out rewriting big.js after 10s\n", buf.String())
}
