package colorswap

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Summary   JSONSummary `json:"summary"`
	Stats     JSONStats   `json:"stats"`
	Issues    []JSONIssue `json:"issues"`
	Usage     []JSONUsage `json:"usage"`
	Unused    []string    `json:"unused"`
	Warnings  []string    `json:"warnings"`
}

// JSONSummary contains high-level issue counts
type JSONSummary struct {
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	Truncated    int `json:"truncated"`
	FilesScanned int `json:"files_scanned"`
}

// JSONStats contains palette and replacement statistics
type JSONStats struct {
	TokensDefined      int     `json:"tokens_defined"`
	TokensUsed         int     `json:"tokens_used"`
	CoveragePercentage float64 `json:"coverage_percentage"`
	FilesAffected      int     `json:"files_affected"`
	Replacements       int     `json:"replacements"`
	Fallbacks          int     `json:"fallbacks"`
}

// JSONIssue represents a single issue
type JSONIssue struct {
	File        string `json:"file"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	Linter      string `json:"linter"`
	Source      string `json:"source,omitempty"`
	Replacement string `json:"replacement,omitempty"`
}

// JSONUsage reports one token's usage
type JSONUsage struct {
	Token       string `json:"token"`
	Value       string `json:"value"`
	Occurrences int    `json:"occurrences"`
	Files       int    `json:"files"`
}

// WriteJSON writes the check result as JSON
func WriteJSON(w io.Writer, result *CheckResult) error {
	output := buildJSONOutput(result)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts CheckResult to JSONOutput
func buildJSONOutput(result *CheckResult) JSONOutput {
	jsonIssues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		replacement := ""
		if issue.Replacement != nil {
			replacement = issue.Replacement.NewText
		}
		severity := issue.Severity
		if severity == SeverityInfo {
			severity = "info"
		}
		jsonIssues[i] = JSONIssue{
			File:        issue.Pos.Filename,
			Line:        issue.Pos.Line,
			Column:      issue.Pos.Column,
			Severity:    severity,
			Message:     issue.Text,
			Linter:      issue.FromLinter,
			Source:      source,
			Replacement: replacement,
		}
	}

	usage := make([]JSONUsage, len(result.Usage))
	for i, u := range result.Usage {
		usage[i] = JSONUsage{
			Token:       u.Token,
			Value:       u.Value,
			Occurrences: u.Occurrences,
			Files:       u.Files,
		}
	}

	unused := result.UnusedTokens
	if unused == nil {
		unused = []string{}
	}
	warnings := result.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:  len(result.Issues),
			Errors:       result.ErrorCount,
			Warnings:     result.WarningCount,
			Truncated:    result.TruncatedCount,
			FilesScanned: result.FilesScanned,
		},
		Stats: JSONStats{
			TokensDefined:      result.TokensDefined,
			TokensUsed:         result.TokensUsed,
			CoveragePercentage: result.CoveragePercentage(),
			FilesAffected:      result.FilesAffected,
			Replacements:       result.Replacements,
			Fallbacks:          result.Fallbacks,
		},
		Issues:   jsonIssues,
		Usage:    usage,
		Unused:   unused,
		Warnings: warnings,
	}
}
