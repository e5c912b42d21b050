package colorswap

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/yacobolo/colorswap/internal/palette"
	"github.com/yacobolo/colorswap/internal/replace"
)

// Check runs the build without writing and reports every token occurrence it
// would replace as an issue.
//
// Severity:
//   - info:    a token that is replaced
//   - warning: theme.palette access (the value loses its '#'), stylesheets
//     that fell back to pattern substitution, timeouts, palette values that
//     are not valid hex colors
//   - error:   files that could not be read
func Check(ctx context.Context, config CheckConfig) (*CheckResult, error) {
	build := config.Config.withDefaults()
	build.DryRun = true

	p, err := newPipeline(build)
	if err != nil {
		return nil, err
	}

	result := &CheckResult{TokensDefined: len(p.tokens)}
	result.Issues = append(result.Issues, validatePalette(build.Palette, p.tokens)...)

	if len(p.tokens) == 0 {
		result.Warnings = append(result.Warnings, "no color tokens found in palette")
		finalizeCheck(result, config)
		return result, nil
	}

	outcomes, stats, err := p.run(ctx, nil)
	if err != nil {
		return nil, err
	}
	result.FilesScanned = stats.FilesScanned

	keys := p.tokens.Keys()
	usage := make(map[string]*TokenUsage)

	for _, o := range outcomes {
		issues, used := analyzeOutcome(o, keys, p.tokens, build.FileTimeout)
		result.Issues = append(result.Issues, issues...)

		if o.result.Fallback {
			result.Fallbacks++
		}
		if o.changed() {
			result.FilesAffected++
			result.Replacements += o.result.Count()
		}

		for token, count := range used {
			u, ok := usage[token]
			if !ok {
				u = &TokenUsage{Token: token, Value: p.tokens[token]}
				usage[token] = u
			}
			u.Occurrences += count
			u.Files++
		}
	}

	result.TokensUsed = len(usage)
	result.Usage = sortUsage(usage)
	for _, token := range keys {
		if _, ok := usage[token]; !ok {
			result.UnusedTokens = append(result.UnusedTokens, token)
		}
	}
	sort.Strings(result.UnusedTokens)

	if len(result.UnusedTokens) > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%d palette token%s never used", len(result.UnusedTokens), pluralize(len(result.UnusedTokens))))
	}

	finalizeCheck(result, config)
	return result, nil
}

// finalizeCheck counts severities and applies the output limits
func finalizeCheck(result *CheckResult, config CheckConfig) {
	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError:
			result.ErrorCount++
		case SeverityWarning:
			result.WarningCount++
		}
	}

	if config.MaxIssuesPerLinter > 0 || config.MaxSameIssues > 0 {
		result.Issues, result.TruncatedCount = limitIssues(result.Issues, config)
	}
}

// analyzeOutcome turns one rewritten file into issues and per-token counts
func analyzeOutcome(o *fileOutcome, keys []string, tokens palette.TokenMap, timeout time.Duration) ([]Issue, map[string]int) {
	if o.err != nil {
		return []Issue{{
			FromLinter: LinterName,
			Text:       fmt.Sprintf(IssueUnreadable, o.err),
			Severity:   SeverityError,
			Pos:        IssuePos{Filename: o.path, Line: 1, Column: 1},
		}}, nil
	}

	if o.timedOut {
		return []Issue{{
			FromLinter: LinterName,
			Text:       fmt.Sprintf(IssueTimeout, timeout),
			Severity:   SeverityWarning,
			Pos:        IssuePos{Filename: o.path, Line: 1, Column: 1},
		}}, nil
	}

	var issues []Issue

	if o.result.Fallback {
		issues = append(issues, Issue{
			FromLinter: LinterName,
			Text:       fmt.Sprintf(IssueFallback, firstError(o.result.Errors)),
			Severity:   SeverityWarning,
			Pos:        IssuePos{Filename: o.path, Line: 1, Column: 1},
		})
	}

	if !o.changed() {
		return issues, nil
	}

	used := make(map[string]int)
	found := locateTokens(o.source, keys, changedRanges(o.source, o.result.Output))

	for _, token := range keys {
		value := tokens[token]
		for _, loc := range found[token] {
			used[token]++
			issues = append(issues, tokenIssue(o, token, value, loc))
		}
	}

	return issues, used
}

func tokenIssue(o *fileOutcome, token, value string, loc FileLocation) Issue {
	issue := Issue{
		FromLinter:  LinterName,
		Text:        fmt.Sprintf(IssueTokenReplaced, token, value),
		Severity:    SeverityInfo,
		SourceLines: []string{loc.Text},
		Pos: IssuePos{
			Filename: o.path,
			Line:     loc.Line,
			Column:   loc.Column,
		},
		Replacement: &Replacement{NewText: value, InlineLength: len(token)},
	}

	// theme.palette.<token> is rewritten with the first '#' removed
	prefix := loc.Text[:loc.Column-1]
	if o.kind != replace.KindCSS && strings.HasSuffix(prefix, "theme.palette.") {
		stripped := strings.Replace(value, "#", "", 1)
		issue.Text = fmt.Sprintf(IssuePaletteStrip, token, stripped)
		issue.Severity = SeverityWarning
		issue.Replacement.NewText = stripped
	}

	return issue
}

// validatePalette flags '#' values that do not parse as hex colors. Other
// values (named colors, rgb(), var()) are accepted as they are.
func validatePalette(paletteFile string, tokens palette.TokenMap) []Issue {
	filename := paletteFile
	if filename == "" {
		filename = "(inline colors)"
	}

	var issues []Issue
	for _, token := range sortedTokenNames(tokens) {
		value := tokens[token]
		if !strings.HasPrefix(value, "#") {
			continue
		}
		if !isHexColor(value) {
			issues = append(issues, Issue{
				FromLinter: LinterName,
				Text:       fmt.Sprintf(IssueInvalidColor, value, token),
				Severity:   SeverityWarning,
				Pos:        IssuePos{Filename: filename},
			})
		}
	}
	return issues
}

func isHexColor(value string) bool {
	switch len(strings.TrimPrefix(value, "#")) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	if !strings.HasPrefix(value, "#") {
		return false
	}
	_, err := colorful.Hex(normalizeHex(value))
	return err == nil
}

// normalizeHex drops the alpha digits of #RGBA and #RRGGBBAA so that
// colorful.Hex can parse the value
func normalizeHex(value string) string {
	hex := strings.TrimPrefix(value, "#")
	switch len(hex) {
	case 4:
		hex = hex[:3]
	case 8:
		hex = hex[:6]
	}
	return "#" + hex
}

func sortedTokenNames(tokens palette.TokenMap) []string {
	names := make([]string, 0, len(tokens))
	for name := range tokens {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// sortUsage orders tokens by occurrences (descending), then name
func sortUsage(usage map[string]*TokenUsage) []TokenUsage {
	list := make([]TokenUsage, 0, len(usage))
	for _, u := range usage {
		list = append(list, *u)
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].Occurrences != list[j].Occurrences {
			return list[i].Occurrences > list[j].Occurrences
		}
		return list[i].Token < list[j].Token
	})

	return list
}

func firstError(errs []error) error {
	if len(errs) == 0 {
		return fmt.Errorf("unknown error")
	}
	return errs[0]
}

// pluralize returns "s" if count != 1
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

// limitIssues applies max-issues-per-linter and max-same-issues constraints
func limitIssues(issues []Issue, config CheckConfig) ([]Issue, int) {
	originalCount := len(issues)

	// Apply max-issues-per-linter
	if config.MaxIssuesPerLinter > 0 && len(issues) > config.MaxIssuesPerLinter {
		issues = issues[:config.MaxIssuesPerLinter]
	}

	// Apply max-same-issues (deduplication by message text)
	if config.MaxSameIssues > 0 {
		issues = deduplicateSameIssues(issues, config.MaxSameIssues)
	}

	truncatedCount := originalCount - len(issues)
	return issues, truncatedCount
}

// deduplicateSameIssues limits how many times the same message appears
func deduplicateSameIssues(issues []Issue, maxSame int) []Issue {
	messageCounts := make(map[string]int)
	var filtered []Issue

	for _, issue := range issues {
		count := messageCounts[issue.Text]
		if count < maxSame {
			filtered = append(filtered, issue)
			messageCounts[issue.Text]++
		}
	}

	return filtered
}
