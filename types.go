package colorswap

import (
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

// DefaultIncludes matches every file kind the replacer understands. One
// pattern per extension keeps them usable as comma separated flag values.
var DefaultIncludes = []string{
	"**/*.css", "**/*.scss", "**/*.sass", "**/*.less", "**/*.styl", "**/*.stylus",
	"**/*.js", "**/*.jsx", "**/*.ts", "**/*.tsx",
	"**/*.html", "**/*.htm",
}

// DefaultExcludes keeps third-party code and bundler output out of a build
var DefaultExcludes = []string{
	"**/node_modules/**",
	"**/vendor/**",
	"**/dist/**",
	"**/build/**",
	"**/.next/**",
}

// DefaultFileTimeout bounds the rewrite of a single file
const DefaultFileTimeout = 10 * time.Second

// Config holds build configuration
type Config struct {
	SourceDir    string         // "src"
	OutputDir    string         // "build/src", empty rewrites files in place
	Palette      string         // "colors.yaml", empty uses InlineColors only
	InlineColors map[string]any // merged over the palette file
	Includes     []string       // globs relative to SourceDir
	Excludes     []string       // globs relative to SourceDir
	Workers      int            // parallel rewrites (default: NumCPU)
	FileTimeout  time.Duration  // per-file budget (default: 10s)
	DryRun       bool           // compute results without writing
	Diff         bool           // attach a diff of every changed file
	Logger       zerolog.Logger // zero value discards
}

func (c Config) withDefaults() Config {
	if c.SourceDir == "" {
		c.SourceDir = "."
	}
	if len(c.Includes) == 0 {
		c.Includes = DefaultIncludes
	}
	if c.Excludes == nil {
		c.Excludes = DefaultExcludes
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.FileTimeout <= 0 {
		c.FileTimeout = DefaultFileTimeout
	}
	return c
}

// BuildResult contains build stats
type BuildResult struct {
	Tokens       int // tokens in the flattened palette
	FilesScanned int
	FilesSkipped int // ignored by .gitignore or excludes
	FilesChanged int
	Replacements int
	Fallbacks    int // stylesheets rewritten without a syntax tree
	TimedOut     int
	Files        []FileResult
	Warnings     []string
}

// FileResult describes one processed file
type FileResult struct {
	Path         string // relative to SourceDir
	Kind         string // "css", "js", "html"
	Changed      bool
	Replacements int
	Fallback     bool
	TimedOut     bool
	Diff         string // set when Config.Diff is enabled
}

// TokenUsage counts how often a token is used across files
type TokenUsage struct {
	Token       string
	Value       string
	Occurrences int
	Files       int
}

// CheckConfig holds check configuration
type CheckConfig struct {
	Config

	Strict bool // fail on warnings too

	// golangci-style output configuration
	MaxIssuesPerLinter int  // 0 = unlimited (default)
	MaxSameIssues      int  // 0 = unlimited (default)
	PrintIssuedLines   bool // Show source lines with issues
	PrintLinterName    bool // Show (colorswap) suffix
	UseColors          bool // Enable color output (default: auto-detect)
}

// CheckResult contains the analysis of a dry run
type CheckResult struct {
	Issues []Issue

	FilesScanned   int
	FilesAffected  int // files with at least one replacement
	TokensDefined  int
	TokensUsed     int
	Replacements   int
	Fallbacks      int
	ErrorCount     int
	WarningCount   int
	TruncatedCount int // Issues removed due to limits

	Usage        []TokenUsage // most used first
	UnusedTokens []string     // sorted
	Warnings     []string
}

// CoveragePercentage is the share of palette tokens used at least once
func (r *CheckResult) CoveragePercentage() float64 {
	if r.TokensDefined == 0 {
		return 0
	}
	return float64(r.TokensUsed) / float64(r.TokensDefined) * 100
}

// Failed reports whether the result should fail a CI run
func (r *CheckResult) Failed(strict bool) bool {
	if r.ErrorCount > 0 {
		return true
	}
	return strict && r.WarningCount > 0
}

// OutputFormat represents the check output format
type OutputFormat string

const (
	// OutputIssues shows issues in golangci-lint format (CI-friendly)
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows statistics and token usage only
	OutputSummary OutputFormat = "summary"
	// OutputFull shows issues + statistics + token usage
	OutputFull OutputFormat = "full"
	// OutputJSON exports structured data in JSON format
	OutputJSON OutputFormat = "json"
	// OutputMarkdown generates a Markdown report
	OutputMarkdown OutputFormat = "markdown"
)
