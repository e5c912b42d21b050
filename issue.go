package colorswap

// LinterName is reported as FromLinter on every issue
const LinterName = "colorswap"

// Issue represents a single finding in golangci-lint format
type Issue struct {
	FromLinter  string       `json:"FromLinter"`  // "colorswap"
	Text        string       `json:"Text"`        // "color token \"primary\" is replaced with #3B82F6"
	Severity    string       `json:"Severity"`    // "", "warning", "error"
	SourceLines []string     `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos     `json:"Pos"`         // File location
	LineRange   *LineRange   `json:"LineRange"`   // Optional range
	Replacement *Replacement `json:"Replacement"` // Text the build substitutes
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "src/components/Button.tsx"
	Line     int    `json:"Line"`     // 12
	Column   int    `json:"Column"`   // 1-based byte column of the token
}

// LineRange specifies a range of lines
type LineRange struct {
	From int `json:"From"`
	To   int `json:"To"`
}

// Replacement describes the substitution applied at an issue's position
type Replacement struct {
	NewText      string // "#3B82F6"
	InlineLength int    // Length of the token being replaced
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// Issue messages
const (
	IssueTokenReplaced = "color token %q is replaced with %s"
	IssuePaletteStrip  = "theme.palette.%s becomes theme.palette.%s, the '#' is dropped"
	IssueFallback      = "stylesheet could not be parsed (%v), tokens replaced by pattern only"
	IssueTimeout       = "rewrite exceeded %s, file left unchanged"
	IssueUnreadable    = "file could not be processed: %v"
	IssueInvalidColor  = "palette value %q for token %q is not a valid hex color"
)
