// Package replace substitutes symbolic color tokens in CSS, JS/TS and HTML
// sources with the values from a flattened palette.
//
// Both engines are total: they never return an error and never panic on bad
// input. Internal failures (an unparseable stylesheet, a regex timeout) fall
// back to a cruder strategy and are reported through the injected logger and
// the Result side channel.
//
// Tokens are always processed longest name first (see palette.TokenMap.Keys),
// so "Gray/800" wins over "Gray".
package replace

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/yacobolo/colorswap/internal/palette"
)

// DefaultMatchTimeout bounds a single regex match
const DefaultMatchTimeout = 2 * time.Second

// Pass names reported in Replacement.Pass
const (
	PassCSSSlash        = "css-slash"
	PassCSSIdent        = "css-ident"
	PassCSSRaw          = "css-raw"
	PassCSSString       = "css-string"
	PassCSSFallback     = "css-fallback"
	PassTemplateLiteral = "template-literal"
	PassColorProperty   = "object-color-property"
	PassSxColor         = "sx-color"
	PassPaletteAccess   = "theme-palette"
	PassPaletteKey      = "palette-key"
	PassInterpolation   = "template-interpolation"
	PassStyleAttribute  = "style-attribute"
	PassStyleObject     = "style-object"
)

// Replacement records how often one token was substituted by one pass
type Replacement struct {
	Token string
	Value string
	Pass  string
	Count int
}

// Result is the output of one engine run
type Result struct {
	Output       string
	Replacements []Replacement
	// Fallback is set when the stylesheet could not be parsed and only
	// pattern substitution was applied
	Fallback bool
	// Errors collects internal failures that were recovered from
	Errors []error
}

// Count returns the total number of substitutions
func (r Result) Count() int {
	total := 0
	for _, rep := range r.Replacements {
		total += rep.Count
	}
	return total
}

// Engine holds a token map with its precompiled patterns.
// An Engine is immutable and safe for concurrent use.
type Engine struct {
	tokens       palette.TokenMap
	keys         []string
	patterns     map[string]*tokenPatterns
	logger       zerolog.Logger
	matchTimeout time.Duration
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger used for replacement diagnostics
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMatchTimeout bounds each regex match; zero disables the bound
func WithMatchTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.matchTimeout = d
	}
}

// New builds an engine for tokens
func New(tokens palette.TokenMap, opts ...Option) *Engine {
	e := &Engine{
		tokens:       tokens,
		logger:       zerolog.Nop(),
		matchTimeout: DefaultMatchTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.keys = tokens.Keys()
	e.patterns = make(map[string]*tokenPatterns, len(e.keys))
	spans := compileSpanPatterns(e.matchTimeout)
	for _, name := range e.keys {
		e.patterns[name] = compileTokenPatterns(name, tokens[name], spans, e.matchTimeout)
	}

	return e
}

// Tokens returns the token map the engine was built with
func (e *Engine) Tokens() palette.TokenMap {
	return e.tokens
}

// Rewrite routes source to the engine matching path's extension.
// Unknown file types come back unchanged.
func (e *Engine) Rewrite(path, source string) Result {
	switch Classify(path) {
	case KindCSS:
		return e.CSS(source)
	case KindJS, KindHTML:
		return e.JS(source)
	default:
		return Result{Output: source}
	}
}

// ReplaceCSS substitutes tokens in a stylesheet
func ReplaceCSS(source string, tokens palette.TokenMap) string {
	return New(tokens).CSS(source).Output
}

// ReplaceJS substitutes tokens in script or markup source
func ReplaceJS(source string, tokens palette.TokenMap) string {
	return New(tokens).JS(source).Output
}

// recorder aggregates replacements per token and pass, in first-seen order
type recorder struct {
	logger zerolog.Logger
	list   []Replacement
	index  map[string]int
}

func newRecorder(logger zerolog.Logger) *recorder {
	return &recorder{logger: logger, index: make(map[string]int)}
}

func (r *recorder) add(token, value, pass string, count int) {
	if count == 0 {
		return
	}

	r.logger.Debug().
		Str("token", token).
		Str("value", value).
		Str("pass", pass).
		Int("count", count).
		Msg("color token replaced")

	key := pass + "\x00" + token
	if i, ok := r.index[key]; ok {
		r.list[i].Count += count
		return
	}
	r.index[key] = len(r.list)
	r.list = append(r.list, Replacement{Token: token, Value: value, Pass: pass, Count: count})
}
