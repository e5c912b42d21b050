package replace

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"github.com/yacobolo/colorswap/internal/palette"
)

const backtick = "`"

// Boundaries for whole-word matches. A token must not continue an identifier,
// a path ("Gray" inside "Gray/800"), or follow a selector/variable sigil.
const (
	wordBefore = `(?<![A-Za-z0-9_\-/.#$@])`
	wordAfter  = `(?![A-Za-z0-9_\-/])`
)

// Token-independent span patterns. Each selects a region of source that a
// pass then rewrites internally.
const (
	// backtick-delimited template literal, escapes honoured
	templateSpanExpr = backtick + `(?:[^` + backtick + `\\]|\\[\s\S])*` + backtick
	// ${...} inside a template literal, one level of nested braces
	interpolationSpanExpr = `\$\{(?:[^{}]|\{[^{}]*\})*\}`
	// style="..." or style='...' attribute
	styleAttributeSpanExpr = `(\bstyle\s*=\s*)("[^"]*"|'[^']*')`
	// style={{ ... }} JSX prop
	styleObjectSpanExpr = `(\bstyle\s*=\s*\{\{)([^}]*)(\}\})`
)

// spanPatterns are compiled once per engine so they share its match timeout
type spanPatterns struct {
	template       *regexp2.Regexp
	interpolation  *regexp2.Regexp
	styleAttribute *regexp2.Regexp
	styleObject    *regexp2.Regexp
}

func compileSpanPatterns(timeout time.Duration) *spanPatterns {
	return &spanPatterns{
		template:       mustCompile(templateSpanExpr, timeout),
		interpolation:  mustCompile(interpolationSpanExpr, timeout),
		styleAttribute: mustCompile(styleAttributeSpanExpr, timeout),
		styleObject:    mustCompile(styleObjectSpanExpr, timeout),
	}
}

// tokenPatterns are the per-token regexes used by both engines
type tokenPatterns struct {
	name  string
	value string
	spans *spanPatterns

	// CSS: slash token preceded by ':', whitespace or ';' and followed by
	// ';', whitespace or '}'. Only compiled for slashed names.
	slash *regexp2.Regexp
	// whole word, used in template literals, style attributes and the CSS fallback
	word *regexp2.Regexp
	// 'token' or "token"
	quoted *regexp2.Regexp
	// color: 'token', backgroundColor: 'token', fooColor: 'token'
	colorProperty *regexp2.Regexp
	// sx={{ ... color: 'token' }}
	sxColor *regexp2.Regexp
	// theme.palette.token
	paletteAccess *regexp2.Regexp
	// palette: { 'token': ... }
	paletteKey *regexp2.Regexp
	// ${ token }
	interpolation *regexp2.Regexp
}

func compileTokenPatterns(name, value string, spans *spanPatterns, timeout time.Duration) *tokenPatterns {
	q := regexp2.Escape(name)

	tp := &tokenPatterns{
		name:          name,
		value:         value,
		spans:         spans,
		word:          mustCompile(wordBefore+q+wordAfter, timeout),
		quoted:        mustCompile(`(['"])`+q+`\1`, timeout),
		colorProperty: mustCompile(`(?<![A-Za-z0-9_$])((?:color|[A-Za-z_$][A-Za-z0-9_$\-]*Color)\s*:\s*)(['"])`+q+`\2`, timeout),
		sxColor:       mustCompile(`(\bsx\s*=\s*\{\{[^}]*?color\s*:\s*)(['"])`+q+`\2`, timeout),
		paletteAccess: mustCompile(`(\btheme\.palette\.)`+q+`(?![A-Za-z0-9_])`, timeout),
		paletteKey:    mustCompile(`(\bpalette\s*:\s*\{[^}]*?)(['"])`+q+`\2(\s*:)`, timeout),
		interpolation: mustCompile(`\$\{\s*`+q+`\s*\}`, timeout),
	}

	if palette.IsSlashed(name) {
		tp.slash = mustCompile(`([:\s;])`+q+`(?=[;\s}])`, timeout)
	}

	return tp
}

func mustCompile(expr string, timeout time.Duration) *regexp2.Regexp {
	re := regexp2.MustCompile(expr, regexp2.None)
	if timeout > 0 {
		re.MatchTimeout = timeout
	}
	return re
}

// runeOffsets maps regexp2 rune indexes to byte offsets in s. regexp2
// matches against []rune(s), which turns each invalid byte into one rune,
// and utf8.DecodeRuneInString walks s the same way. The last entry is len(s).
func runeOffsets(s string) []int {
	offsets := make([]int, 0, len(s)+1)
	for i := 0; i < len(s); {
		offsets = append(offsets, i)
		_, width := utf8.DecodeRuneInString(s[i:])
		i += width
	}
	return append(offsets, len(s))
}

// match is a regexp2 match read back from the original source bytes, so
// text that is not valid UTF-8 survives a rewrite untouched
type match struct {
	*regexp2.Match
	src     string
	offsets []int
}

// span returns the source bytes of the rune range [index, index+length)
func (m match) span(index, length int) string {
	return m.src[m.offsets[index]:m.offsets[index+length]]
}

// text is the whole matched source
func (m match) text() string {
	return m.span(m.Index, m.Length)
}

// group returns the source text of capture group n, or "" when it did not
// participate
func (m match) group(n int) string {
	g := m.GroupByNumber(n)
	if g == nil || len(g.Captures) == 0 {
		return ""
	}
	return m.span(g.Index, g.Length)
}

// ErrMatchTimeout is recorded in Result.Errors when a pattern gives up
var ErrMatchTimeout = errors.New("regex match timeout")

// matchError replaces a regexp2 failure, whose text carries the entire
// input, with ErrMatchTimeout. Timeouts are the only errors regexp2
// returns while matching.
func matchError(re *regexp2.Regexp) error {
	return fmt.Errorf("%w after %s", ErrMatchTimeout, re.MatchTimeout)
}

// replaceAll rewrites every match of re in src with fn(m). fn may decline a
// match by returning false. On a matching error src is returned unchanged.
func replaceAll(re *regexp2.Regexp, src string, fn func(m match) (string, bool)) (string, int, error) {
	rm, err := re.FindStringMatch(src)
	if err != nil {
		return src, 0, matchError(re)
	}
	if rm == nil {
		return src, 0, nil
	}

	offsets := runeOffsets(src)
	var b strings.Builder
	prev, count := 0, 0

	for rm != nil {
		m := match{Match: rm, src: src, offsets: offsets}
		if repl, ok := fn(m); ok {
			b.WriteString(src[prev:offsets[rm.Index]])
			b.WriteString(repl)
			prev = offsets[rm.Index+rm.Length]
			count++
		}

		rm, err = re.FindNextMatch(rm)
		if err != nil {
			return src, 0, matchError(re)
		}
	}

	if count == 0 {
		return src, 0, nil
	}
	b.WriteString(src[prev:])
	return b.String(), count, nil
}

// replaceInSpans applies inner to the text captured by group n of every span
// match, leaving the rest of the span untouched.
func replaceInSpans(span *regexp2.Regexp, n int, src string, inner func(string) (string, int, error)) (string, int, error) {
	total := 0
	var innerErr error

	out, _, err := replaceAll(span, src, func(m match) (string, bool) {
		g := m.GroupByNumber(n)
		if g == nil || g.Length == 0 {
			return "", false
		}

		rewritten, count, err := inner(m.span(g.Index, g.Length))
		if err != nil {
			innerErr = err
			return "", false
		}
		if count == 0 {
			return "", false
		}
		total += count

		// Rebuild the span around the rewritten group
		return m.span(m.Index, g.Index-m.Index) + rewritten + m.span(g.Index+g.Length, m.Index+m.Length-g.Index-g.Length), true
	})
	if err != nil {
		return src, 0, err
	}
	if innerErr != nil {
		return src, 0, innerErr
	}
	return out, total, nil
}

// replaceOutside applies inner to the text between matches of sep in src
func replaceOutside(sep *regexp2.Regexp, src string, inner func(string) (string, int, error)) (string, int, error) {
	offsets := runeOffsets(src)
	var b strings.Builder
	prev, total := 0, 0

	flush := func(end int) error {
		if end <= prev {
			return nil
		}
		rewritten, count, err := inner(src[prev:end])
		if err != nil {
			return err
		}
		total += count
		b.WriteString(rewritten)
		return nil
	}

	rm, err := sep.FindStringMatch(src)
	if err != nil {
		err = matchError(sep)
	}
	for err == nil && rm != nil {
		m := match{Match: rm, src: src, offsets: offsets}
		if err = flush(offsets[rm.Index]); err != nil {
			break
		}
		b.WriteString(m.text())
		prev = offsets[rm.Index+rm.Length]
		if rm, err = sep.FindNextMatch(rm); err != nil {
			err = matchError(sep)
		}
	}
	if err == nil {
		err = flush(len(src))
	}
	if err != nil {
		return src, 0, err
	}

	if total == 0 {
		return src, 0, nil
	}
	return b.String(), total, nil
}
