package replace

import (
	"strings"
)

// jsPass is one named substitution rule targeting a single source idiom.
// apply returns the rewritten source and the number of substitutions.
type jsPass struct {
	name  string
	apply func(tp *tokenPatterns, src string) (string, int, error)
}

// jsPasses run in order for every token. Add new idioms by appending.
var jsPasses = []jsPass{
	{name: PassTemplateLiteral, apply: templateLiteralPass},
	{name: PassColorProperty, apply: colorPropertyPass},
	{name: PassSxColor, apply: sxColorPass},
	{name: PassPaletteAccess, apply: paletteAccessPass},
	{name: PassPaletteKey, apply: paletteKeyPass},
	{name: PassInterpolation, apply: interpolationPass},
	{name: PassStyleAttribute, apply: styleAttributePass},
	{name: PassStyleObject, apply: styleObjectPass},
}

// JS substitutes tokens in script or markup source by running the pass
// battery for each token, longest token first. A pass whose regex fails
// leaves its input unchanged and the failure is recorded in Result.Errors.
func (e *Engine) JS(source string) Result {
	if source == "" || len(e.keys) == 0 {
		return Result{Output: source}
	}

	rec := newRecorder(e.logger)
	res := Result{}
	out := source

	for _, name := range e.keys {
		tp := e.patterns[name]

		for _, pass := range jsPasses {
			next, count, err := pass.apply(tp, out)
			if err != nil {
				e.logPassError(err, name, pass.name)
				res.Errors = append(res.Errors, err)
				continue
			}
			if count == 0 {
				continue
			}
			if pass.name == PassPaletteAccess {
				e.logger.Warn().
					Str("token", name).
					Str("value", tp.value).
					Msg("theme.palette reference rewritten with '#' removed")
			}
			rec.add(name, tp.value, pass.name, count)
			out = next
		}
	}

	res.Output = out
	res.Replacements = rec.list
	return res
}

// wordReplacer substitutes every whole-word occurrence of the token
func wordReplacer(tp *tokenPatterns) func(string) (string, int, error) {
	return func(s string) (string, int, error) {
		return replaceAll(tp.word, s, func(match) (string, bool) {
			return tp.value, true
		})
	}
}

// templateLiteralPass rewrites the token as a bare word inside backtick
// strings, css`...` included. ${...} expressions are left to the
// interpolation pass.
func templateLiteralPass(tp *tokenPatterns, src string) (string, int, error) {
	return replaceInSpans(tp.spans.template, 0, src, func(span string) (string, int, error) {
		return replaceOutside(tp.spans.interpolation, span, wordReplacer(tp))
	})
}

// quotedValue keeps the prefix group and the original quote character
func quotedValue(tp *tokenPatterns) func(m match) (string, bool) {
	return func(m match) (string, bool) {
		quote := m.group(2)
		return m.group(1) + quote + tp.value + quote, true
	}
}

// colorProperty: { color: 'primary' }, { borderColor: "primary" }
func colorPropertyPass(tp *tokenPatterns, src string) (string, int, error) {
	return replaceAll(tp.colorProperty, src, quotedValue(tp))
}

// sx={{ color: 'primary' }}
func sxColorPass(tp *tokenPatterns, src string) (string, int, error) {
	return replaceAll(tp.sxColor, src, quotedValue(tp))
}

// theme.palette.primary. The first '#' of the value is dropped since the
// value lands in a member access position.
func paletteAccessPass(tp *tokenPatterns, src string) (string, int, error) {
	value := strings.Replace(tp.value, "#", "", 1)
	return replaceAll(tp.paletteAccess, src, func(m match) (string, bool) {
		return m.group(1) + value, true
	})
}

// palette: { 'primary': ... } inside a theme definition
func paletteKeyPass(tp *tokenPatterns, src string) (string, int, error) {
	return replaceAll(tp.paletteKey, src, func(m match) (string, bool) {
		quote := m.group(2)
		return m.group(1) + quote + tp.value + quote + m.group(3), true
	})
}

// ${primary} becomes the bare value
func interpolationPass(tp *tokenPatterns, src string) (string, int, error) {
	out, count, err := replaceAll(tp.interpolation, src, func(match) (string, bool) {
		return tp.value, true
	})
	if err != nil {
		return src, 0, err
	}

	// Literal text that only became reachable once placeholders were resolved
	next, more, err := templateLiteralPass(tp, out)
	if err != nil {
		return src, 0, err
	}
	return next, count + more, nil
}

// style="color: primary" and style='...'
func styleAttributePass(tp *tokenPatterns, src string) (string, int, error) {
	return replaceInSpans(tp.spans.styleAttribute, 2, src, wordReplacer(tp))
}

// style={{ color: 'primary' }}
func styleObjectPass(tp *tokenPatterns, src string) (string, int, error) {
	return replaceInSpans(tp.spans.styleObject, 2, src, func(body string) (string, int, error) {
		return replaceAll(tp.quoted, body, func(m match) (string, bool) {
			quote := m.group(1)
			return quote + tp.value + quote, true
		})
	})
}
