package replace

import (
	"github.com/yacobolo/colorswap/internal/palette"
)

// CSS substitutes tokens in a stylesheet.
//
// Slashed tokens ("Gray/800") are not valid identifiers, so they are
// replaced first by pattern. The result is then parsed and identifier,
// string and custom property values equal to a token are rewritten in the
// tree. If the stylesheet cannot be parsed, the original source is run
// through pattern substitution only and Result.Fallback is set.
func (e *Engine) CSS(source string) Result {
	if source == "" || len(e.keys) == 0 {
		return Result{Output: source}
	}

	rec := newRecorder(e.logger)
	res := Result{}

	pre, errs := e.slashPass(source, rec)
	res.Errors = append(res.Errors, errs...)

	tree, err := parseStylesheet(pre)
	if err != nil {
		e.logger.Warn().Err(err).Msg("stylesheet could not be parsed, using pattern substitution")

		fallback := newRecorder(e.logger)
		out, errs := e.simpleCSS(source, fallback)
		res.Output = out
		res.Fallback = true
		res.Replacements = fallback.list
		res.Errors = append(res.Errors, err)
		res.Errors = append(res.Errors, errs...)
		return res
	}

	if e.rewriteTree(tree, rec) {
		res.Output = tree.String()
	} else {
		res.Output = pre
	}
	res.Replacements = rec.list
	return res
}

// slashPass replaces slashed tokens that sit in a value position
func (e *Engine) slashPass(source string, rec *recorder) (string, []error) {
	var errs []error
	out := source

	for _, name := range e.keys {
		tp := e.patterns[name]
		if tp.slash == nil {
			continue
		}

		next, count, err := replaceAll(tp.slash, out, func(m match) (string, bool) {
			return m.group(1) + tp.value, true
		})
		if err != nil {
			e.logPassError(err, name, PassCSSSlash)
			errs = append(errs, err)
			continue
		}
		rec.add(name, tp.value, PassCSSSlash, count)
		out = next
	}

	return out, errs
}

// rewriteTree replaces token leaves in place and reports whether any changed
func (e *Engine) rewriteTree(tree *cssNode, rec *recorder) bool {
	changed := false

	tree.walk(func(n *cssNode) {
		switch n.kind {
		case nodeIdent, nodeRaw:
			if palette.IsSlashed(n.text) {
				return
			}
			value, ok := e.tokens[n.text]
			if !ok {
				return
			}
			pass := PassCSSIdent
			if n.kind == nodeRaw {
				pass = PassCSSRaw
			}
			rec.add(n.text, value, pass, 1)
			n.text = value
			changed = true

		case nodeString:
			name := unquote(n.text)
			value, ok := e.tokens[name]
			if !ok {
				return
			}
			rec.add(name, value, PassCSSString, 1)
			n.text = `"` + value + `"`
			changed = true
		}
	})

	return changed
}

// simpleCSS is the parse-free path: slashed tokens by their delimited
// pattern, everything else as a whole word
func (e *Engine) simpleCSS(source string, rec *recorder) (string, []error) {
	var errs []error
	out := source

	for _, name := range e.keys {
		tp := e.patterns[name]

		var (
			next  string
			count int
			err   error
		)
		if tp.slash != nil {
			next, count, err = replaceAll(tp.slash, out, func(m match) (string, bool) {
				return m.group(1) + tp.value, true
			})
		} else {
			next, count, err = replaceAll(tp.word, out, func(match) (string, bool) {
				return tp.value, true
			})
		}
		if err != nil {
			e.logPassError(err, name, PassCSSFallback)
			errs = append(errs, err)
			continue
		}
		rec.add(name, tp.value, PassCSSFallback, count)
		out = next
	}

	return out, errs
}

func (e *Engine) logPassError(err error, token, pass string) {
	e.logger.Warn().
		Err(err).
		Str("token", token).
		Str("pass", pass).
		Msg("replacement pass skipped")
}
