package replace

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/colorswap/internal/palette"
)

func TestRewriteRoutesByExtension(t *testing.T) {
	e := New(testTokens)

	tests := []struct {
		path   string
		source string
		want   string
	}{
		{path: "a.scss", source: ".a { color: primary; }", want: ".a { color: #3B82F6; }"},
		{path: "a.tsx", source: "`color: primary;`", want: "`color: #3B82F6;`"},
		{path: "a.html", source: `<b style="color: primary">`, want: `<b style="color: #3B82F6">`},
		{path: "a.md", source: "color: primary;", want: "color: primary;"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Rewrite(tt.path, tt.source).Output)
		})
	}
}

func TestLoggerReceivesReplacements(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	e := New(palette.TokenMap{"primary": "#3B82F6"}, WithLogger(logger))
	e.CSS(".a { color: primary; }")

	out := buf.String()
	assert.Contains(t, out, `"message":"color token replaced"`)
	assert.Contains(t, out, `"token":"primary"`)
	assert.Contains(t, out, `"pass":"css-ident"`)
}

func TestLoggerReceivesFallbackWarning(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.WarnLevel)

	e := New(palette.TokenMap{"primary": "#3B82F6"}, WithLogger(logger))
	res := e.CSS(".a { color: primary;")

	require.True(t, res.Fallback)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.NotContains(t, buf.String(), "color token replaced")
}

func TestEngineIsReusable(t *testing.T) {
	e := New(testTokens)

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			src := fmt.Sprintf(".c%d { color: primary; border-color: Gray/800; }", i)
			results[i] = e.CSS(src).Output
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		assert.Equal(t, fmt.Sprintf(".c%d { color: #3B82F6; border-color: #1F2937; }", i), got)
	}
}

func TestReplacementsAreIdempotentForHexValues(t *testing.T) {
	e := New(testTokens)

	once := e.CSS(".header { background-color: Gray/800; color: primary; }").Output
	twice := e.CSS(once)

	assert.Equal(t, once, twice.Output)
	assert.Zero(t, twice.Count())

	jsOnce := e.JS("`color: primary;`").Output
	assert.Equal(t, jsOnce, e.JS(jsOnce).Output)
}

func TestTokensAccessor(t *testing.T) {
	assert.Equal(t, testTokens, New(testTokens).Tokens())
}

func TestInvalidUTF8IsPreserved(t *testing.T) {
	e := New(testTokens)

	tests := []struct {
		name   string
		path   string
		source string
		want   string
	}{
		{
			name:   "stylesheet comment",
			path:   "a.css",
			source: "/* \xff */ .a { color: Gray/800; }",
			want:   "/* \xff */ .a { color: #1F2937; }",
		},
		{
			name:   "stylesheet fallback",
			path:   "a.css",
			source: "/* caf\xe9 */ .a { color: primary;",
			want:   "/* caf\xe9 */ .a { color: #3B82F6;",
		},
		{
			name:   "script string before a template",
			path:   "a.ts",
			source: "x = '\xff'; y = `color: primary;`",
			want:   "x = '\xff'; y = `color: #3B82F6;`",
		},
		{
			name:   "inside the template literal",
			path:   "a.js",
			source: "`\xff color: primary; ${primary} \xfe`",
			want:   "`\xff color: #3B82F6; #3B82F6 \xfe`",
		},
		{
			name:   "style attribute",
			path:   "a.html",
			source: "<p title=\"\xff\" style=\"color: primary\">\xff</p>",
			want:   "<p title=\"\xff\" style=\"color: #3B82F6\">\xff</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Rewrite(tt.path, tt.source).Output)
		})
	}
}

func TestMatchTimeoutLeavesInputUnchanged(t *testing.T) {
	// An unterminated template forces the span pattern to walk the whole
	// input and back, far beyond the timeout.
	source := "const s = `" + strings.Repeat("padding: 0; ", 1_000_000) + "color: primary;"

	res := New(palette.TokenMap{"primary": "#3B82F6"}, WithMatchTimeout(time.Nanosecond)).JS(source)

	require.NotEmpty(t, res.Errors)
	for _, err := range res.Errors {
		assert.ErrorIs(t, err, ErrMatchTimeout)
		assert.Less(t, len(err.Error()), 100)
	}
	assert.Equal(t, source, res.Output)
	assert.Empty(t, res.Replacements)
}
