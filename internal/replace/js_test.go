package replace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yacobolo/colorswap/internal/palette"
)

func TestReplaceJS(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "template literal",
			source: "`color: primary;`",
			want:   "`color: #3B82F6;`",
		},
		{
			name:   "styled component",
			source: "const Button = styled.button`\n  color: primary;\n  border: 1px solid Gray/800;\n`;",
			want:   "const Button = styled.button`\n  color: #3B82F6;\n  border: 1px solid #1F2937;\n`;",
		},
		{
			name:   "css tagged template",
			source: "const s = css`background: Gray;`;",
			want:   "const s = css`background: #000;`;",
		},
		{
			name:   "longer token wins in templates",
			source: "`color: Gray/800; border-color: Gray;`",
			want:   "`color: #1F2937; border-color: #000;`",
		},
		{
			name:   "non-ascii text around the token",
			source: "`/* überschrift */ color: primary;`",
			want:   "`/* überschrift */ color: #3B82F6;`",
		},
		{
			name:   "interpolation placeholder",
			source: "const s = `border: 1px solid ${primary};`;",
			want:   "const s = `border: 1px solid #3B82F6;`;",
		},
		{
			name:   "interpolation with spaces",
			source: "`${ Gray/800 }`",
			want:   "`#1F2937`",
		},
		{
			name:   "interpolation expressions are not text",
			source: "`${theme.primary} primary`",
			want:   "`${theme.primary} #3B82F6`",
		},
		{
			name:   "object color properties",
			source: "const s = { color: 'primary', backgroundColor: \"primary\", borderColor: 'Gray', outlineColor: 'Gray/800' };",
			want:   "const s = { color: '#3B82F6', backgroundColor: \"#3B82F6\", borderColor: '#000', outlineColor: '#1F2937' };",
		},
		{
			name:   "other properties are left alone",
			source: "const s = { label: 'primary', textcolor: 'primary' };",
			want:   "const s = { label: 'primary', textcolor: 'primary' };",
		},
		{
			name:   "sx prop",
			source: "<Box sx={{ p: 2, color: 'primary' }} />",
			want:   "<Box sx={{ p: 2, color: '#3B82F6' }} />",
		},
		{
			name:   "theme palette access drops the hash",
			source: "const c = theme.palette.primary;",
			want:   "const c = theme.palette.3B82F6;",
		},
		{
			name:   "theme palette access needs the whole name",
			source: "const c = theme.palette.primaryDark;",
			want:   "const c = theme.palette.primaryDark;",
		},
		{
			name:   "palette key",
			source: "createTheme({ palette: { 'primary': { main: '#000' } } })",
			want:   "createTheme({ palette: { '#3B82F6': { main: '#000' } } })",
		},
		{
			name:   "style attribute",
			source: `<div class="primary" style="color: primary; border: 1px solid Gray/800">`,
			want:   `<div class="primary" style="color: #3B82F6; border: 1px solid #1F2937">`,
		},
		{
			name:   "single quoted style attribute",
			source: `<p style='background: Gray'>`,
			want:   `<p style='background: #000'>`,
		},
		{
			name:   "style object",
			source: "<div style={{ background: 'primary', margin: 0 }} />",
			want:   "<div style={{ background: '#3B82F6', margin: 0 }} />",
		},
		{
			name:   "plain code is untouched",
			source: "const primary = getPrimary();\nif (primary) { render(primary); }",
			want:   "const primary = getPrimary();\nif (primary) { render(primary); }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReplaceJS(tt.source, testTokens))
		})
	}
}

func TestReplaceJSEmptyMap(t *testing.T) {
	sources := []string{
		"",
		"`color: primary;`",
		"const s = { color: 'primary' };",
		".a { color: primary; }",
	}

	for _, src := range sources {
		assert.Equal(t, src, ReplaceJS(src, palette.TokenMap{}))
	}
}

func TestReplaceJSOnStylesheet(t *testing.T) {
	source := ".a { color: primary; }\n@media (max-width: 10px) { .b { color: Gray/800 } }"

	var got string
	assert.NotPanics(t, func() {
		got = ReplaceJS(source, testTokens)
	})
	assert.Equal(t, source, got)
}

func TestReplaceJSUnterminatedTemplate(t *testing.T) {
	source := "const s = `color: primary;"

	assert.NotPanics(t, func() {
		assert.Equal(t, source, ReplaceJS(source, testTokens))
	})
}

func TestReplaceJSRecordsPasses(t *testing.T) {
	res := New(testTokens).JS("const a = { color: 'primary' };\nconst b = `fill: ${primary}`;\nconst c = theme.palette.primary;")

	assert.Empty(t, res.Errors)
	assert.Equal(t, []Replacement{
		{Token: "primary", Value: "#3B82F6", Pass: PassColorProperty, Count: 1},
		{Token: "primary", Value: "#3B82F6", Pass: PassPaletteAccess, Count: 1},
		{Token: "primary", Value: "#3B82F6", Pass: PassInterpolation, Count: 1},
	}, res.Replacements)
}

func TestJSPassOrder(t *testing.T) {
	names := make([]string, 0, len(jsPasses))
	for _, p := range jsPasses {
		names = append(names, p.name)
	}

	assert.Equal(t, []string{
		PassTemplateLiteral,
		PassColorProperty,
		PassSxColor,
		PassPaletteAccess,
		PassPaletteKey,
		PassInterpolation,
		PassStyleAttribute,
		PassStyleObject,
	}, names)
}
