package colorswap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePalette(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "colors.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestGenerateTypesTypeScript(t *testing.T) {
	out := filepath.Join(t.TempDir(), "types", "colors.d.ts")

	result, err := GenerateTypes(TypesConfig{
		Palette: writePalette(t, testPalette),
		Output:  out,
	})
	require.NoError(t, err)

	assert.True(t, result.Written)
	assert.Equal(t, 2, result.Tokens)
	assert.Equal(t, out, result.Path)

	content := readFile(t, out)
	assert.Contains(t, content, "export type ColorName =\n  | \"Gray/800\"\n  | \"primary\"\n;\n")
	assert.Contains(t, content, "declare module \"csstype\"")
	assert.Contains(t, content, "    backgroundColor?: ColorName | (string & {});\n")
}

func TestGenerateTypesGo(t *testing.T) {
	out := filepath.Join(t.TempDir(), "colors", "colors.go")

	result, err := GenerateTypes(TypesConfig{
		Palette: writePalette(t, testPalette),
		Format:  TypesFormatGo,
		Output:  out,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	content := readFile(t, out)
	assert.Contains(t, content, "package colors\n")
	assert.Contains(t, content, "\tGray800 = \"#1F2937\" // Gray/800\n")
	assert.Contains(t, content, "\tPrimary = \"#3B82F6\" // primary\n")
	assert.Contains(t, content, "\t\"primary\":  Primary,\n")
}

func TestGenerateTypesGoCollisions(t *testing.T) {
	out := filepath.Join(t.TempDir(), "palette.go")

	result, err := GenerateTypes(TypesConfig{
		InlineColors: map[string]any{
			"brand-primary": "#111111",
			"brand/primary": "#222222",
			"tokens":        "#333333",
		},
		Format:      TypesFormatGo,
		Output:      out,
		PackageName: "palette",
	})
	require.NoError(t, err)

	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], `"brand/primary" collides with "brand-primary"`)
	assert.Contains(t, result.Warnings[1], `"tokens" collides`)

	content := readFile(t, out)
	assert.Contains(t, content, "package palette\n")
	assert.Contains(t, content, "BrandPrimary = \"#111111\"")
	assert.NotContains(t, content, "#222222")
}

func TestGenerateTypesEmptyPalette(t *testing.T) {
	out := filepath.Join(t.TempDir(), "colors.d.ts")

	result, err := GenerateTypes(TypesConfig{
		Palette: writePalette(t, ""),
		Output:  out,
	})
	require.NoError(t, err)

	assert.False(t, result.Written)
	assert.NotEmpty(t, result.Warnings)
	assert.NoFileExists(t, out)
}

func TestGenerateTypesUnknownFormat(t *testing.T) {
	_, err := GenerateTypes(TypesConfig{
		Palette: writePalette(t, testPalette),
		Format:  "flow",
		Output:  filepath.Join(t.TempDir(), "colors.js"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown types format "flow"`)
}

func TestTypesConfigDefaults(t *testing.T) {
	assert.Equal(t, "colors.d.ts", TypesConfig{}.withDefaults().Output)
	assert.Equal(t, filepath.Join("colors", "colors.go"), TypesConfig{Format: TypesFormatGo}.withDefaults().Output)
	assert.Equal(t, filepath.Join("theme", "theme.go"), TypesConfig{Format: TypesFormatGo, PackageName: "theme"}.withDefaults().Output)
}

func TestTokenGoName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"primary", "Primary"},
		{"Gray/800", "Gray800"},
		{"brand-primary", "BrandPrimary"},
		{"text_muted", "TextMuted"},
		{"800", "Color800"},
		{"blue/50/alpha", "Blue50Alpha"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, tokenGoName(tt.input))
		})
	}
}
