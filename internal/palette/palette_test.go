package palette

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name string
		tree func() *Tree
		want TokenMap
	}{
		{
			name: "nested and flat entries",
			tree: func() *Tree {
				tree := NewTree()
				tree.Group("Gray").Set("800", "#1F2937")
				tree.Set("primary", "#3B82F6")
				return tree
			},
			want: TokenMap{"Gray/800": "#1F2937", "primary": "#3B82F6"},
		},
		{
			name: "deep nesting",
			tree: func() *Tree {
				tree := NewTree()
				tree.Group("brand").Group("accent").Set("light", "#FFF")
				return tree
			},
			want: TokenMap{"brand/accent/light": "#FFF"},
		},
		{
			name: "later entry wins on collision",
			tree: func() *Tree {
				tree := NewTree()
				tree.Set("Gray/800", "#000000")
				tree.Group("Gray").Set("800", "#1F2937")
				return tree
			},
			want: TokenMap{"Gray/800": "#1F2937"},
		},
		{
			name: "empty group contributes nothing",
			tree: func() *Tree {
				tree := NewTree()
				tree.Group("Empty")
				return tree
			},
			want: TokenMap{},
		},
		{
			name: "nil tree",
			tree: func() *Tree { return nil },
			want: TokenMap{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Flatten(tt.tree()))
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want TokenMap
	}{
		{
			name: "yaml palette",
			doc: `
Gray:
  50: "#F9FAFB"
  800: "#1F2937"
primary: "#3B82F6"
text-secondary: "#6B7280"
`,
			want: TokenMap{
				"Gray/50":        "#F9FAFB",
				"Gray/800":       "#1F2937",
				"primary":        "#3B82F6",
				"text-secondary": "#6B7280",
			},
		},
		{
			name: "json palette",
			doc:  `{"Blue": {"500": "#3B82F6"}, "error": "#EF4444"}`,
			want: TokenMap{"Blue/500": "#3B82F6", "error": "#EF4444"},
		},
		{
			name: "malformed leaves are ignored",
			doc: `
count: 42
enabled: true
missing: ~
primary: "#3B82F6"
`,
			want: TokenMap{"primary": "#3B82F6"},
		},
		{
			name: "sequences use index keys",
			doc: `
accents: ["#111111", "#222222"]
`,
			want: TokenMap{"accents/0": "#111111", "accents/1": "#222222"},
		},
		{
			name: "source order decides collisions",
			doc: `
Gray:
  800: "#1F2937"
Gray/800: "#000000"
`,
			want: TokenMap{"Gray/800": "#000000"},
		},
		{
			name: "empty document",
			doc:  "",
			want: TokenMap{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.want, Flatten(tree))
		})
	}
}

func TestParseRejectsNonMapping(t *testing.T) {
	_, err := Parse([]byte(`- "#fff"`))
	require.Error(t, err)
}

func TestFromMap(t *testing.T) {
	tree := FromMap(map[string]any{
		"primary": "#3B82F6",
		"Gray": map[string]any{
			"800": "#1F2937",
			"900": 900,
		},
	})

	assert.Equal(t, TokenMap{"primary": "#3B82F6", "Gray/800": "#1F2937"}, Flatten(tree))
}

func TestKeysLongestFirst(t *testing.T) {
	tokens := TokenMap{
		"Gray":     "#000",
		"Gray/800": "#1F2937",
		"red":      "#F00",
		"blue":     "#00F",
	}

	assert.Equal(t, []string{"Gray/800", "Gray", "blue", "red"}, tokens.Keys())
}

func TestLoadTokens(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "colors.yaml")
	require.NoError(t, os.WriteFile(path, []byte("primary: \"#3B82F6\"\nGray:\n  800: \"#1F2937\"\n"), 0644))

	tokens, err := LoadTokens(path, map[string]any{"primary": "#000000"})
	require.NoError(t, err)
	assert.Equal(t, TokenMap{"primary": "#000000", "Gray/800": "#1F2937"}, tokens)

	// Edits are visible on the next load
	require.NoError(t, os.WriteFile(path, []byte("accent: \"#F59E0B\"\n"), 0644))
	tokens, err = LoadTokens(path, nil)
	require.NoError(t, err)
	assert.Equal(t, TokenMap{"accent": "#F59E0B"}, tokens)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "colors.js"))
	require.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	tokens, err := LoadTokens("", nil)
	require.NoError(t, err)
	assert.Empty(t, tokens)
}
