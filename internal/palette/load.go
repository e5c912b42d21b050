package palette

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the palette looked up when none is configured
const DefaultFile = "colors.yaml"

// Parse decodes a YAML or JSON palette document
func Parse(data []byte) (*Tree, error) {
	tree := NewTree()
	if len(bytes.TrimSpace(data)) == 0 {
		return tree, nil
	}

	if err := yaml.Unmarshal(data, tree); err != nil {
		return nil, fmt.Errorf("decode palette: %w", err)
	}
	return tree, nil
}

// Load reads a palette file. It reads from disk on every call so edits made
// between builds are always picked up.
func Load(path string) (*Tree, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("unsupported palette format %q (want .yaml, .yml or .json)", filepath.Ext(path))
	}

	// #nosec G304 - path comes from trusted configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palette: %w", err)
	}

	tree, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

// LoadTokens loads and flattens the palette at path, then applies inline
// entries on top. An empty path skips the file and uses inline entries only.
func LoadTokens(path string, inline map[string]any) (TokenMap, error) {
	tokens := make(TokenMap)

	if path != "" {
		tree, err := Load(path)
		if err != nil {
			return nil, err
		}
		tokens = Flatten(tree)
	}

	if len(inline) > 0 {
		tokens.Merge(Flatten(FromMap(inline)))
	}

	return tokens, nil
}
