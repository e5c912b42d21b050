package palette

import (
	"sort"
	"strings"
)

// Separator joins nested keys into token names: {Gray: {800: ...}} -> "Gray/800"
const Separator = "/"

// TokenMap maps a token name to its color value
type TokenMap map[string]string

// Flatten turns a nested tree into a flat token map.
// When two paths produce the same name, the one that comes later in the
// source order wins.
func Flatten(tree *Tree) TokenMap {
	flat := make(TokenMap)
	flattenInto(flat, tree, "")
	return flat
}

func flattenInto(flat TokenMap, tree *Tree, prefix string) {
	if tree == nil {
		return
	}

	for _, e := range tree.entries {
		name := e.key
		if prefix != "" {
			name = prefix + Separator + e.key
		}

		switch e.kind {
		case kindColor:
			flat[name] = e.color
		case kindGroup:
			flattenInto(flat, e.group, name)
		}
	}
}

// Keys returns token names longest first, so that "Gray/800" is always tried
// before "Gray". Equal lengths are ordered lexically to keep runs stable.
func (m TokenMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Merge copies other into m, overwriting existing names
func (m TokenMap) Merge(other TokenMap) {
	for k, v := range other {
		m[k] = v
	}
}

// IsSlashed reports whether a token name is a nested path.
// Slashed names are not valid CSS identifiers and need pattern matching.
func IsSlashed(name string) bool {
	return strings.Contains(name, Separator)
}
