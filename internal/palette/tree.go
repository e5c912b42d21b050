// Package palette loads color configurations and flattens them into token maps.
package palette

import (
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// entryKind tells what an entry in a Tree holds
type entryKind int

const (
	kindColor   entryKind = iota // string leaf
	kindGroup                    // nested tree
	kindIgnored                  // number, bool, null: contributes nothing
)

type entry struct {
	key   string
	kind  entryKind
	color string
	group *Tree
}

// Tree is an ordered color configuration. Values are either color strings or
// nested trees; entries keep the order of the source document.
type Tree struct {
	entries []entry
}

// NewTree returns an empty tree
func NewTree() *Tree {
	return &Tree{}
}

// Len returns the number of direct entries
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Set appends a color leaf
func (t *Tree) Set(key, color string) *Tree {
	t.entries = append(t.entries, entry{key: key, kind: kindColor, color: color})
	return t
}

// Group appends a nested tree under key and returns it
func (t *Tree) Group(key string) *Tree {
	child := NewTree()
	t.entries = append(t.entries, entry{key: key, kind: kindGroup, group: child})
	return child
}

// ignore records a malformed value so the key still takes part in ordering
func (t *Tree) ignore(key string) {
	t.entries = append(t.entries, entry{key: key, kind: kindIgnored})
}

// FromMap builds a tree from an unordered map such as an inline palette in the
// tool configuration. Keys are sorted so the result is deterministic.
func FromMap(m map[string]any) *Tree {
	tree := NewTree()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		addValue(tree, k, m[k])
	}
	return tree
}

func addValue(tree *Tree, key string, value any) {
	switch v := value.(type) {
	case string:
		tree.Set(key, v)
	case map[string]any:
		child := FromMap(v)
		tree.entries = append(tree.entries, entry{key: key, kind: kindGroup, group: child})
	case map[any]any:
		converted := make(map[string]any, len(v))
		for mk, mv := range v {
			converted[fmt.Sprint(mk)] = mv
		}
		addValue(tree, key, converted)
	case []any:
		child := NewTree()
		for i, item := range v {
			addValue(child, strconv.Itoa(i), item)
		}
		tree.entries = append(tree.entries, entry{key: key, kind: kindGroup, group: child})
	default:
		tree.ignore(key)
	}
}

// UnmarshalYAML decodes a mapping node while keeping key order.
// Only string scalars become colors; sequences are indexed like mappings.
func (t *Tree) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: color configuration must be a mapping", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		t.decodeValue(node.Content[i].Value, node.Content[i+1])
	}
	return nil
}

func (t *Tree) decodeValue(key string, value *yaml.Node) {
	if value.Kind == yaml.AliasNode && value.Alias != nil {
		value = value.Alias
	}

	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!str" {
			t.Set(key, value.Value)
			return
		}
		t.ignore(key)
	case yaml.MappingNode:
		child := t.Group(key)
		for i := 0; i+1 < len(value.Content); i += 2 {
			child.decodeValue(value.Content[i].Value, value.Content[i+1])
		}
	case yaml.SequenceNode:
		child := t.Group(key)
		for i, item := range value.Content {
			child.decodeValue(strconv.Itoa(i), item)
		}
	default:
		t.ignore(key)
	}
}
