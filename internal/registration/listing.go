package registration

import (
	"encoding/json"
	"fmt"

	"xctestgo/internal/engine"
)

// Tree is the listing tree shape of spec.md §6: a name plus child
// tests, with leaves carrying no Tests field at all.
type Tree struct {
	Name  string  `json:"name"`
	Tests []*Tree `json:"tests,omitempty"`
}

// BuildTree walks a TestEntity (typically the assembled root Suite)
// into its listing representation.
func BuildTree(entity engine.TestEntity) *Tree {
	switch e := entity.(type) {
	case *engine.Suite:
		children := make([]*Tree, 0, len(e.Children))
		for _, c := range e.Children {
			children = append(children, BuildTree(c))
		}
		return &Tree{Name: e.Name, Tests: children}
	case *engine.Case:
		return &Tree{Name: e.DisplayName()}
	default:
		return &Tree{Name: entity.DisplayName()}
	}
}

// HumanLines renders one line per leaf case, in tree order — the
// human listing format of spec.md §6.
func HumanLines(tree *Tree) []string {
	var lines []string
	var walk func(*Tree)
	walk = func(t *Tree) {
		if len(t.Tests) == 0 {
			lines = append(lines, t.Name)
			return
		}
		for _, child := range t.Tests {
			walk(child)
		}
	}
	walk(tree)
	return lines
}

// JSON renders the listing tree as indented JSON.
func JSON(tree *Tree) ([]byte, error) {
	return json.MarshalIndent(tree, "", "  ")
}

// LeafNames recovers the flat, ordered set of leaf names from a
// listing tree — used both for human-mode output and to verify the
// JSON/human round-trip property of spec.md §8.
func LeafNames(tree *Tree) []string {
	return HumanLines(tree)
}

// ParseJSON parses a previously rendered listing tree back into a
// Tree, for the round-trip property: JSON listing parses back to the
// same leaf-name set as human listing.
func ParseJSON(data []byte) (*Tree, error) {
	var t Tree
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("registration: parse listing JSON: %w", err)
	}
	return &t, nil
}
