// Package registration builds the executable test tree from a flat
// registration list and an optional selector filter.
package registration

import (
	"fmt"
	"strings"

	"xctestgo/internal/engine"
)

// ClassBody is a single test method registered on a class: its name and
// the callable that invokes it given a fresh Case.
type ClassBody struct {
	MethodName string
	Body       func(c *engine.Case) error
}

// ClassHandle describes one registered test class: its name, the
// methods registered on it in declaration order, and its optional
// once-per-class setUp/tearDown.
type ClassHandle struct {
	Name          string
	Methods       []ClassBody
	ClassSetUp    func() error
	ClassTearDown func() error

	// SetUpThrowing, SetUpNonThrowing, TearDownNonThrowing, and
	// TearDownThrowing are instance-level hooks applied to every Case
	// built from this class.
	SetUpThrowing       func() error
	SetUpNonThrowing    func()
	TearDownNonThrowing func()
	TearDownThrowing    func() error
}

// Entry pairs a ClassHandle with its methods, the unit Build consumes.
type Entry struct {
	Class ClassHandle
}

// Selector is a parsed "ClassName" or "ClassName/methodName" filter
// term.
type Selector struct {
	ClassName  string
	MethodName string // empty means "every method of ClassName"
}

// ParseSelector parses the "Identifier ('/' Identifier)?" grammar.
// Two or more slashes is malformed and reported via ok=false, per
// spec.md §6 — the caller is expected to discard a malformed selector
// rather than treat it as matching nothing or everything.
func ParseSelector(raw string) (Selector, bool) {
	parts := strings.Split(raw, "/")
	switch len(parts) {
	case 1:
		if parts[0] == "" {
			return Selector{}, false
		}
		return Selector{ClassName: parts[0]}, true
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return Selector{}, false
		}
		return Selector{ClassName: parts[0], MethodName: parts[1]}, true
	default:
		return Selector{}, false
	}
}

// Filter is either "all" or an explicit set of selectors.
type Filter struct {
	all       bool
	selectors map[string]bool // "Class" or "Class/method"
}

// All is the filter that selects every registered method.
func All() Filter { return Filter{all: true} }

// NewFilter builds a filter from selector strings, discarding malformed
// ones.
func NewFilter(raw ...string) Filter {
	f := Filter{selectors: map[string]bool{}}
	for _, r := range raw {
		sel, ok := ParseSelector(r)
		if !ok {
			continue
		}
		f.selectors[sel.key()] = true
	}
	return f
}

func (s Selector) key() string {
	if s.MethodName == "" {
		return s.ClassName
	}
	return s.ClassName + "/" + s.MethodName
}

func (f Filter) includes(className, methodName string) bool {
	if f.all {
		return true
	}
	return f.selectors[className] || f.selectors[className+"/"+methodName]
}

// HasSelectors reports whether this filter carries explicit selectors
// (as opposed to "all"), which determines the shape of the assembled
// root suite.
func (f Filter) HasSelectors() bool { return !f.all }

// Apply filters entries' methods according to f, preserving
// registration order and dropping classes left with no methods — the
// filtering rule of spec.md §4.G. Applying the same filter twice is
// idempotent, since filtering never reorders or duplicates entries.
func Apply(entries []Entry, f Filter) []Entry {
	var out []Entry
	for _, e := range entries {
		var kept []ClassBody
		for _, m := range e.Class.Methods {
			if f.includes(e.Class.Name, m.MethodName) {
				kept = append(kept, m)
			}
		}
		if len(kept) == 0 {
			continue
		}
		filtered := e.Class
		filtered.Methods = kept
		out = append(out, Entry{Class: filtered})
	}
	return out
}

// Build assembles the root Suite from filtered entries, following
// spec.md §4.G's root-assembly rules: a selector-less run nests class
// suites inside a "<bundle>.xctest" suite inside "All tests"; a
// selector-driven run nests class suites directly inside
// "Selected tests".
func Build(entries []Entry, f Filter, bundleName string) *engine.Suite {
	classSuites := make([]engine.TestEntity, 0, len(entries))
	for _, e := range entries {
		classSuites = append(classSuites, buildClassSuite(e.Class))
	}

	if f.HasSelectors() {
		return &engine.Suite{Name: "Selected tests", Children: classSuites}
	}

	bundleSuite := &engine.Suite{Name: fmt.Sprintf("%s.xctest", bundleName), Children: classSuites}
	return &engine.Suite{Name: "All tests", Children: []engine.TestEntity{bundleSuite}}
}

func buildClassSuite(class ClassHandle) *engine.Suite {
	children := make([]engine.TestEntity, 0, len(class.Methods))
	for _, m := range class.Methods {
		children = append(children, &engine.Case{
			ClassName:           class.Name,
			MethodName:          m.MethodName,
			Body:                m.Body,
			SetUpThrowing:       class.SetUpThrowing,
			SetUpNonThrowing:    class.SetUpNonThrowing,
			TearDownNonThrowing: class.TearDownNonThrowing,
			TearDownThrowing:    class.TearDownThrowing,
		})
	}
	return &engine.Suite{
		Name:          class.Name,
		Children:      children,
		ClassSetUp:    class.ClassSetUp,
		ClassTearDown: class.ClassTearDown,
	}
}
