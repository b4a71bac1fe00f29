// Package predicate provides the closed combinator vocabulary used to
// narrow categories (marker-expression predicates) and subjects
// (metadata-row predicates). The combinators are a deliberate closed
// AST: there is no string expression language and no evaluator beyond
// these types.
package predicate

import (
	"fmt"
	"strings"

	"polyheat/domain/core"
)

// MarkerPredicate is a boolean expression over a category's marker
// expression vector. The set maps every panel marker name to whether
// the category expresses it.
type MarkerPredicate interface {
	Matches(markers map[string]bool) (bool, error)
	String() string
}

type expressed struct{ name string }

// Expressed matches categories in which the named marker is positive
func Expressed(name string) MarkerPredicate { return expressed{name: name} }

func (p expressed) Matches(markers map[string]bool) (bool, error) {
	on, ok := markers[p.name]
	if !ok {
		return false, core.NewLookupError(core.ErrMarkerNotFound, p.name)
	}
	return on, nil
}

func (p expressed) String() string { return p.name + "+" }

type allOf struct{ ps []MarkerPredicate }

// AllOf matches categories satisfying every sub-predicate
func AllOf(ps ...MarkerPredicate) MarkerPredicate { return allOf{ps: ps} }

func (p allOf) Matches(markers map[string]bool) (bool, error) {
	for _, sub := range p.ps {
		ok, err := sub.Matches(markers)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (p allOf) String() string { return join(p.ps, " & ") }

type anyOf struct{ ps []MarkerPredicate }

// AnyOf matches categories satisfying at least one sub-predicate
func AnyOf(ps ...MarkerPredicate) MarkerPredicate { return anyOf{ps: ps} }

func (p anyOf) Matches(markers map[string]bool) (bool, error) {
	for _, sub := range p.ps {
		ok, err := sub.Matches(markers)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (p anyOf) String() string { return join(p.ps, " | ") }

type not struct{ p MarkerPredicate }

// Not inverts a marker predicate
func Not(p MarkerPredicate) MarkerPredicate { return not{p: p} }

func (p not) Matches(markers map[string]bool) (bool, error) {
	ok, err := p.p.Matches(markers)
	return !ok, err
}

func (p not) String() string { return fmt.Sprintf("!(%s)", p.p) }

func join(ps []MarkerPredicate, sep string) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}
