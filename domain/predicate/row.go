package predicate

import (
	"fmt"
	"strings"

	"polyheat/domain/core"
)

// RowPredicate is a boolean expression over one metadata row, referencing
// metadata columns by name. Unknown columns are an error, not a miss.
type RowPredicate interface {
	Matches(row map[string]string) (bool, error)
	String() string
}

type eq struct {
	column string
	value  string
}

// Eq matches rows whose column equals the given value
func Eq(column, value string) RowPredicate { return eq{column: column, value: value} }

func (p eq) Matches(row map[string]string) (bool, error) {
	v, ok := row[p.column]
	if !ok {
		return false, core.NewLookupError(core.ErrColumnNotFound, p.column)
	}
	return v == p.value, nil
}

func (p eq) String() string { return fmt.Sprintf("%s == %q", p.column, p.value) }

type in struct {
	column string
	values []string
}

// In matches rows whose column value is one of the given values
func In(column string, values ...string) RowPredicate {
	return in{column: column, values: values}
}

func (p in) Matches(row map[string]string) (bool, error) {
	v, ok := row[p.column]
	if !ok {
		return false, core.NewLookupError(core.ErrColumnNotFound, p.column)
	}
	for _, want := range p.values {
		if v == want {
			return true, nil
		}
	}
	return false, nil
}

func (p in) String() string {
	return fmt.Sprintf("%s in [%s]", p.column, strings.Join(p.values, ", "))
}

type rowAnd struct{ ps []RowPredicate }

// RowAnd matches rows satisfying every sub-predicate
func RowAnd(ps ...RowPredicate) RowPredicate { return rowAnd{ps: ps} }

func (p rowAnd) Matches(row map[string]string) (bool, error) {
	for _, sub := range p.ps {
		ok, err := sub.Matches(row)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (p rowAnd) String() string { return joinRows(p.ps, " & ") }

type rowOr struct{ ps []RowPredicate }

// RowOr matches rows satisfying at least one sub-predicate
func RowOr(ps ...RowPredicate) RowPredicate { return rowOr{ps: ps} }

func (p rowOr) Matches(row map[string]string) (bool, error) {
	for _, sub := range p.ps {
		ok, err := sub.Matches(row)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (p rowOr) String() string { return joinRows(p.ps, " | ") }

type rowNot struct{ p RowPredicate }

// RowNot inverts a row predicate
func RowNot(p RowPredicate) RowPredicate { return rowNot{p: p} }

func (p rowNot) Matches(row map[string]string) (bool, error) {
	ok, err := p.p.Matches(row)
	return !ok, err
}

func (p rowNot) String() string { return fmt.Sprintf("!(%s)", p.p) }

func joinRows(ps []RowPredicate, sep string) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}
