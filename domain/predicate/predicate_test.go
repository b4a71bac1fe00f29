package predicate

import (
	"errors"
	"testing"

	"polyheat/domain/core"
)

func TestMarkerCombinators(t *testing.T) {
	set := map[string]bool{"A": true, "B": false, "C": true}

	cases := []struct {
		name string
		p    MarkerPredicate
		want bool
	}{
		{"expressed hit", Expressed("A"), true},
		{"expressed miss", Expressed("B"), false},
		{"all of", AllOf(Expressed("A"), Expressed("C")), true},
		{"all of short-circuit", AllOf(Expressed("A"), Expressed("B")), false},
		{"any of", AnyOf(Expressed("B"), Expressed("C")), true},
		{"not", Not(Expressed("B")), true},
		{"nested", AllOf(Expressed("A"), Not(Expressed("B"))), true},
	}
	for _, tc := range cases {
		got, err := tc.p.Matches(set)
		if err != nil {
			t.Errorf("%s: %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestMarkerUnknownIsError(t *testing.T) {
	set := map[string]bool{"A": true}
	if _, err := Expressed("Z").Matches(set); !errors.Is(err, core.ErrMarkerNotFound) {
		t.Fatalf("err = %v, want ErrMarkerNotFound", err)
	}
	// Errors propagate through combinators
	if _, err := AllOf(Expressed("A"), Expressed("Z")).Matches(set); !errors.Is(err, core.ErrMarkerNotFound) {
		t.Fatalf("combinator err = %v, want ErrMarkerNotFound", err)
	}
}

func TestRowCombinators(t *testing.T) {
	row := map[string]string{"arm": "vaccine", "site": "a"}

	cases := []struct {
		name string
		p    RowPredicate
		want bool
	}{
		{"eq hit", Eq("arm", "vaccine"), true},
		{"eq miss", Eq("arm", "placebo"), false},
		{"in", In("site", "a", "b"), true},
		{"in miss", In("site", "c"), false},
		{"and", RowAnd(Eq("arm", "vaccine"), Eq("site", "a")), true},
		{"or", RowOr(Eq("arm", "placebo"), Eq("site", "a")), true},
		{"not", RowNot(Eq("arm", "placebo")), true},
	}
	for _, tc := range cases {
		got, err := tc.p.Matches(row)
		if err != nil {
			t.Errorf("%s: %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestRowUnknownColumnIsError(t *testing.T) {
	row := map[string]string{"arm": "vaccine"}
	if _, err := Eq("age", "30").Matches(row); !errors.Is(err, core.ErrColumnNotFound) {
		t.Fatalf("err = %v, want ErrColumnNotFound", err)
	}
}
