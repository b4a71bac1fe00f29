package category

import (
	"errors"
	"testing"

	"polyheat/domain/core"
)

func TestLabelDOF(t *testing.T) {
	cases := map[Label]int{
		"000": 0,
		"100": 1,
		"101": 2,
		"111": 3,
	}
	for label, want := range cases {
		if got := label.DOF(); got != want {
			t.Errorf("DOF(%q) = %d, want %d", label, got, want)
		}
	}
}

func TestLabelFromBits(t *testing.T) {
	if got := LabelFromBits([]int{1, 0, 1}); got != "101" {
		t.Errorf("LabelFromBits = %q, want 101", got)
	}
	if got := NullLabel(4); got != "0000" {
		t.Errorf("NullLabel(4) = %q, want 0000", got)
	}
}

func TestUnionDeduplicatesAndRelabels(t *testing.T) {
	a := Table{
		Markers: []string{"A", "B"},
		Labels:  []Label{"10", "11"},
		Bits:    [][]int{{1, 0}, {1, 1}},
	}
	b := Table{
		Markers: []string{"A", "B"},
		Labels:  []Label{"x", "01"}, // non-canonical label must be rewritten
		Bits:    [][]int{{1, 1}, {0, 1}},
	}

	u, err := Union(a, b)
	if err != nil {
		t.Fatalf("Union: %v", err)
	}
	if u.Len() != 3 {
		t.Fatalf("union has %d categories, want 3", u.Len())
	}
	for _, want := range []Label{"10", "11", "01"} {
		if !u.Contains(want) {
			t.Errorf("union missing %q", want)
		}
	}
}

func TestUnionMarkerMismatch(t *testing.T) {
	a := Table{Markers: []string{"A", "B"}, Labels: []Label{"10"}, Bits: [][]int{{1, 0}}}
	b := Table{Markers: []string{"A", "C"}, Labels: []Label{"10"}, Bits: [][]int{{1, 0}}}
	if _, err := Union(a, b); !errors.Is(err, core.ErrMarkerMismatch) {
		t.Fatalf("Union error = %v, want ErrMarkerMismatch", err)
	}
}

func TestDropNullAndSort(t *testing.T) {
	tbl := Table{
		Markers: []string{"A", "B"},
		Labels:  []Label{"11", "00", "01"},
		Bits:    [][]int{{1, 1}, {0, 0}, {0, 1}},
	}
	got := tbl.DropNull().SortByLabel()
	if got.Len() != 2 {
		t.Fatalf("got %d categories, want 2", got.Len())
	}
	if got.Labels[0] != "01" || got.Labels[1] != "11" {
		t.Errorf("sorted labels = %v, want [01 11]", got.Labels)
	}
}

func TestSelectPreservesOrderAndErrors(t *testing.T) {
	tbl := Table{
		Markers: []string{"A", "B"},
		Labels:  []Label{"01", "10", "11"},
		Bits:    [][]int{{0, 1}, {1, 0}, {1, 1}},
	}
	sel, err := tbl.Select([]Label{"11", "01"})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if sel.Labels[0] != "11" || sel.Labels[1] != "01" {
		t.Errorf("Select order = %v, want [11 01]", sel.Labels)
	}

	if _, err := tbl.Select([]Label{"00"}); !errors.Is(err, core.ErrCategoryNotFound) {
		t.Errorf("Select unknown = %v, want ErrCategoryNotFound", err)
	}
}

func TestMarkerSetCoversPanel(t *testing.T) {
	tbl := Table{
		Markers: []string{"A", "B"},
		Labels:  []Label{"10"},
		Bits:    [][]int{{1, 0}},
	}
	set := tbl.MarkerSet(0)
	if !set["A"] || set["B"] {
		t.Errorf("MarkerSet = %v, want A=true B=false", set)
	}
	if _, ok := set["C"]; ok {
		t.Error("MarkerSet should not invent markers")
	}
}
