package fit

import (
	"errors"
	"testing"

	"polyheat/domain/core"
)

func sample() Matrix {
	return Matrix{
		RowKeys: []string{"s2", "s1"},
		ColKeys: []string{"01", "10"},
		Data: [][]float64{
			{0.1, 0.2},
			{0.3, 0.4},
		},
	}
}

func TestSortRows(t *testing.T) {
	m := sample().SortRows()
	if m.RowKeys[0] != "s1" || m.RowKeys[1] != "s2" {
		t.Fatalf("row order = %v", m.RowKeys)
	}
	if m.Data[0][1] != 0.4 {
		t.Errorf("row values did not follow keys: %v", m.Data)
	}
}

func TestDropColumn(t *testing.T) {
	m := sample().DropColumn("01")
	if m.Cols() != 1 || m.ColKeys[0] != "10" {
		t.Fatalf("cols = %v", m.ColKeys)
	}
	if m.Data[0][0] != 0.2 {
		t.Errorf("kept wrong column: %v", m.Data)
	}
	// Dropping an absent column is a no-op
	if got := m.DropColumn("absent"); got.Cols() != 1 {
		t.Errorf("drop absent changed shape: %v", got.ColKeys)
	}
}

func TestSelectRowsUnknownSubject(t *testing.T) {
	if _, err := sample().SelectRows([]string{"nope"}); !errors.Is(err, core.ErrSubjectNotFound) {
		t.Fatalf("err = %v, want ErrSubjectNotFound", err)
	}
}

func TestSelectColumnsReorders(t *testing.T) {
	m, err := sample().SelectColumns([]string{"10", "01"})
	if err != nil {
		t.Fatalf("SelectColumns: %v", err)
	}
	if m.ColKeys[0] != "10" || m.Data[0][0] != 0.2 {
		t.Errorf("reorder failed: keys=%v data=%v", m.ColKeys, m.Data)
	}
}

func TestWithZeroColumn(t *testing.T) {
	m := sample().WithZeroColumn("11")
	if m.Cols() != 3 {
		t.Fatalf("cols = %d, want 3", m.Cols())
	}
	for i := range m.Data {
		if m.Data[i][2] != 0 {
			t.Errorf("zero column not zero: %v", m.Data[i])
		}
	}
}

func TestSubRequiresAlignedKeys(t *testing.T) {
	a := sample().SortRows()
	b := sample().SortRows()
	diff, err := a.Sub(b)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	for i := range diff.Data {
		for j := range diff.Data[i] {
			if diff.Data[i][j] != 0 {
				t.Errorf("self-difference not zero at %d,%d", i, j)
			}
		}
	}

	swapped, err := b.SelectColumns([]string{"10", "01"})
	if err != nil {
		t.Fatalf("SelectColumns: %v", err)
	}
	if _, err := a.Sub(swapped); !core.IsInternalError(err) {
		t.Fatalf("misaligned Sub error = %v, want internal misalignment", err)
	}
}

func TestOperationsDoNotMutateInput(t *testing.T) {
	m := sample()
	_ = m.SortRows()
	_ = m.DropColumn("01")
	_ = m.WithZeroColumn("11")
	if m.RowKeys[0] != "s2" || m.Cols() != 2 || m.Data[0][0] != 0.1 {
		t.Fatal("input matrix was mutated")
	}
}
