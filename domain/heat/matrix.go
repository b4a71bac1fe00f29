package heat

import (
	"polyheat/domain/category"
	"polyheat/domain/core"
)

// Matrix is the literal per-cell color grid, aligned to the same keyed
// row/column space as the numeric matrices it was derived from.
type Matrix struct {
	RowKeys []string `json:"row_keys"`
	ColKeys []string `json:"col_keys"`
	Cells   [][]HSVA `json:"cells"`
}

// Rows returns the number of rows
func (m Matrix) Rows() int { return len(m.RowKeys) }

// Cols returns the number of columns
func (m Matrix) Cols() int { return len(m.ColKeys) }

// IsEmpty reports whether the grid has no cells
func (m Matrix) IsEmpty() bool { return m.Rows() == 0 || m.Cols() == 0 }

// SelectColumns restricts the grid to the given column keys, in order
func (m Matrix) SelectColumns(keys []string) (Matrix, error) {
	idx := make(map[string]int, m.Cols())
	for j, k := range m.ColKeys {
		idx[k] = j
	}
	cols := make([]int, 0, len(keys))
	for _, k := range keys {
		j, ok := idx[k]
		if !ok {
			return Matrix{}, core.NewLookupError(core.ErrCategoryNotFound, k)
		}
		cols = append(cols, j)
	}
	out := Matrix{
		RowKeys: append([]string(nil), m.RowKeys...),
		ColKeys: append([]string(nil), keys...),
		Cells:   make([][]HSVA, m.Rows()),
	}
	for i, row := range m.Cells {
		r := make([]HSVA, len(cols))
		for p, j := range cols {
			r[p] = row[j]
		}
		out.Cells[i] = r
	}
	return out, nil
}

// SelectRows restricts the grid to the given row keys, in order
func (m Matrix) SelectRows(keys []string) (Matrix, error) {
	idx := make(map[string]int, m.Rows())
	for i, k := range m.RowKeys {
		idx[k] = i
	}
	out := Matrix{ColKeys: append([]string(nil), m.ColKeys...)}
	for _, k := range keys {
		i, ok := idx[k]
		if !ok {
			return Matrix{}, core.NewLookupError(core.ErrSubjectNotFound, k)
		}
		out.RowKeys = append(out.RowKeys, k)
		out.Cells = append(out.Cells, append([]HSVA(nil), m.Cells[i]...))
	}
	return out, nil
}

// FilterDOF keeps only columns whose category label has a degree of
// functionality within [minDOF, maxDOF]; maxDOF <= 0 means unbounded.
// This runs directly against the color grid's own columns, a second
// pass independent of the difference-matrix filtering.
func (m Matrix) FilterDOF(minDOF, maxDOF int) (Matrix, error) {
	keep := make([]string, 0, m.Cols())
	for _, k := range m.ColKeys {
		dof := category.Label(k).DOF()
		if dof < minDOF {
			continue
		}
		if maxDOF > 0 && dof > maxDOF {
			continue
		}
		keep = append(keep, k)
	}
	return m.SelectColumns(keep)
}
