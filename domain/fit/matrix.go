package fit

import (
	"sort"

	"polyheat/domain/core"
)

// Matrix is a dense numeric matrix with keyed rows (subject identifiers)
// and keyed columns (category labels). All operations allocate a new
// matrix; inputs are never mutated.
type Matrix struct {
	RowKeys []string    `json:"row_keys"`
	ColKeys []string    `json:"col_keys"`
	Data    [][]float64 `json:"data"` // rows=subjects, cols=categories
}

// NewMatrix creates a zero-filled matrix with the given keys
func NewMatrix(rowKeys, colKeys []string) Matrix {
	m := Matrix{
		RowKeys: append([]string(nil), rowKeys...),
		ColKeys: append([]string(nil), colKeys...),
		Data:    make([][]float64, len(rowKeys)),
	}
	for i := range m.Data {
		m.Data[i] = make([]float64, len(colKeys))
	}
	return m
}

// Rows returns the number of rows
func (m Matrix) Rows() int { return len(m.RowKeys) }

// Cols returns the number of columns
func (m Matrix) Cols() int { return len(m.ColKeys) }

// IsEmpty reports whether the matrix has no cells
func (m Matrix) IsEmpty() bool { return m.Rows() == 0 || m.Cols() == 0 }

// RowIndex returns the position of a row key, or -1 if absent
func (m Matrix) RowIndex(key string) int {
	for i, k := range m.RowKeys {
		if k == key {
			return i
		}
	}
	return -1
}

// ColIndex returns the position of a column key, or -1 if absent
func (m Matrix) ColIndex(key string) int {
	for j, k := range m.ColKeys {
		if k == key {
			return j
		}
	}
	return -1
}

// Column returns a copy of the j-th column vector
func (m Matrix) Column(j int) []float64 {
	col := make([]float64, m.Rows())
	for i := range m.Data {
		col[i] = m.Data[i][j]
	}
	return col
}

// Clone returns a deep copy
func (m Matrix) Clone() Matrix {
	out := Matrix{
		RowKeys: append([]string(nil), m.RowKeys...),
		ColKeys: append([]string(nil), m.ColKeys...),
		Data:    make([][]float64, len(m.Data)),
	}
	for i, row := range m.Data {
		out.Data[i] = append([]float64(nil), row...)
	}
	return out
}

// DropColumn removes the named column. Dropping an absent column is a
// no-op: not every fit carries the reserved null column explicitly.
func (m Matrix) DropColumn(key string) Matrix {
	j := m.ColIndex(key)
	if j < 0 {
		return m.Clone()
	}
	out := Matrix{
		RowKeys: append([]string(nil), m.RowKeys...),
		ColKeys: make([]string, 0, m.Cols()-1),
		Data:    make([][]float64, m.Rows()),
	}
	out.ColKeys = append(out.ColKeys, m.ColKeys[:j]...)
	out.ColKeys = append(out.ColKeys, m.ColKeys[j+1:]...)
	for i, row := range m.Data {
		r := make([]float64, 0, len(row)-1)
		r = append(r, row[:j]...)
		r = append(r, row[j+1:]...)
		out.Data[i] = r
	}
	return out
}

// SortRows orders rows by lexical row-key order
func (m Matrix) SortRows() Matrix {
	order := make([]int, m.Rows())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return m.RowKeys[order[a]] < m.RowKeys[order[b]]
	})
	out := Matrix{ColKeys: append([]string(nil), m.ColKeys...)}
	for _, i := range order {
		out.RowKeys = append(out.RowKeys, m.RowKeys[i])
		out.Data = append(out.Data, append([]float64(nil), m.Data[i]...))
	}
	return out
}

// SelectRows restricts the matrix to the given row keys, in the given order
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
		out.Data = append(out.Data, append([]float64(nil), m.Data[i]...))
	}
	return out, nil
}

// SelectColumns restricts the matrix to the given column keys, in the
// given order. Columns not named are dropped.
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
		Data:    make([][]float64, m.Rows()),
	}
	for i, row := range m.Data {
		r := make([]float64, len(cols))
		for p, j := range cols {
			r[p] = row[j]
		}
		out.Data[i] = r
	}
	return out, nil
}

// WithZeroColumn appends a zero-valued column under the given key
func (m Matrix) WithZeroColumn(key string) Matrix {
	out := m.Clone()
	out.ColKeys = append(out.ColKeys, key)
	for i := range out.Data {
		out.Data[i] = append(out.Data[i], 0)
	}
	return out
}

// Sub returns m - other. Both matrices must have identical row and
// column key sequences.
func (m Matrix) Sub(other Matrix) (Matrix, error) {
	if m.Rows() != other.Rows() || m.Cols() != other.Cols() {
		return Matrix{}, core.NewShapeError(m.Rows(), m.Cols(), other.Rows(), other.Cols())
	}
	for i := range m.RowKeys {
		if m.RowKeys[i] != other.RowKeys[i] {
			return Matrix{}, core.NewLookupError(core.ErrSubjectNotFound, other.RowKeys[i])
		}
	}
	for j := range m.ColKeys {
		if m.ColKeys[j] != other.ColKeys[j] {
			return Matrix{}, core.NewMisalignmentError(j, m.ColKeys[j], other.ColKeys[j])
		}
	}
	out := NewMatrix(m.RowKeys, m.ColKeys)
	for i := range m.Data {
		for j := range m.Data[i] {
			out.Data[i][j] = m.Data[i][j] - other.Data[i][j]
		}
	}
	return out, nil
}

// Validate ensures the matrix is internally consistent
func (m Matrix) Validate() error {
	if m.IsEmpty() {
		return core.ErrEmptyMatrix
	}
	if len(m.Data) != m.Rows() {
		return core.NewShapeError(m.Rows(), m.Cols(), len(m.Data), m.Cols())
	}
	for _, row := range m.Data {
		if len(row) != m.Cols() {
			return core.NewShapeError(m.Rows(), m.Cols(), m.Rows(), len(row))
		}
	}
	return nil
}
