package fit

import (
	"sort"

	"polyheat/domain/core"
)

// Row is one metadata record as column->value pairs
type Row map[string]string

// Metadata is the per-subject annotation table of a fit: arbitrary
// string-valued columns keyed by a subject-identifier column. Row order
// is significant for display.
type Metadata struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Len returns the number of rows
func (md Metadata) Len() int { return len(md.Rows) }

// HasColumn reports whether the table defines the named column
func (md Metadata) HasColumn(name string) bool {
	for _, c := range md.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// SelectColumns restricts the table to the named columns
func (md Metadata) SelectColumns(names []string) (Metadata, error) {
	for _, n := range names {
		if !md.HasColumn(n) {
			return Metadata{}, core.NewLookupError(core.ErrColumnNotFound, n)
		}
	}
	out := Metadata{Columns: append([]string(nil), names...)}
	for _, row := range md.Rows {
		r := make(Row, len(names))
		for _, n := range names {
			r[n] = row[n]
		}
		out.Rows = append(out.Rows, r)
	}
	return out, nil
}

// FilterSubjects keeps rows whose identifier-column value is in keep
func (md Metadata) FilterSubjects(idColumn string, keep map[string]bool) Metadata {
	out := Metadata{Columns: append([]string(nil), md.Columns...)}
	for _, row := range md.Rows {
		if keep[row[idColumn]] {
			out.Rows = append(out.Rows, cloneRow(row))
		}
	}
	return out
}

// Dedupe keeps the first row per subject identifier
func (md Metadata) Dedupe(idColumn string) Metadata {
	out := Metadata{Columns: append([]string(nil), md.Columns...)}
	seen := make(map[string]bool)
	for _, row := range md.Rows {
		id := row[idColumn]
		if seen[id] {
			continue
		}
		seen[id] = true
		out.Rows = append(out.Rows, cloneRow(row))
	}
	return out
}

// Reindex reorders rows to match the given subject order exactly.
// Subjects absent from the table get a row of empty values, mirroring
// an outer join against the matrix row keys.
func (md Metadata) Reindex(idColumn string, order []string) Metadata {
	byID := make(map[string]Row, md.Len())
	for _, row := range md.Rows {
		if _, ok := byID[row[idColumn]]; !ok {
			byID[row[idColumn]] = row
		}
	}
	out := Metadata{Columns: append([]string(nil), md.Columns...)}
	for _, id := range order {
		if row, ok := byID[id]; ok {
			out.Rows = append(out.Rows, cloneRow(row))
			continue
		}
		blank := make(Row, len(md.Columns))
		for _, c := range md.Columns {
			blank[c] = ""
		}
		blank[idColumn] = id
		out.Rows = append(out.Rows, blank)
	}
	return out
}

// OrderBy returns the subject identifiers ordered by a stable
// lexicographic sort over the given annotation columns, left to right.
func (md Metadata) OrderBy(idColumn string, columns []string) []string {
	order := make([]int, md.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := md.Rows[order[a]], md.Rows[order[b]]
		for _, c := range columns {
			if ra[c] != rb[c] {
				return ra[c] < rb[c]
			}
		}
		return false
	})
	ids := make([]string, 0, md.Len())
	for _, i := range order {
		ids = append(ids, md.Rows[i][idColumn])
	}
	return ids
}

func cloneRow(r Row) Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
