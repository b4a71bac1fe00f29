package category

import (
	"sort"
	"strings"

	"polyheat/domain/core"
)

// Label encodes a marker-positivity combination as a binary string,
// one character per marker ("1" = expressed, "0" = not).
// Lexicographic order over the string is the canonical category order.
type Label string

// DOF returns the degree of functionality: the number of markers
// expressed in this combination.
func (l Label) DOF() int {
	return strings.Count(string(l), "1")
}

// NullLabel returns the reserved all-negative label for a panel of n markers.
func NullLabel(n int) Label {
	return Label(strings.Repeat("0", n))
}

// LabelFromBits derives the canonical label for a binary marker vector.
func LabelFromBits(bits []int) Label {
	var b strings.Builder
	b.Grow(len(bits))
	for _, bit := range bits {
		if bit != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return Label(b.String())
}

// Table is the category-definition table of a fitted model: one row per
// marker combination, one column per marker. Row order is significant
// and mirrors the column order of the associated response matrix.
type Table struct {
	Markers []string `json:"markers"`
	Labels  []Label  `json:"labels"`
	Bits    [][]int  `json:"bits"`
}

// Len returns the number of categories in the table
func (t Table) Len() int { return len(t.Labels) }

// Index returns the row position of a label, or -1 if absent
func (t Table) Index(label Label) int {
	for i, l := range t.Labels {
		if l == label {
			return i
		}
	}
	return -1
}

// Contains reports whether the table defines the given category
func (t Table) Contains(label Label) bool { return t.Index(label) >= 0 }

// MarkerSet returns the category's marker expression as a name->expressed map.
// Every panel marker is present in the map, so absent names are detectably unknown.
func (t Table) MarkerSet(row int) map[string]bool {
	set := make(map[string]bool, len(t.Markers))
	for j, m := range t.Markers {
		set[m] = t.Bits[row][j] != 0
	}
	return set
}

// Relabel rewrites every label from its bit vector, restoring the
// canonical binary-string encoding regardless of what the caller supplied.
func (t Table) Relabel() Table {
	out := t.clone()
	for i, bits := range out.Bits {
		out.Labels[i] = LabelFromBits(bits)
	}
	return out
}

// DropNull removes the reserved all-zero category, if present.
func (t Table) DropNull() Table {
	null := NullLabel(len(t.Markers))
	out := Table{Markers: append([]string(nil), t.Markers...)}
	for i, l := range t.Labels {
		if l == null {
			continue
		}
		out.Labels = append(out.Labels, l)
		out.Bits = append(out.Bits, append([]int(nil), t.Bits[i]...))
	}
	return out
}

// SortByLabel orders rows by canonical lexicographic label order.
func (t Table) SortByLabel() Table {
	out := t.clone()
	order := make([]int, out.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return out.Labels[order[a]] < out.Labels[order[b]]
	})
	sorted := Table{Markers: out.Markers}
	for _, i := range order {
		sorted.Labels = append(sorted.Labels, out.Labels[i])
		sorted.Bits = append(sorted.Bits, out.Bits[i])
	}
	return sorted
}

// Select restricts the table to the given labels, in the given order.
func (t Table) Select(labels []Label) (Table, error) {
	out := Table{Markers: append([]string(nil), t.Markers...)}
	for _, l := range labels {
		i := t.Index(l)
		if i < 0 {
			return Table{}, core.NewLookupError(core.ErrCategoryNotFound, string(l))
		}
		out.Labels = append(out.Labels, t.Labels[i])
		out.Bits = append(out.Bits, append([]int(nil), t.Bits[i]...))
	}
	return out, nil
}

// Union merges two category tables row-wise as a set union over the
// binary marker vectors. Both tables must share the same marker panel.
// Labels in the result are re-derived from the bit vectors.
func Union(a, b Table) (Table, error) {
	if len(a.Markers) != len(b.Markers) {
		return Table{}, core.ErrMarkerMismatch
	}
	for i := range a.Markers {
		if a.Markers[i] != b.Markers[i] {
			return Table{}, core.NewLookupError(core.ErrMarkerMismatch, b.Markers[i])
		}
	}

	out := Table{Markers: append([]string(nil), a.Markers...)}
	seen := make(map[Label]bool)
	add := func(t Table) {
		for i := range t.Labels {
			label := LabelFromBits(t.Bits[i])
			if seen[label] {
				continue
			}
			seen[label] = true
			out.Labels = append(out.Labels, label)
			out.Bits = append(out.Bits, append([]int(nil), t.Bits[i]...))
		}
	}
	add(a)
	add(b)
	return out, nil
}

func (t Table) clone() Table {
	out := Table{
		Markers: append([]string(nil), t.Markers...),
		Labels:  append([]Label(nil), t.Labels...),
	}
	for _, row := range t.Bits {
		out.Bits = append(out.Bits, append([]int(nil), row...))
	}
	return out
}
