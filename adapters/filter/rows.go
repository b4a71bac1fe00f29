package filter

import (
	"polyheat/domain/core"
	"polyheat/domain/fit"
	"polyheat/domain/predicate"
)

// ============================================================================
// ROW SELECTOR
// ============================================================================
// Restricts subjects by a metadata predicate and derives the display row
// order. The predicate is evaluated once against left's full metadata,
// so it may reference any column; the resulting subject set is then
// applied symmetrically to every matrix by the caller.

// Rows returns the subject identifiers whose metadata row matches the
// predicate, preserving table row order. A nil predicate keeps everyone.
func Rows(meta fit.Metadata, idColumn string, pred predicate.RowPredicate) ([]string, error) {
	ids := make([]string, 0, meta.Len())
	for _, row := range meta.Rows {
		if pred != nil {
			ok, err := pred.Matches(row)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		ids = append(ids, row[idColumn])
	}
	if len(ids) == 0 {
		return nil, core.ErrNoSubjects
	}
	return ids, nil
}

// Order returns the final display order of the given subjects. With
// annotation columns present, rows are ordered by a stable
// lexicographic sort over those columns, left to right; otherwise the
// incoming order is kept.
func Order(meta fit.Metadata, idColumn string, subjects []string, annotations []string) []string {
	if len(annotations) == 0 {
		return append([]string(nil), subjects...)
	}
	keep := make(map[string]bool, len(subjects))
	for _, id := range subjects {
		keep[id] = true
	}
	ordered := meta.FilterSubjects(idColumn, keep).OrderBy(idColumn, annotations)
	return ordered
}
