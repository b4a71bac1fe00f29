package align

import (
	"fmt"
	"log"
	"sort"

	"polyheat/domain/core"
	"polyheat/domain/fit"
)

// ============================================================================
// RESULT NORMALIZER
// ============================================================================
// Brings two fit results onto a common, lexically sorted subject (row)
// set. The null category column is dropped from each response matrix
// before any comparison. A subject-set mismatch is recoverable: the
// pipeline warns and proceeds with the intersection. This is the only
// condition with a designed automatic recovery path.

// Normalized holds the row-aligned response matrices and left's
// metadata for row selection and annotation.
type Normalized struct {
	Left  fit.Matrix
	Right fit.Matrix

	// Meta is left's full metadata restricted to the kept subjects, one
	// row per subject, reindexed to matrix row order. All columns are
	// carried: row predicates may reference any of them, not just the
	// annotation columns.
	Meta     fit.Metadata
	IDColumn string

	// Warnings collects non-fatal diagnostics (currently only the
	// subject-set mismatch).
	Warnings []string
}

// Normalize aligns two fit results to a common sorted subject set.
// annotations names the metadata columns requested for row annotation;
// it may be empty.
func Normalize(left, right *fit.Result, annotations []string) (*Normalized, error) {
	if err := left.Validate(); err != nil {
		return nil, fmt.Errorf("left fit: %w", err)
	}
	if err := right.Validate(); err != nil {
		return nil, fmt.Errorf("right fit: %w", err)
	}

	// Step 1: Drop the reserved null column and sort rows by subject ID
	lm := left.MeanGamma.DropColumn(string(left.NullLabel())).SortRows()
	rm := right.MeanGamma.DropColumn(string(right.NullLabel())).SortRows()

	// Step 2: Restrict both sides to the shared subjects if the sets differ
	var warnings []string
	if !equalKeys(lm.RowKeys, rm.RowKeys) {
		shared := intersect(lm.RowKeys, rm.RowKeys)
		w := fmt.Sprintf("subject sets differ between fits; keeping the %d shared subjects", len(shared))
		log.Printf("[align] WARNING: %s", w)
		warnings = append(warnings, w)

		var err error
		if lm, err = lm.SelectRows(shared); err != nil {
			return nil, err
		}
		if rm, err = rm.SelectRows(shared); err != nil {
			return nil, err
		}
	}

	// Step 3: Restrict left's metadata to the kept subjects, one row per
	// subject, in matrix row order. Annotation columns are only checked
	// here; slicing happens later via AnnotationTable.
	for _, c := range annotationColumns(left.IDColumn, annotations) {
		if !left.Metadata.HasColumn(c) {
			return nil, fmt.Errorf("annotation columns: %w", core.NewLookupError(core.ErrColumnNotFound, c))
		}
	}
	meta := subjectSlice(left, lm.RowKeys)

	return &Normalized{
		Left:     lm,
		Right:    rm,
		Meta:     meta,
		IDColumn: left.IDColumn,
		Warnings: warnings,
	}, nil
}

// AnnotationTable slices the metadata down to the identifier column plus
// the given annotation columns, reindexed to rowOrder. Requesting the
// identifier column again is harmless; duplicates are dropped.
func (n *Normalized) AnnotationTable(annotations []string, rowOrder []string) (fit.Metadata, error) {
	meta, err := n.Meta.SelectColumns(annotationColumns(n.IDColumn, annotations))
	if err != nil {
		return fit.Metadata{}, fmt.Errorf("annotation columns: %w", err)
	}
	return meta.Reindex(n.IDColumn, rowOrder), nil
}

// annotationColumns builds the deduplicated column list for the
// annotation table, identifier column first.
func annotationColumns(idColumn string, annotations []string) []string {
	cols := []string{idColumn}
	seen := map[string]bool{idColumn: true}
	for _, c := range annotations {
		if !seen[c] {
			seen[c] = true
			cols = append(cols, c)
		}
	}
	return cols
}

func subjectSlice(left *fit.Result, rowOrder []string) fit.Metadata {
	keep := make(map[string]bool, len(rowOrder))
	for _, id := range rowOrder {
		keep[id] = true
	}
	meta := left.Metadata.FilterSubjects(left.IDColumn, keep)
	meta = meta.Dedupe(left.IDColumn)
	return meta.Reindex(left.IDColumn, rowOrder)
}

func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// intersect returns the sorted intersection of two key slices
func intersect(a, b []string) []string {
	inA := make(map[string]bool, len(a))
	for _, k := range a {
		inA[k] = true
	}
	var out []string
	for _, k := range b {
		if inA[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
