package align

import (
	"polyheat/domain/category"
	"polyheat/domain/core"
	"polyheat/domain/fit"
)

// ============================================================================
// CATEGORY RECONCILER
// ============================================================================
// Builds the common column space: the union of both fits' non-null
// categories, zero-filled on whichever side lacks a category, ordered by
// canonical label. A column-sequence mismatch after reordering is an
// internal reconciliation bug and aborts the pipeline; it must never be
// recovered as if it were bad user input.

// Reconciled is the fully aligned working set of the pipeline.
type Reconciled struct {
	Left  fit.Matrix // aligned, common sorted columns
	Right fit.Matrix
	Diff  fit.Matrix // Left - Right

	// Categories is the reconciled union table, null row dropped,
	// rows in canonical label order matching the matrix columns.
	Categories category.Table
}

// Reconcile unions the category spaces of both fits over the normalized
// matrices and computes the difference matrix.
func Reconcile(n *Normalized, leftCats, rightCats category.Table) (*Reconciled, error) {
	// Step 1: Union the category tables on their binary vectors, drop
	// the null row, and re-derive canonical labels
	union, err := category.Union(leftCats, rightCats)
	if err != nil {
		return nil, err
	}
	union = union.Relabel().DropNull().SortByLabel()
	if union.Len() == 0 {
		return nil, core.ErrNoCategories
	}

	// Step 2: Zero-fill categories missing from either side
	lm, rm := n.Left, n.Right
	for _, label := range union.Labels {
		if lm.ColIndex(string(label)) < 0 {
			lm = lm.WithZeroColumn(string(label))
		}
		if rm.ColIndex(string(label)) < 0 {
			rm = rm.WithZeroColumn(string(label))
		}
	}

	// Step 3: Reorder both matrices onto the canonical column order
	order := make([]string, union.Len())
	for i, label := range union.Labels {
		order[i] = string(label)
	}
	if lm, err = lm.SelectColumns(order); err != nil {
		return nil, err
	}
	if rm, err = rm.SelectColumns(order); err != nil {
		return nil, err
	}

	// Step 4: Invariant - the two column sequences must now be identical
	// element-for-element. A mismatch is a reconciliation bug.
	for j := range lm.ColKeys {
		if lm.ColKeys[j] != rm.ColKeys[j] {
			return nil, core.NewMisalignmentError(j, lm.ColKeys[j], rm.ColKeys[j])
		}
	}

	diff, err := lm.Sub(rm)
	if err != nil {
		return nil, err
	}

	return &Reconciled{
		Left:       lm,
		Right:      rm,
		Diff:       diff,
		Categories: union,
	}, nil
}
