package filter

import (
	"polyheat/adapters/align"
	"polyheat/domain/category"
	"polyheat/domain/core"
	"polyheat/domain/predicate"

	"gonum.org/v1/gonum/stat"
)

// ============================================================================
// DIFFERENTIAL FILTER
// ============================================================================
// Narrows the reconciled category set through three independent criteria
// applied in sequence: must-express predicates, mean difference
// magnitude, and degree of functionality. Each step sees only the
// columns that survived the previous one; the net effect equals the
// intersection of the three "kept" sets.

// DefaultThreshold is the default mean-difference magnitude cutoff
const DefaultThreshold = 0.01

// DefaultMinDOF is the default lower degree-of-functionality bound
const DefaultMinDOF = 1

// Options controls the three column filters. Zero values select the
// defaults: threshold 0.01, DOF bounds [1, unbounded], no must-express
// restriction.
type Options struct {
	// MustExpress is a list of marker-expression predicates; a category
	// is kept if it matches at least one of them. Empty keeps everything.
	MustExpress []predicate.MarkerPredicate

	// Threshold keeps a category only if the mean of its difference
	// column is strictly above +Threshold or strictly below -Threshold.
	Threshold float64

	// MinDOF and MaxDOF bound the degree of functionality; MaxDOF <= 0
	// means unbounded.
	MinDOF int
	MaxDOF int
}

func (o Options) withDefaults() Options {
	if o.Threshold == 0 {
		o.Threshold = DefaultThreshold
	}
	if o.MinDOF == 0 {
		o.MinDOF = DefaultMinDOF
	}
	return o
}

// Columns returns the surviving category labels, in reconciled order.
func Columns(rec *align.Reconciled, opts Options) ([]category.Label, error) {
	opts = opts.withDefaults()

	kept := append([]category.Label(nil), rec.Categories.Labels...)

	// Filter 1: must-express (union of matches across all predicates)
	if len(opts.MustExpress) > 0 {
		matched, err := mustExpress(rec.Categories, opts.MustExpress)
		if err != nil {
			return nil, err
		}
		kept = retain(kept, matched)
	}

	// Filter 2: mean difference magnitude, computed per surviving column
	strong := make(map[category.Label]bool, len(kept))
	for _, label := range kept {
		j := rec.Diff.ColIndex(string(label))
		if j < 0 {
			return nil, core.NewLookupError(core.ErrCategoryNotFound, string(label))
		}
		m := stat.Mean(rec.Diff.Column(j), nil)
		if m > opts.Threshold || m < -opts.Threshold {
			strong[label] = true
		}
	}
	kept = retain(kept, strong)

	// Filter 3: degree of functionality, recomputed from the label
	within := make(map[category.Label]bool, len(kept))
	for _, label := range kept {
		dof := label.DOF()
		if dof < opts.MinDOF {
			continue
		}
		if opts.MaxDOF > 0 && dof > opts.MaxDOF {
			continue
		}
		within[label] = true
	}
	kept = retain(kept, within)

	return kept, nil
}

// mustExpress evaluates every predicate against every category and
// returns the union of matching labels.
func mustExpress(cats category.Table, preds []predicate.MarkerPredicate) (map[category.Label]bool, error) {
	matched := make(map[category.Label]bool)
	for i, label := range cats.Labels {
		set := cats.MarkerSet(i)
		for _, p := range preds {
			ok, err := p.Matches(set)
			if err != nil {
				return nil, err
			}
			if ok {
				matched[label] = true
				break
			}
		}
	}
	return matched, nil
}

func retain(labels []category.Label, keep map[category.Label]bool) []category.Label {
	out := labels[:0:0]
	for _, l := range labels {
		if keep[l] {
			out = append(out, l)
		}
	}
	return out
}
