package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"polyheat/adapters/align"
	"polyheat/adapters/colorenc"
	"polyheat/adapters/filter"
	"polyheat/adapters/render"
	"polyheat/domain/category"
	"polyheat/domain/core"
	"polyheat/domain/fit"
	"polyheat/domain/heat"
	"polyheat/domain/predicate"
	"polyheat/ports"
)

// ComparisonService runs the differential comparison pipeline: align two
// fits, reconcile their category spaces, filter, encode colors, and hand
// the finished grid to the heatmap renderer. One blocking call per
// comparison; no state survives it.
type ComparisonService struct {
	renderer ports.HeatmapRenderer
	encoder  *colorenc.Encoder
}

// CompareRequest defines the inputs of one comparison
type CompareRequest struct {
	Left  *fit.Result
	Right *fit.Result

	// Annotations names metadata columns used for row annotation and
	// display ordering. Empty means no annotation.
	Annotations []string

	// Filtering knobs; zero values select the documented defaults.
	Threshold   float64
	MinDOF      int
	MaxDOF      int
	MustExpress []predicate.MarkerPredicate

	// RowFilter optionally restricts subjects via left's metadata.
	RowFilter predicate.RowPredicate

	// Display toggles and renderer passthrough.
	ShowRowLabels    bool
	ShowColumnLabels bool
	Layout           ports.LayoutMode
	Options          map[string]any
}

// Comparison is the complete output of one pipeline run
type Comparison struct {
	ID      core.RenderID
	Graphic ports.Graphic

	// Diff is the filtered, row-ordered difference matrix.
	Diff fit.Matrix
	// Left and Right are the aligned source matrices restricted the
	// same way as Diff.
	Left  fit.Matrix
	Right fit.Matrix

	// Colors is the final literal color grid, row-ordered.
	Colors heat.Matrix
	// Categories is the surviving category table in final column order.
	Categories category.Table
	// Annotation is the row annotation table, nil when none was requested.
	Annotation *fit.Metadata

	RowOrder  []string
	Warnings  []string
	CreatedAt core.Timestamp
	RuntimeMs int64
}

// NewComparisonService creates a comparison service on the given renderer
func NewComparisonService(renderer ports.HeatmapRenderer) *ComparisonService {
	return &ComparisonService{
		renderer: renderer,
		encoder:  colorenc.NewEncoder(),
	}
}

// WithRamp replaces the default color ramp
func (s *ComparisonService) WithRamp(ramp heat.Ramp) *ComparisonService {
	s.encoder = colorenc.NewEncoderWithRamp(ramp)
	return s
}

// Compare executes the full pipeline. It is pure over its inputs: the
// fits are never mutated and every intermediate table is discarded when
// the call returns.
func (s *ComparisonService) Compare(ctx context.Context, req CompareRequest) (*Comparison, error) {
	started := time.Now()

	// Stage 1: row alignment
	normalized, err := align.Normalize(req.Left, req.Right, req.Annotations)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	// Stage 2: category reconciliation and difference
	rec, err := align.Reconcile(normalized, req.Left.Categories, req.Right.Categories)
	if err != nil {
		if core.IsInternalError(err) {
			// Reconciliation bug, not user input - surface loudly.
			log.Printf("[compare] INTERNAL: %v", err)
		}
		return nil, fmt.Errorf("reconcile: %w", err)
	}

	// Stage 3: column filtering on the difference matrix
	kept, err := filter.Columns(rec, filter.Options{
		MustExpress: req.MustExpress,
		Threshold:   req.Threshold,
		MinDOF:      req.MinDOF,
		MaxDOF:      req.MaxDOF,
	})
	if err != nil {
		return nil, fmt.Errorf("filter columns: %w", err)
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("filter columns: %w", core.ErrNoCategories)
	}

	// Stage 4: row selection and display ordering
	subjects, err := filter.Rows(normalized.Meta, normalized.IDColumn, req.RowFilter)
	if err != nil {
		return nil, fmt.Errorf("filter rows: %w", err)
	}
	rowOrder := filter.Order(normalized.Meta, normalized.IDColumn, subjects, req.Annotations)

	// Stage 5: color encoding over the full aligned grid, then
	// restriction to the surviving columns and a second DOF pass run
	// directly against the color grid's own columns.
	colors, err := s.encoder.Encode(rec.Left, rec.Right)
	if err != nil {
		return nil, fmt.Errorf("encode colors: %w", err)
	}
	colors, err = colors.SelectColumns(labelsToKeys(kept))
	if err != nil {
		return nil, fmt.Errorf("encode colors: %w", err)
	}
	colors, err = colors.FilterDOF(effectiveMinDOF(req.MinDOF), req.MaxDOF)
	if err != nil {
		return nil, fmt.Errorf("encode colors: %w", err)
	}
	if colors.IsEmpty() {
		return nil, fmt.Errorf("encode colors: %w", core.ErrNoCategories)
	}
	colors, err = colors.SelectRows(rowOrder)
	if err != nil {
		return nil, fmt.Errorf("encode colors: %w", err)
	}

	// Stage 6: restrict the numeric matrices symmetrically
	finalCols := colors.ColKeys
	diff, err := subsetMatrix(rec.Diff, finalCols, rowOrder)
	if err != nil {
		return nil, err
	}
	left, err := subsetMatrix(rec.Left, finalCols, rowOrder)
	if err != nil {
		return nil, err
	}
	right, err := subsetMatrix(rec.Right, finalCols, rowOrder)
	if err != nil {
		return nil, err
	}

	cats, err := rec.Categories.Select(keysToLabels(finalCols))
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}

	// Stage 7: annotation table in final row order, nil when unused
	var annotation *fit.Metadata
	if len(req.Annotations) > 0 {
		md, err := normalized.AnnotationTable(req.Annotations, rowOrder)
		if err != nil {
			return nil, err
		}
		annotation = &md
	}

	// Stage 8: hand off to the renderer
	graphic, err := render.Render(ctx, s.renderer, colors, annotation, cats, render.Options{
		ShowRowLabels:    req.ShowRowLabels,
		ShowColumnLabels: req.ShowColumnLabels,
		Layout:           req.Layout,
		Passthrough:      req.Options,
	})
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	return &Comparison{
		ID:         core.NewRenderID(),
		Graphic:    graphic,
		Diff:       diff,
		Left:       left,
		Right:      right,
		Colors:     colors,
		Categories: cats,
		Annotation: annotation,
		RowOrder:   rowOrder,
		Warnings:   normalized.Warnings,
		CreatedAt:  core.Now(),
		RuntimeMs:  time.Since(started).Milliseconds(),
	}, nil
}

func subsetMatrix(m fit.Matrix, cols []string, rows []string) (fit.Matrix, error) {
	out, err := m.SelectColumns(cols)
	if err != nil {
		return fit.Matrix{}, fmt.Errorf("subset: %w", err)
	}
	out, err = out.SelectRows(rows)
	if err != nil {
		return fit.Matrix{}, fmt.Errorf("subset: %w", err)
	}
	return out, nil
}

func labelsToKeys(labels []category.Label) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = string(l)
	}
	return out
}

func keysToLabels(keys []string) []category.Label {
	out := make([]category.Label, len(keys))
	for i, k := range keys {
		out[i] = category.Label(k)
	}
	return out
}

func effectiveMinDOF(minDOF int) int {
	if minDOF == 0 {
		return filter.DefaultMinDOF
	}
	return minDOF
}
