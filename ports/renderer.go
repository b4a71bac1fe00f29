package ports

import (
	"context"
	"io"

	"polyheat/domain/category"
	"polyheat/domain/fit"
	"polyheat/domain/heat"
)

// LayoutMode is the layout hint passed through to the heatmap primitive.
// It is opaque to the pipeline.
type LayoutMode string

const (
	// LayoutPolar renders subjects as concentric rings and categories as
	// angular sectors. This is the default layout of the comparison view.
	LayoutPolar LayoutMode = "polar"
	// LayoutGrid renders a conventional rectangular heatmap.
	LayoutGrid LayoutMode = "grid"
)

// HeatmapSpec is the call contract of the external heatmap primitive:
// a literal per-cell color grid plus annotations and display toggles.
// Clustering is always disabled - row and column order is final by the
// time the spec is assembled, and the renderer must not reorder.
type HeatmapSpec struct {
	Colors heat.Matrix

	// RowAnnotation is the per-subject annotation table, reindexed to
	// match Colors row order exactly. Nil means "no annotation".
	RowAnnotation *fit.Metadata

	// Categories is the surviving category table, attached as the
	// column-level annotation.
	Categories category.Table

	ShowRowLabels    bool
	ShowColumnLabels bool

	DisableRowClustering    bool
	DisableColumnClustering bool

	Layout LayoutMode

	// Options is the caller-supplied passthrough bag, forwarded verbatim.
	Options map[string]any
}

// Graphic is a renderable handle returned by the heatmap primitive
type Graphic interface {
	WritePNG(w io.Writer) error
}

// HeatmapRenderer renders an assembled heatmap spec into a graphic
type HeatmapRenderer interface {
	Render(ctx context.Context, spec HeatmapSpec) (Graphic, error)
}
