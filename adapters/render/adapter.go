package render

import (
	"context"

	"polyheat/domain/category"
	"polyheat/domain/fit"
	"polyheat/domain/heat"
	"polyheat/ports"
)

// ============================================================================
// RENDERER ADAPTER
// ============================================================================
// Assembles the finished color grid and annotations into the call
// contract of the external heatmap primitive. The adapter always
// disables clustering on both axes - ordering has already been decided
// by the selector and encoder - and signals the polar layout hint unless
// the caller overrides it. Caller options pass through verbatim.

// Options are the caller-facing display knobs forwarded to the renderer
type Options struct {
	ShowRowLabels    bool
	ShowColumnLabels bool

	// Layout defaults to polar when empty
	Layout ports.LayoutMode

	// Passthrough is forwarded verbatim to the heatmap primitive
	Passthrough map[string]any
}

// BuildSpec assembles the heatmap call. annotation may be nil to signal
// "no row annotation" explicitly.
func BuildSpec(colors heat.Matrix, annotation *fit.Metadata, cats category.Table, opts Options) ports.HeatmapSpec {
	layout := opts.Layout
	if layout == "" {
		layout = ports.LayoutPolar
	}
	return ports.HeatmapSpec{
		Colors:                  colors,
		RowAnnotation:           annotation,
		Categories:              cats,
		ShowRowLabels:           opts.ShowRowLabels,
		ShowColumnLabels:        opts.ShowColumnLabels,
		DisableRowClustering:    true,
		DisableColumnClustering: true,
		Layout:                  layout,
		Options:                 opts.Passthrough,
	}
}

// Render builds the spec and hands it to the renderer
func Render(ctx context.Context, r ports.HeatmapRenderer, colors heat.Matrix, annotation *fit.Metadata, cats category.Table, opts Options) (ports.Graphic, error) {
	return r.Render(ctx, BuildSpec(colors, annotation, cats, opts))
}
