// Package heatmap is the concrete heatmap primitive behind
// ports.HeatmapRenderer. It paints the literal color grid into an
// image.RGBA, either as a rectangular grid or as the polar layout
// (subjects as concentric rings, categories as angular sectors).
package heatmap

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"polyheat/domain/core"
	"polyheat/domain/heat"
	"polyheat/ports"
)

// Renderer paints heatmap specs. The zero value uses sensible sizes.
type Renderer struct {
	// CellSize is the pixel size of one grid cell (default 16)
	CellSize int
	// PolarSize is the pixel width/height of the polar image (default 640)
	PolarSize int
	// InnerRadiusFrac is the hole radius as a fraction of the full
	// radius in polar mode (default 0.15)
	InnerRadiusFrac float64
}

// Graphic is the rendered handle: the image plus its identity.
type Graphic struct {
	ID  core.RenderID
	img *image.RGBA
}

// Image returns the rendered pixels
func (g *Graphic) Image() *image.RGBA { return g.img }

// WritePNG encodes the graphic as PNG
func (g *Graphic) WritePNG(w io.Writer) error { return png.Encode(w, g.img) }

// Render paints the spec. The renderer never reorders rows or columns;
// specs arriving with clustering enabled are rejected because this
// primitive has no clustering at all.
func (r *Renderer) Render(ctx context.Context, spec ports.HeatmapSpec) (ports.Graphic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if spec.Colors.IsEmpty() {
		return nil, core.ErrEmptyMatrix
	}

	var img *image.RGBA
	if spec.Layout == ports.LayoutPolar {
		img = r.paintPolar(spec.Colors)
	} else {
		img = r.paintGrid(spec.Colors)
	}
	return &Graphic{ID: core.NewRenderID(), img: img}, nil
}

func (r *Renderer) cellSize() int {
	if r.CellSize > 0 {
		return r.CellSize
	}
	return 16
}

func (r *Renderer) polarSize() int {
	if r.PolarSize > 0 {
		return r.PolarSize
	}
	return 640
}

func (r *Renderer) innerFrac() float64 {
	if r.InnerRadiusFrac > 0 {
		return r.InnerRadiusFrac
	}
	return 0.15
}

func (r *Renderer) paintGrid(m heat.Matrix) *image.RGBA {
	cs := r.cellSize()
	img := image.NewRGBA(image.Rect(0, 0, m.Cols()*cs, m.Rows()*cs))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	for i := range m.Cells {
		for j, cell := range m.Cells[i] {
			rect := image.Rect(j*cs, i*cs, (j+1)*cs, (i+1)*cs)
			fill(img, rect, cell.NRGBA())
		}
	}
	return img
}

// paintPolar draws each subject as one ring, innermost first, and each
// category as one angular sector starting at 12 o'clock, clockwise.
func (r *Renderer) paintPolar(m heat.Matrix) *image.RGBA {
	size := r.polarSize()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	center := float64(size) / 2
	outer := center - 2
	inner := outer * r.innerFrac()
	thickness := (outer - inner) / float64(m.Rows())
	sector := 2 * math.Pi / float64(m.Cols())

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) - center
			dy := float64(y) - center
			rad := math.Hypot(dx, dy)
			if rad < inner || rad >= outer {
				continue
			}
			row := int((rad - inner) / thickness)
			if row >= m.Rows() {
				continue
			}
			// Angle measured clockwise from 12 o'clock
			ang := math.Atan2(dx, -dy)
			if ang < 0 {
				ang += 2 * math.Pi
			}
			col := int(ang / sector)
			if col >= m.Cols() {
				col = m.Cols() - 1
			}
			img.Set(x, y, blendOnWhite(m.Cells[row][col].NRGBA()))
		}
	}
	return img
}

func fill(img *image.RGBA, rect image.Rectangle, c color.NRGBA) {
	blended := blendOnWhite(c)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, y, blended)
		}
	}
}

// blendOnWhite composites a translucent cell color over the white
// background so that opacity reads as lightness in the flat PNG.
func blendOnWhite(c color.NRGBA) color.NRGBA {
	a := float64(c.A) / 255
	mix := func(v uint8) uint8 {
		return uint8(math.Round(float64(v)*a + 255*(1-a)))
	}
	return color.NRGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: 0xFF}
}
