package colorenc

import (
	"math"

	"polyheat/domain/core"
	"polyheat/domain/fit"
	"polyheat/domain/heat"

	"gonum.org/v1/gonum/floats"
)

// ============================================================================
// COLOR ENCODER
// ============================================================================
// Maps each cell's pair of source values to one HSVA color encoding
// three things at once: divergence direction, divergence magnitude, and
// the joint magnitude of the two sides (as opacity). The encoder runs
// over the full row/column-aligned grid BEFORE any column filtering so
// that the color scale is global and stable; the caller restricts the
// resulting grid to the surviving columns afterwards.

// Encoder turns a pair of aligned matrices into a literal color grid.
// The zero value is not usable; construct with NewEncoder.
type Encoder struct {
	ramp heat.Ramp
}

// NewEncoder creates an encoder on the default diverging ramp
func NewEncoder() *Encoder {
	return &Encoder{ramp: heat.DefaultRamp}
}

// NewEncoderWithRamp creates an encoder on a caller-supplied ramp
func NewEncoderWithRamp(ramp heat.Ramp) *Encoder {
	return &Encoder{ramp: ramp}
}

// Encode produces one color per cell of the aligned grid. Both inputs
// must carry identical row and column key sequences. Encode is a pure
// function: identical inputs always yield identical colors.
func (e *Encoder) Encode(left, right fit.Matrix) (heat.Matrix, error) {
	if left.Rows() != right.Rows() || left.Cols() != right.Cols() {
		return heat.Matrix{}, core.NewShapeError(left.Rows(), left.Cols(), right.Rows(), right.Cols())
	}
	if left.IsEmpty() {
		return heat.Matrix{}, core.ErrEmptyMatrix
	}
	for j := range left.ColKeys {
		if left.ColKeys[j] != right.ColKeys[j] {
			return heat.Matrix{}, core.NewMisalignmentError(j, left.ColKeys[j], right.ColKeys[j])
		}
	}

	// Step 1: divergence signal per cell, log1p-compressed
	signal := make([][]float64, left.Rows())
	flat := make([]float64, 0, left.Rows()*left.Cols())
	for i := range left.Data {
		signal[i] = make([]float64, left.Cols())
		for j := range left.Data[i] {
			s := math.Log1p(left.Data[i][j]) - math.Log1p(right.Data[i][j])
			signal[i][j] = s
			flat = append(flat, s)
		}
	}

	// Step 2: rescale by (v + max) / range, clamping negatives to zero.
	// The shift-by-max is intentionally asymmetric; it is part of the
	// encoding's semantics, not a bug.
	mx := floats.Max(flat)
	mn := floats.Min(flat)
	rng := mx - mn

	out := heat.Matrix{
		RowKeys: append([]string(nil), left.RowKeys...),
		ColKeys: append([]string(nil), left.ColKeys...),
		Cells:   make([][]heat.HSVA, left.Rows()),
	}
	for i := range signal {
		out.Cells[i] = make([]heat.HSVA, left.Cols())
		for j, s := range signal[i] {
			t := 0.5 // uniform signal has no direction; sit at the ramp midpoint
			if rng > 0 {
				t = (s + mx) / rng
				if t < 0 {
					t = 0
				}
			}

			// Step 3: opacity from the joint magnitude of both sides
			alpha := math.Hypot(left.Data[i][j], right.Data[i][j]) / math.Sqrt2
			if alpha > 1 {
				alpha = 1
			}

			out.Cells[i][j] = e.ramp.HSVAAt(t, alpha)
		}
	}
	return out, nil
}
