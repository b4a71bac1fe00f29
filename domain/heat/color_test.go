package heat

import (
	"image/color"
	"math"
	"testing"
)

func TestRampEndpoints(t *testing.T) {
	if got := DefaultRamp.At(0); got != DefaultRamp[0] {
		t.Errorf("At(0) = %v, want first stop", got)
	}
	if got := DefaultRamp.At(1); got != DefaultRamp[len(DefaultRamp)-1] {
		t.Errorf("At(1) = %v, want last stop", got)
	}
	// Midpoint of a 5-stop ramp is the middle stop exactly
	if got := DefaultRamp.At(0.5); got != DefaultRamp[2] {
		t.Errorf("At(0.5) = %v, want middle stop", got)
	}
}

func TestRampClampsOutOfRange(t *testing.T) {
	if DefaultRamp.At(-0.5) != DefaultRamp.At(0) {
		t.Error("negative t should clamp to 0")
	}
	if DefaultRamp.At(1.7) != DefaultRamp.At(1) {
		t.Error("t > 1 should clamp to 1")
	}
	if DefaultRamp.At(math.NaN()) != DefaultRamp.At(0) {
		t.Error("NaN should clamp to 0")
	}
}

func TestRampInterpolatesLinearly(t *testing.T) {
	ramp := Ramp{
		{R: 0, G: 0, B: 0, A: 0xFF},
		{R: 200, G: 100, B: 50, A: 0xFF},
	}
	got := ramp.At(0.5)
	want := color.NRGBA{R: 100, G: 50, B: 25, A: 0xFF}
	if got != want {
		t.Errorf("At(0.5) = %v, want %v", got, want)
	}
}

func TestHSVRoundTrip(t *testing.T) {
	for _, c := range DefaultRamp {
		h, s, v := rgbToHSV(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
		r, g, b := hsvToRGB(h, s, v)
		back := color.NRGBA{R: round8(r), G: round8(g), B: round8(b), A: 0xFF}
		if back != c {
			t.Errorf("round trip %v -> h=%.1f s=%.2f v=%.2f -> %v", c, h, s, v, back)
		}
	}
}

func TestNRGBAAlpha(t *testing.T) {
	c := HSVA{H: 0, S: 1, V: 1, A: 0.5}
	got := c.NRGBA()
	if got.A != 128 {
		t.Errorf("alpha = %d, want 128", got.A)
	}
	if got.R != 255 || got.G != 0 || got.B != 0 {
		t.Errorf("pure red expected, got %v", got)
	}
}

func TestMatrixFilterDOF(t *testing.T) {
	m := Matrix{
		RowKeys: []string{"s1"},
		ColKeys: []string{"100", "110", "111"},
		Cells:   [][]HSVA{{{}, {}, {}}},
	}
	got, err := m.FilterDOF(2, 2)
	if err != nil {
		t.Fatalf("FilterDOF: %v", err)
	}
	if got.Cols() != 1 || got.ColKeys[0] != "110" {
		t.Errorf("cols = %v, want [110]", got.ColKeys)
	}

	// maxDOF <= 0 means unbounded
	got, err = m.FilterDOF(1, 0)
	if err != nil {
		t.Fatalf("FilterDOF: %v", err)
	}
	if got.Cols() != 3 {
		t.Errorf("unbounded kept %d cols, want 3", got.Cols())
	}
}
