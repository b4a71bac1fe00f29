package heatmap

import (
	"bytes"
	"testing"

	"polyheat/domain/fit"
)

func TestWriteSummaryPNG(t *testing.T) {
	diff := fit.Matrix{
		RowKeys: []string{"A", "B"},
		ColKeys: []string{"10", "11"},
		Data:    [][]float64{{0.5, 0.1}, {0.3, 0.2}},
	}
	var buf bytes.Buffer
	if err := WriteSummaryPNG(diff, true, &buf); err != nil {
		t.Fatalf("WriteSummaryPNG: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("empty summary plot output")
	}
}

func TestSummaryPlotEmptyFails(t *testing.T) {
	if _, err := SummaryPlot(fit.Matrix{}, false); err == nil {
		t.Fatal("expected error for empty matrix")
	}
}
