package excel

import (
	"bytes"
	"testing"

	"polyheat/domain/category"
	"polyheat/domain/fit"
)

func TestWorkbookSheetsAndCells(t *testing.T) {
	diff := fit.Matrix{
		RowKeys: []string{"A", "B"},
		ColKeys: []string{"10", "11"},
		Data:    [][]float64{{0.5, 0.1}, {0.3, 0.2}},
	}
	cats := category.Table{
		Markers: []string{"M1", "M2"},
		Labels:  []category.Label{"10", "11"},
		Bits:    [][]int{{1, 0}, {1, 1}},
	}

	e := &Exporter{}
	f, err := e.Workbook(diff, cats)
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("sheets = %v, want [Difference Categories]", sheets)
	}

	got, err := f.GetCellValue(sheetDifference, "B1")
	if err != nil || got != "10" {
		t.Errorf("B1 = %q (%v), want category header", got, err)
	}
	got, err = f.GetCellValue(sheetDifference, "B2")
	if err != nil || got != "0.5" {
		t.Errorf("B2 = %q (%v), want 0.5", got, err)
	}
	got, err = f.GetCellValue(sheetCategories, "A3")
	if err != nil || got != "11" {
		t.Errorf("Categories A3 = %q (%v), want 11", got, err)
	}
}

func TestWriteStreams(t *testing.T) {
	diff := fit.Matrix{
		RowKeys: []string{"A"},
		ColKeys: []string{"1"},
		Data:    [][]float64{{0.5}},
	}
	cats := category.Table{Markers: []string{"M1"}, Labels: []category.Label{"1"}, Bits: [][]int{{1}}}

	var buf bytes.Buffer
	if err := (&Exporter{}).Write(diff, cats, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("empty workbook output")
	}
}
