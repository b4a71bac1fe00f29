// Package excel exports comparison tables as an xlsx workbook for
// downstream inspection outside the rendered graphic.
package excel

import (
	"fmt"
	"io"

	"polyheat/domain/category"
	"polyheat/domain/fit"

	"github.com/xuri/excelize/v2"
)

const (
	sheetDifference = "Difference"
	sheetCategories = "Categories"
)

// Exporter writes comparison matrices into xlsx workbooks
type Exporter struct{}

// Workbook builds a workbook with the difference matrix and the
// surviving category table.
func (e *Exporter) Workbook(diff fit.Matrix, cats category.Table) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeMatrix(f, sheetDifference, diff); err != nil {
		return nil, err
	}
	if err := writeCategories(f, cats); err != nil {
		return nil, err
	}

	// Replace the default sheet with the difference sheet
	idx, err := f.GetSheetIndex(sheetDifference)
	if err != nil {
		return nil, fmt.Errorf("excel export: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("excel export: %w", err)
	}
	return f, nil
}

// Write builds the workbook and streams it to w
func (e *Exporter) Write(diff fit.Matrix, cats category.Table, w io.Writer) error {
	f, err := e.Workbook(diff, cats)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("excel export: %w", err)
	}
	return nil
}

func writeMatrix(f *excelize.File, sheet string, m fit.Matrix) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("excel export: %w", err)
	}
	if err := setCell(f, sheet, 1, 1, "subject"); err != nil {
		return err
	}
	for j, key := range m.ColKeys {
		if err := setCell(f, sheet, j+2, 1, key); err != nil {
			return err
		}
	}
	for i, key := range m.RowKeys {
		if err := setCell(f, sheet, 1, i+2, key); err != nil {
			return err
		}
		for j, v := range m.Data[i] {
			if err := setCell(f, sheet, j+2, i+2, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeCategories(f *excelize.File, cats category.Table) error {
	if _, err := f.NewSheet(sheetCategories); err != nil {
		return fmt.Errorf("excel export: %w", err)
	}
	if err := setCell(f, sheetCategories, 1, 1, "category"); err != nil {
		return err
	}
	for j, marker := range cats.Markers {
		if err := setCell(f, sheetCategories, j+2, 1, marker); err != nil {
			return err
		}
	}
	for i, label := range cats.Labels {
		if err := setCell(f, sheetCategories, 1, i+2, string(label)); err != nil {
			return err
		}
		for j, bit := range cats.Bits[i] {
			if err := setCell(f, sheetCategories, j+2, i+2, bit); err != nil {
				return err
			}
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("excel export: %w", err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("excel export: %w", err)
	}
	return nil
}
