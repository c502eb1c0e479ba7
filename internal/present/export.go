package present

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/reedmaris/bls-data-service/internal/domain"
	"github.com/xuri/excelize/v2"
)

// WriteCSV writes a view as CSV with the date key in the first column.
// Missing cells render as empty fields.
func WriteCSV(w io.Writer, view domain.Table, indexLabel string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(append([]string{indexLabel}, view.Columns...)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, date := range view.Index {
		record := make([]string, 0, len(view.Columns)+1)
		record = append(record, date)
		for _, cell := range view.Rows[i] {
			if cell == nil {
				record = append(record, "")
				continue
			}
			record = append(record, strconv.FormatFloat(*cell, 'f', -1, 64))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %s: %w", date, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a view as a single-sheet xlsx workbook, date keys in
// column A. Missing cells are left blank.
func WriteXLSX(w io.Writer, view domain.Table, indexLabel string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	if err := setCell(f, sheet, 1, 1, indexLabel); err != nil {
		return err
	}
	for j, name := range view.Columns {
		if err := setCell(f, sheet, j+2, 1, name); err != nil {
			return err
		}
	}
	for i, date := range view.Index {
		if err := setCell(f, sheet, 1, i+2, date); err != nil {
			return err
		}
		for j, cell := range view.Rows[i] {
			if cell == nil {
				continue
			}
			if err := setCell(f, sheet, j+2, i+2, *cell); err != nil {
				return err
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}
