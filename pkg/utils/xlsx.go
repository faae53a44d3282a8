package utils

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteXLSX пишет одну таблицу: жирная строка заголовков и строки данных.
func WriteXLSX(w io.Writer, sheet string, headers []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("xlsx: nom de feuille: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("xlsx: en-têtes: %w", err)
	}

	if len(headers) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("xlsx: style: %w", err)
		}
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
			return fmt.Errorf("xlsx: style des en-têtes: %w", err)
		}
		lastCol, _ := excelize.ColumnNumberToName(len(headers))
		_ = f.SetColWidth(sheet, "A", lastCol, 22)
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("xlsx: ligne %d: %w", i+1, err)
		}
	}

	return f.Write(w)
}
