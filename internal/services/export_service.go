package services

import (
	"io"

	"maintenance-portal/pkg/listview"
	"maintenance-portal/pkg/utils"
)

// ExportXLSX выгружает отфильтрованный (не постраничный) список
// с теми же колонками, что и таблица на странице.
func ExportXLSX[T any](w io.Writer, sheet string, table listview.Table[T], items []T) error {
	rows := table.Rows(items)
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = r.Cells
	}
	return utils.WriteXLSX(w, sheet, table.Headers(), cells)
}
