// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package office

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"
)

const xlsCharset = "utf-8"

// XLSReader reads legacy BIFF (.xls) workbooks.
type XLSReader struct{}

// ReadSheets returns every sheet with its cell values as strings.
func (XLSReader) ReadSheets(data []byte) ([]Sheet, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), xlsCharset)
	if err != nil {
		return nil, fmt.Errorf("opening legacy workbook: %w", err)
	}

	sheets := make([]Sheet, 0, wb.NumSheets())
	for i := 0; i < wb.NumSheets(); i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}

		var rows [][]string
		for r := 0; r <= int(ws.MaxRow); r++ {
			row := ws.Row(r)
			if row == nil {
				rows = append(rows, []string{})
				continue
			}
			cells := make([]string, 0, row.LastCol())
			for c := 0; c < row.LastCol(); c++ {
				cells = append(cells, row.Col(c))
			}
			rows = append(rows, cells)
		}
		sheets = append(sheets, Sheet{Name: ws.Name, Rows: trimTrailingEmpty(rows)})
	}
	return sheets, nil
}
