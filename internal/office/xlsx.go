// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package office

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXReader reads Office Open XML workbooks.
type XLSXReader struct{}

// ReadSheets returns every sheet with its formatted cell values.
func (XLSXReader) ReadSheets(data []byte) ([]Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	names := f.GetSheetList()
	sheets := make([]Sheet, 0, len(names))
	for _, name := range names {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", name, err)
		}
		sheets = append(sheets, Sheet{Name: name, Rows: trimTrailingEmpty(rows)})
	}
	return sheets, nil
}
