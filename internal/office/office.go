// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package office reads spreadsheet and word-processor containers into the
// shapes the converters consume: an ordered list of named cell grids, or a
// restricted HTML fragment plus extraction warnings.
package office

// Sheet is one worksheet of a workbook.
type Sheet struct {
	Name string
	Rows [][]string
}

// SpreadsheetReader returns the sheets of a workbook in workbook order.
type SpreadsheetReader interface {
	ReadSheets(data []byte) ([]Sheet, error)
}

// Extraction is the result of reading a word-processor document.
type Extraction struct {
	// HTML is a fragment using h1-h6, p, strong, em, a, ul, ol, li, br and
	// table markup.
	HTML string

	// Warnings lists elements that could not be represented.
	Warnings []string

	// Images counts embedded images, which are never converted.
	Images int
}

// WordExtractor converts word-processor bytes into an Extraction.
type WordExtractor interface {
	Extract(data []byte) (Extraction, error)
}

// trimTrailingEmpty drops trailing rows that have no non-empty cell.
func trimTrailingEmpty(rows [][]string) [][]string {
	for len(rows) > 0 && isBlankRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	return rows
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
