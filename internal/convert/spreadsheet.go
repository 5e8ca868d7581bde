// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"

	"github.com/barbaragodoy/markdowngo/internal/detect"
	"github.com/barbaragodoy/markdowngo/internal/diagnose"
	"github.com/barbaragodoy/markdowngo/internal/office"
	"github.com/barbaragodoy/markdowngo/internal/table"
	"github.com/barbaragodoy/markdowngo/pkg/types"
)

const msgSpreadsheetUnreadable = "Could not read the Excel file. Check that the file is not corrupted or password protected."

// SpreadsheetConverter renders every sheet of a workbook as a section with a
// Markdown table.
type SpreadsheetConverter struct {
	reader office.SpreadsheetReader
	stamp  stamp
}

func (c *SpreadsheetConverter) Name() string { return "spreadsheet" }

// Convert renders one "## <sheet>" section per sheet, separated by
// horizontal rules. Empty sheets keep their heading, add a warning, and get
// no table; the conversion fails only when no sheet has content.
func (c *SpreadsheetConverter) Convert(src Source, emit Emit) types.ConversionResult {
	emit(types.SeverityInfo, "Reading Excel file...")

	sheets, err := c.reader.ReadSheets(src.Data)
	if err != nil {
		return fail(emit, diagnose.Wrap(types.ErrorMalformed, err, msgSpreadsheetUnreadable),
			fmt.Sprintf("Failed to read Excel file: %v", err))
	}
	if len(sheets) == 0 {
		return fail(emit, diagnose.New(types.ErrorEmpty, "The Excel file does not contain any valid sheet."),
			"Excel file contains no sheets")
	}

	var b strings.Builder
	b.WriteString(c.stamp.header(detect.Stem(src.Name)))

	var warnings []string
	rendered := 0
	for i, sh := range sheets {
		emit(types.SeverityInfo, fmt.Sprintf("Processing sheet: %s", sh.Name))
		fmt.Fprintf(&b, "## %s\n\n", sh.Name)

		rows := contentRows(sh.Rows)
		if len(rows) == 0 {
			warnings = append(warnings, fmt.Sprintf("Sheet %q is empty", sh.Name))
			emit(types.SeverityWarning, fmt.Sprintf("Sheet %q is empty and was skipped", sh.Name))
		} else {
			b.WriteString(table.Render(rows[0], rows[1:]))
			b.WriteString("\n")
			rendered++
		}

		if i < len(sheets)-1 {
			b.WriteString("---\n\n")
		}
	}

	if rendered == 0 {
		return fail(emit, diagnose.New(types.ErrorEmpty, "Every sheet in the Excel file is empty."),
			"All sheets are empty")
	}

	emit(types.SeveritySuccess, fmt.Sprintf("Converted %d sheet(s) successfully", rendered))
	return types.ConversionResult{
		Success:  true,
		Markdown: b.String(),
		Warnings: warnings,
	}
}

// contentRows drops rows without any non-blank cell.
func contentRows(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				out = append(out, row)
				break
			}
		}
	}
	return out
}
