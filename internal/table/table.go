// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package table renders tabular data as a Markdown pipe table.
package table

import (
	"strings"

	"github.com/barbaragodoy/markdowngo/pkg/types"
)

// Placeholder is rendered for empty or missing cells.
const Placeholder = "-"

// Cell trims v and substitutes Placeholder when nothing is left.
func Cell(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return Placeholder
	}
	return v
}

// Render returns a Markdown table with one line per header, separator, and
// data row. Each row is projected onto len(headers) columns: extra cells are
// dropped and missing cells render as Placeholder. No alignment markers are
// emitted. Render returns "" when headers is empty.
func Render(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	var b strings.Builder

	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = Cell(h)
	}
	writeRow(&b, cells)

	for i := range cells {
		cells[i] = "---"
	}
	writeRow(&b, cells)

	for _, row := range rows {
		for i := range cells {
			if i < len(row) {
				cells[i] = Cell(row[i])
			} else {
				cells[i] = Placeholder
			}
		}
		writeRow(&b, cells)
	}

	return b.String()
}

// RenderData renders td with Render.
func RenderData(td types.TabularData) string {
	return Render(td.Headers, td.Rows)
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("| ")
	b.WriteString(strings.Join(cells, " | "))
	b.WriteString(" |\n")
}
