// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"

	"github.com/barbaragodoy/markdowngo/internal/detect"
	"github.com/barbaragodoy/markdowngo/internal/diagnose"
	"github.com/barbaragodoy/markdowngo/internal/table"
	"github.com/barbaragodoy/markdowngo/internal/textenc"
	"github.com/barbaragodoy/markdowngo/pkg/types"
)

// CSVConverter renders comma-separated text as a Markdown table whose
// header is the first non-blank line.
type CSVConverter struct {
	stamp stamp
}

func (c *CSVConverter) Name() string { return "csv" }

func (c *CSVConverter) Convert(src Source, emit Emit) types.ConversionResult {
	emit(types.SeverityInfo, "Reading CSV file...")

	text, warnings, res, ok := decodeText(src.Data, emit, "Failed to process CSV")
	if !ok {
		return res
	}

	lines := nonBlankLines(text)
	if len(lines) == 0 {
		return fail(emit, diagnose.New(types.ErrorEmpty, "The CSV file is empty or contains no valid data."),
			"CSV file is empty")
	}
	if len(lines) == 1 {
		warnings = append(warnings, "CSV contains only a header row, no data")
		emit(types.SeverityWarning, "CSV contains only a header row, no data")
	}

	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = parseCSVLine(line)
	}

	var b strings.Builder
	b.WriteString(c.stamp.header(detect.Stem(src.Name)))
	b.WriteString(table.Render(rows[0], rows[1:]))

	emit(types.SeveritySuccess, fmt.Sprintf("Converted %d row(s) successfully", len(rows)-1))
	return types.ConversionResult{
		Success:  true,
		Markdown: b.String(),
		Warnings: warnings,
	}
}

// parseCSVLine splits one line into trimmed fields. A double quote toggles
// the quoted state and is dropped; a comma outside quotes ends a field.
func parseCSVLine(line string) []string {
	var (
		cells    []string
		current  strings.Builder
		inQuotes bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			cells = append(cells, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	return append(cells, strings.TrimSpace(current.String()))
}

// nonBlankLines splits text on newlines and drops lines that are blank
// after trimming.
func nonBlankLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// decodeText decodes file bytes to UTF-8. When the bytes had to be read as
// Windows-1252 a warning is emitted and returned. ok is false when decoding
// failed, in which case res is the failed result.
func decodeText(data []byte, emit Emit, logPrefix string) (text string, warnings []string, res types.ConversionResult, ok bool) {
	text, enc, err := textenc.Decode(data)
	if err != nil {
		d := diagnose.Classify(err)
		return "", nil, fail(emit, d, fmt.Sprintf("%s: %v", logPrefix, err)), false
	}
	if enc == textenc.Windows1252 {
		msg := "File is not valid UTF-8; it was read as Windows-1252"
		emit(types.SeverityWarning, msg)
		warnings = append(warnings, msg)
	}
	return text, warnings, types.ConversionResult{}, true
}
