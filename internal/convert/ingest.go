// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/barbaragodoy/markdowngo/internal/diagnose"
	"github.com/barbaragodoy/markdowngo/internal/table"
	"github.com/barbaragodoy/markdowngo/internal/textenc"
	"github.com/barbaragodoy/markdowngo/pkg/types"
)

var (
	dataURIPrefix  = regexp.MustCompile(`^data:[^;]+;base64,`)
	base64Alphabet = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)
)

// Base64Converter decodes a pasted Base64 payload and renders it according
// to its declared source type.
type Base64Converter struct {
	stamp stamp
}

// Convert strips an optional data-URI prefix, validates and decodes the
// payload, and renders it: CSV sources become a table, everything else is
// inserted verbatim.
func (c *Base64Converter) Convert(payload string, source types.SourceType, emit Emit) types.ConversionResult {
	emit(types.SeverityInfo, fmt.Sprintf("Processing Base64 data as %s...", source))

	if strings.TrimSpace(payload) == "" {
		return fail(emit, diagnose.New(types.ErrorEmpty, "Please enter the Base64 data to convert."),
			"No Base64 data provided")
	}

	clean := strings.TrimSpace(dataURIPrefix.ReplaceAllString(strings.TrimSpace(payload), ""))
	if !base64Alphabet.MatchString(clean) {
		return fail(emit, diagnose.New(types.ErrorEncoding, diagnose.MsgInvalidBase64),
			"Invalid Base64 format detected")
	}

	raw, err := decodeBase64(clean)
	if err != nil {
		return fail(emit, diagnose.Wrap(types.ErrorEncoding, err, diagnose.MsgBase64Decode), "")
	}
	if len(raw) == 0 {
		return fail(emit, diagnose.New(types.ErrorEmpty, "The decoded data is empty."),
			"Decoded Base64 payload is empty")
	}

	var warnings []string
	decoded, _, err := textenc.Decode(raw)
	if err != nil {
		decoded = strings.ToValidUTF8(strings.ReplaceAll(string(raw), "\x00", ""), "")
		msg := "Decoded data contains binary content; non-text bytes were dropped"
		warnings = append(warnings, msg)
		emit(types.SeverityWarning, msg)
	}

	var b strings.Builder
	b.WriteString("# Converted Data\n\n")
	fmt.Fprintf(&b, "> Source: %s\n", source)
	b.WriteString(c.stamp.line() + "\n\n")
	b.WriteString("---\n\n")

	if source == types.SourceCSV {
		if lines := nonBlankLines(decoded); len(lines) > 0 {
			rows := make([][]string, len(lines))
			for i, line := range lines {
				rows[i] = splitComma(line)
			}
			b.WriteString(table.Render(rows[0], rows[1:]))
		}
	} else {
		b.WriteString(decoded)
	}

	emit(types.SeveritySuccess, "Base64 data converted successfully")
	return types.ConversionResult{
		Success:  true,
		Markdown: b.String(),
		Warnings: warnings,
	}
}

// decodeBase64 accepts payloads with or without trailing padding.
func decodeBase64(s string) ([]byte, error) {
	if len(s)%4 == 0 {
		return base64.StdEncoding.DecodeString(s)
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

// splitComma is a plain comma split with trimmed cells; quotes are not
// interpreted.
func splitComma(line string) []string {
	cells := strings.Split(line, ",")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

// RawTextConverter wraps pasted text in the document header without any
// decoding or restructuring.
type RawTextConverter struct {
	stamp stamp
}

// Convert passes text through line by line, trimming each line and keeping
// blank lines as paragraph breaks.
func (c *RawTextConverter) Convert(text string, emit Emit) types.ConversionResult {
	emit(types.SeverityInfo, "Processing raw text...")

	if strings.TrimSpace(text) == "" {
		return fail(emit, diagnose.New(types.ErrorEmpty, "Please enter some text to convert."),
			"No text provided")
	}

	var b strings.Builder
	b.WriteString("# Converted Text\n\n")
	b.WriteString(c.stamp.line() + "\n\n")
	b.WriteString("---\n\n")
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			b.WriteString(trimmed)
		}
		b.WriteString("\n")
	}

	emit(types.SeveritySuccess, "Text converted successfully")
	return types.ConversionResult{
		Success:  true,
		Markdown: b.String(),
	}
}
