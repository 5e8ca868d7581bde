// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package detect classifies inputs by filename extension.
package detect

import (
	"strings"

	"github.com/barbaragodoy/markdowngo/pkg/types"
)

// formats maps a lower-case extension (without the dot) to its Format.
var formats = map[string]types.Format{
	"xlsx": types.FormatSpreadsheetModern,
	"xls":  types.FormatSpreadsheetLegacy,
	"docx": types.FormatWordProcessor,
	"csv":  types.FormatDelimitedText,
	"txt":  types.FormatPlainText,
	"pdf":  types.FormatBinary,
}

// Extension returns the text after the last "." in filename, or "" when the
// name has no dot.
func Extension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return ""
	}
	return filename[i+1:]
}

// Detect returns the Format for filename. It never inspects content; any
// unmapped or absent extension yields FormatUnknown.
func Detect(filename string) types.Format {
	if f, ok := formats[strings.ToLower(Extension(filename))]; ok {
		return f
	}
	return types.FormatUnknown
}

// Stem returns filename with its extension removed.
func Stem(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i <= 0 {
		return filename
	}
	return filename[:i]
}
