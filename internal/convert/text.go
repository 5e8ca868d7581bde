// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/barbaragodoy/markdowngo/internal/detect"
	"github.com/barbaragodoy/markdowngo/internal/diagnose"
	"github.com/barbaragodoy/markdowngo/pkg/types"
)

const maxHeadingLen = 100

var numberedItem = regexp.MustCompile(`^\d+\.\s`)

// TextConverter restructures plain text line by line: short all-caps lines
// become headings, bullets are normalised, and other lines become
// paragraphs.
type TextConverter struct {
	stamp stamp
}

func (c *TextConverter) Name() string { return "text" }

func (c *TextConverter) Convert(src Source, emit Emit) types.ConversionResult {
	emit(types.SeverityInfo, "Reading text file...")

	text, warnings, res, ok := decodeText(src.Data, emit, "Failed to read text file")
	if !ok {
		return res
	}

	if strings.TrimSpace(text) == "" {
		return fail(emit, diagnose.New(types.ErrorEmpty, "The text file is empty."),
			"Text file is empty")
	}

	var b strings.Builder
	b.WriteString(c.stamp.header(detect.Stem(src.Name)))
	b.WriteString(restructure(text))

	emit(types.SeveritySuccess, "Text file converted successfully")
	return types.ConversionResult{
		Success:  true,
		Markdown: b.String(),
		Warnings: warnings,
	}
}

func restructure(text string) string {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
		case isHeading(trimmed):
			b.WriteString("\n## " + trimmed + "\n\n")
		case numberedItem.MatchString(trimmed):
			b.WriteString(trimmed + "\n")
		case isBullet(trimmed):
			_, size := utf8.DecodeRuneInString(trimmed)
			b.WriteString("- " + strings.TrimSpace(trimmed[size:]) + "\n")
		default:
			b.WriteString(trimmed + "\n\n")
		}
	}
	return b.String()
}

// isHeading reports whether a trimmed, non-empty line is upper-case, short,
// and not a numbered item.
func isHeading(trimmed string) bool {
	return trimmed == strings.ToUpper(trimmed) &&
		utf8.RuneCountInString(trimmed) < maxHeadingLen &&
		!numberedItem.MatchString(trimmed)
}

func isBullet(trimmed string) bool {
	return strings.HasPrefix(trimmed, "-") ||
		strings.HasPrefix(trimmed, "•") ||
		strings.HasPrefix(trimmed, "*")
}
