// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"

	"github.com/barbaragodoy/markdowngo/internal/detect"
	"github.com/barbaragodoy/markdowngo/internal/diagnose"
	"github.com/barbaragodoy/markdowngo/internal/htmlmd"
	"github.com/barbaragodoy/markdowngo/internal/office"
	"github.com/barbaragodoy/markdowngo/pkg/types"
)

const msgWordUnreadable = "Could not read the Word document. Check that the file is a valid .docx and is not corrupted."

// WordConverter extracts a document as HTML and rewrites it to Markdown.
type WordConverter struct {
	extractor office.WordExtractor
	stamp     stamp
}

func (c *WordConverter) Name() string { return "word" }

func (c *WordConverter) Convert(src Source, emit Emit) types.ConversionResult {
	emit(types.SeverityInfo, "Reading Word document...")

	ext, err := c.extractor.Extract(src.Data)
	if err != nil {
		return fail(emit, diagnose.Wrap(types.ErrorMalformed, err, msgWordUnreadable),
			fmt.Sprintf("Failed to read Word document: %v", err))
	}

	if strings.TrimSpace(ext.HTML) == "" {
		msg := "The Word document is empty."
		if ext.Images > 0 {
			msg = "The Word document contains only unsupported elements (such as images)."
		}
		emit(types.SeverityWarning, "Word document is empty or contains only images")
		return failure(diagnose.New(types.ErrorEmpty, msg))
	}

	var b strings.Builder
	b.WriteString(c.stamp.header(detect.Stem(src.Name)))
	b.WriteString(htmlmd.Transform(ext.HTML))

	var warnings []string
	for _, w := range ext.Warnings {
		warnings = append(warnings, translateWarning(w))
	}
	if len(warnings) > 0 {
		emit(types.SeverityWarning, fmt.Sprintf("%d warning(s) during conversion", len(warnings)))
	}

	emit(types.SeveritySuccess, "Word document converted successfully")
	return types.ConversionResult{
		Success:  true,
		Markdown: b.String(),
		Warnings: warnings,
	}
}

// translateWarning maps extraction messages onto short user-facing notes.
func translateWarning(msg string) string {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "unrecognised element"):
		return "An unrecognised element was ignored"
	case strings.Contains(lower, "image"):
		return "Images were ignored in the conversion"
	case strings.Contains(lower, "style"):
		return "Some styles were not preserved"
	}
	return msg
}
