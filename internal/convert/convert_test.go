// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/barbaragodoy/markdowngo/internal/office"
	"github.com/barbaragodoy/markdowngo/pkg/types"
)

var fixedTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

const stampLine = "> Converted at 2026-03-14 09:26:53"

// entry is an emitted log message.
type entry struct {
	severity types.Severity
	message  string
}

// recorder collects emitted messages in order.
type recorder struct {
	entries []entry
}

func (r *recorder) emit(s types.Severity, m string) {
	r.entries = append(r.entries, entry{s, m})
}

func (r *recorder) has(s types.Severity) bool {
	for _, e := range r.entries {
		if e.severity == s {
			return true
		}
	}
	return false
}

func testRegistry(opts ...Option) *Registry {
	return NewRegistry(append([]Option{WithClock(func() time.Time { return fixedTime })}, opts...)...)
}

func lookup(t *testing.T, r *Registry, f types.Format) Converter {
	t.Helper()
	c, ok := r.Lookup(f)
	require.True(t, ok, "no converter for %s", f)
	return c
}

// fakeSheets is a SpreadsheetReader returning canned sheets or an error.
type fakeSheets struct {
	sheets []office.Sheet
	err    error
}

func (f fakeSheets) ReadSheets([]byte) ([]office.Sheet, error) { return f.sheets, f.err }

// panicExtractor simulates a crashing third-party parser.
type panicExtractor struct{}

func (panicExtractor) Extract([]byte) (office.Extraction, error) { panic("index out of range") }

// fakeExtractor returns a canned extraction.
type fakeExtractor struct {
	ext office.Extraction
	err error
}

func (f fakeExtractor) Extract([]byte) (office.Extraction, error) { return f.ext, f.err }

func TestRegistry_Lookup(t *testing.T) {
	r := testRegistry()
	for _, f := range []types.Format{
		types.FormatSpreadsheetModern, types.FormatSpreadsheetLegacy,
		types.FormatWordProcessor, types.FormatDelimitedText, types.FormatPlainText,
	} {
		_, ok := r.Lookup(f)
		assert.True(t, ok, f)
	}
	for _, f := range []types.Format{types.FormatBinary, types.FormatUnknown} {
		_, ok := r.Lookup(f)
		assert.False(t, ok, f)
	}
	assert.NotNil(t, r.Base64())
	assert.NotNil(t, r.Text())
}

func TestSpreadsheet_EmptySheetKeepsHeadingWithoutTable(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "A"))
	_, err := f.NewSheet("B")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("A", "A1", &[]any{"x", "y"}))
	require.NoError(t, f.SetSheetRow("A", "A2", &[]any{"1", "2"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	var rec recorder
	res := Run(lookup(t, testRegistry(), types.FormatSpreadsheetModern),
		Source{Name: "book.xlsx", Data: buf.Bytes()}, rec.emit)

	require.True(t, res.Success, res.Error)
	want := "# book\n\n" + stampLine + "\n\n" +
		"## A\n\n| x | y |\n| --- | --- |\n| 1 | 2 |\n\n" +
		"---\n\n" +
		"## B\n\n"
	assert.Equal(t, want, res.Markdown)
	assert.Equal(t, []string{`Sheet "B" is empty`}, res.Warnings)
	assert.Contains(t, rec.entries, entry{types.SeverityWarning, `Sheet "B" is empty and was skipped`})
	assert.Contains(t, rec.entries, entry{types.SeveritySuccess, "Converted 1 sheet(s) successfully"})
}

func TestSpreadsheet_Failures(t *testing.T) {
	tests := []struct {
		name     string
		reader   office.SpreadsheetReader
		wantKind types.ErrorKind
	}{
		{"unreadable", fakeSheets{err: errors.New("zip: not a valid zip file")}, types.ErrorMalformed},
		{"no sheets", fakeSheets{}, types.ErrorEmpty},
		{"all sheets empty", fakeSheets{sheets: []office.Sheet{{Name: "A"}, {Name: "B", Rows: [][]string{{"", " "}}}}}, types.ErrorEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testRegistry(WithSpreadsheetReader(types.FormatSpreadsheetLegacy, tt.reader))
			var rec recorder
			res := Run(lookup(t, r, types.FormatSpreadsheetLegacy), Source{Name: "old.xls"}, rec.emit)

			assert.False(t, res.Success)
			assert.Empty(t, res.Markdown)
			assert.Equal(t, tt.wantKind, res.Kind)
			assert.NotEmpty(t, res.Error)
			assert.True(t, rec.has(types.SeverityError))
		})
	}
}

func TestSpreadsheet_GarbageBytes(t *testing.T) {
	var rec recorder
	res := Run(lookup(t, testRegistry(), types.FormatSpreadsheetModern),
		Source{Name: "bad.xlsx", Data: []byte("nope")}, rec.emit)

	assert.False(t, res.Success)
	assert.Equal(t, types.ErrorMalformed, res.Kind)
	assert.Equal(t, msgSpreadsheetUnreadable, res.Error)
}

func TestSpreadsheet_LegacyRowsProjected(t *testing.T) {
	reader := fakeSheets{sheets: []office.Sheet{{
		Name: "Old",
		Rows: [][]string{{"a", "b", ""}, {}, {"1"}, {"2", "3", "4", "5"}},
	}}}
	r := testRegistry(WithSpreadsheetReader(types.FormatSpreadsheetLegacy, reader))

	res := Run(lookup(t, r, types.FormatSpreadsheetLegacy), Source{Name: "old.XLS"}, (&recorder{}).emit)
	require.True(t, res.Success)
	assert.Contains(t, res.Markdown, "# old\n")
	assert.Contains(t, res.Markdown, "| a | b | - |\n| --- | --- | --- |\n| 1 | - | - |\n| 2 | 3 | 4 |\n")
	assert.NotContains(t, res.Markdown, "---\n\n## ")
}

func docx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestWord_Convert(t *testing.T) {
	body := `<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Intro</w:t></w:r></w:p>` +
		`<w:p><w:r><w:rPr><w:b/></w:rPr><w:t>Key</w:t></w:r><w:r><w:t xml:space="preserve"> point &amp; more</w:t></w:r></w:p>` +
		`<w:p><w:r><w:drawing/></w:r></w:p>`

	var rec recorder
	res := Run(lookup(t, testRegistry(), types.FormatWordProcessor),
		Source{Name: "memo.docx", Data: docx(t, body)}, rec.emit)

	require.True(t, res.Success, res.Error)
	assert.Equal(t, "# memo\n\n"+stampLine+"\n\n# Intro\n\n**Key** point & more", res.Markdown)
	assert.Equal(t, []string{"Images were ignored in the conversion"}, res.Warnings)
	assert.Contains(t, rec.entries, entry{types.SeverityWarning, "1 warning(s) during conversion"})
}

func TestWord_EmptyAndImageOnly(t *testing.T) {
	r := testRegistry()

	res := Run(lookup(t, r, types.FormatWordProcessor), Source{Name: "e.docx", Data: docx(t, `<w:p/>`)}, (&recorder{}).emit)
	assert.False(t, res.Success)
	assert.Equal(t, types.ErrorEmpty, res.Kind)
	assert.Equal(t, "The Word document is empty.", res.Error)

	res = Run(lookup(t, r, types.FormatWordProcessor),
		Source{Name: "i.docx", Data: docx(t, `<w:p><w:r><w:drawing/></w:r></w:p>`)}, (&recorder{}).emit)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "only unsupported elements")
}

func TestWord_Malformed(t *testing.T) {
	res := Run(lookup(t, testRegistry(), types.FormatWordProcessor),
		Source{Name: "x.docx", Data: []byte("PK?")}, (&recorder{}).emit)
	assert.False(t, res.Success)
	assert.Equal(t, types.ErrorMalformed, res.Kind)
	assert.Equal(t, msgWordUnreadable, res.Error)
}

func TestRun_RecoversPanics(t *testing.T) {
	r := testRegistry(WithWordExtractor(panicExtractor{}))
	var rec recorder
	res := Run(lookup(t, r, types.FormatWordProcessor), Source{Name: "p.docx"}, rec.emit)

	assert.False(t, res.Success)
	assert.Equal(t, types.ErrorInternal, res.Kind)
	assert.Equal(t, "Error while processing: index out of range", res.Error)
	assert.True(t, rec.has(types.SeverityError))
}

func TestTranslateWarning(t *testing.T) {
	assert.Equal(t, "An unrecognised element was ignored", translateWarning("Unrecognised element was ignored: w:object"))
	assert.Equal(t, "Images were ignored in the conversion", translateWarning("Image ignored"))
	assert.Equal(t, "Some styles were not preserved", translateWarning("Unrecognised paragraph style: 'x'"))
	assert.Equal(t, "other", translateWarning("other"))

	r := testRegistry(WithWordExtractor(fakeExtractor{ext: office.Extraction{HTML: "<p>x</p>", Warnings: []string{"a", "b"}}}))
	res := Run(lookup(t, r, types.FormatWordProcessor), Source{Name: "w.docx"}, (&recorder{}).emit)
	require.True(t, res.Success)
	assert.Equal(t, []string{"a", "b"}, res.Warnings)
}
