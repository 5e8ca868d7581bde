// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package office

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`

// buildDocx zips the given parts into a .docx payload.
func buildDocx(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func document(body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?><w:document ` + wordNS + `><w:body>` + body + `</w:body></w:document>`
}

func TestDocxExtractor_Extract(t *testing.T) {
	styles := `<w:styles ` + wordNS + `>` +
		`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/></w:style>` +
		`<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/></w:style>` +
		`<w:style w:type="paragraph" w:styleId="Fancy"><w:name w:val="Fancy Quote"/></w:style>` +
		`</w:styles>`
	numbering := `<w:numbering ` + wordNS + `>` +
		`<w:abstractNum w:abstractNumId="0"><w:lvl w:ilvl="0"><w:numFmt w:val="bullet"/></w:lvl></w:abstractNum>` +
		`<w:abstractNum w:abstractNumId="1"><w:lvl w:ilvl="0"><w:numFmt w:val="decimal"/></w:lvl></w:abstractNum>` +
		`<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>` +
		`<w:num w:numId="2"><w:abstractNumId w:val="1"/></w:num>` +
		`</w:numbering>`
	rels := `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId9" Type="hyperlink" Target="https://example.com/?a=1&amp;b=2" TargetMode="External"/>` +
		`</Relationships>`

	body := `<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Report</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t xml:space="preserve">Plain </w:t></w:r><w:r><w:rPr><w:b/></w:rPr><w:t>bold</w:t></w:r>` +
		`<w:r><w:rPr><w:b/></w:rPr><w:t>er</w:t></w:r><w:r><w:t xml:space="preserve"> and </w:t></w:r>` +
		`<w:r><w:rPr><w:i/></w:rPr><w:t>italic</w:t></w:r><w:r><w:rPr><w:b w:val="0"/></w:rPr><w:t xml:space="preserve"> 1 &lt; 2</w:t></w:r></w:p>` +
		`<w:p><w:hyperlink r:id="rId9"><w:r><w:t>link</w:t></w:r></w:hyperlink></w:p>` +
		`<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr><w:r><w:t>apple</w:t></w:r></w:p>` +
		`<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr><w:r><w:t>pear</w:t></w:r></w:p>` +
		`<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="2"/></w:numPr></w:pPr><w:r><w:t>step</w:t></w:r></w:p>` +
		`<w:p><w:pPr><w:pStyle w:val="Heading2"/></w:pPr><w:r><w:t>Next</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>one</w:t><w:br/><w:t>two</w:t></w:r></w:p>` +
		`<w:p></w:p>` +
		`<w:p><w:pPr><w:pStyle w:val="Fancy"/></w:pPr><w:r><w:t>quoted</w:t></w:r></w:p>`

	data := buildDocx(t, map[string]string{
		"word/document.xml":            document(body),
		"word/styles.xml":              styles,
		"word/numbering.xml":           numbering,
		"word/_rels/document.xml.rels": rels,
	})

	got, err := DocxExtractor{}.Extract(data)
	require.NoError(t, err)

	want := `<h1>Report</h1>` +
		`<p>Plain <strong>bolder</strong> and <em>italic</em> 1 &lt; 2</p>` +
		`<p><a href="https://example.com/?a=1&amp;b=2">link</a></p>` +
		`<ul><li>apple</li><li>pear</li></ul>` +
		`<ol><li>step</li></ol>` +
		`<h2>Next</h2>` +
		`<p>one<br />two</p>` +
		`<p>quoted</p>`
	assert.Equal(t, want, got.HTML)
	assert.Equal(t, 0, got.Images)
	assert.Equal(t, []string{"Unrecognised paragraph style: 'fancy quote' (Style ID: Fancy)"}, got.Warnings)
}

func TestDocxExtractor_ImagesOnly(t *testing.T) {
	body := `<w:p><w:r><w:drawing/></w:r></w:p><w:p><w:r><w:drawing/></w:r></w:p>`
	data := buildDocx(t, map[string]string{"word/document.xml": document(body)})

	got, err := DocxExtractor{}.Extract(data)
	require.NoError(t, err)
	assert.Empty(t, got.HTML)
	assert.Equal(t, 2, got.Images)
	assert.Len(t, got.Warnings, 1)
}

func TestDocxExtractor_Table(t *testing.T) {
	body := `<w:tbl><w:tr><w:tc><w:p><w:r><w:t>a</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>b</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`
	data := buildDocx(t, map[string]string{"word/document.xml": document(body)})

	got, err := DocxExtractor{}.Extract(data)
	require.NoError(t, err)
	assert.Equal(t, `<table><tr><td><p>a</p></td><td><p>b</p></td></tr></table>`, got.HTML)
}

func TestDocxExtractor_TextBox(t *testing.T) {
	tests := []struct {
		name string
		box  string
	}{
		{"vml", `<w:pict><w:txbxContent><w:p><w:r><w:t>Inner</w:t></w:r></w:p></w:txbxContent></w:pict>`},
		{"alternate content", `<mc:AlternateContent xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006">` +
			`<mc:Choice Requires="wps"><w:drawing><w:txbxContent><w:p><w:r><w:t>Inner</w:t></w:r></w:p></w:txbxContent></w:drawing></mc:Choice>` +
			`<mc:Fallback><w:pict><w:txbxContent><w:p><w:r><w:t>Inner</w:t></w:r></w:p></w:txbxContent></w:pict></mc:Fallback>` +
			`</mc:AlternateContent>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `<w:p><w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">Outer before </w:t>` + tt.box +
				`<w:t>outer after</w:t></w:r></w:p><w:p><w:r><w:t>Next</w:t></w:r></w:p>`
			data := buildDocx(t, map[string]string{"word/document.xml": document(body)})

			got, err := DocxExtractor{}.Extract(data)
			require.NoError(t, err)
			assert.Equal(t, `<p>Inner</p><p><strong>Outer before outer after</strong></p><p>Next</p>`, got.HTML)
			assert.Equal(t, 1, strings.Count(got.HTML, "Inner"))
			assert.Equal(t, 1, got.Images)
		})
	}
}

func TestDocxExtractor_Errors(t *testing.T) {
	_, err := DocxExtractor{}.Extract([]byte("not a zip"))
	assert.Error(t, err)

	data := buildDocx(t, map[string]string{"word/other.xml": "<x/>"})
	_, err = DocxExtractor{}.Extract(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid docx")

	data = buildDocx(t, map[string]string{"word/document.xml": "<w:document><w:body>"})
	_, err = DocxExtractor{}.Extract(data)
	assert.Error(t, err)
}
