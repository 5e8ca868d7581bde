// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package office

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	partDocument  = "word/document.xml"
	partRels      = "word/_rels/document.xml.rels"
	partStyles    = "word/styles.xml"
	partNumbering = "word/numbering.xml"
)

// knownStyles are paragraph styles rendered as plain paragraphs without a
// warning.
var knownStyles = map[string]bool{
	"normal":         true,
	"list paragraph": true,
	"body text":      true,
	"no spacing":     true,
	"default":        true,
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;", "<", "&lt;", ">", "&gt;")
)

// DocxExtractor reads WordprocessingML (.docx) documents.
type DocxExtractor struct{}

// Extract unpacks the document part and streams it into an HTML fragment.
func (DocxExtractor) Extract(data []byte) (Extraction, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Extraction{}, fmt.Errorf("opening docx: %w", err)
	}

	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}

	doc, ok := parts[partDocument]
	if !ok {
		return Extraction{}, fmt.Errorf("invalid docx: %s not found", partDocument)
	}

	p := &docxParser{
		rels:    map[string]string{},
		styles:  map[string]string{},
		ordered: map[string]bool{},
		warned:  map[string]bool{},
	}
	if f, ok := parts[partRels]; ok {
		if err := withPart(f, p.readRels); err != nil {
			return Extraction{}, err
		}
	}
	if f, ok := parts[partStyles]; ok {
		if err := withPart(f, p.readStyles); err != nil {
			return Extraction{}, err
		}
	}
	if f, ok := parts[partNumbering]; ok {
		if err := withPart(f, p.readNumbering); err != nil {
			return Extraction{}, err
		}
	}
	if err := withPart(doc, p.readDocument); err != nil {
		return Extraction{}, err
	}

	return Extraction{
		HTML:     p.out.String(),
		Warnings: p.warnings,
		Images:   p.images,
	}, nil
}

func withPart(f *zip.File, fn func(io.Reader) error) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer rc.Close()
	if err := fn(rc); err != nil {
		return fmt.Errorf("parsing %s: %w", f.Name, err)
	}
	return nil
}

// segment is a run of text sharing formatting, or a line break.
type segment struct {
	text   string
	bold   bool
	italic bool
	href   string
	brk    bool
}

type docxParser struct {
	rels    map[string]string // relationship id -> target
	styles  map[string]string // style id -> lower-case style name
	ordered map[string]bool   // numId -> ordered list

	out      strings.Builder
	warnings []string
	warned   map[string]bool
	images   int

	paraState
	open  []paraState // enclosing paragraphs of a text box paragraph
	depth int         // open w:p elements
	list  string      // open list tag: "", "ul" or "ol"
}

// paraState is the per-paragraph parse state. Text boxes nest paragraphs
// inside a run of the enclosing paragraph, so it is saved and restored
// around them.
type paraState struct {
	pStyle string
	numID  string
	segs   []segment
	inRun  bool
	inRPr  bool
	inText bool
	bold   bool
	italic bool
	href   string
}

func attr(t xml.StartElement, local string) string {
	for _, a := range t.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// toggle reads an OOXML on/off property; absence of w:val means on.
func toggle(t xml.StartElement) bool {
	switch attr(t, "val") {
	case "0", "false", "off", "none":
		return false
	}
	return true
}

func (p *docxParser) warn(msg string) {
	if p.warned[msg] {
		return
	}
	p.warned[msg] = true
	p.warnings = append(p.warnings, msg)
}

func (p *docxParser) readRels(r io.Reader) error {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if t, ok := tok.(xml.StartElement); ok && t.Name.Local == "Relationship" {
			p.rels[attr(t, "Id")] = attr(t, "Target")
		}
	}
}

func (p *docxParser) readStyles(r io.Reader) error {
	dec := xml.NewDecoder(r)
	var current string
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		t, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch t.Name.Local {
		case "style":
			current = attr(t, "styleId")
		case "name":
			if current != "" {
				p.styles[current] = strings.ToLower(attr(t, "val"))
			}
		}
	}
}

func (p *docxParser) readNumbering(r io.Reader) error {
	dec := xml.NewDecoder(r)
	abstractOrdered := map[string]bool{}
	numAbstract := map[string]string{}

	var abstractID, numID, level string
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "abstractNum":
				abstractID = attr(t, "abstractNumId")
			case "lvl":
				level = attr(t, "ilvl")
			case "numFmt":
				if abstractID != "" && level == "0" {
					abstractOrdered[abstractID] = attr(t, "val") != "bullet"
				}
			case "num":
				numID = attr(t, "numId")
			case "abstractNumId":
				if numID != "" {
					numAbstract[numID] = attr(t, "val")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "abstractNum":
				abstractID = ""
			case "num":
				numID = ""
			}
		}
	}

	for num, abs := range numAbstract {
		p.ordered[num] = abstractOrdered[abs]
	}
	return nil
}

func (p *docxParser) readDocument(r io.Reader) error {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			// Alternate content repeats the choice in legacy markup.
			if t.Name.Local == "Fallback" {
				if err := dec.Skip(); err != nil {
					return err
				}
				continue
			}
			p.start(t)
		case xml.EndElement:
			p.end(t.Name.Local)
		case xml.CharData:
			if p.inText {
				p.segs = append(p.segs, segment{text: string(t), bold: p.bold, italic: p.italic, href: p.href})
			}
		}
	}
	p.closeList()
	return nil
}

func (p *docxParser) start(t xml.StartElement) {
	switch t.Name.Local {
	case "p":
		if p.depth > 0 {
			p.open = append(p.open, p.paraState)
		}
		p.depth++
		p.paraState = paraState{}
	case "pStyle":
		p.pStyle = attr(t, "val")
	case "numId":
		if v := attr(t, "val"); v != "0" {
			p.numID = v
		}
	case "r":
		p.inRun = true
		p.bold = false
		p.italic = false
	case "rPr":
		p.inRPr = true
	case "b":
		if p.inRPr {
			p.bold = toggle(t)
		}
	case "i":
		if p.inRPr {
			p.italic = toggle(t)
		}
	case "t":
		p.inText = p.inRun
	case "tab":
		if p.inRun {
			p.segs = append(p.segs, segment{text: "\t", bold: p.bold, italic: p.italic, href: p.href})
		}
	case "br", "cr":
		if p.inRun && attr(t, "type") != "page" {
			p.segs = append(p.segs, segment{brk: true})
		}
	case "hyperlink":
		if id := attr(t, "id"); id != "" {
			p.href = p.rels[id]
		} else if anchor := attr(t, "anchor"); anchor != "" {
			p.href = "#" + anchor
		}
	case "drawing", "pict":
		p.images++
		p.warn("Image ignored: images are not converted")
	case "object":
		p.warn("Unrecognised element was ignored: w:object")
	case "tbl":
		p.closeList()
		p.out.WriteString("<table>")
	case "tr":
		p.out.WriteString("<tr>")
	case "tc":
		p.out.WriteString("<td>")
	}
}

func (p *docxParser) end(local string) {
	switch local {
	case "p":
		p.flushParagraph()
		p.depth--
		if n := len(p.open); n > 0 && p.depth > 0 {
			p.paraState = p.open[n-1]
			p.open = p.open[:n-1]
		}
	case "r":
		p.inRun = false
	case "rPr":
		p.inRPr = false
	case "t":
		p.inText = false
	case "hyperlink":
		p.href = ""
	case "tbl":
		p.closeList()
		p.out.WriteString("</table>")
	case "tr":
		p.out.WriteString("</tr>")
	case "tc":
		p.closeList()
		p.out.WriteString("</td>")
	}
}

func (p *docxParser) flushParagraph() {
	inner := renderSegments(p.segs)
	if strings.TrimSpace(inner) == "" {
		return
	}

	if level := p.headingLevel(); level > 0 {
		p.closeList()
		fmt.Fprintf(&p.out, "<h%d>%s</h%d>", level, inner, level)
		return
	}

	if p.numID != "" {
		tag := "ul"
		if p.ordered[p.numID] {
			tag = "ol"
		}
		if p.list != tag {
			p.closeList()
			p.out.WriteString("<" + tag + ">")
			p.list = tag
		}
		p.out.WriteString("<li>" + inner + "</li>")
		return
	}

	p.closeList()
	if p.pStyle != "" && !knownStyles[p.styleName()] {
		p.warn(fmt.Sprintf("Unrecognised paragraph style: '%s' (Style ID: %s)", p.styleName(), p.pStyle))
	}
	p.out.WriteString("<p>" + inner + "</p>")
}

func (p *docxParser) closeList() {
	if p.list != "" {
		p.out.WriteString("</" + p.list + ">")
		p.list = ""
	}
}

func (p *docxParser) styleName() string {
	if name, ok := p.styles[p.pStyle]; ok {
		return name
	}
	return strings.ToLower(p.pStyle)
}

// headingLevel returns 1-6 for heading and title styles, 0 otherwise.
func (p *docxParser) headingLevel() int {
	if p.pStyle == "" {
		return 0
	}
	name := strings.ReplaceAll(p.styleName(), " ", "")
	if name == "title" {
		return 1
	}
	if !strings.HasPrefix(name, "heading") {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(name, "heading"))
	if err != nil || n < 1 || n > 6 {
		return 0
	}
	return n
}

// renderSegments merges adjacent segments with equal formatting and wraps
// them in em, strong, and a tags.
func renderSegments(segs []segment) string {
	var b strings.Builder
	for i := 0; i < len(segs); {
		s := segs[i]
		if s.brk {
			b.WriteString("<br />")
			i++
			continue
		}

		var text strings.Builder
		j := i
		for j < len(segs) && !segs[j].brk &&
			segs[j].bold == s.bold && segs[j].italic == s.italic && segs[j].href == s.href {
			text.WriteString(textEscaper.Replace(segs[j].text))
			j++
		}

		frag := text.String()
		if s.italic {
			frag = "<em>" + frag + "</em>"
		}
		if s.bold {
			frag = "<strong>" + frag + "</strong>"
		}
		if s.href != "" {
			frag = `<a href="` + attrEscaper.Replace(s.href) + `">` + frag + "</a>"
		}
		b.WriteString(frag)
		i = j
	}
	return b.String()
}
