// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package htmlmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransform(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "heading and paragraph",
			html: "<h1>Title</h1><p>Body text.</p>",
			want: "# Title\n\nBody text.",
		},
		{
			name: "all heading levels",
			html: "<h2>B</h2><h3>C</h3><h4>D</h4><h5>E</h5><h6>F</h6>",
			want: "## B\n\n### C\n\n#### D\n\n##### E\n\n###### F",
		},
		{
			name: "heading with attributes",
			html: `<h2 id="intro" class="x">Intro</h2>`,
			want: "## Intro",
		},
		{
			name: "bold and italic",
			html: "<p><strong>strong</strong> <b>bold</b> <em>em</em> <i>it</i></p>",
			want: "**strong** **bold** _em_ _it_",
		},
		{
			name: "link",
			html: `<p>See <a href="https://example.com" target="_blank">the site</a>.</p>`,
			want: "See [the site](https://example.com).",
		},
		{
			name: "unordered list",
			html: "<ul><li>one</li><li>two</li></ul>",
			want: "- one\n- two",
		},
		{
			name: "ordered list becomes dash items",
			html: "<ol><li>first</li></ol>",
			want: "- first",
		},
		{
			name: "line break",
			html: "<p>line one<br>line two<br/>line three<br />end</p>",
			want: "line one\nline two\nline three\nend",
		},
		{
			name: "unknown tags stripped",
			html: "<div><span>kept</span></div><table><tr><td>cell</td></tr></table>",
			want: "keptcell",
		},
		{
			name: "entities decoded after stripping",
			html: "<p>&lt;h1&gt;not a heading&lt;/h1&gt; &amp; &quot;q&quot; &#39;s&#39;&nbsp;x</p>",
			want: `<h1>not a heading</h1> & "q" 's' x`,
		},
		{
			name: "blank line runs collapse",
			html: "<p>a</p>\n\n\n\n<p>b</p>",
			want: "a\n\nb",
		},
		{
			name: "case insensitive tags",
			html: "<H1>Up</H1><P>Para</P>",
			want: "# Up\n\nPara",
		},
		{
			name: "br is not bold",
			html: "a<br>b</b>",
			want: "a\nb",
		},
		{
			name: "unmatched heading is stripped",
			html: "<h1>open only",
			want: "open only",
		},
		{
			name: "empty input",
			html: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Transform(tt.html))
		})
	}
}

func TestTransform_PlainTextUnchanged(t *testing.T) {
	inputs := []string{
		"just words",
		"first line\nsecond line",
		"para one\n\npara two",
		"Price: 3 > 2 and 1 < 2",
	}
	for _, in := range inputs {
		assert.Equal(t, in, Transform(in))
	}

	assert.Equal(t, "a\n\nb", Transform("  a\n\n\n\n\nb  \n"))
}

func TestTransform_Deterministic(t *testing.T) {
	html := "<h1>T</h1><ul><li><b>x</b></li></ul><p>&amp;</p>"
	assert.Equal(t, Transform(html), Transform(html))
}
