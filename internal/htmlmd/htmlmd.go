// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package htmlmd rewrites a restricted HTML subset into Markdown.
//
// The rewrite is a fixed, ordered pipeline of textual substitutions, not an
// HTML parse. A rule fires only on a matched open/close pair on one line;
// nested or malformed markup can come out partially stripped. Entities are
// decoded last so that entity-encoded tags such as "&lt;h1&gt;" are never
// mistaken for structure.
package htmlmd

import (
	"regexp"
	"strings"
)

type rule struct {
	re   *regexp.Regexp
	repl string
}

func r(pattern, repl string) rule {
	return rule{re: regexp.MustCompile(pattern), repl: repl}
}

// rules run in order. Tag names are bounded so that <b> does not also
// match <br> or <body>.
var rules = []rule{
	// Headings.
	r(`(?i)<h1(?:\s[^>]*)?>(.*?)</h1>`, "\n# ${1}\n\n"),
	r(`(?i)<h2(?:\s[^>]*)?>(.*?)</h2>`, "\n## ${1}\n\n"),
	r(`(?i)<h3(?:\s[^>]*)?>(.*?)</h3>`, "\n### ${1}\n\n"),
	r(`(?i)<h4(?:\s[^>]*)?>(.*?)</h4>`, "\n#### ${1}\n\n"),
	r(`(?i)<h5(?:\s[^>]*)?>(.*?)</h5>`, "\n##### ${1}\n\n"),
	r(`(?i)<h6(?:\s[^>]*)?>(.*?)</h6>`, "\n###### ${1}\n\n"),

	// Emphasis.
	r(`(?i)<strong(?:\s[^>]*)?>(.*?)</strong>`, "**${1}**"),
	r(`(?i)<b(?:\s[^>]*)?>(.*?)</b>`, "**${1}**"),
	r(`(?i)<em(?:\s[^>]*)?>(.*?)</em>`, "_${1}_"),
	r(`(?i)<i(?:\s[^>]*)?>(.*?)</i>`, "_${1}_"),

	// Links.
	r(`(?i)<a\s[^>]*href="([^"]*)"[^>]*>(.*?)</a>`, "[${2}](${1})"),

	// Lists.
	r(`(?i)<ul(?:\s[^>]*)?>`, "\n"),
	r(`(?i)</ul>`, "\n"),
	r(`(?i)<ol(?:\s[^>]*)?>`, "\n"),
	r(`(?i)</ol>`, "\n"),
	r(`(?i)<li(?:\s[^>]*)?>(.*?)</li>`, "- ${1}\n"),

	// Paragraphs and line breaks.
	r(`(?i)<p(?:\s[^>]*)?>(.*?)</p>`, "${1}\n\n"),
	r(`(?i)<br\s*/?>`, "\n"),

	// Everything else.
	r(`<[^>]+>`, ""),
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// entities are decoded in order, after all tag rules.
var entities = [][2]string{
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&#39;", "'"},
	{"&nbsp;", " "},
}

// Transform converts html to Markdown. It is pure and deterministic.
func Transform(html string) string {
	md := html
	for _, rl := range rules {
		md = rl.re.ReplaceAllString(md, rl.repl)
	}

	md = blankRuns.ReplaceAllString(md, "\n\n")
	md = strings.TrimSpace(md)

	for _, e := range entities {
		md = strings.ReplaceAll(md, e[0], e[1])
	}
	return md
}
