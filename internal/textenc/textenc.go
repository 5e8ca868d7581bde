// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textenc decodes raw text input into UTF-8.
package textenc

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/barbaragodoy/markdowngo/internal/diagnose"
	"github.com/barbaragodoy/markdowngo/pkg/types"
)

// Encoding names the source encoding Decode detected.
type Encoding string

const (
	UTF8        Encoding = "utf-8"
	UTF16       Encoding = "utf-16"
	Windows1252 Encoding = "windows-1252"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode returns data as a UTF-8 string. A UTF-8 BOM is dropped; UTF-16 is
// accepted only with a BOM. Bytes that are not valid UTF-8 are read as
// Windows-1252 unless they contain NUL bytes, which marks the input as
// binary or in an unsupported encoding.
func Decode(data []byte) (string, Encoding, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
		if err != nil {
			return "", UTF16, diagnose.Wrap(types.ErrorEncoding, err, "")
		}
		return string(out), UTF16, nil
	case bytes.HasPrefix(data, bomUTF8):
		data = data[len(bomUTF8):]
	}

	if utf8.Valid(data) {
		return string(data), UTF8, nil
	}

	if bytes.IndexByte(data, 0) >= 0 {
		return "", "", diagnose.New(types.ErrorEncoding, "")
	}

	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", Windows1252, diagnose.Wrap(types.ErrorEncoding, err, "")
	}
	return string(out), Windows1252, nil
}
