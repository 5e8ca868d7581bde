// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbaragodoy/markdowngo/internal/diagnose"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    string
		wantEnc Encoding
	}{
		{"plain utf-8", []byte("héllo"), "héllo", UTF8},
		{"utf-8 bom dropped", append([]byte{0xEF, 0xBB, 0xBF}, "abc"...), "abc", UTF8},
		{"utf-16 le with bom", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, "hi", UTF16},
		{"utf-16 be with bom", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, "hi", UTF16},
		{"utf-16 le non-ascii", []byte{0xFF, 0xFE, 0xE9, 0x00, 0xAC, 0x20}, "é€", UTF16},
		{"windows-1252 fallback", []byte{'c', 'a', 'f', 0xE9}, "café", Windows1252},
		{"empty", nil, "", UTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, enc, err := Decode(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantEnc, enc)
		})
	}
}

func TestDecode_BinaryRejected(t *testing.T) {
	_, _, err := Decode([]byte{0x00, 0xFF, 0x10, 0x80})
	require.Error(t, err)
	assert.ErrorIs(t, err, diagnose.ErrEncoding)
}
