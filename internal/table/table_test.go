// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/barbaragodoy/markdowngo/pkg/types"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		rows    [][]string
		want    string
	}{
		{
			name:    "missing trailing cell padded",
			headers: []string{"a", "b"},
			rows:    [][]string{{"1"}},
			want:    "| a | b |\n| --- | --- |\n| 1 | - |\n",
		},
		{
			name:    "extra cells dropped",
			headers: []string{"a"},
			rows:    [][]string{{"1", "2", "3"}},
			want:    "| a |\n| --- |\n| 1 |\n",
		},
		{
			name:    "empty and whitespace headers become placeholder",
			headers: []string{"  name ", "", "   "},
			rows:    nil,
			want:    "| name | - | - |\n| --- | --- | --- |\n",
		},
		{
			name:    "cells trimmed",
			headers: []string{"x", "y"},
			rows:    [][]string{{"  1 ", "\t2\n"}, {"", "3"}},
			want:    "| x | y |\n| --- | --- |\n| 1 | 2 |\n| - | 3 |\n",
		},
		{
			name:    "empty row is all placeholders",
			headers: []string{"x", "y"},
			rows:    [][]string{{}},
			want:    "| x | y |\n| --- | --- |\n| - | - |\n",
		},
		{
			name:    "no headers",
			headers: nil,
			rows:    [][]string{{"1"}},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.headers, tt.rows))
		})
	}
}

func TestRender_RowWidthMatchesHeaders(t *testing.T) {
	out := Render([]string{"a", "b", "c"}, [][]string{{"1"}, {"1", "2", "3", "4"}, nil})
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		assert.Equal(t, 4, strings.Count(line, "|"), line)
	}
}

func TestRenderData(t *testing.T) {
	td := types.TabularData{Headers: []string{"k"}, Rows: [][]string{{"v"}}}
	assert.Equal(t, "| k |\n| --- |\n| v |\n", RenderData(td))
}
