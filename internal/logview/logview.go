// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logview renders a run's log events for the terminal.
package logview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/barbaragodoy/markdowngo/pkg/types"
)

const timeLayout = "15:04:05"

var (
	colorInfo    = lipgloss.Color("#06B6D4")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")

	styleTime = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleTag = lipgloss.NewStyle().
			Bold(true).
			Width(5)

	styleStatus = lipgloss.NewStyle().
			Bold(true)
)

var tags = map[types.Severity]struct {
	label string
	color lipgloss.Color
}{
	types.SeverityInfo:    {"INFO", colorInfo},
	types.SeveritySuccess: {"OK", colorSuccess},
	types.SeverityWarning: {"WARN", colorWarning},
	types.SeverityError:   {"ERROR", colorError},
}

// Line formats one event as "<time> <TAG> <message>".
func Line(e types.LogEvent) string {
	tag, ok := tags[e.Severity]
	if !ok {
		tag = tags[types.SeverityInfo]
	}
	return styleTime.Render(e.Timestamp.Format(timeLayout)) + " " +
		styleTag.Foreground(tag.color).Render(tag.label) + " " +
		e.Message
}

// Render writes one line per event. minimum filters out events below the
// given severity; an empty minimum keeps everything.
func Render(w io.Writer, events []types.LogEvent, minimum types.Severity) error {
	for _, e := range events {
		if rank(e.Severity) < rank(minimum) {
			continue
		}
		if _, err := fmt.Fprintln(w, Line(e)); err != nil {
			return err
		}
	}
	return nil
}

// Status formats the aggregate outcome of a run with its counts.
func Status(status types.BatchStatus, succeeded, failed int) string {
	color := colorMuted
	switch status {
	case types.BatchSuccess:
		color = colorSuccess
	case types.BatchPartial:
		color = colorWarning
	case types.BatchFailed:
		color = colorError
	}
	label := styleStatus.Foreground(color).Render(strings.ToUpper(string(status)))
	return fmt.Sprintf("%s: %d converted, %d failed", label, succeeded, failed)
}

// ParseSeverity maps a flag value to a Severity. Unknown values yield "".
func ParseSeverity(s string) types.Severity {
	switch strings.ToLower(s) {
	case "info":
		return types.SeverityInfo
	case "success", "ok":
		return types.SeveritySuccess
	case "warn", "warning":
		return types.SeverityWarning
	case "error":
		return types.SeverityError
	}
	return ""
}

// rank orders severities for filtering. Success ranks with info.
func rank(s types.Severity) int {
	switch s {
	case types.SeverityWarning:
		return 2
	case types.SeverityError:
		return 3
	case types.SeverityInfo, types.SeveritySuccess:
		return 1
	}
	return 0
}
