// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging configures the process-wide slog logger used for CLI
// diagnostics. Conversion events are not logged here; they travel with each
// run's report.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/barbaragodoy/markdowngo/pkg/types"
)

// Init sets the default slog logger from cfg, writing to stderr.
func Init(cfg types.LogConfig) {
	slog.SetDefault(New(os.Stderr, cfg))
}

// New returns a logger writing to w. Format "json" selects the JSON handler;
// anything else selects the text handler.
func New(w io.Writer, cfg types.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel converts a string ("debug", "info", "warn", "error") to slog.Level.
// Unknown strings default to LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
