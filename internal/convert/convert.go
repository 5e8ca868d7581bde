// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements the per-format Markdown converters and the
// Base64 and raw-text ingestion paths.
//
// Every converter reports progress through an Emit sink and returns a
// ConversionResult; failures are translated into classified diagnostics and
// never returned as Go errors or panics.
package convert

import (
	"fmt"
	"time"

	"github.com/barbaragodoy/markdowngo/internal/diagnose"
	"github.com/barbaragodoy/markdowngo/internal/office"
	"github.com/barbaragodoy/markdowngo/pkg/types"
)

// Emit receives a converter's log messages. The owner of the run assigns
// ids and timestamps.
type Emit func(severity types.Severity, message string)

// Source is a named byte payload read from a file.
type Source struct {
	Name string
	Data []byte
}

// Converter transforms one Format into Markdown.
type Converter interface {
	// Name identifies the converter in logs.
	Name() string

	// Convert renders src. It reports failures through the result.
	Convert(src Source, emit Emit) types.ConversionResult
}

// Registry maps each convertible Format to its Converter. It is built once
// and read-only afterwards.
type Registry struct {
	converters map[types.Format]Converter
	base64     *Base64Converter
	text       *RawTextConverter
}

type registryConfig struct {
	stamp     stamp
	modern    office.SpreadsheetReader
	legacy    office.SpreadsheetReader
	extractor office.WordExtractor
}

// Option configures a Registry.
type Option func(*registryConfig)

// WithClock sets the clock used for the "Converted at" line.
func WithClock(now func() time.Time) Option {
	return func(c *registryConfig) { c.stamp.now = now }
}

// WithTimestampLayout sets the Go time layout of the "Converted at" line.
func WithTimestampLayout(layout string) Option {
	return func(c *registryConfig) {
		if layout != "" {
			c.stamp.layout = layout
		}
	}
}

// WithSpreadsheetReader replaces the reader for a spreadsheet Format.
func WithSpreadsheetReader(f types.Format, r office.SpreadsheetReader) Option {
	return func(c *registryConfig) {
		switch f {
		case types.FormatSpreadsheetModern:
			c.modern = r
		case types.FormatSpreadsheetLegacy:
			c.legacy = r
		}
	}
}

// WithWordExtractor replaces the word-processor extractor.
func WithWordExtractor(x office.WordExtractor) Option {
	return func(c *registryConfig) { c.extractor = x }
}

// NewRegistry builds the lookup table for every convertible Format.
func NewRegistry(opts ...Option) *Registry {
	cfg := registryConfig{
		stamp:     stamp{now: time.Now, layout: types.DefaultTimestampLayout},
		modern:    office.XLSXReader{},
		legacy:    office.XLSReader{},
		extractor: office.DocxExtractor{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Registry{
		converters: make(map[types.Format]Converter),
		base64:     &Base64Converter{stamp: cfg.stamp},
		text:       &RawTextConverter{stamp: cfg.stamp},
	}
	r.register(types.FormatSpreadsheetModern, &SpreadsheetConverter{reader: cfg.modern, stamp: cfg.stamp})
	r.register(types.FormatSpreadsheetLegacy, &SpreadsheetConverter{reader: cfg.legacy, stamp: cfg.stamp})
	r.register(types.FormatWordProcessor, &WordConverter{extractor: cfg.extractor, stamp: cfg.stamp})
	r.register(types.FormatDelimitedText, &CSVConverter{stamp: cfg.stamp})
	r.register(types.FormatPlainText, &TextConverter{stamp: cfg.stamp})
	return r
}

func (r *Registry) register(f types.Format, c Converter) {
	r.converters[f] = c
}

// Lookup returns the converter for f. Terminal formats have none.
func (r *Registry) Lookup(f types.Format) (Converter, bool) {
	c, ok := r.converters[f]
	return c, ok
}

// Base64 returns the Base64 ingestion converter.
func (r *Registry) Base64() *Base64Converter { return r.base64 }

// Text returns the raw-text ingestion converter.
func (r *Registry) Text() *RawTextConverter { return r.text }

// Run calls c.Convert and turns a panic inside a third-party parser into an
// internal-fault result.
func Run(c Converter, src Source, emit Emit) (res types.ConversionResult) {
	defer func() {
		if v := recover(); v != nil {
			res = fail(emit, diagnose.Recovered(v), fmt.Sprintf("%s converter crashed: %v", c.Name(), v))
		}
	}()
	return c.Convert(src, emit)
}

// fail emits logMsg (or the diagnostic message when logMsg is empty) as an
// error and returns the failed result for d.
func fail(emit Emit, d *diagnose.Error, logMsg string) types.ConversionResult {
	if logMsg == "" {
		logMsg = d.Message
	}
	emit(types.SeverityError, logMsg)
	return failure(d)
}

func failure(d *diagnose.Error) types.ConversionResult {
	return types.ConversionResult{
		Success: false,
		Error:   d.Message,
		Kind:    d.Kind,
	}
}

// stamp renders the document heading and conversion timestamp line.
type stamp struct {
	now    func() time.Time
	layout string
}

func (s stamp) line() string {
	return "> Converted at " + s.now().Format(s.layout)
}

func (s stamp) header(title string) string {
	return "# " + title + "\n\n" + s.line() + "\n\n"
}
