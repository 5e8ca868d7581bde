// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch runs conversions over a capacity-bounded queue of files.
//
// An Orchestrator holds up to MaxFiles inputs and converts them strictly in
// submission order. Each run owns a fresh event stream and result
// accumulator; a failing file never aborts the run.
package batch

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/barbaragodoy/markdowngo/internal/convert"
	"github.com/barbaragodoy/markdowngo/internal/detect"
	"github.com/barbaragodoy/markdowngo/internal/diagnose"
	"github.com/barbaragodoy/markdowngo/pkg/types"
)

// Separator joins the Markdown blocks of a batch.
const Separator = "\n\n---\n\n"

// File is one held input.
type File struct {
	Name string
	Data []byte
}

// FileResult records the outcome for one file of a run.
type FileResult struct {
	Name   string                 `json:"name" yaml:"name"`
	Format types.Format           `json:"format" yaml:"format"`
	Size   int                    `json:"size" yaml:"size"`
	Result types.ConversionResult `json:"result" yaml:"result"`
}

// Report is the outcome of a run, handed off whole when the run ends.
type Report struct {
	ID         string            `json:"id" yaml:"id"`
	Status     types.BatchStatus `json:"status" yaml:"status"`
	Markdown   string            `json:"markdown" yaml:"markdown"`
	Files      []FileResult      `json:"files" yaml:"files"`
	Events     []types.LogEvent  `json:"events" yaml:"events"`
	StartedAt  time.Time         `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time         `json:"finished_at" yaml:"finished_at"`
}

// Succeeded returns the number of files converted.
func (r Report) Succeeded() int {
	n := 0
	for _, f := range r.Files {
		if f.Result.Success {
			n++
		}
	}
	return n
}

// Failed returns the number of files that could not be converted.
func (r Report) Failed() int {
	return len(r.Files) - r.Succeeded()
}

// Total returns the number of files processed.
func (r Report) Total() int {
	return len(r.Files)
}

// HasFailures reports whether any file failed.
func (r Report) HasFailures() bool {
	return r.Failed() > 0
}

// Orchestrator holds files and converts them sequentially. It is not safe
// for concurrent use.
type Orchestrator struct {
	registry *convert.Registry
	maxFiles int
	now      func() time.Time
	newID    func() string
	held     []File
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithMaxFiles sets the capacity. Values below 1 keep the default.
func WithMaxFiles(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.maxFiles = n
		}
	}
}

// WithClock sets the clock that timestamps log events.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithIDGenerator sets the generator for log event and run ids.
func WithIDGenerator(newID func() string) Option {
	return func(o *Orchestrator) { o.newID = newID }
}

// New returns an empty Orchestrator dispatching through registry.
func New(registry *convert.Registry, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		registry: registry,
		maxFiles: types.DefaultMaxFiles,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// MaxFiles returns the capacity.
func (o *Orchestrator) MaxFiles() int { return o.maxFiles }

// Remaining returns the number of free slots.
func (o *Orchestrator) Remaining() int { return o.maxFiles - len(o.held) }

// Held returns a copy of the held files in submission order.
func (o *Orchestrator) Held() []File {
	out := make([]File, len(o.held))
	copy(out, o.held)
	return out
}

// Add appends files up to the remaining capacity and returns how many were
// admitted. Files beyond the capacity are dropped.
func (o *Orchestrator) Add(files ...File) int {
	n := min(len(files), o.Remaining())
	if n <= 0 {
		return 0
	}
	o.held = append(o.held, files[:n]...)
	return n
}

// Remove drops the first held file named name.
func (o *Orchestrator) Remove(name string) bool {
	for i, f := range o.held {
		if f.Name == name {
			o.held = append(o.held[:i], o.held[i+1:]...)
			return true
		}
	}
	return false
}

// Clear drops every held file.
func (o *Orchestrator) Clear() { o.held = nil }

// Run converts every held file in order. The held files are kept; callers
// Clear them when done.
func (o *Orchestrator) Run() Report {
	r := o.start()

	if len(o.held) == 0 {
		r.emit(types.SeverityWarning, "No files to convert")
		return r.finish(types.BatchEmpty)
	}

	var blocks []string
	for i, f := range o.held {
		fr := o.convertFile(r, f, i+1, len(o.held))
		r.report.Files = append(r.report.Files, fr)
		if fr.Result.Success {
			blocks = append(blocks, fr.Result.Markdown)
		}
	}
	r.report.Markdown = strings.Join(blocks, Separator)

	rep := r.report
	r.emit(types.SeverityInfo, fmt.Sprintf("Batch summary: %d converted, %d failed (total: %d)",
		rep.Succeeded(), rep.Failed(), rep.Total()))
	return r.finish(aggregate(rep.Succeeded(), rep.Failed()))
}

// ConvertFile converts f as a one-file run without touching the held files.
func (o *Orchestrator) ConvertFile(f File) Report {
	r := o.start()
	fr := o.convertFile(r, f, 1, 1)
	r.report.Files = []FileResult{fr}
	r.report.Markdown = fr.Result.Markdown
	return r.finish(aggregate(r.report.Succeeded(), r.report.Failed()))
}

// ConvertBase64 decodes payload and converts it as source.
func (o *Orchestrator) ConvertBase64(payload string, source types.SourceType) Report {
	r := o.start()
	r.emit(types.SeverityInfo, "Processing Base64 input")
	res := o.registry.Base64().Convert(payload, source, r.emit)
	return r.single("base64", res)
}

// ConvertText wraps pasted text as a Markdown document.
func (o *Orchestrator) ConvertText(text string) Report {
	r := o.start()
	r.emit(types.SeverityInfo, "Processing raw text input")
	res := o.registry.Text().Convert(text, r.emit)
	return r.single("text", res)
}

func (o *Orchestrator) start() *run {
	r := &run{now: o.now, newID: o.newID}
	r.report.ID = o.newID()
	r.report.StartedAt = o.now()
	return r
}

// convertFile detects the format of f, dispatches it, and records the
// outcome. Every log line is prefixed with the file name.
func (o *Orchestrator) convertFile(r *run, f File, index, total int) FileResult {
	flog := r.scoped(f.Name)
	flog.emit(types.SeverityInfo, fmt.Sprintf("Starting conversion (file %d of %d, %s)",
		index, total, FormatFileSize(len(f.Data))))

	format := detect.Detect(f.Name)
	flog.emit(types.SeverityInfo, "Detected file type: "+format.Label())

	var res types.ConversionResult
	switch c, ok := o.registry.Lookup(format); {
	case format == types.FormatBinary:
		res = failed(diagnose.PDF())
		res.Warnings = []string{diagnose.MsgScannedPDF}
	case !ok:
		res = failed(diagnose.Unsupported(detect.Extension(f.Name)))
	default:
		res = convert.Run(c, convert.Source{Name: f.Name, Data: f.Data}, flog.emit)
	}

	for _, w := range res.Warnings {
		flog.once(types.SeverityWarning, w)
	}
	if !res.Success {
		flog.once(types.SeverityError, res.Error)
	}

	return FileResult{Name: f.Name, Format: format, Size: len(f.Data), Result: res}
}

func failed(d *diagnose.Error) types.ConversionResult {
	return types.ConversionResult{Error: d.Message, Kind: d.Kind}
}

// aggregate derives the run status from per-file counts.
func aggregate(succeeded, failed int) types.BatchStatus {
	switch {
	case succeeded == 0 && failed == 0:
		return types.BatchEmpty
	case succeeded == 0:
		return types.BatchFailed
	case failed > 0:
		return types.BatchPartial
	default:
		return types.BatchSuccess
	}
}

// FormatFileSize renders n bytes with binary units and up to two decimals.
func FormatFileSize(n int) string {
	if n <= 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB", "GB"}
	v := float64(n)
	i := 0
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
	return s + " " + units[i]
}
