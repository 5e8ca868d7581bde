// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"time"

	"github.com/barbaragodoy/markdowngo/pkg/types"
)

// run accumulates the events and results of one conversion run.
type run struct {
	now    func() time.Time
	newID  func() string
	report Report
}

func (r *run) emit(severity types.Severity, message string) {
	r.report.Events = append(r.report.Events, types.LogEvent{
		ID:        r.newID(),
		Timestamp: r.now(),
		Severity:  severity,
		Message:   message,
	})
}

func (r *run) finish(status types.BatchStatus) Report {
	r.report.Status = status
	r.report.FinishedAt = r.now()
	return r.report
}

// single finishes a run over one non-file input.
func (r *run) single(name string, res types.ConversionResult) Report {
	for _, w := range res.Warnings {
		r.onceIn(0, types.SeverityWarning, w)
	}
	r.report.Files = []FileResult{{Name: name, Result: res}}
	r.report.Markdown = res.Markdown
	return r.finish(aggregate(r.report.Succeeded(), r.report.Failed()))
}

// onceIn emits message unless an event with the same severity and message
// was emitted at or after index from.
func (r *run) onceIn(from int, severity types.Severity, message string) {
	for _, e := range r.report.Events[from:] {
		if e.Severity == severity && e.Message == message {
			return
		}
	}
	r.emit(severity, message)
}

// fileLog prefixes every message with the file name.
type fileLog struct {
	run    *run
	prefix string
	from   int
}

func (r *run) scoped(name string) *fileLog {
	return &fileLog{run: r, prefix: "[" + name + "] ", from: len(r.report.Events)}
}

func (l *fileLog) emit(severity types.Severity, message string) {
	l.run.emit(severity, l.prefix+message)
}

// once emits message unless the file already logged it.
func (l *fileLog) once(severity types.Severity, message string) {
	l.run.onceIn(l.from, severity, l.prefix+message)
}
