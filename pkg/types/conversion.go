// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the value types shared by the conversion engine, the
// orchestrator, and the CLI.
package types

import "time"

// Format is the closed classification of an input's structural kind, derived
// from its filename extension.
type Format string

const (
	FormatSpreadsheetModern Format = "spreadsheet-modern"
	FormatSpreadsheetLegacy Format = "spreadsheet-legacy"
	FormatWordProcessor     Format = "word-processor"
	FormatDelimitedText     Format = "delimited-text"
	FormatPlainText         Format = "plain-text"
	FormatBinary            Format = "binary"
	FormatUnknown           Format = "unknown"
)

// Label returns the short upper-case tag shown in log messages (e.g. "XLSX").
func (f Format) Label() string {
	switch f {
	case FormatSpreadsheetModern:
		return "XLSX"
	case FormatSpreadsheetLegacy:
		return "XLS"
	case FormatWordProcessor:
		return "DOCX"
	case FormatDelimitedText:
		return "CSV"
	case FormatPlainText:
		return "TXT"
	case FormatBinary:
		return "PDF"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether no converter exists for the format.
func (f Format) Terminal() bool {
	return f == FormatBinary || f == FormatUnknown
}

// Severity tags a LogEvent.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// LogEvent is one timestamped message describing a step or outcome of a
// conversion run. ID and Timestamp are assigned at emission time by the run
// that owns the stream.
type LogEvent struct {
	ID        string    `json:"id" yaml:"id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Severity  Severity  `json:"severity" yaml:"severity"`
	Message   string    `json:"message" yaml:"message"`
}

// ErrorKind is the closed taxonomy of user-facing failure classes.
type ErrorKind string

const (
	ErrorNone        ErrorKind = ""
	ErrorEmpty       ErrorKind = "empty"
	ErrorMalformed   ErrorKind = "malformed"
	ErrorEncoding    ErrorKind = "encoding"
	ErrorUnsupported ErrorKind = "unsupported"
	ErrorInternal    ErrorKind = "internal"
)

// ConversionResult is the outcome of one conversion. When Success is false
// Markdown is empty and Error carries the translated message.
type ConversionResult struct {
	Success  bool      `json:"success" yaml:"success"`
	Markdown string    `json:"markdown" yaml:"markdown"`
	Error    string    `json:"error,omitempty" yaml:"error,omitempty"`
	Kind     ErrorKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Warnings []string  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// TabularData is a header row plus body rows. Rows are projected onto
// len(Headers) columns when rendered.
type TabularData struct {
	Headers []string
	Rows    [][]string
}

// SourceType is the declared origin of a Base64 payload.
type SourceType string

const (
	SourcePDF     SourceType = "pdf"
	SourceDOCX    SourceType = "docx"
	SourceXLSX    SourceType = "xlsx"
	SourceCSV     SourceType = "csv"
	SourceGeneric SourceType = "generic"
)

// SourceTypes lists the accepted SourceType values.
var SourceTypes = []SourceType{SourcePDF, SourceDOCX, SourceXLSX, SourceCSV, SourceGeneric}

// ParseSourceType maps a tag to a SourceType. Unknown or empty tags yield
// SourceGeneric.
func ParseSourceType(s string) SourceType {
	for _, st := range SourceTypes {
		if string(st) == s {
			return st
		}
	}
	return SourceGeneric
}

// BatchStatus is the aggregate outcome of a run.
type BatchStatus string

const (
	BatchSuccess BatchStatus = "success"
	BatchPartial BatchStatus = "partial"
	BatchFailed  BatchStatus = "failed"
	BatchEmpty   BatchStatus = "empty"
)
