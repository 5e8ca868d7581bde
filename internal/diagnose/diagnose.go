// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package diagnose maps low-level conversion failures onto the closed set of
// user-facing diagnostics: empty input, malformed container, invalid
// encoding, unsupported format, and unclassified internal faults.
package diagnose

import (
	"errors"
	"fmt"
	"strings"

	"github.com/barbaragodoy/markdowngo/pkg/types"
)

// Sentinel errors, one per classified kind. An *Error matches the sentinel
// of its kind under errors.Is.
var (
	ErrEmpty       = errors.New("no content")
	ErrMalformed   = errors.New("malformed container")
	ErrEncoding    = errors.New("invalid encoding")
	ErrUnsupported = errors.New("unsupported format")
)

const (
	// MsgPDF is returned for every PDF input on the file path.
	MsgPDF = "PDF conversion requires special processing. Please use the Base64 data input for PDFs."

	// MsgScannedPDF accompanies MsgPDF as a warning.
	MsgScannedPDF = "Scanned PDFs may have limited text extraction."

	// MsgInvalidBase64 is returned when a payload is outside the Base64 alphabet.
	MsgInvalidBase64 = "The provided text is not valid Base64. Check that the data is correct."

	// MsgBase64Decode is returned when a payload passes validation but cannot be decoded.
	MsgBase64Decode = "Decoding failed. Check that the Base64 data is complete and correct."

	acceptedFormats = "Excel (.xlsx, .xls), Word (.docx), CSV (.csv), TXT (.txt)"
)

var defaultMessages = map[types.ErrorKind]string{
	types.ErrorEmpty:       "The input has no content to convert.",
	types.ErrorMalformed:   "The file is corrupted or in an invalid format.",
	types.ErrorEncoding:    "Encoding error. The file may use unsupported characters.",
	types.ErrorUnsupported: "Unsupported file format. Accepted formats: " + acceptedFormats + ".",
	types.ErrorInternal:    "An unknown error occurred during processing.",
}

var sentinels = map[types.ErrorKind]error{
	types.ErrorEmpty:       ErrEmpty,
	types.ErrorMalformed:   ErrMalformed,
	types.ErrorEncoding:    ErrEncoding,
	types.ErrorUnsupported: ErrUnsupported,
}

// Error is a classified failure. Message is the text shown to users; Err is
// the underlying cause, if any.
type Error struct {
	Kind    types.ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Kind]
	return ok && s == target
}

// New returns a classified error with message. An empty message selects the
// default message for kind.
func New(kind types.ErrorKind, message string) *Error {
	if message == "" {
		message = Message(kind)
	}
	return &Error{Kind: kind, Message: message}
}

// Wrap is New with an underlying cause.
func Wrap(kind types.ErrorKind, err error, message string) *Error {
	e := New(kind, message)
	e.Err = err
	return e
}

// Message returns the default user-facing message for kind.
func Message(kind types.ErrorKind) string {
	if m, ok := defaultMessages[kind]; ok {
		return m
	}
	return defaultMessages[types.ErrorInternal]
}

// Unsupported returns the diagnostic for a file extension with no converter.
func Unsupported(ext string) *Error {
	format := "." + ext
	if ext == "" {
		format = "(no extension)"
	}
	return New(types.ErrorUnsupported, fmt.Sprintf(
		"Unsupported file format: %s. Accepted formats: %s.", format, acceptedFormats))
}

// PDF returns the fixed diagnostic for PDF files.
func PDF() *Error {
	return New(types.ErrorUnsupported, MsgPDF)
}

// Recovered classifies a value recovered from a panic as an internal fault.
func Recovered(v any) *Error {
	if err, ok := v.(error); ok {
		return Classify(err)
	}
	return New(types.ErrorInternal, fmt.Sprintf("Error while processing: %v", v))
}

// Classify maps err onto the taxonomy. A classified *Error anywhere in the
// chain is returned as is; sentinel errors get their kind's default
// message; anything else is matched against known message fragments and
// finally surfaced verbatim as an internal fault.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var de *Error
	if errors.As(err, &de) {
		return de
	}

	for kind, s := range sentinels {
		if errors.Is(err, s) {
			return Wrap(kind, err, "")
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "corrupt", "invalid", "zip:", "not a valid", "unexpected eof", "unsupported workbook"):
		return Wrap(types.ErrorMalformed, err, "")
	case containsAny(msg, "encoding", "charset"):
		return Wrap(types.ErrorEncoding, err, "")
	}

	return Wrap(types.ErrorInternal, err, "Error while processing: "+err.Error())
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
