// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

// Package fathomerr defines the closed set of error kinds used across the
// pipeline stages.
//
// Every stage follows the same failure policy: log at the failure site, wrap
// the cause exactly once with the stage name and a kind, and propagate. The
// binaries translate any error into a non-zero exit; there are no retries and
// no per-kind recovery paths. The kind exists so callers and tests can tell
// connection failures, data-format problems, and missing records apart
// without string matching.
package fathomerr

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline error.
type Kind int

const (
	// KindUnknown is the zero value for errors that carry no classification.
	KindUnknown Kind = iota

	// KindConnection marks failures reaching an external resource: the
	// relational source, the feature store, or the filesystem.
	KindConnection

	// KindDataFormat marks malformed rows, missing columns, and
	// unparseable values.
	KindDataFormat

	// KindNotFound marks a lookup for a record that does not exist.
	KindNotFound
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindDataFormat:
		return "data_format"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is a classified, stage-tagged pipeline error.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Stage names the pipeline stage that failed (e.g. "processing/load").
	Stage string

	// Err is the wrapped cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Stage == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Kind, e.Err)
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err with a kind and a stage tag. It returns nil when err is nil
// so call sites can wrap unconditionally.
func New(kind Kind, stage string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Stage: stage, Err: err}
}

// Newf wraps a formatted message as a classified error.
func Newf(kind Kind, stage, format string, args ...any) error {
	return &Error{Kind: kind, Stage: stage, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the kind from err, unwrapping as needed.
// Unclassified errors report KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind anywhere in its chain.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
