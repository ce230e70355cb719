// SPDX-License-Identifier: MPL-2.0

// Package diagnostic defines the structured, non-fatal problem reports produced
// while loading application records and resolving menu documents.
//
// Diagnostics are returned to callers rather than written to stderr so the CLI
// layer owns the rendering policy.
package diagnostic

import (
	"errors"
	"fmt"
)

const (
	// SeverityWarning indicates a recoverable problem (missing optional resource).
	SeverityWarning Severity = "warning"
	// SeverityError indicates a branch of work was abandoned (e.g. a merge cycle).
	SeverityError Severity = "error"
)

const (
	// CodeKeyfileUnreadable reports a record file that could not be read.
	CodeKeyfileUnreadable Code = "keyfile_unreadable"
	// CodeAppDirUnreadable reports an application directory that could not be walked.
	CodeAppDirUnreadable Code = "app_dir_unreadable"
	// CodeAppRecordSkipped reports a desktop entry that was not registered.
	CodeAppRecordSkipped Code = "app_record_skipped"
	// CodeAppRecordShadowed reports a desktop entry hidden by an earlier directory.
	CodeAppRecordShadowed Code = "app_record_shadowed"
	// CodeDirectoryNotFound reports a <Directory> with no existing candidate.
	CodeDirectoryNotFound Code = "directory_not_found"
	// CodeMergeTargetMissing reports a <MergeFile>/<MergeDir> target that does not exist.
	CodeMergeTargetMissing Code = "merge_target_missing"
	// CodeMergeParseFailed reports a merged document that could not be parsed.
	CodeMergeParseFailed Code = "merge_parse_failed"
	// CodeMergeCycle reports a merge chain that points back to an open document.
	CodeMergeCycle Code = "merge_cycle"
	// CodeMergeDepthExceeded reports a merge chain deeper than the configured bound.
	CodeMergeDepthExceeded Code = "merge_depth_exceeded"
	// CodeUnknownElement reports a descriptor element that was ignored.
	CodeUnknownElement Code = "unknown_element"
)

var (
	// ErrInvalidSeverity is returned when a Severity value is not recognized.
	ErrInvalidSeverity = errors.New("invalid diagnostic severity")
	// ErrInvalidCode is returned when a Code value is not recognized.
	ErrInvalidCode = errors.New("invalid diagnostic code")

	knownCodes = map[Code]bool{
		CodeKeyfileUnreadable:  true,
		CodeAppDirUnreadable:   true,
		CodeAppRecordSkipped:   true,
		CodeAppRecordShadowed:  true,
		CodeDirectoryNotFound:  true,
		CodeMergeTargetMissing: true,
		CodeMergeParseFailed:   true,
		CodeMergeCycle:         true,
		CodeMergeDepthExceeded: true,
		CodeUnknownElement:     true,
	}
)

type (
	// Severity is the diagnostic level.
	Severity string

	// Code is a machine-readable diagnostic identifier.
	Code string

	// InvalidSeverityError is returned when a Severity value is not recognized.
	// It wraps ErrInvalidSeverity for errors.Is() compatibility.
	InvalidSeverityError struct {
		Value Severity
	}

	// InvalidCodeError is returned when a Code value is not recognized.
	// It wraps ErrInvalidCode for errors.Is() compatibility.
	InvalidCodeError struct {
		Value Code
	}

	// Diagnostic is one structured, non-fatal problem report.
	Diagnostic struct {
		// Severity is the diagnostic level (warning or error).
		Severity Severity
		// Code is a machine-readable identifier (e.g., "merge_cycle").
		Code Code
		// Message is the human-readable description.
		Message string
		// Path is the file path associated with this diagnostic (optional).
		Path string
		// Cause is the underlying error (optional, for programmatic inspection).
		Cause error
	}
)

// New creates a Diagnostic without a path.
func New(severity Severity, code Code, message string) Diagnostic {
	return Diagnostic{Severity: severity, Code: code, Message: message}
}

// Warnf creates a warning Diagnostic for path with a formatted message.
func Warnf(code Code, path, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Code: code, Path: path, Message: fmt.Sprintf(format, args...)}
}

// Errorf creates an error Diagnostic for path with a formatted message.
func Errorf(code Code, path, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityError, Code: code, Path: path, Message: fmt.Sprintf(format, args...)}
}

// WithCause returns a copy of d carrying err as its cause.
func (d Diagnostic) WithCause(err error) Diagnostic {
	d.Cause = err
	return d
}

// String renders the diagnostic on a single line.
func (d Diagnostic) String() string {
	if d.Path != "" {
		return fmt.Sprintf("%s [%s] %s: %s", d.Severity, d.Code, d.Path, d.Message)
	}
	return fmt.Sprintf("%s [%s] %s", d.Severity, d.Code, d.Message)
}

// HasErrors reports whether any diagnostic has SeverityError.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Filter returns the diagnostics carrying code, in order.
func Filter(diags []Diagnostic, code Code) []Diagnostic {
	var out []Diagnostic
	for _, d := range diags {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

// IsValid returns whether the Severity is one of the defined levels.
func (s Severity) IsValid() (bool, []error) {
	switch s {
	case SeverityWarning, SeverityError:
		return true, nil
	default:
		return false, []error{&InvalidSeverityError{Value: s}}
	}
}

// IsValid returns whether the Code is one of the defined identifiers.
func (c Code) IsValid() (bool, []error) {
	if knownCodes[c] {
		return true, nil
	}
	return false, []error{&InvalidCodeError{Value: c}}
}

// Error implements the error interface for InvalidSeverityError.
func (e *InvalidSeverityError) Error() string {
	return fmt.Sprintf("invalid diagnostic severity %q", e.Value)
}

// Unwrap returns ErrInvalidSeverity for errors.Is() compatibility.
func (e *InvalidSeverityError) Unwrap() error { return ErrInvalidSeverity }

// Error implements the error interface for InvalidCodeError.
func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid diagnostic code %q", e.Value)
}

// Unwrap returns ErrInvalidCode for errors.Is() compatibility.
func (e *InvalidCodeError) Unwrap() error { return ErrInvalidCode }
