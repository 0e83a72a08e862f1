package spec

import "errors"

// ErrorCode categorizes corpus errors for clearer handling and messaging.
type ErrorCode string

const (
	// SpecNotFound: a requested operationId exists nowhere in the corpus.
	// Fatal for that id only; a batch may continue with the remaining ids.
	SpecNotFound ErrorCode = "SpecNotFound"
	// ReferenceNotFound: a $ref points at a definition that does not exist.
	// Fatal for the whole run.
	ReferenceNotFound ErrorCode = "ReferenceNotFound"
	// MalformedReference: a $ref string matches none of the supported
	// shapes. Fatal for the whole run.
	MalformedReference ErrorCode = "MalformedReference"
	// ExternalResourceUnavailable: a referenced external parameter file is
	// missing or unreadable. The affected parameter is dropped with a
	// warning and generation proceeds.
	ExternalResourceUnavailable ErrorCode = "ExternalResourceUnavailable"
	// IOFailure: a spec file could not be read or parsed during the walk.
	// That file is skipped and the walk continues.
	IOFailure ErrorCode = "IOFailure"
)

// CorpusError is a structured error carrying the file and reference that
// produced it.
type CorpusError struct {
	Code    ErrorCode
	Message string
	File    string
	Ref     string
	Cause   error
}

func (e *CorpusError) Error() string { return e.Message }
func (e *CorpusError) Unwrap() error { return e.Cause }

// CodeOf extracts the ErrorCode from err, or "" when err is not a
// CorpusError.
func CodeOf(err error) ErrorCode {
	var ce *CorpusError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// IsFatal reports whether err must abort the whole generation run. Fatal
// errors mean the generator would otherwise emit silently-wrong code.
func IsFatal(err error) bool {
	switch CodeOf(err) {
	case ReferenceNotFound, MalformedReference:
		return true
	case SpecNotFound, ExternalResourceUnavailable, IOFailure:
		return false
	}
	return err != nil
}
