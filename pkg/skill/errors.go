package skill

import (
	"errors"
	"fmt"
)

// ErrSignatureMismatch is returned when an import document carries a
// signature tag other than the one the target collection expects. The whole
// import is rejected.
var ErrSignatureMismatch = errors.New("signature mismatch")

// NotFoundError is returned when no upstream record matches a reference.
// Batch operations count it as "skipped".
type NotFoundError struct {
	Ref string
}

func (e NotFoundError) Error() string {
	if e.Ref == "" {
		return "skill not found"
	}

	return "skill not found: " + e.Ref
}

// UpstreamError is returned when an external source is unreachable, answers
// with a non-2xx status or returns a body of the wrong shape.
type UpstreamError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s unavailable (HTTP %d): %v", e.Source, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s unavailable (HTTP %d)", e.Source, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s unavailable: %v", e.Source, e.Err)
	default:
		return e.Source + " unavailable"
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// ValidationError describes a malformed record, document or input value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return "invalid: " + e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// IsUpstream reports whether err is, or wraps, an UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
