package content

import (
	"fmt"
	"net/http"
)

// FailureKind tags why a resource could not be used.
type FailureKind int

const (
	// KindFetch covers transport errors, missing files and non-2xx responses.
	KindFetch FailureKind = iota + 1
	// KindParse covers malformed JSON or a document of the wrong shape.
	KindParse
)

func (k FailureKind) String() string {
	switch k {
	case KindFetch:
		return "fetch"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Failure is the tagged error recorded for a resource whose section is skipped.
type Failure struct {
	Resource Resource
	Kind     FailureKind
	Err      error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Kind, f.Resource.Path(), f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// StatusError reports a non-success HTTP response for a resource.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to load %s: %d %s", e.URL, e.Code, http.StatusText(e.Code))
}
