package extract

import (
	"errors"
	"strings"
)

// Kind discriminates resolution faults.
type Kind int

const (
	// Failed covers network errors, tool crashes and anything unrecognized.
	Failed Kind = iota
	// Unavailable means the site answered but the post has no video.
	Unavailable
)

func (k Kind) String() string {
	switch k {
	case Unavailable:
		return "unavailable"
	default:
		return "failed"
	}
}

// ResolveError is the fault returned by resolvers.
type ResolveError struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *ResolveError) Error() string {
	return e.Detail
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// classify builds a ResolveError from a resolver message. Messages that say the
// video is unavailable or that the post is not a video are Unavailable.
func classify(detail string, err error) *ResolveError {
	kind := Failed
	if strings.Contains(detail, "Video unavailable") || strings.Contains(strings.ToLower(detail), "not a video") {
		kind = Unavailable
	}
	return &ResolveError{Kind: kind, Detail: detail, Err: err}
}

// failed wraps err as a Failed fault.
func failed(err error) *ResolveError {
	return &ResolveError{Kind: Failed, Detail: err.Error(), Err: err}
}

// IsUnavailable reports whether err is an Unavailable fault.
func IsUnavailable(err error) bool {
	var re *ResolveError
	return errors.As(err, &re) && re.Kind == Unavailable
}
