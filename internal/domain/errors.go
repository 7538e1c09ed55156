package domain

import (
	"errors"
	"fmt"
)

// MinQueryLength is the shortest search term accepted, in runes, after trimming
const MinQueryLength = 3

// Sentinel errors for domain operations
var (
	// ErrQueryTooShort indicates the search term is empty or shorter than MinQueryLength
	ErrQueryTooShort = errors.New("search must not be empty and must contain at least 3 characters")

	// ErrMissingAPIKey indicates no API credential is configured
	ErrMissingAPIKey = errors.New("api key is not configured")
)

// ValidationError is returned when a query is rejected before any state change
type ValidationError struct {
	Query string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid query %q: %v", e.Query, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// FetchErrorKind classifies how a page fetch failed
type FetchErrorKind int

const (
	// ServerRejected means the server answered with an error status
	ServerRejected FetchErrorKind = iota + 1
	// NoResponse means the request was sent but no usable response arrived
	NoResponse
	// RequestSetupFailed means the request could not be built or sent
	RequestSetupFailed
)

func (k FetchErrorKind) String() string {
	switch k {
	case ServerRejected:
		return "server rejected"
	case NoResponse:
		return "no response"
	case RequestSetupFailed:
		return "request setup failed"
	default:
		return "unknown"
	}
}

// FetchError is the only error type returned by a PhotoSearcher
type FetchError struct {
	Kind       FetchErrorKind
	StatusCode int // set for ServerRejected
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == ServerRejected {
		return fmt.Sprintf("%s (status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// AsFetchError extracts a FetchError from err. Errors that are not already
// classified are reported as RequestSetupFailed.
func AsFetchError(err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return &FetchError{Kind: RequestSetupFailed, Err: err}
}
