// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import "fmt"

// ErrorKind classifies an API failure. Network, rate-limit, and server
// errors are absorbed by the client's retry loop and only surface as
// KindExhausted once the attempt budget is spent; the remaining kinds
// are terminal on first occurrence.
type ErrorKind int

const (
	// KindNetwork is a transport-level failure (retryable).
	KindNetwork ErrorKind = iota

	// KindRateLimited is an HTTP 429 (retryable, honors Retry-After).
	KindRateLimited

	// KindServer is an HTTP 5xx (retryable).
	KindServer

	// KindBadResponse is a 200 with a non-JSON body. Not retried:
	// repeating the call will not fix a parsing mismatch.
	KindBadResponse

	// KindHTTPStatus is any other non-200 status (terminal).
	KindHTTPStatus

	// KindExhausted means the retry budget was consumed without a
	// successful response.
	KindExhausted
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindRateLimited:
		return "rate_limited"
	case KindServer:
		return "server"
	case KindBadResponse:
		return "bad_response"
	case KindHTTPStatus:
		return "http_status"
	case KindExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// APIError is a terminal register API failure.
type APIError struct {
	Kind   ErrorKind
	Status int
	Err    error
}

func (e *APIError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("register API %s: %v", e.Kind, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("register API %s: HTTP %d", e.Kind, e.Status)
	default:
		return fmt.Sprintf("register API %s", e.Kind)
	}
}

func (e *APIError) Unwrap() error { return e.Err }
