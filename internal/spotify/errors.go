package spotify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"
)

// Error kinds. Match them with errors.Is.
var (
	// ErrUnauthorized means the credentials or token were rejected.
	ErrUnauthorized = errors.New("spotify: credentials rejected")

	// ErrTimeout means the request did not finish within its deadline.
	ErrTimeout = errors.New("spotify: request timed out")

	// ErrUnavailable covers network failures, server errors and malformed responses.
	ErrUnavailable = errors.New("spotify: service unavailable")
)

// RequestError reports a failed Web API request along with its kind.
type RequestError struct {
	Op   string
	Kind error
	Err  error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Is matches the error kind.
func (e *RequestError) Is(target error) bool {
	return target == e.Kind
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func newRequestError(op string, err error) error {
	return &RequestError{Op: op, Kind: classify(err), Err: err}
}

// classify maps a raw client error onto one of the error kinds.
func classify(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		if retrieveErr.Response != nil && retrieveErr.Response.StatusCode >= http.StatusInternalServerError {
			return ErrUnavailable
		}
		return ErrUnauthorized
	}

	if status, ok := apiStatus(err); ok {
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			return ErrUnauthorized
		}
		return ErrUnavailable
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}

	return ErrUnavailable
}

// apiStatus extracts the HTTP status from a Web API error response.
func apiStatus(err error) (int, bool) {
	var apiErr spotify.Error
	if errors.As(err, &apiErr) {
		return apiErr.Status, true
	}
	var apiErrPtr *spotify.Error
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Status, true
	}
	return 0, false
}
