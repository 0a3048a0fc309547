package service

import (
	"errors"
	"fmt"

	"github.com/jjenkins/vinlookup/internal/vin"
)

var (
	// ErrNoResults is returned when the API does not recognize the VIN
	ErrNoResults = errors.New("no results found")

	// ErrImageSearchUnavailable is returned when make, model or year is missing
	ErrImageSearchUnavailable = errors.New("missing vehicle data for image search")

	// ErrSuperseded is returned by a search that was replaced by a newer one
	ErrSuperseded = errors.New("search superseded by a newer search")
)

// RequestError wraps a network, status or decoding failure of a decode request
type RequestError struct {
	Detail string
	Err    error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: %s", e.Detail)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// BrowserLaunchError wraps a failure to hand a URL to the default browser
type BrowserLaunchError struct {
	URL string
	Err error
}

func (e *BrowserLaunchError) Error() string {
	return fmt.Sprintf("failed to open %s: %v", e.URL, e.Err)
}

func (e *BrowserLaunchError) Unwrap() error {
	return e.Err
}

// UserMessage renders err as the short message shown next to the results
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var reqErr *RequestError
	var launchErr *BrowserLaunchError

	switch {
	case errors.Is(err, vin.ErrInvalidLength):
		return "Invalid VIN. Must be 17 characters."
	case errors.Is(err, ErrNoResults):
		return "No results found."
	case errors.Is(err, ErrImageSearchUnavailable):
		return "Missing vehicle data for image search."
	case errors.As(err, &reqErr):
		return "Error: " + reqErr.Detail
	case errors.As(err, &launchErr):
		return "Failed to open browser: " + launchErr.Err.Error()
	default:
		return "Error: " + err.Error()
	}
}
