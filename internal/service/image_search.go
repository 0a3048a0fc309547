package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jjenkins/vinlookup/internal/model"
	"github.com/pkg/browser"
)

const imageSearchBase = "https://www.google.com/search?tbm=isch&q="

// URLOpener hands a URL to an external handler
type URLOpener interface {
	OpenURL(url string) error
}

// BrowserOpener opens URLs in the operating system's default browser
type BrowserOpener struct{}

// OpenURL implements URLOpener
func (BrowserOpener) OpenURL(u string) error {
	return browser.OpenURL(u)
}

// BuildImageSearchURL returns the Google Images URL for "{year} {make} {model}"
func BuildImageSearchURL(ref model.VehicleRef) (string, error) {
	if !ref.Complete() {
		return "", ErrImageSearchUnavailable
	}

	query := fmt.Sprintf("%s %s %s",
		strings.TrimSpace(ref.Year),
		strings.TrimSpace(ref.Make),
		strings.TrimSpace(ref.Model),
	)
	return imageSearchBase + escapeDataString(query), nil
}

// OpenImageSearch builds the image search URL for ref and opens it
func OpenImageSearch(opener URLOpener, ref model.VehicleRef) (string, error) {
	u, err := BuildImageSearchURL(ref)
	if err != nil {
		return "", err
	}
	if err := opener.OpenURL(u); err != nil {
		return u, &BrowserLaunchError{URL: u, Err: err}
	}
	return u, nil
}

// escapeDataString percent-encodes everything outside the RFC 3986 unreserved set
func escapeDataString(s string) string {
	// QueryEscape already encodes a literal '+' as %2B, so any '+' left is a space
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
