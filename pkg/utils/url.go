package utils

import (
	"errors"
	"net/url"
	"strings"
)

var ErrInvalidURL = errors.New("invalid URL format")

// ParseHTTPURL parses rawURL and requires an absolute http or https URL with a host.
func ParseHTTPURL(rawURL string) (*url.URL, error) {
	u, err := url.ParseRequestURI(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, ErrInvalidURL
	}
	if u.Host == "" {
		return nil, ErrInvalidURL
	}
	return u, nil
}

// IsHTTPURL reports whether rawURL is an absolute http or https URL.
func IsHTTPURL(rawURL string) bool {
	_, err := ParseHTTPURL(rawURL)
	return err == nil
}
