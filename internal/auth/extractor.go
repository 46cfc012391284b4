package auth

import (
	"net/http"
	"strings"
)

// HeaderAPIKey is the header carrying the caller's API key.
const HeaderAPIKey = "X-API-Key"

// Extractor extracts an API key from an HTTP request.
type Extractor interface {
	// Extract returns the API key carried by the request, or an empty
	// string when none is present.
	Extract(r *http.Request) string
}

// HeaderExtractor extracts API keys from an HTTP header.
type HeaderExtractor struct {
	header string
}

// NewHeaderExtractor creates a new header extractor. If header is empty,
// it defaults to X-API-Key.
func NewHeaderExtractor(header string) *HeaderExtractor {
	if header == "" {
		header = HeaderAPIKey
	}
	return &HeaderExtractor{header: header}
}

// Extract extracts the API key from the header.
func (e *HeaderExtractor) Extract(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(e.header))
}

// DefaultExtractor returns the extractor used by the service: the
// X-API-Key header.
func DefaultExtractor() Extractor {
	return NewHeaderExtractor(HeaderAPIKey)
}

// Ensure HeaderExtractor implements Extractor.
var _ Extractor = (*HeaderExtractor)(nil)
