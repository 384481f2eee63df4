package render

import (
	"net/url"
	"strings"
)

// Relay wraps third-party media URLs so they load through a CORS relay
type Relay struct {
	baseURL string
}

// NewRelay creates a relay for the given base URL, e.g. https://api.cors.lol
func NewRelay(baseURL string) Relay {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL != "" && !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}
	return Relay{baseURL: baseURL}
}

// Wrap returns the relayed form of raw. Empty input stays empty.
func (r Relay) Wrap(raw string) string {
	if raw == "" {
		return ""
	}
	return r.baseURL + "/?url=" + url.QueryEscape(raw)
}
