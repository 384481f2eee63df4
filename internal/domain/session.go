package domain

import "errors"

var (
	// ErrMalformedPayload is returned when a payload lacks a section its renderer needs
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrUnknownSection is returned when activating a section the page does not have
	ErrUnknownSection = errors.New("unknown section")

	// ErrDownloadNotOffered is returned for a download target no card of the session links to
	ErrDownloadNotOffered = errors.New("download not offered")
)

// Status line colors
const (
	ColorIdle    = "grey"
	ColorError   = "red"
	ColorSuccess = "#00faff"
)

// Status line texts set by the controllers themselves
const (
	StatusLoading     = "Loading"
	StatusDownloading = "Downloading"
)

// SessionSnapshot is a point-in-time copy of one visitor's page state
type SessionSnapshot struct {
	SessionID     string  `json:"session_id"`
	ActiveSection string  `json:"active_section"`
	StatusText    string  `json:"status_text"`
	StatusColor   string  `json:"status_color"`
	Loading       bool    `json:"loading"`
	LoadingColor  string  `json:"loading_color"`
	Cards         []*Card `json:"cards,omitempty"`
}
