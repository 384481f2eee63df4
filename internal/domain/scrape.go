package domain

import (
	"context"
	"encoding/json"
	"io"

	"github.com/tidwall/gjson"
)

// Platform represents the network a scraped post originated from
type Platform string

const (
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
)

// ScrapeRequest is the body sent to the scraping backend
type ScrapeRequest struct {
	URL string `json:"url"`
	Cut bool   `json:"cut"`
}

// ScrapeResult is the backend response. Data is kept raw so that the key
// order of every nested object survives until rendering.
type ScrapeResult struct {
	Success bool            `json:"success"`
	Error   bool            `json:"error"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Payload returns the platform payload, or an empty result when absent
func (r *ScrapeResult) Payload() gjson.Result {
	if len(r.Data) == 0 {
		return gjson.Result{}
	}
	return gjson.ParseBytes(r.Data)
}

// Platform returns the payload's platform tag
func (r *ScrapeResult) Platform() Platform {
	return Platform(r.Payload().Get("platform").String())
}

// ScrapeClient resolves a post URL through the scraping backend
type ScrapeClient interface {
	Scrape(ctx context.Context, url string) (*ScrapeResult, error)
}

// MediaFile is a fetched binary ready to be handed to the browser
type MediaFile struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
	Filename      string
}

// MediaFetcher fetches a remote media file as binary
type MediaFetcher interface {
	Fetch(ctx context.Context, target string) (*MediaFile, error)
}
