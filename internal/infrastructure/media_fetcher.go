package infrastructure

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/yourusername/mediascraper-go/internal/domain"
)

// DefaultFilename is used when a target URL has no usable last segment
const DefaultFilename = "download"

// HTTPMediaFetcher fetches download targets over HTTP
type HTTPMediaFetcher struct {
	client *http.Client
}

// NewHTTPMediaFetcher creates a fetcher using client, or http.DefaultClient when nil
func NewHTTPMediaFetcher(client *http.Client) *HTTPMediaFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPMediaFetcher{client: client}
}

// Fetch issues a GET for target and returns the open body
func (f *HTTPMediaFetcher) Fetch(ctx context.Context, target string) (*domain.MediaFile, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("invalid download target: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported download scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("download target returned status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &domain.MediaFile{
		Body:          resp.Body,
		ContentType:   contentType,
		ContentLength: resp.ContentLength,
		Filename:      filenameFor(u, resp.Header.Get("Content-Disposition")),
	}, nil
}

func filenameFor(u *url.URL, disposition string) string {
	if disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil && params["filename"] != "" {
			return path.Base(params["filename"])
		}
	}

	name := path.Base(u.Path)
	if name == "." || name == "/" || strings.TrimSpace(name) == "" {
		return DefaultFilename
	}
	return name
}
