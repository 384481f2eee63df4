package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/yourusername/mediascraper-go/internal/domain"
)

// maxScrapeResponse caps how much of a backend response is read
const maxScrapeResponse = 16 << 20

// HTTPScrapeClient calls the scraping backend's POST /api/ endpoint
type HTTPScrapeClient struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// NewHTTPScrapeClient creates a client for the backend at config.BaseURL
func NewHTTPScrapeClient(config *domain.BackendConfig, logger *zap.Logger) *HTTPScrapeClient {
	return &HTTPScrapeClient{
		endpoint: strings.TrimRight(config.BaseURL, "/") + "/api/",
		client:   &http.Client{Timeout: config.Timeout},
		logger:   logger,
	}
}

// Scrape sends url with cut=true and decodes the response envelope.
// The backend reports failures in the body, so the HTTP status is only
// logged.
func (c *HTTPScrapeClient) Scrape(ctx context.Context, url string) (*domain.ScrapeResult, error) {
	body, err := json.Marshal(domain.ScrapeRequest{URL: url, Cut: true})
	if err != nil {
		return nil, fmt.Errorf("failed to encode scrape request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create scrape request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scrape request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxScrapeResponse))
	if err != nil {
		return nil, fmt.Errorf("failed to read scrape response: %w", err)
	}

	var result domain.ScrapeResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode scrape response (status %d): %w", resp.StatusCode, err)
	}

	c.logger.Debug("Scrape response",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Bool("success", result.Success),
		zap.Bool("error", result.Error))

	return &result, nil
}
