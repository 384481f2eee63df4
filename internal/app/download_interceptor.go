package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yourusername/mediascraper-go/internal/domain"
	"github.com/yourusername/mediascraper-go/pkg/logger"
)

// DownloadInterceptor handles clicks on flagged download links by fetching
// the target as binary so the browser can save it
type DownloadInterceptor struct {
	fetcher     domain.MediaFetcher
	cards       domain.CardRepository
	sessions    *SessionStore
	logger      *zap.Logger
	multiLogger *logger.MultiLogger
}

// NewDownloadInterceptor creates a new download interceptor
func NewDownloadInterceptor(
	fetcher domain.MediaFetcher,
	cards domain.CardRepository,
	sessions *SessionStore,
	logger *zap.Logger,
	multiLogger *logger.MultiLogger,
) *DownloadInterceptor {
	return &DownloadInterceptor{
		fetcher:     fetcher,
		cards:       cards,
		sessions:    sessions,
		logger:      logger,
		multiLogger: multiLogger,
	}
}

// Intercept fetches target for the session. Only targets linked from one
// of the session's own cards are fetched; anything else fails with
// ErrDownloadNotOffered and leaves the session untouched. Otherwise
// success and failure end the same way on the status line: "Downloading"
// with the indicator hidden. The caller owns the returned file body.
func (d *DownloadInterceptor) Intercept(ctx context.Context, sessionID, target string) (*domain.MediaFile, error) {
	offered, err := d.offered(sessionID, target)
	if err != nil {
		return nil, err
	}
	if !offered {
		d.logger.Warn("Download target not on board",
			zap.String("session", sessionID),
			zap.String("target", target))
		if d.multiLogger != nil {
			d.multiLogger.LogDownloadEvent("download_rejected",
				zap.String("session", sessionID),
				zap.String("target", target))
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrDownloadNotOffered, target)
	}

	state := d.sessions.Get(sessionID)
	state.startLoading(domain.StatusLoading, domain.ColorError)

	file, err := d.fetcher.Fetch(ctx, target)
	state.finish(domain.StatusDownloading, "")

	if err != nil {
		d.logger.Warn("Download fetch failed",
			zap.String("session", sessionID),
			zap.String("target", target),
			zap.Error(err))
		if d.multiLogger != nil {
			d.multiLogger.LogDownloadEvent("download_failed",
				zap.String("session", sessionID),
				zap.String("target", target),
				zap.Error(err))
		}
		return nil, err
	}

	if d.multiLogger != nil {
		d.multiLogger.LogDownloadEvent("download_served",
			zap.String("session", sessionID),
			zap.String("target", target),
			zap.String("filename", file.Filename),
			zap.Int64("size", file.ContentLength))
	}
	return file, nil
}

func (d *DownloadInterceptor) offered(sessionID, target string) (bool, error) {
	cards, err := d.cards.FindBySession(sessionID)
	if err != nil {
		return false, fmt.Errorf("failed to load board for session %s: %w", sessionID, err)
	}
	for _, card := range cards {
		if card.OffersDownload(target) {
			return true, nil
		}
	}
	return false, nil
}
