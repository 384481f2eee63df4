package app

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/yourusername/mediascraper-go/internal/domain"
	"github.com/yourusername/mediascraper-go/internal/render"
	"github.com/yourusername/mediascraper-go/pkg/logger"
)

// Submission is one in-flight request to the scraping backend
type Submission struct {
	URL       string
	SessionID string

	done   chan struct{}
	result *domain.ScrapeResult
	err    error
}

// Done is closed once the response has been handled
func (s *Submission) Done() <-chan struct{} {
	return s.done
}

// Result returns the backend response and any transport or render error.
// It must only be called after Done is closed.
func (s *Submission) Result() (*domain.ScrapeResult, error) {
	return s.result, s.err
}

// SubmitController sends URLs to the scraping backend and renders the
// responses onto the submitting session's board
type SubmitController struct {
	client      domain.ScrapeClient
	cards       domain.CardRepository
	sessions    *SessionStore
	view        *ViewController
	relay       render.Relay
	logger      *zap.Logger
	multiLogger *logger.MultiLogger
	inflight    sync.WaitGroup
}

// NewSubmitController creates a new submit controller
func NewSubmitController(
	client domain.ScrapeClient,
	cards domain.CardRepository,
	sessions *SessionStore,
	view *ViewController,
	relay render.Relay,
	logger *zap.Logger,
	multiLogger *logger.MultiLogger,
) *SubmitController {
	return &SubmitController{
		client:      client,
		cards:       cards,
		sessions:    sessions,
		view:        view,
		relay:       relay,
		logger:      logger,
		multiLogger: multiLogger,
	}
}

// Submit switches the session to the results section, shows the loading
// indicator and fires the backend request without waiting for it.
// Overlapping submissions are neither merged nor dropped.
func (sc *SubmitController) Submit(ctx context.Context, sessionID, url string) *Submission {
	state := sc.sessions.Get(sessionID)
	if err := sc.view.Activate(state, sc.view.ResultsSection()); err != nil {
		sc.logger.Warn("Results section missing from page", zap.Error(err))
	}
	state.startLoading(domain.StatusLoading, domain.ColorIdle)

	sub := &Submission{
		URL:       url,
		SessionID: sessionID,
		done:      make(chan struct{}),
	}

	if sc.multiLogger != nil {
		sc.multiLogger.LogSubmitEvent("submit_started",
			zap.String("session", sessionID),
			zap.String("url", url))
	}

	sc.inflight.Add(1)
	go sc.run(ctx, state, sub)
	return sub
}

// Wait blocks until every in-flight submission has been handled
func (sc *SubmitController) Wait() {
	sc.inflight.Wait()
}

func (sc *SubmitController) run(ctx context.Context, state *SessionState, sub *Submission) {
	defer sc.inflight.Done()
	defer close(sub.done)

	result, err := sc.client.Scrape(ctx, sub.URL)
	if err != nil {
		// The indicator and status text are left as they are.
		sub.err = err
		sc.logger.Error("Scrape request failed",
			zap.String("session", sub.SessionID),
			zap.String("url", sub.URL),
			zap.Error(err))
		if sc.multiLogger != nil {
			sc.multiLogger.LogAppError("Scrape request failed",
				zap.String("session", sub.SessionID),
				zap.String("url", sub.URL),
				zap.Error(err))
		}
		return
	}
	sub.result = result

	state.finish(result.Message, statusColor(result))

	if result.Error {
		sc.logEvent("submit_rejected", sub, zap.String("message", result.Message))
		return
	}
	if !result.Success {
		return
	}

	platform := result.Platform()
	profile, ok := render.ProfileFor(platform)
	if !ok {
		sc.logger.Debug("No renderer for platform",
			zap.String("platform", string(platform)),
			zap.String("url", sub.URL))
		return
	}

	board := &sessionBoard{cards: sc.cards, sessionID: sub.SessionID}
	manager := render.NewContentManager(profile, sc.relay, board)
	if err := manager.Render(result.Payload()); err != nil {
		sub.err = fmt.Errorf("failed to render %s payload: %w", platform, err)
		sc.logger.Error("Render failed",
			zap.String("session", sub.SessionID),
			zap.String("platform", string(platform)),
			zap.Error(err))
		if sc.multiLogger != nil {
			sc.multiLogger.LogAppError("Render failed",
				zap.String("session", sub.SessionID),
				zap.String("platform", string(platform)),
				zap.Error(err))
		}
		return
	}

	sc.logEvent("submit_rendered", sub,
		zap.String("platform", string(platform)),
		zap.Int("cards", board.inserted))
}

func (sc *SubmitController) logEvent(event string, sub *Submission, fields ...zap.Field) {
	if sc.multiLogger == nil {
		return
	}
	fields = append([]zap.Field{
		zap.String("session", sub.SessionID),
		zap.String("url", sub.URL),
	}, fields...)
	sc.multiLogger.LogSubmitEvent(event, fields...)
}

func statusColor(result *domain.ScrapeResult) string {
	switch {
	case result.Error:
		return domain.ColorError
	case result.Success:
		return domain.ColorSuccess
	default:
		return ""
	}
}

// sessionBoard stamps cards with their session before storing them
type sessionBoard struct {
	cards     domain.CardRepository
	sessionID string
	inserted  int
}

func (b *sessionBoard) Insert(card *domain.Card) error {
	card.SessionID = b.sessionID
	if err := b.cards.Insert(card); err != nil {
		return err
	}
	b.inserted++
	return nil
}
