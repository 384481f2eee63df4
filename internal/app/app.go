package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/yourusername/mediascraper-go/internal/domain"
	"github.com/yourusername/mediascraper-go/internal/render"
	"github.com/yourusername/mediascraper-go/pkg/logger"
)

// App is the application state shared by every handler
type App struct {
	Config    *domain.Config
	Sessions  *SessionStore
	View      *ViewController
	Labels    *LabelCycler
	Submitter *SubmitController
	Downloads *DownloadInterceptor
	Cards     domain.CardRepository
}

// New wires the controllers around the given collaborators. multiLog may be nil.
func New(
	config *domain.Config,
	client domain.ScrapeClient,
	fetcher domain.MediaFetcher,
	cards domain.CardRepository,
	log *zap.Logger,
	multiLog *logger.MultiLogger,
) *App {
	view := NewViewController(&config.View)
	sessions := NewSessionStore(view.DefaultSection())
	relay := render.NewRelay(config.Relay.BaseURL)

	return &App{
		Config:    config,
		Sessions:  sessions,
		View:      view,
		Labels:    NewLabelCycler(config.View.LabelInterval, config.View.LabelFade),
		Submitter: NewSubmitController(client, cards, sessions, view, relay, log, multiLog),
		Downloads: NewDownloadInterceptor(fetcher, cards, sessions, log, multiLog),
		Cards:     cards,
	}
}

// Snapshot returns a session's state together with its board. Reading an
// unknown session does not create it.
func (a *App) Snapshot(sessionID string) (domain.SessionSnapshot, error) {
	snap := a.Sessions.Snapshot(sessionID)
	cards, err := a.Cards.FindBySession(sessionID)
	if err != nil {
		return snap, fmt.Errorf("failed to load board for session %s: %w", sessionID, err)
	}
	snap.Cards = cards
	return snap, nil
}
