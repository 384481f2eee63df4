package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/mediascraper-go/internal/app"
	"github.com/yourusername/mediascraper-go/internal/domain"
	"github.com/yourusername/mediascraper-go/web"
)

// PageHandler serves the HTML page and its form posts
type PageHandler struct {
	app    *app.App
	logger *zap.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(application *app.App, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		app:    application,
		logger: logger,
	}
}

// SectionView is one page section as the template sees it
type SectionView struct {
	ID     string
	Active bool
}

// PageData is the template context of home.html
type PageData struct {
	Sections       []SectionView
	DefaultSection string
	ResultsSection string
	Session        domain.SessionSnapshot
	Label          string
	LabelVisible   bool
}

// SectionLink deep-links to a page section
func SectionLink(section string) string {
	return "/?section=" + section + "#" + section
}

// Home handles GET /
func (h *PageHandler) Home(c *gin.Context) {
	id := sessionID(c)

	// A visitor who has not submitted anything has no stored state.
	active := h.app.View.Resolve(c.Query("section"))
	if state, ok := h.app.Sessions.Lookup(id); ok {
		h.app.View.DeepLink(state, active)
	}

	snap, err := h.app.Snapshot(id)
	if err != nil {
		h.logger.Error("Failed to load board", zap.String("session", id), zap.Error(err))
	}
	snap.ActiveSection = active

	sections := make([]SectionView, 0, len(h.app.View.Sections()))
	for _, section := range h.app.View.Sections() {
		sections = append(sections, SectionView{
			ID:     section,
			Active: section == snap.ActiveSection,
		})
	}

	label, visible := h.app.Labels.Label()
	c.HTML(http.StatusOK, web.PageTemplate, PageData{
		Sections:       sections,
		DefaultSection: h.app.View.DefaultSection(),
		ResultsSection: h.app.View.ResultsSection(),
		Session:        snap,
		Label:          label,
		LabelVisible:   visible,
	})
}

// Submit handles POST /submit
func (h *PageHandler) Submit(c *gin.Context) {
	id := sessionID(c)
	url := strings.TrimSpace(c.PostForm("url"))

	// The submission outlives this request.
	h.app.Submitter.Submit(context.WithoutCancel(c.Request.Context()), id, url)

	c.Redirect(http.StatusSeeOther, SectionLink(h.app.View.ResultsSection()))
}
