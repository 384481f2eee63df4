package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourusername/mediascraper-go/internal/app"
)

// SubmitHandler exposes the submit flow and session state as JSON
type SubmitHandler struct {
	app    *app.App
	logger *zap.Logger
}

// NewSubmitHandler creates a new submit handler
func NewSubmitHandler(application *app.App, logger *zap.Logger) *SubmitHandler {
	return &SubmitHandler{
		app:    application,
		logger: logger,
	}
}

// SubmitRequest represents a request to scrape a URL
type SubmitRequest struct {
	URL       string `json:"url" binding:"required"`
	SessionID string `json:"session_id,omitempty"`
}

// Submit handles POST /api/v1/submit. With ?wait=true the response is
// sent once the backend has answered.
func (h *SubmitHandler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := req.SessionID
	if id == "" {
		id = app.NewSessionID()
	} else if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session_id"})
		return
	}

	sub := h.app.Submitter.Submit(context.WithoutCancel(c.Request.Context()), id, req.URL)

	status := http.StatusAccepted
	if c.Query("wait") == "true" {
		select {
		case <-sub.Done():
			status = http.StatusOK
		case <-c.Request.Context().Done():
			return
		}
	}

	snap, err := h.app.Snapshot(id)
	if err != nil {
		h.logger.Error("Failed to load session", zap.String("session", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(status, snap)
}

// GetSession handles GET /api/v1/sessions/:id
func (h *SubmitHandler) GetSession(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	snap, err := h.app.Snapshot(id)
	if err != nil {
		h.logger.Error("Failed to load session", zap.String("session", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, snap)
}
