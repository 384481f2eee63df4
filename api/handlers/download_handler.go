package handlers

import (
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/mediascraper-go/internal/app"
	"github.com/yourusername/mediascraper-go/internal/domain"
)

// DownloadHandler serves flagged download links
type DownloadHandler struct {
	app    *app.App
	logger *zap.Logger
}

// NewDownloadHandler creates a new download handler
func NewDownloadHandler(application *app.App, logger *zap.Logger) *DownloadHandler {
	return &DownloadHandler{
		app:    application,
		logger: logger,
	}
}

// Download handles GET /download?url=
func (h *DownloadHandler) Download(c *gin.Context) {
	target := c.Query("url")
	if target == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'url' is required"})
		return
	}

	id := sessionID(c)
	file, err := h.app.Downloads.Intercept(c.Request.Context(), id, target)
	if errors.Is(err, domain.ErrDownloadNotOffered) {
		c.JSON(http.StatusForbidden, gin.H{"error": "download target is not linked from this session's cards"})
		return
	}
	if err != nil {
		c.Redirect(http.StatusSeeOther, SectionLink(h.app.View.ResultsSection()))
		return
	}
	defer file.Body.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": file.Filename})
	c.DataFromReader(http.StatusOK, file.ContentLength, file.ContentType, file.Body, map[string]string{
		"Content-Disposition": disposition,
	})
}
