package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/mediascraper-go/internal/app"
)

// SessionCookie names the cookie carrying the visitor's session id
const SessionCookie = "ms_session"

const sessionMaxAge = 30 * 24 * 60 * 60

// sessionID returns the visitor's session id, issuing a new cookie when
// the request has none or an invalid one
func sessionID(c *gin.Context) string {
	if id, err := c.Cookie(SessionCookie); err == nil {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}

	id := app.NewSessionID()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, sessionMaxAge, "/", "", false, true)
	return id
}
