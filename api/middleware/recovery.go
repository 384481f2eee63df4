package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/mediascraper-go/pkg/logger"
)

// Recovery turns a handler panic into a 500. The panic is recorded in
// the error category too when multiLog is set.
func Recovery(log *zap.Logger, multiLog *logger.MultiLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			fields := []zap.Field{
				zap.Any("panic", rec),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
			}
			log.Error("Panic recovered", fields...)
			if multiLog != nil {
				multiLog.LogAppError("Panic recovered", append(fields, zap.ByteString("stack", debug.Stack()))...)
			}

			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}()
		c.Next()
	}
}
