package api

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/mediascraper-go/api/handlers"
	"github.com/yourusername/mediascraper-go/api/middleware"
	"github.com/yourusername/mediascraper-go/internal/app"
	"github.com/yourusername/mediascraper-go/internal/domain"
	"github.com/yourusername/mediascraper-go/internal/render"
	"github.com/yourusername/mediascraper-go/pkg/logger"
	"github.com/yourusername/mediascraper-go/web"
)

// SetupRouter sets up the HTTP router. multiLog may be nil.
func SetupRouter(application *app.App, log *zap.Logger, multiLog *logger.MultiLogger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.Logger(log, multiLog))
	router.Use(middleware.Recovery(log, multiLog))
	router.Use(middleware.CORS())

	router.SetHTMLTemplate(template.Must(web.ParseTemplates(templateFuncs())))
	router.StaticFS("/static", web.Static())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(application)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Page
	pageHandler := handlers.NewPageHandler(application, log)
	router.GET("/", pageHandler.Home)
	router.POST("/submit", pageHandler.Submit)

	downloadHandler := handlers.NewDownloadHandler(application, log)
	router.GET(render.DownloadPath, downloadHandler.Download)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		submitHandler := handlers.NewSubmitHandler(application, log)
		v1.POST("/submit", submitHandler.Submit)
		v1.GET("/sessions/:id", submitHandler.GetSession)

		logHandler := handlers.NewLogHandler(application.Config.Logging.LogsDir)
		logs := v1.Group("/logs")
		{
			logs.GET("/categories", logHandler.GetCategories)
			logs.GET("/:category", logHandler.GetLogs)
			logs.GET("/:category/search", logHandler.SearchLogs)
			logs.GET("/:category/export", logHandler.ExportLogs)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
	})

	return router
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"downloadHref": render.DownloadHref,
		"sectionLink":  handlers.SectionLink,
		"lower":        strings.ToLower,
		"title": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
		"statusClass": func(color string) string {
			switch color {
			case domain.ColorError:
				return "error"
			case domain.ColorSuccess:
				return "success"
			default:
				return "idle"
			}
		},
	}
}
