package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gpellis87/intel-briefing/app/cfg"
	"github.com/gpellis87/intel-briefing/app/news"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Middleware
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware so browser dashboards can call the API directly
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler) {
	api := r.Group("/api")
	{
		api.GET("/news", handler.GetNews)
		api.GET("/news/clusters", handler.GetClusters)
		api.GET("/local-news", handler.GetLocalNews)
		api.GET("/markets", handler.GetMarkets)
		api.GET("/scores", handler.GetScores)
		api.GET("/weather", handler.GetWeather)
		api.GET("/status", handler.GetStatus)
		api.GET("/sources", handler.GetSources)
	}

	r.GET("/health", handler.GetHealth)

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		categories := make([]string, 0, len(news.Categories))
		for _, category := range news.Categories {
			categories = append(categories, string(category))
		}

		c.JSON(200, gin.H{
			"service":     "Intel Briefing",
			"version":     cfg.Get().Version,
			"description": "News aggregation API with bias enrichment, story clustering, and dashboard widgets",
			"endpoints": map[string]string{
				"news":     "/api/news?category=<category>&region=<region>",
				"clusters": "/api/news/clusters?category=<category>",
				"local":    "/api/local-news?city=<city>&state=<state>",
				"markets":  "/api/markets?range=<1d|5d|1mo>",
				"scores":   "/api/scores?league=<league|all>",
				"weather":  "/api/weather?lat=<lat>&lon=<lon> or ?zip=<zip>",
				"status":   "/api/status",
				"sources":  "/api/sources",
				"health":   "/health",
			},
			"categories": categories,
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
