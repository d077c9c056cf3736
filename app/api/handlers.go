package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gpellis87/intel-briefing/app/aggregator"
	"github.com/gpellis87/intel-briefing/app/bias"
	"github.com/gpellis87/intel-briefing/app/cache"
	"github.com/gpellis87/intel-briefing/app/cfg"
	"github.com/gpellis87/intel-briefing/app/cluster"
	"github.com/gpellis87/intel-briefing/app/news"
	"github.com/gpellis87/intel-briefing/app/providers"
	"github.com/gpellis87/intel-briefing/app/widgets"
)

func NewHandler(engine *aggregator.Engine, newsCache *cache.Cache[[]news.EnrichedArticle],
	biasTable *bias.Table, tracker *providers.Tracker, markets *widgets.Markets,
	weather *widgets.Weather, scores *widgets.Scores, localNews *widgets.LocalNews) *Handler {
	return &Handler{
		engine:    engine,
		newsCache: newsCache,
		biasTable: biasTable,
		tracker:   tracker,
		markets:   markets,
		weather:   weather,
		scores:    scores,
		localNews: localNews,
	}
}

func (h *Handler) GetNews(c *gin.Context) {
	category := news.Category(c.DefaultQuery("category", string(news.CategoryGeneral)))
	if !category.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid category",
			"category":   string(category),
			"categories": news.Categories,
		})
		return
	}

	region := c.DefaultQuery("region", "us")

	articles := h.engine.FetchArticles(c.Request.Context(), category, region)

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"count":    len(articles),
		"category": string(category),
		"region":   region,
	})
}

func (h *Handler) GetClusters(c *gin.Context) {
	category := news.Category(c.DefaultQuery("category", string(news.CategoryGeneral)))
	if !category.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid category",
			"category":   string(category),
			"categories": news.Categories,
		})
		return
	}

	region := c.DefaultQuery("region", "us")

	articles := h.engine.FetchArticles(c.Request.Context(), category, region)
	clusters := cluster.Run(articles)

	c.JSON(http.StatusOK, gin.H{
		"clusters": clusters,
		"count":    len(clusters),
		"category": string(category),
	})
}

func (h *Handler) GetLocalNews(c *gin.Context) {
	city := c.Query("city")
	state := c.Query("state")
	if city == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Both city and state query parameters are required",
		})
		return
	}

	result := h.localNews.Fetch(c.Request.Context(), city, state)

	c.JSON(http.StatusOK, gin.H{
		"articles":     result.Articles,
		"count":        len(result.Articles),
		"city":         city,
		"state":        state,
		"feedSource":   result.FeedSource,
		"fallbackCity": result.FallbackCity,
	})
}

func (h *Handler) GetMarkets(c *gin.Context) {
	chartRange := c.DefaultQuery("range", "1d")

	quotes, normalizedRange := h.markets.Quotes(c.Request.Context(), chartRange)

	c.JSON(http.StatusOK, gin.H{
		"quotes": quotes,
		"count":  len(quotes),
		"range":  normalizedRange,
	})
}

func (h *Handler) GetScores(c *gin.Context) {
	league := c.DefaultQuery("league", "all")

	games, leagues, err := h.scores.Fetch(c.Request.Context(), league)
	if err != nil {
		if errors.Is(err, widgets.ErrUnknownLeague) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Unknown league",
				"league":  league,
				"leagues": leagues,
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Scoreboard fetch failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"games":   games,
		"count":   len(games),
		"leagues": leagues,
	})
}

func (h *Handler) GetWeather(c *gin.Context) {
	lat := c.Query("lat")
	lon := c.Query("lon")
	zip := c.Query("zip")

	report, err := h.weather.Current(c.Request.Context(), lat, lon, zip)
	if err != nil {
		switch {
		case errors.Is(err, widgets.ErrWeatherNotConfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Weather service is not configured",
			})
		case errors.Is(err, widgets.ErrMissingLocation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Provide either lat and lon, or zip",
			})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Weather fetch failed"})
		}
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *Handler) GetStatus(c *gin.Context) {
	appCfg := cfg.Get()

	c.JSON(http.StatusOK, gin.H{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"apiCalls":  h.tracker.Stats(),
		"cache": gin.H{
			"entries":    h.newsCache.Len(),
			"ttlMinutes": appCfg.NewsCacheTTL,
			"maxEntries": cache.DefaultMaxKeys,
		},
		"providers": gin.H{
			"currents":   appCfg.CurrentsAPIKey != "",
			"thenewsapi": appCfg.TheNewsAPIKey != "",
			"newsapi":    appCfg.NewsAPIKey != "",
		},
	})
}

func (h *Handler) GetSources(c *gin.Context) {
	records := h.biasTable.All()

	c.JSON(http.StatusOK, gin.H{
		"sources": records,
		"count":   len(records),
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp":     time.Now().In(time.Local).Format(time.RFC3339),
		"sources":       h.biasTable.Count(),
		"cachedEntries": h.newsCache.Len(),
	})
}
