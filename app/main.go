package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gpellis87/intel-briefing/app/aggregator"
	"github.com/gpellis87/intel-briefing/app/api"
	"github.com/gpellis87/intel-briefing/app/bias"
	"github.com/gpellis87/intel-briefing/app/cache"
	"github.com/gpellis87/intel-briefing/app/cfg"
	"github.com/gpellis87/intel-briefing/app/news"
	"github.com/gpellis87/intel-briefing/app/providers"
	"github.com/gpellis87/intel-briefing/app/tasks"
	"github.com/gpellis87/intel-briefing/app/widgets"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetLogLoggerLevel(logLevel)

	slog.Info("Starting Intel Briefing server", "version", appCfg.Version)

	biasTable, err := bias.Load(appCfg.BiasDataFile)
	if err != nil {
		slog.Error("Failed to load media bias dataset", "path", appCfg.BiasDataFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Media bias dataset loaded", "sources", biasTable.Count())

	feedRegistry, err := providers.LoadFeeds(appCfg.FeedsFile)
	if err != nil {
		slog.Error("Failed to load RSS feed list", "path", appCfg.FeedsFile, "error", err)
		os.Exit(1)
	}
	slog.Info("RSS feed list loaded", "categories", feedRegistry.CategoryCount())

	fetchTimeout := time.Duration(appCfg.FetchTimeout) * time.Second
	httpClient := &http.Client{
		Timeout: fetchTimeout + 2*time.Second,
	}

	normalizer := news.NewNormalizer()
	enricher := news.NewEnricher(biasTable)
	tracker := providers.NewTracker()

	realtime := []providers.Provider{
		providers.NewRSS(feedRegistry, httpClient, normalizer, tracker, appCfg.UserAgent, fetchTimeout),
		providers.NewCurrents(appCfg.CurrentsAPIKey, httpClient, normalizer, tracker, appCfg.UserAgent, fetchTimeout),
		providers.NewTheNewsAPI(appCfg.TheNewsAPIKey, httpClient, normalizer, tracker, appCfg.UserAgent, fetchTimeout),
	}
	fallback := []providers.Provider{
		providers.NewNewsAPI(appCfg.NewsAPIKey, httpClient, normalizer, tracker, appCfg.UserAgent, fetchTimeout),
	}

	newsCache := cache.New[[]news.EnrichedArticle](time.Duration(appCfg.NewsCacheTTL) * time.Minute)
	engine := aggregator.NewEngine(newsCache, enricher, realtime, fallback)

	markets := widgets.NewMarkets(
		cache.New[[]widgets.MarketQuote](time.Duration(appCfg.MarketsCacheTTL)*time.Minute),
		httpClient, appCfg.UserAgent, fetchTimeout)
	scores := widgets.NewScores(
		cache.New[[]widgets.GameScore](time.Duration(appCfg.ScoresCacheTTL)*time.Minute),
		httpClient, appCfg.UserAgent, fetchTimeout)
	weather := widgets.NewWeather(appCfg.OpenWeatherAPIKey,
		cache.New[widgets.WeatherReport](time.Duration(appCfg.WeatherCacheTTL)*time.Minute),
		httpClient, appCfg.UserAgent, fetchTimeout)
	localNews := widgets.NewLocalNews(
		cache.New[widgets.LocalResult](time.Duration(appCfg.LocalNewsCacheTTL)*time.Minute),
		httpClient, normalizer, enricher, appCfg.UserAgent, fetchTimeout)

	var scheduler tasks.TaskSchedulerInterface
	if appCfg.RefreshInterval > 0 {
		slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount, "interval_minutes", appCfg.RefreshInterval)
		scheduler = tasks.NewScheduler(engine, markets)
		scheduler.Start()
		defer scheduler.Stop()
	} else {
		slog.Info("Background cache pre-warming disabled")
	}

	apiHandler := api.NewHandler(engine, newsCache, biasTable, tracker, markets, weather, scores, localNews)
	server := api.NewServer(apiHandler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
