package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Application configuration
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BiasDataFile string `long:"bias-data" env:"BIAS_DATA_FILE" default:"./data/media-bias.yml" description:"Path to the media bias dataset"`
	FeedsFile    string `long:"feeds" env:"FEEDS_FILE" default:"./data/rss-feeds.yml" description:"Path to the per-category RSS feed list"`

	// Upstream provider credentials
	CurrentsAPIKey    string `long:"currents-api-key" env:"CURRENTS_API_KEY" description:"Currents API key (optional)"`
	TheNewsAPIKey     string `long:"thenewsapi-key" env:"THENEWSAPI_KEY" description:"TheNewsAPI token (optional)"`
	NewsAPIKey        string `long:"newsapi-key" env:"NEWSAPI_KEY" description:"NewsAPI.org key (optional)"`
	OpenWeatherAPIKey string `long:"openweather-api-key" env:"OPENWEATHER_API_KEY" description:"OpenWeather API key (optional)"`

	// Fetch behavior
	FetchTimeout int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"8" description:"Per-request upstream timeout in seconds"`
	UserAgent    string `long:"user-agent" env:"USER_AGENT" default:"IntelBriefing/1.0" description:"User agent string for HTTP requests"`

	// Cache TTLs in minutes
	NewsCacheTTL      int `long:"news-cache-ttl" env:"NEWS_CACHE_TTL" default:"15" description:"News cache TTL in minutes"`
	MarketsCacheTTL   int `long:"markets-cache-ttl" env:"MARKETS_CACHE_TTL" default:"5" description:"Markets cache TTL in minutes"`
	ScoresCacheTTL    int `long:"scores-cache-ttl" env:"SCORES_CACHE_TTL" default:"2" description:"Scores cache TTL in minutes"`
	WeatherCacheTTL   int `long:"weather-cache-ttl" env:"WEATHER_CACHE_TTL" default:"15" description:"Weather cache TTL in minutes"`
	LocalNewsCacheTTL int `long:"local-news-cache-ttl" env:"LOCAL_NEWS_CACHE_TTL" default:"15" description:"Local news cache TTL in minutes"`

	// Background refresh
	WorkerCount     int `long:"worker-count" env:"WORKER_COUNT" default:"3" description:"Number of background workers for cache pre-warming"`
	RefreshInterval int `long:"refresh-interval" env:"REFRESH_INTERVAL" default:"15" description:"Cache pre-warm interval in minutes (0 disables)"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:              raw.Port,
		BiasDataFile:      raw.BiasDataFile,
		FeedsFile:         raw.FeedsFile,
		CurrentsAPIKey:    raw.CurrentsAPIKey,
		TheNewsAPIKey:     raw.TheNewsAPIKey,
		NewsAPIKey:        raw.NewsAPIKey,
		OpenWeatherAPIKey: raw.OpenWeatherAPIKey,
		FetchTimeout:      raw.FetchTimeout,
		UserAgent:         raw.UserAgent,
		NewsCacheTTL:      raw.NewsCacheTTL,
		MarketsCacheTTL:   raw.MarketsCacheTTL,
		ScoresCacheTTL:    raw.ScoresCacheTTL,
		WeatherCacheTTL:   raw.WeatherCacheTTL,
		LocalNewsCacheTTL: raw.LocalNewsCacheTTL,
		WorkerCount:       raw.WorkerCount,
		RefreshInterval:   raw.RefreshInterval,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
