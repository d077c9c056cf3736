package widgets

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/gpellis87/intel-briefing/app/cache"
)

const openWeatherBaseURL = "https://api.openweathermap.org/data/2.5/weather"

var (
	ErrWeatherNotConfigured = errors.New("weather API not configured")
	ErrMissingLocation      = errors.New("missing lat/lon or zip")
)

// WeatherReport is the current-conditions summary for one location.
type WeatherReport struct {
	Temp        int    `json:"temp"`
	FeelsLike   int    `json:"feelsLike"`
	High        int    `json:"high"`
	Low         int    `json:"low"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	City        string `json:"city"`
}

// Weather proxies OpenWeather current conditions, cached per location key.
type Weather struct {
	apiKey     string
	cache      *cache.Cache[WeatherReport]
	httpClient *http.Client
	baseURL    string
	userAgent  string
	timeout    time.Duration
}

type openWeatherResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMax   float64 `json:"temp_max"`
		TempMin   float64 `json:"temp_min"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Name string `json:"name"`
}

func NewWeather(apiKey string, reportCache *cache.Cache[WeatherReport],
	httpClient *http.Client, userAgent string, timeout time.Duration) *Weather {
	return &Weather{
		apiKey:     apiKey,
		cache:      reportCache,
		httpClient: httpClient,
		baseURL:    openWeatherBaseURL,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

// Current returns conditions for either a lat/lon pair or a US zip code.
func (w *Weather) Current(ctx context.Context, lat, lon, zip string) (WeatherReport, error) {
	if w.apiKey == "" {
		return WeatherReport{}, ErrWeatherNotConfigured
	}

	var cacheKey string
	query := url.Values{}
	query.Set("units", "imperial")
	query.Set("appid", w.apiKey)

	switch {
	case lat != "" && lon != "":
		cacheKey = lat + "," + lon
		query.Set("lat", lat)
		query.Set("lon", lon)
	case zip != "":
		cacheKey = zip
		query.Set("zip", zip+",US")
	default:
		return WeatherReport{}, ErrMissingLocation
	}

	if cached, fresh := w.cache.Get(cacheKey); fresh {
		return cached, nil
	}

	var payload openWeatherResponse
	if err := fetchJSON(ctx, w.httpClient, w.baseURL+"?"+query.Encode(), w.userAgent, w.timeout, &payload); err != nil {
		return WeatherReport{}, fmt.Errorf("weather fetch failed: %w", err)
	}

	report := WeatherReport{
		Temp:      int(math.Round(payload.Main.Temp)),
		FeelsLike: int(math.Round(payload.Main.FeelsLike)),
		High:      int(math.Round(payload.Main.TempMax)),
		Low:       int(math.Round(payload.Main.TempMin)),
		City:      payload.Name,
		Icon:      "01d",
	}
	if len(payload.Weather) > 0 {
		report.Description = payload.Weather[0].Description
		if payload.Weather[0].Icon != "" {
			report.Icon = payload.Weather[0].Icon
		}
	}

	w.cache.Set(cacheKey, report)

	return report, nil
}
