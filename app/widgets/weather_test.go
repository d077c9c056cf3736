package widgets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gpellis87/intel-briefing/app/cache"
)

func newTestWeather(apiKey, serverURL string) *Weather {
	w := NewWeather(apiKey, cache.New[WeatherReport](15*time.Minute), http.DefaultClient, "test-agent", time.Second)
	if serverURL != "" {
		w.baseURL = serverURL
	}
	return w
}

func TestWeather_NotConfigured(t *testing.T) {
	w := newTestWeather("", "")

	_, err := w.Current(context.Background(), "40.7", "-74.0", "")
	if !errors.Is(err, ErrWeatherNotConfigured) {
		t.Errorf("Expected ErrWeatherNotConfigured, got %v", err)
	}
}

func TestWeather_MissingLocation(t *testing.T) {
	w := newTestWeather("test-key", "")

	for _, pair := range [][3]string{{"", "", ""}, {"40.7", "", ""}, {"", "-74.0", ""}} {
		_, err := w.Current(context.Background(), pair[0], pair[1], pair[2])
		if !errors.Is(err, ErrMissingLocation) {
			t.Errorf("Pair %v: expected ErrMissingLocation, got %v", pair, err)
		}
	}
}

func TestWeather_Current(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("units") != "imperial" {
			t.Errorf("Expected imperial units, got %s", r.URL.Query().Get("units"))
		}
		if r.URL.Query().Get("lat") != "40.7" || r.URL.Query().Get("lon") != "-74.0" {
			t.Errorf("Unexpected coordinates: %s", r.URL.RawQuery)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"main": {"temp": 52.6, "feels_like": 48.2, "temp_max": 55.9, "temp_min": 47.1},
			"weather": [{"description": "scattered clouds", "icon": "03d"}],
			"name": "New York"
		}`))
	}))
	defer server.Close()

	w := newTestWeather("test-key", server.URL)

	report, err := w.Current(context.Background(), "40.7", "-74.0", "")
	if err != nil {
		t.Fatal(err)
	}

	if report.Temp != 53 || report.FeelsLike != 48 || report.High != 56 || report.Low != 47 {
		t.Errorf("Temperatures should round to integers: %+v", report)
	}
	if report.Description != "scattered clouds" || report.Icon != "03d" {
		t.Errorf("Unexpected conditions: %+v", report)
	}
	if report.City != "New York" {
		t.Errorf("Unexpected city: %s", report.City)
	}

	// Second lookup for the same location is cached.
	w.Current(context.Background(), "40.7", "-74.0", "")
	if calls != 1 {
		t.Errorf("Expected 1 upstream call, got %d", calls)
	}
}

func TestWeather_ZipLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("zip") != "10001,US" {
			t.Errorf("Expected zip 10001,US, got %s", r.URL.Query().Get("zip"))
		}
		w.Write([]byte(`{"main": {"temp": 60}, "weather": [], "name": "New York"}`))
	}))
	defer server.Close()

	w := newTestWeather("test-key", server.URL)

	report, err := w.Current(context.Background(), "", "", "10001")
	if err != nil {
		t.Fatal(err)
	}

	// Missing conditions fall back to the default icon.
	if report.Icon != "01d" {
		t.Errorf("Expected default icon 01d, got %s", report.Icon)
	}
}

func TestWeather_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	w := newTestWeather("bad-key", server.URL)

	if _, err := w.Current(context.Background(), "40.7", "-74.0", ""); err == nil {
		t.Error("Expected error for 401 response")
	}
}
