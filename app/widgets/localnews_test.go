package widgets

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gpellis87/intel-briefing/app/cache"
	"github.com/gpellis87/intel-briefing/app/news"
)

type nullLookup struct{}

func (nullLookup) Lookup(domain, name string) (news.BiasInfo, bool) {
	return news.BiasInfo{}, false
}

func localFeedXML(items ...string) string {
	body := `<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>Search Results</title>`
	for _, item := range items {
		body += item
	}
	return body + `</channel></rss>`
}

func feedItem(title, link string, published time.Time) string {
	return fmt.Sprintf(
		`<item><title>%s</title><link>%s</link><pubDate>%s</pubDate></item>`,
		title, link, published.Format(time.RFC1123Z))
}

func newTestLocalNews(googleURL, bingURL string) *LocalNews {
	l := NewLocalNews(
		cache.New[LocalResult](15*time.Minute),
		http.DefaultClient,
		news.NewNormalizer(),
		news.NewEnricher(nullLookup{}),
		"test-agent", 2*time.Second)
	l.googleURL = googleURL + "?q=%s"
	l.bingURL = bingURL + "?q=%s"
	return l
}

func TestLocalNews_GoogleFirst(t *testing.T) {
	recent := time.Now().Add(-2 * time.Hour)

	google := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(localFeedXML(
			feedItem("City Council Approves Budget - Springfield Gazette", "https://example.com/budget", recent))))
	}))
	defer google.Close()

	bing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Bing should not be consulted when Google returns results")
	}))
	defer bing.Close()

	l := newTestLocalNews(google.URL, bing.URL)

	result := l.Fetch(context.Background(), "Springfield", "Illinois")

	if result.FeedSource != LocalSourceGoogle {
		t.Errorf("Expected google feed source, got %s", result.FeedSource)
	}
	if len(result.Articles) != 1 {
		t.Fatalf("Expected 1 article, got %d", len(result.Articles))
	}

	// Google aggregator titles carry the outlet as a suffix.
	article := result.Articles[0]
	if article.Title != "City Council Approves Budget" {
		t.Errorf("Expected split title, got %q", article.Title)
	}
	if article.SourceName != "Springfield Gazette" {
		t.Errorf("Expected source from title suffix, got %q", article.SourceName)
	}
}

func TestLocalNews_BingFallback(t *testing.T) {
	recent := time.Now().Add(-time.Hour)

	google := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer google.Close()

	bing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(localFeedXML(
			feedItem("Local Road Closures Announced", "https://example.com/roads", recent))))
	}))
	defer bing.Close()

	l := newTestLocalNews(google.URL, bing.URL)

	result := l.Fetch(context.Background(), "Springfield", "Illinois")

	if result.FeedSource != LocalSourceBing {
		t.Errorf("Expected bing feed source, got %s", result.FeedSource)
	}
	if len(result.Articles) != 1 {
		t.Errorf("Expected 1 article, got %d", len(result.Articles))
	}
}

func TestLocalNews_AgeFilter(t *testing.T) {
	google := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(localFeedXML(
			feedItem("Fresh Story", "https://example.com/fresh", time.Now().Add(-3*time.Hour)),
			feedItem("Stale Story", "https://example.com/stale", time.Now().Add(-72*time.Hour)))))
	}))
	defer google.Close()

	bing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(localFeedXML()))
	}))
	defer bing.Close()

	l := newTestLocalNews(google.URL, bing.URL)

	result := l.Fetch(context.Background(), "Austin", "Texas")

	if len(result.Articles) != 1 {
		t.Fatalf("Expected stale story filtered, got %d articles", len(result.Articles))
	}
	if result.Articles[0].Title != "Fresh Story" {
		t.Errorf("Unexpected surviving article: %q", result.Articles[0].Title)
	}
}

func TestLocalNews_MajorCityFallback(t *testing.T) {
	recent := time.Now().Add(-time.Hour)

	google := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only the major-city query yields results.
		if r.URL.Query().Get("q") == "Chicago Illinois local news" {
			w.Write([]byte(localFeedXML(
				feedItem("Chicago Transit Update", "https://example.com/cta", recent))))
			return
		}
		w.Write([]byte(localFeedXML()))
	}))
	defer google.Close()

	bing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(localFeedXML()))
	}))
	defer bing.Close()

	l := newTestLocalNews(google.URL, bing.URL)

	result := l.Fetch(context.Background(), "Tinytown", "Illinois")

	if result.FeedSource != LocalSourceFallback {
		t.Errorf("Expected fallback feed source, got %s", result.FeedSource)
	}
	if result.FallbackCity != "Chicago" {
		t.Errorf("Expected fallback city Chicago, got %s", result.FallbackCity)
	}
	if len(result.Articles) != 1 {
		t.Errorf("Expected 1 article, got %d", len(result.Articles))
	}
}

func TestLocalNews_NoResults(t *testing.T) {
	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(localFeedXML()))
	}))
	defer empty.Close()

	l := newTestLocalNews(empty.URL, empty.URL)

	result := l.Fetch(context.Background(), "Nowhere", "Wyoming")

	if result.FeedSource != LocalSourceNone {
		t.Errorf("Expected none feed source, got %s", result.FeedSource)
	}
	if len(result.Articles) != 0 {
		t.Errorf("Expected no articles, got %d", len(result.Articles))
	}
}

func TestLocalNews_CachesByLocation(t *testing.T) {
	var calls int
	google := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(localFeedXML(
			feedItem("Cached Story", "https://example.com/cached", time.Now().Add(-time.Hour)))))
	}))
	defer google.Close()

	l := newTestLocalNews(google.URL, google.URL)

	l.Fetch(context.Background(), "Boston", "Massachusetts")
	l.Fetch(context.Background(), "boston", "massachusetts")

	if calls != 1 {
		t.Errorf("Case-insensitive repeat lookup should hit the cache, got %d upstream calls", calls)
	}
}
