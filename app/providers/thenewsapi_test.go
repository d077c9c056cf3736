package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gpellis87/intel-briefing/app/news"
)

func TestTheNewsAPI_NotConfigured(t *testing.T) {
	p := NewTheNewsAPI("", http.DefaultClient, news.NewNormalizer(), NewTracker(), "test-agent", time.Second)

	_, err := p.Fetch(context.Background(), news.CategoryGeneral, "us")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}
}

func TestTheNewsAPI_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("categories") != "tech" {
			t.Errorf("Technology should map to tech, got %s", r.URL.Query().Get("categories"))
		}
		if r.URL.Query().Get("limit") != "3" {
			t.Errorf("Expected limit 3, got %s", r.URL.Query().Get("limit"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": [
				{
					"title": "Chipmaker Announces Breakthrough",
					"description": "A new fabrication process.",
					"snippet": "A new fabrication process enters production this quarter.",
					"url": "https://example.com/chip",
					"image_url": "https://img.example.com/chip.jpg",
					"published_at": "2026-02-25T09:00:00.000000Z",
					"source": "arstechnica.com"
				},
				{
					"title": "Snippet Only Story",
					"description": "",
					"snippet": "Only the snippet field is populated.",
					"url": "https://example.com/snippet",
					"published_at": "2026-02-25T10:00:00.000000Z",
					"source": "example.org"
				}
			]
		}`))
	}))
	defer server.Close()

	p := NewTheNewsAPI("test-token", server.Client(), news.NewNormalizer(), NewTracker(), "test-agent", time.Second)
	p.baseURL = server.URL

	articles, err := p.Fetch(context.Background(), news.CategoryTechnology, "us")
	if err != nil {
		t.Fatal(err)
	}

	if len(articles) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(articles))
	}

	if articles[0].SourceName != "Ars Technica" {
		t.Errorf("Expected display name from domain, got %q", articles[0].SourceName)
	}
	if articles[0].Content != "A new fabrication process enters production this quarter." {
		t.Errorf("Expected snippet as content, got %q", articles[0].Content)
	}

	// Empty description falls back to the snippet.
	if articles[1].Description != "Only the snippet field is populated." {
		t.Errorf("Expected snippet fallback description, got %q", articles[1].Description)
	}
}
