package providers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gpellis87/intel-briefing/app/news"
)

const currentsBaseURL = "https://api.currentsapi.services/v1/latest-news"

var currentsCategories = map[news.Category]string{
	news.CategoryGeneral:       "general",
	news.CategoryPolitics:      "politics",
	news.CategoryTechnology:    "technology",
	news.CategoryBusiness:      "business",
	news.CategoryScience:       "science",
	news.CategoryHealth:        "health",
	news.CategorySports:        "sports",
	news.CategoryEntertainment: "entertainment",
}

// Currents adapts the Currents real-time news API.
type Currents struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	normalizer *news.Normalizer
	tracker    *Tracker
	userAgent  string
	timeout    time.Duration
}

type currentsResponse struct {
	News []currentsArticle `json:"news"`
}

type currentsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Image       string `json:"image"`
	Published   string `json:"published"`
	Author      string `json:"author"`
}

func NewCurrents(apiKey string, httpClient *http.Client, normalizer *news.Normalizer,
	tracker *Tracker, userAgent string, timeout time.Duration) *Currents {
	return &Currents{
		apiKey:     apiKey,
		baseURL:    currentsBaseURL,
		httpClient: httpClient,
		normalizer: normalizer,
		tracker:    tracker,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

func (p *Currents) Name() string {
	return "currents"
}

func (p *Currents) Fetch(ctx context.Context, category news.Category, _ string) ([]news.Article, error) {
	if p.apiKey == "" {
		return nil, ErrNotConfigured
	}

	query := url.Values{}
	query.Set("language", "en")
	query.Set("category", mapCategory(currentsCategories, category))
	query.Set("apiKey", p.apiKey)

	p.tracker.Track(p.Name())

	var payload currentsResponse
	if err := fetchJSON(ctx, p.httpClient, p.baseURL+"?"+query.Encode(), p.userAgent, p.timeout, &payload); err != nil {
		return nil, fmt.Errorf("currents fetch failed: %w", err)
	}

	articles := make([]news.Article, 0, len(payload.News))
	for _, raw := range payload.News {
		image := raw.Image
		if image == "None" {
			image = ""
		}

		article, err := p.normalizer.Run(news.Candidate{
			Title:       raw.Title,
			Description: raw.Description,
			URL:         raw.URL,
			ImageURL:    image,
			// Currents emits "YYYY-MM-DD HH:MM:SS +ZZZZ"
			RawDate: raw.Published,
			Author:  raw.Author,
		})
		if err != nil {
			if !isRejection(err) {
				slog.Warn("Currents record normalization failed", "error", err)
			}
			continue
		}
		articles = append(articles, article)
	}

	return articles, nil
}
