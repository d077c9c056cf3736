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

const (
	newsAPIHeadlinesURL  = "https://newsapi.org/v2/top-headlines"
	newsAPIEverythingURL = "https://newsapi.org/v2/everything"
	newsAPIPageSize      = 40
)

var newsAPICategories = map[news.Category]string{
	news.CategoryGeneral:       "general",
	news.CategoryTechnology:    "technology",
	news.CategoryBusiness:      "business",
	news.CategoryScience:       "science",
	news.CategoryHealth:        "health",
	news.CategorySports:        "sports",
	news.CategoryEntertainment: "entertainment",
}

// NewsAPI.org has no politics category; that one goes through the
// /everything search endpoint with a keyword query instead.
var newsAPIQueries = map[news.Category]string{
	news.CategoryPolitics: "politics OR congress OR senate OR president OR legislation",
}

// NewsAPI adapts NewsAPI.org. It sits at the bottom of the priority order:
// rate-limited and often stale, consulted only when the real-time providers
// under-deliver. The only region-sensitive provider.
type NewsAPI struct {
	apiKey     string
	baseURL    string // headlines endpoint, overridable in tests
	searchURL  string
	httpClient *http.Client
	normalizer *news.Normalizer
	tracker    *Tracker
	userAgent  string
	timeout    time.Duration
	now        func() time.Time
}

type newsAPIResponse struct {
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

func NewNewsAPI(apiKey string, httpClient *http.Client, normalizer *news.Normalizer,
	tracker *Tracker, userAgent string, timeout time.Duration) *NewsAPI {
	return &NewsAPI{
		apiKey:     apiKey,
		baseURL:    newsAPIHeadlinesURL,
		searchURL:  newsAPIEverythingURL,
		httpClient: httpClient,
		normalizer: normalizer,
		tracker:    tracker,
		userAgent:  userAgent,
		timeout:    timeout,
		now:        time.Now,
	}
}

func (p *NewsAPI) Name() string {
	return "newsapi"
}

func (p *NewsAPI) Fetch(ctx context.Context, category news.Category, region string) ([]news.Article, error) {
	if p.apiKey == "" {
		return nil, ErrNotConfigured
	}

	p.tracker.Track(p.Name())

	var payload newsAPIResponse
	if err := fetchJSON(ctx, p.httpClient, p.requestURL(category, region), p.userAgent, p.timeout, &payload); err != nil {
		return nil, fmt.Errorf("newsapi fetch failed: %w", err)
	}

	articles := make([]news.Article, 0, len(payload.Articles))
	for _, raw := range payload.Articles {
		article, err := p.normalizer.Run(news.Candidate{
			Title:       raw.Title,
			Description: raw.Description,
			URL:         raw.URL,
			ImageURL:    raw.URLToImage,
			RawDate:     raw.PublishedAt,
			SourceName:  raw.Source.Name,
			Author:      raw.Author,
		})
		if err != nil {
			if !isRejection(err) {
				slog.Warn("NewsAPI record normalization failed", "error", err)
			}
			continue
		}
		article.Content = raw.Content
		articles = append(articles, article)
	}

	return articles, nil
}

func (p *NewsAPI) requestURL(category news.Category, region string) string {
	if searchQuery, ok := newsAPIQueries[category]; ok {
		fromDate := p.now().Add(-24 * time.Hour).Format("2006-01-02")

		query := url.Values{}
		query.Set("q", searchQuery)
		query.Set("language", "en")
		query.Set("sortBy", "publishedAt")
		query.Set("from", fromDate)
		query.Set("pageSize", fmt.Sprintf("%d", newsAPIPageSize))
		query.Set("apiKey", p.apiKey)

		return p.searchURL + "?" + query.Encode()
	}

	query := url.Values{}
	query.Set("country", region)
	query.Set("category", mapCategory(newsAPICategories, category))
	query.Set("pageSize", fmt.Sprintf("%d", newsAPIPageSize))
	query.Set("apiKey", p.apiKey)

	return p.baseURL + "?" + query.Encode()
}
