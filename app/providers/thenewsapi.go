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

const theNewsAPIBaseURL = "https://api.thenewsapi.com/v1/news/top"

// TheNewsAPI limits free-tier responses to a handful of articles, so this
// adapter asks for few but current top stories.
const theNewsAPILimit = 3

var theNewsAPICategories = map[news.Category]string{
	news.CategoryGeneral:       "general",
	news.CategoryPolitics:      "politics",
	news.CategoryTechnology:    "tech",
	news.CategoryBusiness:      "business",
	news.CategoryScience:       "science",
	news.CategoryHealth:        "health",
	news.CategorySports:        "sports",
	news.CategoryEntertainment: "entertainment",
}

// TheNewsAPI adapts the thenewsapi.com real-time top-stories API.
type TheNewsAPI struct {
	apiToken   string
	baseURL    string
	httpClient *http.Client
	normalizer *news.Normalizer
	tracker    *Tracker
	userAgent  string
	timeout    time.Duration
}

type theNewsAPIResponse struct {
	Data []theNewsAPIArticle `json:"data"`
}

type theNewsAPIArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Snippet     string `json:"snippet"`
	URL         string `json:"url"`
	ImageURL    string `json:"image_url"`
	PublishedAt string `json:"published_at"`
	Source      string `json:"source"`
}

func NewTheNewsAPI(apiToken string, httpClient *http.Client, normalizer *news.Normalizer,
	tracker *Tracker, userAgent string, timeout time.Duration) *TheNewsAPI {
	return &TheNewsAPI{
		apiToken:   apiToken,
		baseURL:    theNewsAPIBaseURL,
		httpClient: httpClient,
		normalizer: normalizer,
		tracker:    tracker,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

func (p *TheNewsAPI) Name() string {
	return "thenewsapi"
}

func (p *TheNewsAPI) Fetch(ctx context.Context, category news.Category, _ string) ([]news.Article, error) {
	if p.apiToken == "" {
		return nil, ErrNotConfigured
	}

	query := url.Values{}
	query.Set("api_token", p.apiToken)
	query.Set("locale", "us")
	query.Set("language", "en")
	query.Set("categories", mapCategory(theNewsAPICategories, category))
	query.Set("limit", fmt.Sprintf("%d", theNewsAPILimit))

	p.tracker.Track(p.Name())

	var payload theNewsAPIResponse
	if err := fetchJSON(ctx, p.httpClient, p.baseURL+"?"+query.Encode(), p.userAgent, p.timeout, &payload); err != nil {
		return nil, fmt.Errorf("thenewsapi fetch failed: %w", err)
	}

	articles := make([]news.Article, 0, len(payload.Data))
	for _, raw := range payload.Data {
		description := raw.Description
		if description == "" {
			description = raw.Snippet
		}

		article, err := p.normalizer.Run(news.Candidate{
			Title:       raw.Title,
			Description: description,
			URL:         raw.URL,
			ImageURL:    raw.ImageURL,
			RawDate:     raw.PublishedAt,
			SourceName:  sourceNameFromDomain(raw.Source),
		})
		if err != nil {
			if !isRejection(err) {
				slog.Warn("TheNewsAPI record normalization failed", "error", err)
			}
			continue
		}
		article.Content = raw.Snippet
		articles = append(articles, article)
	}

	return articles, nil
}
