package widgets

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/gpellis87/intel-briefing/app/cache"
	"github.com/gpellis87/intel-briefing/app/news"
)

// maxLocalArticleAge drops local stories older than two days; search feeds
// return deep archives that are useless on a dashboard.
const maxLocalArticleAge = 48 * time.Hour

const maxLocalItems = 30

// Feed sources recorded on a local news result.
const (
	LocalSourceGoogle   = "google"
	LocalSourceBing     = "bing"
	LocalSourceFallback = "fallback"
	LocalSourceNone     = "none"
)

// Fallback cities when a small town yields no search results: retry with a
// major city in the same state.
var stateMajorCities = map[string][]string{
	"Alabama":              {"Birmingham", "Huntsville", "Montgomery"},
	"Alaska":               {"Anchorage", "Fairbanks"},
	"Arizona":              {"Phoenix", "Tucson", "Mesa"},
	"Arkansas":             {"Little Rock", "Fayetteville"},
	"California":           {"Los Angeles", "San Francisco", "San Diego", "Sacramento"},
	"Colorado":             {"Denver", "Colorado Springs"},
	"Connecticut":          {"Hartford", "New Haven", "Stamford"},
	"Delaware":             {"Wilmington", "Dover"},
	"Florida":              {"Miami", "Tampa", "Orlando", "Jacksonville"},
	"Georgia":              {"Atlanta", "Savannah", "Augusta"},
	"Hawaii":               {"Honolulu"},
	"Idaho":                {"Boise"},
	"Illinois":             {"Chicago", "Springfield", "Rockford"},
	"Indiana":              {"Indianapolis", "Fort Wayne"},
	"Iowa":                 {"Des Moines", "Cedar Rapids"},
	"Kansas":               {"Wichita", "Kansas City", "Topeka"},
	"Kentucky":             {"Louisville", "Lexington"},
	"Louisiana":            {"New Orleans", "Baton Rouge"},
	"Maine":                {"Portland", "Bangor"},
	"Maryland":             {"Baltimore", "Annapolis"},
	"Massachusetts":        {"Boston", "Worcester", "Springfield"},
	"Michigan":             {"Detroit", "Grand Rapids", "Ann Arbor"},
	"Minnesota":            {"Minneapolis", "Saint Paul"},
	"Mississippi":          {"Jackson", "Gulfport"},
	"Missouri":             {"Kansas City", "St. Louis", "Springfield"},
	"Montana":              {"Billings", "Missoula"},
	"Nebraska":             {"Omaha", "Lincoln"},
	"Nevada":               {"Las Vegas", "Reno"},
	"New Hampshire":        {"Manchester", "Concord"},
	"New Jersey":           {"Newark", "Jersey City", "Trenton"},
	"New Mexico":           {"Albuquerque", "Santa Fe"},
	"New York":             {"New York City", "Buffalo", "Albany"},
	"North Carolina":       {"Charlotte", "Raleigh", "Durham"},
	"North Dakota":         {"Fargo", "Bismarck"},
	"Ohio":                 {"Columbus", "Cleveland", "Cincinnati"},
	"Oklahoma":             {"Oklahoma City", "Tulsa"},
	"Oregon":               {"Portland", "Salem", "Eugene"},
	"Pennsylvania":         {"Philadelphia", "Pittsburgh", "Harrisburg"},
	"Rhode Island":         {"Providence"},
	"South Carolina":       {"Charleston", "Columbia", "Greenville"},
	"South Dakota":         {"Sioux Falls", "Rapid City"},
	"Tennessee":            {"Nashville", "Memphis", "Knoxville"},
	"Texas":                {"Houston", "Dallas", "Austin", "San Antonio"},
	"Utah":                 {"Salt Lake City", "Provo"},
	"Vermont":              {"Burlington"},
	"Virginia":             {"Richmond", "Virginia Beach", "Norfolk"},
	"Washington":           {"Seattle", "Tacoma", "Spokane"},
	"West Virginia":        {"Charleston", "Huntington"},
	"Wisconsin":            {"Milwaukee", "Madison"},
	"Wyoming":              {"Cheyenne", "Casper"},
	"District of Columbia": {"Washington"},
}

// LocalResult is a local news lookup with its provenance: which search feed
// answered, and which major city stood in when the requested one was empty.
type LocalResult struct {
	Articles     []news.EnrichedArticle `json:"articles"`
	FeedSource   string                 `json:"feedSource"`
	FallbackCity string                 `json:"fallbackCity,omitempty"`
}

// Search feed URL templates, %s is the escaped query.
const (
	googleNewsURLFormat = "https://news.google.com/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en"
	bingNewsURLFormat   = "https://www.bing.com/news/search?q=%s&format=rss"
)

// LocalNews aggregates city-level news from Google News and Bing News RSS
// search feeds, cached per city-state key.
type LocalNews struct {
	cache      *cache.Cache[LocalResult]
	httpClient *http.Client
	parser     *gofeed.Parser
	normalizer *news.Normalizer
	enricher   *news.Enricher
	googleURL  string // URL templates, overridable in tests
	bingURL    string
	userAgent  string
	timeout    time.Duration
	now        func() time.Time
}

func NewLocalNews(resultCache *cache.Cache[LocalResult], httpClient *http.Client,
	normalizer *news.Normalizer, enricher *news.Enricher, userAgent string,
	timeout time.Duration) *LocalNews {
	return &LocalNews{
		cache:      resultCache,
		httpClient: httpClient,
		parser:     gofeed.NewParser(),
		normalizer: normalizer,
		enricher:   enricher,
		googleURL:  googleNewsURLFormat,
		bingURL:    bingNewsURLFormat,
		userAgent:  userAgent,
		timeout:    timeout,
		now:        time.Now,
	}
}

// Fetch returns local news for a city/state, trying the requested city
// first and falling back to major cities in the same state.
func (l *LocalNews) Fetch(ctx context.Context, city, state string) LocalResult {
	cacheKey := strings.ToLower(city + "-" + state)
	if cached, fresh := l.cache.Get(cacheKey); fresh {
		return cached
	}

	articles, feedSource := l.tryLocation(ctx, city, state)

	var fallbackCity string
	if len(articles) == 0 {
		for _, majorCity := range stateMajorCities[state] {
			if strings.EqualFold(majorCity, city) {
				continue
			}
			articles, _ = l.tryLocation(ctx, majorCity, state)
			if len(articles) > 0 {
				fallbackCity = majorCity
				feedSource = LocalSourceFallback
				break
			}
		}
	}

	if len(articles) == 0 {
		feedSource = LocalSourceNone
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})

	result := LocalResult{
		Articles:     articles,
		FeedSource:   feedSource,
		FallbackCity: fallbackCity,
	}
	l.cache.Set(cacheKey, result)

	return result
}

// tryLocation queries Google News first, then Bing News.
func (l *LocalNews) tryLocation(ctx context.Context, city, state string) ([]news.EnrichedArticle, string) {
	location := city + " " + state

	googleURL := fmt.Sprintf(l.googleURL, url.QueryEscape(location+" local news"))
	if articles, err := l.fetchSearchFeed(ctx, googleURL, true); err != nil {
		slog.Warn("Google News search failed", "location", location, "error", err)
	} else if len(articles) > 0 {
		return articles, LocalSourceGoogle
	}

	bingURL := fmt.Sprintf(l.bingURL, url.QueryEscape(location+" news"))
	if articles, err := l.fetchSearchFeed(ctx, bingURL, false); err != nil {
		slog.Warn("Bing News search failed", "location", location, "error", err)
	} else if len(articles) > 0 {
		return articles, LocalSourceBing
	}

	return nil, LocalSourceNone
}

func (l *LocalNews) fetchSearchFeed(ctx context.Context, feedURL string, splitSourceSuffix bool) ([]news.EnrichedArticle, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml, */*")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch search feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	feed, err := l.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search feed: %w", err)
	}

	cutoff := l.now().Add(-maxLocalArticleAge)

	articles := make([]news.EnrichedArticle, 0, maxLocalItems)
	for i, item := range feed.Items {
		if i == maxLocalItems {
			break
		}

		candidate := news.Candidate{
			Title:             item.Title,
			Description:       news.StripHTML(item.Description),
			ContentHTML:       item.Content,
			URL:               item.Link,
			ParsedDate:        item.PublishedParsed,
			RawDate:           item.Published,
			SplitSourceSuffix: splitSourceSuffix,
		}
		if len(item.Enclosures) > 0 && item.Enclosures[0] != nil {
			candidate.EnclosureURL = item.Enclosures[0].URL
			candidate.EnclosureType = item.Enclosures[0].Type
		}

		article, err := l.normalizer.Run(candidate)
		if err != nil {
			continue
		}
		if article.PublishedAt.Before(cutoff) {
			continue
		}

		articles = append(articles, l.enricher.Run(article))
	}

	return articles, nil
}
