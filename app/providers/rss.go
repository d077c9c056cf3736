package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/gpellis87/intel-briefing/app/news"
)

// maxItemsPerFeed bounds how many items one feed can contribute per fetch.
const maxItemsPerFeed = 10

// RSS is the primary, unmetered provider: it fans out to the configured
// per-category feed sources concurrently. One feed's failure never blocks
// or fails the others.
type RSS struct {
	registry   *FeedRegistry
	httpClient *http.Client
	parser     *gofeed.Parser
	normalizer *news.Normalizer
	tracker    *Tracker
	userAgent  string
	timeout    time.Duration
}

func NewRSS(registry *FeedRegistry, httpClient *http.Client, normalizer *news.Normalizer,
	tracker *Tracker, userAgent string, timeout time.Duration) *RSS {
	return &RSS{
		registry:   registry,
		httpClient: httpClient,
		parser:     gofeed.NewParser(),
		normalizer: normalizer,
		tracker:    tracker,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

func (p *RSS) Name() string {
	return "rss"
}

func (p *RSS) Fetch(ctx context.Context, category news.Category, _ string) ([]news.Article, error) {
	sources := p.registry.Sources(category)
	if len(sources) == 0 {
		return nil, fmt.Errorf("no feeds configured for category %s", category)
	}

	p.tracker.Track(p.Name())

	var (
		mu       sync.Mutex
		articles []news.Article
	)

	// All-settled join: every goroutine returns nil so one feed's failure
	// cannot cancel the siblings.
	g, gCtx := errgroup.WithContext(ctx)
	for _, source := range sources {
		g.Go(func() error {
			fetched, err := p.fetchFeed(gCtx, source)
			if err != nil {
				slog.Warn("RSS feed fetch failed", "feed", source.Name, "error", err)
				return nil
			}

			mu.Lock()
			articles = append(articles, fetched...)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	return articles, nil
}

func (p *RSS) fetchFeed(ctx context.Context, source FeedSource) ([]news.Article, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", source.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml, */*")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	feed, err := p.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	articles := make([]news.Article, 0, maxItemsPerFeed)
	for i, item := range feed.Items {
		if i == maxItemsPerFeed {
			break
		}

		article, err := p.normalizer.Run(p.candidateFromItem(item, source))
		if err != nil {
			if !isRejection(err) {
				slog.Warn("RSS item normalization failed", "feed", source.Name, "error", err)
			}
			continue
		}
		articles = append(articles, article)
	}

	return articles, nil
}

func (p *RSS) candidateFromItem(item *gofeed.Item, source FeedSource) news.Candidate {
	candidate := news.Candidate{
		Title:       item.Title,
		Description: news.StripHTML(item.Description),
		ContentHTML: item.Content,
		URL:         item.Link,
		ParsedDate:  item.PublishedParsed,
		RawDate:     item.Published,
		SourceName:  source.Name,
		MediaURL:    mediaURL(item),
	}

	if len(item.Enclosures) > 0 && item.Enclosures[0] != nil {
		candidate.EnclosureURL = item.Enclosures[0].URL
		candidate.EnclosureType = item.Enclosures[0].Type
	}

	if len(item.Authors) > 0 && item.Authors[0] != nil {
		candidate.Author = item.Authors[0].Name
	} else if item.Author != nil {
		candidate.Author = item.Author.Name
	}

	return candidate
}

// mediaURL pulls the media:content or media:thumbnail URL from the item's
// extension tree, media:content first.
func mediaURL(item *gofeed.Item) string {
	media, ok := item.Extensions["media"]
	if !ok {
		return ""
	}

	for _, field := range []string{"content", "thumbnail"} {
		for _, ext := range media[field] {
			if url := ext.Attrs["url"]; url != "" {
				return url
			}
		}
	}

	return ""
}

func isRejection(err error) bool {
	return errors.Is(err, news.ErrMissingFields) ||
		errors.Is(err, news.ErrInvalidDate) ||
		errors.Is(err, news.ErrFutureDate) ||
		errors.Is(err, news.ErrLiveBlogURL)
}
