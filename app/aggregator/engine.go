package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/gpellis87/intel-briefing/app/cache"
	"github.com/gpellis87/intel-briefing/app/news"
	"github.com/gpellis87/intel-briefing/app/providers"
)

// MinArticles is the early-stop threshold: fallback-tier providers are only
// consulted when the real-time tier delivered fewer distinct articles.
const MinArticles = 10

// Engine produces a deduplicated, time-ordered article list per
// (category, region), with caching and cascading provider fallback.
//
// Realtime providers run concurrently as one tier; the fallback tier only
// triggers when the realtime tier underfills. A single provider's failure
// never aborts aggregation, it simply contributes zero articles.
type Engine struct {
	cache    *cache.Cache[[]news.EnrichedArticle]
	enricher *news.Enricher
	realtime []providers.Provider
	fallback []providers.Provider
}

func NewEngine(articleCache *cache.Cache[[]news.EnrichedArticle], enricher *news.Enricher,
	realtime, fallback []providers.Provider) *Engine {
	return &Engine{
		cache:    articleCache,
		enricher: enricher,
		realtime: realtime,
		fallback: fallback,
	}
}

// FetchArticles returns the enriched article list for a (category, region)
// key. Never fails from the caller's perspective: a total provider outage
// degrades to the static sample set.
func (e *Engine) FetchArticles(ctx context.Context, category news.Category, region string) []news.EnrichedArticle {
	key := cacheKey(category, region)
	if cached, fresh := e.cache.Get(key); fresh {
		slog.Debug("Aggregation cache hit", "key", key, "articles", len(cached))
		return cached
	}

	merged := newMergeSet()
	merged.addAll(e.fetchTier(ctx, e.realtime, category, region))

	if merged.len() < MinArticles {
		slog.Info("Real-time providers underfilled, consulting fallback tier",
			"category", category, "collected", merged.len(), "threshold", MinArticles)
		merged.addAll(e.fetchTier(ctx, e.fallback, category, region))
	}

	if merged.len() == 0 {
		slog.Warn("All providers returned zero articles, serving sample set", "category", category)
		return e.sampleArticles(category)
	}

	enriched := e.enricher.RunAll(merged.articles)
	sort.SliceStable(enriched, func(i, j int) bool {
		return enriched[i].PublishedAt.After(enriched[j].PublishedAt)
	})

	e.cache.Set(key, enriched)

	slog.Info("Aggregation completed", "category", category, "region", region, "articles", len(enriched))

	return enriched
}

// fetchTier runs one priority tier of providers concurrently and returns
// their results in provider priority order, so the merge's
// first-occurrence-wins dedup prefers higher-priority copies.
func (e *Engine) fetchTier(ctx context.Context, tier []providers.Provider,
	category news.Category, region string) [][]news.Article {
	results := make([][]news.Article, len(tier))

	g, gCtx := errgroup.WithContext(ctx)
	for i, provider := range tier {
		g.Go(func() error {
			fetched, err := provider.Fetch(gCtx, category, region)
			if err != nil {
				if errors.Is(err, providers.ErrNotConfigured) {
					slog.Debug("Provider skipped", "provider", provider.Name())
				} else {
					slog.Warn("Provider fetch failed", "provider", provider.Name(), "error", err)
				}
				return nil
			}
			results[i] = fetched
			return nil
		})
	}
	g.Wait()

	return results
}

func (e *Engine) sampleArticles(category news.Category) []news.EnrichedArticle {
	return e.enricher.RunAll(sampleSet(category))
}

func cacheKey(category news.Category, region string) string {
	return fmt.Sprintf("%s:%s", category, region)
}

// mergeSet accumulates articles deduplicated by URL, first occurrence wins.
type mergeSet struct {
	articles []news.Article
	seenURLs map[string]struct{}
}

func newMergeSet() *mergeSet {
	return &mergeSet{seenURLs: make(map[string]struct{})}
}

func (m *mergeSet) addAll(tiers [][]news.Article) {
	for _, articles := range tiers {
		for _, article := range articles {
			// NewsAPI tombstones deleted articles under this title
			if article.Title == "[Removed]" {
				continue
			}
			if _, seen := m.seenURLs[article.URL]; seen {
				continue
			}
			m.seenURLs[article.URL] = struct{}{}
			m.articles = append(m.articles, article)
		}
	}
}

func (m *mergeSet) len() int {
	return len(m.articles)
}
