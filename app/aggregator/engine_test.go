package aggregator

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/gpellis87/intel-briefing/app/cache"
	"github.com/gpellis87/intel-briefing/app/news"
	"github.com/gpellis87/intel-briefing/app/providers"
)

type stubProvider struct {
	name     string
	articles []news.Article
	err      error
	calls    int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Fetch(ctx context.Context, category news.Category, region string) ([]news.Article, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.articles, nil
}

type emptyLookup struct{}

func (emptyLookup) Lookup(domain, name string) (news.BiasInfo, bool) {
	return news.BiasInfo{}, false
}

func stubArticles(prefix string, count int) []news.Article {
	base := time.Date(2026, 2, 25, 12, 0, 0, 0, time.UTC)
	articles := make([]news.Article, 0, count)
	for i := 0; i < count; i++ {
		articles = append(articles, news.Article{
			Title:       fmt.Sprintf("%s Story %d", prefix, i),
			URL:         fmt.Sprintf("https://example.com/%s/%d", prefix, i),
			PublishedAt: base.Add(-time.Duration(i) * time.Hour),
			SourceName:  prefix,
		})
	}
	return articles
}

func newTestEngine(realtime, fallback []providers.Provider) *Engine {
	return NewEngine(
		cache.New[[]news.EnrichedArticle](15*time.Minute),
		news.NewEnricher(emptyLookup{}),
		realtime, fallback)
}

func TestEngine_DeduplicatesByURL(t *testing.T) {
	shared := news.Article{
		Title:       "Shared Story",
		URL:         "https://example.com/shared",
		PublishedAt: time.Date(2026, 2, 25, 12, 0, 0, 0, time.UTC),
		SourceName:  "rss",
	}
	duplicate := shared
	duplicate.SourceName = "currents"

	rss := &stubProvider{name: "rss", articles: append(stubArticles("rss", 10), shared)}
	currents := &stubProvider{name: "currents", articles: []news.Article{duplicate}}

	engine := newTestEngine([]providers.Provider{rss, currents}, nil)
	articles := engine.FetchArticles(context.Background(), news.CategoryGeneral, "us")

	count := 0
	for _, article := range articles {
		if article.URL == "https://example.com/shared" {
			count++
			// Higher priority provider's copy wins.
			if article.SourceName != "rss" {
				t.Errorf("Expected rss copy to win, got %s", article.SourceName)
			}
		}
	}
	if count != 1 {
		t.Errorf("Expected shared URL exactly once, got %d", count)
	}
}

func TestEngine_SortedByRecency(t *testing.T) {
	rss := &stubProvider{name: "rss", articles: stubArticles("rss", 12)}
	engine := newTestEngine([]providers.Provider{rss}, nil)

	articles := engine.FetchArticles(context.Background(), news.CategoryGeneral, "us")

	for i := 1; i < len(articles); i++ {
		if articles[i].PublishedAt.After(articles[i-1].PublishedAt) {
			t.Fatalf("Articles out of order at %d: %v after %v",
				i, articles[i].PublishedAt, articles[i-1].PublishedAt)
		}
	}
}

func TestEngine_FallbackOnlyWhenUnderfilled(t *testing.T) {
	rss := &stubProvider{name: "rss", articles: stubArticles("rss", MinArticles)}
	fallback := &stubProvider{name: "newsapi", articles: stubArticles("newsapi", 5)}

	engine := newTestEngine([]providers.Provider{rss}, []providers.Provider{fallback})
	engine.FetchArticles(context.Background(), news.CategoryGeneral, "us")

	if fallback.calls != 0 {
		t.Error("Fallback tier must not run when the realtime tier fills the threshold")
	}
}

func TestEngine_FallbackWhenUnderfilled(t *testing.T) {
	rss := &stubProvider{name: "rss", articles: stubArticles("rss", 4)}
	fallback := &stubProvider{name: "newsapi", articles: stubArticles("newsapi", 6)}

	engine := newTestEngine([]providers.Provider{rss}, []providers.Provider{fallback})
	articles := engine.FetchArticles(context.Background(), news.CategoryGeneral, "us")

	if fallback.calls != 1 {
		t.Error("Fallback tier should run when realtime underfills")
	}
	if len(articles) != 10 {
		t.Errorf("Expected merged 10 articles, got %d", len(articles))
	}
}

func TestEngine_CachesResults(t *testing.T) {
	rss := &stubProvider{name: "rss", articles: stubArticles("rss", 12)}
	engine := newTestEngine([]providers.Provider{rss}, nil)

	first := engine.FetchArticles(context.Background(), news.CategoryGeneral, "us")
	second := engine.FetchArticles(context.Background(), news.CategoryGeneral, "us")

	if rss.calls != 1 {
		t.Errorf("Second call within TTL must hit the cache, provider called %d times", rss.calls)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Cached result must be identical")
	}
}

func TestEngine_CacheKeyPerCategoryAndRegion(t *testing.T) {
	rss := &stubProvider{name: "rss", articles: stubArticles("rss", 12)}
	engine := newTestEngine([]providers.Provider{rss}, nil)

	engine.FetchArticles(context.Background(), news.CategoryGeneral, "us")
	engine.FetchArticles(context.Background(), news.CategoryGeneral, "gb")
	engine.FetchArticles(context.Background(), news.CategoryScience, "us")

	if rss.calls != 3 {
		t.Errorf("Each (category, region) pair has its own cache entry, provider called %d times", rss.calls)
	}
}

func TestEngine_SampleFallbackOnTotalOutage(t *testing.T) {
	rss := &stubProvider{name: "rss", err: fmt.Errorf("network down")}
	fallback := &stubProvider{name: "newsapi", err: providers.ErrNotConfigured}

	engine := newTestEngine([]providers.Provider{rss}, []providers.Provider{fallback})
	articles := engine.FetchArticles(context.Background(), news.CategoryGeneral, "us")

	if len(articles) == 0 {
		t.Fatal("Total outage must degrade to the sample set, not an empty response")
	}

	// Sample data is not cached, so recovery is picked up immediately.
	rss.err = nil
	rss.articles = stubArticles("rss", 12)
	recovered := engine.FetchArticles(context.Background(), news.CategoryGeneral, "us")

	if recovered[0].SourceName != "rss" {
		t.Error("Recovered fetch should serve live articles, not the cached sample set")
	}
}

func TestEngine_SkipsRemovedTombstones(t *testing.T) {
	tombstone := news.Article{
		Title:       "[Removed]",
		URL:         "https://example.com/removed",
		PublishedAt: time.Date(2026, 2, 25, 12, 0, 0, 0, time.UTC),
	}
	rss := &stubProvider{name: "rss", articles: append(stubArticles("rss", 10), tombstone)}

	engine := newTestEngine([]providers.Provider{rss}, nil)
	articles := engine.FetchArticles(context.Background(), news.CategoryGeneral, "us")

	for _, article := range articles {
		if article.Title == "[Removed]" {
			t.Error("Tombstoned articles must be dropped")
		}
	}
}

func TestSampleSet_CoversEveryCategory(t *testing.T) {
	for _, category := range news.Categories {
		if len(sampleSet(category)) == 0 {
			t.Errorf("Category %s has no sample articles", category)
		}
	}
}
