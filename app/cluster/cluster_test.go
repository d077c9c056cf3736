package cluster

import (
	"reflect"
	"testing"
	"time"

	"github.com/gpellis87/intel-briefing/app/news"
)

func enriched(title string, reliability *int) news.EnrichedArticle {
	return news.EnrichedArticle{
		Article: news.Article{
			Title:       title,
			URL:         "https://example.com/" + title,
			PublishedAt: time.Date(2026, 2, 25, 12, 0, 0, 0, time.UTC),
		},
		ID:          news.GenerateID(title, "https://example.com/"+title),
		Reliability: reliability,
	}
}

func intPtr(v int) *int { return &v }

func TestRun_GroupsSimilarHeadlines(t *testing.T) {
	articles := []news.EnrichedArticle{
		enriched("Senate Passes New Tax Bill", intPtr(90)),
		enriched("Scientists Discover Distant Exoplanet", nil),
		enriched("Senate Approves New Tax Legislation", intPtr(70)),
	}

	clusters := Run(articles)

	if len(clusters) != 2 {
		t.Fatalf("Expected 2 clusters, got %d", len(clusters))
	}

	// Larger cluster sorts first.
	if len(clusters[0].Articles) != 2 {
		t.Errorf("Expected tax story cluster of 2, got %d", len(clusters[0].Articles))
	}
	if len(clusters[1].Articles) != 1 {
		t.Errorf("Expected singleton exoplanet cluster, got %d", len(clusters[1].Articles))
	}
}

func TestRun_LeadIsHighestReliability(t *testing.T) {
	articles := []news.EnrichedArticle{
		enriched("Senate Passes New Tax Bill", intPtr(70)),
		enriched("Senate Approves New Tax Legislation", intPtr(90)),
	}

	clusters := Run(articles)

	if len(clusters) != 1 {
		t.Fatalf("Expected 1 cluster, got %d", len(clusters))
	}
	if clusters[0].Lead.Title != "Senate Approves New Tax Legislation" {
		t.Errorf("Expected higher reliability lead, got %q", clusters[0].Lead.Title)
	}
}

func TestRun_LeadTieKeepsEarliest(t *testing.T) {
	articles := []news.EnrichedArticle{
		enriched("Senate Passes New Tax Bill", intPtr(80)),
		enriched("Senate Approves New Tax Legislation", intPtr(80)),
	}

	clusters := Run(articles)

	if clusters[0].Lead.Title != "Senate Passes New Tax Bill" {
		t.Errorf("Tie should keep earliest member, got %q", clusters[0].Lead.Title)
	}
}

func TestRun_NilReliabilityTreatedAsZero(t *testing.T) {
	articles := []news.EnrichedArticle{
		enriched("Senate Passes New Tax Bill", nil),
		enriched("Senate Approves New Tax Legislation", intPtr(10)),
	}

	clusters := Run(articles)

	if clusters[0].Lead.Title != "Senate Approves New Tax Legislation" {
		t.Errorf("Known reliability should beat unknown, got %q", clusters[0].Lead.Title)
	}
}

func TestRun_SingletonIsOwnLead(t *testing.T) {
	articles := []news.EnrichedArticle{
		enriched("Completely Unique Headline About Volcanoes", nil),
	}

	clusters := Run(articles)

	if len(clusters) != 1 {
		t.Fatalf("Expected 1 cluster, got %d", len(clusters))
	}
	if clusters[0].Lead.ID != articles[0].ID {
		t.Error("Singleton cluster lead should be the article itself")
	}
	if len(clusters[0].Articles) != 1 {
		t.Errorf("Expected 1 member, got %d", len(clusters[0].Articles))
	}
}

func TestRun_KeywordsCapped(t *testing.T) {
	articles := []news.EnrichedArticle{
		enriched("Massive Storm Devastates Coastal Towns Across Florida Panhandle Region", nil),
		enriched("Massive Storm Devastates Florida Communities Leaving Thousands Homeless", nil),
	}

	clusters := Run(articles)

	if len(clusters) != 1 {
		t.Fatalf("Expected 1 cluster, got %d", len(clusters))
	}
	if len(clusters[0].Keywords) > MaxKeywords {
		t.Errorf("Keywords must be capped at %d, got %d", MaxKeywords, len(clusters[0].Keywords))
	}
	// Seed keywords come first, in headline order.
	if clusters[0].Keywords[0] != "massive" || clusters[0].Keywords[1] != "storm" {
		t.Errorf("Unexpected keyword order: %v", clusters[0].Keywords)
	}
}

func TestRun_Deterministic(t *testing.T) {
	articles := []news.EnrichedArticle{
		enriched("Senate Passes New Tax Bill", intPtr(90)),
		enriched("Markets Tumble On Inflation Data", intPtr(80)),
		enriched("Senate Approves New Tax Legislation", intPtr(70)),
		enriched("Stock Markets Fall Sharply On Inflation Report", intPtr(60)),
	}

	first := Run(articles)
	second := Run(articles)

	if !reflect.DeepEqual(first, second) {
		t.Error("Clustering must be deterministic for identical input")
	}
}

func TestRun_Empty(t *testing.T) {
	clusters := Run(nil)
	if clusters == nil || len(clusters) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", clusters)
	}
}

func TestRun_BelowThresholdStaysSeparate(t *testing.T) {
	articles := []news.EnrichedArticle{
		enriched("Senate Passes New Tax Bill", nil),
		enriched("Local Team Wins Championship Game", nil),
	}

	clusters := Run(articles)

	if len(clusters) != 2 {
		t.Errorf("Dissimilar headlines must not cluster, got %d clusters", len(clusters))
	}
}
