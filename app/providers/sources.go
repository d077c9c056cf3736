package providers

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gpellis87/intel-briefing/app/news"
)

// FeedSource is one configured RSS feed within a category.
type FeedSource struct {
	Name   string `yaml:"name"`
	URL    string `yaml:"url"`
	Domain string `yaml:"domain"`
}

// FeedRegistry maps each category to its configured feed list, loaded once
// at startup and read-only afterwards.
type FeedRegistry struct {
	byCategory map[string][]FeedSource
}

// LoadFeeds reads and validates the per-category feed list from a YAML file.
func LoadFeeds(path string) (*FeedRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feeds file: %w", err)
	}

	var byCategory map[string][]FeedSource
	if err := yaml.Unmarshal(data, &byCategory); err != nil {
		return nil, fmt.Errorf("failed to parse feeds file: %w", err)
	}

	registry := &FeedRegistry{byCategory: byCategory}
	if err := registry.validate(); err != nil {
		return nil, fmt.Errorf("invalid feeds file %s: %w", path, err)
	}

	slog.Debug("Feed registry loaded", "path", path, "categories", len(byCategory))

	return registry, nil
}

// Sources returns the feeds for a category, falling back to the general
// list for categories with no dedicated feeds.
func (r *FeedRegistry) Sources(category news.Category) []FeedSource {
	if sources, ok := r.byCategory[string(category)]; ok && len(sources) > 0 {
		return sources
	}
	return r.byCategory[string(news.CategoryGeneral)]
}

func (r *FeedRegistry) CategoryCount() int {
	return len(r.byCategory)
}

func (r *FeedRegistry) validate() error {
	if len(r.byCategory[string(news.CategoryGeneral)]) == 0 {
		return fmt.Errorf("at least one general feed is required")
	}

	for category, sources := range r.byCategory {
		if !news.Category(category).IsValid() {
			return fmt.Errorf("unknown category: %s", category)
		}
		for i, source := range sources {
			if source.Name == "" || source.URL == "" {
				return fmt.Errorf("feed %d in category %s: name and url are required", i, category)
			}
		}
	}

	return nil
}
