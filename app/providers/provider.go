package providers

import (
	"context"
	"errors"

	"github.com/gpellis87/intel-briefing/app/news"
)

// ErrNotConfigured marks a provider whose API credentials are absent. The
// aggregation engine skips such providers without counting a failure.
var ErrNotConfigured = errors.New("provider not configured")

// Provider is one upstream news source adapter. Implementations keep all
// provider quirks (category vocabulary, payload shape) behind this boundary:
// a timeout, non-2xx response, or parse error surfaces as an error here and
// is treated as zero articles by the caller, never propagated further.
//
// Region is only meaningful to region-sensitive providers; the others
// ignore it.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, category news.Category, region string) ([]news.Article, error)
}

// mapCategory translates the aggregator's logical category into a provider's
// vocabulary, falling back to the provider's "general" equivalent.
func mapCategory(vocabulary map[news.Category]string, category news.Category) string {
	if mapped, ok := vocabulary[category]; ok {
		return mapped
	}
	return vocabulary[news.CategoryGeneral]
}
