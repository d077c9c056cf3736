package api

import (
	"github.com/gpellis87/intel-briefing/app/aggregator"
	"github.com/gpellis87/intel-briefing/app/bias"
	"github.com/gpellis87/intel-briefing/app/cache"
	"github.com/gpellis87/intel-briefing/app/news"
	"github.com/gpellis87/intel-briefing/app/providers"
	"github.com/gpellis87/intel-briefing/app/widgets"
)

type Handler struct {
	engine    *aggregator.Engine
	newsCache *cache.Cache[[]news.EnrichedArticle]
	biasTable *bias.Table
	tracker   *providers.Tracker
	markets   *widgets.Markets
	weather   *widgets.Weather
	scores    *widgets.Scores
	localNews *widgets.LocalNews
}
