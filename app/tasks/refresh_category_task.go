package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gpellis87/intel-briefing/app/aggregator"
	"github.com/gpellis87/intel-briefing/app/news"
)

// RefreshCategoryTask pre-warms the article cache for a single category so
// that dashboard requests hit fresh entries instead of waiting on providers.
type RefreshCategoryTask struct {
	Task
	Category news.Category
	Region   string
	engine   *aggregator.Engine
}

func NewRefreshCategoryTask(category news.Category, region string, engine *aggregator.Engine) *RefreshCategoryTask {
	return &RefreshCategoryTask{
		Task:     NewTask(TaskTypeRefreshCategory, string(category)),
		Category: category,
		Region:   region,
		engine:   engine,
	}
}

func (t *RefreshCategoryTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.Category.IsValid() {
		return fmt.Errorf("unknown category: %s", t.Category)
	}

	articles := t.engine.FetchArticles(ctx, t.Category, t.Region)

	slog.Info("Task completed",
		"type", "RefreshCategory",
		"category", string(t.Category),
		"duration", t.GetDuration(),
		"articles", len(articles))

	return nil
}
