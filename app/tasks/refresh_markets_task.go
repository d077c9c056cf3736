package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gpellis87/intel-briefing/app/widgets"
)

// RefreshMarketsTask keeps the default market quote range warm between
// dashboard visits.
type RefreshMarketsTask struct {
	Task
	Range   string
	markets *widgets.Markets
}

func NewRefreshMarketsTask(chartRange string, markets *widgets.Markets) *RefreshMarketsTask {
	return &RefreshMarketsTask{
		Task:    NewTask(TaskTypeRefreshMarkets, chartRange),
		Range:   chartRange,
		markets: markets,
	}
}

func (t *RefreshMarketsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	quotes, _ := t.markets.Quotes(ctx, t.Range)
	if len(quotes) == 0 {
		return fmt.Errorf("no market quotes returned for range %s", t.Range)
	}

	slog.Info("Task completed",
		"type", "RefreshMarkets",
		"range", t.Range,
		"duration", t.GetDuration(),
		"quotes", len(quotes))

	return nil
}
