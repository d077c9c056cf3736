package providers

import (
	"log/slog"
	"sync"
	"time"
)

// Stat is one provider's call count for the current day.
type Stat struct {
	Count   int       `json:"count"`
	ResetAt time.Time `json:"resetAt"`
}

// Tracker counts upstream calls per provider per day, resetting at local
// midnight. Purely observational: it never influences fetch behavior.
type Tracker struct {
	mu       sync.Mutex
	counters map[string]Stat
	now      func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{
		counters: make(map[string]Stat),
		now:      time.Now,
	}
}

func (t *Tracker) Track(provider string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	stat := t.counters[provider]
	if stat.ResetAt.Before(dayStart) {
		stat = Stat{ResetAt: dayStart}
	}
	stat.Count++
	t.counters[provider] = stat

	slog.Debug("Provider call tracked", "provider", provider, "count_today", stat.Count)
}

// Stats returns a copy of every provider's current counter.
func (t *Tracker) Stats() map[string]Stat {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats := make(map[string]Stat, len(t.counters))
	for provider, stat := range t.counters {
		stats[provider] = stat
	}
	return stats
}
