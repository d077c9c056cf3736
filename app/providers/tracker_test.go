package providers

import (
	"testing"
	"time"
)

func TestTracker_CountsPerProvider(t *testing.T) {
	tracker := NewTracker()

	tracker.Track("rss")
	tracker.Track("rss")
	tracker.Track("currents")

	stats := tracker.Stats()
	if stats["rss"].Count != 2 {
		t.Errorf("Expected rss count 2, got %d", stats["rss"].Count)
	}
	if stats["currents"].Count != 1 {
		t.Errorf("Expected currents count 1, got %d", stats["currents"].Count)
	}
	if _, ok := stats["newsapi"]; ok {
		t.Error("Untracked provider should not appear in stats")
	}
}

func TestTracker_ResetsAtMidnight(t *testing.T) {
	tracker := NewTracker()

	current := time.Date(2026, 2, 25, 23, 50, 0, 0, time.Local)
	tracker.now = func() time.Time { return current }

	tracker.Track("rss")
	tracker.Track("rss")
	if tracker.Stats()["rss"].Count != 2 {
		t.Fatalf("Expected 2 before midnight, got %d", tracker.Stats()["rss"].Count)
	}

	// Past midnight the counter starts over.
	current = time.Date(2026, 2, 26, 0, 10, 0, 0, time.Local)
	tracker.Track("rss")

	stat := tracker.Stats()["rss"]
	if stat.Count != 1 {
		t.Errorf("Expected count reset to 1 after midnight, got %d", stat.Count)
	}
	expectedReset := time.Date(2026, 2, 26, 0, 0, 0, 0, time.Local)
	if !stat.ResetAt.Equal(expectedReset) {
		t.Errorf("Expected reset at %v, got %v", expectedReset, stat.ResetAt)
	}
}

func TestTracker_StatsReturnsCopy(t *testing.T) {
	tracker := NewTracker()
	tracker.Track("rss")

	stats := tracker.Stats()
	stats["rss"] = Stat{Count: 99}

	if tracker.Stats()["rss"].Count != 1 {
		t.Error("Mutating the returned map must not affect the tracker")
	}
}
