package widgets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gpellis87/intel-briefing/app/cache"
)

const testScoreboardJSON = `{
	"events": [
		{
			"id": "401547435",
			"name": "Buffalo Bills at Kansas City Chiefs",
			"date": "2026-02-25T23:00Z",
			"status": {"type": {"state": "in", "completed": false, "shortDetail": "Q3 8:42"}},
			"competitions": [
				{
					"id": "401547435",
					"competitors": [
						{
							"homeAway": "home",
							"score": "24",
							"team": {"displayName": "Kansas City Chiefs", "abbreviation": "KC", "logo": "https://a.espncdn.com/kc.png"}
						},
						{
							"homeAway": "away",
							"score": "17",
							"team": {"displayName": "Buffalo Bills", "abbreviation": "BUF", "logo": "https://a.espncdn.com/buf.png"}
						}
					]
				}
			]
		}
	]
}`

func newTestScores(serverURL string) *Scores {
	s := NewScores(cache.New[[]GameScore](2*time.Minute), http.DefaultClient, "test-agent", time.Second)
	s.urlFormat = serverURL + "/%s/%s/scoreboard"
	return s
}

func TestScores_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testScoreboardJSON))
	}))
	defer server.Close()

	s := newTestScores(server.URL)

	games, keys, err := s.Fetch(context.Background(), "nfl")
	if err != nil {
		t.Fatal(err)
	}

	if len(keys) != 1 || keys[0] != "nfl" {
		t.Errorf("Unexpected league keys: %v", keys)
	}
	if len(games) != 1 {
		t.Fatalf("Expected 1 game, got %d", len(games))
	}

	game := games[0]
	if game.HomeTeam.Name != "Kansas City Chiefs" || game.HomeTeam.Score != 24 {
		t.Errorf("Unexpected home team: %+v", game.HomeTeam)
	}
	if game.AwayTeam.Abbr != "BUF" || game.AwayTeam.Score != 17 {
		t.Errorf("Unexpected away team: %+v", game.AwayTeam)
	}
	if game.Status != StatusInProgress {
		t.Errorf("Expected in_progress, got %s", game.Status)
	}
	if game.Detail != "Q3 8:42" {
		t.Errorf("Unexpected detail: %s", game.Detail)
	}
}

func TestScores_UnknownLeague(t *testing.T) {
	s := newTestScores("http://unused.example")

	_, _, err := s.Fetch(context.Background(), "cricket")
	if !errors.Is(err, ErrUnknownLeague) {
		t.Errorf("Expected ErrUnknownLeague, got %v", err)
	}
}

func TestScores_AllLeagues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"events": []}`))
	}))
	defer server.Close()

	s := newTestScores(server.URL)

	_, keys, err := s.Fetch(context.Background(), "all")
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != len(leagues) {
		t.Errorf("Expected %d league keys, got %d", len(leagues), len(keys))
	}
}

func TestParseScoreboard_RacingEvent(t *testing.T) {
	status := &espnStatus{}
	status.Type.State = "post"
	status.Type.Completed = true

	payload := espnScoreboard{
		Events: []espnEvent{
			{
				ID:     "600041",
				Name:   "Daytona 500",
				Date:   "2026-02-15T18:00Z",
				Status: status,
			},
		},
	}

	scores := parseScoreboard(payload, "nascar")
	if len(scores) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(scores))
	}
	if scores[0].EventName != "Daytona 500" {
		t.Errorf("Unexpected event name: %s", scores[0].EventName)
	}
	if scores[0].Status != StatusFinal {
		t.Errorf("Expected final, got %s", scores[0].Status)
	}
	// Racing events fall back to the event name as detail.
	if scores[0].Detail != "Daytona 500" {
		t.Errorf("Unexpected detail: %s", scores[0].Detail)
	}
}

func TestParseGameStatus(t *testing.T) {
	if got := parseGameStatus(nil); got != StatusScheduled {
		t.Errorf("nil status should be scheduled, got %s", got)
	}

	cases := map[string]string{
		"pre":  StatusScheduled,
		"in":   StatusInProgress,
		"post": StatusFinal,
	}
	for state, expected := range cases {
		status := &espnStatus{}
		status.Type.State = state
		if got := parseGameStatus(status); got != expected {
			t.Errorf("State %s: expected %s, got %s", state, expected, got)
		}
	}

	// Unknown state falls back to the completed flag.
	status := &espnStatus{}
	status.Type.Completed = true
	if got := parseGameStatus(status); got != StatusFinal {
		t.Errorf("Completed flag should yield final, got %s", got)
	}
}
