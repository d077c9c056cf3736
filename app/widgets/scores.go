package widgets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gpellis87/intel-briefing/app/cache"
)

const espnScoreboardURLFormat = "https://site.api.espn.com/apis/site/v2/sports/%s/%s/scoreboard"

var ErrUnknownLeague = errors.New("unknown league")

// Game status values as exposed to the dashboard ticker.
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusFinal      = "final"
)

type LeagueConfig struct {
	Key    string
	Label  string
	Sport  string
	League string
}

var leagues = []LeagueConfig{
	{"nfl", "NFL", "football", "nfl"},
	{"nba", "NBA", "basketball", "nba"},
	{"mlb", "MLB", "baseball", "mlb"},
	{"nhl", "NHL", "hockey", "nhl"},
	{"mls", "MLS", "soccer", "usa.1"},
	{"nascar", "NASCAR", "racing", "nascar"},
	{"f1", "F1", "racing", "f1"},
}

type TeamInfo struct {
	Name  string `json:"name"`
	Abbr  string `json:"abbr"`
	Logo  string `json:"logo"`
	Score int    `json:"score"`
}

type GameScore struct {
	ID        string   `json:"id"`
	League    string   `json:"league"`
	HomeTeam  TeamInfo `json:"homeTeam"`
	AwayTeam  TeamInfo `json:"awayTeam"`
	Status    string   `json:"status"`
	Detail    string   `json:"detail"`
	StartTime string   `json:"startTime"`
	EventName string   `json:"eventName,omitempty"`
}

// Scores proxies the ESPN scoreboard API, cached per league.
type Scores struct {
	cache      *cache.Cache[[]GameScore]
	httpClient *http.Client
	urlFormat  string
	userAgent  string
	timeout    time.Duration
}

type espnScoreboard struct {
	Events []espnEvent `json:"events"`
}

type espnEvent struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Date         string            `json:"date"`
	Status       *espnStatus       `json:"status"`
	Competitions []espnCompetition `json:"competitions"`
}

type espnStatus struct {
	Type struct {
		State       string `json:"state"`
		Completed   bool   `json:"completed"`
		ShortDetail string `json:"shortDetail"`
	} `json:"type"`
}

type espnCompetition struct {
	ID          string           `json:"id"`
	Date        string           `json:"date"`
	Status      *espnStatus      `json:"status"`
	Competitors []espnCompetitor `json:"competitors"`
}

type espnCompetitor struct {
	HomeAway string `json:"homeAway"`
	Score    string `json:"score"`
	Team     struct {
		DisplayName  string `json:"displayName"`
		Name         string `json:"name"`
		Abbreviation string `json:"abbreviation"`
		Logo         string `json:"logo"`
	} `json:"team"`
}

func NewScores(scoreCache *cache.Cache[[]GameScore], httpClient *http.Client,
	userAgent string, timeout time.Duration) *Scores {
	return &Scores{
		cache:      scoreCache,
		httpClient: httpClient,
		urlFormat:  espnScoreboardURLFormat,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

// Fetch returns scores for one league key or, with "all", every configured
// league. Leagues are fetched concurrently, each behind its own cache key.
func (s *Scores) Fetch(ctx context.Context, leagueKey string) ([]GameScore, []string, error) {
	selected := leagues
	if leagueKey != "all" {
		selected = nil
		for _, league := range leagues {
			if league.Key == leagueKey {
				selected = []LeagueConfig{league}
				break
			}
		}
		if len(selected) == 0 {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnknownLeague, leagueKey)
		}
	}

	var (
		mu        sync.Mutex
		allScores []GameScore
	)

	g, gCtx := errgroup.WithContext(ctx)
	for _, league := range selected {
		g.Go(func() error {
			scores, err := s.fetchLeague(gCtx, league)
			if err != nil {
				slog.Warn("Scoreboard fetch failed", "league", league.Key, "error", err)
				return nil
			}

			mu.Lock()
			allScores = append(allScores, scores...)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	keys := make([]string, 0, len(selected))
	for _, league := range selected {
		keys = append(keys, league.Key)
	}

	return allScores, keys, nil
}

func (s *Scores) fetchLeague(ctx context.Context, league LeagueConfig) ([]GameScore, error) {
	if cached, fresh := s.cache.Get(league.Key); fresh {
		return cached, nil
	}

	requestURL := fmt.Sprintf(s.urlFormat, league.Sport, league.League)

	var payload espnScoreboard
	if err := fetchJSON(ctx, s.httpClient, requestURL, s.userAgent, s.timeout, &payload); err != nil {
		return nil, err
	}

	scores := parseScoreboard(payload, league.Key)
	s.cache.Set(league.Key, scores)

	return scores, nil
}

func parseScoreboard(payload espnScoreboard, leagueKey string) []GameScore {
	scores := make([]GameScore, 0, len(payload.Events))

	for _, event := range payload.Events {
		if len(event.Competitions) == 0 {
			// Racing events carry no competition structure
			scores = append(scores, GameScore{
				ID:        event.ID,
				League:    leagueKey,
				HomeTeam:  TeamInfo{Name: event.Name},
				Status:    parseGameStatus(event.Status),
				Detail:    statusDetail(event.Status, event.Name),
				StartTime: event.Date,
				EventName: event.Name,
			})
			continue
		}

		competition := event.Competitions[0]

		var home, away *espnCompetitor
		for i := range competition.Competitors {
			competitor := &competition.Competitors[i]
			switch competitor.HomeAway {
			case "home":
				home = competitor
			case "away":
				away = competitor
			}
		}
		if home == nil && len(competition.Competitors) > 0 {
			home = &competition.Competitors[0]
		}
		if away == nil && len(competition.Competitors) > 1 {
			away = &competition.Competitors[1]
		}
		if home == nil {
			continue
		}

		status := competition.Status
		if status == nil {
			status = event.Status
		}

		score := GameScore{
			ID:        event.ID,
			League:    leagueKey,
			HomeTeam:  teamInfo(home),
			Status:    parseGameStatus(status),
			Detail:    statusDetail(status, ""),
			StartTime: event.Date,
			EventName: event.Name,
		}
		if score.ID == "" {
			score.ID = competition.ID
		}
		if score.StartTime == "" {
			score.StartTime = competition.Date
		}
		if away != nil {
			score.AwayTeam = teamInfo(away)
		}

		scores = append(scores, score)
	}

	return scores
}

func teamInfo(competitor *espnCompetitor) TeamInfo {
	name := competitor.Team.DisplayName
	if name == "" {
		name = competitor.Team.Name
	}

	score, _ := strconv.Atoi(competitor.Score)

	return TeamInfo{
		Name:  name,
		Abbr:  competitor.Team.Abbreviation,
		Logo:  competitor.Team.Logo,
		Score: score,
	}
}

func parseGameStatus(status *espnStatus) string {
	if status == nil {
		return StatusScheduled
	}
	switch status.Type.State {
	case "in":
		return StatusInProgress
	case "post":
		return StatusFinal
	case "pre":
		return StatusScheduled
	}
	if status.Type.Completed {
		return StatusFinal
	}
	return StatusScheduled
}

func statusDetail(status *espnStatus, fallback string) string {
	if status != nil && status.Type.ShortDetail != "" {
		return status.Type.ShortDetail
	}
	return fallback
}
