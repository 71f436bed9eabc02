package sportsdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/promiedos/dashboard-pro/internal/platform/logging"
	"github.com/promiedos/dashboard-pro/internal/usecase"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		HTTPClient: server.Client(),
		BaseURL:    server.URL,
		Logger:     logging.NewNop(),
	})
}

func TestStandings_ParsesStringNumerics(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/3/lookuptable.php" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("l"); got != "4328" {
			t.Errorf("expected EPL league id, got %q", got)
		}
		w.Write([]byte(`{
			"table": [
				{"intRank": "1", "idTeam": "133613", "strTeam": "Manchester City",
				 "intPlayed": "20", "intWin": "16", "intDraw": "3", "intLoss": "1",
				 "intGoalsFor": "48", "intGoalsAgainst": "15",
				 "intGoalDifference": "33", "intPoints": "51", "strForm": "WWDWW"},
				{"intRank": "bad", "idTeam": "999", "strTeam": "Broken FC",
				 "intPlayed": "", "intPoints": "x"}
			]
		}`))
	})

	rows, err := client.Standings(context.Background(), "PL")
	if err != nil {
		t.Fatalf("Standings: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	row := rows[0]
	if row.Position != 1 || row.Points != 51 || row.Played != 20 {
		t.Fatalf("unexpected row mapping %+v", row)
	}
	if row.PointsAvg != "2.55" {
		t.Fatalf("expected points avg 2.55, got %q", row.PointsAvg)
	}

	// Malformed numerics degrade to zero instead of failing the payload.
	broken := rows[1]
	if broken.Position != 0 || broken.Points != 0 || broken.PointsAvg != "0.00" {
		t.Fatalf("unexpected lenient parsing %+v", broken)
	}
}

func TestStandings_EmptyTableIsNotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"table": null}`))
	})

	_, err := client.Standings(context.Background(), "PL")
	if !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpcomingFixtures_MapsEvents(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/3/eventsnextleague.php" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"events": [
				{"idEvent": "e1", "strHomeTeam": "Arsenal", "strAwayTeam": "Chelsea",
				 "idHomeTeam": "133604", "idAwayTeam": "133610",
				 "dateEvent": "2026-01-12", "strTime": "17:30:00",
				 "strLeague": "English Premier League", "strVenue": "Emirates Stadium",
				 "strStatus": ""}
			]
		}`))
	})

	fixtures, err := client.UpcomingFixtures(context.Background(), "PL")
	if err != nil {
		t.Fatalf("UpcomingFixtures: %v", err)
	}
	if len(fixtures) != 1 {
		t.Fatalf("expected one fixture, got %d", len(fixtures))
	}

	fx := fixtures[0]
	if fx.Time != "17:30" {
		t.Fatalf("expected seconds trimmed, got %q", fx.Time)
	}
	if fx.Status != "Scheduled" {
		t.Fatalf("expected Scheduled fallback, got %q", fx.Status)
	}
}

func TestLiveScores_MapsProgress(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"events": [
				{"idEvent": "e2", "strHomeTeam": "Home", "strAwayTeam": "Away",
				 "intHomeScore": "2", "intAwayScore": "1",
				 "strProgress": "67", "strStatus": "2H"}
			]
		}`))
	})

	scores, err := client.LiveScores(context.Background(), "PL")
	if err != nil {
		t.Fatalf("LiveScores: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected one event, got %d", len(scores))
	}
	if scores[0].HomeScore != 2 || scores[0].AwayScore != 1 {
		t.Fatalf("unexpected score %+v", scores[0])
	}
	if scores[0].Status != "Live" {
		t.Fatalf("expected translated 2H status, got %q", scores[0].Status)
	}
	if scores[0].Minute != "67" {
		t.Fatalf("unexpected minute %q", scores[0].Minute)
	}
}

func TestTeamDetails_UsesFirstTeam(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/3/lookupteam.php" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"teams": [
				{"idTeam": "133602", "strTeam": "Liverpool", "strTeamShort": "LIV",
				 "intFormedYear": "1892", "strStadium": "Anfield"}
			]
		}`))
	})

	details, err := client.TeamDetails(context.Background(), "133602")
	if err != nil {
		t.Fatalf("TeamDetails: %v", err)
	}
	if details.Name != "Liverpool" || details.Founded != 1892 || details.Venue != "Anfield" {
		t.Fatalf("unexpected details %+v", details)
	}

	if _, err := client.TeamDetails(context.Background(), ""); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty id, got %v", err)
	}
}
