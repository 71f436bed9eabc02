package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/promiedos/dashboard-pro/internal/domain/fixture"
	"github.com/promiedos/dashboard-pro/internal/domain/standings"
	"github.com/promiedos/dashboard-pro/internal/domain/team"
	"github.com/promiedos/dashboard-pro/internal/infrastructure/simulated"
	"github.com/promiedos/dashboard-pro/internal/platform/cache"
	"github.com/promiedos/dashboard-pro/internal/platform/logging"
	"github.com/promiedos/dashboard-pro/internal/platform/resilience"
)

var errSourceDown = errors.New("source down")

type fakeSource struct {
	name      string
	records   []standings.TeamRecord
	fixtures  []fixture.Fixture
	live      []fixture.LiveScore
	details   map[string]team.Details
	err       error
	calls     int
	liveCalls int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Standings(context.Context, string) ([]standings.TeamRecord, error) {
	f.calls++
	return f.records, f.err
}

func (f *fakeSource) Fixtures(context.Context, string) ([]fixture.Fixture, error) {
	f.calls++
	return f.fixtures, f.err
}

func (f *fakeSource) LiveScores(context.Context, string) ([]fixture.LiveScore, error) {
	f.liveCalls++
	return f.live, f.err
}

func (f *fakeSource) TeamDetails(_ context.Context, teamID string) (team.Details, error) {
	f.calls++
	if f.err != nil {
		return team.Details{}, f.err
	}
	details, ok := f.details[teamID]
	if !ok {
		return team.Details{}, ErrNotFound
	}
	return details, nil
}

func (f *fakeSource) BreakerState() resilience.CircuitState { return resilience.CircuitStateClosed }

func newFeedForTest(t *testing.T, sources ...DataSource) *FeedService {
	t.Helper()
	store := cache.NewStore()
	cfg := FeedConfig{
		CacheEnabled:   true,
		StandingsTTL:   5 * time.Minute,
		FixturesTTL:    10 * time.Minute,
		TeamDetailsTTL: time.Hour,
		Leagues:        []string{"PL", "PD"},
	}
	return NewFeedService(store, sources, simulated.NewProvider(), cfg, logging.NewNop())
}

func TestFeedServiceStandingsFallsBackToSimulated(t *testing.T) {
	t.Parallel()

	primary := &fakeSource{name: "primary", err: errSourceDown}
	secondary := &fakeSource{name: "secondary", err: errSourceDown}
	svc := newFeedForTest(t, primary, secondary)

	records, source := svc.Standings(context.Background(), "PL")
	if source != "simulated" {
		t.Fatalf("source = %q, want simulated", source)
	}
	if len(records) != 20 {
		t.Fatalf("len(records) = %d, want 20", len(records))
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Fatalf("calls = %d/%d, want 1/1", primary.calls, secondary.calls)
	}

	// The simulated table must not be cached, so the sources are
	// retried on the next request.
	svc.Standings(context.Background(), "PL")
	if primary.calls != 2 {
		t.Fatalf("primary retried %d times, want 2", primary.calls)
	}
}

func TestFeedServiceStandingsCachesLiveResult(t *testing.T) {
	t.Parallel()

	primary := &fakeSource{
		name: "primary",
		records: []standings.TeamRecord{
			{Position: 1, Name: "Arsenal", TeamID: "57", Played: 10, Points: 24, PointsAvg: "2.40"},
		},
	}
	svc := newFeedForTest(t, primary)

	records, source := svc.Standings(context.Background(), "PL")
	if source != "primary" {
		t.Fatalf("source = %q, want primary", source)
	}
	if len(records) != 1 || records[0].Name != "Arsenal" {
		t.Fatalf("unexpected records: %+v", records)
	}

	_, source = svc.Standings(context.Background(), "PL")
	if source != "cache" {
		t.Fatalf("second call source = %q, want cache", source)
	}
	if primary.calls != 1 {
		t.Fatalf("primary called %d times, want 1", primary.calls)
	}
}

func TestFeedServiceSkipsToSecondarySource(t *testing.T) {
	t.Parallel()

	primary := &fakeSource{name: "primary", err: errSourceDown}
	secondary := &fakeSource{
		name: "secondary",
		records: []standings.TeamRecord{
			{Position: 1, Name: "Real Madrid", TeamID: "86", Played: 12, Points: 30, PointsAvg: "2.50"},
		},
	}
	svc := newFeedForTest(t, primary, secondary)

	records, source := svc.Standings(context.Background(), "pd")
	if source != "secondary" {
		t.Fatalf("source = %q, want secondary", source)
	}
	if records[0].Name != "Real Madrid" {
		t.Fatalf("unexpected leader %q", records[0].Name)
	}
}

func TestFeedServiceEmptyLiveScoresIsValid(t *testing.T) {
	t.Parallel()

	primary := &fakeSource{name: "primary", live: []fixture.LiveScore{}}
	svc := newFeedForTest(t, primary)

	scores, source := svc.LiveScores(context.Background(), "PL")
	if source != "primary" {
		t.Fatalf("source = %q, want primary", source)
	}
	if len(scores) != 0 {
		t.Fatalf("len(scores) = %d, want 0", len(scores))
	}
}

func TestFeedServiceLiveScoresNeverCached(t *testing.T) {
	t.Parallel()

	primary := &fakeSource{name: "primary", live: []fixture.LiveScore{}}
	svc := newFeedForTest(t, primary)

	svc.LiveScores(context.Background(), "PL")
	svc.LiveScores(context.Background(), "PL")
	if primary.liveCalls != 2 {
		t.Fatalf("liveCalls = %d, want 2", primary.liveCalls)
	}
}

func TestFeedServiceOddsDerivedFromSimulatedData(t *testing.T) {
	t.Parallel()

	primary := &fakeSource{name: "primary", err: errSourceDown}
	svc := newFeedForTest(t, primary)

	quotes, source := svc.Odds(context.Background(), "PL")
	if source != "simulated" {
		t.Fatalf("source = %q, want simulated", source)
	}
	if len(quotes) != 10 {
		t.Fatalf("len(quotes) = %d, want 10", len(quotes))
	}
	for _, q := range quotes {
		if err := q.Validate(); err != nil {
			t.Fatalf("quote %s invalid: %v", q.FixtureID, err)
		}
	}
	if svc.CacheSize() != 0 {
		t.Fatalf("cache size = %d, want 0 for simulated odds", svc.CacheSize())
	}
}

func TestFeedServiceTeamDetails(t *testing.T) {
	t.Parallel()

	primary := &fakeSource{
		name:    "primary",
		details: map[string]team.Details{"57": {ID: "57", Name: "Arsenal FC"}},
	}
	svc := newFeedForTest(t, primary)

	details, err := svc.TeamDetails(context.Background(), "57")
	if err != nil {
		t.Fatalf("TeamDetails: %v", err)
	}
	if details.Name != "Arsenal FC" {
		t.Fatalf("name = %q", details.Name)
	}

	if _, err := svc.TeamDetails(context.Background(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty id error = %v, want ErrInvalidInput", err)
	}
}

func TestFeedServiceTeamDetailsFallback(t *testing.T) {
	t.Parallel()

	primary := &fakeSource{name: "primary", err: errSourceDown}
	svc := newFeedForTest(t, primary)

	// 133602 is Liverpool in the simulated dataset.
	details, err := svc.TeamDetails(context.Background(), "133602")
	if err != nil {
		t.Fatalf("TeamDetails: %v", err)
	}
	if details.Name == "" {
		t.Fatal("expected fallback details")
	}

	if _, err := svc.TeamDetails(context.Background(), "no-such-team"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown team error = %v, want ErrNotFound", err)
	}
}

func TestFeedServiceMatchRecords(t *testing.T) {
	t.Parallel()

	primary := &fakeSource{name: "primary", err: errSourceDown}
	svc := newFeedForTest(t, primary)

	home, away, err := svc.MatchRecords(context.Background(), "PL", "133613", "133618")
	if err != nil {
		t.Fatalf("MatchRecords: %v", err)
	}
	if home.Name != "Manchester City" || away.Name != "Burnley" {
		t.Fatalf("got %q vs %q", home.Name, away.Name)
	}

	if _, _, err := svc.MatchRecords(context.Background(), "PL", "nope", "133618"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown home error = %v, want ErrNotFound", err)
	}
}

func TestFeedServiceClearCache(t *testing.T) {
	t.Parallel()

	primary := &fakeSource{
		name: "primary",
		records: []standings.TeamRecord{
			{Position: 1, Name: "Arsenal", TeamID: "57", Played: 10, Points: 24, PointsAvg: "2.40"},
		},
	}
	svc := newFeedForTest(t, primary)

	svc.Standings(context.Background(), "PL")
	if svc.CacheSize() == 0 {
		t.Fatal("expected cached entry")
	}
	svc.ClearCache(context.Background())
	if svc.CacheSize() != 0 {
		t.Fatalf("cache size after clear = %d", svc.CacheSize())
	}
}

func TestFeedServiceSourceStatus(t *testing.T) {
	t.Parallel()

	primary := &fakeSource{name: "primary", err: errSourceDown}
	svc := newFeedForTest(t, primary)

	svc.Standings(context.Background(), "PL")
	statuses := svc.SourceStatus()
	if len(statuses) != 2 {
		t.Fatalf("len(statuses) = %d, want 2", len(statuses))
	}
	if statuses[0].Name != "primary" || statuses[0].LastError == "" {
		t.Fatalf("unexpected primary status: %+v", statuses[0])
	}
	if statuses[1].Name != "simulated" || statuses[1].CircuitState != string(resilience.CircuitStateClosed) {
		t.Fatalf("unexpected fallback status: %+v", statuses[1])
	}
}

func TestFeedServiceLeagues(t *testing.T) {
	t.Parallel()

	svc := newFeedForTest(t)
	leagues := svc.Leagues()
	if len(leagues) != 2 {
		t.Fatalf("len(leagues) = %d, want 2", len(leagues))
	}
	if leagues[0].Code != "PL" || leagues[0].Name != "Premier League" {
		t.Fatalf("unexpected first league: %+v", leagues[0])
	}
}
