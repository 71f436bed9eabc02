package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/promiedos/dashboard-pro/internal/domain/fixture"
	"github.com/promiedos/dashboard-pro/internal/domain/odds"
	"github.com/promiedos/dashboard-pro/internal/domain/standings"
	"github.com/promiedos/dashboard-pro/internal/domain/team"
	"github.com/promiedos/dashboard-pro/internal/platform/cache"
	"github.com/promiedos/dashboard-pro/internal/platform/logging"
	"github.com/promiedos/dashboard-pro/internal/platform/resilience"
)

// DataSource is a live backend attempted by the feed resolver. Sources
// are tried in registration order; any error falls through to the next
// one.
type DataSource interface {
	Name() string
	Standings(ctx context.Context, league string) ([]standings.TeamRecord, error)
	Fixtures(ctx context.Context, league string) ([]fixture.Fixture, error)
	LiveScores(ctx context.Context, league string) ([]fixture.LiveScore, error)
	TeamDetails(ctx context.Context, teamID string) (team.Details, error)
	BreakerState() resilience.CircuitState
}

// FallbackProvider is the terminal data source. It cannot fail.
type FallbackProvider interface {
	Standings() []standings.TeamRecord
	Fixtures() []fixture.Fixture
	LiveScores() []fixture.LiveScore
	TeamDetails(teamID string) (team.Details, bool)
}

// SourceStatus reports the health of one backend for the system
// endpoints.
type SourceStatus struct {
	Name         string `json:"name"`
	CircuitState string `json:"circuitState"`
	LastSuccess  string `json:"lastSuccess,omitempty"`
	LastError    string `json:"lastError,omitempty"`
}

// League is a supported competition.
type League struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var leagueNames = map[string]string{
	"PL":  "Premier League",
	"PD":  "La Liga",
	"BL1": "Bundesliga",
	"SA":  "Serie A",
	"FL1": "Ligue 1",
	"CL":  "Champions League",
	"WC":  "World Cup",
	"EC":  "European Championship",
}

// FeedConfig carries the cache policy for the resolver.
type FeedConfig struct {
	CacheEnabled   bool
	StandingsTTL   time.Duration
	FixturesTTL    time.Duration
	TeamDetailsTTL time.Duration
	Leagues        []string
}

// FeedService resolves each data category through the source chain:
// cache, then each live source in order, then the fallback dataset.
// Standings, fixtures, live scores and odds never fail from the
// caller's perspective.
type FeedService struct {
	cache    *cache.Store
	sources  []DataSource
	fallback FallbackProvider
	cfg      FeedConfig
	logger   *logging.Logger
	now      func() time.Time

	mu     sync.Mutex
	health map[string]sourceHealth
}

type sourceHealth struct {
	lastSuccess time.Time
	lastError   string
}

func NewFeedService(store *cache.Store, sources []DataSource, fallback FallbackProvider, cfg FeedConfig, logger *logging.Logger) *FeedService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FeedService{
		cache:    store,
		sources:  sources,
		fallback: fallback,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
		health:   make(map[string]sourceHealth, len(sources)),
	}
}

// Leagues lists the configured competitions.
func (s *FeedService) Leagues() []League {
	out := make([]League, 0, len(s.cfg.Leagues))
	for _, code := range s.cfg.Leagues {
		name, ok := leagueNames[code]
		if !ok {
			name = code
		}
		out = append(out, League{Code: code, Name: name})
	}
	return out
}

// Standings resolves the league table. The simulated table is returned
// when every live source fails; that path never errors.
func (s *FeedService) Standings(ctx context.Context, league string) ([]standings.TeamRecord, string) {
	ctx, span := startUsecaseSpan(ctx, "FeedService.Standings")
	defer span.End()

	league = normalizeLeague(league)
	key := "standings_" + league
	if cached, ok := s.cachedValue(ctx, key); ok {
		if records, ok := cached.([]standings.TeamRecord); ok {
			return records, "cache"
		}
	}

	for _, src := range s.sources {
		records, err := src.Standings(ctx, league)
		if err != nil || len(records) == 0 {
			s.recordFailure(ctx, src.Name(), "standings", league, err)
			continue
		}
		s.recordSuccess(src.Name())
		s.storeValue(ctx, key, records, s.cfg.StandingsTTL)
		return records, src.Name()
	}

	s.logger.WarnContext(ctx, "all sources failed, serving simulated standings", "league", league)
	return s.fallback.Standings(), "simulated"
}

// Fixtures resolves upcoming matches for a league.
func (s *FeedService) Fixtures(ctx context.Context, league string) ([]fixture.Fixture, string) {
	ctx, span := startUsecaseSpan(ctx, "FeedService.Fixtures")
	defer span.End()

	league = normalizeLeague(league)
	key := "fixtures_" + league
	if cached, ok := s.cachedValue(ctx, key); ok {
		if fixtures, ok := cached.([]fixture.Fixture); ok {
			return fixtures, "cache"
		}
	}

	for _, src := range s.sources {
		fixtures, err := src.Fixtures(ctx, league)
		if err != nil || len(fixtures) == 0 {
			s.recordFailure(ctx, src.Name(), "fixtures", league, err)
			continue
		}
		s.recordSuccess(src.Name())
		s.storeValue(ctx, key, fixtures, s.cfg.FixturesTTL)
		return fixtures, src.Name()
	}

	s.logger.WarnContext(ctx, "all sources failed, serving simulated fixtures", "league", league)
	return s.fallback.Fixtures(), "simulated"
}

// LiveScores resolves in-play matches. Live data is never cached; an
// empty result from a healthy source is a valid answer, not a failure.
func (s *FeedService) LiveScores(ctx context.Context, league string) ([]fixture.LiveScore, string) {
	ctx, span := startUsecaseSpan(ctx, "FeedService.LiveScores")
	defer span.End()

	league = normalizeLeague(league)
	for _, src := range s.sources {
		scores, err := src.LiveScores(ctx, league)
		if err != nil {
			s.recordFailure(ctx, src.Name(), "live_scores", league, err)
			continue
		}
		s.recordSuccess(src.Name())
		return scores, src.Name()
	}

	s.logger.WarnContext(ctx, "all sources failed, serving simulated live scores", "league", league)
	return s.fallback.LiveScores(), "simulated"
}

// Odds resolves quotes for a league's upcoming fixtures. Neither live
// backend serves betting prices, so quotes are derived from the current
// table and cached alongside fixtures.
func (s *FeedService) Odds(ctx context.Context, league string) ([]odds.Quote, string) {
	ctx, span := startUsecaseSpan(ctx, "FeedService.Odds")
	defer span.End()

	league = normalizeLeague(league)
	key := "odds_" + league
	if cached, ok := s.cachedValue(ctx, key); ok {
		if quotes, ok := cached.([]odds.Quote); ok {
			return quotes, "cache"
		}
	}

	records, recordsSource := s.Standings(ctx, league)
	fixtures, _ := s.Fixtures(ctx, league)

	quotes := make([]odds.Quote, 0, len(fixtures))
	for _, fx := range fixtures {
		home, okHome := standings.FindByTeamID(records, fx.HomeTeamID)
		away, okAway := standings.FindByTeamID(records, fx.AwayTeamID)
		if !okHome || !okAway {
			continue
		}
		quotes = append(quotes, odds.Derive(fx.ID, fx.HomeTeam, fx.AwayTeam, home, away))
	}

	if recordsSource != "simulated" {
		s.storeValue(ctx, key, quotes, s.cfg.FixturesTTL)
	}
	return quotes, recordsSource
}

// TeamDetails resolves one team profile. This is the only resolver
// operation with an error channel: an unknown team is a NotFound.
func (s *FeedService) TeamDetails(ctx context.Context, teamID string) (team.Details, error) {
	ctx, span := startUsecaseSpan(ctx, "FeedService.TeamDetails")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Details{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	key := "team_" + teamID
	if cached, ok := s.cachedValue(ctx, key); ok {
		if details, ok := cached.(team.Details); ok {
			return details, nil
		}
	}

	for _, src := range s.sources {
		details, err := src.TeamDetails(ctx, teamID)
		if err != nil {
			s.recordFailure(ctx, src.Name(), "team_details", teamID, err)
			continue
		}
		s.recordSuccess(src.Name())
		s.storeValue(ctx, key, details, s.cfg.TeamDetailsTTL)
		return details, nil
	}

	if details, ok := s.fallback.TeamDetails(teamID); ok {
		return details, nil
	}
	return team.Details{}, fmt.Errorf("%w: team %s", ErrNotFound, teamID)
}

// MatchRecords resolves the two table rows backing one pairing. Teams
// missing from the resolved table surface as NotFound.
func (s *FeedService) MatchRecords(ctx context.Context, league, homeTeamID, awayTeamID string) (standings.TeamRecord, standings.TeamRecord, error) {
	records, _ := s.Standings(ctx, league)

	home, ok := standings.FindByTeamID(records, homeTeamID)
	if !ok {
		return standings.TeamRecord{}, standings.TeamRecord{}, fmt.Errorf("%w: home team %s in league %s", ErrNotFound, homeTeamID, league)
	}
	away, ok := standings.FindByTeamID(records, awayTeamID)
	if !ok {
		return standings.TeamRecord{}, standings.TeamRecord{}, fmt.Errorf("%w: away team %s in league %s", ErrNotFound, awayTeamID, league)
	}
	return home, away, nil
}

// Refresh categories for the background scheduler.
const (
	RefreshStandings = "standings"
	RefreshFixtures  = "fixtures"
	RefreshLive      = "live"
)

// Refresh drops the cached entries for one category and re-resolves
// them, so the next read is served warm. Refreshing fixtures also
// reprices the derived odds.
func (s *FeedService) Refresh(ctx context.Context, category, league string) {
	league = normalizeLeague(league)
	switch category {
	case RefreshStandings:
		s.cache.Delete(ctx, "standings_"+league)
		s.Standings(ctx, league)
	case RefreshFixtures:
		s.cache.Delete(ctx, "fixtures_"+league)
		s.cache.Delete(ctx, "odds_"+league)
		s.Fixtures(ctx, league)
		s.Odds(ctx, league)
	case RefreshLive:
		s.LiveScores(ctx, league)
	}
}

// ClearCache drops every cached entry.
func (s *FeedService) ClearCache(ctx context.Context) {
	s.cache.Clear(ctx)
	s.logger.InfoContext(ctx, "feed cache cleared")
}

// CacheSize reports the number of live cache entries.
func (s *FeedService) CacheSize() int {
	return s.cache.Len()
}

// SourceStatus reports each backend's circuit state and last outcome,
// with the fallback provider listed last as always available.
func (s *FeedService) SourceStatus() []SourceStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]SourceStatus, 0, len(s.sources)+1)
	for _, src := range s.sources {
		status := SourceStatus{
			Name:         src.Name(),
			CircuitState: string(src.BreakerState()),
		}
		if health, ok := s.health[src.Name()]; ok {
			if !health.lastSuccess.IsZero() {
				status.LastSuccess = health.lastSuccess.UTC().Format(time.RFC3339)
			}
			status.LastError = health.lastError
		}
		out = append(out, status)
	}
	out = append(out, SourceStatus{Name: "simulated", CircuitState: string(resilience.CircuitStateClosed)})
	return out
}

func (s *FeedService) cachedValue(ctx context.Context, key string) (any, bool) {
	if !s.cfg.CacheEnabled {
		return nil, false
	}
	return s.cache.Get(ctx, key)
}

func (s *FeedService) storeValue(ctx context.Context, key string, value any, ttl time.Duration) {
	if !s.cfg.CacheEnabled {
		return
	}
	s.cache.Set(ctx, key, value, ttl)
}

func (s *FeedService) recordSuccess(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	health := s.health[name]
	health.lastSuccess = s.now()
	health.lastError = ""
	s.health[name] = health
}

func (s *FeedService) recordFailure(ctx context.Context, name, category, subject string, err error) {
	message := "empty result"
	if err != nil {
		message = err.Error()
	}
	s.logger.WarnContext(ctx, "source attempt failed",
		"source", name,
		"category", category,
		"subject", subject,
		"error", message,
	)

	s.mu.Lock()
	defer s.mu.Unlock()
	health := s.health[name]
	health.lastError = message
	s.health[name] = health
}

func normalizeLeague(league string) string {
	return strings.ToUpper(strings.TrimSpace(league))
}
