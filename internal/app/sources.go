package app

import (
	"context"
	"net/http"

	"github.com/promiedos/dashboard-pro/external/footballdata"
	"github.com/promiedos/dashboard-pro/external/sportsdb"
	"github.com/promiedos/dashboard-pro/internal/config"
	"github.com/promiedos/dashboard-pro/internal/domain/fixture"
	"github.com/promiedos/dashboard-pro/internal/domain/standings"
	"github.com/promiedos/dashboard-pro/internal/domain/team"
	"github.com/promiedos/dashboard-pro/internal/platform/logging"
	"github.com/promiedos/dashboard-pro/internal/platform/resilience"
	"github.com/promiedos/dashboard-pro/internal/usecase"
)

// buildSources assembles the ordered backend list. football-data is the
// primary source, thesportsdb the secondary; either can be disabled.
func buildSources(cfg config.Config, logger *logging.Logger) []usecase.DataSource {
	sources := make([]usecase.DataSource, 0, 2)

	if cfg.FootballDataEnabled {
		client := footballdata.NewClient(footballdata.ClientConfig{
			HTTPClient: &http.Client{Timeout: cfg.FootballDataTimeout},
			BaseURL:    cfg.FootballDataBaseURL,
			Token:      cfg.FootballDataToken,
			Timeout:    cfg.FootballDataTimeout,
			MaxRetries: cfg.FootballDataMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.FootballDataCircuitEnabled,
				FailureThreshold: cfg.FootballDataCircuitFailureCount,
				OpenTimeout:      cfg.FootballDataCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.FootballDataCircuitHalfOpenMax,
			},
		})
		sources = append(sources, &footballDataSource{client: client, days: cfg.FixtureDaysAhead})
	}

	if cfg.SportsDBEnabled {
		client := sportsdb.NewClient(sportsdb.ClientConfig{
			HTTPClient: &http.Client{Timeout: cfg.SportsDBTimeout},
			BaseURL:    cfg.SportsDBBaseURL,
			APIKey:     cfg.SportsDBAPIKey,
			Timeout:    cfg.SportsDBTimeout,
			MaxRetries: cfg.SportsDBMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.SportsDBCircuitEnabled,
				FailureThreshold: cfg.SportsDBCircuitFailureCount,
				OpenTimeout:      cfg.SportsDBCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.SportsDBCircuitHalfOpenMax,
			},
		})
		sources = append(sources, &sportsDBSource{client: client})
	}

	return sources
}

type footballDataSource struct {
	client *footballdata.Client
	days   int
}

func (s *footballDataSource) Name() string { return "football-data" }

func (s *footballDataSource) Standings(ctx context.Context, league string) ([]standings.TeamRecord, error) {
	return s.client.Standings(ctx, league)
}

func (s *footballDataSource) Fixtures(ctx context.Context, league string) ([]fixture.Fixture, error) {
	return s.client.UpcomingFixtures(ctx, league, s.days)
}

func (s *footballDataSource) LiveScores(ctx context.Context, league string) ([]fixture.LiveScore, error) {
	return s.client.LiveScores(ctx, league)
}

func (s *footballDataSource) TeamDetails(ctx context.Context, teamID string) (team.Details, error) {
	return s.client.TeamDetails(ctx, teamID)
}

func (s *footballDataSource) BreakerState() resilience.CircuitState {
	return s.client.BreakerState()
}

type sportsDBSource struct {
	client *sportsdb.Client
}

func (s *sportsDBSource) Name() string { return "thesportsdb" }

func (s *sportsDBSource) Standings(ctx context.Context, league string) ([]standings.TeamRecord, error) {
	return s.client.Standings(ctx, league)
}

func (s *sportsDBSource) Fixtures(ctx context.Context, league string) ([]fixture.Fixture, error) {
	return s.client.UpcomingFixtures(ctx, league)
}

func (s *sportsDBSource) LiveScores(ctx context.Context, league string) ([]fixture.LiveScore, error) {
	return s.client.LiveScores(ctx, league)
}

func (s *sportsDBSource) TeamDetails(ctx context.Context, teamID string) (team.Details, error) {
	return s.client.TeamDetails(ctx, teamID)
}

func (s *sportsDBSource) BreakerState() resilience.CircuitState {
	return s.client.BreakerState()
}
