package app

import (
	"fmt"
	"net/http"

	"github.com/promiedos/dashboard-pro/internal/config"
	"github.com/promiedos/dashboard-pro/internal/infrastructure/simulated"
	"github.com/promiedos/dashboard-pro/internal/interfaces/httpapi"
	"github.com/promiedos/dashboard-pro/internal/platform/cache"
	"github.com/promiedos/dashboard-pro/internal/platform/logging"
	"github.com/promiedos/dashboard-pro/internal/usecase"
)

// App bundles the HTTP server with the background refresher so main can
// manage both lifecycles.
type App struct {
	Server  *http.Server
	Refresh *usecase.RefreshService
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	feed := usecase.NewFeedService(
		cache.NewStore(),
		buildSources(cfg, logger),
		simulated.NewProvider(),
		usecase.FeedConfig{
			CacheEnabled:   cfg.CacheEnabled,
			StandingsTTL:   cfg.StandingsTTL,
			FixturesTTL:    cfg.FixturesTTL,
			TeamDetailsTTL: cfg.TeamDetailsTTL,
			Leagues:        cfg.LeagueCodes,
		},
		logger,
	)

	betting := usecase.NewBettingService(usecase.BettingConfig{
		Bankroll:          cfg.InitialBankroll,
		KellyFractions:    cfg.KellyFractions,
		MaxParlaySize:     cfg.MaxParlaySize,
		MinValueThreshold: cfg.MinValueThreshold,
	})
	analysis := usecase.NewAnalysisService(
		feed,
		usecase.NewPredictionService(usecase.DefaultPredictionConfig()),
		usecase.NewGoalsService(),
		betting,
		usecase.NewAlertService(betting, usecase.AlertConfig{
			DemoEnabled:         cfg.DemoAlertsEnabled,
			ConfidenceThreshold: cfg.ConfidenceThreshold,
		}),
	)

	var refresh *usecase.RefreshService
	if cfg.RefreshEnabled {
		refresh = usecase.NewRefreshService(feed, usecase.RefreshConfig{
			LiveInterval:      cfg.RefreshLiveInterval,
			StandingsInterval: cfg.RefreshStandingsInterval,
			FixturesInterval:  cfg.RefreshFixturesInterval,
			Workers:           cfg.RefreshWorkers,
			Leagues:           cfg.LeagueCodes,
		}, logger)
	}

	handler := httpapi.NewHandler(feed, analysis, betting, cfg.DefaultLeague, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{Server: server, Refresh: refresh}, nil
}
