package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"

	"github.com/promiedos/dashboard-pro/internal/platform/logging"
)

// RefreshConfig sets the background refresh cadence per category.
type RefreshConfig struct {
	LiveInterval      time.Duration
	StandingsInterval time.Duration
	FixturesInterval  time.Duration
	Workers           int
	Leagues           []string
}

func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		LiveInterval:      30 * time.Second,
		StandingsInterval: 5 * time.Minute,
		FixturesInterval:  10 * time.Minute,
		Workers:           4,
	}
}

func normalizeRefreshConfig(cfg RefreshConfig) RefreshConfig {
	def := DefaultRefreshConfig()
	if cfg.LiveInterval <= 0 {
		cfg.LiveInterval = def.LiveInterval
	}
	if cfg.StandingsInterval <= 0 {
		cfg.StandingsInterval = def.StandingsInterval
	}
	if cfg.FixturesInterval <= 0 {
		cfg.FixturesInterval = def.FixturesInterval
	}
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	return cfg
}

// RefreshService keeps the feed cache warm. Each category runs on its
// own ticker; per-league refreshes fan out over a shared worker pool so
// a slow backend cannot pile up goroutines.
type RefreshService struct {
	feed   *FeedService
	cfg    RefreshConfig
	logger *logging.Logger

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	pool    *ants.Pool
	loops   conc.WaitGroup
}

func NewRefreshService(feed *FeedService, cfg RefreshConfig, logger *logging.Logger) *RefreshService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RefreshService{
		feed:   feed,
		cfg:    normalizeRefreshConfig(cfg),
		logger: logger,
	}
}

// Start launches the three category loops. Calling Start on a running
// service is a no-op.
func (s *RefreshService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}

	pool, err := ants.NewPool(s.cfg.Workers)
	if err != nil {
		return fmt.Errorf("create refresh worker pool: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	s.pool = pool
	s.cancel = cancel
	s.started = true

	s.loops.Go(func() { s.loop(ctx, s.cfg.LiveInterval, RefreshLive) })
	s.loops.Go(func() { s.loop(ctx, s.cfg.StandingsInterval, RefreshStandings) })
	s.loops.Go(func() { s.loop(ctx, s.cfg.FixturesInterval, RefreshFixtures) })

	s.logger.InfoContext(ctx, "refresh scheduler started",
		"workers", s.cfg.Workers,
		"leagues", len(s.cfg.Leagues),
		"live_interval", s.cfg.LiveInterval.String(),
		"standings_interval", s.cfg.StandingsInterval.String(),
		"fixtures_interval", s.cfg.FixturesInterval.String(),
	)
	return nil
}

// Stop cancels the loops and waits for in-flight refreshes to finish.
func (s *RefreshService) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	cancel := s.cancel
	pool := s.pool
	s.started = false
	s.cancel = nil
	s.pool = nil
	s.mu.Unlock()

	cancel()
	s.loops.Wait()
	pool.Release()
	s.logger.Info("refresh scheduler stopped")
}

func (s *RefreshService) loop(ctx context.Context, interval time.Duration, category string) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refreshAll(ctx, category)
		}
	}
}

func (s *RefreshService) refreshAll(ctx context.Context, category string) {
	s.mu.Lock()
	pool := s.pool
	s.mu.Unlock()
	if pool == nil {
		return
	}

	var tasks sync.WaitGroup
	for _, league := range s.cfg.Leagues {
		league := league
		tasks.Add(1)
		if err := pool.Submit(func() {
			defer tasks.Done()
			s.feed.Refresh(ctx, category, league)
		}); err != nil {
			tasks.Done()
			s.logger.WarnContext(ctx, "refresh task rejected",
				"category", category,
				"league", league,
				"error", err.Error(),
			)
		}
	}
	tasks.Wait()
}
