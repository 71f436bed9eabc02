package usecase

import (
	"context"
	"sync"

	"github.com/promiedos/dashboard-pro/internal/domain/odds"
	"github.com/promiedos/dashboard-pro/internal/domain/standings"
)

// MatchAnalysis is the combined output for one pairing: both prediction
// models, goal and marginal analysis, derived odds, the value
// assessment and any triggered alerts.
type MatchAnalysis struct {
	League             string               `json:"league"`
	HomeTeam           standings.TeamRecord `json:"homeTeam"`
	AwayTeam           standings.TeamRecord `json:"awayTeam"`
	RatingPrediction   Prediction           `json:"ratingPrediction"`
	StrengthPrediction Prediction           `json:"strengthPrediction"`
	Goals              GoalsAnalysis        `json:"goals"`
	Marginals          MarginalAnalysis     `json:"marginals"`
	Odds               odds.Quote           `json:"odds"`
	ValueBets          []ValueBet           `json:"valueBets"`
	Alerts             []Alert              `json:"alerts"`
}

// AnalysisService orchestrates the engines for one match request. It
// remembers the last derived quote per pairing so the odds-movement
// alert rule has a snapshot to compare against.
type AnalysisService struct {
	feed       *FeedService
	prediction *PredictionService
	goals      *GoalsService
	betting    *BettingService
	alerts     *AlertService

	mu         sync.Mutex
	lastQuotes map[string]odds.Quote
}

func NewAnalysisService(feed *FeedService, prediction *PredictionService, goals *GoalsService, betting *BettingService, alerts *AlertService) *AnalysisService {
	return &AnalysisService{
		feed:       feed,
		prediction: prediction,
		goals:      goals,
		betting:    betting,
		alerts:     alerts,
		lastQuotes: make(map[string]odds.Quote),
	}
}

// Analyze resolves both team records and runs every engine over them.
// Unknown teams surface as NotFound.
func (s *AnalysisService) Analyze(ctx context.Context, league, homeTeamID, awayTeamID string) (MatchAnalysis, error) {
	ctx, span := startUsecaseSpan(ctx, "AnalysisService.Analyze")
	defer span.End()

	league = normalizeLeague(league)
	home, away, err := s.feed.MatchRecords(ctx, league, homeTeamID, awayTeamID)
	if err != nil {
		return MatchAnalysis{}, err
	}

	pairing := homeTeamID + ":" + awayTeamID
	quote := odds.Derive(pairing, home.Name, away.Name, home, away)
	previous := s.swapLastQuote(pairing, quote)

	rating := s.prediction.Rating(home, away)
	return MatchAnalysis{
		League:             league,
		HomeTeam:           home,
		AwayTeam:           away,
		RatingPrediction:   rating,
		StrengthPrediction: s.prediction.Strength(home, away),
		Goals:              s.goals.Goals(home, away),
		Marginals:          s.goals.Marginals(home, away),
		Odds:               quote,
		ValueBets:          s.betting.ValueBets(rating, quote),
		Alerts:             s.alerts.Evaluate(home, away, rating, quote, previous),
	}, nil
}

func (s *AnalysisService) swapLastQuote(pairing string, quote odds.Quote) odds.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.lastQuotes[pairing]
	s.lastQuotes[pairing] = quote
	return previous
}
