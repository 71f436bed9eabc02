package usecase

import (
	"math"

	"github.com/promiedos/dashboard-pro/internal/domain/standings"
)

// Prediction is a win/draw/away probability split in percent, with the
// model's confidence and diagnostic values.
type Prediction struct {
	HomeWin    float64 `json:"homeWin"`
	Draw       float64 `json:"draw"`
	AwayWin    float64 `json:"awayWin"`
	Confidence float64 `json:"confidence"`

	// Rating model diagnostics.
	HomeRating int `json:"homeRating,omitempty"`
	AwayRating int `json:"awayRating,omitempty"`

	// Strength model diagnostics.
	HomeStrength float64 `json:"homeStrength,omitempty"`
	AwayStrength float64 `json:"awayStrength,omitempty"`
}

// PredictionConfig tunes the two models. Zero values fall back to the
// defaults the models were calibrated with.
type PredictionConfig struct {
	RatingBase     float64
	RatingScale    float64
	HomeAdvantage  float64
	DrawWeight     float64
	WinWeight      float64
	PointsWeight   float64
	HomeMultiplier float64
	AwayMultiplier float64
}

func DefaultPredictionConfig() PredictionConfig {
	return PredictionConfig{
		RatingBase:     1500,
		RatingScale:    200,
		HomeAdvantage:  100,
		DrawWeight:     0.25,
		WinWeight:      0.4,
		PointsWeight:   0.6,
		HomeMultiplier: 1.15,
		AwayMultiplier: 0.85,
	}
}

func normalizePredictionConfig(cfg PredictionConfig) PredictionConfig {
	def := DefaultPredictionConfig()
	if cfg.RatingBase <= 0 {
		cfg.RatingBase = def.RatingBase
	}
	if cfg.RatingScale <= 0 {
		cfg.RatingScale = def.RatingScale
	}
	if cfg.HomeAdvantage <= 0 {
		cfg.HomeAdvantage = def.HomeAdvantage
	}
	if cfg.DrawWeight <= 0 {
		cfg.DrawWeight = def.DrawWeight
	}
	if cfg.WinWeight <= 0 {
		cfg.WinWeight = def.WinWeight
	}
	if cfg.PointsWeight <= 0 {
		cfg.PointsWeight = def.PointsWeight
	}
	if cfg.HomeMultiplier <= 0 {
		cfg.HomeMultiplier = def.HomeMultiplier
	}
	if cfg.AwayMultiplier <= 0 {
		cfg.AwayMultiplier = def.AwayMultiplier
	}
	return cfg
}

// PredictionService computes match outcome probabilities from two team
// records. Both models are pure functions with no shared state.
type PredictionService struct {
	cfg PredictionConfig
}

func NewPredictionService(cfg PredictionConfig) *PredictionService {
	return &PredictionService{cfg: normalizePredictionConfig(cfg)}
}

// Rating runs the Elo-style model: a synthetic rating per team derived
// from points per game, a fixed home-advantage bonus, and a logistic
// conversion of the rating gap with a constant draw weight injected
// before renormalizing.
func (s *PredictionService) Rating(home, away standings.TeamRecord) Prediction {
	homeRating := s.cfg.RatingBase + home.PointsAvgValue()*s.cfg.RatingScale + s.cfg.HomeAdvantage
	awayRating := s.cfg.RatingBase + away.PointsAvgValue()*s.cfg.RatingScale

	expectedHome := 1 / (1 + math.Pow(10, (awayRating-homeRating)/400))
	expectedAway := 1 - expectedHome
	expectedDraw := s.cfg.DrawWeight

	total := expectedHome + expectedAway + expectedDraw
	ratingDiff := math.Abs(homeRating - awayRating)
	confidence := math.Min(0.95, 0.65+ratingDiff/1000)

	return Prediction{
		HomeWin:    round2pct(expectedHome / total),
		Draw:       round2pct(expectedDraw / total),
		AwayWin:    round2pct(expectedAway / total),
		Confidence: round2pct(confidence),
		HomeRating: int(math.Round(homeRating)),
		AwayRating: int(math.Round(awayRating)),
	}
}

// Strength runs the conservative model: per-team strength blends win
// rate and points per game, adjusted by home and away multipliers. A
// zero combined strength degrades to an even 1/3 split before the draw
// weight is injected.
func (s *PredictionService) Strength(home, away standings.TeamRecord) Prediction {
	homeStrength := home.WinRate()*s.cfg.WinWeight + home.PointsAvgValue()/3*s.cfg.PointsWeight
	awayStrength := away.WinRate()*s.cfg.WinWeight + away.PointsAvgValue()/3*s.cfg.PointsWeight

	adjustedHome := homeStrength * s.cfg.HomeMultiplier
	adjustedAway := awayStrength * s.cfg.AwayMultiplier

	total := adjustedHome + adjustedAway
	probHome, probAway := 1.0/3, 1.0/3
	if total > 0 {
		probHome = adjustedHome / total
		probAway = adjustedAway / total
	}
	probDraw := s.cfg.DrawWeight

	sum := probHome + probDraw + probAway
	strengthDiff := math.Abs(homeStrength - awayStrength)
	confidence := math.Min(0.85, 0.55+strengthDiff)

	return Prediction{
		HomeWin:      round2pct(probHome / sum),
		Draw:         round2pct(probDraw / sum),
		AwayWin:      round2pct(probAway / sum),
		Confidence:   round2pct(confidence),
		HomeStrength: round3(homeStrength),
		AwayStrength: round3(awayStrength),
	}
}

func round2pct(fraction float64) float64 {
	return math.Round(fraction*100*100) / 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
