package usecase

import (
	"math"

	"github.com/promiedos/dashboard-pro/internal/domain/standings"
)

// Team typology labels from the fixed goals-for/goals-against decision
// table.
const (
	TypologyOffensiveHighRisk     = "Offensive/High-Risk"
	TypologyOffensiveBalanced     = "Offensive/Balanced"
	TypologyDefensiveConservative = "Defensive/Conservative"
	TypologyDefensiveVulnerable   = "Defensive/Vulnerable"
	TypologyBalanced              = "Balanced"
)

// GoalsAnalysis is the over/under and both-teams-to-score estimate for
// one fixture.
type GoalsAnalysis struct {
	ExpectedGoals float64 `json:"expectedGoals"`
	Over25        float64 `json:"over25"`
	Under25       float64 `json:"under25"`
	BTTS          float64 `json:"btts"`
	HomeAvgGoals  float64 `json:"homeAvgGoals"`
	AwayAvgGoals  float64 `json:"awayAvgGoals"`
}

// MarginalAnalysis covers half splits, possession estimates, volatility
// and team typology.
type MarginalAnalysis struct {
	FirstHalfGoals  float64 `json:"firstHalfGoals"`
	SecondHalfGoals float64 `json:"secondHalfGoals"`
	HomePossession  float64 `json:"homePossession"`
	AwayPossession  float64 `json:"awayPossession"`
	RiskIndex       float64 `json:"riskIndex"`
	HomeTypology    string  `json:"homeTypology"`
	AwayTypology    string  `json:"awayTypology"`
}

// GoalsService derives goal-market and marginal estimates from two team
// records. All methods are pure.
type GoalsService struct{}

func NewGoalsService() *GoalsService {
	return &GoalsService{}
}

// Goals computes expected goals with a fixed 0.9 dampening, the
// piecewise-linear over-2.5 curve clamped to [0.15, 0.85], and the
// two-level BTTS step function.
func (s *GoalsService) Goals(home, away standings.TeamRecord) GoalsAnalysis {
	homeAvg := home.GoalsForAvg()
	awayAvg := away.GoalsForAvg()
	expected := (homeAvg + awayAvg) * 0.9

	var over25 float64
	if expected > 2.5 {
		over25 = math.Min(0.85, 0.5+(expected-2.5)*0.15)
	} else {
		over25 = math.Max(0.15, 0.5-(2.5-expected)*0.15)
	}
	under25 := 1 - over25

	btts := scoringPropensity(homeAvg) * scoringPropensity(awayAvg)

	return GoalsAnalysis{
		ExpectedGoals: round2(expected),
		Over25:        round2pct(over25),
		Under25:       round2pct(under25),
		BTTS:          round2pct(btts),
		HomeAvgGoals:  round2(homeAvg),
		AwayAvgGoals:  round2(awayAvg),
	}
}

// Marginals computes the fixed 45/55 half split, the possession
// estimate with home scaling, the volatility index, and typologies.
// Home and away possession are rounded and clamped to [30, 70]
// independently, so the pair may not sum to exactly 100; that slack is
// intentional and surfaced to clients as-is.
func (s *GoalsService) Marginals(home, away standings.TeamRecord) MarginalAnalysis {
	expected := s.Goals(home, away).ExpectedGoals

	homeStrength := home.PointsAvgValue()
	awayStrength := away.PointsAvgValue()
	totalStrength := homeStrength + awayStrength

	homePossession := 50.0
	if totalStrength > 0 {
		homePossession = homeStrength / totalStrength * 100 * 1.1
	}

	return MarginalAnalysis{
		FirstHalfGoals:  round2(expected * 0.45),
		SecondHalfGoals: round2(expected * 0.55),
		HomePossession:  clampPossession(round1(homePossession)),
		AwayPossession:  clampPossession(round1(100 - homePossession)),
		RiskIndex:       round2((volatility(home) + volatility(away)) / 2),
		HomeTypology:    Typology(home),
		AwayTypology:    Typology(away),
	}
}

// Typology classifies a team by average goals scored and conceded.
func Typology(rec standings.TeamRecord) string {
	forAvg := rec.GoalsForAvg()
	againstAvg := rec.GoalsAgainstAvg()

	switch {
	case forAvg > 1.8 && againstAvg > 1.5:
		return TypologyOffensiveHighRisk
	case forAvg > 1.8 && againstAvg < 1.0:
		return TypologyOffensiveBalanced
	case forAvg < 1.2 && againstAvg < 1.0:
		return TypologyDefensiveConservative
	case forAvg < 1.2 && againstAvg > 1.5:
		return TypologyDefensiveVulnerable
	default:
		return TypologyBalanced
	}
}

func scoringPropensity(avgGoals float64) float64 {
	if avgGoals > 0.8 {
		return 0.7
	}
	return 0.4
}

func volatility(rec standings.TeamRecord) float64 {
	if rec.Played <= 0 {
		return 0
	}
	return math.Abs(float64(rec.GoalsFor-rec.GoalsAgainst)) / float64(rec.Played)
}

func clampPossession(v float64) float64 {
	return math.Min(70, math.Max(30, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
