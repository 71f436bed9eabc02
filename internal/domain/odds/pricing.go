package odds

import (
	"math"

	"github.com/promiedos/dashboard-pro/internal/domain/standings"
)

// Derive prices a fixture from the two teams' table records. Outcome
// probabilities come from points-per-game adjusted for home advantage
// with a fixed draw weight, renormalized, then converted to decimal
// odds with a 10% bookmaker margin. The result is a pure function of
// the inputs, so derived quotes are stable across calls.
func Derive(fixtureID, homeTeam, awayTeam string, home, away standings.TeamRecord) Quote {
	const (
		margin     = 1.1
		drawWeight = 0.25
	)

	homeStrength := home.PointsAvgValue() * 1.15
	awayStrength := away.PointsAvgValue() * 0.85

	total := homeStrength + awayStrength
	if total <= 0 {
		homeStrength, awayStrength, total = 1, 1, 2
	}
	homeProb := homeStrength / total
	awayProb := awayStrength / total

	sum := homeProb + drawWeight + awayProb
	homeProb /= sum
	drawProb := drawWeight / sum
	awayProb /= sum

	homeGoals := home.GoalsForAvg()
	awayGoals := away.GoalsForAvg()
	if home.Played <= 0 {
		homeGoals = 1.5
	}
	if away.Played <= 0 {
		awayGoals = 1.5
	}
	expectedGoals := (homeGoals + awayGoals) * 0.9

	overProb := 0.4
	if expectedGoals > 2.5 {
		overProb = 0.6
	}
	underProb := 1 - overProb

	return Quote{
		FixtureID: fixtureID,
		HomeTeam:  homeTeam,
		AwayTeam:  awayTeam,
		HomeWin:   round2(margin / homeProb),
		Draw:      round2(margin / drawProb),
		AwayWin:   round2(margin / awayProb),
		Over25:    round2(margin / overProb),
		Under25:   round2(margin / underProb),
		BTTS:      2.00,
		Bookmaker: "Derived",
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
