package usecase

import (
	"math"
	"testing"

	"github.com/promiedos/dashboard-pro/internal/domain/standings"
)

func testRecord(name, teamID string, played, won, draw, lost, goalsFor, goalsAgainst, points int, pointsAvg, form string) standings.TeamRecord {
	return standings.TeamRecord{
		Name:           name,
		TeamID:         teamID,
		Played:         played,
		Won:            won,
		Draw:           draw,
		Lost:           lost,
		GoalsFor:       goalsFor,
		GoalsAgainst:   goalsAgainst,
		GoalDifference: goalsFor - goalsAgainst,
		Points:         points,
		PointsAvg:      pointsAvg,
		Form:           form,
	}
}

func assertProbabilities(t *testing.T, p Prediction) {
	t.Helper()
	sum := p.HomeWin + p.Draw + p.AwayWin
	if math.Abs(sum-100) > 0.05 {
		t.Fatalf("probabilities sum to %.2f, want 100", sum)
	}
	for _, v := range []float64{p.HomeWin, p.Draw, p.AwayWin} {
		if v < 0 || v > 100 {
			t.Fatalf("probability %.2f out of range", v)
		}
	}
}

func TestRatingModelEqualTeams(t *testing.T) {
	t.Parallel()

	svc := NewPredictionService(DefaultPredictionConfig())
	home := testRecord("Home", "1", 10, 6, 2, 2, 18, 10, 20, "2.00", "WWDWL")
	away := testRecord("Away", "2", 10, 6, 2, 2, 18, 10, 20, "2.00", "WWDWL")

	p := svc.Rating(home, away)
	assertProbabilities(t, p)

	if p.HomeRating != 2000 {
		t.Fatalf("home rating = %d, want 2000", p.HomeRating)
	}
	if p.AwayRating != 1900 {
		t.Fatalf("away rating = %d, want 1900", p.AwayRating)
	}
	// Equal records, so only the home bonus separates the sides.
	if p.HomeWin != 51.21 || p.AwayWin != 28.79 || p.Draw != 20.00 {
		t.Fatalf("split = %.2f/%.2f/%.2f, want 51.21/20.00/28.79", p.HomeWin, p.Draw, p.AwayWin)
	}
	if p.Confidence != 75 {
		t.Fatalf("confidence = %.2f, want 75", p.Confidence)
	}
}

func TestRatingModelFavorsStrongerTeam(t *testing.T) {
	t.Parallel()

	svc := NewPredictionService(DefaultPredictionConfig())
	strong := testRecord("Strong", "1", 20, 16, 3, 1, 48, 15, 51, "2.55", "WWWWW")
	weak := testRecord("Weak", "2", 20, 2, 4, 14, 14, 42, 10, "0.50", "LLLLL")

	p := svc.Rating(strong, weak)
	assertProbabilities(t, p)
	if p.HomeWin <= p.AwayWin {
		t.Fatalf("home %.2f should beat away %.2f", p.HomeWin, p.AwayWin)
	}
	if p.Confidence < 65 || p.Confidence > 95 {
		t.Fatalf("confidence %.2f out of [65, 95]", p.Confidence)
	}

	// Same gap the other way around still carries the home bonus.
	reversed := svc.Rating(weak, strong)
	assertProbabilities(t, reversed)
	if reversed.AwayWin <= reversed.HomeWin {
		t.Fatalf("away %.2f should beat home %.2f", reversed.AwayWin, reversed.HomeWin)
	}
}

func TestRatingModelConfidenceCap(t *testing.T) {
	t.Parallel()

	svc := NewPredictionService(DefaultPredictionConfig())
	strong := testRecord("Strong", "1", 20, 20, 0, 0, 60, 5, 60, "3.00", "WWWWW")
	weak := testRecord("Weak", "2", 20, 0, 0, 20, 5, 60, 0, "0.00", "LLLLL")

	// Rating gap is 600 + 100 home bonus, past the 300-point threshold
	// where confidence saturates.
	p := svc.Rating(strong, weak)
	if p.Confidence != 95 {
		t.Fatalf("confidence = %.2f, want 95", p.Confidence)
	}
}

func TestStrengthModelZeroData(t *testing.T) {
	t.Parallel()

	svc := NewPredictionService(DefaultPredictionConfig())
	home := testRecord("Home", "1", 0, 0, 0, 0, 0, 0, 0, "0.00", "")
	away := testRecord("Away", "2", 0, 0, 0, 0, 0, 0, 0, "0.00", "")

	p := svc.Strength(home, away)
	assertProbabilities(t, p)

	// No data degrades to an even split before the draw weight.
	if p.HomeWin != p.AwayWin {
		t.Fatalf("home %.2f != away %.2f for empty records", p.HomeWin, p.AwayWin)
	}
	if p.HomeWin != 36.36 || p.Draw != 27.27 {
		t.Fatalf("split = %.2f/%.2f/%.2f, want 36.36/27.27/36.36", p.HomeWin, p.Draw, p.AwayWin)
	}
	if p.Confidence != 55 {
		t.Fatalf("confidence = %.2f, want 55", p.Confidence)
	}
}

func TestStrengthModelHomeEdgeOnEqualRecords(t *testing.T) {
	t.Parallel()

	svc := NewPredictionService(DefaultPredictionConfig())
	home := testRecord("Home", "1", 10, 5, 3, 2, 15, 10, 18, "1.80", "WDWLW")
	away := testRecord("Away", "2", 10, 5, 3, 2, 15, 10, 18, "1.80", "WDWLW")

	p := svc.Strength(home, away)
	assertProbabilities(t, p)
	if p.HomeWin <= p.AwayWin {
		t.Fatalf("home multiplier should give the edge: %.2f vs %.2f", p.HomeWin, p.AwayWin)
	}
	if p.HomeStrength != p.AwayStrength {
		t.Fatalf("raw strengths differ for equal records: %.3f vs %.3f", p.HomeStrength, p.AwayStrength)
	}
	// Equal raw strengths, so confidence stays at the floor.
	if p.Confidence != 55 {
		t.Fatalf("confidence = %.2f, want 55", p.Confidence)
	}
	if p.Confidence < 55 || p.Confidence > 85 {
		t.Fatalf("confidence %.2f out of [55, 85]", p.Confidence)
	}
}

func TestStrengthModelDiagnostics(t *testing.T) {
	t.Parallel()

	svc := NewPredictionService(DefaultPredictionConfig())
	home := testRecord("Home", "1", 20, 16, 3, 1, 48, 15, 51, "2.55", "WWWWW")
	away := testRecord("Away", "2", 20, 2, 4, 14, 14, 42, 10, "0.50", "LLLLL")

	p := svc.Strength(home, away)
	// 0.8*0.4 + 2.55/3*0.6 = 0.83
	if p.HomeStrength != 0.83 {
		t.Fatalf("home strength = %.3f, want 0.83", p.HomeStrength)
	}
	// 0.1*0.4 + 0.5/3*0.6 = 0.14
	if p.AwayStrength != 0.14 {
		t.Fatalf("away strength = %.3f, want 0.14", p.AwayStrength)
	}
}
