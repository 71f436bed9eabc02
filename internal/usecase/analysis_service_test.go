package usecase

import (
	"context"
	"errors"
	"testing"
)

func newAnalysisForTest(t *testing.T, sources ...DataSource) *AnalysisService {
	t.Helper()
	feed := newFeedForTest(t, sources...)
	betting := NewBettingService(DefaultBettingConfig())
	return NewAnalysisService(
		feed,
		NewPredictionService(DefaultPredictionConfig()),
		NewGoalsService(),
		betting,
		NewAlertService(betting, AlertConfig{}),
	)
}

func TestAnalyzeCombinesAllEngines(t *testing.T) {
	t.Parallel()

	svc := newAnalysisForTest(t, &fakeSource{name: "primary", err: errSourceDown})

	// Manchester City vs Burnley from the fallback table.
	analysis, err := svc.Analyze(context.Background(), "pl", "133613", "133618")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.League != "PL" {
		t.Fatalf("league = %q, want PL", analysis.League)
	}
	if analysis.HomeTeam.Name != "Manchester City" || analysis.AwayTeam.Name != "Burnley" {
		t.Fatalf("teams = %q vs %q", analysis.HomeTeam.Name, analysis.AwayTeam.Name)
	}
	if analysis.RatingPrediction.HomeWin <= analysis.RatingPrediction.AwayWin {
		t.Fatalf("rating model favours away: %.2f vs %.2f", analysis.RatingPrediction.HomeWin, analysis.RatingPrediction.AwayWin)
	}
	if analysis.StrengthPrediction.HomeWin <= analysis.StrengthPrediction.AwayWin {
		t.Fatalf("strength model favours away: %.2f vs %.2f", analysis.StrengthPrediction.HomeWin, analysis.StrengthPrediction.AwayWin)
	}
	if analysis.Goals.ExpectedGoals <= 0 {
		t.Fatalf("expected goals = %.2f", analysis.Goals.ExpectedGoals)
	}
	if analysis.Marginals.HomeTypology == "" || analysis.Marginals.AwayTypology == "" {
		t.Fatal("missing typologies")
	}
	if err := analysis.Odds.Validate(); err != nil {
		t.Fatalf("derived odds invalid: %v", err)
	}
	if len(analysis.ValueBets) != 3 {
		t.Fatalf("len(valueBets) = %d, want 3", len(analysis.ValueBets))
	}
}

func TestAnalyzeUnknownTeam(t *testing.T) {
	t.Parallel()

	svc := newAnalysisForTest(t, &fakeSource{name: "primary", err: errSourceDown})
	if _, err := svc.Analyze(context.Background(), "PL", "no-such-team", "133618"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAnalyzeRemembersQuoteSnapshot(t *testing.T) {
	t.Parallel()

	svc := newAnalysisForTest(t, &fakeSource{name: "primary", err: errSourceDown})

	first, err := svc.Analyze(context.Background(), "PL", "133613", "133618")
	if err != nil {
		t.Fatalf("first Analyze: %v", err)
	}
	second, err := svc.Analyze(context.Background(), "PL", "133613", "133618")
	if err != nil {
		t.Fatalf("second Analyze: %v", err)
	}
	// The fallback table is static, so the derived quote cannot move
	// between runs and no movement alert may fire.
	if first.Odds != second.Odds {
		t.Fatalf("quotes differ across runs: %+v vs %+v", first.Odds, second.Odds)
	}
	for _, alert := range second.Alerts {
		if alert.Type == AlertOddsMovement {
			t.Fatalf("static odds produced a movement alert: %+v", alert)
		}
	}
}
