package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/promiedos/dashboard-pro/internal/usecase"
)

type matchAnalysisRequest struct {
	League     string `json:"league"`
	HomeTeamID string `json:"homeTeamId" validate:"required"`
	AwayTeamID string `json:"awayTeamId" validate:"required,nefield=HomeTeamID"`
}

type matchAnalysisDTO struct {
	League             string                   `json:"league"`
	HomeTeam           teamRecordDTO            `json:"homeTeam"`
	AwayTeam           teamRecordDTO            `json:"awayTeam"`
	RatingPrediction   usecase.Prediction       `json:"ratingPrediction"`
	StrengthPrediction usecase.Prediction       `json:"strengthPrediction"`
	Goals              usecase.GoalsAnalysis    `json:"goals"`
	Marginals          usecase.MarginalAnalysis `json:"marginals"`
	Odds               quoteDTO                 `json:"odds"`
	ValueBets          []usecase.ValueBet       `json:"valueBets"`
	Alerts             []usecase.Alert          `json:"alerts"`
}

func (h *Handler) AnalyzeMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AnalyzeMatch")
	defer span.End()

	var req matchAnalysisRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if strings.TrimSpace(req.League) == "" {
		req.League = h.defaultLeague
	}

	analysis, err := h.analysis.Analyze(ctx, req.League, req.HomeTeamID, req.AwayTeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "match analysis failed",
			"league", req.League,
			"home_team_id", req.HomeTeamID,
			"away_team_id", req.AwayTeamID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchAnalysisToDTO(ctx, analysis))
}

func matchAnalysisToDTO(ctx context.Context, v usecase.MatchAnalysis) matchAnalysisDTO {
	ctx, span := startSpan(ctx, "httpapi.matchAnalysisToDTO")
	defer span.End()

	return matchAnalysisDTO{
		League:             v.League,
		HomeTeam:           teamRecordToDTO(ctx, v.HomeTeam),
		AwayTeam:           teamRecordToDTO(ctx, v.AwayTeam),
		RatingPrediction:   v.RatingPrediction,
		StrengthPrediction: v.StrengthPrediction,
		Goals:              v.Goals,
		Marginals:          v.Marginals,
		Odds:               quoteToDTO(ctx, v.Odds),
		ValueBets:          v.ValueBets,
		Alerts:             v.Alerts,
	}
}
