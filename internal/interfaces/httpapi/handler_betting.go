package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/promiedos/dashboard-pro/internal/domain/odds"
	"github.com/promiedos/dashboard-pro/internal/usecase"
)

type valueBetsRequest struct {
	Prediction predictionInput `json:"prediction" validate:"required"`
	Odds       oddsInput       `json:"odds" validate:"required"`
}

type predictionInput struct {
	HomeWin float64 `json:"homeWin" validate:"gte=0,lte=100"`
	Draw    float64 `json:"draw" validate:"gte=0,lte=100"`
	AwayWin float64 `json:"awayWin" validate:"gte=0,lte=100"`
}

type oddsInput struct {
	HomeWin float64 `json:"homeWin" validate:"gte=1"`
	Draw    float64 `json:"draw" validate:"gte=1"`
	AwayWin float64 `json:"awayWin" validate:"gte=1"`
}

type kellyRequest struct {
	Probability float64 `json:"probability" validate:"gt=0,lte=100"`
	Odds        float64 `json:"odds" validate:"gt=1"`
	Fraction    float64 `json:"fraction" validate:"gte=0,lte=1"`
	Bankroll    float64 `json:"bankroll" validate:"gte=0"`
}

type parlaysRequest struct {
	Selections []parlaySelectionInput `json:"selections" validate:"required,min=2,dive"`
}

type parlaySelectionInput struct {
	Match       string  `json:"match" validate:"required"`
	Type        string  `json:"type" validate:"required"`
	Odds        float64 `json:"odds" validate:"gt=1"`
	Probability float64 `json:"probability" validate:"gt=0,lte=100"`
}

type performanceRequest struct {
	Bets []settledBetInput `json:"bets" validate:"dive"`
}

type settledBetInput struct {
	Stake  float64 `json:"stake" validate:"gt=0"`
	Return float64 `json:"return" validate:"gte=0"`
	Won    bool    `json:"won"`
}

func (h *Handler) ValueBets(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ValueBets")
	defer span.End()

	var req valueBetsRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	prediction := usecase.Prediction{
		HomeWin: req.Prediction.HomeWin,
		Draw:    req.Prediction.Draw,
		AwayWin: req.Prediction.AwayWin,
	}
	quote := odds.Quote{
		HomeWin: req.Odds.HomeWin,
		Draw:    req.Odds.Draw,
		AwayWin: req.Odds.AwayWin,
	}

	writeSuccess(ctx, w, http.StatusOK, h.betting.ValueBets(prediction, quote))
}

func (h *Handler) KellyStake(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.KellyStake")
	defer span.End()

	var req kellyRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	fraction := req.Fraction
	if fraction == 0 {
		fraction = h.betting.DefaultKellyFraction()
	}
	if !h.betting.AllowsKellyFraction(fraction) {
		writeError(ctx, w, fmt.Errorf("%w: fraction %v is not a configured kelly fraction", usecase.ErrInvalidInput, fraction))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, h.betting.WithBankroll(req.Bankroll).Kelly(req.Probability, req.Odds, fraction))
}

func (h *Handler) Parlays(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Parlays")
	defer span.End()

	var req parlaysRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	selections := make([]usecase.ParlaySelection, 0, len(req.Selections))
	for _, sel := range req.Selections {
		selections = append(selections, usecase.ParlaySelection{
			Match:       sel.Match,
			Type:        sel.Type,
			Odds:        sel.Odds,
			Probability: sel.Probability,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, h.betting.Parlays(selections))
}

func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Performance")
	defer span.End()

	var req performanceRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	history := make([]usecase.SettledBet, 0, len(req.Bets))
	for _, bet := range req.Bets {
		history = append(history, usecase.SettledBet{
			Stake:  bet.Stake,
			Return: bet.Return,
			Won:    bet.Won,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, h.betting.Performance(history))
}

func (h *Handler) decodeRequest(r *http.Request, payload any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
