package usecase

import (
	"fmt"
	"math"
	"sort"

	"github.com/promiedos/dashboard-pro/internal/domain/odds"
)

// Risk labels for the Kelly bucket classification.
const (
	RiskVeryLow  = "Very Low"
	RiskLow      = "Low"
	RiskModerate = "Moderate"
	RiskHigh     = "High"
	RiskVeryHigh = "Very High"
)

// EVResult is the expected value of one probability/odds pair.
type EVResult struct {
	EV           float64 `json:"ev"`
	EVPercentage float64 `json:"evPercentage"`
	IsValue      bool    `json:"isValue"`
}

// ValueBet is the per-outcome value assessment for one fixture.
type ValueBet struct {
	Type        string  `json:"type"`
	Probability float64 `json:"probability"`
	Odds        float64 `json:"odds"`
	EVResult
	ImpliedProbability float64 `json:"impliedProbability"`
	ValuePercent       float64 `json:"valuePercent"`
	HasValue           bool    `json:"hasValue"`
}

// KellyStake is the recommended stake for one bet.
type KellyStake struct {
	KellyPercentage  float64 `json:"kellyPercentage"`
	RecommendedStake float64 `json:"recommendedStake"`
	PotentialReturn  float64 `json:"potentialReturn"`
	PotentialProfit  float64 `json:"potentialProfit"`
	RiskLevel        string  `json:"riskLevel"`
}

// ParlaySelection is one leg of a candidate parlay.
type ParlaySelection struct {
	Match       string  `json:"match"`
	Type        string  `json:"type"`
	Odds        float64 `json:"odds"`
	Probability float64 `json:"probability"`
}

// Parlay is a scored multi-leg combination.
type Parlay struct {
	Selections       []string `json:"selections"`
	Size             int      `json:"size"`
	TotalOdds        float64  `json:"totalOdds"`
	TotalProbability float64  `json:"totalProbability"`
	EV               float64  `json:"ev"`
	Stake            float64  `json:"stake"`
	PotentialReturn  float64  `json:"potentialReturn"`
	PotentialProfit  float64  `json:"potentialProfit"`
	RiskReward       float64  `json:"riskReward"`
}

// SettledBet is one entry of a betting history.
type SettledBet struct {
	Stake  float64 `json:"stake"`
	Return float64 `json:"return"`
	Won    bool    `json:"won"`
}

// PerformanceMetrics summarizes a settled betting history.
type PerformanceMetrics struct {
	WinRate     float64 `json:"winRate"`
	ROI         float64 `json:"roi"`
	SharpeRatio float64 `json:"sharpeRatio"`
	MaxDrawdown float64 `json:"maxDrawdown"`
	TotalBets   int     `json:"totalBets"`
}

// BettingConfig tunes the engine. Zero values fall back to defaults.
type BettingConfig struct {
	Bankroll          float64
	KellyFractions    []float64 // allowed sizing fractions, first entry is the default
	MaxParlaySize     int
	MinValueThreshold float64 // value-bet cutoff as a fraction, e.g. 0.05
	ParlayStake       float64
	ParlayProbFloor   float64 // joint probability floor in percent
	ParlayLimit       int
}

func DefaultBettingConfig() BettingConfig {
	return BettingConfig{
		Bankroll:          1000,
		KellyFractions:    []float64{1, 0.5, 0.25},
		MaxParlaySize:     6,
		MinValueThreshold: 0.05,
		ParlayStake:       10,
		ParlayProbFloor:   20,
		ParlayLimit:       6,
	}
}

func normalizeBettingConfig(cfg BettingConfig) BettingConfig {
	def := DefaultBettingConfig()
	if cfg.Bankroll <= 0 {
		cfg.Bankroll = def.Bankroll
	}
	if len(cfg.KellyFractions) == 0 {
		cfg.KellyFractions = def.KellyFractions
	}
	if cfg.MaxParlaySize < 2 {
		cfg.MaxParlaySize = def.MaxParlaySize
	}
	if cfg.MinValueThreshold <= 0 {
		cfg.MinValueThreshold = def.MinValueThreshold
	}
	if cfg.ParlayStake <= 0 {
		cfg.ParlayStake = def.ParlayStake
	}
	if cfg.ParlayProbFloor <= 0 {
		cfg.ParlayProbFloor = def.ParlayProbFloor
	}
	if cfg.ParlayLimit <= 0 {
		cfg.ParlayLimit = def.ParlayLimit
	}
	return cfg
}

// BettingService derives value metrics from predictions and odds. All
// methods are pure functions of their inputs plus the fixed config.
type BettingService struct {
	cfg BettingConfig
}

func NewBettingService(cfg BettingConfig) *BettingService {
	return &BettingService{cfg: normalizeBettingConfig(cfg)}
}

// WithBankroll derives a service sized for a caller-supplied bankroll
// while keeping the rest of the configuration.
func (s *BettingService) WithBankroll(bankroll float64) *BettingService {
	if bankroll <= 0 {
		return s
	}
	cfg := s.cfg
	cfg.Bankroll = bankroll
	return NewBettingService(cfg)
}

// DefaultKellyFraction is the first configured sizing fraction.
func (s *BettingService) DefaultKellyFraction() float64 {
	return s.cfg.KellyFractions[0]
}

// AllowsKellyFraction reports whether the fraction is one of the
// configured sizing options.
func (s *BettingService) AllowsKellyFraction(fraction float64) bool {
	for _, f := range s.cfg.KellyFractions {
		if f == fraction {
			return true
		}
	}
	return false
}

// EV computes expected profit per unit stake. Probability is in
// percent.
func (s *BettingService) EV(probability, decimalOdds float64) EVResult {
	p := probability / 100
	ev := p*(decimalOdds-1) - (1 - p)
	return EVResult{
		EV:           round4(ev),
		EVPercentage: round2(ev * 100),
		IsValue:      ev > 0,
	}
}

// ValueBets assesses the three match outcomes against a quote and
// returns them sorted by EV percentage, best first.
func (s *BettingService) ValueBets(prediction Prediction, quote odds.Quote) []ValueBet {
	candidates := []struct {
		betType     string
		probability float64
		decimalOdds float64
	}{
		{"Home Win", prediction.HomeWin, quote.HomeWin},
		{"Draw", prediction.Draw, quote.Draw},
		{"Away Win", prediction.AwayWin, quote.AwayWin},
	}

	out := make([]ValueBet, 0, len(candidates))
	for _, c := range candidates {
		implied := odds.Implied(c.decimalOdds)
		valuePercent := c.probability - implied
		out = append(out, ValueBet{
			Type:               c.betType,
			Probability:        c.probability,
			Odds:               c.decimalOdds,
			EVResult:           s.EV(c.probability, c.decimalOdds),
			ImpliedProbability: round2(implied),
			ValuePercent:       round2(valuePercent),
			HasValue:           valuePercent > s.cfg.MinValueThreshold*100,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EVPercentage > out[j].EVPercentage
	})
	return out
}

// Kelly sizes a stake with the Kelly criterion, scaled by fraction
// (1 = full Kelly). Negative Kelly clamps to zero stake.
func (s *BettingService) Kelly(probability, decimalOdds, fraction float64) KellyStake {
	if fraction <= 0 {
		fraction = s.DefaultKellyFraction()
	}
	p := probability / 100
	q := 1 - p
	b := decimalOdds - 1

	kelly := 0.0
	if b > 0 {
		kelly = (b*p - q) / b
	}
	adjusted := math.Max(0, kelly*fraction)

	stake := s.cfg.Bankroll * adjusted
	potentialReturn := stake * decimalOdds

	return KellyStake{
		KellyPercentage:  round2(adjusted * 100),
		RecommendedStake: round2(stake),
		PotentialReturn:  round2(potentialReturn),
		PotentialProfit:  round2(potentialReturn - stake),
		RiskLevel:        riskLevel(adjusted),
	}
}

// Parlays enumerates combinations of 2..min(maxSize, n) selections,
// prices each assuming independent outcomes, drops combinations under
// the joint probability floor, and returns the best by EV. The
// independence assumption is a documented simplification.
func (s *BettingService) Parlays(selections []ParlaySelection) []Parlay {
	if len(selections) < 2 {
		return []Parlay{}
	}

	maxSize := min(s.cfg.MaxParlaySize, len(selections))
	out := make([]Parlay, 0, 16)
	for size := 2; size <= maxSize; size++ {
		for _, combo := range combinations(selections, size) {
			parlay := s.priceParlay(combo)
			if parlay.TotalProbability > s.cfg.ParlayProbFloor {
				out = append(out, parlay)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EV > out[j].EV
	})
	if len(out) > s.cfg.ParlayLimit {
		out = out[:s.cfg.ParlayLimit]
	}
	return out
}

func (s *BettingService) priceParlay(combo []ParlaySelection) Parlay {
	totalOdds := 1.0
	totalProbability := 1.0
	labels := make([]string, 0, len(combo))
	for _, sel := range combo {
		totalOdds *= sel.Odds
		totalProbability *= sel.Probability / 100
		labels = append(labels, fmt.Sprintf("%s: %s", sel.Match, sel.Type))
	}
	totalProbability *= 100

	ev := s.EV(totalProbability, totalOdds)
	potentialReturn := s.cfg.ParlayStake * totalOdds

	return Parlay{
		Selections:       labels,
		Size:             len(combo),
		TotalOdds:        round2(totalOdds),
		TotalProbability: round2(totalProbability),
		EV:               ev.EVPercentage,
		Stake:            s.cfg.ParlayStake,
		PotentialReturn:  round2(potentialReturn),
		PotentialProfit:  round2(potentialReturn - s.cfg.ParlayStake),
		RiskReward:       round2(potentialReturn / s.cfg.ParlayStake),
	}
}

// Performance computes win rate, ROI, a simplified Sharpe ratio over
// per-bet returns-on-stake, and max drawdown from a sequential bankroll
// walk. An empty history yields all zeros.
func (s *BettingService) Performance(history []SettledBet) PerformanceMetrics {
	if len(history) == 0 {
		return PerformanceMetrics{}
	}

	wins := 0
	totalStake := 0.0
	totalReturn := 0.0
	returns := make([]float64, 0, len(history))
	for _, bet := range history {
		totalStake += bet.Stake
		if bet.Won {
			wins++
			totalReturn += bet.Return
			returns = append(returns, (bet.Return-bet.Stake)/bet.Stake)
		} else {
			returns = append(returns, -1)
		}
	}

	winRate := float64(wins) / float64(len(history)) * 100
	roi := 0.0
	if totalStake > 0 {
		roi = (totalReturn - totalStake) / totalStake * 100
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns))

	sharpe := 0.0
	if stdDev := math.Sqrt(variance); stdDev > 0 {
		sharpe = mean / stdDev
	}

	peak := 0.0
	maxDrawdown := 0.0
	bankroll := s.cfg.Bankroll
	for _, bet := range history {
		if bet.Won {
			bankroll += bet.Return - bet.Stake
		} else {
			bankroll -= bet.Stake
		}
		// Stakes are not capped by the bankroll, so the walk can go
		// negative; floor it to keep drawdown within [0, 100].
		bankroll = max(bankroll, 0)
		if bankroll > peak {
			peak = bankroll
		}
		if peak > 0 {
			if drawdown := (peak - bankroll) / peak * 100; drawdown > maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}

	return PerformanceMetrics{
		WinRate:     round2(winRate),
		ROI:         round2(roi),
		SharpeRatio: round2(sharpe),
		MaxDrawdown: round2(maxDrawdown),
		TotalBets:   len(history),
	}
}

func riskLevel(kellyFraction float64) string {
	switch {
	case kellyFraction < 0.02:
		return RiskVeryLow
	case kellyFraction < 0.05:
		return RiskLow
	case kellyFraction < 0.10:
		return RiskModerate
	case kellyFraction < 0.20:
		return RiskHigh
	default:
		return RiskVeryHigh
	}
}

// combinations returns all order-independent subsets of the given size.
func combinations(items []ParlaySelection, size int) [][]ParlaySelection {
	if size > len(items) {
		return nil
	}
	if size == 1 {
		out := make([][]ParlaySelection, 0, len(items))
		for _, item := range items {
			out = append(out, []ParlaySelection{item})
		}
		return out
	}

	var out [][]ParlaySelection
	for i := 0; i <= len(items)-size; i++ {
		head := items[i]
		for _, tail := range combinations(items[i+1:], size-1) {
			combo := make([]ParlaySelection, 0, size)
			combo = append(combo, head)
			combo = append(combo, tail...)
			out = append(out, combo)
		}
	}
	return out
}
