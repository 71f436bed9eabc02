package usecase

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"time"

	"github.com/promiedos/dashboard-pro/internal/domain/odds"
	"github.com/promiedos/dashboard-pro/internal/domain/standings"
)

// Alert severities.
const (
	SeverityInfo     = "Info"
	SeverityWarning  = "Warning"
	SeverityCritical = "Critical"
)

// Alert types.
const (
	AlertOddsMovement = "Odds Movement"
	AlertHighValue    = "High Value"
	AlertPoorForm     = "Poor Form"
	AlertInjuryReport = "Injury Report"
)

// Alert is an advisory signal attached to a match analysis. Alerts are
// informational only and never gate any computation.
type Alert struct {
	Type      string `json:"type"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
}

// AlertConfig tunes the rule engine.
type AlertConfig struct {
	DemoEnabled         bool
	ConfidenceThreshold float64 // fraction in (0, 1]; value alerts need at least this model confidence
}

// AlertService evaluates deterministic threshold rules over real
// inputs. The optional demo generator adds illustrative alerts derived
// from a stable hash of the fixture, for demo environments only.
type AlertService struct {
	betting             *BettingService
	demoEnabled         bool
	confidenceThreshold float64
	now                 func() time.Time
}

func NewAlertService(betting *BettingService, cfg AlertConfig) *AlertService {
	threshold := cfg.ConfidenceThreshold
	if threshold <= 0 || threshold > 1 {
		threshold = 0.7
	}
	return &AlertService{
		betting:             betting,
		demoEnabled:         cfg.DemoEnabled,
		confidenceThreshold: threshold,
		now:                 time.Now,
	}
}

// Evaluate runs the rule set for one fixture. previous may be the zero
// Quote when no earlier odds snapshot exists; the odds-movement rule is
// skipped in that case.
func (s *AlertService) Evaluate(home, away standings.TeamRecord, prediction Prediction, current, previous odds.Quote) []Alert {
	alerts := make([]Alert, 0, 4)
	timestamp := s.now().UTC().Format(time.RFC3339)

	if previous.HomeWin >= 1 && current.HomeWin >= 1 {
		delta := (current.HomeWin - previous.HomeWin) / previous.HomeWin * 100
		if math.Abs(delta) > 10 {
			direction := "shortened"
			if delta > 0 {
				direction = "drifted"
			}
			alerts = append(alerts, Alert{
				Type:      AlertOddsMovement,
				Severity:  SeverityWarning,
				Message:   fmt.Sprintf("%s home odds %s %.1f%% since the last snapshot", home.Name, direction, math.Abs(delta)),
				Action:    "Check recent team news",
				Timestamp: timestamp,
			})
		}
	}

	// Value alerts only fire on predictions the models are confident
	// about; low-confidence edges are noise.
	if prediction.Confidence >= s.confidenceThreshold*100 {
		for _, bet := range s.betting.ValueBets(prediction, current) {
			if bet.ValuePercent > 10 {
				alerts = append(alerts, Alert{
					Type:      AlertHighValue,
					Severity:  SeverityInfo,
					Message:   fmt.Sprintf("High value on %s: %.2f%% over the implied price", bet.Type, bet.ValuePercent),
					Action:    "Consider a value bet",
					Timestamp: timestamp,
				})
				break
			}
		}
	}

	if strings.HasSuffix(home.Form, "LLL") {
		alerts = append(alerts, Alert{
			Type:      AlertPoorForm,
			Severity:  SeverityWarning,
			Message:   fmt.Sprintf("%s has lost its last 3 matches", home.Name),
			Action:    "Weigh recent form against the model output",
			Timestamp: timestamp,
		})
	}

	if s.demoEnabled {
		alerts = append(alerts, s.demoAlerts(home, away, timestamp)...)
	}
	return alerts
}

// demoAlerts derives stable illustrative alerts from a hash of the
// pairing, so repeated requests for the same fixture show the same
// demo content.
func (s *AlertService) demoAlerts(home, away standings.TeamRecord, timestamp string) []Alert {
	out := make([]Alert, 0, 2)
	seed := pairingHash(home.TeamID, away.TeamID)

	if seed%10 >= 7 {
		out = append(out, Alert{
			Type:      AlertOddsMovement,
			Severity:  SeverityWarning,
			Message:   fmt.Sprintf("%s odds dropped 15%% over the last 2 hours", home.Name),
			Action:    "Check recent team news",
			Timestamp: timestamp,
		})
	}
	if seed%10 >= 8 {
		out = append(out, Alert{
			Type:      AlertInjuryReport,
			Severity:  SeverityCritical,
			Message:   fmt.Sprintf("A key %s player may be injured", away.Name),
			Action:    "Verify the official lineup before betting",
			Timestamp: timestamp,
		})
	}
	return out
}

func pairingHash(homeID, awayID string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(homeID))
	h.Write([]byte{':'})
	h.Write([]byte(awayID))
	return h.Sum32()
}
