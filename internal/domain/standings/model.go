package standings

import (
	"fmt"
	"strconv"
)

// TeamRecord is one row of a league table, normalized across providers.
// Records are rebuilt wholesale on every successful fetch and never
// mutated in place.
type TeamRecord struct {
	Position       int
	Name           string
	TeamID         string
	Played         int
	Won            int
	Draw           int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
	Form           string // 'W'/'D'/'L' sequence, most recent last
	PointsAvg      string // points per game, two fraction digits
}

// FormatPointsAvg renders points/played with two fraction digits,
// "0.00" when no games were played.
func FormatPointsAvg(points, played int) string {
	if played <= 0 {
		return "0.00"
	}
	return strconv.FormatFloat(float64(points)/float64(played), 'f', 2, 64)
}

func (r TeamRecord) PointsAvgValue() float64 {
	v, err := strconv.ParseFloat(r.PointsAvg, 64)
	if err != nil {
		return 0
	}
	return v
}

func (r TeamRecord) WinRate() float64 {
	if r.Played <= 0 {
		return 0
	}
	return float64(r.Won) / float64(r.Played)
}

func (r TeamRecord) DrawRate() float64 {
	if r.Played <= 0 {
		return 0
	}
	return float64(r.Draw) / float64(r.Played)
}

func (r TeamRecord) GoalsForAvg() float64 {
	if r.Played <= 0 {
		return 0
	}
	return float64(r.GoalsFor) / float64(r.Played)
}

func (r TeamRecord) GoalsAgainstAvg() float64 {
	if r.Played <= 0 {
		return 0
	}
	return float64(r.GoalsAgainst) / float64(r.Played)
}

func (r TeamRecord) Validate() error {
	if r.TeamID == "" {
		return fmt.Errorf("team id is required")
	}
	if r.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if r.Played < 0 {
		return fmt.Errorf("played cannot be negative")
	}

	return nil
}

// FindByTeamID returns the record for teamID, if present.
func FindByTeamID(records []TeamRecord, teamID string) (TeamRecord, bool) {
	for _, r := range records {
		if r.TeamID == teamID {
			return r, true
		}
	}
	return TeamRecord{}, false
}
