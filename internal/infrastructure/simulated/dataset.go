// Package simulated provides the deterministic fallback dataset served
// when every live data source is unavailable. The dashboard degrades to
// this snapshot instead of erroring out.
package simulated

import (
	"fmt"
	"strconv"
	"time"

	"github.com/promiedos/dashboard-pro/internal/domain/fixture"
	"github.com/promiedos/dashboard-pro/internal/domain/odds"
	"github.com/promiedos/dashboard-pro/internal/domain/standings"
	"github.com/promiedos/dashboard-pro/internal/domain/team"
)

// SourceName identifies this provider in source-status reports.
const SourceName = "simulated"

// Provider serves the static dataset. The clock is injectable so
// fixture dates stay stable in tests.
type Provider struct {
	now func() time.Time
}

func NewProvider() *Provider {
	return &Provider{now: time.Now}
}

// Standings returns a fresh copy of the reference table. Callers may
// mutate the result freely.
func (p *Provider) Standings() []standings.TeamRecord {
	out := make([]standings.TeamRecord, len(table))
	copy(out, table)
	return out
}

// Fixtures pairs the table top-to-bottom (1st hosts 20th, 2nd hosts
// 19th, and so on) spread over the next ten days.
func (p *Provider) Fixtures() []fixture.Fixture {
	now := p.now()
	fixtures := make([]fixture.Fixture, 0, len(table)/2)

	for i := 0; i < len(table)/2; i++ {
		home := table[i]
		away := table[len(table)-1-i]
		matchDate := now.AddDate(0, 0, i)

		fixtures = append(fixtures, fixture.Fixture{
			ID:         fmt.Sprintf("sim-fixture-%d", i),
			HomeTeam:   home.Name,
			AwayTeam:   away.Name,
			HomeTeamID: home.TeamID,
			AwayTeamID: away.TeamID,
			Date:       matchDate.Format("2006-01-02"),
			Time:       fmt.Sprintf("%02d:00", 15+i%6),
			Status:     fixture.StatusScheduled,
			League:     "Premier League",
			Venue:      home.Name + " Stadium",
		})
	}

	return fixtures
}

// LiveScores is empty in the fallback dataset: there is no meaningful
// way to fake in-play matches without misleading the user.
func (p *Provider) LiveScores() []fixture.LiveScore {
	return []fixture.LiveScore{}
}

// TeamDetails builds a minimal profile from the table row.
func (p *Provider) TeamDetails(teamID string) (team.Details, bool) {
	rec, ok := standings.FindByTeamID(table, teamID)
	if !ok {
		return team.Details{}, false
	}
	return team.Details{
		ID:        rec.TeamID,
		Name:      rec.Name,
		ShortName: rec.Name,
		Venue:     rec.Name + " Stadium",
	}, true
}

// Odds prices every simulated fixture from the table records.
func (p *Provider) Odds() []odds.Quote {
	fixtures := p.Fixtures()
	quotes := make([]odds.Quote, 0, len(fixtures))
	for _, fx := range fixtures {
		home, _ := standings.FindByTeamID(table, fx.HomeTeamID)
		away, _ := standings.FindByTeamID(table, fx.AwayTeamID)
		quotes = append(quotes, odds.Derive(fx.ID, fx.HomeTeam, fx.AwayTeam, home, away))
	}
	return quotes
}

func row(pos int, name, teamID string, won, draw, lost, gf, ga, points int, form string) standings.TeamRecord {
	played := won + draw + lost
	return standings.TeamRecord{
		Position:       pos,
		Name:           name,
		TeamID:         teamID,
		Played:         played,
		Won:            won,
		Draw:           draw,
		Lost:           lost,
		GoalsFor:       gf,
		GoalsAgainst:   ga,
		GoalDifference: gf - ga,
		Points:         points,
		Form:           form,
		PointsAvg:      strconv.FormatFloat(float64(points)/float64(played), 'f', 2, 64),
	}
}

// Mid-season Premier League snapshot. Kept internally consistent:
// played = W+D+L, goal difference and points average derive from the
// other columns.
var table = []standings.TeamRecord{
	row(1, "Manchester City", "133613", 16, 3, 1, 48, 15, 51, "WWDWW"),
	row(2, "Liverpool", "133602", 15, 4, 1, 52, 20, 49, "WWWDW"),
	row(3, "Arsenal", "133604", 14, 4, 2, 45, 18, 46, "WWWWD"),
	row(4, "Chelsea", "133610", 13, 3, 4, 42, 22, 42, "WLWWW"),
	row(5, "Manchester United", "133612", 12, 4, 4, 38, 25, 40, "DWWLW"),
	row(6, "Tottenham", "133611", 11, 5, 4, 40, 28, 38, "WDLWW"),
	row(7, "Newcastle", "133626", 10, 6, 4, 35, 24, 36, "DDWLW"),
	row(8, "Brighton", "133632", 10, 5, 5, 37, 28, 35, "WLWDW"),
	row(9, "Aston Villa", "133605", 9, 6, 5, 33, 29, 33, "DWLWD"),
	row(10, "West Ham", "133619", 9, 5, 6, 31, 30, 32, "LWDWL"),
	row(11, "Brentford", "136307", 8, 7, 5, 32, 28, 31, "DDWDL"),
	row(12, "Fulham", "133609", 8, 6, 6, 30, 29, 30, "WLDWD"),
	row(13, "Crystal Palace", "133614", 7, 8, 5, 26, 27, 29, "DDLWD"),
	row(14, "Everton", "133608", 7, 7, 6, 24, 26, 28, "LDWDL"),
	row(15, "Wolves", "134301", 6, 8, 6, 22, 28, 26, "DDLLW"),
	row(16, "Bournemouth", "133616", 6, 6, 8, 23, 32, 24, "LWLDD"),
	row(17, "Nottingham Forest", "133622", 5, 7, 8, 20, 31, 22, "DLLLD"),
	row(18, "Luton Town", "133674", 4, 6, 10, 18, 35, 18, "LLDLL"),
	row(19, "Sheffield United", "133624", 3, 5, 12, 16, 40, 14, "LLLLD"),
	row(20, "Burnley", "133618", 2, 4, 14, 14, 42, 10, "LLLLL"),
}
