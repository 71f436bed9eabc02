package odds

import "fmt"

// Quote holds decimal odds for the standard markets of one fixture.
type Quote struct {
	FixtureID string
	HomeTeam  string
	AwayTeam  string
	HomeWin   float64
	Draw      float64
	AwayWin   float64
	Over25    float64
	Under25   float64
	BTTS      float64
	Bookmaker string
	UpdatedAt string
}

// Implied converts decimal odds to the implied probability in percent.
func Implied(decimalOdds float64) float64 {
	if decimalOdds <= 0 {
		return 0
	}
	return 100 / decimalOdds
}

func (q Quote) Validate() error {
	for _, v := range []struct {
		market string
		odds   float64
	}{
		{"home win", q.HomeWin},
		{"draw", q.Draw},
		{"away win", q.AwayWin},
		{"over 2.5", q.Over25},
		{"under 2.5", q.Under25},
		{"btts", q.BTTS},
	} {
		if v.odds < 1.0 {
			return fmt.Errorf("%s odds %.2f below 1.0", v.market, v.odds)
		}
	}
	return nil
}
