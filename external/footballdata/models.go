package footballdata

// Response envelopes for the football-data.org v4 API. Only the fields
// the dashboard consumes are declared.

type standingsEnvelope struct {
	Standings []standingsGroup `json:"standings"`
}

type standingsGroup struct {
	Type  string         `json:"type"`
	Table []standingsRow `json:"table"`
}

type standingsRow struct {
	Position       int      `json:"position"`
	Team           teamInfo `json:"team"`
	PlayedGames    int      `json:"playedGames"`
	Won            int      `json:"won"`
	Draw           int      `json:"draw"`
	Lost           int      `json:"lost"`
	GoalsFor       int      `json:"goalsFor"`
	GoalsAgainst   int      `json:"goalsAgainst"`
	GoalDifference int      `json:"goalDifference"`
	Points         int      `json:"points"`
	Form           string   `json:"form"`
}

type teamInfo struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
	Crest     string `json:"crest"`
}

type matchesEnvelope struct {
	Matches []matchItem `json:"matches"`
}

type matchItem struct {
	ID          int64           `json:"id"`
	UTCDate     string          `json:"utcDate"`
	Status      string          `json:"status"`
	Matchday    int             `json:"matchday"`
	HomeTeam    teamInfo        `json:"homeTeam"`
	AwayTeam    teamInfo        `json:"awayTeam"`
	Venue       string          `json:"venue"`
	Competition competitionInfo `json:"competition"`
	Score       matchScore      `json:"score"`
}

type competitionInfo struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type matchScore struct {
	FullTime scorePair `json:"fullTime"`
	HalfTime scorePair `json:"halfTime"`
}

type scorePair struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type teamEnvelope struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ShortName  string `json:"shortName"`
	TLA        string `json:"tla"`
	Crest      string `json:"crest"`
	Founded    int    `json:"founded"`
	Venue      string `json:"venue"`
	Website    string `json:"website"`
	ClubColors string `json:"clubColors"`
	Coach      struct {
		Name string `json:"name"`
	} `json:"coach"`
}
