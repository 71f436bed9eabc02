package sportsdb

// TheSportsDB returns every numeric field as a string; parsing treats
// malformed values as zero rather than failing the whole payload.

type tableEnvelope struct {
	Table []tableRow `json:"table"`
}

type tableRow struct {
	Rank           string `json:"intRank"`
	TeamID         string `json:"idTeam"`
	Team           string `json:"strTeam"`
	Played         string `json:"intPlayed"`
	Win            string `json:"intWin"`
	Draw           string `json:"intDraw"`
	Loss           string `json:"intLoss"`
	GoalsFor       string `json:"intGoalsFor"`
	GoalsAgainst   string `json:"intGoalsAgainst"`
	GoalDifference string `json:"intGoalDifference"`
	Points         string `json:"intPoints"`
	Form           string `json:"strForm"`
}

type eventsEnvelope struct {
	Events []eventItem `json:"events"`
}

type eventItem struct {
	ID         string `json:"idEvent"`
	HomeTeam   string `json:"strHomeTeam"`
	AwayTeam   string `json:"strAwayTeam"`
	HomeTeamID string `json:"idHomeTeam"`
	AwayTeamID string `json:"idAwayTeam"`
	Date       string `json:"dateEvent"`
	Time       string `json:"strTime"`
	League     string `json:"strLeague"`
	Venue      string `json:"strVenue"`
	Status     string `json:"strStatus"`
	HomeScore  string `json:"intHomeScore"`
	AwayScore  string `json:"intAwayScore"`
	Progress   string `json:"strProgress"`
}

type teamsEnvelope struct {
	Teams []teamItem `json:"teams"`
}

type teamItem struct {
	ID          string `json:"idTeam"`
	Name        string `json:"strTeam"`
	ShortName   string `json:"strTeamShort"`
	Badge       string `json:"strBadge"`
	Formed      string `json:"intFormedYear"`
	Stadium     string `json:"strStadium"`
	Website     string `json:"strWebsite"`
	Description string `json:"strDescriptionEN"`
}
