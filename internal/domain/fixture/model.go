package fixture

// Match statuses as surfaced to clients. Provider-specific codes are
// translated at the edge; unknown codes pass through unchanged.
const (
	StatusScheduled = "Scheduled"
	StatusLive      = "Live"
	StatusHalfTime  = "Half Time"
	StatusFinished  = "Finished"
	StatusPostponed = "Postponed"
	StatusSuspended = "Suspended"
	StatusCancelled = "Cancelled"
)

// Fixture is a scheduled or in-play match.
type Fixture struct {
	ID         string
	HomeTeam   string
	AwayTeam   string
	HomeTeamID string
	AwayTeamID string
	Date       string // yyyy-mm-dd
	Time       string // hh:mm, local kickoff
	Status     string
	League     string
	Venue      string
}

// LiveScore is the in-play view of a fixture.
type LiveScore struct {
	Fixture
	HomeScore int
	AwayScore int
	Minute    string
}

var statusByCode = map[string]string{
	"SCHEDULED": StatusScheduled,
	"TIMED":     StatusScheduled,
	"NS":        StatusScheduled,
	"IN_PLAY":   StatusLive,
	"LIVE":      StatusLive,
	"1H":        StatusLive,
	"2H":        StatusLive,
	"PAUSED":    StatusHalfTime,
	"HT":        StatusHalfTime,
	"FINISHED":  StatusFinished,
	"FT":        StatusFinished,
	"AET":       StatusFinished,
	"POSTPONED": StatusPostponed,
	"SUSPENDED": StatusSuspended,
	"CANCELLED": StatusCancelled,
	"CANCELED":  StatusCancelled,
}

// TranslateStatus maps a provider status code to the client-facing
// label. Codes without a mapping are returned as-is so new provider
// states degrade readably instead of disappearing.
func TranslateStatus(code string) string {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return code
}

// IsLive reports whether the status represents an in-play match,
// including the half-time pause.
func IsLive(status string) bool {
	return status == StatusLive || status == StatusHalfTime
}
