package team

// Details is the team profile page payload.
type Details struct {
	ID          string
	Name        string
	ShortName   string
	Crest       string
	Founded     int
	Venue       string
	Website     string
	ClubColors  string
	Coach       string
	Description string
}
