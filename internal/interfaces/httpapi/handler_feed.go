package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/promiedos/dashboard-pro/internal/domain/fixture"
	"github.com/promiedos/dashboard-pro/internal/domain/odds"
	"github.com/promiedos/dashboard-pro/internal/domain/standings"
	"github.com/promiedos/dashboard-pro/internal/domain/team"
)

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.feed.Leagues())
}

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	league := strings.TrimSpace(r.PathValue("league"))
	records, source := h.feed.Standings(ctx, league)

	items := make([]teamRecordDTO, 0, len(records))
	for _, rec := range records {
		items = append(items, teamRecordToDTO(ctx, rec))
	}

	writeSuccess(ctx, w, http.StatusOK, standingsResponse{
		League:    strings.ToUpper(league),
		Source:    source,
		Standings: items,
	})
}

func (h *Handler) ExportStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportStandings")
	defer span.End()

	league := strings.TrimSpace(r.PathValue("league"))
	payload, filename, err := h.feed.ExportStandingsCSV(ctx, league)
	if err != nil {
		h.logger.WarnContext(ctx, "standings export failed", "league", league, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtures")
	defer span.End()

	league := strings.TrimSpace(r.PathValue("league"))
	fixtures, source := h.feed.Fixtures(ctx, league)

	items := make([]fixtureDTO, 0, len(fixtures))
	for _, fx := range fixtures {
		items = append(items, fixtureToDTO(ctx, fx))
	}

	writeSuccess(ctx, w, http.StatusOK, fixturesResponse{
		League:   strings.ToUpper(league),
		Source:   source,
		Fixtures: items,
	})
}

func (h *Handler) ListLiveScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLiveScores")
	defer span.End()

	league := strings.TrimSpace(r.PathValue("league"))
	scores, source := h.feed.LiveScores(ctx, league)

	items := make([]liveScoreDTO, 0, len(scores))
	for _, score := range scores {
		items = append(items, liveScoreToDTO(ctx, score))
	}

	writeSuccess(ctx, w, http.StatusOK, liveScoresResponse{
		League:  strings.ToUpper(league),
		Source:  source,
		Matches: items,
	})
}

func (h *Handler) ListOdds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListOdds")
	defer span.End()

	league := strings.TrimSpace(r.PathValue("league"))
	quotes, source := h.feed.Odds(ctx, league)

	items := make([]quoteDTO, 0, len(quotes))
	for _, quote := range quotes {
		items = append(items, quoteToDTO(ctx, quote))
	}

	writeSuccess(ctx, w, http.StatusOK, oddsResponse{
		League: strings.ToUpper(league),
		Source: source,
		Odds:   items,
	})
}

func (h *Handler) GetTeamDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamDetails")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	details, err := h.feed.TeamDetails(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team details failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamDetailsToDTO(ctx, details))
}

type standingsResponse struct {
	League    string          `json:"league"`
	Source    string          `json:"source"`
	Standings []teamRecordDTO `json:"standings"`
}

type fixturesResponse struct {
	League   string       `json:"league"`
	Source   string       `json:"source"`
	Fixtures []fixtureDTO `json:"fixtures"`
}

type liveScoresResponse struct {
	League  string         `json:"league"`
	Source  string         `json:"source"`
	Matches []liveScoreDTO `json:"matches"`
}

type oddsResponse struct {
	League string     `json:"league"`
	Source string     `json:"source"`
	Odds   []quoteDTO `json:"odds"`
}

type teamRecordDTO struct {
	Position       int    `json:"position"`
	Team           string `json:"team"`
	TeamID         string `json:"teamId"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Draw           int    `json:"draw"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
	Form           string `json:"form"`
	PointsAvg      string `json:"pointsAvg"`
}

type fixtureDTO struct {
	ID         string `json:"id"`
	HomeTeam   string `json:"homeTeam"`
	AwayTeam   string `json:"awayTeam"`
	HomeTeamID string `json:"homeTeamId"`
	AwayTeamID string `json:"awayTeamId"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Status     string `json:"status"`
	League     string `json:"league"`
	Venue      string `json:"venue"`
}

type liveScoreDTO struct {
	fixtureDTO
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
	Minute    string `json:"minute"`
}

type quoteDTO struct {
	FixtureID string  `json:"fixtureId"`
	HomeTeam  string  `json:"homeTeam"`
	AwayTeam  string  `json:"awayTeam"`
	HomeWin   float64 `json:"homeWin"`
	Draw      float64 `json:"draw"`
	AwayWin   float64 `json:"awayWin"`
	Over25    float64 `json:"over25"`
	Under25   float64 `json:"under25"`
	BTTS      float64 `json:"btts"`
	Bookmaker string  `json:"bookmaker"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
}

type teamDetailsDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ShortName   string `json:"shortName"`
	Crest       string `json:"crest"`
	Founded     int    `json:"founded"`
	Venue       string `json:"venue"`
	Website     string `json:"website"`
	ClubColors  string `json:"clubColors"`
	Coach       string `json:"coach"`
	Description string `json:"description"`
}

func teamRecordToDTO(ctx context.Context, v standings.TeamRecord) teamRecordDTO {
	ctx, span := startSpan(ctx, "httpapi.teamRecordToDTO")
	defer span.End()

	return teamRecordDTO{
		Position:       v.Position,
		Team:           v.Name,
		TeamID:         v.TeamID,
		Played:         v.Played,
		Won:            v.Won,
		Draw:           v.Draw,
		Lost:           v.Lost,
		GoalsFor:       v.GoalsFor,
		GoalsAgainst:   v.GoalsAgainst,
		GoalDifference: v.GoalDifference,
		Points:         v.Points,
		Form:           v.Form,
		PointsAvg:      v.PointsAvg,
	}
}

func fixtureToDTO(ctx context.Context, v fixture.Fixture) fixtureDTO {
	ctx, span := startSpan(ctx, "httpapi.fixtureToDTO")
	defer span.End()

	return fixtureDTO{
		ID:         v.ID,
		HomeTeam:   v.HomeTeam,
		AwayTeam:   v.AwayTeam,
		HomeTeamID: v.HomeTeamID,
		AwayTeamID: v.AwayTeamID,
		Date:       v.Date,
		Time:       v.Time,
		Status:     v.Status,
		League:     v.League,
		Venue:      v.Venue,
	}
}

func liveScoreToDTO(ctx context.Context, v fixture.LiveScore) liveScoreDTO {
	ctx, span := startSpan(ctx, "httpapi.liveScoreToDTO")
	defer span.End()

	return liveScoreDTO{
		fixtureDTO: fixtureToDTO(ctx, v.Fixture),
		HomeScore:  v.HomeScore,
		AwayScore:  v.AwayScore,
		Minute:     v.Minute,
	}
}

func quoteToDTO(ctx context.Context, v odds.Quote) quoteDTO {
	ctx, span := startSpan(ctx, "httpapi.quoteToDTO")
	defer span.End()

	return quoteDTO{
		FixtureID: v.FixtureID,
		HomeTeam:  v.HomeTeam,
		AwayTeam:  v.AwayTeam,
		HomeWin:   v.HomeWin,
		Draw:      v.Draw,
		AwayWin:   v.AwayWin,
		Over25:    v.Over25,
		Under25:   v.Under25,
		BTTS:      v.BTTS,
		Bookmaker: v.Bookmaker,
		UpdatedAt: v.UpdatedAt,
	}
}

func teamDetailsToDTO(ctx context.Context, v team.Details) teamDetailsDTO {
	ctx, span := startSpan(ctx, "httpapi.teamDetailsToDTO")
	defer span.End()

	return teamDetailsDTO{
		ID:          v.ID,
		Name:        v.Name,
		ShortName:   v.ShortName,
		Crest:       v.Crest,
		Founded:     v.Founded,
		Venue:       v.Venue,
		Website:     v.Website,
		ClubColors:  v.ClubColors,
		Coach:       v.Coach,
		Description: v.Description,
	}
}
