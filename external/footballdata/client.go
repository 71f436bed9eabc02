// Package footballdata is the primary data source client, backed by the
// football-data.org v4 API.
package footballdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/promiedos/dashboard-pro/internal/domain/fixture"
	"github.com/promiedos/dashboard-pro/internal/domain/standings"
	"github.com/promiedos/dashboard-pro/internal/domain/team"
	"github.com/promiedos/dashboard-pro/internal/platform/logging"
	"github.com/promiedos/dashboard-pro/internal/platform/resilience"
	"github.com/promiedos/dashboard-pro/internal/usecase"
)

const (
	defaultBaseURL = "https://api.football-data.org/v4"

	// SourceName identifies this provider in source-status reports.
	SourceName = "football-data.org"
)

// competitionIDs maps league codes to football-data.org competition IDs.
var competitionIDs = map[string]int{
	"PL":  2021,
	"PD":  2014,
	"BL1": 2002,
	"SA":  2019,
	"FL1": 2015,
	"CL":  2001,
	"WC":  2000,
	"EC":  2018,
}

var authTokenHeaderRegex = regexp.MustCompile(`(?i)x-auth-token:\s*\S+`)
var errFootballDataTransient = crerr.New("football-data transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	now            func() time.Time
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		now:            time.Now,
	}
}

// BreakerState exposes the circuit state for source-status reporting.
func (c *Client) BreakerState() resilience.CircuitState {
	return c.breaker.State()
}

// Standings fetches the overall league table for a league code.
func (c *Client) Standings(ctx context.Context, leagueCode string) ([]standings.TeamRecord, error) {
	path := fmt.Sprintf("/competitions/%s/standings", resolveCompetition(leagueCode))

	var envelope standingsEnvelope
	if err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch standings league=%s: %w", leagueCode, err)
	}

	table := pickOverallTable(envelope.Standings)
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: no standings table for league %s", usecase.ErrNotFound, leagueCode)
	}

	out := make([]standings.TeamRecord, 0, len(table))
	for _, row := range table {
		rec := standings.TeamRecord{
			Position:       row.Position,
			Name:           row.Team.Name,
			TeamID:         strconv.FormatInt(row.Team.ID, 10),
			Played:         row.PlayedGames,
			Won:            row.Won,
			Draw:           row.Draw,
			Lost:           row.Lost,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
			Points:         row.Points,
			Form:           normalizeForm(row),
			PointsAvg:      standings.FormatPointsAvg(row.Points, row.PlayedGames),
		}
		out = append(out, rec)
	}
	return out, nil
}

// UpcomingFixtures fetches scheduled matches for the next `days` days.
func (c *Client) UpcomingFixtures(ctx context.Context, leagueCode string, days int) ([]fixture.Fixture, error) {
	if days <= 0 {
		days = 30
	}
	now := c.now().UTC()
	query := map[string]string{
		"status":   "SCHEDULED",
		"dateFrom": now.Format("2006-01-02"),
		"dateTo":   now.AddDate(0, 0, days).Format("2006-01-02"),
	}
	path := fmt.Sprintf("/competitions/%s/matches", resolveCompetition(leagueCode))

	var envelope matchesEnvelope
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch fixtures league=%s: %w", leagueCode, err)
	}

	out := make([]fixture.Fixture, 0, len(envelope.Matches))
	for _, m := range envelope.Matches {
		out = append(out, mapFixture(m))
	}
	return out, nil
}

// LiveScores fetches matches currently in play for a league.
func (c *Client) LiveScores(ctx context.Context, leagueCode string) ([]fixture.LiveScore, error) {
	query := map[string]string{"status": "LIVE,IN_PLAY,PAUSED"}
	path := fmt.Sprintf("/competitions/%s/matches", resolveCompetition(leagueCode))

	var envelope matchesEnvelope
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch live scores league=%s: %w", leagueCode, err)
	}

	out := make([]fixture.LiveScore, 0, len(envelope.Matches))
	for _, m := range envelope.Matches {
		out = append(out, fixture.LiveScore{
			Fixture:   mapFixture(m),
			HomeScore: scoreValue(m.Score.FullTime.Home),
			AwayScore: scoreValue(m.Score.FullTime.Away),
			Minute:    c.matchMinute(m),
		})
	}
	return out, nil
}

// TeamDetails fetches the profile for one team.
func (c *Client) TeamDetails(ctx context.Context, teamID string) (team.Details, error) {
	id := strings.TrimSpace(teamID)
	if id == "" {
		return team.Details{}, fmt.Errorf("%w: team id is required", usecase.ErrInvalidInput)
	}

	var envelope teamEnvelope
	if err := c.doJSON(ctx, "/teams/"+url.PathEscape(id), nil, &envelope); err != nil {
		return team.Details{}, fmt.Errorf("fetch team id=%s: %w", id, err)
	}

	return team.Details{
		ID:         strconv.FormatInt(envelope.ID, 10),
		Name:       envelope.Name,
		ShortName:  envelope.ShortName,
		Crest:      envelope.Crest,
		Founded:    envelope.Founded,
		Venue:      envelope.Venue,
		Website:    envelope.Website,
		ClubColors: envelope.ClubColors,
		Coach:      envelope.Coach.Name,
	}, nil
}

func resolveCompetition(leagueCode string) string {
	code := strings.ToUpper(strings.TrimSpace(leagueCode))
	if id, ok := competitionIDs[code]; ok {
		return strconv.Itoa(id)
	}
	return code
}

func pickOverallTable(groups []standingsGroup) []standingsRow {
	for _, g := range groups {
		if strings.EqualFold(g.Type, "TOTAL") {
			return g.Table
		}
	}
	if len(groups) > 0 {
		return groups[0].Table
	}
	return nil
}

// normalizeForm keeps provider form when present (stripping the comma
// separators some responses use), otherwise synthesizes a stable
// five-match estimate from the row's win and draw counts.
func normalizeForm(row standingsRow) string {
	form := strings.ReplaceAll(strings.TrimSpace(row.Form), ",", "")
	if form != "" {
		return form
	}
	if row.PlayedGames <= 0 {
		return ""
	}

	wins := (row.Won*5 + row.PlayedGames/2) / row.PlayedGames
	draws := (row.Draw*5 + row.PlayedGames/2) / row.PlayedGames
	if wins > 5 {
		wins = 5
	}
	if wins+draws > 5 {
		draws = 5 - wins
	}
	return strings.Repeat("W", wins) + strings.Repeat("D", draws) + strings.Repeat("L", 5-wins-draws)
}

func mapFixture(m matchItem) fixture.Fixture {
	date, clock := splitUTCDate(m.UTCDate)
	venue := strings.TrimSpace(m.Venue)
	if venue == "" {
		venue = "TBD"
	}
	return fixture.Fixture{
		ID:         strconv.FormatInt(m.ID, 10),
		HomeTeam:   m.HomeTeam.Name,
		AwayTeam:   m.AwayTeam.Name,
		HomeTeamID: strconv.FormatInt(m.HomeTeam.ID, 10),
		AwayTeamID: strconv.FormatInt(m.AwayTeam.ID, 10),
		Date:       date,
		Time:       clock,
		Status:     fixture.TranslateStatus(m.Status),
		League:     m.Competition.Name,
		Venue:      venue,
	}
}

func splitUTCDate(raw string) (string, string) {
	parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return "", ""
	}
	utc := parsed.UTC()
	return utc.Format("2006-01-02"), utc.Format("15:04")
}

func scoreValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func (c *Client) matchMinute(m matchItem) string {
	if m.Status == "PAUSED" {
		return "HT"
	}
	kickoff, err := time.Parse(time.RFC3339, strings.TrimSpace(m.UTCDate))
	if err != nil {
		return ""
	}
	elapsed := int(c.now().Sub(kickoff).Minutes())
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > 90 {
		elapsed = 90
	}
	return fmt.Sprintf("%d'", elapsed)
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "football-data circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: football-data.org is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errFootballDataTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.token != "" {
			req.Header.Set("X-Auth-Token", c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errFootballDataTransient, sanitizeSensitiveText(err.Error(), c.token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errFootballDataTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else {
				if isRetryableStatus(resp.StatusCode) {
					lastErr = fmt.Errorf("%w: provider status=%d body=%s", errFootballDataTransient, resp.StatusCode, abbreviateBody(raw))
				} else {
					return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
				}
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "football-data request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	body := strings.TrimSpace(string(raw))
	if len(body) > 256 {
		body = body[:256] + "..."
	}
	return body
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	return authTokenHeaderRegex.ReplaceAllString(value, "X-Auth-Token: REDACTED")
}
