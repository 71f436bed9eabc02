// Package sportsdb is the secondary data source client, backed by the
// free TheSportsDB JSON API.
package sportsdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
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
	defaultBaseURL = "https://www.thesportsdb.com/api/v1/json"

	// freeAPIKey is TheSportsDB's public development key.
	freeAPIKey = "3"

	// SourceName identifies this provider in source-status reports.
	SourceName = "thesportsdb"
)

// leagueIDs maps the dashboard's league codes to TheSportsDB league IDs.
var leagueIDs = map[string]string{
	"PL":  "4328",
	"PD":  "4335",
	"BL1": "4331",
	"SA":  "4332",
	"FL1": "4334",
	"CL":  "4480",
}

var errSportsDBTransient = crerr.New("thesportsdb transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
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
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		apiKey = freeAPIKey
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         apiKey,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// BreakerState exposes the circuit state for source-status reporting.
func (c *Client) BreakerState() resilience.CircuitState {
	return c.breaker.State()
}

// Standings fetches the league table.
func (c *Client) Standings(ctx context.Context, leagueCode string) ([]standings.TeamRecord, error) {
	query := map[string]string{"l": resolveLeague(leagueCode)}

	var envelope tableEnvelope
	if err := c.doJSON(ctx, "/lookuptable.php", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch table league=%s: %w", leagueCode, err)
	}
	if len(envelope.Table) == 0 {
		return nil, fmt.Errorf("%w: no table for league %s", usecase.ErrNotFound, leagueCode)
	}

	out := make([]standings.TeamRecord, 0, len(envelope.Table))
	for _, row := range envelope.Table {
		points := atoiLoose(row.Points)
		played := atoiLoose(row.Played)
		out = append(out, standings.TeamRecord{
			Position:       atoiLoose(row.Rank),
			Name:           row.Team,
			TeamID:         row.TeamID,
			Played:         played,
			Won:            atoiLoose(row.Win),
			Draw:           atoiLoose(row.Draw),
			Lost:           atoiLoose(row.Loss),
			GoalsFor:       atoiLoose(row.GoalsFor),
			GoalsAgainst:   atoiLoose(row.GoalsAgainst),
			GoalDifference: atoiLoose(row.GoalDifference),
			Points:         points,
			Form:           strings.TrimSpace(row.Form),
			PointsAvg:      standings.FormatPointsAvg(points, played),
		})
	}
	return out, nil
}

// UpcomingFixtures fetches the next scheduled events for a league.
func (c *Client) UpcomingFixtures(ctx context.Context, leagueCode string) ([]fixture.Fixture, error) {
	query := map[string]string{"id": resolveLeague(leagueCode)}

	var envelope eventsEnvelope
	if err := c.doJSON(ctx, "/eventsnextleague.php", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch events league=%s: %w", leagueCode, err)
	}

	out := make([]fixture.Fixture, 0, len(envelope.Events))
	for _, ev := range envelope.Events {
		out = append(out, mapEvent(ev))
	}
	return out, nil
}

// LiveScores fetches in-play events for a league.
func (c *Client) LiveScores(ctx context.Context, leagueCode string) ([]fixture.LiveScore, error) {
	query := map[string]string{"l": resolveLeague(leagueCode)}

	var envelope eventsEnvelope
	if err := c.doJSON(ctx, "/livescore.php", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch live scores league=%s: %w", leagueCode, err)
	}

	out := make([]fixture.LiveScore, 0, len(envelope.Events))
	for _, ev := range envelope.Events {
		out = append(out, fixture.LiveScore{
			Fixture:   mapEvent(ev),
			HomeScore: atoiLoose(ev.HomeScore),
			AwayScore: atoiLoose(ev.AwayScore),
			Minute:    strings.TrimSpace(ev.Progress),
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

	var envelope teamsEnvelope
	if err := c.doJSON(ctx, "/lookupteam.php", map[string]string{"id": id}, &envelope); err != nil {
		return team.Details{}, fmt.Errorf("fetch team id=%s: %w", id, err)
	}
	if len(envelope.Teams) == 0 {
		return team.Details{}, fmt.Errorf("%w: team %s", usecase.ErrNotFound, id)
	}

	t := envelope.Teams[0]
	return team.Details{
		ID:          t.ID,
		Name:        t.Name,
		ShortName:   t.ShortName,
		Crest:       t.Badge,
		Founded:     atoiLoose(t.Formed),
		Venue:       t.Stadium,
		Website:     t.Website,
		Description: t.Description,
	}, nil
}

func resolveLeague(leagueCode string) string {
	code := strings.ToUpper(strings.TrimSpace(leagueCode))
	if id, ok := leagueIDs[code]; ok {
		return id
	}
	return code
}

func mapEvent(ev eventItem) fixture.Fixture {
	status := strings.TrimSpace(ev.Status)
	if status == "" {
		status = fixture.StatusScheduled
	} else {
		status = fixture.TranslateStatus(status)
	}
	return fixture.Fixture{
		ID:         ev.ID,
		HomeTeam:   ev.HomeTeam,
		AwayTeam:   ev.AwayTeam,
		HomeTeamID: ev.HomeTeamID,
		AwayTeamID: ev.AwayTeamID,
		Date:       ev.Date,
		Time:       normalizeClock(ev.Time),
		Status:     status,
		League:     ev.League,
		Venue:      ev.Venue,
	}
}

// normalizeClock trims seconds from "15:00:00" style values.
func normalizeClock(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 5 && strings.Count(raw, ":") == 2 {
		return raw[:5]
	}
	return raw
}

// atoiLoose parses provider numerics, treating blanks and malformed
// values as zero.
func atoiLoose(raw string) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return v
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "thesportsdb circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: thesportsdb is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + "/" + c.apiKey + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errSportsDBTransient) {
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

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errSportsDBTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errSportsDBTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else {
				if isRetryableStatus(resp.StatusCode) {
					lastErr = fmt.Errorf("%w: provider status=%d body=%s", errSportsDBTransient, resp.StatusCode, abbreviateBody(raw))
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
	c.logger.WarnContext(ctx, "thesportsdb request failed", "url", fullURL, "error", lastErr)
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
