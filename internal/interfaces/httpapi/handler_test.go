package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/promiedos/dashboard-pro/internal/infrastructure/simulated"
	"github.com/promiedos/dashboard-pro/internal/platform/cache"
	"github.com/promiedos/dashboard-pro/internal/platform/logging"
	"github.com/promiedos/dashboard-pro/internal/usecase"
)

// newTestRouter wires the full stack over the simulated dataset only,
// so handler tests run without any live backend.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	feed := usecase.NewFeedService(cache.NewStore(), nil, simulated.NewProvider(), usecase.FeedConfig{
		CacheEnabled:   true,
		StandingsTTL:   5 * time.Minute,
		FixturesTTL:    10 * time.Minute,
		TeamDetailsTTL: time.Hour,
		Leagues:        []string{"PL"},
	}, logging.NewNop())

	betting := usecase.NewBettingService(usecase.DefaultBettingConfig())
	analysis := usecase.NewAnalysisService(
		feed,
		usecase.NewPredictionService(usecase.DefaultPredictionConfig()),
		usecase.NewGoalsService(),
		betting,
		usecase.NewAlertService(betting, usecase.AlertConfig{}),
	)

	handler := NewHandler(feed, analysis, betting, "PL", logging.NewNop())
	return NewRouter(handler, logging.NewNop(), []string{"*"})
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope struct {
		APIVersion string         `json:"apiVersion"`
		Data       map[string]any `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, "2.0", envelope.APIVersion)
	return envelope.Data
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/healthz", "")

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	require.Equal(t, "ok", data["status"])
}

func TestListLeagues(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/v1/leagues", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	require.Equal(t, "PL", envelope.Data[0]["code"])
	require.Equal(t, "Premier League", envelope.Data[0]["name"])
}

func TestListStandingsFromFallback(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/v1/leagues/PL/standings", "")

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	require.Equal(t, "PL", data["league"])
	require.Equal(t, "simulated", data["source"])

	rows, ok := data["standings"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 20)

	leader, ok := rows[0].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Manchester City", leader["team"])
	require.EqualValues(t, 1, leader["position"])
}

func TestExportStandingsCSVEndpoint(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/v1/leagues/PL/standings/export", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "standings_pl_")

	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	require.Len(t, lines, 21)
	require.True(t, strings.HasPrefix(lines[0], "position,team,"))
}

func TestListFixturesAndOdds(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/leagues/PL/fixtures", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	fixtures, ok := data["fixtures"].([]any)
	require.True(t, ok)
	require.Len(t, fixtures, 10)

	rec = doRequest(t, router, http.MethodGet, "/v1/leagues/PL/odds", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeData(t, rec)
	quotes, ok := data["odds"].([]any)
	require.True(t, ok)
	require.Len(t, quotes, 10)
}

func TestGetTeamDetails(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/leagues/PL/teams/133602", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	require.Equal(t, "Liverpool", data["name"])

	rec = doRequest(t, router, http.MethodGet, "/v1/leagues/PL/teams/unknown", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyzeMatchEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/analysis/match",
		`{"league":"PL","homeTeamId":"133613","awayTeamId":"133618"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData(t, rec)
	require.Equal(t, "PL", data["league"])

	rating, ok := data["ratingPrediction"].(map[string]any)
	require.True(t, ok)
	homeWin, ok := rating["homeWin"].(float64)
	require.True(t, ok)
	awayWin, ok := rating["awayWin"].(float64)
	require.True(t, ok)
	require.Greater(t, homeWin, awayWin)

	valueBets, ok := data["valueBets"].([]any)
	require.True(t, ok)
	require.Len(t, valueBets, 3)
}

func TestAnalyzeMatchValidation(t *testing.T) {
	router := newTestRouter(t)

	// Missing away team.
	rec := doRequest(t, router, http.MethodPost, "/v1/analysis/match",
		`{"league":"PL","homeTeamId":"133613"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Identical teams.
	rec = doRequest(t, router, http.MethodPost, "/v1/analysis/match",
		`{"league":"PL","homeTeamId":"133613","awayTeamId":"133613"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown team id.
	rec = doRequest(t, router, http.MethodPost, "/v1/analysis/match",
		`{"league":"PL","homeTeamId":"nope","awayTeamId":"133618"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestKellyEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/betting/kelly",
		`{"probability":60,"odds":2.0,"fraction":0.5,"bankroll":1000}`)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	require.EqualValues(t, 100, data["recommendedStake"])

	rec = doRequest(t, router, http.MethodPost, "/v1/betting/kelly",
		`{"probability":60,"odds":1.0,"fraction":0.5}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// A fraction outside the configured ladder is rejected.
	rec = doRequest(t, router, http.MethodPost, "/v1/betting/kelly",
		`{"probability":60,"odds":2.0,"fraction":0.3}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// An omitted fraction sizes at the default (full) kelly.
	rec = doRequest(t, router, http.MethodPost, "/v1/betting/kelly",
		`{"probability":60,"odds":2.0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeData(t, rec)
	require.EqualValues(t, 200, data["recommendedStake"])
}

func TestValueBetsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/betting/value-bets",
		`{"prediction":{"homeWin":55,"draw":20,"awayWin":25},"odds":{"homeWin":2.2,"draw":3.4,"awayWin":3.0}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 3)
	require.Equal(t, "Home Win", envelope.Data[0]["type"])
}

func TestParlaysEndpointRejectsSingleLeg(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/betting/parlays",
		`{"selections":[{"match":"A vs B","type":"Home Win","odds":2.0,"probability":50}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSystemSourcesAndCacheClear(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/system/sources", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	sources, ok := data["sources"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, sources)

	rec = doRequest(t, router, http.MethodPost, "/v1/system/cache/clear", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/v1/system/sources", "")
	data = decodeData(t, rec)
	require.EqualValues(t, 0, data["cacheSize"])
}
