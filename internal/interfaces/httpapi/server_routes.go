package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /v1/system/sources", handler.ListSources)
	mux.HandleFunc("POST /v1/system/cache/clear", handler.ClearCache)
}

func registerFeedRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{league}/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/leagues/{league}/standings/export", handler.ExportStandings)
	mux.HandleFunc("GET /v1/leagues/{league}/fixtures", handler.ListFixtures)
	mux.HandleFunc("GET /v1/leagues/{league}/live", handler.ListLiveScores)
	mux.HandleFunc("GET /v1/leagues/{league}/odds", handler.ListOdds)
	mux.HandleFunc("GET /v1/leagues/{league}/teams/{teamID}", handler.GetTeamDetails)
}

func registerAnalysisRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/analysis/match", handler.AnalyzeMatch)
}

func registerBettingRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/betting/value-bets", handler.ValueBets)
	mux.HandleFunc("POST /v1/betting/kelly", handler.KellyStake)
	mux.HandleFunc("POST /v1/betting/parlays", handler.Parlays)
	mux.HandleFunc("POST /v1/betting/performance", handler.Performance)
}
