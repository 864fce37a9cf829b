package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics *Metrics, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.Handle("GET /metrics", metrics.Handler())
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/home", handler.GetHome)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/schedule", handler.GetSchedule)
	mux.HandleFunc("GET /v1/scores", handler.ListRecentScores)
	mux.HandleFunc("GET /v1/games/upcoming", handler.ListUpcomingGames)
	mux.HandleFunc("GET /v1/games/{gameID}", handler.GetPublicGame)
	mux.HandleFunc("GET /v1/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/leaders", handler.GetLeaders)
	mux.HandleFunc("GET /v1/playoffs/bracket", handler.GetPublicBracket)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAdminLeagueRoutes(mux, handler, verifier)
	registerAdminTeamRoutes(mux, handler, verifier)
	registerAdminGameRoutes(mux, handler, verifier)
	registerAdminRosterRoutes(mux, handler, verifier)
	registerAdminEventRoutes(mux, handler, verifier)
}

func registerAdminLeagueRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/admin/dashboard", RequireAuth(verifier, http.HandlerFunc(handler.GetAdminDashboard)))
	mux.Handle("POST /v1/admin/standings/recompute", RequireAuth(verifier, http.HandlerFunc(handler.RecomputeStandings)))
	mux.Handle("GET /v1/admin/playoffs/bracket", RequireAuth(verifier, http.HandlerFunc(handler.GetAdminBracket)))
}

func registerAdminTeamRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/admin/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("PUT /v1/admin/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateTeam)))
	mux.Handle("DELETE /v1/admin/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteTeam)))
}

func registerAdminGameRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/admin/games", RequireAuth(verifier, http.HandlerFunc(handler.ListAdminGames)))
	mux.Handle("GET /v1/admin/games/next-label", RequireAuth(verifier, http.HandlerFunc(handler.GetNextMatchLabel)))
	mux.Handle("GET /v1/admin/games/{gameID}", RequireAuth(verifier, http.HandlerFunc(handler.GetAdminGame)))
	mux.Handle("POST /v1/admin/games", RequireAuth(verifier, http.HandlerFunc(handler.CreateGame)))
	mux.Handle("PUT /v1/admin/games/{gameID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateGame)))
	mux.Handle("PUT /v1/admin/games/{gameID}/result", RequireAuth(verifier, http.HandlerFunc(handler.SetGameResult)))
	mux.Handle("DELETE /v1/admin/games/{gameID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteGame)))
}

func registerAdminRosterRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/admin/roster", RequireAuth(verifier, http.HandlerFunc(handler.ListRoster)))
	mux.Handle("GET /v1/admin/roster/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.GetRosterEntry)))
	mux.Handle("POST /v1/admin/roster", RequireAuth(verifier, http.HandlerFunc(handler.CreateRosterEntry)))
	mux.Handle("PUT /v1/admin/roster/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateRosterEntry)))
	mux.Handle("DELETE /v1/admin/roster/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteRosterEntry)))
}

func registerAdminEventRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/admin/games/{gameID}/events", RequireAuth(verifier, http.HandlerFunc(handler.ListGameEvents)))
	mux.Handle("POST /v1/admin/games/{gameID}/events", RequireAuth(verifier, http.HandlerFunc(handler.RecordGameEvent)))
	mux.Handle("PUT /v1/admin/games/{gameID}/events", RequireAuth(verifier, http.HandlerFunc(handler.ReplaceGameEvents)))
	mux.Handle("DELETE /v1/admin/games/{gameID}/events/{eventID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteGameEvent)))
}
