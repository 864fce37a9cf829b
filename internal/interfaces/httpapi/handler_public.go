package httpapi

import (
	"net/http"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.teamService.List(ctx)
	if err != nil {
		h.logFailure(ctx, "list teams failed", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamsToDTO(teams))
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID := pathValue(r, "teamID")
	item, err := h.teamService.Get(ctx, teamID)
	if err != nil {
		h.logFailure(ctx, "get team failed", err, "team_id", teamID)
		writeError(ctx, w, err)
		return
	}

	players, err := h.rosterService.List(ctx, item.ID)
	if err != nil {
		h.logFailure(ctx, "list team roster failed", err, "team_id", teamID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamDetailDTO{
		Team:    teamToDTO(item),
		Players: rosterToDTO(players),
	})
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSchedule")
	defer span.End()

	weeks, err := h.publicService.Schedule(ctx)
	if err != nil {
		h.logFailure(ctx, "get schedule failed", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]scheduleWeekDTO, 0, len(weeks))
	for _, wk := range weeks {
		items = append(items, scheduleWeekDTO{Week: wk.Week, Games: gameSummariesToDTO(wk.Games)})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListRecentScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRecentScores")
	defer span.End()

	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	board, err := h.publicService.RecentScores(ctx, limit)
	if err != nil {
		h.logFailure(ctx, "list recent scores failed", err, "limit", limit)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoreBoardToDTO(board))
}

func (h *Handler) ListUpcomingGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUpcomingGames")
	defer span.End()

	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.publicService.Upcoming(ctx, limit)
	if err != nil {
		h.logFailure(ctx, "list upcoming games failed", err, "limit", limit)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameSummariesToDTO(items))
}

func (h *Handler) GetPublicGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPublicGame")
	defer span.End()

	gameID := pathValue(r, "gameID")
	item, err := h.publicService.GetGame(ctx, gameID)
	if err != nil {
		h.logFailure(ctx, "get game failed", err, "game_id", gameID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameSummaryToDTO(item))
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	table, err := h.standingsService.Table(ctx)
	if err != nil {
		h.logFailure(ctx, "get standings failed", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(table))
}

func (h *Handler) GetLeaders(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaders")
	defer span.End()

	leaders, err := h.publicService.Leaders(ctx)
	if err != nil {
		h.logFailure(ctx, "get leaders failed", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leadersDTO{
		TopScorers:         rosterToDTO(leaders.TopScorers),
		CardLeaders:        rosterToDTO(leaders.CardLeaders),
		FeatureUnavailable: leaders.FeatureUnavailable,
	})
}

func (h *Handler) GetPublicBracket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPublicBracket")
	defer span.End()

	bracket, err := h.bracketService.Get(ctx, true)
	if err != nil {
		h.logFailure(ctx, "get bracket failed", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bracketToDTO(bracket))
}

func (h *Handler) GetHome(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHome")
	defer span.End()

	home, err := h.publicService.Home(ctx)
	if err != nil {
		h.logFailure(ctx, "get home failed", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, homeDTO{
		Recent:    scoreBoardToDTO(home.Recent),
		Upcoming:  gameSummariesToDTO(home.Upcoming),
		Standings: standingsToDTO(home.Standings),
	})
}
