package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/community-league/internal/domain/game"
	"github.com/riskibarqy/community-league/internal/domain/user"
	"github.com/riskibarqy/community-league/internal/usecase"
)

func (h *Handler) GetAdminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAdminDashboard")
	defer span.End()

	dashboard, err := h.dashboardService.Load(ctx)
	if err != nil {
		h.logFailure(ctx, "load admin dashboard failed", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, adminDashboardDTO{
		Teams:             teamsToDTO(dashboard.Teams),
		Games:             gamesToDTO(dashboard.Games),
		Roster:            rosterToDTO(dashboard.Roster),
		Standings:         standingsToDTO(dashboard.Standings),
		EventsUnavailable: dashboard.EventsUnavailable,
		StatsWriteFailed:  dashboard.StatsWriteFailed,
	})
}

func (h *Handler) RecomputeStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputeStandings")
	defer span.End()

	teams, counters, err := h.dashboardService.RecomputeAll(ctx)
	if err != nil {
		h.logFailure(ctx, "recompute derived fields failed", err)
		writeError(ctx, w, err)
		return
	}
	if principal, ok := user.FromContext(ctx); ok {
		h.logger.InfoContext(ctx, "derived fields recomputed",
			"user_id", principal.UserID,
			"teams_updated", teams.Updated,
			"roster_updated", counters.Updated,
		)
	}

	writeSuccess(ctx, w, http.StatusOK, recomputeDTO{
		Teams:              writeBackDTO{Updated: teams.Updated, Unchanged: teams.Unchanged, Failed: teams.Failed},
		Roster:             writeBackDTO{Updated: counters.Updated, Unchanged: counters.Unchanged, Failed: counters.Failed},
		FeatureUnavailable: counters.FeatureUnavailable,
	})
}

func (h *Handler) GetAdminBracket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAdminBracket")
	defer span.End()

	bracket, err := h.bracketService.Get(ctx, false)
	if err != nil {
		h.logFailure(ctx, "get admin bracket failed", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bracketToDTO(bracket))
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	var req teamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Create(ctx, req.toInput())
	if err != nil {
		h.logFailure(ctx, "create team failed", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(item))
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeam")
	defer span.End()

	teamID := pathValue(r, "teamID")
	var req teamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Update(ctx, teamID, req.toInput())
	if err != nil {
		h.logFailure(ctx, "update team failed", err, "team_id", teamID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	teamID := pathValue(r, "teamID")
	if err := h.teamService.Delete(ctx, teamID); err != nil {
		h.logFailure(ctx, "delete team failed", err, "team_id", teamID)
		writeError(ctx, w, err)
		return
	}

	writeNoContent(w)
}

// ListAdminGames includes unpublished playoff games. Filters: week, status
// (comma separated), playoff, team_id.
func (h *Handler) ListAdminGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAdminGames")
	defer span.End()

	filter, err := parseGameFilter(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.gameService.List(ctx, filter)
	if err != nil {
		h.logFailure(ctx, "list games failed", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gamesToDTO(items))
}

func (h *Handler) GetAdminGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAdminGame")
	defer span.End()

	gameID := pathValue(r, "gameID")
	item, err := h.gameService.Get(ctx, gameID)
	if err != nil {
		h.logFailure(ctx, "get game failed", err, "game_id", gameID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(item))
}

func (h *Handler) GetNextMatchLabel(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetNextMatchLabel")
	defer span.End()

	week, err := queryInt(r, "week")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	label, err := h.gameService.NextLabel(ctx, week)
	if err != nil {
		h.logFailure(ctx, "next match label failed", err, "week", week)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, nextLabelDTO{Week: week, MatchLabel: label})
}

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateGame")
	defer span.End()

	var req gameRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.gameService.Create(ctx, input)
	if err != nil {
		h.logFailure(ctx, "create game failed", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, gameToDTO(item))
}

func (h *Handler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateGame")
	defer span.End()

	gameID := pathValue(r, "gameID")
	var req gameRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.gameService.Update(ctx, gameID, input)
	if err != nil {
		h.logFailure(ctx, "update game failed", err, "game_id", gameID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(item))
}

func (h *Handler) SetGameResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetGameResult")
	defer span.End()

	gameID := pathValue(r, "gameID")
	var req gameResultRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.gameService.SetResult(ctx, gameID, req.toInput())
	if err != nil {
		h.logFailure(ctx, "set game result failed", err, "game_id", gameID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(item))
}

func (h *Handler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteGame")
	defer span.End()

	gameID := pathValue(r, "gameID")
	if err := h.gameService.Delete(ctx, gameID); err != nil {
		h.logFailure(ctx, "delete game failed", err, "game_id", gameID)
		writeError(ctx, w, err)
		return
	}

	writeNoContent(w)
}

func parseGameFilter(r *http.Request) (game.Filter, error) {
	week, err := queryInt(r, "week")
	if err != nil {
		return game.Filter{}, err
	}
	playoff, err := queryBool(r, "playoff")
	if err != nil {
		return game.Filter{}, err
	}

	filter := game.Filter{
		Week:        week,
		PlayoffOnly: playoff,
		TeamID:      strings.TrimSpace(r.URL.Query().Get("team_id")),
	}
	for _, raw := range strings.Split(r.URL.Query().Get("status"), ",") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		status, err := game.ParseStatus(raw)
		if err != nil {
			return game.Filter{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	return filter, nil
}
