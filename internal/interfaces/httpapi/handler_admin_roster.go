package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRoster")
	defer span.End()

	teamID := strings.TrimSpace(r.URL.Query().Get("team_id"))
	items, err := h.rosterService.List(ctx, teamID)
	if err != nil {
		h.logFailure(ctx, "list roster failed", err, "team_id", teamID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(items))
}

func (h *Handler) GetRosterEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRosterEntry")
	defer span.End()

	playerID := pathValue(r, "playerID")
	item, err := h.rosterService.Get(ctx, playerID)
	if err != nil {
		h.logFailure(ctx, "get roster entry failed", err, "player_id", playerID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterEntryToDTO(item))
}

func (h *Handler) CreateRosterEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateRosterEntry")
	defer span.End()

	var req rosterRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.rosterService.Create(ctx, req.toInput())
	if err != nil {
		h.logFailure(ctx, "create roster entry failed", err, "team_id", req.TeamID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, rosterEntryToDTO(item))
}

func (h *Handler) UpdateRosterEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateRosterEntry")
	defer span.End()

	playerID := pathValue(r, "playerID")
	var req rosterRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.rosterService.Update(ctx, playerID, req.toInput())
	if err != nil {
		h.logFailure(ctx, "update roster entry failed", err, "player_id", playerID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterEntryToDTO(item))
}

func (h *Handler) DeleteRosterEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteRosterEntry")
	defer span.End()

	playerID := pathValue(r, "playerID")
	if err := h.rosterService.Delete(ctx, playerID); err != nil {
		h.logFailure(ctx, "delete roster entry failed", err, "player_id", playerID)
		writeError(ctx, w, err)
		return
	}

	writeNoContent(w)
}
