package httpapi

import (
	"net/http"

	"github.com/riskibarqy/community-league/internal/usecase"
)

func (h *Handler) ListGameEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGameEvents")
	defer span.End()

	gameID := pathValue(r, "gameID")
	events, err := h.eventService.List(ctx, gameID)
	if err != nil {
		h.logFailure(ctx, "list game events failed", err, "game_id", gameID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameEventsDTO{
		GameID:             events.GameID,
		Items:              gameEventsToDTO(events.Items),
		FeatureUnavailable: events.FeatureUnavailable,
	})
}

func (h *Handler) RecordGameEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordGameEvent")
	defer span.End()

	gameID := pathValue(r, "gameID")
	var req gameEventRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	event, err := h.eventService.Record(ctx, gameID, req.toInput())
	if err != nil {
		h.logFailure(ctx, "record game event failed", err, "game_id", gameID, "player_id", req.PlayerID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, gameEventToDTO(event))
}

func (h *Handler) ReplaceGameEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReplaceGameEvents")
	defer span.End()

	gameID := pathValue(r, "gameID")
	var req replaceGameEventsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	inputs := make([]usecase.GameEventInput, 0, len(req.Items))
	for _, item := range req.Items {
		inputs = append(inputs, item.toInput())
	}

	events, err := h.eventService.Replace(ctx, gameID, inputs)
	if err != nil {
		h.logFailure(ctx, "replace game events failed", err, "game_id", gameID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameEventsDTO{
		GameID: gameID,
		Items:  gameEventsToDTO(events),
	})
}

func (h *Handler) DeleteGameEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteGameEvent")
	defer span.End()

	gameID := pathValue(r, "gameID")
	eventID := pathValue(r, "eventID")
	if err := h.eventService.Delete(ctx, gameID, eventID); err != nil {
		h.logFailure(ctx, "delete game event failed", err, "game_id", gameID, "event_id", eventID)
		writeError(ctx, w, err)
		return
	}

	writeNoContent(w)
}
