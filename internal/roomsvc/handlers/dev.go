package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/bingohall/room-services/internal/roomsvc/service"
)

// Developer side-channel: staged previews and per-player queues. Nothing
// here touches the authoritative called-number history; only the commit in
// CallFromQueue does, and it goes through the same call path as the host.

func (h *Handler) requireDeveloper(w http.ResponseWriter, r *http.Request) bool {
	if !h.isDeveloper(r) {
		h.writeError(w, fmt.Errorf("%w: developer role required", service.ErrForbidden))
		return false
	}
	return true
}

type stageRequest struct {
	PlayerID string `json:"playerId"`
	Number   int    `json:"number"`
}

func (h *Handler) StageNumber(w http.ResponseWriter, r *http.Request) {
	if !h.requireDeveloper(w, r) {
		return
	}
	var req stageRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	gameID := chi.URLParam(r, "gameID")
	if err := h.rooms.StageNumber(r.Context(), gameID, req.PlayerID, true, req.Number); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, map[string]int{"stagedNumber": req.Number})
}

func (h *Handler) GetQueue(w http.ResponseWriter, r *http.Request) {
	if !h.requireDeveloper(w, r) {
		return
	}
	gameID := chi.URLParam(r, "gameID")
	playerID := r.URL.Query().Get("playerId")
	if playerID == "" {
		h.writeError(w, fmt.Errorf("%w: playerId is required", service.ErrInvalidInput))
		return
	}
	queue, err := h.queues.Get(r.Context(), gameID, playerID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, queue)
}

func (h *Handler) PushQueue(w http.ResponseWriter, r *http.Request) {
	if !h.requireDeveloper(w, r) {
		return
	}
	var req stageRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if req.Number < 1 || req.Number > 75 {
		h.writeError(w, fmt.Errorf("%w: number %d out of range", service.ErrInvalidInput, req.Number))
		return
	}
	gameID := chi.URLParam(r, "gameID")
	if err := h.queues.Push(r.Context(), gameID, req.PlayerID, req.Number); err != nil {
		h.writeError(w, err)
		return
	}
	queue, err := h.queues.Get(r.Context(), gameID, req.PlayerID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, queue)
}

// CallFromQueue pops the head of the developer's queue and commits it as a
// regular call.
func (h *Handler) CallFromQueue(w http.ResponseWriter, r *http.Request) {
	if !h.requireDeveloper(w, r) {
		return
	}
	var req actorRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	gameID := chi.URLParam(r, "gameID")

	number, ok, err := h.queues.Pop(r.Context(), gameID, req.PlayerID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !ok {
		h.writeError(w, fmt.Errorf("%w: queue is empty, stage a number first", service.ErrConflict))
		return
	}

	result, err := h.rooms.CallNumber(r.Context(), gameID, req.PlayerID, true, number)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, result)
}

func (h *Handler) ClearQueue(w http.ResponseWriter, r *http.Request) {
	if !h.requireDeveloper(w, r) {
		return
	}
	gameID := chi.URLParam(r, "gameID")
	playerID := r.URL.Query().Get("playerId")
	if playerID == "" {
		h.writeError(w, fmt.Errorf("%w: playerId is required", service.ErrInvalidInput))
		return
	}
	if err := h.queues.Clear(r.Context(), gameID, playerID); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, map[string]string{"message": "queue cleared"})
}
