package handlers

import (
	"net/http"

	"github.com/go-chi/chi"

	"github.com/bingohall/room-services/internal/roomsvc/models"
)

type joinRequest struct {
	PlayerName string `json:"playerName"`
	CardCount  int    `json:"cardCount"`
}

type joinResponse struct {
	Player *models.Player `json:"player"`
	Cards  []*models.Card `json:"cards"`
}

func (h *Handler) JoinGame(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	gameID := chi.URLParam(r, "gameID")
	player, cards, err := h.rooms.JoinAsNewPlayer(r.Context(), gameID, req.PlayerName, req.CardCount)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, joinResponse{Player: player, Cards: cards})
}

type reconnectRequest struct {
	PlayerID string `json:"playerId"`
}

func (h *Handler) ReconnectPlayer(w http.ResponseWriter, r *http.Request) {
	var req reconnectRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	gameID := chi.URLParam(r, "gameID")
	player, cards, err := h.rooms.ReconnectAsPlayer(r.Context(), gameID, req.PlayerID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, joinResponse{Player: player, Cards: cards})
}

func (h *Handler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	var req actorRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	gameID := chi.URLParam(r, "gameID")
	playerID := chi.URLParam(r, "playerID")
	if err := h.rooms.RemovePlayer(r.Context(), gameID, playerID, req.PlayerID); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, map[string]string{"message": "Player removed"})
}

type markRequest struct {
	CardID string `json:"cardId"`
	Marked []int  `json:"marked"`
}

func (h *Handler) MarkCard(w http.ResponseWriter, r *http.Request) {
	var req markRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	gameID := chi.URLParam(r, "gameID")
	if err := h.rooms.MarkCard(r.Context(), gameID, req.CardID, req.Marked); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, map[string][]int{"marked": req.Marked})
}
