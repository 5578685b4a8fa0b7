package handlers

import (
	"net/http"

	"github.com/go-chi/chi"

	"github.com/bingohall/room-services/internal/bingo"
	"github.com/bingohall/room-services/internal/roomsvc/models"
)

type createGameRequest struct {
	HostName      string `json:"hostName"`
	PlayerLimit   int    `json:"playerLimit"`
	HostCardCount int    `json:"hostCardCount"`
	WinPattern    string `json:"winPattern"`
}

type createGameResponse struct {
	GameID string         `json:"gameId"`
	Game   *models.Game   `json:"game"`
	Player *models.Player `json:"player"`
	Cards  []*models.Card `json:"cards"`
}

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	game, host, cards, err := h.rooms.CreateRoom(r.Context(), req.HostName, req.PlayerLimit,
		req.HostCardCount, bingo.Pattern(req.WinPattern))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeData(w, createGameResponse{GameID: game.ID, Game: game, Player: host, Cards: cards})
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.rooms.Snapshot(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, snapshot)
}

type actorRequest struct {
	PlayerID string `json:"playerId"`
}

func (h *Handler) StartGame(w http.ResponseWriter, r *http.Request) {
	var req actorRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	gameID := chi.URLParam(r, "gameID")
	if err := h.rooms.Start(r.Context(), gameID, req.PlayerID, h.isDeveloper(r)); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, map[string]string{"status": string(bingo.StatusPlaying)})
}

func (h *Handler) PauseGame(w http.ResponseWriter, r *http.Request) {
	var req actorRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	gameID := chi.URLParam(r, "gameID")
	if err := h.rooms.Pause(r.Context(), gameID, req.PlayerID, h.isDeveloper(r)); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, map[string]string{"status": string(bingo.StatusPaused)})
}

func (h *Handler) ResumeGame(w http.ResponseWriter, r *http.Request) {
	var req actorRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	gameID := chi.URLParam(r, "gameID")
	if err := h.rooms.Resume(r.Context(), gameID, req.PlayerID, h.isDeveloper(r)); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, map[string]string{"status": string(bingo.StatusPlaying)})
}

func (h *Handler) ResetGame(w http.ResponseWriter, r *http.Request) {
	var req actorRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	gameID := chi.URLParam(r, "gameID")
	if err := h.rooms.Reset(r.Context(), gameID, req.PlayerID); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, map[string]interface{}{
		"status":        string(bingo.StatusWaiting),
		"calledNumbers": []int{},
		"message":       "Game reset",
	})
}

type callRequest struct {
	PlayerID string `json:"playerId"`
	Number   int    `json:"number"` // optional override, 0 = draw at random
}

func (h *Handler) CallNumber(w http.ResponseWriter, r *http.Request) {
	var req callRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	gameID := chi.URLParam(r, "gameID")
	result, err := h.rooms.CallNumber(r.Context(), gameID, req.PlayerID, h.isDeveloper(r), req.Number)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, result)
}

type claimRequest struct {
	PlayerID string `json:"playerId"`
	CardID   string `json:"cardId"`
}

func (h *Handler) ClaimBingo(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	gameID := chi.URLParam(r, "gameID")
	result, err := h.rooms.Claim(r.Context(), gameID, req.PlayerID, req.CardID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, result)
}

type patternRequest struct {
	PlayerID   string `json:"playerId"`
	WinPattern string `json:"winPattern"`
}

func (h *Handler) UpdatePattern(w http.ResponseWriter, r *http.Request) {
	var req patternRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	gameID := chi.URLParam(r, "gameID")
	if err := h.rooms.UpdateWinPattern(r.Context(), gameID, req.PlayerID, bingo.Pattern(req.WinPattern)); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, map[string]string{"winPattern": req.WinPattern})
}

type messageRequest struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	gameID := chi.URLParam(r, "gameID")
	msg, err := h.rooms.PostMessage(r.Context(), gameID, req.Sender, req.Text)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeData(w, msg)
}
