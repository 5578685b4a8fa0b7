package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"

	"github.com/bingohall/room-services/internal/roomsvc/devqueue"
	"github.com/bingohall/room-services/internal/roomsvc/service"
)

type Handler struct {
	tokenAuth *jwtauth.JWTAuth
	rooms     *service.RoomService
	queues    *devqueue.Store
}

func NewHandler(rooms *service.RoomService, queues *devqueue.Store) *Handler {
	return &Handler{rooms: rooms, queues: queues}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

// writeError maps service error kinds to fixed status codes. Only the kind
// name travels to the client; store internals stay in the log.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var code int
	var kind string

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		code, kind = http.StatusBadRequest, "invalid input"
	case errors.Is(err, service.ErrForbidden):
		code, kind = http.StatusForbidden, "forbidden"
	case errors.Is(err, service.ErrNotFound):
		code, kind = http.StatusNotFound, "not found"
	case errors.Is(err, service.ErrConflict):
		code, kind = http.StatusConflict, "conflict"
	default:
		log.Errorf("internal error: %v", err)
		code, kind = http.StatusInternalServerError, "internal error"
	}

	if code != http.StatusInternalServerError {
		kind = err.Error()
	}
	h.CreateResponse(w, Response{Code: code, Error: kind})
}

func (h *Handler) writeData(w http.ResponseWriter, data interface{}) {
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: data, Message: "ok"})
}

// isDeveloper reports whether the request carries a valid token with the
// developer role claim. Absent or invalid tokens simply mean "not elevated".
func (h *Handler) isDeveloper(r *http.Request) bool {
	token, claims, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		return false
	}
	role, _ := claims["role"].(string)
	return role == "developer"
}

func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return service.ErrInvalidInput
	}
	return nil
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "room service is running at port " + os.Getenv("ROOM_SERVICE_PORT"),
		Code:    200,
		Data:    nil,
	}
	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Failed to encode health response: %v", err)
	}
}

func (h *Handler) InitAuth() {
	var jwtKey = os.Getenv("JWT_SECRET_KEY")
	h.tokenAuth = jwtauth.New("HS256", []byte(jwtKey), nil)

	expirationTime := time.Now().Add(7 * 24 * time.Hour).Unix()

	_, tokenString, _ := h.tokenAuth.Encode(map[string]interface{}{
		"role": "developer",
		"exp":  expirationTime,
	})

	// For debugging only, comment it out in production
	log.Infof("DEBUG: developer JWT for testing expires soon : %s", tokenString)
}
