package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/bingohall/room-services/internal/comm"
)

// Ws tracks websocket connections and which room each one watches. A client
// sends a watch-room message after connecting and from then on receives every
// event published for that room.
type Ws struct {
	connMap sync.Map // socketId -> *websocket.Conn
	roomMap sync.Map // socketId -> gameId
}

func NewWs() *Ws {
	return &Ws{}
}

// SocketMessage handles a message from a web client.
func (s *Ws) SocketMessage(socketId string, message *comm.WSMessage) {
	switch message.Type {
	case "watch-room":
		s.handleWatchRoom(socketId, message)
	case "unwatch-room":
		s.roomMap.Delete(socketId)
	default:
		log.Warnf("unknown event received: %s", message.Type)
	}
}

func (s *Ws) handleWatchRoom(socketId string, msg *comm.WSMessage) {
	var payload struct {
		GameID string `json:"game_id"`
	}

	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		log.Errorf("Error: malformed watch-room payload %s", err)
		return
	}
	if payload.GameID == "" {
		log.Error("Invalid watch-room payload: missing game_id")
		return
	}

	s.StoreRoom(socketId, payload.GameID)
	log.Infof("socket %s now watching room %s", socketId, payload.GameID)
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	s.connMap.Store(socketId, conn)
}

func (s *Ws) GetConnection(socketId string) (*websocket.Conn, bool) {
	conn, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return conn.(*websocket.Conn), true
}

func (s *Ws) StoreRoom(socketId string, gameId string) {
	s.roomMap.Store(socketId, gameId)
}

func (s *Ws) GetRoom(socketId string) (string, bool) {
	room, ok := s.roomMap.Load(socketId)
	if !ok {
		return "", false
	}
	return room.(string), true
}

// GetRoomSockets returns every socket watching gameId.
func (s *Ws) GetRoomSockets(gameId string) ([]string, bool) {
	var sockets []string
	found := false

	s.roomMap.Range(func(key, value interface{}) bool {
		if value.(string) == gameId {
			sockets = append(sockets, key.(string))
			found = true
		}
		return true // continue iterating
	})

	return sockets, found
}

// HandleDisconnect drops a closed socket from both maps.
func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)
	s.roomMap.Delete(socketId)
}
