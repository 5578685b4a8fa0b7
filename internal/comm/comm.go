package comm

import (
	"encoding/json"
	"time"
)

// GameEventsSubject carries every room event from the room service to the
// socket relay.
const GameEventsSubject = "game.events"

// WSMessage is the envelope shared by NATS and the websocket relay.
type WSMessage struct {
	Type     string          `json:"type"` // e.g. "bingo-call", "chat-message"
	Data     json.RawMessage `json:"data"`
	SocketId string          `json:"socketid"`
}

// RoomEvent wraps an event payload with the room it belongs to, so the relay
// can fan out to exactly the sockets registered for that room.
type RoomEvent struct {
	GameID  string          `json:"game_id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type ServiceHeartbeat struct {
	ID        string    `json:"id"` // service id
	Timestamp time.Time `json:"timestamp"`
}

type ServiceShutdown struct {
	ID string `json:"id"` // service id
}
