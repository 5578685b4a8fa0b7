package broker

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/bingohall/room-services/internal/comm"
)

// Broker consumes room events from NATS and relays each one to the sockets
// watching that room.
type Broker struct {
	Conn           *nats.Conn
	GetConnection  func(string) (*websocket.Conn, bool)
	GetRoomSockets func(string) ([]string, bool)
}

func NewBroker(conn *nats.Conn, fncGetConnection func(string) (*websocket.Conn, bool),
	fncGetRoomSockets func(string) ([]string, bool)) *Broker {
	return &Broker{
		Conn:           conn,
		GetConnection:  fncGetConnection,
		GetRoomSockets: fncGetRoomSockets,
	}
}

// Subscribe consumes room events from the room service.
func (b *Broker) Subscribe(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessages)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// Publish sends a message on NATS.
func (b *Broker) Publish(topic string, payload []byte) error {
	err := b.Conn.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}

	return nil
}

func (b *Broker) handleMessages(msgNats *nats.Msg) {
	message := &comm.WSMessage{}
	err := json.Unmarshal(msgNats.Data, &message)
	if err != nil {
		log.Errorf("Error %s", err)
		return
	}

	event := &comm.RoomEvent{}
	if err := json.Unmarshal(message.Data, event); err != nil {
		log.Errorf("Error decoding room event: %s", err)
		return
	}
	if event.GameID == "" {
		log.Error("room event without game id")
		return
	}

	b.fanOut(event, message)
}

// fanOut writes the event to every socket watching the room.
func (b *Broker) fanOut(event *comm.RoomEvent, m *comm.WSMessage) {
	sockets, ok := b.GetRoomSockets(event.GameID)
	if !ok {
		return // nobody watching
	}

	for _, socketId := range sockets {
		conn, ok := b.GetConnection(socketId)
		if !ok {
			continue
		}
		if err := conn.WriteJSON(m); err != nil {
			log.Errorf("error writing %s to socket %s: %v", event.Type, socketId, err)
		}
	}
}
