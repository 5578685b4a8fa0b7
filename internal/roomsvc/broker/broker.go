package broker

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/bingohall/room-services/internal/comm"
)

// Broker publishes room events to NATS for the socket relay to fan out.
// Publishing is best-effort: the HTTP request already succeeded against the
// store, so a broken event bus only degrades liveness, never correctness.
type Broker struct {
	Conn *nats.Conn
}

func NewBroker(nc *nats.Conn) *Broker {
	return &Broker{Conn: nc}
}

// PublishEvent satisfies the room service's EventPublisher contract.
func (b *Broker) PublishEvent(gameID string, eventType string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Errorf("unable to marshal %s payload for game %s: %v", eventType, gameID, err)
		return
	}

	event := comm.RoomEvent{
		GameID:  gameID,
		Type:    eventType,
		Payload: payload,
	}
	raw, err := json.Marshal(event)
	if err != nil {
		log.Errorf("unable to marshal room event: %v", err)
		return
	}

	msg := &comm.WSMessage{
		Type: eventType,
		Data: raw,
	}
	out, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("unable to marshal WSMessage: %v", err)
		return
	}

	if err := b.Conn.Publish(comm.GameEventsSubject, out); err != nil {
		log.Errorf("error publishing %s for game %s: %v", eventType, gameID, err)
	}
}
