package service

import (
	"context"
	"encoding/json"
	"log"

	"vetvox-be/internal/websocket"
	"vetvox-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains visit events off the in-process bus and pushes them
// to connected dashboards through the websocket hub.
type consumerService struct {
	pubSub *gochannel.GoChannel
	hub    *websocket.Hub
}

func NewConsumerService(pubSub *gochannel.GoChannel, hub *websocket.Hub) IConsumerService {
	return &consumerService{
		pubSub: pubSub,
		hub:    hub,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	for _, topic := range []string{events.TopicVisitCreated, events.TopicVisitNotesUpdated} {
		messages, err := cs.pubSub.Subscribe(ctx, topic)
		if err != nil {
			return err
		}

		go func(topic string, messages <-chan *message.Message) {
			for msg := range messages {
				cs.processMessage(topic, msg)
			}
		}(topic, messages)
	}

	return nil
}

func (cs *consumerService) processMessage(topic string, msg *message.Message) {
	var payload map[string]interface{}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal %s message: %v", topic, err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.hub.Broadcast(topic, payload)
	msg.Ack()
}
