package websocket

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Topic names a broadcast channel on the hub.
type Topic string

// TopicUnreadCounts is the single global channel for unread-count
// updates. Clients filter by conversation on their side.
const TopicUnreadCounts Topic = "unread-counts"

// ChatTopic returns the topic scoped to one conversation's messages.
func ChatTopic(conversationID uint) Topic {
	return Topic(fmt.Sprintf("chat:%d", conversationID))
}

// Hub maintains the set of active clients and fans events out to every
// client subscribed to a topic. It is an ordinary value constructed in
// main and injected wherever something publishes; nothing reaches it
// through package state.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Topic subscriptions (topic -> clients)
	topics map[Topic]map[*Client]bool

	// Mutex for the topics map
	topicsMux sync.RWMutex

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	log *zap.Logger
}

// NewHub creates a new hub instance
func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		topics:     make(map[Topic]map[*Client]bool),
		log:        log,
	}
}

// Run processes client registration until ctx is canceled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				// Drop the subscriptions before closing the channel so a
				// publisher holding topicsMux can no longer reach it.
				h.dropFromAllTopics(client)
				close(client.send)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Subscribe adds a client to a topic. Idempotent.
func (h *Hub) Subscribe(client *Client, topic Topic) {
	h.topicsMux.Lock()
	defer h.topicsMux.Unlock()

	if _, ok := h.topics[topic]; !ok {
		h.topics[topic] = make(map[*Client]bool)
	}
	h.topics[topic][client] = true
}

// Unsubscribe removes a client from a topic. Idempotent.
func (h *Hub) Unsubscribe(client *Client, topic Topic) {
	h.topicsMux.Lock()
	defer h.topicsMux.Unlock()

	if _, ok := h.topics[topic]; ok {
		delete(h.topics[topic], client)
		// Clean up empty topics
		if len(h.topics[topic]) == 0 {
			delete(h.topics, topic)
		}
	}
}

// Publish delivers the event to every client currently subscribed to
// the topic. Delivery is fire-and-forget: a client whose send buffer is
// full or whose connection is gone is dropped, and failures are never
// reported to the publisher.
func (h *Hub) Publish(topic Topic, event Event) {
	data, err := Encode(event)
	if err != nil {
		h.log.Error("failed to encode event", zap.Error(err), zap.String("topic", string(topic)))
		return
	}
	h.publishRaw(topic, data)
}

func (h *Hub) publishRaw(topic Topic, data []byte) {
	h.topicsMux.Lock()
	defer h.topicsMux.Unlock()

	clients, ok := h.topics[topic]
	if !ok {
		return
	}
	for client := range clients {
		select {
		case client.send <- data:
		default:
			// Dead or backlogged client: drop its subscription and let
			// the connection teardown path finish the cleanup.
			delete(clients, client)
		}
	}
}

// SubscriberCount reports how many clients are subscribed to a topic.
func (h *Hub) SubscriberCount(topic Topic) int {
	h.topicsMux.RLock()
	defer h.topicsMux.RUnlock()
	return len(h.topics[topic])
}

func (h *Hub) dropFromAllTopics(client *Client) {
	h.topicsMux.Lock()
	defer h.topicsMux.Unlock()

	for topic, clients := range h.topics {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.topics, topic)
			}
		}
	}
}
