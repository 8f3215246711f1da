package websocket

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestClient(h *Hub, buffer int) *Client {
	return &Client{
		hub:  h,
		send: make(chan []byte, buffer),
	}
}

func recvOrTimeout(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case data := <-c.send:
		return data
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for delivery")
		return nil
	}
}

func TestChatTopicNaming(t *testing.T) {
	if got := ChatTopic(42); got != Topic("chat:42") {
		t.Errorf("ChatTopic(42) = %q, want chat:42", got)
	}
}

func TestSubscribeIdempotent(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client := newTestClient(hub, 1)

	topic := ChatTopic(1)
	hub.Subscribe(client, topic)
	hub.Subscribe(client, topic)

	if got := hub.SubscriberCount(topic); got != 1 {
		t.Errorf("subscribers = %d, want 1", got)
	}
}

func TestUnsubscribeIdempotent(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client := newTestClient(hub, 1)

	topic := ChatTopic(1)
	hub.Subscribe(client, topic)
	hub.Unsubscribe(client, topic)
	hub.Unsubscribe(client, topic)

	if got := hub.SubscriberCount(topic); got != 0 {
		t.Errorf("subscribers = %d, want 0", got)
	}

	// Unsubscribing from a topic never subscribed to is a no-op too.
	hub.Unsubscribe(client, TopicUnreadCounts)
}

func TestPublishFanout(t *testing.T) {
	hub := NewHub(zap.NewNop())
	first := newTestClient(hub, 4)
	second := newTestClient(hub, 4)
	bystander := newTestClient(hub, 4)

	topic := ChatTopic(7)
	hub.Subscribe(first, topic)
	hub.Subscribe(second, topic)
	hub.Subscribe(bystander, ChatTopic(8))

	hub.Publish(topic, UnreadCountChanged{ConversationID: 7, Count: 2})

	for _, client := range []*Client{first, second} {
		data := recvOrTimeout(t, client)
		if len(data) == 0 {
			t.Error("received empty payload")
		}
	}

	select {
	case data := <-bystander.send:
		t.Errorf("bystander on another topic received %s", data)
	default:
	}
}

func TestPublishDropsBackloggedClient(t *testing.T) {
	hub := NewHub(zap.NewNop())
	healthy := newTestClient(hub, 4)
	stuck := newTestClient(hub, 1)

	topic := ChatTopic(3)
	hub.Subscribe(healthy, topic)
	hub.Subscribe(stuck, topic)

	// Fill the stuck client's buffer so the next delivery cannot land.
	stuck.send <- []byte("backlog")

	hub.Publish(topic, UnreadCountChanged{ConversationID: 3, Count: 1})

	if got := hub.SubscriberCount(topic); got != 1 {
		t.Errorf("subscribers after drop = %d, want 1", got)
	}

	// The healthy client keeps receiving.
	recvOrTimeout(t, healthy)
	hub.Publish(topic, UnreadCountChanged{ConversationID: 3, Count: 0})
	recvOrTimeout(t, healthy)
}

func TestPublishToEmptyTopic(t *testing.T) {
	hub := NewHub(zap.NewNop())
	// Fire-and-forget: no subscribers, no error, no panic.
	hub.Publish(ChatTopic(99), UnreadCountChanged{ConversationID: 99, Count: 0})
}

func TestRunUnregisterCleansUpSubscriptions(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	leaving := newTestClient(hub, 4)
	staying := newTestClient(hub, 4)

	hub.register <- leaving
	hub.register <- staying
	topic := ChatTopic(5)
	hub.Subscribe(leaving, topic)
	hub.Subscribe(staying, topic)

	hub.unregister <- leaving

	// The hub closes the departing client's send channel once it has
	// been dropped from every topic.
	select {
	case _, open := <-leaving.send:
		if open {
			t.Fatal("expected closed send channel, got a message")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for unregister")
	}

	if got := hub.SubscriberCount(topic); got != 1 {
		t.Errorf("subscribers = %d, want 1", got)
	}

	// Remaining sessions are unaffected.
	hub.Publish(topic, UnreadCountChanged{ConversationID: 5, Count: 1})
	recvOrTimeout(t, staying)
}

func TestPublishDuringUnregister(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	// A publisher hammering the topic while sessions churn through
	// register/subscribe/unregister must never write to a closed send
	// channel: the hub drops the subscriptions before it closes.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				hub.Publish(TopicUnreadCounts, UnreadCountChanged{ConversationID: 1, Count: 1})
			}
		}
	}()

	for i := 0; i < 200; i++ {
		client := newTestClient(hub, 1)
		hub.register <- client
		hub.Subscribe(client, TopicUnreadCounts)
		hub.unregister <- client

		// Drain until the hub closes the channel so the next iteration
		// starts from a finished teardown.
		for range client.send {
		}
	}

	cancel()
	<-done
}

func TestConcurrentPublish(t *testing.T) {
	hub := NewHub(zap.NewNop())
	subscriber := newTestClient(hub, 256)
	hub.Subscribe(subscriber, TopicUnreadCounts)

	const publishers = 32
	var wg sync.WaitGroup
	wg.Add(publishers)
	for i := 0; i < publishers; i++ {
		go func(n int) {
			defer wg.Done()
			hub.Publish(TopicUnreadCounts, UnreadCountChanged{ConversationID: uint(n), Count: 1})
		}(i)
	}
	wg.Wait()

	if got := len(subscriber.send); got != publishers {
		t.Errorf("delivered = %d, want %d", got, publishers)
	}
}
