package websocket

import (
	"encoding/json"
	"time"

	"github.com/oakmeet/meetup_backend/models"
)

// Event is a payload published through the hub. The concrete kinds are
// MessageCreated and UnreadCountChanged; the sealed payload method keeps
// the set closed so every publisher site handles both shapes.
type Event interface {
	payload() any
}

// MessageCreated is published on a conversation's chat topic whenever a
// message is appended.
type MessageCreated struct {
	Message        models.Message
	SenderUsername string
}

func (e MessageCreated) payload() any {
	return struct {
		Message        string `json:"message"`
		SenderUsername string `json:"sender_username"`
		Timestamp      string `json:"timestamp"`
		MessageID      uint   `json:"message_id"`
	}{
		Message:        e.Message.Content,
		SenderUsername: e.SenderUsername,
		Timestamp:      e.Message.CreatedAt.Format(time.RFC3339Nano),
		MessageID:      e.Message.ID,
	}
}

// UnreadCountChanged is published on the global unread-counts topic when
// a mark-read call changes a recipient's unread count. The count is the
// recipient's own perspective, not a shared number.
type UnreadCountChanged struct {
	ConversationID uint
	Count          int64
}

func (e UnreadCountChanged) payload() any {
	return struct {
		Type           string `json:"type"`
		ConversationID uint   `json:"conversation_id"`
		Count          int64  `json:"count"`
	}{
		Type:           "unread_count_update",
		ConversationID: e.ConversationID,
		Count:          e.Count,
	}
}

// Encode renders an event to its wire JSON.
func Encode(e Event) ([]byte, error) {
	return json.Marshal(e.payload())
}
