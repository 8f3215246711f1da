package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/oakmeet/meetup_backend/models"
)

func TestMessageCreatedWireFormat(t *testing.T) {
	sent := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	event := MessageCreated{
		Message: models.Message{
			ID:             12,
			ConversationID: 3,
			SenderID:       7,
			Content:        "see you there",
			CreatedAt:      sent,
		},
		SenderUsername: "alice",
	}

	data, err := Encode(event)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded["message"] != "see you there" {
		t.Errorf("message = %v", decoded["message"])
	}
	if decoded["sender_username"] != "alice" {
		t.Errorf("sender_username = %v", decoded["sender_username"])
	}
	if decoded["message_id"] != float64(12) {
		t.Errorf("message_id = %v", decoded["message_id"])
	}
	if decoded["timestamp"] != sent.Format(time.RFC3339Nano) {
		t.Errorf("timestamp = %v", decoded["timestamp"])
	}
	if _, hasType := decoded["type"]; hasType {
		t.Error("chat messages carry no type field on the wire")
	}
}

func TestUnreadCountChangedWireFormat(t *testing.T) {
	data, err := Encode(UnreadCountChanged{ConversationID: 9, Count: 4})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded["type"] != "unread_count_update" {
		t.Errorf("type = %v, want unread_count_update", decoded["type"])
	}
	if decoded["conversation_id"] != float64(9) {
		t.Errorf("conversation_id = %v", decoded["conversation_id"])
	}
	if decoded["count"] != float64(4) {
		t.Errorf("count = %v", decoded["count"])
	}
}
