package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/oakmeet/meetup_backend/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Conversation{},
		&models.ConversationParticipant{},
		&models.Message{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Password: "password1"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func TestGetOrCreateConversationIdempotent(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db, zap.NewNop())
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	first, err := store.GetOrCreateConversation(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("GetOrCreateConversation: %v", err)
	}

	// Same pair in either order resolves to the same conversation.
	second, err := store.GetOrCreateConversation(ctx, bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("GetOrCreateConversation reversed: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("conversation IDs differ: %d vs %d", first.ID, second.ID)
	}

	var conversations int64
	db.Model(&models.Conversation{}).Count(&conversations)
	if conversations != 1 {
		t.Errorf("conversation rows = %d, want 1", conversations)
	}

	for _, user := range []models.User{alice, bob} {
		member, err := store.IsParticipant(ctx, first.ID, user.ID)
		if err != nil {
			t.Fatalf("IsParticipant: %v", err)
		}
		if !member {
			t.Errorf("%s is not a participant", user.Username)
		}
	}
}

func TestAppendMessageNotParticipant(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db, zap.NewNop())
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	eve := createUser(t, db, "eve")

	conversation, err := store.GetOrCreateConversation(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("GetOrCreateConversation: %v", err)
	}

	if _, err := store.AppendMessage(ctx, conversation.ID, eve.ID, "hi"); !errors.Is(err, ErrNotParticipant) {
		t.Errorf("err = %v, want ErrNotParticipant", err)
	}

	var messages int64
	db.Model(&models.Message{}).Count(&messages)
	if messages != 0 {
		t.Errorf("message rows = %d, want 0", messages)
	}
}

func TestAppendMessageUnknownConversation(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db, zap.NewNop())
	alice := createUser(t, db, "alice")

	if _, err := store.AppendMessage(context.Background(), 42, alice.ID, "hi"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// Scenario: A sends three messages, B has not viewed. B's unread count
// is 3, A's is 0. Marking read for B flips all three; a second call is
// a no-op.
func TestUnreadCountAndMarkRead(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db, zap.NewNop())
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	conversation, err := store.GetOrCreateConversation(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("GetOrCreateConversation: %v", err)
	}

	for _, content := range []string{"one", "two", "three"} {
		if _, err := store.AppendMessage(ctx, conversation.ID, alice.ID, content); err != nil {
			t.Fatalf("AppendMessage %q: %v", content, err)
		}
	}

	bobCount, err := store.UnreadCount(ctx, conversation.ID, bob.ID)
	if err != nil {
		t.Fatalf("UnreadCount bob: %v", err)
	}
	if bobCount != 3 {
		t.Errorf("bob unread = %d, want 3", bobCount)
	}

	aliceCount, err := store.UnreadCount(ctx, conversation.ID, alice.ID)
	if err != nil {
		t.Fatalf("UnreadCount alice: %v", err)
	}
	if aliceCount != 0 {
		t.Errorf("alice unread = %d, want 0 (sender never counts own messages)", aliceCount)
	}

	flipped, err := store.MarkRead(ctx, conversation.ID, bob.ID)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if flipped != 3 {
		t.Errorf("MarkRead flipped %d, want 3", flipped)
	}

	again, err := store.MarkRead(ctx, conversation.ID, bob.ID)
	if err != nil {
		t.Fatalf("second MarkRead: %v", err)
	}
	if again != 0 {
		t.Errorf("second MarkRead flipped %d, want 0", again)
	}

	bobCount, err = store.UnreadCount(ctx, conversation.ID, bob.ID)
	if err != nil {
		t.Fatalf("UnreadCount bob after mark: %v", err)
	}
	if bobCount != 0 {
		t.Errorf("bob unread after mark = %d, want 0", bobCount)
	}
}

func TestMarkReadLeavesOwnMessagesAlone(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db, zap.NewNop())
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	conversation, err := store.GetOrCreateConversation(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("GetOrCreateConversation: %v", err)
	}

	if _, err := store.AppendMessage(ctx, conversation.ID, alice.ID, "from alice"); err != nil {
		t.Fatalf("AppendMessage: %v", err)
	}
	if _, err := store.AppendMessage(ctx, conversation.ID, bob.ID, "from bob"); err != nil {
		t.Fatalf("AppendMessage: %v", err)
	}

	// Alice reading flips only bob's message; her own stays unread for
	// bob's perspective.
	flipped, err := store.MarkRead(ctx, conversation.ID, alice.ID)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if flipped != 1 {
		t.Errorf("MarkRead flipped %d, want 1", flipped)
	}

	bobCount, err := store.UnreadCount(ctx, conversation.ID, bob.ID)
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if bobCount != 1 {
		t.Errorf("bob unread = %d, want 1", bobCount)
	}
}

func TestMessagesAppendOrderAndLimit(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db, zap.NewNop())
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	conversation, err := store.GetOrCreateConversation(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("GetOrCreateConversation: %v", err)
	}

	contents := []string{"m1", "m2", "m3", "m4", "m5"}
	for _, content := range contents {
		if _, err := store.AppendMessage(ctx, conversation.ID, alice.ID, content); err != nil {
			t.Fatalf("AppendMessage %q: %v", content, err)
		}
	}

	messages, err := store.Messages(ctx, conversation.ID, bob.ID, 3)
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("len = %d, want 3", len(messages))
	}
	// Most recent three, oldest first.
	want := []string{"m3", "m4", "m5"}
	for i, message := range messages {
		if message.Content != want[i] {
			t.Errorf("messages[%d] = %q, want %q", i, message.Content, want[i])
		}
		if message.Sender.Username != "alice" {
			t.Errorf("messages[%d] sender = %q, want alice", i, message.Sender.Username)
		}
	}

	if _, err := store.Messages(ctx, conversation.ID, 999, 10); !errors.Is(err, ErrNotParticipant) {
		t.Errorf("non-participant Messages err = %v, want ErrNotParticipant", err)
	}
}

func TestConversationsForUser(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db, zap.NewNop())
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	withBob, err := store.GetOrCreateConversation(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("GetOrCreateConversation: %v", err)
	}
	if _, err := store.GetOrCreateConversation(ctx, bob.ID, carol.ID); err != nil {
		t.Fatalf("GetOrCreateConversation: %v", err)
	}

	if _, err := store.AppendMessage(ctx, withBob.ID, bob.ID, "hey alice"); err != nil {
		t.Fatalf("AppendMessage: %v", err)
	}

	summaries, err := store.ConversationsForUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ConversationsForUser: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("alice sees %d conversations, want 1", len(summaries))
	}
	if summaries[0].Conversation.ID != withBob.ID {
		t.Errorf("conversation = %d, want %d", summaries[0].Conversation.ID, withBob.ID)
	}
	if summaries[0].UnreadCount != 1 {
		t.Errorf("unread = %d, want 1", summaries[0].UnreadCount)
	}

	bobSummaries, err := store.ConversationsForUser(ctx, bob.ID)
	if err != nil {
		t.Fatalf("ConversationsForUser bob: %v", err)
	}
	if len(bobSummaries) != 2 {
		t.Errorf("bob sees %d conversations, want 2", len(bobSummaries))
	}
}

func TestOtherParticipants(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db, zap.NewNop())
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	conversation, err := store.GetOrCreateConversation(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("GetOrCreateConversation: %v", err)
	}

	others, err := store.OtherParticipants(ctx, conversation.ID, alice.ID)
	if err != nil {
		t.Fatalf("OtherParticipants: %v", err)
	}
	if len(others) != 1 || others[0] != bob.ID {
		t.Errorf("others = %v, want [%d]", others, bob.ID)
	}
}
