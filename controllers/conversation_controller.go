package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/oakmeet/meetup_backend/chat"
	"github.com/oakmeet/meetup_backend/database"
	"github.com/oakmeet/meetup_backend/models"
	"github.com/oakmeet/meetup_backend/websocket"
)

// MessagePageSize caps how many messages one history fetch returns.
const MessagePageSize = 50

type CreateConversationInput struct {
	ParticipantID uint `json:"participant_id" binding:"required" example:"2"`
}

// ConversationController exposes conversations and message history over
// HTTP. Viewing a conversation marks its messages read and pushes the
// updated unread count through the hub.
type ConversationController struct {
	store *chat.Store
	hub   *websocket.Hub
}

func NewConversationController(store *chat.Store, hub *websocket.Hub) *ConversationController {
	return &ConversationController{store: store, hub: hub}
}

// GetConversations godoc
// @Summary List the user's conversations
// @Description Returns all conversations the user participates in, each with its unread count
// @Tags conversations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Conversations with unread counts"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/conversations [get]
func (cc *ConversationController) GetConversations(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	summaries, err := cc.store.ConversationsForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversations"})
		return
	}

	conversations := make([]gin.H, 0, len(summaries))
	for _, summary := range summaries {
		conversations = append(conversations, gin.H{
			"conversation": summary.Conversation,
			"unread_count": summary.UnreadCount,
		})
	}

	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// CreateConversation godoc
// @Summary Start or fetch a conversation with another user
// @Description Returns the existing conversation with the given user, creating it if needed
// @Tags conversations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conversation body CreateConversationInput true "Other participant"
// @Success 200 {object} map[string]interface{} "Conversation"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "User not found"
// @Router /api/conversations [post]
func (cc *ConversationController) CreateConversation(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreateConversationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.ParticipantID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot start a conversation with yourself"})
		return
	}

	var other models.User
	if err := database.DB.First(&other, input.ParticipantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	conversation, err := cc.store.GetOrCreateConversation(c.Request.Context(), userID, input.ParticipantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create conversation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversation": conversation})
}

// GetMessages godoc
// @Summary Fetch a conversation's message history
// @Description Returns the most recent messages in append order and marks unread messages as read. A read-state change is broadcast on the unread-counts channel.
// @Tags conversations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Conversation ID"
// @Success 200 {object} map[string]interface{} "Messages"
// @Failure 400 {object} map[string]string "Invalid conversation ID"
// @Failure 403 {object} map[string]string "Not a participant"
// @Router /api/conversations/{id}/messages [get]
func (cc *ConversationController) GetMessages(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation ID"})
		return
	}

	ctx := c.Request.Context()

	member, err := cc.store.IsParticipant(ctx, uint(conversationID), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check conversation access"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this conversation"})
		return
	}

	flipped, err := cc.store.MarkRead(ctx, uint(conversationID), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark messages read"})
		return
	}
	if flipped > 0 {
		count, err := cc.store.UnreadCount(ctx, uint(conversationID), userID)
		if err == nil {
			cc.hub.Publish(websocket.TopicUnreadCounts, websocket.UnreadCountChanged{
				ConversationID: uint(conversationID),
				Count:          count,
			})
		}
	}

	messages, err := cc.store.Messages(ctx, uint(conversationID), userID, MessagePageSize)
	switch {
	case err == nil:
	case errors.Is(err, chat.ErrNotParticipant):
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this conversation"})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	messageList := make([]gin.H, 0, len(messages))
	for _, message := range messages {
		messageList = append(messageList, gin.H{
			"id":        message.ID,
			"content":   message.Content,
			"sender":    message.Sender.Username,
			"timestamp": message.CreatedAt,
			"is_read":   message.IsRead,
		})
	}

	c.JSON(http.StatusOK, gin.H{"messages": messageList})
}
