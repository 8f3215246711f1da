package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/oakmeet/meetup_backend/chat"
	"github.com/oakmeet/meetup_backend/utils"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// Handler upgrades websocket connections and wires each session to the
// hub and the conversation store.
type Handler struct {
	hub   *Hub
	store *chat.Store
	log   *zap.Logger
}

func NewHandler(hub *Hub, store *chat.Store, log *zap.Logger) *Handler {
	return &Handler{hub: hub, store: store, log: log}
}

// ServeChat godoc
// @Summary Open a chat websocket for a conversation
// @Description Upgrades to a websocket delivering messages for one conversation. Inbound frames are {"message": "..."}.
// @Tags websocket
// @Param id path int true "Conversation ID"
// @Param token query string true "JWT token"
// @Router /ws/chat/{id} [get]
func (h *Handler) ServeChat(c *gin.Context) {
	userID, ok := h.authenticate(c)
	if !ok {
		return
	}

	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation ID"})
		return
	}

	member, err := h.store.IsParticipant(c.Request.Context(), uint(conversationID), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check conversation access"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this conversation"})
		return
	}

	client := h.open(c, userID)
	if client == nil {
		return
	}
	client.conversationID = uint(conversationID)
	h.hub.Subscribe(client, ChatTopic(uint(conversationID)))

	go client.readPump()
	go client.writePump()
}

// ServeUnreadCounts godoc
// @Summary Open the unread-counts websocket
// @Description Upgrades to a websocket delivering unread-count updates for all of the user's conversations.
// @Tags websocket
// @Param token query string true "JWT token"
// @Router /ws/unread_counts [get]
func (h *Handler) ServeUnreadCounts(c *gin.Context) {
	userID, ok := h.authenticate(c)
	if !ok {
		return
	}

	client := h.open(c, userID)
	if client == nil {
		return
	}
	h.hub.Subscribe(client, TopicUnreadCounts)

	go client.readPump()
	go client.writePump()
}

// authenticate validates the token query parameter and returns the user.
func (h *Handler) authenticate(c *gin.Context) (uint, bool) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token is required"})
		return 0, false
	}

	userID, err := utils.ParseToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return 0, false
	}
	return userID, true
}

// open upgrades the connection and registers a new session.
func (h *Handler) open(c *gin.Context, userID uint) *Client {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return nil
	}

	client := &Client{
		hub:       h.hub,
		handler:   h,
		conn:      conn,
		send:      make(chan []byte, 256),
		sessionID: uuid.New(),
		userID:    userID,
	}
	h.hub.register <- client

	h.log.Info("websocket session opened",
		zap.String("session_id", client.sessionID.String()), zap.Uint("user_id", userID))
	return client
}

// handleChatFrame persists an inbound chat frame and broadcasts the
// stored message to the conversation topic.
func (h *Handler) handleChatFrame(c *Client, data []byte) {
	var frame struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &frame); err != nil {
		h.log.Warn("malformed chat frame",
			zap.String("session_id", c.sessionID.String()), zap.Error(err))
		return
	}
	if strings.TrimSpace(frame.Message) == "" {
		return
	}

	message, err := h.store.AppendMessage(context.Background(), c.conversationID, c.userID, frame.Message)
	if err != nil {
		h.log.Warn("failed to append message",
			zap.Uint("conversation_id", c.conversationID),
			zap.Uint("user_id", c.userID), zap.Error(err))
		h.sendError(c, "Failed to send message")
		return
	}

	h.hub.Publish(ChatTopic(c.conversationID), MessageCreated{
		Message:        *message,
		SenderUsername: message.Sender.Username,
	})
	h.notifyUnreadCounts(c.conversationID, c.userID)
}

// notifyUnreadCounts publishes the updated unread count of every other
// participant after a new message lands in a conversation.
func (h *Handler) notifyUnreadCounts(conversationID, senderID uint) {
	ctx := context.Background()
	recipients, err := h.store.OtherParticipants(ctx, conversationID, senderID)
	if err != nil {
		h.log.Warn("failed to load conversation participants",
			zap.Uint("conversation_id", conversationID), zap.Error(err))
		return
	}
	for _, recipientID := range recipients {
		count, err := h.store.UnreadCount(ctx, conversationID, recipientID)
		if err != nil {
			h.log.Warn("failed to count unread messages",
				zap.Uint("conversation_id", conversationID),
				zap.Uint("user_id", recipientID), zap.Error(err))
			continue
		}
		h.hub.Publish(TopicUnreadCounts, UnreadCountChanged{
			ConversationID: conversationID,
			Count:          count,
		})
	}
}

func (h *Handler) sendError(c *Client, text string) {
	data, err := json.Marshal(gin.H{"type": "error", "message": text})
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
