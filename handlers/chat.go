package handlers

import (
	"net/http"

	"zmina/services/timechange"
	"zmina/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatMessageRequest is the payload delivered by the chat transport.
type ChatMessageRequest struct {
	Text   string `json:"text" binding:"required"`
	UserID string `json:"userId"`
	ChatID string `json:"chatId"`
}

// ChatMessageResponse carries the plain-text replies for one turn. Replies
// may be empty when the turn produced nothing actionable.
type ChatMessageResponse struct {
	Replies []string `json:"replies"`
}

// ChatHandler adapts the chat transport onto the time-change pipeline.
type ChatHandler struct {
	Service timechange.TimeChangeService
}

func NewChatHandler(svc timechange.TimeChangeService) *ChatHandler {
	return &ChatHandler{Service: svc}
}

// HandleChatMessage processes one incoming chat message.
func (h *ChatHandler) HandleChatMessage(c *gin.Context) {
	logger := utils.GetLogger()

	var req ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid chat message", err.Error())
		return
	}

	// The authenticated identity wins over whatever the body claims.
	userID := req.UserID
	if uid, exists := c.Get("userID"); exists {
		if s, ok := uid.(string); ok && s != "" {
			userID = s
		}
	}
	if userID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing user id", "")
		return
	}

	replies, err := h.Service.HandleMessage(c.Request.Context(), userID, req.Text)
	if err != nil {
		logger.Error("chat turn failed", zap.String("userId", userID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to process message", "")
		return
	}
	if replies == nil {
		replies = []string{}
	}

	c.JSON(http.StatusOK, ChatMessageResponse{Replies: replies})
}

// HandleChatReset drops the user's conversation context ("start over").
func (h *ChatHandler) HandleChatReset(c *gin.Context) {
	var req struct {
		UserID string `json:"userId"`
	}
	_ = c.ShouldBindJSON(&req)

	userID := req.UserID
	if uid, exists := c.Get("userID"); exists {
		if s, ok := uid.(string); ok && s != "" {
			userID = s
		}
	}
	if userID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing user id", "")
		return
	}

	if err := h.Service.ResetConversation(c.Request.Context(), userID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to reset conversation", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
