package http

import (
	"net/http"
	"strconv"

	"chatgenius/internal/service"

	"github.com/gin-gonic/gin"
)

// MessageHandler 封装了消息、已读回执和 emoji 回应的 HTTP 处理逻辑
type MessageHandler struct {
	messageService  *service.MessageService
	reactionService *service.ReactionService
}

// NewMessageHandler 创建 MessageHandler 实例
func NewMessageHandler(messageService *service.MessageService, reactionService *service.ReactionService) *MessageHandler {
	return &MessageHandler{messageService: messageService, reactionService: reactionService}
}

// SendMessageRequest 内容长度与清洗由服务层负责
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// MarkReadRequest 定义已读回执请求
type MarkReadRequest struct {
	MessageID string `json:"messageId" binding:"required"`
	ChannelID string `json:"channelId" binding:"required"`
}

// AddReactionRequest 定义添加回应请求
type AddReactionRequest struct {
	Emoji string `json:"emoji" binding:"required"`
}

// List GET .../channels/:channelId/messages?limit=
func (h *MessageHandler) List(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer", "field": "limit"})
			return
		}
		limit = n
	}
	messages, err := h.messageService.List(c.Request.Context(), userID, c.Param("workspaceId"), c.Param("channelId"), limit)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, messages)
}

// Send POST .../channels/:channelId/messages
func (h *MessageHandler) Send(c *gin.Context) {
	identity, ok := CurrentIdentity(c)
	if !ok {
		return
	}
	var req SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	msg, err := h.messageService.Send(c.Request.Context(), identity, c.Param("workspaceId"), c.Param("channelId"), req.Content)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, msg)
}

// MarkRead POST /api/messages/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}
	var req MarkReadRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.messageService.MarkRead(c.Request.Context(), userID, req.MessageID, req.ChannelID); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"success": true})
}

// AddReaction POST /api/messages/:messageId/reactions
func (h *MessageHandler) AddReaction(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}
	var req AddReactionRequest
	if !bindJSON(c, &req) {
		return
	}
	reaction, err := h.reactionService.Add(c.Request.Context(), userID, c.Param("messageId"), req.Emoji)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, reaction)
}

// RemoveReaction DELETE /api/messages/:messageId/reactions?emoji=
func (h *MessageHandler) RemoveReaction(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}
	if err := h.reactionService.Remove(c.Request.Context(), userID, c.Param("messageId"), c.Query("emoji")); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"success": true})
}

// RemoveReactionByID DELETE /api/reactions/:reactionId
func (h *MessageHandler) RemoveReactionByID(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}
	if err := h.reactionService.RemoveByID(c.Request.Context(), userID, c.Param("reactionId")); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"success": true})
}
