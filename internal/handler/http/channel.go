package http

import (
	"net/http"

	"chatgenius/internal/service"

	"github.com/gin-gonic/gin"
)

// ChannelHandler 封装了频道相关的 HTTP 处理逻辑
type ChannelHandler struct {
	channelService *service.ChannelService
}

// NewChannelHandler 创建 ChannelHandler 实例
func NewChannelHandler(channelService *service.ChannelService) *ChannelHandler {
	return &ChannelHandler{channelService: channelService}
}

// CreateChannelRequest 名称的规范化与长度校验由服务层完成
type CreateChannelRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *ChannelHandler) List(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}
	channels, err := h.channelService.List(c.Request.Context(), userID, c.Param("workspaceId"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, channels)
}

func (h *ChannelHandler) Create(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}
	var req CreateChannelRequest
	if !bindJSON(c, &req) {
		return
	}
	channel, err := h.channelService.Create(c.Request.Context(), userID, c.Param("workspaceId"), req.Name)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, channel)
}

// General 获取或创建 general 频道
func (h *ChannelHandler) General(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}
	channel, err := h.channelService.General(c.Request.Context(), userID, c.Param("workspaceId"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, channel)
}

func (h *ChannelHandler) Get(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}
	channel, err := h.channelService.Get(c.Request.Context(), userID, c.Param("workspaceId"), c.Param("channelId"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, channel)
}
