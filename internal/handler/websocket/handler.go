package websocket

import (
	"net/http"

	"chatgenius/internal/domain"
	httpHandler "chatgenius/internal/handler/http"
	"chatgenius/internal/hub"
	"chatgenius/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// WebSocketHandler 负责校验频道成员资格、升级连接并把订阅者注册到 Hub
type WebSocketHandler struct {
	upgrader websocket.Upgrader
	hub      *hub.Hub
	gate     *service.Gate
}

// NewWebSocketHandler 创建 WebSocketHandler 实例。allowedOrigin 为空或 "*" 时不校验来源。
func NewWebSocketHandler(h *hub.Hub, gate *service.Gate, allowedOrigin string) *WebSocketHandler {
	if h == nil {
		panic("Hub cannot be nil for WebSocketHandler")
	}
	if gate == nil {
		panic("Gate cannot be nil for WebSocketHandler")
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" || allowedOrigin == "*" {
				return true
			}
			origin := r.Header.Get("Origin")
			return origin == "" || origin == allowedOrigin
		},
	}

	return &WebSocketHandler{upgrader: upgrader, hub: h, gate: gate}
}

// HandleConnection 处理 /ws/channels/:channelId 订阅请求
func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	userID, ok := httpHandler.CurrentUserID(c)
	if !ok {
		return // 未升级前直接返回 HTTP 错误
	}
	channelID := c.Param("channelId")
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "channel_id": channelID})

	if _, err := h.gate.RequireChannelMember(c.Request.Context(), userID, channelID); err != nil {
		logCtx.WithError(err).Warn("WS Handler: subscription rejected")
		httpHandler.HandleServiceError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 已写出 HTTP 错误响应
		logCtx.WithError(err).Error("WS Handler: Failed to upgrade connection")
		return
	}

	client := hub.NewClient(h.hub, conn, domain.ChannelTopic(channelID), userID)
	if !client.Register() {
		logCtx.Error("WS Handler: Hub message channel full, failed to register client")
		client.CloseConn()
		return
	}
	go client.Run()
	logCtx.Info("WS Handler: subscriber registered")
}
