package bootstrap

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	httpHandler "chatgenius/internal/handler/http"
	wsHandler "chatgenius/internal/handler/websocket"
	"chatgenius/internal/middleware"
)

// Handlers 汇总路由需要的全部处理器
type Handlers struct {
	User      *httpHandler.UserHandler
	Workspace *httpHandler.WorkspaceHandler
	Channel   *httpHandler.ChannelHandler
	Message   *httpHandler.MessageHandler
	Invite    *httpHandler.InviteHandler
	File      *httpHandler.FileHandler
	WS        *wsHandler.WebSocketHandler
}

// NewRouter 组装 Gin 引擎、中间件和路由。redisClient 为 nil 时不启用限流。
func NewRouter(cfg *Config, log *logrus.Logger, redisClient *redis.Client, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(log))
	router.Use(middleware.Metrics())
	router.Use(corsMiddleware(cfg.CORSAllowedOrigin))
	if redisClient != nil {
		router.Use(middleware.RateLimit(redisClient, cfg.KeyPrefix, cfg.RateLimitMax, cfg.RateLimitWindow))
	}

	auth := middleware.Auth(cfg.JWTSecret, cfg.JWTIssuer)

	api := router.Group("/api", auth)
	{
		api.GET("/user", h.User.Me)
		api.GET("/users/:userId", h.User.Get)
		api.POST("/users/bio", h.User.UpdateBio)

		api.POST("/messages/read", h.Message.MarkRead)
		api.POST("/messages/:messageId/reactions", h.Message.AddReaction)
		api.DELETE("/messages/:messageId/reactions", h.Message.RemoveReaction)
		api.DELETE("/reactions/:reactionId", h.Message.RemoveReactionByID)

		api.POST("/upload", h.File.Upload)
	}

	workspaces := api.Group("/workspaces")
	{
		workspaces.GET("", h.Workspace.List)
		workspaces.POST("", h.Workspace.Create)
		workspaces.GET("/:workspaceId", h.Workspace.Get)
		workspaces.GET("/:workspaceId/members", h.Workspace.Members)
		workspaces.POST("/:workspaceId/leave", h.Workspace.Leave)
		workspaces.POST("/:workspaceId/invite-link", h.Workspace.InviteLink)

		workspaces.GET("/:workspaceId/invites", h.Invite.List)
		workspaces.POST("/:workspaceId/invites", h.Invite.Create)
		workspaces.POST("/:workspaceId/invites/verify", h.Invite.Verify)
		workspaces.POST("/:workspaceId/invites/accept", h.Invite.Accept)
		workspaces.POST("/:workspaceId/invites/reject", h.Invite.Reject)

		workspaces.GET("/:workspaceId/channels", h.Channel.List)
		workspaces.POST("/:workspaceId/channels", h.Channel.Create)
		workspaces.GET("/:workspaceId/channels/general", h.Channel.General)
		workspaces.GET("/:workspaceId/channels/:channelId", h.Channel.Get)
		workspaces.GET("/:workspaceId/channels/:channelId/messages", h.Message.List)
		workspaces.POST("/:workspaceId/channels/:channelId/messages", h.Message.Send)
		workspaces.GET("/:workspaceId/channels/:channelId/files", h.File.ListChannelFiles)
		workspaces.POST("/:workspaceId/channels/:channelId/files", h.File.UploadToChannel)
	}

	router.GET("/ws/channels/:channelId", auth, h.WS.HandleConnection)
	router.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "pong"}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

func corsMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// LoggerMiddleware 创建一个 Gin 中间件用于记录请求日志
func LoggerMiddleware(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()
		latency := time.Since(startTime)
		statusCode := c.Writer.Status()
		errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String()

		// 不记录 query，?token= 可能携带会话令牌
		entry := log.WithFields(logrus.Fields{
			"status_code": statusCode,
			"latency_ms":  latency.Milliseconds(),
			"client_ip":   c.ClientIP(),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
		})

		switch {
		case errorMessage != "":
			entry.Error(errorMessage)
		case statusCode >= 500:
			entry.Error("Server error")
		case statusCode >= 400:
			entry.Warn("Client error")
		default:
			entry.Info("Request handled")
		}
	}
}
