package http

import (
	"net/http"

	"chatgenius/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

func SuccessResponse(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// CurrentUserID 读取 Auth 中间件设置的 user_id，缺失时写出 401 并返回 false
func CurrentUserID(c *gin.Context) (string, bool) {
	userIDAny, exists := c.Get("user_id")
	if !exists {
		logrus.Warn("Handler: User ID not found in context")
		ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	userID, ok := userIDAny.(string)
	if !ok || userID == "" {
		logrus.Error("Handler: User ID in context is not a string")
		ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return userID, true
}

// CurrentIdentity 读取 Auth 中间件设置的完整身份
func CurrentIdentity(c *gin.Context) (domain.Identity, bool) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return domain.Identity{}, false
	}
	if v, exists := c.Get("identity"); exists {
		if identity, ok := v.(domain.Identity); ok {
			return identity, true
		}
	}
	return domain.Identity{UserID: userID}, true
}

// bindJSON 绑定请求体，失败时写出 400
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		logrus.WithError(err).Warn("Handler: Invalid input format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return false
	}
	return true
}
