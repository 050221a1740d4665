package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// RateLimit 返回一个基于客户端 IP 的固定窗口限流中间件。
// keyPrefix 与其它 Redis 键共用命名空间前缀。
func RateLimit(redisClient *redis.Client, keyPrefix string, maxRequests int, window time.Duration) gin.HandlerFunc {
	// 启动时检查依赖和参数
	if redisClient == nil {
		panic("Redis client cannot be nil for RateLimit middleware")
	}
	if maxRequests <= 0 {
		panic("maxRequests must be positive for RateLimit middleware")
	}
	if window <= 0 {
		panic("window duration must be positive for RateLimit middleware")
	}

	return func(c *gin.Context) {
		// 以客户端 IP 作为限流键；部署在反向代理后时需配置 gin 的可信代理
		key := keyPrefix + "ratelimit:" + c.ClientIP()
		ctx := c.Request.Context()

		// INCR 与 EXPIRE 放在同一个 pipeline 中
		pipe := redisClient.Pipeline()
		incrCmd := pipe.Incr(ctx, key) // 计数加一
		pipe.Expire(ctx, key, window)  // 设置/刷新窗口过期时间
		if _, err := pipe.Exec(ctx); err != nil {
			// Redis 不可用时拒绝请求，不放行
			logrus.WithError(err).Error("RateLimit: Redis Pipeline failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Rate limiting error"})
			c.Abort()
			return
		}

		// 取 INCR 的结果，即当前窗口内的请求数
		count, err := incrCmd.Result()
		if err != nil {
			logrus.WithError(err).Error("RateLimit: Failed to get INCR result after successful Exec")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Rate limiting error"})
			c.Abort()
			return
		}

		// 无论是否超限都返回限额头
		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		// count 超过 maxRequests 即超限
		if count > int64(maxRequests) {
			c.Header("X-RateLimit-Remaining", "0")
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			c.Abort()
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(int64(maxRequests)-count, 10))

		// 未超限，继续处理请求
		c.Next()
	}
}
