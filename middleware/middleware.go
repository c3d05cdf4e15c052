// middleware/middleware.go

package middleware

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ponta-ta-taro/resale-tracker-sub000/logger"
)

type Config struct {
	EnableLogger bool
	EnableAuth   bool
}

// SetupMiddleware ミドルウェアの設定
func SetupMiddleware(r *gin.Engine, cfg *Config) {
	r.Use(gin.Recovery())

	if cfg.EnableLogger {
		r.Use(GinLogger())
	}

	if cfg.EnableAuth {
		r.Use(AuthMiddleware())
	}
}

// authenticateRequest SERVICE_TOKENによるBearer認証を行う共通関数
func authenticateRequest(c *gin.Context) bool {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		serviceToken := os.Getenv("SERVICE_TOKEN")
		if serviceToken != "" && token == serviceToken {
			return true
		}
	}

	return false
}

// AuthMiddleware 認証ミドルウェア
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if authenticateRequest(c) {
			c.Next()
			return
		}

		logUnauthorizedRequest(c)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
}

// SkipAuthMiddleware 認証スキップミドルウェア
// ヘルスチェックなど認証不要のパスを指定します
func SkipAuthMiddleware(skipPaths ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range skipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		if authenticateRequest(c) {
			c.Next()
			return
		}

		logUnauthorizedRequest(c)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
}

// logUnauthorizedRequest 未認証リクエストのログ出力
func logUnauthorizedRequest(c *gin.Context) {
	logger.Logger.Warn("未認証リクエスト",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("client_ip", c.ClientIP()),
	)
}

// GinLogger ロギングミドルウェア
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
			zap.String("user-agent", c.Request.UserAgent()),
		}

		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			fields = append(fields, zap.String("errors", errs))
		}

		logger.Logger.Info("リクエストを処理しました", fields...)
	}
}
