package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ponta-ta-taro/resale-tracker-sub000/logger"
	"github.com/ponta-ta-taro/resale-tracker-sub000/models"
)

// HandleHealthCheck はサーバーの稼働確認用エンドポイントです
func HandleHealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// GetProcessingStatus はメッセージIDから受信メールの処理結果を返します
func GetProcessingStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger
		messageID := c.Param("messageID")

		var emailLog models.EmailLog
		if err := db.Where("message_id = ?", messageID).
			Order("created_at DESC").
			First(&emailLog).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"error": "Message not found",
				})
				return
			}
			log.Error("処理状態の取得に失敗しました",
				zap.String("messageId", messageID),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to get processing state",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message_id": emailLog.MessageID,
			"processing": gin.H{
				"status":     emailLog.Status,
				"detail":     emailLog.Detail,
				"created_at": emailLog.CreatedAt,
				"updated_at": emailLog.UpdatedAt,
			},
			"email_data": gin.H{
				"from":       emailLog.FromAddress,
				"to":         emailLog.ToAddress,
				"subject":    emailLog.Subject,
				"email_type": emailLog.EmailType,
			},
		})
	}
}
