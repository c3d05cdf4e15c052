package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ponta-ta-taro/resale-tracker-sub000/logger"
	"github.com/ponta-ta-taro/resale-tracker-sub000/models"
)

// ListPrices は買取価格の履歴を返します。model_name・storageで絞り込めます。
func ListPrices(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.PriceHistory{}).Order("captured_at DESC")

		if modelName := c.Query("model_name"); modelName != "" {
			query = query.Where("model_name = ?", modelName)
		}
		if storage := c.Query("storage"); storage != "" {
			query = query.Where("storage = ?", storage)
		}

		limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
		if err != nil || limit <= 0 {
			limit = 100
		}

		var prices []models.PriceHistory
		if err := query.Limit(limit).Find(&prices).Error; err != nil {
			logger.Logger.Error("価格履歴の取得に失敗しました", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prices"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": prices})
	}
}

// LatestPrices はモデル・ストレージごとの最新価格を返します。
// メール取り込み時の想定売却価格の参照元です。
func LatestPrices(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		prices, err := models.LatestPrices(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch latest prices"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": prices})
	}
}
