package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ponta-ta-taro/resale-tracker-sub000/logger"
	"github.com/ponta-ta-taro/resale-tracker-sub000/models"
)

// RewardInput はポイント記録の作成・更新リクエストです
type RewardInput struct {
	UserID    uint   `json:"user_id"`
	Source    string `json:"source" binding:"required"`
	Points    int    `json:"points" binding:"required"`
	EarnedAt  string `json:"earned_at" binding:"required"`
	ExpiresAt string `json:"expires_at"`
	Note      string `json:"note"`
}

var monthParamRe = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// ListRewards はポイント記録の一覧を返します。month=YYYY-MMで月別に絞り込めます。
func ListRewards(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Reward{}).Order("earned_at DESC")

		if month := c.Query("month"); month != "" {
			m := monthParamRe.FindStringSubmatch(month)
			if m == nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
				return
			}
			year, _ := strconv.Atoi(m[1])
			monthNum, _ := strconv.Atoi(m[2])
			firstDay := fmt.Sprintf("%04d-%02d-01", year, monthNum)
			lastDay := fmt.Sprintf("%04d-%02d-%02d", year, monthNum,
				time.Date(year, time.Month(monthNum)+1, 0, 0, 0, 0, 0, time.UTC).Day())
			query = query.Where("earned_at >= ? AND earned_at <= ?", firstDay, lastDay)
		}

		var rewards []models.Reward
		if err := query.Find(&rewards).Error; err != nil {
			logger.Logger.Error("ポイント記録の取得に失敗しました", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rewards"})
			return
		}
		c.JSON(http.StatusOK, rewards)
	}
}

// CreateReward はポイント記録を新規登録します
func CreateReward(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RewardInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
			return
		}

		reward := models.Reward{
			UserID:    input.UserID,
			Source:    input.Source,
			Points:    input.Points,
			EarnedAt:  input.EarnedAt,
			ExpiresAt: input.ExpiresAt,
			Note:      input.Note,
		}
		if err := db.Create(&reward).Error; err != nil {
			logger.Logger.Error("ポイント記録の登録に失敗しました", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reward"})
			return
		}
		c.JSON(http.StatusCreated, reward)
	}
}

// UpdateReward はポイント記録を更新します
func UpdateReward(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reward models.Reward
		if err := db.First(&reward, c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reward"})
			return
		}

		var input RewardInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
			return
		}

		reward.Source = input.Source
		reward.Points = input.Points
		reward.EarnedAt = input.EarnedAt
		reward.ExpiresAt = input.ExpiresAt
		reward.Note = input.Note

		if err := db.Save(&reward).Error; err != nil {
			logger.Logger.Error("ポイント記録の更新に失敗しました", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reward"})
			return
		}
		c.JSON(http.StatusOK, reward)
	}
}

// DeleteReward はポイント記録を削除します
func DeleteReward(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Reward{}, c.Param("id"))
		if result.Error != nil {
			logger.Logger.Error("ポイント記録の削除に失敗しました", zap.Error(result.Error))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reward"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Reward deleted"})
	}
}

// RewardSummary は発生元ごとのポイント合計を返します
func RewardSummary(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		type sourceTotal struct {
			Source string `json:"source"`
			Total  int64  `json:"total"`
		}
		var totals []sourceTotal
		if err := db.Model(&models.Reward{}).
			Select("source, COALESCE(SUM(points),0) AS total").
			Group("source").
			Order("total DESC").
			Scan(&totals).Error; err != nil {
			logger.Logger.Error("ポイント集計の取得に失敗しました", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reward summary"})
			return
		}

		var grandTotal int64
		for _, t := range totals {
			grandTotal += t.Total
		}

		c.JSON(http.StatusOK, gin.H{
			"by_source": totals,
			"total":     grandTotal,
		})
	}
}
