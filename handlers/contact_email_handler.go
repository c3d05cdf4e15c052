package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ponta-ta-taro/resale-tracker-sub000/logger"
	"github.com/ponta-ta-taro/resale-tracker-sub000/models"
)

// ContactEmailInput は連絡先メールアドレスの登録リクエストです
type ContactEmailInput struct {
	UserID uint   `json:"user_id" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	Label  string `json:"label"`
}

// ListContactEmails は連絡先メールアドレスの一覧を返します
func ListContactEmails(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var contacts []models.ContactEmail
		query := db.Order("created_at ASC")
		if userID := c.Query("user_id"); userID != "" {
			query = query.Where("user_id = ?", userID)
		}
		if err := query.Find(&contacts).Error; err != nil {
			logger.Logger.Error("連絡先の取得に失敗しました", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contact emails"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": contacts})
	}
}

// CreateContactEmail は連絡先メールアドレスを登録します。
// Webhookでの送信元逆引きに使われるため、重複は許可しません。
func CreateContactEmail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ContactEmailInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
			return
		}

		contact := models.ContactEmail{
			UserID: input.UserID,
			Email:  input.Email,
			Label:  input.Label,
		}
		if err := db.Create(&contact).Error; err != nil {
			logger.Logger.Error("連絡先の登録に失敗しました",
				zap.Error(err),
				zap.String("email", input.Email))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contact email"})
			return
		}

		logger.Logger.Info("連絡先を登録しました",
			zap.Uint("contact_email_id", contact.ID),
			zap.String("email", contact.Email))
		c.JSON(http.StatusCreated, contact)
	}
}

// DeleteContactEmail は連絡先メールアドレスを削除します
func DeleteContactEmail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.ContactEmail{}, c.Param("id"))
		if result.Error != nil {
			logger.Logger.Error("連絡先の削除に失敗しました", zap.Error(result.Error))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contact email"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact email not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Contact email deleted"})
	}
}

// ListEmailLogs は受信メールの処理ログを新しい順に返します。
// status・email_type・start_date・end_dateで絞り込めます。
func ListEmailLogs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var logs []models.EmailLog
		query := emailLogQuery(db,
			c.Query("status"),
			c.Query("email_type"),
			c.Query("start_date"),
			c.Query("end_date"))
		if err := query.Find(&logs).Error; err != nil {
			logger.Logger.Error("メールログの取得に失敗しました", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch email logs"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": logs})
	}
}

// emailLogQuery はメールログ一覧の絞り込み条件を組み立てます。
// email_type=allは「全種別」の意味なので条件にしません。
func emailLogQuery(db *gorm.DB, status, emailType, startDate, endDate string) *gorm.DB {
	query := db.Model(&models.EmailLog{}).Order("created_at DESC").Limit(100)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if emailType != "" && emailType != "all" {
		query = query.Where("email_type = ?", emailType)
	}
	if startDate != "" {
		query = query.Where("created_at >= ?", startDate)
	}
	if endDate != "" {
		query = query.Where("created_at <= ?", endDate)
	}
	return query
}
