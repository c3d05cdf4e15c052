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

// PaymentMethodInput は支払い方法の作成・更新リクエストです
type PaymentMethodInput struct {
	UserID             uint   `json:"user_id"`
	Name               string `json:"name" binding:"required"`
	Type               string `json:"type"`
	ClosingDay         *int   `json:"closing_day"`
	PaymentDay         *int   `json:"payment_day"`
	PaymentMonthOffset *int   `json:"payment_month_offset"`
	CreditLimit        *int   `json:"credit_limit"`
	SortOrder          int    `json:"sort_order"`
	IsActive           *bool  `json:"is_active"`
}

// ListPaymentMethods は支払い方法の一覧を表示順で返します
func ListPaymentMethods(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var methods []models.PaymentMethod
		if err := db.Order("sort_order ASC").Find(&methods).Error; err != nil {
			logger.Logger.Error("支払い方法の取得に失敗しました", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment methods"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": methods})
	}
}

// CreatePaymentMethod は支払い方法を新規登録します
func CreatePaymentMethod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PaymentMethodInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
			return
		}

		method := models.PaymentMethod{
			UserID:             input.UserID,
			Name:               input.Name,
			Type:               input.Type,
			ClosingDay:         input.ClosingDay,
			PaymentDay:         input.PaymentDay,
			PaymentMonthOffset: input.PaymentMonthOffset,
			CreditLimit:        input.CreditLimit,
			SortOrder:          input.SortOrder,
			IsActive:           true,
		}
		if method.Type == "" {
			method.Type = "credit_card"
		}
		if input.IsActive != nil {
			method.IsActive = *input.IsActive
		}

		if err := db.Create(&method).Error; err != nil {
			logger.Logger.Error("支払い方法の登録に失敗しました", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment method"})
			return
		}

		logger.Logger.Info("支払い方法を登録しました",
			zap.Uint("payment_method_id", method.ID),
			zap.String("name", method.Name))
		c.JSON(http.StatusCreated, method)
	}
}

// UpdatePaymentMethod は支払い方法を更新します
func UpdatePaymentMethod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var method models.PaymentMethod
		if err := db.First(&method, c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Payment method not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment method"})
			return
		}

		var input PaymentMethodInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
			return
		}

		method.Name = input.Name
		if input.Type != "" {
			method.Type = input.Type
		}
		method.ClosingDay = input.ClosingDay
		method.PaymentDay = input.PaymentDay
		method.PaymentMonthOffset = input.PaymentMonthOffset
		method.CreditLimit = input.CreditLimit
		method.SortOrder = input.SortOrder
		if input.IsActive != nil {
			method.IsActive = *input.IsActive
		}

		if err := db.Save(&method).Error; err != nil {
			logger.Logger.Error("支払い方法の更新に失敗しました", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment method"})
			return
		}
		c.JSON(http.StatusOK, method)
	}
}

// DeletePaymentMethod は支払い方法を削除します
func DeletePaymentMethod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.PaymentMethod{}, c.Param("id"))
		if result.Error != nil {
			logger.Logger.Error("支払い方法の削除に失敗しました", zap.Error(result.Error))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete payment method"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment method not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment method deleted"})
	}
}
