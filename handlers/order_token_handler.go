package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ponta-ta-taro/resale-tracker-sub000/appletoken"
	"github.com/ponta-ta-taro/resale-tracker-sub000/models"
)

// GetOrderToken はApple Storeの注文照会トークンを取得し、
// 該当する在庫があればトークンを保存します。
func GetOrderToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderNumber := c.Query("order_number")
		email := c.Query("email")
		if orderNumber == "" || email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order_number and email are required"})
			return
		}

		token, ok := appletoken.FetchOrderToken(c.Request.Context(), orderNumber, email)
		if !ok {
			// Apple側の応答次第で普通に起きるため404で返す
			c.JSON(http.StatusNotFound, gin.H{"error": "order token not available"})
			return
		}

		if inventory, err := models.FindInventoryByOrderNumber(db, orderNumber); err == nil {
			db.Model(inventory).Update("order_token", token)
		}

		c.JSON(http.StatusOK, gin.H{"order_number": orderNumber, "token": token})
	}
}
