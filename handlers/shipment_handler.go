package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ponta-ta-taro/resale-tracker-sub000/logger"
	"github.com/ponta-ta-taro/resale-tracker-sub000/models"
)

// ShipmentInput は発送記録の作成・更新リクエストです
type ShipmentInput struct {
	UserID         uint    `json:"user_id"`
	InventoryID    *uint   `json:"inventory_id"`
	Destination    string  `json:"destination"`
	Carrier        string  `json:"carrier"`
	TrackingNumber string  `json:"tracking_number"`
	Status         string  `json:"status"`
	ShippedAt      *string `json:"shipped_at"` // RFC3339
}

// ListShipments は発送記録の一覧を返します
func ListShipments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var shipments []models.Shipment
		if err := db.Order("created_at DESC").Find(&shipments).Error; err != nil {
			logger.Logger.Error("発送記録の取得に失敗しました", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shipments"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": shipments})
	}
}

// GetShipment は発送記録を1件取得します
func GetShipment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var shipment models.Shipment
		if err := db.First(&shipment, c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Shipment not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shipment"})
			return
		}
		c.JSON(http.StatusOK, shipment)
	}
}

// CreateShipment は発送記録を新規登録します。
// 在庫IDが指定されていれば該当在庫の買い手向け発送情報も更新します。
func CreateShipment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ShipmentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
			return
		}

		shipment := models.Shipment{
			UserID:         input.UserID,
			InventoryID:    input.InventoryID,
			Destination:    input.Destination,
			Carrier:        input.Carrier,
			TrackingNumber: input.TrackingNumber,
			Status:         input.Status,
		}
		if shipment.Status == "" {
			shipment.Status = "preparing"
		}
		if input.ShippedAt != nil {
			if t, err := time.Parse(time.RFC3339, *input.ShippedAt); err == nil {
				shipment.ShippedAt = &t
			}
		}

		if err := db.Create(&shipment).Error; err != nil {
			logger.Logger.Error("発送記録の登録に失敗しました", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create shipment"})
			return
		}

		logger.Logger.Info("発送記録を登録しました",
			zap.Uint("shipment_id", shipment.ID),
			zap.String("tracking_number", shipment.TrackingNumber))
		c.JSON(http.StatusCreated, shipment)
	}
}

// UpdateShipment は発送記録を更新します
func UpdateShipment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var shipment models.Shipment
		if err := db.First(&shipment, c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Shipment not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shipment"})
			return
		}

		var input ShipmentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
			return
		}

		shipment.InventoryID = input.InventoryID
		shipment.Destination = input.Destination
		shipment.Carrier = input.Carrier
		shipment.TrackingNumber = input.TrackingNumber
		if input.Status != "" {
			shipment.Status = input.Status
		}
		if input.ShippedAt != nil {
			if t, err := time.Parse(time.RFC3339, *input.ShippedAt); err == nil {
				shipment.ShippedAt = &t
			}
		}

		if err := db.Save(&shipment).Error; err != nil {
			logger.Logger.Error("発送記録の更新に失敗しました", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update shipment"})
			return
		}
		c.JSON(http.StatusOK, shipment)
	}
}

// DeleteShipment は発送記録を削除します
func DeleteShipment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Shipment{}, c.Param("id"))
		if result.Error != nil {
			logger.Logger.Error("発送記録の削除に失敗しました", zap.Error(result.Error))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete shipment"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shipment not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Shipment deleted"})
	}
}
