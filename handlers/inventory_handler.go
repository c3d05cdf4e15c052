package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ponta-ta-taro/resale-tracker-sub000/logger"
	"github.com/ponta-ta-taro/resale-tracker-sub000/models"
)

// InventoryInput は在庫の作成・更新リクエストです。
// 更新時はポインタがnilのフィールドを変更しません。
type InventoryInput struct {
	UserID                uint    `json:"user_id"`
	OrderNumber           *string `json:"order_number"`
	Status                *string `json:"status"`
	ModelName             *string `json:"model_name"`
	Storage               *string `json:"storage"`
	Color                 *string `json:"color"`
	SerialNumber          *string `json:"serial_number"`
	IMEI                  *string `json:"imei"`
	PurchasePrice         *int    `json:"purchase_price"`
	ExpectedPrice         *int    `json:"expected_price"`
	ActualPrice           *int    `json:"actual_price"`
	OrderDate             *string `json:"order_date"`
	ExpectedDeliveryStart *string `json:"expected_delivery_start"`
	ExpectedDeliveryEnd   *string `json:"expected_delivery_end"`
	Carrier               *string `json:"carrier"`
	TrackingNumber        *string `json:"tracking_number"`
	PaymentCard           *string `json:"payment_card"`
	PurchaseSource        *string `json:"purchase_source"`
	SoldTo                *string `json:"sold_to"`
	Notes                 *string `json:"notes"`
	PaymentMethodID       *uint   `json:"payment_method_id"`
}

// ListInventory は在庫の一覧を返します。status・limit・offsetで絞り込めます。
func ListInventory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Inventory{}).Order("created_at DESC")

		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if err != nil || limit <= 0 {
			limit = 50
		}
		offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if err != nil || offset < 0 {
			offset = 0
		}

		var items []models.Inventory
		if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
			logger.Logger.Error("在庫一覧の取得に失敗しました", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": items})
	}
}

// GetInventory は在庫を1件取得します
func GetInventory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item models.Inventory
		if err := db.First(&item, c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Inventory not found"})
				return
			}
			logger.Logger.Error("在庫の取得に失敗しました", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// SearchInventory は注文番号で在庫を検索します。
// 該当なしはエラーではなくnullを返します（呼び出し側のUIが手入力へ誘導します）。
func SearchInventory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderNumber := c.Query("order_number")
		if orderNumber == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order_number is required"})
			return
		}

		inventory, err := models.FindInventoryByOrderNumber(db, orderNumber)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, nil)
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search inventory"})
			return
		}
		c.JSON(http.StatusOK, inventory)
	}
}

// CreateInventory は在庫を新規登録します
func CreateInventory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		logFields := []zap.Field{
			zap.String("handler", "CreateInventory"),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		}

		var input InventoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			logger.Logger.Error("リクエストのバインドに失敗しました",
				append(logFields, zap.Error(err))...)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
			return
		}

		// モデル名とストレージは在庫レコードの必須キー
		if input.ModelName == nil || *input.ModelName == "" || input.Storage == nil || *input.Storage == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "model_name and storage are required"})
			return
		}

		item := models.Inventory{
			UserID: input.UserID,
			Status: models.StatusOrdered,
		}
		applyInventoryInput(&item, &input)

		if err := db.Create(&item).Error; err != nil {
			logger.Logger.Error("在庫の登録に失敗しました",
				append(logFields, zap.Error(err))...)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create inventory"})
			return
		}

		logger.Logger.Info("在庫を登録しました",
			append(logFields,
				zap.Uint("inventory_id", item.ID),
				zap.String("model_name", item.ModelName))...)
		c.JSON(http.StatusCreated, item)
	}
}

// UpdateInventory は在庫を部分更新します
func UpdateInventory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		logFields := []zap.Field{
			zap.String("handler", "UpdateInventory"),
			zap.String("id", c.Param("id")),
		}

		var item models.Inventory
		if err := db.First(&item, c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Inventory not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
			return
		}

		var input InventoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			logger.Logger.Error("リクエストのバインドに失敗しました",
				append(logFields, zap.Error(err))...)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
			return
		}

		applyInventoryInput(&item, &input)

		if err := db.Save(&item).Error; err != nil {
			logger.Logger.Error("在庫の更新に失敗しました",
				append(logFields, zap.Error(err))...)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update inventory"})
			return
		}

		logger.Logger.Info("在庫を更新しました", logFields...)
		c.JSON(http.StatusOK, item)
	}
}

// DeleteInventory は在庫を削除します
func DeleteInventory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Inventory{}, c.Param("id"))
		if result.Error != nil {
			logger.Logger.Error("在庫の削除に失敗しました",
				zap.Error(result.Error),
				zap.String("id", c.Param("id")))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete inventory"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Inventory not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Inventory deleted"})
	}
}

// InventorySummary はダッシュボード用の集計です
func InventorySummary(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		type statusCount struct {
			Status string `json:"status"`
			Count  int64  `json:"count"`
		}
		var counts []statusCount
		if err := db.Model(&models.Inventory{}).
			Select("status, COUNT(*) AS count").
			Group("status").
			Scan(&counts).Error; err != nil {
			logger.Logger.Error("在庫集計の取得に失敗しました", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch summary"})
			return
		}

		type totals struct {
			TotalPurchase int64 `json:"total_purchase"`
			TotalExpected int64 `json:"total_expected"`
			TotalActual   int64 `json:"total_actual"`
		}
		var t totals
		if err := db.Model(&models.Inventory{}).
			Select("COALESCE(SUM(purchase_price),0) AS total_purchase, COALESCE(SUM(expected_price),0) AS total_expected, COALESCE(SUM(actual_price),0) AS total_actual").
			Scan(&t).Error; err != nil {
			logger.Logger.Error("金額集計の取得に失敗しました", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch summary"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"by_status": counts,
			"totals":    t,
		})
	}
}

// applyInventoryInput はnilでないフィールドだけをモデルへ反映します
func applyInventoryInput(item *models.Inventory, input *InventoryInput) {
	if input.OrderNumber != nil {
		item.OrderNumber = *input.OrderNumber
	}
	if input.Status != nil {
		item.Status = *input.Status
	}
	if input.ModelName != nil {
		item.ModelName = *input.ModelName
	}
	if input.Storage != nil {
		item.Storage = *input.Storage
	}
	if input.Color != nil {
		item.Color = *input.Color
	}
	if input.SerialNumber != nil {
		item.SerialNumber = *input.SerialNumber
	}
	if input.IMEI != nil {
		item.IMEI = *input.IMEI
	}
	if input.PurchasePrice != nil {
		item.PurchasePrice = *input.PurchasePrice
	}
	if input.ExpectedPrice != nil {
		item.ExpectedPrice = *input.ExpectedPrice
	}
	if input.ActualPrice != nil {
		item.ActualPrice = *input.ActualPrice
	}
	if input.OrderDate != nil {
		item.OrderDate = *input.OrderDate
	}
	if input.ExpectedDeliveryStart != nil {
		item.ExpectedDeliveryStart = *input.ExpectedDeliveryStart
	}
	if input.ExpectedDeliveryEnd != nil {
		item.ExpectedDeliveryEnd = *input.ExpectedDeliveryEnd
	}
	if input.Carrier != nil {
		item.Carrier = *input.Carrier
	}
	if input.TrackingNumber != nil {
		item.TrackingNumber = *input.TrackingNumber
	}
	if input.PaymentCard != nil {
		item.PaymentCard = *input.PaymentCard
	}
	if input.PurchaseSource != nil {
		item.PurchaseSource = *input.PurchaseSource
	}
	if input.SoldTo != nil {
		item.SoldTo = *input.SoldTo
	}
	if input.Notes != nil {
		item.Notes = *input.Notes
	}
	if input.PaymentMethodID != nil {
		item.PaymentMethodID = input.PaymentMethodID
	}
}
