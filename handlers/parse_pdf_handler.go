package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ponta-ta-taro/resale-tracker-sub000/logger"
	"github.com/ponta-ta-taro/resale-tracker-sub000/models"
	"github.com/ponta-ta-taro/resale-tracker-sub000/pdfparse"
)

// maxPDFSize はアップロードを受け付けるPDFの上限サイズです
const maxPDFSize = 20 << 20 // 20MB

// HandleParsePDF は納品書PDFのアップロードを受け、注文番号とシリアル番号を抽出します。
// 注文番号が取れた場合は該当する在庫レコードも併せて返します。
func HandleParsePDF(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		logFields := []zap.Field{
			zap.String("handler", "HandleParsePDF"),
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		if fileHeader.Size > maxPDFSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			logger.Logger.Error("アップロードファイルのオープンに失敗しました",
				append(logFields, zap.Error(err))...)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			logger.Logger.Error("アップロードファイルの読み取りに失敗しました",
				append(logFields, zap.Error(err))...)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
			return
		}

		logFields = append(logFields,
			zap.String("filename", fileHeader.Filename),
			zap.Int("size", len(data)))

		result := pdfparse.Parse(data)
		if !result.Success {
			logger.Logger.Warn("PDFの解析に失敗しました",
				append(logFields, zap.String("parse_error", result.Error))...)
			// 解析失敗はリクエスト自体のエラーではない（呼び出し側が手入力へ誘導する）
			c.JSON(http.StatusOK, gin.H{"result": result})
			return
		}

		logger.Logger.Info("PDFを解析しました",
			append(logFields,
				zap.String("order_number", result.OrderNumber),
				zap.String("serial_number", result.SerialNumber))...)

		response := gin.H{"result": gin.H{
			"orderNumber":  result.OrderNumber,
			"serialNumber": result.SerialNumber,
			"success":      true,
		}}

		if result.OrderNumber != "" {
			inventory, err := models.FindInventoryByOrderNumber(db, result.OrderNumber)
			if err == nil {
				response["inventory"] = inventory
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search inventory"})
				return
			}
		}

		c.JSON(http.StatusOK, response)
	}
}
