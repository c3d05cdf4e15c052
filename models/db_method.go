package models

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ponta-ta-taro/resale-tracker-sub000/logger"
)

// GetUserIDByContactEmail は送信元メールアドレスからユーザーを逆引きします
func GetUserIDByContactEmail(db *gorm.DB, email string) (uint, error) {
	var contact ContactEmail
	if err := db.Where("email = ?", email).First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Logger.Warn("連絡先メールアドレスに該当するユーザーが見つかりません",
				zap.String("email", email),
			)
		} else {
			logger.Logger.Error("連絡先メールアドレスの検索に失敗しました",
				zap.Error(err),
				zap.String("email", email),
			)
		}
		return 0, err
	}
	return contact.UserID, nil
}

// InventoryExists は注文番号＋モデル名＋ストレージで重複登録を判定します
func InventoryExists(db *gorm.DB, orderNumber, modelName, storage string) (bool, error) {
	var count int64
	err := db.Model(&Inventory{}).
		Where("order_number = ? AND model_name = ? AND storage = ?", orderNumber, modelName, storage).
		Count(&count).Error
	if err != nil {
		logger.Logger.Error("在庫の重複チェックに失敗しました",
			zap.Error(err),
			zap.String("order_number", orderNumber),
		)
		return false, err
	}
	return count > 0, nil
}

// FindInventoryByOrderNumber は注文番号で在庫を検索します
func FindInventoryByOrderNumber(db *gorm.DB, orderNumber string) (*Inventory, error) {
	var inventory Inventory
	if err := db.Where("order_number = ?", orderNumber).First(&inventory).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Logger.Error("在庫の検索に失敗しました",
				zap.Error(err),
				zap.String("order_number", orderNumber),
			)
		}
		return nil, err
	}
	return &inventory, nil
}

// UpdateInventoryShipping は出荷通知の内容で在庫を更新します
func UpdateInventoryShipping(db *gorm.DB, id uint, carrier, trackingNumber string) error {
	updates := map[string]interface{}{
		"status":          StatusShipped,
		"carrier":         carrier,
		"tracking_number": trackingNumber,
	}
	if err := db.Model(&Inventory{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		logger.Logger.Error("出荷情報の更新に失敗しました",
			zap.Error(err),
			zap.Uint("inventory_id", id),
		)
		return err
	}

	logger.Logger.Info("出荷情報を更新しました",
		zap.Uint("inventory_id", id),
		zap.String("carrier", carrier),
		zap.String("tracking_number", trackingNumber),
	)
	return nil
}

// UpdateInventoryStatus は在庫のステータスだけを更新します
func UpdateInventoryStatus(db *gorm.DB, id uint, status string) error {
	if err := db.Model(&Inventory{}).Where("id = ?", id).Update("status", status).Error; err != nil {
		logger.Logger.Error("ステータスの更新に失敗しました",
			zap.Error(err),
			zap.Uint("inventory_id", id),
			zap.String("status", status),
		)
		return err
	}

	logger.Logger.Info("ステータスを更新しました",
		zap.Uint("inventory_id", id),
		zap.String("status", status),
	)
	return nil
}

// CreateEmailLog はメール処理結果を記録します。
// ログ記録の失敗でWebhook処理全体を止めないよう、エラーはログ出力に留めます。
func CreateEmailLog(db *gorm.DB, emailLog *EmailLog) {
	if err := db.Create(emailLog).Error; err != nil {
		logger.Logger.Error("メールログの保存に失敗しました",
			zap.Error(err),
			zap.String("message_id", emailLog.MessageID),
			zap.String("email_type", emailLog.EmailType),
		)
	}
}

// LatestPrices はモデル名＋ストレージごとの最新の買取価格を返します
func LatestPrices(db *gorm.DB) ([]PriceHistory, error) {
	var prices []PriceHistory
	err := db.Raw(`
		SELECT DISTINCT ON (model_name, storage) *
		FROM price_histories
		ORDER BY model_name, storage, captured_at DESC
	`).Scan(&prices).Error
	if err != nil {
		logger.Logger.Error("最新価格の取得に失敗しました", zap.Error(err))
		return nil, err
	}
	return prices, nil
}
