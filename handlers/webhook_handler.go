package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ponta-ta-taro/resale-tracker-sub000/logger"
	"github.com/ponta-ta-taro/resale-tracker-sub000/mailparse/amazon"
	"github.com/ponta-ta-taro/resale-tracker-sub000/mailparse/apple"
	"github.com/ponta-ta-taro/resale-tracker-sub000/mailparse/jptime"
	"github.com/ponta-ta-taro/resale-tracker-sub000/mailparse/mailbody"
	"github.com/ponta-ta-taro/resale-tracker-sub000/models"
	"github.com/ponta-ta-taro/resale-tracker-sub000/notify"
)

// WebhookPayload はメール転送サービスから受け取るペイロードです
type WebhookPayload struct {
	From     string `json:"from" binding:"required"`
	To       string `json:"to"`
	Subject  string `json:"subject"`
	RawEmail string `json:"rawEmail"`
}

// HandleMailWebhook は受信メールを分類し、種別ごとの抽出処理へ振り分けます。
// 転送サービスのリトライを防ぐため、処理結果によらず常に200を返します。
func HandleMailWebhook(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		messageID := c.GetHeader("X-Message-ID")
		if messageID == "" {
			messageID = fmt.Sprintf("gen-%s", uuid.NewString())
		}

		logFields := []zap.Field{
			zap.String("handler", "HandleMailWebhook"),
			zap.String("message_id", messageID),
		}

		var payload WebhookPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			logger.Logger.Error("リクエストのバインドに失敗しました",
				append(logFields, zap.Error(err))...)
			c.JSON(http.StatusOK, gin.H{"success": false, "error": "invalid payload"})
			return
		}

		logFields = append(logFields,
			zap.String("from", payload.From),
			zap.String("subject", payload.Subject))
		logger.Logger.Info("メールWebhookを受信しました",
			append(logFields, zap.Int("raw_size", len(payload.RawEmail)))...)

		emailType, detail := routeEmail(db, payload)

		models.CreateEmailLog(db, &models.EmailLog{
			MessageID:   messageID,
			FromAddress: payload.From,
			ToAddress:   payload.To,
			Subject:     payload.Subject,
			EmailType:   emailType,
			Status:      detail.status,
			Detail:      detail.message,
		})

		logger.Logger.Info("メール処理が完了しました",
			append(logFields,
				zap.String("email_type", emailType),
				zap.String("status", detail.status))...)

		c.JSON(http.StatusOK, gin.H{
			"success":   detail.status != "error",
			"message":   "Email received",
			"emailType": emailType,
		})
	}
}

// processResult はメールログに残す処理結果です
type processResult struct {
	status  string // processed / skipped / error
	message string
}

func skipped(msg string) processResult   { return processResult{status: "skipped", message: msg} }
func processed(msg string) processResult { return processResult{status: "processed", message: msg} }
func failed(msg string) processResult    { return processResult{status: "error", message: msg} }

// routeEmail は送信元ドメインでベンダーを判定し、種別ごとの処理へ振り分けます
func routeEmail(db *gorm.DB, payload WebhookPayload) (string, processResult) {
	body := mailbody.ExtractBody([]byte(payload.RawEmail))

	if strings.Contains(strings.ToLower(payload.From), "amazon.co.jp") {
		emailType := amazon.DetectEmailType(payload.From, payload.Subject)
		return string(emailType), processAmazonEmail(db, emailType, payload, body)
	}

	emailType := apple.DetectEmailType(payload.Subject)
	return string(emailType), processAppleEmail(db, emailType, payload, body)
}

func processAppleEmail(db *gorm.DB, emailType apple.EmailType, payload WebhookPayload, body string) processResult {
	switch emailType {
	case apple.EmailTypeOrder:
		return processAppleOrder(db, payload.From, body)
	case apple.EmailTypeShipping:
		return processAppleShipping(db, body)
	default:
		return skipped("このメール種別は処理対象外です")
	}
}

func processAppleOrder(db *gorm.DB, fromEmail, body string) processResult {
	orders := apple.ParseOrderEmail(body)
	if len(orders) == 0 {
		return skipped("注文情報を抽出できませんでした")
	}

	userID, err := models.GetUserIDByContactEmail(db, fromEmail)
	if err != nil {
		return skipped("送信元に該当するユーザーがいません")
	}

	inserted := 0
	for i, order := range orders {
		exists, err := models.InventoryExists(db, order.OrderNumber, order.ModelName, order.Storage)
		if err != nil {
			return failed("在庫の重複チェックに失敗しました")
		}
		if exists {
			continue
		}

		inventory := models.Inventory{
			UserID:                userID,
			OrderNumber:           order.OrderNumber,
			ItemIndex:             i,
			Status:                models.StatusOrdered,
			ModelName:             apple.NormalizeModelName(order.ModelName),
			Storage:               order.Storage,
			Color:                 order.Color,
			PurchasePrice:         order.Price,
			ExpectedPrice:         order.Price,
			OrderDate:             jptime.FormatDateForInput(order.OrderDate),
			ExpectedDeliveryStart: jptime.FormatDateForInput(order.DeliveryStart),
			ExpectedDeliveryEnd:   jptime.FormatDateForInput(order.DeliveryEnd),
			PaymentCard:           order.PaymentCard,
			PurchaseSource:        "Apple Store",
		}
		if err := db.Create(&inventory).Error; err != nil {
			logger.Logger.Error("在庫の登録に失敗しました",
				zap.Error(err),
				zap.String("order_number", order.OrderNumber))
			return failed("在庫の登録に失敗しました")
		}
		inserted++
	}

	return processed(fmt.Sprintf("%d件の在庫を登録しました（%d件は重複スキップ）", inserted, len(orders)-inserted))
}

func processAppleShipping(db *gorm.DB, body string) processResult {
	info := apple.ParseShippingEmail(body)
	if info == nil {
		return skipped("出荷情報を抽出できませんでした")
	}

	inventory, err := models.FindInventoryByOrderNumber(db, info.OrderNumber)
	if err != nil {
		return skipped(fmt.Sprintf("注文番号 %s に該当する在庫がありません", info.OrderNumber))
	}

	if err := models.UpdateInventoryShipping(db, inventory.ID, info.Carrier, info.TrackingNumber); err != nil {
		return failed("出荷情報の更新に失敗しました")
	}
	return processed(fmt.Sprintf("注文 %s を出荷済みに更新しました", info.OrderNumber))
}

func processAmazonEmail(db *gorm.DB, emailType amazon.EmailType, payload WebhookPayload, body string) processResult {
	switch emailType {
	case amazon.EmailTypeOrder:
		return processAmazonOrder(db, payload.From, body)
	case amazon.EmailTypeShipped:
		return processAmazonShipping(db, body)
	case amazon.EmailTypeOutForDelivery, amazon.EmailTypeDelivered:
		return processAmazonDelivery(db, body, payload.Subject)
	default:
		return skipped("このメール種別は処理対象外です")
	}
}

func processAmazonOrder(db *gorm.DB, fromEmail, body string) processResult {
	order := amazon.ParseOrderEmail(body)
	if order == nil {
		return skipped("注文情報を抽出できませんでした")
	}

	userID, err := models.GetUserIDByContactEmail(db, fromEmail)
	if err != nil {
		return skipped("送信元に該当するユーザーがいません")
	}

	exists, err := models.InventoryExists(db, order.OrderNumber, order.ModelName, order.Storage)
	if err != nil {
		return failed("在庫の重複チェックに失敗しました")
	}
	if exists {
		return skipped(fmt.Sprintf("注文 %s は登録済みです", order.OrderNumber))
	}

	inventory := models.Inventory{
		UserID:                userID,
		OrderNumber:           order.OrderNumber,
		Status:                models.StatusOrdered,
		ModelName:             order.ModelName,
		Storage:               order.Storage,
		Color:                 order.Color,
		PurchasePrice:         order.Price,
		ExpectedPrice:         order.Price,
		ExpectedDeliveryStart: order.DeliveryStart,
		ExpectedDeliveryEnd:   order.DeliveryEnd,
		PurchaseSource:        "Amazon",
	}
	if err := db.Create(&inventory).Error; err != nil {
		logger.Logger.Error("在庫の登録に失敗しました",
			zap.Error(err),
			zap.String("order_number", order.OrderNumber))
		return failed("在庫の登録に失敗しました")
	}

	return processed(fmt.Sprintf("注文 %s を登録しました", order.OrderNumber))
}

func processAmazonShipping(db *gorm.DB, body string) processResult {
	info := amazon.ParseShippingEmail(body)
	if info == nil {
		return skipped("発送情報を抽出できませんでした")
	}

	inventory, err := models.FindInventoryByOrderNumber(db, info.OrderNumber)
	if err != nil {
		return skipped(fmt.Sprintf("注文番号 %s に該当する在庫がありません", info.OrderNumber))
	}

	if err := models.UpdateInventoryShipping(db, inventory.ID, info.Carrier, info.TrackingNumber); err != nil {
		return failed("発送情報の更新に失敗しました")
	}
	return processed(fmt.Sprintf("注文 %s を発送済みに更新しました", info.OrderNumber))
}

func processAmazonDelivery(db *gorm.DB, body, subject string) processResult {
	delivery := amazon.ParseDeliveryEmail(body, subject)
	if delivery == nil {
		return skipped("配達状況を抽出できませんでした")
	}

	inventory, err := models.FindInventoryByOrderNumber(db, delivery.OrderNumber)
	if err != nil {
		return skipped(fmt.Sprintf("注文番号 %s に該当する在庫がありません", delivery.OrderNumber))
	}

	status := models.StatusOutForDelivery
	if delivery.Status == amazon.StatusArrived {
		status = models.StatusDelivered
	}
	if err := models.UpdateInventoryStatus(db, inventory.ID, status); err != nil {
		return failed("ステータスの更新に失敗しました")
	}

	// 配達完了時はユーザーに検品を促す通知を送る（ベストエフォート）
	if status == models.StatusDelivered {
		var contact models.ContactEmail
		if err := db.Where("user_id = ?", inventory.UserID).First(&contact).Error; err == nil {
			if err := notify.SendDeliveryNotice(contact.Email, delivery.OrderNumber, inventory.ModelName); err != nil {
				logger.Logger.Warn("配達完了通知の送信に失敗しました",
					zap.Error(err),
					zap.String("order_number", delivery.OrderNumber))
			}
		}
	}

	return processed(fmt.Sprintf("注文 %s のステータスを %s に更新しました", delivery.OrderNumber, status))
}
