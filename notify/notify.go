// Package notify は配達完了などのイベントをユーザーへメールで知らせます。
// SENDGRID_API_KEYが未設定の環境では送信せずにスキップします（ローカル開発用）。
package notify

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/ponta-ta-taro/resale-tracker-sub000/logger"
)

// SendDeliveryNotice は端末の配達完了をユーザーに通知します
func SendDeliveryNotice(toEmail, orderNumber, modelName string) error {
	logFields := []zap.Field{
		zap.String("email", toEmail),
		zap.String("order_number", orderNumber),
	}

	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		logger.Logger.Info("SENDGRID_API_KEYが未設定のため通知をスキップします", logFields...)
		return nil
	}

	from := mail.NewEmail(os.Getenv("EMAIL_FROM_NAME"), os.Getenv("EMAIL_FROM_ADDRESS"))
	to := mail.NewEmail("", toEmail)
	subject := "端末が到着しました"

	plainTextContent := fmt.Sprintf(`ご注文の端末が配達されました。

注文番号: %s
モデル: %s

在庫一覧から検品とシリアル番号の登録を行ってください。`, orderNumber, modelName)

	htmlContent := fmt.Sprintf(`<p>ご注文の端末が配達されました。</p>
<p>注文番号: %s<br>モデル: %s</p>
<p>在庫一覧から検品とシリアル番号の登録を行ってください。</p>`, orderNumber, modelName)

	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
	client := sendgrid.NewSendClient(apiKey)

	response, err := client.Send(message)
	if err != nil {
		logger.Logger.Error("通知メールの送信に失敗しました",
			append(logFields, zap.Error(err))...)
		return err
	}

	if response.StatusCode >= 300 {
		logger.Logger.Error("SendGridからエラーレスポンスを受信しました",
			append(logFields,
				zap.Int("status_code", response.StatusCode),
				zap.String("response_body", response.Body))...)
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}

	logger.Logger.Info("配達完了通知を送信しました", logFields...)
	return nil
}
