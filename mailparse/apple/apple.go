// Package apple はApple Storeの取引メール（注文確認・出荷通知）から
// 構造化データを抽出します。抽出はすべて正規表現ベースのヒューリスティックで、
// 必須フィールドが見つからない場合は例外ではなく nil / 空スライスを返します。
package apple

import "strings"

// EmailType はApple関連メールの分類結果です
type EmailType string

const (
	EmailTypeOrder    EmailType = "order"
	EmailTypeShipping EmailType = "shipping"
	EmailTypeBilling  EmailType = "billing"
	EmailTypeSurvey   EmailType = "survey"
	EmailTypeUnknown  EmailType = "unknown"
)

// ParsedOrder は注文確認メールから抽出した1商品分のデータです。
// 1通のメールに複数商品が含まれる場合、注文番号などの共通項目を
// 共有した複数レコードになります。
type ParsedOrder struct {
	OrderNumber   string `json:"orderNumber"`
	OrderDate     string `json:"orderDate"`
	ModelName     string `json:"modelName"`
	Storage       string `json:"storage"`
	Color         string `json:"color"`
	Price         int    `json:"price"`
	DeliveryStart string `json:"deliveryStart"`
	DeliveryEnd   string `json:"deliveryEnd"`
	PaymentCard   string `json:"paymentCard"`
}

// ShippingInfo は出荷通知メールから抽出したデータです
type ShippingInfo struct {
	OrderNumber    string `json:"orderNumber"`
	Carrier        string `json:"carrier"`
	TrackingNumber string `json:"trackingNumber"`
}

// DetectEmailType は件名からメール種別を判定します。
// 判定は先頭から順に行い、最初に一致したカテゴリで確定します
// （フレーズ同士の排他性は保証されていないため、この順序に意味があります）。
// どの入力に対しても必ずいずれかの種別を返し、パニックしません。
func DetectEmailType(subject string) EmailType {
	switch {
	case strings.Contains(subject, "ご注文の確認") || strings.Contains(subject, "ご注文ありがとうございます"):
		return EmailTypeOrder
	case strings.Contains(subject, "お届け予定日") || strings.Contains(subject, "発送のお知らせ") || strings.Contains(subject, "配送中"):
		return EmailTypeShipping
	case strings.Contains(subject, "請求金額"):
		return EmailTypeBilling
	case strings.Contains(subject, "体験はいかがでしたか"):
		return EmailTypeSurvey
	default:
		return EmailTypeUnknown
	}
}

// NormalizeModelName はモデル名を標準表記に揃えます
func NormalizeModelName(modelName string) string {
	normalized := strings.Join(strings.Fields(modelName), " ")

	lower := strings.ToLower(normalized)
	switch {
	case strings.Contains(lower, "iphone 17 pro max"):
		return "iPhone 17 Pro Max"
	case strings.Contains(lower, "iphone 17 pro"):
		return "iPhone 17 Pro"
	case strings.Contains(lower, "iphone air"), strings.Contains(lower, "iphone 17 air"):
		return "iPhone Air"
	case strings.Contains(lower, "iphone 17"):
		return "iPhone 17"
	}

	return normalized
}

// forwardedMarkers は転送メールの引用ラッパーを検出するための開始マーカーです。
// マーカーが見つかった場合、それ以降の本文だけを解析対象にします。
var forwardedMarkers = []string{
	"---------- Forwarded message ---------",
	"Begin forwarded message:",
}

func unwrapForwarded(text string) string {
	for _, marker := range forwardedMarkers {
		if idx := strings.Index(text, marker); idx >= 0 {
			return text[idx+len(marker):]
		}
	}
	return text
}
