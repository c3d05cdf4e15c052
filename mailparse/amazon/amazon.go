// Package amazon はAmazon.co.jpの取引メール（注文確認・発送通知・配達状況）から
// 構造化データを抽出します。Appleと異なり、Amazonの注文確認は1通1商品の前提です。
package amazon

import "strings"

// EmailType はAmazon関連メールの分類結果です
type EmailType string

const (
	EmailTypeOrder          EmailType = "amazon_order"
	EmailTypeShipped        EmailType = "amazon_shipped"
	EmailTypeOutForDelivery EmailType = "amazon_out_for_delivery"
	EmailTypeDelivered      EmailType = "amazon_delivered"
	EmailTypeUnknown        EmailType = "unknown"
)

// DeliveryStatus の取りうる値
const (
	StatusOutForDelivery = "out_for_delivery"
	StatusArrived        = "arrived"
)

// ParsedOrder は注文確認メールから抽出したデータです。
// 配達予定はローカル日時のISO形式文字列（時刻つき）です。
type ParsedOrder struct {
	OrderNumber   string `json:"orderNumber"`
	ModelName     string `json:"modelName"`
	Storage       string `json:"storage"`
	Color         string `json:"color"`
	Price         int    `json:"price"`
	DeliveryStart string `json:"deliveryStart"`
	DeliveryEnd   string `json:"deliveryEnd"`
}

// ShippingInfo は発送通知メールから抽出したデータです
type ShippingInfo struct {
	OrderNumber    string `json:"orderNumber"`
	Carrier        string `json:"carrier"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
}

// DeliveryStatus は配達状況メールの分類結果です
type DeliveryStatus struct {
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
}

// DetectEmailType は送信元アドレスを優先してメール種別を判定します。
// 送信元が既知のアドレスに一致しない場合は件名のフレーズで判定します。
// どの入力に対しても必ずいずれかの種別を返します。
func DetectEmailType(from, subject string) EmailType {
	fromLower := strings.ToLower(from)
	subjectLower := strings.ToLower(subject)

	if strings.Contains(fromLower, "auto-confirm@amazon.co.jp") {
		return EmailTypeOrder
	}

	if strings.Contains(fromLower, "shipment-tracking@amazon.co.jp") {
		// 発送済みと配達中は件名で区別する
		switch {
		case strings.Contains(subjectLower, "配達中") || strings.Contains(subjectLower, "out for delivery"):
			return EmailTypeOutForDelivery
		case strings.Contains(subjectLower, "発送済み") || strings.Contains(subjectLower, "shipped"):
			return EmailTypeShipped
		case strings.Contains(subjectLower, "配達済み") || strings.Contains(subjectLower, "delivered"):
			return EmailTypeDelivered
		}
		return EmailTypeShipped
	}

	if strings.Contains(fromLower, "order-update@amazon.co.jp") {
		return EmailTypeDelivered
	}

	// 送信元で判定できない場合の件名フォールバック
	switch {
	case strings.Contains(subjectLower, "注文済み"):
		return EmailTypeOrder
	case strings.Contains(subjectLower, "発送済み"):
		return EmailTypeShipped
	case strings.Contains(subjectLower, "配達中"):
		return EmailTypeOutForDelivery
	case strings.Contains(subjectLower, "配達済み"):
		return EmailTypeDelivered
	}

	return EmailTypeUnknown
}
