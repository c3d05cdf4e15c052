package amazon

import (
	"regexp"
	"strings"
)

// AmazonCarrier は発送通知の配送業者です。Amazonは自社配送の前提です。
const AmazonCarrier = "Amazon"

// 追跡リンクのURLパラメータ: shipmentId=ABC123
var shipmentIDRe = regexp.MustCompile(`(?i)shipmentId=([A-Z0-9]+)`)

// ParseShippingEmail はAmazon発送通知メールを解析します。
// 注文番号が見つからない場合はnilを返します。
func ParseShippingEmail(emailText string) *ShippingInfo {
	m := orderNumberRe.FindStringSubmatch(emailText)
	if m == nil {
		return nil
	}

	info := &ShippingInfo{
		OrderNumber: m[1],
		Carrier:     AmazonCarrier,
	}

	if tm := shipmentIDRe.FindStringSubmatch(emailText); tm != nil {
		info.TrackingNumber = tm[1]
	}

	return info
}

// ParseDeliveryEmail は配達状況メールを解析します。
// 注文番号は件名を優先し、なければ本文から探します。
// ステータスは件名に配達中の表記がある場合のみout_for_delivery、それ以外はarrivedです。
func ParseDeliveryEmail(emailText, subject string) *DeliveryStatus {
	orderNumber := ""
	if m := orderNumberRe.FindStringSubmatch(subject); m != nil {
		orderNumber = m[1]
	} else if m := orderNumberRe.FindStringSubmatch(emailText); m != nil {
		orderNumber = m[1]
	}

	if orderNumber == "" {
		return nil
	}

	status := StatusArrived
	if strings.Contains(subject, "配達中") || strings.Contains(strings.ToLower(subject), "out for delivery") {
		status = StatusOutForDelivery
	}

	return &DeliveryStatus{
		OrderNumber: orderNumber,
		Status:      status,
	}
}
