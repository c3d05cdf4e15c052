package amazon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderEmailAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.Local)
	emailText := "注文番号: 249-1234567-1234567\n" +
		"Apple iPhone 17 Pro 256GB コズミックオレンジ SIMフリー\n" +
		"注文合計: 179,800 円\n" +
		"お届け予定: 明日8:00 午前～12:00 午後\n"

	order := ParseOrderEmailAt(emailText, now)
	require.NotNil(t, order)
	assert.Equal(t, "249-1234567-1234567", order.OrderNumber)
	assert.Equal(t, "iPhone 17 Pro", order.ModelName)
	assert.Equal(t, "256GB", order.Storage)
	assert.Equal(t, "コズミックオレンジ", order.Color)
	assert.Equal(t, 179800, order.Price)
	assert.Equal(t, "2025-06-02T08:00:00", order.DeliveryStart)
	assert.Equal(t, "2025-06-02T12:00:00", order.DeliveryEnd)
}

func TestParseOrderEmailAt_DeliveryWindowTomorrow(t *testing.T) {
	now := time.Date(2025, 6, 1, 22, 30, 0, 0, time.Local)
	emailText := "注文番号: 250-7654321-7654321\n" +
		"iPhone 17 128GB\n" +
		"お届け予定: 明日5:00 午前～11:59 午前\n"

	order := ParseOrderEmailAt(emailText, now)
	require.NotNil(t, order)
	assert.Equal(t, "2025-06-02T05:00:00", order.DeliveryStart)
	assert.Equal(t, "2025-06-02T11:59:00", order.DeliveryEnd)
}

func TestParseOrderEmailAt_ExplicitDate(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.Local)
	emailText := "注文番号: 250-7654321-7654321\n" +
		"iPhone 17 256GB\n" +
		"2025/6/10 9:00 午前〜9:00 午後の間にお届けします\n"

	order := ParseOrderEmailAt(emailText, now)
	require.NotNil(t, order)
	assert.Equal(t, "2025-06-10T09:00:00", order.DeliveryStart)
	assert.Equal(t, "2025-06-10T21:00:00", order.DeliveryEnd)
}

func TestExtractPrice_MaxOfAmounts(t *testing.T) {
	// 小さい金額（単価・ポイント）が先に並んでも最大値を採用する
	text := "ポイント利用: 1,500 円\n" +
		"商品の小計: 89,900 円\n" +
		"注文合計: 179,800 円\n"
	assert.Equal(t, 179800, extractPrice(text))
}

func TestExtractPrice_AmountParamWins(t *testing.T) {
	text := "https://www.amazon.co.jp/pay?amount=164800\n" +
		"注文合計: 179,800 円\n"
	assert.Equal(t, 164800, extractPrice(text))
}

func TestExtractPrice_NoAmount(t *testing.T) {
	assert.Equal(t, 0, extractPrice("金額の記載のない本文"))
}

func TestParseOrderEmailAt_MissingRequiredFields(t *testing.T) {
	now := time.Now()

	// 注文番号なし
	assert.Nil(t, ParseOrderEmailAt("Apple iPhone 17 Pro 256GB\n", now))

	// 商品なし
	assert.Nil(t, ParseOrderEmailAt("注文番号: 249-1234567-1234567\nEcho Dot 第5世代\n", now))
}

func TestParseShippingEmail(t *testing.T) {
	emailText := "注文番号: 249-1234567-1234567\n" +
		"荷物の追跡: https://www.amazon.co.jp/progress-tracker?shipmentId=DXK8L2M9N\n"

	info := ParseShippingEmail(emailText)
	require.NotNil(t, info)
	assert.Equal(t, "249-1234567-1234567", info.OrderNumber)
	assert.Equal(t, AmazonCarrier, info.Carrier)
	assert.Equal(t, "DXK8L2M9N", info.TrackingNumber)
}

func TestParseShippingEmail_NoShipmentID(t *testing.T) {
	info := ParseShippingEmail("注文番号: 249-1234567-1234567\n発送済みです\n")
	require.NotNil(t, info)
	assert.Equal(t, AmazonCarrier, info.Carrier)
	assert.Empty(t, info.TrackingNumber)
}

func TestParseShippingEmail_MissingOrderNumber(t *testing.T) {
	assert.Nil(t, ParseShippingEmail("発送済みです\n"))
}

func TestParseDeliveryEmail(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		subject string
		status  string
	}{
		{
			name:    "件名に配達中",
			body:    "本文に注文番号なし",
			subject: "Amazon.co.jp 配達中: 249-1234567-1234567",
			status:  StatusOutForDelivery,
		},
		{
			name:    "配達済み",
			body:    "ご注文 249-1234567-1234567 をお届けしました",
			subject: "Amazon.co.jp 配達済み",
			status:  StatusArrived,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := ParseDeliveryEmail(tt.body, tt.subject)
			require.NotNil(t, ds)
			assert.Equal(t, "249-1234567-1234567", ds.OrderNumber)
			assert.Equal(t, tt.status, ds.Status)
		})
	}
}

func TestParseDeliveryEmail_MissingOrderNumber(t *testing.T) {
	assert.Nil(t, ParseDeliveryEmail("本文", "件名"))
}

func TestDetectEmailType(t *testing.T) {
	tests := []struct {
		from    string
		subject string
		want    EmailType
	}{
		{"auto-confirm@amazon.co.jp", "Amazon.co.jpでのご注文", EmailTypeOrder},
		{"shipment-tracking@amazon.co.jp", "発送済み: iPhone 17 Pro", EmailTypeShipped},
		{"shipment-tracking@amazon.co.jp", "配達中: iPhone 17 Pro", EmailTypeOutForDelivery},
		{"shipment-tracking@amazon.co.jp", "配達済み: iPhone 17 Pro", EmailTypeDelivered},
		{"shipment-tracking@amazon.co.jp", "お荷物について", EmailTypeShipped},
		{"order-update@amazon.co.jp", "お届けしました", EmailTypeDelivered},
		{"someone@example.com", "注文済み", EmailTypeOrder},
		{"someone@example.com", "発送済み", EmailTypeShipped},
		{"someone@example.com", "配達中", EmailTypeOutForDelivery},
		{"someone@example.com", "配達済み", EmailTypeDelivered},
		{"someone@example.com", "こんにちは", EmailTypeUnknown},
		{"", "", EmailTypeUnknown},
	}

	for _, tt := range tests {
		got := DetectEmailType(tt.from, tt.subject)
		assert.Equal(t, tt.want, got, "from=%q subject=%q", tt.from, tt.subject)
	}
}
