package apple

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderEmail(t *testing.T) {
	emailText := "ご注文番号: W1515122271\n" +
		"ご注文日 : 2026/01/10\n" +
		"iPhone 17 Pro 256GB コズミックオレンジ ¥179,800円\n" +
		"2026/01/12 – 2026/01/14\n" +
		"Mastercard\n"

	orders := ParseOrderEmail(emailText)
	require.Len(t, orders, 1)

	order := orders[0]
	assert.Equal(t, "W1515122271", order.OrderNumber)
	assert.Equal(t, "2026/01/10", order.OrderDate)
	assert.Equal(t, "iPhone 17 Pro", order.ModelName)
	assert.Equal(t, "256GB", order.Storage)
	assert.Equal(t, "コズミックオレンジ", order.Color)
	assert.Equal(t, 179800, order.Price)
	assert.Equal(t, "2026/01/12", order.DeliveryStart)
	assert.Equal(t, "2026/01/14", order.DeliveryEnd)
	assert.Equal(t, "Mastercard", order.PaymentCard)
}

func TestParseOrderEmail_MultipleProducts(t *testing.T) {
	emailText := "ご注文番号: W2000000001\n" +
		"ご注文日: 2026/02/01\n" +
		"iPhone 17 Pro Max 512GB シルバー ¥229,800円\n" +
		"お届け予定日\n" +
		"iPhone 17 256GB ブラック ¥129,800円\n" +
		"Visa\n"

	orders := ParseOrderEmail(emailText)
	require.Len(t, orders, 2)

	assert.Equal(t, "iPhone 17 Pro Max", orders[0].ModelName)
	assert.Equal(t, "512GB", orders[0].Storage)
	assert.Equal(t, 229800, orders[0].Price)

	assert.Equal(t, "iPhone 17", orders[1].ModelName)
	assert.Equal(t, "256GB", orders[1].Storage)
	assert.Equal(t, 129800, orders[1].Price)

	// 共通項目は全レコードで共有される
	for _, order := range orders {
		assert.Equal(t, "W2000000001", order.OrderNumber)
		assert.Equal(t, "2026/02/01", order.OrderDate)
		assert.Equal(t, "Visa", order.PaymentCard)
	}
}

func TestParseOrderEmail_FullWidthColon(t *testing.T) {
	emailText := "ご注文番号：W1234567890\n" +
		"ご注文日：2026/03/05\n" +
		"iPhone 17 128GB ホワイト ¥119,800円\n"

	orders := ParseOrderEmail(emailText)
	require.Len(t, orders, 1)
	assert.Equal(t, "W1234567890", orders[0].OrderNumber)
	assert.Equal(t, "2026/03/05", orders[0].OrderDate)
}

func TestParseOrderEmail_SingleDeliveryDate(t *testing.T) {
	emailText := "ご注文番号: W3000000003\n" +
		"ご注文日: 2026/01/10\n" +
		"お届け日: 2026/01/14\n" +
		"iPhone 17 256GB ブルー ¥129,800円\n"

	orders := ParseOrderEmail(emailText)
	require.Len(t, orders, 1)

	// 単独日付は開始・終了の両方に入る。注文日の行は拾わない
	assert.Equal(t, "2026/01/14", orders[0].DeliveryStart)
	assert.Equal(t, "2026/01/14", orders[0].DeliveryEnd)
}

func TestParseOrderEmail_IPhoneAirNotMatched(t *testing.T) {
	emailText := "ご注文番号: W4000000004\n" +
		"iPhone Air 256GB スカイブルー ¥159,800円\n"

	orders := ParseOrderEmail(emailText)
	assert.Empty(t, orders)
}

func TestParseOrderEmail_IPhone17Air(t *testing.T) {
	emailText := "ご注文番号: W5000000005\n" +
		"iPhone 17 Air 256GB スカイブルー ¥159,800円\n"

	orders := ParseOrderEmail(emailText)
	require.Len(t, orders, 1)
	assert.Equal(t, "iPhone 17 Air", orders[0].ModelName)
}

func TestParseOrderEmail_NoProduct(t *testing.T) {
	orders := ParseOrderEmail("ご注文番号: W6000000006\nMacBook Pro 14インチ ¥328,800円\n")
	assert.Empty(t, orders)
}

func TestParseOrderEmail_MissingPrice(t *testing.T) {
	emailText := "ご注文番号: W7000000007\n" +
		"iPhone 17 Pro 256GB ブラック\n"

	orders := ParseOrderEmail(emailText)
	require.Len(t, orders, 1)
	assert.Equal(t, 0, orders[0].Price)
}

func TestParseOrderEmail_Forwarded(t *testing.T) {
	emailText := "ちょっと確認お願いします\n" +
		"---------- Forwarded message ---------\n" +
		"ご注文番号: W1515122271\n" +
		"ご注文日: 2026/01/10\n" +
		"iPhone 17 Pro 256GB コズミックオレンジ ¥179,800円\n"

	orders := ParseOrderEmail(emailText)
	require.Len(t, orders, 1)
	assert.Equal(t, "W1515122271", orders[0].OrderNumber)
}

func TestParseShippingEmail(t *testing.T) {
	emailText := "ご注文番号: W1515122271\n" +
		"配送業者: ヤマト運輸\n" +
		"配送伝票番号: 123456789012\n"

	info := ParseShippingEmail(emailText)
	require.NotNil(t, info)
	assert.Equal(t, "W1515122271", info.OrderNumber)
	assert.Equal(t, CarrierYamato, info.Carrier)
	assert.Equal(t, "123456789012", info.TrackingNumber)
}

func TestParseShippingEmail_TrackingFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		tracking string
	}{
		{
			name:     "英語ラベル",
			body:     "ご注文番号: W1\nTracking Number: AB-1234-5678\n",
			tracking: "AB-1234-5678",
		},
		{
			name:     "ラベルなしの数字列",
			body:     "ご注文番号: W1\nお問い合わせは 458712345678 まで\n",
			tracking: "458712345678",
		},
		{
			name:     "追跡番号なし",
			body:     "ご注文番号: W1\n商品が出荷されました\n",
			tracking: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseShippingEmail(tt.body)
			require.NotNil(t, info)
			assert.Equal(t, tt.tracking, info.TrackingNumber)
		})
	}
}

func TestParseShippingEmail_CarrierNormalization(t *testing.T) {
	tests := []struct {
		body    string
		carrier string
	}{
		{"ご注文番号: W1\nクロネコヤマトがお届けします\n", CarrierYamato},
		{"ご注文番号: W1\n佐川急便がお届けします\n", CarrierSagawa},
		{"ご注文番号: W1\nゆうパックでのお届けです\n", CarrierJapanPost},
		{"ご注文番号: W1\n配送業者: Sagawa Express\n", CarrierSagawa},
		{"ご注文番号: W1\n配送業者: 西濃運輸\n", CarrierOther},
		{"ご注文番号: W1\n商品が出荷されました\n", CarrierOther},
	}

	for _, tt := range tests {
		info := ParseShippingEmail(tt.body)
		require.NotNil(t, info)
		assert.Equal(t, tt.carrier, info.Carrier, "body: %s", tt.body)
	}
}

func TestParseShippingEmail_MissingOrderNumber(t *testing.T) {
	info := ParseShippingEmail("配送伝票番号: 123456789012\n")
	assert.Nil(t, info)
}

func TestDetectEmailType(t *testing.T) {
	tests := []struct {
		subject string
		want    EmailType
	}{
		{"ご注文の確認", EmailTypeOrder},
		{"Apple - ご注文ありがとうございます", EmailTypeOrder},
		{"お届け予定日のお知らせ", EmailTypeShipping},
		{"発送のお知らせ", EmailTypeShipping},
		{"ご注文商品は配送中です", EmailTypeShipping},
		{"今月のご請求金額のご案内", EmailTypeBilling},
		{"Apple Storeでの体験はいかがでしたか", EmailTypeSurvey},
		{"重要なお知らせ", EmailTypeUnknown},
		{"", EmailTypeUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectEmailType(tt.subject), "subject: %q", tt.subject)
	}
}

func TestNormalizeModelName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"iphone 17 pro max", "iPhone 17 Pro Max"},
		{"iPhone  17  Pro", "iPhone 17 Pro"},
		{"IPHONE 17", "iPhone 17"},
		{"iPhone Air", "iPhone Air"},
		{"iPhone 17 Air", "iPhone Air"},
		{"Galaxy S25", "Galaxy S25"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeModelName(tt.in))
	}
}
