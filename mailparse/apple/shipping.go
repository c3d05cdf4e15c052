package apple

import (
	"regexp"
	"strings"

	"github.com/ponta-ta-taro/resale-tracker-sub000/mailparse/scan"
)

// 配送業者の正規化語彙
const (
	CarrierYamato    = "ヤマト運輸"
	CarrierSagawa    = "佐川急便"
	CarrierJapanPost = "日本郵便"
	CarrierOther     = "その他"
)

// trackingChain は追跡番号の抽出パターンです。
// 日本語ラベル → 英語ラベル → 12桁以上の数字列、の順で試します。
var trackingChain = scan.Chain{
	{Name: "labeled_ja", Re: regexp.MustCompile(`(?i)配送伝票番号[:\s：]+([A-Z0-9-]+)`), Group: 1},
	{Name: "labeled_en", Re: regexp.MustCompile(`(?i)Tracking\s+Number[:\s]+([A-Z0-9-]+)`), Group: 1},
	{Name: "bare_digits", Re: regexp.MustCompile(`(\d{12,})`), Group: 1},
}

// carrierLabelRe はブランド名が本文になかった場合のラベル付きフィールドです
var carrierLabelRe = regexp.MustCompile(`配送業者[:\s：]+([^\n\r]+)`)

// carrierNames は本文中のブランド名表記（和英）と正規化名の対応です。
// 先に並んだものが優先されます。
var carrierNames = []struct {
	keywords []string
	carrier  string
}{
	{[]string{"ヤマト運輸", "ヤマト", "クロネコ", "yamato"}, CarrierYamato},
	{[]string{"佐川急便", "佐川", "sagawa"}, CarrierSagawa},
	{[]string{"日本郵便", "ゆうパック", "japan post"}, CarrierJapanPost},
}

// ParseShippingEmail はApple出荷通知メールを解析します。
// 注文番号が見つからない場合はnilを返します（必須フィールド）。
func ParseShippingEmail(emailText string) *ShippingInfo {
	text := unwrapForwarded(emailText)

	orderNumber := firstGroup(orderNumberRe, text)
	if orderNumber == "" {
		return nil
	}

	return &ShippingInfo{
		OrderNumber:    orderNumber,
		Carrier:        extractCarrier(text),
		TrackingNumber: trackingChain.FirstValue(text),
	}
}

// extractCarrier は既知ブランド名の出現を先にチェックし、
// なければラベル付きフィールドの値を正規化します。どちらも該当しなければ「その他」です。
func extractCarrier(text string) string {
	if c, ok := normalizeCarrier(text); ok {
		return c
	}
	if m := carrierLabelRe.FindStringSubmatch(text); m != nil {
		if c, ok := normalizeCarrier(m[1]); ok {
			return c
		}
	}
	return CarrierOther
}

func normalizeCarrier(s string) (string, bool) {
	lower := strings.ToLower(s)
	for _, entry := range carrierNames {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return entry.carrier, true
			}
		}
	}
	return "", false
}
