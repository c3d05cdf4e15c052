package apple

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// ご注文番号: W1515122271（コロンは半角・全角どちらも可）
	orderNumberRe = regexp.MustCompile(`(?i)ご注文番号[:\s：]+([A-Z0-9]+)`)

	// ご注文日 : 2026/01/10
	orderDateRe = regexp.MustCompile(`ご注文日[:\s：]+(\d{4}/\d{1,2}/\d{1,2})`)

	// お届け予定のレンジ: 2026/01/12 – 2026/01/14
	// レンジの方が具体的なので、単独日付より先に試します
	deliveryRangeRe = regexp.MustCompile(`(\d{4}/\d{1,2}/\d{1,2})\s*[–-]\s*(\d{4}/\d{1,2}/\d{1,2})`)

	// 単独のお届け予定日: 「…日: 2026/01/14」
	// 「ご注文日」の行も「日」で終わるため、先頭グループで拾って除外します
	deliverySingleRe = regexp.MustCompile(`(注文)?日[:\s：]*(\d{4}/\d{1,2}/\d{1,2})`)

	// 支払いカードのブランド名
	paymentCardRe = regexp.MustCompile(`(?i)(Mastercard|Visa|JCB|American Express)`)

	// 商品行: iPhone 17 Pro 256GB コズミックオレンジ
	// リテラルの「17」が必須のため、「iPhone Air」単独の行はマッチしません。
	// 元システムと同じ挙動を保っています（変更すると既存の重複判定キーがずれる）。
	// カラーは次の通貨記号・配送系キーワード・行末の直前までです。
	productRe = regexp.MustCompile(`(?i)(iPhone\s+17(?:\s+Pro(?:\s+Max)?|\s+Air)?)\s+(\d+(?:GB|TB))\s+([^\n\r¥]+?)(?:\s*¥|\s*お届け|\s*配送|[\n\r]|$)`)

	// 商品の直後に現れる価格: ¥179,800円
	priceRe = regexp.MustCompile(`¥?([\d,]+)円`)
)

// priceWindowRunes は商品マッチ位置から価格を探す範囲（文字数）です
const priceWindowRunes = 500

// ParseOrderEmail はApple注文確認メールを解析し、商品ごとのレコードを返します。
// 商品が1つも見つからない場合は空スライスを返します（エラーにはなりません）。
func ParseOrderEmail(emailText string) []ParsedOrder {
	text := unwrapForwarded(emailText)

	orderNumber := firstGroup(orderNumberRe, text)
	orderDate := firstGroup(orderDateRe, text)

	deliveryStart, deliveryEnd := extractDeliveryWindow(text)
	paymentCard := firstGroup(paymentCardRe, text)

	orders := []ParsedOrder{}
	for _, m := range productRe.FindAllStringSubmatchIndex(text, -1) {
		modelName := strings.TrimSpace(text[m[2]:m[3]])
		storage := text[m[4]:m[5]]
		color := strings.TrimSpace(text[m[6]:m[7]])

		orders = append(orders, ParsedOrder{
			OrderNumber:   orderNumber,
			OrderDate:     orderDate,
			ModelName:     modelName,
			Storage:       storage,
			Color:         color,
			Price:         findNearbyPrice(text, m[0]),
			DeliveryStart: deliveryStart,
			DeliveryEnd:   deliveryEnd,
			PaymentCard:   paymentCard,
		})
	}

	return orders
}

// extractDeliveryWindow はお届け予定をレンジ優先で抽出します。
// レンジがなければ単独日付を開始・終了の両方に使い、どちらもなければ空のままです。
func extractDeliveryWindow(text string) (string, string) {
	if m := deliveryRangeRe.FindStringSubmatch(text); m != nil {
		return m[1], m[2]
	}
	for _, m := range deliverySingleRe.FindAllStringSubmatch(text, -1) {
		if m[1] != "" {
			continue
		}
		return m[2], m[2]
	}
	return "", ""
}

// findNearbyPrice は商品マッチ位置以降の一定範囲から価格を探します。
// 見つからない場合は0を返します（0円は呼び出し側で「未取得」として扱われます）。
func findNearbyPrice(text string, start int) int {
	window := []rune(text[start:])
	if len(window) > priceWindowRunes {
		window = window[:priceWindowRunes]
	}

	m := priceRe.FindStringSubmatch(string(window))
	if m == nil {
		return 0
	}

	price, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return 0
	}
	return price
}

func firstGroup(re *regexp.Regexp, text string) string {
	if m := re.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
