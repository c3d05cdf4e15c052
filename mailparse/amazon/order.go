package amazon

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ponta-ta-taro/resale-tracker-sub000/mailparse/jptime"
)

var (
	// Amazonの注文番号は 123-1234567-1234567 の固定形式
	orderNumberRe = regexp.MustCompile(`(\d{3}-\d{7}-\d{7})`)

	// 商品名: 「Apple iPhone 17 Pro 256GB」。「Apple」プレフィックスつきを先に試します
	productWithBrandRe = regexp.MustCompile(`(?i)Apple\s+iPhone\s+(\d+(?:\s+Pro(?:\s+Max)?|\s+Air)?)\s+(\d+GB)`)
	productBareRe      = regexp.MustCompile(`(?i)iPhone\s+(\d+(?:\s+Pro(?:\s+Max)?|\s+Air)?)\s+(\d+GB)`)

	// iPhoneの代表的なカラー名（日本語）
	colorRe = regexp.MustCompile(`(シルバー|ブラック|ゴールド|ホワイト|レッド|ブルー|グリーン|パープル|ピンク|イエロー|オレンジ|グレー|スペースグレイ|ミッドナイト|スターライト|コズミックオレンジ)`)

	// 請求金額のURLパラメータ: amount=179800
	amountParamRe = regexp.MustCompile(`amount=(\d+)`)

	// 本文中の金額表記: 「179,800 円」または「179800 JPY」
	priceRe = regexp.MustCompile(`(\d{1,3}(?:,\d{3})+|\d{5,})\s*(?:円|JPY)`)
)

// ParseOrderEmail はAmazon注文確認メールを解析します。
// 注文番号・モデル名・ストレージのいずれかが見つからない場合はnilを返します。
func ParseOrderEmail(emailText string) *ParsedOrder {
	return ParseOrderEmailAt(emailText, time.Now())
}

// ParseOrderEmailAt はnowを基準に「明日」「本日」を解決するバージョンです
func ParseOrderEmailAt(emailText string, now time.Time) *ParsedOrder {
	m := orderNumberRe.FindStringSubmatch(emailText)
	if m == nil {
		return nil
	}
	orderNumber := m[1]

	modelName, storage := extractProduct(emailText)
	if modelName == "" || storage == "" {
		return nil
	}

	color := ""
	if cm := colorRe.FindStringSubmatch(emailText); cm != nil {
		color = cm[1]
	}

	deliveryStart, deliveryEnd, _ := jptime.ParseDeliveryWindow(emailText, now)

	return &ParsedOrder{
		OrderNumber:   orderNumber,
		ModelName:     modelName,
		Storage:       storage,
		Color:         color,
		Price:         extractPrice(emailText),
		DeliveryStart: deliveryStart,
		DeliveryEnd:   deliveryEnd,
	}
}

func extractProduct(text string) (modelName, storage string) {
	for _, re := range []*regexp.Regexp{productWithBrandRe, productBareRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			return "iPhone " + strings.TrimSpace(m[1]), m[2]
		}
	}
	return "", ""
}

// extractPrice はamount=パラメータを優先し、なければ本文中の金額表記を集めて
// 最大値を採用します。複数の金額が並ぶ場合、最大のものが実際の請求額である
// 可能性が高い（小さい数字は単価や割引額のことが多い）ためです。
func extractPrice(text string) int {
	if m := amountParamRe.FindStringSubmatch(text); m != nil {
		if price, err := strconv.Atoi(m[1]); err == nil && price > 0 {
			return price
		}
	}

	maxPrice := 0
	for _, m := range priceRe.FindAllStringSubmatch(text, -1) {
		price, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if err != nil {
			continue
		}
		if price > maxPrice {
			maxPrice = price
		}
	}
	return maxPrice
}
