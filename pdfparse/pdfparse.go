// Package pdfparse はAppleの納品書PDFのテキストレイヤーから
// 注文番号とシリアル番号を抽出します。
//
// ページは順番にテキスト化して連結します（後のページの本文を順序どおり
// 末尾に足す必要があるため並列化はしません）。PDFとして開けない・描画できない
// 入力は例外ではなくSuccess=falseの結果に変換されます。
package pdfparse

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/ponta-ta-taro/resale-tracker-sub000/mailparse/scan"
)

// Result はPDF解析の結果です。
// Success=falseのときはErrorにメッセージが入ります。
// Success=trueでもOrderNumber/SerialNumberが空のことはあり、
// その扱い（手入力を促すなど）は呼び出し側が決めます。
type Result struct {
	OrderNumber  string `json:"orderNumber"`
	SerialNumber string `json:"serialNumber"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
	RawText      string `json:"rawText,omitempty"`
}

// orderNumberChain は注文番号の抽出パターンです。
// 日本語ラベル → 英語ラベル → Wで始まる9桁以上の裸トークン、の順です。
var orderNumberChain = scan.Chain{
	{Name: "labeled_ja", Re: regexp.MustCompile(`(?i)ご注文番号[:\s：]*([W\d]+)`), Group: 1},
	{Name: "labeled_en", Re: regexp.MustCompile(`(?i)Order Number[:\s]+([W\d]+)`), Group: 1},
	{Name: "bare_token", Re: regexp.MustCompile(`W\d{9,}`), Group: 0},
}

var (
	// 納品書の「Serial Numbers for Item 1」セクション
	serialSectionRe = regexp.MustCompile(`(?i)Serial Numbers? for Item\s*\d*\s*([A-Z0-9]{10,})`)

	// 汎用の「Serial」「シリアル」ラベル
	serialLabelRe = regexp.MustCompile(`(?i)(?:Serial|シリアル)[:\s]*([A-Z0-9]{10,})`)

	// ラベルなしの候補トークン（iPhoneのシリアル形式は11〜12桁の英数字）
	standaloneSerialRe = regexp.MustCompile(`\b([A-Z0-9]{11,12})\b`)
	validSerialRe      = regexp.MustCompile(`^[A-Z][A-Z0-9]{10,11}$`)
)

// Parse はPDFのバイト列を解析し、全ページのテキストから
// 注文番号・シリアル番号を抽出します。
func Parse(data []byte) (result Result) {
	// PDFライブラリは不正な入力でパニックすることがあるため、
	// ここで回収してSuccess=falseに変換します
	defer func() {
		if r := recover(); r != nil {
			result = Result{Success: false, Error: fmt.Sprintf("pdf rendering failed: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	var fullText strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		fullText.WriteString(pageText)
		fullText.WriteString("\n")
	}

	text := fullText.String()
	return Result{
		OrderNumber:  orderNumberChain.FirstValue(text),
		SerialNumber: extractSerialNumber(text),
		Success:      true,
		RawText:      text,
	}
}

// extractSerialNumber はセクションラベル → 汎用ラベル → 裸トークンの順で
// シリアル番号を探します。裸トークンは英字始まりの11〜12桁のみ採用し、
// Wで始まるもの（注文番号の再捕捉）は除外します。
func extractSerialNumber(text string) string {
	if m := serialSectionRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := serialLabelRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}

	for _, m := range standaloneSerialRe.FindAllStringSubmatch(text, -1) {
		candidate := m[1]
		if validSerialRe.MatchString(candidate) && !strings.HasPrefix(candidate, "W") {
			return candidate
		}
	}
	return ""
}
