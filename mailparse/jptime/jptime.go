// Package jptime はベンダーメールに現れる日本語の日付・時刻表現を
// 機械可読な文字列へ正規化します。
//
// 対象は以下の3種類です。
//   - スラッシュ区切り日付（2026/1/10）→ ハイフン区切り（2026-01-10相当の置換のみ）
//   - 相対日（明日・本日）の解決
//   - 12時間制（午前・午後）の時刻レンジ → 24時間制のISO形式ローカル日時
package jptime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/width"
)

// deliveryWindowRe は「明日5:00 午前～11:59 午前」「2026/1/10 9:00 午前～12:00 午後」の
// 形式にマッチします。波ダッシュ・チルダ・ハイフンのいずれも区切りとして扱います。
var deliveryWindowRe = regexp.MustCompile(
	`(明日|本日|(\d{4})/(\d{1,2})/(\d{1,2}))\s*(\d{1,2}):(\d{2})\s*(午前|午後)\s*[～〜~-]\s*(\d{1,2}):(\d{2})\s*(午前|午後)`)

// FormatDateForInput はYYYY/M/D形式をフォーム入力用のハイフン区切りに変換します。
// スラッシュを含まない入力はそのまま返すため、再適用しても結果は変わりません。
func FormatDateForInput(dateStr string) string {
	if dateStr == "" {
		return ""
	}
	return strings.ReplaceAll(dateStr, "/", "-")
}

// To24Hour は午前・午後つきの12時間制の時を24時間制に変換します。
// 正午（午後12時）は12のまま、深夜0時（午前12時）は0になります。
func To24Hour(hour int, period string) int {
	if period == "午後" && hour != 12 {
		return hour + 12
	}
	if period == "午前" && hour == 12 {
		return 0
	}
	return hour
}

// ResolveRelativeDay は「明日」「本日」をnow基準の日付に解決します。
// どちらでもないトークンはnowの日付を返します。
func ResolveRelativeDay(token string, now time.Time) time.Time {
	if token == "明日" {
		return now.AddDate(0, 0, 1)
	}
	return now
}

// ParseDeliveryWindow は配達予定の日時レンジを抽出し、
// ローカル日時のISO形式文字列（2025-06-02T05:00:00）のペアを返します。
// レンジが見つからない場合はokがfalseになります。
func ParseDeliveryWindow(text string, now time.Time) (start, end string, ok bool) {
	// 転送メールでは数字やコロンが全角になっていることがあるため半角に折り畳む
	folded := width.Fold.String(text)

	m := deliveryWindowRe.FindStringSubmatch(folded)
	if m == nil {
		return "", "", false
	}

	day := now
	switch {
	case m[1] == "明日" || m[1] == "本日":
		day = ResolveRelativeDay(m[1], now)
	case m[2] != "":
		year, _ := strconv.Atoi(m[2])
		month, _ := strconv.Atoi(m[3])
		dayOfMonth, _ := strconv.Atoi(m[4])
		day = time.Date(year, time.Month(month), dayOfMonth, 0, 0, 0, 0, now.Location())
	}

	startHour, _ := strconv.Atoi(m[5])
	startMinute, _ := strconv.Atoi(m[6])
	endHour, _ := strconv.Atoi(m[8])
	endMinute, _ := strconv.Atoi(m[9])

	start = formatLocalDateTime(day, To24Hour(startHour, m[7]), startMinute)
	end = formatLocalDateTime(day, To24Hour(endHour, m[10]), endMinute)
	return start, end, true
}

func formatLocalDateTime(day time.Time, hour, minute int) string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:00",
		day.Year(), int(day.Month()), day.Day(), hour, minute)
}
