package jptime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDateForInput(t *testing.T) {
	assert.Equal(t, "2026-01-10", FormatDateForInput("2026/01/10"))
	assert.Equal(t, "", FormatDateForInput(""))

	// 再適用しても結果は変わらない
	once := FormatDateForInput("2026/1/5")
	assert.Equal(t, once, FormatDateForInput(once))
}

func TestTo24Hour(t *testing.T) {
	tests := []struct {
		hour   int
		period string
		want   int
	}{
		{1, "午後", 13},
		{11, "午後", 23},
		{12, "午後", 12},
		{12, "午前", 0},
		{1, "午前", 1},
		{11, "午前", 11},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, To24Hour(tt.hour, tt.period), "%d時 %s", tt.hour, tt.period)
	}
}

func TestResolveRelativeDay(t *testing.T) {
	now := time.Date(2025, 6, 1, 23, 0, 0, 0, time.Local)

	assert.Equal(t, 2, ResolveRelativeDay("明日", now).Day())
	assert.Equal(t, 1, ResolveRelativeDay("本日", now).Day())
	assert.Equal(t, 1, ResolveRelativeDay("来週", now).Day())
}

func TestParseDeliveryWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name  string
		text  string
		start string
		end   string
	}{
		{
			name:  "明日の午前レンジ",
			text:  "お届け予定: 明日5:00 午前～11:59 午前",
			start: "2025-06-02T05:00:00",
			end:   "2025-06-02T11:59:00",
		},
		{
			name:  "本日の午後レンジ",
			text:  "本日1:00 午後〜6:00 午後の間にお届け",
			start: "2025-06-01T13:00:00",
			end:   "2025-06-01T18:00:00",
		},
		{
			name:  "日付指定",
			text:  "2025/6/10 9:00 午前~12:00 午後",
			start: "2025-06-10T09:00:00",
			end:   "2025-06-10T12:00:00",
		},
		{
			name:  "全角数字の転送メール",
			text:  "明日５:００ 午前～１１:５９ 午前",
			start: "2025-06-02T05:00:00",
			end:   "2025-06-02T11:59:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := ParseDeliveryWindow(tt.text, now)
			require.True(t, ok)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestParseDeliveryWindow_NotFound(t *testing.T) {
	now := time.Now()

	_, _, ok := ParseDeliveryWindow("お届け予定は未定です", now)
	assert.False(t, ok)

	// 開始時刻だけではレンジにならない
	_, _, ok = ParseDeliveryWindow("明日5:00 午前に出発します", now)
	assert.False(t, ok)
}
