package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextPaymentDate(t *testing.T) {
	now := time.Date(2025, 11, 5, 0, 0, 0, 0, time.Local)

	// 翌月27日払い
	assert.Equal(t, "2025-12-27", nextPaymentDate(now, 15, 27, 1))

	// 翌々月払いで年をまたぐ
	assert.Equal(t, "2026-01-10", nextPaymentDate(now, 31, 10, 2))

	// オフセットなし
	assert.Equal(t, "2025-11-27", nextPaymentDate(now, 15, 27, 0))
}

func TestClosingPeriod(t *testing.T) {
	tests := []struct {
		name       string
		now        time.Time
		closingDay int
		start      string
		end        string
	}{
		{
			name:       "締め日前",
			now:        time.Date(2025, 11, 5, 0, 0, 0, 0, time.Local),
			closingDay: 15,
			start:      "2025-10-16",
			end:        "2025-11-15",
		},
		{
			name:       "締め日当日はまだ今締め期間",
			now:        time.Date(2025, 11, 15, 23, 0, 0, 0, time.Local),
			closingDay: 15,
			start:      "2025-10-16",
			end:        "2025-11-15",
		},
		{
			name:       "締め日を過ぎた",
			now:        time.Date(2025, 11, 20, 0, 0, 0, 0, time.Local),
			closingDay: 15,
			start:      "2025-11-16",
			end:        "2025-12-15",
		},
		{
			name:       "年末に締め日を過ぎて年をまたぐ",
			now:        time.Date(2025, 12, 20, 0, 0, 0, 0, time.Local),
			closingDay: 15,
			start:      "2025-12-16",
			end:        "2026-01-15",
		},
		{
			name:       "年始の締め日前は前年から始まる",
			now:        time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local),
			closingDay: 10,
			start:      "2025-12-11",
			end:        "2026-01-10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := closingPeriod(tt.now, tt.closingDay)
			assert.Equal(t, tt.start, start.Format("2006-01-02"))
			assert.Equal(t, tt.end, end.Format("2006-01-02"))
		})
	}
}
