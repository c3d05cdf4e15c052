package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ponta-ta-taro/resale-tracker-sub000/logger"
	"github.com/ponta-ta-taro/resale-tracker-sub000/models"
)

// PaymentScheduleItem は支払い方法ごとの未払い集計です。
// CurrentMonth系は今締め期間分（来月支払い予定）、Total系は未払い全体です。
type PaymentScheduleItem struct {
	PaymentMethodID    uint   `json:"payment_method_id"`
	PaymentMethodName  string `json:"payment_method_name"`
	Type               string `json:"type"`
	ClosingDay         *int   `json:"closing_day"`
	PaymentDay         *int   `json:"payment_day"`
	CreditLimit        *int   `json:"credit_limit"`
	CurrentMonthAmount int64  `json:"current_month_amount"`
	CurrentMonthCount  int64  `json:"current_month_count"`
	TotalUsed          int64  `json:"total_used"`
	TotalCount         int64  `json:"total_count"`
	NextPaymentDate    string `json:"next_payment_date"`
}

// unpaidUsage は未払い在庫の金額・件数集計です
type unpaidUsage struct {
	Total int64
	Count int64
}

// GetPaymentSchedule は支払い方法ごとに、未払い（paid前）在庫の仕入額合計と
// 今締め期間分の利用額、次回支払日を返します
func GetPaymentSchedule(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var methods []models.PaymentMethod
		if err := db.Where("is_active = ?", true).Order("sort_order ASC").Find(&methods).Error; err != nil {
			logger.Logger.Error("支払い方法の取得に失敗しました", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment methods"})
			return
		}

		now := time.Now()
		items := make([]PaymentScheduleItem, 0, len(methods))

		for _, method := range methods {
			item := PaymentScheduleItem{
				PaymentMethodID:   method.ID,
				PaymentMethodName: method.Name,
				Type:              method.Type,
				ClosingDay:        method.ClosingDay,
				PaymentDay:        method.PaymentDay,
				CreditLimit:       method.CreditLimit,
			}

			var u unpaidUsage
			err := db.Model(&models.Inventory{}).
				Select("COALESCE(SUM(purchase_price),0) AS total, COUNT(*) AS count").
				Where("payment_method_id = ? AND status <> ?", method.ID, models.StatusPaid).
				Scan(&u).Error
			if err != nil {
				logger.Logger.Error("未払い集計の取得に失敗しました",
					zap.Error(err),
					zap.Uint("payment_method_id", method.ID))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build schedule"})
				return
			}
			item.TotalUsed = u.Total
			item.TotalCount = u.Count

			// クレジットカードの場合、今締め期間分の利用を計算
			if method.Type == "credit_card" && method.ClosingDay != nil && method.PaymentDay != nil {
				start, end := closingPeriod(now, *method.ClosingDay)

				var cu unpaidUsage
				err := db.Model(&models.Inventory{}).
					Select("COALESCE(SUM(purchase_price),0) AS total, COUNT(*) AS count").
					Where("payment_method_id = ? AND status <> ? AND order_date >= ? AND order_date <= ?",
						method.ID, models.StatusPaid,
						start.Format("2006-01-02"), end.Format("2006-01-02")).
					Scan(&cu).Error
				if err != nil {
					logger.Logger.Error("締め期間集計の取得に失敗しました",
						zap.Error(err),
						zap.Uint("payment_method_id", method.ID))
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build schedule"})
					return
				}
				item.CurrentMonthAmount = cu.Total
				item.CurrentMonthCount = cu.Count
			}

			if method.ClosingDay != nil && method.PaymentDay != nil && method.PaymentMonthOffset != nil {
				item.NextPaymentDate = nextPaymentDate(now, *method.ClosingDay, *method.PaymentDay, *method.PaymentMonthOffset)
			}

			items = append(items, item)
		}

		c.JSON(http.StatusOK, gin.H{"data": items})
	}
}

// closingPeriod は今締め期間を返します。
// 締め日を過ぎていれば今月締め日翌日〜来月締め日、まだなら先月締め日翌日〜今月締め日です。
func closingPeriod(now time.Time, closingDay int) (start, end time.Time) {
	year := now.Year()
	month := int(now.Month())

	if now.Day() > closingDay {
		start = time.Date(year, time.Month(month), closingDay+1, 0, 0, 0, 0, now.Location())
		end = time.Date(year, time.Month(month+1), closingDay, 0, 0, 0, 0, now.Location())
	} else {
		start = time.Date(year, time.Month(month-1), closingDay+1, 0, 0, 0, 0, now.Location())
		end = time.Date(year, time.Month(month), closingDay, 0, 0, 0, 0, now.Location())
	}
	return start, end
}

// nextPaymentDate は締め日と支払月オフセットから次回支払日を計算します
func nextPaymentDate(now time.Time, closingDay, paymentDay, monthOffset int) string {
	// 締め日前でも過ぎていても、今月締め分の支払いはoffsetヶ月後
	year := now.Year()
	month := int(now.Month()) + monthOffset

	for month > 12 {
		month -= 12
		year++
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, month, paymentDay)
}
