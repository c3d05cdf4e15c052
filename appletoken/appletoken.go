// Package appletoken はApple Storeの注文照会トークンを取得します。
//
// 注文確認メールに載っているURLにはトークンが含まれていません:
//
//	https://store.apple.com/xc/jp/vieworder/{orderNumber}/{email}/
//
// このURLは以下へリダイレクトされ、トークンはLocationヘッダーから取り出せます:
//
//	https://secure*.store.apple.com/jp/shop/order/guest/{orderNumber}/{token}
package appletoken

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/ponta-ta-taro/resale-tracker-sub000/logger"
)

// tokenRe はリダイレクト先URLのパス /shop/order/guest/W{digits}/{token} にマッチします
var tokenRe = regexp.MustCompile(`(?i)/shop/order/guest/W\d+/([a-f0-9]+)`)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// FetchOrderToken はリダイレクトを辿らずにLocationヘッダーからトークンを抽出します。
// リダイレクトが返らない・トークンが取り出せない場合は空文字列とfalseを返します
// （Apple側の仕様変更やレート制限で普通に起きるため、エラーではありません）。
func FetchOrderToken(ctx context.Context, orderNumber, contactEmail string) (string, bool) {
	initialURL := fmt.Sprintf("https://store.apple.com/xc/jp/vieworder/%s/%s/", orderNumber, contactEmail)

	logFields := []zap.Field{
		zap.String("order_number", orderNumber),
		zap.String("email", contactEmail),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, initialURL, nil)
	if err != nil {
		logger.Logger.Error("トークン取得リクエストの作成に失敗しました",
			append(logFields, zap.Error(err))...)
		return "", false
	}
	req.Header.Set("User-Agent", userAgent)

	client := &http.Client{
		Timeout: 15 * time.Second,
		// リダイレクトは追わずにLocationヘッダーを読む
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Do(req)
	if err != nil {
		logger.Logger.Error("トークン取得リクエストの実行に失敗しました",
			append(logFields, zap.Error(err))...)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 300 || resp.StatusCode >= 400 {
		logger.Logger.Warn("リダイレクトが返りませんでした",
			append(logFields, zap.Int("status_code", resp.StatusCode))...)
		return "", false
	}

	location := resp.Header.Get("Location")
	if location == "" {
		logger.Logger.Warn("Locationヘッダーがありません", logFields...)
		return "", false
	}

	m := tokenRe.FindStringSubmatch(location)
	if m == nil {
		logger.Logger.Warn("リダイレクト先URLからトークンを抽出できませんでした",
			append(logFields, zap.String("location", location))...)
		return "", false
	}

	logger.Logger.Info("注文トークンを取得しました", logFields...)
	return m[1], true
}
