// Package mailbody は受信したraw形式のメール（MIME）から解析対象の本文テキストを
// 取り出します。text/plainパートを優先し、なければHTMLパートのタグを落として使います。
package mailbody

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/jhillyerd/enmime"
	"go.uber.org/zap"

	"github.com/ponta-ta-taro/resale-tracker-sub000/logger"
)

var (
	styleRe  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	scriptRe = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	tagRe    = regexp.MustCompile(`<[^>]+>`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

// ExtractBody はrawメールをMIMEとして解釈し、本文テキストを返します。
// MIMEとして解釈できない場合は入力をそのまま返します（プレーンテキストの
// 貼り付けメールもここを通るため、解釈失敗はエラーではありません）。
func ExtractBody(rawEmail []byte) string {
	env, err := enmime.ReadEnvelope(bytes.NewReader(rawEmail))
	if err != nil {
		logger.Logger.Warn("MIMEメッセージとして解釈できないため本文をそのまま使用します",
			zap.Error(err),
			zap.Int("size", len(rawEmail)),
		)
		return string(rawEmail)
	}

	if text := strings.TrimSpace(env.Text); text != "" {
		return text
	}

	if env.HTML != "" {
		return stripHTMLTags(env.HTML)
	}

	return string(rawEmail)
}

// stripHTMLTags はHTMLパートからタグと主要なエンティティを除去します
func stripHTMLTags(html string) string {
	text := styleRe.ReplaceAllString(html, "")
	text = scriptRe.ReplaceAllString(text, "")
	text = tagRe.ReplaceAllString(text, " ")

	replacer := strings.NewReplacer(
		"&nbsp;", " ",
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
	)
	text = replacer.Replace(text)

	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}
