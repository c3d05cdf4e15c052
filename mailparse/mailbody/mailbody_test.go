package mailbody

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractBody_PlainTextPart(t *testing.T) {
	raw := []byte("From: no_reply@email.apple.com\r\n" +
		"To: user@example.com\r\n" +
		"Subject: test\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"ご注文番号: W1515122271\r\n")

	body := ExtractBody(raw)
	assert.Contains(t, body, "ご注文番号: W1515122271")
}

func TestExtractBody_HTMLOnly(t *testing.T) {
	raw := []byte("From: no_reply@email.apple.com\r\n" +
		"To: user@example.com\r\n" +
		"Subject: test\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<html><head><style>body { color: red; }</style></head>" +
		"<body><p>ご注文番号: <b>W1515122271</b></p></body></html>\r\n")

	body := ExtractBody(raw)
	assert.Contains(t, body, "W1515122271")
	assert.NotContains(t, body, "<b>")
	assert.NotContains(t, body, "color: red")
}

func TestExtractBody_NotMIME(t *testing.T) {
	// MIMEヘッダのないプレーンテキストの貼り付けもそのまま通る
	raw := []byte("ご注文ありがとうございます\niPhone 17 Pro 256GB\n")

	body := ExtractBody(raw)
	assert.Contains(t, body, "iPhone 17 Pro 256GB")
}

func TestStripHTMLTags(t *testing.T) {
	html := `<style>p { margin: 0; }</style>` +
		`<script>alert("x")</script>` +
		`<p>価格は&nbsp;¥179,800円&lt;税込&gt;   です</p>`

	got := stripHTMLTags(html)
	assert.NotContains(t, got, "margin")
	assert.NotContains(t, got, "alert")
	assert.Contains(t, got, "179,800円<税込>")

	// 連続する空白は1つに畳まれ、前後の空白は落ちる
	assert.False(t, strings.HasPrefix(got, " "))
	assert.NotContains(t, got, "  ")
}
