package pdfparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_InvalidPDF(t *testing.T) {
	result := Parse([]byte("this is not a pdf"))

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	assert.Empty(t, result.OrderNumber)
	assert.Empty(t, result.SerialNumber)
}

func TestParse_EmptyInput(t *testing.T) {
	result := Parse(nil)

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestParse_Idempotent(t *testing.T) {
	data := []byte("%PDF-1.4 broken")

	first := Parse(data)
	second := Parse(data)
	assert.Equal(t, first, second)
}

func TestOrderNumberChain(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"日本語ラベル", "ご注文番号: W1515122271 お届け先", "W1515122271"},
		{"日本語ラベル全角コロン", "ご注文番号：W1515122271", "W1515122271"},
		{"英語ラベル", "Order Number: W1515122271", "W1515122271"},
		{"裸トークン", "納品書 W1515122271 2026/01/10", "W1515122271"},
		{"該当なし", "納品書 2026/01/10", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orderNumberChain.FirstValue(tt.text))
		})
	}
}

func TestExtractSerialNumber(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "セクションラベル",
			text: "Serial Numbers for Item 1 F2LX8KQJPLJM",
			want: "F2LX8KQJPLJM",
		},
		{
			name: "汎用ラベル",
			text: "シリアル: C7GXK2W9QRST",
			want: "C7GXK2W9QRST",
		},
		{
			name: "裸トークン",
			text: "付属品一覧 F2LX8KQJPLJM ケーブル",
			want: "F2LX8KQJPLJM",
		},
		{
			name: "注文番号は再捕捉しない",
			text: "W15151222710 のお買い上げ",
			want: "",
		},
		{
			name: "数字始まりは除外",
			text: "型番 123456789012 を確認",
			want: "",
		},
		{
			name: "該当なし",
			text: "シリアルの記載なし",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractSerialNumber(tt.text))
		})
	}
}
