// Package scan はメール本文からのフィールド抽出で使う正規表現チェーンを提供します。
// 抽出パターンは「先に書いたものが優先」の順序付きリストとして持ち、
// 最初に成功したパターンの結果を採用します。
package scan

import (
	"regexp"
	"strings"
)

// Strategy は1つの抽出パターンです。Groupはサブマッチ番号（0は全体マッチ）。
type Strategy struct {
	Name  string
	Re    *regexp.Regexp
	Group int
}

// Chain は順序付きの抽出パターン列です。
type Chain []Strategy

// First はチェーンを先頭から試し、最初にマッチした値を返します。
// どのパターンにもマッチしなければ空文字列とfalseを返します。
func (c Chain) First(text string) (string, bool) {
	for _, s := range c {
		m := s.Re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		g := s.Group
		if g >= len(m) {
			g = 0
		}
		v := strings.TrimSpace(m[g])
		if v != "" {
			return v, true
		}
	}
	return "", false
}

// FirstValue はFirstと同じですが、マッチしない場合に空文字列だけを返します。
func (c Chain) FirstValue(text string) string {
	v, _ := c.First(text)
	return v
}
