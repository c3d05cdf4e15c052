package scan

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testChain = Chain{
	{Name: "labeled", Re: regexp.MustCompile(`番号[:\s]*(\d+)`), Group: 1},
	{Name: "bare", Re: regexp.MustCompile(`\d{5,}`), Group: 0},
}

func TestChainFirst(t *testing.T) {
	// 先頭のパターンが優先される
	v, ok := testChain.First("番号: 123 と 99999")
	assert.True(t, ok)
	assert.Equal(t, "123", v)

	// 先頭が外れたら次のパターンへフォールバック
	v, ok = testChain.First("問い合わせは 4567890 まで")
	assert.True(t, ok)
	assert.Equal(t, "4567890", v)

	// どれにもマッチしない
	_, ok = testChain.First("該当なし")
	assert.False(t, ok)
}

func TestChainFirst_GroupOutOfRange(t *testing.T) {
	c := Chain{
		{Name: "broken", Re: regexp.MustCompile(`\d+`), Group: 3},
	}

	// 存在しないグループ番号は全体マッチにフォールバックする
	v, ok := c.First("abc 123")
	assert.True(t, ok)
	assert.Equal(t, "123", v)
}

func TestChainFirstValue(t *testing.T) {
	assert.Equal(t, "123", testChain.FirstValue("番号: 123"))
	assert.Equal(t, "", testChain.FirstValue("該当なし"))
}
