package service

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain json untouched",
			in:   `{"score": 80}`,
			want: `{"score": 80}`,
		},
		{
			name: "json fence",
			in:   "```json\n{\"score\": 80}\n```",
			want: `{"score": 80}`,
		},
		{
			name: "bare fence",
			in:   "```\n{\"score\": 80}\n```",
			want: `{"score": 80}`,
		},
		{
			name: "surrounding whitespace",
			in:   "  \n```json\n{}\n```  \n",
			want: "{}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFences(tt.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "", truncate("", 5))
}

func TestTruncateRuneBoundary(t *testing.T) {
	// Cutting inside a multi-byte rune must back off to the previous
	// boundary instead of emitting invalid UTF-8.
	assert.Equal(t, "h", truncate("héllo", 2))
	assert.Equal(t, "日", truncate("日本語", 4))
	assert.Equal(t, "日", truncate("日本語", 5))
	assert.Equal(t, "日本", truncate("日本語", 6))

	for max := 0; max <= len("héllo 日本語"); max++ {
		assert.True(t, utf8.ValidString(truncate("héllo 日本語", max)), "max=%d", max)
	}
}
