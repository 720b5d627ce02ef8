package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountContent(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantChars int
		wantWords int
	}{
		{"empty", "", 0, 0},
		{"ascii", "hello world", 11, 2},
		{"korean runes", "안녕하세요", 5, 1},
		{"mixed whitespace", "  a\tb\nc  ", 9, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chars, words := CountContent(tt.content)
			assert.Equal(t, tt.wantChars, chars)
			assert.Equal(t, tt.wantWords, words)
		})
	}
}

func TestEnsureCounts_BackfillsNilCounters(t *testing.T) {
	block := ManuscriptBlock{Content: strPtr("두 단어")}

	assert.True(t, block.EnsureCounts())
	assert.Equal(t, 4, *block.CharCount)
	assert.Equal(t, 2, *block.WordCount)
}

func TestEnsureCounts_NoopWhenPresent(t *testing.T) {
	chars, words := 10, 2
	block := ManuscriptBlock{CharCount: &chars, WordCount: &words}

	assert.False(t, block.EnsureCounts())
	assert.Equal(t, 10, *block.CharCount)
}

func TestEnsureCounts_NilContent(t *testing.T) {
	block := ManuscriptBlock{}

	assert.True(t, block.EnsureCounts())
	assert.Equal(t, 0, *block.CharCount)
	assert.Equal(t, 0, *block.WordCount)
}
