package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestDecodeStringList(t *testing.T) {
	tests := []struct {
		name string
		raw  *string
		want []string
	}{
		{"nil", nil, []string{}},
		{"empty", strPtr(""), []string{}},
		{"json array", strPtr(`["용감함","신중함"]`), []string{"용감함", "신중함"}},
		{"json null", strPtr("null"), []string{}},
		{"legacy comma string", strPtr("용감함, 신중함"), []string{"용감함", "신중함"}},
		{"legacy with blanks", strPtr("a, , b,"), []string{"a", "b"}},
		{"single word", strPtr("고독"), []string{"고독"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeStringList(tt.raw))
		})
	}
}

func TestEncodeStringList(t *testing.T) {
	assert.Nil(t, EncodeStringList(nil))

	encoded := EncodeStringList([]string{})
	assert.Equal(t, "[]", *encoded)

	encoded = EncodeStringList([]string{"a", "b"})
	assert.Equal(t, `["a","b"]`, *encoded)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	list := []string{"검술", "마법"}
	assert.Equal(t, list, DecodeStringList(EncodeStringList(list)))
}
