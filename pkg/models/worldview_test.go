package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeWorldviewContent_Structured(t *testing.T) {
	raw := strPtr(`{"logline":"마법이 금지된 제국","genre":"다크 판타지","rules":["마법 사용은 사형"]}`)

	content := DecodeWorldviewContent(raw)
	assert.Equal(t, "마법이 금지된 제국", content.Logline)
	assert.Equal(t, "다크 판타지", content.Genre)
	assert.Equal(t, []string{"마법 사용은 사형"}, content.Rules)
}

func TestDecodeWorldviewContent_LegacyPlainText(t *testing.T) {
	content := DecodeWorldviewContent(strPtr("옛날 옛적 어느 왕국에"))
	assert.Equal(t, "옛날 옛적 어느 왕국에", content.Logline)
	assert.Empty(t, content.Genre)
	assert.Equal(t, []string{}, content.Rules)
}

func TestDecodeWorldviewContent_LegacyJSONStringLiteral(t *testing.T) {
	content := DecodeWorldviewContent(strPtr(`"따옴표로 저장된 세계관"`))
	assert.Equal(t, "따옴표로 저장된 세계관", content.Logline)
}

func TestDecodeWorldviewContent_NilAndEmpty(t *testing.T) {
	assert.Equal(t, WorldviewContent{Rules: []string{}}, DecodeWorldviewContent(nil))
	assert.Equal(t, WorldviewContent{Rules: []string{}}, DecodeWorldviewContent(strPtr("")))
}

func TestWorldviewContent_EncodeRoundTrip(t *testing.T) {
	content := WorldviewContent{Logline: "l", Genre: "g", Rules: []string{"r1"}}
	encoded := content.Encode()
	assert.Equal(t, content, DecodeWorldviewContent(&encoded))
}

func TestWorldviewContent_EncodeNilRules(t *testing.T) {
	content := WorldviewContent{Logline: "l"}
	encoded := content.Encode()
	assert.Contains(t, encoded, `"rules":[]`)
}
