package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
		wantErr  bool
	}{
		{
			name:     "bare object",
			response: `{"name":"엘라라"}`,
			want:     `{"name":"엘라라"}`,
		},
		{
			name:     "json code fence",
			response: "```json\n{\"name\":\"엘라라\"}\n```",
			want:     `{"name":"엘라라"}`,
		},
		{
			name:     "prose around object",
			response: "요청하신 결과입니다:\n{\"type\":\"라이벌\"} 이상입니다.",
			want:     `{"type":"라이벌"}`,
		},
		{
			name:     "array payload",
			response: `[{"id":"c1"},{"id":"c2"}]`,
			want:     `[{"id":"c1"},{"id":"c2"}]`,
		},
		{
			name:     "braces inside strings",
			response: `{"content":"중괄호 { 포함 } 텍스트"}`,
			want:     `{"content":"중괄호 { 포함 } 텍스트"}`,
		},
		{
			name:     "escaped quotes inside strings",
			response: `{"quote":"그가 \"말했다\""}`,
			want:     `{"quote":"그가 \"말했다\""}`,
		},
		{
			name:     "no json at all",
			response: "죄송합니다, 생성할 수 없습니다.",
			wantErr:  true,
		},
		{
			name:     "unbalanced object",
			response: `{"name":"잘린 응답`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.response)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseJSONResponse(t *testing.T) {
	type suggestion struct {
		Type        string `json:"type"`
		Description string `json:"description"`
	}

	got, err := ParseJSONResponse[suggestion]("```json\n{\"type\":\"라이벌\",\"description\":\"오랜 경쟁자\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, suggestion{Type: "라이벌", Description: "오랜 경쟁자"}, got)
}

func TestParseJSONResponse_MalformedIsClassified(t *testing.T) {
	_, err := ParseJSONResponse[map[string]string]("이것은 JSON이 아닙니다")
	require.Error(t, err)
	assert.Equal(t, ErrorTypeMalformed, GetErrorType(err))
}
