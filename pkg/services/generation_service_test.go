package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/apperrors"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/config"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/llm"
)

func testAIConfig(serverKey string) config.AIConfig {
	return config.AIConfig{
		APIKey: serverKey,
		Models: []string{"gemini-2.5-flash-lite", "gemini-2.5-flash"},
	}
}

func newTextOnlyService(gen llm.Generator, cfg config.AIConfig) GenerationService {
	// The worldview text endpoints touch no storage, so repositories stay nil.
	return NewGenerationService(nil, gen, cfg, nil, nil, nil, nil, nil, zap.NewNop())
}

func TestGenerateNewWorldview_UsesDefaultModel(t *testing.T) {
	mock := &llm.MockGenerator{GenerateFunc: func(ctx context.Context, req llm.Request) (string, error) {
		return "생성된 세계관", nil
	}}
	svc := newTextOnlyService(mock, testAIConfig("server-key"))

	content, err := svc.GenerateNewWorldview(context.Background(), GenerationRequest{}, "마법, 제국")
	require.NoError(t, err)
	assert.Equal(t, "생성된 세계관", content)

	require.Len(t, mock.Calls, 1)
	call := mock.Calls[0]
	assert.Equal(t, "gemini-2.5-flash-lite", call.Model)
	assert.False(t, call.ExpectJSON)
	assert.True(t, strings.Contains(call.Prompt, "마법, 제국"))
}

func TestGenerateNewWorldview_RejectsUnknownModel(t *testing.T) {
	mock := &llm.MockGenerator{}
	svc := newTextOnlyService(mock, testAIConfig("server-key"))

	_, err := svc.GenerateNewWorldview(context.Background(),
		GenerationRequest{Model: "gpt-4"}, "키워드")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Empty(t, mock.Calls)
}

func TestGenerateNewWorldview_RejectsEmptyKeywords(t *testing.T) {
	svc := newTextOnlyService(&llm.MockGenerator{}, testAIConfig("server-key"))

	_, err := svc.GenerateNewWorldview(context.Background(), GenerationRequest{}, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestGenerate_NoKeyAnywhereFails(t *testing.T) {
	mock := &llm.MockGenerator{}
	svc := newTextOnlyService(mock, testAIConfig(""))

	_, err := svc.GenerateNewWorldview(context.Background(), GenerationRequest{}, "키워드")
	assert.ErrorIs(t, err, ErrKeyMissing)
	assert.Empty(t, mock.Calls)
}

func TestGenerate_UserKeyOverrideAllowsCallWithoutServerKey(t *testing.T) {
	mock := &llm.MockGenerator{GenerateFunc: func(ctx context.Context, req llm.Request) (string, error) {
		return "ok", nil
	}}
	svc := newTextOnlyService(mock, testAIConfig(""))

	_, err := svc.GenerateNewWorldview(context.Background(),
		GenerationRequest{APIKey: "user-key"}, "키워드")
	require.NoError(t, err)

	require.Len(t, mock.Calls, 1)
	assert.Equal(t, "user-key", mock.Calls[0].APIKey)
}

func TestEditWorldview_PassesExistingContent(t *testing.T) {
	mock := &llm.MockGenerator{GenerateFunc: func(ctx context.Context, req llm.Request) (string, error) {
		return "수정된 세계관", nil
	}}
	svc := newTextOnlyService(mock, testAIConfig("server-key"))

	content, err := svc.EditWorldview(context.Background(),
		GenerationRequest{Model: "gemini-2.5-flash"}, "더 어둡게", "기존 세계관 설정")
	require.NoError(t, err)
	assert.Equal(t, "수정된 세계관", content)

	require.Len(t, mock.Calls, 1)
	assert.Equal(t, "gemini-2.5-flash", mock.Calls[0].Model)
	assert.Contains(t, mock.Calls[0].Prompt, "기존 세계관 설정")
	assert.Contains(t, mock.Calls[0].Prompt, "더 어둡게")
}
