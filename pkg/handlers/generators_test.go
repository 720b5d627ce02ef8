package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/llm"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/models"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/services"
)

// mockGenerationService records the last request for assertions.
type mockGenerationService struct {
	lastReq      services.GenerationRequest
	lastKeywords string
	lastOpts     services.RelationshipSuggestOptions

	content     string
	character   *services.GeneratedCharacter
	cardResult  *services.UpdatedCharacterCards
	wvResult    *services.UpdatedWorldviewCards
	scenario    *models.Scenario
	point       *models.PlotPoint
	suggestion  *services.RelationshipSuggestion
	highlighted string
	err         error
}

func (m *mockGenerationService) GenerateNewWorldview(ctx context.Context, req services.GenerationRequest, keywords string) (string, error) {
	m.lastReq, m.lastKeywords = req, keywords
	return m.content, m.err
}
func (m *mockGenerationService) EditWorldview(ctx context.Context, req services.GenerationRequest, keywords, existingContent string) (string, error) {
	m.lastReq, m.lastKeywords = req, keywords
	return m.content, m.err
}
func (m *mockGenerationService) GenerateCharacter(ctx context.Context, req services.GenerationRequest, projectID string, opts services.CharacterGenOptions) (*services.GeneratedCharacter, error) {
	m.lastReq = req
	return m.character, m.err
}
func (m *mockGenerationService) EditCharacterCards(ctx context.Context, req services.GenerationRequest, projectID, cardID string, opts services.CardEditOptions) (*services.UpdatedCharacterCards, error) {
	m.lastReq = req
	return m.cardResult, m.err
}
func (m *mockGenerationService) EditWorldviewCards(ctx context.Context, req services.GenerationRequest, projectID, cardID string, opts services.CardEditOptions) (*services.UpdatedWorldviewCards, error) {
	m.lastReq = req
	return m.wvResult, m.err
}
func (m *mockGenerationService) GenerateDraft(ctx context.Context, req services.GenerationRequest, projectID, scenarioID string, characterIDs []string, plotPointCount int) (*models.Scenario, error) {
	m.lastReq = req
	return m.scenario, m.err
}
func (m *mockGenerationService) EditPlotPoint(ctx context.Context, req services.GenerationRequest, projectID, plotPointID, userPrompt string, characterIDs []string) (*models.PlotPoint, error) {
	m.lastReq = req
	return m.point, m.err
}
func (m *mockGenerationService) SuggestRelationship(ctx context.Context, req services.GenerationRequest, projectID string, opts services.RelationshipSuggestOptions) (*services.RelationshipSuggestion, error) {
	m.lastReq, m.lastOpts = req, opts
	return m.suggestion, m.err
}
func (m *mockGenerationService) HighlightNames(ctx context.Context, req services.GenerationRequest, projectID, cardID, textContent string) (string, error) {
	m.lastReq = req
	return m.highlighted, m.err
}

var _ services.GenerationService = (*mockGenerationService)(nil)

func newGeneratorMux(svc services.GenerationService) *http.ServeMux {
	mux := http.NewServeMux()
	NewGeneratorHandler(svc, zap.NewNop()).RegisterRoutes(mux, passthrough)
	return mux
}

func TestGeneratorHandler_NewWorldview(t *testing.T) {
	svc := &mockGenerationService{content: "생성된 세계관"}
	mux := newGeneratorMux(svc)

	body, _ := json.Marshal(NewWorldviewTextRequest{Keywords: "마법, 제국", ModelName: "gemini-2.5-flash"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate/worldview/new", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "마법, 제국", svc.lastKeywords)
	assert.Equal(t, "gemini-2.5-flash", svc.lastReq.Model)

	var response GeneratedTextResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "생성된 세계관", response.Content)
}

func TestGeneratorHandler_UserKeyHeaderReachesService(t *testing.T) {
	svc := &mockGenerationService{content: "ok"}
	mux := newGeneratorMux(svc)

	body, _ := json.Marshal(NewWorldviewTextRequest{Keywords: "키워드"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate/worldview/new", bytes.NewReader(body))
	req.Header.Set(UserAPIKeyHeader, "user-key")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-key", svc.lastReq.APIKey)
}

func TestGeneratorHandler_KeyMissingIs503(t *testing.T) {
	mux := newGeneratorMux(&mockGenerationService{err: services.ErrKeyMissing})

	body, _ := json.Marshal(NewWorldviewTextRequest{Keywords: "키워드"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate/worldview/new", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "ai_key_missing")
}

func TestGeneratorHandler_BlockedContentIs400(t *testing.T) {
	blocked := llm.NewError(llm.ErrorTypeBlocked, "content blocked by safety filter", false, nil)
	mux := newGeneratorMux(&mockGenerationService{err: blocked})

	body, _ := json.Marshal(GenerateCharacterRequest{Keywords: "금지된 주제"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects/p1/generate/character", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ai_content_blocked")
}

func TestGeneratorHandler_ProviderUnavailableIs503(t *testing.T) {
	unavailable := llm.NewError(llm.ErrorTypeUnavailable, "rate limited", true, nil)
	mux := newGeneratorMux(&mockGenerationService{err: unavailable})

	body, _ := json.Marshal(GenerateDraftRequest{PlotPointCount: 10})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects/p1/scenarios/s1/generate-draft", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "ai_provider_unavailable")
}

func TestGeneratorHandler_SuggestRelationshipPassesOptions(t *testing.T) {
	svc := &mockGenerationService{suggestion: &services.RelationshipSuggestion{Type: "라이벌", Description: "설명"}}
	mux := newGeneratorMux(svc)

	body, _ := json.Marshal(SuggestRelationshipRequest{
		SourceCharacterID: "c1",
		TargetCharacterID: "c2",
		Tendency:          -2,
		Keyword:           "혈투",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects/p1/relationships/suggest", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "c1", svc.lastOpts.SourceCharacterID)
	assert.Equal(t, "c2", svc.lastOpts.TargetCharacterID)
	assert.Equal(t, -2, svc.lastOpts.Tendency)
	assert.Equal(t, "혈투", svc.lastOpts.Keyword)

	var response services.RelationshipSuggestion
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "라이벌", response.Type)
}

func TestGeneratorHandler_HighlightNames(t *testing.T) {
	svc := &mockGenerationService{highlighted: `<span class="protagonist">엘라라</span>가 걸었다.`}
	mux := newGeneratorMux(svc)

	body, _ := json.Marshal(HighlightNamesRequest{FieldName: "introduction_story", TextContent: "엘라라가 걸었다."})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects/p1/cards/c1/highlight-names", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response HighlightedTextResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Contains(t, response.HighlightedText, "protagonist")
}
