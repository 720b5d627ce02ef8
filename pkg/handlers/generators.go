package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/services"
)

// UserAPIKeyHeader carries a caller-supplied provider key that overrides the
// server-configured one for a single request.
const UserAPIKeyHeader = "X-User-API-Key"

// NewWorldviewTextRequest for POST /api/v1/generate/worldview/new
type NewWorldviewTextRequest struct {
	Keywords  string `json:"keywords"`
	ModelName string `json:"model_name"`
}

// EditWorldviewTextRequest for POST /api/v1/generate/worldview/edit
type EditWorldviewTextRequest struct {
	Keywords        string `json:"keywords"`
	ExistingContent string `json:"existing_content"`
	ModelName       string `json:"model_name"`
}

// GenerateCharacterRequest for POST .../generate/character
type GenerateCharacterRequest struct {
	Keywords         string   `json:"keywords"`
	CharacterIDs     []string `json:"character_ids"`
	WorldviewCardIDs []string `json:"worldview_card_ids"`
	WorldviewLevel   string   `json:"worldview_level"`
	ModelName        string   `json:"model_name"`
}

// AIEditCardRequest for PUT .../cards/{cardID}/edit-with-ai
type AIEditCardRequest struct {
	PromptText            string   `json:"prompt_text"`
	SelectedCardIDs       []string `json:"selected_card_ids"`
	SelectedGroupIDs      []string `json:"selected_group_ids"`
	WorldviewLevel        string   `json:"worldview_level"`
	EditRelatedCharacters bool     `json:"edit_related_characters"`
	ModelName             string   `json:"model_name"`
}

// AIEditWorldviewCardRequest for PUT .../worldview_cards/{cardID}/edit-with-ai
type AIEditWorldviewCardRequest struct {
	PromptText       string   `json:"prompt_text"`
	SelectedCardIDs  []string `json:"selected_card_ids"`
	WorldviewLevel   string   `json:"worldview_level"`
	EditRelatedCards bool     `json:"edit_related_cards"`
	ModelName        string   `json:"model_name"`
}

// GenerateDraftRequest for POST .../scenarios/{scenarioID}/generate-draft
type GenerateDraftRequest struct {
	CharacterIDs   []string `json:"character_ids"`
	PlotPointCount int      `json:"plot_point_count"`
	ModelName      string   `json:"model_name"`
}

// AIEditPlotPointRequest for PUT .../scenarios/plot_points/{plotPointID}/edit-with-ai
type AIEditPlotPointRequest struct {
	UserPrompt   string   `json:"user_prompt"`
	CharacterIDs []string `json:"character_ids"`
	ModelName    string   `json:"model_name"`
}

// SuggestRelationshipRequest for POST .../relationships/suggest
type SuggestRelationshipRequest struct {
	SourceCharacterID string `json:"source_character_id"`
	TargetCharacterID string `json:"target_character_id"`
	Tendency          int    `json:"tendency"`
	Keyword           string `json:"keyword"`
	ModelName         string `json:"model_name"`
}

// HighlightNamesRequest for POST .../cards/{cardID}/highlight-names
type HighlightNamesRequest struct {
	FieldName   string `json:"field_name"`
	TextContent string `json:"text_content"`
}

// GeneratedTextResponse wraps a single generated text payload.
type GeneratedTextResponse struct {
	Content string `json:"content"`
}

// HighlightedTextResponse for POST .../cards/{cardID}/highlight-names
type HighlightedTextResponse struct {
	HighlightedText string `json:"highlighted_text"`
}

// GeneratorHandler handles the AI-backed endpoints. These routes skip the
// transaction middleware; the service persists in its own short transaction
// after the provider call.
type GeneratorHandler struct {
	generation services.GenerationService
	logger     *zap.Logger
}

// NewGeneratorHandler creates a new generator handler.
func NewGeneratorHandler(generation services.GenerationService, logger *zap.Logger) *GeneratorHandler {
	return &GeneratorHandler{generation: generation, logger: logger}
}

// RegisterRoutes registers the generator routes on the given mux.
func (h *GeneratorHandler) RegisterRoutes(mux *http.ServeMux, guardMW Middleware) {
	mux.HandleFunc("POST /api/v1/generate/worldview/new", h.NewWorldviewText)
	mux.HandleFunc("POST /api/v1/generate/worldview/edit", h.EditWorldviewText)

	base := "/api/v1/projects/{projectID}"
	mux.HandleFunc("POST "+base+"/generate/character", chain(h.GenerateCharacter, guardMW))
	mux.HandleFunc("PUT "+base+"/cards/{cardID}/edit-with-ai", chain(h.EditCharacterCards, guardMW))
	mux.HandleFunc("PUT "+base+"/worldview_cards/{cardID}/edit-with-ai", chain(h.EditWorldviewCards, guardMW))
	mux.HandleFunc("POST "+base+"/scenarios/{scenarioID}/generate-draft", chain(h.GenerateDraft, guardMW))
	mux.HandleFunc("PUT "+base+"/scenarios/plot_points/{plotPointID}/edit-with-ai", chain(h.EditPlotPoint, guardMW))
	mux.HandleFunc("POST "+base+"/relationships/suggest", chain(h.SuggestRelationship, guardMW))
	mux.HandleFunc("POST "+base+"/cards/{cardID}/highlight-names", chain(h.HighlightNames, guardMW))
}

func genRequest(r *http.Request, modelName string) services.GenerationRequest {
	return services.GenerationRequest{
		Model:  modelName,
		APIKey: r.Header.Get(UserAPIKeyHeader),
	}
}

// NewWorldviewText handles POST /api/v1/generate/worldview/new
func (h *GeneratorHandler) NewWorldviewText(w http.ResponseWriter, r *http.Request) {
	var req NewWorldviewTextRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	content, err := h.generation.GenerateNewWorldview(r.Context(), genRequest(r, req.ModelName), req.Keywords)
	if err != nil {
		HandleError(w, h.logger, err, "generate_worldview_failed")
		return
	}
	if err := WriteJSON(w, http.StatusOK, GeneratedTextResponse{Content: content}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// EditWorldviewText handles POST /api/v1/generate/worldview/edit
func (h *GeneratorHandler) EditWorldviewText(w http.ResponseWriter, r *http.Request) {
	var req EditWorldviewTextRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	content, err := h.generation.EditWorldview(r.Context(),
		genRequest(r, req.ModelName), req.Keywords, req.ExistingContent)
	if err != nil {
		HandleError(w, h.logger, err, "edit_worldview_failed")
		return
	}
	if err := WriteJSON(w, http.StatusOK, GeneratedTextResponse{Content: content}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GenerateCharacter handles POST .../generate/character
func (h *GeneratorHandler) GenerateCharacter(w http.ResponseWriter, r *http.Request) {
	var req GenerateCharacterRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	character, err := h.generation.GenerateCharacter(r.Context(),
		genRequest(r, req.ModelName), r.PathValue("projectID"),
		services.CharacterGenOptions{
			Keywords:         req.Keywords,
			CharacterIDs:     req.CharacterIDs,
			WorldviewCardIDs: req.WorldviewCardIDs,
			WorldviewLevel:   req.WorldviewLevel,
		})
	if err != nil {
		HandleError(w, h.logger, err, "generate_character_failed")
		return
	}
	if err := WriteJSON(w, http.StatusOK, character); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// EditCharacterCards handles PUT .../cards/{cardID}/edit-with-ai
func (h *GeneratorHandler) EditCharacterCards(w http.ResponseWriter, r *http.Request) {
	var req AIEditCardRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	result, err := h.generation.EditCharacterCards(r.Context(),
		genRequest(r, req.ModelName), r.PathValue("projectID"), r.PathValue("cardID"),
		services.CardEditOptions{
			PromptText:       req.PromptText,
			SelectedCardIDs:  req.SelectedCardIDs,
			SelectedGroupIDs: req.SelectedGroupIDs,
			WorldviewLevel:   req.WorldviewLevel,
			EditRelated:      req.EditRelatedCharacters,
		})
	if err != nil {
		HandleError(w, h.logger, err, "edit_card_failed")
		return
	}
	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// EditWorldviewCards handles PUT .../worldview_cards/{cardID}/edit-with-ai
func (h *GeneratorHandler) EditWorldviewCards(w http.ResponseWriter, r *http.Request) {
	var req AIEditWorldviewCardRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	result, err := h.generation.EditWorldviewCards(r.Context(),
		genRequest(r, req.ModelName), r.PathValue("projectID"), r.PathValue("cardID"),
		services.CardEditOptions{
			PromptText:      req.PromptText,
			SelectedCardIDs: req.SelectedCardIDs,
			WorldviewLevel:  req.WorldviewLevel,
			EditRelated:     req.EditRelatedCards,
		})
	if err != nil {
		HandleError(w, h.logger, err, "edit_worldview_card_failed")
		return
	}
	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GenerateDraft handles POST .../scenarios/{scenarioID}/generate-draft
func (h *GeneratorHandler) GenerateDraft(w http.ResponseWriter, r *http.Request) {
	var req GenerateDraftRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	scenario, err := h.generation.GenerateDraft(r.Context(),
		genRequest(r, req.ModelName), r.PathValue("projectID"), r.PathValue("scenarioID"),
		req.CharacterIDs, req.PlotPointCount)
	if err != nil {
		HandleError(w, h.logger, err, "generate_draft_failed")
		return
	}
	if err := WriteJSON(w, http.StatusOK, scenario); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// EditPlotPoint handles PUT .../scenarios/plot_points/{plotPointID}/edit-with-ai
func (h *GeneratorHandler) EditPlotPoint(w http.ResponseWriter, r *http.Request) {
	var req AIEditPlotPointRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	point, err := h.generation.EditPlotPoint(r.Context(),
		genRequest(r, req.ModelName), r.PathValue("projectID"), r.PathValue("plotPointID"),
		req.UserPrompt, req.CharacterIDs)
	if err != nil {
		HandleError(w, h.logger, err, "edit_plot_point_failed")
		return
	}
	if err := WriteJSON(w, http.StatusOK, point); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// SuggestRelationship handles POST .../relationships/suggest
func (h *GeneratorHandler) SuggestRelationship(w http.ResponseWriter, r *http.Request) {
	var req SuggestRelationshipRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	suggestion, err := h.generation.SuggestRelationship(r.Context(),
		genRequest(r, req.ModelName), r.PathValue("projectID"),
		services.RelationshipSuggestOptions{
			SourceCharacterID: req.SourceCharacterID,
			TargetCharacterID: req.TargetCharacterID,
			Tendency:          req.Tendency,
			Keyword:           req.Keyword,
		})
	if err != nil {
		HandleError(w, h.logger, err, "suggest_relationship_failed")
		return
	}
	if err := WriteJSON(w, http.StatusOK, suggestion); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// HighlightNames handles POST .../cards/{cardID}/highlight-names
func (h *GeneratorHandler) HighlightNames(w http.ResponseWriter, r *http.Request) {
	var req HighlightNamesRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	highlighted, err := h.generation.HighlightNames(r.Context(),
		genRequest(r, ""), r.PathValue("projectID"), r.PathValue("cardID"), req.TextContent)
	if err != nil {
		HandleError(w, h.logger, err, "highlight_names_failed")
		return
	}
	if err := WriteJSON(w, http.StatusOK, HighlightedTextResponse{HighlightedText: highlighted}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
