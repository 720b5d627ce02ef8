package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/models"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/services"
)

// CreateGroupRequest for POST /api/v1/projects/{projectID}/groups
type CreateGroupRequest struct {
	Name string `json:"name"`
}

// CreateCardRequest for POST /api/v1/projects/{projectID}/groups/{groupID}/cards
type CreateCardRequest struct {
	Name              string   `json:"name"`
	Description       *string  `json:"description"`
	Goal              []string `json:"goal"`
	Personality       []string `json:"personality"`
	Abilities         []string `json:"abilities"`
	Quote             []string `json:"quote"`
	IntroductionStory *string  `json:"introduction_story"`
}

// MoveCardRequest for PUT .../cards/{cardID}/move
type MoveCardRequest struct {
	SourceGroupID string `json:"source_group_id"`
	TargetGroupID string `json:"target_group_id"`
}

// CardOrderRequest for PUT .../groups/{groupID}/cards/order
type CardOrderRequest struct {
	CardIDs []string `json:"card_ids"`
}

// CreateRelationshipRequest for POST .../relationships
type CreateRelationshipRequest struct {
	SourceCharacterID string  `json:"source_character_id"`
	TargetCharacterID string  `json:"target_character_id"`
	Type              string  `json:"type"`
	Description       *string `json:"description"`
}

// UpdateRelationshipRequest for PUT .../relationships/{relationshipID}
type UpdateRelationshipRequest struct {
	Type        string  `json:"type"`
	Description *string `json:"description"`
}

// PhaseOrderRequest for PUT .../relationships/{relationshipID}/phase_order
type PhaseOrderRequest struct {
	PhaseOrder int `json:"phase_order"`
}

// CreatePhaseRequest for POST .../relationships/{relationshipID}/phases
type CreatePhaseRequest struct {
	PhaseOrder            int     `json:"phase_order"`
	Type                  string  `json:"type"`
	Description           *string `json:"description"`
	TriggerDescription    *string `json:"trigger_description"`
	SourceToTargetAddress *string `json:"source_to_target_address"`
	SourceToTargetTone    *string `json:"source_to_target_tone"`
	TargetToSourceAddress *string `json:"target_to_source_address"`
	TargetToSourceTone    *string `json:"target_to_source_tone"`
}

// CastHandler handles character groups, cards, and relationships.
type CastHandler struct {
	cast   services.CastService
	logger *zap.Logger
}

// NewCastHandler creates a new cast handler.
func NewCastHandler(cast services.CastService, logger *zap.Logger) *CastHandler {
	return &CastHandler{cast: cast, logger: logger}
}

// RegisterRoutes registers the cast routes on the given mux.
func (h *CastHandler) RegisterRoutes(mux *http.ServeMux, guardMW, txMW Middleware) {
	base := "/api/v1/projects/{projectID}"

	mux.HandleFunc("POST "+base+"/groups", chain(h.CreateGroup, guardMW, txMW))
	mux.HandleFunc("DELETE "+base+"/groups/{groupID}", chain(h.DeleteGroup, guardMW, txMW))

	mux.HandleFunc("POST "+base+"/groups/{groupID}/cards", chain(h.CreateCard, guardMW, txMW))
	mux.HandleFunc("PUT "+base+"/groups/{groupID}/cards/order", chain(h.ReorderCards, guardMW, txMW))
	mux.HandleFunc("DELETE "+base+"/groups/{groupID}/cards/{cardID}", chain(h.DeleteCard, guardMW, txMW))
	mux.HandleFunc("PUT "+base+"/cards/{cardID}", chain(h.UpdateCard, guardMW, txMW))
	mux.HandleFunc("PUT "+base+"/cards/{cardID}/move", chain(h.MoveCard, guardMW, txMW))

	mux.HandleFunc("POST "+base+"/relationships", chain(h.CreateRelationship, guardMW, txMW))
	mux.HandleFunc("PUT "+base+"/relationships/{relationshipID}", chain(h.UpdateRelationship, guardMW, txMW))
	mux.HandleFunc("DELETE "+base+"/relationships/{relationshipID}", chain(h.DeleteRelationship, guardMW, txMW))
	mux.HandleFunc("PUT "+base+"/relationships/{relationshipID}/phase_order", chain(h.SetPhaseOrder, guardMW, txMW))

	mux.HandleFunc("GET "+base+"/relationships/{relationshipID}/phases", chain(h.ListPhases, guardMW))
	mux.HandleFunc("POST "+base+"/relationships/{relationshipID}/phases", chain(h.CreatePhase, guardMW, txMW))
	mux.HandleFunc("PUT "+base+"/relationship_phases/{phaseID}", chain(h.UpdatePhase, guardMW, txMW))
	mux.HandleFunc("DELETE "+base+"/relationship_phases/{phaseID}", chain(h.DeletePhase, guardMW, txMW))
}

// CreateGroup handles POST /api/v1/projects/{projectID}/groups
func (h *CastHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	group, err := h.cast.CreateGroup(r.Context(), r.PathValue("projectID"), req.Name)
	if err != nil {
		HandleError(w, h.logger, err, "create_group_failed")
		return
	}
	if err := WriteJSON(w, http.StatusCreated, group); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// DeleteGroup handles DELETE .../groups/{groupID}
func (h *CastHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	err := h.cast.DeleteGroup(r.Context(), r.PathValue("projectID"), r.PathValue("groupID"))
	if err != nil {
		HandleError(w, h.logger, err, "delete_group_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateCard handles POST .../groups/{groupID}/cards
func (h *CastHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req CreateCardRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	card := &models.Card{
		Name:              req.Name,
		Description:       req.Description,
		Goal:              req.Goal,
		Personality:       req.Personality,
		Abilities:         req.Abilities,
		Quote:             req.Quote,
		IntroductionStory: req.IntroductionStory,
	}
	created, err := h.cast.CreateCard(r.Context(), r.PathValue("projectID"), r.PathValue("groupID"), card)
	if err != nil {
		HandleError(w, h.logger, err, "create_card_failed")
		return
	}
	if err := WriteJSON(w, http.StatusCreated, created); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdateCard handles PUT .../cards/{cardID}
func (h *CastHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	var update models.CardUpdate
	if !DecodeJSON(w, r, h.logger, &update) {
		return
	}

	err := h.cast.UpdateCard(r.Context(), r.PathValue("projectID"), r.PathValue("cardID"), update)
	if err != nil {
		HandleError(w, h.logger, err, "update_card_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteCard handles DELETE .../groups/{groupID}/cards/{cardID}
func (h *CastHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	err := h.cast.DeleteCard(r.Context(),
		r.PathValue("projectID"), r.PathValue("groupID"), r.PathValue("cardID"))
	if err != nil {
		HandleError(w, h.logger, err, "delete_card_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveCard handles PUT .../cards/{cardID}/move
func (h *CastHandler) MoveCard(w http.ResponseWriter, r *http.Request) {
	var req MoveCardRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	err := h.cast.MoveCard(r.Context(),
		r.PathValue("projectID"), r.PathValue("cardID"), req.SourceGroupID, req.TargetGroupID)
	if err != nil {
		HandleError(w, h.logger, err, "move_card_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderCards handles PUT .../groups/{groupID}/cards/order
func (h *CastHandler) ReorderCards(w http.ResponseWriter, r *http.Request) {
	var req CardOrderRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	err := h.cast.ReorderCards(r.Context(),
		r.PathValue("projectID"), r.PathValue("groupID"), req.CardIDs)
	if err != nil {
		HandleError(w, h.logger, err, "reorder_cards_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateRelationship handles POST .../relationships
func (h *CastHandler) CreateRelationship(w http.ResponseWriter, r *http.Request) {
	var req CreateRelationshipRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	rel := &models.Relationship{
		SourceCharacterID: req.SourceCharacterID,
		TargetCharacterID: req.TargetCharacterID,
		Type:              req.Type,
		Description:       req.Description,
	}
	created, err := h.cast.CreateRelationship(r.Context(), r.PathValue("projectID"), rel)
	if err != nil {
		HandleError(w, h.logger, err, "create_relationship_failed")
		return
	}
	if err := WriteJSON(w, http.StatusCreated, created); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdateRelationship handles PUT .../relationships/{relationshipID}
func (h *CastHandler) UpdateRelationship(w http.ResponseWriter, r *http.Request) {
	var req UpdateRelationshipRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	rel, err := h.cast.UpdateRelationship(r.Context(),
		r.PathValue("projectID"), r.PathValue("relationshipID"), req.Type, req.Description)
	if err != nil {
		HandleError(w, h.logger, err, "update_relationship_failed")
		return
	}
	if err := WriteJSON(w, http.StatusOK, rel); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// DeleteRelationship handles DELETE .../relationships/{relationshipID}
func (h *CastHandler) DeleteRelationship(w http.ResponseWriter, r *http.Request) {
	err := h.cast.DeleteRelationship(r.Context(),
		r.PathValue("projectID"), r.PathValue("relationshipID"))
	if err != nil {
		HandleError(w, h.logger, err, "delete_relationship_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetPhaseOrder handles PUT .../relationships/{relationshipID}/phase_order
func (h *CastHandler) SetPhaseOrder(w http.ResponseWriter, r *http.Request) {
	var req PhaseOrderRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	err := h.cast.SetRelationshipPhaseOrder(r.Context(),
		r.PathValue("projectID"), r.PathValue("relationshipID"), req.PhaseOrder)
	if err != nil {
		HandleError(w, h.logger, err, "set_phase_order_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListPhases handles GET .../relationships/{relationshipID}/phases
func (h *CastHandler) ListPhases(w http.ResponseWriter, r *http.Request) {
	phases, err := h.cast.ListPhases(r.Context(),
		r.PathValue("projectID"), r.PathValue("relationshipID"))
	if err != nil {
		HandleError(w, h.logger, err, "list_phases_failed")
		return
	}
	if phases == nil {
		phases = []models.RelationshipPhase{}
	}
	if err := WriteJSON(w, http.StatusOK, map[string]any{"phases": phases}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CreatePhase handles POST .../relationships/{relationshipID}/phases
func (h *CastHandler) CreatePhase(w http.ResponseWriter, r *http.Request) {
	var req CreatePhaseRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	phase := &models.RelationshipPhase{
		RelationshipID:        r.PathValue("relationshipID"),
		PhaseOrder:            req.PhaseOrder,
		Type:                  req.Type,
		Description:           req.Description,
		TriggerDescription:    req.TriggerDescription,
		SourceToTargetAddress: req.SourceToTargetAddress,
		SourceToTargetTone:    req.SourceToTargetTone,
		TargetToSourceAddress: req.TargetToSourceAddress,
		TargetToSourceTone:    req.TargetToSourceTone,
	}
	created, err := h.cast.CreatePhase(r.Context(), r.PathValue("projectID"), phase)
	if err != nil {
		HandleError(w, h.logger, err, "create_phase_failed")
		return
	}
	if err := WriteJSON(w, http.StatusCreated, created); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdatePhase handles PUT .../relationship_phases/{phaseID}
func (h *CastHandler) UpdatePhase(w http.ResponseWriter, r *http.Request) {
	var update models.RelationshipPhaseUpdate
	if !DecodeJSON(w, r, h.logger, &update) {
		return
	}

	err := h.cast.UpdatePhase(r.Context(), r.PathValue("projectID"), r.PathValue("phaseID"), update)
	if err != nil {
		HandleError(w, h.logger, err, "update_phase_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeletePhase handles DELETE .../relationship_phases/{phaseID}
func (h *CastHandler) DeletePhase(w http.ResponseWriter, r *http.Request) {
	err := h.cast.DeletePhase(r.Context(), r.PathValue("projectID"), r.PathValue("phaseID"))
	if err != nil {
		HandleError(w, h.logger, err, "delete_phase_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
