package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/models"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/services"
)

// CreateWorldviewGroupRequest for POST .../worldview_groups
type CreateWorldviewGroupRequest struct {
	Name string `json:"name"`
}

// CreateWorldviewCardRequest for POST .../worldview_groups/{groupID}/cards
type CreateWorldviewCardRequest struct {
	Title   string  `json:"title"`
	Content *string `json:"content"`
}

// WorldviewHandler handles the main worldview and its sub-setting tree.
type WorldviewHandler struct {
	worldviews services.WorldviewService
	logger     *zap.Logger
}

// NewWorldviewHandler creates a new worldview handler.
func NewWorldviewHandler(worldviews services.WorldviewService, logger *zap.Logger) *WorldviewHandler {
	return &WorldviewHandler{worldviews: worldviews, logger: logger}
}

// RegisterRoutes registers the worldview routes on the given mux.
func (h *WorldviewHandler) RegisterRoutes(mux *http.ServeMux, guardMW, txMW Middleware) {
	base := "/api/v1/projects/{projectID}"

	mux.HandleFunc("GET "+base+"/worldview", chain(h.Get, guardMW))
	mux.HandleFunc("PUT "+base+"/worldview", chain(h.Update, guardMW, txMW))

	mux.HandleFunc("POST "+base+"/worldview_groups", chain(h.CreateGroup, guardMW, txMW))
	mux.HandleFunc("DELETE "+base+"/worldview_groups/{groupID}", chain(h.DeleteGroup, guardMW, txMW))

	mux.HandleFunc("POST "+base+"/worldview_groups/{groupID}/cards", chain(h.CreateCard, guardMW, txMW))
	mux.HandleFunc("PUT "+base+"/worldview_groups/{groupID}/cards/order", chain(h.ReorderCards, guardMW, txMW))
	mux.HandleFunc("PUT "+base+"/worldview_cards/{cardID}", chain(h.UpdateCard, guardMW, txMW))
	mux.HandleFunc("PUT "+base+"/worldview_cards/{cardID}/move", chain(h.MoveCard, guardMW, txMW))
	mux.HandleFunc("DELETE "+base+"/worldview_cards/{cardID}", chain(h.DeleteCard, guardMW, txMW))
}

// Get handles GET .../worldview
func (h *WorldviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	content, err := h.worldviews.Get(r.Context(), r.PathValue("projectID"))
	if err != nil {
		HandleError(w, h.logger, err, "get_worldview_failed")
		return
	}
	if err := WriteJSON(w, http.StatusOK, content); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT .../worldview
func (h *WorldviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	var content models.WorldviewContent
	if !DecodeJSON(w, r, h.logger, &content) {
		return
	}

	if err := h.worldviews.Update(r.Context(), r.PathValue("projectID"), content); err != nil {
		HandleError(w, h.logger, err, "update_worldview_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateGroup handles POST .../worldview_groups
func (h *WorldviewHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req CreateWorldviewGroupRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	group, err := h.worldviews.CreateGroup(r.Context(), r.PathValue("projectID"), req.Name)
	if err != nil {
		HandleError(w, h.logger, err, "create_worldview_group_failed")
		return
	}
	if err := WriteJSON(w, http.StatusCreated, group); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// DeleteGroup handles DELETE .../worldview_groups/{groupID}
func (h *WorldviewHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	err := h.worldviews.DeleteGroup(r.Context(), r.PathValue("projectID"), r.PathValue("groupID"))
	if err != nil {
		HandleError(w, h.logger, err, "delete_worldview_group_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateCard handles POST .../worldview_groups/{groupID}/cards
func (h *WorldviewHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req CreateWorldviewCardRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	card := &models.WorldviewCard{Title: req.Title, Content: req.Content}
	created, err := h.worldviews.CreateCard(r.Context(),
		r.PathValue("projectID"), r.PathValue("groupID"), card)
	if err != nil {
		HandleError(w, h.logger, err, "create_worldview_card_failed")
		return
	}
	if err := WriteJSON(w, http.StatusCreated, created); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdateCard handles PUT .../worldview_cards/{cardID}
func (h *WorldviewHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	var update models.WorldviewCardUpdate
	if !DecodeJSON(w, r, h.logger, &update) {
		return
	}

	err := h.worldviews.UpdateCard(r.Context(), r.PathValue("projectID"), r.PathValue("cardID"), update)
	if err != nil {
		HandleError(w, h.logger, err, "update_worldview_card_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteCard handles DELETE .../worldview_cards/{cardID}
func (h *WorldviewHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	err := h.worldviews.DeleteCard(r.Context(), r.PathValue("projectID"), r.PathValue("cardID"))
	if err != nil {
		HandleError(w, h.logger, err, "delete_worldview_card_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveCard handles PUT .../worldview_cards/{cardID}/move
func (h *WorldviewHandler) MoveCard(w http.ResponseWriter, r *http.Request) {
	var req MoveCardRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	err := h.worldviews.MoveCard(r.Context(),
		r.PathValue("projectID"), r.PathValue("cardID"), req.SourceGroupID, req.TargetGroupID)
	if err != nil {
		HandleError(w, h.logger, err, "move_worldview_card_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderCards handles PUT .../worldview_groups/{groupID}/cards/order
func (h *WorldviewHandler) ReorderCards(w http.ResponseWriter, r *http.Request) {
	var req CardOrderRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	err := h.worldviews.ReorderCards(r.Context(),
		r.PathValue("projectID"), r.PathValue("groupID"), req.CardIDs)
	if err != nil {
		HandleError(w, h.logger, err, "reorder_worldview_cards_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
