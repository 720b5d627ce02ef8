package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/models"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/services"
)

// BlockOrderRequest for PUT .../manuscript/blocks/order
type BlockOrderRequest struct {
	BlockIDs []string `json:"block_ids"`
}

// ManuscriptHandler handles manuscript block requests.
type ManuscriptHandler struct {
	story  services.StoryService
	logger *zap.Logger
}

// NewManuscriptHandler creates a new manuscript handler.
func NewManuscriptHandler(story services.StoryService, logger *zap.Logger) *ManuscriptHandler {
	return &ManuscriptHandler{story: story, logger: logger}
}

// RegisterRoutes registers the manuscript routes on the given mux.
func (h *ManuscriptHandler) RegisterRoutes(mux *http.ServeMux, guardMW, txMW Middleware) {
	base := "/api/v1/projects/{projectID}/manuscript"

	mux.HandleFunc("GET "+base+"/blocks", chain(h.List, guardMW))
	mux.HandleFunc("POST "+base+"/import", chain(h.Import, guardMW, txMW))
	mux.HandleFunc("DELETE "+base+"/blocks", chain(h.Clear, guardMW, txMW))
	mux.HandleFunc("PUT "+base+"/blocks/order", chain(h.Reorder, guardMW, txMW))
	mux.HandleFunc("PUT "+base+"/blocks/{blockID}", chain(h.Update, guardMW, txMW))
	mux.HandleFunc("DELETE "+base+"/blocks/{blockID}", chain(h.Delete, guardMW, txMW))
}

// List handles GET .../manuscript/blocks
func (h *ManuscriptHandler) List(w http.ResponseWriter, r *http.Request) {
	blocks, err := h.story.ListBlocks(r.Context(), r.PathValue("projectID"))
	if err != nil {
		HandleError(w, h.logger, err, "list_blocks_failed")
		return
	}
	if err := WriteJSON(w, http.StatusOK, blocks); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Import handles POST .../manuscript/import. Existing blocks are replaced by
// the scenario's plot points.
func (h *ManuscriptHandler) Import(w http.ResponseWriter, r *http.Request) {
	blocks, err := h.story.ImportFromScenario(r.Context(), r.PathValue("projectID"))
	if err != nil {
		HandleError(w, h.logger, err, "import_manuscript_failed")
		return
	}
	if err := WriteJSON(w, http.StatusOK, blocks); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Clear handles DELETE .../manuscript/blocks
func (h *ManuscriptHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.story.ClearBlocks(r.Context(), r.PathValue("projectID")); err != nil {
		HandleError(w, h.logger, err, "clear_blocks_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Update handles PUT .../manuscript/blocks/{blockID}
func (h *ManuscriptHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update models.ManuscriptBlockUpdate
	if !DecodeJSON(w, r, h.logger, &update) {
		return
	}

	block, err := h.story.UpdateBlock(r.Context(),
		r.PathValue("projectID"), r.PathValue("blockID"), update)
	if err != nil {
		HandleError(w, h.logger, err, "update_block_failed")
		return
	}
	if err := WriteJSON(w, http.StatusOK, block); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE .../manuscript/blocks/{blockID}
func (h *ManuscriptHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.story.DeleteBlock(r.Context(), r.PathValue("projectID"), r.PathValue("blockID"))
	if err != nil {
		HandleError(w, h.logger, err, "delete_block_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reorder handles PUT .../manuscript/blocks/order
func (h *ManuscriptHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req BlockOrderRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	err := h.story.ReorderBlocks(r.Context(), r.PathValue("projectID"), req.BlockIDs)
	if err != nil {
		HandleError(w, h.logger, err, "reorder_blocks_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
