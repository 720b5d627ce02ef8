package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/models"
	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/services"
)

// CreatePlotPointRequest for POST .../scenarios/{scenarioID}/plot_points
type CreatePlotPointRequest struct {
	Title      string  `json:"title"`
	Content    *string `json:"content"`
	SceneDraft *string `json:"scene_draft"`
}

// PlotPointOrderRequest for PUT .../scenarios/{scenarioID}/plot_points/order
type PlotPointOrderRequest struct {
	PlotPointIDs []string `json:"plot_point_ids"`
}

// ScenarioHandler handles scenarios and their plot points.
type ScenarioHandler struct {
	story  services.StoryService
	logger *zap.Logger
}

// NewScenarioHandler creates a new scenario handler.
func NewScenarioHandler(story services.StoryService, logger *zap.Logger) *ScenarioHandler {
	return &ScenarioHandler{story: story, logger: logger}
}

// RegisterRoutes registers the scenario routes on the given mux.
func (h *ScenarioHandler) RegisterRoutes(mux *http.ServeMux, guardMW, txMW Middleware) {
	base := "/api/v1/projects/{projectID}/scenarios"

	mux.HandleFunc("GET "+base, chain(h.List, guardMW))
	mux.HandleFunc("PUT "+base+"/{scenarioID}", chain(h.Update, guardMW, txMW))

	mux.HandleFunc("POST "+base+"/{scenarioID}/plot_points", chain(h.CreatePlotPoint, guardMW, txMW))
	mux.HandleFunc("PUT "+base+"/{scenarioID}/plot_points/order", chain(h.ReorderPlotPoints, guardMW, txMW))
	mux.HandleFunc("PUT "+base+"/plot_points/{plotPointID}", chain(h.UpdatePlotPoint, guardMW, txMW))
	mux.HandleFunc("DELETE "+base+"/plot_points/{plotPointID}", chain(h.DeletePlotPoint, guardMW, txMW))
}

// List handles GET .../scenarios. The default scenario is created on first
// read, so the list is never empty.
func (h *ScenarioHandler) List(w http.ResponseWriter, r *http.Request) {
	scenarios, err := h.story.ListScenarios(r.Context(), r.PathValue("projectID"))
	if err != nil {
		HandleError(w, h.logger, err, "list_scenarios_failed")
		return
	}
	if err := WriteJSON(w, http.StatusOK, scenarios); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT .../scenarios/{scenarioID}
func (h *ScenarioHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update models.ScenarioUpdate
	if !DecodeJSON(w, r, h.logger, &update) {
		return
	}

	scenario, err := h.story.UpdateScenario(r.Context(),
		r.PathValue("projectID"), r.PathValue("scenarioID"), update)
	if err != nil {
		HandleError(w, h.logger, err, "update_scenario_failed")
		return
	}
	if err := WriteJSON(w, http.StatusOK, scenario); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CreatePlotPoint handles POST .../scenarios/{scenarioID}/plot_points
func (h *ScenarioHandler) CreatePlotPoint(w http.ResponseWriter, r *http.Request) {
	var req CreatePlotPointRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	point := &models.PlotPoint{
		Title:      req.Title,
		Content:    req.Content,
		SceneDraft: req.SceneDraft,
	}
	created, err := h.story.CreatePlotPoint(r.Context(),
		r.PathValue("projectID"), r.PathValue("scenarioID"), point)
	if err != nil {
		HandleError(w, h.logger, err, "create_plot_point_failed")
		return
	}
	if err := WriteJSON(w, http.StatusCreated, created); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdatePlotPoint handles PUT .../scenarios/plot_points/{plotPointID}
func (h *ScenarioHandler) UpdatePlotPoint(w http.ResponseWriter, r *http.Request) {
	var update models.PlotPointUpdate
	if !DecodeJSON(w, r, h.logger, &update) {
		return
	}

	point, err := h.story.UpdatePlotPoint(r.Context(),
		r.PathValue("projectID"), r.PathValue("plotPointID"), update)
	if err != nil {
		HandleError(w, h.logger, err, "update_plot_point_failed")
		return
	}
	if err := WriteJSON(w, http.StatusOK, point); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// DeletePlotPoint handles DELETE .../scenarios/plot_points/{plotPointID}
func (h *ScenarioHandler) DeletePlotPoint(w http.ResponseWriter, r *http.Request) {
	err := h.story.DeletePlotPoint(r.Context(),
		r.PathValue("projectID"), r.PathValue("plotPointID"))
	if err != nil {
		HandleError(w, h.logger, err, "delete_plot_point_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderPlotPoints handles PUT .../scenarios/{scenarioID}/plot_points/order
func (h *ScenarioHandler) ReorderPlotPoints(w http.ResponseWriter, r *http.Request) {
	var req PlotPointOrderRequest
	if !DecodeJSON(w, r, h.logger, &req) {
		return
	}

	err := h.story.ReorderPlotPoints(r.Context(),
		r.PathValue("projectID"), r.PathValue("scenarioID"), req.PlotPointIDs)
	if err != nil {
		HandleError(w, h.logger, err, "reorder_plot_points_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
