package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gloomyleo/CyberOT/internal/model"
	"github.com/gloomyleo/CyberOT/internal/service"
)

// ConfigurationHandler handles HTTP requests for configuration baselines and
// their deviations.
type ConfigurationHandler struct {
	baselines  *service.BaselineService
	deviations *service.DeviationService
}

// NewConfigurationHandler creates a new configuration handler.
func NewConfigurationHandler(baselines *service.BaselineService, deviations *service.DeviationService) *ConfigurationHandler {
	return &ConfigurationHandler{baselines: baselines, deviations: deviations}
}

// RegisterRoutes registers baseline and deviation routes. The deviation stats
// route is registered before the {id} route so "stats" is not captured as an
// ID.
func (h *ConfigurationHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/configuration-baselines", h.ListBaselines).Methods("GET")
	r.HandleFunc("/configuration-baselines", h.CreateBaseline).Methods("POST")
	r.HandleFunc("/configuration-baselines/{id}", h.GetBaseline).Methods("GET")
	r.HandleFunc("/configuration-baselines/{id}", h.UpdateBaseline).Methods("PUT")
	r.HandleFunc("/configuration-baselines/{id}", h.DeleteBaseline).Methods("DELETE")

	r.HandleFunc("/configuration-deviations/stats", h.GetDeviationStats).Methods("GET")
	r.HandleFunc("/configuration-deviations", h.ListDeviations).Methods("GET")
	r.HandleFunc("/configuration-deviations", h.CreateDeviation).Methods("POST")
	r.HandleFunc("/configuration-deviations/{id}", h.GetDeviation).Methods("GET")
	r.HandleFunc("/configuration-deviations/{id}", h.UpdateDeviation).Methods("PUT")
	r.HandleFunc("/configuration-deviations/{id}", h.DeleteDeviation).Methods("DELETE")
}

// ListBaselines retrieves baselines, optionally filtered by asset type.
func (h *ConfigurationHandler) ListBaselines(w http.ResponseWriter, r *http.Request) {
	baselines, err := h.baselines.ListBaselines(r.Context(), r.URL.Query().Get("asset_type"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, baselines)
}

// GetBaseline retrieves a baseline by ID.
func (h *ConfigurationHandler) GetBaseline(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid baseline id")
		return
	}

	baseline, err := h.baselines.GetBaseline(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, baseline)
}

// CreateBaseline creates a configuration baseline.
func (h *ConfigurationHandler) CreateBaseline(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBaselineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	baseline, err := h.baselines.CreateBaseline(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, baseline)
}

// UpdateBaseline applies a partial update to a baseline.
func (h *ConfigurationHandler) UpdateBaseline(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid baseline id")
		return
	}

	var req model.UpdateBaselineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	baseline, err := h.baselines.UpdateBaseline(r.Context(), id, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, baseline)
}

// DeleteBaseline removes a baseline.
func (h *ConfigurationHandler) DeleteBaseline(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid baseline id")
		return
	}

	if err := h.baselines.DeleteBaseline(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, "Configuration baseline deleted successfully")
}

// ListDeviations retrieves deviations, optionally filtered by query
// parameters.
func (h *ConfigurationHandler) ListDeviations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := &model.DeviationFilter{
		RiskLevel: model.RiskLevel(query.Get("risk_level")),
		Status:    model.DeviationStatus(query.Get("status")),
	}
	if assetID, err := strconv.ParseInt(query.Get("asset_id"), 10, 64); err == nil {
		filter.AssetID = assetID
	}
	if baselineID, err := strconv.ParseInt(query.Get("baseline_id"), 10, 64); err == nil {
		filter.BaselineID = baselineID
	}

	deviations, err := h.deviations.ListDeviations(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, deviations)
}

// GetDeviation retrieves a deviation by ID.
func (h *ConfigurationHandler) GetDeviation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid deviation id")
		return
	}

	deviation, err := h.deviations.GetDeviation(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, deviation)
}

// CreateDeviation records a configuration deviation.
func (h *ConfigurationHandler) CreateDeviation(w http.ResponseWriter, r *http.Request) {
	var req model.CreateDeviationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	deviation, err := h.deviations.CreateDeviation(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, deviation)
}

// UpdateDeviation applies a partial update to a deviation.
func (h *ConfigurationHandler) UpdateDeviation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid deviation id")
		return
	}

	var req model.UpdateDeviationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	deviation, err := h.deviations.UpdateDeviation(r.Context(), id, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, deviation)
}

// DeleteDeviation removes a deviation.
func (h *ConfigurationHandler) DeleteDeviation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid deviation id")
		return
	}

	if err := h.deviations.DeleteDeviation(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, "Configuration deviation deleted successfully")
}

// GetDeviationStats retrieves aggregate deviation counts.
func (h *ConfigurationHandler) GetDeviationStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.deviations.GetStats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
