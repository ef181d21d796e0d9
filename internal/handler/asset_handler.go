package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gloomyleo/CyberOT/internal/model"
	"github.com/gloomyleo/CyberOT/internal/service"
)

// AssetHandler handles HTTP requests for the asset inventory.
type AssetHandler struct {
	service *service.AssetService
}

// NewAssetHandler creates a new asset handler.
func NewAssetHandler(service *service.AssetService) *AssetHandler {
	return &AssetHandler{service: service}
}

// RegisterRoutes registers asset routes. The stats route is registered before
// the {id} route so "stats" is not captured as an ID.
func (h *AssetHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/assets/stats", h.GetStats).Methods("GET")
	r.HandleFunc("/assets", h.ListAssets).Methods("GET")
	r.HandleFunc("/assets", h.CreateAsset).Methods("POST")
	r.HandleFunc("/assets/{id}", h.GetAsset).Methods("GET")
	r.HandleFunc("/assets/{id}", h.UpdateAsset).Methods("PUT")
	r.HandleFunc("/assets/{id}", h.DeleteAsset).Methods("DELETE")
}

// ListAssets retrieves assets, optionally filtered by query parameters.
func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := &model.AssetFilter{
		Criticality: model.Criticality(query.Get("criticality")),
		Status:      model.AssetStatus(query.Get("status")),
		AssetType:   query.Get("asset_type"),
		Search:      query.Get("search"),
	}

	assets, err := h.service.ListAssets(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, assets)
}

// GetAsset retrieves an asset by ID.
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid asset id")
		return
	}

	asset, err := h.service.GetAsset(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, asset)
}

// CreateAsset registers a new asset.
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	asset, err := h.service.CreateAsset(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, asset)
}

// UpdateAsset applies a partial update to an asset.
func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid asset id")
		return
	}

	var req model.UpdateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	asset, err := h.service.UpdateAsset(r.Context(), id, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, asset)
}

// DeleteAsset removes an asset.
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid asset id")
		return
	}

	if err := h.service.DeleteAsset(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, "Asset deleted successfully")
}

// GetStats retrieves aggregate asset counts.
func (h *AssetHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
