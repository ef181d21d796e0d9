package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gloomyleo/CyberOT/internal/model"
	"github.com/gloomyleo/CyberOT/internal/service"
)

// AssessmentHandler handles HTTP requests for compliance assessments.
type AssessmentHandler struct {
	service *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler.
func NewAssessmentHandler(service *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{service: service}
}

// RegisterRoutes registers assessment routes.
func (h *AssessmentHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/assessments", h.ListAssessments).Methods("GET")
	r.HandleFunc("/assessments", h.CreateAssessment).Methods("POST")
	r.HandleFunc("/assessments/{id}", h.GetAssessment).Methods("GET")
	r.HandleFunc("/assessments/{id}", h.UpdateAssessment).Methods("PUT")
	r.HandleFunc("/assessments/{id}", h.DeleteAssessment).Methods("DELETE")
	r.HandleFunc("/assessments/{id}/questions/{qid}", h.UpdateQuestion).Methods("PUT")
}

// ListAssessments retrieves assessments, optionally filtered by query
// parameters.
func (h *AssessmentHandler) ListAssessments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := &model.AssessmentFilter{
		Framework: model.Framework(query.Get("framework")),
		Status:    model.AssessmentStatus(query.Get("status")),
	}

	assessments, err := h.service.ListAssessments(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, assessments)
}

// GetAssessment retrieves an assessment together with its questions.
func (h *AssessmentHandler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid assessment id")
		return
	}

	detail, err := h.service.GetAssessment(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// CreateAssessment creates an assessment seeded with its framework's
// question catalog.
func (h *AssessmentHandler) CreateAssessment(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	assessment, err := h.service.CreateAssessment(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, assessment)
}

// UpdateAssessment applies a partial update to an assessment.
func (h *AssessmentHandler) UpdateAssessment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid assessment id")
		return
	}

	var req model.UpdateAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	assessment, err := h.service.UpdateAssessment(r.Context(), id, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, assessment)
}

// DeleteAssessment removes an assessment and its questions.
func (h *AssessmentHandler) DeleteAssessment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid assessment id")
		return
	}

	if err := h.service.DeleteAssessment(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, "Assessment deleted successfully")
}

// UpdateQuestion applies a partial update to one question and triggers
// rescoring of the owning assessment.
func (h *AssessmentHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid assessment id")
		return
	}
	qid, ok := pathID(r, "qid")
	if !ok {
		respondBadRequest(w, "invalid question id")
		return
	}

	var req model.UpdateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	question, err := h.service.UpdateQuestion(r.Context(), id, qid, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, question)
}
