package service

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/gloomyleo/CyberOT/internal/catalog"
	"github.com/gloomyleo/CyberOT/internal/model"
	apperrors "github.com/gloomyleo/CyberOT/pkg/errors"
)

// AssessmentStore is the persistence surface the assessment service needs.
type AssessmentStore interface {
	List(ctx context.Context, filter *model.AssessmentFilter) ([]*model.Assessment, error)
	Get(ctx context.Context, id int64) (*model.Assessment, error)
	CreateWithQuestions(ctx context.Context, assessment *model.Assessment, questions []*model.AssessmentQuestion) error
	Update(ctx context.Context, assessment *model.Assessment) error
	DeleteCascade(ctx context.Context, id int64) error
	Questions(ctx context.Context, assessmentID int64) ([]*model.AssessmentQuestion, error)
	GetQuestion(ctx context.Context, assessmentID, questionID int64) (*model.AssessmentQuestion, error)
	UpdateQuestion(ctx context.Context, question *model.AssessmentQuestion) error
	Scores(ctx context.Context, assessmentID int64) ([]int, error)
	SetOverallScore(ctx context.Context, assessmentID int64, score float64) error
}

const maxQuestionScore = 5

// AssessmentService provides assessment lifecycle and scoring operations.
type AssessmentService struct {
	repo AssessmentStore
}

// NewAssessmentService creates a new assessment service.
func NewAssessmentService(repo AssessmentStore) *AssessmentService {
	return &AssessmentService{repo: repo}
}

// ListAssessments retrieves assessments matching the filter.
func (s *AssessmentService) ListAssessments(ctx context.Context, filter *model.AssessmentFilter) ([]*model.Assessment, error) {
	return s.repo.List(ctx, filter)
}

// GetAssessment retrieves an assessment with its questions.
func (s *AssessmentService) GetAssessment(ctx context.Context, id int64) (*model.AssessmentDetail, error) {
	assessment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	questions, err := s.repo.Questions(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.AssessmentDetail{
		Assessment: *assessment,
		Questions:  questions,
	}, nil
}

// CreateAssessment validates the request and creates an assessment seeded
// with its framework's question catalog, in one transaction. Unsupported
// framework values are rejected rather than silently seeding nothing.
func (s *AssessmentService) CreateAssessment(ctx context.Context, req *model.CreateAssessmentRequest) (*model.Assessment, error) {
	if req.Name == "" {
		return nil, apperrors.Validation("name is required")
	}
	if req.Framework == "" {
		return nil, apperrors.Validation("framework is required")
	}
	entries, ok := catalog.Questions(req.Framework)
	if !ok {
		return nil, apperrors.Validation("framework must be one of IEC62443, NIST")
	}

	status := req.Status
	if status == "" {
		status = model.AssessmentStatusInProgress
	}
	if !status.Valid() {
		return nil, apperrors.Validation("status must be one of In Progress, Completed, Draft")
	}

	now := time.Now().UTC()
	assessment := &model.Assessment{
		Name:        req.Name,
		Framework:   req.Framework,
		Status:      status,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	questions := make([]*model.AssessmentQuestion, len(entries))
	for i, entry := range entries {
		questions[i] = &model.AssessmentQuestion{
			Category:  entry.Category,
			Question:  entry.Question,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	if err := s.repo.CreateWithQuestions(ctx, assessment, questions); err != nil {
		return nil, err
	}
	return assessment, nil
}

// UpdateAssessment applies a partial update; omitted fields keep their value.
func (s *AssessmentService) UpdateAssessment(ctx context.Context, id int64, req *model.UpdateAssessmentRequest) (*model.Assessment, error) {
	assessment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, apperrors.Validation("name cannot be empty")
		}
		assessment.Name = *req.Name
	}
	if req.Framework != nil {
		if !catalog.Supported(*req.Framework) {
			return nil, apperrors.Validation("framework must be one of IEC62443, NIST")
		}
		assessment.Framework = *req.Framework
	}
	if req.Description != nil {
		assessment.Description = *req.Description
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperrors.Validation("status must be one of In Progress, Completed, Draft")
		}
		assessment.Status = *req.Status
	}
	if req.OverallScore != nil {
		assessment.OverallScore = req.OverallScore
	}

	assessment.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

// DeleteAssessment removes an assessment and all of its questions.
func (s *AssessmentService) DeleteAssessment(ctx context.Context, id int64) error {
	return s.repo.DeleteCascade(ctx, id)
}

// UpdateQuestion applies a partial update to a question and then recomputes
// the assessment's overall score. A recompute failure never fails the
// question update itself; it is logged and swallowed.
func (s *AssessmentService) UpdateQuestion(ctx context.Context, assessmentID, questionID int64, req *model.UpdateQuestionRequest) (*model.AssessmentQuestion, error) {
	question, err := s.repo.GetQuestion(ctx, assessmentID, questionID)
	if err != nil {
		return nil, err
	}

	if req.Answer.Set {
		if req.Answer.Value != nil && !req.Answer.Value.Valid() {
			return nil, apperrors.Validation("answer must be one of Yes, No, Partial, N/A")
		}
		question.Answer = req.Answer.Value
	}
	if req.Score.Set {
		if req.Score.Value != nil && (*req.Score.Value < 0 || *req.Score.Value > maxQuestionScore) {
			return nil, apperrors.Validation("score must be between 0 and 5")
		}
		question.Score = req.Score.Value
	}
	if req.Notes != nil {
		question.Notes = *req.Notes
	}
	if req.Evidence != nil {
		question.Evidence = *req.Evidence
	}

	question.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateQuestion(ctx, question); err != nil {
		return nil, err
	}

	if err := s.recalculateScore(ctx, assessmentID); err != nil {
		slog.Error("failed to recalculate assessment score",
			"assessment_id", assessmentID,
			"question_id", questionID,
			"error", err,
		)
	}

	return question, nil
}

// recalculateScore derives the overall score as a percentage of the maximum
// possible across answered questions only. With no answered questions the
// stored score is left untouched.
func (s *AssessmentService) recalculateScore(ctx context.Context, assessmentID int64) error {
	scores, err := s.repo.Scores(ctx, assessmentID)
	if err != nil {
		return err
	}
	if len(scores) == 0 {
		return nil
	}

	total := 0
	for _, score := range scores {
		total += score
	}

	overall := float64(total) / float64(len(scores)*maxQuestionScore) * 100
	overall = math.Round(overall*100) / 100

	return s.repo.SetOverallScore(ctx, assessmentID, overall)
}
