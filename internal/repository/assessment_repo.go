package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gloomyleo/CyberOT/internal/model"
	apperrors "github.com/gloomyleo/CyberOT/pkg/errors"
)

// AssessmentRepository handles assessment and question persistence.
type AssessmentRepository struct {
	store *Store
}

// NewAssessmentRepository creates a new assessment repository.
func NewAssessmentRepository(store *Store) *AssessmentRepository {
	return &AssessmentRepository{store: store}
}

// List retrieves assessments matching the filter, newest first.
func (r *AssessmentRepository) List(ctx context.Context, filter *model.AssessmentFilter) ([]*model.Assessment, error) {
	query := `SELECT * FROM assessments WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if filter != nil {
		if filter.Framework != "" {
			query += fmt.Sprintf(" AND framework = $%d", argIndex)
			args = append(args, filter.Framework)
			argIndex++
		}
		if filter.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", argIndex)
			args = append(args, filter.Status)
			argIndex++
		}
	}

	query += " ORDER BY created_at DESC, id DESC"

	assessments := []*model.Assessment{}
	if err := r.store.db.SelectContext(ctx, &assessments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	return assessments, nil
}

// Get retrieves an assessment by ID.
func (r *AssessmentRepository) Get(ctx context.Context, id int64) (*model.Assessment, error) {
	var assessment model.Assessment
	err := r.store.db.GetContext(ctx, &assessment, `SELECT * FROM assessments WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("assessment")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return &assessment, nil
}

// CreateWithQuestions inserts an assessment and its seeded questions in one
// transaction. Generated IDs are filled in on the passed structs.
func (r *AssessmentRepository) CreateWithQuestions(ctx context.Context, assessment *model.Assessment, questions []*model.AssessmentQuestion) error {
	return r.store.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO assessments (name, framework, overall_score, status, description, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`
		err := tx.QueryRowContext(ctx, query,
			assessment.Name, assessment.Framework, assessment.OverallScore,
			assessment.Status, assessment.Description, assessment.CreatedAt, assessment.UpdatedAt,
		).Scan(&assessment.ID)
		if err != nil {
			return fmt.Errorf("failed to create assessment: %w", err)
		}

		questionQuery := `
			INSERT INTO assessment_questions (assessment_id, category, question, answer, score, notes, evidence, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`
		for _, q := range questions {
			q.AssessmentID = assessment.ID
			err := tx.QueryRowContext(ctx, questionQuery,
				q.AssessmentID, q.Category, q.Question, q.Answer, q.Score,
				q.Notes, q.Evidence, q.CreatedAt, q.UpdatedAt,
			).Scan(&q.ID)
			if err != nil {
				return fmt.Errorf("failed to seed assessment question: %w", err)
			}
		}
		return nil
	})
}

// Update writes all mutable fields of an existing assessment.
func (r *AssessmentRepository) Update(ctx context.Context, assessment *model.Assessment) error {
	query := `
		UPDATE assessments SET
			name = :name,
			framework = :framework,
			overall_score = :overall_score,
			status = :status,
			description = :description,
			updated_at = :updated_at
		WHERE id = :id
	`
	result, err := r.store.db.NamedExecContext(ctx, query, assessment)
	if err != nil {
		return fmt.Errorf("failed to update assessment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotFound("assessment")
	}
	return nil
}

// DeleteCascade removes an assessment and all of its questions in one
// transaction. The question delete is explicit rather than relying on
// declarative cascading.
func (r *AssessmentRepository) DeleteCascade(ctx context.Context, id int64) error {
	return r.store.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM assessment_questions WHERE assessment_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete assessment questions: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM assessments WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete assessment: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperrors.NotFound("assessment")
		}
		return nil
	})
}

// Questions retrieves all questions of an assessment in catalog order.
func (r *AssessmentRepository) Questions(ctx context.Context, assessmentID int64) ([]*model.AssessmentQuestion, error) {
	questions := []*model.AssessmentQuestion{}
	query := `SELECT * FROM assessment_questions WHERE assessment_id = $1 ORDER BY id ASC`
	if err := r.store.db.SelectContext(ctx, &questions, query, assessmentID); err != nil {
		return nil, fmt.Errorf("failed to list assessment questions: %w", err)
	}
	return questions, nil
}

// GetQuestion retrieves one question scoped to its assessment.
func (r *AssessmentRepository) GetQuestion(ctx context.Context, assessmentID, questionID int64) (*model.AssessmentQuestion, error) {
	var question model.AssessmentQuestion
	query := `SELECT * FROM assessment_questions WHERE id = $1 AND assessment_id = $2`
	err := r.store.db.GetContext(ctx, &question, query, questionID, assessmentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("assessment question")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment question: %w", err)
	}
	return &question, nil
}

// UpdateQuestion writes all mutable fields of an existing question.
func (r *AssessmentRepository) UpdateQuestion(ctx context.Context, question *model.AssessmentQuestion) error {
	query := `
		UPDATE assessment_questions SET
			answer = :answer,
			score = :score,
			notes = :notes,
			evidence = :evidence,
			updated_at = :updated_at
		WHERE id = :id AND assessment_id = :assessment_id
	`
	result, err := r.store.db.NamedExecContext(ctx, query, question)
	if err != nil {
		return fmt.Errorf("failed to update assessment question: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotFound("assessment question")
	}
	return nil
}

// Scores retrieves the non-null scores of an assessment's questions.
func (r *AssessmentRepository) Scores(ctx context.Context, assessmentID int64) ([]int, error) {
	scores := []int{}
	query := `SELECT score FROM assessment_questions WHERE assessment_id = $1 AND score IS NOT NULL`
	if err := r.store.db.SelectContext(ctx, &scores, query, assessmentID); err != nil {
		return nil, fmt.Errorf("failed to collect question scores: %w", err)
	}
	return scores, nil
}

// SetOverallScore writes a recomputed overall score to the assessment.
func (r *AssessmentRepository) SetOverallScore(ctx context.Context, assessmentID int64, score float64) error {
	result, err := r.store.db.ExecContext(ctx,
		`UPDATE assessments SET overall_score = $1, updated_at = now() WHERE id = $2`,
		score, assessmentID,
	)
	if err != nil {
		return fmt.Errorf("failed to set overall score: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotFound("assessment")
	}
	return nil
}
