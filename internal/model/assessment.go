package model

import "time"

// Framework represents a supported compliance framework.
type Framework string

const (
	FrameworkIEC62443 Framework = "IEC62443"
	FrameworkNIST     Framework = "NIST"
)

// AssessmentStatus represents assessment status values.
type AssessmentStatus string

const (
	AssessmentStatusInProgress AssessmentStatus = "In Progress"
	AssessmentStatusCompleted  AssessmentStatus = "Completed"
	AssessmentStatusDraft      AssessmentStatus = "Draft"
)

// Valid reports whether the status is a known value.
func (s AssessmentStatus) Valid() bool {
	switch s {
	case AssessmentStatusInProgress, AssessmentStatusCompleted, AssessmentStatusDraft:
		return true
	}
	return false
}

// Answer represents a questionnaire answer.
type Answer string

const (
	AnswerYes     Answer = "Yes"
	AnswerNo      Answer = "No"
	AnswerPartial Answer = "Partial"
	AnswerNA      Answer = "N/A"
)

// Valid reports whether the answer is a known value.
func (a Answer) Valid() bool {
	switch a {
	case AnswerYes, AnswerNo, AnswerPartial, AnswerNA:
		return true
	}
	return false
}

// Assessment represents one compliance evaluation run.
type Assessment struct {
	ID           int64            `json:"id" db:"id"`
	Name         string           `json:"name" db:"name"`
	Framework    Framework        `json:"framework" db:"framework"`
	OverallScore *float64         `json:"overall_score" db:"overall_score"` // percentage, nil until computed
	Status       AssessmentStatus `json:"status" db:"status"`
	Description  string           `json:"description,omitempty" db:"description"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at" db:"updated_at"`
}

// AssessmentDetail is an assessment together with its questions.
type AssessmentDetail struct {
	Assessment
	Questions []*AssessmentQuestion `json:"questions"`
}

// AssessmentQuestion represents one questionnaire item belonging to an assessment.
type AssessmentQuestion struct {
	ID           int64     `json:"id" db:"id"`
	AssessmentID int64     `json:"assessment_id" db:"assessment_id"`
	Category     string    `json:"category" db:"category"`
	Question     string    `json:"question" db:"question"`
	Answer       *Answer   `json:"answer" db:"answer"`
	Score        *int      `json:"score" db:"score"` // 0-5 scale, nil until scored
	Notes        string    `json:"notes,omitempty" db:"notes"`
	Evidence     string    `json:"evidence,omitempty" db:"evidence"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// CreateAssessmentRequest represents a request to start a new assessment.
type CreateAssessmentRequest struct {
	Name        string           `json:"name"`
	Framework   Framework        `json:"framework"`
	Description string           `json:"description,omitempty"`
	Status      AssessmentStatus `json:"status,omitempty"`
}

// UpdateAssessmentRequest represents a partial update to an assessment.
type UpdateAssessmentRequest struct {
	Name         *string           `json:"name,omitempty"`
	Framework    *Framework        `json:"framework,omitempty"`
	Description  *string           `json:"description,omitempty"`
	Status       *AssessmentStatus `json:"status,omitempty"`
	OverallScore *float64          `json:"overall_score,omitempty"`
}

// UpdateQuestionRequest represents a partial update to an assessment question.
// Answer and score distinguish explicit nulls from absent fields so a question
// can be returned to the unanswered state.
type UpdateQuestionRequest struct {
	Answer   Optional[Answer] `json:"answer"`
	Score    Optional[int]    `json:"score"`
	Notes    *string          `json:"notes,omitempty"`
	Evidence *string          `json:"evidence,omitempty"`
}

// AssessmentFilter defines filters for listing assessments.
type AssessmentFilter struct {
	Framework Framework
	Status    AssessmentStatus
}
