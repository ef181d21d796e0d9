package handler_test

import (
	"context"
	"sort"

	"github.com/gloomyleo/CyberOT/internal/model"
	apperrors "github.com/gloomyleo/CyberOT/pkg/errors"
)

// In-memory stores wired under the real services so the handler tests run
// the full request path without a database.

type memAssetStore struct {
	assets map[int64]*model.Asset
	nextID int64
}

func newMemAssetStore() *memAssetStore {
	return &memAssetStore{assets: make(map[int64]*model.Asset)}
}

func (m *memAssetStore) List(_ context.Context, filter *model.AssetFilter) ([]*model.Asset, error) {
	ids := make([]int64, 0, len(m.assets))
	for id := range m.assets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := []*model.Asset{}
	for _, id := range ids {
		asset := m.assets[id]
		if filter != nil {
			if filter.Criticality != "" && asset.Criticality != filter.Criticality {
				continue
			}
			if filter.Status != "" && asset.Status != filter.Status {
				continue
			}
			if filter.AssetType != "" && asset.AssetType != filter.AssetType {
				continue
			}
		}
		copied := *asset
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memAssetStore) Get(_ context.Context, id int64) (*model.Asset, error) {
	asset, ok := m.assets[id]
	if !ok {
		return nil, apperrors.NotFound("asset")
	}
	copied := *asset
	return &copied, nil
}

func (m *memAssetStore) Create(_ context.Context, asset *model.Asset) error {
	m.nextID++
	asset.ID = m.nextID
	copied := *asset
	m.assets[asset.ID] = &copied
	return nil
}

func (m *memAssetStore) Update(_ context.Context, asset *model.Asset) error {
	if _, ok := m.assets[asset.ID]; !ok {
		return apperrors.NotFound("asset")
	}
	copied := *asset
	m.assets[asset.ID] = &copied
	return nil
}

func (m *memAssetStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.assets[id]; !ok {
		return apperrors.NotFound("asset")
	}
	delete(m.assets, id)
	return nil
}

func (m *memAssetStore) Stats(_ context.Context) (*model.AssetStats, error) {
	stats := &model.AssetStats{TotalAssets: int64(len(m.assets))}
	for _, asset := range m.assets {
		switch asset.Criticality {
		case model.CriticalityCritical:
			stats.ByCriticality.Critical++
		case model.CriticalityHigh:
			stats.ByCriticality.High++
		case model.CriticalityMedium:
			stats.ByCriticality.Medium++
		case model.CriticalityLow:
			stats.ByCriticality.Low++
		}
		switch asset.Status {
		case model.AssetStatusActive:
			stats.ByStatus.Active++
		case model.AssetStatusInactive:
			stats.ByStatus.Inactive++
		case model.AssetStatusDecommissioned:
			stats.ByStatus.Decommissioned++
		}
	}
	return stats, nil
}

type memAssessmentStore struct {
	assessments    map[int64]*model.Assessment
	questions      map[int64]*model.AssessmentQuestion
	nextID         int64
	nextQuestionID int64
}

func newMemAssessmentStore() *memAssessmentStore {
	return &memAssessmentStore{
		assessments: make(map[int64]*model.Assessment),
		questions:   make(map[int64]*model.AssessmentQuestion),
	}
}

func (m *memAssessmentStore) List(_ context.Context, filter *model.AssessmentFilter) ([]*model.Assessment, error) {
	out := []*model.Assessment{}
	for _, assessment := range m.assessments {
		if filter != nil {
			if filter.Framework != "" && assessment.Framework != filter.Framework {
				continue
			}
			if filter.Status != "" && assessment.Status != filter.Status {
				continue
			}
		}
		copied := *assessment
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memAssessmentStore) Get(_ context.Context, id int64) (*model.Assessment, error) {
	assessment, ok := m.assessments[id]
	if !ok {
		return nil, apperrors.NotFound("assessment")
	}
	copied := *assessment
	return &copied, nil
}

func (m *memAssessmentStore) CreateWithQuestions(_ context.Context, assessment *model.Assessment, questions []*model.AssessmentQuestion) error {
	m.nextID++
	assessment.ID = m.nextID
	copied := *assessment
	m.assessments[assessment.ID] = &copied

	for _, question := range questions {
		m.nextQuestionID++
		question.ID = m.nextQuestionID
		question.AssessmentID = assessment.ID
		copiedQuestion := *question
		m.questions[question.ID] = &copiedQuestion
	}
	return nil
}

func (m *memAssessmentStore) Update(_ context.Context, assessment *model.Assessment) error {
	if _, ok := m.assessments[assessment.ID]; !ok {
		return apperrors.NotFound("assessment")
	}
	copied := *assessment
	m.assessments[assessment.ID] = &copied
	return nil
}

func (m *memAssessmentStore) DeleteCascade(_ context.Context, id int64) error {
	if _, ok := m.assessments[id]; !ok {
		return apperrors.NotFound("assessment")
	}
	for questionID, question := range m.questions {
		if question.AssessmentID == id {
			delete(m.questions, questionID)
		}
	}
	delete(m.assessments, id)
	return nil
}

func (m *memAssessmentStore) Questions(_ context.Context, assessmentID int64) ([]*model.AssessmentQuestion, error) {
	out := []*model.AssessmentQuestion{}
	for id := int64(1); id <= m.nextQuestionID; id++ {
		question, ok := m.questions[id]
		if !ok || question.AssessmentID != assessmentID {
			continue
		}
		copied := *question
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memAssessmentStore) GetQuestion(_ context.Context, assessmentID, questionID int64) (*model.AssessmentQuestion, error) {
	question, ok := m.questions[questionID]
	if !ok || question.AssessmentID != assessmentID {
		return nil, apperrors.NotFound("assessment question")
	}
	copied := *question
	return &copied, nil
}

func (m *memAssessmentStore) UpdateQuestion(_ context.Context, question *model.AssessmentQuestion) error {
	existing, ok := m.questions[question.ID]
	if !ok || existing.AssessmentID != question.AssessmentID {
		return apperrors.NotFound("assessment question")
	}
	copied := *question
	m.questions[question.ID] = &copied
	return nil
}

func (m *memAssessmentStore) Scores(_ context.Context, assessmentID int64) ([]int, error) {
	var scores []int
	for _, question := range m.questions {
		if question.AssessmentID == assessmentID && question.Score != nil {
			scores = append(scores, *question.Score)
		}
	}
	return scores, nil
}

func (m *memAssessmentStore) SetOverallScore(_ context.Context, assessmentID int64, score float64) error {
	assessment, ok := m.assessments[assessmentID]
	if !ok {
		return apperrors.NotFound("assessment")
	}
	assessment.OverallScore = &score
	return nil
}

type memBaselineStore struct {
	baselines map[int64]*model.ConfigurationBaseline
	nextID    int64
}

func newMemBaselineStore() *memBaselineStore {
	return &memBaselineStore{baselines: make(map[int64]*model.ConfigurationBaseline)}
}

func (m *memBaselineStore) List(_ context.Context, assetType string) ([]*model.ConfigurationBaseline, error) {
	out := []*model.ConfigurationBaseline{}
	for _, baseline := range m.baselines {
		if assetType != "" && baseline.AssetType != assetType {
			continue
		}
		copied := *baseline
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memBaselineStore) Get(_ context.Context, id int64) (*model.ConfigurationBaseline, error) {
	baseline, ok := m.baselines[id]
	if !ok {
		return nil, apperrors.NotFound("configuration baseline")
	}
	copied := *baseline
	return &copied, nil
}

func (m *memBaselineStore) Create(_ context.Context, baseline *model.ConfigurationBaseline) error {
	m.nextID++
	baseline.ID = m.nextID
	copied := *baseline
	m.baselines[baseline.ID] = &copied
	return nil
}

func (m *memBaselineStore) Update(_ context.Context, baseline *model.ConfigurationBaseline) error {
	if _, ok := m.baselines[baseline.ID]; !ok {
		return apperrors.NotFound("configuration baseline")
	}
	copied := *baseline
	m.baselines[baseline.ID] = &copied
	return nil
}

func (m *memBaselineStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.baselines[id]; !ok {
		return apperrors.NotFound("configuration baseline")
	}
	delete(m.baselines, id)
	return nil
}

type memDeviationStore struct {
	deviations map[int64]*model.ConfigurationDeviation
	nextID     int64
}

func newMemDeviationStore() *memDeviationStore {
	return &memDeviationStore{deviations: make(map[int64]*model.ConfigurationDeviation)}
}

func (m *memDeviationStore) List(_ context.Context, filter *model.DeviationFilter) ([]*model.ConfigurationDeviation, error) {
	out := []*model.ConfigurationDeviation{}
	for _, deviation := range m.deviations {
		if filter != nil {
			if filter.AssetID != 0 && deviation.AssetID != filter.AssetID {
				continue
			}
			if filter.BaselineID != 0 && deviation.BaselineID != filter.BaselineID {
				continue
			}
			if filter.RiskLevel != "" && deviation.RiskLevel != filter.RiskLevel {
				continue
			}
			if filter.Status != "" && deviation.Status != filter.Status {
				continue
			}
		}
		copied := *deviation
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memDeviationStore) Get(_ context.Context, id int64) (*model.ConfigurationDeviation, error) {
	deviation, ok := m.deviations[id]
	if !ok {
		return nil, apperrors.NotFound("configuration deviation")
	}
	copied := *deviation
	return &copied, nil
}

func (m *memDeviationStore) Create(_ context.Context, deviation *model.ConfigurationDeviation) error {
	m.nextID++
	deviation.ID = m.nextID
	copied := *deviation
	m.deviations[deviation.ID] = &copied
	return nil
}

func (m *memDeviationStore) Update(_ context.Context, deviation *model.ConfigurationDeviation) error {
	if _, ok := m.deviations[deviation.ID]; !ok {
		return apperrors.NotFound("configuration deviation")
	}
	copied := *deviation
	m.deviations[deviation.ID] = &copied
	return nil
}

func (m *memDeviationStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.deviations[id]; !ok {
		return apperrors.NotFound("configuration deviation")
	}
	delete(m.deviations, id)
	return nil
}

func (m *memDeviationStore) Stats(_ context.Context) (*model.DeviationStats, error) {
	stats := &model.DeviationStats{TotalDeviations: int64(len(m.deviations))}
	for _, deviation := range m.deviations {
		switch deviation.RiskLevel {
		case model.RiskCritical:
			stats.ByRiskLevel.Critical++
		case model.RiskHigh:
			stats.ByRiskLevel.High++
		case model.RiskMedium:
			stats.ByRiskLevel.Medium++
		case model.RiskLow:
			stats.ByRiskLevel.Low++
		}
		switch deviation.Status {
		case model.DeviationStatusOpen:
			stats.ByStatus.Open++
		case model.DeviationStatusRemediated:
			stats.ByStatus.Remediated++
		case model.DeviationStatusAccepted:
			stats.ByStatus.Accepted++
		}
	}
	return stats, nil
}

func (m *memDeviationStore) CountByAsset(_ context.Context, assetID int64) (int64, error) {
	var count int64
	for _, deviation := range m.deviations {
		if deviation.AssetID == assetID {
			count++
		}
	}
	return count, nil
}

func (m *memDeviationStore) CountByBaseline(_ context.Context, baselineID int64) (int64, error) {
	var count int64
	for _, deviation := range m.deviations {
		if deviation.BaselineID == baselineID {
			count++
		}
	}
	return count, nil
}
