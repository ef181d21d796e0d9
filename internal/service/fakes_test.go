package service_test

import (
	"context"
	"fmt"

	"github.com/gloomyleo/CyberOT/internal/model"
	apperrors "github.com/gloomyleo/CyberOT/pkg/errors"
)

// In-memory stores backing the service tests. They mirror the repository
// contract: copies out, not-found mapped to the shared error codes.

type fakeAssetStore struct {
	assets map[int64]*model.Asset
	nextID int64
}

func newFakeAssetStore() *fakeAssetStore {
	return &fakeAssetStore{assets: make(map[int64]*model.Asset)}
}

func (f *fakeAssetStore) List(_ context.Context, filter *model.AssetFilter) ([]*model.Asset, error) {
	var out []*model.Asset
	for _, asset := range f.assets {
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

func (f *fakeAssetStore) Get(_ context.Context, id int64) (*model.Asset, error) {
	asset, ok := f.assets[id]
	if !ok {
		return nil, apperrors.NotFound("asset")
	}
	copied := *asset
	return &copied, nil
}

func (f *fakeAssetStore) Create(_ context.Context, asset *model.Asset) error {
	f.nextID++
	asset.ID = f.nextID
	copied := *asset
	f.assets[asset.ID] = &copied
	return nil
}

func (f *fakeAssetStore) Update(_ context.Context, asset *model.Asset) error {
	if _, ok := f.assets[asset.ID]; !ok {
		return apperrors.NotFound("asset")
	}
	copied := *asset
	f.assets[asset.ID] = &copied
	return nil
}

func (f *fakeAssetStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.assets[id]; !ok {
		return apperrors.NotFound("asset")
	}
	delete(f.assets, id)
	return nil
}

func (f *fakeAssetStore) Stats(_ context.Context) (*model.AssetStats, error) {
	stats := &model.AssetStats{TotalAssets: int64(len(f.assets))}
	for _, asset := range f.assets {
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

type fakeAssessmentStore struct {
	assessments    map[int64]*model.Assessment
	questions      map[int64]*model.AssessmentQuestion
	nextID         int64
	nextQuestionID int64
	scoresErr      error
}

func newFakeAssessmentStore() *fakeAssessmentStore {
	return &fakeAssessmentStore{
		assessments: make(map[int64]*model.Assessment),
		questions:   make(map[int64]*model.AssessmentQuestion),
	}
}

func (f *fakeAssessmentStore) List(_ context.Context, filter *model.AssessmentFilter) ([]*model.Assessment, error) {
	var out []*model.Assessment
	for _, assessment := range f.assessments {
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

func (f *fakeAssessmentStore) Get(_ context.Context, id int64) (*model.Assessment, error) {
	assessment, ok := f.assessments[id]
	if !ok {
		return nil, apperrors.NotFound("assessment")
	}
	copied := *assessment
	return &copied, nil
}

func (f *fakeAssessmentStore) CreateWithQuestions(_ context.Context, assessment *model.Assessment, questions []*model.AssessmentQuestion) error {
	f.nextID++
	assessment.ID = f.nextID
	copied := *assessment
	f.assessments[assessment.ID] = &copied

	for _, question := range questions {
		f.nextQuestionID++
		question.ID = f.nextQuestionID
		question.AssessmentID = assessment.ID
		copiedQuestion := *question
		f.questions[question.ID] = &copiedQuestion
	}
	return nil
}

func (f *fakeAssessmentStore) Update(_ context.Context, assessment *model.Assessment) error {
	if _, ok := f.assessments[assessment.ID]; !ok {
		return apperrors.NotFound("assessment")
	}
	copied := *assessment
	f.assessments[assessment.ID] = &copied
	return nil
}

func (f *fakeAssessmentStore) DeleteCascade(_ context.Context, id int64) error {
	if _, ok := f.assessments[id]; !ok {
		return apperrors.NotFound("assessment")
	}
	for questionID, question := range f.questions {
		if question.AssessmentID == id {
			delete(f.questions, questionID)
		}
	}
	delete(f.assessments, id)
	return nil
}

func (f *fakeAssessmentStore) Questions(_ context.Context, assessmentID int64) ([]*model.AssessmentQuestion, error) {
	var out []*model.AssessmentQuestion
	for id := int64(1); id <= f.nextQuestionID; id++ {
		question, ok := f.questions[id]
		if !ok || question.AssessmentID != assessmentID {
			continue
		}
		copied := *question
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeAssessmentStore) GetQuestion(_ context.Context, assessmentID, questionID int64) (*model.AssessmentQuestion, error) {
	question, ok := f.questions[questionID]
	if !ok || question.AssessmentID != assessmentID {
		return nil, apperrors.NotFound("assessment question")
	}
	copied := *question
	return &copied, nil
}

func (f *fakeAssessmentStore) UpdateQuestion(_ context.Context, question *model.AssessmentQuestion) error {
	existing, ok := f.questions[question.ID]
	if !ok || existing.AssessmentID != question.AssessmentID {
		return apperrors.NotFound("assessment question")
	}
	copied := *question
	f.questions[question.ID] = &copied
	return nil
}

func (f *fakeAssessmentStore) Scores(_ context.Context, assessmentID int64) ([]int, error) {
	if f.scoresErr != nil {
		return nil, f.scoresErr
	}
	var scores []int
	for _, question := range f.questions {
		if question.AssessmentID == assessmentID && question.Score != nil {
			scores = append(scores, *question.Score)
		}
	}
	return scores, nil
}

func (f *fakeAssessmentStore) SetOverallScore(_ context.Context, assessmentID int64, score float64) error {
	assessment, ok := f.assessments[assessmentID]
	if !ok {
		return apperrors.NotFound("assessment")
	}
	assessment.OverallScore = &score
	return nil
}

type fakeBaselineStore struct {
	baselines map[int64]*model.ConfigurationBaseline
	nextID    int64
}

func newFakeBaselineStore() *fakeBaselineStore {
	return &fakeBaselineStore{baselines: make(map[int64]*model.ConfigurationBaseline)}
}

func (f *fakeBaselineStore) List(_ context.Context, assetType string) ([]*model.ConfigurationBaseline, error) {
	var out []*model.ConfigurationBaseline
	for _, baseline := range f.baselines {
		if assetType != "" && baseline.AssetType != assetType {
			continue
		}
		copied := *baseline
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeBaselineStore) Get(_ context.Context, id int64) (*model.ConfigurationBaseline, error) {
	baseline, ok := f.baselines[id]
	if !ok {
		return nil, apperrors.NotFound("configuration baseline")
	}
	copied := *baseline
	return &copied, nil
}

func (f *fakeBaselineStore) Create(_ context.Context, baseline *model.ConfigurationBaseline) error {
	f.nextID++
	baseline.ID = f.nextID
	copied := *baseline
	f.baselines[baseline.ID] = &copied
	return nil
}

func (f *fakeBaselineStore) Update(_ context.Context, baseline *model.ConfigurationBaseline) error {
	if _, ok := f.baselines[baseline.ID]; !ok {
		return apperrors.NotFound("configuration baseline")
	}
	copied := *baseline
	f.baselines[baseline.ID] = &copied
	return nil
}

func (f *fakeBaselineStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.baselines[id]; !ok {
		return apperrors.NotFound("configuration baseline")
	}
	delete(f.baselines, id)
	return nil
}

type fakeDeviationStore struct {
	deviations map[int64]*model.ConfigurationDeviation
	nextID     int64
}

func newFakeDeviationStore() *fakeDeviationStore {
	return &fakeDeviationStore{deviations: make(map[int64]*model.ConfigurationDeviation)}
}

func (f *fakeDeviationStore) List(_ context.Context, filter *model.DeviationFilter) ([]*model.ConfigurationDeviation, error) {
	var out []*model.ConfigurationDeviation
	for _, deviation := range f.deviations {
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

func (f *fakeDeviationStore) Get(_ context.Context, id int64) (*model.ConfigurationDeviation, error) {
	deviation, ok := f.deviations[id]
	if !ok {
		return nil, apperrors.NotFound("configuration deviation")
	}
	copied := *deviation
	copied.AssetName = fmt.Sprintf("asset-%d", deviation.AssetID)
	copied.BaselineName = fmt.Sprintf("baseline-%d", deviation.BaselineID)
	return &copied, nil
}

func (f *fakeDeviationStore) Create(_ context.Context, deviation *model.ConfigurationDeviation) error {
	f.nextID++
	deviation.ID = f.nextID
	copied := *deviation
	f.deviations[deviation.ID] = &copied
	return nil
}

func (f *fakeDeviationStore) Update(_ context.Context, deviation *model.ConfigurationDeviation) error {
	if _, ok := f.deviations[deviation.ID]; !ok {
		return apperrors.NotFound("configuration deviation")
	}
	copied := *deviation
	f.deviations[deviation.ID] = &copied
	return nil
}

func (f *fakeDeviationStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.deviations[id]; !ok {
		return apperrors.NotFound("configuration deviation")
	}
	delete(f.deviations, id)
	return nil
}

func (f *fakeDeviationStore) Stats(_ context.Context) (*model.DeviationStats, error) {
	stats := &model.DeviationStats{TotalDeviations: int64(len(f.deviations))}
	for _, deviation := range f.deviations {
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

func (f *fakeDeviationStore) CountByAsset(_ context.Context, assetID int64) (int64, error) {
	var count int64
	for _, deviation := range f.deviations {
		if deviation.AssetID == assetID {
			count++
		}
	}
	return count, nil
}

func (f *fakeDeviationStore) CountByBaseline(_ context.Context, baselineID int64) (int64, error) {
	var count int64
	for _, deviation := range f.deviations {
		if deviation.BaselineID == baselineID {
			count++
		}
	}
	return count, nil
}
