package service

import (
	"context"
	"time"

	"github.com/gloomyleo/CyberOT/internal/model"
	apperrors "github.com/gloomyleo/CyberOT/pkg/errors"
)

// BaselineStore is the persistence surface the baseline service needs.
type BaselineStore interface {
	List(ctx context.Context, assetType string) ([]*model.ConfigurationBaseline, error)
	Get(ctx context.Context, id int64) (*model.ConfigurationBaseline, error)
	Create(ctx context.Context, baseline *model.ConfigurationBaseline) error
	Update(ctx context.Context, baseline *model.ConfigurationBaseline) error
	Delete(ctx context.Context, id int64) error
}

// DeviationStore is the persistence surface the deviation service needs.
type DeviationStore interface {
	List(ctx context.Context, filter *model.DeviationFilter) ([]*model.ConfigurationDeviation, error)
	Get(ctx context.Context, id int64) (*model.ConfigurationDeviation, error)
	Create(ctx context.Context, deviation *model.ConfigurationDeviation) error
	Update(ctx context.Context, deviation *model.ConfigurationDeviation) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*model.DeviationStats, error)
}

// BaselineService provides configuration baseline operations.
type BaselineService struct {
	repo       BaselineStore
	deviations DeviationRefCounter
}

// NewBaselineService creates a new baseline service.
func NewBaselineService(repo BaselineStore, deviations DeviationRefCounter) *BaselineService {
	return &BaselineService{repo: repo, deviations: deviations}
}

// ListBaselines retrieves baselines, optionally filtered by asset type.
func (s *BaselineService) ListBaselines(ctx context.Context, assetType string) ([]*model.ConfigurationBaseline, error) {
	return s.repo.List(ctx, assetType)
}

// GetBaseline retrieves a baseline by ID.
func (s *BaselineService) GetBaseline(ctx context.Context, id int64) (*model.ConfigurationBaseline, error) {
	return s.repo.Get(ctx, id)
}

// CreateBaseline validates and creates a configuration baseline. The
// baseline_config payload is stored opaquely, never parsed.
func (s *BaselineService) CreateBaseline(ctx context.Context, req *model.CreateBaselineRequest) (*model.ConfigurationBaseline, error) {
	if req.Name == "" {
		return nil, apperrors.Validation("name is required")
	}
	if req.AssetType == "" {
		return nil, apperrors.Validation("asset_type is required")
	}

	now := time.Now().UTC()
	baseline := &model.ConfigurationBaseline{
		Name:           req.Name,
		AssetType:      req.AssetType,
		Description:    req.Description,
		BaselineConfig: req.BaselineConfig,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, baseline); err != nil {
		return nil, err
	}
	return baseline, nil
}

// UpdateBaseline applies a partial update; omitted fields keep their value.
func (s *BaselineService) UpdateBaseline(ctx context.Context, id int64, req *model.UpdateBaselineRequest) (*model.ConfigurationBaseline, error) {
	baseline, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, apperrors.Validation("name cannot be empty")
		}
		baseline.Name = *req.Name
	}
	if req.AssetType != nil {
		if *req.AssetType == "" {
			return nil, apperrors.Validation("asset_type cannot be empty")
		}
		baseline.AssetType = *req.AssetType
	}
	if req.Description != nil {
		baseline.Description = *req.Description
	}
	if req.BaselineConfig != nil {
		baseline.BaselineConfig = *req.BaselineConfig
	}

	baseline.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, baseline); err != nil {
		return nil, err
	}
	return baseline, nil
}

// DeleteBaseline removes a baseline. Baselines still referenced by
// deviations are refused.
func (s *BaselineService) DeleteBaseline(ctx context.Context, id int64) error {
	count, err := s.deviations.CountByBaseline(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.Conflict("baseline is still referenced by configuration deviations")
	}
	return s.repo.Delete(ctx, id)
}

// DeviationService provides configuration deviation operations.
type DeviationService struct {
	repo DeviationStore
}

// NewDeviationService creates a new deviation service.
func NewDeviationService(repo DeviationStore) *DeviationService {
	return &DeviationService{repo: repo}
}

// ListDeviations retrieves deviations matching the filter.
func (s *DeviationService) ListDeviations(ctx context.Context, filter *model.DeviationFilter) ([]*model.ConfigurationDeviation, error) {
	return s.repo.List(ctx, filter)
}

// GetDeviation retrieves a deviation by ID.
func (s *DeviationService) GetDeviation(ctx context.Context, id int64) (*model.ConfigurationDeviation, error) {
	return s.repo.Get(ctx, id)
}

// CreateDeviation validates and records a configuration deviation.
// discovered_date defaults to the current time when not supplied.
func (s *DeviationService) CreateDeviation(ctx context.Context, req *model.CreateDeviationRequest) (*model.ConfigurationDeviation, error) {
	if req.AssetID == 0 {
		return nil, apperrors.Validation("asset_id is required")
	}
	if req.BaselineID == 0 {
		return nil, apperrors.Validation("baseline_id is required")
	}
	if !req.DeviationType.Valid() {
		return nil, apperrors.Validation("deviation_type must be one of Missing, Extra, Modified")
	}
	if req.ParameterName == "" {
		return nil, apperrors.Validation("parameter_name is required")
	}
	if !req.RiskLevel.Valid() {
		return nil, apperrors.Validation("risk_level must be one of Critical, High, Medium, Low")
	}

	status := req.Status
	if status == "" {
		status = model.DeviationStatusOpen
	}
	if !status.Valid() {
		return nil, apperrors.Validation("status must be one of Open, Remediated, Accepted")
	}

	now := time.Now().UTC()
	discovered := now
	if req.DiscoveredDate != nil {
		discovered = *req.DiscoveredDate
	}

	deviation := &model.ConfigurationDeviation{
		AssetID:          req.AssetID,
		BaselineID:       req.BaselineID,
		DeviationType:    req.DeviationType,
		ParameterName:    req.ParameterName,
		ExpectedValue:    req.ExpectedValue,
		ActualValue:      req.ActualValue,
		RiskLevel:        req.RiskLevel,
		Status:           status,
		RemediationNotes: req.RemediationNotes,
		DiscoveredDate:   discovered,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, deviation); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, deviation.ID)
}

// UpdateDeviation applies a partial update; omitted fields keep their value.
func (s *DeviationService) UpdateDeviation(ctx context.Context, id int64, req *model.UpdateDeviationRequest) (*model.ConfigurationDeviation, error) {
	deviation, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.AssetID != nil {
		if *req.AssetID == 0 {
			return nil, apperrors.Validation("asset_id cannot be empty")
		}
		deviation.AssetID = *req.AssetID
	}
	if req.BaselineID != nil {
		if *req.BaselineID == 0 {
			return nil, apperrors.Validation("baseline_id cannot be empty")
		}
		deviation.BaselineID = *req.BaselineID
	}
	if req.DeviationType != nil {
		if !req.DeviationType.Valid() {
			return nil, apperrors.Validation("deviation_type must be one of Missing, Extra, Modified")
		}
		deviation.DeviationType = *req.DeviationType
	}
	if req.ParameterName != nil {
		if *req.ParameterName == "" {
			return nil, apperrors.Validation("parameter_name cannot be empty")
		}
		deviation.ParameterName = *req.ParameterName
	}
	if req.ExpectedValue != nil {
		deviation.ExpectedValue = *req.ExpectedValue
	}
	if req.ActualValue != nil {
		deviation.ActualValue = *req.ActualValue
	}
	if req.RiskLevel != nil {
		if !req.RiskLevel.Valid() {
			return nil, apperrors.Validation("risk_level must be one of Critical, High, Medium, Low")
		}
		deviation.RiskLevel = *req.RiskLevel
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperrors.Validation("status must be one of Open, Remediated, Accepted")
		}
		deviation.Status = *req.Status
	}
	if req.RemediationNotes != nil {
		deviation.RemediationNotes = *req.RemediationNotes
	}
	if req.RemediationDate != nil {
		deviation.RemediationDate = req.RemediationDate
	}

	deviation.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, deviation); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, deviation.ID)
}

// DeleteDeviation removes a deviation.
func (s *DeviationService) DeleteDeviation(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// GetStats retrieves aggregate deviation counts.
func (s *DeviationService) GetStats(ctx context.Context) (*model.DeviationStats, error) {
	return s.repo.Stats(ctx)
}
