// Package service provides business logic for the compliance tracker.
package service

import (
	"context"
	"time"

	"github.com/gloomyleo/CyberOT/internal/model"
	apperrors "github.com/gloomyleo/CyberOT/pkg/errors"
)

// AssetStore is the persistence surface the asset service needs.
type AssetStore interface {
	List(ctx context.Context, filter *model.AssetFilter) ([]*model.Asset, error)
	Get(ctx context.Context, id int64) (*model.Asset, error)
	Create(ctx context.Context, asset *model.Asset) error
	Update(ctx context.Context, asset *model.Asset) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*model.AssetStats, error)
}

// DeviationRefCounter counts deviations referencing an asset or baseline,
// used to enforce the restrict-delete policy.
type DeviationRefCounter interface {
	CountByAsset(ctx context.Context, assetID int64) (int64, error)
	CountByBaseline(ctx context.Context, baselineID int64) (int64, error)
}

// AssetService provides asset inventory operations.
type AssetService struct {
	repo       AssetStore
	deviations DeviationRefCounter
}

// NewAssetService creates a new asset service.
func NewAssetService(repo AssetStore, deviations DeviationRefCounter) *AssetService {
	return &AssetService{repo: repo, deviations: deviations}
}

// ListAssets retrieves assets matching the filter.
func (s *AssetService) ListAssets(ctx context.Context, filter *model.AssetFilter) ([]*model.Asset, error) {
	return s.repo.List(ctx, filter)
}

// GetAsset retrieves an asset by ID.
func (s *AssetService) GetAsset(ctx context.Context, id int64) (*model.Asset, error) {
	return s.repo.Get(ctx, id)
}

// CreateAsset validates and registers a new asset.
func (s *AssetService) CreateAsset(ctx context.Context, req *model.CreateAssetRequest) (*model.Asset, error) {
	if req.Name == "" {
		return nil, apperrors.Validation("name is required")
	}
	if req.AssetType == "" {
		return nil, apperrors.Validation("asset_type is required")
	}
	if !req.Criticality.Valid() {
		return nil, apperrors.Validation("criticality must be one of Critical, High, Medium, Low")
	}

	status := req.Status
	if status == "" {
		status = model.AssetStatusActive
	}
	if !status.Valid() {
		return nil, apperrors.Validation("status must be one of Active, Inactive, Decommissioned")
	}

	now := time.Now().UTC()
	asset := &model.Asset{
		Name:         req.Name,
		AssetType:    req.AssetType,
		Manufacturer: req.Manufacturer,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		IPAddress:    req.IPAddress,
		Location:     req.Location,
		Criticality:  req.Criticality,
		Status:       status,
		Description:  req.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// UpdateAsset applies a partial update; omitted fields keep their value.
func (s *AssetService) UpdateAsset(ctx context.Context, id int64, req *model.UpdateAssetRequest) (*model.Asset, error) {
	asset, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, apperrors.Validation("name cannot be empty")
		}
		asset.Name = *req.Name
	}
	if req.AssetType != nil {
		if *req.AssetType == "" {
			return nil, apperrors.Validation("asset_type cannot be empty")
		}
		asset.AssetType = *req.AssetType
	}
	if req.Manufacturer != nil {
		asset.Manufacturer = *req.Manufacturer
	}
	if req.Model != nil {
		asset.Model = *req.Model
	}
	if req.SerialNumber != nil {
		asset.SerialNumber = *req.SerialNumber
	}
	if req.IPAddress != nil {
		asset.IPAddress = *req.IPAddress
	}
	if req.Location != nil {
		asset.Location = *req.Location
	}
	if req.Criticality != nil {
		if !req.Criticality.Valid() {
			return nil, apperrors.Validation("criticality must be one of Critical, High, Medium, Low")
		}
		asset.Criticality = *req.Criticality
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperrors.Validation("status must be one of Active, Inactive, Decommissioned")
		}
		asset.Status = *req.Status
	}
	if req.Description != nil {
		asset.Description = *req.Description
	}

	asset.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// DeleteAsset removes an asset. Assets still referenced by configuration
// deviations are refused; the schema's foreign keys back this up.
func (s *AssetService) DeleteAsset(ctx context.Context, id int64) error {
	count, err := s.deviations.CountByAsset(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.Conflict("asset is still referenced by configuration deviations")
	}
	return s.repo.Delete(ctx, id)
}

// GetStats retrieves aggregate asset counts.
func (s *AssetService) GetStats(ctx context.Context) (*model.AssetStats, error) {
	return s.repo.Stats(ctx)
}
