package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gloomyleo/CyberOT/internal/model"
	apperrors "github.com/gloomyleo/CyberOT/pkg/errors"
)

// AssetRepository handles asset persistence.
type AssetRepository struct {
	store *Store
}

// NewAssetRepository creates a new asset repository.
func NewAssetRepository(store *Store) *AssetRepository {
	return &AssetRepository{store: store}
}

// List retrieves assets matching the filter, newest first.
func (r *AssetRepository) List(ctx context.Context, filter *model.AssetFilter) ([]*model.Asset, error) {
	query := `SELECT * FROM assets WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if filter != nil {
		if filter.Criticality != "" {
			query += fmt.Sprintf(" AND criticality = $%d", argIndex)
			args = append(args, filter.Criticality)
			argIndex++
		}
		if filter.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", argIndex)
			args = append(args, filter.Status)
			argIndex++
		}
		if filter.AssetType != "" {
			query += fmt.Sprintf(" AND asset_type = $%d", argIndex)
			args = append(args, filter.AssetType)
			argIndex++
		}
		if filter.Search != "" {
			query += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex)
			args = append(args, "%"+filter.Search+"%")
			argIndex++
		}
	}

	query += " ORDER BY created_at DESC, id DESC"

	assets := []*model.Asset{}
	if err := r.store.db.SelectContext(ctx, &assets, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return assets, nil
}

// Get retrieves an asset by ID.
func (r *AssetRepository) Get(ctx context.Context, id int64) (*model.Asset, error) {
	var asset model.Asset
	err := r.store.db.GetContext(ctx, &asset, `SELECT * FROM assets WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("asset")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return &asset, nil
}

// Create inserts a new asset and fills in its generated ID.
func (r *AssetRepository) Create(ctx context.Context, asset *model.Asset) error {
	query := `
		INSERT INTO assets (
			name, asset_type, manufacturer, model, serial_number, ip_address,
			location, criticality, status, description, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	err := r.store.db.QueryRowContext(ctx, query,
		asset.Name, asset.AssetType, asset.Manufacturer, asset.Model,
		asset.SerialNumber, asset.IPAddress, asset.Location, asset.Criticality,
		asset.Status, asset.Description, asset.CreatedAt, asset.UpdatedAt,
	).Scan(&asset.ID)
	if err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}
	return nil
}

// Update writes all mutable fields of an existing asset.
func (r *AssetRepository) Update(ctx context.Context, asset *model.Asset) error {
	query := `
		UPDATE assets SET
			name = :name,
			asset_type = :asset_type,
			manufacturer = :manufacturer,
			model = :model,
			serial_number = :serial_number,
			ip_address = :ip_address,
			location = :location,
			criticality = :criticality,
			status = :status,
			description = :description,
			updated_at = :updated_at
		WHERE id = :id
	`
	result, err := r.store.db.NamedExecContext(ctx, query, asset)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotFound("asset")
	}
	return nil
}

// Delete removes an asset. Deviations referencing the asset block the delete.
func (r *AssetRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.store.db.ExecContext(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if constraint := foreignKeyViolation(err); constraint != "" {
		return apperrors.Conflict("asset is still referenced by configuration deviations")
	}
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotFound("asset")
	}
	return nil
}

// Stats retrieves aggregate asset counts grouped by criticality and status.
func (r *AssetRepository) Stats(ctx context.Context) (*model.AssetStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE criticality = 'Critical') AS critical,
			COUNT(*) FILTER (WHERE criticality = 'High') AS high,
			COUNT(*) FILTER (WHERE criticality = 'Medium') AS medium,
			COUNT(*) FILTER (WHERE criticality = 'Low') AS low,
			COUNT(*) FILTER (WHERE status = 'Active') AS active,
			COUNT(*) FILTER (WHERE status = 'Inactive') AS inactive,
			COUNT(*) FILTER (WHERE status = 'Decommissioned') AS decommissioned
		FROM assets
	`

	var row struct {
		Total          int64 `db:"total"`
		Critical       int64 `db:"critical"`
		High           int64 `db:"high"`
		Medium         int64 `db:"medium"`
		Low            int64 `db:"low"`
		Active         int64 `db:"active"`
		Inactive       int64 `db:"inactive"`
		Decommissioned int64 `db:"decommissioned"`
	}
	if err := r.store.db.GetContext(ctx, &row, query); err != nil {
		return nil, fmt.Errorf("failed to get asset stats: %w", err)
	}

	return &model.AssetStats{
		TotalAssets: row.Total,
		ByCriticality: model.CriticalityCounts{
			Critical: row.Critical,
			High:     row.High,
			Medium:   row.Medium,
			Low:      row.Low,
		},
		ByStatus: model.AssetStatusCounts{
			Active:         row.Active,
			Inactive:       row.Inactive,
			Decommissioned: row.Decommissioned,
		},
	}, nil
}
