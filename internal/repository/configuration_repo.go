package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gloomyleo/CyberOT/internal/model"
	apperrors "github.com/gloomyleo/CyberOT/pkg/errors"
)

// BaselineRepository handles configuration baseline persistence.
type BaselineRepository struct {
	store *Store
}

// NewBaselineRepository creates a new baseline repository.
func NewBaselineRepository(store *Store) *BaselineRepository {
	return &BaselineRepository{store: store}
}

// List retrieves baselines, optionally filtered by asset type.
func (r *BaselineRepository) List(ctx context.Context, assetType string) ([]*model.ConfigurationBaseline, error) {
	query := `SELECT * FROM configuration_baselines`
	args := []interface{}{}
	if assetType != "" {
		query += ` WHERE asset_type = $1`
		args = append(args, assetType)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	baselines := []*model.ConfigurationBaseline{}
	if err := r.store.db.SelectContext(ctx, &baselines, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list configuration baselines: %w", err)
	}
	return baselines, nil
}

// Get retrieves a baseline by ID.
func (r *BaselineRepository) Get(ctx context.Context, id int64) (*model.ConfigurationBaseline, error) {
	var baseline model.ConfigurationBaseline
	err := r.store.db.GetContext(ctx, &baseline, `SELECT * FROM configuration_baselines WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("configuration baseline")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get configuration baseline: %w", err)
	}
	return &baseline, nil
}

// Create inserts a new baseline and fills in its generated ID.
func (r *BaselineRepository) Create(ctx context.Context, baseline *model.ConfigurationBaseline) error {
	query := `
		INSERT INTO configuration_baselines (name, asset_type, description, baseline_config, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.store.db.QueryRowContext(ctx, query,
		baseline.Name, baseline.AssetType, baseline.Description,
		baseline.BaselineConfig, baseline.CreatedAt, baseline.UpdatedAt,
	).Scan(&baseline.ID)
	if err != nil {
		return fmt.Errorf("failed to create configuration baseline: %w", err)
	}
	return nil
}

// Update writes all mutable fields of an existing baseline.
func (r *BaselineRepository) Update(ctx context.Context, baseline *model.ConfigurationBaseline) error {
	query := `
		UPDATE configuration_baselines SET
			name = :name,
			asset_type = :asset_type,
			description = :description,
			baseline_config = :baseline_config,
			updated_at = :updated_at
		WHERE id = :id
	`
	result, err := r.store.db.NamedExecContext(ctx, query, baseline)
	if err != nil {
		return fmt.Errorf("failed to update configuration baseline: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotFound("configuration baseline")
	}
	return nil
}

// Delete removes a baseline. Deviations referencing it block the delete.
func (r *BaselineRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.store.db.ExecContext(ctx, `DELETE FROM configuration_baselines WHERE id = $1`, id)
	if constraint := foreignKeyViolation(err); constraint != "" {
		return apperrors.Conflict("baseline is still referenced by configuration deviations")
	}
	if err != nil {
		return fmt.Errorf("failed to delete configuration baseline: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotFound("configuration baseline")
	}
	return nil
}

// DeviationRepository handles configuration deviation persistence.
type DeviationRepository struct {
	store *Store
}

// NewDeviationRepository creates a new deviation repository.
func NewDeviationRepository(store *Store) *DeviationRepository {
	return &DeviationRepository{store: store}
}

// deviationColumns joins the referenced asset and baseline names into every
// read so responses carry display names without an ORM relationship.
const deviationColumns = `
	d.*,
	a.name AS asset_name,
	b.name AS baseline_name
`

// List retrieves deviations matching the filter, newest first.
func (r *DeviationRepository) List(ctx context.Context, filter *model.DeviationFilter) ([]*model.ConfigurationDeviation, error) {
	query := `
		SELECT ` + deviationColumns + `
		FROM configuration_deviations d
		JOIN assets a ON a.id = d.asset_id
		JOIN configuration_baselines b ON b.id = d.baseline_id
		WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if filter != nil {
		if filter.AssetID != 0 {
			query += fmt.Sprintf(" AND d.asset_id = $%d", argIndex)
			args = append(args, filter.AssetID)
			argIndex++
		}
		if filter.BaselineID != 0 {
			query += fmt.Sprintf(" AND d.baseline_id = $%d", argIndex)
			args = append(args, filter.BaselineID)
			argIndex++
		}
		if filter.RiskLevel != "" {
			query += fmt.Sprintf(" AND d.risk_level = $%d", argIndex)
			args = append(args, filter.RiskLevel)
			argIndex++
		}
		if filter.Status != "" {
			query += fmt.Sprintf(" AND d.status = $%d", argIndex)
			args = append(args, filter.Status)
			argIndex++
		}
	}

	query += " ORDER BY d.created_at DESC, d.id DESC"

	deviations := []*model.ConfigurationDeviation{}
	if err := r.store.db.SelectContext(ctx, &deviations, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list configuration deviations: %w", err)
	}
	return deviations, nil
}

// Get retrieves a deviation by ID with denormalized names.
func (r *DeviationRepository) Get(ctx context.Context, id int64) (*model.ConfigurationDeviation, error) {
	var deviation model.ConfigurationDeviation
	query := `
		SELECT ` + deviationColumns + `
		FROM configuration_deviations d
		JOIN assets a ON a.id = d.asset_id
		JOIN configuration_baselines b ON b.id = d.baseline_id
		WHERE d.id = $1`
	err := r.store.db.GetContext(ctx, &deviation, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("configuration deviation")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get configuration deviation: %w", err)
	}
	return &deviation, nil
}

// Create inserts a new deviation and fills in its generated ID. Foreign-key
// violations are reported as validation errors naming the missing reference.
func (r *DeviationRepository) Create(ctx context.Context, deviation *model.ConfigurationDeviation) error {
	query := `
		INSERT INTO configuration_deviations (
			asset_id, baseline_id, deviation_type, parameter_name,
			expected_value, actual_value, risk_level, status, remediation_notes,
			discovered_date, remediation_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	err := r.store.db.QueryRowContext(ctx, query,
		deviation.AssetID, deviation.BaselineID, deviation.DeviationType,
		deviation.ParameterName, deviation.ExpectedValue, deviation.ActualValue,
		deviation.RiskLevel, deviation.Status, deviation.RemediationNotes,
		deviation.DiscoveredDate, deviation.RemediationDate,
		deviation.CreatedAt, deviation.UpdatedAt,
	).Scan(&deviation.ID)
	if constraint := foreignKeyViolation(err); constraint != "" {
		if referencesTable(constraint, "asset") && !referencesTable(constraint, "baseline") {
			return apperrors.Validation("referenced asset does not exist")
		}
		return apperrors.Validation("referenced baseline does not exist")
	}
	if err != nil {
		return fmt.Errorf("failed to create configuration deviation: %w", err)
	}
	return nil
}

// Update writes all mutable fields of an existing deviation.
func (r *DeviationRepository) Update(ctx context.Context, deviation *model.ConfigurationDeviation) error {
	query := `
		UPDATE configuration_deviations SET
			asset_id = :asset_id,
			baseline_id = :baseline_id,
			deviation_type = :deviation_type,
			parameter_name = :parameter_name,
			expected_value = :expected_value,
			actual_value = :actual_value,
			risk_level = :risk_level,
			status = :status,
			remediation_notes = :remediation_notes,
			discovered_date = :discovered_date,
			remediation_date = :remediation_date,
			updated_at = :updated_at
		WHERE id = :id
	`
	result, err := r.store.db.NamedExecContext(ctx, query, deviation)
	if constraint := foreignKeyViolation(err); constraint != "" {
		if referencesTable(constraint, "asset") && !referencesTable(constraint, "baseline") {
			return apperrors.Validation("referenced asset does not exist")
		}
		return apperrors.Validation("referenced baseline does not exist")
	}
	if err != nil {
		return fmt.Errorf("failed to update configuration deviation: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotFound("configuration deviation")
	}
	return nil
}

// Delete removes a deviation.
func (r *DeviationRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.store.db.ExecContext(ctx, `DELETE FROM configuration_deviations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete configuration deviation: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotFound("configuration deviation")
	}
	return nil
}

// Stats retrieves aggregate deviation counts grouped by risk level and status.
func (r *DeviationRepository) Stats(ctx context.Context) (*model.DeviationStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE risk_level = 'Critical') AS critical,
			COUNT(*) FILTER (WHERE risk_level = 'High') AS high,
			COUNT(*) FILTER (WHERE risk_level = 'Medium') AS medium,
			COUNT(*) FILTER (WHERE risk_level = 'Low') AS low,
			COUNT(*) FILTER (WHERE status = 'Open') AS open,
			COUNT(*) FILTER (WHERE status = 'Remediated') AS remediated,
			COUNT(*) FILTER (WHERE status = 'Accepted') AS accepted
		FROM configuration_deviations
	`

	var row struct {
		Total      int64 `db:"total"`
		Critical   int64 `db:"critical"`
		High       int64 `db:"high"`
		Medium     int64 `db:"medium"`
		Low        int64 `db:"low"`
		Open       int64 `db:"open"`
		Remediated int64 `db:"remediated"`
		Accepted   int64 `db:"accepted"`
	}
	if err := r.store.db.GetContext(ctx, &row, query); err != nil {
		return nil, fmt.Errorf("failed to get deviation stats: %w", err)
	}

	return &model.DeviationStats{
		TotalDeviations: row.Total,
		ByRiskLevel: model.RiskLevelCounts{
			Critical: row.Critical,
			High:     row.High,
			Medium:   row.Medium,
			Low:      row.Low,
		},
		ByStatus: model.DeviationStatusCounts{
			Open:       row.Open,
			Remediated: row.Remediated,
			Accepted:   row.Accepted,
		},
	}, nil
}

// CountByAsset counts deviations referencing an asset.
func (r *DeviationRepository) CountByAsset(ctx context.Context, assetID int64) (int64, error) {
	var count int64
	err := r.store.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM configuration_deviations WHERE asset_id = $1`, assetID)
	if err != nil {
		return 0, fmt.Errorf("failed to count deviations for asset: %w", err)
	}
	return count, nil
}

// CountByBaseline counts deviations referencing a baseline.
func (r *DeviationRepository) CountByBaseline(ctx context.Context, baselineID int64) (int64, error) {
	var count int64
	err := r.store.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM configuration_deviations WHERE baseline_id = $1`, baselineID)
	if err != nil {
		return 0, fmt.Errorf("failed to count deviations for baseline: %w", err)
	}
	return count, nil
}
