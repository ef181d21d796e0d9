package model

import "time"

// RiskLevel represents deviation risk severity, the same ordinal scale as
// asset criticality.
type RiskLevel string

const (
	RiskCritical RiskLevel = "Critical"
	RiskHigh     RiskLevel = "High"
	RiskMedium   RiskLevel = "Medium"
	RiskLow      RiskLevel = "Low"
)

// Valid reports whether the risk level is a known value.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskCritical, RiskHigh, RiskMedium, RiskLow:
		return true
	}
	return false
}

// DeviationType represents the kind of divergence from a baseline.
type DeviationType string

const (
	DeviationMissing  DeviationType = "Missing"
	DeviationExtra    DeviationType = "Extra"
	DeviationModified DeviationType = "Modified"
)

// Valid reports whether the deviation type is a known value.
func (d DeviationType) Valid() bool {
	switch d {
	case DeviationMissing, DeviationExtra, DeviationModified:
		return true
	}
	return false
}

// DeviationStatus represents deviation remediation status values.
type DeviationStatus string

const (
	DeviationStatusOpen       DeviationStatus = "Open"
	DeviationStatusRemediated DeviationStatus = "Remediated"
	DeviationStatusAccepted   DeviationStatus = "Accepted"
)

// Valid reports whether the status is a known value.
func (s DeviationStatus) Valid() bool {
	switch s {
	case DeviationStatusOpen, DeviationStatusRemediated, DeviationStatusAccepted:
		return true
	}
	return false
}

// ConfigurationBaseline represents an approved reference configuration for an
// asset type.
type ConfigurationBaseline struct {
	ID             int64     `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	AssetType      string    `json:"asset_type" db:"asset_type"`
	Description    string    `json:"description,omitempty" db:"description"`
	BaselineConfig string    `json:"baseline_config,omitempty" db:"baseline_config"` // opaque configuration text
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// CreateBaselineRequest represents a request to create a configuration baseline.
type CreateBaselineRequest struct {
	Name           string `json:"name"`
	AssetType      string `json:"asset_type"`
	Description    string `json:"description,omitempty"`
	BaselineConfig string `json:"baseline_config,omitempty"`
}

// UpdateBaselineRequest represents a partial update to a configuration baseline.
type UpdateBaselineRequest struct {
	Name           *string `json:"name,omitempty"`
	AssetType      *string `json:"asset_type,omitempty"`
	Description    *string `json:"description,omitempty"`
	BaselineConfig *string `json:"baseline_config,omitempty"`
}

// ConfigurationDeviation represents a detected divergence of an asset's actual
// configuration from a baseline. AssetName and BaselineName are denormalized
// on reads for display.
type ConfigurationDeviation struct {
	ID               int64           `json:"id" db:"id"`
	AssetID          int64           `json:"asset_id" db:"asset_id"`
	AssetName        string          `json:"asset_name,omitempty" db:"asset_name"`
	BaselineID       int64           `json:"baseline_id" db:"baseline_id"`
	BaselineName     string          `json:"baseline_name,omitempty" db:"baseline_name"`
	DeviationType    DeviationType   `json:"deviation_type" db:"deviation_type"`
	ParameterName    string          `json:"parameter_name" db:"parameter_name"`
	ExpectedValue    string          `json:"expected_value,omitempty" db:"expected_value"`
	ActualValue      string          `json:"actual_value,omitempty" db:"actual_value"`
	RiskLevel        RiskLevel       `json:"risk_level" db:"risk_level"`
	Status           DeviationStatus `json:"status" db:"status"`
	RemediationNotes string          `json:"remediation_notes,omitempty" db:"remediation_notes"`
	DiscoveredDate   time.Time       `json:"discovered_date" db:"discovered_date"`
	RemediationDate  *time.Time      `json:"remediation_date" db:"remediation_date"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// CreateDeviationRequest represents a request to record a configuration deviation.
type CreateDeviationRequest struct {
	AssetID          int64           `json:"asset_id"`
	BaselineID       int64           `json:"baseline_id"`
	DeviationType    DeviationType   `json:"deviation_type"`
	ParameterName    string          `json:"parameter_name"`
	ExpectedValue    string          `json:"expected_value,omitempty"`
	ActualValue      string          `json:"actual_value,omitempty"`
	RiskLevel        RiskLevel       `json:"risk_level"`
	Status           DeviationStatus `json:"status,omitempty"`
	RemediationNotes string          `json:"remediation_notes,omitempty"`
	DiscoveredDate   *time.Time      `json:"discovered_date,omitempty"`
}

// UpdateDeviationRequest represents a partial update to a configuration deviation.
type UpdateDeviationRequest struct {
	AssetID          *int64           `json:"asset_id,omitempty"`
	BaselineID       *int64           `json:"baseline_id,omitempty"`
	DeviationType    *DeviationType   `json:"deviation_type,omitempty"`
	ParameterName    *string          `json:"parameter_name,omitempty"`
	ExpectedValue    *string          `json:"expected_value,omitempty"`
	ActualValue      *string          `json:"actual_value,omitempty"`
	RiskLevel        *RiskLevel       `json:"risk_level,omitempty"`
	Status           *DeviationStatus `json:"status,omitempty"`
	RemediationNotes *string          `json:"remediation_notes,omitempty"`
	RemediationDate  *time.Time       `json:"remediation_date,omitempty"`
}

// DeviationFilter defines filters for listing deviations.
type DeviationFilter struct {
	AssetID    int64
	BaselineID int64
	RiskLevel  RiskLevel
	Status     DeviationStatus
}

// RiskLevelCounts holds deviation counts per risk level.
type RiskLevelCounts struct {
	Critical int64 `json:"critical" db:"critical"`
	High     int64 `json:"high" db:"high"`
	Medium   int64 `json:"medium" db:"medium"`
	Low      int64 `json:"low" db:"low"`
}

// DeviationStatusCounts holds deviation counts per remediation status.
type DeviationStatusCounts struct {
	Open       int64 `json:"open" db:"open"`
	Remediated int64 `json:"remediated" db:"remediated"`
	Accepted   int64 `json:"accepted" db:"accepted"`
}

// DeviationStats provides aggregate deviation counts.
type DeviationStats struct {
	TotalDeviations int64                 `json:"total_deviations"`
	ByRiskLevel     RiskLevelCounts       `json:"by_risk_level"`
	ByStatus        DeviationStatusCounts `json:"by_status"`
}
