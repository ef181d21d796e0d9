// Package model provides data models for the OT compliance tracker.
package model

import "time"

// Criticality represents asset criticality levels.
type Criticality string

const (
	CriticalityCritical Criticality = "Critical"
	CriticalityHigh     Criticality = "High"
	CriticalityMedium   Criticality = "Medium"
	CriticalityLow      Criticality = "Low"
)

// Valid reports whether the criticality is a known value.
func (c Criticality) Valid() bool {
	switch c {
	case CriticalityCritical, CriticalityHigh, CriticalityMedium, CriticalityLow:
		return true
	}
	return false
}

// AssetStatus represents asset lifecycle status values.
type AssetStatus string

const (
	AssetStatusActive         AssetStatus = "Active"
	AssetStatusInactive       AssetStatus = "Inactive"
	AssetStatusDecommissioned AssetStatus = "Decommissioned"
)

// Valid reports whether the status is a known value.
func (s AssetStatus) Valid() bool {
	switch s {
	case AssetStatusActive, AssetStatusInactive, AssetStatusDecommissioned:
		return true
	}
	return false
}

// Asset represents a physical or logical OT device.
type Asset struct {
	ID           int64       `json:"id" db:"id"`
	Name         string      `json:"name" db:"name"`
	AssetType    string      `json:"asset_type" db:"asset_type"` // HMI, PLC, SCADA, etc.
	Manufacturer string      `json:"manufacturer,omitempty" db:"manufacturer"`
	Model        string      `json:"model,omitempty" db:"model"`
	SerialNumber string      `json:"serial_number,omitempty" db:"serial_number"`
	IPAddress    string      `json:"ip_address,omitempty" db:"ip_address"` // IPv4 or IPv6
	Location     string      `json:"location,omitempty" db:"location"`
	Criticality  Criticality `json:"criticality" db:"criticality"`
	Status       AssetStatus `json:"status" db:"status"`
	Description  string      `json:"description,omitempty" db:"description"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

// CreateAssetRequest represents a request to register a new asset.
type CreateAssetRequest struct {
	Name         string      `json:"name"`
	AssetType    string      `json:"asset_type"`
	Manufacturer string      `json:"manufacturer,omitempty"`
	Model        string      `json:"model,omitempty"`
	SerialNumber string      `json:"serial_number,omitempty"`
	IPAddress    string      `json:"ip_address,omitempty"`
	Location     string      `json:"location,omitempty"`
	Criticality  Criticality `json:"criticality"`
	Status       AssetStatus `json:"status,omitempty"`
	Description  string      `json:"description,omitempty"`
}

// UpdateAssetRequest represents a partial update to an asset.
// Only present fields overwrite the stored values.
type UpdateAssetRequest struct {
	Name         *string      `json:"name,omitempty"`
	AssetType    *string      `json:"asset_type,omitempty"`
	Manufacturer *string      `json:"manufacturer,omitempty"`
	Model        *string      `json:"model,omitempty"`
	SerialNumber *string      `json:"serial_number,omitempty"`
	IPAddress    *string      `json:"ip_address,omitempty"`
	Location     *string      `json:"location,omitempty"`
	Criticality  *Criticality `json:"criticality,omitempty"`
	Status       *AssetStatus `json:"status,omitempty"`
	Description  *string      `json:"description,omitempty"`
}

// AssetFilter defines filters for listing assets.
type AssetFilter struct {
	Criticality Criticality
	Status      AssetStatus
	AssetType   string
	Search      string
}

// CriticalityCounts holds asset counts per criticality level.
type CriticalityCounts struct {
	Critical int64 `json:"critical" db:"critical"`
	High     int64 `json:"high" db:"high"`
	Medium   int64 `json:"medium" db:"medium"`
	Low      int64 `json:"low" db:"low"`
}

// AssetStatusCounts holds asset counts per lifecycle status.
type AssetStatusCounts struct {
	Active         int64 `json:"active" db:"active"`
	Inactive       int64 `json:"inactive" db:"inactive"`
	Decommissioned int64 `json:"decommissioned" db:"decommissioned"`
}

// AssetStats provides aggregate asset counts.
type AssetStats struct {
	TotalAssets   int64             `json:"total_assets"`
	ByCriticality CriticalityCounts `json:"by_criticality"`
	ByStatus      AssetStatusCounts `json:"by_status"`
}
