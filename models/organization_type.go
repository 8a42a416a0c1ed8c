// Package models contains domain entities for the organization directory
package models

import (
	"time"
)

type OrganizationType struct {
	OrgTypeID uint      `gorm:"primaryKey" json:"orgTypeId"`
	OrgType   string    `gorm:"size:100;not null;index:idx_organization_types_org_type" json:"orgType"`
	IsActive  *bool     `gorm:"default:true;index:idx_organization_types_is_active" json:"isActive"`
	CreatedOn time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"createdOn"`
	UpdatedOn time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updatedOn"`
	CreatedBy *uint     `json:"createdBy,omitempty"`
	UpdatedBy *uint     `json:"updatedBy,omitempty"`
}

func (OrganizationType) TableName() string {
	return "organization_types"
}

// OrganizationTypeFilter represents filter criteria for organization type queries
type OrganizationTypeFilter struct {
	OrgTypeID *uint
	OrgType   *string
	IsActive  *bool
}
