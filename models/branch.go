// Package models contains domain entities for the organization directory
package models

import (
	"time"
)

type Branch struct {
	OrgBranchID    uint          `gorm:"primaryKey" json:"orgBranchId"`
	OrgID          uint          `gorm:"not null;index:idx_org_branches_org_id" json:"orgId"`
	Organization   *Organization `gorm:"foreignKey:OrgID;references:OrgID" json:"organization,omitempty"`
	OrgBranchName  string        `gorm:"size:255;not null;index:idx_org_branches_name" json:"orgBranchName"`
	OrgBranchNote  *string       `gorm:"type:text" json:"orgBranchNote,omitempty"`
	IndustryTypeID *uint         `gorm:"index:idx_org_branches_industry_type_id" json:"industryTypeId,omitempty"`
	IndustryType   *IndustryType `gorm:"foreignKey:IndustryTypeID;references:IndustryTypeID" json:"industryTypes,omitempty"`
	IsOrgBranch    *bool         `gorm:"default:false" json:"isOrgBranch"` // true for the head office created with the organization
	IsActive       *bool         `gorm:"default:true;index:idx_org_branches_is_active" json:"isActive"`
	CreatedOn      time.Time     `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_org_branches_created_on" json:"createdOn"`
	UpdatedOn      time.Time     `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updatedOn"`
	CreatedBy      *uint         `json:"createdBy,omitempty"`
	UpdatedBy      *uint         `json:"updatedBy,omitempty"`

	// Relations
	Address     *Address     `gorm:"foreignKey:OrgBranchID;references:OrgBranchID" json:"address,omitempty"`
	PhoneNumber *PhoneNumber `gorm:"foreignKey:OrgBranchID;references:OrgBranchID" json:"phoneNumber,omitempty"`
}

func (Branch) TableName() string {
	return "org_branches"
}

// BranchFilter represents filter criteria for branch queries
type BranchFilter struct {
	OrgBranchID    *uint
	OrgID          *uint
	OrgBranchName  *string
	IndustryTypeID *uint
	IsOrgBranch    *bool
	IsActive       *bool
	CreatedAfter   *time.Time
	CreatedBefore  *time.Time
}
