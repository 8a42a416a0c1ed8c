// Package models contains domain entities for the organization directory
package models

import (
	"time"
)

type IndustryType struct {
	IndustryTypeID       uint          `gorm:"primaryKey" json:"industryTypeId"`
	IndustryType         string        `gorm:"size:100;not null;index:idx_industry_types_industry_type" json:"industryType"`
	ParentIndustryTypeID *uint         `gorm:"index:idx_industry_types_parent_id" json:"parentIndustryTypeId,omitempty"`
	Parent               *IndustryType `gorm:"foreignKey:ParentIndustryTypeID;references:IndustryTypeID" json:"parent,omitempty"`
	IsActive             *bool         `gorm:"default:true;index:idx_industry_types_is_active" json:"isActive"`
	CreatedOn            time.Time     `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"createdOn"`
	UpdatedOn            time.Time     `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updatedOn"`
	CreatedBy            *uint         `json:"createdBy,omitempty"`
	UpdatedBy            *uint         `json:"updatedBy,omitempty"`
}

func (IndustryType) TableName() string {
	return "industry_types"
}

// IsSubType reports whether this industry type is nested under a parent.
func (i *IndustryType) IsSubType() bool {
	return i.ParentIndustryTypeID != nil
}

// IndustryTypeFilter represents filter criteria for industry type queries
type IndustryTypeFilter struct {
	IndustryTypeID       *uint
	IndustryType         *string
	ParentIndustryTypeID *uint
	IsActive             *bool
}
