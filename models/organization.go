// Package models contains domain entities for the organization directory
package models

import (
	"time"
)

type Organization struct {
	OrgID              uint             `gorm:"primaryKey" json:"orgId"`
	OrganizationName   string           `gorm:"size:255;not null;index:idx_organizations_name" json:"organizationName"`
	OrgPOCFirstName    string           `gorm:"column:org_poc_first_name;size:100;not null" json:"orgPOCFirstName"`
	OrgPOCMiddleName   *string          `gorm:"column:org_poc_middle_name;size:100" json:"orgPOCMiddleName,omitempty"`
	OrgPOCLastName     string           `gorm:"column:org_poc_last_name;size:100;not null" json:"orgPOCLastName"`
	OrgPrimaryEmailID  string           `gorm:"column:org_primary_email_id;size:255;not null;index:idx_organizations_primary_email" json:"orgPrimaryEmailId"`
	OrgTypeID          uint             `gorm:"not null;index:idx_organizations_org_type_id" json:"orgTypeId"`
	OrganizationType   OrganizationType `gorm:"foreignKey:OrgTypeID;references:OrgTypeID" json:"organizationTypes,omitempty"`
	IndustryTypeID     uint             `gorm:"not null;index:idx_organizations_industry_type_id" json:"industryTypeId"`
	IndustryType       IndustryType     `gorm:"foreignKey:IndustryTypeID;references:IndustryTypeID" json:"industryTypes,omitempty"`
	IndustrySubTypeID  *uint            `gorm:"index:idx_organizations_industry_sub_type_id" json:"industrySubTypeId,omitempty"`
	IndustrySubType    *IndustryType    `gorm:"foreignKey:IndustrySubTypeID;references:IndustryTypeID" json:"industrySubTypes,omitempty"`
	IsActive           *bool            `gorm:"default:true;index:idx_organizations_is_active" json:"isActive"`
	CreatedOn          time.Time        `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_organizations_created_on" json:"createdOn"`
	UpdatedOn          time.Time        `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updatedOn"`
	CreatedBy          *uint            `json:"createdBy,omitempty"`
	UpdatedBy          *uint            `json:"updatedBy,omitempty"`

	// Relations
	Address     *Address     `gorm:"foreignKey:OrganizationID;references:OrgID" json:"address,omitempty"`
	PhoneNumber *PhoneNumber `gorm:"foreignKey:OrganizationID;references:OrgID" json:"phoneNumber,omitempty"`
	Branches    []Branch     `gorm:"foreignKey:OrgID;references:OrgID" json:"branches,omitempty"`
}

func (Organization) TableName() string {
	return "app_organizations"
}

// OrganizationFilter represents filter criteria for organization queries
type OrganizationFilter struct {
	OrgID             *uint
	OrganizationName  *string
	OrgPrimaryEmailID *string
	OrgTypeID         *uint
	IndustryTypeID    *uint
	IsActive          *bool
	CreatedAfter      *time.Time
	CreatedBefore     *time.Time
}
