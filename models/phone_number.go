// Package models contains domain entities for the organization directory
package models

import (
	"time"
)

type PhoneNumber struct {
	PhoneNumberID     uint             `gorm:"primaryKey" json:"phoneNumberId"`
	PhoneNumberTypeID *uint            `gorm:"index:idx_phone_numbers_type_id" json:"phoneNumberTypeId,omitempty"`
	PhoneNumberType   *PhoneNumberType `gorm:"foreignKey:PhoneNumberTypeID;references:PhoneNumberTypeID" json:"phoneNumberTypes,omitempty"`
	PhoneNumber       string           `gorm:"size:30;not null" json:"phoneNumber"`
	OrganizationID    *uint            `gorm:"index:idx_phone_numbers_organization_id" json:"organizationId,omitempty"`
	OrgBranchID       *uint            `gorm:"index:idx_phone_numbers_org_branch_id" json:"orgBranchId,omitempty"`
	IsActive          *bool            `gorm:"default:true" json:"isActive"`
	CreatedOn         time.Time        `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"createdOn"`
	UpdatedOn         time.Time        `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updatedOn"`
	CreatedBy         *uint            `json:"createdBy,omitempty"`
	UpdatedBy         *uint            `json:"updatedBy,omitempty"`
}

func (PhoneNumber) TableName() string {
	return "phone_numbers"
}

// PhoneNumberFilter represents filter criteria for phone number queries
type PhoneNumberFilter struct {
	PhoneNumberID     *uint
	PhoneNumberTypeID *uint
	OrganizationID    *uint
	OrgBranchID       *uint
	IsActive          *bool
}
