// Package models contains domain entities for the organization directory
package models

import (
	"time"
)

type PhoneNumberType struct {
	PhoneNumberTypeID uint      `gorm:"primaryKey" json:"phoneNumberTypeId"`
	PhoneNumberType   string    `gorm:"size:100;not null;index:idx_phone_number_types_type" json:"phoneNumberType"`
	LanguageID        *uint     `json:"languageId,omitempty"`
	IsActive          *bool     `gorm:"default:true;index:idx_phone_number_types_is_active" json:"isActive"`
	CreatedOn         time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"createdOn"`
	UpdatedOn         time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updatedOn"`
	CreatedBy         *uint     `json:"createdBy,omitempty"`
	UpdatedBy         *uint     `json:"updatedBy,omitempty"`
}

func (PhoneNumberType) TableName() string {
	return "phone_number_types"
}

// PhoneNumberTypeFilter represents filter criteria for phone number type queries
type PhoneNumberTypeFilter struct {
	PhoneNumberTypeID *uint
	PhoneNumberType   *string
	IsActive          *bool
}
