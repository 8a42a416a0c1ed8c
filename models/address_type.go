// Package models contains domain entities for the organization directory
package models

import (
	"time"
)

type AddressType struct {
	AddressTypeID uint      `gorm:"primaryKey" json:"addressTypeId"`
	AddressType   string    `gorm:"size:100;not null;index:idx_address_types_type" json:"addressType"`
	IsActive      *bool     `gorm:"default:true;index:idx_address_types_is_active" json:"isActive"`
	CreatedOn     time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"createdOn"`
	UpdatedOn     time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updatedOn"`
	CreatedBy     *uint     `json:"createdBy,omitempty"`
	UpdatedBy     *uint     `json:"updatedBy,omitempty"`
}

func (AddressType) TableName() string {
	return "address_types"
}

// AddressTypeFilter represents filter criteria for address type queries
type AddressTypeFilter struct {
	AddressTypeID *uint
	AddressType   *string
	IsActive      *bool
}
