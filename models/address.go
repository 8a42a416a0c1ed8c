// Package models contains domain entities for the organization directory
package models

import (
	"time"
)

type Address struct {
	AddressID      uint          `gorm:"primaryKey" json:"addressId"`
	AddressLine1   string        `gorm:"size:255;not null" json:"addressLine1"`
	AddressLine2   *string       `gorm:"size:255" json:"addressLine2,omitempty"`
	AddressLine3   *string       `gorm:"size:255" json:"addressLine3,omitempty"`
	AddressTypeID  *uint         `gorm:"index:idx_addresses_address_type_id" json:"addressTypeId,omitempty"`
	AddressType    *AddressType  `gorm:"foreignKey:AddressTypeID;references:AddressTypeID" json:"addressTypes,omitempty"`
	CountryID      *uint         `gorm:"index:idx_addresses_country_id" json:"countryId,omitempty"`
	Country        *Country      `gorm:"foreignKey:CountryID;references:CountryID" json:"country,omitempty"`
	CountryStateID *uint         `gorm:"index:idx_addresses_country_state_id" json:"countryStateId,omitempty"`
	CountryState   *CountryState `gorm:"foreignKey:CountryStateID;references:CountryStateID" json:"countryState,omitempty"`
	CityID         *uint         `gorm:"index:idx_addresses_city_id" json:"cityId,omitempty"`
	City           *City         `gorm:"foreignKey:CityID;references:CityID" json:"city,omitempty"`
	OrganizationID *uint         `gorm:"index:idx_addresses_organization_id" json:"organizationId,omitempty"`
	OrgBranchID    *uint         `gorm:"index:idx_addresses_org_branch_id" json:"orgBranchId,omitempty"`
	IsActive       *bool         `gorm:"default:true" json:"isActive"`
	CreatedOn      time.Time     `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"createdOn"`
	UpdatedOn      time.Time     `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updatedOn"`
	CreatedBy      *uint         `json:"createdBy,omitempty"`
	UpdatedBy      *uint         `json:"updatedBy,omitempty"`
}

func (Address) TableName() string {
	return "addresses"
}

// AddressFilter represents filter criteria for address queries
type AddressFilter struct {
	AddressID      *uint
	OrganizationID *uint
	OrgBranchID    *uint
	AddressTypeID  *uint
	CountryID      *uint
	CountryStateID *uint
	CityID         *uint
	IsActive       *bool
}
