// Package models contains domain entities for the organization directory
package models

import (
	"time"
)

type Country struct {
	CountryID  uint      `gorm:"primaryKey" json:"countryId"`
	Country    string    `gorm:"size:100;not null;index:idx_countries_country" json:"country"`
	LanguageID *uint     `json:"languageId,omitempty"`
	IsActive   *bool     `gorm:"default:true;index:idx_countries_is_active" json:"isActive"`
	CreatedOn  time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"createdOn"`
	UpdatedOn  time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updatedOn"`
	CreatedBy  *uint     `json:"createdBy,omitempty"`
	UpdatedBy  *uint     `json:"updatedBy,omitempty"`
}

func (Country) TableName() string {
	return "countries"
}

// CountryFilter represents filter criteria for country queries
type CountryFilter struct {
	CountryID *uint
	Country   *string
	IsActive  *bool
}

type CountryState struct {
	CountryStateID uint      `gorm:"primaryKey" json:"countryStateId"`
	CountryID      uint      `gorm:"not null;index:idx_country_states_country_id" json:"countryId"`
	Country        *Country  `gorm:"foreignKey:CountryID;references:CountryID" json:"country,omitempty"`
	CountryState   string    `gorm:"size:100;not null;index:idx_country_states_country_state" json:"countryState"`
	LanguageID     *uint     `json:"languageId,omitempty"`
	IsActive       *bool     `gorm:"default:true;index:idx_country_states_is_active" json:"isActive"`
	CreatedOn      time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"createdOn"`
	UpdatedOn      time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updatedOn"`
	CreatedBy      *uint     `json:"createdBy,omitempty"`
	UpdatedBy      *uint     `json:"updatedBy,omitempty"`
}

func (CountryState) TableName() string {
	return "country_states"
}

// CountryStateFilter represents filter criteria for state queries
type CountryStateFilter struct {
	CountryStateID *uint
	CountryID      *uint
	CountryState   *string
	IsActive       *bool
}

type City struct {
	CityID         uint          `gorm:"primaryKey" json:"cityId"`
	CountryStateID uint          `gorm:"not null;index:idx_cities_country_state_id" json:"countryStateId"`
	CountryState   *CountryState `gorm:"foreignKey:CountryStateID;references:CountryStateID" json:"countryState,omitempty"`
	City           string        `gorm:"size:100;not null;index:idx_cities_city" json:"city"`
	LanguageID     *uint         `json:"languageId,omitempty"`
	IsActive       *bool         `gorm:"default:true;index:idx_cities_is_active" json:"isActive"`
	CreatedOn      time.Time     `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"createdOn"`
	UpdatedOn      time.Time     `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updatedOn"`
	CreatedBy      *uint         `json:"createdBy,omitempty"`
	UpdatedBy      *uint         `json:"updatedBy,omitempty"`
}

func (City) TableName() string {
	return "cities"
}

// CityFilter represents filter criteria for city queries
type CityFilter struct {
	CityID         *uint
	CountryStateID *uint
	City           *string
	IsActive       *bool
}
