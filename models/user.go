// Package models contains domain entities for the organization directory
package models

import (
	"time"
)

type User struct {
	UserID       uint      `gorm:"primaryKey" json:"userId"`
	Prefix       *string   `gorm:"size:20" json:"prefix,omitempty"`
	FirstName    string    `gorm:"size:100;not null;index:idx_app_users_first_name" json:"firstName"`
	MiddleName   *string   `gorm:"size:100" json:"middleName,omitempty"`
	LastName     string    `gorm:"size:100;not null;index:idx_app_users_last_name" json:"lastName"`
	Email        string    `gorm:"size:255;not null;uniqueIndex:idx_app_users_email" json:"email"`
	UserPassword string    `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialized
	PhoneNumber  *string   `gorm:"size:30" json:"phoneNumber,omitempty"`
	IsActive     *bool     `gorm:"default:true;index:idx_app_users_is_active" json:"isActive"`
	CreatedOn    time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_app_users_created_on" json:"createdOn"`
	UpdatedOn    time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updatedOn"`
	CreatedBy    *uint     `json:"createdBy,omitempty"`
	UpdatedBy    *uint     `json:"updatedBy,omitempty"`
}

func (User) TableName() string {
	return "app_users"
}

// FullName joins the non-empty name parts with single spaces.
func (u *User) FullName() string {
	name := u.FirstName
	if u.MiddleName != nil && *u.MiddleName != "" {
		name += " " + *u.MiddleName
	}
	if u.LastName != "" {
		name += " " + u.LastName
	}
	return name
}

// UserFilter represents filter criteria for user queries
type UserFilter struct {
	UserID        *uint
	FirstName     *string
	LastName      *string
	Email         *string
	PhoneNumber   *string
	IsActive      *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
