// Package models contains domain entities for the organization directory
package models

import (
	"time"

	"github.com/orgdesk/orgdesk/utils"
)

type UserSession struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SessionToken string    `gorm:"size:255;not null;uniqueIndex:idx_user_sessions_session_token" json:"-"` // Never serialize token
	UserID       uint      `gorm:"not null;index:idx_user_sessions_user_id" json:"userId"`
	User         *User     `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
	UserEmail    string    `gorm:"size:255;not null" json:"userEmail"` // Snapshot taken at sign-in
	UserName     string    `gorm:"size:255;not null" json:"userName"`
	IPAddress    *string   `gorm:"type:inet;index:idx_user_sessions_ip_address" json:"ipAddress,omitempty"`
	UserAgent    *string   `gorm:"type:text" json:"userAgent,omitempty"`
	IsActive     *bool     `gorm:"default:true;index:idx_user_sessions_is_active" json:"isActive"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
	ExpiresAt    time.Time `gorm:"not null;index:idx_user_sessions_expires_at" json:"expiresAt"`
}

func (UserSession) TableName() string {
	return "user_sessions"
}

func (s *UserSession) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

func (s *UserSession) IsValid() bool {
	return utils.IsTrue(s.IsActive) && !s.IsExpired()
}

// UserSessionFilter represents filter criteria for session queries
type UserSessionFilter struct {
	ID            *uint
	UserID        *uint
	IsActive      *bool
	IPAddress     *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	ExpiresAfter  *time.Time
	ExpiresBefore *time.Time
}
