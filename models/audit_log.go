// Package models contains domain entities for the organization directory
package models

import (
	"time"
)

type AuditLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       *uint     `gorm:"index:idx_audit_user_id" json:"userId,omitempty"`
	User         *User     `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
	Action       string    `gorm:"size:100;not null;index:idx_audit_action" json:"action"`
	Entity       *string   `gorm:"size:100;index:idx_audit_entity" json:"entity,omitempty"`
	EntityID     *uint     `json:"entityId,omitempty"`
	Description  *string   `gorm:"type:text" json:"description,omitempty"`
	IPAddress    *string   `gorm:"type:inet;index:idx_audit_ip_address" json:"ipAddress,omitempty"`
	UserAgent    *string   `gorm:"type:text" json:"userAgent,omitempty"`
	RequestID    *string   `gorm:"size:255;index:idx_audit_request_id" json:"requestId,omitempty"`
	Success      *bool     `gorm:"default:true;index:idx_audit_success" json:"success"`
	ErrorMessage *string   `gorm:"type:text" json:"errorMessage,omitempty"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP;index:idx_audit_created_at" json:"createdAt"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}

// Audit action constants
const (
	AuditActionSignInSuccess          = "sign_in_success"
	AuditActionSignInFailed           = "sign_in_failed"
	AuditActionSignOut                = "sign_out"
	AuditActionPasswordResetRequested = "password_reset_requested"
	AuditActionPasswordResetCompleted = "password_reset_completed"
	AuditActionPasswordResetFailed    = "password_reset_failed"
	AuditActionEntityCreated          = "entity_created"
	AuditActionEntityUpdated          = "entity_updated"
	AuditActionEntityDeleted          = "entity_deleted"
)

// AuditLogFilter represents filter criteria for audit log queries
type AuditLogFilter struct {
	ID            *uint
	UserID        *uint
	Action        *string
	Entity        *string
	Success       *bool
	RequestID     *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

func (a *AuditLog) IsFailed() bool {
	return a.Success != nil && !*a.Success
}
