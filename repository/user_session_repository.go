// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orgdesk/orgdesk/models"
	"github.com/orgdesk/orgdesk/utils"
	"gorm.io/gorm"
)

// UserSessionRepositoryImpl implements UserSessionRepository interface
type UserSessionRepositoryImpl struct {
	*BaseRepository[models.UserSession, models.UserSessionFilter]
}

// NewUserSessionRepository creates a new user session repository
func NewUserSessionRepository(db *gorm.DB) UserSessionRepository {
	return &UserSessionRepositoryImpl{
		BaseRepository: NewBaseRepository[models.UserSession, models.UserSessionFilter](db),
	}
}

// BySessionToken retrieves an active, unexpired session by its token
func (r *UserSessionRepositoryImpl) BySessionToken(ctx context.Context, token string) (*models.UserSession, error) {
	db := r.getDB(ctx)

	var session models.UserSession
	err := db.Where("session_token = ? AND is_active = ? AND expires_at > ?",
		token, true, time.Now()).
		Preload("User").
		First(&session).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find session by token: %w", err)
	}

	return &session, nil
}

// DeactivateByToken marks the session with the given token inactive.
// Returns false when no active session carried the token, sign-out
// stays idempotent either way.
func (r *UserSessionRepositoryImpl) DeactivateByToken(ctx context.Context, token string) (bool, error) {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return false, err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	res := db.Model(&models.UserSession{}).
		Where("session_token = ? AND is_active = ?", token, true).
		Update("is_active", false)
	err = res.Error
	if err != nil {
		return false, err
	}

	return res.RowsAffected > 0, nil
}

// DeactivateAllUserSessions marks every active session of a user inactive.
// Used after a password reset so stale cookies stop working.
func (r *UserSessionRepositoryImpl) DeactivateAllUserSessions(ctx context.Context, userID uint) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	err = db.Model(&models.UserSession{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Update("is_active", false).Error
	if err != nil {
		return fmt.Errorf("failed to deactivate user sessions: %w", err)
	}

	return nil
}

// CleanupExpiredSessions marks naturally expired sessions inactive and
// reports how many rows were changed
func (r *UserSessionRepositoryImpl) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return 0, err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	result := db.Model(&models.UserSession{}).
		Where("is_active = ? AND expires_at <= ?", true, utils.UTCNow()).
		Update("is_active", false)
	if err = result.Error; err != nil {
		return 0, fmt.Errorf("failed to cleanup expired sessions: %w", err)
	}

	return result.RowsAffected, nil
}

// ByFilter retrieves sessions based on filter criteria
func (r *UserSessionRepositoryImpl) ByFilter(ctx context.Context, filter models.UserSessionFilter, orderBy string, limit, offset int) ([]*models.UserSession, error) {
	db := r.getDB(ctx)

	var sessions []*models.UserSession
	query := r.applyFilter(db, filter)

	if orderBy != "" {
		query = query.Order(orderBy)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

// Count returns the number of sessions matching the filter
func (r *UserSessionRepositoryImpl) Count(ctx context.Context, filter models.UserSessionFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	var session models.UserSession
	query := r.applyFilter(db.Model(&session), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any session matching the filter exists
func (r *UserSessionRepositoryImpl) Exists(ctx context.Context, filter models.UserSessionFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *UserSessionRepositoryImpl) applyFilter(db *gorm.DB, filter models.UserSessionFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IPAddress != nil {
		db = db.Where("ip_address = ?", *filter.IPAddress)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at < ?", *filter.CreatedBefore)
	}
	if filter.ExpiresAfter != nil {
		db = db.Where("expires_at > ?", *filter.ExpiresAfter)
	}
	if filter.ExpiresBefore != nil {
		db = db.Where("expires_at <= ?", *filter.ExpiresBefore)
	}

	return db
}
