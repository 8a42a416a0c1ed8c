// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/orgdesk/orgdesk/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// Lister is the windowed listing contract shared by all resource repositories.
// List returns the page of rows plus the total row count under the same predicates.
type Lister[T any] interface {
	List(ctx context.Context, q ListQuery) ([]*T, int64, error)
}

// OrganizationRepository defines operations for organizations
type OrganizationRepository interface {
	Repository[models.Organization, models.OrganizationFilter]
	Lister[models.Organization]
	Update(ctx context.Context, org *models.Organization) error
	SoftDelete(ctx context.Context, id uint, deletedBy uint) (bool, error)
	SoftDeleteMany(ctx context.Context, ids []uint, deletedBy uint) (int64, error)
	DistinctColumn(ctx context.Context, column string) ([]string, error)
}

// BranchRepository defines operations for organization branches
type BranchRepository interface {
	Repository[models.Branch, models.BranchFilter]
	Lister[models.Branch]
	Update(ctx context.Context, branch *models.Branch) error
	SoftDelete(ctx context.Context, id uint, deletedBy uint) (bool, error)
	SoftDeleteMany(ctx context.Context, ids []uint, deletedBy uint) (int64, error)
	DistinctColumn(ctx context.Context, column string) ([]string, error)
}

// UserRepository defines operations for application users
type UserRepository interface {
	Repository[models.User, models.UserFilter]
	Lister[models.User]
	ByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
	SoftDelete(ctx context.Context, id uint, deletedBy uint) (bool, error)
	SoftDeleteMany(ctx context.Context, ids []uint, deletedBy uint) (int64, error)
	DistinctColumn(ctx context.Context, column string) ([]string, error)
}

// AddressRepository defines operations for addresses
type AddressRepository interface {
	Repository[models.Address, models.AddressFilter]
	Update(ctx context.Context, address *models.Address) error
}

// PhoneNumberRepository defines operations for phone numbers
type PhoneNumberRepository interface {
	Repository[models.PhoneNumber, models.PhoneNumberFilter]
	Update(ctx context.Context, phone *models.PhoneNumber) error
}

// LookupRepository defines the shared operations for lookup reference tables
type LookupRepository[T any, F any] interface {
	Repository[T, F]
	Lister[T]
	Update(ctx context.Context, entity *T) error
	SoftDelete(ctx context.Context, id uint, deletedBy uint) (bool, error)
}

// UserSessionRepository defines operations for user sessions
type UserSessionRepository interface {
	Repository[models.UserSession, models.UserSessionFilter]
	BySessionToken(ctx context.Context, token string) (*models.UserSession, error)
	DeactivateByToken(ctx context.Context, token string) (bool, error)
	DeactivateAllUserSessions(ctx context.Context, userID uint) error
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}

// AuditLogRepository defines operations for audit logs
type AuditLogRepository interface {
	Repository[models.AuditLog, models.AuditLogFilter]
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.AuditLog, error)
	ListByAction(ctx context.Context, action string, limit, offset int) ([]*models.AuditLog, error)
	ListFailedActions(ctx context.Context, limit, offset int) ([]*models.AuditLog, error)
}
