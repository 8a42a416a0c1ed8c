// Package businessflow contains the business logic for the application.
package businessflow

import (
	"context"
	"fmt"

	"github.com/orgdesk/orgdesk/app/dto"
	"github.com/orgdesk/orgdesk/models"
	"github.com/orgdesk/orgdesk/repository"
	"github.com/orgdesk/orgdesk/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserFlow handles application user CRUD operations
type UserFlow interface {
	ListUsers(ctx context.Context, params *dto.ListParams) (*dto.ListData, error)
	GetUser(ctx context.Context, userID uint) (*models.User, error)
	CreateUser(ctx context.Context, request *dto.CreateUserRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error)
	UpdateUser(ctx context.Context, request *dto.UpdateUserRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error)
	DeleteUser(ctx context.Context, request *dto.DeleteUserRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error)
	BulkDeleteUsers(ctx context.Context, request *dto.BulkDeleteRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error)
}

// UserFlowImpl implements the user business flow
type UserFlowImpl struct {
	userRepo    repository.UserRepository
	sessionRepo repository.UserSessionRepository
	auditRepo   repository.AuditLogRepository
	bcryptCost  int
	db          *gorm.DB
}

// NewUserFlow creates a new user flow instance
func NewUserFlow(
	userRepo repository.UserRepository,
	sessionRepo repository.UserSessionRepository,
	auditRepo repository.AuditLogRepository,
	bcryptCost int,
	db *gorm.DB,
) UserFlow {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserFlowImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		auditRepo:   auditRepo,
		bcryptCost:  bcryptCost,
		db:          db,
	}
}

// ListUsers returns one page of users plus the total match count. Password
// hashes never serialize, the model hides them from JSON.
func (uf *UserFlowImpl) ListUsers(ctx context.Context, params *dto.ListParams) (*dto.ListData, error) {
	rows, count, err := uf.userRepo.List(ctx, BuildListQuery(params))
	if err != nil {
		return nil, NewBusinessError("USER_LIST_FAILED", "User list failed", err)
	}
	return &dto.ListData{Count: count, Rows: rows}, nil
}

// GetUser returns one user
func (uf *UserFlowImpl) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := uf.userRepo.ByID(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("USER_GET_FAILED", "User get failed", err)
	}
	if user == nil || !utils.IsTrue(user.IsActive) {
		return nil, NewBusinessError("USER_NOT_FOUND", "User not found", ErrUserNotFound)
	}
	return user, nil
}

// CreateUser creates an application user with a bcrypt password hash
func (uf *UserFlowImpl) CreateUser(ctx context.Context, request *dto.CreateUserRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error) {
	var user *models.User

	err := repository.WithTransaction(ctx, uf.db, func(ctx context.Context) error {
		existing, err := uf.userRepo.ByEmail(ctx, request.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return NewBusinessError("EMAIL_ALREADY_EXISTS", "Email already exists", ErrEmailAlreadyExists)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), uf.bcryptCost)
		if err != nil {
			return err
		}

		actor := actorID(session)
		user = &models.User{
			Prefix:       request.Prefix,
			FirstName:    request.FirstName,
			MiddleName:   request.MiddleName,
			LastName:     request.LastName,
			Email:        request.Email,
			UserPassword: string(hash),
			PhoneNumber:  request.PhoneNumber,
			IsActive:     utils.ToPtr(true),
			CreatedBy:    actor,
			UpdatedBy:    actor,
		}
		return uf.userRepo.Save(ctx, user)
	})
	if err != nil {
		if IsBusinessErr(err) {
			return nil, err
		}
		return nil, NewBusinessError("USER_CREATE_FAILED", "User create failed", err)
	}

	uf.logEntityChange(ctx, session, models.AuditActionEntityCreated, "user", user.UserID, fmt.Sprintf("user created: %s", user.Email), metadata)

	return &dto.MutationData{Changes: dto.Changes{Status: dto.ChangeCreated, Entity: user}}, nil
}

// UpdateUser patches the user fields present in the request. Passwords are
// never updated here, only through the reset flow.
func (uf *UserFlowImpl) UpdateUser(ctx context.Context, request *dto.UpdateUserRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error) {
	var user *models.User

	err := repository.WithTransaction(ctx, uf.db, func(ctx context.Context) error {
		var err error
		user, err = uf.userRepo.ByID(ctx, request.UserID)
		if err != nil {
			return err
		}
		if user == nil || !utils.IsTrue(user.IsActive) {
			return NewBusinessError("USER_NOT_FOUND", "User not found", ErrUserNotFound)
		}

		if request.Email != nil && *request.Email != user.Email {
			existing, err := uf.userRepo.ByEmail(ctx, *request.Email)
			if err != nil {
				return err
			}
			if existing != nil && existing.UserID != user.UserID {
				return NewBusinessError("EMAIL_ALREADY_EXISTS", "Email already exists", ErrEmailAlreadyExists)
			}
			user.Email = *request.Email
		}

		if request.Prefix != nil {
			user.Prefix = request.Prefix
		}
		if request.FirstName != nil {
			user.FirstName = *request.FirstName
		}
		if request.MiddleName != nil {
			user.MiddleName = request.MiddleName
		}
		if request.LastName != nil {
			user.LastName = *request.LastName
		}
		if request.PhoneNumber != nil {
			user.PhoneNumber = request.PhoneNumber
		}
		user.UpdatedBy = actorID(session)

		return uf.userRepo.Update(ctx, user)
	})
	if err != nil {
		if IsBusinessErr(err) {
			return nil, err
		}
		return nil, NewBusinessError("USER_UPDATE_FAILED", "User update failed", err)
	}

	uf.logEntityChange(ctx, session, models.AuditActionEntityUpdated, "user", user.UserID, fmt.Sprintf("user updated: %d", user.UserID), metadata)

	return &dto.MutationData{Changes: dto.Changes{Status: dto.ChangeModified, Entity: user}}, nil
}

// DeleteUser soft-deletes one user and destroys their live sessions
func (uf *UserFlowImpl) DeleteUser(ctx context.Context, request *dto.DeleteUserRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error) {
	err := repository.WithTransaction(ctx, uf.db, func(ctx context.Context) error {
		deleted, err := uf.userRepo.SoftDelete(ctx, request.UserID, actorValue(session))
		if err != nil {
			return err
		}
		if !deleted {
			return NewBusinessError("USER_NOT_FOUND", "User not found", ErrUserNotFound)
		}
		return uf.sessionRepo.DeactivateAllUserSessions(ctx, request.UserID)
	})
	if err != nil {
		if IsBusinessErr(err) {
			return nil, err
		}
		return nil, NewBusinessError("USER_DELETE_FAILED", "User delete failed", err)
	}

	uf.logEntityChange(ctx, session, models.AuditActionEntityDeleted, "user", request.UserID, fmt.Sprintf("user deleted: %d", request.UserID), metadata)

	affected := int64(1)
	return &dto.MutationData{Changes: dto.Changes{Status: dto.ChangeModified, Affected: &affected}}, nil
}

// BulkDeleteUsers soft-deletes every distinct live user in the id set and
// destroys their live sessions
func (uf *UserFlowImpl) BulkDeleteUsers(ctx context.Context, request *dto.BulkDeleteRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error) {
	ids := DedupeIDs(request.IDs)

	var affected int64
	err := repository.WithTransaction(ctx, uf.db, func(ctx context.Context) error {
		var err error
		affected, err = uf.userRepo.SoftDeleteMany(ctx, ids, actorValue(session))
		if err != nil {
			return err
		}
		for _, id := range ids {
			if err := uf.sessionRepo.DeactivateAllUserSessions(ctx, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, NewBusinessError("USER_DELETE_FAILED", "User delete failed", err)
	}

	uf.logEntityChange(ctx, session, models.AuditActionEntityDeleted, "user", 0, fmt.Sprintf("users bulk deleted: %d of %d requested", affected, len(ids)), metadata)

	return &dto.MutationData{Changes: dto.Changes{Status: dto.ChangeModified, Affected: &affected}}, nil
}

func (uf *UserFlowImpl) logEntityChange(ctx context.Context, session *Session, action, entity string, entityID uint, description string, metadata *ClientMetadata) {
	ipAddress := "127.0.0.1"
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	audit := &models.AuditLog{
		UserID:      actorID(session),
		Action:      action,
		Entity:      &entity,
		Description: &description,
		Success:     utils.ToPtr(true),
		IPAddress:   &ipAddress,
		UserAgent:   &userAgent,
	}
	if entityID != 0 {
		audit.EntityID = &entityID
	}
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		audit.RequestID = &requestID
	}

	_ = uf.auditRepo.Save(ctx, audit)
}
