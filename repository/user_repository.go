package repository

import (
	"context"

	"github.com/orgdesk/orgdesk/models"
	"github.com/orgdesk/orgdesk/utils"
	"gorm.io/gorm"
)

// userListSpec whitelists listing columns for application users. The
// password hash is never searchable, filterable or sortable.
var userListSpec = ListSpec{
	SearchColumns: []string{
		"app_users.first_name",
		"app_users.last_name",
		"app_users.email",
		"app_users.phone_number",
	},
	FilterColumns: map[string]string{
		"firstName":   "app_users.first_name",
		"lastName":    "app_users.last_name",
		"email":       "app_users.email",
		"phoneNumber": "app_users.phone_number",
	},
	SortColumns: map[string]string{
		"firstName": "app_users.first_name",
		"lastName":  "app_users.last_name",
		"email":     "app_users.email",
	},
	DefaultOrder: "app_users.user_id DESC",
}

// UserRepositoryImpl implements the UserRepository interface
type UserRepositoryImpl struct {
	*BaseRepository[models.User, models.UserFilter]
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{
		BaseRepository: NewBaseRepository[models.User, models.UserFilter](db),
	}
}

// ByEmail retrieves an active user by exact email match
func (r *UserRepositoryImpl) ByEmail(ctx context.Context, email string) (*models.User, error) {
	filter := models.UserFilter{Email: &email, IsActive: utils.ToPtr(true)}
	users, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return nil, nil
	}

	return users[0], nil
}

// List retrieves the requested page of active users plus the total count
// under the same predicates.
func (r *UserRepositoryImpl) List(ctx context.Context, q ListQuery) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	err := r.withTx(ctx, func(tx *gorm.DB) error {
		predicated := func() *gorm.DB {
			scoped := tx.Model(&models.User{}).Where("app_users.is_active = ?", true)
			return userListSpec.ApplyPredicates(scoped, q)
		}

		if err := predicated().Count(&total).Error; err != nil {
			return err
		}

		query := userListSpec.ApplyWindow(userListSpec.ApplyOrder(predicated(), q), q)

		return query.Find(&users).Error
	})
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Update updates a user
func (r *UserRepositoryImpl) Update(ctx context.Context, user *models.User) error {
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

	user.UpdatedOn = utils.UTCNow()

	err = db.Save(user).Error
	if err != nil {
		return err
	}

	return nil
}

// UpdatePassword overwrites the stored password hash for a user
func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
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

	err = db.Model(&models.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"user_password": passwordHash,
			"updated_on":    utils.UTCNow(),
		}).Error
	if err != nil {
		return err
	}

	return nil
}

// SoftDelete marks a user inactive. The update is unconditional so
// deleting an already-inactive row still succeeds; false means the row
// does not exist.
func (r *UserRepositoryImpl) SoftDelete(ctx context.Context, id uint, deletedBy uint) (bool, error) {
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

	res := db.Model(&models.User{}).
		Where("user_id = ?", id).
		Updates(map[string]any{
			"is_active":  false,
			"updated_on": utils.UTCNow(),
			"updated_by": deletedBy,
		})
	err = res.Error
	if err != nil {
		return false, err
	}

	return res.RowsAffected > 0, nil
}

// SoftDeleteMany marks the given users inactive and reports how many
// rows actually changed.
func (r *UserRepositoryImpl) SoftDeleteMany(ctx context.Context, ids []uint, deletedBy uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

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

	res := db.Model(&models.User{}).
		Where("user_id IN ? AND is_active = ?", ids, true).
		Updates(map[string]any{
			"is_active":  false,
			"updated_on": utils.UTCNow(),
			"updated_by": deletedBy,
		})
	err = res.Error
	if err != nil {
		return 0, err
	}

	return res.RowsAffected, nil
}

// DistinctColumn returns the distinct values of one column across active
// users. The column name comes from a compile-time whitelist.
func (r *UserRepositoryImpl) DistinctColumn(ctx context.Context, column string) ([]string, error) {
	db := r.getDB(ctx)

	var values []string
	err := db.Model(&models.User{}).
		Where("is_active = ?", true).
		Distinct(column).
		Order(column).
		Pluck(column, &values).Error
	if err != nil {
		return nil, err
	}

	return values, nil
}

// ByFilter retrieves users based on filter criteria
func (r *UserRepositoryImpl) ByFilter(ctx context.Context, filter models.UserFilter, orderBy string, limit, offset int) ([]*models.User, error) {
	db := r.getDB(ctx)

	var users []*models.User
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

	err := query.Find(&users).Error
	if err != nil {
		return nil, err
	}

	return users, nil
}

// Count returns the number of users matching the filter
func (r *UserRepositoryImpl) Count(ctx context.Context, filter models.UserFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	var user models.User
	query := r.applyFilter(db.Model(&user), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any user matching the filter exists
func (r *UserRepositoryImpl) Exists(ctx context.Context, filter models.UserFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *UserRepositoryImpl) applyFilter(db *gorm.DB, filter models.UserFilter) *gorm.DB {
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	if filter.FirstName != nil {
		db = db.Where("first_name ILIKE ?", "%"+*filter.FirstName+"%")
	}
	if filter.LastName != nil {
		db = db.Where("last_name ILIKE ?", "%"+*filter.LastName+"%")
	}
	if filter.Email != nil {
		db = db.Where("email = ?", *filter.Email)
	}
	if filter.PhoneNumber != nil {
		db = db.Where("phone_number = ?", *filter.PhoneNumber)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_on >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_on < ?", *filter.CreatedBefore)
	}

	return db
}
