package repository

import (
	"context"

	"github.com/orgdesk/orgdesk/models"
	"github.com/orgdesk/orgdesk/utils"
	"gorm.io/gorm"
)

// PhoneNumberRepositoryImpl implements the PhoneNumberRepository interface
type PhoneNumberRepositoryImpl struct {
	*BaseRepository[models.PhoneNumber, models.PhoneNumberFilter]
}

// NewPhoneNumberRepository creates a new phone number repository
func NewPhoneNumberRepository(db *gorm.DB) PhoneNumberRepository {
	return &PhoneNumberRepositoryImpl{
		BaseRepository: NewBaseRepository[models.PhoneNumber, models.PhoneNumberFilter](db),
	}
}

// Update updates a phone number
func (r *PhoneNumberRepositoryImpl) Update(ctx context.Context, phone *models.PhoneNumber) error {
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

	phone.UpdatedOn = utils.UTCNow()

	err = db.Save(phone).Error
	if err != nil {
		return err
	}

	return nil
}

// ByFilter retrieves phone numbers based on filter criteria
func (r *PhoneNumberRepositoryImpl) ByFilter(ctx context.Context, filter models.PhoneNumberFilter, orderBy string, limit, offset int) ([]*models.PhoneNumber, error) {
	db := r.getDB(ctx)

	var phones []*models.PhoneNumber
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

	err := query.Find(&phones).Error
	if err != nil {
		return nil, err
	}

	return phones, nil
}

// Count returns the number of phone numbers matching the filter
func (r *PhoneNumberRepositoryImpl) Count(ctx context.Context, filter models.PhoneNumberFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	var phone models.PhoneNumber
	query := r.applyFilter(db.Model(&phone), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any phone number matching the filter exists
func (r *PhoneNumberRepositoryImpl) Exists(ctx context.Context, filter models.PhoneNumberFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *PhoneNumberRepositoryImpl) applyFilter(db *gorm.DB, filter models.PhoneNumberFilter) *gorm.DB {
	if filter.PhoneNumberID != nil {
		db = db.Where("phone_number_id = ?", *filter.PhoneNumberID)
	}
	if filter.PhoneNumberTypeID != nil {
		db = db.Where("phone_number_type_id = ?", *filter.PhoneNumberTypeID)
	}
	if filter.OrganizationID != nil {
		db = db.Where("organization_id = ?", *filter.OrganizationID)
	}
	if filter.OrgBranchID != nil {
		db = db.Where("org_branch_id = ?", *filter.OrgBranchID)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}

	return db
}
