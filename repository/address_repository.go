package repository

import (
	"context"

	"github.com/orgdesk/orgdesk/models"
	"github.com/orgdesk/orgdesk/utils"
	"gorm.io/gorm"
)

// AddressRepositoryImpl implements the AddressRepository interface
type AddressRepositoryImpl struct {
	*BaseRepository[models.Address, models.AddressFilter]
}

// NewAddressRepository creates a new address repository
func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &AddressRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Address, models.AddressFilter](db),
	}
}

// Update updates an address
func (r *AddressRepositoryImpl) Update(ctx context.Context, address *models.Address) error {
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

	address.UpdatedOn = utils.UTCNow()

	err = db.Save(address).Error
	if err != nil {
		return err
	}

	return nil
}

// ByFilter retrieves addresses based on filter criteria
func (r *AddressRepositoryImpl) ByFilter(ctx context.Context, filter models.AddressFilter, orderBy string, limit, offset int) ([]*models.Address, error) {
	db := r.getDB(ctx)

	var addresses []*models.Address
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

	err := query.Find(&addresses).Error
	if err != nil {
		return nil, err
	}

	return addresses, nil
}

// Count returns the number of addresses matching the filter
func (r *AddressRepositoryImpl) Count(ctx context.Context, filter models.AddressFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	var address models.Address
	query := r.applyFilter(db.Model(&address), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any address matching the filter exists
func (r *AddressRepositoryImpl) Exists(ctx context.Context, filter models.AddressFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *AddressRepositoryImpl) applyFilter(db *gorm.DB, filter models.AddressFilter) *gorm.DB {
	if filter.AddressID != nil {
		db = db.Where("address_id = ?", *filter.AddressID)
	}
	if filter.OrganizationID != nil {
		db = db.Where("organization_id = ?", *filter.OrganizationID)
	}
	if filter.OrgBranchID != nil {
		db = db.Where("org_branch_id = ?", *filter.OrgBranchID)
	}
	if filter.AddressTypeID != nil {
		db = db.Where("address_type_id = ?", *filter.AddressTypeID)
	}
	if filter.CountryID != nil {
		db = db.Where("country_id = ?", *filter.CountryID)
	}
	if filter.CountryStateID != nil {
		db = db.Where("country_state_id = ?", *filter.CountryStateID)
	}
	if filter.CityID != nil {
		db = db.Where("city_id = ?", *filter.CityID)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}

	return db
}
