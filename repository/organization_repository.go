package repository

import (
	"context"
	"errors"

	"github.com/orgdesk/orgdesk/models"
	"github.com/orgdesk/orgdesk/utils"
	"gorm.io/gorm"
)

// organizationListSpec whitelists the columns a listing request may
// search, filter and sort on. Lookup names reach one relation deep.
var organizationListSpec = ListSpec{
	SearchColumns: []string{
		"app_organizations.organization_name",
		"app_organizations.org_primary_email_id",
		"app_organizations.org_poc_first_name",
		"app_organizations.org_poc_last_name",
		"organization_types.org_type",
		"industry_types.industry_type",
	},
	FilterColumns: map[string]string{
		"organizationName":  "app_organizations.organization_name",
		"orgPrimaryEmailId": "app_organizations.org_primary_email_id",
		"firstName":         "app_organizations.org_poc_first_name",
		"lastName":          "app_organizations.org_poc_last_name",
		"organizationType":  "organization_types.org_type",
		"industryType":      "industry_types.industry_type",
	},
	SortColumns: map[string]string{
		"organizationName":  "app_organizations.organization_name",
		"orgPrimaryEmailId": "app_organizations.org_primary_email_id",
		"organizationTypes": "organization_types.org_type",
		"industryTypes":     "industry_types.industry_type",
	},
	DefaultOrder: "app_organizations.org_id DESC",
	Joins: []string{
		"LEFT JOIN organization_types ON organization_types.org_type_id = app_organizations.org_type_id",
		"LEFT JOIN industry_types ON industry_types.industry_type_id = app_organizations.industry_type_id",
	},
}

// OrganizationRepositoryImpl implements the OrganizationRepository interface
type OrganizationRepositoryImpl struct {
	*BaseRepository[models.Organization, models.OrganizationFilter]
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &OrganizationRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Organization, models.OrganizationFilter](db),
	}
}

// ByID retrieves an organization by ID with its lookups, address, phone and branches
func (r *OrganizationRepositoryImpl) ByID(ctx context.Context, id uint) (*models.Organization, error) {
	db := r.getDB(ctx)

	var org models.Organization
	err := db.Preload("OrganizationType").
		Preload("IndustryType").
		Preload("IndustrySubType").
		Preload("Address").
		Preload("PhoneNumber").
		Preload("Branches", "is_active = ?", true).
		Last(&org, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &org, nil
}

// List retrieves the requested page of active organizations plus the
// total count under the same predicates.
func (r *OrganizationRepositoryImpl) List(ctx context.Context, q ListQuery) ([]*models.Organization, int64, error) {
	var orgs []*models.Organization
	var total int64

	err := r.withTx(ctx, func(tx *gorm.DB) error {
		predicated := func() *gorm.DB {
			scoped := tx.Model(&models.Organization{}).Where("app_organizations.is_active = ?", true)
			return organizationListSpec.ApplyPredicates(scoped, q)
		}

		if err := predicated().Count(&total).Error; err != nil {
			return err
		}

		query := organizationListSpec.ApplyWindow(organizationListSpec.ApplyOrder(predicated(), q), q)
		query = query.Select("app_organizations.*").
			Preload("OrganizationType").
			Preload("IndustryType").
			Preload("IndustrySubType").
			Preload("Address").
			Preload("PhoneNumber")

		return query.Find(&orgs).Error
	})
	if err != nil {
		return nil, 0, err
	}

	return orgs, total, nil
}

// Update updates an organization
func (r *OrganizationRepositoryImpl) Update(ctx context.Context, org *models.Organization) error {
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

	org.UpdatedOn = utils.UTCNow()

	err = db.Save(org).Error
	if err != nil {
		return err
	}

	return nil
}

// SoftDelete marks an organization inactive. The update is unconditional
// so deleting an already-inactive row still succeeds; false means the row
// does not exist.
func (r *OrganizationRepositoryImpl) SoftDelete(ctx context.Context, id uint, deletedBy uint) (bool, error) {
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

	res := db.Model(&models.Organization{}).
		Where("org_id = ?", id).
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

// SoftDeleteMany marks the given organizations inactive and reports how
// many rows actually changed.
func (r *OrganizationRepositoryImpl) SoftDeleteMany(ctx context.Context, ids []uint, deletedBy uint) (int64, error) {
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

	res := db.Model(&models.Organization{}).
		Where("org_id IN ? AND is_active = ?", ids, true).
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
// organizations. The column name comes from a compile-time whitelist.
func (r *OrganizationRepositoryImpl) DistinctColumn(ctx context.Context, column string) ([]string, error) {
	db := r.getDB(ctx)

	var values []string
	err := db.Model(&models.Organization{}).
		Where("is_active = ?", true).
		Distinct(column).
		Order(column).
		Pluck(column, &values).Error
	if err != nil {
		return nil, err
	}

	return values, nil
}

// ByFilter retrieves organizations based on filter criteria
func (r *OrganizationRepositoryImpl) ByFilter(ctx context.Context, filter models.OrganizationFilter, orderBy string, limit, offset int) ([]*models.Organization, error) {
	db := r.getDB(ctx)

	var orgs []*models.Organization
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

	query = query.Preload("OrganizationType").
		Preload("IndustryType").
		Preload("Address").
		Preload("PhoneNumber")

	err := query.Find(&orgs).Error
	if err != nil {
		return nil, err
	}

	return orgs, nil
}

// Count returns the number of organizations matching the filter
func (r *OrganizationRepositoryImpl) Count(ctx context.Context, filter models.OrganizationFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	var org models.Organization
	query := r.applyFilter(db.Model(&org), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any organization matching the filter exists
func (r *OrganizationRepositoryImpl) Exists(ctx context.Context, filter models.OrganizationFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *OrganizationRepositoryImpl) applyFilter(db *gorm.DB, filter models.OrganizationFilter) *gorm.DB {
	if filter.OrgID != nil {
		db = db.Where("org_id = ?", *filter.OrgID)
	}
	if filter.OrganizationName != nil {
		db = db.Where("organization_name ILIKE ?", "%"+*filter.OrganizationName+"%")
	}
	if filter.OrgPrimaryEmailID != nil {
		db = db.Where("org_primary_email_id = ?", *filter.OrgPrimaryEmailID)
	}
	if filter.OrgTypeID != nil {
		db = db.Where("org_type_id = ?", *filter.OrgTypeID)
	}
	if filter.IndustryTypeID != nil {
		db = db.Where("industry_type_id = ?", *filter.IndustryTypeID)
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
