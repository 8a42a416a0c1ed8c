package repository

import (
	"context"
	"errors"

	"github.com/orgdesk/orgdesk/models"
	"github.com/orgdesk/orgdesk/utils"
	"gorm.io/gorm"
)

// branchListSpec whitelists listing columns for branches. Search reaches
// one relation deep into the owning organization and the industry type.
var branchListSpec = ListSpec{
	SearchColumns: []string{
		"org_branches.org_branch_name",
		"org_branches.org_branch_note",
		"industry_types.industry_type",
		"app_organizations.organization_name",
	},
	FilterColumns: map[string]string{
		"orgBranchName":    "org_branches.org_branch_name",
		"industryType":     "industry_types.industry_type",
		"organizationName": "app_organizations.organization_name",
	},
	SortColumns: map[string]string{
		"orgBranchName":    "org_branches.org_branch_name",
		"industryTypes":    "industry_types.industry_type",
		"organizationName": "app_organizations.organization_name",
	},
	DefaultOrder: "org_branches.org_branch_id DESC",
	Joins: []string{
		"LEFT JOIN app_organizations ON app_organizations.org_id = org_branches.org_id",
		"LEFT JOIN industry_types ON industry_types.industry_type_id = org_branches.industry_type_id",
	},
}

// BranchRepositoryImpl implements the BranchRepository interface
type BranchRepositoryImpl struct {
	*BaseRepository[models.Branch, models.BranchFilter]
}

// NewBranchRepository creates a new branch repository
func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &BranchRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Branch, models.BranchFilter](db),
	}
}

// ByID retrieves a branch by ID with its organization, address and phone
func (r *BranchRepositoryImpl) ByID(ctx context.Context, id uint) (*models.Branch, error) {
	db := r.getDB(ctx)

	var branch models.Branch
	err := db.Preload("Organization").
		Preload("IndustryType").
		Preload("Address").
		Preload("PhoneNumber").
		Last(&branch, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &branch, nil
}

// List retrieves the requested page of active branches plus the total
// count under the same predicates.
func (r *BranchRepositoryImpl) List(ctx context.Context, q ListQuery) ([]*models.Branch, int64, error) {
	var branches []*models.Branch
	var total int64

	err := r.withTx(ctx, func(tx *gorm.DB) error {
		predicated := func() *gorm.DB {
			scoped := tx.Model(&models.Branch{}).Where("org_branches.is_active = ?", true)
			return branchListSpec.ApplyPredicates(scoped, q)
		}

		if err := predicated().Count(&total).Error; err != nil {
			return err
		}

		query := branchListSpec.ApplyWindow(branchListSpec.ApplyOrder(predicated(), q), q)
		query = query.Select("org_branches.*").
			Preload("Organization").
			Preload("IndustryType").
			Preload("Address").
			Preload("PhoneNumber")

		return query.Find(&branches).Error
	})
	if err != nil {
		return nil, 0, err
	}

	return branches, total, nil
}

// Update updates a branch
func (r *BranchRepositoryImpl) Update(ctx context.Context, branch *models.Branch) error {
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

	branch.UpdatedOn = utils.UTCNow()

	err = db.Save(branch).Error
	if err != nil {
		return err
	}

	return nil
}

// SoftDelete marks a branch inactive. The update is unconditional so
// deleting an already-inactive row still succeeds; false means the row
// does not exist.
func (r *BranchRepositoryImpl) SoftDelete(ctx context.Context, id uint, deletedBy uint) (bool, error) {
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

	res := db.Model(&models.Branch{}).
		Where("org_branch_id = ?", id).
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

// SoftDeleteMany marks the given branches inactive and reports how many
// rows actually changed.
func (r *BranchRepositoryImpl) SoftDeleteMany(ctx context.Context, ids []uint, deletedBy uint) (int64, error) {
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

	res := db.Model(&models.Branch{}).
		Where("org_branch_id IN ? AND is_active = ?", ids, true).
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
// branches. The column name comes from a compile-time whitelist.
func (r *BranchRepositoryImpl) DistinctColumn(ctx context.Context, column string) ([]string, error) {
	db := r.getDB(ctx)

	var values []string
	err := db.Model(&models.Branch{}).
		Where("is_active = ?", true).
		Distinct(column).
		Order(column).
		Pluck(column, &values).Error
	if err != nil {
		return nil, err
	}

	return values, nil
}

// ByFilter retrieves branches based on filter criteria
func (r *BranchRepositoryImpl) ByFilter(ctx context.Context, filter models.BranchFilter, orderBy string, limit, offset int) ([]*models.Branch, error) {
	db := r.getDB(ctx)

	var branches []*models.Branch
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

	query = query.Preload("Organization").
		Preload("IndustryType")

	err := query.Find(&branches).Error
	if err != nil {
		return nil, err
	}

	return branches, nil
}

// Count returns the number of branches matching the filter
func (r *BranchRepositoryImpl) Count(ctx context.Context, filter models.BranchFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	var branch models.Branch
	query := r.applyFilter(db.Model(&branch), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any branch matching the filter exists
func (r *BranchRepositoryImpl) Exists(ctx context.Context, filter models.BranchFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *BranchRepositoryImpl) applyFilter(db *gorm.DB, filter models.BranchFilter) *gorm.DB {
	if filter.OrgBranchID != nil {
		db = db.Where("org_branch_id = ?", *filter.OrgBranchID)
	}
	if filter.OrgID != nil {
		db = db.Where("org_id = ?", *filter.OrgID)
	}
	if filter.OrgBranchName != nil {
		db = db.Where("org_branch_name ILIKE ?", "%"+*filter.OrgBranchName+"%")
	}
	if filter.IndustryTypeID != nil {
		db = db.Where("industry_type_id = ?", *filter.IndustryTypeID)
	}
	if filter.IsOrgBranch != nil {
		db = db.Where("is_org_branch = ?", *filter.IsOrgBranch)
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
