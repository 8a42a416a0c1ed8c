package repository

import (
	"context"
	"fmt"

	"github.com/orgdesk/orgdesk/models"
	"github.com/orgdesk/orgdesk/utils"
	"gorm.io/gorm"
)

// LookupRepositoryImpl is the shared implementation behind the seven
// lookup reference tables. The per-entity constructors below supply the
// listing whitelist, the primary key column and the filter translation.
type LookupRepositoryImpl[T any, F any] struct {
	*BaseRepository[T, F]
	spec        ListSpec
	pkColumn    string
	table       string
	preloads    []string
	applyFilter func(*gorm.DB, F) *gorm.DB
}

// List retrieves the requested page of active rows plus the total count
// under the same predicates.
func (r *LookupRepositoryImpl[T, F]) List(ctx context.Context, q ListQuery) ([]*T, int64, error) {
	var rows []*T
	var total int64

	err := r.withTx(ctx, func(tx *gorm.DB) error {
		predicated := func() *gorm.DB {
			var entity T
			scoped := tx.Model(&entity).Where(fmt.Sprintf("%s.is_active = ?", r.table), true)
			return r.spec.ApplyPredicates(scoped, q)
		}

		if err := predicated().Count(&total).Error; err != nil {
			return err
		}

		query := r.spec.ApplyWindow(r.spec.ApplyOrder(predicated(), q), q)
		if len(r.spec.Joins) > 0 {
			query = query.Select(r.table + ".*")
		}
		for _, preload := range r.preloads {
			query = query.Preload(preload)
		}

		return query.Find(&rows).Error
	})
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// Update updates a lookup row. Callers stamp the audit columns.
func (r *LookupRepositoryImpl[T, F]) Update(ctx context.Context, entity *T) error {
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

	err = db.Save(entity).Error
	if err != nil {
		return err
	}

	return nil
}

// SoftDelete marks a lookup row inactive. The update is unconditional so
// deleting an already-inactive row still succeeds; false means the row
// does not exist.
func (r *LookupRepositoryImpl[T, F]) SoftDelete(ctx context.Context, id uint, deletedBy uint) (bool, error) {
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

	var entity T
	res := db.Model(&entity).
		Where(fmt.Sprintf("%s = ?", r.pkColumn), id).
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

// ByFilter retrieves lookup rows based on filter criteria
func (r *LookupRepositoryImpl[T, F]) ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error) {
	db := r.getDB(ctx)

	var rows []*T
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

	err := query.Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// Count returns the number of lookup rows matching the filter
func (r *LookupRepositoryImpl[T, F]) Count(ctx context.Context, filter F) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	var entity T
	query := r.applyFilter(db.Model(&entity), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any lookup row matching the filter exists
func (r *LookupRepositoryImpl[T, F]) Exists(ctx context.Context, filter F) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// NewOrganizationTypeRepository creates the organization type lookup repository
func NewOrganizationTypeRepository(db *gorm.DB) LookupRepository[models.OrganizationType, models.OrganizationTypeFilter] {
	return &LookupRepositoryImpl[models.OrganizationType, models.OrganizationTypeFilter]{
		BaseRepository: NewBaseRepository[models.OrganizationType, models.OrganizationTypeFilter](db),
		spec: ListSpec{
			SearchColumns: []string{"organization_types.org_type"},
			SortColumns:   map[string]string{"orgType": "organization_types.org_type"},
			DefaultOrder:  "organization_types.org_type_id DESC",
		},
		pkColumn: "org_type_id",
		table:    "organization_types",
		applyFilter: func(db *gorm.DB, filter models.OrganizationTypeFilter) *gorm.DB {
			if filter.OrgTypeID != nil {
				db = db.Where("org_type_id = ?", *filter.OrgTypeID)
			}
			if filter.OrgType != nil {
				db = db.Where("org_type ILIKE ?", "%"+*filter.OrgType+"%")
			}
			if filter.IsActive != nil {
				db = db.Where("is_active = ?", *filter.IsActive)
			}
			return db
		},
	}
}

// NewIndustryTypeRepository creates the industry type lookup repository
func NewIndustryTypeRepository(db *gorm.DB) LookupRepository[models.IndustryType, models.IndustryTypeFilter] {
	return &LookupRepositoryImpl[models.IndustryType, models.IndustryTypeFilter]{
		BaseRepository: NewBaseRepository[models.IndustryType, models.IndustryTypeFilter](db),
		spec: ListSpec{
			SearchColumns: []string{"industry_types.industry_type"},
			SortColumns:   map[string]string{"industryType": "industry_types.industry_type"},
			DefaultOrder:  "industry_types.industry_type_id DESC",
		},
		pkColumn: "industry_type_id",
		table:    "industry_types",
		preloads: []string{"Parent"},
		applyFilter: func(db *gorm.DB, filter models.IndustryTypeFilter) *gorm.DB {
			if filter.IndustryTypeID != nil {
				db = db.Where("industry_type_id = ?", *filter.IndustryTypeID)
			}
			if filter.IndustryType != nil {
				db = db.Where("industry_type ILIKE ?", "%"+*filter.IndustryType+"%")
			}
			if filter.ParentIndustryTypeID != nil {
				db = db.Where("parent_industry_type_id = ?", *filter.ParentIndustryTypeID)
			}
			if filter.IsActive != nil {
				db = db.Where("is_active = ?", *filter.IsActive)
			}
			return db
		},
	}
}

// NewCountryRepository creates the country lookup repository
func NewCountryRepository(db *gorm.DB) LookupRepository[models.Country, models.CountryFilter] {
	return &LookupRepositoryImpl[models.Country, models.CountryFilter]{
		BaseRepository: NewBaseRepository[models.Country, models.CountryFilter](db),
		spec: ListSpec{
			SearchColumns: []string{"countries.country"},
			SortColumns:   map[string]string{"country": "countries.country"},
			DefaultOrder:  "countries.country_id DESC",
		},
		pkColumn: "country_id",
		table:    "countries",
		applyFilter: func(db *gorm.DB, filter models.CountryFilter) *gorm.DB {
			if filter.CountryID != nil {
				db = db.Where("country_id = ?", *filter.CountryID)
			}
			if filter.Country != nil {
				db = db.Where("country ILIKE ?", "%"+*filter.Country+"%")
			}
			if filter.IsActive != nil {
				db = db.Where("is_active = ?", *filter.IsActive)
			}
			return db
		},
	}
}

// NewCountryStateRepository creates the state lookup repository
func NewCountryStateRepository(db *gorm.DB) LookupRepository[models.CountryState, models.CountryStateFilter] {
	return &LookupRepositoryImpl[models.CountryState, models.CountryStateFilter]{
		BaseRepository: NewBaseRepository[models.CountryState, models.CountryStateFilter](db),
		spec: ListSpec{
			SearchColumns: []string{"country_states.country_state", "countries.country"},
			FilterColumns: map[string]string{"country": "countries.country"},
			SortColumns:   map[string]string{"countryState": "country_states.country_state"},
			DefaultOrder:  "country_states.country_state_id DESC",
			Joins: []string{
				"LEFT JOIN countries ON countries.country_id = country_states.country_id",
			},
		},
		pkColumn: "country_state_id",
		table:    "country_states",
		preloads: []string{"Country"},
		applyFilter: func(db *gorm.DB, filter models.CountryStateFilter) *gorm.DB {
			if filter.CountryStateID != nil {
				db = db.Where("country_state_id = ?", *filter.CountryStateID)
			}
			if filter.CountryID != nil {
				db = db.Where("country_id = ?", *filter.CountryID)
			}
			if filter.CountryState != nil {
				db = db.Where("country_state ILIKE ?", "%"+*filter.CountryState+"%")
			}
			if filter.IsActive != nil {
				db = db.Where("is_active = ?", *filter.IsActive)
			}
			return db
		},
	}
}

// NewCityRepository creates the city lookup repository
func NewCityRepository(db *gorm.DB) LookupRepository[models.City, models.CityFilter] {
	return &LookupRepositoryImpl[models.City, models.CityFilter]{
		BaseRepository: NewBaseRepository[models.City, models.CityFilter](db),
		spec: ListSpec{
			SearchColumns: []string{"cities.city", "country_states.country_state"},
			FilterColumns: map[string]string{"countryState": "country_states.country_state"},
			SortColumns:   map[string]string{"city": "cities.city"},
			DefaultOrder:  "cities.city_id DESC",
			Joins: []string{
				"LEFT JOIN country_states ON country_states.country_state_id = cities.country_state_id",
			},
		},
		pkColumn: "city_id",
		table:    "cities",
		preloads: []string{"CountryState"},
		applyFilter: func(db *gorm.DB, filter models.CityFilter) *gorm.DB {
			if filter.CityID != nil {
				db = db.Where("city_id = ?", *filter.CityID)
			}
			if filter.CountryStateID != nil {
				db = db.Where("country_state_id = ?", *filter.CountryStateID)
			}
			if filter.City != nil {
				db = db.Where("city ILIKE ?", "%"+*filter.City+"%")
			}
			if filter.IsActive != nil {
				db = db.Where("is_active = ?", *filter.IsActive)
			}
			return db
		},
	}
}

// NewPhoneNumberTypeRepository creates the phone number type lookup repository
func NewPhoneNumberTypeRepository(db *gorm.DB) LookupRepository[models.PhoneNumberType, models.PhoneNumberTypeFilter] {
	return &LookupRepositoryImpl[models.PhoneNumberType, models.PhoneNumberTypeFilter]{
		BaseRepository: NewBaseRepository[models.PhoneNumberType, models.PhoneNumberTypeFilter](db),
		spec: ListSpec{
			SearchColumns: []string{"phone_number_types.phone_number_type"},
			SortColumns:   map[string]string{"phoneNumberType": "phone_number_types.phone_number_type"},
			DefaultOrder:  "phone_number_types.phone_number_type_id DESC",
		},
		pkColumn: "phone_number_type_id",
		table:    "phone_number_types",
		applyFilter: func(db *gorm.DB, filter models.PhoneNumberTypeFilter) *gorm.DB {
			if filter.PhoneNumberTypeID != nil {
				db = db.Where("phone_number_type_id = ?", *filter.PhoneNumberTypeID)
			}
			if filter.PhoneNumberType != nil {
				db = db.Where("phone_number_type ILIKE ?", "%"+*filter.PhoneNumberType+"%")
			}
			if filter.IsActive != nil {
				db = db.Where("is_active = ?", *filter.IsActive)
			}
			return db
		},
	}
}

// NewAddressTypeRepository creates the address type lookup repository
func NewAddressTypeRepository(db *gorm.DB) LookupRepository[models.AddressType, models.AddressTypeFilter] {
	return &LookupRepositoryImpl[models.AddressType, models.AddressTypeFilter]{
		BaseRepository: NewBaseRepository[models.AddressType, models.AddressTypeFilter](db),
		spec: ListSpec{
			SearchColumns: []string{"address_types.address_type"},
			SortColumns:   map[string]string{"addressType": "address_types.address_type"},
			DefaultOrder:  "address_types.address_type_id DESC",
		},
		pkColumn: "address_type_id",
		table:    "address_types",
		applyFilter: func(db *gorm.DB, filter models.AddressTypeFilter) *gorm.DB {
			if filter.AddressTypeID != nil {
				db = db.Where("address_type_id = ?", *filter.AddressTypeID)
			}
			if filter.AddressType != nil {
				db = db.Where("address_type ILIKE ?", "%"+*filter.AddressType+"%")
			}
			if filter.IsActive != nil {
				db = db.Where("is_active = ?", *filter.IsActive)
			}
			return db
		},
	}
}
