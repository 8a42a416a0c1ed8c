// Package businessflow contains the business logic for the application.
package businessflow

import (
	"context"
	"fmt"

	"github.com/orgdesk/orgdesk/app/dto"
	"github.com/orgdesk/orgdesk/models"
	"github.com/orgdesk/orgdesk/repository"
	"github.com/orgdesk/orgdesk/utils"
	"gorm.io/gorm"
)

// LookupFlow handles the seven lookup reference tables: list with search and
// pagination, get-one, create and update. Lookups share soft-delete and audit
// semantics with the main resources.
type LookupFlow interface {
	ListOrganizationTypes(ctx context.Context, params *dto.ListParams) (*dto.ListData, error)
	GetOrganizationType(ctx context.Context, id uint) (*models.OrganizationType, error)
	CreateOrganizationType(ctx context.Context, request *dto.CreateOrganizationTypeRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error)
	UpdateOrganizationType(ctx context.Context, request *dto.UpdateOrganizationTypeRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error)

	ListIndustryTypes(ctx context.Context, params *dto.ListParams) (*dto.ListData, error)
	GetIndustryType(ctx context.Context, id uint) (*models.IndustryType, error)
	CreateIndustryType(ctx context.Context, request *dto.CreateIndustryTypeRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error)
	UpdateIndustryType(ctx context.Context, request *dto.UpdateIndustryTypeRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error)

	ListCountries(ctx context.Context, params *dto.ListParams) (*dto.ListData, error)
	GetCountry(ctx context.Context, id uint) (*models.Country, error)
	CreateCountry(ctx context.Context, request *dto.CreateCountryRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error)
	UpdateCountry(ctx context.Context, request *dto.UpdateCountryRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error)

	ListCountryStates(ctx context.Context, params *dto.ListParams) (*dto.ListData, error)
	GetCountryState(ctx context.Context, id uint) (*models.CountryState, error)
	CreateCountryState(ctx context.Context, request *dto.CreateCountryStateRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error)
	UpdateCountryState(ctx context.Context, request *dto.UpdateCountryStateRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error)

	ListCities(ctx context.Context, params *dto.ListParams) (*dto.ListData, error)
	GetCity(ctx context.Context, id uint) (*models.City, error)
	CreateCity(ctx context.Context, request *dto.CreateCityRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error)
	UpdateCity(ctx context.Context, request *dto.UpdateCityRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error)

	ListPhoneNumberTypes(ctx context.Context, params *dto.ListParams) (*dto.ListData, error)
	GetPhoneNumberType(ctx context.Context, id uint) (*models.PhoneNumberType, error)
	CreatePhoneNumberType(ctx context.Context, request *dto.CreatePhoneNumberTypeRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error)
	UpdatePhoneNumberType(ctx context.Context, request *dto.UpdatePhoneNumberTypeRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error)

	ListAddressTypes(ctx context.Context, params *dto.ListParams) (*dto.ListData, error)
	GetAddressType(ctx context.Context, id uint) (*models.AddressType, error)
	CreateAddressType(ctx context.Context, request *dto.CreateAddressTypeRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error)
	UpdateAddressType(ctx context.Context, request *dto.UpdateAddressTypeRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error)
}

// LookupFlowImpl implements the lookup business flow
type LookupFlowImpl struct {
	orgTypeRepo   repository.LookupRepository[models.OrganizationType, models.OrganizationTypeFilter]
	industryRepo  repository.LookupRepository[models.IndustryType, models.IndustryTypeFilter]
	countryRepo   repository.LookupRepository[models.Country, models.CountryFilter]
	stateRepo     repository.LookupRepository[models.CountryState, models.CountryStateFilter]
	cityRepo      repository.LookupRepository[models.City, models.CityFilter]
	phoneTypeRepo repository.LookupRepository[models.PhoneNumberType, models.PhoneNumberTypeFilter]
	addrTypeRepo  repository.LookupRepository[models.AddressType, models.AddressTypeFilter]
	auditRepo     repository.AuditLogRepository
	db            *gorm.DB
}

// NewLookupFlow creates a new lookup flow instance
func NewLookupFlow(
	orgTypeRepo repository.LookupRepository[models.OrganizationType, models.OrganizationTypeFilter],
	industryRepo repository.LookupRepository[models.IndustryType, models.IndustryTypeFilter],
	countryRepo repository.LookupRepository[models.Country, models.CountryFilter],
	stateRepo repository.LookupRepository[models.CountryState, models.CountryStateFilter],
	cityRepo repository.LookupRepository[models.City, models.CityFilter],
	phoneTypeRepo repository.LookupRepository[models.PhoneNumberType, models.PhoneNumberTypeFilter],
	addrTypeRepo repository.LookupRepository[models.AddressType, models.AddressTypeFilter],
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
) LookupFlow {
	return &LookupFlowImpl{
		orgTypeRepo:   orgTypeRepo,
		industryRepo:  industryRepo,
		countryRepo:   countryRepo,
		stateRepo:     stateRepo,
		cityRepo:      cityRepo,
		phoneTypeRepo: phoneTypeRepo,
		addrTypeRepo:  addrTypeRepo,
		auditRepo:     auditRepo,
		db:            db,
	}
}

// lookupList runs the shared list-plus-count query for any lookup repository
func lookupList[T any, F any](ctx context.Context, repo repository.LookupRepository[T, F], params *dto.ListParams, code string) (*dto.ListData, error) {
	rows, count, err := repo.List(ctx, BuildListQuery(params))
	if err != nil {
		return nil, NewBusinessError(code, "Lookup list failed", err)
	}
	return &dto.ListData{Count: count, Rows: rows}, nil
}

// --- Organization types ---

func (lf *LookupFlowImpl) ListOrganizationTypes(ctx context.Context, params *dto.ListParams) (*dto.ListData, error) {
	return lookupList(ctx, lf.orgTypeRepo, params, "ORGANIZATION_TYPE_LIST_FAILED")
}

func (lf *LookupFlowImpl) GetOrganizationType(ctx context.Context, id uint) (*models.OrganizationType, error) {
	row, err := lf.orgTypeRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("ORGANIZATION_TYPE_GET_FAILED", "Organization type get failed", err)
	}
	if row == nil || !utils.IsTrue(row.IsActive) {
		return nil, NewBusinessError("ORGANIZATION_TYPE_NOT_FOUND", "Organization type not found", ErrOrgTypeNotFound)
	}
	return row, nil
}

func (lf *LookupFlowImpl) CreateOrganizationType(ctx context.Context, request *dto.CreateOrganizationTypeRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error) {
	actor := actorID(session)
	row := &models.OrganizationType{
		OrgType:   request.OrgType,
		IsActive:  utils.ToPtr(true),
		CreatedBy: actor,
		UpdatedBy: actor,
	}
	if err := lf.orgTypeRepo.Save(ctx, row); err != nil {
		return nil, NewBusinessError("ORGANIZATION_TYPE_CREATE_FAILED", "Organization type create failed", err)
	}

	lf.logLookupChange(ctx, session, models.AuditActionEntityCreated, "organization_type", row.OrgTypeID, metadata)
	return &dto.MutationData{Changes: dto.Changes{Status: dto.ChangeInserted, Entity: row}}, nil
}

func (lf *LookupFlowImpl) UpdateOrganizationType(ctx context.Context, request *dto.UpdateOrganizationTypeRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error) {
	row, err := lf.GetOrganizationType(ctx, request.OrgTypeID)
	if err != nil {
		return nil, err
	}

	row.OrgType = request.OrgType
	row.UpdatedBy = actorID(session)
	if err := lf.orgTypeRepo.Update(ctx, row); err != nil {
		return nil, NewBusinessError("ORGANIZATION_TYPE_UPDATE_FAILED", "Organization type update failed", err)
	}

	lf.logLookupChange(ctx, session, models.AuditActionEntityUpdated, "organization_type", row.OrgTypeID, metadata)
	return &dto.MutationData{Changes: dto.Changes{Status: dto.ChangePatched, Entity: row}}, nil
}

// --- Industry types ---

func (lf *LookupFlowImpl) ListIndustryTypes(ctx context.Context, params *dto.ListParams) (*dto.ListData, error) {
	return lookupList(ctx, lf.industryRepo, params, "INDUSTRY_TYPE_LIST_FAILED")
}

func (lf *LookupFlowImpl) GetIndustryType(ctx context.Context, id uint) (*models.IndustryType, error) {
	row, err := lf.industryRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("INDUSTRY_TYPE_GET_FAILED", "Industry type get failed", err)
	}
	if row == nil || !utils.IsTrue(row.IsActive) {
		return nil, NewBusinessError("INDUSTRY_TYPE_NOT_FOUND", "Industry type not found", ErrIndustryTypeNotFound)
	}
	return row, nil
}

func (lf *LookupFlowImpl) CreateIndustryType(ctx context.Context, request *dto.CreateIndustryTypeRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error) {
	var row *models.IndustryType

	err := repository.WithTransaction(ctx, lf.db, func(ctx context.Context) error {
		if err := lf.validateIndustryParent(ctx, 0, request.ParentIndustryTypeID); err != nil {
			return err
		}

		actor := actorID(session)
		row = &models.IndustryType{
			IndustryType:         request.IndustryType,
			ParentIndustryTypeID: request.ParentIndustryTypeID,
			IsActive:             utils.ToPtr(true),
			CreatedBy:            actor,
			UpdatedBy:            actor,
		}
		return lf.industryRepo.Save(ctx, row)
	})
	if err != nil {
		if IsBusinessErr(err) {
			return nil, err
		}
		return nil, NewBusinessError("INDUSTRY_TYPE_CREATE_FAILED", "Industry type create failed", err)
	}

	lf.logLookupChange(ctx, session, models.AuditActionEntityCreated, "industry_type", row.IndustryTypeID, metadata)
	return &dto.MutationData{Changes: dto.Changes{Status: dto.ChangeInserted, Entity: row}}, nil
}

func (lf *LookupFlowImpl) UpdateIndustryType(ctx context.Context, request *dto.UpdateIndustryTypeRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error) {
	var row *models.IndustryType

	err := repository.WithTransaction(ctx, lf.db, func(ctx context.Context) error {
		var err error
		row, err = lf.GetIndustryType(ctx, request.IndustryTypeID)
		if err != nil {
			return err
		}

		if request.ParentIndustryTypeID != nil {
			if err := lf.validateIndustryParent(ctx, row.IndustryTypeID, request.ParentIndustryTypeID); err != nil {
				return err
			}
			row.ParentIndustryTypeID = request.ParentIndustryTypeID
		}
		if request.IndustryType != nil {
			row.IndustryType = *request.IndustryType
		}
		row.UpdatedBy = actorID(session)

		return lf.industryRepo.Update(ctx, row)
	})
	if err != nil {
		if IsBusinessErr(err) {
			return nil, err
		}
		return nil, NewBusinessError("INDUSTRY_TYPE_UPDATE_FAILED", "Industry type update failed", err)
	}

	lf.logLookupChange(ctx, session, models.AuditActionEntityUpdated, "industry_type", row.IndustryTypeID, metadata)
	return &dto.MutationData{Changes: dto.Changes{Status: dto.ChangePatched, Entity: row}}, nil
}

// validateIndustryParent checks the parent chain: the parent must exist and
// walking up from it must never reach selfID. selfID is zero for new rows,
// which can never be part of an existing chain.
func (lf *LookupFlowImpl) validateIndustryParent(ctx context.Context, selfID uint, parentID *uint) error {
	if parentID == nil {
		return nil
	}
	if selfID != 0 && *parentID == selfID {
		return NewBusinessError("INDUSTRY_TYPE_PARENT_CYCLE", "Industry type parent chain forms a cycle", ErrIndustryParentCycle)
	}

	visited := map[uint]struct{}{}
	current := *parentID
	for {
		if _, seen := visited[current]; seen {
			return NewBusinessError("INDUSTRY_TYPE_PARENT_CYCLE", "Industry type parent chain forms a cycle", ErrIndustryParentCycle)
		}
		visited[current] = struct{}{}

		parent, err := lf.industryRepo.ByID(ctx, current)
		if err != nil {
			return err
		}
		if parent == nil || !utils.IsTrue(parent.IsActive) {
			return NewBusinessError("INDUSTRY_TYPE_PARENT_NOT_FOUND", "Parent industry type not found", ErrIndustryParentNotFound)
		}

		if parent.ParentIndustryTypeID == nil {
			return nil
		}
		next := *parent.ParentIndustryTypeID
		if selfID != 0 && next == selfID {
			return NewBusinessError("INDUSTRY_TYPE_PARENT_CYCLE", "Industry type parent chain forms a cycle", ErrIndustryParentCycle)
		}
		current = next
	}
}

// --- Countries ---

func (lf *LookupFlowImpl) ListCountries(ctx context.Context, params *dto.ListParams) (*dto.ListData, error) {
	return lookupList(ctx, lf.countryRepo, params, "COUNTRY_LIST_FAILED")
}

func (lf *LookupFlowImpl) GetCountry(ctx context.Context, id uint) (*models.Country, error) {
	row, err := lf.countryRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("COUNTRY_GET_FAILED", "Country get failed", err)
	}
	if row == nil || !utils.IsTrue(row.IsActive) {
		return nil, NewBusinessError("COUNTRY_NOT_FOUND", "Country not found", ErrCountryNotFound)
	}
	return row, nil
}

func (lf *LookupFlowImpl) CreateCountry(ctx context.Context, request *dto.CreateCountryRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error) {
	actor := actorID(session)
	row := &models.Country{
		Country:    request.Country,
		LanguageID: request.LanguageID,
		IsActive:   utils.ToPtr(true),
		CreatedBy:  actor,
		UpdatedBy:  actor,
	}
	if err := lf.countryRepo.Save(ctx, row); err != nil {
		return nil, NewBusinessError("COUNTRY_CREATE_FAILED", "Country create failed", err)
	}

	lf.logLookupChange(ctx, session, models.AuditActionEntityCreated, "country", row.CountryID, metadata)
	return &dto.MutationData{Changes: dto.Changes{Status: dto.ChangeInserted, Entity: row}}, nil
}

func (lf *LookupFlowImpl) UpdateCountry(ctx context.Context, request *dto.UpdateCountryRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error) {
	row, err := lf.GetCountry(ctx, request.CountryID)
	if err != nil {
		return nil, err
	}

	if request.Country != nil {
		row.Country = *request.Country
	}
	if request.LanguageID != nil {
		row.LanguageID = request.LanguageID
	}
	row.UpdatedBy = actorID(session)
	if err := lf.countryRepo.Update(ctx, row); err != nil {
		return nil, NewBusinessError("COUNTRY_UPDATE_FAILED", "Country update failed", err)
	}

	lf.logLookupChange(ctx, session, models.AuditActionEntityUpdated, "country", row.CountryID, metadata)
	return &dto.MutationData{Changes: dto.Changes{Status: dto.ChangePatched, Entity: row}}, nil
}

// --- Country states ---

func (lf *LookupFlowImpl) ListCountryStates(ctx context.Context, params *dto.ListParams) (*dto.ListData, error) {
	return lookupList(ctx, lf.stateRepo, params, "STATE_LIST_FAILED")
}

func (lf *LookupFlowImpl) GetCountryState(ctx context.Context, id uint) (*models.CountryState, error) {
	row, err := lf.stateRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("STATE_GET_FAILED", "State get failed", err)
	}
	if row == nil || !utils.IsTrue(row.IsActive) {
		return nil, NewBusinessError("STATE_NOT_FOUND", "State not found", ErrCountryStateNotFound)
	}
	return row, nil
}

func (lf *LookupFlowImpl) CreateCountryState(ctx context.Context, request *dto.CreateCountryStateRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error) {
	if _, err := lf.GetCountry(ctx, request.CountryID); err != nil {
		return nil, err
	}

	actor := actorID(session)
	row := &models.CountryState{
		CountryID:    request.CountryID,
		CountryState: request.CountryState,
		LanguageID:   request.LanguageID,
		IsActive:     utils.ToPtr(true),
		CreatedBy:    actor,
		UpdatedBy:    actor,
	}
	if err := lf.stateRepo.Save(ctx, row); err != nil {
		return nil, NewBusinessError("STATE_CREATE_FAILED", "State create failed", err)
	}

	lf.logLookupChange(ctx, session, models.AuditActionEntityCreated, "country_state", row.CountryStateID, metadata)
	return &dto.MutationData{Changes: dto.Changes{Status: dto.ChangeInserted, Entity: row}}, nil
}

func (lf *LookupFlowImpl) UpdateCountryState(ctx context.Context, request *dto.UpdateCountryStateRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error) {
	row, err := lf.GetCountryState(ctx, request.CountryStateID)
	if err != nil {
		return nil, err
	}

	if request.CountryID != nil {
		if _, err := lf.GetCountry(ctx, *request.CountryID); err != nil {
			return nil, err
		}
		row.CountryID = *request.CountryID
	}
	if request.CountryState != nil {
		row.CountryState = *request.CountryState
	}
	if request.LanguageID != nil {
		row.LanguageID = request.LanguageID
	}
	row.UpdatedBy = actorID(session)
	if err := lf.stateRepo.Update(ctx, row); err != nil {
		return nil, NewBusinessError("STATE_UPDATE_FAILED", "State update failed", err)
	}

	lf.logLookupChange(ctx, session, models.AuditActionEntityUpdated, "country_state", row.CountryStateID, metadata)
	return &dto.MutationData{Changes: dto.Changes{Status: dto.ChangePatched, Entity: row}}, nil
}

// --- Cities ---

func (lf *LookupFlowImpl) ListCities(ctx context.Context, params *dto.ListParams) (*dto.ListData, error) {
	return lookupList(ctx, lf.cityRepo, params, "CITY_LIST_FAILED")
}

func (lf *LookupFlowImpl) GetCity(ctx context.Context, id uint) (*models.City, error) {
	row, err := lf.cityRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("CITY_GET_FAILED", "City get failed", err)
	}
	if row == nil || !utils.IsTrue(row.IsActive) {
		return nil, NewBusinessError("CITY_NOT_FOUND", "City not found", ErrCityNotFound)
	}
	return row, nil
}

func (lf *LookupFlowImpl) CreateCity(ctx context.Context, request *dto.CreateCityRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error) {
	if _, err := lf.GetCountryState(ctx, request.CountryStateID); err != nil {
		return nil, err
	}

	actor := actorID(session)
	row := &models.City{
		CountryStateID: request.CountryStateID,
		City:           request.City,
		LanguageID:     request.LanguageID,
		IsActive:       utils.ToPtr(true),
		CreatedBy:      actor,
		UpdatedBy:      actor,
	}
	if err := lf.cityRepo.Save(ctx, row); err != nil {
		return nil, NewBusinessError("CITY_CREATE_FAILED", "City create failed", err)
	}

	lf.logLookupChange(ctx, session, models.AuditActionEntityCreated, "city", row.CityID, metadata)
	return &dto.MutationData{Changes: dto.Changes{Status: dto.ChangeInserted, Entity: row}}, nil
}

func (lf *LookupFlowImpl) UpdateCity(ctx context.Context, request *dto.UpdateCityRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error) {
	row, err := lf.GetCity(ctx, request.CityID)
	if err != nil {
		return nil, err
	}

	if request.CountryStateID != nil {
		if _, err := lf.GetCountryState(ctx, *request.CountryStateID); err != nil {
			return nil, err
		}
		row.CountryStateID = *request.CountryStateID
	}
	if request.City != nil {
		row.City = *request.City
	}
	if request.LanguageID != nil {
		row.LanguageID = request.LanguageID
	}
	row.UpdatedBy = actorID(session)
	if err := lf.cityRepo.Update(ctx, row); err != nil {
		return nil, NewBusinessError("CITY_UPDATE_FAILED", "City update failed", err)
	}

	lf.logLookupChange(ctx, session, models.AuditActionEntityUpdated, "city", row.CityID, metadata)
	return &dto.MutationData{Changes: dto.Changes{Status: dto.ChangePatched, Entity: row}}, nil
}

// --- Phone number types ---

func (lf *LookupFlowImpl) ListPhoneNumberTypes(ctx context.Context, params *dto.ListParams) (*dto.ListData, error) {
	return lookupList(ctx, lf.phoneTypeRepo, params, "PHONE_NUMBER_TYPE_LIST_FAILED")
}

func (lf *LookupFlowImpl) GetPhoneNumberType(ctx context.Context, id uint) (*models.PhoneNumberType, error) {
	row, err := lf.phoneTypeRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("PHONE_NUMBER_TYPE_GET_FAILED", "Phone number type get failed", err)
	}
	if row == nil || !utils.IsTrue(row.IsActive) {
		return nil, NewBusinessError("PHONE_NUMBER_TYPE_NOT_FOUND", "Phone number type not found", ErrLookupNotFound)
	}
	return row, nil
}

func (lf *LookupFlowImpl) CreatePhoneNumberType(ctx context.Context, request *dto.CreatePhoneNumberTypeRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error) {
	actor := actorID(session)
	row := &models.PhoneNumberType{
		PhoneNumberType: request.PhoneNumberType,
		LanguageID:      request.LanguageID,
		IsActive:        utils.ToPtr(true),
		CreatedBy:       actor,
		UpdatedBy:       actor,
	}
	if err := lf.phoneTypeRepo.Save(ctx, row); err != nil {
		return nil, NewBusinessError("PHONE_NUMBER_TYPE_CREATE_FAILED", "Phone number type create failed", err)
	}

	lf.logLookupChange(ctx, session, models.AuditActionEntityCreated, "phone_number_type", row.PhoneNumberTypeID, metadata)
	return &dto.MutationData{Changes: dto.Changes{Status: dto.ChangeInserted, Entity: row}}, nil
}

func (lf *LookupFlowImpl) UpdatePhoneNumberType(ctx context.Context, request *dto.UpdatePhoneNumberTypeRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error) {
	row, err := lf.GetPhoneNumberType(ctx, request.PhoneNumberTypeID)
	if err != nil {
		return nil, err
	}

	if request.PhoneNumberType != nil {
		row.PhoneNumberType = *request.PhoneNumberType
	}
	if request.LanguageID != nil {
		row.LanguageID = request.LanguageID
	}
	row.UpdatedBy = actorID(session)
	if err := lf.phoneTypeRepo.Update(ctx, row); err != nil {
		return nil, NewBusinessError("PHONE_NUMBER_TYPE_UPDATE_FAILED", "Phone number type update failed", err)
	}

	lf.logLookupChange(ctx, session, models.AuditActionEntityUpdated, "phone_number_type", row.PhoneNumberTypeID, metadata)
	return &dto.MutationData{Changes: dto.Changes{Status: dto.ChangePatched, Entity: row}}, nil
}

// --- Address types ---

func (lf *LookupFlowImpl) ListAddressTypes(ctx context.Context, params *dto.ListParams) (*dto.ListData, error) {
	return lookupList(ctx, lf.addrTypeRepo, params, "ADDRESS_TYPE_LIST_FAILED")
}

func (lf *LookupFlowImpl) GetAddressType(ctx context.Context, id uint) (*models.AddressType, error) {
	row, err := lf.addrTypeRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("ADDRESS_TYPE_GET_FAILED", "Address type get failed", err)
	}
	if row == nil || !utils.IsTrue(row.IsActive) {
		return nil, NewBusinessError("ADDRESS_TYPE_NOT_FOUND", "Address type not found", ErrLookupNotFound)
	}
	return row, nil
}

func (lf *LookupFlowImpl) CreateAddressType(ctx context.Context, request *dto.CreateAddressTypeRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error) {
	actor := actorID(session)
	row := &models.AddressType{
		AddressType: request.AddressType,
		IsActive:    utils.ToPtr(true),
		CreatedBy:   actor,
		UpdatedBy:   actor,
	}
	if err := lf.addrTypeRepo.Save(ctx, row); err != nil {
		return nil, NewBusinessError("ADDRESS_TYPE_CREATE_FAILED", "Address type create failed", err)
	}

	lf.logLookupChange(ctx, session, models.AuditActionEntityCreated, "address_type", row.AddressTypeID, metadata)
	return &dto.MutationData{Changes: dto.Changes{Status: dto.ChangeInserted, Entity: row}}, nil
}

func (lf *LookupFlowImpl) UpdateAddressType(ctx context.Context, request *dto.UpdateAddressTypeRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error) {
	row, err := lf.GetAddressType(ctx, request.AddressTypeID)
	if err != nil {
		return nil, err
	}

	if request.AddressType != nil {
		row.AddressType = *request.AddressType
	}
	row.UpdatedBy = actorID(session)
	if err := lf.addrTypeRepo.Update(ctx, row); err != nil {
		return nil, NewBusinessError("ADDRESS_TYPE_UPDATE_FAILED", "Address type update failed", err)
	}

	lf.logLookupChange(ctx, session, models.AuditActionEntityUpdated, "address_type", row.AddressTypeID, metadata)
	return &dto.MutationData{Changes: dto.Changes{Status: dto.ChangePatched, Entity: row}}, nil
}

func (lf *LookupFlowImpl) logLookupChange(ctx context.Context, session *Session, action, entity string, entityID uint, metadata *ClientMetadata) {
	ipAddress := "127.0.0.1"
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	description := fmt.Sprintf("%s %s: %d", entity, action, entityID)
	audit := &models.AuditLog{
		UserID:      actorID(session),
		Action:      action,
		Entity:      &entity,
		EntityID:    &entityID,
		Description: &description,
		Success:     utils.ToPtr(true),
		IPAddress:   &ipAddress,
		UserAgent:   &userAgent,
	}
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		audit.RequestID = &requestID
	}

	_ = lf.auditRepo.Save(ctx, audit)
}
