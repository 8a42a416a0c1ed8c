// Package businessflow contains the business logic for the application.
package businessflow

import (
	"bytes"
	"context"
	"fmt"

	"github.com/orgdesk/orgdesk/app/dto"
	"github.com/orgdesk/orgdesk/models"
	"github.com/orgdesk/orgdesk/repository"
	"github.com/orgdesk/orgdesk/utils"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// OrganizationFlow handles organization CRUD and export operations
type OrganizationFlow interface {
	ListOrganizations(ctx context.Context, params *dto.ListParams) (*dto.ListData, error)
	GetOrganization(ctx context.Context, orgID uint) (*models.Organization, error)
	CreateOrganization(ctx context.Context, request *dto.CreateOrganizationRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error)
	UpdateOrganization(ctx context.Context, request *dto.UpdateOrganizationRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error)
	DeleteOrganization(ctx context.Context, request *dto.DeleteOrganizationRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error)
	BulkDeleteOrganizations(ctx context.Context, request *dto.BulkDeleteRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error)
	// ExportOrganizations renders the filtered organization list as an xlsx
	// workbook. The window is ignored, all matching rows are exported.
	ExportOrganizations(ctx context.Context, params *dto.ListParams) ([]byte, string, error)
}

// OrganizationFlowImpl implements the organization business flow
type OrganizationFlowImpl struct {
	orgRepo      repository.OrganizationRepository
	branchRepo   repository.BranchRepository
	addressRepo  repository.AddressRepository
	phoneRepo    repository.PhoneNumberRepository
	orgTypeRepo  repository.LookupRepository[models.OrganizationType, models.OrganizationTypeFilter]
	industryRepo repository.LookupRepository[models.IndustryType, models.IndustryTypeFilter]
	auditRepo    repository.AuditLogRepository
	db           *gorm.DB
}

// NewOrganizationFlow creates a new organization flow instance
func NewOrganizationFlow(
	orgRepo repository.OrganizationRepository,
	branchRepo repository.BranchRepository,
	addressRepo repository.AddressRepository,
	phoneRepo repository.PhoneNumberRepository,
	orgTypeRepo repository.LookupRepository[models.OrganizationType, models.OrganizationTypeFilter],
	industryRepo repository.LookupRepository[models.IndustryType, models.IndustryTypeFilter],
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
) OrganizationFlow {
	return &OrganizationFlowImpl{
		orgRepo:      orgRepo,
		branchRepo:   branchRepo,
		addressRepo:  addressRepo,
		phoneRepo:    phoneRepo,
		orgTypeRepo:  orgTypeRepo,
		industryRepo: industryRepo,
		auditRepo:    auditRepo,
		db:           db,
	}
}

// ListOrganizations returns one page of organizations plus the total match count
func (of *OrganizationFlowImpl) ListOrganizations(ctx context.Context, params *dto.ListParams) (*dto.ListData, error) {
	rows, count, err := of.orgRepo.List(ctx, BuildListQuery(params))
	if err != nil {
		return nil, NewBusinessError("ORGANIZATION_LIST_FAILED", "Organization list failed", err)
	}
	return &dto.ListData{Count: count, Rows: rows}, nil
}

// GetOrganization returns one organization with its relations preloaded
func (of *OrganizationFlowImpl) GetOrganization(ctx context.Context, orgID uint) (*models.Organization, error) {
	org, err := of.orgRepo.ByID(ctx, orgID)
	if err != nil {
		return nil, NewBusinessError("ORGANIZATION_GET_FAILED", "Organization get failed", err)
	}
	if org == nil || !utils.IsTrue(org.IsActive) {
		return nil, NewBusinessError("ORGANIZATION_NOT_FOUND", "Organization not found", ErrOrganizationNotFound)
	}
	return org, nil
}

// CreateOrganization creates the organization together with its address,
// phone number and head office branch in one transaction
func (of *OrganizationFlowImpl) CreateOrganization(ctx context.Context, request *dto.CreateOrganizationRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error) {
	var org *models.Organization

	err := repository.WithTransaction(ctx, of.db, func(ctx context.Context) error {
		if err := of.validateClassification(ctx, &request.OrgTypeID, &request.IndustryTypeID, request.IndustrySubTypeID); err != nil {
			return err
		}

		actor := actorID(session)
		org = &models.Organization{
			OrganizationName:  request.OrganizationName,
			OrgPOCFirstName:   request.OrgPOCFirstName,
			OrgPOCMiddleName:  request.OrgPOCMiddleName,
			OrgPOCLastName:    request.OrgPOCLastName,
			OrgPrimaryEmailID: request.OrgPrimaryEmailID,
			OrgTypeID:         request.OrgTypeID,
			IndustryTypeID:    request.IndustryTypeID,
			IndustrySubTypeID: request.IndustrySubTypeID,
			IsActive:          utils.ToPtr(true),
			CreatedBy:         actor,
			UpdatedBy:         actor,
		}
		if err := of.orgRepo.Save(ctx, org); err != nil {
			return err
		}

		branch := &models.Branch{
			OrgID:          org.OrgID,
			OrgBranchName:  request.OrganizationName,
			IndustryTypeID: &org.IndustryTypeID,
			IsOrgBranch:    utils.ToPtr(true),
			IsActive:       utils.ToPtr(true),
			CreatedBy:      actor,
			UpdatedBy:      actor,
		}
		if err := of.branchRepo.Save(ctx, branch); err != nil {
			return err
		}

		if request.Address != nil {
			orgAddress := addressFromRequest(request.Address, actor)
			orgAddress.OrganizationID = &org.OrgID
			if err := of.addressRepo.Save(ctx, orgAddress); err != nil {
				return err
			}

			branchAddress := addressFromRequest(request.Address, actor)
			branchAddress.OrgBranchID = &branch.OrgBranchID
			if err := of.addressRepo.Save(ctx, branchAddress); err != nil {
				return err
			}
		}

		if request.PhoneNumber != nil {
			orgPhone := phoneFromRequest(request.PhoneNumber, actor)
			orgPhone.OrganizationID = &org.OrgID
			if err := of.phoneRepo.Save(ctx, orgPhone); err != nil {
				return err
			}

			branchPhone := phoneFromRequest(request.PhoneNumber, actor)
			branchPhone.OrgBranchID = &branch.OrgBranchID
			if err := of.phoneRepo.Save(ctx, branchPhone); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if IsBusinessErr(err) {
			return nil, err
		}
		return nil, NewBusinessError("ORGANIZATION_CREATE_FAILED", "Organization create failed", err)
	}

	of.logEntityChange(ctx, session, models.AuditActionEntityCreated, "organization", org.OrgID, fmt.Sprintf("organization created: %s", org.OrganizationName), metadata)

	return &dto.MutationData{Changes: dto.Changes{Status: dto.ChangeInserted, Entity: org}}, nil
}

// UpdateOrganization patches the organization fields present in the request
func (of *OrganizationFlowImpl) UpdateOrganization(ctx context.Context, request *dto.UpdateOrganizationRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error) {
	var org *models.Organization

	err := repository.WithTransaction(ctx, of.db, func(ctx context.Context) error {
		var err error
		org, err = of.orgRepo.ByID(ctx, request.OrgID)
		if err != nil {
			return err
		}
		if org == nil || !utils.IsTrue(org.IsActive) {
			return NewBusinessError("ORGANIZATION_NOT_FOUND", "Organization not found", ErrOrganizationNotFound)
		}

		if err := of.validateClassification(ctx, request.OrgTypeID, request.IndustryTypeID, request.IndustrySubTypeID); err != nil {
			return err
		}

		if request.OrganizationName != nil {
			org.OrganizationName = *request.OrganizationName
		}
		if request.OrgPOCFirstName != nil {
			org.OrgPOCFirstName = *request.OrgPOCFirstName
		}
		if request.OrgPOCMiddleName != nil {
			org.OrgPOCMiddleName = request.OrgPOCMiddleName
		}
		if request.OrgPOCLastName != nil {
			org.OrgPOCLastName = *request.OrgPOCLastName
		}
		if request.OrgPrimaryEmailID != nil {
			org.OrgPrimaryEmailID = *request.OrgPrimaryEmailID
		}
		if request.OrgTypeID != nil {
			org.OrgTypeID = *request.OrgTypeID
		}
		if request.IndustryTypeID != nil {
			org.IndustryTypeID = *request.IndustryTypeID
		}
		if request.IndustrySubTypeID != nil {
			org.IndustrySubTypeID = request.IndustrySubTypeID
		}
		org.UpdatedBy = actorID(session)

		if err := of.orgRepo.Update(ctx, org); err != nil {
			return err
		}

		if request.Address != nil {
			if err := of.upsertOrgAddress(ctx, org, request.Address, session); err != nil {
				return err
			}
		}
		if request.PhoneNumber != nil {
			if err := of.upsertOrgPhone(ctx, org, request.PhoneNumber, session); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if IsBusinessErr(err) {
			return nil, err
		}
		return nil, NewBusinessError("ORGANIZATION_UPDATE_FAILED", "Organization update failed", err)
	}

	of.logEntityChange(ctx, session, models.AuditActionEntityUpdated, "organization", org.OrgID, fmt.Sprintf("organization updated: %d", org.OrgID), metadata)

	return &dto.MutationData{Changes: dto.Changes{Status: dto.ChangePatched, Entity: org}}, nil
}

// DeleteOrganization soft-deletes one organization
func (of *OrganizationFlowImpl) DeleteOrganization(ctx context.Context, request *dto.DeleteOrganizationRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error) {
	deleted, err := of.orgRepo.SoftDelete(ctx, request.OrgID, actorValue(session))
	if err != nil {
		return nil, NewBusinessError("ORGANIZATION_DELETE_FAILED", "Organization delete failed", err)
	}
	if !deleted {
		return nil, NewBusinessError("ORGANIZATION_NOT_FOUND", "Organization not found", ErrOrganizationNotFound)
	}

	of.logEntityChange(ctx, session, models.AuditActionEntityDeleted, "organization", request.OrgID, fmt.Sprintf("organization deleted: %d", request.OrgID), metadata)

	affected := int64(1)
	return &dto.MutationData{Changes: dto.Changes{Status: dto.ChangeSoftDeleted, Affected: &affected}}, nil
}

// BulkDeleteOrganizations soft-deletes every distinct live organization in the
// id set and reports how many rows were actually changed
func (of *OrganizationFlowImpl) BulkDeleteOrganizations(ctx context.Context, request *dto.BulkDeleteRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error) {
	ids := DedupeIDs(request.IDs)

	affected, err := of.orgRepo.SoftDeleteMany(ctx, ids, actorValue(session))
	if err != nil {
		return nil, NewBusinessError("ORGANIZATION_DELETE_FAILED", "Organization delete failed", err)
	}

	of.logEntityChange(ctx, session, models.AuditActionEntityDeleted, "organization", 0, fmt.Sprintf("organizations bulk deleted: %d of %d requested", affected, len(ids)), metadata)

	return &dto.MutationData{Changes: dto.Changes{Status: dto.ChangeSoftDeleted, Affected: &affected}}, nil
}

// ExportOrganizations renders the filtered list as an xlsx workbook
func (of *OrganizationFlowImpl) ExportOrganizations(ctx context.Context, params *dto.ListParams) ([]byte, string, error) {
	query := BuildListQuery(params).WithAll()
	rows, _, err := of.orgRepo.List(ctx, query)
	if err != nil {
		return nil, "", NewBusinessError("ORGANIZATION_EXPORT_FAILED", "Organization export failed", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Organizations"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"ID", "Name", "Primary Email", "POC First Name", "POC Last Name", "Organization Type", "Industry Type", "Created On"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for r, org := range rows {
		values := []any{
			org.OrgID,
			org.OrganizationName,
			org.OrgPrimaryEmailID,
			org.OrgPOCFirstName,
			org.OrgPOCLastName,
			org.OrganizationType.OrgType,
			org.IndustryType.IndustryType,
			org.CreatedOn.Format("2006-01-02 15:04:05"),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", NewBusinessError("ORGANIZATION_EXPORT_FAILED", "Organization export failed", err)
	}

	filename := fmt.Sprintf("organizations-%s.xlsx", utils.UTCNow().Format("20060102-150405"))
	return buf.Bytes(), filename, nil
}

// validateClassification checks the referenced lookup rows exist. All three
// arguments are optional so update requests can pass only what changed.
func (of *OrganizationFlowImpl) validateClassification(ctx context.Context, orgTypeID, industryTypeID, industrySubTypeID *uint) error {
	if orgTypeID != nil {
		orgType, err := of.orgTypeRepo.ByID(ctx, *orgTypeID)
		if err != nil {
			return err
		}
		if orgType == nil || !utils.IsTrue(orgType.IsActive) {
			return NewBusinessError("ORGANIZATION_TYPE_NOT_FOUND", "Organization type not found", ErrOrgTypeNotFound)
		}
	}

	if industryTypeID != nil {
		industry, err := of.industryRepo.ByID(ctx, *industryTypeID)
		if err != nil {
			return err
		}
		if industry == nil || !utils.IsTrue(industry.IsActive) {
			return NewBusinessError("INDUSTRY_TYPE_NOT_FOUND", "Industry type not found", ErrIndustryTypeNotFound)
		}
	}

	if industrySubTypeID != nil {
		subType, err := of.industryRepo.ByID(ctx, *industrySubTypeID)
		if err != nil {
			return err
		}
		if subType == nil || !utils.IsTrue(subType.IsActive) {
			return NewBusinessError("INDUSTRY_TYPE_NOT_FOUND", "Industry type not found", ErrIndustryTypeNotFound)
		}
	}

	return nil
}

func (of *OrganizationFlowImpl) upsertOrgAddress(ctx context.Context, org *models.Organization, request *dto.AddressRequest, session *Session) error {
	existing, err := of.addressRepo.ByFilter(ctx, models.AddressFilter{
		OrganizationID: &org.OrgID,
		IsActive:       utils.ToPtr(true),
	}, "", 1, 0)
	if err != nil {
		return err
	}

	if len(existing) > 0 {
		address := existing[0]
		address.AddressLine1 = request.AddressLine1
		address.AddressLine2 = request.AddressLine2
		address.AddressLine3 = request.AddressLine3
		address.AddressTypeID = request.AddressTypeID
		address.CountryID = request.CountryID
		address.CountryStateID = request.CountryStateID
		address.CityID = request.CityID
		address.UpdatedBy = actorID(session)
		return of.addressRepo.Update(ctx, address)
	}

	address := addressFromRequest(request, actorID(session))
	address.OrganizationID = &org.OrgID
	return of.addressRepo.Save(ctx, address)
}

func (of *OrganizationFlowImpl) upsertOrgPhone(ctx context.Context, org *models.Organization, request *dto.PhoneNumberRequest, session *Session) error {
	existing, err := of.phoneRepo.ByFilter(ctx, models.PhoneNumberFilter{
		OrganizationID: &org.OrgID,
		IsActive:       utils.ToPtr(true),
	}, "", 1, 0)
	if err != nil {
		return err
	}

	if len(existing) > 0 {
		phone := existing[0]
		phone.PhoneNumber = request.PhoneNumber
		phone.PhoneNumberTypeID = request.PhoneNumberTypeID
		phone.UpdatedBy = actorID(session)
		return of.phoneRepo.Update(ctx, phone)
	}

	phone := phoneFromRequest(request, actorID(session))
	phone.OrganizationID = &org.OrgID
	return of.phoneRepo.Save(ctx, phone)
}

func (of *OrganizationFlowImpl) logEntityChange(ctx context.Context, session *Session, action, entity string, entityID uint, description string, metadata *ClientMetadata) {
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

	_ = of.auditRepo.Save(ctx, audit)
}

// addressFromRequest builds an address row from the nested request payload
func addressFromRequest(request *dto.AddressRequest, actor *uint) *models.Address {
	return &models.Address{
		AddressLine1:   request.AddressLine1,
		AddressLine2:   request.AddressLine2,
		AddressLine3:   request.AddressLine3,
		AddressTypeID:  request.AddressTypeID,
		CountryID:      request.CountryID,
		CountryStateID: request.CountryStateID,
		CityID:         request.CityID,
		IsActive:       utils.ToPtr(true),
		CreatedBy:      actor,
		UpdatedBy:      actor,
	}
}

// phoneFromRequest builds a phone number row from the nested request payload
func phoneFromRequest(request *dto.PhoneNumberRequest, actor *uint) *models.PhoneNumber {
	return &models.PhoneNumber{
		PhoneNumber:       request.PhoneNumber,
		PhoneNumberTypeID: request.PhoneNumberTypeID,
		IsActive:          utils.ToPtr(true),
		CreatedBy:         actor,
		UpdatedBy:         actor,
	}
}

// actorID returns the acting user id for audit columns, nil when unauthenticated
func actorID(session *Session) *uint {
	if session == nil {
		return nil
	}
	id := session.UserID
	return &id
}

// actorValue is actorID for call sites that take a plain uint
func actorValue(session *Session) uint {
	if session == nil {
		return 0
	}
	return session.UserID
}
