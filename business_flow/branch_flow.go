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

// BranchFlow handles branch CRUD operations
type BranchFlow interface {
	ListBranches(ctx context.Context, params *dto.ListParams) (*dto.ListData, error)
	GetBranch(ctx context.Context, branchID uint) (*models.Branch, error)
	CreateBranch(ctx context.Context, request *dto.CreateBranchRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error)
	UpdateBranch(ctx context.Context, request *dto.UpdateBranchRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error)
	DeleteBranch(ctx context.Context, request *dto.DeleteBranchRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error)
	BulkDeleteBranches(ctx context.Context, request *dto.BulkDeleteRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error)
}

// BranchFlowImpl implements the branch business flow
type BranchFlowImpl struct {
	branchRepo   repository.BranchRepository
	orgRepo      repository.OrganizationRepository
	addressRepo  repository.AddressRepository
	phoneRepo    repository.PhoneNumberRepository
	industryRepo repository.LookupRepository[models.IndustryType, models.IndustryTypeFilter]
	auditRepo    repository.AuditLogRepository
	db           *gorm.DB
}

// NewBranchFlow creates a new branch flow instance
func NewBranchFlow(
	branchRepo repository.BranchRepository,
	orgRepo repository.OrganizationRepository,
	addressRepo repository.AddressRepository,
	phoneRepo repository.PhoneNumberRepository,
	industryRepo repository.LookupRepository[models.IndustryType, models.IndustryTypeFilter],
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
) BranchFlow {
	return &BranchFlowImpl{
		branchRepo:   branchRepo,
		orgRepo:      orgRepo,
		addressRepo:  addressRepo,
		phoneRepo:    phoneRepo,
		industryRepo: industryRepo,
		auditRepo:    auditRepo,
		db:           db,
	}
}

// ListBranches returns one page of branches plus the total match count
func (bf *BranchFlowImpl) ListBranches(ctx context.Context, params *dto.ListParams) (*dto.ListData, error) {
	rows, count, err := bf.branchRepo.List(ctx, BuildListQuery(params))
	if err != nil {
		return nil, NewBusinessError("BRANCH_LIST_FAILED", "Branch list failed", err)
	}
	return &dto.ListData{Count: count, Rows: rows}, nil
}

// GetBranch returns one branch with its relations preloaded
func (bf *BranchFlowImpl) GetBranch(ctx context.Context, branchID uint) (*models.Branch, error) {
	branch, err := bf.branchRepo.ByID(ctx, branchID)
	if err != nil {
		return nil, NewBusinessError("BRANCH_GET_FAILED", "Branch get failed", err)
	}
	if branch == nil || !utils.IsTrue(branch.IsActive) {
		return nil, NewBusinessError("BRANCH_NOT_FOUND", "Branch not found", ErrBranchNotFound)
	}
	return branch, nil
}

// CreateBranch creates a branch under an existing organization together with
// its address and phone number in one transaction
func (bf *BranchFlowImpl) CreateBranch(ctx context.Context, request *dto.CreateBranchRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error) {
	var branch *models.Branch

	err := repository.WithTransaction(ctx, bf.db, func(ctx context.Context) error {
		org, err := bf.orgRepo.ByID(ctx, request.OrgID)
		if err != nil {
			return err
		}
		if org == nil || !utils.IsTrue(org.IsActive) {
			return NewBusinessError("ORGANIZATION_NOT_FOUND", "Organization not found", ErrOrganizationNotFound)
		}

		if request.IndustryTypeID != nil {
			industry, err := bf.industryRepo.ByID(ctx, *request.IndustryTypeID)
			if err != nil {
				return err
			}
			if industry == nil || !utils.IsTrue(industry.IsActive) {
				return NewBusinessError("INDUSTRY_TYPE_NOT_FOUND", "Industry type not found", ErrIndustryTypeNotFound)
			}
		}

		actor := actorID(session)
		branch = &models.Branch{
			OrgID:          request.OrgID,
			OrgBranchName:  request.OrgBranchName,
			OrgBranchNote:  request.OrgBranchNote,
			IndustryTypeID: request.IndustryTypeID,
			IsOrgBranch:    utils.ToPtr(false),
			IsActive:       utils.ToPtr(true),
			CreatedBy:      actor,
			UpdatedBy:      actor,
		}
		if err := bf.branchRepo.Save(ctx, branch); err != nil {
			return err
		}

		if request.Address != nil {
			address := addressFromRequest(request.Address, actor)
			address.OrgBranchID = &branch.OrgBranchID
			if err := bf.addressRepo.Save(ctx, address); err != nil {
				return err
			}
		}

		if request.PhoneNumber != nil {
			phone := phoneFromRequest(request.PhoneNumber, actor)
			phone.OrgBranchID = &branch.OrgBranchID
			if err := bf.phoneRepo.Save(ctx, phone); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if IsBusinessErr(err) {
			return nil, err
		}
		return nil, NewBusinessError("BRANCH_CREATE_FAILED", "Branch create failed", err)
	}

	bf.logEntityChange(ctx, session, models.AuditActionEntityCreated, "branch", branch.OrgBranchID, fmt.Sprintf("branch created: %s", branch.OrgBranchName), metadata)

	return &dto.MutationData{Changes: dto.Changes{Status: dto.ChangeInserted, Entity: branch}}, nil
}

// UpdateBranch patches the branch fields present in the request
func (bf *BranchFlowImpl) UpdateBranch(ctx context.Context, request *dto.UpdateBranchRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error) {
	var branch *models.Branch

	err := repository.WithTransaction(ctx, bf.db, func(ctx context.Context) error {
		var err error
		branch, err = bf.branchRepo.ByID(ctx, request.OrgBranchID)
		if err != nil {
			return err
		}
		if branch == nil || !utils.IsTrue(branch.IsActive) {
			return NewBusinessError("BRANCH_NOT_FOUND", "Branch not found", ErrBranchNotFound)
		}

		if request.IndustryTypeID != nil {
			industry, err := bf.industryRepo.ByID(ctx, *request.IndustryTypeID)
			if err != nil {
				return err
			}
			if industry == nil || !utils.IsTrue(industry.IsActive) {
				return NewBusinessError("INDUSTRY_TYPE_NOT_FOUND", "Industry type not found", ErrIndustryTypeNotFound)
			}
			branch.IndustryTypeID = request.IndustryTypeID
		}

		if request.OrgBranchName != nil {
			branch.OrgBranchName = *request.OrgBranchName
		}
		if request.OrgBranchNote != nil {
			branch.OrgBranchNote = request.OrgBranchNote
		}
		branch.UpdatedBy = actorID(session)

		if err := bf.branchRepo.Update(ctx, branch); err != nil {
			return err
		}

		if request.Address != nil {
			if err := bf.upsertBranchAddress(ctx, branch, request.Address, session); err != nil {
				return err
			}
		}
		if request.PhoneNumber != nil {
			if err := bf.upsertBranchPhone(ctx, branch, request.PhoneNumber, session); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if IsBusinessErr(err) {
			return nil, err
		}
		return nil, NewBusinessError("BRANCH_UPDATE_FAILED", "Branch update failed", err)
	}

	bf.logEntityChange(ctx, session, models.AuditActionEntityUpdated, "branch", branch.OrgBranchID, fmt.Sprintf("branch updated: %d", branch.OrgBranchID), metadata)

	return &dto.MutationData{Changes: dto.Changes{Status: dto.ChangePatched, Entity: branch}}, nil
}

// DeleteBranch soft-deletes one branch
func (bf *BranchFlowImpl) DeleteBranch(ctx context.Context, request *dto.DeleteBranchRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error) {
	deleted, err := bf.branchRepo.SoftDelete(ctx, request.OrgBranchID, actorValue(session))
	if err != nil {
		return nil, NewBusinessError("BRANCH_DELETE_FAILED", "Branch delete failed", err)
	}
	if !deleted {
		return nil, NewBusinessError("BRANCH_NOT_FOUND", "Branch not found", ErrBranchNotFound)
	}

	bf.logEntityChange(ctx, session, models.AuditActionEntityDeleted, "branch", request.OrgBranchID, fmt.Sprintf("branch deleted: %d", request.OrgBranchID), metadata)

	affected := int64(1)
	return &dto.MutationData{Changes: dto.Changes{Status: dto.ChangeSoftDeleted, Affected: &affected}}, nil
}

// BulkDeleteBranches soft-deletes every distinct live branch in the id set
func (bf *BranchFlowImpl) BulkDeleteBranches(ctx context.Context, request *dto.BulkDeleteRequest, session *Session, metadata *ClientMetadata) (*dto.MutationData, error) {
	ids := DedupeIDs(request.IDs)

	affected, err := bf.branchRepo.SoftDeleteMany(ctx, ids, actorValue(session))
	if err != nil {
		return nil, NewBusinessError("BRANCH_DELETE_FAILED", "Branch delete failed", err)
	}

	bf.logEntityChange(ctx, session, models.AuditActionEntityDeleted, "branch", 0, fmt.Sprintf("branches bulk deleted: %d of %d requested", affected, len(ids)), metadata)

	return &dto.MutationData{Changes: dto.Changes{Status: dto.ChangePurged, Affected: &affected}}, nil
}

func (bf *BranchFlowImpl) upsertBranchAddress(ctx context.Context, branch *models.Branch, request *dto.AddressRequest, session *Session) error {
	existing, err := bf.addressRepo.ByFilter(ctx, models.AddressFilter{
		OrgBranchID: &branch.OrgBranchID,
		IsActive:    utils.ToPtr(true),
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
		return bf.addressRepo.Update(ctx, address)
	}

	address := addressFromRequest(request, actorID(session))
	address.OrgBranchID = &branch.OrgBranchID
	return bf.addressRepo.Save(ctx, address)
}

func (bf *BranchFlowImpl) upsertBranchPhone(ctx context.Context, branch *models.Branch, request *dto.PhoneNumberRequest, session *Session) error {
	existing, err := bf.phoneRepo.ByFilter(ctx, models.PhoneNumberFilter{
		OrgBranchID: &branch.OrgBranchID,
		IsActive:    utils.ToPtr(true),
	}, "", 1, 0)
	if err != nil {
		return err
	}

	if len(existing) > 0 {
		phone := existing[0]
		phone.PhoneNumber = request.PhoneNumber
		phone.PhoneNumberTypeID = request.PhoneNumberTypeID
		phone.UpdatedBy = actorID(session)
		return bf.phoneRepo.Update(ctx, phone)
	}

	phone := phoneFromRequest(request, actorID(session))
	phone.OrgBranchID = &branch.OrgBranchID
	return bf.phoneRepo.Save(ctx, phone)
}

func (bf *BranchFlowImpl) logEntityChange(ctx context.Context, session *Session, action, entity string, entityID uint, description string, metadata *ClientMetadata) {
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

	_ = bf.auditRepo.Save(ctx, audit)
}
