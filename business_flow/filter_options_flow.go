// Package businessflow contains the business logic for the application.
package businessflow

import (
	"context"

	"github.com/orgdesk/orgdesk/app/dto"
	"github.com/orgdesk/orgdesk/models"
	"github.com/orgdesk/orgdesk/repository"
	"github.com/orgdesk/orgdesk/utils"
)

// FilterOptionsFlow produces the distinct values behind each named list
// filter, used by the client to populate its filter dropdowns. Keys match
// the filter names the list endpoints accept.
type FilterOptionsFlow interface {
	OrganizationFilterOptions(ctx context.Context) (*dto.FilterOptionsData, error)
	BranchFilterOptions(ctx context.Context) (*dto.FilterOptionsData, error)
	UserFilterOptions(ctx context.Context) (*dto.FilterOptionsData, error)
}

// FilterOptionsFlowImpl implements the filter options business flow
type FilterOptionsFlowImpl struct {
	orgRepo      repository.OrganizationRepository
	branchRepo   repository.BranchRepository
	userRepo     repository.UserRepository
	orgTypeRepo  repository.LookupRepository[models.OrganizationType, models.OrganizationTypeFilter]
	industryRepo repository.LookupRepository[models.IndustryType, models.IndustryTypeFilter]
}

// NewFilterOptionsFlow creates a new filter options flow instance
func NewFilterOptionsFlow(
	orgRepo repository.OrganizationRepository,
	branchRepo repository.BranchRepository,
	userRepo repository.UserRepository,
	orgTypeRepo repository.LookupRepository[models.OrganizationType, models.OrganizationTypeFilter],
	industryRepo repository.LookupRepository[models.IndustryType, models.IndustryTypeFilter],
) FilterOptionsFlow {
	return &FilterOptionsFlowImpl{
		orgRepo:      orgRepo,
		branchRepo:   branchRepo,
		userRepo:     userRepo,
		orgTypeRepo:  orgTypeRepo,
		industryRepo: industryRepo,
	}
}

func (ff *FilterOptionsFlowImpl) OrganizationFilterOptions(ctx context.Context) (*dto.FilterOptionsData, error) {
	filters := map[string][]string{}

	columns := map[string]string{
		"organizationName":  "organization_name",
		"orgPrimaryEmailId": "org_primary_email_id",
		"firstName":         "org_poc_first_name",
		"lastName":          "org_poc_last_name",
	}
	for name, column := range columns {
		values, err := ff.orgRepo.DistinctColumn(ctx, column)
		if err != nil {
			return nil, NewBusinessError("FILTER_OPTIONS_FAILED", "Filter options failed", err)
		}
		filters[name] = values
	}

	orgTypes, err := ff.orgTypeLabels(ctx)
	if err != nil {
		return nil, err
	}
	filters["organizationType"] = orgTypes

	industries, err := ff.industryLabels(ctx)
	if err != nil {
		return nil, err
	}
	filters["industryType"] = industries

	return &dto.FilterOptionsData{Filters: filters}, nil
}

func (ff *FilterOptionsFlowImpl) BranchFilterOptions(ctx context.Context) (*dto.FilterOptionsData, error) {
	filters := map[string][]string{}

	branchNames, err := ff.branchRepo.DistinctColumn(ctx, "org_branch_name")
	if err != nil {
		return nil, NewBusinessError("FILTER_OPTIONS_FAILED", "Filter options failed", err)
	}
	filters["orgBranchName"] = branchNames

	orgNames, err := ff.orgRepo.DistinctColumn(ctx, "organization_name")
	if err != nil {
		return nil, NewBusinessError("FILTER_OPTIONS_FAILED", "Filter options failed", err)
	}
	filters["organizationName"] = orgNames

	industries, err := ff.industryLabels(ctx)
	if err != nil {
		return nil, err
	}
	filters["industryType"] = industries

	return &dto.FilterOptionsData{Filters: filters}, nil
}

func (ff *FilterOptionsFlowImpl) UserFilterOptions(ctx context.Context) (*dto.FilterOptionsData, error) {
	filters := map[string][]string{}

	columns := map[string]string{
		"firstName":   "first_name",
		"lastName":    "last_name",
		"email":       "email",
		"phoneNumber": "phone_number",
	}
	for name, column := range columns {
		values, err := ff.userRepo.DistinctColumn(ctx, column)
		if err != nil {
			return nil, NewBusinessError("FILTER_OPTIONS_FAILED", "Filter options failed", err)
		}
		filters[name] = values
	}

	return &dto.FilterOptionsData{Filters: filters}, nil
}

func (ff *FilterOptionsFlowImpl) orgTypeLabels(ctx context.Context) ([]string, error) {
	rows, err := ff.orgTypeRepo.ByFilter(ctx, models.OrganizationTypeFilter{IsActive: utils.ToPtr(true)}, "org_type ASC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("FILTER_OPTIONS_FAILED", "Filter options failed", err)
	}
	labels := make([]string, 0, len(rows))
	for _, row := range rows {
		labels = append(labels, row.OrgType)
	}
	return labels, nil
}

func (ff *FilterOptionsFlowImpl) industryLabels(ctx context.Context) ([]string, error) {
	rows, err := ff.industryRepo.ByFilter(ctx, models.IndustryTypeFilter{IsActive: utils.ToPtr(true)}, "industry_type ASC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("FILTER_OPTIONS_FAILED", "Filter options failed", err)
	}
	labels := make([]string, 0, len(rows))
	for _, row := range rows {
		labels = append(labels, row.IndustryType)
	}
	return labels, nil
}
