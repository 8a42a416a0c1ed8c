package handlers

import (
	"time"

	"github.com/gofiber/fiber/v3"
	businessflow "github.com/orgdesk/orgdesk/business_flow"
)

// FilterOptionsHandler serves the distinct filterable values the listing
// screens present as dropdowns
type FilterOptionsHandler struct {
	filterFlow businessflow.FilterOptionsFlow
}

// NewFilterOptionsHandler creates a new filter options handler
func NewFilterOptionsHandler(filterFlow businessflow.FilterOptionsFlow) *FilterOptionsHandler {
	return &FilterOptionsHandler{filterFlow: filterFlow}
}

// Organizations returns the available filter values for the organization listing
// @Summary Organization filter options
// @Tags filters
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /api/filters/organizations [get]
func (h *FilterOptionsHandler) Organizations(c fiber.Ctx) error {
	startedAt := time.Now()
	ctx := createRequestContext(c, "filters-organizations")
	data, err := h.filterFlow.OrganizationFilterOptions(ctx)
	if err != nil {
		return BusinessErrorResponse(c, "filters-organizations", err)
	}
	return SuccessResponse(c, startedAt, data)
}

// Branches returns the available filter values for the branch listing
// @Summary Branch filter options
// @Tags filters
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /api/filters/branches [get]
func (h *FilterOptionsHandler) Branches(c fiber.Ctx) error {
	startedAt := time.Now()
	ctx := createRequestContext(c, "filters-branches")
	data, err := h.filterFlow.BranchFilterOptions(ctx)
	if err != nil {
		return BusinessErrorResponse(c, "filters-branches", err)
	}
	return SuccessResponse(c, startedAt, data)
}

// Users returns the available filter values for the user listing
// @Summary User filter options
// @Tags filters
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /api/filters/users [get]
func (h *FilterOptionsHandler) Users(c fiber.Ctx) error {
	startedAt := time.Now()
	ctx := createRequestContext(c, "filters-users")
	data, err := h.filterFlow.UserFilterOptions(ctx)
	if err != nil {
		return BusinessErrorResponse(c, "filters-users", err)
	}
	return SuccessResponse(c, startedAt, data)
}
