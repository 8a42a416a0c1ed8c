package handlers

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/orgdesk/orgdesk/app/dto"
	"github.com/orgdesk/orgdesk/app/middleware"
	businessflow "github.com/orgdesk/orgdesk/business_flow"
)

// OrganizationHandler handles organization CRUD and export endpoints
type OrganizationHandler struct {
	orgFlow   businessflow.OrganizationFlow
	validator *validator.Validate
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(orgFlow businessflow.OrganizationFlow) *OrganizationHandler {
	return &OrganizationHandler{
		orgFlow:   orgFlow,
		validator: newValidator(),
	}
}

// List returns a filtered, sorted, paginated page of organizations
// @Summary List organizations
// @Tags organizations
// @Produce json
// @Param search query string false "Contains search across listed columns"
// @Param page query string false "1-based page number or 'all'"
// @Param orderBy query string false "Sort column"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} dto.APIResponse
// @Router /api/organizations/list [get]
func (h *OrganizationHandler) List(c fiber.Ctx) error {
	startedAt := time.Now()

	ctx := createRequestContext(c, "organizations-list")
	data, err := h.orgFlow.ListOrganizations(ctx, parseListParams(c))
	if err != nil {
		return BusinessErrorResponse(c, "organizations-list", err)
	}

	return SuccessResponse(c, startedAt, data)
}

// Get returns a single organization by id with its nested address,
// phone number and classification lookups
// @Summary Get organization
// @Tags organizations
// @Produce json
// @Param organizationId path int true "Organization ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/organizations/{organizationId} [get]
func (h *OrganizationHandler) Get(c fiber.Ctx) error {
	startedAt := time.Now()

	idStr := c.Params("organizationId")
	orgID, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || orgID == 0 {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid organization id")
	}

	ctx := createRequestContext(c, "organizations-get")
	org, err := h.orgFlow.GetOrganization(ctx, uint(orgID))
	if err != nil {
		return BusinessErrorResponse(c, "organizations-get", err)
	}

	return SuccessResponse(c, startedAt, org)
}

// Create creates an organization along with its head office branch
// @Summary Create organization
// @Tags organizations
// @Accept json
// @Produce json
// @Param request body dto.CreateOrganizationRequest true "Organization data"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Router /api/organizations/create [post]
func (h *OrganizationHandler) Create(c fiber.Ctx) error {
	startedAt := time.Now()

	var request dto.CreateOrganizationRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}

	session, _ := middleware.GetSessionFromContext(c)
	ctx := createRequestContext(c, "organizations-create")
	data, err := h.orgFlow.CreateOrganization(ctx, &request, session, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "organizations-create", err)
	}

	return SuccessResponse(c, startedAt, data)
}

// Update patches an existing organization
// @Summary Update organization
// @Tags organizations
// @Accept json
// @Produce json
// @Param request body dto.UpdateOrganizationRequest true "Fields to patch"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/organizations/update [post]
func (h *OrganizationHandler) Update(c fiber.Ctx) error {
	startedAt := time.Now()

	var request dto.UpdateOrganizationRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}

	session, _ := middleware.GetSessionFromContext(c)
	ctx := createRequestContext(c, "organizations-update")
	data, err := h.orgFlow.UpdateOrganization(ctx, &request, session, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "organizations-update", err)
	}

	return SuccessResponse(c, startedAt, data)
}

// Delete soft-deletes an organization
// @Summary Delete organization
// @Tags organizations
// @Accept json
// @Produce json
// @Param request body dto.DeleteOrganizationRequest true "Organization id"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/organizations/delete [post]
func (h *OrganizationHandler) Delete(c fiber.Ctx) error {
	startedAt := time.Now()

	var request dto.DeleteOrganizationRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}

	session, _ := middleware.GetSessionFromContext(c)
	ctx := createRequestContext(c, "organizations-delete")
	data, err := h.orgFlow.DeleteOrganization(ctx, &request, session, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "organizations-delete", err)
	}

	return SuccessResponse(c, startedAt, data)
}

// BulkDelete soft-deletes a set of organizations by id
// @Summary Bulk delete organizations
// @Tags organizations
// @Accept json
// @Produce json
// @Param request body dto.BulkDeleteRequest true "Organization ids"
// @Success 200 {object} dto.APIResponse
// @Router /api/organizations/bulk-delete [post]
func (h *OrganizationHandler) BulkDelete(c fiber.Ctx) error {
	startedAt := time.Now()

	var request dto.BulkDeleteRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}

	session, _ := middleware.GetSessionFromContext(c)
	ctx := createRequestContext(c, "organizations-bulk-delete")
	data, err := h.orgFlow.BulkDeleteOrganizations(ctx, &request, session, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "organizations-bulk-delete", err)
	}

	return SuccessResponse(c, startedAt, data)
}

// Export streams the filtered organization list as an xlsx workbook
// @Summary Export organizations
// @Tags organizations
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /api/organizations/export [get]
func (h *OrganizationHandler) Export(c fiber.Ctx) error {
	ctx := createRequestContextWithTimeout(c, "organizations-export", 2*time.Minute)
	content, filename, err := h.orgFlow.ExportOrganizations(ctx, parseListParams(c))
	if err != nil {
		return BusinessErrorResponse(c, "organizations-export", err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(content)
}
