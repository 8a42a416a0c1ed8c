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

// BranchHandler handles branch CRUD endpoints
type BranchHandler struct {
	branchFlow businessflow.BranchFlow
	validator  *validator.Validate
}

// NewBranchHandler creates a new branch handler
func NewBranchHandler(branchFlow businessflow.BranchFlow) *BranchHandler {
	return &BranchHandler{
		branchFlow: branchFlow,
		validator:  newValidator(),
	}
}

// List returns a filtered, sorted, paginated page of branches
// @Summary List branches
// @Tags branches
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /api/branches/list [get]
func (h *BranchHandler) List(c fiber.Ctx) error {
	startedAt := time.Now()

	ctx := createRequestContext(c, "branches-list")
	data, err := h.branchFlow.ListBranches(ctx, parseListParams(c))
	if err != nil {
		return BusinessErrorResponse(c, "branches-list", err)
	}

	return SuccessResponse(c, startedAt, data)
}

// Get returns a single branch by id
// @Summary Get branch
// @Tags branches
// @Produce json
// @Param branchId path int true "Branch ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/branches/{branchId} [get]
func (h *BranchHandler) Get(c fiber.Ctx) error {
	startedAt := time.Now()

	idStr := c.Params("branchId")
	branchID, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || branchID == 0 {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid branch id")
	}

	ctx := createRequestContext(c, "branches-get")
	branch, err := h.branchFlow.GetBranch(ctx, uint(branchID))
	if err != nil {
		return BusinessErrorResponse(c, "branches-get", err)
	}

	return SuccessResponse(c, startedAt, branch)
}

// Create creates a branch under an existing organization
// @Summary Create branch
// @Tags branches
// @Accept json
// @Produce json
// @Param request body dto.CreateBranchRequest true "Branch data"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Router /api/branches/create [post]
func (h *BranchHandler) Create(c fiber.Ctx) error {
	startedAt := time.Now()

	var request dto.CreateBranchRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}

	session, _ := middleware.GetSessionFromContext(c)
	ctx := createRequestContext(c, "branches-create")
	data, err := h.branchFlow.CreateBranch(ctx, &request, session, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "branches-create", err)
	}

	return SuccessResponse(c, startedAt, data)
}

// Update patches an existing branch
// @Summary Update branch
// @Tags branches
// @Accept json
// @Produce json
// @Param request body dto.UpdateBranchRequest true "Fields to patch"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/branches/update [post]
func (h *BranchHandler) Update(c fiber.Ctx) error {
	startedAt := time.Now()

	var request dto.UpdateBranchRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}

	session, _ := middleware.GetSessionFromContext(c)
	ctx := createRequestContext(c, "branches-update")
	data, err := h.branchFlow.UpdateBranch(ctx, &request, session, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "branches-update", err)
	}

	return SuccessResponse(c, startedAt, data)
}

// Delete soft-deletes a branch
// @Summary Delete branch
// @Tags branches
// @Accept json
// @Produce json
// @Param request body dto.DeleteBranchRequest true "Branch id"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/branches/delete [post]
func (h *BranchHandler) Delete(c fiber.Ctx) error {
	startedAt := time.Now()

	var request dto.DeleteBranchRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}

	session, _ := middleware.GetSessionFromContext(c)
	ctx := createRequestContext(c, "branches-delete")
	data, err := h.branchFlow.DeleteBranch(ctx, &request, session, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "branches-delete", err)
	}

	return SuccessResponse(c, startedAt, data)
}

// BulkDelete soft-deletes a set of branches by id
// @Summary Bulk delete branches
// @Tags branches
// @Accept json
// @Produce json
// @Param request body dto.BulkDeleteRequest true "Branch ids"
// @Success 200 {object} dto.APIResponse
// @Router /api/branches/bulk-delete [post]
func (h *BranchHandler) BulkDelete(c fiber.Ctx) error {
	startedAt := time.Now()

	var request dto.BulkDeleteRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}

	session, _ := middleware.GetSessionFromContext(c)
	ctx := createRequestContext(c, "branches-bulk-delete")
	data, err := h.branchFlow.BulkDeleteBranches(ctx, &request, session, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "branches-bulk-delete", err)
	}

	return SuccessResponse(c, startedAt, data)
}
