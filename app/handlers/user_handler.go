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

// UserHandler handles admin user CRUD endpoints
type UserHandler struct {
	userFlow  businessflow.UserFlow
	validator *validator.Validate
}

// NewUserHandler creates a new user handler
func NewUserHandler(userFlow businessflow.UserFlow) *UserHandler {
	return &UserHandler{
		userFlow:  userFlow,
		validator: newValidator(),
	}
}

// List returns a filtered, sorted, paginated page of users
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /api/users/list [get]
func (h *UserHandler) List(c fiber.Ctx) error {
	startedAt := time.Now()

	ctx := createRequestContext(c, "users-list")
	data, err := h.userFlow.ListUsers(ctx, parseListParams(c))
	if err != nil {
		return BusinessErrorResponse(c, "users-list", err)
	}

	return SuccessResponse(c, startedAt, data)
}

// Get returns a single user by id. The password hash is never serialized.
// @Summary Get user
// @Tags users
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/users/{userId} [get]
func (h *UserHandler) Get(c fiber.Ctx) error {
	startedAt := time.Now()

	idStr := c.Params("userId")
	userID, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || userID == 0 {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid user id")
	}

	ctx := createRequestContext(c, "users-get")
	user, err := h.userFlow.GetUser(ctx, uint(userID))
	if err != nil {
		return BusinessErrorResponse(c, "users-get", err)
	}

	return SuccessResponse(c, startedAt, user)
}

// Create creates an admin user with a bcrypt-hashed password
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User data"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Router /api/users/create [post]
func (h *UserHandler) Create(c fiber.Ctx) error {
	startedAt := time.Now()

	var request dto.CreateUserRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}

	session, _ := middleware.GetSessionFromContext(c)
	ctx := createRequestContext(c, "users-create")
	data, err := h.userFlow.CreateUser(ctx, &request, session, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "users-create", err)
	}

	return SuccessResponse(c, startedAt, data)
}

// Update patches an existing user. Passwords change only through the
// reset flow, never here.
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UpdateUserRequest true "Fields to patch"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/users/update [post]
func (h *UserHandler) Update(c fiber.Ctx) error {
	startedAt := time.Now()

	var request dto.UpdateUserRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}

	session, _ := middleware.GetSessionFromContext(c)
	ctx := createRequestContext(c, "users-update")
	data, err := h.userFlow.UpdateUser(ctx, &request, session, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "users-update", err)
	}

	return SuccessResponse(c, startedAt, data)
}

// Delete soft-deletes a user and invalidates their sessions
// @Summary Delete user
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.DeleteUserRequest true "User id"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/users/delete [post]
func (h *UserHandler) Delete(c fiber.Ctx) error {
	startedAt := time.Now()

	var request dto.DeleteUserRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}

	session, _ := middleware.GetSessionFromContext(c)
	ctx := createRequestContext(c, "users-delete")
	data, err := h.userFlow.DeleteUser(ctx, &request, session, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "users-delete", err)
	}

	return SuccessResponse(c, startedAt, data)
}

// BulkDelete soft-deletes a set of users by id
// @Summary Bulk delete users
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.BulkDeleteRequest true "User ids"
// @Success 200 {object} dto.APIResponse
// @Router /api/users/bulk-delete [post]
func (h *UserHandler) BulkDelete(c fiber.Ctx) error {
	startedAt := time.Now()

	var request dto.BulkDeleteRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}

	session, _ := middleware.GetSessionFromContext(c)
	ctx := createRequestContext(c, "users-bulk-delete")
	data, err := h.userFlow.BulkDeleteUsers(ctx, &request, session, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "users-bulk-delete", err)
	}

	return SuccessResponse(c, startedAt, data)
}
