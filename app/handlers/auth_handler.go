package handlers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/orgdesk/orgdesk/app/dto"
	"github.com/orgdesk/orgdesk/app/middleware"
	"github.com/orgdesk/orgdesk/app/services"
	businessflow "github.com/orgdesk/orgdesk/business_flow"
)

// AuthHandler handles authentication endpoints: session status, sign-in,
// sign-out, password reset and the captcha challenge
type AuthHandler struct {
	authFlow   businessflow.AuthFlow
	captchaSvc services.CaptchaService
	validator  *validator.Validate
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authFlow businessflow.AuthFlow, captchaSvc services.CaptchaService) *AuthHandler {
	return &AuthHandler{
		authFlow:   authFlow,
		captchaSvc: captchaSvc,
		validator:  newValidator(),
	}
}

// AuthStatus reports whether the request carries a live session
// @Summary Session status
// @Tags authentication
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /api/auth/authenticated-status [get]
func (h *AuthHandler) AuthStatus(c fiber.Ctx) error {
	startedAt := time.Now()

	if _, ok := middleware.GetSessionFromContext(c); ok {
		return SuccessResponse(c, startedAt, dto.AuthStatusResponse{Status: true})
	}
	return SuccessResponse(c, startedAt, dto.AuthStatusResponse{Status: false})
}

// SignIn authenticates a user and establishes the session cookie
// @Summary Sign in
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.SignInRequest true "Credentials"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Router /api/auth/sign-in [post]
func (h *AuthHandler) SignIn(c fiber.Ctx) error {
	startedAt := time.Now()

	var request dto.SignInRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}

	ctx := createRequestContext(c, "sign-in")
	response, session, err := h.authFlow.SignIn(ctx, &request, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "sign-in", err)
	}

	if session != nil {
		c.Cookie(&fiber.Cookie{
			Name:     middleware.SessionCookieName,
			Value:    session.SessionToken,
			Expires:  session.ExpiresAt,
			HTTPOnly: true,
			SameSite: "Lax",
			Path:     "/",
		})
	} else {
		c.ClearCookie(middleware.SessionCookieName)
	}

	return SuccessResponse(c, startedAt, response)
}

// Logout destroys the current session. It always succeeds, the payload
// reports whether a live session was actually destroyed.
// @Summary Sign out
// @Tags authentication
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /api/auth/logout [purge]
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	startedAt := time.Now()

	token := c.Cookies(middleware.SessionCookieName)
	c.ClearCookie(middleware.SessionCookieName)

	if token == "" {
		return SuccessResponse(c, startedAt, dto.SignOutResponse{LoggedOut: false})
	}

	ctx := createRequestContext(c, "logout")
	response := h.authFlow.SignOut(ctx, token, clientMetadata(c))
	return SuccessResponse(c, startedAt, response)
}

// RequestPasswordReset issues a one hour reset token for the given email
// @Summary Request password reset
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RequestPasswordResetRequest true "Account email"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /api/auth/request-password-reset [post]
func (h *AuthHandler) RequestPasswordReset(c fiber.Ctx) error {
	startedAt := time.Now()

	var request dto.RequestPasswordResetRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}

	ctx := createRequestContext(c, "request-password-reset")
	response, err := h.authFlow.RequestPasswordReset(ctx, &request, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "request-password-reset", err)
	}

	return SuccessResponse(c, startedAt, response)
}

// Captcha issues a fresh rotate-captcha challenge
// @Summary Captcha challenge
// @Tags authentication
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /api/auth/captcha [get]
func (h *AuthHandler) Captcha(c fiber.Ctx) error {
	startedAt := time.Now()

	ctx := createRequestContext(c, "captcha")
	challenge, err := h.captchaSvc.GenerateRotate(ctx)
	if err != nil {
		return InternalErrorResponse(c, "captcha", err)
	}

	return SuccessResponse(c, startedAt, dto.CaptchaChallengeResponse{
		CaptchaID:   challenge.ID,
		MasterImage: challenge.MasterImageBase64,
		ThumbImage:  challenge.ThumbImageBase64,
		ThumbSize:   challenge.ThumbSizePx,
	})
}

// ResetPassword sets a new password using a previously issued reset token
// @Summary Reset password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Token and new password"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Router /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c fiber.Ctx) error {
	startedAt := time.Now()

	var request dto.ResetPasswordRequest
	if err := c.Bind().JSON(&request); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.validator.Struct(&request); err != nil {
		return ValidationErrorResponse(c, err)
	}

	ctx := createRequestContext(c, "reset-password")
	response, err := h.authFlow.ResetPassword(ctx, &request, clientMetadata(c))
	if err != nil {
		return BusinessErrorResponse(c, "reset-password", err)
	}

	return SuccessResponse(c, startedAt, response)
}
