// Package businessflow contains the business logic for the application.
package businessflow

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/orgdesk/orgdesk/app/dto"
	"github.com/orgdesk/orgdesk/app/services"
	"github.com/orgdesk/orgdesk/models"
	"github.com/orgdesk/orgdesk/repository"
	"github.com/orgdesk/orgdesk/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthFlow handles sign-in, sign-out and password reset operations
type AuthFlow interface {
	// SignIn authenticates a user. A failed credential check is not an
	// error: it returns a response with a nil user, authenticated false and
	// no session. A rejected captcha challenge is a domain error.
	SignIn(ctx context.Context, request *dto.SignInRequest, metadata *ClientMetadata) (*dto.SignInResponse, *models.UserSession, error)
	// SignOut destroys the session behind the given token. It never rejects,
	// the returned flag reports whether a live session was actually destroyed.
	SignOut(ctx context.Context, token string, metadata *ClientMetadata) *dto.SignOutResponse
	RequestPasswordReset(ctx context.Context, request *dto.RequestPasswordResetRequest, metadata *ClientMetadata) (*dto.RequestPasswordResetResponse, error)
	ResetPassword(ctx context.Context, request *dto.ResetPasswordRequest, metadata *ClientMetadata) (*dto.ResetPasswordResponse, error)
}

// AuthFlowImpl implements the authentication business flow
type AuthFlowImpl struct {
	userRepo     repository.UserRepository
	sessionRepo  repository.UserSessionRepository
	auditRepo    repository.AuditLogRepository
	tokenService services.ResetTokenService
	captchaSvc   services.CaptchaService
	sessionCache services.SessionCache
	db           *gorm.DB
}

// NewAuthFlow creates a new auth flow instance
func NewAuthFlow(
	userRepo repository.UserRepository,
	sessionRepo repository.UserSessionRepository,
	auditRepo repository.AuditLogRepository,
	tokenService services.ResetTokenService,
	captchaSvc services.CaptchaService,
	sessionCache services.SessionCache,
	db *gorm.DB,
) AuthFlow {
	return &AuthFlowImpl{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		auditRepo:    auditRepo,
		tokenService: tokenService,
		captchaSvc:   captchaSvc,
		sessionCache: sessionCache,
		db:           db,
	}
}

// SignIn authenticates a user with exact email and password
func (af *AuthFlowImpl) SignIn(ctx context.Context, request *dto.SignInRequest, metadata *ClientMetadata) (*dto.SignInResponse, *models.UserSession, error) {
	failed := &dto.SignInResponse{User: nil, Authenticated: false}

	if request.CaptchaID != "" && af.captchaSvc != nil {
		angle := 0.0
		if request.CaptchaAngle != nil {
			angle = *request.CaptchaAngle
		}
		if !af.captchaSvc.VerifyRotate(ctx, request.CaptchaID, angle) {
			msg := "captcha verification failed"
			_ = af.logAuthAttempt(ctx, nil, models.AuditActionSignInFailed, msg, false, &msg, metadata)
			return nil, nil, NewBusinessError("CAPTCHA_FAILED", "Captcha verification failed", ErrCaptchaFailed)
		}
	}

	user, err := af.userRepo.ByEmail(ctx, request.Email)
	if err != nil {
		return nil, nil, NewBusinessError("SIGN_IN_FAILED", "Sign in failed", err)
	}
	if user == nil {
		msg := fmt.Sprintf("sign in failed: no active account for %s", request.Email)
		_ = af.logAuthAttempt(ctx, nil, models.AuditActionSignInFailed, msg, false, &msg, metadata)
		return failed, nil, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(request.Password)); err != nil {
		msg := fmt.Sprintf("sign in failed: incorrect password for user %d", user.UserID)
		_ = af.logAuthAttempt(ctx, user, models.AuditActionSignInFailed, msg, false, &msg, metadata)
		return failed, nil, nil
	}

	var session *models.UserSession
	err = repository.WithTransaction(ctx, af.db, func(ctx context.Context) error {
		var err error
		session, err = af.CreateSession(ctx, user, metadata)
		return err
	})
	if err != nil {
		return nil, nil, NewBusinessError("SIGN_IN_FAILED", "Sign in failed", err)
	}

	// best effort, middleware falls back to the database on a miss
	if cacheErr := af.sessionCache.Set(ctx, session); cacheErr != nil {
		log.Printf("session cache set failed: %v", cacheErr)
	}

	msg := fmt.Sprintf("user signed in: %d", user.UserID)
	_ = af.logAuthAttempt(ctx, user, models.AuditActionSignInSuccess, msg, true, nil, metadata)

	userDTO := ToSessionUserDTO(*session)
	return &dto.SignInResponse{User: &userDTO, Authenticated: true}, session, nil
}

// SignOut deactivates the session behind the token. Unknown or already
// destroyed tokens are not errors.
func (af *AuthFlowImpl) SignOut(ctx context.Context, token string, metadata *ClientMetadata) *dto.SignOutResponse {
	if token == "" {
		return &dto.SignOutResponse{LoggedOut: false}
	}

	if cacheErr := af.sessionCache.Delete(ctx, token); cacheErr != nil {
		log.Printf("session cache delete failed: %v", cacheErr)
	}

	deactivated, err := af.sessionRepo.DeactivateByToken(ctx, token)
	if err != nil {
		log.Printf("sign out: session deactivation failed: %v", err)
		return &dto.SignOutResponse{LoggedOut: false}
	}

	if deactivated {
		msg := "user signed out"
		_ = af.logAuthAttempt(ctx, nil, models.AuditActionSignOut, msg, true, nil, metadata)
	}

	return &dto.SignOutResponse{LoggedOut: deactivated}
}

// RequestPasswordReset issues a short-lived signed reset token for the account.
// The token is written to the application log; there is no mail delivery here.
func (af *AuthFlowImpl) RequestPasswordReset(ctx context.Context, request *dto.RequestPasswordResetRequest, metadata *ClientMetadata) (*dto.RequestPasswordResetResponse, error) {
	user, err := af.userRepo.ByEmail(ctx, request.Email)
	if err != nil {
		return nil, NewBusinessError("PASSWORD_RESET_REQUEST_FAILED", "Password reset request failed", err)
	}
	if user == nil {
		return nil, NewBusinessError("USER_NOT_FOUND", "User not found", ErrUserNotFound)
	}

	token, err := af.tokenService.GenerateResetToken(user.UserID, user.Email)
	if err != nil {
		return nil, NewBusinessError("PASSWORD_RESET_REQUEST_FAILED", "Password reset request failed", err)
	}

	log.Printf("password reset token issued for user %d: %s", user.UserID, token)

	msg := fmt.Sprintf("password reset requested for user %d", user.UserID)
	_ = af.logAuthAttempt(ctx, user, models.AuditActionPasswordResetRequested, msg, true, nil, metadata)

	return &dto.RequestPasswordResetResponse{Requested: true}, nil
}

// ResetPassword verifies the reset token, stores the new password hash and
// destroys every live session of the account.
func (af *AuthFlowImpl) ResetPassword(ctx context.Context, request *dto.ResetPasswordRequest, metadata *ClientMetadata) (*dto.ResetPasswordResponse, error) {
	claims, err := af.tokenService.ValidateResetToken(request.Token)
	if err != nil {
		reason := ErrResetTokenInvalid
		if err == services.ErrTokenExpired {
			reason = ErrResetTokenExpired
		}
		msg := fmt.Sprintf("password reset rejected: %s", reason.Error())
		_ = af.logAuthAttempt(ctx, nil, models.AuditActionPasswordResetFailed, msg, false, &msg, metadata)
		return nil, NewBusinessError("PASSWORD_RESET_FAILED", "Password reset failed", reason)
	}

	var user *models.User
	resp, err := af.WithResetPasswordTransaction(ctx, func(ctx context.Context) (*dto.ResetPasswordResponse, error) {
		var err error
		user, err = af.userRepo.ByID(ctx, claims.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil || !utils.IsTrue(user.IsActive) {
			return nil, ErrUserNotFound
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(request.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}

		if err := af.userRepo.UpdatePassword(ctx, user.UserID, string(hash)); err != nil {
			return nil, err
		}

		if err := af.sessionRepo.DeactivateAllUserSessions(ctx, user.UserID); err != nil {
			return nil, err
		}

		return &dto.ResetPasswordResponse{Reset: true}, nil
	})

	if err != nil {
		errMsg := fmt.Sprintf("password reset failed: %s", err.Error())
		_ = af.logAuthAttempt(ctx, user, models.AuditActionPasswordResetFailed, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("PASSWORD_RESET_FAILED", "Password reset failed", err)
	}

	msg := fmt.Sprintf("password reset completed for user %d", claims.UserID)
	_ = af.logAuthAttempt(ctx, user, models.AuditActionPasswordResetCompleted, msg, true, nil, metadata)

	return resp, nil
}

// CreateSession creates a new active session for the user
func (af *AuthFlowImpl) CreateSession(ctx context.Context, user *models.User, metadata *ClientMetadata) (*models.UserSession, error) {
	expiresAt := utils.UTCNowAdd(utils.SessionTimeout)

	ipAddress := "127.0.0.1"
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	session := &models.UserSession{
		SessionToken: uuid.New().String(),
		UserID:       user.UserID,
		UserEmail:    user.Email,
		UserName:     user.FullName(),
		IPAddress:    &ipAddress,
		UserAgent:    &userAgent,
		IsActive:     utils.ToPtr(true),
		ExpiresAt:    expiresAt,
	}

	if err := af.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (af *AuthFlowImpl) logAuthAttempt(ctx context.Context, user *models.User, action string, description string, success bool, errMsg *string, metadata *ClientMetadata) error {
	var userID *uint
	if user != nil {
		userID = &user.UserID
	}

	ipAddress := "127.0.0.1"
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	audit := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		Description:  &description,
		Success:      utils.ToPtr(success),
		IPAddress:    &ipAddress,
		UserAgent:    &userAgent,
		ErrorMessage: errMsg,
	}

	requestID := ctx.Value(RequestIDKey)
	if requestID != nil {
		requestIDStr, ok := requestID.(string)
		if ok {
			audit.RequestID = &requestIDStr
		}
	}

	return af.auditRepo.Save(ctx, audit)
}

func (af *AuthFlowImpl) WithResetPasswordTransaction(ctx context.Context, fn func(context.Context) (*dto.ResetPasswordResponse, error)) (*dto.ResetPasswordResponse, error) {
	var result *dto.ResetPasswordResponse
	var fnErr error

	err := repository.WithTransaction(ctx, af.db, func(ctx context.Context) error {
		result, fnErr = fn(ctx)
		return fnErr
	})

	if err != nil {
		return nil, err
	}
	return result, fnErr
}
