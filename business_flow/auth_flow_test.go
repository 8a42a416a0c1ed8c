package businessflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/orgdesk/orgdesk/app/dto"
	"github.com/orgdesk/orgdesk/app/services"
	"github.com/orgdesk/orgdesk/repository"
	testingutil "github.com/orgdesk/orgdesk/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deniedCaptcha fails every verification
type deniedCaptcha struct{}

func (deniedCaptcha) GenerateRotate(ctx context.Context) (*services.RotateChallenge, error) {
	return nil, errors.New("challenge generation is not wired here")
}

func (deniedCaptcha) VerifyRotate(ctx context.Context, challengeID string, userAngle float64) bool {
	return false
}

func TestAuthFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		userRepo := repository.NewUserRepository(testDB.DB)
		sessionRepo := repository.NewUserSessionRepository(testDB.DB)
		auditRepo := repository.NewAuditLogRepository(testDB.DB)

		tokenService, err := services.NewResetTokenService(
			1*time.Hour, "test-issuer", "test-audience",
			false, "", "", "test-secret-key-that-is-long-enough",
		)
		require.NoError(t, err)

		authFlow := NewAuthFlow(
			userRepo,
			sessionRepo,
			auditRepo,
			tokenService,
			nil,
			services.NewNoopSessionCache(),
			testDB.DB,
		)

		ctx := testingutil.CreateTestContext()
		metadata := NewClientMetadata("127.0.0.1", "test-agent")

		t.Run("SuccessfulSignIn", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			resp, session, err := authFlow.SignIn(ctx, &dto.SignInRequest{
				Email:    user.Email,
				Password: "TestPass123",
			}, metadata)
			require.NoError(t, err)
			require.NotNil(t, resp)

			assert.True(t, resp.Authenticated)
			require.NotNil(t, resp.User)
			assert.Equal(t, user.UserID, resp.User.UserID)
			assert.Equal(t, user.Email, resp.User.Email)

			require.NotNil(t, session)
			assert.NotEmpty(t, session.SessionToken)
			assert.True(t, session.ExpiresAt.After(time.Now()))

			stored, err := sessionRepo.BySessionToken(ctx, session.SessionToken)
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.Equal(t, user.UserID, stored.UserID)
		})

		t.Run("WrongPasswordIsNotAnError", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			resp, session, err := authFlow.SignIn(ctx, &dto.SignInRequest{
				Email:    user.Email,
				Password: "WrongPass999",
			}, metadata)
			require.NoError(t, err)
			require.NotNil(t, resp)

			assert.False(t, resp.Authenticated)
			assert.Nil(t, resp.User)
			assert.Nil(t, session)
		})

		t.Run("UnknownEmailIsNotAnError", func(t *testing.T) {
			resp, session, err := authFlow.SignIn(ctx, &dto.SignInRequest{
				Email:    "nobody@example.com",
				Password: "TestPass123",
			}, metadata)
			require.NoError(t, err)
			require.NotNil(t, resp)

			assert.False(t, resp.Authenticated)
			assert.Nil(t, resp.User)
			assert.Nil(t, session)
		})

		t.Run("RejectedCaptchaIsADomainError", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			guarded := NewAuthFlow(
				userRepo,
				sessionRepo,
				auditRepo,
				tokenService,
				deniedCaptcha{},
				services.NewNoopSessionCache(),
				testDB.DB,
			)

			angle := 42.0
			resp, session, err := guarded.SignIn(ctx, &dto.SignInRequest{
				Email:        user.Email,
				Password:     "TestPass123",
				CaptchaID:    "challenge-1",
				CaptchaAngle: &angle,
			}, metadata)
			require.Error(t, err)
			assert.True(t, IsCaptchaFailed(err))
			assert.Nil(t, resp)
			assert.Nil(t, session)
		})

		t.Run("SignOutDestroysTheSession", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			_, session, err := authFlow.SignIn(ctx, &dto.SignInRequest{
				Email:    user.Email,
				Password: "TestPass123",
			}, metadata)
			require.NoError(t, err)
			require.NotNil(t, session)

			out := authFlow.SignOut(ctx, session.SessionToken, metadata)
			assert.True(t, out.LoggedOut)

			stored, err := sessionRepo.BySessionToken(ctx, session.SessionToken)
			require.NoError(t, err)
			assert.Nil(t, stored)
		})

		t.Run("SignOutNeverRejects", func(t *testing.T) {
			out := authFlow.SignOut(ctx, "", metadata)
			assert.False(t, out.LoggedOut)

			out = authFlow.SignOut(ctx, "no-such-token", metadata)
			assert.False(t, out.LoggedOut)

			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			_, session, err := authFlow.SignIn(ctx, &dto.SignInRequest{
				Email:    user.Email,
				Password: "TestPass123",
			}, metadata)
			require.NoError(t, err)

			assert.True(t, authFlow.SignOut(ctx, session.SessionToken, metadata).LoggedOut)
			assert.False(t, authFlow.SignOut(ctx, session.SessionToken, metadata).LoggedOut,
				"a second sign-out of the same token must report false")
		})

		t.Run("PasswordResetRoundTrip", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			_, liveSession, err := authFlow.SignIn(ctx, &dto.SignInRequest{
				Email:    user.Email,
				Password: "TestPass123",
			}, metadata)
			require.NoError(t, err)
			require.NotNil(t, liveSession)

			reqResp, err := authFlow.RequestPasswordReset(ctx, &dto.RequestPasswordResetRequest{
				Email: user.Email,
			}, metadata)
			require.NoError(t, err)
			assert.True(t, reqResp.Requested)

			token, err := tokenService.GenerateResetToken(user.UserID, user.Email)
			require.NoError(t, err)

			resetResp, err := authFlow.ResetPassword(ctx, &dto.ResetPasswordRequest{
				Token:       token,
				NewPassword: "FreshPass456",
			}, metadata)
			require.NoError(t, err)
			assert.True(t, resetResp.Reset)

			// every live session of the account is destroyed
			stored, err := sessionRepo.BySessionToken(ctx, liveSession.SessionToken)
			require.NoError(t, err)
			assert.Nil(t, stored)

			oldResp, _, err := authFlow.SignIn(ctx, &dto.SignInRequest{
				Email:    user.Email,
				Password: "TestPass123",
			}, metadata)
			require.NoError(t, err)
			assert.False(t, oldResp.Authenticated)

			newResp, _, err := authFlow.SignIn(ctx, &dto.SignInRequest{
				Email:    user.Email,
				Password: "FreshPass456",
			}, metadata)
			require.NoError(t, err)
			assert.True(t, newResp.Authenticated)
		})

		t.Run("ResetRequestForUnknownEmail", func(t *testing.T) {
			_, err := authFlow.RequestPasswordReset(ctx, &dto.RequestPasswordResetRequest{
				Email: "nobody@example.com",
			}, metadata)
			require.Error(t, err)
			assert.True(t, IsUserNotFound(err))
		})

		t.Run("ResetWithGarbageToken", func(t *testing.T) {
			_, err := authFlow.ResetPassword(ctx, &dto.ResetPasswordRequest{
				Token:       "not-a-token",
				NewPassword: "FreshPass456",
			}, metadata)
			require.Error(t, err)
			assert.True(t, IsResetTokenInvalid(err))
		})

		return nil
	})
	require.NoError(t, err)
}
