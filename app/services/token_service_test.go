// Package services provides external service integrations and technical concerns like tokens and captcha
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestResetTokenService creates a reset token service for testing with symmetric key
func createTestResetTokenService(ttl time.Duration) (ResetTokenService, error) {
	return NewResetTokenService(
		ttl,
		"test-issuer",
		"test-audience",
		false, // useRSAKeys
		"",    // privateKeyPEM
		"",    // publicKeyPEM
		"test-secret-key-for-jwt-signing-32-chars", // secretKey
	)
}

func TestNewResetTokenService(t *testing.T) {
	tests := []struct {
		name        string
		useRSAKeys  bool
		secretKey   string
		expectError bool
	}{
		{
			name:        "valid symmetric key configuration",
			useRSAKeys:  false,
			secretKey:   "test-secret-key-for-jwt-signing-32-chars",
			expectError: false,
		},
		{
			name:        "missing secret key",
			useRSAKeys:  false,
			secretKey:   "",
			expectError: true,
		},
		{
			name:        "rsa mode without keys",
			useRSAKeys:  true,
			secretKey:   "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, err := NewResetTokenService(
				time.Hour,
				"test-issuer",
				"test-audience",
				tt.useRSAKeys,
				"",
				"",
				tt.secretKey,
			)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, service)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, service)
			}
		})
	}
}

func TestGenerateAndValidateResetToken(t *testing.T) {
	service, err := createTestResetTokenService(time.Hour)
	require.NoError(t, err)

	token, err := service.GenerateResetToken(42, "admin@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateResetToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.NotEmpty(t, claims.TokenID)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
}

func TestValidateResetTokenUniqueIDs(t *testing.T) {
	service, err := createTestResetTokenService(time.Hour)
	require.NoError(t, err)

	first, err := service.GenerateResetToken(1, "a@example.com")
	require.NoError(t, err)
	second, err := service.GenerateResetToken(1, "a@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	firstClaims, err := service.ValidateResetToken(first)
	require.NoError(t, err)
	secondClaims, err := service.ValidateResetToken(second)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.TokenID, secondClaims.TokenID)
}

func TestValidateResetTokenExpired(t *testing.T) {
	service, err := createTestResetTokenService(-time.Minute)
	require.NoError(t, err)

	token, err := service.GenerateResetToken(7, "expired@example.com")
	require.NoError(t, err)

	claims, err := service.ValidateResetToken(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateResetTokenInvalid(t *testing.T) {
	service, err := createTestResetTokenService(time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "garbage token", token: "not-a-jwt"},
		{name: "malformed segments", token: "aaa.bbb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateResetToken(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

func TestValidateResetTokenWrongKey(t *testing.T) {
	issuing, err := createTestResetTokenService(time.Hour)
	require.NoError(t, err)

	validating, err := NewResetTokenService(
		time.Hour,
		"test-issuer",
		"test-audience",
		false,
		"",
		"",
		"a-completely-different-signing-secret-key",
	)
	require.NoError(t, err)

	token, err := issuing.GenerateResetToken(9, "other@example.com")
	require.NoError(t, err)

	claims, err := validating.ValidateResetToken(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
