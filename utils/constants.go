package utils

import (
	"time"
)

// Session and token time constants
const (
	// SessionTimeout is the lifetime of an authenticated session (24 hours)
	SessionTimeout = 24 * time.Hour

	// SessionTimeoutSeconds is the session lifetime in seconds (86400 seconds = 24 hours)
	SessionTimeoutSeconds = 86400

	// PasswordResetTokenTTL is the lifetime of a password reset token (1 hour)
	PasswordResetTokenTTL = time.Hour
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Listing constants
const (
	// PageSize is the fixed number of rows per listing page
	PageSize = 10
)
