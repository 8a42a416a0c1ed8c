// Package dto contains request and response data transfer objects for the API layer
package dto

// SessionUserDTO is the user snapshot exposed to authenticated clients
type SessionUserDTO struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// SignInRequest represents a sign-in attempt
type SignInRequest struct {
	Email        string   `json:"email" validate:"required,email,max=255"`
	Password     string   `json:"password" validate:"required,min=1,max=255"`
	CaptchaID    string   `json:"captchaId,omitempty" validate:"omitempty,max=255"`
	CaptchaAngle *float64 `json:"captchaAngle,omitempty"`
}

// SignInResponse reports the session state after a sign-in attempt.
// Failed attempts return a nil user and authenticated false rather
// than an error payload.
type SignInResponse struct {
	User          *SessionUserDTO `json:"user"`
	Authenticated bool            `json:"authenticated"`
}

// AuthStatusResponse reports whether the caller holds a valid session
type AuthStatusResponse struct {
	Status bool `json:"status"`
}

// SignOutResponse reports whether a session was actually destroyed
type SignOutResponse struct {
	LoggedOut bool `json:"loggedOut"`
}

// RequestPasswordResetRequest starts the password reset process
type RequestPasswordResetRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

// RequestPasswordResetResponse acknowledges that a reset token was issued
type RequestPasswordResetResponse struct {
	Requested bool `json:"requested"`
}

// ResetPasswordRequest completes the password reset process
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=255"`
}

// ResetPasswordResponse acknowledges a completed password reset
type ResetPasswordResponse struct {
	Reset bool `json:"reset"`
}

// CaptchaChallengeResponse carries a rotate captcha challenge
type CaptchaChallengeResponse struct {
	CaptchaID   string `json:"captchaId"`
	MasterImage string `json:"masterImage"`
	ThumbImage  string `json:"thumbImage"`
	ThumbSize   int    `json:"thumbSize"`
}
