// Package businessflow contains the core business logic and use cases for the directory workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Authentication errors
	ErrUserNotFound       = errors.New("user not found")
	ErrResetTokenInvalid  = errors.New("password reset token is invalid")
	ErrResetTokenExpired  = errors.New("password reset token has expired")
	ErrCaptchaFailed      = errors.New("captcha verification failed")
	ErrEmailAlreadyExists = errors.New("email already exists")

	// Organization errors
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrOrgTypeNotFound      = errors.New("organization type not found")

	// Branch errors
	ErrBranchNotFound = errors.New("branch not found")

	// Lookup errors
	ErrLookupNotFound         = errors.New("lookup entry not found")
	ErrIndustryTypeNotFound   = errors.New("industry type not found")
	ErrIndustryParentNotFound = errors.New("parent industry type not found")
	ErrIndustryParentCycle    = errors.New("industry type parent chain forms a cycle")
	ErrCountryNotFound        = errors.New("country not found")
	ErrCountryStateNotFound   = errors.New("state not found")
	ErrCityNotFound           = errors.New("city not found")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsBusinessErr reports whether err already carries a BusinessError so
// callers don't double-wrap it.
func IsBusinessErr(err error) bool {
	var be *BusinessError
	return errors.As(err, &be)
}

func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsResetTokenInvalid(err error) bool {
	return errors.Is(err, ErrResetTokenInvalid)
}

func IsResetTokenExpired(err error) bool {
	return errors.Is(err, ErrResetTokenExpired)
}

func IsCaptchaFailed(err error) bool {
	return errors.Is(err, ErrCaptchaFailed)
}

func IsEmailAlreadyExists(err error) bool {
	return errors.Is(err, ErrEmailAlreadyExists)
}

func IsOrganizationNotFound(err error) bool {
	return errors.Is(err, ErrOrganizationNotFound)
}

func IsOrgTypeNotFound(err error) bool {
	return errors.Is(err, ErrOrgTypeNotFound)
}

func IsBranchNotFound(err error) bool {
	return errors.Is(err, ErrBranchNotFound)
}

func IsLookupNotFound(err error) bool {
	return errors.Is(err, ErrLookupNotFound)
}

func IsIndustryTypeNotFound(err error) bool {
	return errors.Is(err, ErrIndustryTypeNotFound)
}

func IsIndustryParentNotFound(err error) bool {
	return errors.Is(err, ErrIndustryParentNotFound)
}

func IsIndustryParentCycle(err error) bool {
	return errors.Is(err, ErrIndustryParentCycle)
}

func IsCountryNotFound(err error) bool {
	return errors.Is(err, ErrCountryNotFound)
}

func IsCountryStateNotFound(err error) bool {
	return errors.Is(err, ErrCountryStateNotFound)
}

func IsCityNotFound(err error) bool {
	return errors.Is(err, ErrCityNotFound)
}

// IsNotFound reports whether err is any of the entity not-found errors.
// Handlers use it to emit a uniform 404.
func IsNotFound(err error) bool {
	return IsUserNotFound(err) ||
		IsOrganizationNotFound(err) ||
		IsBranchNotFound(err) ||
		IsLookupNotFound(err) ||
		IsIndustryTypeNotFound(err) ||
		IsOrgTypeNotFound(err) ||
		IsCountryNotFound(err) ||
		IsCountryStateNotFound(err) ||
		IsCityNotFound(err)
}
