// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/orgdesk/orgdesk/app/dto"
	businessflow "github.com/orgdesk/orgdesk/business_flow"
)

// newValidator builds the request validator shared by every handler. Issue
// maps key on the JSON field name, so the validator reports json tags
// instead of Go field names.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	v.RegisterValidation("alpha_space", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, char := range value {
			if !((char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || char == ' ') {
				return false
			}
		}
		return true
	})

	v.RegisterValidation("password_strength", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()

		hasUpper := false
		hasNumber := false

		for _, char := range value {
			if char >= 'A' && char <= 'Z' {
				hasUpper = true
			}
			if char >= '0' && char <= '9' {
				hasNumber = true
			}
		}

		return hasUpper && hasNumber
	})

	return v
}

func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return err.Field() + " must be at least " + err.Param() + " characters"
	case "max":
		return err.Field() + " must be at most " + err.Param() + " characters"
	case "oneof":
		return err.Field() + " must be one of: " + err.Param()
	case "alpha_space":
		return err.Field() + " must contain only letters and spaces"
	case "password_strength":
		return "Password must contain at least 1 uppercase letter and 1 number"
	case "numeric":
		return err.Field() + " must contain only numbers"
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", err.Field(), err.Param())
	default:
		return err.Field() + " is invalid"
	}
}

// SuccessResponse writes the OK envelope with the handling time in milliseconds
func SuccessResponse(c fiber.Ctx, startedAt time.Time, data any) error {
	delta := time.Since(startedAt).Milliseconds()
	return c.Status(fiber.StatusOK).JSON(dto.APIResponse{
		Status:    dto.StatusOK,
		Data:      data,
		DeltaUsed: &delta,
	})
}

// ErrorResponse writes the FATAL envelope with the given status code
func ErrorResponse(c fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Status:  dto.StatusFatal,
		Message: message,
	})
}

// ValidationErrorResponse writes the 400 envelope with a field-to-message
// issues map
func ValidationErrorResponse(c fiber.Ctx, err error) error {
	issues := map[string]string{}
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range validationErrors {
			issues[fieldErr.Field()] = getValidationErrorMessage(fieldErr)
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.APIResponse{
		Status:  dto.StatusFatal,
		Message: "Bad Request",
		Issues:  issues,
	})
}

// InternalErrorResponse logs the real error server-side and writes the
// generic 500 envelope. The detail never reaches the client.
func InternalErrorResponse(c fiber.Ctx, endpoint string, err error) error {
	log.Printf("%s failed: %v", endpoint, err)
	return ErrorResponse(c, fiber.StatusInternalServerError, "Internal Server Error")
}

// BusinessErrorResponse translates a flow error into the envelope: not-found
// sentinels map to 404, other business errors surface their message with 400,
// anything else is a 500 with the detail logged only.
func BusinessErrorResponse(c fiber.Ctx, endpoint string, err error) error {
	if businessflow.IsNotFound(err) {
		if be, ok := err.(*businessflow.BusinessError); ok {
			return ErrorResponse(c, fiber.StatusNotFound, be.Message)
		}
		return ErrorResponse(c, fiber.StatusNotFound, "Not found")
	}
	if businessflow.IsEmailAlreadyExists(err) {
		return ErrorResponse(c, fiber.StatusConflict, "Email already exists")
	}
	if businessflow.IsIndustryParentCycle(err) {
		return ErrorResponse(c, fiber.StatusBadRequest, "Industry type parent chain forms a cycle")
	}
	if businessflow.IsResetTokenExpired(err) {
		return ErrorResponse(c, fiber.StatusBadRequest, "Password reset token has expired")
	}
	if businessflow.IsResetTokenInvalid(err) {
		return ErrorResponse(c, fiber.StatusBadRequest, "Password reset token is invalid")
	}
	return InternalErrorResponse(c, endpoint, err)
}

// createRequestContext creates a context with request-scoped values for observability and timeout
func createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

// createRequestContextWithTimeout creates a context with custom timeout and request-scoped values
func createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	ctx = context.WithValue(ctx, businessflow.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, "user_agent", c.Get("User-Agent"))
	ctx = context.WithValue(ctx, "ip_address", c.IP())
	ctx = context.WithValue(ctx, "endpoint", endpoint)
	ctx = context.WithValue(ctx, "cancel_func", cancel)

	return ctx
}

// clientMetadata collects the client information flows stamp into audit rows
func clientMetadata(c fiber.Ctx) *businessflow.ClientMetadata {
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	if requestID := c.Get("X-Request-ID"); requestID != "" {
		metadata.SetRequestID(requestID)
	}
	return metadata
}

// parseListParams reads the listing query string: search, page, all, orderBy,
// sortOrder plus any number of filters[name]=value pairs (repeatable).
// Page stays a string here: non-numeric input means "no pagination".
func parseListParams(c fiber.Ctx) *dto.ListParams {
	params := &dto.ListParams{
		Search:    c.Query("search"),
		Page:      c.Query("page"),
		All:       strings.EqualFold(c.Query("all"), "true"),
		OrderBy:   c.Query("orderBy"),
		SortOrder: c.Query("sortOrder"),
		Filters:   map[string][]string{},
	}

	c.RequestCtx().QueryArgs().VisitAll(func(key, value []byte) {
		name := string(key)
		if !strings.HasPrefix(name, "filters[") || !strings.HasSuffix(name, "]") {
			return
		}
		filter := name[len("filters[") : len(name)-1]
		if filter == "" || len(value) == 0 {
			return
		}
		params.Filters[filter] = append(params.Filters[filter], string(value))
	})

	return params
}
