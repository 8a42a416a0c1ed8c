// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/orgdesk/orgdesk/app/dto"
	"github.com/orgdesk/orgdesk/app/services"
	businessflow "github.com/orgdesk/orgdesk/business_flow"
	"github.com/orgdesk/orgdesk/repository"
)

// SessionCookieName is the cookie carrying the session token
const SessionCookieName = "orgdesk_session"

// SessionMiddleware resolves the session cookie into the acting user.
// Lookups hit the redis cache first and fall back to the session table.
type SessionMiddleware struct {
	sessionRepo  repository.UserSessionRepository
	sessionCache services.SessionCache
}

// NewSessionMiddleware creates a new session authentication middleware
func NewSessionMiddleware(sessionRepo repository.UserSessionRepository, sessionCache services.SessionCache) *SessionMiddleware {
	return &SessionMiddleware{
		sessionRepo:  sessionRepo,
		sessionCache: sessionCache,
	}
}

// Authenticate rejects requests that do not carry a valid session cookie
func (m *SessionMiddleware) Authenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		token := c.Cookies(SessionCookieName)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Status:  dto.StatusFatal,
				Message: "Authentication required",
			})
		}

		session := m.resolve(token)
		if session == nil {
			// stale cookie, clear it so the client stops sending it
			c.ClearCookie(SessionCookieName)
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Status:  dto.StatusFatal,
				Message: "Session is invalid or has expired",
			})
		}

		c.Locals("session", session)

		// Store RequestID for audit logging
		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals("request_id", requestID)
		}

		return c.Next()
	}
}

// OptionalAuth resolves the session when the cookie is present but never
// rejects the request
func (m *SessionMiddleware) OptionalAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		if token := c.Cookies(SessionCookieName); token != "" {
			if session := m.resolve(token); session != nil {
				c.Locals("session", session)
			}
		}

		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals("request_id", requestID)
		}

		return c.Next()
	}
}

// resolve turns a cookie token into a Session, or nil when the token is
// unknown, inactive or expired
func (m *SessionMiddleware) resolve(token string) *businessflow.Session {
	ctx := context.Background()

	cached, err := m.sessionCache.Get(ctx, token)
	if err != nil {
		log.Printf("session cache get failed: %v", err)
	}
	if cached != nil && cached.IsValid() {
		return &businessflow.Session{
			SessionID: cached.ID,
			Token:     token,
			UserID:    cached.UserID,
			Email:     cached.UserEmail,
			Name:      cached.UserName,
		}
	}

	stored, err := m.sessionRepo.BySessionToken(ctx, token)
	if err != nil {
		log.Printf("session lookup failed: %v", err)
		return nil
	}
	if stored == nil || !stored.IsValid() {
		return nil
	}

	// refresh the cache so the next request skips the database
	if cacheErr := m.sessionCache.Set(ctx, stored); cacheErr != nil {
		log.Printf("session cache set failed: %v", cacheErr)
	}

	return &businessflow.Session{
		SessionID: stored.ID,
		Token:     token,
		UserID:    stored.UserID,
		Email:     stored.UserEmail,
		Name:      stored.UserName,
	}
}

// GetSessionFromContext returns the session resolved by the middleware
func GetSessionFromContext(c fiber.Ctx) (*businessflow.Session, bool) {
	session, ok := c.Locals("session").(*businessflow.Session)
	return session, ok && session != nil
}
