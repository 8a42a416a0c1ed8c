// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/orgdesk/orgdesk/app/dto"
	"github.com/orgdesk/orgdesk/app/handlers"
	"github.com/orgdesk/orgdesk/app/middleware"
	"github.com/orgdesk/orgdesk/config"
	_ "github.com/orgdesk/orgdesk/docs"
	"github.com/orgdesk/orgdesk/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// Handlers bundles the endpoint handlers the router wires up
type Handlers struct {
	Auth          *handlers.AuthHandler
	Organizations *handlers.OrganizationHandler
	Branches      *handlers.BranchHandler
	Users         *handlers.UserHandler
	Lookups       *handlers.LookupHandler
	FilterOptions *handlers.FilterOptionsHandler
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app      *fiber.App
	cfg      *config.Config
	h        Handlers
	sessions *middleware.SessionMiddleware
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(cfg *config.Config, h Handlers, sessions *middleware.SessionMiddleware) Router {
	app := fiber.New(fiber.Config{
		AppName:      "OrgDesk API",
		ServerHeader: "OrgDesk",
		ErrorHandler: errorHandler,
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:      app,
		cfg:      cfg,
		h:        h,
		sessions: sessions,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	log.Println("Setting up routes...")

	r.setupMiddleware()

	api := r.app.Group("/api")

	// Health check route (no rate limiting)
	api.Get("/health", r.healthCheck)

	if r.cfg.Metrics.Enabled {
		r.app.Get(r.cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.Handler()))
	}

	// Swagger JSON (development only)
	if os.Getenv("APP_ENV") == "development" || os.Getenv("APP_ENV") == "local" {
		api.Get("/swagger.json", r.serveSwaggerJSON)
		log.Println("API documentation enabled for development")
	}

	api.Use(limiter.New(limiter.Config{
		Max:        2000,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
				Status:  dto.StatusFatal,
				Message: "Too many requests. Please try again later.",
			})
		},
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/health"
		},
	}))

	// Auth routes with stricter rate limiting. The status probe runs under
	// OptionalAuth so it can answer for anonymous callers too.
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
				Status:  dto.StatusFatal,
				Message: "Too many requests. Please try again later.",
			})
		},
	}))

	auth.Get("/authenticated-status", r.h.Auth.AuthStatus, r.sessions.OptionalAuth())
	auth.Post("/sign-in", r.h.Auth.SignIn)
	auth.Add([]string{"PURGE"}, "/logout", r.h.Auth.Logout)
	auth.Post("/request-password-reset", r.h.Auth.RequestPasswordReset)
	auth.Post("/reset-password", r.h.Auth.ResetPassword)
	auth.Get("/captcha", r.h.Auth.Captcha)

	// Everything below requires a live session
	authenticated := r.sessions.Authenticate()

	orgs := api.Group("/organizations", authenticated)
	orgs.Get("/", r.h.Organizations.List)
	orgs.Get("/list", r.h.Organizations.List)
	orgs.Get("/export", r.h.Organizations.Export)
	orgs.Post("/create", r.h.Organizations.Create)
	orgs.Post("/update", r.h.Organizations.Update)
	orgs.Post("/delete", r.h.Organizations.Delete)
	orgs.Post("/bulk-delete", r.h.Organizations.BulkDelete)
	orgs.Get("/:organizationId", r.h.Organizations.Get)

	branches := api.Group("/branches", authenticated)
	branches.Get("/", r.h.Branches.List)
	branches.Get("/list", r.h.Branches.List)
	branches.Post("/create", r.h.Branches.Create)
	branches.Post("/update", r.h.Branches.Update)
	branches.Post("/delete", r.h.Branches.Delete)
	branches.Post("/bulk-delete", r.h.Branches.BulkDelete)
	branches.Get("/:branchId", r.h.Branches.Get)

	users := api.Group("/users", authenticated)
	users.Get("/", r.h.Users.List)
	users.Get("/list", r.h.Users.List)
	users.Post("/create", r.h.Users.Create)
	users.Post("/update", r.h.Users.Update)
	users.Post("/delete", r.h.Users.Delete)
	users.Post("/bulk-delete", r.h.Users.BulkDelete)
	users.Get("/:userId", r.h.Users.Get)

	lookup := api.Group("/lookup", authenticated)
	registerLookupRoutes(lookup.Group("/organization-types"),
		r.h.Lookups.ListOrganizationTypes, r.h.Lookups.GetOrganizationType,
		r.h.Lookups.CreateOrganizationType, r.h.Lookups.UpdateOrganizationType)
	registerLookupRoutes(lookup.Group("/industry-types"),
		r.h.Lookups.ListIndustryTypes, r.h.Lookups.GetIndustryType,
		r.h.Lookups.CreateIndustryType, r.h.Lookups.UpdateIndustryType)
	registerLookupRoutes(lookup.Group("/countries"),
		r.h.Lookups.ListCountries, r.h.Lookups.GetCountry,
		r.h.Lookups.CreateCountry, r.h.Lookups.UpdateCountry)
	registerLookupRoutes(lookup.Group("/states"),
		r.h.Lookups.ListCountryStates, r.h.Lookups.GetCountryState,
		r.h.Lookups.CreateCountryState, r.h.Lookups.UpdateCountryState)
	registerLookupRoutes(lookup.Group("/cities"),
		r.h.Lookups.ListCities, r.h.Lookups.GetCity,
		r.h.Lookups.CreateCity, r.h.Lookups.UpdateCity)
	registerLookupRoutes(lookup.Group("/phone-number-types"),
		r.h.Lookups.ListPhoneNumberTypes, r.h.Lookups.GetPhoneNumberType,
		r.h.Lookups.CreatePhoneNumberType, r.h.Lookups.UpdatePhoneNumberType)
	registerLookupRoutes(lookup.Group("/address-types"),
		r.h.Lookups.ListAddressTypes, r.h.Lookups.GetAddressType,
		r.h.Lookups.CreateAddressType, r.h.Lookups.UpdateAddressType)

	filters := api.Group("/filters", authenticated)
	filters.Get("/organizations", r.h.FilterOptions.Organizations)
	filters.Get("/branches", r.h.FilterOptions.Branches)
	filters.Get("/users", r.h.FilterOptions.Users)

	// Not found handler
	r.app.Use(r.notFoundHandler)

	log.Println("Routes configured successfully")
}

// registerLookupRoutes wires the uniform list/get/create/update quartet a
// lookup table exposes. List answers on the group root, /list stays as an
// alias for older clients.
func registerLookupRoutes(g fiber.Router, list, get, create, update fiber.Handler) {
	g.Get("/", list)
	g.Get("/list", list)
	g.Post("/create", create)
	g.Post("/update", update)
	g.Get("/:id", get)
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return generateRequestID()
		},
	}))

	// Security headers middleware
	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000, // 1 year
		HSTSExcludeSubdomains: false,
		ContentSecurityPolicy: "default-src 'self'; frame-ancestors 'none';",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		XDNSPrefetchControl:   "off",
		XDownloadOptions:      "noopen",
		XPermittedCrossDomain: "none",
	}))

	// CORS middleware. Credentials must be allowed because the session
	// rides in a cookie.
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: r.cfg.Server.AllowedOrigins,
		AllowMethods: []string{
			"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS", "PURGE",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"X-Requested-With",
			"X-Request-ID",
			"Cache-Control",
		},
		ExposeHeaders: []string{
			"X-Request-ID",
			"Content-Disposition",
		},
		AllowCredentials: true,
		MaxAge:           utils.CORSMaxAge,
	}))

	// Compression middleware for performance
	r.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	if r.cfg.Metrics.Enabled {
		r.app.Use(middleware.Metrics())
	}

	// Structured request logging
	r.app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","pid":"${pid}","request_id":"${locals:requestid}","level":"info","method":"${method}","path":"${path}","protocol":"${protocol}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}","bytes_in":${bytesReceived},"bytes_out":${bytesSent},"referer":"${referer}"}` + "\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/health"
		},
	}))

	// Recovery middleware with custom error handling
	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			log.Printf(`{"time":"%s","level":"error","request_id":"%s","event":"panic","error":"%v","path":"%s","method":"%s","ip":"%s"}`,
				utils.UTCNow().Format(time.RFC3339),
				c.Locals("requestid"),
				e,
				c.Path(),
				c.Method(),
				c.IP(),
			)
		},
	}))
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	log.Printf("Starting server on %s", address)
	return r.app.Listen(address)
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// Health check endpoint
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(dto.APIResponse{
		Status: dto.StatusOK,
		Data: fiber.Map{
			"status":    "ok",
			"timestamp": utils.UTCNow().Unix(),
			"version":   "1.0.0",
			"service":   "orgdesk-api",
		},
	})
}

// Serve Swagger JSON specification
func (r *FiberRouter) serveSwaggerJSON(c fiber.Ctx) error {
	swaggerData, err := os.ReadFile("docs/swagger.json")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.APIResponse{
			Status:  dto.StatusFatal,
			Message: "Failed to load Swagger documentation",
		})
	}

	c.Set("Content-Type", "application/json")
	return c.Send(swaggerData)
}

// Not found handler
func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
		Status:  dto.StatusFatal,
		Message: "The requested resource was not found",
	})
}

// Global error handler
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	log.Printf("Error %d: %v", code, err)

	return c.Status(code).JSON(dto.APIResponse{
		Status:  dto.StatusFatal,
		Message: "Internal Server Error",
	})
}

// generateRequestID creates a unique request ID
func generateRequestID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
