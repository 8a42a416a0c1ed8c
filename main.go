// Package main provides the main entry point for the OrgDesk directory administration service
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/orgdesk/orgdesk/app/handlers"
	"github.com/orgdesk/orgdesk/app/middleware"
	"github.com/orgdesk/orgdesk/app/router"
	"github.com/orgdesk/orgdesk/app/services"
	businessflow "github.com/orgdesk/orgdesk/business_flow"
	"github.com/orgdesk/orgdesk/config"
	_ "github.com/orgdesk/orgdesk/docs"
	"github.com/orgdesk/orgdesk/repository"
	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Application represents the main application structure
type Application struct {
	router    *router.FiberRouter
	config    *config.Config
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	log.Println("Starting OrgDesk application...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.Logging)

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)

		if err := app.server.Listen(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-sigChan
	log.Println("Shutting down gracefully...")

	// Stop background workers
	for _, fn := range app.stopFuncs {
		fn()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// setupLogging routes the standard logger to stdout, a rotated file, or both
func setupLogging(cfg config.LoggingConfig) {
	if cfg.Output == "stdout" || cfg.FilePath == "" {
		return
	}

	rotated := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	switch cfg.Output {
	case "file":
		log.SetOutput(rotated)
	case "both":
		log.SetOutput(io.MultiWriter(os.Stdout, rotated))
	}
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// initializeCache initializes the Redis client and verifies connectivity
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled || cfg.Provider != "redis" {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	// Override DB if provided in config
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established to %s (db=%d)", cfg.RedisURL, cfg.RedisDB)
	return rc, nil
}

// startCacheHealthMonitor starts a background goroutine that periodically pings Redis
// to detect connectivity issues. The returned cancel function stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Printf("Redis healthcheck failed: %v", err)
				}
				c()
			}
		}
	}()
	return cancel
}

// startSessionCleanup starts a background goroutine that deactivates expired
// sessions on a fixed interval. The returned cancel function stops it.
func startSessionCleanup(parent context.Context, sessionRepo repository.UserSessionRepository, interval time.Duration) func() {
	cleanupCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-cleanupCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 30*time.Second)
				if cleaned, err := sessionRepo.CleanupExpiredSessions(ctx); err != nil {
					log.Printf("Session cleanup failed: %v", err)
				} else if cleaned > 0 {
					log.Printf("Session cleanup deactivated %d expired sessions", cleaned)
				}
				c()
			}
		}
	}()
	return cancel
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.Config) (*Application, error) {
	var stopFuncs []func()

	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}

	var sessionCache services.SessionCache
	if rc != nil {
		sessionCache = services.NewRedisSessionCache(rc, cfg.Cache.RedisPrefix)
		cancel := startCacheHealthMonitor(context.Background(), rc, cfg.Cache.CleanupInterval)
		stopFuncs = append(stopFuncs, cancel)
	} else {
		sessionCache = services.NewNoopSessionCache()
	}

	// Initialize repositories
	orgRepo := repository.NewOrganizationRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	userRepo := repository.NewUserRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	phoneRepo := repository.NewPhoneNumberRepository(db)
	orgTypeRepo := repository.NewOrganizationTypeRepository(db)
	industryRepo := repository.NewIndustryTypeRepository(db)
	countryRepo := repository.NewCountryRepository(db)
	stateRepo := repository.NewCountryStateRepository(db)
	cityRepo := repository.NewCityRepository(db)
	phoneTypeRepo := repository.NewPhoneNumberTypeRepository(db)
	addressTypeRepo := repository.NewAddressTypeRepository(db)
	sessionRepo := repository.NewUserSessionRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	stopSessionCleanup := startSessionCleanup(context.Background(), sessionRepo, cfg.Security.SessionCleanupInterval)
	stopFuncs = append(stopFuncs, stopSessionCleanup)

	// Initialize services
	captchaSvc, err := services.NewCaptchaServiceRotate(2*time.Minute, 15, 300)
	if err != nil {
		return nil, err
	}

	tokenService, err := services.NewResetTokenService(
		cfg.ResetToken.TokenTTL,
		cfg.ResetToken.Issuer,
		cfg.ResetToken.Audience,
		cfg.ResetToken.UseRSAKeys,
		cfg.ResetToken.PrivateKey,
		cfg.ResetToken.PublicKey,
		cfg.ResetToken.SecretKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize reset token service: %w", err)
	}

	log.Printf("Reset token service initialized with issuer: %s, audience: %s", cfg.ResetToken.Issuer, cfg.ResetToken.Audience)

	// Initialize flows
	authFlow := businessflow.NewAuthFlow(
		userRepo,
		sessionRepo,
		auditRepo,
		tokenService,
		captchaSvc,
		sessionCache,
		db,
	)

	orgFlow := businessflow.NewOrganizationFlow(
		orgRepo,
		branchRepo,
		addressRepo,
		phoneRepo,
		orgTypeRepo,
		industryRepo,
		auditRepo,
		db,
	)

	branchFlow := businessflow.NewBranchFlow(
		branchRepo,
		orgRepo,
		addressRepo,
		phoneRepo,
		industryRepo,
		auditRepo,
		db,
	)

	userFlow := businessflow.NewUserFlow(
		userRepo,
		sessionRepo,
		auditRepo,
		cfg.Security.BcryptCost,
		db,
	)

	lookupFlow := businessflow.NewLookupFlow(
		orgTypeRepo,
		industryRepo,
		countryRepo,
		stateRepo,
		cityRepo,
		phoneTypeRepo,
		addressTypeRepo,
		auditRepo,
		db,
	)

	filterOptionsFlow := businessflow.NewFilterOptionsFlow(
		orgRepo,
		branchRepo,
		userRepo,
		orgTypeRepo,
		industryRepo,
	)

	// Initialize handlers and middleware
	sessionMiddleware := middleware.NewSessionMiddleware(sessionRepo, sessionCache)

	h := router.Handlers{
		Auth:          handlers.NewAuthHandler(authFlow, captchaSvc),
		Organizations: handlers.NewOrganizationHandler(orgFlow),
		Branches:      handlers.NewBranchHandler(branchFlow),
		Users:         handlers.NewUserHandler(userFlow),
		Lookups:       handlers.NewLookupHandler(lookupFlow),
		FilterOptions: handlers.NewFilterOptionsHandler(filterOptionsFlow),
	}

	appRouter := router.NewFiberRouter(cfg, h, sessionMiddleware)

	fiberRouter := appRouter.(*router.FiberRouter)
	application := &Application{
		router:    fiberRouter,
		config:    cfg,
		server:    fiberRouter.GetApp(),
		stopFuncs: stopFuncs,
	}

	return application, nil
}
