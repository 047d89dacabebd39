package routes

import (
	"time"

	"libradesk/internal/adapters/http/handlers"
	"libradesk/internal/adapters/http/middleware"
	"libradesk/internal/adapters/persistence/repositories"
	"libradesk/internal/config"
	"libradesk/internal/core/services"
	"libradesk/internal/pkg/clock"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	bookRepo := repositories.NewBookRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	fineRepo := repositories.NewFineRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize services
	clk := clock.Real{}
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo)
	bookService := services.NewBookService(bookRepo)
	lendingService := services.NewLendingService(uow, loanRepo, clk,
		cfg.Lending.LoanPeriodDays, cfg.Lending.FinePerDay)
	fineService := services.NewFineService(fineRepo, clk)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, userService)
	userHandler := handlers.NewUserHandler(userService)
	bookHandler := handlers.NewBookHandler(bookService)
	loanHandler := handlers.NewLoanHandler(lendingService)
	fineHandler := handlers.NewFineHandler(fineService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Book catalog routes (browse public, mutations Admin only)
	bookRoutes := apiV1.Group("/books")
	setupBookRoutes(bookRoutes, bookHandler, cfg)

	// User management routes
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	setupUserRoutes(userRoutes, userHandler)

	// Replay protection for loan/fine mutations when redis is configured
	idempotency := middleware.Idempotency(rdb, 24*time.Hour)

	// Loan routes (authenticated)
	loanRoutes := apiV1.Group("/loans")
	loanRoutes.Use(middleware.AuthMiddleware(cfg))
	loanRoutes.Use(middleware.NoCacheHeaders())
	setupLoanRoutes(loanRoutes, loanHandler, idempotency)

	// Fine routes (authenticated)
	fineRoutes := apiV1.Group("/fines")
	fineRoutes.Use(middleware.AuthMiddleware(cfg))
	fineRoutes.Use(middleware.NoCacheHeaders())
	setupFineRoutes(fineRoutes, fineHandler, idempotency)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (rate limited against brute force)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupBookRoutes configures book catalog routes
func setupBookRoutes(router fiber.Router, handler *handlers.BookHandler, cfg *config.Config) {
	// Public browse routes, cached briefly
	router.Get("/", middleware.CacheControl(5*time.Minute), handler.List)
	router.Get("/search", middleware.CacheControl(5*time.Minute), handler.Search)
	router.Get("/:id", middleware.CacheControl(5*time.Minute), handler.Get)

	// Catalog management (Admin only)
	adminRoutes := router.Group("")
	adminRoutes.Use(middleware.AuthMiddleware(cfg))
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.Post("/", handler.Create)
	adminRoutes.Put("/:id", handler.Update)
	adminRoutes.Delete("/:id", handler.Delete)
}

// setupUserRoutes configures user management routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	// Staff can look up individual members
	router.Get("/:id", middleware.StaffOnly(), handler.Get)

	// Admin only
	router.Get("/", middleware.AdminOnly(), handler.List)
	router.Patch("/:id/status", middleware.AdminOnly(), handler.SetStatus)
}

// setupLoanRoutes configures loan routes
func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler, idempotency fiber.Handler) {
	// Issue and return at the desk (Librarian/Admin only)
	router.Post("/issue", middleware.StaffOnly(), idempotency, handler.Issue)
	router.Post("/return", middleware.StaffOnly(), idempotency, handler.Return)

	// Staff see all active loans
	router.Get("/active", middleware.StaffOnly(), handler.ActiveLoans)

	// Members may only view their own loans (checked in the handler)
	router.Get("/user/:userId", handler.UserLoans)
}

// setupFineRoutes configures fine routes
func setupFineRoutes(router fiber.Router, handler *handlers.FineHandler, idempotency fiber.Handler) {
	// Any authenticated user can settle a fine
	router.Post("/pay", idempotency, handler.Pay)

	// Staff see every fine
	router.Get("/all", middleware.StaffOnly(), handler.AllFines)

	// Members may only view their own fines (checked in the handler)
	router.Get("/user/:userId", handler.UserFines)
}
