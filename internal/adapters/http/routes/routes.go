package routes

import (
	"time"

	"novacapital-credit/internal/adapters/http/handlers"
	"novacapital-credit/internal/adapters/http/middleware"
	"novacapital-credit/internal/adapters/persistence/repositories"
	"novacapital-credit/internal/config"
	"novacapital-credit/internal/core/services"
	"novacapital-credit/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	accountRepo := repositories.NewAccountRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	assignmentRepo := repositories.NewAssignmentRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	// Initialize services
	authService := services.NewAuthService(db, accountRepo, customerRepo)
	loanService := services.NewLoanService(db, loanRepo, customerRepo)
	advisorService := services.NewAdvisorService(db, accountRepo, customerRepo, assignmentRepo, notificationRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	publicHandler := handlers.NewPublicHandler()
	authHandler := handlers.NewAuthHandler(authService, advisorService, cfg)
	loanHandler := handlers.NewLoanHandler(loanService, authService)
	adminHandler := handlers.NewAdminHandler(dashboardService, loanService, advisorService, authService, customerRepo)

	// Public informational pages
	app.Get("/", middleware.OptionalSession(cfg), middleware.PublicCache(5*time.Minute), publicHandler.Index)
	app.Get("/contact", middleware.PublicCache(5*time.Minute), publicHandler.Contact)
	app.Get("/requirements", middleware.PublicCache(5*time.Minute), publicHandler.Requirements)
	app.Get("/health", publicHandler.HealthCheck)

	// Session status probe
	app.Get("/api/session-status", middleware.OptionalSession(cfg), middleware.NoStore(), authHandler.SessionStatus)

	// Authentication
	app.Get("/login", middleware.OptionalSession(cfg), authHandler.LoginPage)
	app.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	app.Get("/register", middleware.OptionalSession(cfg), authHandler.RegisterPage)
	app.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	app.Get("/logout", authHandler.Logout)

	// Loan application (authenticated)
	applicationRoutes := app.Group("/application")
	applicationRoutes.Use(middleware.LoginRequired(cfg), middleware.NoStore())
	applicationRoutes.Get("/", loanHandler.ApplicationForm)
	applicationRoutes.Post("/", loanHandler.SubmitApplication)
	applicationRoutes.Get("/success", loanHandler.ApplicationSuccess)

	// Account-scoped API (authenticated)
	apiRoutes := app.Group("/api")
	apiRoutes.Use(middleware.LoginRequired(cfg), middleware.NoStore())
	apiRoutes.Get("/my-applications", loanHandler.MyApplications)
	apiRoutes.Get("/notifications", authHandler.Notifications)
	apiRoutes.Post("/notifications/:id/read", authHandler.MarkNotificationRead)

	// Administration (privileged)
	adminRoutes := app.Group("/admin")
	adminRoutes.Use(middleware.LoginRequired(cfg), middleware.StaffOnly(), middleware.NoStore())
	adminRoutes.Get("/dashboard", adminHandler.Dashboard)
	adminRoutes.Get("/customers", adminHandler.Customers)
	adminRoutes.Get("/applications", adminHandler.Applications)
	adminRoutes.Get("/advisors", adminHandler.Advisors)
	adminRoutes.Get("/reports", adminHandler.Reports)
	adminRoutes.Post("/assign-advisor", adminHandler.AssignAdvisor)
	adminRoutes.Post("/send-notification", adminHandler.SendNotification)
	adminRoutes.Post("/create-advisor", adminHandler.CreateAdvisor)
	adminRoutes.Post("/toggle-advisor/:id", adminHandler.ToggleAdvisor)

	// Fallback 404
	app.Use(func(c *fiber.Ctx) error {
		return response.NotFound(c, "Page not found")
	})
}
