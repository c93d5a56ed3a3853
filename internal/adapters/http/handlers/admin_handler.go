package handlers

import (
	"errors"
	"strconv"

	"novacapital-credit/internal/adapters/persistence/models"
	"novacapital-credit/internal/adapters/persistence/repositories"
	"novacapital-credit/internal/core/domain"
	"novacapital-credit/internal/core/services"
	"novacapital-credit/internal/pkg/flash"
	"novacapital-credit/internal/pkg/pagination"
	"novacapital-credit/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the privileged management views and mutations
type AdminHandler struct {
	dashboardService *services.DashboardService
	loanService      *services.LoanService
	advisorService   *services.AdvisorService
	authService      *services.AuthService
	customerRepo     repositories.CustomerRepository
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	dashboardService *services.DashboardService,
	loanService *services.LoanService,
	advisorService *services.AdvisorService,
	authService *services.AuthService,
	customerRepo repositories.CustomerRepository,
) *AdminHandler {
	return &AdminHandler{
		dashboardService: dashboardService,
		loanService:      loanService,
		advisorService:   advisorService,
		authService:      authService,
		customerRepo:     customerRepo,
	}
}

// Dashboard shows the admin dashboard aggregates
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetStats(c.Context())
	if err != nil {
		flash.Error(c, "Failed to load dashboard statistics")
		return c.Redirect("/", fiber.StatusFound)
	}

	return response.Success(c, "", fiber.Map{
		"page":  "admin_dashboard",
		"stats": stats,
		"flash": flash.Pop(c),
	})
}

// Customers lists customer profiles with search/status/advisor filters
func (h *AdminHandler) Customers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := &repositories.CustomerFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}
	if advisor := c.Query("advisor"); advisor != "" {
		if id, err := strconv.Atoi(advisor); err == nil && id > 0 {
			advisorID := uint(id)
			filter.AdvisorID = &advisorID
		}
	}

	customers, total, err := h.customerRepo.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		flash.Error(c, "Failed to load customers")
		return c.Redirect("/admin/dashboard", fiber.StatusFound)
	}

	return response.Success(c, "", fiber.Map{
		"page":      "admin_customers",
		"customers": customers,
		"meta":      pagination.GetMeta(params, total),
		"flash":     flash.Pop(c),
	})
}

// Applications lists loan applications, newest first, with filters
func (h *AdminHandler) Applications(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	out, err := h.loanService.List(c.Context(), &services.ListInput{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   params.Page,
		Limit:  params.Limit,
	})
	if err != nil {
		flash.Error(c, "Failed to load applications")
		return c.Redirect("/admin/dashboard", fiber.StatusFound)
	}

	return response.Success(c, "", fiber.Map{
		"page":         "admin_applications",
		"applications": out,
		"flash":        flash.Pop(c),
	})
}

// Advisors lists advisor accounts with their workloads
func (h *AdminHandler) Advisors(c *fiber.Ctx) error {
	advisors, err := h.advisorService.ListAdvisors(c.Context())
	if err != nil {
		flash.Error(c, "Failed to load advisors")
		return c.Redirect("/admin/dashboard", fiber.StatusFound)
	}

	return response.Success(c, "", fiber.Map{
		"page":     "admin_advisors",
		"advisors": advisors,
		"flash":    flash.Pop(c),
	})
}

// Reports shows per-status loan totals next to the dashboard aggregates
func (h *AdminHandler) Reports(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetStats(c.Context())
	if err != nil {
		flash.Error(c, "Failed to load reports")
		return c.Redirect("/admin/dashboard", fiber.StatusFound)
	}

	report, err := h.dashboardService.GetLoanReport(c.Context())
	if err != nil {
		flash.Error(c, "Failed to load reports")
		return c.Redirect("/admin/dashboard", fiber.StatusFound)
	}

	return response.Success(c, "", fiber.Map{
		"page":      "admin_reports",
		"stats":     stats,
		"by_status": report,
		"flash":     flash.Pop(c),
	})
}

// AssignAdvisorRequest represents the assignment form
type AssignAdvisorRequest struct {
	CustomerID uint   `json:"customer_id" form:"customer_id"`
	AdvisorID  uint   `json:"advisor_id" form:"advisor_id"`
	Notes      string `json:"notes" form:"notes"`
}

// AssignAdvisor assigns an advisor to a customer
func (h *AdminHandler) AssignAdvisor(c *fiber.Ctx) error {
	var req AssignAdvisorRequest
	if err := c.BodyParser(&req); err != nil || req.CustomerID == 0 || req.AdvisorID == 0 {
		return response.BadRequest(c, "Customer and advisor are required")
	}

	err := h.advisorService.Assign(c.Context(), req.CustomerID, req.AdvisorID, req.Notes)
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		flash.Error(c, "Customer not found")
	case errors.Is(err, domain.ErrAdvisorNotFound):
		flash.Error(c, "Advisor not found or inactive")
	case err != nil:
		flash.Error(c, "Failed to assign advisor")
	default:
		flash.Success(c, "Advisor assigned successfully")
	}

	return c.Redirect("/admin/customers", fiber.StatusFound)
}

// SendNotificationRequest represents the staff notification form
type SendNotificationRequest struct {
	CustomerID uint   `json:"customer_id" form:"customer_id"`
	Title      string `json:"title" form:"title"`
	Message    string `json:"message" form:"message"`
}

// SendNotification sends a message to a customer's account
func (h *AdminHandler) SendNotification(c *fiber.Ctx) error {
	var req SendNotificationRequest
	if err := c.BodyParser(&req); err != nil || req.CustomerID == 0 || req.Title == "" {
		return response.BadRequest(c, "Customer and title are required")
	}

	err := h.advisorService.Notify(c.Context(), req.CustomerID, req.Title, req.Message)
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		flash.Error(c, "Customer not found")
	case errors.Is(err, domain.ErrCustomerNotLinked):
		flash.Error(c, "Customer has no linked account to notify")
	case err != nil:
		flash.Error(c, "Failed to send notification")
	default:
		flash.Success(c, "Notification sent")
	}

	return c.Redirect("/admin/customers", fiber.StatusFound)
}

// CreateAdvisorRequest represents the advisor creation form
type CreateAdvisorRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// CreateAdvisor creates a new advisor account
func (h *AdminHandler) CreateAdvisor(c *fiber.Ctx) error {
	var req CreateAdvisorRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" || req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "Name, email and password are required")
	}

	_, err := h.authService.CreateAdvisor(c.Context(), &services.CreateAdvisorInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		flash.Error(c, "Email is already registered")
	case errors.Is(err, domain.ErrWeakPassword):
		flash.Error(c, "Password must be at least 8 characters")
	case err != nil:
		flash.Error(c, "Failed to create advisor")
	default:
		flash.Success(c, "Advisor created successfully")
	}

	return c.Redirect("/admin/advisors", fiber.StatusFound)
}

// ToggleAdvisor flips an advisor account's active flag
func (h *AdminHandler) ToggleAdvisor(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid advisor id")
	}

	account, err := h.authService.GetAccountByID(c.Context(), uint(id))
	if err != nil {
		flash.Error(c, "Advisor not found")
		return c.Redirect("/admin/advisors", fiber.StatusFound)
	}

	// Only advisor accounts can be toggled here; admins and clients are
	// out of reach of this endpoint
	if account.Role != models.RoleAdvisor {
		flash.Error(c, "Advisor not found")
		return c.Redirect("/admin/advisors", fiber.StatusFound)
	}

	if err := h.authService.SetActive(c.Context(), account.ID, !account.IsActive); err != nil {
		flash.Error(c, "Failed to update advisor")
	} else if account.IsActive {
		flash.Success(c, "Advisor deactivated")
	} else {
		flash.Success(c, "Advisor activated")
	}

	return c.Redirect("/admin/advisors", fiber.StatusFound)
}
