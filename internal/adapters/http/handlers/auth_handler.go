package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"novacapital-credit/internal/adapters/http/middleware"
	"novacapital-credit/internal/adapters/persistence/models"
	"novacapital-credit/internal/config"
	"novacapital-credit/internal/core/domain"
	"novacapital-credit/internal/core/services"
	"novacapital-credit/internal/pkg/flash"
	"novacapital-credit/internal/pkg/response"
	"novacapital-credit/internal/pkg/session"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication and account-session endpoints
type AuthHandler struct {
	authService    *services.AuthService
	advisorService *services.AdvisorService
	cfg            *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, advisorService *services.AdvisorService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		advisorService: advisorService,
		cfg:            cfg,
	}
}

// LoginRequest represents login form fields
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Remember string `json:"remember" form:"remember"`
}

// RegisterRequest represents registration form fields
type RegisterRequest struct {
	FirstName       string `json:"first_name" form:"first_name"`
	LastName        string `json:"last_name" form:"last_name"`
	Email           string `json:"email" form:"email"`
	DocumentType    string `json:"document_type" form:"document_type"`
	DocumentNumber  string `json:"document_number" form:"document_number"`
	Phone           string `json:"phone" form:"phone"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

// SessionStatus reports whether the caller holds an authenticated session
func (h *AuthHandler) SessionStatus(c *fiber.Ctx) error {
	accountID, ok := c.Locals("accountID").(uint)
	if !ok {
		return c.JSON(fiber.Map{"authenticated": false})
	}

	return c.JSON(fiber.Map{
		"authenticated": true,
		"account_id":    accountID,
		"name":          c.Locals("accountName"),
		"email":         c.Locals("accountEmail"),
		"role":          c.Locals("role"),
	})
}

// LoginPage shows the login form, or forwards an already-authenticated
// visitor to where they were headed
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	if _, ok := c.Locals("accountID").(uint); ok {
		return h.redirectAfterLogin(c, c.Locals("role").(string))
	}

	return response.Success(c, "", fiber.Map{
		"page":  "login",
		"flash": flash.Pop(c),
	})
}

// Login validates credentials and establishes the session. All credential
// failures produce one identical message so responses cannot be used to
// probe which emails are registered.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "Email and password are required")
	}

	account, err := h.authService.Authenticate(c.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound),
			errors.Is(err, domain.ErrAccountInactive),
			errors.Is(err, domain.ErrBadPassword):
			return response.Unauthorized(c, "Invalid email or password")
		default:
			return response.InternalServerError(c, "Failed to sign in")
		}
	}

	permanent := req.Remember != ""
	if err := h.setSessionCookie(c, account, permanent); err != nil {
		return response.InternalServerError(c, "Failed to sign in")
	}

	return h.redirectAfterLogin(c, account.Role)
}

// RegisterPage shows the registration form
func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	if _, ok := c.Locals("accountID").(uint); ok {
		return c.Redirect("/", fiber.StatusFound)
	}

	return response.Success(c, "", fiber.Map{
		"page":  "register",
		"flash": flash.Pop(c),
	})
}

// Register creates the Account + Customer pair and signs the visitor in
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.FirstName == "" || req.LastName == "" || req.Email == "" ||
		req.DocumentType == "" || req.DocumentNumber == "" || req.Phone == "" ||
		req.Password == "" || req.ConfirmPassword == "" {
		return response.BadRequest(c, "All fields are required")
	}
	if req.Password != req.ConfirmPassword {
		return response.BadRequest(c, "Passwords do not match")
	}
	if len(req.Password) < 8 {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}

	input := &services.RegisterInput{
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          strings.TrimSpace(req.Email),
		DocumentType:   req.DocumentType,
		DocumentNumber: strings.TrimSpace(req.DocumentNumber),
		Phone:          strings.TrimSpace(req.Phone),
		Password:       req.Password,
	}

	account, err := h.authService.Register(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			return response.Conflict(c, "Email is already registered")
		case errors.Is(err, domain.ErrDuplicateDocument):
			return response.Conflict(c, "Document number is already registered")
		case errors.Is(err, domain.ErrWeakPassword):
			return response.BadRequest(c, "Password must be at least 8 characters")
		default:
			return response.InternalServerError(c, "Failed to register")
		}
	}

	// Auto-authenticate after registration
	if err := h.setSessionCookie(c, account, false); err != nil {
		return c.Redirect("/login", fiber.StatusFound)
	}

	if next := middleware.PopNextURL(c); next != "" {
		return c.Redirect(next, fiber.StatusFound)
	}
	return c.Redirect("/application", fiber.StatusFound)
}

// Logout clears the session and returns to the landing page
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearSessionCookie(c)
	flash.Success(c, "Session closed successfully")
	return c.Redirect("/", fiber.StatusFound)
}

// Notifications lists the session account's notifications
func (h *AuthHandler) Notifications(c *fiber.Ctx) error {
	accountID := c.Locals("accountID").(uint)

	notifications, err := h.advisorService.Notifications(c.Context(), accountID, 50)
	if err != nil {
		return response.InternalServerError(c, "Failed to load notifications")
	}

	unread, err := h.advisorService.UnreadCount(c.Context(), accountID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load notifications")
	}

	return response.Success(c, "", fiber.Map{
		"notifications": notifications,
		"unread":        unread,
	})
}

// MarkNotificationRead marks one of the account's notifications as read
func (h *AuthHandler) MarkNotificationRead(c *fiber.Ctx) error {
	accountID := c.Locals("accountID").(uint)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid notification id")
	}

	if err := h.advisorService.MarkNotificationRead(c.Context(), uint(id), accountID); err != nil {
		return response.InternalServerError(c, "Failed to update notification")
	}
	return response.Success(c, "Notification marked as read", nil)
}

// redirectAfterLogin honors the saved next URL first, then the role default
func (h *AuthHandler) redirectAfterLogin(c *fiber.Ctx, role string) error {
	if next := middleware.PopNextURL(c); next != "" {
		return c.Redirect(next, fiber.StatusFound)
	}

	if role == models.RoleAdmin || role == models.RoleAdvisor {
		return c.Redirect("/admin/dashboard", fiber.StatusFound)
	}
	return c.Redirect("/application", fiber.StatusFound)
}

// setSessionCookie issues the signed session cookie
func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, account *models.Account, permanent bool) error {
	ttl := time.Duration(h.cfg.Session.LifetimeSeconds) * time.Second
	if permanent {
		ttl = time.Duration(h.cfg.Session.PermanentDays) * 24 * time.Hour
	}

	token, err := session.Generate(account.ID, account.Name, account.Email, account.Role, permanent, h.cfg.Session.Secret, ttl)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
	return nil
}

// clearSessionCookie expires the session cookie
func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}
