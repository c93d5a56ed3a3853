package routes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"novacapital-credit/internal/adapters/persistence/models"
	"novacapital-credit/internal/config"
	"novacapital-credit/internal/pkg/session"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))

	cfg := &config.Config{
		AppMode: "dev",
		Session: config.SessionConfig{
			Secret:          "test-secret",
			LifetimeSeconds: 3600,
			PermanentDays:   30,
		},
		Cookie: config.CookieConfig{SameSite: "Lax"},
	}

	app := fiber.New()
	Setup(app, db, cfg)
	return app, db
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func get(t *testing.T, app *fiber.App, path string, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func registerForm(email, document string) url.Values {
	return url.Values{
		"first_name":       {"Alice"},
		"last_name":        {"Mendoza"},
		"email":            {email},
		"document_type":    {"CC"},
		"document_number":  {document},
		"phone":            {"3001234567"},
		"password":         {"Password1!"},
		"confirm_password": {"Password1!"},
	}
}

// registerAccount signs up a customer through the form and returns the
// issued session cookie
func registerAccount(t *testing.T, app *fiber.App, email, document string) *http.Cookie {
	t.Helper()

	resp := postForm(t, app, "/register", registerForm(email, document))
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.Equal(t, "/application", resp.Header.Get(fiber.HeaderLocation))

	cookie := findCookie(resp, session.CookieName)
	require.NotNil(t, cookie, "registration must establish a session")
	return cookie
}

func TestProtectedRouteRedirectsToLogin(t *testing.T) {
	app, _ := newTestApp(t)

	resp := get(t, app, "/application")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation))

	// The requested URL is saved for after login
	next := findCookie(resp, "next_url")
	require.NotNil(t, next)
	assert.Equal(t, "/application", next.Value)
}

func TestRegisterAndSubmitApplication(t *testing.T) {
	app, _ := newTestApp(t)

	cookie := registerAccount(t, app, "alice@example.com", "10203040")

	// The form is reachable with the fresh session
	resp := get(t, app, "/application", cookie)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = postForm(t, app, "/application", url.Values{
		"requested_amount":    {"5000000"},
		"term_months":         {"24"},
		"monthly_installment": {"250000"},
		"city":                {"Bogota"},
	}, cookie)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	wantNumber := fmt.Sprintf("PRE%d00001", time.Now().Year())
	assert.Equal(t, "/application/success?number="+wantNumber, resp.Header.Get(fiber.HeaderLocation))

	resp = get(t, app, "/application/success?number="+wantNumber, cookie)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The application shows up under the account's own list
	resp = get(t, app, "/api/my-applications", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), wantNumber)
}

func TestNextURLRestoredAfterLogin(t *testing.T) {
	app, _ := newTestApp(t)

	registerAccount(t, app, "alice@example.com", "10203040")

	// Hitting a protected URL anonymously records it
	resp := get(t, app, "/api/my-applications")
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	next := findCookie(resp, "next_url")
	require.NotNil(t, next)
	require.Equal(t, "/api/my-applications", next.Value)

	// Logging in returns the visitor to where they were headed
	resp = postForm(t, app, "/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"Password1!"},
	}, next)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/api/my-applications", resp.Header.Get(fiber.HeaderLocation))

	// The saved URL is consumed on use
	cleared := findCookie(resp, "next_url")
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
}

func TestLoginWithoutNextURLUsesRoleDefault(t *testing.T) {
	app, _ := newTestApp(t)

	registerAccount(t, app, "alice@example.com", "10203040")

	resp := postForm(t, app, "/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"Password1!"},
	})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/application", resp.Header.Get(fiber.HeaderLocation))
	assert.NotNil(t, findCookie(resp, session.CookieName))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	app, _ := newTestApp(t)

	registerAccount(t, app, "alice@example.com", "10203040")

	unknown := postForm(t, app, "/login", url.Values{
		"email":    {"nobody@example.com"},
		"password": {"Password1!"},
	})
	wrong := postForm(t, app, "/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"not-the-password"},
	})

	assert.Equal(t, fiber.StatusUnauthorized, unknown.StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, wrong.StatusCode)

	// Identical bodies: responses cannot be used to probe registered emails
	unknownBody, err := io.ReadAll(unknown.Body)
	require.NoError(t, err)
	wrongBody, err := io.ReadAll(wrong.Body)
	require.NoError(t, err)
	assert.Equal(t, string(unknownBody), string(wrongBody))
}

func TestClientCannotAccessAdmin(t *testing.T) {
	app, _ := newTestApp(t)

	cookie := registerAccount(t, app, "alice@example.com", "10203040")

	resp := get(t, app, "/admin/dashboard", cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))
}

func TestAdminCanReachDashboard(t *testing.T) {
	app, db := newTestApp(t)

	// Promote a registered account to admin
	registerAccount(t, app, "root@example.com", "90807060")
	require.NoError(t, db.Model(&models.Account{}).
		Where("email = ?", "root@example.com").
		Update("role", models.RoleAdmin).Error)

	resp := postForm(t, app, "/login", url.Values{
		"email":    {"root@example.com"},
		"password": {"Password1!"},
	})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/dashboard", resp.Header.Get(fiber.HeaderLocation))

	cookie := findCookie(resp, session.CookieName)
	require.NotNil(t, cookie)

	resp = get(t, app, "/admin/dashboard", cookie)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSessionStatus(t *testing.T) {
	app, _ := newTestApp(t)

	resp := get(t, app, "/api/session-status")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var anonymous map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&anonymous))
	assert.Equal(t, false, anonymous["authenticated"])

	cookie := registerAccount(t, app, "alice@example.com", "10203040")

	resp = get(t, app, "/api/session-status", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var authenticated map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&authenticated))
	assert.Equal(t, true, authenticated["authenticated"])
	assert.Equal(t, "alice@example.com", authenticated["email"])
}

func TestFlashBearingPageIsNotCached(t *testing.T) {
	app, _ := newTestApp(t)

	// Without a pending notice the landing page is publicly cacheable
	resp := get(t, app, "/")
	assert.Contains(t, resp.Header.Get(fiber.HeaderCacheControl), "public")

	// Logout flashes a notice and redirects to the landing page
	cookie := registerAccount(t, app, "alice@example.com", "10203040")
	resp = get(t, app, "/logout", cookie)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	notice := findCookie(resp, "flash")
	require.NotNil(t, notice)
	require.NotEmpty(t, notice.Value)

	// The response that renders the notice must never be cached
	resp = get(t, app, "/", notice)
	assert.NotContains(t, resp.Header.Get(fiber.HeaderCacheControl), "public")
}

func TestToggleAdvisorRejectsNonAdvisorAccounts(t *testing.T) {
	app, db := newTestApp(t)

	registerAccount(t, app, "root@example.com", "90807060")
	require.NoError(t, db.Model(&models.Account{}).
		Where("email = ?", "root@example.com").
		Update("role", models.RoleAdmin).Error)

	resp := postForm(t, app, "/login", url.Values{
		"email":    {"root@example.com"},
		"password": {"Password1!"},
	})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	cookie := findCookie(resp, session.CookieName)
	require.NotNil(t, cookie)

	var admin models.Account
	require.NoError(t, db.Where("email = ?", "root@example.com").First(&admin).Error)

	// The admin's own account cannot be deactivated through this endpoint
	resp = postForm(t, app, fmt.Sprintf("/admin/toggle-advisor/%d", admin.ID), url.Values{}, cookie)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	require.NoError(t, db.First(&admin, admin.ID).Error)
	assert.True(t, admin.IsActive)

	// A real advisor account still toggles
	advisor := &models.Account{
		Name:         "Bruno Vega",
		Email:        "bruno@example.com",
		PasswordHash: "irrelevant",
		Role:         models.RoleAdvisor,
		IsActive:     true,
	}
	require.NoError(t, db.Create(advisor).Error)

	resp = postForm(t, app, fmt.Sprintf("/admin/toggle-advisor/%d", advisor.ID), url.Values{}, cookie)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	require.NoError(t, db.First(advisor, advisor.ID).Error)
	assert.False(t, advisor.IsActive)
}

func TestDuplicateRegistrationConflicts(t *testing.T) {
	app, _ := newTestApp(t)

	registerAccount(t, app, "alice@example.com", "10203040")

	resp := postForm(t, app, "/register", registerForm("alice@example.com", "99999999"))
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestLogoutClearsSession(t *testing.T) {
	app, _ := newTestApp(t)

	cookie := registerAccount(t, app, "alice@example.com", "10203040")

	resp := get(t, app, "/logout", cookie)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))

	cleared := findCookie(resp, session.CookieName)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	// The cleared cookie no longer opens protected pages
	resp = get(t, app, "/application", cleared)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation))
}
