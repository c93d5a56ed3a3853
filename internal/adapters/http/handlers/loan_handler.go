package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"novacapital-credit/internal/core/domain"
	"novacapital-credit/internal/core/services"
	"novacapital-credit/internal/pkg/flash"
	"novacapital-credit/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles loan application endpoints
type LoanHandler struct {
	loanService *services.LoanService
	authService *services.AuthService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService, authService *services.AuthService) *LoanHandler {
	return &LoanHandler{
		loanService: loanService,
		authService: authService,
	}
}

// ApplicationRequest represents the application form fields
type ApplicationRequest struct {
	RequestedAmount    string `json:"requested_amount" form:"requested_amount"`
	TermMonths         string `json:"term_months" form:"term_months"`
	MonthlyInstallment string `json:"monthly_installment" form:"monthly_installment"`
	Notes              string `json:"notes" form:"notes"`
	BankAccount        string `json:"bank_account" form:"bank_account"`
	BankName           string `json:"bank_name" form:"bank_name"`

	EmploymentType string `json:"employment_type" form:"employment_type"`
	Employer       string `json:"employer" form:"employer"`
	MonthlySalary  string `json:"monthly_salary" form:"monthly_salary"`
	Address        string `json:"address" form:"address"`
	City           string `json:"city" form:"city"`
	State          string `json:"state" form:"state"`
	BirthDate      string `json:"birth_date" form:"birth_date"`
	Phone          string `json:"phone" form:"phone"`
}

// ApplicationForm shows the application form pre-filled with the
// session account's profile
func (h *LoanHandler) ApplicationForm(c *fiber.Ctx) error {
	accountID := c.Locals("accountID").(uint)

	customer, err := h.authService.GetCustomerByAccount(c.Context(), accountID)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			flash.Error(c, "No customer profile found for your account")
			return c.Redirect("/", fiber.StatusFound)
		}
		return response.InternalServerError(c, "Failed to load profile")
	}

	return response.Success(c, "", fiber.Map{
		"page":     "application",
		"customer": customer,
		"flash":    flash.Pop(c),
	})
}

// SubmitApplication submits a loan application and redirects to the
// confirmation page carrying the generated number
func (h *LoanHandler) SubmitApplication(c *fiber.Ctx) error {
	accountID := c.Locals("accountID").(uint)

	customer, err := h.authService.GetCustomerByAccount(c.Context(), accountID)
	if err != nil {
		flash.Error(c, "No customer profile found for your account")
		return c.Redirect("/application", fiber.StatusFound)
	}

	var req ApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input, err := req.toInput()
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	loan, err := h.loanService.Submit(c.Context(), customer.ID, input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Amount and term must be greater than zero")
		}
		flash.Error(c, "Failed to create the application, please try again")
		return c.Redirect("/application", fiber.StatusFound)
	}

	flash.Success(c, fmt.Sprintf("Application created successfully! Number: %s", loan.LoanNumber))
	return c.Redirect("/application/success?number="+loan.LoanNumber, fiber.StatusFound)
}

// ApplicationSuccess shows the confirmation page
func (h *LoanHandler) ApplicationSuccess(c *fiber.Ctx) error {
	number := c.Query("number", "N/A")

	return response.Success(c, "", fiber.Map{
		"page":        "application_success",
		"loan_number": number,
		"flash":       flash.Pop(c),
	})
}

// MyApplications lists the session account's own applications
func (h *LoanHandler) MyApplications(c *fiber.Ctx) error {
	accountID := c.Locals("accountID").(uint)

	customer, err := h.authService.GetCustomerByAccount(c.Context(), accountID)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return response.NotFound(c, "No customer profile found for your account")
		}
		return response.InternalServerError(c, "Failed to load applications")
	}

	loans, err := h.loanService.ListByCustomer(c.Context(), customer.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load applications")
	}

	return response.Success(c, "", fiber.Map{"loans": loans})
}

// toInput parses and validates the form values
func (r *ApplicationRequest) toInput() (*services.SubmitInput, error) {
	amount, err := strconv.ParseFloat(r.RequestedAmount, 64)
	if err != nil {
		return nil, errors.New("requested amount is invalid")
	}

	term, err := strconv.Atoi(r.TermMonths)
	if err != nil {
		return nil, errors.New("term in months is invalid")
	}

	installment := 0.0
	if r.MonthlyInstallment != "" {
		if installment, err = strconv.ParseFloat(r.MonthlyInstallment, 64); err != nil {
			return nil, errors.New("monthly installment is invalid")
		}
	}

	input := &services.SubmitInput{
		RequestedAmount:    amount,
		TermMonths:         term,
		MonthlyInstallment: installment,
		Notes:              r.Notes,
		BankAccount:        r.BankAccount,
		BankName:           r.BankName,
		UpdateProfile:      true,
		EmploymentType:     r.EmploymentType,
		Employer:           r.Employer,
		Address:            r.Address,
		City:               r.City,
		State:              r.State,
		Phone:              r.Phone,
	}

	if r.MonthlySalary != "" {
		salary, err := strconv.ParseFloat(r.MonthlySalary, 64)
		if err != nil {
			return nil, errors.New("monthly salary is invalid")
		}
		input.MonthlySalary = &salary
	}

	if r.BirthDate != "" {
		birth, err := time.Parse("2006-01-02", r.BirthDate)
		if err != nil {
			return nil, errors.New("birth date is invalid")
		}
		input.BirthDate = &birth
	}

	return input, nil
}
