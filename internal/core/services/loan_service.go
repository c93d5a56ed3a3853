package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"novacapital-credit/internal/adapters/persistence/models"
	"novacapital-credit/internal/adapters/persistence/repositories"
	"novacapital-credit/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoanService handles loan application business logic
type LoanService struct {
	db           *gorm.DB
	loanRepo     repositories.LoanRepository
	customerRepo repositories.CustomerRepository
}

// NewLoanService creates a new loan service
func NewLoanService(db *gorm.DB, loanRepo repositories.LoanRepository, customerRepo repositories.CustomerRepository) *LoanService {
	return &LoanService{
		db:           db,
		loanRepo:     loanRepo,
		customerRepo: customerRepo,
	}
}

// SubmitInput represents a loan application submission
type SubmitInput struct {
	RequestedAmount    float64 `json:"requested_amount"`
	TermMonths         int     `json:"term_months"`
	MonthlyInstallment float64 `json:"monthly_installment"`
	Notes              string  `json:"notes"`
	BankAccount        string  `json:"bank_account"`
	BankName           string  `json:"bank_name"`

	// Extended profile fields, merged into the customer row when
	// UpdateProfile is set
	UpdateProfile  bool       `json:"update_profile"`
	EmploymentType string     `json:"employment_type"`
	Employer       string     `json:"employer"`
	MonthlySalary  *float64   `json:"monthly_salary"`
	Address        string     `json:"address"`
	City           string     `json:"city"`
	State          string     `json:"state"`
	BirthDate      *time.Time `json:"birth_date"`
	Phone          string     `json:"phone"`
}

// Submit persists a loan application with a freshly generated number and,
// when requested, merges the extended profile fields into the customer row.
// Number generation, the loan insert and the profile update are one
// transaction: concurrent submissions serialize on the per-year sequence
// row and either everything lands or nothing does.
func (s *LoanService) Submit(ctx context.Context, customerID uint, input *SubmitInput) (*models.Loan, error) {
	if input.RequestedAmount <= 0 || input.TermMonths <= 0 {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}

	loan := &models.Loan{
		CustomerID:         customerID,
		RequestedAmount:    input.RequestedAmount,
		InterestRate:       models.DefaultInterestRate,
		TermMonths:         input.TermMonths,
		MonthlyInstallment: input.MonthlyInstallment,
		Status:             models.LoanStatusRequested,
		Notes:              input.Notes,
		BankAccount:        input.BankAccount,
		BankName:           input.BankName,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := nextLoanNumber(tx, time.Now().Year())
		if err != nil {
			return err
		}
		loan.LoanNumber = number

		if err := repositories.NewLoanRepository(tx).Create(ctx, loan); err != nil {
			return err
		}

		if input.UpdateProfile {
			// Only fields the form actually filled in are merged; a
			// blank field never erases existing profile data
			fields := map[string]interface{}{}
			if input.EmploymentType != "" {
				fields["employment_type"] = input.EmploymentType
			}
			if input.Employer != "" {
				fields["employer"] = input.Employer
			}
			if input.Address != "" {
				fields["address"] = input.Address
			}
			if input.City != "" {
				fields["city"] = input.City
			}
			if input.State != "" {
				fields["state"] = input.State
			}
			if input.MonthlySalary != nil {
				fields["monthly_salary"] = *input.MonthlySalary
			}
			if input.BirthDate != nil {
				fields["birth_date"] = *input.BirthDate
			}
			if input.Phone != "" {
				fields["phone"] = input.Phone
			}
			if len(fields) == 0 {
				return nil
			}
			return repositories.NewCustomerRepository(tx).UpdateFields(ctx, customerID, fields)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Loan application submitted: %s (customer %d)", loan.LoanNumber, customerID)
	return loan, nil
}

// nextLoanNumber reserves the next number in the calendar-year sequence,
// formatted PRE<year><5-digit sequence>. The counter row is upserted with
// an atomic increment, so two transactions in the same year can never read
// the same value: the second blocks on the row until the first commits.
func nextLoanNumber(tx *gorm.DB, year int) (string, error) {
	seq := models.LoanSequence{Year: year, LastValue: 1}
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "year"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_value": gorm.Expr("last_value + 1"),
		}),
	}).Create(&seq).Error
	if err != nil {
		return "", err
	}

	if err := tx.Where("year = ?", year).First(&seq).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("PRE%d%05d", year, seq.LastValue), nil
}

// ListInput represents list input
type ListInput struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// ListOutput represents list output
type ListOutput struct {
	Loans      []*models.Loan `json:"loans"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

// List lists loan applications, newest submission first
func (s *LoanService) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	filter := &repositories.LoanFilter{
		Status: input.Status,
		Search: input.Search,
	}

	offset := (input.Page - 1) * input.Limit
	loans, total, err := s.loanRepo.List(ctx, filter, offset, input.Limit)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListOutput{
		Loans:      loans,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetByNumber gets a loan application by its number
func (s *LoanService) GetByNumber(ctx context.Context, number string) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}

// ListByCustomer lists a customer's own applications, newest first
func (s *LoanService) ListByCustomer(ctx context.Context, customerID uint) ([]*models.Loan, error) {
	return s.loanRepo.ListByCustomer(ctx, customerID)
}
