package repositories

import (
	"context"

	"novacapital-credit/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// loanRepository implements LoanRepository interface
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// Create creates a new loan application
func (r *loanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

// GetByID gets a loan by ID
func (r *loanRepository) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).Preload("Customer").Where("id = ?", id).First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// GetByNumber gets a loan by its application number
func (r *loanRepository) GetByNumber(ctx context.Context, number string) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).Preload("Customer").Where("loan_number = ?", number).First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// ListByCustomer lists a customer's applications, newest first
func (r *loanRepository) ListByCustomer(ctx context.Context, customerID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&loans).Error
	return loans, err
}

// List lists loans newest first, joined with customer data, filtered by
// status and free-text search over names/document/number
func (r *loanRepository) List(ctx context.Context, filter *LoanFilter, offset, limit int) ([]*models.Loan, int64, error) {
	var loans []*models.Loan
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Loan{})

	if filter != nil {
		if filter.Status != "" {
			query = query.Where("loans.status = ?", filter.Status)
		}
		if filter.Search != "" {
			like := "%" + filter.Search + "%"
			query = query.
				Joins("JOIN customers ON customers.id = loans.customer_id").
				Where(
					"loans.loan_number LIKE ? OR customers.first_name LIKE ? OR customers.last_name LIKE ? OR customers.document_number LIKE ?",
					like, like, like, like,
				)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Customer").
		Order("loans.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&loans).Error
	if err != nil {
		return nil, 0, err
	}

	return loans, total, nil
}
