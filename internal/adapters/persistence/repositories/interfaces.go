package repositories

import (
	"context"

	"novacapital-credit/internal/adapters/persistence/models"
)

// AccountRepository defines account repository interface
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	SetActive(ctx context.Context, id uint, active bool) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListByRole(ctx context.Context, role string) ([]*models.Account, error)
}

// CustomerFilter narrows customer listings
type CustomerFilter struct {
	Search    string
	Status    string
	AdvisorID *uint
}

// CustomerRepository defines customer repository interface
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
	GetByAccountID(ctx context.Context, accountID uint) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	SetAdvisor(ctx context.Context, customerID, advisorID uint) error
	ExistsByDocument(ctx context.Context, documentNumber string) (bool, error)
	List(ctx context.Context, filter *CustomerFilter, offset, limit int) ([]*models.Customer, int64, error)
}

// LoanFilter narrows loan listings
type LoanFilter struct {
	Status string
	Search string
}

// LoanRepository defines loan repository interface
type LoanRepository interface {
	Create(ctx context.Context, loan *models.Loan) error
	GetByID(ctx context.Context, id uint) (*models.Loan, error)
	GetByNumber(ctx context.Context, number string) (*models.Loan, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]*models.Loan, error)
	List(ctx context.Context, filter *LoanFilter, offset, limit int) ([]*models.Loan, int64, error)
}

// AssignmentRepository defines advisor assignment history interface
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.AdvisorAssignment) error
	DeactivateByCustomer(ctx context.Context, customerID uint) error
	GetActiveByCustomer(ctx context.Context, customerID uint) (*models.AdvisorAssignment, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]*models.AdvisorAssignment, error)
	CountActiveByAdvisor(ctx context.Context, advisorID uint) (int64, error)
}

// NotificationRepository defines notification repository interface
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByAccount(ctx context.Context, accountID uint, limit int) ([]*models.Notification, error)
	CountUnreadByAccount(ctx context.Context, accountID uint) (int64, error)
	MarkRead(ctx context.Context, id, accountID uint) error
}
