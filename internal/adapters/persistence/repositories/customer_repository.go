package repositories

import (
	"context"

	"novacapital-credit/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// customerRepository implements CustomerRepository interface
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// Create creates a new customer profile
func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// GetByID gets a customer by ID
func (r *customerRepository) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetByAccountID gets the customer profile owned by an account
func (r *customerRepository) GetByAccountID(ctx context.Context, accountID uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Update updates a customer
func (r *customerRepository) Update(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// UpdateFields applies a partial update to a customer row
func (r *customerRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// SetAdvisor points the customer at its current advisor
func (r *customerRepository) SetAdvisor(ctx context.Context, customerID, advisorID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", customerID).
		Update("advisor_id", advisorID).Error
}

// ExistsByDocument checks if a document number is already registered
func (r *customerRepository) ExistsByDocument(ctx context.Context, documentNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("document_number = ?", documentNumber).
		Count(&count).Error
	return count > 0, err
}

// List lists customers newest first with optional search/status/advisor filters
func (r *customerRepository) List(ctx context.Context, filter *CustomerFilter, offset, limit int) ([]*models.Customer, int64, error) {
	var customers []*models.Customer
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Customer{})

	if filter != nil {
		if filter.Search != "" {
			like := "%" + filter.Search + "%"
			query = query.Where(
				"first_name LIKE ? OR last_name LIKE ? OR document_number LIKE ? OR email LIKE ?",
				like, like, like, like,
			)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.AdvisorID != nil {
			query = query.Where("advisor_id = ?", *filter.AdvisorID)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Account").
		Preload("Advisor").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&customers).Error
	if err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}
