package repositories

import (
	"context"

	"novacapital-credit/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// assignmentRepository implements AssignmentRepository interface
type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

// Create appends an assignment history row
func (r *assignmentRepository) Create(ctx context.Context, assignment *models.AdvisorAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

// DeactivateByCustomer closes any currently-active assignment.
// History rows are never deleted.
func (r *assignmentRepository) DeactivateByCustomer(ctx context.Context, customerID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.AdvisorAssignment{}).
		Where("customer_id = ? AND is_active = ?", customerID, true).
		Update("is_active", false).Error
}

// GetActiveByCustomer returns the customer's current active assignment
func (r *assignmentRepository) GetActiveByCustomer(ctx context.Context, customerID uint) (*models.AdvisorAssignment, error) {
	var assignment models.AdvisorAssignment
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND is_active = ?", customerID, true).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ListByCustomer lists the full assignment history, newest first
func (r *assignmentRepository) ListByCustomer(ctx context.Context, customerID uint) ([]*models.AdvisorAssignment, error) {
	var assignments []*models.AdvisorAssignment
	err := r.db.WithContext(ctx).
		Preload("Advisor").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&assignments).Error
	return assignments, err
}

// CountActiveByAdvisor counts customers currently assigned to an advisor
func (r *assignmentRepository) CountActiveByAdvisor(ctx context.Context, advisorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AdvisorAssignment{}).
		Where("advisor_id = ? AND is_active = ?", advisorID, true).
		Count(&count).Error
	return count, err
}
