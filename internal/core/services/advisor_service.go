package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"novacapital-credit/internal/adapters/persistence/models"
	"novacapital-credit/internal/adapters/persistence/repositories"
	"novacapital-credit/internal/core/domain"

	"gorm.io/gorm"
)

// AdvisorService handles advisor assignment and notification logic
type AdvisorService struct {
	db               *gorm.DB
	accountRepo      repositories.AccountRepository
	customerRepo     repositories.CustomerRepository
	assignmentRepo   repositories.AssignmentRepository
	notificationRepo repositories.NotificationRepository
}

// NewAdvisorService creates a new advisor service
func NewAdvisorService(
	db *gorm.DB,
	accountRepo repositories.AccountRepository,
	customerRepo repositories.CustomerRepository,
	assignmentRepo repositories.AssignmentRepository,
	notificationRepo repositories.NotificationRepository,
) *AdvisorService {
	return &AdvisorService{
		db:               db,
		accountRepo:      accountRepo,
		customerRepo:     customerRepo,
		assignmentRepo:   assignmentRepo,
		notificationRepo: notificationRepo,
	}
}

// Assign makes advisorID the customer's current advisor. One transaction
// covers all effects: the previous active history row is closed, a new
// active row is appended, the customer's advisor pointer moves, and the
// advisor gets an unread notification. A failure anywhere rolls back
// everything; a pointer update without its notification is a bug, not a
// degraded mode.
func (s *AdvisorService) Assign(ctx context.Context, customerID, advisorID uint, notes string) error {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCustomerNotFound
		}
		return err
	}

	advisor, err := s.accountRepo.GetByID(ctx, advisorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrAdvisorNotFound
		}
		return err
	}
	if advisor.Role != models.RoleAdvisor || !advisor.IsActive {
		return domain.ErrAdvisorNotFound
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assignments := repositories.NewAssignmentRepository(tx)

		// Close the current assignment; history rows are append-only
		if err := assignments.DeactivateByCustomer(ctx, customerID); err != nil {
			return err
		}

		if err := assignments.Create(ctx, &models.AdvisorAssignment{
			CustomerID: customerID,
			AdvisorID:  advisorID,
			IsActive:   true,
			Notes:      notes,
		}); err != nil {
			return err
		}

		if err := repositories.NewCustomerRepository(tx).SetAdvisor(ctx, customerID, advisorID); err != nil {
			return err
		}

		return repositories.NewNotificationRepository(tx).Create(ctx, &models.Notification{
			AccountID: advisorID,
			Title:     "New customer assigned",
			Message: fmt.Sprintf("%s %s (document %s) has been assigned to you",
				customer.FirstName, customer.LastName, customer.DocumentNumber),
			Type:     models.NotificationTypeAssignment,
			Audience: models.AudienceAdvisor,
		})
	})
	if err != nil {
		return err
	}

	log.Printf("✅ Advisor %d assigned to customer %d", advisorID, customerID)
	return nil
}

// Notify enqueues an unread notification to the customer's owning account
func (s *AdvisorService) Notify(ctx context.Context, customerID uint, title, message string) error {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCustomerNotFound
		}
		return err
	}

	if customer.AccountID == nil {
		return domain.ErrCustomerNotLinked
	}

	return s.notificationRepo.Create(ctx, &models.Notification{
		AccountID: *customer.AccountID,
		Title:     title,
		Message:   message,
		Type:      models.NotificationTypeMessage,
		Audience:  models.AudienceClient,
	})
}

// AdvisorSummary represents an advisor with its current workload
type AdvisorSummary struct {
	Account         *models.AccountResponse `json:"account"`
	ActiveCustomers int64                   `json:"active_customers"`
}

// ListAdvisors lists advisor accounts with their active customer counts
func (s *AdvisorService) ListAdvisors(ctx context.Context) ([]*AdvisorSummary, error) {
	advisors, err := s.accountRepo.ListByRole(ctx, models.RoleAdvisor)
	if err != nil {
		return nil, err
	}

	summaries := make([]*AdvisorSummary, 0, len(advisors))
	for _, advisor := range advisors {
		count, err := s.assignmentRepo.CountActiveByAdvisor(ctx, advisor.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, &AdvisorSummary{
			Account:         advisor.ToResponse(),
			ActiveCustomers: count,
		})
	}
	return summaries, nil
}

// Notifications lists an account's notifications, newest first
func (s *AdvisorService) Notifications(ctx context.Context, accountID uint, limit int) ([]*models.Notification, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return s.notificationRepo.ListByAccount(ctx, accountID, limit)
}

// UnreadCount counts an account's unread notifications
func (s *AdvisorService) UnreadCount(ctx context.Context, accountID uint) (int64, error) {
	return s.notificationRepo.CountUnreadByAccount(ctx, accountID)
}

// MarkNotificationRead marks one of the account's notifications as read
func (s *AdvisorService) MarkNotificationRead(ctx context.Context, id, accountID uint) error {
	return s.notificationRepo.MarkRead(ctx, id, accountID)
}

// AssignmentHistory lists the customer's assignment history, newest first
func (s *AdvisorService) AssignmentHistory(ctx context.Context, customerID uint) ([]*models.AdvisorAssignment, error) {
	return s.assignmentRepo.ListByCustomer(ctx, customerID)
}
