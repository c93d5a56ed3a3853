package repositories

import (
	"context"

	"novacapital-credit/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// notificationRepository implements NotificationRepository interface
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create enqueues a notification for an account
func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// ListByAccount lists an account's notifications, newest first
func (r *notificationRepository) ListByAccount(ctx context.Context, accountID uint, limit int) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// CountUnreadByAccount counts unread notifications for an account
func (r *notificationRepository) CountUnreadByAccount(ctx context.Context, accountID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("account_id = ? AND is_read = ?", accountID, false).
		Count(&count).Error
	return count, err
}

// MarkRead marks one notification as read, scoped to its recipient
func (r *notificationRepository) MarkRead(ctx context.Context, id, accountID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND account_id = ?", id, accountID).
		Update("is_read", true).Error
}
