package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/alikamatu/artisan-app-sub000/internal/models"
	"github.com/alikamatu/artisan-app-sub000/internal/store"
)

type NotificationRepository struct {
	store *store.Gateway
}

func NewNotificationRepository(gw *store.Gateway) *NotificationRepository {
	return &NotificationRepository{store: gw}
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return r.store.Insert(ctx, n)
}

func (r *NotificationRepository) FindByUser(ctx context.Context, userID string, page, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	total, err := r.store.List(ctx, &notifications, store.ListOptions{
		Filters: []store.Filter{store.Eq("user_id", userID)},
		SortBy:  "created_at",
		Desc:    true,
		Page:    page,
		Limit:   limit,
	})
	return notifications, total, err
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, id string) error {
	return r.store.UpdateFields(ctx, &models.Notification{}, id, map[string]interface{}{
		"is_read": true,
	})
}
