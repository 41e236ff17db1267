package repository

import (
	"context"

	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
)

type NotificationRepository interface {
	// Save inserts a new notification or updates the read flag of a stored one.
	Save(ctx context.Context, n *entity.Notification) (*entity.Notification, error)
	// RecordDelivery merges a push outcome into the stored delivery fields
	// without touching the read flag.
	RecordDelivery(ctx context.Context, id, messageID, deliveryErr string) error
	FindByID(ctx context.Context, id string) (*entity.Notification, error)
	FindByUserID(ctx context.Context, userID string, p Page) ([]*entity.Notification, int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
}

type DeviceTokenRepository interface {
	Save(ctx context.Context, d *entity.DeviceToken) (*entity.DeviceToken, error)
	FindByID(ctx context.Context, id string) (*entity.DeviceToken, error)
	FindByUserID(ctx context.Context, userID string) ([]*entity.DeviceToken, error)
	FindByToken(ctx context.Context, token string) (*entity.DeviceToken, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByToken(ctx context.Context, token string) error
}
