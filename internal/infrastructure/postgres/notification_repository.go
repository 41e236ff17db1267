package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
)

const notificationColumns = `id, user_id, notification_type, title, body, read, provider_message_id,
	delivery_error, created_at, updated_at`

func scanNotification(row scanner) (*entity.Notification, error) {
	n := &entity.Notification{}
	if err := row.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Body, &n.Read, &n.ProviderMessageID,
		&n.DeliveryError, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return n, nil
}

type NotificationRepository struct {
	db DB
}

func NewNotificationRepository(db DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Save(ctx context.Context, n *entity.Notification) (*entity.Notification, error) {
	if n.ID == "" {
		id := uuid.NewString()
		if err := r.db.QueryRow(ctx, `
			INSERT INTO notifications (id, user_id, notification_type, title, body, read, provider_message_id, delivery_error)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING created_at, updated_at
		`, id, n.UserID, string(n.Type), n.Title, n.Body, n.Read, n.ProviderMessageID, n.DeliveryError).Scan(&n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, mapErr(err)
		}
		n.ID = id
		return n, nil
	}
	if err := r.db.QueryRow(ctx, `
		UPDATE notifications
		SET read = $2, updated_at = now()
		WHERE id = $1
		RETURNING provider_message_id, delivery_error, updated_at
	`, n.ID, n.Read).Scan(&n.ProviderMessageID, &n.DeliveryError, &n.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return n, nil
}

func (r *NotificationRepository) RecordDelivery(ctx context.Context, id, messageID, deliveryErr string) error {
	return updated(r.db.Exec(ctx, `
		UPDATE notifications
		SET provider_message_id = CASE WHEN provider_message_id = '' THEN $2 ELSE provider_message_id END,
		    delivery_error = CASE
		        WHEN $3 = '' THEN delivery_error
		        WHEN delivery_error = '' THEN $3
		        ELSE delivery_error || '; ' || $3
		    END,
		    updated_at = now()
		WHERE id = $1
	`, id, messageID, deliveryErr))
}

func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*entity.Notification, error) {
	return scanNotification(r.db.QueryRow(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id))
}

func (r *NotificationRepository) FindByUserID(ctx context.Context, userID string, p repository.Page) ([]*entity.Notification, int64, error) {
	p = p.Normalize()
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM notifications WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+notificationColumns+` FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, p.Limit, p.Offset())
	out, err := collect(rows, err, scanNotification)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM notifications WHERE user_id = $1 AND read = false`, userID).Scan(&n); err != nil {
		return 0, mapErr(err)
	}
	return n, nil
}

func (r *NotificationRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.db, `SELECT EXISTS (SELECT 1 FROM notifications WHERE id = $1)`, id)
}

func (r *NotificationRepository) DeleteByID(ctx context.Context, id string) error {
	return execDelete(ctx, r.db, `DELETE FROM notifications WHERE id = $1`, id)
}

type DeviceTokenRepository struct {
	db DB
}

func NewDeviceTokenRepository(db DB) *DeviceTokenRepository {
	return &DeviceTokenRepository{db: db}
}

const deviceColumns = `id, user_id, token, platform, created_at, updated_at`

func scanDevice(row scanner) (*entity.DeviceToken, error) {
	d := &entity.DeviceToken{}
	if err := row.Scan(&d.ID, &d.UserID, &d.Token, &d.Platform, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return d, nil
}

func (r *DeviceTokenRepository) Save(ctx context.Context, d *entity.DeviceToken) (*entity.DeviceToken, error) {
	if d.ID == "" {
		id := uuid.NewString()
		if err := r.db.QueryRow(ctx, `
			INSERT INTO device_tokens (id, user_id, token, platform)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at, updated_at
		`, id, d.UserID, d.Token, string(d.Platform)).Scan(&d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, mapErr(err)
		}
		d.ID = id
		return d, nil
	}
	if err := r.db.QueryRow(ctx, `
		UPDATE device_tokens SET user_id = $2, token = $3, platform = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, d.ID, d.UserID, d.Token, string(d.Platform)).Scan(&d.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return d, nil
}

func (r *DeviceTokenRepository) FindByID(ctx context.Context, id string) (*entity.DeviceToken, error) {
	return scanDevice(r.db.QueryRow(ctx, `SELECT `+deviceColumns+` FROM device_tokens WHERE id = $1`, id))
}

func (r *DeviceTokenRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.DeviceToken, error) {
	rows, err := r.db.Query(ctx, `SELECT `+deviceColumns+` FROM device_tokens WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	return collect(rows, err, scanDevice)
}

func (r *DeviceTokenRepository) FindByToken(ctx context.Context, token string) (*entity.DeviceToken, error) {
	return scanDevice(r.db.QueryRow(ctx, `SELECT `+deviceColumns+` FROM device_tokens WHERE token = $1`, token))
}

func (r *DeviceTokenRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.db, `SELECT EXISTS (SELECT 1 FROM device_tokens WHERE id = $1)`, id)
}

func (r *DeviceTokenRepository) DeleteByID(ctx context.Context, id string) error {
	return execDelete(ctx, r.db, `DELETE FROM device_tokens WHERE id = $1`, id)
}

func (r *DeviceTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	return execDelete(ctx, r.db, `DELETE FROM device_tokens WHERE token = $1`, token)
}

var (
	_ repository.NotificationRepository = (*NotificationRepository)(nil)
	_ repository.DeviceTokenRepository  = (*DeviceTokenRepository)(nil)
)
