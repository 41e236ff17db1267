package memory

import (
	"context"
	"time"

	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
)

type NotificationRepository struct {
	t   *table[entity.Notification]
	now func() time.Time
}

func (r *NotificationRepository) Save(_ context.Context, n *entity.Notification) (*entity.Notification, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	now := r.now()
	if n.ID == "" {
		n.ID = newID()
		n.CreatedAt = now
	} else {
		stored, ok := r.t.getLocked(n.ID)
		if !ok {
			return nil, repository.ErrNotFound
		}
		n.ProviderMessageID = stored.ProviderMessageID
		n.DeliveryError = stored.DeliveryError
	}
	n.UpdatedAt = now
	r.t.putLocked(n.ID, n)
	return n, nil
}

func (r *NotificationRepository) RecordDelivery(_ context.Context, id, messageID, deliveryErr string) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	n, ok := r.t.getLocked(id)
	if !ok {
		return repository.ErrNotFound
	}
	n.RecordDelivery(messageID, deliveryErr)
	n.UpdatedAt = r.now()
	r.t.putLocked(id, n)
	return nil
}

func (r *NotificationRepository) FindByID(_ context.Context, id string) (*entity.Notification, error) {
	if n, ok := r.t.get(id); ok {
		return n, nil
	}
	return nil, repository.ErrNotFound
}

func (r *NotificationRepository) FindByUserID(_ context.Context, userID string, p repository.Page) ([]*entity.Notification, int64, error) {
	all := r.t.find(func(n *entity.Notification) bool { return n.UserID == userID })
	return paginate(all, p), int64(len(all)), nil
}

func (r *NotificationRepository) CountUnread(_ context.Context, userID string) (int64, error) {
	return int64(len(r.t.find(func(n *entity.Notification) bool { return n.UserID == userID && !n.Read }))), nil
}

func (r *NotificationRepository) ExistsByID(_ context.Context, id string) (bool, error) {
	return r.t.exists(id), nil
}

func (r *NotificationRepository) DeleteByID(_ context.Context, id string) error {
	r.t.remove(id)
	return nil
}

type DeviceTokenRepository struct {
	t   *table[entity.DeviceToken]
	now func() time.Time
}

func (r *DeviceTokenRepository) Save(_ context.Context, d *entity.DeviceToken) (*entity.DeviceToken, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	for id, row := range r.t.rows {
		if id != d.ID && row.v.Token == d.Token {
			return nil, repository.ErrDuplicate
		}
	}
	now := r.now()
	if d.ID == "" {
		d.ID = newID()
		d.CreatedAt = now
	} else if _, ok := r.t.rows[d.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	d.UpdatedAt = now
	r.t.putLocked(d.ID, d)
	return d, nil
}

func (r *DeviceTokenRepository) FindByID(_ context.Context, id string) (*entity.DeviceToken, error) {
	if d, ok := r.t.get(id); ok {
		return d, nil
	}
	return nil, repository.ErrNotFound
}

func (r *DeviceTokenRepository) FindByUserID(_ context.Context, userID string) ([]*entity.DeviceToken, error) {
	return r.t.find(func(d *entity.DeviceToken) bool { return d.UserID == userID }), nil
}

func (r *DeviceTokenRepository) FindByToken(_ context.Context, token string) (*entity.DeviceToken, error) {
	if d, ok := r.t.first(func(d *entity.DeviceToken) bool { return d.Token == token }); ok {
		return d, nil
	}
	return nil, repository.ErrNotFound
}

func (r *DeviceTokenRepository) ExistsByID(_ context.Context, id string) (bool, error) {
	return r.t.exists(id), nil
}

func (r *DeviceTokenRepository) DeleteByID(_ context.Context, id string) error {
	r.t.remove(id)
	return nil
}

func (r *DeviceTokenRepository) DeleteByToken(_ context.Context, token string) error {
	r.t.removeWhere(func(d *entity.DeviceToken) bool { return d.Token == token })
	return nil
}

var (
	_ repository.NotificationRepository = (*NotificationRepository)(nil)
	_ repository.DeviceTokenRepository  = (*DeviceTokenRepository)(nil)
)
