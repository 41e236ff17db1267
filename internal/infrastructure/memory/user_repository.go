package memory

import (
	"context"
	"time"

	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
	"github.com/oksasatya/estate-listing-api/internal/domain/valueobject"
)

type UserRepository struct {
	t   *table[entity.User]
	now func() time.Time
}

func (r *UserRepository) Save(_ context.Context, u *entity.User) (*entity.User, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	for id, row := range r.t.rows {
		if id != u.ID && row.v.Email.Equals(u.Email) {
			return nil, repository.ErrDuplicate
		}
	}
	now := r.now()
	if u.ID == "" {
		u.ID = newID()
		u.CreatedAt = now
	} else if _, ok := r.t.rows[u.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	u.UpdatedAt = now
	r.t.putLocked(u.ID, u)
	return u, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := r.t.get(id); ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) FindByEmail(_ context.Context, email valueobject.Email) (*entity.User, error) {
	if u, ok := r.t.first(func(u *entity.User) bool { return u.Email.Equals(email) }); ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) ExistsByID(_ context.Context, id string) (bool, error) {
	return r.t.exists(id), nil
}

func (r *UserRepository) ExistsByEmail(_ context.Context, email valueobject.Email) (bool, error) {
	_, ok := r.t.first(func(u *entity.User) bool { return u.Email.Equals(email) })
	return ok, nil
}

func (r *UserRepository) List(_ context.Context, p repository.Page) ([]*entity.User, int64, error) {
	all := r.t.find(nil)
	return paginate(all, p), int64(len(all)), nil
}

func (r *UserRepository) DeleteByID(_ context.Context, id string) error {
	r.t.remove(id)
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
