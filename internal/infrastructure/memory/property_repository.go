package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
)

type PropertyRepository struct {
	t   *table[entity.Property]
	now func() time.Time
}

func (r *PropertyRepository) Save(_ context.Context, p *entity.Property) (*entity.Property, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	now := r.now()
	if p.ID == "" {
		p.ID = newID()
		p.CreatedAt = now
	} else if _, ok := r.t.rows[p.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	p.UpdatedAt = now
	r.t.putLocked(p.ID, p)
	return p, nil
}

func (r *PropertyRepository) FindByID(_ context.Context, id string) (*entity.Property, error) {
	if p, ok := r.t.get(id); ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (r *PropertyRepository) FindByOwnerID(_ context.Context, ownerID string) ([]*entity.Property, error) {
	return r.t.find(func(p *entity.Property) bool { return p.OwnerID == ownerID }), nil
}

func (r *PropertyRepository) ExistsByID(_ context.Context, id string) (bool, error) {
	return r.t.exists(id), nil
}

func (r *PropertyRepository) DeleteByID(_ context.Context, id string) error {
	r.t.remove(id)
	return nil
}

type PropertyAttributeRepository struct {
	t   *table[entity.PropertyAttribute]
	now func() time.Time
}

func (r *PropertyAttributeRepository) Save(_ context.Context, a *entity.PropertyAttribute) (*entity.PropertyAttribute, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	for id, row := range r.t.rows {
		if id != a.ID && strings.EqualFold(row.v.Name, a.Name) {
			return nil, repository.ErrDuplicate
		}
	}
	if a.ID == "" {
		a.ID = newID()
		a.CreatedAt = r.now()
	} else if _, ok := r.t.rows[a.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	r.t.putLocked(a.ID, a)
	return a, nil
}

func (r *PropertyAttributeRepository) FindByID(_ context.Context, id string) (*entity.PropertyAttribute, error) {
	if a, ok := r.t.get(id); ok {
		return a, nil
	}
	return nil, repository.ErrNotFound
}

func (r *PropertyAttributeRepository) FindByName(_ context.Context, name string) (*entity.PropertyAttribute, error) {
	if a, ok := r.t.first(func(a *entity.PropertyAttribute) bool { return strings.EqualFold(a.Name, name) }); ok {
		return a, nil
	}
	return nil, repository.ErrNotFound
}

func (r *PropertyAttributeRepository) FindAll(_ context.Context) ([]*entity.PropertyAttribute, error) {
	all := r.t.find(nil)
	slices.SortFunc(all, func(a, b *entity.PropertyAttribute) int { return cmp.Compare(a.Name, b.Name) })
	return all, nil
}

func (r *PropertyAttributeRepository) ExistsByID(_ context.Context, id string) (bool, error) {
	return r.t.exists(id), nil
}

func (r *PropertyAttributeRepository) DeleteByID(_ context.Context, id string) error {
	r.t.remove(id)
	return nil
}

type PropertyAttributeValueRepository struct {
	t     *table[entity.PropertyAttributeValue]
	attrs *PropertyAttributeRepository
	now   func() time.Time
}

func (r *PropertyAttributeValueRepository) Save(_ context.Context, v *entity.PropertyAttributeValue) (*entity.PropertyAttributeValue, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	now := r.now()
	if v.ID == "" {
		v.ID = newID()
		v.CreatedAt = now
	} else if _, ok := r.t.rows[v.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	v.UpdatedAt = now
	stored := *v
	stored.Attribute = nil
	r.t.putLocked(v.ID, &stored)
	return v, nil
}

func (r *PropertyAttributeValueRepository) load(v *entity.PropertyAttributeValue) *entity.PropertyAttributeValue {
	if a, ok := r.attrs.t.get(v.AttributeID); ok {
		v.Attribute = a
	}
	return v
}

func (r *PropertyAttributeValueRepository) FindByID(_ context.Context, id string) (*entity.PropertyAttributeValue, error) {
	v, ok := r.t.get(id)
	if !ok || v.Deleted {
		return nil, repository.ErrNotFound
	}
	return r.load(v), nil
}

func (r *PropertyAttributeValueRepository) FindByPropertyID(_ context.Context, propertyID string) ([]*entity.PropertyAttributeValue, error) {
	vals := r.t.find(func(v *entity.PropertyAttributeValue) bool {
		return v.PropertyID == propertyID && !v.Deleted
	})
	for _, v := range vals {
		r.load(v)
	}
	return vals, nil
}

func (r *PropertyAttributeValueRepository) FindByPropertyAndAttribute(_ context.Context, propertyID, attributeID string) (*entity.PropertyAttributeValue, error) {
	v, ok := r.t.first(func(v *entity.PropertyAttributeValue) bool {
		return v.PropertyID == propertyID && v.AttributeID == attributeID && !v.Deleted
	})
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.load(v), nil
}

func (r *PropertyAttributeValueRepository) ExistsByID(_ context.Context, id string) (bool, error) {
	v, ok := r.t.get(id)
	return ok && !v.Deleted, nil
}

// DeleteByID marks the value deleted; the row stays for audit.
func (r *PropertyAttributeValueRepository) DeleteByID(_ context.Context, id string) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	v, ok := r.t.getLocked(id)
	if !ok || v.Deleted {
		return nil
	}
	v.MarkDeleted(r.now())
	r.t.putLocked(id, v)
	return nil
}

type PropertyMediaRepository struct {
	t   *table[entity.PropertyMedia]
	now func() time.Time
}

func (r *PropertyMediaRepository) Save(_ context.Context, m *entity.PropertyMedia) (*entity.PropertyMedia, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if m.ID == "" {
		m.ID = newID()
		m.CreatedAt = r.now()
	} else if _, ok := r.t.rows[m.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	r.t.putLocked(m.ID, m)
	return m, nil
}

func (r *PropertyMediaRepository) FindByID(_ context.Context, id string) (*entity.PropertyMedia, error) {
	if m, ok := r.t.get(id); ok {
		return m, nil
	}
	return nil, repository.ErrNotFound
}

func (r *PropertyMediaRepository) FindByPropertyID(_ context.Context, propertyID string) ([]*entity.PropertyMedia, error) {
	media := r.t.find(func(m *entity.PropertyMedia) bool { return m.PropertyID == propertyID })
	slices.SortStableFunc(media, func(a, b *entity.PropertyMedia) int {
		return cmp.Compare(a.DisplayOrder, b.DisplayOrder)
	})
	return media, nil
}

func (r *PropertyMediaRepository) CountByPropertyID(_ context.Context, propertyID string) (int, error) {
	return len(r.t.find(func(m *entity.PropertyMedia) bool { return m.PropertyID == propertyID })), nil
}

func (r *PropertyMediaRepository) ExistsByID(_ context.Context, id string) (bool, error) {
	return r.t.exists(id), nil
}

func (r *PropertyMediaRepository) DeleteByID(_ context.Context, id string) error {
	r.t.remove(id)
	return nil
}

var (
	_ repository.PropertyRepository               = (*PropertyRepository)(nil)
	_ repository.PropertyAttributeRepository      = (*PropertyAttributeRepository)(nil)
	_ repository.PropertyAttributeValueRepository = (*PropertyAttributeValueRepository)(nil)
	_ repository.PropertyMediaRepository          = (*PropertyMediaRepository)(nil)
)
