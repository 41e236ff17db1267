package repository

import (
	"context"

	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
)

type PropertyRepository interface {
	Save(ctx context.Context, p *entity.Property) (*entity.Property, error)
	FindByID(ctx context.Context, id string) (*entity.Property, error)
	FindByOwnerID(ctx context.Context, ownerID string) ([]*entity.Property, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
}

type PropertyAttributeRepository interface {
	Save(ctx context.Context, a *entity.PropertyAttribute) (*entity.PropertyAttribute, error)
	FindByID(ctx context.Context, id string) (*entity.PropertyAttribute, error)
	FindByName(ctx context.Context, name string) (*entity.PropertyAttribute, error)
	FindAll(ctx context.Context) ([]*entity.PropertyAttribute, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
}

// PropertyAttributeValueRepository hides soft-deleted rows from every read.
// DeleteByID marks the row deleted rather than removing it.
type PropertyAttributeValueRepository interface {
	Save(ctx context.Context, v *entity.PropertyAttributeValue) (*entity.PropertyAttributeValue, error)
	FindByID(ctx context.Context, id string) (*entity.PropertyAttributeValue, error)
	FindByPropertyID(ctx context.Context, propertyID string) ([]*entity.PropertyAttributeValue, error)
	FindByPropertyAndAttribute(ctx context.Context, propertyID, attributeID string) (*entity.PropertyAttributeValue, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
}

type PropertyMediaRepository interface {
	Save(ctx context.Context, m *entity.PropertyMedia) (*entity.PropertyMedia, error)
	FindByID(ctx context.Context, id string) (*entity.PropertyMedia, error)
	// FindByPropertyID returns media ordered by display order.
	FindByPropertyID(ctx context.Context, propertyID string) ([]*entity.PropertyMedia, error)
	CountByPropertyID(ctx context.Context, propertyID string) (int, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
}
