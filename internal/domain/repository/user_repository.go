package repository

import (
	"context"

	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/valueobject"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Save(ctx context.Context, u *entity.User) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email valueobject.Email) (*entity.User, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	ExistsByEmail(ctx context.Context, email valueobject.Email) (bool, error)
	List(ctx context.Context, p Page) ([]*entity.User, int64, error)
	DeleteByID(ctx context.Context, id string) error
}
