package application

import (
	"context"

	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/maps"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/search"
	"github.com/oksasatya/estate-listing-api/pkg/mailer"
)

// Mailer is satisfied by *mailer.Service.
type Mailer interface {
	Send(ctx context.Context, job mailer.EmailJob) error
	SendAsync(ctx context.Context, job mailer.EmailJob) <-chan error
}

// Geocoder is satisfied by *maps.Geocoder.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (maps.Location, error)
}

type ListingIndexer interface {
	Index(ctx context.Context, l *entity.Listing) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, f repository.ListingFilter) ([]string, int64, error)
}

type UserIndexer interface {
	Index(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]search.UserDoc, error)
}
