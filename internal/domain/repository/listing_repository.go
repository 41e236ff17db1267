package repository

import (
	"context"

	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
)

// ListingFilter narrows Search. Zero values mean "any".
type ListingFilter struct {
	Type     entity.ListingType
	Status   entity.ListingStatus
	OwnerID  string
	City     string
	MinPrice *float64
	MaxPrice *float64
	Text     string // matched against description and street address
	Page     Page
}

// ListingRepository reads always attach the owning Property.
type ListingRepository interface {
	Save(ctx context.Context, l *entity.Listing) (*entity.Listing, error)
	FindByID(ctx context.Context, id string) (*entity.Listing, error)
	FindByPropertyID(ctx context.Context, propertyID string) ([]*entity.Listing, error)
	FindByOwnerID(ctx context.Context, ownerID string) ([]*entity.Listing, error)
	Search(ctx context.Context, f ListingFilter) ([]*entity.Listing, int64, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
}

type AgentProposalRepository interface {
	Save(ctx context.Context, p *entity.AgentProposal) (*entity.AgentProposal, error)
	FindByID(ctx context.Context, id string) (*entity.AgentProposal, error)
	// FindByUserID and FindByPropertyID return newest first.
	FindByUserID(ctx context.Context, userID string) ([]*entity.AgentProposal, error)
	FindByPropertyID(ctx context.Context, propertyID string) ([]*entity.AgentProposal, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
}

type BookmarkRepository interface {
	Save(ctx context.Context, b *entity.Bookmark) (*entity.Bookmark, error)
	FindByID(ctx context.Context, id string) (*entity.Bookmark, error)
	FindByUserAndListing(ctx context.Context, userID, listingID string) (*entity.Bookmark, error)
	// FindBookmarkedByUserID returns active bookmarks, newest first, with
	// Listing and Listing.Property loaded.
	FindBookmarkedByUserID(ctx context.Context, userID string) ([]*entity.Bookmark, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByListingID(ctx context.Context, listingID string) error
}
