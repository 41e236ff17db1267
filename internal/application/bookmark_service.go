package application

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
)

type BookmarkService struct {
	bookmarks repository.BookmarkRepository
	listings  repository.ListingRepository
	now       func() time.Time
}

func NewBookmarkService(bookmarks repository.BookmarkRepository, listings repository.ListingRepository) *BookmarkService {
	return &BookmarkService{bookmarks: bookmarks, listings: listings, now: time.Now}
}

func (s *BookmarkService) Toggle(ctx context.Context, actor Actor, listingID string) (*entity.Bookmark, error) {
	return s.apply(ctx, actor, listingID, func(b *entity.Bookmark) { b.Toggle(s.now()) })
}

func (s *BookmarkService) Set(ctx context.Context, actor Actor, listingID string, bookmarked bool) (*entity.Bookmark, error) {
	return s.apply(ctx, actor, listingID, func(b *entity.Bookmark) { b.Set(bookmarked, s.now()) })
}

// apply keeps one row per (user, listing); unbookmarking flips the flag.
func (s *BookmarkService) apply(ctx context.Context, actor Actor, listingID string, change func(*entity.Bookmark)) (*entity.Bookmark, error) {
	l, err := s.visible(ctx, actor, listingID)
	if err != nil {
		return nil, err
	}
	b, err := s.find(ctx, actor.UserID, listingID)
	if err != nil {
		return nil, err
	}
	change(b)
	saved, err := s.bookmarks.Save(ctx, b)
	if err != nil {
		return nil, fromRepo(err, errs.BookmarkNotFound, b.ID)
	}
	saved.Listing = l
	return saved, nil
}

// visible loads a listing the actor may see; hidden listings read as missing.
func (s *BookmarkService) visible(ctx context.Context, actor Actor, listingID string) (*entity.Listing, error) {
	l, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		return nil, fromRepo(err, errs.ListingNotFound, listingID)
	}
	if !actor.CanView(l) {
		return nil, errs.ListingNotFound(listingID)
	}
	return l, nil
}

func (s *BookmarkService) find(ctx context.Context, userID, listingID string) (*entity.Bookmark, error) {
	b, err := s.bookmarks.FindByUserAndListing(ctx, userID, listingID)
	if errors.Is(err, repository.ErrNotFound) {
		return entity.NewBookmark(userID, listingID), nil
	}
	if err != nil {
		return nil, repoErr(err)
	}
	return b, nil
}

func (s *BookmarkService) ListMine(ctx context.Context, actor Actor) ([]*entity.Bookmark, error) {
	bs, err := s.bookmarks.FindBookmarkedByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, repoErr(err)
	}
	return bs, nil
}

// Status reports the caller's bookmark for a listing; never bookmarked reads as false.
func (s *BookmarkService) Status(ctx context.Context, actor Actor, listingID string) (*entity.Bookmark, error) {
	l, err := s.visible(ctx, actor, listingID)
	if err != nil {
		return nil, err
	}
	b, err := s.find(ctx, actor.UserID, listingID)
	if err != nil {
		return nil, err
	}
	b.Listing = l
	return b, nil
}
