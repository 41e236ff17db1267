package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/estate-listing-api/internal/application/mapper"
	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/memory"
)

func TestBookmarkService(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	owner := seedUser(t, store, "o@example.com", entity.RoleUser)
	fan := seedUser(t, store, "f@example.com", entity.RoleUser)
	p := seedProperty(t, store, owner.ID)
	l := entity.NewListing(p.ID, owner.ID, entity.ListingSale, 10, "USD", "")
	require.NoError(t, l.Publish(time.Now()))
	l, err := store.Listings.Save(ctx, l)
	require.NoError(t, err)
	svc := NewBookmarkService(store.Bookmarks, store.Listings)

	st, err := svc.Status(ctx, actorOf(fan), l.ID)
	require.NoError(t, err)
	assert.False(t, st.Bookmarked)

	b, err := svc.Toggle(ctx, actorOf(fan), l.ID)
	require.NoError(t, err)
	assert.True(t, b.Bookmarked)
	assert.Equal(t, "1 Main St", mapper.BookmarkAddress(b))

	mine, err := svc.ListMine(ctx, actorOf(fan))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Listing)

	b2, err := svc.Toggle(ctx, actorOf(fan), l.ID)
	require.NoError(t, err)
	assert.False(t, b2.Bookmarked)
	assert.Equal(t, b.ID, b2.ID, "one row per user and listing")

	mine, err = svc.ListMine(ctx, actorOf(fan))
	require.NoError(t, err)
	assert.Empty(t, mine)

	b3, err := svc.Set(ctx, actorOf(fan), l.ID, true)
	require.NoError(t, err)
	assert.True(t, b3.Bookmarked)
	b3, err = svc.Set(ctx, actorOf(fan), l.ID, true)
	require.NoError(t, err)
	assert.True(t, b3.Bookmarked, "set is idempotent")

	_, err = svc.Toggle(ctx, actorOf(fan), "missing")
	requireCode(t, err, errs.CodeListingNotFound)
}

func TestBookmarkService_HiddenListingsReadAsMissing(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	owner := seedUser(t, store, "o@example.com", entity.RoleUser)
	fan := seedUser(t, store, "f@example.com", entity.RoleUser)
	admin := seedUser(t, store, "a@example.com", entity.RoleAdmin)
	p := seedProperty(t, store, owner.ID)
	draft, err := store.Listings.Save(ctx, entity.NewListing(p.ID, owner.ID, entity.ListingSale, 10, "USD", ""))
	require.NoError(t, err)
	svc := NewBookmarkService(store.Bookmarks, store.Listings)

	_, err = svc.Toggle(ctx, actorOf(fan), draft.ID)
	requireCode(t, err, errs.CodeListingNotFound)
	_, err = svc.Set(ctx, actorOf(fan), draft.ID, true)
	requireCode(t, err, errs.CodeListingNotFound)
	_, err = svc.Status(ctx, actorOf(fan), draft.ID)
	requireCode(t, err, errs.CodeListingNotFound)

	_, err = store.Bookmarks.FindByUserAndListing(ctx, fan.ID, draft.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound, "nothing stored for a hidden listing")

	b, err := svc.Toggle(ctx, actorOf(owner), draft.ID)
	require.NoError(t, err)
	assert.True(t, b.Bookmarked)
	_, err = svc.Status(ctx, actorOf(admin), draft.ID)
	require.NoError(t, err)
}

// vanishingBookmarks drops the stored row right before an update reaches it.
type vanishingBookmarks struct {
	repository.BookmarkRepository
}

func (v vanishingBookmarks) Save(ctx context.Context, b *entity.Bookmark) (*entity.Bookmark, error) {
	if b.ID != "" {
		if err := v.DeleteByID(ctx, b.ID); err != nil {
			return nil, err
		}
	}
	return v.BookmarkRepository.Save(ctx, b)
}

func TestBookmarkService_UpdateOfRemovedRow(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	owner := seedUser(t, store, "o@example.com", entity.RoleUser)
	fan := seedUser(t, store, "f@example.com", entity.RoleUser)
	p := seedProperty(t, store, owner.ID)
	l := entity.NewListing(p.ID, owner.ID, entity.ListingRent, 10, "USD", "")
	require.NoError(t, l.Publish(time.Now()))
	l, err := store.Listings.Save(ctx, l)
	require.NoError(t, err)
	svc := NewBookmarkService(vanishingBookmarks{store.Bookmarks}, store.Listings)

	_, err = svc.Toggle(ctx, actorOf(fan), l.ID)
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, actorOf(fan), l.ID)
	requireCode(t, err, errs.CodeBookmarkNotFound)
}
