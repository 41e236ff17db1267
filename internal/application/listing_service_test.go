package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/estate-listing-api/internal/application/dto"
	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/memory"
)

type listingFixture struct {
	store *memory.Store
	idx   *fakeListingIndex
	svc   *ListingService
	owner *entity.User
	other *entity.User
	prop  *entity.Property
}

func newListingFixture(t *testing.T) *listingFixture {
	store := memory.NewStore()
	idx := newFakeListingIndex()
	f := &listingFixture{
		store: store,
		idx:   idx,
		svc:   NewListingService(store.Listings, store.Properties, store.Bookmarks, idx, nil),
		owner: seedUser(t, store, "owner@example.com", entity.RoleUser),
		other: seedUser(t, store, "other@example.com", entity.RoleUser),
	}
	f.prop = seedProperty(t, store, f.owner.ID)
	return f
}

func (f *listingFixture) create(t *testing.T, typ string) *entity.Listing {
	t.Helper()
	l, err := f.svc.Create(context.Background(), actorOf(f.owner), dto.CreateListingRequest{
		PropertyID: f.prop.ID, Type: typ, Price: 250000, Description: "sunny",
	})
	require.NoError(t, err)
	return l
}

func TestListingService_CreateAttachesPropertyAndIndexes(t *testing.T) {
	f := newListingFixture(t)
	l := f.create(t, "SALE")

	assert.Equal(t, entity.ListingDraft, l.Status)
	require.NotNil(t, l.Property)
	assert.Equal(t, "1 Main St", l.Property.StreetAddress)
	assert.Equal(t, entity.ListingDraft, f.idx.indexed[l.ID])

	_, err := f.svc.Create(context.Background(), actorOf(f.other), dto.CreateListingRequest{PropertyID: f.prop.ID, Type: "SALE", Price: 1})
	assert.True(t, errs.IsKind(err, errs.KindForbidden))

	_, err = f.svc.Create(context.Background(), actorOf(f.owner), dto.CreateListingRequest{PropertyID: "missing", Type: "SALE", Price: 1})
	requireCode(t, err, errs.CodePropertyNotFound)
}

func TestListingService_Lifecycle(t *testing.T) {
	f := newListingFixture(t)
	ctx := context.Background()
	l := f.create(t, "RENT")
	owner := actorOf(f.owner)

	_, err := f.svc.Close(ctx, owner, l.ID)
	requireCode(t, err, errs.CodeInvalidStatusTransition)

	l, err = f.svc.Publish(ctx, owner, l.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ListingActive, l.Status)
	require.NotNil(t, l.PublishedAt)

	l, err = f.svc.MarkPending(ctx, owner, l.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ListingPending, l.Status)

	l, err = f.svc.Close(ctx, owner, l.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ListingRented, l.Status)
	assert.Equal(t, entity.ListingRented, f.idx.indexed[l.ID])

	_, err = f.svc.Publish(ctx, actorOf(f.other), l.ID)
	assert.True(t, errs.IsKind(err, errs.KindForbidden))
}

func TestListingService_GetHidesDrafts(t *testing.T) {
	f := newListingFixture(t)
	ctx := context.Background()
	l := f.create(t, "SALE")

	_, err := f.svc.Get(ctx, Actor{}, l.ID)
	requireCode(t, err, errs.CodeListingNotFound)
	_, err = f.svc.Get(ctx, actorOf(f.owner), l.ID)
	require.NoError(t, err)

	_, err = f.svc.Publish(ctx, actorOf(f.owner), l.ID)
	require.NoError(t, err)
	_, err = f.svc.Get(ctx, Actor{}, l.ID)
	require.NoError(t, err)
}

func TestListingService_ListDefaultsToActive(t *testing.T) {
	f := newListingFixture(t)
	ctx := context.Background()
	draft := f.create(t, "SALE")
	live := f.create(t, "SALE")
	_, err := f.svc.Publish(ctx, actorOf(f.owner), live.ID)
	require.NoError(t, err)

	ls, total, page, err := f.svc.List(ctx, Actor{}, dto.ListingQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, live.ID, ls[0].ID)
	assert.Equal(t, 1, page.Page)

	_, _, _, err = f.svc.List(ctx, Actor{}, dto.ListingQuery{Status: "DRAFT"})
	assert.True(t, errs.IsKind(err, errs.KindForbidden))

	ls, _, _, err = f.svc.List(ctx, actorOf(f.other), dto.ListingQuery{Status: "DRAFT"})
	require.NoError(t, err)
	assert.Empty(t, ls)

	ls, _, _, err = f.svc.List(ctx, actorOf(f.owner), dto.ListingQuery{Status: "DRAFT"})
	require.NoError(t, err)
	require.Len(t, ls, 1)
	assert.Equal(t, draft.ID, ls[0].ID)
}

func TestListingService_SearchUsesIndexThenFallsBack(t *testing.T) {
	f := newListingFixture(t)
	ctx := context.Background()
	l := f.create(t, "SALE")
	_, err := f.svc.Publish(ctx, actorOf(f.owner), l.ID)
	require.NoError(t, err)

	f.idx.hits = []string{l.ID, "stale-id"}
	ls, total, _, err := f.svc.Search(ctx, Actor{}, dto.ListingQuery{Q: "sunny"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, ls, 1)

	f.idx.err = errors.New("es down")
	ls, total, _, err = f.svc.Search(ctx, Actor{}, dto.ListingQuery{Q: "sunny"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, ls, 1)
}

func TestListingService_DeleteCascadesBookmarks(t *testing.T) {
	f := newListingFixture(t)
	ctx := context.Background()
	l := f.create(t, "SALE")
	bookmarks := NewBookmarkService(f.store.Bookmarks, f.store.Listings)
	_, err := bookmarks.Toggle(ctx, actorOf(f.other), l.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, actorOf(f.owner), l.ID))
	_, err = f.store.Bookmarks.FindByUserAndListing(ctx, f.other.ID, l.ID)
	assert.Error(t, err)
	assert.NotContains(t, f.idx.indexed, l.ID)
}

func TestListingService_UpdateTypeOnlyInDraft(t *testing.T) {
	f := newListingFixture(t)
	ctx := context.Background()
	l := f.create(t, "SALE")
	rent, price := "RENT", 1200.0

	l, err := f.svc.Update(ctx, actorOf(f.owner), l.ID, dto.UpdateListingRequest{Type: &rent, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, entity.ListingRent, l.Type)
	assert.Equal(t, 1200.0, l.Price)

	_, err = f.svc.Publish(ctx, actorOf(f.owner), l.ID)
	require.NoError(t, err)
	sale := "SALE"
	_, err = f.svc.Update(ctx, actorOf(f.owner), l.ID, dto.UpdateListingRequest{Type: &sale})
	assert.True(t, errs.IsKind(err, errs.KindConflict))
}
