package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/estate-listing-api/internal/application/dto"
	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/maps"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/memory"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/storage"
)

func newPropertyService(store *memory.Store, geo Geocoder, idx ListingIndexer) *PropertyService {
	return NewPropertyService(PropertyRepos{
		Properties:      store.Properties,
		Attributes:      store.Attributes,
		AttributeValues: store.AttributeValues,
		Media:           store.Media,
		Listings:        store.Listings,
	}, geo, storage.NewMemoryStore("http://media.test"), idx, nil)
}

func createReq() dto.CreatePropertyRequest {
	return dto.CreatePropertyRequest{Type: "HOUSE", StreetAddress: "1 Main St", City: "Depok", Country: "ID", Bedrooms: 3}
}

func TestPropertyService_CreateGeocodesMissingCoordinates(t *testing.T) {
	store := memory.NewStore()
	owner := seedUser(t, store, "o@example.com", entity.RoleUser)
	geo := &fakeGeocoder{loc: maps.Location{Lat: -6.4, Lng: 106.8}}
	svc := newPropertyService(store, geo, nil)

	p, err := svc.Create(context.Background(), actorOf(owner), createReq())
	require.NoError(t, err)
	require.True(t, p.HasCoordinates())
	assert.Equal(t, -6.4, *p.Latitude)
	assert.Equal(t, owner.ID, p.OwnerID)

	lat, lng := 1.0, 2.0
	req := createReq()
	req.Latitude, req.Longitude = &lat, &lng
	_, err = svc.Create(context.Background(), actorOf(owner), req)
	require.NoError(t, err)
	assert.Equal(t, 1, geo.calls)
}

func TestPropertyService_GeocodeFailureDoesNotBlockCreate(t *testing.T) {
	store := memory.NewStore()
	owner := seedUser(t, store, "o@example.com", entity.RoleUser)
	geo := &fakeGeocoder{err: errs.MapsQuotaExceeded(nil)}
	svc := newPropertyService(store, geo, nil)

	p, err := svc.Create(context.Background(), actorOf(owner), createReq())
	require.NoError(t, err)
	assert.False(t, p.HasCoordinates())

	_, err = svc.Geocode(context.Background(), actorOf(owner), p.ID)
	requireCode(t, err, errs.CodeMapsQuotaExceeded)
}

func TestPropertyService_UpdateRequiresOwner(t *testing.T) {
	store := memory.NewStore()
	owner := seedUser(t, store, "o@example.com", entity.RoleUser)
	other := seedUser(t, store, "x@example.com", entity.RoleUser)
	admin := seedUser(t, store, "a@example.com", entity.RoleAdmin)
	idx := newFakeListingIndex()
	svc := newPropertyService(store, nil, idx)
	ctx := context.Background()
	p := seedProperty(t, store, owner.ID)
	l, err := store.Listings.Save(ctx, entity.NewListing(p.ID, owner.ID, entity.ListingSale, 100, "USD", ""))
	require.NoError(t, err)

	city := "Bogor"
	_, err = svc.Update(ctx, actorOf(other), p.ID, dto.UpdatePropertyRequest{City: &city})
	assert.True(t, errs.IsKind(err, errs.KindForbidden))

	got, err := svc.Update(ctx, actorOf(admin), p.ID, dto.UpdatePropertyRequest{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Bogor", got.City)
	assert.Contains(t, idx.indexed, l.ID, "listings of the property are reindexed")
}

func TestPropertyService_DeleteRejectedWhileListed(t *testing.T) {
	store := memory.NewStore()
	owner := seedUser(t, store, "o@example.com", entity.RoleUser)
	svc := newPropertyService(store, nil, nil)
	ctx := context.Background()
	p := seedProperty(t, store, owner.ID)
	l, err := store.Listings.Save(ctx, entity.NewListing(p.ID, owner.ID, entity.ListingSale, 100, "USD", ""))
	require.NoError(t, err)

	err = svc.Delete(ctx, actorOf(owner), p.ID)
	assert.True(t, errs.IsKind(err, errs.KindConflict))

	require.NoError(t, store.Listings.DeleteByID(ctx, l.ID))
	require.NoError(t, svc.Delete(ctx, actorOf(owner), p.ID))
	_, err = svc.Get(ctx, p.ID)
	requireCode(t, err, errs.CodePropertyNotFound)
}

func TestPropertyService_Attributes(t *testing.T) {
	store := memory.NewStore()
	owner := seedUser(t, store, "o@example.com", entity.RoleUser)
	svc := newPropertyService(store, nil, nil)
	ctx := context.Background()
	p := seedProperty(t, store, owner.ID)

	pool, err := svc.CreateAttribute(ctx, dto.CreateAttributeRequest{Name: "Pool", DataType: "BOOLEAN"})
	require.NoError(t, err)
	_, err = svc.CreateAttribute(ctx, dto.CreateAttributeRequest{Name: "pool", DataType: "TEXT"})
	assert.True(t, errs.IsKind(err, errs.KindConflict))

	_, err = svc.SetAttributeValue(ctx, actorOf(owner), p.ID, dto.SetAttributeValueRequest{AttributeID: pool.ID, Value: "maybe"})
	assert.True(t, errs.IsKind(err, errs.KindValidation))

	v1, err := svc.SetAttributeValue(ctx, actorOf(owner), p.ID, dto.SetAttributeValueRequest{AttributeID: pool.ID, Value: "TRUE"})
	require.NoError(t, err)
	assert.Equal(t, "true", v1.Value)
	v2, err := svc.SetAttributeValue(ctx, actorOf(owner), p.ID, dto.SetAttributeValueRequest{AttributeID: pool.ID, Value: "false"})
	require.NoError(t, err)
	assert.Equal(t, v1.ID, v2.ID, "second set updates the same row")

	vs, err := svc.ListAttributeValues(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, vs, 1)

	require.NoError(t, svc.RemoveAttributeValue(ctx, actorOf(owner), p.ID, v1.ID))
	vs, err = svc.ListAttributeValues(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, vs)

	_, err = svc.SetAttributeValue(ctx, actorOf(owner), p.ID, dto.SetAttributeValueRequest{AttributeID: "nope", Value: "x"})
	requireCode(t, err, errs.CodeAttributeNotFound)
}

func TestPropertyService_Media(t *testing.T) {
	store := memory.NewStore()
	owner := seedUser(t, store, "o@example.com", entity.RoleUser)
	svc := newPropertyService(store, nil, nil)
	ctx := context.Background()
	p := seedProperty(t, store, owner.ID)

	m1, err := svc.UploadMedia(ctx, actorOf(owner), p.ID, "front.jpg", "image/jpeg", strings.NewReader("a"))
	require.NoError(t, err)
	m2, err := svc.UploadMedia(ctx, actorOf(owner), p.ID, "back.jpg", "image/jpeg", strings.NewReader("b"))
	require.NoError(t, err)
	assert.Equal(t, 0, m1.DisplayOrder)
	assert.Equal(t, 1, m2.DisplayOrder)

	require.NoError(t, svc.DeleteMedia(ctx, actorOf(owner), p.ID, m1.ID))
	ms, err := svc.ListMedia(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, m2.ID, ms[0].ID)

	err = svc.DeleteMedia(ctx, actorOf(owner), p.ID, m1.ID)
	requireCode(t, err, errs.CodeMediaNotFound)
}
