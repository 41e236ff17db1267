package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
	"github.com/oksasatya/estate-listing-api/internal/domain/valueobject"
)

func seedProperty(t *testing.T, s *Store, owner, street, city string) *entity.Property {
	t.Helper()
	p, err := s.Properties.Save(context.Background(), &entity.Property{
		OwnerID: owner, Type: entity.PropertyHouse, StreetAddress: street, City: city,
	})
	require.NoError(t, err)
	return p
}

func seedListing(t *testing.T, s *Store, p *entity.Property, typ entity.ListingType, price float64, status entity.ListingStatus) *entity.Listing {
	t.Helper()
	l := entity.NewListing(p.ID, p.OwnerID, typ, price, "USD", "bright corner unit")
	l.Status = status
	l, err := s.Listings.Save(context.Background(), l)
	require.NoError(t, err)
	return l
}

func TestDeleteByID_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	deleters := map[string]func(context.Context, string) error{
		"users":            s.Users.DeleteByID,
		"properties":       s.Properties.DeleteByID,
		"attributes":       s.Attributes.DeleteByID,
		"attribute_values": s.AttributeValues.DeleteByID,
		"media":            s.Media.DeleteByID,
		"listings":         s.Listings.DeleteByID,
		"proposals":        s.Proposals.DeleteByID,
		"bookmarks":        s.Bookmarks.DeleteByID,
		"notifications":    s.Notifications.DeleteByID,
		"devices":          s.Devices.DeleteByID,
	}
	for name, del := range deleters {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, del(ctx, "missing"))
			assert.NoError(t, del(ctx, "missing"))
		})
	}
}

func TestUserRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	u, err := s.Users.Save(ctx, entity.NewUser(valueobject.MustEmail("Jane@Example.com"), "h", "Jane", "Doe"))
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)

	got, err := s.Users.FindByEmail(ctx, valueobject.MustEmail(" jane@example.COM "))
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.Users.Save(ctx, entity.NewUser(valueobject.MustEmail("jane@example.com"), "h", "Other", ""))
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	got.FirstName = "mutated"
	again, _ := s.Users.FindByID(ctx, u.ID)
	assert.Equal(t, "Jane", again.FirstName, "reads return copies")

	require.NoError(t, s.Users.DeleteByID(ctx, u.ID))
	_, err = s.Users.FindByID(ctx, u.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSave_UnknownIDIsNotFound(t *testing.T) {
	s := NewStore()
	_, err := s.Proposals.Save(context.Background(), &entity.AgentProposal{ID: "ghost"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListingRepository_SearchFilters(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	austin := seedProperty(t, s, "u1", "1 Oak Ave", "Austin")
	dallas := seedProperty(t, s, "u2", "9 Pine Rd", "Dallas")

	seedListing(t, s, austin, entity.ListingSale, 300000, entity.ListingActive)
	seedListing(t, s, austin, entity.ListingRent, 1500, entity.ListingActive)
	seedListing(t, s, dallas, entity.ListingSale, 450000, entity.ListingDraft)

	lo := 1000.0
	hi := 400000.0
	got, total, err := s.Listings.Search(ctx, repository.ListingFilter{
		City: "austin", MinPrice: &lo, MaxPrice: &hi, Status: entity.ListingActive,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, l := range got {
		require.NotNil(t, l.Property)
		assert.Equal(t, "Austin", l.Property.City)
	}

	got, total, err = s.Listings.Search(ctx, repository.ListingFilter{Text: "PINE"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, dallas.ID, got[0].PropertyID)

	got, total, err = s.Listings.Search(ctx, repository.ListingFilter{Page: repository.Page{Page: 2, Limit: 2}})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, got, 1)
}

func TestListingRepository_SaveRequiresProperty(t *testing.T) {
	s := NewStore()
	_, err := s.Listings.Save(context.Background(), entity.NewListing("nope", "u1", entity.ListingSale, 1, "USD", ""))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBookmarkRepository_LoadsListingNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	p := seedProperty(t, s, "owner", "5 Elm St", "Reno")
	l1 := seedListing(t, s, p, entity.ListingSale, 1, entity.ListingActive)
	l2 := seedListing(t, s, p, entity.ListingRent, 2, entity.ListingActive)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	b1 := entity.NewBookmark("u", l1.ID)
	b1.Set(true, base)
	_, err := s.Bookmarks.Save(ctx, b1)
	require.NoError(t, err)
	b2 := entity.NewBookmark("u", l2.ID)
	b2.Set(true, base.Add(time.Minute))
	_, err = s.Bookmarks.Save(ctx, b2)
	require.NoError(t, err)

	got, err := s.Bookmarks.FindBookmarkedByUserID(ctx, "u")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, l2.ID, got[0].ListingID)
	require.NotNil(t, got[0].Listing)
	assert.Equal(t, "5 Elm St", got[0].Listing.Property.StreetAddress)

	require.NoError(t, s.Bookmarks.DeleteByListingID(ctx, l1.ID))
	got, _ = s.Bookmarks.FindBookmarkedByUserID(ctx, "u")
	assert.Len(t, got, 1)
}

func TestBookmarkRepository_FirstSaveUpsertsExistingPair(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	p := seedProperty(t, s, "owner", "5 Elm St", "Reno")
	l := seedListing(t, s, p, entity.ListingSale, 1, entity.ListingActive)

	first := entity.NewBookmark("u", l.ID)
	first.Set(true, time.Now())
	_, err := s.Bookmarks.Save(ctx, first)
	require.NoError(t, err)

	// a second writer that missed the row also saves a fresh bookmark
	late := entity.NewBookmark("u", l.ID)
	late.Set(false, time.Now())
	saved, err := s.Bookmarks.Save(ctx, late)
	require.NoError(t, err)
	assert.Equal(t, first.ID, saved.ID)

	got, err := s.Bookmarks.FindByUserAndListing(ctx, "u", l.ID)
	require.NoError(t, err)
	assert.False(t, got.Bookmarked)

	other := entity.NewBookmark("u", l.ID)
	other.ID = "another-id"
	_, err = s.Bookmarks.Save(ctx, other)
	assert.ErrorIs(t, err, repository.ErrDuplicate, "a different row may not claim the pair")
}

func TestAttributeValueRepository_SoftDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	attr, err := s.Attributes.Save(ctx, &entity.PropertyAttribute{Name: "Pool", DataType: entity.AttributeBoolean})
	require.NoError(t, err)
	_, err = s.Attributes.Save(ctx, &entity.PropertyAttribute{Name: "pool", DataType: entity.AttributeText})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	v, err := s.AttributeValues.Save(ctx, &entity.PropertyAttributeValue{PropertyID: "p", AttributeID: attr.ID, Value: "true"})
	require.NoError(t, err)

	found, err := s.AttributeValues.FindByPropertyAndAttribute(ctx, "p", attr.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Attribute)
	assert.Equal(t, "Pool", found.Attribute.Name)

	require.NoError(t, s.AttributeValues.DeleteByID(ctx, v.ID))
	_, err = s.AttributeValues.FindByID(ctx, v.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	vals, _ := s.AttributeValues.FindByPropertyID(ctx, "p")
	assert.Empty(t, vals)
	ok, _ := s.AttributeValues.ExistsByID(ctx, v.ID)
	assert.False(t, ok)
}

func TestMediaRepository_OrderedByDisplayOrder(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	for _, order := range []int{2, 0, 1} {
		_, err := s.Media.Save(ctx, &entity.PropertyMedia{PropertyID: "p", DisplayOrder: order})
		require.NoError(t, err)
	}
	media, err := s.Media.FindByPropertyID(ctx, "p")
	require.NoError(t, err)
	require.Len(t, media, 3)
	for i, m := range media {
		assert.Equal(t, i, m.DisplayOrder)
	}
	n, _ := s.Media.CountByPropertyID(ctx, "p")
	assert.Equal(t, 3, n)
}

func TestNotificationRepository_UnreadAndPaging(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	for i := 0; i < 3; i++ {
		_, err := s.Notifications.Save(ctx, &entity.Notification{UserID: "u", Title: "t"})
		require.NoError(t, err)
	}
	page, total, err := s.Notifications.FindByUserID(ctx, "u", repository.Page{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, page, 2)

	page[0].MarkRead()
	_, err = s.Notifications.Save(ctx, page[0])
	require.NoError(t, err)
	unread, _ := s.Notifications.CountUnread(ctx, "u")
	assert.EqualValues(t, 2, unread)
}

func TestNotificationRepository_RecordDeliveryKeepsReadFlag(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	n, err := s.Notifications.Save(ctx, &entity.Notification{UserID: "u", Title: "t"})
	require.NoError(t, err)
	stale := *n

	n.MarkRead()
	_, err = s.Notifications.Save(ctx, n)
	require.NoError(t, err)
	require.NoError(t, s.Notifications.RecordDelivery(ctx, n.ID, "m1", ""))
	require.NoError(t, s.Notifications.RecordDelivery(ctx, n.ID, "m2", "boom"))

	got, err := s.Notifications.FindByID(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, got.Read)
	assert.Equal(t, "m1", got.ProviderMessageID)
	assert.Equal(t, "boom", got.DeliveryError)

	// saving an old copy only touches the read flag
	_, err = s.Notifications.Save(ctx, &stale)
	require.NoError(t, err)
	got, _ = s.Notifications.FindByID(ctx, n.ID)
	assert.Equal(t, "m1", got.ProviderMessageID)

	assert.ErrorIs(t, s.Notifications.RecordDelivery(ctx, "missing", "m", ""), repository.ErrNotFound)
}

func TestDeviceTokenRepository_TokenUnique(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	_, err := s.Devices.Save(ctx, &entity.DeviceToken{UserID: "u", Token: "tok", Platform: entity.PlatformIOS})
	require.NoError(t, err)
	_, err = s.Devices.Save(ctx, &entity.DeviceToken{UserID: "v", Token: "tok", Platform: entity.PlatformIOS})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	require.NoError(t, s.Devices.DeleteByToken(ctx, "tok"))
	require.NoError(t, s.Devices.DeleteByToken(ctx, "tok"))
	_, err = s.Devices.FindByToken(ctx, "tok")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
