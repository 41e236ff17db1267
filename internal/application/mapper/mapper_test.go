package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/estate-listing-api/internal/application/dto"
	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/internal/domain/valueobject"
)

func TestListingTitle(t *testing.T) {
	tests := []struct {
		name string
		l    *entity.Listing
		want string
	}{
		{"with property", &entity.Listing{Property: &entity.Property{StreetAddress: "12 Elm St"}}, "Property at 12 Elm St"},
		{"no property", &entity.Listing{}, "Untitled Listing"},
		{"blank street", &entity.Listing{Property: &entity.Property{StreetAddress: "  "}}, "Untitled Listing"},
		{"nil listing", nil, "Untitled Listing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ListingTitle(tt.l))
		})
	}
}

func TestBookmarkAddress(t *testing.T) {
	withAddr := &entity.Bookmark{Listing: &entity.Listing{Property: &entity.Property{StreetAddress: "9 Oak Ave"}}}
	assert.Equal(t, "9 Oak Ave", BookmarkAddress(withAddr))
	assert.Equal(t, "Address not available", BookmarkAddress(&entity.Bookmark{}))
	assert.Equal(t, "Address not available", BookmarkAddress(&entity.Bookmark{Listing: &entity.Listing{}}))
}

func TestToListingResponse_ThumbnailPending(t *testing.T) {
	l := &entity.Listing{ID: "l1", Type: entity.ListingSale, Status: entity.ListingActive, Property: &entity.Property{StreetAddress: "1 Main", City: "Depok"}}
	r := ToListingResponse(l)
	assert.Nil(t, r.ThumbnailURL)
	assert.Equal(t, "Property at 1 Main", r.Title)
	require.NotNil(t, r.Property)

	s := ToListingSummary(l)
	assert.Nil(t, s.ThumbnailURL)
	assert.Equal(t, "Depok", s.City)
}

func TestToAuthResponse(t *testing.T) {
	u := entity.NewUser(valueobject.MustEmail("a@b.io"), "h", "A", "B")
	u.ID = "u1"
	exp := time.Now()
	r := ToAuthResponse("tok", exp, u)
	assert.Equal(t, dto.AuthResponse{Token: "tok", Type: "Bearer", UserID: "u1", Email: "a@b.io", ExpiresAt: exp}, r)
}

func TestToUserResponse_UsesFullName(t *testing.T) {
	u := entity.NewUser(valueobject.MustEmail("a@b.io"), "h", " Ada ", "")
	assert.Equal(t, "Ada", ToUserResponse(u).FullName)
}

func TestNewPropertyFromRequest(t *testing.T) {
	lat := 1.5
	_, err := NewPropertyFromRequest("o", dto.CreatePropertyRequest{Type: "house", Latitude: &lat})
	assert.True(t, errs.IsCode(err, errs.CodeValidationFailed))

	lng := 2.5
	p, err := NewPropertyFromRequest("o", dto.CreatePropertyRequest{Type: "house", StreetAddress: " 1 Main ", Latitude: &lat, Longitude: &lng})
	require.NoError(t, err)
	assert.Equal(t, entity.PropertyHouse, p.Type)
	assert.Equal(t, "1 Main", p.StreetAddress)
	assert.True(t, p.HasCoordinates())
}

func TestApplyPropertyUpdate_AddressChangeClearsCoordinates(t *testing.T) {
	p := &entity.Property{StreetAddress: "1 Main", City: "Depok"}
	p.SetCoordinates(1, 2)
	street := "2 Main"
	changed, err := ApplyPropertyUpdate(p, dto.UpdatePropertyRequest{StreetAddress: &street})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.False(t, p.HasCoordinates())

	beds := 3
	changed, err = ApplyPropertyUpdate(p, dto.UpdatePropertyRequest{Bedrooms: &beds})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 3, p.Bedrooms)
}

func TestNewListingFromRequest_DefaultCurrency(t *testing.T) {
	l, err := NewListingFromRequest("o", dto.CreateListingRequest{PropertyID: "p", Type: "RENT", Price: 10})
	require.NoError(t, err)
	assert.Equal(t, "USD", l.Currency)
	assert.Equal(t, entity.ListingDraft, l.Status)
}

func TestApplyListingUpdate_TypeFrozenAfterDraft(t *testing.T) {
	l := &entity.Listing{Type: entity.ListingSale, Status: entity.ListingActive}
	rent := "RENT"
	err := ApplyListingUpdate(l, dto.UpdateListingRequest{Type: &rent})
	assert.True(t, errs.IsKind(err, errs.KindConflict))
}

func TestListingFilterFromQuery(t *testing.T) {
	lo, hi := 10.0, 5.0
	_, err := ListingFilterFromQuery(dto.ListingQuery{MinPrice: &lo, MaxPrice: &hi})
	assert.Error(t, err)

	f, err := ListingFilterFromQuery(dto.ListingQuery{Type: "sale", Status: "active", City: " Bogor ", Page: 0})
	require.NoError(t, err)
	assert.Equal(t, entity.ListingSale, f.Type)
	assert.Equal(t, entity.ListingActive, f.Status)
	assert.Equal(t, "Bogor", f.City)
	assert.Equal(t, 1, f.Page.Page)
}

func TestToBookmarkResponses(t *testing.T) {
	bs := []*entity.Bookmark{{ListingID: "l1", Bookmarked: true}}
	out := ToBookmarkResponses(bs)
	require.Len(t, out, 1)
	assert.Equal(t, "Address not available", out[0].Address)
	assert.Nil(t, out[0].Listing)
}
