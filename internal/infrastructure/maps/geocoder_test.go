package maps

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmaps "googlemaps.github.io/maps"

	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
)

type fakeAPI struct {
	results []gmaps.GeocodingResult
	err     error
	calls   int
	last    string
}

func (f *fakeAPI) Geocode(_ context.Context, r *gmaps.GeocodingRequest) ([]gmaps.GeocodingResult, error) {
	f.calls++
	f.last = r.Address
	return f.results, f.err
}

func TestGeocode_ReturnsFirstResult(t *testing.T) {
	api := &fakeAPI{results: []gmaps.GeocodingResult{{
		FormattedAddress: "1600 Amphitheatre Pkwy, Mountain View, CA",
		PlaceID:          "pid",
		Geometry:         gmaps.AddressGeometry{Location: gmaps.LatLng{Lat: 37.42, Lng: -122.08}},
	}}}
	g := newGeocoder(api, nil, 0, nil)

	loc, err := g.Geocode(context.Background(), "  1600 Amphitheatre Pkwy ")
	require.NoError(t, err)
	assert.Equal(t, "1600 Amphitheatre Pkwy", api.last)
	assert.Equal(t, 37.42, loc.Lat)
	assert.Equal(t, -122.08, loc.Lng)
	assert.Equal(t, "pid", loc.PlaceID)
}

func TestGeocode_ZeroResults(t *testing.T) {
	g := newGeocoder(&fakeAPI{}, nil, 0, nil)
	_, err := g.Geocode(context.Background(), "nowhere")
	assert.Equal(t, errs.CodeMapsGeocodeFailed, errs.CodeOf(err))
}

func TestGeocode_EmptyAddressSkipsAPI(t *testing.T) {
	api := &fakeAPI{}
	g := newGeocoder(api, nil, 0, nil)
	_, err := g.Geocode(context.Background(), "   ")
	assert.Equal(t, errs.CodeMapsGeocodeFailed, errs.CodeOf(err))
	assert.Zero(t, api.calls)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want errs.Code
	}{
		{errors.New("maps: OVER_QUERY_LIMIT - You have exceeded your rate-limit"), errs.CodeMapsQuotaExceeded},
		{errors.New("maps: OVER_DAILY_LIMIT - billing"), errs.CodeMapsRateLimited},
		{errors.New("rate: Wait(n=1) would exceed context deadline"), errs.CodeMapsRateLimited},
		{errors.New("maps: REQUEST_DENIED - The provided API key is invalid."), errs.CodeMapsInvalidCredentials},
		{context.DeadlineExceeded, errs.CodeMapsNetworkError},
		{errors.New("maps: INVALID_REQUEST - "), errs.CodeMapsGeocodeFailed},
		{errors.New("maps: ZERO_RESULTS - 429 Elm St OVER_QUERY_LIMIT"), errs.CodeMapsGeocodeFailed},
	}
	for _, tc := range cases {
		got := classify("addr", tc.err)
		assert.Equal(t, tc.want, errs.CodeOf(got), tc.err.Error())
		assert.ErrorIs(t, got, tc.err)
	}
}

func TestClassify_TransportErrorHidesRequestURL(t *testing.T) {
	dial := errors.New("dial tcp: i/o timeout")
	err := &url.Error{
		Op:  "Get",
		URL: "https://maps.googleapis.com/maps/api/geocode/json?address=429+Elm+St&key=SECRET",
		Err: dial,
	}

	got := classify("429 Elm St", err)
	assert.Equal(t, errs.CodeMapsNetworkError, errs.CodeOf(got))
	assert.ErrorIs(t, got, dial)

	var de *errs.Error
	require.ErrorAs(t, got, &de)
	require.NotNil(t, de.Cause)
	assert.NotContains(t, de.Cause.Error(), "SECRET")
	assert.NotContains(t, de.Cause.Error(), "429")
}
