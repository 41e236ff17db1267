package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
)

func TestListing_PublishKeepsFirstPublishedAt(t *testing.T) {
	l := NewListing("p1", "u1", ListingRent, 1200, "usd", "")
	assert.Equal(t, ListingDraft, l.Status)
	assert.Equal(t, "USD", l.Currency)

	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, l.Publish(first))
	require.NoError(t, l.MarkPending())
	require.NoError(t, l.Publish(first.Add(time.Hour)))

	assert.Equal(t, ListingActive, l.Status)
	assert.Equal(t, first, *l.PublishedAt)
}

func TestListing_CloseDependsOnType(t *testing.T) {
	sale := NewListing("p1", "u1", ListingSale, 1, "EUR", "")
	require.NoError(t, sale.Publish(time.Now()))
	require.NoError(t, sale.Close())
	assert.Equal(t, ListingSold, sale.Status)

	rent := NewListing("p1", "u1", ListingRent, 1, "EUR", "")
	require.NoError(t, rent.Publish(time.Now()))
	require.NoError(t, rent.Close())
	assert.Equal(t, ListingRented, rent.Status)
}

func TestListing_InvalidTransitions(t *testing.T) {
	l := NewListing("p1", "u1", ListingSale, 1, "EUR", "")

	err := l.Close()
	require.Error(t, err)
	assert.Equal(t, errs.CodeInvalidStatusTransition, errs.CodeOf(err))

	require.NoError(t, l.Archive())
	require.NoError(t, l.Archive(), "archiving twice is a no-op")
	assert.Error(t, l.Publish(time.Now()))
	assert.Equal(t, ListingArchived, l.Status)
}

func TestParseListingStatus(t *testing.T) {
	st, err := ParseListingStatus(" archived ")
	require.NoError(t, err)
	assert.Equal(t, ListingArchived, st)

	_, err = ParseListingStatus("gone")
	assert.Error(t, err)
}
