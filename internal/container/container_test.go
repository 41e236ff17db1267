package container

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/estate-listing-api/config"
	"github.com/oksasatya/estate-listing-api/pkg/helpers"
)

func TestBuild_MemoryStore(t *testing.T) {
	cfg := &config.Config{
		AppName:      "estate-test",
		StoreDriver:  "memory",
		AccessTTL:    time.Minute,
		RefreshTTL:   time.Hour,
		SessionTTL:   time.Hour,
		MailTimezone: "Nowhere/Invalid",
	}
	c, err := Build(context.Background(), cfg, helpers.OrNop(nil))
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.Pool)
	assert.Nil(t, c.Redis)
	assert.Nil(t, c.ES)
	assert.Empty(t, c.Checks)

	assert.NotNil(t, c.Repos.Users)
	assert.NotNil(t, c.Repos.Devices)
	assert.NotNil(t, c.Sessions)
	assert.NotNil(t, c.Auth)
	assert.NotNil(t, c.Listings)
	assert.NotNil(t, c.Proposals)
	assert.NotNil(t, c.Notifications)
	assert.False(t, c.Mail.Enabled())
}
