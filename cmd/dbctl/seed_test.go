package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/estate-listing-api/internal/container"
	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
	"github.com/oksasatya/estate-listing-api/internal/domain/valueobject"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/memory"
	"github.com/oksasatya/estate-listing-api/pkg/helpers"
)

func TestSeed_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos := container.MemoryRepos(memory.NewStore())
	users := []seedUser{
		{Email: "Admin@Example.com", Password: "password123", FirstName: "Admin", Role: entity.RoleAdmin},
		{Email: "agent@example.com", Password: "password123", FirstName: "Agent", Role: entity.RoleAgent},
	}

	var out bytes.Buffer
	require.NoError(t, seed(ctx, repos, users, &out))
	require.NoError(t, seed(ctx, repos, users, &out))

	_, total, err := repos.Users.List(ctx, repository.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	admin, err := repos.Users.FindByEmail(ctx, valueobject.MustEmail("admin@example.com"))
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.True(t, admin.IsVerified)
	assert.True(t, helpers.CheckPassword(admin.PasswordHash, "password123"))

	attrs, err := repos.Attributes.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, attrs, len(defaultAttributes))
	assert.Contains(t, out.String(), `attribute "Furnished" exists`)
}

func TestSeed_PromotesExistingUser(t *testing.T) {
	ctx := context.Background()
	repos := container.MemoryRepos(memory.NewStore())
	u := entity.NewUser(valueobject.MustEmail("agent@example.com"), "hash", "Already", "Here")
	_, err := repos.Users.Save(ctx, u)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, seed(ctx, repos, []seedUser{{Email: "agent@example.com", Password: "x", Role: entity.RoleAgent}}, &out))

	got, err := repos.Users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAgent, got.Role)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.Equal(t, "Already", got.FirstName)
}
