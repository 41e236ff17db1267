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
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/cache"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/memory"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/storage"
)

func newUserFixture() (*memory.Store, *cache.MemorySessionStore, *UserService) {
	store := memory.NewStore()
	sessions := cache.NewMemorySessionStore(0)
	svc := NewUserService(store.Users, sessions, storage.NewMemoryStore("http://media.test"), nil, nil)
	return store, sessions, svc
}

func TestUserService_UpdateProfile(t *testing.T) {
	store, _, svc := newUserFixture()
	u := seedUser(t, store, "ada@example.com", entity.RoleUser)

	first, phone := "  Grace ", "+628123"
	got, err := svc.UpdateProfile(context.Background(), u.ID, dto.UpdateProfileRequest{FirstName: &first, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Grace", got.FirstName)
	assert.Equal(t, "+628123", got.Phone)
	assert.Equal(t, "Grace ada", got.FullName())

	_, err = svc.UpdateProfile(context.Background(), "missing", dto.UpdateProfileRequest{})
	requireCode(t, err, errs.CodeUserNotFound)
}

func TestUserService_UploadAvatar(t *testing.T) {
	store, _, svc := newUserFixture()
	u := seedUser(t, store, "ada@example.com", entity.RoleUser)

	got, err := svc.UploadAvatar(context.Background(), u.ID, "me.png", "image/png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got.AvatarURL, "http://media.test/avatars/"+u.ID+"/"))
}

func TestUserService_ChangeRoleRevokesSession(t *testing.T) {
	store, sessions, svc := newUserFixture()
	ctx := context.Background()
	admin := seedUser(t, store, "root@example.com", entity.RoleAdmin)
	u := seedUser(t, store, "ada@example.com", entity.RoleUser)
	require.NoError(t, sessions.Start(ctx, cache.Session{UserID: u.ID, SessionID: "s1"}))

	got, err := svc.ChangeRole(ctx, actorOf(admin), u.ID, "agent")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAgent, got.Role)
	_, live, _ := sessions.Get(ctx, u.ID)
	assert.False(t, live)

	_, err = svc.ChangeRole(ctx, actorOf(admin), admin.ID, "USER")
	assert.True(t, errs.IsKind(err, errs.KindConflict))

	_, err = svc.ChangeRole(ctx, actorOf(admin), u.ID, "OWNER")
	assert.True(t, errs.IsKind(err, errs.KindValidation))
}

func TestUserService_ChangeStatusAndDelete(t *testing.T) {
	store, _, svc := newUserFixture()
	ctx := context.Background()
	admin := seedUser(t, store, "root@example.com", entity.RoleAdmin)
	u := seedUser(t, store, "ada@example.com", entity.RoleUser)

	got, err := svc.ChangeStatus(ctx, actorOf(admin), u.ID, "SUSPENDED")
	require.NoError(t, err)
	assert.False(t, got.IsActive())

	got, err = svc.ChangeStatus(ctx, actorOf(admin), u.ID, "ACTIVE")
	require.NoError(t, err)
	assert.True(t, got.IsActive())

	require.NoError(t, svc.Delete(ctx, actorOf(admin), u.ID))
	stored, err := store.Users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusDeleted, stored.Status)

	_, err = svc.ChangeStatus(ctx, actorOf(admin), u.ID, "ACTIVE")
	requireCode(t, err, errs.CodeInvalidStatusTransition)
}

func TestUserService_ListAndSearchWithoutIndex(t *testing.T) {
	store, _, svc := newUserFixture()
	seedUser(t, store, "a@example.com", entity.RoleUser)
	seedUser(t, store, "b@example.com", entity.RoleUser)

	users, total, err := svc.List(context.Background(), repository.Page{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.EqualValues(t, 2, total)

	hits, err := svc.Search(context.Background(), "a", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
