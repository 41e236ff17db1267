package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/estate-listing-api/internal/domain/valueobject"
)

func TestUser_FullName(t *testing.T) {
	cases := []struct {
		first, last, want string
	}{
		{"Ada", "Lovelace", "Ada Lovelace"},
		{" Ada ", "", "Ada"},
		{"", "Lovelace", "Lovelace"},
		{"", "  ", ""},
	}
	for _, tc := range cases {
		u := &User{FirstName: tc.first, LastName: tc.last}
		assert.Equal(t, tc.want, u.FullName())
	}
}

func TestNewUser_Defaults(t *testing.T) {
	u := NewUser(valueobject.MustEmail("a@b.io"), "hash", "A", "B")
	assert.Equal(t, RoleUser, u.Role)
	assert.True(t, u.IsActive())
	assert.False(t, u.IsAdmin())
}

func TestUser_StatusChanges(t *testing.T) {
	u := NewUser(valueobject.MustEmail("a@b.io"), "hash", "A", "B")
	require.NoError(t, u.Suspend())
	assert.False(t, u.IsActive())
	require.NoError(t, u.Reactivate())
	u.SoftDelete()
	assert.Error(t, u.Reactivate())
	assert.Error(t, u.Suspend())
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("agent")
	require.NoError(t, err)
	assert.Equal(t, RoleAgent, r)
	_, err = ParseRole("root")
	assert.Error(t, err)
}
