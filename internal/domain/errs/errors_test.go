package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorWrapUnwrap(t *testing.T) {
	root := errors.New("connection reset")
	err := MapsNetworkError(root)

	require.ErrorIs(t, err, root)
	assert.Equal(t, KindExternal, err.Kind)
	assert.Equal(t, CodeMapsNetworkError, err.Code)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestErrorsIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("load listing: %w", ListingNotFound("42"))

	assert.True(t, errors.Is(err, &Error{Code: CodeListingNotFound}))
	assert.False(t, errors.Is(err, &Error{Code: CodeUserNotFound}))
	assert.True(t, IsCode(err, CodeListingNotFound))
	assert.True(t, IsKind(err, KindNotFound))
}

func TestClassifiersOnForeignErrors(t *testing.T) {
	err := errors.New("boom")

	assert.Equal(t, CodeInternal, CodeOf(err))
	assert.Equal(t, KindInternal, KindOf(err))
	assert.False(t, IsKind(err, KindNotFound))
}

func TestNamedExternalConstructors(t *testing.T) {
	cases := []struct {
		err  *Error
		code Code
	}{
		{MapsQuotaExceeded(nil), CodeMapsQuotaExceeded},
		{MapsRateLimited(nil), CodeMapsRateLimited},
		{MapsInvalidCredentials(nil), CodeMapsInvalidCredentials},
		{MapsNetworkError(nil), CodeMapsNetworkError},
		{MapsGeocodeFailed("12 Elm St", nil), CodeMapsGeocodeFailed},
		{MailSendFailed("a@b.co", nil), CodeMailSendFailed},
		{PushSendFailed("token", nil), CodePushSendFailed},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code)
		assert.Equal(t, KindExternal, tc.err.Kind)
	}
}

func TestNotFoundMessages(t *testing.T) {
	assert.Equal(t, "USER_NOT_FOUND: user not found with id: u1", UserNotFound("u1").Error())
	assert.Equal(t, CodeResourceNotFound, NotFound("thing", "1").Code)
	assert.Equal(t, CodeValidationFailed, Validation("", "bad").Code)
}
