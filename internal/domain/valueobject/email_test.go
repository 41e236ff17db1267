package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
)

func TestNewEmail_Normalizes(t *testing.T) {
	e, err := NewEmail("  USER@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", e.String())
	assert.Equal(t, "example.com", e.Domain())
}

func TestNewEmail_CaseAndWhitespaceVariantsAreEqual(t *testing.T) {
	variants := []string{
		"jane.doe+ads@homes.co.uk",
		"JANE.DOE+ADS@HOMES.CO.UK",
		"\tJane.Doe+Ads@Homes.Co.Uk\n",
		"   jane.doe+ads@homes.co.uk",
	}
	first := MustEmail(variants[0])
	for _, v := range variants[1:] {
		e, err := NewEmail(v)
		require.NoError(t, err, v)
		assert.True(t, first.Equals(e), v)
		assert.Equal(t, first, e)
	}
}

func TestNewEmail_RejectsBlank(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t"} {
		_, err := NewEmail(raw)
		require.Error(t, err)
		assert.Equal(t, errs.CodeEmailRequired, errs.CodeOf(err))
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	}
}

func TestNewEmail_RejectsMalformed(t *testing.T) {
	bad := []string{
		"not-an-email",
		"user@",
		"@example.com",
		"user@example",
		"user@example.c",
		"user@exa mple.com",
		"us er@example.com",
		"user@@example.com",
		"user@example.c0m",
		"user#1@example.com",
	}
	for _, raw := range bad {
		_, err := NewEmail(raw)
		require.Error(t, err, raw)
		assert.Equal(t, errs.CodeInvalidEmailFormat, errs.CodeOf(err), raw)
	}
}

func TestEmail_TextRoundTripValidates(t *testing.T) {
	var e Email
	require.NoError(t, e.UnmarshalText([]byte(" Agent@Realty.io ")))
	b, err := e.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "agent@realty.io", string(b))

	assert.Error(t, e.UnmarshalText([]byte("nope")))
	assert.Equal(t, "agent@realty.io", e.String(), "failed unmarshal must not mutate")
}

func TestMustEmail_Panics(t *testing.T) {
	assert.Panics(t, func() { MustEmail("bad") })
	assert.True(t, Email{}.IsZero())
}
