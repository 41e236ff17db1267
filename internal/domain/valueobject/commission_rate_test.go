package valueobject

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
)

func TestNewCommissionRate_Bounds(t *testing.T) {
	for _, ok := range []float64{0, 2.5, 100} {
		_, err := NewCommissionRate(ok)
		assert.NoError(t, err, ok)
	}
	for _, bad := range []float64{-0.01, 100.01, math.NaN(), math.Inf(1)} {
		_, err := NewCommissionRate(bad)
		require.Error(t, err)
		assert.Equal(t, errs.CodeInvalidCommissionRate, errs.CodeOf(err))
	}
}

func TestCommissionRate_RoundsAndApplies(t *testing.T) {
	r, err := NewCommissionRate(3.456)
	require.NoError(t, err)
	assert.Equal(t, 3.46, r.Percent())
	assert.Equal(t, "3.46%", r.String())

	r, _ = NewCommissionRate(3)
	assert.Equal(t, 15000.0, r.Of(500000))
}
