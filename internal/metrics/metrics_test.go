package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(ListingTransitionsTotal.WithLabelValues("ACTIVE"))
	ListingTransitionsTotal.WithLabelValues("ACTIVE").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(ListingTransitionsTotal.WithLabelValues("ACTIVE")))
}

func TestResult(t *testing.T) {
	assert.Equal(t, "ok", Result(nil))
	assert.Equal(t, "error", Result(errors.New("x")))
}
