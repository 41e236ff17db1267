package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
)

func init() { gin.SetMode(gin.TestMode) }

func TestStatusOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", errs.ListingNotFound("x"), http.StatusNotFound},
		{"conflict", errs.Conflict("taken"), http.StatusConflict},
		{"validation", errs.Validation(errs.CodeValidationFailed, "bad"), http.StatusBadRequest},
		{"transition", errs.InvalidTransition("listing", "ARCHIVED", "ACTIVE"), http.StatusUnprocessableEntity},
		{"unauthorized", errs.Unauthorized(errs.CodeInvalidToken, "no"), http.StatusUnauthorized},
		{"forbidden", errs.Forbidden("no"), http.StatusForbidden},
		{"maps rate limited", errs.New(errs.KindExternal, errs.CodeMapsRateLimited, "slow down"), http.StatusTooManyRequests},
		{"maps quota", errs.New(errs.KindExternal, errs.CodeMapsQuotaExceeded, "quota"), http.StatusTooManyRequests},
		{"external", errs.New(errs.KindExternal, errs.CodeMapsNetworkError, "down"), http.StatusBadGateway},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusOf(tc.err))
		})
	}
}

func TestRespondError_HidesInternalCause(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	respondError(c, nil, errs.Internal("query users", errors.New("pq: password authentication failed")))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password authentication")
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestRespondError_UsesDomainMessage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	respondError(c, nil, errs.ListingNotFound("abc"))

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"LISTING_NOT_FOUND"`)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestHealth(t *testing.T) {
	h := NewHealthHandler(map[string]Check{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	})
	r := gin.New()
	r.GET("/health", h.Health)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"connection refused"`)
	assert.Contains(t, w.Body.String(), `"postgres":"ok"`)
}
