package validation

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/estate-listing-api/internal/application/dto"
)

func bind(t *testing.T, body string, dst any) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	Init()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c.ShouldBindJSON(dst)
}

func TestToDetails_AggregatesEveryField(t *testing.T) {
	var req dto.RegisterRequest
	err := bind(t, `{"email":"nope","password":"short","phone":"abc"}`, &req)
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be at least 8 characters with a letter and a digit", details["password"])
	assert.Equal(t, "is required", details["first_name"])
	assert.Equal(t, "must be a valid phone number", details["phone"])
}

func TestCustomEnumTags(t *testing.T) {
	var ok dto.CreateListingRequest
	require.NoError(t, bind(t, `{"property_id":"6f1c1f5e-8a5b-4a4e-9d8e-0c7a4b7e2f11","listing_type":"rent","price":10}`, &ok))

	var bad dto.CreateListingRequest
	err := bind(t, `{"property_id":"x","listing_type":"LEASE","price":0}`, &bad)
	require.Error(t, err)
	details := ToDetails(err)
	assert.Equal(t, "must be a valid UUID", details["property_id"])
	assert.Equal(t, "must be one of: SALE, RENT", details["listing_type"])
	assert.Equal(t, "is required", details["price"])

	var role dto.UpdateRoleRequest
	assert.Error(t, bind(t, `{"role":"OWNER"}`, &role))
	assert.NoError(t, bind(t, `{"role":"agent"}`, &role))
}

func TestToDetails_MalformedJSON(t *testing.T) {
	var req dto.LoginRequest
	err := bind(t, `{"email":`, &req)
	require.Error(t, err)
	assert.Contains(t, ToDetails(err), "payload")

	err = bind(t, `{"email":42,"password":"x"}`, &req)
	require.Error(t, err)
	assert.Equal(t, "must be of type string", ToDetails(err)["email"])
}
