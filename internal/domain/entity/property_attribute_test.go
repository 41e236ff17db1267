package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyAttribute_ValidateValue(t *testing.T) {
	num := &PropertyAttribute{Name: "parking", DataType: AttributeNumber}
	v, err := num.ValidateValue(" 2.50 ")
	require.NoError(t, err)
	assert.Equal(t, "2.5", v)
	_, err = num.ValidateValue("two")
	assert.Error(t, err)

	flag := &PropertyAttribute{Name: "pool", DataType: AttributeBoolean}
	v, err = flag.ValidateValue("TRUE")
	require.NoError(t, err)
	assert.Equal(t, "true", v)

	text := &PropertyAttribute{Name: "view", DataType: AttributeText}
	_, err = text.ValidateValue("  ")
	assert.Error(t, err)
}

func TestPropertyAttributeValue_MarkDeleted(t *testing.T) {
	v := &PropertyAttributeValue{}
	now := time.Now()
	v.MarkDeleted(now)
	assert.True(t, v.Deleted)
	assert.Equal(t, now, *v.DeletedAt)
}

func TestProperty_GeocodeQuery(t *testing.T) {
	p := &Property{StreetAddress: "12 Elm St", City: "Springfield", State: " ", Country: "US"}
	assert.Equal(t, "12 Elm St, Springfield, US", p.GeocodeQuery())
	assert.False(t, p.HasCoordinates())
	p.SetCoordinates(1.5, 2.5)
	assert.True(t, p.HasCoordinates())
}

func TestBookmark_Toggle(t *testing.T) {
	b := NewBookmark("u", "l")
	now := time.Now()
	assert.True(t, b.Toggle(now))
	assert.False(t, b.Toggle(now))
	b.Set(true, now)
	assert.True(t, b.Bookmarked)
}

func TestNotification_RecordDelivery(t *testing.T) {
	n := &Notification{}
	n.RecordDelivery("m1", "")
	n.RecordDelivery("m2", "device gone")
	n.RecordDelivery("", "quota")
	assert.Equal(t, "m1", n.ProviderMessageID)
	assert.Equal(t, "device gone; quota", n.DeliveryError)
}
