package entity

import "time"

// PropertyMedia is an uploaded photo or document attached to a property.
type PropertyMedia struct {
	ID           string
	PropertyID   string
	URL          string
	ObjectPath   string
	ContentType  string
	DisplayOrder int
	CreatedAt    time.Time
}
