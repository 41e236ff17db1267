package dto

import "time"

type AuthResponse struct {
	Token     string    `json:"token"`
	Type      string    `json:"type"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	FullName   string    `json:"full_name"`
	Phone      string    `json:"phone,omitempty"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UserSearchHit is one result of the users search index.
type UserSearchHit struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type PropertyResponse struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"owner_id"`
	Type          string    `json:"property_type"`
	StreetAddress string    `json:"street_address"`
	City          string    `json:"city"`
	State         string    `json:"state,omitempty"`
	PostalCode    string    `json:"postal_code,omitempty"`
	Country       string    `json:"country"`
	Bedrooms      int       `json:"bedrooms"`
	Bathrooms     int       `json:"bathrooms"`
	AreaSqm       float64   `json:"area_sqm"`
	YearBuilt     int       `json:"year_built,omitempty"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type AttributeResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	DataType string `json:"data_type"`
	Unit     string `json:"unit,omitempty"`
}

type AttributeValueResponse struct {
	ID          string    `json:"id"`
	PropertyID  string    `json:"property_id"`
	AttributeID string    `json:"attribute_id"`
	Name        string    `json:"name,omitempty"`
	DataType    string    `json:"data_type,omitempty"`
	Unit        string    `json:"unit,omitempty"`
	Value       string    `json:"value"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type MediaResponse struct {
	ID           string    `json:"id"`
	PropertyID   string    `json:"property_id"`
	URL          string    `json:"url"`
	ContentType  string    `json:"content_type,omitempty"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type ListingResponse struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	PropertyID   string            `json:"property_id"`
	OwnerID      string            `json:"owner_id"`
	Type         string            `json:"listing_type"`
	Status       string            `json:"status"`
	Price        float64           `json:"price"`
	Currency     string            `json:"currency"`
	Description  string            `json:"description,omitempty"`
	ThumbnailURL *string           `json:"thumbnail_url"`
	Property     *PropertyResponse `json:"property,omitempty"`
	PublishedAt  *time.Time        `json:"published_at,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type ListingSummaryResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Type         string  `json:"listing_type"`
	Status       string  `json:"status"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	City         string  `json:"city,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url"`
}

type ProposalResponse struct {
	ID             string    `json:"id"`
	AgentID        string    `json:"agent_id"`
	PropertyID     string    `json:"property_id"`
	Status         string    `json:"status"`
	CommissionRate float64   `json:"commission_rate"`
	Pitch          string    `json:"pitch,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type BookmarkResponse struct {
	ListingID  string                  `json:"listing_id"`
	Bookmarked bool                    `json:"bookmarked"`
	Address    string                  `json:"address"`
	Listing    *ListingSummaryResponse `json:"listing,omitempty"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

type NotificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Read      bool      `json:"read"`
	Delivered bool      `json:"delivered"`
	CreatedAt time.Time `json:"created_at"`
}

type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type PageResponse[T any] struct {
	Items []T      `json:"items"`
	Meta  PageMeta `json:"meta"`
}

func NewPage[T any](items []T, page, limit int, total int64) PageResponse[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return PageResponse[T]{Items: items, Meta: PageMeta{Page: page, Limit: limit, Total: total, TotalPages: pages}}
}
