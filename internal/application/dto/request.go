// Package dto holds the request and response shapes of the HTTP API.
// Request structs are validated by gin's binding with go-playground/validator.
package dto

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Password  string `json:"password" binding:"required,pwd,max=72"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"max=100"`
	Phone     string `json:"phone" binding:"omitempty,phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest may be empty when the refresh_token cookie is present.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type PasswordResetConfirmRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,pwd,max=72"`
}

type VerifyConfirmRequest struct {
	Token string `json:"token" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,phone"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,role"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE SUSPENDED"`
}

type CreatePropertyRequest struct {
	Type          string   `json:"property_type" binding:"required,property_type"`
	StreetAddress string   `json:"street_address" binding:"required,max=255"`
	City          string   `json:"city" binding:"required,max=100"`
	State         string   `json:"state" binding:"max=100"`
	PostalCode    string   `json:"postal_code" binding:"max=20"`
	Country       string   `json:"country" binding:"required,max=100"`
	Bedrooms      int      `json:"bedrooms" binding:"gte=0,lte=100"`
	Bathrooms     int      `json:"bathrooms" binding:"gte=0,lte=100"`
	AreaSqm       float64  `json:"area_sqm" binding:"gte=0"`
	YearBuilt     int      `json:"year_built" binding:"omitempty,gte=1800,lte=2100"`
	Latitude      *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude     *float64 `json:"longitude" binding:"omitempty,longitude"`
}

type UpdatePropertyRequest struct {
	Type          *string  `json:"property_type" binding:"omitempty,property_type"`
	StreetAddress *string  `json:"street_address" binding:"omitempty,min=1,max=255"`
	City          *string  `json:"city" binding:"omitempty,min=1,max=100"`
	State         *string  `json:"state" binding:"omitempty,max=100"`
	PostalCode    *string  `json:"postal_code" binding:"omitempty,max=20"`
	Country       *string  `json:"country" binding:"omitempty,min=1,max=100"`
	Bedrooms      *int     `json:"bedrooms" binding:"omitempty,gte=0,lte=100"`
	Bathrooms     *int     `json:"bathrooms" binding:"omitempty,gte=0,lte=100"`
	AreaSqm       *float64 `json:"area_sqm" binding:"omitempty,gte=0"`
	YearBuilt     *int     `json:"year_built" binding:"omitempty,gte=1800,lte=2100"`
	Latitude      *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude     *float64 `json:"longitude" binding:"omitempty,longitude"`
}

type CreateAttributeRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	DataType string `json:"data_type" binding:"required,oneof=TEXT NUMBER BOOLEAN"`
	Unit     string `json:"unit" binding:"max=20"`
}

type SetAttributeValueRequest struct {
	AttributeID string `json:"attribute_id" binding:"required,uuid"`
	Value       string `json:"value" binding:"required,max=500"`
}

type CreateListingRequest struct {
	PropertyID  string  `json:"property_id" binding:"required,uuid"`
	Type        string  `json:"listing_type" binding:"required,listing_type"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Currency    string  `json:"currency" binding:"omitempty,iso4217"`
	Description string  `json:"description" binding:"max=5000"`
}

type UpdateListingRequest struct {
	Type        *string  `json:"listing_type" binding:"omitempty,listing_type"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Currency    *string  `json:"currency" binding:"omitempty,iso4217"`
	Description *string  `json:"description" binding:"omitempty,max=5000"`
}

// ListingQuery is bound from the query string of GET /listings.
type ListingQuery struct {
	Type     string   `form:"type" binding:"omitempty,listing_type"`
	Status   string   `form:"status" binding:"omitempty,listing_status"`
	City     string   `form:"city" binding:"omitempty,max=100"`
	MinPrice *float64 `form:"min_price" binding:"omitempty,gte=0"`
	MaxPrice *float64 `form:"max_price" binding:"omitempty,gte=0"`
	Q        string   `form:"q" binding:"omitempty,max=200"`
	Page     int      `form:"page" binding:"omitempty,min=1"`
	Limit    int      `form:"limit" binding:"omitempty,min=1,max=100"`
}

type CreateProposalRequest struct {
	PropertyID     string   `json:"property_id" binding:"required,uuid"`
	CommissionRate *float64 `json:"commission_rate" binding:"required,gte=0,lte=100"`
	Pitch          string   `json:"pitch" binding:"max=2000"`
}

type UpdateProposalRequest struct {
	CommissionRate *float64 `json:"commission_rate" binding:"omitempty,gte=0,lte=100"`
	Pitch          *string  `json:"pitch" binding:"omitempty,max=2000"`
}

// BookmarkRequest drives both toggle (Bookmarked ignored) and set.
type BookmarkRequest struct {
	ListingID  string `json:"listing_id" binding:"required,uuid"`
	Bookmarked *bool  `json:"bookmarked"`
}

type RegisterDeviceRequest struct {
	Token    string `json:"token" binding:"required,max=4096"`
	Platform string `json:"platform" binding:"required,oneof=ANDROID IOS WEB"`
}

type SendNotificationRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Title  string `json:"title" binding:"required,max=200"`
	Body   string `json:"body" binding:"max=2000"`
	Type   string `json:"type" binding:"omitempty,oneof=GENERAL PROPOSAL LISTING ACCOUNT"`
	Email  bool   `json:"email"`
}

type SendEmailRequest struct {
	To       string         `json:"to" binding:"required,email"`
	Template string         `json:"template" binding:"omitempty,email_template"`
	Data     map[string]any `json:"data"`
	Subject  string         `json:"subject" binding:"required_without=Template"`
	Text     string         `json:"text"`
	HTML     string         `json:"html"`
}
