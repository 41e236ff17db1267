// Package mapper converts between entities and DTOs. Functions here are pure.
package mapper

import (
	"strings"
	"time"

	"github.com/oksasatya/estate-listing-api/internal/application/dto"
	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/search"
)

const (
	untitledListing     = "Untitled Listing"
	addressNotAvailable = "Address not available"
	tokenType           = "Bearer"
)

// ListingTitle is derived from the attached property's street address.
func ListingTitle(l *entity.Listing) string {
	if l != nil && l.Property != nil {
		if street := strings.TrimSpace(l.Property.StreetAddress); street != "" {
			return "Property at " + street
		}
	}
	return untitledListing
}

func BookmarkAddress(b *entity.Bookmark) string {
	if b != nil && b.Listing != nil && b.Listing.Property != nil {
		if street := strings.TrimSpace(b.Listing.Property.StreetAddress); street != "" {
			return street
		}
	}
	return addressNotAvailable
}

func ToAuthResponse(token string, expiresAt time.Time, u *entity.User) dto.AuthResponse {
	return dto.AuthResponse{
		Token:     token,
		Type:      tokenType,
		UserID:    u.ID,
		Email:     u.Email.String(),
		ExpiresAt: expiresAt,
	}
}

func ToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         u.ID,
		Email:      u.Email.String(),
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		FullName:   u.FullName(),
		Phone:      u.Phone,
		AvatarURL:  u.AvatarURL,
		Role:       string(u.Role),
		Status:     string(u.Status),
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func ToUserResponses(us []*entity.User) []dto.UserResponse {
	return mapAll(us, ToUserResponse)
}

func ToUserSearchHits(docs []search.UserDoc) []dto.UserSearchHit {
	out := make([]dto.UserSearchHit, 0, len(docs))
	for _, d := range docs {
		out = append(out, dto.UserSearchHit{ID: d.ID, Email: d.Email, Name: d.Name, Role: d.Role, Status: d.Status, AvatarURL: d.AvatarURL})
	}
	return out
}

func ToPropertyResponse(p *entity.Property) dto.PropertyResponse {
	return dto.PropertyResponse{
		ID:            p.ID,
		OwnerID:       p.OwnerID,
		Type:          string(p.Type),
		StreetAddress: p.StreetAddress,
		City:          p.City,
		State:         p.State,
		PostalCode:    p.PostalCode,
		Country:       p.Country,
		Bedrooms:      p.Bedrooms,
		Bathrooms:     p.Bathrooms,
		AreaSqm:       p.AreaSqm,
		YearBuilt:     p.YearBuilt,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func ToPropertyResponses(ps []*entity.Property) []dto.PropertyResponse {
	return mapAll(ps, ToPropertyResponse)
}

func ToAttributeResponse(a *entity.PropertyAttribute) dto.AttributeResponse {
	return dto.AttributeResponse{ID: a.ID, Name: a.Name, DataType: string(a.DataType), Unit: a.Unit}
}

func ToAttributeResponses(as []*entity.PropertyAttribute) []dto.AttributeResponse {
	return mapAll(as, ToAttributeResponse)
}

func ToAttributeValueResponse(v *entity.PropertyAttributeValue) dto.AttributeValueResponse {
	out := dto.AttributeValueResponse{
		ID:          v.ID,
		PropertyID:  v.PropertyID,
		AttributeID: v.AttributeID,
		Value:       v.Value,
		UpdatedAt:   v.UpdatedAt,
	}
	if a := v.Attribute; a != nil {
		out.Name = a.Name
		out.DataType = string(a.DataType)
		out.Unit = a.Unit
	}
	return out
}

func ToAttributeValueResponses(vs []*entity.PropertyAttributeValue) []dto.AttributeValueResponse {
	return mapAll(vs, ToAttributeValueResponse)
}

func ToMediaResponse(m *entity.PropertyMedia) dto.MediaResponse {
	return dto.MediaResponse{
		ID:           m.ID,
		PropertyID:   m.PropertyID,
		URL:          m.URL,
		ContentType:  m.ContentType,
		DisplayOrder: m.DisplayOrder,
		CreatedAt:    m.CreatedAt,
	}
}

func ToMediaResponses(ms []*entity.PropertyMedia) []dto.MediaResponse {
	return mapAll(ms, ToMediaResponse)
}

// ToListingResponse leaves ThumbnailURL nil; media is not joined into listing reads yet.
func ToListingResponse(l *entity.Listing) dto.ListingResponse {
	out := dto.ListingResponse{
		ID:          l.ID,
		Title:       ListingTitle(l),
		PropertyID:  l.PropertyID,
		OwnerID:     l.OwnerID,
		Type:        string(l.Type),
		Status:      string(l.Status),
		Price:       l.Price,
		Currency:    l.Currency,
		Description: l.Description,
		PublishedAt: l.PublishedAt,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
	if l.Property != nil {
		p := ToPropertyResponse(l.Property)
		out.Property = &p
	}
	return out
}

func ToListingSummary(l *entity.Listing) dto.ListingSummaryResponse {
	out := dto.ListingSummaryResponse{
		ID:       l.ID,
		Title:    ListingTitle(l),
		Type:     string(l.Type),
		Status:   string(l.Status),
		Price:    l.Price,
		Currency: l.Currency,
	}
	if l.Property != nil {
		out.City = l.Property.City
	}
	return out
}

func ToProposalResponse(p *entity.AgentProposal) dto.ProposalResponse {
	return dto.ProposalResponse{
		ID:             p.ID,
		AgentID:        p.UserID,
		PropertyID:     p.PropertyID,
		Status:         string(p.Status),
		CommissionRate: p.CommissionRate.Percent(),
		Pitch:          p.Pitch,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func ToProposalResponses(ps []*entity.AgentProposal) []dto.ProposalResponse {
	return mapAll(ps, ToProposalResponse)
}

func ToBookmarkResponse(b *entity.Bookmark) dto.BookmarkResponse {
	out := dto.BookmarkResponse{
		ListingID:  b.ListingID,
		Bookmarked: b.Bookmarked,
		Address:    BookmarkAddress(b),
		UpdatedAt:  b.UpdatedAt,
	}
	if b.Listing != nil {
		s := ToListingSummary(b.Listing)
		out.Listing = &s
	}
	return out
}

func ToBookmarkResponses(bs []*entity.Bookmark) []dto.BookmarkResponse {
	return mapAll(bs, ToBookmarkResponse)
}

func ToNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Body:      n.Body,
		Read:      n.Read,
		Delivered: n.ProviderMessageID != "",
		CreatedAt: n.CreatedAt,
	}
}

func ToNotificationResponses(ns []*entity.Notification) []dto.NotificationResponse {
	return mapAll(ns, ToNotificationResponse)
}

func mapAll[E any, D any](in []*E, fn func(*E) D) []D {
	out := make([]D, 0, len(in))
	for _, e := range in {
		out = append(out, fn(e))
	}
	return out
}
