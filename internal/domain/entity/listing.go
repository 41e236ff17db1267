package entity

import (
	"strings"
	"time"

	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
)

type ListingType string

const (
	ListingSale ListingType = "SALE"
	ListingRent ListingType = "RENT"
)

func ParseListingType(s string) (ListingType, error) {
	t := ListingType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case ListingSale, ListingRent:
		return t, nil
	}
	return "", errs.Validation(errs.CodeValidationFailed, "unknown listing type: "+s)
}

type ListingStatus string

const (
	ListingDraft    ListingStatus = "DRAFT"
	ListingActive   ListingStatus = "ACTIVE"
	ListingPending  ListingStatus = "PENDING"
	ListingSold     ListingStatus = "SOLD"
	ListingRented   ListingStatus = "RENTED"
	ListingArchived ListingStatus = "ARCHIVED"
)

func ParseListingStatus(s string) (ListingStatus, error) {
	st := ListingStatus(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := listingTransitions[st]; ok || st == ListingArchived {
		return st, nil
	}
	return "", errs.Validation(errs.CodeValidationFailed, "unknown listing status: "+s)
}

// listingTransitions is the allowed state machine. ARCHIVED has no exits.
var listingTransitions = map[ListingStatus][]ListingStatus{
	ListingDraft:   {ListingActive, ListingArchived},
	ListingActive:  {ListingPending, ListingSold, ListingRented, ListingArchived},
	ListingPending: {ListingActive, ListingSold, ListingRented, ListingArchived},
	ListingSold:    {ListingArchived},
	ListingRented:  {ListingActive, ListingArchived},
}

func (s ListingStatus) CanTransitionTo(next ListingStatus) bool {
	for _, allowed := range listingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Listing offers a property for sale or rent.
type Listing struct {
	ID          string
	PropertyID  string
	Property    *Property // loaded by reads, nil when not joined
	OwnerID     string
	Type        ListingType
	Status      ListingStatus
	Price       float64
	Currency    string
	Description string
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewListing(propertyID, ownerID string, typ ListingType, price float64, currency, description string) *Listing {
	return &Listing{
		PropertyID:  propertyID,
		OwnerID:     ownerID,
		Type:        typ,
		Status:      ListingDraft,
		Price:       price,
		Currency:    strings.ToUpper(strings.TrimSpace(currency)),
		Description: description,
	}
}

func (l *Listing) transition(next ListingStatus) error {
	if !l.Status.CanTransitionTo(next) {
		return errs.InvalidTransition("listing", string(l.Status), string(next))
	}
	l.Status = next
	return nil
}

// Publish makes the listing visible. PublishedAt keeps the first publication time.
func (l *Listing) Publish(now time.Time) error {
	if err := l.transition(ListingActive); err != nil {
		return err
	}
	if l.PublishedAt == nil {
		l.PublishedAt = &now
	}
	return nil
}

func (l *Listing) MarkPending() error { return l.transition(ListingPending) }

// Close ends the listing as SOLD or RENTED depending on its type.
func (l *Listing) Close() error {
	if l.Type == ListingRent {
		return l.transition(ListingRented)
	}
	return l.transition(ListingSold)
}

func (l *Listing) Archive() error {
	if l.Status == ListingArchived {
		return nil
	}
	return l.transition(ListingArchived)
}

func (l *Listing) IsPublic() bool {
	return l.Status == ListingActive || l.Status == ListingPending
}

func (l *Listing) OwnedBy(userID string) bool { return l.OwnerID == userID }
