package memory

import (
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
)

// Store wires the repositories that read across each other
// (listings load properties, bookmarks load listings).
type Store struct {
	Users           *UserRepository
	Properties      *PropertyRepository
	Attributes      *PropertyAttributeRepository
	AttributeValues *PropertyAttributeValueRepository
	Media           *PropertyMediaRepository
	Listings        *ListingRepository
	Proposals       *AgentProposalRepository
	Bookmarks       *BookmarkRepository
	Notifications   *NotificationRepository
	Devices         *DeviceTokenRepository
}

func NewStore() *Store {
	clk := time.Now
	props := &PropertyRepository{t: newTable[entity.Property](), now: clk}
	listings := &ListingRepository{t: newTable[entity.Listing](), props: props, now: clk}
	attrs := &PropertyAttributeRepository{t: newTable[entity.PropertyAttribute](), now: clk}
	return &Store{
		Users:           &UserRepository{t: newTable[entity.User](), now: clk},
		Properties:      props,
		Attributes:      attrs,
		AttributeValues: &PropertyAttributeValueRepository{t: newTable[entity.PropertyAttributeValue](), attrs: attrs, now: clk},
		Media:           &PropertyMediaRepository{t: newTable[entity.PropertyMedia](), now: clk},
		Listings:        listings,
		Proposals:       &AgentProposalRepository{t: newTable[entity.AgentProposal](), now: clk},
		Bookmarks:       &BookmarkRepository{t: newTable[entity.Bookmark](), listings: listings, now: clk},
		Notifications:   &NotificationRepository{t: newTable[entity.Notification](), now: clk},
		Devices:         &DeviceTokenRepository{t: newTable[entity.DeviceToken](), now: clk},
	}
}

func newID() string { return uuid.NewString() }
