package postgres

// Store groups the repositories sharing one pool.
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

func NewStore(db DB) *Store {
	return &Store{
		Users:           NewUserRepository(db),
		Properties:      NewPropertyRepository(db),
		Attributes:      NewPropertyAttributeRepository(db),
		AttributeValues: NewPropertyAttributeValueRepository(db),
		Media:           NewPropertyMediaRepository(db),
		Listings:        NewListingRepository(db),
		Proposals:       NewAgentProposalRepository(db),
		Bookmarks:       NewBookmarkRepository(db),
		Notifications:   NewNotificationRepository(db),
		Devices:         NewDeviceTokenRepository(db),
	}
}
