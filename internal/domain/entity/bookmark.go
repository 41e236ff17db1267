package entity

import "time"

// Bookmark holds one user's bookmark state for one listing.
type Bookmark struct {
	ID         string
	UserID     string
	ListingID  string
	Listing    *Listing // loaded by list reads
	Bookmarked bool
	UpdatedAt  time.Time
}

func NewBookmark(userID, listingID string) *Bookmark {
	return &Bookmark{UserID: userID, ListingID: listingID}
}

// Toggle flips the state and returns the new value.
func (b *Bookmark) Toggle(now time.Time) bool {
	b.Bookmarked = !b.Bookmarked
	b.UpdatedAt = now
	return b.Bookmarked
}

func (b *Bookmark) Set(bookmarked bool, now time.Time) {
	b.Bookmarked = bookmarked
	b.UpdatedAt = now
}
