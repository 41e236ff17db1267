package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
)

type ListingRepository struct {
	t     *table[entity.Listing]
	props *PropertyRepository
	now   func() time.Time
}

func (r *ListingRepository) Save(_ context.Context, l *entity.Listing) (*entity.Listing, error) {
	if !r.props.t.exists(l.PropertyID) {
		return nil, repository.ErrNotFound
	}
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	now := r.now()
	if l.ID == "" {
		l.ID = newID()
		l.CreatedAt = now
	} else if _, ok := r.t.rows[l.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	l.UpdatedAt = now
	stored := *l
	stored.Property = nil
	r.t.putLocked(l.ID, &stored)
	return l, nil
}

func (r *ListingRepository) load(l *entity.Listing) *entity.Listing {
	if p, ok := r.props.t.get(l.PropertyID); ok {
		l.Property = p
	}
	return l
}

func (r *ListingRepository) loadAll(ls []*entity.Listing) []*entity.Listing {
	for _, l := range ls {
		r.load(l)
	}
	return ls
}

func (r *ListingRepository) FindByID(_ context.Context, id string) (*entity.Listing, error) {
	if l, ok := r.t.get(id); ok {
		return r.load(l), nil
	}
	return nil, repository.ErrNotFound
}

func (r *ListingRepository) FindByPropertyID(_ context.Context, propertyID string) ([]*entity.Listing, error) {
	return r.loadAll(r.t.find(func(l *entity.Listing) bool { return l.PropertyID == propertyID })), nil
}

func (r *ListingRepository) FindByOwnerID(_ context.Context, ownerID string) ([]*entity.Listing, error) {
	return r.loadAll(r.t.find(func(l *entity.Listing) bool { return l.OwnerID == ownerID })), nil
}

func (r *ListingRepository) Search(_ context.Context, f repository.ListingFilter) ([]*entity.Listing, int64, error) {
	text := strings.ToLower(strings.TrimSpace(f.Text))
	city := strings.TrimSpace(f.City)
	all := r.loadAll(r.t.find(func(l *entity.Listing) bool {
		switch {
		case f.Type != "" && l.Type != f.Type,
			f.Status != "" && l.Status != f.Status,
			f.OwnerID != "" && l.OwnerID != f.OwnerID,
			f.MinPrice != nil && l.Price < *f.MinPrice,
			f.MaxPrice != nil && l.Price > *f.MaxPrice:
			return false
		}
		return true
	}))
	matched := all[:0]
	for _, l := range all {
		if city != "" && (l.Property == nil || !strings.EqualFold(l.Property.City, city)) {
			continue
		}
		if text != "" && !listingMatchesText(l, text) {
			continue
		}
		matched = append(matched, l)
	}
	return paginate(matched, f.Page), int64(len(matched)), nil
}

func listingMatchesText(l *entity.Listing, text string) bool {
	if strings.Contains(strings.ToLower(l.Description), text) {
		return true
	}
	return l.Property != nil && strings.Contains(strings.ToLower(l.Property.StreetAddress), text)
}

func (r *ListingRepository) ExistsByID(_ context.Context, id string) (bool, error) {
	return r.t.exists(id), nil
}

func (r *ListingRepository) DeleteByID(_ context.Context, id string) error {
	r.t.remove(id)
	return nil
}

type AgentProposalRepository struct {
	t   *table[entity.AgentProposal]
	now func() time.Time
}

func (r *AgentProposalRepository) Save(_ context.Context, p *entity.AgentProposal) (*entity.AgentProposal, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	now := r.now()
	if p.ID == "" {
		p.ID = newID()
		p.CreatedAt = now
	} else if _, ok := r.t.rows[p.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	p.UpdatedAt = now
	r.t.putLocked(p.ID, p)
	return p, nil
}

func (r *AgentProposalRepository) FindByID(_ context.Context, id string) (*entity.AgentProposal, error) {
	if p, ok := r.t.get(id); ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (r *AgentProposalRepository) FindByUserID(_ context.Context, userID string) ([]*entity.AgentProposal, error) {
	return r.t.find(func(p *entity.AgentProposal) bool { return p.UserID == userID }), nil
}

func (r *AgentProposalRepository) FindByPropertyID(_ context.Context, propertyID string) ([]*entity.AgentProposal, error) {
	return r.t.find(func(p *entity.AgentProposal) bool { return p.PropertyID == propertyID }), nil
}

func (r *AgentProposalRepository) ExistsByID(_ context.Context, id string) (bool, error) {
	return r.t.exists(id), nil
}

func (r *AgentProposalRepository) DeleteByID(_ context.Context, id string) error {
	r.t.remove(id)
	return nil
}

type BookmarkRepository struct {
	t        *table[entity.Bookmark]
	listings *ListingRepository
	now      func() time.Time
}

func (r *BookmarkRepository) Save(_ context.Context, b *entity.Bookmark) (*entity.Bookmark, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	for id, row := range r.t.rows {
		if id == b.ID || row.v.UserID != b.UserID || row.v.ListingID != b.ListingID {
			continue
		}
		if b.ID != "" {
			return nil, repository.ErrDuplicate
		}
		// first save of a pair that already has a row upserts it
		b.ID = id
	}
	if b.ID == "" {
		b.ID = newID()
	} else if _, ok := r.t.rows[b.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = r.now()
	}
	stored := *b
	stored.Listing = nil
	r.t.putLocked(b.ID, &stored)
	return b, nil
}

func (r *BookmarkRepository) FindByID(_ context.Context, id string) (*entity.Bookmark, error) {
	if b, ok := r.t.get(id); ok {
		return b, nil
	}
	return nil, repository.ErrNotFound
}

func (r *BookmarkRepository) FindByUserAndListing(_ context.Context, userID, listingID string) (*entity.Bookmark, error) {
	b, ok := r.t.first(func(b *entity.Bookmark) bool { return b.UserID == userID && b.ListingID == listingID })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return b, nil
}

func (r *BookmarkRepository) FindBookmarkedByUserID(_ context.Context, userID string) ([]*entity.Bookmark, error) {
	found := r.t.find(func(b *entity.Bookmark) bool { return b.UserID == userID && b.Bookmarked })
	out := make([]*entity.Bookmark, 0, len(found))
	for _, b := range found {
		l, ok := r.listings.t.get(b.ListingID)
		if !ok {
			continue
		}
		b.Listing = r.listings.load(l)
		out = append(out, b)
	}
	slices.SortStableFunc(out, func(a, b *entity.Bookmark) int { return b.UpdatedAt.Compare(a.UpdatedAt) })
	return out, nil
}

func (r *BookmarkRepository) ExistsByID(_ context.Context, id string) (bool, error) {
	return r.t.exists(id), nil
}

func (r *BookmarkRepository) DeleteByID(_ context.Context, id string) error {
	r.t.remove(id)
	return nil
}

func (r *BookmarkRepository) DeleteByListingID(_ context.Context, listingID string) error {
	r.t.removeWhere(func(b *entity.Bookmark) bool { return b.ListingID == listingID })
	return nil
}

var (
	_ repository.ListingRepository       = (*ListingRepository)(nil)
	_ repository.AgentProposalRepository = (*AgentProposalRepository)(nil)
	_ repository.BookmarkRepository      = (*BookmarkRepository)(nil)
)

