package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
	"github.com/oksasatya/estate-listing-api/internal/domain/valueobject"
)

const listingSelect = `
	SELECT l.id, l.property_id, l.owner_id, l.listing_type, l.status, l.price, l.currency,
	       l.description, l.published_at, l.created_at, l.updated_at,
	       ` + propertyColumns + `
	FROM listings l
	JOIN properties p ON p.id = l.property_id`

func listingDest(l *entity.Listing) []any {
	l.Property = &entity.Property{}
	return append([]any{&l.ID, &l.PropertyID, &l.OwnerID, &l.Type, &l.Status, &l.Price, &l.Currency,
		&l.Description, &l.PublishedAt, &l.CreatedAt, &l.UpdatedAt}, propertyDest(l.Property)...)
}

func scanListing(row scanner) (*entity.Listing, error) {
	l := &entity.Listing{}
	if err := row.Scan(listingDest(l)...); err != nil {
		return nil, mapErr(err)
	}
	return l, nil
}

type ListingRepository struct {
	db DB
}

func NewListingRepository(db DB) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Save(ctx context.Context, l *entity.Listing) (*entity.Listing, error) {
	if l.ID == "" {
		id := uuid.NewString()
		if err := r.db.QueryRow(ctx, `
			INSERT INTO listings (id, property_id, owner_id, listing_type, status, price, currency, description, published_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING created_at, updated_at
		`, id, l.PropertyID, l.OwnerID, string(l.Type), string(l.Status), l.Price, l.Currency,
			l.Description, l.PublishedAt).Scan(&l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, mapErr(err)
		}
		l.ID = id
		return l, nil
	}
	if err := r.db.QueryRow(ctx, `
		UPDATE listings
		SET property_id = $2, owner_id = $3, listing_type = $4, status = $5, price = $6,
		    currency = $7, description = $8, published_at = $9, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, l.ID, l.PropertyID, l.OwnerID, string(l.Type), string(l.Status), l.Price, l.Currency,
		l.Description, l.PublishedAt).Scan(&l.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return l, nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*entity.Listing, error) {
	return scanListing(r.db.QueryRow(ctx, listingSelect+` WHERE l.id = $1`, id))
}

func (r *ListingRepository) FindByPropertyID(ctx context.Context, propertyID string) ([]*entity.Listing, error) {
	rows, err := r.db.Query(ctx, listingSelect+` WHERE l.property_id = $1 ORDER BY l.created_at DESC`, propertyID)
	return collect(rows, err, scanListing)
}

func (r *ListingRepository) FindByOwnerID(ctx context.Context, ownerID string) ([]*entity.Listing, error) {
	rows, err := r.db.Query(ctx, listingSelect+` WHERE l.owner_id = $1 ORDER BY l.created_at DESC`, ownerID)
	return collect(rows, err, scanListing)
}

// listingWhere renders the filter as a WHERE clause with positional args.
func listingWhere(f repository.ListingFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Type != "" {
		add("l.listing_type = $%d", string(f.Type))
	}
	if f.Status != "" {
		add("l.status = $%d", string(f.Status))
	}
	if f.OwnerID != "" {
		add("l.owner_id = $%d", f.OwnerID)
	}
	if c := strings.TrimSpace(f.City); c != "" {
		add("lower(p.city) = lower($%d)", c)
	}
	if f.MinPrice != nil {
		add("l.price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("l.price <= $%d", *f.MaxPrice)
	}
	if t := strings.TrimSpace(f.Text); t != "" {
		args = append(args, "%"+t+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(l.description ILIKE $%d OR p.street_address ILIKE $%d)", n, n))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *ListingRepository) Search(ctx context.Context, f repository.ListingFilter) ([]*entity.Listing, int64, error) {
	where, args := listingWhere(f)
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM listings l JOIN properties p ON p.id = l.property_id`+where, args...).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}
	page := f.Page.Normalize()
	n := len(args)
	args = append(args, page.Limit, page.Offset())
	rows, err := r.db.Query(ctx, listingSelect+where+fmt.Sprintf(` ORDER BY l.created_at DESC LIMIT $%d OFFSET $%d`, n+1, n+2), args...)
	listings, err := collect(rows, err, scanListing)
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func (r *ListingRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.db, `SELECT EXISTS (SELECT 1 FROM listings WHERE id = $1)`, id)
}

func (r *ListingRepository) DeleteByID(ctx context.Context, id string) error {
	return execDelete(ctx, r.db, `DELETE FROM listings WHERE id = $1`, id)
}

type AgentProposalRepository struct {
	db DB
}

func NewAgentProposalRepository(db DB) *AgentProposalRepository {
	return &AgentProposalRepository{db: db}
}

const proposalColumns = `id, user_id, property_id, status, commission_rate, pitch, created_at, updated_at`

func scanProposal(row scanner) (*entity.AgentProposal, error) {
	p := &entity.AgentProposal{}
	var rate float64
	if err := row.Scan(&p.ID, &p.UserID, &p.PropertyID, &p.Status, &rate, &p.Pitch, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	cr, err := valueobject.NewCommissionRate(rate)
	if err != nil {
		return nil, err
	}
	p.CommissionRate = cr
	return p, nil
}

func (r *AgentProposalRepository) Save(ctx context.Context, p *entity.AgentProposal) (*entity.AgentProposal, error) {
	if p.ID == "" {
		id := uuid.NewString()
		if err := r.db.QueryRow(ctx, `
			INSERT INTO agent_proposals (id, user_id, property_id, status, commission_rate, pitch)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING created_at, updated_at
		`, id, p.UserID, p.PropertyID, string(p.Status), p.CommissionRate.Percent(), p.Pitch).Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, mapErr(err)
		}
		p.ID = id
		return p, nil
	}
	if err := r.db.QueryRow(ctx, `
		UPDATE agent_proposals
		SET status = $2, commission_rate = $3, pitch = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, p.ID, string(p.Status), p.CommissionRate.Percent(), p.Pitch).Scan(&p.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

func (r *AgentProposalRepository) FindByID(ctx context.Context, id string) (*entity.AgentProposal, error) {
	return scanProposal(r.db.QueryRow(ctx, `SELECT `+proposalColumns+` FROM agent_proposals WHERE id = $1`, id))
}

func (r *AgentProposalRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.AgentProposal, error) {
	rows, err := r.db.Query(ctx, `SELECT `+proposalColumns+` FROM agent_proposals WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	return collect(rows, err, scanProposal)
}

func (r *AgentProposalRepository) FindByPropertyID(ctx context.Context, propertyID string) ([]*entity.AgentProposal, error) {
	rows, err := r.db.Query(ctx, `SELECT `+proposalColumns+` FROM agent_proposals WHERE property_id = $1 ORDER BY created_at DESC`, propertyID)
	return collect(rows, err, scanProposal)
}

func (r *AgentProposalRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.db, `SELECT EXISTS (SELECT 1 FROM agent_proposals WHERE id = $1)`, id)
}

func (r *AgentProposalRepository) DeleteByID(ctx context.Context, id string) error {
	return execDelete(ctx, r.db, `DELETE FROM agent_proposals WHERE id = $1`, id)
}

type BookmarkRepository struct {
	db DB
}

func NewBookmarkRepository(db DB) *BookmarkRepository {
	return &BookmarkRepository{db: db}
}

const bookmarkColumns = `b.id, b.user_id, b.listing_id, b.bookmarked, b.updated_at`

func bookmarkDest(b *entity.Bookmark) []any {
	return []any{&b.ID, &b.UserID, &b.ListingID, &b.Bookmarked, &b.UpdatedAt}
}

func scanBookmark(row scanner) (*entity.Bookmark, error) {
	b := &entity.Bookmark{}
	if err := row.Scan(bookmarkDest(b)...); err != nil {
		return nil, mapErr(err)
	}
	return b, nil
}

func scanBookmarkWithListing(row scanner) (*entity.Bookmark, error) {
	b := &entity.Bookmark{Listing: &entity.Listing{}}
	if err := row.Scan(append(bookmarkDest(b), listingDest(b.Listing)...)...); err != nil {
		return nil, mapErr(err)
	}
	return b, nil
}

func (r *BookmarkRepository) Save(ctx context.Context, b *entity.Bookmark) (*entity.Bookmark, error) {
	if b.ID == "" {
		// a concurrent first save for the same pair lands on the existing row
		if err := r.db.QueryRow(ctx, `
			INSERT INTO bookmarks (id, user_id, listing_id, bookmarked)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id, listing_id)
			DO UPDATE SET bookmarked = EXCLUDED.bookmarked, updated_at = now()
			RETURNING id, updated_at
		`, uuid.NewString(), b.UserID, b.ListingID, b.Bookmarked).Scan(&b.ID, &b.UpdatedAt); err != nil {
			return nil, mapErr(err)
		}
		return b, nil
	}
	if err := r.db.QueryRow(ctx, `
		UPDATE bookmarks SET bookmarked = $2, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, b.ID, b.Bookmarked).Scan(&b.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return b, nil
}

func (r *BookmarkRepository) FindByID(ctx context.Context, id string) (*entity.Bookmark, error) {
	return scanBookmark(r.db.QueryRow(ctx, `SELECT `+bookmarkColumns+` FROM bookmarks b WHERE b.id = $1`, id))
}

func (r *BookmarkRepository) FindByUserAndListing(ctx context.Context, userID, listingID string) (*entity.Bookmark, error) {
	return scanBookmark(r.db.QueryRow(ctx, `
		SELECT `+bookmarkColumns+` FROM bookmarks b WHERE b.user_id = $1 AND b.listing_id = $2
	`, userID, listingID))
}

func (r *BookmarkRepository) FindBookmarkedByUserID(ctx context.Context, userID string) ([]*entity.Bookmark, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bookmarkColumns+`,
		       l.id, l.property_id, l.owner_id, l.listing_type, l.status, l.price, l.currency,
		       l.description, l.published_at, l.created_at, l.updated_at,
		       `+propertyColumns+`
		FROM bookmarks b
		JOIN listings l ON l.id = b.listing_id
		JOIN properties p ON p.id = l.property_id
		WHERE b.user_id = $1 AND b.bookmarked = true
		ORDER BY b.updated_at DESC
	`, userID)
	return collect(rows, err, scanBookmarkWithListing)
}

func (r *BookmarkRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.db, `SELECT EXISTS (SELECT 1 FROM bookmarks WHERE id = $1)`, id)
}

func (r *BookmarkRepository) DeleteByID(ctx context.Context, id string) error {
	return execDelete(ctx, r.db, `DELETE FROM bookmarks WHERE id = $1`, id)
}

func (r *BookmarkRepository) DeleteByListingID(ctx context.Context, listingID string) error {
	return execDelete(ctx, r.db, `DELETE FROM bookmarks WHERE listing_id = $1`, listingID)
}

var (
	_ repository.ListingRepository       = (*ListingRepository)(nil)
	_ repository.AgentProposalRepository = (*AgentProposalRepository)(nil)
	_ repository.BookmarkRepository      = (*BookmarkRepository)(nil)
)
