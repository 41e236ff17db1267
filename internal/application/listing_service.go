package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/estate-listing-api/internal/application/dto"
	"github.com/oksasatya/estate-listing-api/internal/application/mapper"
	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
	"github.com/oksasatya/estate-listing-api/internal/metrics"
	"github.com/oksasatya/estate-listing-api/pkg/helpers"
)

type ListingService struct {
	listings   repository.ListingRepository
	properties repository.PropertyRepository
	bookmarks  repository.BookmarkRepository
	index      ListingIndexer
	log        *logrus.Logger
	now        func() time.Time
}

// NewListingService wires listing management. index may be nil, in which
// case Search reads from the repository.
func NewListingService(listings repository.ListingRepository, properties repository.PropertyRepository, bookmarks repository.BookmarkRepository, index ListingIndexer, log *logrus.Logger) *ListingService {
	return &ListingService{
		listings:   listings,
		properties: properties,
		bookmarks:  bookmarks,
		index:      index,
		log:        helpers.OrNop(log),
		now:        time.Now,
	}
}

// Create opens a DRAFT listing owned by the property's owner.
func (s *ListingService) Create(ctx context.Context, actor Actor, req dto.CreateListingRequest) (*entity.Listing, error) {
	p, err := s.properties.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, fromRepo(err, errs.PropertyNotFound, req.PropertyID)
	}
	if !actor.CanManage(p.OwnerID) {
		return nil, errs.Forbidden("listings can only be created for your own properties")
	}
	l, err := mapper.NewListingFromRequest(p.OwnerID, req)
	if err != nil {
		return nil, err
	}
	saved, err := s.save(ctx, l)
	if err != nil {
		return nil, err
	}
	metrics.ListingsCreatedTotal.WithLabelValues(string(saved.Type)).Inc()
	return saved, nil
}

// Get hides listings that are not public from anyone but the owner and admins.
func (s *ListingService) Get(ctx context.Context, viewer Actor, id string) (*entity.Listing, error) {
	l, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, errs.ListingNotFound, id)
	}
	if !viewer.CanView(l) {
		return nil, errs.ListingNotFound(id)
	}
	return l, nil
}

// List filters listings in the repository. Without a status filter only
// ACTIVE listings are returned; non-public statuses are limited to the
// viewer's own listings unless the viewer is an admin.
func (s *ListingService) List(ctx context.Context, viewer Actor, q dto.ListingQuery) ([]*entity.Listing, int64, repository.Page, error) {
	f, err := s.filter(viewer, q)
	if err != nil {
		return nil, 0, f.Page, err
	}
	ls, total, err := s.listings.Search(ctx, f)
	if err != nil {
		return nil, 0, f.Page, repoErr(err)
	}
	return ls, total, f.Page, nil
}

// Search runs the query against Elasticsearch and falls back to List when
// the index is unavailable.
func (s *ListingService) Search(ctx context.Context, viewer Actor, q dto.ListingQuery) ([]*entity.Listing, int64, repository.Page, error) {
	if s.index == nil {
		return s.List(ctx, viewer, q)
	}
	f, err := s.filter(viewer, q)
	if err != nil {
		return nil, 0, f.Page, err
	}
	ids, total, err := s.index.Search(ctx, f)
	if err != nil {
		s.log.WithError(err).Warn("listing search failed; falling back to repository")
		return s.List(ctx, viewer, q)
	}
	out := make([]*entity.Listing, 0, len(ids))
	for _, id := range ids {
		l, err := s.listings.FindByID(ctx, id)
		if err != nil {
			// stale index entry
			s.log.WithError(err).WithField("listing_id", id).Debug("indexed listing not loadable")
			continue
		}
		out = append(out, l)
	}
	return out, total, f.Page, nil
}

func (s *ListingService) filter(viewer Actor, q dto.ListingQuery) (repository.ListingFilter, error) {
	f, err := mapper.ListingFilterFromQuery(q)
	if err != nil {
		return f, err
	}
	switch {
	case f.Status == "":
		f.Status = entity.ListingActive
	case f.Status == entity.ListingActive || f.Status == entity.ListingPending || viewer.IsAdmin():
	case viewer.IsAnonymous():
		return f, errs.Forbidden("sign in to see listings with status " + string(f.Status))
	default:
		f.OwnerID = viewer.UserID
	}
	return f, nil
}

func (s *ListingService) manageable(ctx context.Context, actor Actor, id string) (*entity.Listing, error) {
	l, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, errs.ListingNotFound, id)
	}
	if !actor.CanManage(l.OwnerID) {
		return nil, errs.Forbidden("only the owner can modify this listing")
	}
	return l, nil
}

func (s *ListingService) Update(ctx context.Context, actor Actor, id string, req dto.UpdateListingRequest) (*entity.Listing, error) {
	l, err := s.manageable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := mapper.ApplyListingUpdate(l, req); err != nil {
		return nil, err
	}
	return s.save(ctx, l)
}

func (s *ListingService) Publish(ctx context.Context, actor Actor, id string) (*entity.Listing, error) {
	return s.transition(ctx, actor, id, func(l *entity.Listing) error { return l.Publish(s.now()) })
}

func (s *ListingService) MarkPending(ctx context.Context, actor Actor, id string) (*entity.Listing, error) {
	return s.transition(ctx, actor, id, (*entity.Listing).MarkPending)
}

func (s *ListingService) Close(ctx context.Context, actor Actor, id string) (*entity.Listing, error) {
	return s.transition(ctx, actor, id, (*entity.Listing).Close)
}

func (s *ListingService) Archive(ctx context.Context, actor Actor, id string) (*entity.Listing, error) {
	return s.transition(ctx, actor, id, (*entity.Listing).Archive)
}

func (s *ListingService) transition(ctx context.Context, actor Actor, id string, move func(*entity.Listing) error) (*entity.Listing, error) {
	l, err := s.manageable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	from := l.Status
	if err := move(l); err != nil {
		return nil, err
	}
	saved, err := s.save(ctx, l)
	if err != nil {
		return nil, err
	}
	if saved.Status != from {
		metrics.ListingTransitionsTotal.WithLabelValues(string(saved.Status)).Inc()
	}
	return saved, nil
}

// Delete removes the listing, its bookmarks and its index entry.
func (s *ListingService) Delete(ctx context.Context, actor Actor, id string) error {
	l, err := s.manageable(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.bookmarks.DeleteByListingID(ctx, l.ID); err != nil {
		return repoErr(err)
	}
	if err := s.listings.DeleteByID(ctx, l.ID); err != nil {
		return repoErr(err)
	}
	if s.index != nil {
		if err := s.index.Delete(ctx, l.ID); err != nil {
			s.log.WithError(err).WithField("listing_id", l.ID).Warn("es delete failed")
		}
	}
	return nil
}

// save persists l, reloads it with its property attached and reindexes it.
func (s *ListingService) save(ctx context.Context, l *entity.Listing) (*entity.Listing, error) {
	if _, err := s.listings.Save(ctx, l); err != nil {
		return nil, fromRepo(err, errs.ListingNotFound, l.ID)
	}
	saved, err := s.listings.FindByID(ctx, l.ID)
	if err != nil {
		return nil, fromRepo(err, errs.ListingNotFound, l.ID)
	}
	if s.index != nil {
		if err := s.index.Index(ctx, saved); err != nil {
			s.log.WithError(err).WithField("listing_id", saved.ID).Warn("es index failed")
		}
	}
	return saved, nil
}
