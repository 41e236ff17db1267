package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/estate-listing-api/internal/application/dto"
	"github.com/oksasatya/estate-listing-api/internal/application/mapper"
	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/storage"
	"github.com/oksasatya/estate-listing-api/pkg/helpers"
)

// PropertyRepos groups the repositories PropertyService reads and writes.
type PropertyRepos struct {
	Properties      repository.PropertyRepository
	Attributes      repository.PropertyAttributeRepository
	AttributeValues repository.PropertyAttributeValueRepository
	Media           repository.PropertyMediaRepository
	Listings        repository.ListingRepository
}

type PropertyService struct {
	repos    PropertyRepos
	geocoder Geocoder
	media    storage.Store
	listings ListingIndexer
	log      *logrus.Logger
	now      func() time.Time
}

// NewPropertyService wires property management. geocoder, media and listings may be nil.
func NewPropertyService(repos PropertyRepos, geocoder Geocoder, media storage.Store, listings ListingIndexer, log *logrus.Logger) *PropertyService {
	return &PropertyService{repos: repos, geocoder: geocoder, media: media, listings: listings, log: helpers.OrNop(log), now: time.Now}
}

// Create geocodes the address when no coordinates were given. A failed
// lookup is logged and the property is saved without coordinates.
func (s *PropertyService) Create(ctx context.Context, actor Actor, req dto.CreatePropertyRequest) (*entity.Property, error) {
	p, err := mapper.NewPropertyFromRequest(actor.UserID, req)
	if err != nil {
		return nil, err
	}
	if !p.HasCoordinates() {
		s.tryGeocode(ctx, p)
	}
	saved, err := s.repos.Properties.Save(ctx, p)
	if err != nil {
		return nil, repoErr(err)
	}
	return saved, nil
}

func (s *PropertyService) Get(ctx context.Context, id string) (*entity.Property, error) {
	p, err := s.repos.Properties.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, errs.PropertyNotFound, id)
	}
	return p, nil
}

func (s *PropertyService) ListMine(ctx context.Context, actor Actor) ([]*entity.Property, error) {
	ps, err := s.repos.Properties.FindByOwnerID(ctx, actor.UserID)
	if err != nil {
		return nil, repoErr(err)
	}
	return ps, nil
}

// manageable loads the property and checks that actor owns it or is an admin.
func (s *PropertyService) manageable(ctx context.Context, actor Actor, id string) (*entity.Property, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(p.OwnerID) {
		return nil, errs.Forbidden("only the owner can modify this property")
	}
	return p, nil
}

func (s *PropertyService) Update(ctx context.Context, actor Actor, id string, req dto.UpdatePropertyRequest) (*entity.Property, error) {
	p, err := s.manageable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	addressChanged, err := mapper.ApplyPropertyUpdate(p, req)
	if err != nil {
		return nil, err
	}
	if addressChanged {
		s.tryGeocode(ctx, p)
	}
	saved, err := s.repos.Properties.Save(ctx, p)
	if err != nil {
		return nil, fromRepo(err, errs.PropertyNotFound, id)
	}
	s.reindexListings(ctx, saved.ID)
	return saved, nil
}

// Delete refuses while listings still reference the property.
func (s *PropertyService) Delete(ctx context.Context, actor Actor, id string) error {
	p, err := s.manageable(ctx, actor, id)
	if err != nil {
		return err
	}
	listings, err := s.repos.Listings.FindByPropertyID(ctx, p.ID)
	if err != nil {
		return repoErr(err)
	}
	if len(listings) > 0 {
		return errs.Conflict("property still has listings; delete them first")
	}
	media, err := s.repos.Media.FindByPropertyID(ctx, p.ID)
	if err != nil {
		return repoErr(err)
	}
	for _, m := range media {
		s.deleteObject(ctx, m)
		if err := s.repos.Media.DeleteByID(ctx, m.ID); err != nil {
			return repoErr(err)
		}
	}
	return repoErr(s.repos.Properties.DeleteByID(ctx, p.ID))
}

// Geocode refreshes coordinates on demand and, unlike Create, reports provider errors.
func (s *PropertyService) Geocode(ctx context.Context, actor Actor, id string) (*entity.Property, error) {
	p, err := s.manageable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if s.geocoder == nil {
		return nil, errs.MapsGeocodeFailed(p.GeocodeQuery(), errNotConfigured("google maps"))
	}
	loc, err := s.geocoder.Geocode(ctx, p.GeocodeQuery())
	if err != nil {
		return nil, err
	}
	p.SetCoordinates(loc.Lat, loc.Lng)
	saved, err := s.repos.Properties.Save(ctx, p)
	if err != nil {
		return nil, fromRepo(err, errs.PropertyNotFound, id)
	}
	s.reindexListings(ctx, saved.ID)
	return saved, nil
}

func (s *PropertyService) tryGeocode(ctx context.Context, p *entity.Property) {
	if s.geocoder == nil || strings.TrimSpace(p.GeocodeQuery()) == "" {
		return
	}
	loc, err := s.geocoder.Geocode(ctx, p.GeocodeQuery())
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"code":    errs.CodeOf(err),
			"address": p.GeocodeQuery(),
		}).Warn("geocoding failed; saving property without coordinates")
		return
	}
	p.SetCoordinates(loc.Lat, loc.Lng)
}

func (s *PropertyService) reindexListings(ctx context.Context, propertyID string) {
	if s.listings == nil {
		return
	}
	ls, err := s.repos.Listings.FindByPropertyID(ctx, propertyID)
	if err != nil {
		s.log.WithError(err).WithField("property_id", propertyID).Warn("load listings for reindex failed")
		return
	}
	for _, l := range ls {
		if err := s.listings.Index(ctx, l); err != nil {
			s.log.WithError(err).WithField("listing_id", l.ID).Warn("es index failed")
		}
	}
}

func (s *PropertyService) CreateAttribute(ctx context.Context, req dto.CreateAttributeRequest) (*entity.PropertyAttribute, error) {
	typ, err := entity.ParseAttributeDataType(req.DataType)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if _, err := s.repos.Attributes.FindByName(ctx, name); err == nil {
		return nil, errs.Conflict("attribute " + name + " already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, repoErr(err)
	}
	a := &entity.PropertyAttribute{Name: name, DataType: typ, Unit: strings.TrimSpace(req.Unit)}
	saved, err := s.repos.Attributes.Save(ctx, a)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, errs.Conflict("attribute " + name + " already exists")
	}
	if err != nil {
		return nil, repoErr(err)
	}
	return saved, nil
}

func (s *PropertyService) ListAttributes(ctx context.Context) ([]*entity.PropertyAttribute, error) {
	as, err := s.repos.Attributes.FindAll(ctx)
	if err != nil {
		return nil, repoErr(err)
	}
	return as, nil
}

// SetAttributeValue upserts the value for (property, attribute) after a type check.
func (s *PropertyService) SetAttributeValue(ctx context.Context, actor Actor, propertyID string, req dto.SetAttributeValueRequest) (*entity.PropertyAttributeValue, error) {
	p, err := s.manageable(ctx, actor, propertyID)
	if err != nil {
		return nil, err
	}
	attr, err := s.repos.Attributes.FindByID(ctx, req.AttributeID)
	if err != nil {
		return nil, fromRepo(err, errs.AttributeNotFound, req.AttributeID)
	}
	value, err := attr.ValidateValue(req.Value)
	if err != nil {
		return nil, err
	}
	v, err := s.repos.AttributeValues.FindByPropertyAndAttribute(ctx, p.ID, attr.ID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		v = &entity.PropertyAttributeValue{PropertyID: p.ID, AttributeID: attr.ID}
	case err != nil:
		return nil, repoErr(err)
	}
	v.Value = value
	saved, err := s.repos.AttributeValues.Save(ctx, v)
	if err != nil {
		return nil, repoErr(err)
	}
	saved.Attribute = attr
	return saved, nil
}

func (s *PropertyService) ListAttributeValues(ctx context.Context, propertyID string) ([]*entity.PropertyAttributeValue, error) {
	if _, err := s.Get(ctx, propertyID); err != nil {
		return nil, err
	}
	vs, err := s.repos.AttributeValues.FindByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, repoErr(err)
	}
	return vs, nil
}

// RemoveAttributeValue marks the value deleted; it disappears from reads.
func (s *PropertyService) RemoveAttributeValue(ctx context.Context, actor Actor, propertyID, valueID string) error {
	if _, err := s.manageable(ctx, actor, propertyID); err != nil {
		return err
	}
	v, err := s.repos.AttributeValues.FindByID(ctx, valueID)
	if err != nil {
		return fromRepo(err, errs.AttributeNotFound, valueID)
	}
	if v.PropertyID != propertyID {
		return errs.AttributeNotFound(valueID)
	}
	return repoErr(s.repos.AttributeValues.DeleteByID(ctx, v.ID))
}

// UploadMedia places the file after the last media item of the property.
func (s *PropertyService) UploadMedia(ctx context.Context, actor Actor, propertyID, filename, contentType string, r io.Reader) (*entity.PropertyMedia, error) {
	if s.media == nil {
		return nil, errs.StorageFailed("upload", errNotConfigured("object storage"))
	}
	p, err := s.manageable(ctx, actor, propertyID)
	if err != nil {
		return nil, err
	}
	existing, err := s.repos.Media.FindByPropertyID(ctx, p.ID)
	if err != nil {
		return nil, repoErr(err)
	}
	next := 0
	if len(existing) > 0 {
		next = existing[len(existing)-1].DisplayOrder + 1
	}
	obj, err := s.media.Upload(ctx, "properties", p.ID, filename, contentType, r)
	if err != nil {
		return nil, err
	}
	m := &entity.PropertyMedia{
		PropertyID:   p.ID,
		URL:          obj.URL,
		ObjectPath:   obj.Path,
		ContentType:  obj.ContentType,
		DisplayOrder: next,
	}
	saved, err := s.repos.Media.Save(ctx, m)
	if err != nil {
		s.deleteObject(ctx, m)
		return nil, repoErr(err)
	}
	return saved, nil
}

func (s *PropertyService) ListMedia(ctx context.Context, propertyID string) ([]*entity.PropertyMedia, error) {
	if _, err := s.Get(ctx, propertyID); err != nil {
		return nil, err
	}
	ms, err := s.repos.Media.FindByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, repoErr(err)
	}
	return ms, nil
}

func (s *PropertyService) DeleteMedia(ctx context.Context, actor Actor, propertyID, mediaID string) error {
	if _, err := s.manageable(ctx, actor, propertyID); err != nil {
		return err
	}
	m, err := s.repos.Media.FindByID(ctx, mediaID)
	if err != nil {
		return fromRepo(err, errs.MediaNotFound, mediaID)
	}
	if m.PropertyID != propertyID {
		return errs.MediaNotFound(mediaID)
	}
	s.deleteObject(ctx, m)
	return repoErr(s.repos.Media.DeleteByID(ctx, m.ID))
}

// deleteObject is best effort; an orphaned object is preferable to a stuck row.
func (s *PropertyService) deleteObject(ctx context.Context, m *entity.PropertyMedia) {
	if s.media == nil || m.ObjectPath == "" {
		return
	}
	if err := s.media.Delete(ctx, m.ObjectPath); err != nil {
		s.log.WithError(err).WithField("path", m.ObjectPath).Warn("delete media object failed")
	}
}
