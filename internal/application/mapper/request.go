package mapper

import (
	"strings"

	"github.com/oksasatya/estate-listing-api/internal/application/dto"
	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
)

const defaultCurrency = "USD"

func coordinates(lat, lng *float64) error {
	if (lat == nil) != (lng == nil) {
		return errs.Validation(errs.CodeValidationFailed, "latitude and longitude must be given together")
	}
	return nil
}

func NewPropertyFromRequest(ownerID string, req dto.CreatePropertyRequest) (*entity.Property, error) {
	typ, err := entity.ParsePropertyType(req.Type)
	if err != nil {
		return nil, err
	}
	if err := coordinates(req.Latitude, req.Longitude); err != nil {
		return nil, err
	}
	p := &entity.Property{
		OwnerID:       ownerID,
		Type:          typ,
		StreetAddress: strings.TrimSpace(req.StreetAddress),
		City:          strings.TrimSpace(req.City),
		State:         strings.TrimSpace(req.State),
		PostalCode:    strings.TrimSpace(req.PostalCode),
		Country:       strings.TrimSpace(req.Country),
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		AreaSqm:       req.AreaSqm,
		YearBuilt:     req.YearBuilt,
	}
	if req.Latitude != nil {
		p.SetCoordinates(*req.Latitude, *req.Longitude)
	}
	return p, nil
}

// ApplyPropertyUpdate reports whether the address changed, so callers can re-geocode.
func ApplyPropertyUpdate(p *entity.Property, req dto.UpdatePropertyRequest) (addressChanged bool, err error) {
	if err := coordinates(req.Latitude, req.Longitude); err != nil {
		return false, err
	}
	if req.Type != nil {
		typ, err := entity.ParsePropertyType(*req.Type)
		if err != nil {
			return false, err
		}
		p.Type = typ
	}
	before := p.GeocodeQuery()
	setTrimmed(&p.StreetAddress, req.StreetAddress)
	setTrimmed(&p.City, req.City)
	setTrimmed(&p.State, req.State)
	setTrimmed(&p.PostalCode, req.PostalCode)
	setTrimmed(&p.Country, req.Country)
	if req.Bedrooms != nil {
		p.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		p.Bathrooms = *req.Bathrooms
	}
	if req.AreaSqm != nil {
		p.AreaSqm = *req.AreaSqm
	}
	if req.YearBuilt != nil {
		p.YearBuilt = *req.YearBuilt
	}
	addressChanged = p.GeocodeQuery() != before
	if req.Latitude != nil {
		p.SetCoordinates(*req.Latitude, *req.Longitude)
		addressChanged = false
	} else if addressChanged {
		p.Latitude, p.Longitude = nil, nil
	}
	return addressChanged, nil
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func NewListingFromRequest(ownerID string, req dto.CreateListingRequest) (*entity.Listing, error) {
	typ, err := entity.ParseListingType(req.Type)
	if err != nil {
		return nil, err
	}
	currency := req.Currency
	if strings.TrimSpace(currency) == "" {
		currency = defaultCurrency
	}
	return entity.NewListing(req.PropertyID, ownerID, typ, req.Price, currency, strings.TrimSpace(req.Description)), nil
}

func ApplyListingUpdate(l *entity.Listing, req dto.UpdateListingRequest) error {
	if req.Type != nil {
		typ, err := entity.ParseListingType(*req.Type)
		if err != nil {
			return err
		}
		if typ != l.Type && l.Status != entity.ListingDraft {
			return errs.Conflict("listing type can only change while in DRAFT")
		}
		l.Type = typ
	}
	if req.Price != nil {
		l.Price = *req.Price
	}
	if req.Currency != nil {
		l.Currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}
	if req.Description != nil {
		l.Description = strings.TrimSpace(*req.Description)
	}
	return nil
}

func ListingFilterFromQuery(q dto.ListingQuery) (repository.ListingFilter, error) {
	f := repository.ListingFilter{
		City:     strings.TrimSpace(q.City),
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		Text:     strings.TrimSpace(q.Q),
		Page:     repository.Page{Page: q.Page, Limit: q.Limit}.Normalize(),
	}
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return f, errs.Validation(errs.CodeValidationFailed, "min_price must not exceed max_price")
	}
	if q.Type != "" {
		t, err := entity.ParseListingType(q.Type)
		if err != nil {
			return f, err
		}
		f.Type = t
	}
	if q.Status != "" {
		s, err := entity.ParseListingStatus(q.Status)
		if err != nil {
			return f, err
		}
		f.Status = s
	}
	return f, nil
}
