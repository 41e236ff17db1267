package entity

import (
	"strings"
	"time"

	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
)

type PropertyType string

const (
	PropertyHouse      PropertyType = "HOUSE"
	PropertyApartment  PropertyType = "APARTMENT"
	PropertyCondo      PropertyType = "CONDO"
	PropertyTownhouse  PropertyType = "TOWNHOUSE"
	PropertyLand       PropertyType = "LAND"
	PropertyCommercial PropertyType = "COMMERCIAL"
)

func ParsePropertyType(s string) (PropertyType, error) {
	t := PropertyType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case PropertyHouse, PropertyApartment, PropertyCondo, PropertyTownhouse, PropertyLand, PropertyCommercial:
		return t, nil
	}
	return "", errs.Validation(errs.CodeValidationFailed, "unknown property type: "+s)
}

// Property is the physical real estate a listing or proposal refers to.
type Property struct {
	ID            string
	OwnerID       string
	Type          PropertyType
	StreetAddress string
	City          string
	State         string
	PostalCode    string
	Country       string
	Bedrooms      int
	Bathrooms     int
	AreaSqm       float64
	YearBuilt     int
	Latitude      *float64
	Longitude     *float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p *Property) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

func (p *Property) SetCoordinates(lat, lng float64) {
	p.Latitude = &lat
	p.Longitude = &lng
}

// GeocodeQuery is the single-line address sent to the geocoder.
func (p *Property) GeocodeQuery() string {
	parts := make([]string, 0, 5)
	for _, s := range []string{p.StreetAddress, p.City, p.State, p.PostalCode, p.Country} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}
