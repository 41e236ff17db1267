package search

import (
	"context"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
	"github.com/oksasatya/estate-listing-api/pkg/helpers"
)

const listingMapping = `{
  "mappings": {
    "properties": {
      "id":            {"type": "keyword"},
      "property_id":   {"type": "keyword"},
      "owner_id":      {"type": "keyword"},
      "type":          {"type": "keyword"},
      "status":        {"type": "keyword"},
      "price":         {"type": "double"},
      "currency":      {"type": "keyword"},
      "description":   {"type": "text"},
      "street":        {"type": "text"},
      "city":          {"type": "keyword", "normalizer": "lowercase"},
      "property_type": {"type": "keyword"},
      "bedrooms":      {"type": "integer"},
      "location":      {"type": "geo_point"},
      "published_at":  {"type": "date"},
      "updated_at":    {"type": "date"}
    }
  },
  "settings": {
    "analysis": {"normalizer": {"lowercase": {"type": "custom", "filter": ["lowercase"]}}}
  }
}`

type listingDoc struct {
	ID           string     `json:"id"`
	PropertyID   string     `json:"property_id"`
	OwnerID      string     `json:"owner_id"`
	Type         string     `json:"type"`
	Status       string     `json:"status"`
	Price        float64    `json:"price"`
	Currency     string     `json:"currency"`
	Description  string     `json:"description"`
	Street       string     `json:"street,omitempty"`
	City         string     `json:"city,omitempty"`
	PropertyType string     `json:"property_type,omitempty"`
	Bedrooms     int        `json:"bedrooms,omitempty"`
	Location     *geoPoint  `json:"location,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type geoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func toListingDoc(l *entity.Listing) listingDoc {
	d := listingDoc{
		ID:          l.ID,
		PropertyID:  l.PropertyID,
		OwnerID:     l.OwnerID,
		Type:        string(l.Type),
		Status:      string(l.Status),
		Price:       l.Price,
		Currency:    l.Currency,
		Description: l.Description,
		PublishedAt: l.PublishedAt,
		UpdatedAt:   l.UpdatedAt,
	}
	if p := l.Property; p != nil {
		d.Street = p.StreetAddress
		d.City = p.City
		d.PropertyType = string(p.Type)
		d.Bedrooms = p.Bedrooms
		if p.HasCoordinates() {
			d.Location = &geoPoint{Lat: *p.Latitude, Lon: *p.Longitude}
		}
	}
	return d
}

// ListingIndex stores a flattened listing+property document per listing.
type ListingIndex struct {
	ix index
}

func NewListingIndex(es *elasticsearch.Client, name string, log *logrus.Logger) *ListingIndex {
	return &ListingIndex{ix: newIndex(es, name, log)}
}

func (x *ListingIndex) EnsureIndex(ctx context.Context) error {
	return helpers.ESEnsureIndex(ctx, x.ix.es, x.ix.name, listingMapping)
}

func (x *ListingIndex) Index(ctx context.Context, l *entity.Listing) error {
	return x.ix.put(ctx, l.ID, toListingDoc(l))
}

func (x *ListingIndex) Delete(ctx context.Context, id string) error {
	return x.ix.delete(ctx, id)
}

// Search returns matching listing ids in relevance order plus the total hit count.
func (x *ListingIndex) Search(ctx context.Context, f repository.ListingFilter) ([]string, int64, error) {
	res, err := doSearch[listingDoc](ctx, x.ix, buildListingQuery(f))
	if err != nil {
		return nil, 0, err
	}
	ids := make([]string, 0, len(res.Hits.Hits))
	for _, h := range res.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, res.Hits.Total.Value, nil
}

func buildListingQuery(f repository.ListingFilter) map[string]any {
	page := f.Page.Normalize()
	var must []any
	var filter []any
	if f.Text != "" {
		must = append(must, map[string]any{
			"multi_match": map[string]any{
				"query":  f.Text,
				"fields": []string{"description", "street^2"},
			},
		})
	}
	term := func(field, v string) {
		if v != "" {
			filter = append(filter, map[string]any{"term": map[string]any{field: v}})
		}
	}
	term("type", string(f.Type))
	term("status", string(f.Status))
	term("owner_id", f.OwnerID)
	term("city", f.City)
	if f.MinPrice != nil || f.MaxPrice != nil {
		rng := map[string]any{}
		if f.MinPrice != nil {
			rng["gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			rng["lte"] = *f.MaxPrice
		}
		filter = append(filter, map[string]any{"range": map[string]any{"price": rng}})
	}
	boolQ := map[string]any{}
	if len(must) > 0 {
		boolQ["must"] = must
	} else {
		boolQ["must"] = []any{map[string]any{"match_all": map[string]any{}}}
	}
	if len(filter) > 0 {
		boolQ["filter"] = filter
	}
	q := map[string]any{
		"query":            map[string]any{"bool": boolQ},
		"from":             page.Offset(),
		"size":             page.Limit,
		"track_total_hits": true,
	}
	if f.Text == "" {
		q["sort"] = []any{map[string]any{"updated_at": map[string]any{"order": "desc"}}}
	}
	return q
}
