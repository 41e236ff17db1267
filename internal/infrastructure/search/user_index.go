package search

import (
	"context"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/pkg/helpers"
)

const userMapping = `{
  "mappings": {
    "properties": {
      "id":         {"type": "keyword"},
      "email":      {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "name":       {"type": "text"},
      "role":       {"type": "keyword"},
      "status":     {"type": "keyword"},
      "avatar_url": {"type": "keyword", "index": false},
      "created_at": {"type": "date"},
      "updated_at": {"type": "date"}
    }
  }
}`

// UserDoc is what the users index stores and returns.
type UserDoc struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToUserDoc(u *entity.User) UserDoc {
	return UserDoc{
		ID:        u.ID,
		Email:     u.Email.String(),
		Name:      u.FullName(),
		Role:      string(u.Role),
		Status:    string(u.Status),
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type UserIndex struct {
	ix index
}

func NewUserIndex(es *elasticsearch.Client, name string, log *logrus.Logger) *UserIndex {
	return &UserIndex{ix: newIndex(es, name, log)}
}

func (x *UserIndex) EnsureIndex(ctx context.Context) error {
	return helpers.ESEnsureIndex(ctx, x.ix.es, x.ix.name, userMapping)
}

func (x *UserIndex) Index(ctx context.Context, u *entity.User) error {
	return x.ix.put(ctx, u.ID, ToUserDoc(u))
}

func (x *UserIndex) Delete(ctx context.Context, id string) error {
	return x.ix.delete(ctx, id)
}

// Search runs a multi_match on email and name. size is clamped to 1..50.
func (x *UserIndex) Search(ctx context.Context, q string, size int) ([]UserDoc, error) {
	res, err := doSearch[UserDoc](ctx, x.ix, buildUserQuery(q, size))
	if err != nil {
		return nil, err
	}
	out := make([]UserDoc, 0, len(res.Hits.Hits))
	for _, h := range res.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func buildUserQuery(q string, size int) map[string]any {
	if size <= 0 || size > 50 {
		size = 10
	}
	return map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	}
}
