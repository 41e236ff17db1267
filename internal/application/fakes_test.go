package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
	"github.com/oksasatya/estate-listing-api/internal/domain/valueobject"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/cache"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/maps"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/memory"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/push"
	"github.com/oksasatya/estate-listing-api/pkg/helpers"
	"github.com/oksasatya/estate-listing-api/pkg/mailer"
)

type fakeMailer struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
}

func (m *fakeMailer) Send(_ context.Context, job mailer.EmailJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, job)
	return nil
}

func (m *fakeMailer) SendAsync(ctx context.Context, job mailer.EmailJob) <-chan error {
	done := make(chan error, 1)
	done <- m.Send(ctx, job)
	close(done)
	return done
}

func (m *fakeMailer) templates() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.jobs))
	for _, j := range m.jobs {
		out = append(out, j.Template)
	}
	return out
}

type fakeGeocoder struct {
	loc   maps.Location
	err   error
	calls int
}

func (g *fakeGeocoder) Geocode(_ context.Context, _ string) (maps.Location, error) {
	g.calls++
	return g.loc, g.err
}

// fakePush fails for tokens listed in dead and reports them unregistered.
// When hold is set, every Send waits until it is closed.
type fakePush struct {
	mu   sync.Mutex
	sent []push.Message
	dead map[string]bool
	hold chan struct{}
}

func (p *fakePush) Send(_ context.Context, m push.Message) push.Result {
	if p.hold != nil {
		<-p.hold
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, m)
	if p.dead[m.Token] {
		return push.Result{Token: m.Token, Err: errors.New("registration-token-not-registered"), Unregistered: true}
	}
	return push.Result{Token: m.Token, MessageID: "msg-" + m.Token}
}

type fakeListingIndex struct {
	mu      sync.Mutex
	indexed map[string]entity.ListingStatus
	hits    []string
	err     error
}

func newFakeListingIndex() *fakeListingIndex {
	return &fakeListingIndex{indexed: map[string]entity.ListingStatus{}}
}

func (x *fakeListingIndex) Index(_ context.Context, l *entity.Listing) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.indexed[l.ID] = l.Status
	return nil
}

func (x *fakeListingIndex) Delete(_ context.Context, id string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.indexed, id)
	return nil
}

func (x *fakeListingIndex) Search(_ context.Context, _ repository.ListingFilter) ([]string, int64, error) {
	if x.err != nil {
		return nil, 0, x.err
	}
	return x.hits, int64(len(x.hits)), nil
}

// recordingTokens remembers the last raw token put under each key prefix.
type recordingTokens struct {
	*cache.MemoryTokenStore
	mu   sync.Mutex
	last map[string]string
}

func newRecordingTokens() *recordingTokens {
	return &recordingTokens{MemoryTokenStore: cache.NewMemoryTokenStore(), last: map[string]string{}}
}

func (r *recordingTokens) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	r.mu.Lock()
	i := strings.LastIndex(key, ":")
	r.last[key[:i+1]] = key[i+1:]
	r.mu.Unlock()
	return r.MemoryTokenStore.Put(ctx, key, value, ttl)
}

func (r *recordingTokens) lastFor(prefix string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last[prefix]
}

func testJWT() *helpers.JWTManager {
	return helpers.NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)
}

func seedUser(t *testing.T, store *memory.Store, email string, role entity.Role) *entity.User {
	t.Helper()
	hash, err := helpers.HashPassword("Secret123!")
	require.NoError(t, err)
	u := entity.NewUser(valueobject.MustEmail(email), hash, "Test", strings.Split(email, "@")[0])
	u.Role = role
	_, err = store.Users.Save(context.Background(), u)
	require.NoError(t, err)
	return u
}

func seedProperty(t *testing.T, store *memory.Store, ownerID string) *entity.Property {
	t.Helper()
	p := &entity.Property{OwnerID: ownerID, Type: entity.PropertyHouse, StreetAddress: "1 Main St", City: "Depok", Country: "ID"}
	_, err := store.Properties.Save(context.Background(), p)
	require.NoError(t, err)
	return p
}

func actorOf(u *entity.User) Actor { return Actor{UserID: u.ID, Role: u.Role} }

func requireCode(t *testing.T, err error, code errs.Code) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, errs.CodeOf(err), "error: %v", err)
}
