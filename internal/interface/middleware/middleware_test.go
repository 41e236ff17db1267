package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/cache"
	"github.com/oksasatya/estate-listing-api/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

func do(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type authFixture struct {
	sessions *cache.MemorySessionStore
	jwt      *helpers.JWTManager
	engine   *gin.Engine
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		sessions: cache.NewMemorySessionStore(time.Hour),
		jwt:      helpers.NewJWTManager("access", "refresh", time.Minute, time.Hour),
		engine:   gin.New(),
	}
	whoami := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(CtxUserID), "role": c.GetString(CtxRole)})
	}
	f.engine.GET("/private", Auth(f.sessions, f.jwt), whoami)
	f.engine.GET("/admin", Auth(f.sessions, f.jwt), RequireRole(entity.RoleAdmin), whoami)
	f.engine.GET("/public", OptionalAuth(f.sessions, f.jwt), whoami)
	return f
}

func (f *authFixture) login(t *testing.T, userID string, role entity.Role) string {
	t.Helper()
	sid := uuid.NewString()
	require.NoError(t, f.sessions.Start(context.Background(), cache.Session{UserID: userID, SessionID: sid, Role: string(role)}))
	tok, _, err := f.jwt.GenerateAccessToken(userID, string(role), sid)
	require.NoError(t, err)
	return tok
}

func get(path, token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAuth(t *testing.T) {
	f := newAuthFixture(t)
	tok := f.login(t, "u1", entity.RoleUser)

	w := do(f.engine, get("/private", tok))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"u1"`)

	w = do(f.engine, get("/private", ""))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")

	w = do(f.engine, get("/private", "garbage"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ReadsCookie(t *testing.T) {
	f := newAuthFixture(t)
	tok := f.login(t, "u1", entity.RoleUser)

	req := get("/private", "")
	req.AddCookie(&http.Cookie{Name: helpers.AccessCookie, Value: tok})
	assert.Equal(t, http.StatusOK, do(f.engine, req).Code)
}

func TestAuth_RejectsTokenOfReplacedSession(t *testing.T) {
	f := newAuthFixture(t)
	old := f.login(t, "u1", entity.RoleUser)
	_ = f.login(t, "u1", entity.RoleUser)

	w := do(f.engine, get("/private", old))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	require.NoError(t, f.sessions.Revoke(context.Background(), "u1"))
	w = do(f.engine, get("/private", old))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	f := newAuthFixture(t)

	w := do(f.engine, get("/admin", f.login(t, "u1", entity.RoleUser)))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")

	w = do(f.engine, get("/admin", f.login(t, "a1", entity.RoleAdmin)))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuth(t *testing.T) {
	f := newAuthFixture(t)

	w := do(f.engine, get("/public", ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":""`)

	w = do(f.engine, get("/public", "garbage"))
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(f.engine, get("/public", f.login(t, "u2", entity.RoleAgent)))
	assert.Contains(t, w.Body.String(), `"role":"AGENT"`)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxRequestID)) })

	w := do(r, get("/", ""))
	id := w.Header().Get(HeaderRequestID)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, w.Body.String())

	incoming := uuid.NewString()
	req := get("/", "")
	req.Header.Set(HeaderRequestID, incoming)
	assert.Equal(t, incoming, do(r, req).Header().Get(HeaderRequestID))

	req = get("/", "")
	req.Header.Set(HeaderRequestID, "not a uuid")
	assert.NotEqual(t, "not a uuid", do(r, req).Header().Get(HeaderRequestID))
}

func TestRealIP(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxRealIP)) })

	req := get("/", "")
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", do(r, req).Body.String())

	req = get("/", "")
	req.Header.Set("CF-Connecting-IP", "198.51.100.2")
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	assert.Equal(t, "198.51.100.2", do(r, req).Body.String())
}

func TestPrivateOnly(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/debug", PrivateOnly(), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := get("/debug", "")
	req.Header.Set("X-Forwarded-For", "10.1.2.3")
	assert.Equal(t, http.StatusOK, do(r, req).Code)

	req = get("/debug", "")
	req.Header.Set("X-Forwarded-For", "8.8.8.8")
	assert.Equal(t, http.StatusNotFound, do(r, req).Code)
}

// counterScripter answers the rate limit script with an in-process counter.
type counterScripter struct {
	redis.Scripter
	mu     sync.Mutex
	counts map[string]int64
}

func (s *counterScripter) EvalSha(ctx context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[keys[0]]++
	return redis.NewCmdResult([]interface{}{s.counts[keys[0]], int64(30_000)}, nil)
}

func TestRateLimit(t *testing.T) {
	rdb := &counterScripter{counts: map[string]int64{}}
	r := gin.New()
	r.Use(RealIP())
	r.GET("/", RateLimit(rdb, Limit{Max: 2, Window: time.Minute, Key: KeyByIP()}), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := do(r, get("/", ""))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}
	w := do(r, get("/", ""))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
}

func TestRateLimit_DisabledWithoutRedis(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimit(nil, Limit{Max: 1, Window: time.Minute, Key: KeyByIP()}), func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(r, get("/", "")).Code)
	}
}
