package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/estate-listing-api/pkg/helpers"
)

// rotateScript replaces sid only when it still matches, keeping the TTL fresh.
var rotateScript = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], 'sid')
if cur ~= ARGV[1] then
  return 0
end
redis.call('HSET', KEYS[1], 'sid', ARGV[2], 'updated_at', ARGV[3])
redis.call('PEXPIRE', KEYS[1], ARGV[4])
return 1
`)

type RedisSessionStore struct {
	rdb redis.Cmdable
	ttl time.Duration
	log *logrus.Logger
}

func NewRedisSessionStore(rdb redis.Cmdable, ttl time.Duration, log *logrus.Logger) *RedisSessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisSessionStore{rdb: rdb, ttl: ttl, log: helpers.OrNop(log)}
}

func (s *RedisSessionStore) Start(ctx context.Context, sess Session) error {
	now := time.Now().UTC()
	key := helpers.KeySession(sess.UserID)
	fields := map[string]any{
		"user_id":    sess.UserID,
		"sid":        sess.SessionID,
		"role":       sess.Role,
		"email":      sess.Email,
		"name":       sess.Name,
		"avatar_url": sess.AvatarURL,
		"logged_in":  true,
		"created_at": now.Format(time.RFC3339Nano),
		"updated_at": now.Format(time.RFC3339Nano),
	}
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("redis pipeline failed")
		return err
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, userID string) (Session, bool, error) {
	data, err := s.rdb.HGetAll(ctx, helpers.KeySession(userID)).Result()
	if err != nil {
		return Session{}, false, err
	}
	if len(data) == 0 || data["sid"] == "" {
		return Session{}, false, nil
	}
	sess := Session{
		UserID:    data["user_id"],
		SessionID: data["sid"],
		Role:      data["role"],
		Email:     data["email"],
		Name:      data["name"],
		AvatarURL: data["avatar_url"],
	}
	sess.CreatedAt, _ = time.Parse(time.RFC3339Nano, data["created_at"])
	sess.UpdatedAt, _ = time.Parse(time.RFC3339Nano, data["updated_at"])
	return sess, true, nil
}

func (s *RedisSessionStore) Rotate(ctx context.Context, userID, oldSID, newSID string) (bool, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	n, err := rotateScript.Run(ctx, s.rdb, []string{helpers.KeySession(userID)},
		oldSID, newSID, now, s.ttl.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *RedisSessionStore) Revoke(ctx context.Context, userID string) error {
	return helpers.RedisDel(ctx, s.rdb, helpers.KeySession(userID))
}

type RedisTokenStore struct {
	rdb redis.Cmdable
}

func NewRedisTokenStore(rdb redis.Cmdable) *RedisTokenStore {
	return &RedisTokenStore{rdb: rdb}
}

func (s *RedisTokenStore) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s *RedisTokenStore) Take(ctx context.Context, key string) (string, bool, error) {
	return helpers.RedisTake(ctx, s.rdb, key)
}

var (
	_ SessionStore = (*RedisSessionStore)(nil)
	_ TokenStore   = (*RedisTokenStore)(nil)
)
