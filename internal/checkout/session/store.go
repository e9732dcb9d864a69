package session

import (
	"context"
	"time"

	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/caching"
	"github.com/redis/go-redis/v9"
)

const (
	sessionTTL = 2 * time.Hour
	lockTTL    = 30 * time.Second
)

// Store keeps checkout sessions in redis. The submit lock guarantees a
// session can never have two submissions in flight, even across instances.
type Store struct {
	cache *caching.Cacher
	redis *redis.Client
}

func NewStore(redisClient *redis.Client) *Store {
	return &Store{
		cache: caching.NewRedisCache(redisClient),
		redis: redisClient,
	}
}

func sessionKey(id string) string {
	return "checkout-session:" + id
}

func submitLockKey(id string) string {
	return "checkout-submit-lock:" + id
}

func (s *Store) Save(ctx context.Context, session *Session) error {
	return s.cache.Store(ctx, sessionKey(session.ID), session, sessionTTL)
}

func (s *Store) Fetch(ctx context.Context, id string) (*Session, bool) {
	var session Session
	if !s.cache.Fetch(ctx, sessionKey(id), &session) {
		return nil, false
	}

	return &session, true
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, sessionKey(id))
}

func (s *Store) AcquireSubmitLock(ctx context.Context, id string) (bool, error) {
	return s.redis.SetNX(ctx, submitLockKey(id), "locked", lockTTL).Result()
}

func (s *Store) ReleaseSubmitLock(ctx context.Context, id string) {
	s.redis.Del(ctx, submitLockKey(id))
}
