package redisfactory

import (
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Sessions and external-response caches live on separate connections so a
// flood of room lookups can not starve checkout session reads.

type Factory struct {
	sessionsCache  *redis.Client
	responsesCache *redis.Client
}

func newClient(uri string) *redis.Client {
	opt, err := redis.ParseURL(uri)
	if err != nil {
		panic(err)
	}

	opt.DialTimeout = 4 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	return redis.NewClient(opt)
}

func New() *Factory {
	return &Factory{
		sessionsCache:  newClient(os.Getenv("SESSIONS_REDIS_URI")),
		responsesCache: newClient(os.Getenv("RESPONSES_CACHE_REDIS_URI")),
	}
}

func (f *Factory) SessionsClient() *redis.Client {
	return f.sessionsCache
}

func (f *Factory) ResponsesCacheClient() *redis.Client {
	return f.responsesCache
}
