package redis

import (
	"errors"
	"time"

	"github.com/mintmarket/goapi/base/ctx"
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("key not found")
)

// Forever is the ttl value for keys without expiration
const Forever = time.Duration(-1)

// Service abstracts the redis commands used by the cache layers and the
// health check.
type Service interface {
	Get(c ctx.Ctx, key string) ([]byte, error)
	Set(c ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(c ctx.Ctx, key string) (int, error)
	Exists(c ctx.Ctx, key string) (bool, error)
	Incrby(c ctx.Ctx, key string, diff int) (int64, error)
	// TTL returns the remaining ttl in seconds, ErrNotFound when the key
	// does not exist
	TTL(c ctx.Ctx, key string) (int64, error)
	Ping(c ctx.Ctx) error
}
