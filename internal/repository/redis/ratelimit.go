package redisrepo

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	redisx "posrelay/internal/redis"
)

// Counter-per-window limiter. INCR and PEXPIRE run atomically so the first
// hit of a window always sets the expiry.
var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// FixedWindowLimiter bounds order submissions per client key. The window is
// fixed rather than sliding; a LAN full of terminals does not need finer
// smoothing.
type FixedWindowLimiter struct {
	rdb    *redis.Client
	scope  string
	limit  int
	window time.Duration
}

func NewFixedWindowLimiter(rdb *redis.Client, scope string, limit int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		rdb:    rdb,
		scope:  scope,
		limit:  limit,
		window: window,
	}
}

// Allow reports whether the key is within quota for the current window.
func (l *FixedWindowLimiter) Allow(ctx context.Context, id string) (bool, error) {
	key := redisx.KeyRateLimit(l.scope, id)

	n, err := fixedWindowScript.Run(ctx, l.rdb, []string{key}, l.window.Milliseconds()).Int64()
	if err != nil {
		return false, err
	}

	return n <= int64(l.limit), nil
}
