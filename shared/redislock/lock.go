package redislock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrLocked is returned when another holder owns the key.
var ErrLocked = errors.New("lock is held by another request")

const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

// Locker hands out short-lived exclusive keys. A nil client turns every
// Acquire into a successful no-op.
type Locker struct {
	client  *redis.Client
	prefix  string
	ttl     time.Duration
	release *redis.Script
}

// NewLocker creates a Locker whose keys expire after ttl even if never released.
func NewLocker(client *redis.Client, prefix string, ttl time.Duration) *Locker {
	return &Locker{
		client:  client,
		prefix:  prefix,
		ttl:     ttl,
		release: redis.NewScript(releaseScript),
	}
}

// Acquire takes key or fails with ErrLocked. The returned func releases the key
// only if it is still owned by this caller.
func (l *Locker) Acquire(ctx context.Context, key string) (func(context.Context), error) {
	if l == nil || l.client == nil {
		return func(context.Context) {}, nil
	}

	token, err := randomToken()
	if err != nil {
		return nil, err
	}

	redisKey := key
	if l.prefix != "" {
		redisKey = l.prefix + ":" + key
	}

	ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", redisKey, err)
	}
	if !ok {
		return nil, ErrLocked
	}

	return func(ctx context.Context) {
		_ = l.release.Run(ctx, l.client, []string{redisKey}, token).Err()
	}, nil
}

func randomToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
