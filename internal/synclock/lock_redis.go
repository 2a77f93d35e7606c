package synclock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only when it still holds our token, so an
// expired lock re-acquired by another replica is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis locks across replicas with SET NX and a TTL. The TTL bounds how long
// a crashed run can wedge syncing for an event.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a Redis-backed locker.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (l *Redis) TryAcquire(ctx context.Context, eventID string, ttl time.Duration) (string, bool, error) {
	token := newToken()
	acquired, err := l.client.SetNX(ctx, lockKey(eventID), token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("acquire sync lock: %w", err)
	}
	if !acquired {
		return "", false, nil
	}
	return token, true, nil
}

func (l *Redis) Release(ctx context.Context, eventID, token string) error {
	if err := releaseScript.Run(ctx, l.client, []string{lockKey(eventID)}, token).Err(); err != nil {
		return fmt.Errorf("release sync lock: %w", err)
	}
	return nil
}

func lockKey(eventID string) string {
	return "checkinhub:synclock:" + eventID
}

func newToken() string {
	return uuid.NewString()
}
