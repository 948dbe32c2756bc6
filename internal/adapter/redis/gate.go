package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sm8ta/campusride_admin_console/internal/core/ports"
	"github.com/sm8ta/campusride_admin_console/internal/core/workflow"
)

// releaseScript deletes the lock only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Gate is a workflow.Gate shared by every console instance. The ttl bounds
// how long a crashed holder can block the key.
type Gate struct {
	client *redis.Client
	ttl    time.Duration
	logger ports.LoggerPort
}

func NewGate(client *redis.Client, ttl time.Duration, logger ports.LoggerPort) *Gate {
	return &Gate{client: client, ttl: ttl, logger: logger}
}

func (g *Gate) Acquire(ctx context.Context, key string) (func(), error) {
	lockKey := "lock:" + key
	token := uuid.NewString()

	ok, err := g.client.SetNX(ctx, lockKey, token, g.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, workflow.ErrInFlight
	}

	return func() {
		if err := releaseScript.Run(context.Background(), g.client, []string{lockKey}, token).Err(); err != nil {
			g.logger.Warn("Failed to release gate", map[string]interface{}{
				"key":   lockKey,
				"error": err.Error(),
			})
		}
	}, nil
}
