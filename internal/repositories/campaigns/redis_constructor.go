package campaigns

import (
	"github.com/redis/go-redis/v9"
)

// NewRedis creates a Redis-backed campaign repository with defaults.
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{
		Client: client,
	})
}
