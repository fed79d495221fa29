package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aysenurarslann/dyrt-campground-scraper/internal/domain/repository"
)

type lockRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewLockRepository implements the run lock on Redis SET NX. The TTL is a
// crash guard: a run that dies without releasing stops blocking new runs
// once it expires.
func NewLockRepository(r *Redis) repository.LockRepository {
	return &lockRepository{
		client: r.Client(),
		logger: r.logger,
	}
}

func (r *lockRepository) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, lockKey(name), time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		r.logger.Error("Failed to acquire lock", zap.String("name", name), zap.Error(err))
		return false, fmt.Errorf("acquire lock %s: %w", name, err)
	}
	return ok, nil
}

func (r *lockRepository) Release(ctx context.Context, name string) error {
	if err := r.client.Del(ctx, lockKey(name)).Err(); err != nil {
		r.logger.Error("Failed to release lock", zap.String("name", name), zap.Error(err))
		return fmt.Errorf("release lock %s: %w", name, err)
	}
	return nil
}

func lockKey(name string) string {
	return "lock:" + name
}
