package redissvc

import (
	"context"
	"time"

	"github.com/jimlawless/whereami"
	"github.com/redis/go-redis/v9"

	"github.com/rogerio-castellano/hplussport-catalog/internal/config"
	"github.com/rogerio-castellano/hplussport-catalog/pkg/e"
)

type RedisService struct {
	rdb *redis.Client
}

// NewRedisService connects to Redis and checks the connection with a ping.
func NewRedisService(ctx context.Context, cfg config.Redis) (*RedisService, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &RedisService{rdb: rdb}, nil
}

func (a *RedisService) Rdb() *redis.Client {
	return a.rdb
}

func (a *RedisService) Close() error {
	return a.rdb.Close()
}
