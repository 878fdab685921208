package events

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/jimlawless/whereami"
	"github.com/redis/go-redis/v9"

	"github.com/rogerio-castellano/hplussport-catalog/pkg/e"
)

type streamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisPublisher appends events to a Redis stream trimmed to roughly maxLen
// entries.
type RedisPublisher struct {
	rdb    streamAdder
	stream string
	maxLen int64
}

func NewRedisPublisher(rdb streamAdder, stream string, maxLen int64) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, stream: stream, maxLen: maxLen}
}

func (p *RedisPublisher) Publish(ctx context.Context, ev ProductEvent) error {
	args, err := p.xaddArgs(ev)
	if err != nil {
		return err
	}
	if err := p.rdb.XAdd(ctx, args).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

func (p *RedisPublisher) xaddArgs(ev ProductEvent) (*redis.XAddArgs, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]any{
			"id":        ev.ID,
			"type":      string(ev.Type),
			"productId": strconv.Itoa(ev.ProductID),
			"payload":   string(payload),
		},
	}, nil
}

// Close is a no-op; the Redis client is owned by the caller.
func (p *RedisPublisher) Close() error {
	return nil
}
