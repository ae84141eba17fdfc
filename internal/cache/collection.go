package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cityverse/backend/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const collectionKey = "catalog:cities:raw"

// Collection caches the raw document collection fetched from the record
// store, so every read does not hammer the remote. It is best effort: any
// cache failure is logged and treated as a miss, never surfaced.
type Collection interface {
	Get(ctx context.Context) (map[string]json.RawMessage, bool)
	Set(ctx context.Context, records map[string]json.RawMessage)
	Invalidate(ctx context.Context)
}

type redisCollection struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewCollection(client redis.UniversalClient, ttl time.Duration) Collection {
	return &redisCollection{client: client, ttl: ttl}
}

func (c *redisCollection) Get(ctx context.Context) (map[string]json.RawMessage, bool) {
	data, err := c.client.Get(ctx, collectionKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("collection cache get failed", zap.Error(err))
		}
		return nil, false
	}

	var records map[string]json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		logger.Warn("collection cache holds broken payload", zap.Error(err))
		c.Invalidate(ctx)
		return nil, false
	}

	return records, true
}

func (c *redisCollection) Set(ctx context.Context, records map[string]json.RawMessage) {
	data, err := json.Marshal(records)
	if err != nil {
		logger.Warn("collection cache marshal failed", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, collectionKey, data, c.ttl).Err(); err != nil {
		logger.Warn("collection cache set failed", zap.Error(err))
	}
}

func (c *redisCollection) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, collectionKey).Err(); err != nil {
		logger.Warn("collection cache invalidate failed", zap.Error(err))
	}
}
