package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"product_catalog/domain"
)

const redisKeyPrefix = "catalog:product:"

// RedisStore keeps each product as a JSON string under its own key. Commits
// use WATCH/MULTI so that a concurrent writer makes the commit fail instead
// of being silently overwritten.
type RedisStore struct {
	client *redis.Client
}

// compile-time assertion
var _ domain.ProductStore = (*RedisStore)(nil)

// OpenRedisStore connects to addr, which may be host:port or a redis:// URL.
func OpenRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	opts := &redis.Options{Addr: addr}
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisStore(client), nil
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(id int64) string {
	return fmt.Sprintf("%s%d", redisKeyPrefix, id)
}

func (s *RedisStore) Begin(ctx context.Context) (domain.ProductRepository, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return newSession(s), nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) load(ctx context.Context, id int64) (record, bool, error) {
	b, err := s.client.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return record{}, false, nil
	}
	if err != nil {
		return record{}, false, fmt.Errorf("get product: %w", err)
	}
	var r record
	if err := json.Unmarshal(b, &r); err != nil {
		return record{}, false, fmt.Errorf("decode product %d: %w", id, err)
	}
	return r, true, nil
}

func (s *RedisStore) save(ctx context.Context, inserts, updates []record) error {
	keys := make([]string, 0, len(inserts)+len(updates))
	payloads := make(map[string][]byte, cap(keys))
	for _, batch := range [][]record{inserts, updates} {
		for _, r := range batch {
			b, err := json.Marshal(r)
			if err != nil {
				return fmt.Errorf("encode product %d: %w", r.ID, err)
			}
			k := redisKey(r.ID)
			keys = append(keys, k)
			payloads[k] = b
		}
	}

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		for _, r := range inserts {
			n, err := tx.Exists(ctx, redisKey(r.ID)).Result()
			if err != nil {
				return err
			}
			if n > 0 {
				return domain.NewDuplicateProductError(r.ID)
			}
		}
		for _, r := range updates {
			n, err := tx.Exists(ctx, redisKey(r.ID)).Result()
			if err != nil {
				return err
			}
			if n == 0 {
				return domain.NewProductNotFoundError(r.ID)
			}
		}

		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, k := range keys {
				pipe.Set(ctx, k, payloads[k], 0)
			}
			return nil
		})
		return err
	}, keys...)

	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("products modified concurrently: %w", err)
	}
	return err
}
