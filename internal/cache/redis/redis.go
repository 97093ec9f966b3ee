package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gemma3n-site/backend/internal/cache"
	"github.com/gemma3n-site/backend/pkg/logger"
	"github.com/gemma3n-site/backend/pkg/utils"
)

const (
	keyPrefix    = "pagecache"
	namespaceSet = "pagecache:namespaces"
)

// Store is a redis-backed cache.Store. Entries are JSON snapshots keyed by
// pagecache:<namespace>:<md5(request key)>; namespace names are tracked in a
// side set so Names can enumerate them without scanning.
type Store struct {
	client *redis.Client
}

func NewStore(host string, port int, password string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis cache store initialized", zap.String("addr", fmt.Sprintf("%s:%d", host, port)))

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Open(ctx context.Context, name string) (cache.Namespace, error) {
	if err := s.client.SAdd(ctx, namespaceSet, name).Err(); err != nil {
		return nil, fmt.Errorf("failed to register namespace: %w", err)
	}
	return &namespace{client: s.client, name: name}, nil
}

func (s *Store) Names(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, namespaceSet).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}
	return names, nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	iter := s.client.Scan(ctx, 0, fmt.Sprintf("%s:%s:*", keyPrefix, name), 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warn("Failed to delete cache key", zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to iterate cache keys: %w", err)
	}

	if err := s.client.SRem(ctx, namespaceSet, name).Err(); err != nil {
		return fmt.Errorf("failed to unregister namespace: %w", err)
	}

	logger.Info("Cache namespace deleted", zap.String("namespace", name))
	return nil
}

type namespace struct {
	client *redis.Client
	name   string
}

func (n *namespace) entryKey(key string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, n.name, utils.HashString(key))
}

func (n *namespace) Match(ctx context.Context, key string) (*cache.Response, bool, error) {
	data, err := n.client.Get(ctx, n.entryKey(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cache entry: %w", err)
	}

	var resp cache.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cache entry: %w", err)
	}

	return &resp, true, nil
}

func (n *namespace) Put(ctx context.Context, key string, resp *cache.Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := n.client.Set(ctx, n.entryKey(key), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set cache entry: %w", err)
	}

	return nil
}
