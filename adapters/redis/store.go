// Package redis backs the session store with a Redis hash per session.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"gavel/adapters/session"
)

type Store struct {
	client  *redis.Client
	options StoreOptions
}

type StoreOptions struct {
	Prefix string
}

type StoreOption func(*StoreOptions)

// WithStorePrefix namespaces session keys, so one Redis instance can serve
// several deployments.
func WithStorePrefix(prefix string) StoreOption {
	return func(o *StoreOptions) {
		o.Prefix = prefix
	}
}

func NewStore(client *redis.Client, opts ...StoreOption) session.IStore {
	options := &StoreOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return &Store{client: client, options: *options}
}

func (s *Store) Load(ctx context.Context, id string) (map[string]string, error) {
	const op = "redis.Store.Load"
	result, err := s.client.HGetAll(ctx, s.options.Prefix+id).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get hash: %w", op, err)
	}
	// Redis returns an empty map when the key does not exist.
	return result, nil
}

// saveScript replaces the whole hash atomically, so deleted session keys do
// not linger.
var saveScript = redis.NewScript(`
local key = KEYS[1]
redis.call('DEL', key)
if #ARGV > 0 then
    redis.call('HSET', key, unpack(ARGV))
end
return 1
`)

func (s *Store) Save(ctx context.Context, id string, data map[string]string) error {
	const op = "redis.Store.Save"
	args := make([]any, 0, len(data)*2)
	for k, v := range data {
		args = append(args, k, v)
	}
	if err := saveScript.Run(ctx, s.client, []string{s.options.Prefix + id}, args...).Err(); err != nil {
		return fmt.Errorf("%s: failed to execute save script: %w", op, err)
	}
	return nil
}
