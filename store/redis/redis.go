// Package redis provides a core.ConversationStore backed by a Redis list.
// Messages are RPUSHed as JSON documents in append order, so a plain LRANGE
// restores the log exactly as it was written. The in-memory conversation
// stays authoritative; this store only adds crash recovery for the life of
// the Redis key.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hupe1980/convomem/core"
	"github.com/redis/go-redis/v9"
)

// Options configures the Redis conversation store.
type Options struct {
	// Addr is the Redis server address (host:port).
	Addr string
	// Password is the optional server password.
	Password string
	// DB selects the Redis database.
	DB int
	// Key is the list key holding the conversation. Use one key per
	// workflow execution.
	Key string
}

// Store persists conversation messages in a Redis list.
type Store struct {
	client *redis.Client
	key    string
}

// Compile-time interface assertion.
var _ core.ConversationStore = (*Store)(nil)

// New creates a store with its own Redis client.
func New(optFns ...func(o *Options)) *Store {
	opts := Options{
		Addr: "localhost:6379",
		Key:  "convomem:log",
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	return &Store{client: client, key: opts.Key}
}

// NewFromClient creates a store on an existing Redis client.
func NewFromClient(client *redis.Client, key string) *Store {
	if key == "" {
		key = "convomem:log"
	}
	return &Store{client: client, key: key}
}

// Append persists a single message at the tail of the list.
func (s *Store) Append(ctx context.Context, msg core.Message) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message %d: %w", msg.Seq, err)
	}
	if err := s.client.RPush(ctx, s.key, b).Err(); err != nil {
		return fmt.Errorf("rpush %q: %w", s.key, err)
	}
	return nil
}

// Load returns all persisted messages in log order. A missing key yields an
// empty log, not an error.
func (s *Store) Load(ctx context.Context) ([]core.Message, error) {
	vals, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange %q: %w", s.key, err)
	}
	msgs := make([]core.Message, 0, len(vals))
	for i, v := range vals {
		var m core.Message
		if err := json.Unmarshal([]byte(v), &m); err != nil {
			return nil, fmt.Errorf("unmarshal entry %d of %q: %w", i, s.key, err)
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

// Close releases the underlying Redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
