// Package redis backs store.Storage with a Redis server.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aydenstechdungeon/folio/store"
	goredis "github.com/redis/go-redis/v9"
)

// Store is a Redis-backed store.Storage.
type Store struct {
	client  *goredis.Client
	timeout time.Duration
}

// NewStore wraps an existing client.
func NewStore(client *goredis.Client) *Store {
	return &Store{client: client, timeout: 2 * time.Second}
}

// Open connects to the server named by a redis:// URL and checks it
// answers.
func Open(ctx context.Context, url string) (*Store, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewStore(client), nil
}

func (s *Store) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// Get retrieves key.
func (s *Store) Get(key string) ([]byte, error) {
	ctx, cancel := s.ctx()
	defer cancel()
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, store.ErrNotFound
	}
	return val, err
}

// Set stores key with an optional expiration.
func (s *Store) Set(key string, val []byte, exp time.Duration) error {
	ctx, cancel := s.ctx()
	defer cancel()
	return s.client.Set(ctx, key, val, exp).Err()
}

// Delete removes key.
func (s *Store) Delete(key string) error {
	ctx, cancel := s.ctx()
	defer cancel()
	return s.client.Del(ctx, key).Err()
}

// Close releases the client connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}
