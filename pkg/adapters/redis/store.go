// Package redis provides Redis-backed adapters: a PositionStore for resume
// support and a SessionLocker for multi-replica coordination.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/makebuild-code/slidenav/pkg/domain"
)

// Store implements ports.PositionStore using Redis. Positions are stored as
// JSON with an optional TTL; a ZSET index tracks known sessions for listing,
// pruned lazily by score.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the Store.
type Option func(*Store)

// WithTTL sets the expiration for stored positions.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "slidenav:position:",
		ttl:    0, // no expiration by default
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the position to Redis.
func (s *Store) Save(ctx context.Context, sessionID string, pos *domain.Position) error {
	data, err := json.Marshal(pos)
	if err != nil {
		return fmt.Errorf("failed to marshal position: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(sessionID), data, s.ttl)

	// Index score is the expiry instant so List can prune lazily.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01, effectively never
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: sessionID})

	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the position from Redis.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Position, error) {
	val, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var pos domain.Position
	if err := json.Unmarshal([]byte(val), &pos); err != nil {
		return nil, fmt.Errorf("failed to unmarshal position: %w", err)
	}
	return &pos, nil
}

// Delete removes the session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(sessionID))
	pipe.ZRem(ctx, s.indexKey(), sessionID)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns active sessions, pruning expired index entries first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired sessions: %w", err)
	}

	sessions, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
