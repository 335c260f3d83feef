// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultTTL is the default TTL for a match record in Redis (30 days)
	DefaultTTL = 30 * 24 * time.Hour
	// KeyPrefix is the prefix for all match record keys
	KeyPrefix = "tennis_scoring:match:"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchExists      = errors.New("match already exists")
	ErrConcurrentUpdate = errors.New("match was updated concurrently")
)

// RedisConfig describes how to reach Redis.
type RedisConfig struct {
	Host       string
	Port       string
	Password   string
	MaxRetries int
	RetryDelay time.Duration
}

// InitRedisClient initializes and returns a Redis client, retrying the
// initial ping with exponential backoff.
func InitRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	addr := cfg.Host + ":" + cfg.Port
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           0, // use default DB
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	b := backoff.NewExponentialBackOff()
	if cfg.RetryDelay > 0 {
		b.InitialInterval = cfg.RetryDelay
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	attempt := 0
	err := backoff.Retry(
		func() error {
			attempt++
			if _, err := client.Ping(ctx).Result(); err != nil {
				logrus.Warnf("Redis connection failed (attempt %d): %v, retrying...", attempt, err)
				return err
			}
			return nil
		},
		backoff.WithContext(backoff.WithMaxRetries(b, uint64(maxRetries)), ctx),
	)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s after %d attempts: %w", addr, attempt, err)
	}

	logrus.Infof("connected to Redis at %s (attempt %d)", addr, attempt)
	return client, nil
}

// RedisMatchStoreConfig tunes the match store.
type RedisMatchStoreConfig struct {
	// TTL applied on every write. Zero means DefaultTTL.
	TTL time.Duration
}

// RedisMatchStore keeps one JSON match record per key.
type RedisMatchStore struct {
	client *redis.Client
	cfg    RedisMatchStoreConfig
}

// NewRedisMatchStore creates a new Redis-backed match store.
func NewRedisMatchStore(client *redis.Client, cfg RedisMatchStoreConfig) *RedisMatchStore {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return &RedisMatchStore{
		client: client,
		cfg:    cfg,
	}
}

// makeKey creates a Redis key for a match
func makeKey(matchID string) string {
	return fmt.Sprintf("%s%s", KeyPrefix, matchID)
}

// Create stores a new record. It fails with ErrMatchExists if the id is taken.
func (r *RedisMatchStore) Create(ctx context.Context, rec *MatchRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal match %s: %w", rec.ID, err)
	}

	ok, err := r.client.SetNX(ctx, makeKey(rec.ID), data, r.cfg.TTL).Result()
	if err != nil {
		logrus.Errorf("failed to create match %s: %v", rec.ID, err)
		return fmt.Errorf("failed to create match: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrMatchExists, rec.ID)
	}

	logrus.Infof("created match %s with TTL %v", rec.ID, r.cfg.TTL)
	return nil
}

// Get retrieves a match record.
func (r *RedisMatchStore) Get(ctx context.Context, matchID string) (*MatchRecord, error) {
	data, err := r.client.Get(ctx, makeKey(matchID)).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	if err != nil {
		logrus.Errorf("failed to get match %s: %v", matchID, err)
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return decode(matchID, data)
}

// UpdateFunc mutates a record in place and reports whether anything changed.
// Returning false skips the write and leaves the version untouched.
type UpdateFunc func(rec *MatchRecord) (bool, error)

// Update applies fn as a compare-and-swap on the record. If another writer
// commits between the read and the write, nothing is written and
// ErrConcurrentUpdate is returned so the caller can retry from fresh state.
func (r *RedisMatchStore) Update(ctx context.Context, matchID string, fn UpdateFunc) (*MatchRecord, error) {
	key := makeKey(matchID)

	var result *MatchRecord
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
		}
		if err != nil {
			return fmt.Errorf("failed to get match: %w", err)
		}

		rec, err := decode(matchID, data)
		if err != nil {
			return err
		}

		changed, err := fn(rec)
		if err != nil {
			return err
		}
		if !changed {
			result = rec
			return nil
		}

		rec.Version++
		rec.UpdatedAt = time.Now().UTC()
		payload, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal match %s: %w", matchID, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.cfg.TTL)
			return nil
		})
		if err != nil {
			return err
		}

		result = rec
		return nil
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		logrus.Debugf("concurrent update detected for match %s", matchID)
		return nil, ErrConcurrentUpdate
	}
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Delete removes a match record.
func (r *RedisMatchStore) Delete(ctx context.Context, matchID string) error {
	if err := r.client.Del(ctx, makeKey(matchID)).Err(); err != nil {
		logrus.Errorf("failed to delete match %s: %v", matchID, err)
		return fmt.Errorf("failed to delete match: %w", err)
	}

	logrus.Infof("deleted match %s", matchID)
	return nil
}

func decode(matchID string, data []byte) (*MatchRecord, error) {
	var rec MatchRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		logrus.Errorf("failed to unmarshal match %s: %v", matchID, err)
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}
	return &rec, nil
}
