// Package redisdb keeps the client's key/value storage in one Redis hash,
// so Clear only removes this client's keys.
package redisdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultNamespace is the hash key used when New is given an empty namespace.
const DefaultNamespace = "hoaxify:storage"

type RedisDB struct {
	client            *redis.Client
	namespace         string
	connectionTimeout time.Duration
}

// New connects to addr and checks the connection with a PING.
func New(ctx context.Context, addr, namespace string, connectionTimeout time.Duration) (*RedisDB, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	result := &RedisDB{
		client:            redis.NewClient(&redis.Options{Addr: addr}),
		namespace:         namespace,
		connectionTimeout: connectionTimeout,
	}

	if err := result.Ping(ctx); err != nil {
		_ = result.client.Close()
		return nil, fmt.Errorf("in internal/db/redisdb/redisdb.go/New(): error while `result.Ping()` calling: %w", err)
	}

	return result, nil
}

func (db *RedisDB) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := db.client.HGet(ctx, db.namespace, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("in internal/db/redisdb/redisdb.go/Get(): error while `HGet()` calling: %w", err)
	}

	return value, true, nil
}

func (db *RedisDB) Set(ctx context.Context, key, value string) error {
	if err := db.client.HSet(ctx, db.namespace, key, value).Err(); err != nil {
		return fmt.Errorf("in internal/db/redisdb/redisdb.go/Set(): error while `HSet()` calling: %w", err)
	}

	return nil
}

func (db *RedisDB) Clear(ctx context.Context) error {
	if err := db.client.Del(ctx, db.namespace).Err(); err != nil {
		return fmt.Errorf("in internal/db/redisdb/redisdb.go/Clear(): error while `Del()` calling: %w", err)
	}

	return nil
}

func (db *RedisDB) Ping(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, db.connectionTimeout)
	defer cancel()

	return db.client.Ping(ctxWithTimeout).Err()
}

func (db *RedisDB) Close() error {
	return db.client.Close()
}
