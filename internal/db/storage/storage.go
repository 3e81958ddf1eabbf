// Package storage declares the key/value backend contract shared by the
// memory, JSON file, PostgreSQL and Redis implementations.
package storage

import "context"

// Storage is a flat string key/value store. Get reports found=false for
// keys that were never set or were removed by Clear.
type Storage interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)

	Set(ctx context.Context, key, value string) error

	Clear(ctx context.Context) error

	Ping(ctx context.Context) error

	Close() error
}
