// Package storage is the client's persistence adapter: JSON values under
// string keys on top of any key/value backend. Reads never fail; missing or
// unreadable data comes back as nil so callers fall back to their defaults.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/patric-chuzhbe/hoaxify/internal/logger"
)

type backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context) error
	Ping(ctx context.Context) error
}

type Adapter struct {
	db backend
}

func New(db backend) *Adapter {
	return &Adapter{db: db}
}

// SetItem stores the JSON encoding of value under key.
func (a *Adapter) SetItem(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("in internal/storage/storage.go/SetItem(): error while `json.Marshal()` calling: %w", err)
	}

	if err := a.db.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("in internal/storage/storage.go/SetItem(): error while `a.db.Set()` calling: %w", err)
	}

	return nil
}

func (a *Adapter) raw(ctx context.Context, key string) (string, bool) {
	stored, found, err := a.db.Get(ctx, key)
	if err != nil {
		logger.Log.Debugln("Error calling the `a.db.Get()`: ", zap.String("key", key), zap.Error(err))
		return "", false
	}
	if !found || stored == "" {
		return "", false
	}

	return stored, true
}

// GetItem returns the decoded value under key, the raw string when it is not
// valid JSON, or nil when the key is unset or unreadable.
func (a *Adapter) GetItem(ctx context.Context, key string) any {
	stored, ok := a.raw(ctx, key)
	if !ok {
		return nil
	}

	var value any
	if err := json.Unmarshal([]byte(stored), &value); err != nil {
		return stored
	}

	return value
}

// GetInto decodes the value under key into dst and reports whether it did.
func (a *Adapter) GetInto(ctx context.Context, key string, dst any) bool {
	stored, ok := a.raw(ctx, key)
	if !ok {
		return false
	}

	if err := json.Unmarshal([]byte(stored), dst); err != nil {
		logger.Log.Debugln("Error calling the `json.Unmarshal()`: ", zap.String("key", key), zap.Error(err))
		return false
	}

	return true
}

// Clear removes every stored key.
func (a *Adapter) Clear(ctx context.Context) error {
	return a.db.Clear(ctx)
}

func (a *Adapter) Ping(ctx context.Context) error {
	return a.db.Ping(ctx)
}
