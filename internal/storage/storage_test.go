package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/hoaxify/internal/db/memorystorage"
	"github.com/patric-chuzhbe/hoaxify/internal/mockstorage"
)

func newAdapter(t *testing.T) (*Adapter, *memorystorage.MemoryStorage) {
	t.Helper()
	db, err := memorystorage.New()
	require.NoError(t, err)
	return New(db), db
}

func TestSetItemGetItemRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{name: "string", value: "user1"},
		{name: "number", value: float64(42)},
		{name: "bool", value: true},
		{name: "object", value: map[string]any{"isLoggedIn": true, "id": float64(5)}},
		{name: "array", value: []any{"a", float64(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, _ := newAdapter(t)

			require.NoError(t, adapter.SetItem(context.Background(), "k", tt.value))

			assert.Equal(t, tt.value, adapter.GetItem(context.Background(), "k"))
		})
	}
}

func TestGetItemAbsentKey(t *testing.T) {
	adapter, _ := newAdapter(t)

	assert.Nil(t, adapter.GetItem(context.Background(), "absent"))
}

func TestGetItemReturnsRawStringForInvalidJSON(t *testing.T) {
	adapter, db := newAdapter(t)
	require.NoError(t, db.Set(context.Background(), "k", "not-json{"))

	assert.Equal(t, "not-json{", adapter.GetItem(context.Background(), "k"))
}

func TestGetInto(t *testing.T) {
	type session struct {
		IsLoggedIn bool  `json:"isLoggedIn"`
		ID         int64 `json:"id"`
	}
	adapter, db := newAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.SetItem(ctx, "auth", session{IsLoggedIn: true, ID: 7}))

	var got session
	assert.True(t, adapter.GetInto(ctx, "auth", &got))
	assert.Equal(t, session{IsLoggedIn: true, ID: 7}, got)

	require.NoError(t, db.Set(ctx, "auth", "garbage"))
	assert.False(t, adapter.GetInto(ctx, "auth", &got))
	assert.False(t, adapter.GetInto(ctx, "absent", &got))
}

func TestClear(t *testing.T) {
	adapter, _ := newAdapter(t)
	ctx := context.Background()
	require.NoError(t, adapter.SetItem(ctx, "a", 1))
	require.NoError(t, adapter.SetItem(ctx, "b", 2))

	require.NoError(t, adapter.Clear(ctx))

	assert.Nil(t, adapter.GetItem(ctx, "a"))
	assert.Nil(t, adapter.GetItem(ctx, "b"))
}

func TestBackendFailures(t *testing.T) {
	ctx := context.Background()
	db := &mockstorage.StorageMock{}
	db.On("Get", mock.Anything, "auth").Return("", false, errors.New("connection refused"))
	db.On("Set", mock.Anything, "auth", mock.Anything).Return(errors.New("read-only"))
	adapter := New(db)

	assert.Nil(t, adapter.GetItem(ctx, "auth"), "read failures degrade to nil")
	assert.Error(t, adapter.SetItem(ctx, "auth", map[string]any{"isLoggedIn": false}))
	assert.Error(t, adapter.SetItem(ctx, "auth", make(chan int)), "unserializable values are rejected")

	db.AssertNumberOfCalls(t, "Set", 1)
}
