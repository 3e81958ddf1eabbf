package redisdb

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisDB(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	ctx := context.Background()
	db, err := New(ctx, mr.Addr(), "", time.Second)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, db.Close())
	}()

	_, found, err := db.Get(ctx, "auth")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, db.Set(ctx, "auth", `{"isLoggedIn":true,"id":3}`))
	require.NoError(t, db.Set(ctx, "locale", `"tr"`))

	value, found, err := db.Get(ctx, "auth")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"isLoggedIn":true,"id":3}`, value)
	assert.Equal(t, `"tr"`, mr.HGet(DefaultNamespace, "locale"))

	require.NoError(t, mr.Set("unrelated", "kept"))
	require.NoError(t, db.Clear(ctx))

	_, found, err = db.Get(ctx, "auth")
	require.NoError(t, err)
	assert.False(t, found)
	assert.True(t, mr.Exists("unrelated"), "Clear touches only the client's hash")
}

func TestRedisDBUnavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = New(context.Background(), addr, "", 200*time.Millisecond)
	assert.Error(t, err)
}
