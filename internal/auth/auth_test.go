package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/hoaxify/internal/db/memorystorage"
	"github.com/patric-chuzhbe/hoaxify/internal/mockstorage"
	"github.com/patric-chuzhbe/hoaxify/internal/models"
	"github.com/patric-chuzhbe/hoaxify/internal/storage"
)

func newTestStorage(t *testing.T) (*storage.Adapter, *memorystorage.MemoryStorage) {
	t.Helper()
	db, err := memorystorage.New()
	require.NoError(t, err)
	return storage.New(db), db
}

func storedSession(t *testing.T, adapter *storage.Adapter) Session {
	t.Helper()
	var session Session
	require.True(t, adapter.GetInto(context.Background(), StorageKey, &session))
	return session
}

func TestNewHydratesFromStorage(t *testing.T) {
	ctx := context.Background()
	adapter, _ := newTestStorage(t)
	require.NoError(t, adapter.SetItem(ctx, StorageKey, Session{
		IsLoggedIn: true,
		ID:         5,
		Username:   "user5",
		Header:     "Bearer abcdefgh",
	}))

	service := New(ctx, NewStorageRepository(adapter))

	assert.Equal(t, Session{IsLoggedIn: true, ID: 5, Username: "user5", Header: "Bearer abcdefgh"}, service.State())
}

func TestNewDefaultsWhenStorageIsEmptyOrMalformed(t *testing.T) {
	ctx := context.Background()

	adapter, _ := newTestStorage(t)
	assert.Equal(t, Session{}, New(ctx, NewStorageRepository(adapter)).State())

	adapter, db := newTestStorage(t)
	require.NoError(t, db.Set(ctx, StorageKey, "{broken"))
	assert.Equal(t, Session{}, New(ctx, NewStorageRepository(adapter)).State())
}

func TestNewDropsIDOfLoggedOutSession(t *testing.T) {
	ctx := context.Background()
	adapter, db := newTestStorage(t)
	require.NoError(t, db.Set(ctx, StorageKey, `{"isLoggedIn":false,"id":9}`))

	assert.Equal(t, Session{}, New(ctx, NewStorageRepository(adapter)).State())
}

func TestLoginSuccess(t *testing.T) {
	ctx := context.Background()
	adapter, _ := newTestStorage(t)
	service := New(ctx, NewStorageRepository(adapter))

	err := service.LoginSuccess(ctx, LoginDataFromResponse(&models.LoginResponse{
		ID:       5,
		Username: "user5",
		Image:    "profile.png",
		Token:    "abcdefgh",
	}))
	require.NoError(t, err)

	want := Session{
		IsLoggedIn: true,
		ID:         5,
		Username:   "user5",
		Image:      "profile.png",
		Header:     "Bearer abcdefgh",
	}
	assert.Equal(t, want, service.State())
	assert.Equal(t, want, storedSession(t, adapter), "commit is written through")
}

func TestReset(t *testing.T) {
	ctx := context.Background()

	t.Run("overlays the initial state", func(t *testing.T) {
		adapter, _ := newTestStorage(t)
		service := New(ctx, NewStorageRepository(adapter))
		require.NoError(t, service.LoginSuccess(ctx, LoginData{ID: 1, Username: "user1", Header: "Bearer x"}))

		require.NoError(t, service.Reset(ctx, &Session{IsLoggedIn: true, ID: 2, Username: "user2"}))

		assert.Equal(t, Session{IsLoggedIn: true, ID: 2, Username: "user2", Header: "Bearer x"}, service.State())
	})

	t.Run("logged out initial state removes the id", func(t *testing.T) {
		adapter, _ := newTestStorage(t)
		service := New(ctx, NewStorageRepository(adapter))
		require.NoError(t, service.LoginSuccess(ctx, LoginData{ID: 1, Username: "user1"}))

		require.NoError(t, service.Reset(ctx, &Session{IsLoggedIn: false, ID: 3}))

		state := service.State()
		assert.False(t, state.IsLoggedIn)
		assert.Zero(t, state.ID)
		assert.Equal(t, state, storedSession(t, adapter))
	})

	t.Run("nil initial state", func(t *testing.T) {
		adapter, _ := newTestStorage(t)
		service := New(ctx, NewStorageRepository(adapter))
		require.NoError(t, service.LoginSuccess(ctx, LoginData{ID: 1}))

		require.NoError(t, service.Reset(ctx, nil))

		assert.False(t, service.State().IsLoggedIn)
		assert.Zero(t, service.State().ID)
	})
}

func TestResetAuthStateAfterStorageClear(t *testing.T) {
	ctx := context.Background()
	adapter, _ := newTestStorage(t)
	service := New(ctx, NewStorageRepository(adapter))
	require.NoError(t, service.LoginSuccess(ctx, LoginData{ID: 5, Username: "user5"}))

	require.NoError(t, adapter.Clear(ctx))
	require.NoError(t, service.ResetAuthState(ctx))

	state := service.State()
	assert.False(t, state.IsLoggedIn)
	assert.Zero(t, state.ID)
}

func TestResetAuthStatePicksUpOutOfBandLogin(t *testing.T) {
	ctx := context.Background()
	adapter, _ := newTestStorage(t)
	service := New(ctx, NewStorageRepository(adapter))

	require.NoError(t, adapter.SetItem(ctx, StorageKey, Session{IsLoggedIn: true, ID: 8, Username: "user8"}))
	require.NoError(t, service.ResetAuthState(ctx))

	assert.Equal(t, Session{IsLoggedIn: true, ID: 8, Username: "user8"}, service.State())
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	adapter, _ := newTestStorage(t)
	service := New(ctx, NewStorageRepository(adapter))
	require.NoError(t, service.LoginSuccess(ctx, LoginData{ID: 5, Username: "user5", Header: "Bearer t"}))

	require.NoError(t, service.Logout(ctx))

	assert.Equal(t, Session{}, service.State())
	assert.Equal(t, Session{}, storedSession(t, adapter))
}

func TestCommitSaveFailure(t *testing.T) {
	ctx := context.Background()
	db := &mockstorage.StorageMock{}
	db.On("Get", mock.Anything, StorageKey).Return("", false, nil)
	db.On("Set", mock.Anything, StorageKey, mock.Anything).Return(errors.New("disk full"))
	service := New(ctx, NewStorageRepository(storage.New(db)))

	err := service.LoginSuccess(ctx, LoginData{ID: 7, Username: "u", Header: "Bearer t"})

	assert.Error(t, err)
	assert.Equal(t, Session{}, service.State(), "a failed save leaves the session as it was")
	db.AssertExpectations(t)
}

// slowRepository blocks Load until release is closed.
type slowRepository struct {
	Repository
	loading chan struct{}
	release chan struct{}
}

func (r *slowRepository) Load(ctx context.Context) (*Session, error) {
	close(r.loading)
	<-r.release
	return r.Repository.Load(ctx)
}

func TestResetAuthStateHoldsCommitsUntilDone(t *testing.T) {
	ctx := context.Background()
	adapter, _ := newTestStorage(t)
	service := New(ctx, NewStorageRepository(adapter))

	repo := &slowRepository{
		Repository: NewStorageRepository(adapter),
		loading:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	service.repo = repo

	resetDone := make(chan error, 1)
	go func() {
		resetDone <- service.ResetAuthState(ctx)
	}()
	<-repo.loading

	loginDone := make(chan error, 1)
	go func() {
		loginDone <- service.LoginSuccess(ctx, LoginData{ID: 5, Username: "user5"})
	}()

	select {
	case <-loginDone:
		t.Fatal("login committed while the session was being reloaded")
	case <-time.After(50 * time.Millisecond):
	}

	close(repo.release)
	require.NoError(t, <-resetDone)
	require.NoError(t, <-loginDone)

	want := Session{IsLoggedIn: true, ID: 5, Username: "user5"}
	assert.Equal(t, want, service.State())
	assert.Equal(t, want, storedSession(t, adapter))
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	adapter, _ := newTestStorage(t)
	service := New(ctx, NewStorageRepository(adapter))

	service.Close()

	assert.ErrorIs(t, service.LoginSuccess(ctx, LoginData{ID: 1}), ErrClosed)
	assert.False(t, service.State().IsLoggedIn)
}
