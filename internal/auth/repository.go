package auth

import "context"

// StorageKey is the persistence key of the session.
const StorageKey = "auth"

type itemStore interface {
	SetItem(ctx context.Context, key string, value any) error
	GetInto(ctx context.Context, key string, dst any) bool
}

// StorageRepository keeps the session as JSON under StorageKey.
type StorageRepository struct {
	store itemStore
}

func NewStorageRepository(store itemStore) *StorageRepository {
	return &StorageRepository{store: store}
}

func (r *StorageRepository) Load(ctx context.Context) (*Session, error) {
	var session Session
	if !r.store.GetInto(ctx, StorageKey, &session) {
		return nil, nil
	}

	return &session, nil
}

func (r *StorageRepository) Save(ctx context.Context, session Session) error {
	return r.store.SetItem(ctx, StorageKey, session)
}
