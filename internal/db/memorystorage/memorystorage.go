package memorystorage

import (
	"github.com/patric-chuzhbe/hoaxify/internal/db/jsondb"
)

// MemoryStorage is the default backend when no persistent storage is configured.
// Values live until the process exits.
type MemoryStorage struct {
	*jsondb.JSONDB
}

func New() (*MemoryStorage, error) {
	return &MemoryStorage{
		JSONDB: jsondb.NewInMemory(),
	}, nil
}

func (theStorage *MemoryStorage) Close() error {
	return nil
}
