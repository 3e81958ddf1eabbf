// Package jsondb keeps the client's key/value storage in a single JSON file.
// The whole cache is rewritten after every change, so the file always
// reflects the last committed value.
package jsondb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

type JSONDB struct {
	mu       sync.RWMutex
	fileName string
	Cache    CacheStruct
}

type CacheStruct struct {
	Items map[string]string
}

func initDBFile(fileName string) error {
	dbFile, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(dbFile, `{
	"Items": {}
}`)
	if err != nil {
		return err
	}
	return dbFile.Close()
}

func writeToJSONFile(fileName string, cache interface{}) error {
	jsonData, err := json.MarshalIndent(cache, "", "\t")
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}

	file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0600)
	if err != nil {
		return fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	_, err = file.Write(jsonData)
	if err != nil {
		return fmt.Errorf("error writing to file: %w", err)
	}

	return nil
}

func parseJSONFile(fileName string, cache *CacheStruct) error {
	file, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	err = decoder.Decode(cache)
	if err != nil {
		return err
	}

	return nil
}

// New opens fileName, creating it with an empty cache when it does not exist.
func New(fileName string) (*JSONDB, error) {
	db := &JSONDB{
		fileName: fileName,
		Cache:    CacheStruct{},
	}

	err := parseJSONFile(db.fileName, &db.Cache)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("in internal/db/jsondb/jsondb.go/New(): error while `parseJSONFile()` calling: %w", err)
		}
		if err := initDBFile(fileName); err != nil {
			return nil, err
		}
		if err := parseJSONFile(db.fileName, &db.Cache); err != nil {
			return nil, err
		}
	}
	if db.Cache.Items == nil {
		db.Cache.Items = map[string]string{}
	}

	return db, nil
}

// NewInMemory returns a JSONDB that never touches the disk.
func NewInMemory() *JSONDB {
	return &JSONDB{
		Cache: CacheStruct{Items: map[string]string{}},
	}
}

// flush must be called with mu held.
func (db *JSONDB) flush() error {
	if db.fileName == "" {
		return nil
	}
	return writeToJSONFile(db.fileName, db.Cache)
}

func (db *JSONDB) Get(ctx context.Context, key string) (string, bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	value, found := db.Cache.Items[key]

	return value, found, nil
}

func (db *JSONDB) Set(ctx context.Context, key, value string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.Cache.Items[key] = value

	return db.flush()
}

func (db *JSONDB) Clear(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.Cache.Items = map[string]string{}

	return db.flush()
}

func (db *JSONDB) Ping(ctx context.Context) error {
	return nil
}

func (db *JSONDB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.flush()
}
