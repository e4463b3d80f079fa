// Package storage provides the durable key-value slots that hold each
// namespace's serialized asset collection.
package storage

import (
	"fmt"

	"gorm.io/gorm"

	"assetvault/internal/config"
)

// KV is a string-keyed byte store. Get reports a missing key with ok=false
// and a nil error; any returned error means the backend itself failed.
type KV interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Open builds the backend selected by cfg.StorageBackend. db is required
// for the database backend and ignored otherwise.
func Open(cfg *config.Config, db *gorm.DB) (KV, error) {
	switch cfg.StorageBackend {
	case config.StorageDatabase:
		if db == nil {
			return nil, fmt.Errorf("database storage backend requires a database connection")
		}
		return NewGormKV(db), nil
	case config.StorageBadger:
		return NewBadgerKV(cfg.BadgerPath)
	case config.StorageMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
