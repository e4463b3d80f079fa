package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"assetvault/internal/models"
)

// GormKV stores slots as rows of the kv_entries table.
type GormKV struct {
	db *gorm.DB
}

// NewGormKV returns a KV over db. The kv_entries table must already exist.
func NewGormKV(db *gorm.DB) *GormKV {
	return &GormKV{db: db}
}

func (s *GormKV) Get(key string) ([]byte, bool, error) {
	var entry models.KVEntry
	if err := s.db.Where("key = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(entry.Value), true, nil
}

func (s *GormKV) Set(key string, value []byte) error {
	entry := models.KVEntry{Key: key, Value: string(value), UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (s *GormKV) Delete(key string) error {
	return s.db.Where("key = ?", key).Delete(&models.KVEntry{}).Error
}

// Close is a no-op; the connection is owned by the database manager.
func (s *GormKV) Close() error {
	return nil
}
