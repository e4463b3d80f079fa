package models

import "time"

// KVEntry is one durable slot of the key-value asset storage. Value holds the
// JSON array of a namespace's assets.
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:255"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName pins the table name used by migrations.
func (KVEntry) TableName() string {
	return "kv_entries"
}
