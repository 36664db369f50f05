package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is the single table backing GormStore.
type KVEntry struct {
	Key       string    `gorm:"type:varchar(191);primaryKey"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

// GormStore keeps collections as rows of a key-value table in a SQL database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the kv table and returns a store over db.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, fmt.Errorf("storage: migrate kv_entries: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry KVEntry
	err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: get %q: %w", key, err)
	}
	return entry.Value, nil
}

func (s *GormStore) Put(ctx context.Context, key string, value []byte) error {
	return upsert(s.db.WithContext(ctx), key, value)
}

func (s *GormStore) PutMany(ctx context.Context, entries map[string][]byte) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for k, v := range entries {
			if err := upsert(tx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *GormStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Where("key IN ?", keys).Delete(&KVEntry{}).Error; err != nil {
		return fmt.Errorf("storage: delete: %w", err)
	}
	return nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func upsert(tx *gorm.DB, key string, value []byte) error {
	entry := KVEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("storage: put %q: %w", key, err)
	}
	return nil
}
