// Package sqlstore provides a SQLite (gorm) implementation of KVStore.
package sqlstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/runoshun/steps/internal/domain"
)

// Entry is one key/value row.
type Entry struct {
	UpdatedAt time.Time
	Key       string `gorm:"primaryKey;size:100"`
	Value     string `gorm:"type:text;not null"`
}

// TableName keeps the table name stable.
func (Entry) TableName() string {
	return "kv_entries"
}

// Store implements domain.KVStore on a SQLite table.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the database at path and migrates the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}
	return OpenDialector(sqlite.Open(path))
}

// OpenDialector opens the store on any gorm dialector.
func OpenDialector(d gorm.Dialector) (*Store, error) {
	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, bool, error) {
	var e Entry
	err := s.db.Where("key = ?", key).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return e.Value, true, nil
}

// Set upserts value under key.
func (s *Store) Set(key, value string) error {
	e := Entry{Key: key, Value: value}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error; err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ domain.KVStore = (*Store)(nil)
