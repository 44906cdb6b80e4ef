package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type stateEntry struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte
	UpdatedAt time.Time
}

func (stateEntry) TableName() string {
	return "state_entries"
}

// SQLiteMedium persists state in a local SQLite database, for installations
// that already keep a database file next to the catalog cache.
type SQLiteMedium struct {
	conn *gorm.DB
}

func NewSQLiteMedium(path string) (*SQLiteMedium, error) {
	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}
	if err := conn.AutoMigrate(&stateEntry{}); err != nil {
		return nil, fmt.Errorf("migrating state schema: %w", err)
	}
	return &SQLiteMedium{conn: conn}, nil
}

func (s *SQLiteMedium) Load(ctx context.Context) (map[string]json.RawMessage, error) {
	var entries []stateEntry
	if err := s.conn.WithContext(ctx).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("loading state entries: %w", err)
	}

	snapshot := make(map[string]json.RawMessage, len(entries))
	for _, entry := range entries {
		snapshot[entry.Key] = entry.Value
	}
	return snapshot, nil
}

func (s *SQLiteMedium) Save(ctx context.Context, key string, value json.RawMessage) error {
	entry := stateEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := s.conn.WithContext(ctx).Save(&entry).Error
	if err != nil {
		return fmt.Errorf("saving state entry: %w", err)
	}
	return nil
}

func (s *SQLiteMedium) Delete(ctx context.Context, key string) error {
	err := s.conn.WithContext(ctx).Delete(&stateEntry{}, "key = ?", key).Error
	if err != nil {
		return fmt.Errorf("deleting state entry: %w", err)
	}
	return nil
}

func (s *SQLiteMedium) Close() error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
