package infrastructure

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yourusername/ytdl-gateway/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SQLiteSettingsRepository implements SettingsRepository using SQLite
type SQLiteSettingsRepository struct {
	db *gorm.DB
}

// NewSQLiteSettingsRepository opens (and creates if needed) the settings database
func NewSQLiteSettingsRepository(dbPath string) (*SQLiteSettingsRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create settings directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&domain.Preference{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteSettingsRepository{db: db}, nil
}

// Get returns the value stored under key
func (r *SQLiteSettingsRepository) Get(key string) (string, bool, error) {
	var pref domain.Preference
	err := r.db.Where("key = ?", key).First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return pref.Value, true, nil
}

// Put inserts or replaces the value stored under key
func (r *SQLiteSettingsRepository) Put(key, value string) error {
	pref := &domain.Preference{Key: key, Value: value, UpdatedAt: time.Now()}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(pref).Error
}

// Delete removes key. Deleting a missing key is not an error.
func (r *SQLiteSettingsRepository) Delete(key string) error {
	return r.db.Delete(&domain.Preference{}, "key = ?", key).Error
}

// Close closes the database connection
func (r *SQLiteSettingsRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
