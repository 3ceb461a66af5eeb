package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dlukin/weather-lookup-service/internal/models"
)

// Store persists weather lookups and pages through them newest first.
type Store interface {
	// Insert stores the record, assigning ID and Timestamp. The single-row
	// insert either fully persists or fails entirely.
	Insert(ctx context.Context, rec *models.WeatherRecord) error
	// ListRecent returns records ordered by timestamp descending, skipping
	// skip rows and returning at most limit rows. Out-of-range arguments
	// yield fewer or zero rows, never an error.
	ListRecent(ctx context.Context, skip, limit int) ([]models.WeatherRecord, error)
}

// SQLStore is a Store backed by a SQLite table via GORM.
type SQLStore struct {
	db *gorm.DB
}

// Open opens (creating if needed) the SQLite database at path and migrates
// the weather_requests table.
func Open(path string) (*SQLStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&models.WeatherRecord{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Insert(ctx context.Context, rec *models.WeatherRecord) error {
	rec.ID = 0 // server-assigned
	rec.Timestamp = time.Now().UTC()
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("insert weather record: %w", err)
	}
	return nil
}

func (s *SQLStore) ListRecent(ctx context.Context, skip, limit int) ([]models.WeatherRecord, error) {
	var records []models.WeatherRecord
	err := s.db.WithContext(ctx).
		Order("timestamp DESC, id DESC").
		Offset(skip).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list weather records: %w", err)
	}
	return records, nil
}
