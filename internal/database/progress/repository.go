// Package progress provides database operations for reading-progress
// events. Events are append-only: they are recorded when the reader
// advances and never updated afterwards.
package progress

import (
	"errors"

	"gorm.io/gorm"

	"github.com/virtualcode/readingvault/internal/entities"
)

// Repository handles all reading-progress database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new progress repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetBookProgress retrieves all progress events for a book ordered by
// timestamp.
func (r *Repository) GetBookProgress(bookID uint) ([]entities.ReadingProgress, error) {
	var events []entities.ReadingProgress
	err := r.db.Where("book_id = ?", bookID).Order("timestamp ASC").Find(&events).Error
	return events, err
}

// GetLatestProgress retrieves the most recent progress event for a book,
// or nil when none has been recorded.
func (r *Repository) GetLatestProgress(bookID uint) (*entities.ReadingProgress, error) {
	var event entities.ReadingProgress
	err := r.db.Where("book_id = ?", bookID).Order("timestamp DESC").First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// RecordProgress inserts a new progress event.
func (r *Repository) RecordProgress(event *entities.ReadingProgress) error {
	return r.db.Create(event).Error
}
