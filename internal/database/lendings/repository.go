// Package lendings provides database operations for book lendings.
// The invariant that at most one lending per book is open at a time is
// enforced by the lending service on top of these queries.
package lendings

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/virtualcode/readingvault/internal/entities"
)

// Repository handles all lending database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new lendings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetLendingByID retrieves a lending by its ID, or nil when no such
// lending exists.
func (r *Repository) GetLendingByID(id uint) (*entities.BookLending, error) {
	var lending entities.BookLending
	err := r.db.First(&lending, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lending, nil
}

// GetLendingHistory retrieves all lendings for a book, oldest first.
func (r *Repository) GetLendingHistory(bookID uint) ([]entities.BookLending, error) {
	var lendings []entities.BookLending
	err := r.db.Where("book_id = ?", bookID).Order("lending_date ASC").Find(&lendings).Error
	return lendings, err
}

// GetCurrentLending retrieves the open lending for a book, or nil when
// the book is not out.
func (r *Repository) GetCurrentLending(bookID uint) (*entities.BookLending, error) {
	var lending entities.BookLending
	err := r.db.Where("book_id = ? AND actual_return_date IS NULL", bookID).First(&lending).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lending, nil
}

// GetOverdueLendings retrieves open lendings whose expected return date
// has passed.
func (r *Repository) GetOverdueLendings(now time.Time) ([]entities.BookLending, error) {
	var lendings []entities.BookLending
	err := r.db.Where("actual_return_date IS NULL AND expected_return_date < ?", now).
		Order("expected_return_date ASC").Find(&lendings).Error
	return lendings, err
}

// CreateLending inserts a new lending record.
func (r *Repository) CreateLending(lending *entities.BookLending) error {
	return r.db.Create(lending).Error
}

// UpdateLending saves all fields of an existing lending.
func (r *Repository) UpdateLending(lending *entities.BookLending) error {
	if lending.ID == 0 {
		return errors.New("lending ID is required for update")
	}
	return r.db.Save(lending).Error
}
