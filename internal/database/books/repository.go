// Package books provides database operations for the book catalogue.
//
// This package implements the BookReader and BookWriter interfaces defined
// in internal/services/interfaces.go.
package books

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/virtualcode/readingvault/internal/entities"
)

// ErrNotFound is returned when no book matches the given id.
var ErrNotFound = errors.New("book not found")

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetBookByID retrieves a book by its ID, or nil when no such book
// exists.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAllBooksForUser retrieves all books owned by a user.
func (r *Repository) GetAllBooksForUser(userID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Where("user_id = ?", userID).Order("title ASC").Find(&books).Error
	return books, err
}

// GetBooksByStatus retrieves a user's books in the given lifecycle status.
func (r *Repository) GetBooksByStatus(userID uint, status entities.BookStatus) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Where("user_id = ? AND status = ?", userID, status).Order("last_read_at DESC").Find(&books).Error
	return books, err
}

// FindBooksByAuthor retrieves a user's books matching the author
// (case-insensitive partial match).
func (r *Repository) FindBooksByAuthor(userID uint, author string) ([]entities.Book, error) {
	var books []entities.Book
	pattern := "%" + author + "%"
	err := r.db.Where("user_id = ? AND LOWER(author) LIKE LOWER(?)", userID, pattern).
		Order("title ASC").Find(&books).Error
	return books, err
}

// FindBooksReadBetween retrieves a user's completed books whose date read
// falls within the given range (inclusive).
func (r *Repository) FindBooksReadBetween(userID uint, from, to time.Time) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Where("user_id = ? AND status = ? AND date_read >= ? AND date_read <= ?",
		userID, entities.StatusCompleted, from, to).
		Order("date_read ASC").Find(&books).Error
	return books, err
}

// CreateBook inserts a new book.
func (r *Repository) CreateBook(book *entities.Book) error {
	return r.db.Create(book).Error
}

// UpdateBook saves all fields of an existing book.
func (r *Repository) UpdateBook(book *entities.Book) error {
	if book.ID == 0 {
		return errors.New("book ID is required for update")
	}
	return r.db.Save(book).Error
}

// DeleteBook soft-deletes a book by ID.
func (r *Repository) DeleteBook(id uint) error {
	result := r.db.Delete(&entities.Book{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
