// Package notes provides database operations for book notes.
package notes

import (
	"errors"

	"gorm.io/gorm"

	"github.com/virtualcode/readingvault/internal/entities"
)

// ErrNotFound is returned when no note matches the given id.
var ErrNotFound = errors.New("note not found")

// Repository handles all book-note database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new notes repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetNoteByID retrieves a note by its ID, or nil when no such note
// exists.
func (r *Repository) GetNoteByID(id uint) (*entities.BookNote, error) {
	var note entities.BookNote
	err := r.db.First(&note, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// GetNotesForBook retrieves all notes for a book, oldest first.
func (r *Repository) GetNotesForBook(bookID uint) ([]entities.BookNote, error) {
	var notes []entities.BookNote
	err := r.db.Where("book_id = ?", bookID).Order("created_at ASC").Find(&notes).Error
	return notes, err
}

// CreateNote inserts a new note.
func (r *Repository) CreateNote(note *entities.BookNote) error {
	return r.db.Create(note).Error
}

// UpdateNote saves all fields of an existing note.
func (r *Repository) UpdateNote(note *entities.BookNote) error {
	if note.ID == 0 {
		return errors.New("note ID is required for update")
	}
	return r.db.Save(note).Error
}

// DeleteNote removes a note by ID.
func (r *Repository) DeleteNote(id uint) error {
	result := r.db.Delete(&entities.BookNote{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
