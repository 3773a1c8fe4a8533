// Package services holds the business logic that sits between the HTTP
// controllers and the repositories: reading lifecycle operations, lending
// rules, and the aggregation of analytics with collaborator data. The
// services depend only on the narrow read/write contracts below, so tests
// and callers can supply any implementation.
package services

import (
	"errors"
	"time"

	"github.com/virtualcode/readingvault/internal/entities"
)

// ErrBookNotFound is returned when an operation references a book id with
// no corresponding record. It is the only hard failure surfaced by the
// aggregation views; everything else degrades to absent fields.
var ErrBookNotFound = errors.New("book not found")

// BookReader provides read-only access to the book catalogue.
// GetBookByID returns nil (with a nil error) when no book matches.
type BookReader interface {
	GetBookByID(id uint) (*entities.Book, error)
	GetAllBooksForUser(userID uint) ([]entities.Book, error)
	GetBooksByStatus(userID uint, status entities.BookStatus) ([]entities.Book, error)
	FindBooksByAuthor(userID uint, author string) ([]entities.Book, error)
	FindBooksReadBetween(userID uint, from, to time.Time) ([]entities.Book, error)
}

// BookWriter persists changes to books.
type BookWriter interface {
	UpdateBook(book *entities.Book) error
}

// ProgressLister provides read-only access to a book's progress events.
// GetLatestProgress returns nil when no event has been recorded.
type ProgressLister interface {
	GetBookProgress(bookID uint) ([]entities.ReadingProgress, error)
	GetLatestProgress(bookID uint) (*entities.ReadingProgress, error)
}

// ProgressRecorder appends progress events.
type ProgressRecorder interface {
	RecordProgress(event *entities.ReadingProgress) error
}

// LendingReader provides read-only access to a book's lending records.
// GetCurrentLending returns nil when the book is not out.
type LendingReader interface {
	GetLendingHistory(bookID uint) ([]entities.BookLending, error)
	GetCurrentLending(bookID uint) (*entities.BookLending, error)
}

// LendingWriter persists lending records.
type LendingWriter interface {
	CreateLending(lending *entities.BookLending) error
	UpdateLending(lending *entities.BookLending) error
}

// NoteLister provides read-only access to a book's notes.
type NoteLister interface {
	GetNotesForBook(bookID uint) ([]entities.BookNote, error)
}
