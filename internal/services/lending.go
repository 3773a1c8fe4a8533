package services

import (
	"errors"
	"time"

	"github.com/virtualcode/readingvault/internal/entities"
)

var (
	ErrLendingNotFound = errors.New("lending not found")
	ErrBookAlreadyLent = errors.New("book is already lent out")
	ErrBookNotLendable = errors.New("book cannot be lent")
	ErrAlreadyReturned = errors.New("lending has already been returned")
)

// LendingRepository is the full lending persistence contract the lending
// service needs, beyond the narrow read view the orchestrator uses.
type LendingRepository interface {
	LendingReader
	LendingWriter
	GetLendingByID(id uint) (*entities.BookLending, error)
	GetOverdueLendings(now time.Time) ([]entities.BookLending, error)
}

// LendingService enforces the lending rules: one open lending per book at
// a time, and only books that are fit to go out.
type LendingService struct {
	books             BookReader
	lendings          LendingRepository
	defaultPeriodDays int
}

// NewLendingService creates the lending service. defaultPeriodDays is the
// expected return horizon applied when the caller does not name one.
func NewLendingService(books BookReader, lendings LendingRepository, defaultPeriodDays int) *LendingService {
	return &LendingService{
		books:             books,
		lendings:          lendings,
		defaultPeriodDays: defaultPeriodDays,
	}
}

// LendBook lends a book out. It rejects books that are being read, in
// POOR condition, or already out; this is what keeps the at-most-one-open
// -lending invariant that the analytics layer assumes.
func (s *LendingService) LendBook(bookID uint, borrowerName, borrowerContact string, expectedReturn *time.Time, notes string) (*entities.BookLending, error) {
	book, err := s.books.GetBookByID(bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	if book.IsCurrentlyReading() || book.Condition == entities.ConditionPoor {
		return nil, ErrBookNotLendable
	}

	current, err := s.lendings.GetCurrentLending(bookID)
	if err != nil {
		return nil, err
	}
	if current != nil {
		return nil, ErrBookAlreadyLent
	}

	now := time.Now()
	returnBy := now.AddDate(0, 0, s.defaultPeriodDays)
	if expectedReturn != nil {
		returnBy = *expectedReturn
	}

	lending := &entities.BookLending{
		BookID:             bookID,
		BorrowerName:       borrowerName,
		BorrowerContact:    borrowerContact,
		LendingDate:        now,
		ExpectedReturnDate: returnBy,
		Notes:              notes,
	}
	if err := s.lendings.CreateLending(lending); err != nil {
		return nil, err
	}
	return lending, nil
}

// ReturnBook closes an open lending.
func (s *LendingService) ReturnBook(lendingID uint) (*entities.BookLending, error) {
	lending, err := s.lendings.GetLendingByID(lendingID)
	if err != nil {
		return nil, err
	}
	if lending == nil {
		return nil, ErrLendingNotFound
	}
	if !lending.IsActive() {
		return nil, ErrAlreadyReturned
	}

	now := time.Now()
	lending.ActualReturnDate = &now
	if err := s.lendings.UpdateLending(lending); err != nil {
		return nil, err
	}
	return lending, nil
}

// GetLendingHistory returns all lendings for a book.
func (s *LendingService) GetLendingHistory(bookID uint) ([]entities.BookLending, error) {
	return s.lendings.GetLendingHistory(bookID)
}

// GetCurrentLending returns the open lending for a book, or nil.
func (s *LendingService) GetCurrentLending(bookID uint) (*entities.BookLending, error) {
	return s.lendings.GetCurrentLending(bookID)
}

// GetOverdueLendings returns open lendings past their expected return.
func (s *LendingService) GetOverdueLendings() ([]entities.BookLending, error) {
	return s.lendings.GetOverdueLendings(time.Now())
}
