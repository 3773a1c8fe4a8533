package services

import (
	"errors"
	"math"
	"time"

	"github.com/virtualcode/readingvault/internal/entities"
	"github.com/virtualcode/readingvault/internal/stats"
)

var (
	ErrBookAlreadyReading = errors.New("book is already being read")
	ErrBookAlreadyRead    = errors.New("book has already been read")
	ErrBookNotBeingRead   = errors.New("book is not currently being read")
	ErrPageBehindCurrent  = errors.New("new page number cannot be less than current page")
	ErrPageBeyondTotal    = errors.New("page number cannot exceed total pages")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
)

// BookStatistics is the full analytics view for a single book: both stat
// engines' output merged with the complete lending history and notes.
type BookStatistics struct {
	ReadingStats           stats.ReadingStats      `json:"reading_stats"`
	ReadingPace            stats.ReadingPace       `json:"reading_pace"`
	LendingHistory         []entities.BookLending  `json:"lending_history"`
	Notes                  []entities.BookNote     `json:"notes"`
	TotalTimesLent         int                     `json:"total_times_lent"`
	AverageLendingDuration *float64                `json:"average_lending_duration,omitempty"`
}

// BookWithDetails pairs a book with its latest progress event, open
// lending, and notes. ReadingStats is only present for books that are
// being read or have been read; a not-yet-started book has no meaningful
// stats.
type BookWithDetails struct {
	Book            entities.Book             `json:"book"`
	CurrentProgress *entities.ReadingProgress `json:"current_progress,omitempty"`
	CurrentLending  *entities.BookLending     `json:"current_lending,omitempty"`
	Notes           []entities.BookNote       `json:"notes"`
	ReadingStats    *stats.ReadingStats       `json:"reading_stats,omitempty"`
}

// ReadingSummary is the per-user library overview: how many books the
// user owns, how many they have finished, the average rating over the
// finished ones, and a per-year finish count. AverageRating is nil until
// at least one finished book carries a rating.
type ReadingSummary struct {
	TotalBooks    int         `json:"total_books"`
	ReadBooks     int         `json:"read_books"`
	AverageRating *float64    `json:"average_rating,omitempty"`
	BooksByYear   map[int]int `json:"books_by_year"`
}

// BookWithProgress is the dashboard view for a book currently being read.
type BookWithProgress struct {
	Book                    entities.Book             `json:"book"`
	CurrentProgress         *entities.ReadingProgress `json:"current_progress,omitempty"`
	EstimatedDaysToComplete *int                      `json:"estimated_days_to_complete,omitempty"`
	ReadingConsistency      stats.Consistency         `json:"reading_consistency"`
}

// Operations coordinates the reading lifecycle and composes the analytics
// views from already-fetched collaborator data. It holds no state between
// calls; every view is a pure merge of whatever snapshot the repositories
// return.
type Operations struct {
	books      BookReader
	bookWriter BookWriter
	progress   ProgressLister
	recorder   ProgressRecorder
	lendings   LendingReader
	notes      NoteLister
}

// NewOperations creates the operations service.
func NewOperations(
	books BookReader,
	bookWriter BookWriter,
	progress ProgressLister,
	recorder ProgressRecorder,
	lendings LendingReader,
	notes NoteLister,
) *Operations {
	return &Operations{
		books:      books,
		bookWriter: bookWriter,
		progress:   progress,
		recorder:   recorder,
		lendings:   lendings,
		notes:      notes,
	}
}

func (s *Operations) getBook(bookID uint) (*entities.Book, error) {
	book, err := s.books.GetBookByID(bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	return book, nil
}

// GetBookStatistics assembles the full analytics view for a book.
func (s *Operations) GetBookStatistics(bookID uint) (*BookStatistics, error) {
	book, err := s.getBook(bookID)
	if err != nil {
		return nil, err
	}

	events, err := s.progress.GetBookProgress(bookID)
	if err != nil {
		return nil, err
	}
	lendings, err := s.lendings.GetLendingHistory(bookID)
	if err != nil {
		return nil, err
	}
	bookNotes, err := s.notes.GetNotesForBook(bookID)
	if err != nil {
		return nil, err
	}

	return &BookStatistics{
		ReadingStats:           stats.CalculateReadingStats(book, events),
		ReadingPace:            stats.CalculateReadingPace(book, events),
		LendingHistory:         lendings,
		Notes:                  bookNotes,
		TotalTimesLent:         len(lendings),
		AverageLendingDuration: averageLendingDuration(lendings),
	}, nil
}

// GetBookWithDetails assembles the book-detail view: latest progress,
// open lending, notes, and stats for books in or past reading.
func (s *Operations) GetBookWithDetails(bookID uint) (*BookWithDetails, error) {
	book, err := s.getBook(bookID)
	if err != nil {
		return nil, err
	}

	latest, err := s.progress.GetLatestProgress(bookID)
	if err != nil {
		return nil, err
	}
	current, err := s.lendings.GetCurrentLending(bookID)
	if err != nil {
		return nil, err
	}
	bookNotes, err := s.notes.GetNotesForBook(bookID)
	if err != nil {
		return nil, err
	}

	details := &BookWithDetails{
		Book:            *book,
		CurrentProgress: latest,
		CurrentLending:  current,
		Notes:           bookNotes,
	}

	if book.IsCurrentlyReading() || book.IsRead() {
		events, err := s.progress.GetBookProgress(bookID)
		if err != nil {
			return nil, err
		}
		readingStats := stats.CalculateReadingStats(book, events)
		details.ReadingStats = &readingStats
	}

	return details, nil
}

// GetCurrentlyReadingBooks assembles the dashboard view: every book the
// user is reading, paired with its latest progress and pace projection.
func (s *Operations) GetCurrentlyReadingBooks(userID uint) ([]BookWithProgress, error) {
	reading, err := s.books.GetBooksByStatus(userID, entities.StatusInProgress)
	if err != nil {
		return nil, err
	}

	result := make([]BookWithProgress, 0, len(reading))
	for _, book := range reading {
		events, err := s.progress.GetBookProgress(book.ID)
		if err != nil {
			return nil, err
		}
		latest, err := s.progress.GetLatestProgress(book.ID)
		if err != nil {
			return nil, err
		}

		pace := stats.CalculateReadingPace(&book, events)
		result = append(result, BookWithProgress{
			Book:                    book,
			CurrentProgress:         latest,
			EstimatedDaysToComplete: pace.EstimatedDaysToComplete,
			ReadingConsistency:      pace.ReadingConsistency,
		})
	}

	return result, nil
}

// GetReadingSummary aggregates the user's whole library into a single
// overview. Ratings only count on finished books, and finished books with
// no recorded finish date stay out of the per-year breakdown.
func (s *Operations) GetReadingSummary(userID uint) (*ReadingSummary, error) {
	allBooks, err := s.books.GetAllBooksForUser(userID)
	if err != nil {
		return nil, err
	}

	summary := &ReadingSummary{
		TotalBooks:  len(allBooks),
		BooksByYear: make(map[int]int),
	}

	ratingTotal := 0
	ratingCount := 0
	for _, book := range allBooks {
		if !book.IsRead() {
			continue
		}
		summary.ReadBooks++
		if book.Rating != nil {
			ratingTotal += *book.Rating
			ratingCount++
		}
		if year := book.ReadingYear(); year != nil {
			summary.BooksByYear[*year]++
		}
	}

	if ratingCount > 0 {
		avg := float64(ratingTotal) / float64(ratingCount)
		summary.AverageRating = &avg
	}

	return summary, nil
}

// StartReading moves a book into IN_PROGRESS.
func (s *Operations) StartReading(bookID uint) (*entities.Book, error) {
	book, err := s.getBook(bookID)
	if err != nil {
		return nil, err
	}
	if book.IsCurrentlyReading() {
		return nil, ErrBookAlreadyReading
	}
	if book.IsRead() {
		return nil, ErrBookAlreadyRead
	}

	now := time.Now()
	book.Status = entities.StatusInProgress
	book.StartedReading = &now
	book.LastReadAt = &now

	if err := s.bookWriter.UpdateBook(book); err != nil {
		return nil, err
	}
	return book, nil
}

// UpdateReadingProgress advances a book to the given page, records a
// progress event, and completes the book when it reaches its total page
// count. The page number is monotonic: going backwards is rejected here
// so the recorded event history keeps its non-decreasing invariant.
func (s *Operations) UpdateReadingProgress(bookID uint, currentPage int, minutesRead *int) (*entities.Book, error) {
	book, err := s.getBook(bookID)
	if err != nil {
		return nil, err
	}
	if !book.IsCurrentlyReading() {
		return nil, ErrBookNotBeingRead
	}
	if currentPage < book.CurrentPage {
		return nil, ErrPageBehindCurrent
	}
	if book.TotalPages != nil && currentPage > *book.TotalPages {
		return nil, ErrPageBeyondTotal
	}

	now := time.Now()
	book.CurrentPage = currentPage
	book.LastReadAt = &now
	if book.TotalPages != nil && currentPage >= *book.TotalPages {
		book.Status = entities.StatusCompleted
		book.DateRead = &now
	} else {
		book.Status = entities.StatusInProgress
		book.DateRead = nil
	}

	if err := s.recorder.RecordProgress(&entities.ReadingProgress{
		BookID:      bookID,
		CurrentPage: currentPage,
		MinutesRead: minutesRead,
		Timestamp:   now,
	}); err != nil {
		return nil, err
	}

	if err := s.bookWriter.UpdateBook(book); err != nil {
		return nil, err
	}
	return book, nil
}

// CompleteReading marks a book COMPLETED, optionally rating it.
func (s *Operations) CompleteReading(bookID uint, rating *int) (*entities.Book, error) {
	book, err := s.getBook(bookID)
	if err != nil {
		return nil, err
	}
	if !book.IsCurrentlyReading() {
		return nil, ErrBookNotBeingRead
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, ErrInvalidRating
	}

	now := time.Now()
	book.Status = entities.StatusCompleted
	book.DateRead = &now
	book.Rating = rating
	if book.TotalPages != nil {
		book.CurrentPage = *book.TotalPages
	}

	if err := s.bookWriter.UpdateBook(book); err != nil {
		return nil, err
	}
	return book, nil
}

// CanBookBeLent reports whether the book may go out: it must not be in
// the middle of being read, not in POOR condition, and not already out.
func (s *Operations) CanBookBeLent(bookID uint) (bool, error) {
	book, err := s.getBook(bookID)
	if err != nil {
		return false, err
	}
	if book.IsCurrentlyReading() || book.Condition == entities.ConditionPoor {
		return false, nil
	}

	current, err := s.lendings.GetCurrentLending(bookID)
	if err != nil {
		return false, err
	}
	return current == nil, nil
}

// averageLendingDuration is the mean, in whole days, of how long returned
// lendings were out. Nil when nothing has come back yet.
func averageLendingDuration(lendings []entities.BookLending) *float64 {
	total := 0.0
	count := 0
	for _, l := range lendings {
		if l.IsActive() {
			continue
		}
		total += math.Floor(l.ActualReturnDate.Sub(l.LendingDate).Hours() / 24)
		count++
	}
	if count == 0 {
		return nil
	}
	avg := total / float64(count)
	return &avg
}
