package entities

import (
	"time"

	"gorm.io/gorm"
)

// BookStatus tracks where a book is in its reading lifecycle.
type BookStatus string

const (
	StatusNotStarted BookStatus = "NOT_STARTED"
	StatusInProgress BookStatus = "IN_PROGRESS"
	StatusCompleted  BookStatus = "COMPLETED"
	StatusOnHold     BookStatus = "ON_HOLD"
)

// BookCondition describes the physical state of a copy.
type BookCondition string

const (
	ConditionNew       BookCondition = "NEW"
	ConditionExcellent BookCondition = "EXCELLENT"
	ConditionGood      BookCondition = "GOOD"
	ConditionFair      BookCondition = "FAIR"
	ConditionPoor      BookCondition = "POOR"
)

type Book struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"index" json:"user_id"`
	Title          string         `gorm:"index;size:512" json:"title"`
	Author         string         `gorm:"index;size:256" json:"author"`
	ISBN           string         `gorm:"index;size:20" json:"isbn,omitempty"`
	YearPublished  *int           `json:"year_published,omitempty"`
	TotalPages     *int           `json:"total_pages,omitempty"`
	Status         BookStatus     `gorm:"size:20;default:'NOT_STARTED'" json:"status"`
	Condition      BookCondition  `gorm:"size:20;default:'GOOD'" json:"condition"`
	Location       string         `gorm:"size:256" json:"location,omitempty"`
	DateAcquired   *time.Time     `json:"date_acquired,omitempty"`
	StartedReading *time.Time     `json:"started_reading,omitempty"`
	DateRead       *time.Time     `json:"date_read,omitempty"`
	Rating         *int           `json:"rating,omitempty"`
	CurrentPage    int            `gorm:"default:0" json:"current_page"`
	LastReadAt     *time.Time     `json:"last_read_at,omitempty"`
	User           User           `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// IsRead reports whether the book has been finished.
func (b *Book) IsRead() bool {
	return b.Status == StatusCompleted
}

// IsCurrentlyReading reports whether the book is being read right now.
func (b *Book) IsCurrentlyReading() bool {
	return b.Status == StatusInProgress
}

// ReadingYear returns the year the book was finished, or nil if unread.
func (b *Book) ReadingYear() *int {
	if b.DateRead == nil {
		return nil
	}
	year := b.DateRead.Year()
	return &year
}

// ReadingProgress is a timestamped record of the page a reader reached,
// optionally with the minutes spent in that session. Events are immutable
// once recorded.
type ReadingProgress struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	BookID      uint       `gorm:"index" json:"book_id"`
	CurrentPage int        `json:"current_page"`
	Timestamp   time.Time  `gorm:"index" json:"timestamp"`
	MinutesRead *int       `json:"minutes_read,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`
	Book        Book       `gorm:"foreignKey:BookID" json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
}

type BookLending struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	BookID             uint       `gorm:"index" json:"book_id"`
	BorrowerName       string     `gorm:"size:256" json:"borrower_name"`
	BorrowerContact    string     `gorm:"size:256" json:"borrower_contact"`
	LendingDate        time.Time  `json:"lending_date"`
	ExpectedReturnDate time.Time  `json:"expected_return_date"`
	ActualReturnDate   *time.Time `json:"actual_return_date,omitempty"`
	Notes              string     `gorm:"type:text" json:"notes,omitempty"`
	Book               Book       `gorm:"foreignKey:BookID" json:"-"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// IsActive reports whether the book is still out with the borrower.
func (l *BookLending) IsActive() bool {
	return l.ActualReturnDate == nil
}

// IsOverdue reports whether the lending is past its expected return date
// and the book has not come back.
func (l *BookLending) IsOverdue(now time.Time) bool {
	return l.ActualReturnDate == nil && now.After(l.ExpectedReturnDate)
}

type BookNote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookID    uint      `gorm:"index" json:"book_id"`
	Content   string    `gorm:"type:text" json:"content"`
	Page      *int      `json:"page,omitempty"`
	Chapter   string    `gorm:"size:256" json:"chapter,omitempty"`
	Book      Book      `gorm:"foreignKey:BookID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

func (ReadingProgress) TableName() string {
	return "reading_progress"
}

func (BookLending) TableName() string {
	return "book_lendings"
}

func (BookNote) TableName() string {
	return "book_notes"
}
