package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/virtualcode/readingvault/internal/auth"
	"github.com/virtualcode/readingvault/internal/database/books"
	"github.com/virtualcode/readingvault/internal/entities"
)

type BooksController struct {
	books *books.Repository
}

func NewBooksController(repo *books.Repository) *BooksController {
	return &BooksController{books: repo}
}

type bookRequest struct {
	Title         string                 `json:"title" binding:"required"`
	Author        string                 `json:"author" binding:"required"`
	ISBN          string                 `json:"isbn"`
	YearPublished *int                   `json:"year_published"`
	TotalPages    *int                   `json:"total_pages"`
	Condition     entities.BookCondition `json:"condition"`
	Location      string                 `json:"location"`
}

// GetBooks lists the caller's books. The author and read_year query
// parameters narrow the list.
func (controller *BooksController) GetBooks(c *gin.Context) {
	userID, _ := auth.UserID(c)

	if author := c.Query("author"); author != "" {
		found, err := controller.books.FindBooksByAuthor(userID, author)
		if err != nil {
			c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.IndentedJSON(http.StatusOK, gin.H{"books": found, "count": len(found)})
		return
	}

	if rawYear := c.Query("read_year"); rawYear != "" {
		year, err := strconv.Atoi(rawYear)
		if err != nil {
			c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid read_year parameter"})
			return
		}
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
		found, err := controller.books.FindBooksReadBetween(userID, from, to)
		if err != nil {
			c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.IndentedJSON(http.StatusOK, gin.H{"books": found, "count": len(found)})
		return
	}

	all, err := controller.books.GetAllBooksForUser(userID)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"books": all, "count": len(all)})
}

// getOwnedBook loads a book and checks it belongs to the caller. Books
// of other users are reported as missing, not forbidden.
func (controller *BooksController) getOwnedBook(c *gin.Context, id uint) *entities.Book {
	book, err := controller.books.GetBookByID(id)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil
	}
	userID, _ := auth.UserID(c)
	if book == nil || book.UserID != userID {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return nil
	}
	return book
}

func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	book := controller.getOwnedBook(c, id)
	if book == nil {
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}

func (controller *BooksController) CreateBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.TotalPages != nil && *req.TotalPages <= 0 {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "total_pages must be positive"})
		return
	}

	userID, _ := auth.UserID(c)
	now := time.Now()
	condition := req.Condition
	if condition == "" {
		condition = entities.ConditionGood
	}

	book := &entities.Book{
		UserID:        userID,
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		YearPublished: req.YearPublished,
		TotalPages:    req.TotalPages,
		Status:        entities.StatusNotStarted,
		Condition:     condition,
		Location:      req.Location,
		DateAcquired:  &now,
	}
	if err := controller.books.CreateBook(book); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusCreated, book)
}

func (controller *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	book := controller.getOwnedBook(c, id)
	if book == nil {
		return
	}

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.TotalPages != nil && *req.TotalPages <= 0 {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "total_pages must be positive"})
		return
	}

	book.Title = req.Title
	book.Author = req.Author
	book.ISBN = req.ISBN
	book.YearPublished = req.YearPublished
	book.TotalPages = req.TotalPages
	book.Location = req.Location
	if req.Condition != "" {
		book.Condition = req.Condition
	}

	if err := controller.books.UpdateBook(book); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}

func (controller *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if book := controller.getOwnedBook(c, id); book == nil {
		return
	}
	if err := controller.books.DeleteBook(id); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
