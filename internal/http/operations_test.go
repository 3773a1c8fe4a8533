package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtualcode/readingvault/internal/database"
	"github.com/virtualcode/readingvault/internal/database/books"
	"github.com/virtualcode/readingvault/internal/database/lendings"
	"github.com/virtualcode/readingvault/internal/database/notes"
	"github.com/virtualcode/readingvault/internal/database/progress"
	"github.com/virtualcode/readingvault/internal/entities"
	"github.com/virtualcode/readingvault/internal/services"
)

func setupOperations(t *testing.T) (*database.Database, *books.Repository, *OperationsController, func()) {
	t.Helper()
	db, cleanup := setupTestDB(t, "operations")

	bookRepo := books.NewRepository(db.DB)
	progressRepo := progress.NewRepository(db.DB)
	lendingRepo := lendings.NewRepository(db.DB)
	noteRepo := notes.NewRepository(db.DB)

	operations := services.NewOperations(bookRepo, bookRepo, progressRepo, progressRepo, lendingRepo, noteRepo)
	return db, bookRepo, NewOperationsController(operations), cleanup
}

func operationsRouter(controller *OperationsController) *gin.Engine {
	router := authedRouter(1)
	router.POST("/api/books/:id/reading/start", controller.StartReading)
	router.POST("/api/books/:id/reading/progress", controller.UpdateProgress)
	router.POST("/api/books/:id/reading/complete", controller.CompleteReading)
	router.GET("/api/books/:id/statistics", controller.GetStatistics)
	router.GET("/api/books/:id/details", controller.GetDetails)
	router.GET("/api/books/:id/can-be-lent", controller.CanBeLent)
	router.GET("/api/currently-reading", controller.GetCurrentlyReading)
	router.GET("/api/reading-stats", controller.GetReadingSummary)
	return router
}

func TestOperationsController_ReadingLifecycle(t *testing.T) {
	t.Run("start, progress and complete a book", func(t *testing.T) {
		_, bookRepo, controller, cleanup := setupOperations(t)
		defer cleanup()

		pages := 200
		book := &entities.Book{UserID: 1, Title: "Dune", Author: "Frank Herbert", TotalPages: &pages}
		require.NoError(t, bookRepo.CreateBook(book))

		router := operationsRouter(controller)

		w := doRequest(router, jsonRequest(t, "POST", "/api/books/1/reading/start", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "IN_PROGRESS", decodeBody(t, w)["status"])

		minutes := 30
		body := map[string]interface{}{"current_page": 50, "minutes_read": minutes}
		w = doRequest(router, jsonRequest(t, "POST", "/api/books/1/reading/progress", body))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(50), decodeBody(t, w)["current_page"])

		w = doRequest(router, jsonRequest(t, "POST", "/api/books/1/reading/complete", map[string]interface{}{"rating": 5}))
		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeBody(t, w)
		assert.Equal(t, "COMPLETED", response["status"])
		assert.Equal(t, float64(200), response["current_page"])
	})

	t.Run("rejects starting a book twice", func(t *testing.T) {
		_, bookRepo, controller, cleanup := setupOperations(t)
		defer cleanup()

		require.NoError(t, bookRepo.CreateBook(&entities.Book{UserID: 1, Title: "T", Author: "A", Status: entities.StatusInProgress}))

		router := operationsRouter(controller)
		w := doRequest(router, jsonRequest(t, "POST", "/api/books/1/reading/start", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects progress moving backwards", func(t *testing.T) {
		_, bookRepo, controller, cleanup := setupOperations(t)
		defer cleanup()

		require.NoError(t, bookRepo.CreateBook(&entities.Book{UserID: 1, Title: "T", Author: "A", Status: entities.StatusInProgress, CurrentPage: 80}))

		router := operationsRouter(controller)
		body := map[string]interface{}{"current_page": 40}
		w := doRequest(router, jsonRequest(t, "POST", "/api/books/1/reading/progress", body))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects rating outside 1 to 5", func(t *testing.T) {
		_, bookRepo, controller, cleanup := setupOperations(t)
		defer cleanup()

		require.NoError(t, bookRepo.CreateBook(&entities.Book{UserID: 1, Title: "T", Author: "A", Status: entities.StatusInProgress}))

		router := operationsRouter(controller)
		w := doRequest(router, jsonRequest(t, "POST", "/api/books/1/reading/complete", map[string]interface{}{"rating": 9}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown book yields 404", func(t *testing.T) {
		_, _, controller, cleanup := setupOperations(t)
		defer cleanup()

		router := operationsRouter(controller)
		w := doRequest(router, jsonRequest(t, "POST", "/api/books/99/reading/start", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestOperationsController_Views(t *testing.T) {
	t.Run("statistics for a fresh book are degenerate but present", func(t *testing.T) {
		_, bookRepo, controller, cleanup := setupOperations(t)
		defer cleanup()

		pages := 300
		require.NoError(t, bookRepo.CreateBook(&entities.Book{UserID: 1, Title: "T", Author: "A", TotalPages: &pages}))

		router := operationsRouter(controller)
		w := doRequest(router, jsonRequest(t, "GET", "/api/books/1/statistics", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeBody(t, w)
		assert.Contains(t, response, "reading_stats")
		assert.Contains(t, response, "reading_pace")
	})

	t.Run("details include the book and omit absent lending", func(t *testing.T) {
		_, bookRepo, controller, cleanup := setupOperations(t)
		defer cleanup()

		require.NoError(t, bookRepo.CreateBook(&entities.Book{UserID: 1, Title: "T", Author: "A"}))

		router := operationsRouter(controller)
		w := doRequest(router, jsonRequest(t, "GET", "/api/books/1/details", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeBody(t, w)
		assert.Contains(t, response, "book")
		assert.Contains(t, response, "notes")
		assert.NotContains(t, response, "current_lending")
	})

	t.Run("currently reading lists in-progress books only", func(t *testing.T) {
		_, bookRepo, controller, cleanup := setupOperations(t)
		defer cleanup()

		require.NoError(t, bookRepo.CreateBook(&entities.Book{UserID: 1, Title: "Reading", Author: "A", Status: entities.StatusInProgress}))
		require.NoError(t, bookRepo.CreateBook(&entities.Book{UserID: 1, Title: "Done", Author: "A", Status: entities.StatusCompleted}))

		router := operationsRouter(controller)
		w := doRequest(router, jsonRequest(t, "GET", "/api/currently-reading", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeBody(t, w)
		assert.Equal(t, float64(1), response["count"])
	})

	t.Run("reading stats summarise the user's library", func(t *testing.T) {
		_, bookRepo, controller, cleanup := setupOperations(t)
		defer cleanup()

		rating := 4
		finished := time.Date(2023, time.June, 10, 0, 0, 0, 0, time.UTC)
		require.NoError(t, bookRepo.CreateBook(&entities.Book{UserID: 1, Title: "Done", Author: "A", Status: entities.StatusCompleted, DateRead: &finished, Rating: &rating}))
		require.NoError(t, bookRepo.CreateBook(&entities.Book{UserID: 1, Title: "Reading", Author: "A", Status: entities.StatusInProgress}))
		require.NoError(t, bookRepo.CreateBook(&entities.Book{UserID: 2, Title: "Other", Author: "A", Status: entities.StatusCompleted}))

		router := operationsRouter(controller)
		w := doRequest(router, jsonRequest(t, "GET", "/api/reading-stats", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeBody(t, w)
		assert.Equal(t, float64(2), response["total_books"])
		assert.Equal(t, float64(1), response["read_books"])
		assert.Equal(t, float64(4), response["average_rating"])
		years := response["books_by_year"].(map[string]interface{})
		assert.Equal(t, float64(1), years["2023"])
	})

	t.Run("can-be-lent reflects the book state", func(t *testing.T) {
		_, bookRepo, controller, cleanup := setupOperations(t)
		defer cleanup()

		require.NoError(t, bookRepo.CreateBook(&entities.Book{UserID: 1, Title: "Lendable", Author: "A", Condition: entities.ConditionGood}))
		require.NoError(t, bookRepo.CreateBook(&entities.Book{UserID: 1, Title: "Reading", Author: "A", Status: entities.StatusInProgress, Condition: entities.ConditionGood}))

		router := operationsRouter(controller)

		w := doRequest(router, jsonRequest(t, "GET", "/api/books/1/can-be-lent", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decodeBody(t, w)["can_be_lent"])

		w = doRequest(router, jsonRequest(t, "GET", "/api/books/2/can-be-lent", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, decodeBody(t, w)["can_be_lent"])
	})
}
