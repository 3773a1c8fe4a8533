package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/virtualcode/readingvault/internal/auth"
	"github.com/virtualcode/readingvault/internal/database"
	"github.com/virtualcode/readingvault/internal/database/books"
	"github.com/virtualcode/readingvault/internal/database/notes"
	"github.com/virtualcode/readingvault/internal/database/progress"
	"github.com/virtualcode/readingvault/internal/services"
)

// RouterConfig carries all dependencies the router needs, so wiring stays
// in one place and tests can swap pieces out.
type RouterConfig struct {
	Database       *database.Database
	Books          *books.Repository
	Progress       *progress.Repository
	Notes          *notes.Repository
	Operations     *services.Operations
	Lendings       *services.LendingService
	AuthService    *auth.Service
	TokenIssuer    *auth.TokenIssuer
	AuthMiddleware *auth.Middleware
	Scheduler      SchedulerStatus
	Version        string
}

// RequestIDMiddleware tags every request with an id for log correlation.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())

	healthController := NewHealthController(cfg.Database, cfg.Scheduler, cfg.Version)
	authController := NewAuthController(cfg.AuthService, cfg.TokenIssuer)
	booksController := NewBooksController(cfg.Books)
	progressController := NewProgressController(cfg.Progress)
	notesController := NewNotesController(cfg.Notes)
	operationsController := NewOperationsController(cfg.Operations)
	lendingsController := NewLendingsController(cfg.Lendings)

	// Public endpoints
	router.GET("/health", healthController.Status)
	router.POST("/api/auth/register", authController.Register)
	router.POST("/api/auth/login", authController.Login)

	// Everything else requires a valid bearer token
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.Handler())
	{
		api.GET("/books", booksController.GetBooks)
		api.POST("/books", booksController.CreateBook)
		api.GET("/books/:id", booksController.GetBook)
		api.PUT("/books/:id", booksController.UpdateBook)
		api.DELETE("/books/:id", booksController.DeleteBook)

		api.POST("/books/:id/reading/start", operationsController.StartReading)
		api.POST("/books/:id/reading/progress", operationsController.UpdateProgress)
		api.POST("/books/:id/reading/complete", operationsController.CompleteReading)
		api.GET("/books/:id/statistics", operationsController.GetStatistics)
		api.GET("/books/:id/details", operationsController.GetDetails)
		api.GET("/books/:id/can-be-lent", operationsController.CanBeLent)
		api.GET("/currently-reading", operationsController.GetCurrentlyReading)
		api.GET("/reading-stats", operationsController.GetReadingSummary)

		api.GET("/books/:id/progress", progressController.GetBookProgress)
		api.GET("/books/:id/progress/latest", progressController.GetLatestProgress)

		api.GET("/books/:id/lendings", lendingsController.GetLendingHistory)
		api.POST("/books/:id/lendings", lendingsController.LendBook)
		api.GET("/books/:id/lendings/current", lendingsController.GetCurrentLending)
		api.POST("/lendings/:id/return", lendingsController.ReturnBook)
		api.GET("/overdue-lendings", lendingsController.GetOverdueLendings)

		api.GET("/books/:id/notes", notesController.GetNotesForBook)
		api.POST("/books/:id/notes", notesController.CreateNote)
		api.PUT("/notes/:id", notesController.UpdateNote)
		api.DELETE("/notes/:id", notesController.DeleteNote)
	}

	return router
}
