package http

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtualcode/readingvault/internal/database/notes"
	"github.com/virtualcode/readingvault/internal/entities"
)

func setupNotes(t *testing.T) (*notes.Repository, *gin.Engine, func()) {
	t.Helper()
	db, cleanup := setupTestDB(t, "notes")

	repo := notes.NewRepository(db.DB)
	controller := NewNotesController(repo)

	router := authedRouter(1)
	router.GET("/api/books/:id/notes", controller.GetNotesForBook)
	router.POST("/api/books/:id/notes", controller.CreateNote)
	router.PUT("/api/notes/:id", controller.UpdateNote)
	router.DELETE("/api/notes/:id", controller.DeleteNote)
	return repo, router, cleanup
}

func TestNotesController(t *testing.T) {
	t.Run("creates and lists notes for a book", func(t *testing.T) {
		_, router, cleanup := setupNotes(t)
		defer cleanup()

		body := map[string]interface{}{"content": "Great opening chapter", "page": 12, "chapter": "1"}
		w := doRequest(router, jsonRequest(t, "POST", "/api/books/1/notes", body))
		assert.Equal(t, http.StatusCreated, w.Code)

		w = doRequest(router, jsonRequest(t, "GET", "/api/books/1/notes", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(1), decodeBody(t, w)["count"])
	})

	t.Run("requires content", func(t *testing.T) {
		_, router, cleanup := setupNotes(t)
		defer cleanup()

		w := doRequest(router, jsonRequest(t, "POST", "/api/books/1/notes", map[string]interface{}{"page": 3}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("updates an existing note", func(t *testing.T) {
		repo, router, cleanup := setupNotes(t)
		defer cleanup()

		note := &entities.BookNote{BookID: 1, Content: "draft"}
		require.NoError(t, repo.CreateNote(note))

		w := doRequest(router, jsonRequest(t, "PUT", "/api/notes/1", map[string]interface{}{"content": "revised"}))
		assert.Equal(t, http.StatusOK, w.Code)

		updated, err := repo.GetNoteByID(note.ID)
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "revised", updated.Content)
	})

	t.Run("updating a missing note yields 404", func(t *testing.T) {
		_, router, cleanup := setupNotes(t)
		defer cleanup()

		w := doRequest(router, jsonRequest(t, "PUT", "/api/notes/42", map[string]interface{}{"content": "ghost"}))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("deletes a note", func(t *testing.T) {
		repo, router, cleanup := setupNotes(t)
		defer cleanup()

		note := &entities.BookNote{BookID: 1, Content: "to be removed"}
		require.NoError(t, repo.CreateNote(note))

		w := doRequest(router, jsonRequest(t, "DELETE", "/api/notes/1", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)

		gone, err := repo.GetNoteByID(note.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})

	t.Run("deleting a missing note yields 404", func(t *testing.T) {
		_, router, cleanup := setupNotes(t)
		defer cleanup()

		w := doRequest(router, jsonRequest(t, "DELETE", "/api/notes/42", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
