package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/virtualcode/readingvault/internal/database/notes"
	"github.com/virtualcode/readingvault/internal/entities"
)

type NotesController struct {
	notes *notes.Repository
}

func NewNotesController(repo *notes.Repository) *NotesController {
	return &NotesController{notes: repo}
}

type noteRequest struct {
	Content string `json:"content" binding:"required"`
	Page    *int   `json:"page"`
	Chapter string `json:"chapter"`
}

func (controller *NotesController) GetNotesForBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	bookNotes, err := controller.notes.GetNotesForBook(id)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"notes": bookNotes, "count": len(bookNotes)})
}

func (controller *NotesController) CreateNote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note := &entities.BookNote{
		BookID:  id,
		Content: req.Content,
		Page:    req.Page,
		Chapter: req.Chapter,
	}
	if err := controller.notes.CreateNote(note); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusCreated, note)
}

func (controller *NotesController) UpdateNote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	note, err := controller.notes.GetNoteByID(id)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if note == nil {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": "note not found"})
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note.Content = req.Content
	note.Page = req.Page
	note.Chapter = req.Chapter
	note.UpdatedAt = time.Now()

	if err := controller.notes.UpdateNote(note); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, note)
}

func (controller *NotesController) DeleteNote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := controller.notes.DeleteNote(id); err != nil {
		if errors.Is(err, notes.ErrNotFound) {
			c.IndentedJSON(http.StatusNotFound, gin.H{"error": "note not found"})
			return
		}
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
