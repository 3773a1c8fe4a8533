package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/virtualcode/readingvault/internal/database/progress"
)

// ProgressController exposes a book's raw progress-event history. New
// events are recorded through the reading-progress operation, which keeps
// the book snapshot and the event log in step.
type ProgressController struct {
	progress *progress.Repository
}

func NewProgressController(repo *progress.Repository) *ProgressController {
	return &ProgressController{progress: repo}
}

func (controller *ProgressController) GetBookProgress(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	events, err := controller.progress.GetBookProgress(id)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"progress": events, "count": len(events)})
}

func (controller *ProgressController) GetLatestProgress(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	latest, err := controller.progress.GetLatestProgress(id)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if latest == nil {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": "no progress recorded"})
		return
	}
	c.IndentedJSON(http.StatusOK, latest)
}
