package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/virtualcode/readingvault/internal/auth"
	"github.com/virtualcode/readingvault/internal/services"
)

// OperationsController exposes the reading lifecycle and the composite
// analytics views.
type OperationsController struct {
	operations *services.Operations
}

func NewOperationsController(operations *services.Operations) *OperationsController {
	return &OperationsController{operations: operations}
}

type progressRequest struct {
	CurrentPage int  `json:"current_page" binding:"min=0"`
	MinutesRead *int `json:"minutes_read"`
}

type completeRequest struct {
	Rating *int `json:"rating"`
}

func (controller *OperationsController) StartReading(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	book, err := controller.operations.StartReading(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}

func (controller *OperationsController) UpdateProgress(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	book, err := controller.operations.UpdateReadingProgress(id, req.CurrentPage, req.MinutesRead)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}

func (controller *OperationsController) CompleteReading(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	book, err := controller.operations.CompleteReading(id, req.Rating)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}

func (controller *OperationsController) GetStatistics(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	statistics, err := controller.operations.GetBookStatistics(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, statistics)
}

func (controller *OperationsController) GetDetails(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	details, err := controller.operations.GetBookWithDetails(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, details)
}

func (controller *OperationsController) GetCurrentlyReading(c *gin.Context) {
	userID, _ := auth.UserID(c)
	reading, err := controller.operations.GetCurrentlyReadingBooks(userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"books": reading, "count": len(reading)})
}

func (controller *OperationsController) GetReadingSummary(c *gin.Context) {
	userID, _ := auth.UserID(c)
	summary, err := controller.operations.GetReadingSummary(userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, summary)
}

func (controller *OperationsController) CanBeLent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	can, err := controller.operations.CanBookBeLent(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"can_be_lent": can})
}
